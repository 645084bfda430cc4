package spraytower

import "Spraytower/internal/calc/units"

// Project expresses a result in system s. Converting an imperial result back to
// units.Metric restores the metric values.
func Project(res Result, s units.System) Result {
	if res.UnitSystem == "" {
		res.UnitSystem = units.Metric
	}
	if res.UnitSystem == s {
		res.Units = unitLabels(s)
		return res
	}
	from := res.UnitSystem
	res = convert(res, func(v float64, k units.Kind) float64 {
		return units.Project(units.ToMetric(v, k, from), k, s)
	})
	res.UnitSystem = s
	res.Units = unitLabels(s)
	return res
}

func convert(res Result, f func(float64, units.Kind) float64) Result {
	res.Gas.PressurePa = f(res.Gas.PressurePa, units.Pressure)
	res.Gas.DensityKgM3 = f(res.Gas.DensityKgM3, units.Density)
	res.Gas.FlowM3s = f(res.Gas.FlowM3s, units.GasFlow)

	res.Sizing.AreaM2 = f(res.Sizing.AreaM2, units.Area)
	res.Sizing.DiameterM = f(res.Sizing.DiameterM, units.Length)
	res.Sizing.LiquidM3s = f(res.Sizing.LiquidM3s, units.GasFlow)
	res.Sizing.LiquidM3h = f(res.Sizing.LiquidM3h, units.LiquidFlow)
	res.Sizing.LiquidFluxM3M2 = f(res.Sizing.LiquidFluxM3M2, units.LiquidFlux)

	res.Droplet.TerminalVelocityMs = f(res.Droplet.TerminalVelocityMs, units.Velocity)
	res.Droplet.RelativeVelocityMs = f(res.Droplet.RelativeVelocityMs, units.Velocity)

	res.MassTransfer.DropletDiameterM = f(res.MassTransfer.DropletDiameterM, units.Length)
	res.MassTransfer.FilmCoefficientMs = f(res.MassTransfer.FilmCoefficientMs, units.Velocity)
	res.MassTransfer.InterfacialAreaPerM = f(res.MassTransfer.InterfacialAreaPerM, units.InverseLength)

	res.Performance.HeightM = f(res.Performance.HeightM, units.Length)
	res.Performance.VolumeM3 = f(res.Performance.VolumeM3, units.Volume)
	res.Performance.PressureDropPa = f(res.Performance.PressureDropPa, units.PressureDrop)
	res.Performance.PerNozzleM3h = f(res.Performance.PerNozzleM3h, units.LiquidFlow)
	return res
}

func unitLabels(s units.System) map[string]string {
	return map[string]string{
		"length":           units.Label(units.Length, s),
		"area":             units.Label(units.Area, s),
		"volume":           units.Label(units.Volume, s),
		"pressure":         units.Label(units.Pressure, s),
		"pressure_drop":    units.Label(units.PressureDrop, s),
		"density":          units.Label(units.Density, s),
		"velocity":         units.Label(units.Velocity, s),
		"gas_flow":         units.Label(units.GasFlow, s),
		"liquid_flow":      units.Label(units.LiquidFlow, s),
		"liquid_flux":      units.Label(units.LiquidFlux, s),
		"interfacial_area": units.Label(units.InverseLength, s),
	}
}
