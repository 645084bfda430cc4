package spraytower

import (
	"errors"
	"fmt"
	"strings"

	"Spraytower/internal/calc/gas"
	"Spraytower/internal/calc/props"
	"Spraytower/internal/calc/units"
)

var ErrInvalidInput = errors.New("invalid input")

// Validate checks the ranges the pipeline assumes. The pipeline itself does
// not re-check them.
func Validate(in Input) error {
	var bad []string
	check := func(ok bool, field string) {
		if !ok {
			bad = append(bad, field)
		}
	}
	check(in.Gas.FlowNm3h > 0, "gas_stream.flow_nm3_h")
	check(in.Gas.TemperatureC+props.KelvinOffset > 0, "gas_stream.temperature_c")
	check(in.Gas.PressureKPa > 0, "gas_stream.pressure_kpa")
	if in.Gas.ViscosityPaS != nil {
		check(*in.Gas.ViscosityPaS > 0, "gas_stream.viscosity_pa_s")
	}
	check(in.Pollutant.Type != "", "pollutant.type")
	check(in.Pollutant.InletMgNm3 > 0, "pollutant.inlet_mg_nm3")
	check(in.Pollutant.TargetEfficiency > 0 && in.Pollutant.TargetEfficiency < 1, "pollutant.target_efficiency")
	check(in.Tower.LGRatio > 0, "tower.lg_ratio")
	check(in.Tower.GasVelocityMs > 0, "tower.gas_velocity_m_s")
	check(in.Tower.DropletDiameterMM > 0, "tower.droplet_diameter_mm")
	check(in.Tower.LiquidDensityKgM3 >= 0, "tower.liquid_density_kg_m3")
	if in.Tower.LiquidDensityKgM3 > 0 && in.Gas.PressureKPa > 0 && in.Gas.TemperatureC+props.KelvinOffset > 0 {
		// 0 means the default liquid; anything given must be denser than the gas
		check(in.Tower.LiquidDensityKgM3 > gas.Calculate(in.Gas).DensityKgM3, "tower.liquid_density_kg_m3")
	}
	check(in.Tower.PumpHeadM >= 0, "tower.pump_head_m")
	if in.Tower.KGaOverride != nil {
		check(*in.Tower.KGaOverride >= 0, "tower.kga_override")
	}
	if in.Tower.NozzleType != nil {
		check(in.Tower.NozzlePressureBar > 0, "tower.nozzle_pressure_bar")
	}
	if in.Settings.Framework != "" {
		_, err := props.ParseFramework(string(in.Settings.Framework))
		check(err == nil, "settings.framework")
	}
	_, err := units.ParseSystem(string(in.Settings.UnitSystem))
	check(err == nil, "settings.unit_system")

	if len(bad) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(bad, ", "))
	}
	return nil
}
