package gas

import "Spraytower/internal/calc/props"

type Input struct {
	FlowNm3h     float64  `json:"flow_nm3_h" toml:"flow_nm3_h"`
	TemperatureC float64  `json:"temperature_c" toml:"temperature_c"`
	PressureKPa  float64  `json:"pressure_kpa" toml:"pressure_kpa"`
	ViscosityPaS *float64 `json:"viscosity_pa_s,omitempty" toml:"viscosity_pa_s"`
}

type Result struct {
	TemperatureK float64 `json:"temperature_k"`
	PressurePa   float64 `json:"pressure_pa"`
	DensityKgM3  float64 `json:"density_kg_m3"`
	FlowM3s      float64 `json:"flow_m3_s"`
	ViscosityPaS float64 `json:"viscosity_pa_s"`
}

// Calculate converts the standard-condition gas stream to operating conditions.
// Inputs are expected to be validated by the caller.
func Calculate(in Input) Result {
	T := in.TemperatureC + props.KelvinOffset
	P := in.PressureKPa * 1000.0
	rho := P * props.AirMolarMass / (props.GasConstant * T)

	// Nm3/h -> Nm3/s -> actual m3/s
	q := in.FlowNm3h / 3600.0 * (T / props.StdTempK) * (props.StdPressurePa / P)

	mu := props.DefaultGasViscosity
	if in.ViscosityPaS != nil {
		mu = *in.ViscosityPaS
	}

	return Result{
		TemperatureK: T,
		PressurePa:   P,
		DensityKgM3:  rho,
		FlowM3s:      q,
		ViscosityPaS: mu,
	}
}
