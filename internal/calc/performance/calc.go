package performance

import (
	"math"

	"Spraytower/internal/calc/numeric"
	"Spraytower/internal/calc/props"
)

type Input struct {
	Pollutant        props.Pollutant
	InletMgNm3       float64
	TargetEfficiency float64

	FrictionFactor    float64
	Stoichiometry     float64
	LiquidDensityKgM3 float64
	PumpHeadM         float64
	Nozzle            *props.Nozzle
	NozzlePressureBar float64

	StdFlowNm3h    float64
	GasFlowM3s     float64
	GasVelocityMs  float64
	GasDensityKgM3 float64
	TemperatureK   float64
	PressurePa     float64
	DiameterM      float64
	AreaM2         float64
	LiquidM3s      float64
	KGaPerS        float64
}

type Result struct {
	HeightM          float64  `json:"height_m"`
	VolumeM3         float64  `json:"volume_m3"`
	ResidenceTimeS   float64  `json:"residence_time_s"`
	OutletMgNm3      float64  `json:"outlet_mg_nm3"`
	PressureDropPa   float64  `json:"pressure_drop_pa"`
	NTU              float64  `json:"ntu"`
	MolarGasKmols    float64  `json:"molar_gas_kmol_s"`
	MolesRemovedMolH float64  `json:"moles_removed_mol_h"`
	ReagentMolH      float64  `json:"reagent_mol_h"`
	PumpPowerKW      float64  `json:"pump_power_kw"`
	PerNozzleM3h     float64  `json:"per_nozzle_m3_h,omitempty"`
	NozzleCount      *int     `json:"nozzle_count,omitempty"`
	Warnings         []string `json:"warnings,omitempty"`
}

// Calculate derives the outlet concentration from the target efficiency and the
// spray-zone height needed to deliver it with the given KGa.
func Calculate(in Input) Result {
	var warnings []string

	outlet := in.InletMgNm3 * (1.0 - in.TargetEfficiency)
	ntu := numeric.LogRatio(in.InletMgNm3, outlet, "NTU is zero: outlet concentration is zero").Or(&warnings)

	// kmol/s at operating conditions
	gm := in.PressurePa * in.GasFlowM3s / (props.GasConstant * in.TemperatureK) / 1000.0

	volume := 0.0
	switch {
	case in.KGaPerS <= 0:
		warnings = append(warnings, "required height is zero: KGa is zero")
	case ntu <= 0:
		warnings = append(warnings, "required height is zero: no transfer units required")
	default:
		volume = gm * ntu / in.KGaPerS
	}
	height := 0.0
	if volume > 0 {
		height = numeric.Div(volume, in.AreaM2, "required height is zero: tower area is zero").Or(&warnings)
	}

	residence := numeric.Div(height, in.GasVelocityMs, "residence time is zero: gas velocity is zero").Or(&warnings)

	dp := 0.0
	if in.DiameterM > 0 {
		dp = in.FrictionFactor * (height / in.DiameterM) * (in.GasDensityKgM3 * in.GasVelocityMs * in.GasVelocityMs / 2.0)
	}

	// mg/h / (g/mol) = 1e-3 mol/h
	removed := in.StdFlowNm3h * (in.InletMgNm3 - outlet) / in.Pollutant.MolarMassGmol / 1000.0

	pump := in.LiquidDensityKgM3 * props.Gravity * in.LiquidM3s * in.PumpHeadM / props.PumpEfficiency / 1000.0

	res := Result{
		HeightM:          height,
		VolumeM3:         volume,
		ResidenceTimeS:   residence,
		OutletMgNm3:      outlet,
		PressureDropPa:   dp,
		NTU:              ntu,
		MolarGasKmols:    gm,
		MolesRemovedMolH: removed,
		ReagentMolH:      removed * in.Stoichiometry,
		PumpPowerKW:      pump,
	}

	if in.Nozzle != nil {
		perNozzle := in.Nozzle.KFactor * math.Sqrt(math.Max(in.NozzlePressureBar, 0))
		count := 0
		n := numeric.Div(in.LiquidM3s*3600.0, perNozzle, "nozzle count is zero: nozzle pressure gives no flow").Or(&warnings)
		if n > 0 {
			count = int(math.Ceil(n))
		}
		res.PerNozzleM3h = perNozzle
		res.NozzleCount = &count
	}

	res.Warnings = warnings
	return res
}
