package masstransfer

import (
	"math"

	"Spraytower/internal/calc/numeric"
	"Spraytower/internal/calc/props"
)

// Empirical spray-tower KGa correlation, KGa = kgaCoeff * Gm^0.8 * L^0.4 with
// Gm in kmol/(m2*s) and L in L/(s*m2). The constants are dimensional and tied to
// those units; Gm is approximated as rho*v divided by the molar mass of air.
const (
	kgaCoeff     = 0.1586
	kgaGasExp    = 0.8
	kgaLiqExp    = 0.4
	molarDivisor = props.AirMolarMassK
)

type KGaSource string

const (
	KGaCorrelation KGaSource = "correlation"
	KGaOverride    KGaSource = "override"
)

type Input struct {
	Pollutant          props.Pollutant
	DropletDiameterMM  float64
	GasDensityKgM3     float64
	GasViscosityPaS    float64
	GasVelocityMs      float64
	RelativeVelocityMs float64
	LiquidFluxM3M2     float64
	KGaOverride        *float64
}

type Result struct {
	DropletDiameterM    float64   `json:"droplet_diameter_m"`
	Reynolds            float64   `json:"reynolds"`
	Schmidt             float64   `json:"schmidt"`
	Sherwood            float64   `json:"sherwood"`
	FilmCoefficientMs   float64   `json:"film_coefficient_m_s"`
	InterfacialAreaPerM float64   `json:"interfacial_area_per_m"`
	MolarFluxKmolM2s    float64   `json:"molar_flux_kmol_m2_s"`
	KGaPerS             float64   `json:"kga_per_s"`
	KGaSource           KGaSource `json:"kga_source"`
	Warnings            []string  `json:"warnings,omitempty"`
}

func Calculate(in Input) Result {
	d := in.DropletDiameterMM / 1000.0
	rho := in.GasDensityKgM3
	mu := in.GasViscosityPaS
	D := in.Pollutant.DiffusivityM2s

	re := rho * in.GasVelocityMs * d / mu
	sc := mu / (rho * D)
	// Frossling
	sh := 2.0 + 0.6*math.Sqrt(re)*math.Cbrt(sc)
	kg := sh * D / d

	var warnings []string
	a := numeric.Div(6.0*in.LiquidFluxM3M2, in.RelativeVelocityMs*d,
		"interfacial area is zero: droplets do not fall against the gas (relative velocity 0)").Or(&warnings)

	gm := rho * in.GasVelocityMs / molarDivisor
	res := Result{
		DropletDiameterM:    d,
		Reynolds:            re,
		Schmidt:             sc,
		Sherwood:            sh,
		FilmCoefficientMs:   kg,
		InterfacialAreaPerM: a,
		MolarFluxKmolM2s:    gm,
		Warnings:            warnings,
	}
	if in.KGaOverride != nil {
		res.KGaPerS = *in.KGaOverride
		res.KGaSource = KGaOverride
		return res
	}
	lflux := in.LiquidFluxM3M2 * 1000.0 // L/(s*m2)
	res.KGaPerS = kgaCoeff * math.Pow(gm, kgaGasExp) * math.Pow(lflux, kgaLiqExp)
	res.KGaSource = KGaCorrelation
	return res
}
