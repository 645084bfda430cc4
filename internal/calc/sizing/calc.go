package sizing

import (
	"errors"
	"math"
)

var ErrZeroVelocity = errors.New("gas velocity must be positive")

type Result struct {
	AreaM2         float64 `json:"area_m2"`
	DiameterM      float64 `json:"diameter_m"`
	LiquidM3s      float64 `json:"liquid_m3_s"`
	LiquidM3h      float64 `json:"liquid_m3_h"`
	LiquidFluxM3M2 float64 `json:"liquid_flux_m3_m2_s"`
}

// Calculate sizes the tower cross-section for gas flow (m3/s) at the design
// superficial velocity (m/s) and derives the liquid load from the L/G ratio.
func Calculate(gasFlowM3s, velocityMs, lgRatio float64) (Result, error) {
	if velocityMs <= 0 {
		return Result{}, ErrZeroVelocity
	}
	A := gasFlowM3s / velocityMs
	D := math.Sqrt(4.0 * A / math.Pi)
	L := lgRatio * gasFlowM3s

	flux := 0.0
	if A > 0 {
		flux = L / A
	}

	return Result{
		AreaM2:         A,
		DiameterM:      D,
		LiquidM3s:      L,
		LiquidM3h:      L * 3600.0,
		LiquidFluxM3M2: flux,
	}, nil
}
