package particulate

import "math"

// Per size class: intensity scale, cap on transfer units, and the efficiency
// ceiling inertial impaction can reach for that class.
type band struct {
	scale   float64
	maxN    float64
	ceiling float64
}

var (
	coarse = band{scale: 0.02, maxN: 6, ceiling: 0.99}     // > 10 um
	medium = band{scale: 0.004, maxN: 2, ceiling: 0.80}    // ~ 2 um
	fine   = band{scale: 0.0005, maxN: 0.3, ceiling: 0.20} // < 1 um
)

type Input struct {
	DropletDiameterMM  float64
	GasVelocityMs      float64
	LiquidFluxM3M2     float64
	SprayHeightM       float64
	RelativeVelocityMs float64
}

type Result struct {
	Intensity float64 `json:"intensity"`
	Coarse    float64 `json:"coarse"`
	Medium    float64 `json:"medium"`
	Fine      float64 `json:"fine"`
}

// Estimate returns size-banded particulate collection efficiencies.
// The collection intensity is the liquid volume swept per unit of gas passage:
// flux * H / (d * v), i.e. contacting liquid per droplet diameter over the gas
// residence time. Each band scales and caps it, then 1 - exp(-N) is clipped
// to the band ceiling.
func Estimate(in Input) Result {
	d := in.DropletDiameterMM / 1000.0
	I := 0.0
	if d > 0 && in.GasVelocityMs > 0 {
		I = in.LiquidFluxM3M2 * in.SprayHeightM / (d * in.GasVelocityMs)
	}
	return Result{
		Intensity: I,
		Coarse:    coarse.efficiency(I * (1.0 + in.RelativeVelocityMs)),
		Medium:    medium.efficiency(I),
		Fine:      fine.efficiency(I),
	}
}

func (b band) efficiency(intensity float64) float64 {
	n := math.Min(b.scale*intensity, b.maxN)
	if n <= 0 {
		return 0
	}
	return math.Min(1.0-math.Exp(-n), b.ceiling)
}
