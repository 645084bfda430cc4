package droplet

import (
	"math"

	"Spraytower/internal/calc/props"
)

const (
	initialVelocity = 1.0  // m/s
	tolerance       = 1e-3 // m/s
	maxIterations   = 10
	reCutoff        = 1000.0
	cdNewton        = 0.44
)

type Input struct {
	DiameterMM        float64
	GasVelocityMs     float64
	GasDensityKgM3    float64
	GasViscosityPaS   float64
	LiquidDensityKgM3 float64
	SprayHeightM      float64
}

type Result struct {
	TerminalVelocityMs float64 `json:"terminal_velocity_m_s"`
	RelativeVelocityMs float64 `json:"relative_velocity_m_s"`
	ContactTimeS       float64 `json:"contact_time_s"`
	Reynolds           float64 `json:"reynolds"`
	DragCoefficient    float64 `json:"drag_coefficient"`
	Iterations         int     `json:"iterations"`
	Converged          bool    `json:"converged"`
	// LastStepMs is the change in terminal velocity on the final iteration.
	LastStepMs float64  `json:"last_step_m_s"`
	Warnings   []string `json:"warnings,omitempty"`
}

// DragCoefficient is the Schiller-Naumann sphere drag, held at the Newton
// regime value above Re 1000.
func DragCoefficient(re float64) float64 {
	if re > reCutoff {
		return cdNewton
	}
	return 24.0 / re * (1.0 + 0.15*math.Pow(re, 0.687))
}

// Solve finds the droplet terminal velocity by fixed-point iteration and derives
// the counter-current relative velocity and contact time. The iteration is capped;
// a capped result is returned with Converged false. A liquid no denser than the
// gas has no terminal velocity: the result is all zero with a warning.
func Solve(in Input) Result {
	d := in.DiameterMM / 1000.0
	rhoG := in.GasDensityKgM3
	mu := in.GasViscosityPaS

	if !(in.LiquidDensityKgM3 > rhoG) {
		return Result{Warnings: []string{"droplet terminal velocity is zero: liquid is not denser than the gas"}}
	}

	vt := initialVelocity
	var re, cd, delta float64
	iter := 0
	converged := false
	for iter < maxIterations {
		iter++
		re = rhoG * vt * d / mu
		cd = DragCoefficient(re)
		next := math.Sqrt(4.0 * props.Gravity * d * (in.LiquidDensityKgM3 - rhoG) / (3.0 * cd * rhoG))
		delta = math.Abs(next - vt)
		vt = next
		if delta < tolerance {
			converged = true
			break
		}
	}
	re = rhoG * vt * d / mu

	rel := math.Max(0, vt-in.GasVelocityMs)
	contact := 0.0
	if rel > 0 {
		contact = in.SprayHeightM / rel
	}

	return Result{
		TerminalVelocityMs: vt,
		RelativeVelocityMs: rel,
		ContactTimeS:       contact,
		Reynolds:           re,
		DragCoefficient:    cd,
		Iterations:         iter,
		Converged:          converged,
		LastStepMs:         delta,
	}
}
