// Package optimize searches tower parameters that bring a non-compliant design
// under its emission limit.
//
// The search runs in three phases over the iteration budget: raise the L/G
// ratio (pinning the target efficiency to what the limit requires), then lower
// the gas velocity, then shrink the droplets. Every iteration is a full
// re-evaluation of the design; the best design seen so far is kept.
package optimize

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"Spraytower/internal/calc/props"
	"Spraytower/internal/calc/spraytower"
	"Spraytower/internal/calc/units"
)

const (
	DefaultMaxIterations = 20

	targetFraction   = 0.9 // aim at 90% of the limit
	divergenceFactor = 2.0
	divergenceAfter  = 5
	phase1Share      = 0.4
	phase2Share      = 0.7
	stepLG           = 0.1
	stepShrink       = 0.05
	floorShrink      = 0.5
)

type Outcome string

const (
	Compliant           Outcome = "compliant"
	Diverging           Outcome = "diverging"
	ExhaustedIterations Outcome = "exhausted_iterations"
)

type Phase int

const (
	PhaseInitial Phase = iota
	PhaseLGRatio
	PhaseGasVelocity
	PhaseDroplet
)

func (p Phase) String() string {
	switch p {
	case PhaseLGRatio:
		return "L/G ratio"
	case PhaseGasVelocity:
		return "gas velocity"
	case PhaseDroplet:
		return "droplet size"
	default:
		return "initial"
	}
}

// Evaluator runs one design evaluation. *spraytower.Calculator implements it.
type Evaluator interface {
	Calculate(in spraytower.Input) (spraytower.Result, error)
}

// Step records one evaluated parameter set.
type Step struct {
	Iteration   int              `json:"iteration"`
	Phase       string           `json:"phase"`
	Value       float64          `json:"value"`
	Input       spraytower.Input `json:"-"`
	OutletMgNm3 float64          `json:"outlet_mg_nm3"`
	HeightM     float64          `json:"height"`
	Compliant   bool             `json:"compliant"`
}

// Trace is the record of one optimization run.
type Trace struct {
	Steps              []Step            `json:"steps"`
	Iterations         int               `json:"iterations"`
	ConvergenceReached bool              `json:"convergence_reached"`
	Outcome            Outcome           `json:"outcome"`
	TargetMgNm3        float64           `json:"target_mg_nm3"`
	Best               spraytower.Result `json:"best"`
	BestInput          spraytower.Input  `json:"best_input"`
	Log                []string          `json:"log"`
}

// Output is the caller-facing summary of a run.
type Output struct {
	Results            spraytower.Result `json:"results"`
	OptimizedInput     spraytower.Input  `json:"optimized_input"`
	Iterations         int               `json:"iterations"`
	ConvergenceReached bool              `json:"convergence_reached"`
	Outcome            Outcome           `json:"outcome"`
	Steps              []Step            `json:"steps"`
	Log                []string          `json:"log"`
}

func (t Trace) Output() Output {
	return Output{
		Results:            t.Best,
		OptimizedInput:     t.BestInput,
		Iterations:         t.Iterations,
		ConvergenceReached: t.ConvergenceReached,
		Outcome:            t.Outcome,
		Steps:              t.Steps,
		Log:                t.Log,
	}
}

type Optimizer struct {
	Eval          Evaluator
	MaxIterations int
	Logger        *slog.Logger
}

func New(eval Evaluator, maxIterations int) *Optimizer {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	return &Optimizer{Eval: eval, MaxIterations: maxIterations, Logger: slog.Default()}
}

// Budget caps a client-requested iteration count at limit. A non-positive
// request takes the limit; a non-positive limit means DefaultMaxIterations.
func Budget(requested, limit int) int {
	if limit <= 0 {
		limit = DefaultMaxIterations
	}
	if requested <= 0 || requested > limit {
		return limit
	}
	return requested
}

// ForCompliance optimizes in with the built-in property tables.
func ForCompliance(in spraytower.Input, maxIterations int) (Output, error) {
	t, err := New(spraytower.New(props.Default()), maxIterations).Run(context.Background(), in)
	if err != nil {
		return Output{}, err
	}
	return t.Output(), nil
}

// search is the fold state carried from one iteration to the next.
type search struct {
	base     spraytower.Input
	current  spraytower.Input
	required float64
	target   float64
	trace    Trace
	done     bool
}

// Run evaluates in and, if it is not compliant, searches for a compliant
// variant. Only an evaluation error is returned; running out of iterations or
// diverging is reported through the trace.
func (o *Optimizer) Run(ctx context.Context, in spraytower.Input) (Trace, error) {
	n := o.MaxIterations
	if n <= 0 {
		n = DefaultMaxIterations
	}

	initial, err := o.Eval.Calculate(in)
	if err != nil {
		return Trace{}, fmt.Errorf("initial evaluation: %w", err)
	}
	if initial.Compliance.LimitsMet {
		return Trace{
			ConvergenceReached: true,
			Outcome:            Compliant,
			Best:               initial,
			BestInput:          in,
			Log:                []string{"initial design meets the emission limit"},
		}, nil
	}

	// a non-compliant result always carries a limit
	limit := *initial.Compliance.LimitMgNm3
	target := targetFraction * limit
	required := 1 - target/in.Pollutant.InletMgNm3
	required = math.Max(required, 0)

	s := search{
		base:     in,
		current:  in,
		required: required,
		target:   target,
		trace: Trace{
			Outcome:     ExhaustedIterations,
			TargetMgNm3: target,
			Best:        initial,
			BestInput:   in,
			Log: []string{fmt.Sprintf("initial outlet %.2f mg/Nm3 exceeds limit %.2f; target %.2f mg/Nm3, required efficiency %.4f",
				initial.Performance.OutletMgNm3, limit, target, required)},
		},
	}

	p1 := int(math.Ceil(phase1Share * float64(n)))
	p2 := int(math.Ceil(phase2Share * float64(n)))
	for i := 0; i < n && !s.done; i++ {
		if err := ctx.Err(); err != nil {
			s.trace.Log = append(s.trace.Log, fmt.Sprintf("stopped before iteration %d: %v", i+1, err))
			break
		}
		s, err = o.step(s, i, p1, p2)
		if err != nil {
			return s.trace, err
		}
	}
	return s.trace, nil
}

func (o *Optimizer) step(s search, i, p1, p2 int) (search, error) {
	iteration := i + 1
	next := s.current
	var phase Phase
	var value float64
	switch {
	case i < p1:
		phase = PhaseLGRatio
		next.Tower.LGRatio = s.base.Tower.LGRatio * (1 + stepLG*float64(iteration))
		next.Pollutant.TargetEfficiency = s.required
		value = next.Tower.LGRatio
	case i < p2:
		phase = PhaseGasVelocity
		next.Tower.GasVelocityMs = shrink(s.base.Tower.GasVelocityMs, i-p1)
		value = next.Tower.GasVelocityMs
	default:
		phase = PhaseDroplet
		next.Tower.DropletDiameterMM = shrink(s.base.Tower.DropletDiameterMM, i-p2)
		value = next.Tower.DropletDiameterMM
	}

	res, err := o.Eval.Calculate(next)
	if err != nil {
		return s, fmt.Errorf("iteration %d: %w", iteration, err)
	}

	s.current = next
	t := s.trace
	t.Iterations = iteration
	outlet := res.Performance.OutletMgNm3
	t.Steps = append(t.Steps, Step{
		Iteration:   iteration,
		Phase:       phase.String(),
		Value:       value,
		Input:       next,
		OutletMgNm3: outlet,
		HeightM:     res.Performance.HeightM,
		Compliant:   res.Compliance.LimitsMet,
	})
	t.Log = append(t.Log, fmt.Sprintf("iteration %d (%s): value=%.4g outlet=%.2f mg/Nm3 height=%.2f %s compliant=%t",
		iteration, phase, value, outlet, res.Performance.HeightM, units.Label(units.Length, res.UnitSystem), res.Compliance.LimitsMet))
	if o.Logger != nil {
		o.Logger.Debug("optimizer iteration", "iteration", iteration, "phase", phase.String(), "value", value, "outlet", outlet, "compliant", res.Compliance.LimitsMet)
	}

	if outlet < t.Best.Performance.OutletMgNm3 {
		t.Best = res
		t.BestInput = next
	}

	switch {
	case res.Compliance.LimitsMet:
		t.Best = res
		t.BestInput = next
		t.ConvergenceReached = true
		t.Outcome = Compliant
		s.done = true
	case iteration > divergenceAfter && outlet > divergenceFactor*s.target:
		t.Outcome = Diverging
		t.Log = append(t.Log, fmt.Sprintf("diverging: outlet %.2f mg/Nm3 is above twice the target after %d iterations", outlet, iteration))
		s.done = true
	}
	s.trace = t
	return s, nil
}

// shrink steps v down by 5% per iteration k of a phase, floored at half of v.
func shrink(v float64, k int) float64 {
	return math.Max(v*(1-stepShrink*float64(k+1)), floorShrink*v)
}
