// Package numeric provides guarded arithmetic for the scrubber correlations.
// A guarded operation never yields NaN or Inf; it reports a degenerate Outcome
// with value 0 and a reason the caller must decide what to do with.
package numeric

import "math"

type Outcome struct {
	Value      float64
	Degenerate bool
	Reason     string
}

func Computed(v float64) Outcome {
	return Outcome{Value: v}
}

func Undefined(reason string) Outcome {
	return Outcome{Degenerate: true, Reason: reason}
}

// Div returns num/den, or a degenerate outcome when den <= 0.
func Div(num, den float64, reason string) Outcome {
	if den <= 0 {
		return Undefined(reason)
	}
	return Computed(num / den)
}

// LogRatio returns ln(a/b), or a degenerate outcome unless both are positive.
func LogRatio(a, b float64, reason string) Outcome {
	if b <= 0 || a <= 0 {
		return Undefined(reason)
	}
	return Computed(math.Log(a / b))
}

// Or returns the computed value, or 0 and appends the reason to warnings.
func (o Outcome) Or(warnings *[]string) float64 {
	if o.Degenerate {
		if warnings != nil && o.Reason != "" {
			*warnings = append(*warnings, o.Reason)
		}
		return 0
	}
	return o.Value
}
