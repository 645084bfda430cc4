package sizing

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestCalculate(t *testing.T) {
	res, err := Calculate(6.3691, 3, 0.015)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name      string
		got, want float64
	}{
		{"area", res.AreaM2, 2.123},
		{"diameter", res.DiameterM, 1.644},
		{"liquid", res.LiquidM3h, 343.9},
		{"flux", res.LiquidFluxM3M2, 0.045},
	}
	for _, tt := range tests {
		if !scalar.EqualWithinRel(tt.got, tt.want, 5e-3) {
			t.Errorf("%s: got %g, want %g", tt.name, tt.got, tt.want)
		}
	}
}

func TestZeroVelocity(t *testing.T) {
	if _, err := Calculate(5, 0, 0.01); !errors.Is(err, ErrZeroVelocity) {
		t.Errorf("err = %v, want ErrZeroVelocity", err)
	}
}
