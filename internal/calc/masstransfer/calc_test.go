package masstransfer

import (
	"math"
	"testing"

	"Spraytower/internal/calc/props"

	"gonum.org/v1/gonum/floats/scalar"
)

func so2Input() Input {
	lib := props.Default()
	p, err := lib.Pollutant(props.SO2)
	if err != nil {
		panic(err)
	}
	return Input{
		Pollutant:          p,
		DropletDiameterMM:  1,
		GasDensityKgM3:     1.127,
		GasViscosityPaS:    1.81e-5,
		GasVelocityMs:      3,
		RelativeVelocityMs: 1,
		LiquidFluxM3M2:     0.045,
	}
}

func TestDimensionlessGroups(t *testing.T) {
	in := so2Input()
	res := Calculate(in)

	re := 1.127 * 3 * 1e-3 / 1.81e-5
	sc := 1.81e-5 / (1.127 * 1.22e-5)
	sh := 2 + 0.6*math.Sqrt(re)*math.Cbrt(sc)
	for _, c := range []struct {
		name      string
		got, want float64
	}{
		{"Re", res.Reynolds, re},
		{"Sc", res.Schmidt, sc},
		{"Sh", res.Sherwood, sh},
		{"kg", res.FilmCoefficientMs, sh * 1.22e-5 / 1e-3},
		{"a", res.InterfacialAreaPerM, 6 * 0.045 / 1e-3},
	} {
		if !scalar.EqualWithinRel(c.got, c.want, 1e-12) {
			t.Errorf("%s = %g, want %g", c.name, c.got, c.want)
		}
	}
	if res.KGaSource != KGaCorrelation {
		t.Errorf("source = %s", res.KGaSource)
	}
	want := 0.1586 * math.Pow(1.127*3/28.96, 0.8) * math.Pow(45, 0.4)
	if !scalar.EqualWithinRel(res.KGaPerS, want, 1e-12) {
		t.Errorf("KGa = %g, want %g", res.KGaPerS, want)
	}
}

func TestKGaOverride(t *testing.T) {
	in := so2Input()
	v := 0.0
	in.KGaOverride = &v
	res := Calculate(in)
	if res.KGaPerS != 0 || res.KGaSource != KGaOverride {
		t.Errorf("override 0 not used verbatim: %g %s", res.KGaPerS, res.KGaSource)
	}
}

func TestZeroRelativeVelocity(t *testing.T) {
	in := so2Input()
	in.RelativeVelocityMs = 0
	res := Calculate(in)
	if res.InterfacialAreaPerM != 0 {
		t.Errorf("a = %g, want 0", res.InterfacialAreaPerM)
	}
	if len(res.Warnings) != 1 {
		t.Errorf("warnings = %v", res.Warnings)
	}
}
