// Package units projects metric calculation results onto the unit system the
// caller asked for. Conversion factors are built from ctessum/unit quantities so
// every factor carries, and is checked against, its SI dimensions.
package units

import (
	"errors"
	"fmt"

	"github.com/ctessum/unit"
	"github.com/ctessum/unit/badunit"
)

var ErrUnknownSystem = errors.New("unknown unit system")

type System string

const (
	Metric   System = "metric"
	Imperial System = "imperial"
)

func ParseSystem(s string) (System, error) {
	switch System(s) {
	case "", Metric:
		return Metric, nil
	case Imperial:
		return Imperial, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSystem, s)
}

// Kind is the physical quantity a result field holds in its metric form.
type Kind int

const (
	Length       Kind = iota // m -> ft
	Area                     // m2 -> ft2
	Volume                   // m3 -> ft3
	Pressure                 // Pa -> psi
	PressureDrop             // Pa -> inH2O
	Density                  // kg/m3 -> lb/ft3
	Velocity                 // m/s -> ft/s
	GasFlow                  // m3/s -> ft3/min
	LiquidFlow               // m3/h -> US gal/min
	LiquidFlux               // m3/(m2*s) -> gpm/ft2
	InverseLength            // 1/m -> 1/ft
)

var (
	pascal       = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -1, unit.TimeDim: -2}
	acceleration = unit.Dimensions{unit.LengthDim: 1, unit.TimeDim: -2}
	volume       = unit.Dimensions{unit.LengthDim: 3}
	volumeRate   = unit.Dimensions{unit.LengthDim: 3, unit.TimeDim: -1}
)

type factor struct {
	si     *unit.Unit // one imperial unit expressed in SI
	metric float64    // metric field value per SI value (m3/h fields are 3600 per m3/s)
	dims   unit.Dimensions
	label  string
}

var factors = buildFactors()

func buildFactors() map[Kind]factor {
	ft := func() *unit.Unit { return badunit.Foot(1) }
	inch := func() *unit.Unit { return unit.New(0.0254, unit.Meter) }
	lb := func() *unit.Unit { return badunit.Pound(1) }
	gallon := func() *unit.Unit { return unit.New(3.785411784e-3, volume) }
	minute := func() *unit.Unit { return unit.New(60, unit.Second) }
	lbf := unit.Mul(lb(), unit.New(9.80665, acceleration))

	f := map[Kind]factor{
		Length:        {si: ft(), metric: 1, dims: unit.Meter, label: "ft"},
		Area:          {si: unit.Mul(ft(), ft()), metric: 1, dims: unit.Dimensions{unit.LengthDim: 2}, label: "ft2"},
		Volume:        {si: unit.Mul(ft(), ft(), ft()), metric: 1, dims: volume, label: "ft3"},
		Pressure:      {si: unit.Div(lbf, unit.Mul(inch(), inch())), metric: 1, dims: pascal, label: "psi"},
		PressureDrop:  {si: unit.New(249.08891, pascal), metric: 1, dims: pascal, label: "inH2O"},
		Density:       {si: unit.Div(lb(), unit.Mul(ft(), ft(), ft())), metric: 1, dims: unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -3}, label: "lb/ft3"},
		Velocity:      {si: badunit.FootPerSecond(1), metric: 1, dims: unit.MeterPerSecond, label: "ft/s"},
		GasFlow:       {si: unit.Div(unit.Mul(ft(), ft(), ft()), minute()), metric: 1, dims: volumeRate, label: "ft3/min"},
		LiquidFlow:    {si: unit.Div(gallon(), minute()), metric: 3600, dims: volumeRate, label: "gpm"},
		LiquidFlux:    {si: unit.Div(gallon(), unit.Mul(minute(), ft(), ft())), metric: 1, dims: unit.MeterPerSecond, label: "gpm/ft2"},
		InverseLength: {si: unit.Div(unit.New(1, unit.Dimensions{}), ft()), metric: 1, dims: unit.Dimensions{unit.LengthDim: -1}, label: "1/ft"},
	}
	for _, v := range f {
		if !v.si.Dimensions().Matches(v.dims) {
			panic(fmt.Sprintf("units: factor %s has dimensions %s", v.label, v.si.Dimensions()))
		}
	}
	return f
}

// Project converts a metric field value of kind k into system s.
func Project(v float64, k Kind, s System) float64 {
	if s != Imperial {
		return v
	}
	f := factors[k]
	return v / f.metric / f.si.Value()
}

// ToMetric is the inverse of Project.
func ToMetric(v float64, k Kind, s System) float64 {
	if s != Imperial {
		return v
	}
	f := factors[k]
	return v * f.si.Value() * f.metric
}

// Label returns the unit label of kind k in system s.
func Label(k Kind, s System) string {
	if s == Imperial {
		return factors[k].label
	}
	return metricLabels[k]
}

var metricLabels = map[Kind]string{
	Length:        "m",
	Area:          "m2",
	Volume:        "m3",
	Pressure:      "Pa",
	PressureDrop:  "Pa",
	Density:       "kg/m3",
	Velocity:      "m/s",
	GasFlow:       "m3/s",
	LiquidFlow:    "m3/h",
	LiquidFlux:    "m3/(m2 s)",
	InverseLength: "1/m",
}
