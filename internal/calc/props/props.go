// Package props holds the physical constants and the read-only property tables
// (pollutants, nozzles, emission limits) the scrubber calculations look values up in.
package props

import (
	"errors"
	"fmt"
	"sort"
)

const (
	GasConstant   = 8.314462618 // J/(mol*K)
	Gravity       = 9.80665     // m/s^2
	AirMolarMass  = 0.02896     // kg/mol
	AirMolarMassK = 28.96       // kg/kmol
	StdTempK      = 273.15
	StdPressurePa = 101325.0
	KelvinOffset  = 273.15

	DefaultGasViscosity = 1.81e-5 // Pa*s, air near 20 C
	DefaultSprayHeightM = 10.0
	PumpEfficiency      = 0.7
)

var (
	ErrUnknownPollutant = errors.New("unknown pollutant")
	ErrUnknownNozzle    = errors.New("unknown nozzle type")
	ErrUnknownFramework = errors.New("unknown regulatory framework")
)

type PollutantType string

const (
	SO2 PollutantType = "SO2"
	HCl PollutantType = "HCl"
	HF  PollutantType = "HF"
	NH3 PollutantType = "NH3"
	H2S PollutantType = "H2S"
	Cl2 PollutantType = "Cl2"
)

type Framework string

const (
	FrameworkEU Framework = "EU"
	FrameworkUS Framework = "US"
)

func ParseFramework(s string) (Framework, error) {
	switch Framework(s) {
	case FrameworkEU, FrameworkUS:
		return Framework(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFramework, s)
}

type NozzleType string

const (
	NozzleFullCone   NozzleType = "full-cone"
	NozzleHollowCone NozzleType = "hollow-cone"
	NozzleSpiral     NozzleType = "spiral"
	NozzleFlatFan    NozzleType = "flat-fan"
)

// Pollutant is the fixed property set of one gaseous pollutant.
type Pollutant struct {
	HenryMolM3Pa   float64 `json:"henry_mol_m3_pa" toml:"henry_mol_m3_pa"`
	DiffusivityM2s float64 `json:"diffusivity_m2_s" toml:"diffusivity_m2_s"`
	MolarMassGmol  float64 `json:"molar_mass_g_mol" toml:"molar_mass_g_mol"`
}

// Nozzle describes a nozzle family. Flow per nozzle is KFactor*sqrt(pressure in bar), m3/h.
type Nozzle struct {
	KFactor        float64 `json:"k_factor"`
	MinDropletMM   float64 `json:"min_droplet_mm"`
	MaxDropletMM   float64 `json:"max_droplet_mm"`
	MinPressureBar float64 `json:"min_pressure_bar"`
	MaxPressureBar float64 `json:"max_pressure_bar"`
}

// Library bundles every table a calculation needs. A Library is never mutated
// after construction, so one value may be shared by concurrent calculations.
type Library struct {
	pollutants map[PollutantType]Pollutant
	nozzles    map[NozzleType]Nozzle
	limits     map[Framework]map[PollutantType]float64
}

func NewLibrary(pollutants map[PollutantType]Pollutant, nozzles map[NozzleType]Nozzle, limits map[Framework]map[PollutantType]float64) Library {
	lib := Library{
		pollutants: make(map[PollutantType]Pollutant, len(pollutants)),
		nozzles:    make(map[NozzleType]Nozzle, len(nozzles)),
		limits:     make(map[Framework]map[PollutantType]float64, len(limits)),
	}
	for k, v := range pollutants {
		lib.pollutants[k] = v
	}
	for k, v := range nozzles {
		lib.nozzles[k] = v
	}
	for fw, table := range limits {
		cp := make(map[PollutantType]float64, len(table))
		for k, v := range table {
			cp[k] = v
		}
		lib.limits[fw] = cp
	}
	return lib
}

// Default returns the built-in tables.
// Diffusivities are in air at 25 C; Henry constants are Hcp solubilities at 298 K.
func Default() Library {
	return NewLibrary(
		map[PollutantType]Pollutant{
			SO2: {HenryMolM3Pa: 1.2e-2, DiffusivityM2s: 1.22e-5, MolarMassGmol: 64.066},
			HCl: {HenryMolM3Pa: 1.5e1, DiffusivityM2s: 1.89e-5, MolarMassGmol: 36.46},
			HF:  {HenryMolM3Pa: 1.0e-1, DiffusivityM2s: 2.43e-5, MolarMassGmol: 20.006},
			NH3: {HenryMolM3Pa: 5.9e-1, DiffusivityM2s: 2.28e-5, MolarMassGmol: 17.031},
			H2S: {HenryMolM3Pa: 1.0e-3, DiffusivityM2s: 1.76e-5, MolarMassGmol: 34.08},
			Cl2: {HenryMolM3Pa: 9.2e-4, DiffusivityM2s: 1.24e-5, MolarMassGmol: 70.906},
		},
		map[NozzleType]Nozzle{
			NozzleFullCone:   {KFactor: 1.2, MinDropletMM: 0.5, MaxDropletMM: 3.0, MinPressureBar: 0.5, MaxPressureBar: 7},
			NozzleHollowCone: {KFactor: 0.9, MinDropletMM: 0.3, MaxDropletMM: 2.0, MinPressureBar: 0.7, MaxPressureBar: 10},
			NozzleSpiral:     {KFactor: 2.4, MinDropletMM: 0.8, MaxDropletMM: 4.0, MinPressureBar: 0.3, MaxPressureBar: 6},
			NozzleFlatFan:    {KFactor: 0.6, MinDropletMM: 0.2, MaxDropletMM: 1.5, MinPressureBar: 1.0, MaxPressureBar: 15},
		},
		map[Framework]map[PollutantType]float64{
			// mg/Nm3, dry reference conditions
			FrameworkEU: {SO2: 200, HCl: 10, HF: 1, NH3: 10, H2S: 5},
			FrameworkUS: {SO2: 250, HCl: 30, HF: 3, NH3: 25},
		},
	)
}

func (l Library) Pollutant(t PollutantType) (Pollutant, error) {
	p, ok := l.pollutants[t]
	if !ok {
		return Pollutant{}, fmt.Errorf("%w: %q", ErrUnknownPollutant, t)
	}
	return p, nil
}

func (l Library) Nozzle(t NozzleType) (Nozzle, error) {
	n, ok := l.nozzles[t]
	if !ok {
		return Nozzle{}, fmt.Errorf("%w: %q", ErrUnknownNozzle, t)
	}
	return n, nil
}

// NozzleTypes lists the nozzle families in a stable order.
func (l Library) NozzleTypes() []NozzleType {
	out := make([]NozzleType, 0, len(l.nozzles))
	for t := range l.nozzles {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// EmissionLimit reports the limit in mg/Nm3 and whether the framework lists one.
func (l Library) EmissionLimit(fw Framework, t PollutantType) (float64, bool) {
	table, ok := l.limits[fw]
	if !ok {
		return 0, false
	}
	v, ok := table[t]
	return v, ok
}
