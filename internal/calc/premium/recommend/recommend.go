// Package recommend ranks nozzle families for a given liquid rate.
package recommend

import (
	"errors"
	"math"
	"sort"

	"Spraytower/internal/calc/props"
)

var ErrNoLiquid = errors.New("liquid rate must be positive")

type NozzleInput struct {
	LiquidM3h         float64 `json:"liquid_m3_h"`
	NozzlePressureBar float64 `json:"nozzle_pressure_bar"`
	DropletDiameterMM float64 `json:"droplet_diameter_mm"`
}

type Candidate struct {
	Type         props.NozzleType `json:"type"`
	PerNozzleM3h float64          `json:"per_nozzle_m3_h"`
	Count        int              `json:"count"`
}

type NozzleResult struct {
	Candidates []Candidate `json:"candidates"`
	Rejected   []string    `json:"rejected,omitempty"`
	Notes      string      `json:"notes"`
}

// Nozzles lists the families whose droplet and pressure ranges cover the
// operating point, fewest nozzles first.
func Nozzles(lib props.Library, in NozzleInput) (NozzleResult, error) {
	if in.LiquidM3h <= 0 {
		return NozzleResult{}, ErrNoLiquid
	}
	if in.NozzlePressureBar <= 0 {
		in.NozzlePressureBar = 2
	}

	var res NozzleResult
	for _, t := range lib.NozzleTypes() {
		n, err := lib.Nozzle(t)
		if err != nil {
			return NozzleResult{}, err
		}
		if in.NozzlePressureBar < n.MinPressureBar || in.NozzlePressureBar > n.MaxPressureBar {
			res.Rejected = append(res.Rejected, string(t)+": pressure out of range")
			continue
		}
		if in.DropletDiameterMM > 0 && (in.DropletDiameterMM < n.MinDropletMM || in.DropletDiameterMM > n.MaxDropletMM) {
			res.Rejected = append(res.Rejected, string(t)+": droplet size out of range")
			continue
		}
		q := n.KFactor * math.Sqrt(in.NozzlePressureBar)
		res.Candidates = append(res.Candidates, Candidate{
			Type:         t,
			PerNozzleM3h: q,
			Count:        int(math.Ceil(in.LiquidM3h / q)),
		})
	}
	sort.SliceStable(res.Candidates, func(i, j int) bool {
		return res.Candidates[i].Count < res.Candidates[j].Count
	})
	if len(res.Candidates) == 0 {
		res.Notes = "No nozzle family covers this operating point."
	} else {
		res.Notes = "Nozzle families ordered by required count."
	}
	return res, nil
}
