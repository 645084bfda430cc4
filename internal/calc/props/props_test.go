package props

import (
	"errors"
	"testing"
)

func TestLookups(t *testing.T) {
	lib := Default()
	for _, pt := range []PollutantType{SO2, HCl, HF, NH3, H2S, Cl2} {
		p, err := lib.Pollutant(pt)
		if err != nil {
			t.Errorf("%s: %v", pt, err)
			continue
		}
		if p.HenryMolM3Pa <= 0 || p.DiffusivityM2s <= 0 || p.MolarMassGmol <= 0 {
			t.Errorf("%s: %+v", pt, p)
		}
	}
	if _, err := lib.Pollutant("CO2"); !errors.Is(err, ErrUnknownPollutant) {
		t.Errorf("CO2: err = %v", err)
	}
	if _, err := lib.Nozzle("jet"); !errors.Is(err, ErrUnknownNozzle) {
		t.Errorf("jet: err = %v", err)
	}
}

func TestNozzleTypesSorted(t *testing.T) {
	got := Default().NozzleTypes()
	want := []NozzleType{NozzleFlatFan, NozzleFullCone, NozzleHollowCone, NozzleSpiral}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}

func TestEmissionLimit(t *testing.T) {
	lib := Default()
	tests := []struct {
		fw    Framework
		pt    PollutantType
		want  float64
		exist bool
	}{
		{FrameworkEU, SO2, 200, true},
		{FrameworkUS, SO2, 250, true},
		{FrameworkEU, HF, 1, true},
		{FrameworkUS, H2S, 0, false},
		{FrameworkEU, Cl2, 0, false},
		{"CN", SO2, 0, false},
	}
	for _, tt := range tests {
		got, ok := lib.EmissionLimit(tt.fw, tt.pt)
		if got != tt.want || ok != tt.exist {
			t.Errorf("%s/%s = %g, %v", tt.fw, tt.pt, got, ok)
		}
	}
}

func TestLibraryIsolated(t *testing.T) {
	src := map[PollutantType]Pollutant{SO2: {HenryMolM3Pa: 1}}
	lib := NewLibrary(src, nil, nil)
	src[SO2] = Pollutant{HenryMolM3Pa: 2}
	p, _ := lib.Pollutant(SO2)
	if p.HenryMolM3Pa != 1 {
		t.Errorf("library shares the caller's map")
	}
}

func TestParseFramework(t *testing.T) {
	if fw, err := ParseFramework("US"); err != nil || fw != FrameworkUS {
		t.Errorf("US: %v %v", fw, err)
	}
	if _, err := ParseFramework("eu"); !errors.Is(err, ErrUnknownFramework) {
		t.Errorf("eu: err = %v", err)
	}
}
