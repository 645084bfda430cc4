package recommend

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"Spraytower/internal/calc/props"
)

func TestNozzlesOrderedByCount(t *testing.T) {
	res, err := Nozzles(props.Default(), NozzleInput{LiquidM3h: 100, NozzlePressureBar: 4, DropletDiameterMM: 1})
	if err != nil {
		t.Fatal(err)
	}
	// flat-fan covers 0.2-1.5 mm and 1-15 bar, so every family qualifies at 1 mm, 4 bar
	if len(res.Candidates) != 4 || len(res.Rejected) != 0 {
		t.Fatalf("candidates = %+v rejected = %v", res.Candidates, res.Rejected)
	}
	first := res.Candidates[0]
	if first.Type != props.NozzleSpiral || first.PerNozzleM3h != 4.8 || first.Count != 21 {
		t.Errorf("first = %+v", first)
	}
	for i := 1; i < len(res.Candidates); i++ {
		if res.Candidates[i].Count < res.Candidates[i-1].Count {
			t.Errorf("not sorted: %+v", res.Candidates)
		}
	}
}

func TestNozzlesFiltersRanges(t *testing.T) {
	res, err := Nozzles(props.Default(), NozzleInput{LiquidM3h: 10, NozzlePressureBar: 8, DropletDiameterMM: 0.1})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Candidates) != 0 {
		t.Errorf("candidates = %+v", res.Candidates)
	}
	if len(res.Rejected) != 4 {
		t.Errorf("rejected = %v", res.Rejected)
	}
}

func TestNozzlesRejectsNoLiquid(t *testing.T) {
	if _, err := Nozzles(props.Default(), NozzleInput{}); err != ErrNoLiquid {
		t.Errorf("err = %v", err)
	}
}

func TestHandlerNozzle(t *testing.T) {
	h := &Handler{Lib: props.Default()}
	body, _ := json.Marshal(NozzleInput{LiquidM3h: 50})
	rec := httptest.NewRecorder()
	h.Nozzle(rec, httptest.NewRequest(http.MethodPost, "/api/user/tools-premium/nozzle/recommend", bytes.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var res NozzleResult
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	// 2 bar default is inside every family's range
	if len(res.Candidates) != 4 {
		t.Errorf("candidates = %+v", res.Candidates)
	}
}
