package report

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"Spraytower/internal/calc/gas"
	"Spraytower/internal/calc/props"
	"Spraytower/internal/calc/spraytower"
	"Spraytower/internal/calc/units"
)

func so2Case(eff float64) spraytower.Input {
	spiral := props.NozzleSpiral
	return spraytower.Input{
		Gas:       gas.Input{FlowNm3h: 20000, TemperatureC: 40, PressureKPa: 101.325},
		Pollutant: spraytower.Pollutant{Type: props.SO2, InletMgNm3: 1500, TargetEfficiency: eff},
		Tower:     spraytower.Tower{LGRatio: 0.015, GasVelocityMs: 3, DropletDiameterMM: 1, NozzleType: &spiral, NozzlePressureBar: 2},
		Settings:  spraytower.Settings{Framework: props.FrameworkEU},
	}
}

func TestRender(t *testing.T) {
	in := so2Case(0.9)
	res, err := spraytower.Evaluate(in)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []units.System{units.Metric, units.Imperial} {
		var buf bytes.Buffer
		doc := Document{Meta: Meta{Project: "Line 2", Author: "test"}, Input: in, Result: spraytower.Project(res, s), Log: []string{"initial design meets the emission limit"}}
		if err := Render(&buf, doc); err != nil {
			t.Fatalf("%s: %v", s, err)
		}
		if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
			t.Errorf("%s: output is not a PDF", s)
		}
	}
}

func TestHandlerGenerate(t *testing.T) {
	h := &Handler{Calculator: spraytower.New(props.Default())}
	for _, opt := range []bool{false, true} {
		body, _ := json.Marshal(Request{Meta: Meta{Title: "Scrubber"}, Input: so2Case(0.5), Optimize: opt})
		rec := httptest.NewRecorder()
		h.Generate(rec, httptest.NewRequest(http.MethodPost, "/api/user/tools/spraytower/report/pdf", bytes.NewReader(body)))
		if rec.Code != http.StatusOK {
			t.Fatalf("optimize=%v: status = %d: %s", opt, rec.Code, rec.Body)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
			t.Errorf("content type = %q", ct)
		}
	}

	rec := httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("nope"))))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}
