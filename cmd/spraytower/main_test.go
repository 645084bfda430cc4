package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"Spraytower/internal/calc/premium/optimize"
	"Spraytower/internal/calc/props"
	"Spraytower/internal/calc/spraytower"
	"Spraytower/internal/calc/units"

	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/floats/scalar"
)

func run(t *testing.T, args ...string) *bytes.Buffer {
	t.Helper()
	var out bytes.Buffer
	root := newRoot()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out.String())
	}
	return &out
}

func TestEval(t *testing.T) {
	var res spraytower.Result
	if err := json.Unmarshal(run(t, "eval", "testdata/so2.toml").Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if !res.Compliance.LimitsMet || !scalar.EqualWithinRel(res.Performance.OutletMgNm3, 150, 1e-9) {
		t.Errorf("outlet %g compliant %v", res.Performance.OutletMgNm3, res.Compliance.LimitsMet)
	}
	if res.Performance.NozzleCount == nil {
		t.Errorf("nozzle count missing")
	}

	if err := json.Unmarshal(run(t, "eval", "--units", "imperial", "testdata/so2.toml").Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.UnitSystem != units.Imperial {
		t.Errorf("unit system = %s", res.UnitSystem)
	}
}

func TestOptimize(t *testing.T) {
	var out optimize.Output
	if err := json.Unmarshal(run(t, "optimize", "--max-iter", "10", "testdata/so2_low.toml").Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Iterations < 1 || out.Iterations > 10 {
		t.Errorf("iterations = %d", out.Iterations)
	}
	if out.OptimizedInput.Pollutant.Type != props.SO2 {
		t.Errorf("optimized input = %+v", out.OptimizedInput.Pollutant)
	}
}

func TestReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "so2.pdf")
	run(t, "report", "testdata/so2.toml", "-o", path)
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF-")) {
		t.Errorf("not a PDF")
	}
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "cases.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"pollutant", "inlet_mg_nm3", "target_efficiency", "flow_nm3_h", "temperature_c", "pressure_kpa", "lg_ratio", "gas_velocity_m_s", "droplet_diameter_mm"},
		{"SO2", 1500, 0.9, 20000, 40, 101.325, 0.015, 3, 1},
		{"HCl", 300, 0.99, 10000, 60, 101.3, 0.01, 2.5, 1.2},
	}
	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(in); err != nil {
		t.Fatal(err)
	}
	f.Close()

	out := filepath.Join(dir, "results.xlsx")
	run(t, "batch", in, "-o", out)
	res, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Close()
	got, err := res.GetRows(res.GetSheetName(0))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Errorf("rows = %d", len(got))
	}
}

func TestReadCaseRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[gas_stream]\nflow_nm3_h = -1.0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := readCase(path); err == nil {
		t.Error("invalid case accepted")
	}
}
