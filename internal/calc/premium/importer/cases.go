package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"Spraytower/internal/calc/gas"
	"Spraytower/internal/calc/premium/batch"
	"Spraytower/internal/calc/props"
	"Spraytower/internal/calc/spraytower"
	"Spraytower/internal/calc/units"

	"github.com/xuri/excelize/v2"
)

// Columns of a case sheet. The first row is a header and is skipped.
// pollutant, inlet_mg_nm3, target_efficiency, flow_nm3_h, temperature_c,
// pressure_kpa, lg_ratio, gas_velocity_m_s, droplet_diameter_mm,
// then optional framework, unit_system, nozzle_type, nozzle_pressure_bar.
var Header = []string{
	"pollutant", "inlet_mg_nm3", "target_efficiency", "flow_nm3_h", "temperature_c",
	"pressure_kpa", "lg_ratio", "gas_velocity_m_s", "droplet_diameter_mm",
	"framework", "unit_system", "nozzle_type", "nozzle_pressure_bar",
}

const requiredColumns = 9

type RowError struct {
	Row int    `json:"row"`
	Err string `json:"error"`
}

// ReadCases parses the first sheet of an xlsx workbook into design inputs.
// Rows that do not parse are reported and skipped.
func ReadCases(r io.Reader) ([]spraytower.Input, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("empty sheet %q", sheet)
	}

	var cases []spraytower.Input
	var bad []RowError
	for i := 1; i < len(rows); i++ {
		in, err := parseRow(rows[i])
		if err != nil {
			bad = append(bad, RowError{Row: i + 1, Err: err.Error()})
			continue
		}
		cases = append(cases, in)
	}
	return cases, bad, nil
}

func parseRow(row []string) (spraytower.Input, error) {
	if len(row) < requiredColumns {
		return spraytower.Input{}, fmt.Errorf("bad row: %d of %d required columns", len(row), requiredColumns)
	}
	nums := make([]float64, requiredColumns)
	for c := 1; c < requiredColumns; c++ {
		v, err := toFloat(row[c])
		if err != nil {
			return spraytower.Input{}, fmt.Errorf("column %s: %w", Header[c], err)
		}
		nums[c] = v
	}
	in := spraytower.Input{
		Gas: gas.Input{FlowNm3h: nums[3], TemperatureC: nums[4], PressureKPa: nums[5]},
		Pollutant: spraytower.Pollutant{
			Type:             props.PollutantType(strings.TrimSpace(row[0])),
			InletMgNm3:       nums[1],
			TargetEfficiency: nums[2],
		},
		Tower: spraytower.Tower{LGRatio: nums[6], GasVelocityMs: nums[7], DropletDiameterMM: nums[8]},
	}
	if v := cell(row, 9); v != "" {
		in.Settings.Framework = props.Framework(v)
	}
	if v := cell(row, 10); v != "" {
		in.Settings.UnitSystem = units.System(v)
	}
	if v := cell(row, 11); v != "" {
		nt := props.NozzleType(v)
		in.Tower.NozzleType = &nt
	}
	if v := cell(row, 12); v != "" {
		p, err := toFloat(v)
		if err != nil {
			return spraytower.Input{}, fmt.Errorf("column %s: %w", Header[12], err)
		}
		in.Tower.NozzlePressureBar = p
	}
	return in, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

var resultHeader = []interface{}{
	"row", "pollutant", "outlet_mg_nm3", "limits_met", "diameter", "height", "pressure_drop",
	"liquid_rate", "ntu", "kga_per_s", "nozzle_count", "unit_system", "error",
}

// WriteResults writes one row per batch item to a new workbook.
func WriteResults(w io.Writer, cases []spraytower.Input, res batch.Result) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	if err := f.SetSheetRow(sheet, "A1", &resultHeader); err != nil {
		return err
	}
	for i, item := range res.Results {
		row := []interface{}{item.Index + 2, ""}
		if item.Index < len(cases) {
			row[1] = string(cases[item.Index].Pollutant.Type)
		}
		if r := item.Result; r != nil {
			count := ""
			if r.Performance.NozzleCount != nil {
				count = strconv.Itoa(*r.Performance.NozzleCount)
			}
			row = append(row,
				r.Performance.OutletMgNm3, r.Compliance.LimitsMet, r.Sizing.DiameterM, r.Performance.HeightM,
				r.Performance.PressureDropPa, r.Sizing.LiquidM3h, r.Performance.NTU, r.MassTransfer.KGaPerS,
				count, string(r.UnitSystem), strings.Join(r.Warnings, "; "))
		} else {
			row = append(row, "", "", "", "", "", "", "", "", "", "", item.Error)
		}
		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cellName, &row); err != nil {
			return err
		}
	}
	return f.Write(w)
}
