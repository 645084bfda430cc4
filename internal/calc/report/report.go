// Package report renders a spray-tower design as a PDF datasheet.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"Spraytower/internal/calc/spraytower"

	"github.com/phpdave11/gofpdf"
)

type Meta struct {
	Project string `json:"project"`
	Author  string `json:"author"`
	Title   string `json:"title"`
	Notes   string `json:"notes"`
}

// Document is everything printed on one datasheet. Log is the optimizer
// log and may be empty.
type Document struct {
	Meta   Meta
	Input  spraytower.Input
	Result spraytower.Result
	Log    []string
}

type row struct {
	label string
	value string
}

// Render writes doc as an A4 PDF to w.
func Render(w io.Writer, doc Document) error {
	if doc.Meta.Title == "" {
		doc.Meta.Title = "Spray Tower Datasheet"
	}
	res := doc.Result
	u := res.Units
	if u == nil {
		u = map[string]string{}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.Meta.Title, false)
	pdf.SetAuthor(doc.Meta.Author, false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, doc.Meta.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", doc.Meta.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", doc.Meta.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	in := doc.Input
	section(pdf, "Design basis", []row{
		{"Pollutant", string(in.Pollutant.Type)},
		{"Inlet concentration", num(in.Pollutant.InletMgNm3, "mg/Nm3")},
		{"Target efficiency", num(in.Pollutant.TargetEfficiency*100, "%")},
		{"Gas flow (normal)", num(in.Gas.FlowNm3h, "Nm3/h")},
		{"Gas temperature", num(in.Gas.TemperatureC, "C")},
		{"L/G ratio", num(in.Tower.LGRatio, "")},
		{"Droplet diameter", num(in.Tower.DropletDiameterMM, "mm")},
		{"Framework", string(in.Settings.Framework)},
	})
	section(pdf, "Tower", []row{
		{"Diameter", num(res.Sizing.DiameterM, u["length"])},
		{"Cross-section", num(res.Sizing.AreaM2, u["area"])},
		{"Height", num(res.Performance.HeightM, u["length"])},
		{"Volume", num(res.Performance.VolumeM3, u["volume"])},
		{"Residence time", num(res.Performance.ResidenceTimeS, "s")},
		{"Pressure drop", num(res.Performance.PressureDropPa, u["pressure_drop"])},
		{"Liquid rate", num(res.Sizing.LiquidM3h, u["liquid_flow"])},
		{"Pump power", num(res.Performance.PumpPowerKW, "kW")},
	})
	perf := []row{
		{"KGa", num(res.MassTransfer.KGaPerS, "1/s") + " (" + string(res.MassTransfer.KGaSource) + ")"},
		{"NTU", num(res.Performance.NTU, "")},
		{"Outlet concentration", num(res.Performance.OutletMgNm3, "mg/Nm3")},
		{"Reagent demand", num(res.Performance.ReagentMolH, "mol/h")},
		{"Droplet contact time", num(res.Droplet.ContactTimeS, "s")},
		{"Particulate (coarse/medium/fine)", fmt.Sprintf("%.1f / %.1f / %.1f %%",
			res.Particulate.Coarse*100, res.Particulate.Medium*100, res.Particulate.Fine*100)},
	}
	if res.Performance.NozzleCount != nil {
		perf = append(perf, row{"Nozzles", fmt.Sprintf("%d x %s", *res.Performance.NozzleCount, num(res.Performance.PerNozzleM3h, u["liquid_flow"]))})
	}
	section(pdf, "Performance", perf)

	comp := []row{{"Limits met", yesNo(res.Compliance.LimitsMet)}}
	if res.Compliance.LimitMgNm3 != nil {
		comp = append(comp, row{"Emission limit", num(*res.Compliance.LimitMgNm3, "mg/Nm3")})
	}
	comp = append(comp, row{"Pressure vessel code", res.Compliance.PressureVesselCode})
	if res.Compliance.SafetyClass != nil {
		comp = append(comp, row{"Safety class", *res.Compliance.SafetyClass})
	}
	section(pdf, "Compliance", comp)

	if len(res.Warnings) > 0 {
		text(pdf, "Warnings", res.Warnings)
	}
	if len(doc.Log) > 0 {
		text(pdf, "Optimization log", doc.Log)
	}
	if doc.Meta.Notes != "" {
		text(pdf, "Notes", []string{doc.Meta.Notes})
	}
	if len(u) > 0 {
		keys := make([]string, 0, len(u))
		for k := range u {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + u[k]
		}
		pdf.SetFont("Helvetica", "I", 8)
		pdf.MultiCell(0, 4, "Units ("+string(res.UnitSystem)+") "+strings.Join(parts, ", "), "", "L", false)
	}
	return pdf.Output(w)
}

func section(pdf *gofpdf.Fpdf, title string, rows []row) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(0, 7, title, "", 1, "L", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, r := range rows {
		pdf.CellFormat(80, 6, r.label, "B", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, r.value, "B", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func text(pdf *gofpdf.Fpdf, title string, lines []string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, title)
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 9)
	for _, l := range lines {
		pdf.MultiCell(0, 5, l, "", "L", false)
	}
	pdf.Ln(3)
}

func num(v float64, unit string) string {
	s := fmt.Sprintf("%.4g", v)
	if unit != "" {
		s += " " + unit
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
