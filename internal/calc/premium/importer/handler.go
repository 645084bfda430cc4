package importer

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"Spraytower/internal/calc/premium/batch"
	"Spraytower/internal/calc/spraytower"
)

type Handler struct {
	Calc *spraytower.Calculator
}

type ImportResult struct {
	Count   int          `json:"count"`
	Results batch.Result `json:"results"`
	Skipped []RowError   `json:"skipped,omitempty"`
}

// SprayTower evaluates every case row of an uploaded workbook. With ?format=xlsx
// the results come back as a workbook instead of JSON.
func (h *Handler) SprayTower(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	cases, skipped, err := ReadCases(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	if len(cases) == 0 {
		http.Error(w, "No valid rows", http.StatusBadRequest)
		return
	}
	res, err := batch.Calculate(h.Calc, batch.Input{Items: cases})
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	slog.Info("imported cases", "count", len(cases), "skipped", len(skipped), "failed", res.Failed)

	if r.URL.Query().Get("format") == "xlsx" {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename=\"spraytower-results.xlsx\"")
		if err := WriteResults(w, cases, res); err != nil {
			slog.Error("writing results workbook", "err", err)
		}
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ImportResult{Count: len(cases), Results: res, Skipped: skipped})
}
