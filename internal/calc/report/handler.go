package report

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"Spraytower/internal/calc/premium/optimize"
	"Spraytower/internal/calc/spraytower"
)

type Request struct {
	Meta
	Input         spraytower.Input `json:"input"`
	Optimize      bool             `json:"optimize"`
	MaxIterations int              `json:"max_iterations"`
}

type Handler struct {
	Calculator    *spraytower.Calculator
	MaxIterations int
}

// Generate evaluates the posted design, optionally optimizes it first, and
// streams the datasheet.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := spraytower.Validate(req.Input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	doc := Document{Meta: req.Meta, Input: req.Input}
	if req.Optimize {
		tr, err := optimize.New(h.Calculator, optimize.Budget(req.MaxIterations, h.MaxIterations)).Run(r.Context(), req.Input)
		if err != nil {
			http.Error(w, "Calculation error", http.StatusBadRequest)
			return
		}
		doc.Input, doc.Result, doc.Log = tr.BestInput, tr.Best, tr.Log
	} else {
		res, err := h.Calculator.Calculate(req.Input)
		if err != nil {
			http.Error(w, "Calculation error", http.StatusBadRequest)
			return
		}
		doc.Result = res
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"spraytower.pdf\"")
	if err := Render(w, doc); err != nil {
		slog.Error("rendering datasheet", "err", err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}
