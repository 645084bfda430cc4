package optimize

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"Spraytower/internal/calc/spraytower"
)

type Request struct {
	Input         spraytower.Input `json:"input"`
	MaxIterations int              `json:"max_iterations"`
}

type Handler struct {
	Eval          Evaluator
	MaxIterations int
	Saver         spraytower.Saver
}

func (h *Handler) Optimize(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := spraytower.Validate(req.Input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	opt := New(h.Eval, Budget(req.MaxIterations, h.MaxIterations))
	tr, err := opt.Run(r.Context(), req.Input)
	if err != nil {
		slog.Warn("compliance optimization failed", "err", err)
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	out := tr.Output()
	slog.Info("compliance optimization", "outcome", out.Outcome, "iterations", out.Iterations)
	if h.Saver != nil {
		if err := h.Saver.SaveDesign(r.Context(), "optimize", out.OptimizedInput, out); err != nil {
			slog.Error("saving design", "err", err)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}
