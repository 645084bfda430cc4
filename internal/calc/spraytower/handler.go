package spraytower

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"Spraytower/internal/calc/props"
)

// Saver persists an evaluated design for the user in ctx.
type Saver interface {
	SaveDesign(ctx context.Context, kind string, input, result any) error
}

type Handler struct {
	Calculator *Calculator
	Saver      Saver
}

func NewHandler(calc *Calculator, saver Saver) *Handler {
	if calc == nil {
		calc = New(props.Default())
	}
	return &Handler{Calculator: calc, Saver: saver}
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := Validate(input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := h.Calculator.Calculate(input)
	if err != nil {
		slog.Warn("spray tower calculation failed", "err", err)
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	if h.Saver != nil {
		if err := h.Saver.SaveDesign(r.Context(), "calc", input, res); err != nil {
			slog.Error("saving design", "err", err)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
