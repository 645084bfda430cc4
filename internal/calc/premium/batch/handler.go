package batch

import (
	"encoding/json"
	"net/http"

	"Spraytower/internal/calc/spraytower"
)

type Handler struct {
	Calc *spraytower.Calculator
}

func (h *Handler) SprayTower(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(h.Calc, input)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
