package recommend

import (
	"encoding/json"
	"net/http"

	"Spraytower/internal/calc/props"
)

type Handler struct {
	Lib props.Library
}

func (h *Handler) Nozzle(w http.ResponseWriter, r *http.Request) {
	var input NozzleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Nozzles(h.Lib, input)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
