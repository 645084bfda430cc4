// Package history stores the designs a signed-in user evaluated and serves
// them back.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"Spraytower/internal/auth"
	"Spraytower/internal/repo"

	"github.com/gorilla/mux"
)

// Recorder saves designs for the user on the request context. Requests
// without a user are not recorded.
type Recorder struct {
	Store repo.DesignStore
}

func (rc *Recorder) SaveDesign(ctx context.Context, kind string, input, result any) error {
	userID, ok := auth.UserID(ctx)
	if !ok {
		return nil
	}
	in, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("encoding %s input: %w", kind, err)
	}
	out, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding %s result: %w", kind, err)
	}
	id, err := rc.Store.SaveDesign(ctx, repo.Design{UserID: userID, Kind: kind, Input: in, Result: out})
	if err != nil {
		return err
	}
	slog.Debug("design saved", "user", userID, "kind", kind, "id", id)
	return nil
}

type Handler struct {
	Store repo.DesignStore
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	list, err := h.Store.ListDesigns(r.Context(), userID, limit)
	if err != nil {
		slog.Error("list designs", "user", userID, "err", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	d, err := h.Store.GetDesign(r.Context(), userID, id)
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "Design not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("get design", "user", userID, "id", id, "err", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(d)
}
