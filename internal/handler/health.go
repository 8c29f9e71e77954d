package handler

import (
	"context"
	"log/slog"
	"net/http"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store   Pinger
	backend string
}

func NewHealthHandler(store Pinger, backend string) *HealthHandler {
	return &HealthHandler{store: store, backend: backend}
}

type healthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		slog.WarnContext(r.Context(), "health check failed", "store", h.backend, "err", err)
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unhealthy", Store: h.backend})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Store: h.backend})
}
