package handler

import (
	"context"
	"net/http"
)

// Pinger checks storage liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health reports service and database health.
type Health struct {
	db Pinger
}

// NewHealth creates a new Health handler.
func NewHealth(db Pinger) *Health {
	return &Health{db: db}
}

// Check responds 200 when the database is reachable.
// GET /health
func (h *Health) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
