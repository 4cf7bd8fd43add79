package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/MikeSquared-Agency/Guardian/internal/store"
)

// Version is reported by the health and docs endpoints.
const Version = "1.0.0"

const healthPingTimeout = 2 * time.Second

type healthStatus struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Database  string    `json:"database"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

type HealthHandler struct {
	store  store.Store
	logger *slog.Logger
}

func NewHealthHandler(s store.Store, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{store: s, logger: logger}
}

// Check answers 200 while the database responds and 503 with a degraded
// status otherwise.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	st := healthStatus{
		Status:    "ok",
		Message:   "Guardian API is running",
		Database:  "connected",
		Version:   Version,
		Timestamp: time.Now().UTC(),
	}
	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn("health check: database unavailable", "error", err)
		st.Status = "degraded"
		st.Message = "API is running but database is unavailable"
		st.Database = "disconnected"
		writeJSON(w, http.StatusServiceUnavailable, successBody{Success: false, Data: st, Timestamp: st.Timestamp})
		return
	}
	writeData(w, http.StatusOK, "", st)
}
