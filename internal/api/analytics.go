package api

import (
	"log/slog"
	"net/http"

	"github.com/MikeSquared-Agency/Guardian/internal/store"
)

type AnalyticsHandler struct {
	store  store.Store
	logger *slog.Logger
}

func NewAnalyticsHandler(s store.Store, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{store: s, logger: logger}
}

func (h *AnalyticsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	a, err := h.store.GetAnalytics(r.Context())
	if err != nil {
		writeFailure(w, h.logger, nil, err)
		return
	}
	writeData(w, http.StatusOK, "", a)
}

func (h *AnalyticsHandler) Flags(w http.ResponseWriter, r *http.Request) {
	fs, err := h.store.GetFlagStats(r.Context())
	if err != nil {
		writeFailure(w, h.logger, nil, err)
		return
	}
	writeData(w, http.StatusOK, "", fs)
}
