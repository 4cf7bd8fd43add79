package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/MikeSquared-Agency/Guardian/internal/intake"
	"github.com/MikeSquared-Agency/Guardian/internal/metrics"
	"github.com/MikeSquared-Agency/Guardian/internal/pipeline"
	"github.com/MikeSquared-Agency/Guardian/internal/store"
)

type ScoresHandler struct {
	store   store.Store
	svc     *pipeline.Service
	metrics *metrics.Recorder
	logger  *slog.Logger
}

func NewScoresHandler(s store.Store, svc *pipeline.Service, m *metrics.Recorder, logger *slog.Logger) *ScoresHandler {
	return &ScoresHandler{store: s, svc: svc, metrics: m, logger: logger}
}

// Recalculate rescores a stored project and appends the result to its history.
func (h *ScoresHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseProjectID(w, r, "projectId", h.metrics)
	if !ok {
		return
	}
	res, err := h.svc.Rescore(r.Context(), id)
	if err != nil {
		writeFailure(w, h.logger, h.metrics, err)
		return
	}
	writeData(w, http.StatusOK, "Score recalculated successfully", map[string]interface{}{"score": res})
}

func (h *ScoresHandler) History(w http.ResponseWriter, r *http.Request) {
	id, ok := parseProjectID(w, r, "projectId", h.metrics)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	_, limit = intake.Pagination(1, limit)

	scores, err := h.store.ScoreHistory(r.Context(), id, limit)
	if err != nil {
		writeFailure(w, h.logger, h.metrics, err)
		return
	}
	if scores == nil {
		scores = []*store.ScoreRecord{}
	}
	writeData(w, http.StatusOK, "", map[string]interface{}{
		"scores": scores,
		"count":  len(scores),
	})
}
