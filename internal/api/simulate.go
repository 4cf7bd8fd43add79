package api

import (
	"log/slog"
	"net/http"

	"github.com/MikeSquared-Agency/Guardian/internal/intake"
	"github.com/MikeSquared-Agency/Guardian/internal/metrics"
	"github.com/MikeSquared-Agency/Guardian/internal/pipeline"
)

type SimulateHandler struct {
	svc     *pipeline.Service
	metrics *metrics.Recorder
	logger  *slog.Logger
}

func NewSimulateHandler(svc *pipeline.Service, m *metrics.Recorder, logger *slog.Logger) *SimulateHandler {
	return &SimulateHandler{svc: svc, metrics: m, logger: logger}
}

// Simulate scores a hypothetical project. Nothing is persisted or published.
func (h *SimulateHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req intake.SimulateRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeFailure(w, h.logger, h.metrics, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeFailure(w, h.logger, h.metrics, err)
		return
	}

	writeData(w, http.StatusOK, "", h.svc.Simulate(intake.FromSimulation(&req)))
}
