package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/Guardian/internal/intake"
	"github.com/MikeSquared-Agency/Guardian/internal/ledger"
	"github.com/MikeSquared-Agency/Guardian/internal/metrics"
	"github.com/MikeSquared-Agency/Guardian/internal/scoring"
)

// ContractHandler exposes the on-chain score registry. client is nil when the
// ledger relay is disabled.
type ContractHandler struct {
	client  ledger.Client
	metrics *metrics.Recorder
	logger  *slog.Logger
}

func NewContractHandler(c ledger.Client, m *metrics.Recorder, logger *slog.Logger) *ContractHandler {
	return &ContractHandler{client: c, metrics: m, logger: logger}
}

func (h *ContractHandler) enabled(w http.ResponseWriter) bool {
	if h.client == nil {
		writeError(w, http.StatusServiceUnavailable, CodeExternalAPI, "Ledger relay is not configured", "")
		return false
	}
	return true
}

// Score reads the on-chain score. A failed read means "not on chain" and
// returns null data rather than an error.
func (h *ContractHandler) Score(w http.ResponseWriter, r *http.Request) {
	if !h.enabled(w) {
		return
	}
	projectID := chi.URLParam(r, "projectId")
	s, err := h.client.GetScore(r.Context(), projectID)
	if err != nil {
		h.logger.Warn("contract read failed", "project_id", projectID, "error", err)
		writeData(w, http.StatusOK, "", nil)
		return
	}
	writeData(w, http.StatusOK, "", s)
}

// SetScore writes a score straight to the relay, bypassing the publisher queue.
func (h *ContractHandler) SetScore(w http.ResponseWriter, r *http.Request) {
	if !h.enabled(w) {
		return
	}
	var req intake.ContractScoreRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeFailure(w, h.logger, h.metrics, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeFailure(w, h.logger, h.metrics, err)
		return
	}

	receipt, err := h.client.SetScore(r.Context(), req.ProjectID, *req.Score, scoring.Grade(req.Grade))
	if err != nil {
		h.metrics.LedgerOutcome(metrics.LedgerFailed)
		h.logger.Error("contract write failed", "project_id", req.ProjectID, "error", err)
		writeError(w, http.StatusBadGateway, CodeExternalAPI, "Failed to update contract", "")
		return
	}
	h.metrics.LedgerOutcome(metrics.LedgerPublished)
	writeData(w, http.StatusOK, "Score update transaction broadcasted", receipt)
}
