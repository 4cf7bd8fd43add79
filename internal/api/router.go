package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Guardian/internal/config"
	"github.com/MikeSquared-Agency/Guardian/internal/ledger"
	"github.com/MikeSquared-Agency/Guardian/internal/metrics"
	"github.com/MikeSquared-Agency/Guardian/internal/pipeline"
	"github.com/MikeSquared-Agency/Guardian/internal/store"
)

// NewRouter builds the public API. lc may be nil when the ledger relay is
// disabled; the contract routes then answer 503.
func NewRouter(s store.Store, svc *pipeline.Service, lc ledger.Client, m *metrics.Recorder, cfg config.ServerConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(ClientAddressMiddleware(cfg.TrustProxyHeaders))
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(cfg.RateLimitPerMinute))

	simulate := NewSimulateHandler(svc, m, logger)
	projects := NewProjectsHandler(s, svc, m, logger)
	scores := NewScoresHandler(s, svc, m, logger)
	analytics := NewAnalyticsHandler(s, logger)
	contract := NewContractHandler(lc, m, logger)
	health := NewHealthHandler(s, logger)
	docs := NewDocsHandler(logger)

	r.Get("/health", health.Check)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", health.Check)
		r.Get("/docs", docs.HTML)
		r.Get("/docs/json", docs.JSON)

		r.Post("/simulate", simulate.Simulate)

		r.Get("/projects", projects.List)
		r.Post("/projects", projects.Create)
		r.Get("/projects/{id}", projects.Get)
		r.Patch("/projects/{id}/status", projects.UpdateStatus)
		r.Delete("/projects/{id}", projects.Delete)

		r.Post("/scores/{projectId}", scores.Recalculate)
		r.Get("/scores/{projectId}/history", scores.History)

		r.Get("/analytics", analytics.Overview)
		r.Get("/analytics/flags", analytics.Flags)

		r.Get("/contract/score/{projectId}", contract.Score)
		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminToken))
			r.Post("/contract/set-score", contract.SetScore)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, CodeNotFound, "Route "+r.Method+" "+r.URL.Path+" not found", "")
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
