package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/MikeSquared-Agency/Guardian/internal/scoring"
)

// Score sources.
const (
	SourceSimulate = "simulate"
	SourceSubmit   = "submit"
	SourceRescore  = "rescore"
)

// Ledger publish outcomes.
const (
	LedgerPublished = "published"
	LedgerFailed    = "failed"
	LedgerDropped   = "dropped"
)

// Recorder owns the Guardian collectors. A nil *Recorder is valid and records
// nothing.
type Recorder struct {
	scores           *prometheus.CounterVec
	scoreValue       prometheus.Histogram
	riskFlags        *prometheus.CounterVec
	ledgerPublish    *prometheus.CounterVec
	validationErrors *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		scores: f.NewCounterVec(prometheus.CounterOpts{
			Name: "guardian_scores_total",
			Help: "Composite scores computed, by grade and source.",
		}, []string{"grade", "source"}),
		scoreValue: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "guardian_score_value",
			Help:    "Distribution of composite scores.",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		}),
		riskFlags: f.NewCounterVec(prometheus.CounterOpts{
			Name: "guardian_risk_flags_total",
			Help: "Risk flags raised, by severity.",
		}, []string{"severity"}),
		ledgerPublish: f.NewCounterVec(prometheus.CounterOpts{
			Name: "guardian_ledger_publish_total",
			Help: "Ledger relay publish attempts, by outcome.",
		}, []string{"outcome"}),
		validationErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "guardian_validation_errors_total",
			Help: "Rejected requests, by offending field.",
		}, []string{"field"}),
	}
}

func (r *Recorder) ObserveResult(source string, res scoring.Result) {
	if r == nil {
		return
	}
	r.scores.WithLabelValues(string(res.Grade), source).Inc()
	r.scoreValue.Observe(float64(res.Score))
	for _, f := range res.Flags {
		r.riskFlags.WithLabelValues(string(f.Severity)).Inc()
	}
}

func (r *Recorder) LedgerOutcome(outcome string) {
	if r == nil {
		return
	}
	r.ledgerPublish.WithLabelValues(outcome).Inc()
}

func (r *Recorder) ValidationFailed(field string) {
	if r == nil {
		return
	}
	if field == "" {
		field = "body"
	}
	r.validationErrors.WithLabelValues(field).Inc()
}
