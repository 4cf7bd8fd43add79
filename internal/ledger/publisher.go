package ledger

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/MikeSquared-Agency/Guardian/internal/hermes"
	"github.com/MikeSquared-Agency/Guardian/internal/metrics"
	"github.com/MikeSquared-Agency/Guardian/internal/scoring"
)

// Job is one score to mirror on chain.
type Job struct {
	ProjectID string
	Score     int
	Grade     scoring.Grade
}

// Publisher mirrors scores to the ledger from a single background worker.
// Enqueue never blocks; a full queue drops the job. Relay failures are logged,
// counted and announced on hermes, and never reach the caller.
type Publisher struct {
	client  Client
	hermes  hermes.Client
	metrics *metrics.Recorder
	logger  *slog.Logger
	timeout time.Duration
	queue   chan Job

	// mu orders sends against Stop so nothing lands after the final drain.
	mu     sync.Mutex
	closed bool

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func NewPublisher(c Client, h hermes.Client, m *metrics.Recorder, queueSize int, timeout time.Duration, logger *slog.Logger) *Publisher {
	if h == nil {
		h = hermes.NoopClient{}
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Publisher{
		client:  c,
		hermes:  h,
		metrics: m,
		logger:  logger,
		timeout: timeout,
		queue:   make(chan Job, queueSize),
		stopCh:  make(chan struct{}),
	}
}

func (p *Publisher) Start(ctx context.Context) {
	p.wg.Add(1)
	go p.run(ctx)
}

// Stop halts the worker and waits for an in-flight publish to finish. Jobs
// still queued are discarded.
func (p *Publisher) Stop() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.stopOnce.Do(func() { close(p.stopCh) })
	p.wg.Wait()

	for {
		select {
		case job := <-p.queue:
			p.metrics.LedgerOutcome(metrics.LedgerDropped)
			p.logger.Warn("ledger publish discarded on shutdown", "project_id", job.ProjectID)
		default:
			return
		}
	}
}

// Enqueue reports whether the job was accepted.
func (p *Publisher) Enqueue(job Job) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		p.metrics.LedgerOutcome(metrics.LedgerDropped)
		return false
	}

	select {
	case p.queue <- job:
		return true
	default:
		p.metrics.LedgerOutcome(metrics.LedgerDropped)
		p.logger.Warn("ledger queue full, dropping publish", "project_id", job.ProjectID, "score", job.Score)
		return false
	}
}

func (p *Publisher) run(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-p.stopCh:
			return
		case <-ctx.Done():
			return
		case job := <-p.queue:
			p.publish(ctx, job)
		}
	}
}

func (p *Publisher) publish(ctx context.Context, job Job) {
	cctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	receipt, err := p.client.SetScore(cctx, job.ProjectID, job.Score, job.Grade)
	if err != nil {
		p.metrics.LedgerOutcome(metrics.LedgerFailed)
		p.logger.Warn("ledger publish failed", "project_id", job.ProjectID, "error", err)
		_ = p.hermes.Publish(hermes.SubjectLedgerFailed(job.ProjectID), hermes.LedgerFailedEvent{
			ProjectID: job.ProjectID,
			Score:     job.Score,
			Grade:     string(job.Grade),
			Error:     err.Error(),
		})
		return
	}

	p.metrics.LedgerOutcome(metrics.LedgerPublished)
	p.logger.Info("score published to ledger", "project_id", job.ProjectID, "tx_id", receipt.TxID)
	_ = p.hermes.Publish(hermes.SubjectLedgerPublished(job.ProjectID), hermes.LedgerPublishedEvent{
		ProjectID: job.ProjectID,
		Score:     job.Score,
		Grade:     string(job.Grade),
		TxHash:    receipt.TxID,
	})
}
