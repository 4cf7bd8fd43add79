// Package pipeline runs the persisted scoring flow: load or create a project,
// score it, store the evaluation and fan the result out to hermes and the
// ledger publisher.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MikeSquared-Agency/Guardian/internal/hermes"
	"github.com/MikeSquared-Agency/Guardian/internal/intake"
	"github.com/MikeSquared-Agency/Guardian/internal/ledger"
	"github.com/MikeSquared-Agency/Guardian/internal/metrics"
	"github.com/MikeSquared-Agency/Guardian/internal/scoring"
	"github.com/MikeSquared-Agency/Guardian/internal/store"
)

// LedgerSink accepts scores for asynchronous on-chain publishing.
type LedgerSink interface {
	Enqueue(job ledger.Job) bool
}

type Service struct {
	store   store.Store
	scorer  *scoring.Scorer
	hermes  hermes.Client
	ledger  LedgerSink
	metrics *metrics.Recorder
	logger  *slog.Logger
}

// New builds a Service. h and l may be nil.
func New(s store.Store, h hermes.Client, l LedgerSink, m *metrics.Recorder, logger *slog.Logger) *Service {
	if h == nil {
		h = hermes.NoopClient{}
	}
	return &Service{
		store:   s,
		scorer:  scoring.NewScorer(logger),
		hermes:  h,
		ledger:  l,
		metrics: m,
		logger:  logger,
	}
}

// Submission is a freshly created project with its first evaluation.
type Submission struct {
	Project  *store.Project         `json:"project"`
	Metadata *store.ProjectMetadata `json:"metadata"`
	Score    scoring.Result         `json:"score"`
}

// ProjectDetails is a project with its latest evaluation, if any.
type ProjectDetails struct {
	Project  *store.Project            `json:"project"`
	Metadata *store.ProjectMetadata    `json:"metadata"`
	Score    *store.ScoreRecord        `json:"score"`
	Config   *store.LaunchConfigRecord `json:"config"`
}

// Simulate scores without touching storage.
func (s *Service) Simulate(in scoring.Input) scoring.Result {
	res := s.scorer.Score(in)
	s.metrics.ObserveResult(metrics.SourceSimulate, res)
	return res
}

func (s *Service) SubmitProject(ctx context.Context, p *store.Project, m *store.ProjectMetadata) (*Submission, error) {
	if err := s.store.CreateProject(ctx, p, m); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	s.logger.Info("project created", "project_id", p.ID, "name", p.Name)
	s.publish(hermes.SubjectProjectCreated(p.ID.String()), hermes.ProjectCreatedEvent{
		ProjectID: p.ID.String(),
		Name:      p.Name,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
	})

	res := s.scorer.Score(intake.FromRecords(p, m))
	if _, err := s.persist(ctx, p.ID, res, metrics.SourceSubmit); err != nil {
		return nil, err
	}
	return &Submission{Project: p, Metadata: m, Score: res}, nil
}

// Rescore re-evaluates a stored project and records a new history entry.
func (s *Service) Rescore(ctx context.Context, projectID uuid.UUID) (*scoring.Result, error) {
	p, m, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, &intake.ValidationError{Field: "metadata", Message: "Project metadata not found"}
	}

	res := s.scorer.Score(intake.FromRecords(p, m))
	if _, err := s.persist(ctx, p.ID, res, metrics.SourceRescore); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *Service) persist(ctx context.Context, projectID uuid.UUID, res scoring.Result, source string) (*store.ScoreRecord, error) {
	saved, err := s.store.SaveScore(ctx, NewScoreWrite(projectID, res))
	if err != nil {
		return nil, fmt.Errorf("save score: %w", err)
	}
	s.metrics.ObserveResult(source, res)

	id := projectID.String()
	s.publish(hermes.SubjectScoreCalculated(id), hermes.ScoreCalculatedEvent{
		ProjectID:    id,
		ScoreID:      saved.ID.String(),
		Score:        res.Score,
		Grade:        string(res.Grade),
		FlagCount:    len(res.Flags),
		CalculatedAt: saved.CalculatedAt,
	})
	if s.ledger != nil {
		s.ledger.Enqueue(ledger.Job{ProjectID: id, Score: res.Score, Grade: res.Grade})
	}
	return saved, nil
}

func (s *Service) ProjectDetails(ctx context.Context, projectID uuid.UUID) (*ProjectDetails, error) {
	p, m, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	latest, err := s.store.LatestScore(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("latest score: %w", err)
	}
	cfg, err := s.store.GetLaunchConfig(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("launch config: %w", err)
	}
	return &ProjectDetails{Project: p, Metadata: m, Score: latest, Config: cfg}, nil
}

func (s *Service) UpdateStatus(ctx context.Context, projectID uuid.UUID, status store.ProjectStatus) (*store.Project, error) {
	p, err := s.store.UpdateProjectStatus(ctx, projectID, status)
	if err != nil {
		return nil, err
	}
	s.logger.Info("project status updated", "project_id", projectID, "status", status)
	s.publish(hermes.SubjectProjectStatus(projectID.String()), hermes.ProjectStatusEvent{
		ProjectID: projectID.String(),
		Status:    string(status),
	})
	return p, nil
}

func (s *Service) DeleteProject(ctx context.Context, projectID uuid.UUID) error {
	if err := s.store.DeleteProject(ctx, projectID); err != nil {
		return err
	}
	s.logger.Info("project deleted", "project_id", projectID)
	s.publish(hermes.SubjectProjectDeleted(projectID.String()), hermes.ProjectDeletedEvent{
		ProjectID: projectID.String(),
	})
	return nil
}

func (s *Service) publish(subject string, event interface{}) {
	if err := s.hermes.Publish(subject, event); err != nil {
		s.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}

// NewScoreWrite converts an evaluation into its persisted form.
func NewScoreWrite(projectID uuid.UUID, res scoring.Result) *store.ScoreWrite {
	b := res.Subscores
	w := &store.ScoreWrite{
		ProjectID: projectID,
		Score: store.ScoreRecord{
			ProjectID:            projectID,
			Score:                res.Score,
			Grade:                string(res.Grade),
			TokenomicsScore:      b.Tokenomics,
			VestingScore:         b.Vesting,
			DocumentationScore:   b.Documentation,
			TeamHistoryScore:     b.TeamHistory,
			CommunityScore:       b.Community,
			AuditScore:           b.Audit,
			LaunchReadinessScore: b.LaunchReadiness,
		},
		Flags: make([]store.FlagRecord, 0, len(res.Flags)),
		LaunchConfig: store.LaunchConfigRecord{
			ProjectID:      projectID,
			CapMin:         res.SuggestedConfig.CapMin,
			CapMax:         res.SuggestedConfig.CapMax,
			FeeTierPercent: decimal.NewFromFloat(res.SuggestedConfig.FeeTierPercent),
			AccessTier:     string(res.SuggestedConfig.AccessTier),
			Recommendation: res.Recommendation,
		},
	}
	for _, f := range res.Flags {
		w.Flags = append(w.Flags, store.FlagRecord{Text: f.Text, Severity: string(f.Severity)})
	}
	return w
}
