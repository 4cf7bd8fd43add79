package scoring

import (
	"log/slog"
)

// Scorer composes the seven dimension evaluators into a graded result.
// It holds no mutable state and is safe for concurrent use.
type Scorer struct {
	logger *slog.Logger
}

// NewScorer creates a Scorer. A nil logger uses slog.Default.
func NewScorer(logger *slog.Logger) *Scorer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scorer{logger: logger}
}

// Score evaluates one project. The same input always yields the same result.
func (s *Scorer) Score(in Input) Result {
	sub := Evaluate(in)
	s.logger.Debug("dimension scores",
		"project", in.Name,
		"tokenomics", sub.Tokenomics,
		"vesting", sub.Vesting,
		"documentation", sub.Documentation,
		"team_history", sub.TeamHistory,
		"community", sub.Community,
		"audit", sub.Audit,
		"launch_readiness", sub.LaunchReadiness,
	)

	total := sub.Total()
	if total < 0 {
		total = 0
	}
	if total > MaxScore {
		total = MaxScore
	}

	grade := GradeFor(total)
	flags := Flags(in)

	s.logger.Info("composite score calculated",
		"project", in.Name,
		"score", total,
		"grade", grade,
		"flag_count", len(flags),
	)

	return Result{
		Score:           total,
		Grade:           grade,
		Subscores:       sub,
		Flags:           flags,
		Recommendation:  RecommendationFor(grade),
		SuggestedConfig: LaunchConfigFor(grade),
	}
}
