package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const projectColumns = `id, name, COALESCE(description, ''), COALESCE(website_url, ''),
	COALESCE(whitepaper_url, ''), COALESCE(github_url, ''), COALESCE(twitter_handle, ''),
	COALESCE(discord_invite, ''), status, created_at, updated_at`

const metadataColumns = `id, project_id, team_allocation_percent::float8, team_vesting_months,
	COALESCE(founder_wallet_address, ''), has_founder_locks, supply_distribution_fair,
	total_supply, initial_circulating_supply, extra_metadata, created_at, updated_at`

const scoreColumns = `id, project_id, score, grade, tokenomics_score, vesting_score,
	documentation_score, team_history_score, community_score, audit_score,
	launch_readiness_score, calculated_at`

func scanProject(row pgx.Row) (*Project, error) {
	p := &Project{}
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.WebsiteURL, &p.WhitepaperURL,
		&p.GithubURL, &p.TwitterHandle, &p.DiscordInvite, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func scanScore(row pgx.Row) (*ScoreRecord, error) {
	r := &ScoreRecord{}
	err := row.Scan(&r.ID, &r.ProjectID, &r.Score, &r.Grade, &r.TokenomicsScore, &r.VestingScore,
		&r.DocumentationScore, &r.TeamHistoryScore, &r.CommunityScore, &r.AuditScore,
		&r.LaunchReadinessScore, &r.CalculatedAt)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s *PostgresStore) CreateProject(ctx context.Context, p *Project, m *ProjectMetadata) error {
	extra := m.Extra
	if extra == nil {
		extra = &ExtraMetadata{}
	}
	extraJSON, err := json.Marshal(extra)
	if err != nil {
		return fmt.Errorf("encode extra metadata: %w", err)
	}
	if p.Status == "" {
		p.Status = ProjectStatusDraft
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO projects (name, description, website_url, whitepaper_url, github_url,
			twitter_handle, discord_invite, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		p.Name, nullIfEmpty(p.Description), nullIfEmpty(p.WebsiteURL), nullIfEmpty(p.WhitepaperURL),
		nullIfEmpty(p.GithubURL), nullIfEmpty(p.TwitterHandle), nullIfEmpty(p.DiscordInvite), p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}

	m.ProjectID = p.ID
	err = tx.QueryRow(ctx, `
		INSERT INTO project_metadata (project_id, team_allocation_percent, team_vesting_months,
			founder_wallet_address, has_founder_locks, supply_distribution_fair,
			total_supply, initial_circulating_supply, extra_metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`,
		m.ProjectID, m.TeamAllocationPercent, m.TeamVestingMonths,
		nullIfEmpty(m.FounderWalletAddress), m.HasFounderLocks, m.SupplyDistributionFair,
		m.TotalSupply, m.InitialCirculatingSupply, extraJSON,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert metadata: %w", err)
	}

	return tx.Commit(ctx)
}

// GetProject returns ErrNotFound when the project does not exist. The metadata
// is nil for projects created without it.
func (s *PostgresStore) GetProject(ctx context.Context, id uuid.UUID) (*Project, *ProjectMetadata, error) {
	p, err := scanProject(s.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	m := &ProjectMetadata{}
	var extraJSON []byte
	err = s.pool.QueryRow(ctx, `SELECT `+metadataColumns+` FROM project_metadata WHERE project_id = $1`, id).Scan(
		&m.ID, &m.ProjectID, &m.TeamAllocationPercent, &m.TeamVestingMonths,
		&m.FounderWalletAddress, &m.HasFounderLocks, &m.SupplyDistributionFair,
		&m.TotalSupply, &m.InitialCirculatingSupply, &extraJSON, &m.CreatedAt, &m.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return p, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	if len(extraJSON) > 0 {
		extra := &ExtraMetadata{}
		if err := json.Unmarshal(extraJSON, extra); err != nil {
			return nil, nil, fmt.Errorf("decode extra metadata: %w", err)
		}
		m.Extra = extra
	}
	return p, m, nil
}

func (s *PostgresStore) ListProjects(ctx context.Context, filter ProjectFilter) ([]*Project, int, error) {
	where := ""
	args := []interface{}{}
	if filter.Status != nil {
		where = " WHERE status = $1"
		args = append(args, string(*filter.Status))
	}

	var total int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM projects`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	query := `SELECT ` + projectColumns + ` FROM projects` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, filter.Offset)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var projects []*Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, err
		}
		projects = append(projects, p)
	}
	return projects, total, rows.Err()
}

func (s *PostgresStore) UpdateProjectStatus(ctx context.Context, id uuid.UUID, status ProjectStatus) (*Project, error) {
	p, err := scanProject(s.pool.QueryRow(ctx, `
		UPDATE projects SET status = $1, updated_at = NOW() WHERE id = $2
		RETURNING `+projectColumns, string(status), id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (s *PostgresStore) DeleteProject(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveScore persists one evaluation in a single transaction. Retrying after a
// failure is safe: nothing is visible until commit.
func (s *PostgresStore) SaveScore(ctx context.Context, w *ScoreWrite) (*ScoreRecord, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	sc := w.Score
	sc.ProjectID = w.ProjectID
	err = tx.QueryRow(ctx, `
		INSERT INTO scores (project_id, score, grade, tokenomics_score, vesting_score,
			documentation_score, team_history_score, community_score, audit_score,
			launch_readiness_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, calculated_at`,
		sc.ProjectID, sc.Score, sc.Grade, sc.TokenomicsScore, sc.VestingScore,
		sc.DocumentationScore, sc.TeamHistoryScore, sc.CommunityScore, sc.AuditScore,
		sc.LaunchReadinessScore,
	).Scan(&sc.ID, &sc.CalculatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("insert score: %w", err)
	}

	sc.Flags = make([]FlagRecord, 0, len(w.Flags))
	if len(w.Flags) > 0 {
		batch := &pgx.Batch{}
		for i, f := range w.Flags {
			batch.Queue(`
				INSERT INTO risk_flags (score_id, position, flag_text, severity)
				VALUES ($1, $2, $3, $4)
				RETURNING id, created_at`, sc.ID, i, f.Text, f.Severity)
		}
		br := tx.SendBatch(ctx, batch)
		for _, f := range w.Flags {
			f.ScoreID = sc.ID
			if err := br.QueryRow().Scan(&f.ID, &f.CreatedAt); err != nil {
				_ = br.Close()
				return nil, fmt.Errorf("insert risk flag: %w", err)
			}
			sc.Flags = append(sc.Flags, f)
		}
		if err := br.Close(); err != nil {
			return nil, fmt.Errorf("insert risk flags: %w", err)
		}
	}

	lc := w.LaunchConfig
	_, err = tx.Exec(ctx, `
		INSERT INTO launch_configs (project_id, score_id, cap_min, cap_max, fee_tier_percent,
			access_tier, recommendation)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (project_id) DO UPDATE SET
			score_id = EXCLUDED.score_id,
			cap_min = EXCLUDED.cap_min,
			cap_max = EXCLUDED.cap_max,
			fee_tier_percent = EXCLUDED.fee_tier_percent,
			access_tier = EXCLUDED.access_tier,
			recommendation = EXCLUDED.recommendation,
			created_at = NOW()`,
		w.ProjectID, sc.ID, lc.CapMin, lc.CapMax, lc.FeeTierPercent.String(), lc.AccessTier, lc.Recommendation,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert launch config: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &sc, nil
}

// LatestScore returns nil, nil when the project has never been scored.
func (s *PostgresStore) LatestScore(ctx context.Context, projectID uuid.UUID) (*ScoreRecord, error) {
	r, err := scanScore(s.pool.QueryRow(ctx, `
		SELECT `+scoreColumns+` FROM scores
		WHERE project_id = $1 ORDER BY calculated_at DESC LIMIT 1`, projectID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if r.Flags, err = s.flagsForScore(ctx, r.ID); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *PostgresStore) ScoreHistory(ctx context.Context, projectID uuid.UUID, limit int) ([]*ScoreRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+scoreColumns+` FROM scores
		WHERE project_id = $1 ORDER BY calculated_at DESC LIMIT $2`, projectID, limit)
	if err != nil {
		return nil, err
	}
	var scores []*ScoreRecord
	for rows.Next() {
		r, err := scanScore(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		scores = append(scores, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, r := range scores {
		if r.Flags, err = s.flagsForScore(ctx, r.ID); err != nil {
			return nil, err
		}
	}
	return scores, nil
}

func (s *PostgresStore) flagsForScore(ctx context.Context, scoreID uuid.UUID) ([]FlagRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, score_id, flag_text, severity, created_at
		FROM risk_flags WHERE score_id = $1 ORDER BY position`, scoreID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flags := []FlagRecord{}
	for rows.Next() {
		var f FlagRecord
		if err := rows.Scan(&f.ID, &f.ScoreID, &f.Text, &f.Severity, &f.CreatedAt); err != nil {
			return nil, err
		}
		flags = append(flags, f)
	}
	return flags, rows.Err()
}

// GetLaunchConfig returns nil, nil when no configuration has been recorded.
func (s *PostgresStore) GetLaunchConfig(ctx context.Context, projectID uuid.UUID) (*LaunchConfigRecord, error) {
	lc := &LaunchConfigRecord{}
	var scoreID *uuid.UUID
	var fee string
	var recommendation *string
	err := s.pool.QueryRow(ctx, `
		SELECT id, project_id, score_id, cap_min, cap_max, fee_tier_percent::text,
			access_tier, recommendation, created_at
		FROM launch_configs WHERE project_id = $1`, projectID,
	).Scan(&lc.ID, &lc.ProjectID, &scoreID, &lc.CapMin, &lc.CapMax, &fee,
		&lc.AccessTier, &recommendation, &lc.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if scoreID != nil {
		lc.ScoreID = *scoreID
	}
	if recommendation != nil {
		lc.Recommendation = *recommendation
	}
	if lc.FeeTierPercent, err = decimal.NewFromString(fee); err != nil {
		return nil, fmt.Errorf("decode fee tier: %w", err)
	}
	return lc, nil
}
