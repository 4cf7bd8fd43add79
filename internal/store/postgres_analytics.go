package store

import (
	"context"
	"strings"
)

// latestScores restricts scores to each project's most recent evaluation.
const latestScores = `
	SELECT DISTINCT ON (project_id) project_id, score, grade
	FROM scores
	ORDER BY project_id, calculated_at DESC`

func (s *PostgresStore) GetAnalytics(ctx context.Context) (*Analytics, error) {
	a := &Analytics{
		Distribution:         map[string]int{"green": 0, "yellow": 0, "red": 0},
		StatusCounts:         map[string]int{},
		DetailedDistribution: []GradeStats{},
	}

	rows, err := s.pool.Query(ctx, `
		SELECT grade, COUNT(*), ROUND(AVG(score), 2)::float8, MIN(score), MAX(score)
		FROM (`+latestScores+`) latest
		GROUP BY grade
		ORDER BY CASE grade WHEN 'Green' THEN 1 WHEN 'Yellow' THEN 2 ELSE 3 END`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var g GradeStats
		if err := rows.Scan(&g.Grade, &g.Count, &g.AvgScore, &g.MinScore, &g.MaxScore); err != nil {
			rows.Close()
			return nil, err
		}
		a.Distribution[strings.ToLower(g.Grade)] = g.Count
		a.DetailedDistribution = append(a.DetailedDistribution, g)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM projects`).Scan(&a.TotalProjects); err != nil {
		return nil, err
	}

	rows, err = s.pool.Query(ctx, `SELECT status, COUNT(*) FROM projects GROUP BY status`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			rows.Close()
			return nil, err
		}
		a.StatusCounts[status] = n
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = s.pool.QueryRow(ctx, `
		SELECT COALESCE(ROUND(AVG(score), 2), 0)::float8 FROM (`+latestScores+`) latest`,
	).Scan(&a.AvgScore)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *PostgresStore) GetFlagStats(ctx context.Context) (*FlagStats, error) {
	fs := &FlagStats{BySeverity: map[string]int{}, MostCommon: []FlagCount{}}

	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM risk_flags`).Scan(&fs.TotalFlags); err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, `SELECT severity, COUNT(*) FROM risk_flags GROUP BY severity`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var sev string
		var n int
		if err := rows.Scan(&sev, &n); err != nil {
			rows.Close()
			return nil, err
		}
		fs.BySeverity[sev] = n
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.pool.Query(ctx, `
		SELECT flag_text, COUNT(*) AS n FROM risk_flags
		GROUP BY flag_text ORDER BY n DESC, flag_text LIMIT 10`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var fc FlagCount
		if err := rows.Scan(&fc.Text, &fc.Count); err != nil {
			return nil, err
		}
		fs.MostCommon = append(fs.MostCommon, fc)
	}
	return fs, rows.Err()
}
