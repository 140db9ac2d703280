// Package store is an optional local Postgres mirror of what the watch loop
// has seen: discovered jobs with their scores and application status
// snapshots. History only, the backend stays the source of truth.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-hireloop-client/internal/models"
)

type Store struct {
	db *pgxpool.Pool
}

func Connect(ctx context.Context, connString string) (*Store, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 5
	config.MaxConnLifetime = time.Hour
	// Pooled serverless Postgres (PgBouncer transaction mode) breaks the
	// statement cache, so force simple exec mode.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &Store{db: pool}, nil
}

func (s *Store) Close() {
	if s != nil && s.db != nil {
		s.db.Close()
	}
}

// RecordJob upserts a discovered posting and the score it carried when the
// watch loop surfaced it.
func (s *Store) RecordJob(ctx context.Context, job *models.JobPosting, score int) error {
	if s == nil {
		return nil
	}
	company := ""
	if job.Company != nil {
		company = job.Company.Name
	}
	query := `
		INSERT INTO discovered_jobs (job_id, title, company, location, match_score, discovered_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (job_id)
		DO UPDATE SET title = EXCLUDED.title, company = EXCLUDED.company, match_score = EXCLUDED.match_score`

	if _, err := s.db.Exec(ctx, query, job.ID, job.Title, company, job.Location, score); err != nil {
		return fmt.Errorf("failed to record job: %w", err)
	}
	return nil
}

// RecordStatus appends a status snapshot when it differs from the last one
// recorded for the application.
func (s *Store) RecordStatus(ctx context.Context, appID string, status models.ApplicationStatus) error {
	if s == nil {
		return nil
	}
	var last string
	err := s.db.QueryRow(ctx,
		`SELECT status FROM application_history WHERE application_id = $1 ORDER BY recorded_at DESC LIMIT 1`,
		appID).Scan(&last)
	if err == nil && last == string(status) {
		return nil
	}
	if err != nil && err != pgx.ErrNoRows {
		return fmt.Errorf("failed to read application history: %w", err)
	}

	if _, err := s.db.Exec(ctx,
		`INSERT INTO application_history (application_id, status, recorded_at) VALUES ($1, $2, now())`,
		appID, string(status)); err != nil {
		return fmt.Errorf("failed to record status: %w", err)
	}
	return nil
}

// StatusHistory returns the recorded transitions for an application, oldest first.
func (s *Store) StatusHistory(ctx context.Context, appID string) ([]StatusEntry, error) {
	if s == nil {
		return nil, nil
	}
	rows, err := s.db.Query(ctx,
		`SELECT status, recorded_at FROM application_history WHERE application_id = $1 ORDER BY recorded_at`,
		appID)
	if err != nil {
		return nil, fmt.Errorf("failed to query application history: %w", err)
	}
	defer rows.Close()

	var out []StatusEntry
	for rows.Next() {
		var e StatusEntry
		if err := rows.Scan(&e.Status, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type StatusEntry struct {
	Status     string
	RecordedAt time.Time
}
