package store

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS discovered_jobs (
		job_id        text PRIMARY KEY,
		title         text NOT NULL,
		company       text NOT NULL DEFAULT '',
		location      text NOT NULL DEFAULT '',
		match_score   int  NOT NULL DEFAULT 0,
		discovered_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS application_history (
		id             bigserial PRIMARY KEY,
		application_id text NOT NULL,
		status         text NOT NULL,
		recorded_at    timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_application_history_app
		ON application_history (application_id, recorded_at)`,
}

// Migrate creates the history tables. Idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	if s == nil {
		return nil
	}
	for _, stmt := range schema {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
