// Package db provides PostgreSQL database access for job postings, drafts,
// and screening questions.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the tables this service owns if they do not exist yet.
func (db *DB) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS jobs (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			employer_id UUID NOT NULL,
			job_title TEXT NOT NULL,
			location TEXT NOT NULL DEFAULT '',
			remote_options TEXT NOT NULL DEFAULT '',
			work_type TEXT NOT NULL DEFAULT '',
			pay_type TEXT NOT NULL DEFAULT '',
			pay_amount TEXT NOT NULL DEFAULT '',
			recommended_courses JSONB NOT NULL DEFAULT '[]',
			verification_tier TEXT NOT NULL DEFAULT 'basic',
			job_description TEXT NOT NULL DEFAULT '',
			job_summary TEXT NOT NULL DEFAULT '',
			responsibilities JSONB NOT NULL DEFAULT '[]',
			must_have_qualifications JSONB NOT NULL DEFAULT '[]',
			nice_to_have_qualifications JSONB NOT NULL DEFAULT '[]',
			application_deadline TIMESTAMPTZ,
			max_applicants INT,
			perks_and_benefits JSONB NOT NULL DEFAULT '[]',
			ai_skills JSONB NOT NULL DEFAULT '[]',
			status TEXT NOT NULL DEFAULT 'published',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_employer ON jobs (employer_id)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs (status)`,
		`CREATE TABLE IF NOT EXISTS job_questions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			job_id UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
			position INT NOT NULL,
			question TEXT NOT NULL DEFAULT '',
			question_type TEXT NOT NULL DEFAULT 'text',
			options JSONB,
			auto_reject BOOLEAN NOT NULL DEFAULT FALSE,
			correct_answer JSONB,
			UNIQUE (job_id, position)
		)`,
		`CREATE TABLE IF NOT EXISTS job_drafts (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			employer_id UUID NOT NULL,
			data JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_job_drafts_employer ON job_drafts (employer_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
