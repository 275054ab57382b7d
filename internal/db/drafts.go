package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Draft Methods
// -----------------------------------------------------------------------------

// Draft is a partially-filled, persisted-but-unpublished posting. The payload
// is stored as the raw form snapshot and re-normalized on resume, so drafts
// written by older clients with different key shapes still load.
type Draft struct {
	ID         uuid.UUID       `json:"id"`
	EmployerID uuid.UUID       `json:"employer_id"`
	Data       json.RawMessage `json:"data"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// SaveDraft inserts a new draft, or overwrites an existing one when id is
// non-nil.
func (db *DB) SaveDraft(ctx context.Context, employerID uuid.UUID, id *uuid.UUID, data any) (*Draft, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft: %w", err)
	}

	var d Draft
	if id != nil {
		err = db.pool.QueryRow(ctx,
			`UPDATE job_drafts SET data = $1, updated_at = NOW()
			 WHERE id = $2 AND employer_id = $3
			 RETURNING id, employer_id, data, created_at, updated_at`,
			payload, *id, employerID,
		).Scan(&d.ID, &d.EmployerID, &d.Data, &d.CreatedAt, &d.UpdatedAt)
		if err == pgx.ErrNoRows {
			return nil, nil
		}
	} else {
		err = db.pool.QueryRow(ctx,
			`INSERT INTO job_drafts (employer_id, data) VALUES ($1, $2)
			 RETURNING id, employer_id, data, created_at, updated_at`,
			employerID, payload,
		).Scan(&d.ID, &d.EmployerID, &d.Data, &d.CreatedAt, &d.UpdatedAt)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}
	return &d, nil
}

// GetDraft retrieves a draft by ID
func (db *DB) GetDraft(ctx context.Context, id uuid.UUID) (*Draft, error) {
	var d Draft
	err := db.pool.QueryRow(ctx,
		`SELECT id, employer_id, data, created_at, updated_at FROM job_drafts WHERE id = $1`,
		id,
	).Scan(&d.ID, &d.EmployerID, &d.Data, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	return &d, nil
}

// ListDraftsByEmployer returns an employer's drafts, most recently touched
// first.
func (db *DB) ListDraftsByEmployer(ctx context.Context, employerID uuid.UUID) ([]Draft, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, employer_id, data, created_at, updated_at
		 FROM job_drafts WHERE employer_id = $1 ORDER BY updated_at DESC`,
		employerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	var drafts []Draft
	for rows.Next() {
		var d Draft
		if err := rows.Scan(&d.ID, &d.EmployerID, &d.Data, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan draft: %w", err)
		}
		drafts = append(drafts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	return drafts, nil
}

// DeleteDraft removes a draft. Deleting an absent draft is not an error; the
// cleanup after a successful publish is best-effort.
func (db *DB) DeleteDraft(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM job_drafts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}
