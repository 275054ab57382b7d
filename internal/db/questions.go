package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jcabanilla/internhub/internal/form"
)

// -----------------------------------------------------------------------------
// Screening Question Methods
// -----------------------------------------------------------------------------

// JobQuestion is a stored screening question row.
type JobQuestion struct {
	ID         uuid.UUID `json:"id"`
	JobID      uuid.UUID `json:"job_id"`
	Position   int       `json:"position"`
	Question   string    `json:"question"`
	Type       string    `json:"question_type"`
	Options    []string  `json:"options,omitempty"`
	AutoReject bool      `json:"auto_reject"`

	// CorrectAnswer holds the raw jsonb answer: a string for single/yesno
	// questions, an array for multi/text. The form normalizer sorts out
	// the union on read.
	CorrectAnswer json.RawMessage `json:"correct_answer,omitempty"`
}

// ReplaceQuestions rewrites the full question set of a job in order.
func (db *DB) ReplaceQuestions(ctx context.Context, jobID uuid.UUID, questions []form.Question) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin questions transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM job_questions WHERE job_id = $1`, jobID); err != nil {
		return fmt.Errorf("failed to clear questions: %w", err)
	}

	for i, q := range questions {
		var optionsJSON []byte
		if q.Options != nil {
			optionsJSON, err = json.Marshal(q.Options)
			if err != nil {
				return fmt.Errorf("failed to marshal question options: %w", err)
			}
		}

		answerJSON, err := marshalAnswer(q)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO job_questions (job_id, position, question, question_type,
			                            options, auto_reject, correct_answer)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			jobID, i, q.Question, string(q.Type), optionsJSON, q.AutoReject, answerJSON)
		if err != nil {
			return fmt.Errorf("failed to insert question %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit questions: %w", err)
	}
	return nil
}

// ListQuestions returns a job's questions in position order.
func (db *DB) ListQuestions(ctx context.Context, jobID uuid.UUID) ([]JobQuestion, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, job_id, position, question, question_type, options, auto_reject, correct_answer
		 FROM job_questions WHERE job_id = $1 ORDER BY position`,
		jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	var questions []JobQuestion
	for rows.Next() {
		var q JobQuestion
		var optionsJSON []byte
		if err := rows.Scan(&q.ID, &q.JobID, &q.Position, &q.Question, &q.Type,
			&optionsJSON, &q.AutoReject, &q.CorrectAnswer); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		if optionsJSON != nil {
			_ = json.Unmarshal(optionsJSON, &q.Options)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

// marshalAnswer packs the correct-answer union for storage: nothing unless
// auto-reject is on, a JSON string for single/yesno, a JSON array otherwise.
func marshalAnswer(q form.Question) ([]byte, error) {
	if !q.AutoReject {
		return nil, nil
	}
	var answer any
	switch q.Type {
	case form.QuestionSingle, form.QuestionYesNo:
		if q.CorrectAnswer == "" {
			return nil, nil
		}
		answer = q.CorrectAnswer
	default:
		if len(q.CorrectAnswers) == 0 {
			return nil, nil
		}
		answer = q.CorrectAnswers
	}
	data, err := json.Marshal(answer)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal correct answer: %w", err)
	}
	return data, nil
}
