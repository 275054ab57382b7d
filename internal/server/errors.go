// Package server provides the HTTP REST API for the job board.
package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jcabanilla/internhub/internal/form"
)

// ErrJobNotFound indicates the job was not found
type ErrJobNotFound struct {
	JobID uuid.UUID
}

func (e *ErrJobNotFound) Error() string {
	return fmt.Sprintf("job not found: %s", e.JobID)
}

// ErrDraftNotFound indicates the draft was not found
type ErrDraftNotFound struct {
	DraftID uuid.UUID
}

func (e *ErrDraftNotFound) Error() string {
	return fmt.Sprintf("draft not found: %s", e.DraftID)
}

// ErrForbidden indicates the authenticated employer does not own the resource
type ErrForbidden struct{}

func (e *ErrForbidden) Error() string {
	return "you do not have access to this resource"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrJobNotFound, *ErrDraftNotFound:
		return http.StatusNotFound
	case *ErrForbidden:
		return http.StatusForbidden
	case *ErrValidation, *form.InvalidFormError:
		return http.StatusBadRequest
	case *form.TooSimilarError:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// deadlineErrorMessage is shown when Postgres rejects the deadline text.
// The deadline reaches the database as raw "YYYY-MM-DD HH:MM" text, so a
// malformed date or time surfaces here rather than at normalization.
const deadlineErrorMessage = "The application deadline could not be saved. Please re-enter the deadline date and time."

// isTimestampError reports whether err is a Postgres timestamp parse failure.
func isTimestampError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "invalid input syntax for type timestamp")
}
