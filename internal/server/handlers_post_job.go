package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jcabanilla/internhub/internal/db"
	"github.com/jcabanilla/internhub/internal/form"
	"github.com/jcabanilla/internhub/internal/schemas"
	"github.com/jcabanilla/internhub/internal/server/middleware"
)

// maxPostBodyBytes bounds publish/update request bodies.
const maxPostBodyBytes = 1 << 20

// PostJobRequest is the publish endpoint envelope. A single endpoint carries
// both real publication and draft saves, switched on the action field.
type PostJobRequest struct {
	Action   string         `json:"action"`
	DraftID  *uuid.UUID     `json:"draftId,omitempty"`
	FormData map[string]any `json:"formData"`
}

// handlePostJob handles POST /api/employers/post-a-job.
//
// action=publishJob validates and persists the posting; action=saveDraft
// stores the raw form data verbatim with no validation, so half-finished
// postings survive.
func (s *Server) handlePostJob(w http.ResponseWriter, r *http.Request) {
	employerID, err := middleware.GetEmployerID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxPostBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	var req PostJobRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := schemas.ValidatePostJob(body); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			s.jsonResponse(w, http.StatusBadRequest, map[string]any{
				"error":  "Request body failed validation",
				"issues": validationErr.Issues(),
			})
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Schema validation failed: "+err.Error())
		return
	}

	switch req.Action {
	case form.ActionSaveDraft:
		s.saveDraft(w, r, employerID, &req)
	case form.ActionPublish:
		s.publishJob(w, r, employerID, &req)
	default:
		// Unreachable once the schema holds, but the schema is data.
		s.errorResponse(w, http.StatusBadRequest, "Unknown action: "+req.Action)
	}
}

// saveDraft stores the raw form data without validating it.
func (s *Server) saveDraft(w http.ResponseWriter, r *http.Request, employerID uuid.UUID, req *PostJobRequest) {
	draft, err := s.store.SaveDraft(r.Context(), employerID, req.DraftID, req.FormData)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if draft == nil {
		s.errorResponse(w, http.StatusNotFound, "Draft not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"draft_id": draft.ID})
}

// publishJob normalizes, validates, and persists the posting, then kicks off
// skill extraction and match rescoring in the background.
func (s *Server) publishJob(w http.ResponseWriter, r *http.Request, employerID uuid.UUID, req *PostJobRequest) {
	ctx := r.Context()

	f := form.Normalize(req.FormData)

	rules := form.RulesFor(form.FlowCreate)
	if errs := form.ValidateAll(f, rules); !form.Valid(errs) {
		fields := form.InvalidFields(errs)
		sort.Strings(fields)
		formErr := &form.InvalidFormError{Fields: fields}
		s.jsonResponse(w, HTTPStatus(formErr), map[string]any{
			"error":  formErr.Error(),
			"fields": fields,
		})
		return
	}

	job, err := s.store.CreateJob(ctx, db.NewJobCreateInput(employerID, f))
	if err != nil {
		if isTimestampError(err) {
			s.errorResponse(w, http.StatusBadRequest, deadlineErrorMessage)
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	if err := s.store.ReplaceQuestions(ctx, job.ID, f.ApplicationQuestions); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	// A publish that came from a saved draft retires the draft. Best effort;
	// a stale draft is an annoyance, not a data problem.
	if req.DraftID != nil {
		if err := s.store.DeleteDraft(ctx, *req.DraftID); err != nil {
			log.Printf("[post-a-job] failed to delete draft %s: %v", *req.DraftID, err)
		}
	}

	s.enrichAsync(job.ID, f)

	s.jsonResponse(w, http.StatusCreated, form.PublishResponse{JobID: job.ID.String()})
}

// enrichAsync extracts skills and rescores matches in the background.
// Enrichment never blocks or fails a publication; errors are only logged.
func (s *Server) enrichAsync(jobID uuid.UUID, f form.PostingForm) {
	if s.enricher == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		skills, err := s.enricher.ExtractSkills(ctx, f.JobTitle, f.JobDescription)
		if err != nil {
			log.Printf("[enrich] skill extraction failed for job %s: %v", jobID, err)
		} else if len(skills) > 0 {
			if err := s.store.SetJobSkills(ctx, jobID, skills); err != nil {
				log.Printf("[enrich] failed to store skills for job %s: %v", jobID, err)
			}
		}

		if err := s.enricher.RescoreJob(ctx, jobID); err != nil {
			log.Printf("[enrich] match rescoring failed for job %s: %v", jobID, err)
		}
	}()
}
