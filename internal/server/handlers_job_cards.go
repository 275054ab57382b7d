package server

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jcabanilla/internhub/internal/db"
	"github.com/jcabanilla/internhub/internal/form"
	"github.com/jcabanilla/internhub/internal/server/middleware"
)

// ListJobCardsResponse represents the response for listing job cards
type ListJobCardsResponse struct {
	Jobs   []db.Job `json:"jobs"`
	Count  int      `json:"count"`
	Limit  int      `json:"limit"`
	Offset int      `json:"offset"`
}

// handleListJobCards lists published jobs with optional filters and pagination
func (s *Server) handleListJobCards(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit := parseQueryInt(r, "limit", 20, 100)
	offset := parseQueryInt(r, "offset", 0, 0)

	opts := db.ListJobsOptions{
		Limit:  limit,
		Offset: offset,
	}

	// Browsing only sees published jobs unless a status filter says otherwise.
	status := db.JobStatusPublished
	if raw := r.URL.Query().Get("status"); raw != "" {
		status = raw
	}
	opts.Status = &status

	if workType := r.URL.Query().Get("work_type"); workType != "" {
		opts.WorkType = &workType
	}
	if tier := r.URL.Query().Get("tier"); tier != "" {
		opts.Tier = &tier
	}
	if employerIDStr := r.URL.Query().Get("employer_id"); employerIDStr != "" {
		employerID, err := uuid.Parse(employerIDStr)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid employer_id")
			return
		}
		opts.EmployerID = &employerID
	}

	jobs, total, err := s.store.ListJobs(ctx, opts)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if jobs == nil {
		jobs = []db.Job{}
	}

	s.jsonResponse(w, http.StatusOK, ListJobCardsResponse{
		Jobs:   jobs,
		Count:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// handleGetJobCard retrieves a job card by its ID
func (s *Server) handleGetJobCard(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := s.store.GetJobByID(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}

// handleGetJobQuestions retrieves the application questions for a job
func (s *Server) handleGetJobQuestions(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := s.store.GetJobByID(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	questions, err := s.store.ListQuestions(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if questions == nil {
		questions = []db.JobQuestion{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"questions": questions,
		"count":     len(questions),
	})
}

// handleUpdateJob handles PUT /api/job-listings/job-cards/{id}/update.
//
// The body is a flat snake_case bundle; the normalizer maps it back into the
// canonical form. Stored ai_skills are recomputed only when the title
// changed, otherwise they are left untouched.
func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	employerID, err := middleware.GetEmployerID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxPostBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read request body")
		return
	}
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	job, err := s.store.GetJobByID(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}
	if job.EmployerID != employerID {
		s.errorResponse(w, http.StatusForbidden, "You do not own this job")
		return
	}

	f := form.Normalize(raw)

	rules := form.RulesFor(form.FlowQuickEdit)
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

	skills := s.skillsForUpdate(r.Context(), job, f)

	updated, err := s.store.UpdateJob(r.Context(), jobID, db.NewJobUpdateInput(f, skills))
	if err != nil {
		if isTimestampError(err) {
			s.errorResponse(w, http.StatusBadRequest, deadlineErrorMessage)
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if updated == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	if err := s.store.ReplaceQuestions(r.Context(), jobID, f.ApplicationQuestions); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, updated)
}

// skillsForUpdate recomputes ai_skills when the title changed. Returning nil
// leaves the stored skills as they are. Extraction failures downgrade to a
// keep, never to an error.
func (s *Server) skillsForUpdate(ctx context.Context, job *db.Job, f form.PostingForm) []string {
	titleChanged := !strings.EqualFold(strings.TrimSpace(job.JobTitle), strings.TrimSpace(f.JobTitle))
	if !titleChanged || s.enricher == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	skills, err := s.enricher.ExtractSkills(ctx, f.JobTitle, f.JobDescription)
	if err != nil {
		log.Printf("[update] skill extraction failed for job %s: %v", job.ID, err)
		return nil
	}
	return skills
}
