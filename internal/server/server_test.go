package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jcabanilla/internhub/internal/db"
	"github.com/jcabanilla/internhub/internal/form"
	"github.com/jcabanilla/internhub/internal/server/middleware"
	"github.com/stretchr/testify/assert"
)

// fakeStore is an in-memory Store for handler tests.
type fakeStore struct {
	mu        sync.Mutex
	jobs      map[uuid.UUID]*db.Job
	drafts    map[uuid.UUID]*db.Draft
	questions map[uuid.UUID][]form.Question

	createErr error
	updateErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		jobs:      make(map[uuid.UUID]*db.Job),
		drafts:    make(map[uuid.UUID]*db.Draft),
		questions: make(map[uuid.UUID][]form.Question),
	}
}

func (f *fakeStore) CreateJob(_ context.Context, input *db.JobCreateInput) (*db.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	job := &db.Job{
		ID:                 uuid.New(),
		EmployerID:         input.EmployerID,
		JobTitle:           input.JobTitle,
		Location:           input.Location,
		RemoteOptions:      input.RemoteOptions,
		WorkType:           input.WorkType,
		PayType:            input.PayType,
		PayAmount:          input.PayAmount,
		RecommendedCourses: input.RecommendedCourses,
		VerificationTier:   input.VerificationTier,
		JobDescription:     input.JobDescription,
		JobSummary:         input.JobSummary,
		AISkills:           input.AISkills,
		Status:             db.JobStatusPublished,
	}
	f.jobs[job.ID] = job
	return job, nil
}

func (f *fakeStore) GetJobByID(_ context.Context, id uuid.UUID) (*db.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.jobs[id], nil
}

func (f *fakeStore) UpdateJob(_ context.Context, id uuid.UUID, input *db.JobUpdateInput) (*db.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	job, ok := f.jobs[id]
	if !ok {
		return nil, nil
	}
	job.JobTitle = input.JobTitle
	job.Location = input.Location
	job.RemoteOptions = input.RemoteOptions
	job.WorkType = input.WorkType
	job.PayType = input.PayType
	job.PayAmount = input.PayAmount
	job.RecommendedCourses = input.RecommendedCourses
	job.JobDescription = input.JobDescription
	job.JobSummary = input.JobSummary
	if input.AISkills != nil {
		job.AISkills = input.AISkills
	}
	return job, nil
}

func (f *fakeStore) ListJobs(_ context.Context, opts db.ListJobsOptions) ([]db.Job, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var jobs []db.Job
	for _, job := range f.jobs {
		if opts.EmployerID != nil && job.EmployerID != *opts.EmployerID {
			continue
		}
		if opts.Status != nil && job.Status != *opts.Status {
			continue
		}
		if opts.WorkType != nil && job.WorkType != *opts.WorkType {
			continue
		}
		jobs = append(jobs, *job)
	}
	return jobs, len(jobs), nil
}

func (f *fakeStore) SetJobSkills(_ context.Context, id uuid.UUID, skills []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if job, ok := f.jobs[id]; ok {
		job.AISkills = skills
	}
	return nil
}

func (f *fakeStore) ReplaceQuestions(_ context.Context, jobID uuid.UUID, questions []form.Question) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.questions[jobID] = questions
	return nil
}

func (f *fakeStore) ListQuestions(_ context.Context, jobID uuid.UUID) ([]db.JobQuestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var stored []db.JobQuestion
	for i, q := range f.questions[jobID] {
		stored = append(stored, db.JobQuestion{
			JobID:      jobID,
			Position:   i,
			Question:   q.Question,
			Type:       string(q.Type),
			Options:    q.Options,
			AutoReject: q.AutoReject,
		})
	}
	return stored, nil
}

func (f *fakeStore) SaveDraft(_ context.Context, employerID uuid.UUID, id *uuid.UUID, data any) (*db.Draft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id != nil {
		draft, ok := f.drafts[*id]
		if !ok || draft.EmployerID != employerID {
			return nil, nil
		}
		return draft, nil
	}
	draft := &db.Draft{ID: uuid.New(), EmployerID: employerID}
	f.drafts[draft.ID] = draft
	return draft, nil
}

func (f *fakeStore) GetDraft(_ context.Context, id uuid.UUID) (*db.Draft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.drafts[id], nil
}

func (f *fakeStore) ListDraftsByEmployer(_ context.Context, employerID uuid.UUID) ([]db.Draft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var drafts []db.Draft
	for _, draft := range f.drafts {
		if draft.EmployerID == employerID {
			drafts = append(drafts, *draft)
		}
	}
	return drafts, nil
}

func (f *fakeStore) DeleteDraft(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.drafts, id)
	return nil
}

// fakeEnricher records enrichment calls and signals completion.
type fakeEnricher struct {
	mu       sync.Mutex
	skills   []string
	err      error
	rescored []uuid.UUID
	done     chan struct{}
}

func (f *fakeEnricher) ExtractSkills(_ context.Context, _, _ string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.skills, f.err
}

func (f *fakeEnricher) RescoreJob(_ context.Context, jobID uuid.UUID) error {
	f.mu.Lock()
	f.rescored = append(f.rescored, jobID)
	f.mu.Unlock()
	if f.done != nil {
		close(f.done)
	}
	return nil
}

func newTestServer() (*Server, *fakeStore) {
	store := newFakeStore()
	s := &Server{
		store:      store,
		jwtService: NewJWTService("test-secret"),
	}
	return s, store
}

// asEmployer attaches an authenticated employer ID to the request, the way
// the auth middleware would.
func asEmployer(r *http.Request, employerID uuid.UUID) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.EmployerIDKey(), employerID)
	return r.WithContext(ctx)
}

func TestHandleHealth(t *testing.T) {
	s, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	s.handleHealth(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=30&bad=x&big=500", nil)

	assert.Equal(t, 30, parseQueryInt(req, "limit", 20, 100))
	assert.Equal(t, 20, parseQueryInt(req, "missing", 20, 100))
	assert.Equal(t, 20, parseQueryInt(req, "bad", 20, 100))
	assert.Equal(t, 100, parseQueryInt(req, "big", 20, 100))
}
