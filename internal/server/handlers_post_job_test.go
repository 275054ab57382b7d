package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func publishBody(overrides map[string]any) string {
	formData := map[string]any{
		"jobTitle":               "Barista",
		"location":               "Makati",
		"remoteOptions":          "On-site",
		"workType":               "Part-time",
		"recommendedCourse":      "BSIT",
		"jobDescription":         "Serve coffee",
		"jobSummary":             "Coffee",
		"responsibilities":       []string{"Serve coffee"},
		"mustHaveQualifications": []string{"Friendly"},
	}
	for key, value := range overrides {
		formData[key] = value
	}
	body, _ := json.Marshal(map[string]any{
		"action":   "publishJob",
		"formData": formData,
	})
	return string(body)
}

func postJobRequest(body string, employerID uuid.UUID) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/employers/post-a-job", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return asEmployer(req, employerID)
}

func TestHandlePostJob_Publish(t *testing.T) {
	s, store := newTestServer()
	employerID := uuid.New()

	w := httptest.NewRecorder()
	s.handlePostJob(w, postJobRequest(publishBody(nil), employerID))

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	jobID, err := uuid.Parse(resp["job_id"])
	require.NoError(t, err, "job_id should be the only key and a UUID")

	job := store.jobs[jobID]
	require.NotNil(t, job)
	assert.Equal(t, employerID, job.EmployerID)
	assert.Equal(t, "Barista", job.JobTitle)
	assert.Equal(t, []string{"BS - Information Technology"}, job.RecommendedCourses)
}

func TestHandlePostJob_PublishStoresQuestions(t *testing.T) {
	s, store := newTestServer()

	body := publishBody(map[string]any{
		"applicationQuestions": []map[string]any{
			{"question": "Relocate?", "type": "yesno", "autoReject": true, "correctAnswer": "Yes"},
		},
	})
	w := httptest.NewRecorder()
	s.handlePostJob(w, postJobRequest(body, uuid.New()))

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	jobID := uuid.MustParse(resp["job_id"])

	questions := store.questions[jobID]
	require.Len(t, questions, 1)
	assert.Equal(t, "Relocate?", questions[0].Question)
	assert.Equal(t, []string{"Yes", "No"}, questions[0].Options)
	assert.Equal(t, "Yes", questions[0].CorrectAnswer)
}

func TestHandlePostJob_PublishIncomplete(t *testing.T) {
	s, _ := newTestServer()

	// Title and description missing
	body := publishBody(map[string]any{"jobTitle": "", "jobDescription": ""})
	w := httptest.NewRecorder()
	s.handlePostJob(w, postJobRequest(body, uuid.New()))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error  string   `json:"error"`
		Fields []string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "jobTitle")
	assert.Contains(t, resp.Fields, "jobDescription")
	assert.NotContains(t, resp.Fields, "location")
	// payType is optional on the create flow
	assert.NotContains(t, resp.Fields, "payType")
}

func TestHandlePostJob_PublishDeletesSourceDraft(t *testing.T) {
	s, store := newTestServer()
	employerID := uuid.New()

	draft, err := store.SaveDraft(context.Background(), employerID, nil, nil)
	require.NoError(t, err)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal([]byte(publishBody(nil)), &envelope))
	envelope["draftId"] = draft.ID.String()
	body, _ := json.Marshal(envelope)

	w := httptest.NewRecorder()
	s.handlePostJob(w, postJobRequest(string(body), employerID))

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, store.drafts, draft.ID)
}

func TestHandlePostJob_SaveDraft(t *testing.T) {
	s, store := newTestServer()
	employerID := uuid.New()

	// Drafts skip validation entirely; a bare title is enough.
	body := `{"action":"saveDraft","formData":{"jobTitle":"Half-finished"}}`
	w := httptest.NewRecorder()
	s.handlePostJob(w, postJobRequest(body, employerID))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	draftID := uuid.MustParse(resp["draft_id"])
	assert.Contains(t, store.drafts, draftID)
}

func TestHandlePostJob_SaveDraftForeignID(t *testing.T) {
	s, store := newTestServer()

	draft, err := store.SaveDraft(context.Background(), uuid.New(), nil, nil)
	require.NoError(t, err)

	body := `{"action":"saveDraft","draftId":"` + draft.ID.String() + `","formData":{}}`
	w := httptest.NewRecorder()
	s.handlePostJob(w, postJobRequest(body, uuid.New()))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlePostJob_UnknownAction(t *testing.T) {
	s, _ := newTestServer()

	body := `{"action":"archiveJob","formData":{}}`
	w := httptest.NewRecorder()
	s.handlePostJob(w, postJobRequest(body, uuid.New()))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlePostJob_InvalidJSON(t *testing.T) {
	s, _ := newTestServer()

	w := httptest.NewRecorder()
	s.handlePostJob(w, postJobRequest(`{"action":`, uuid.New()))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlePostJob_Unauthenticated(t *testing.T) {
	s, _ := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/employers/post-a-job", strings.NewReader(publishBody(nil)))
	w := httptest.NewRecorder()
	s.handlePostJob(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandlePostJob_TimestampErrorGetsDeadlineMessage(t *testing.T) {
	s, store := newTestServer()
	store.createErr = errors.New(`ERROR: invalid input syntax for type timestamp: "junk 14:30" (SQLSTATE 22007)`)

	w := httptest.NewRecorder()
	s.handlePostJob(w, postJobRequest(publishBody(nil), uuid.New()))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, deadlineErrorMessage, resp["error"])
}

func TestHandlePostJob_EnrichmentRunsInBackground(t *testing.T) {
	s, store := newTestServer()
	enricher := &fakeEnricher{skills: []string{"Customer Service"}, done: make(chan struct{})}
	s.enricher = enricher

	w := httptest.NewRecorder()
	s.handlePostJob(w, postJobRequest(publishBody(nil), uuid.New()))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	jobID := uuid.MustParse(resp["job_id"])

	select {
	case <-enricher.done:
	case <-time.After(5 * time.Second):
		t.Fatal("enrichment did not complete")
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Equal(t, []string{"Customer Service"}, store.jobs[jobID].AISkills)
	assert.Equal(t, []uuid.UUID{jobID}, enricher.rescored)
}
