package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jcabanilla/internhub/internal/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func populatedForm() form.PostingForm {
	f := form.NewPostingForm()
	f.JobTitle = "Barista"
	f.Location = "Makati"
	f.RemoteOptions = form.RemoteOnSite
	f.WorkType = form.WorkPartTime
	f.PayType = form.PayWeekly
	f.PayAmount = "500"
	f.RecommendedCourses = []string{"BS - Information Technology"}
	f.JobDescription = "Serve coffee"
	f.JobSummary = "Coffee"
	f.Responsibilities = []string{"Serve coffee"}
	f.MustHaveQualifications = []string{"Friendly"}
	return f
}

func TestPublishJob(t *testing.T) {
	var captured map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/employers/post-a-job", r.URL.Path)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"job_id":"7b00e13f-3f0a-4b44-9ffe-5a4a19d1fc10"}`))
	}))
	defer ts.Close()

	c := New(ts.URL, "token-123", nil)
	jobID, err := c.PublishJob(context.Background(), populatedForm())
	require.NoError(t, err)
	assert.Equal(t, "7b00e13f-3f0a-4b44-9ffe-5a4a19d1fc10", jobID)

	assert.Equal(t, "publishJob", captured["action"])
	formData := captured["formData"].(map[string]any)
	assert.Equal(t, "Barista", formData["jobTitle"])
	assert.Equal(t, "BS - Information Technology", formData["recommendedCourse"])
	assert.Nil(t, formData["applicationDeadline"], "empty deadline goes out as null")
}

func TestPublishJob_LegacyResponseShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"canonical", `{"job_id":"abc"}`},
		{"result wrapper", `{"result":{"job_id":"abc"}}`},
		{"data array", `{"data":[{"id":"abc"}]}`},
		{"data object", `{"data":{"id":"abc"}}`},
		{"data job object", `{"data":{"job":{"id":"abc"}}}`},
		{"bare id", `{"id":"abc"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			c := New(ts.URL, "", nil)
			jobID, err := c.PublishJob(context.Background(), populatedForm())
			require.NoError(t, err)
			assert.Equal(t, "abc", jobID)
		})
	}
}

func TestPublishJob_NoIDInResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer ts.Close()

	c := New(ts.URL, "", nil)
	_, err := c.PublishJob(context.Background(), populatedForm())
	assert.Error(t, err)
}

func TestPublishJob_JSONError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"posting is incomplete: jobTitle"}`))
	}))
	defer ts.Close()

	c := New(ts.URL, "", nil)
	_, err := c.PublishJob(context.Background(), populatedForm())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "posting is incomplete: jobTitle", apiErr.Message)
}

func TestPublishJob_TimestampErrorGetsFriendlyMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"ERROR: invalid input syntax for type timestamp: \"junk\" (SQLSTATE 22007)"}`))
	}))
	defer ts.Close()

	c := New(ts.URL, "", nil)
	_, err := c.PublishJob(context.Background(), populatedForm())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "application deadline")
	assert.NotContains(t, apiErr.Message, "SQLSTATE")
}

func TestPublishJob_HTMLErrorPage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html><body><h1>502 Bad Gateway</h1></body></html>`))
	}))
	defer ts.Close()

	c := New(ts.URL, "", nil)
	_, err := c.PublishJob(context.Background(), populatedForm())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Bad Gateway", apiErr.Message, "HTML pages collapse to the status text")
}

func TestSaveDraft(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var captured map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		assert.Equal(t, "saveDraft", captured["action"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"draft_id":"d1"}`))
	}))
	defer ts.Close()

	c := New(ts.URL, "", nil)
	draftID, err := c.SaveDraft(context.Background(), populatedForm())
	require.NoError(t, err)
	assert.Equal(t, "d1", draftID)
}

func TestUpdateJob(t *testing.T) {
	var captured map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/job-listings/job-cards/j1/update", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	original := populatedForm()
	edited := populatedForm()
	edited.Location = "Cebu"
	edited.Skills = []string{"Customer Service"}

	c := New(ts.URL, "", nil)
	require.NoError(t, c.UpdateJob(context.Background(), "j1", edited, &original))

	assert.Equal(t, "Cebu", captured["location"])
	assert.Equal(t, "Barista", captured["job_title"])
	_, hasSkills := captured["ai_skills"]
	assert.False(t, hasSkills, "unchanged title must not send ai_skills")

	// A retitled posting sends the recomputed skills
	edited.JobTitle = "Senior Barista"
	require.NoError(t, c.UpdateJob(context.Background(), "j1", edited, &original))
	assert.Equal(t, []any{"Customer Service"}, captured["ai_skills"])
}

func TestDeleteDraft(t *testing.T) {
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/job-listings/actionsDraft", r.URL.Path)
		assert.Equal(t, "d1", r.URL.Query().Get("id"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	c := New(ts.URL, "", nil)
	require.NoError(t, c.DeleteDraft(context.Background(), "d1"))
	assert.True(t, called)
}
