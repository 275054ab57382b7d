package db

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jcabanilla/internhub/internal/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeadlineText(t *testing.T) {
	tests := []struct {
		name     string
		deadline form.Deadline
		expected *string
	}{
		{"date and time", form.Deadline{Date: "2025-06-01", Time: "14:30"}, strPtr("2025-06-01 14:30")},
		{"date only gets midnight", form.Deadline{Date: "2025-06-01"}, strPtr("2025-06-01 00:00")},
		{"empty is nil", form.Deadline{}, nil},
		{"time without date is nil", form.Deadline{Time: "14:30"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, deadlineText(tt.deadline))
		})
	}
}

func TestJob_DeadlineParts(t *testing.T) {
	deadline := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)
	j := Job{ApplicationDeadline: &deadline}
	assert.Equal(t, form.Deadline{Date: "2025-06-01", Time: "14:30"}, j.DeadlineParts())

	assert.Equal(t, form.Deadline{}, (&Job{}).DeadlineParts())
}

func TestNewJobCreateInput(t *testing.T) {
	f := form.NewPostingForm()
	f.JobTitle = "Barista"
	f.PayType = form.PayWeekly
	f.MaxApplicants = "50"
	f.ApplicationDeadline = form.Deadline{Date: "2025-06-01", Time: "14:30"}
	f.Skills = []string{"Customer Service"}

	employerID := uuid.New()
	input := NewJobCreateInput(employerID, f)

	assert.Equal(t, employerID, input.EmployerID)
	assert.Equal(t, "Barista", input.JobTitle)
	require.NotNil(t, input.MaxApplicants)
	assert.Equal(t, 50, *input.MaxApplicants)
	require.NotNil(t, input.Deadline)
	assert.Equal(t, "2025-06-01 14:30", *input.Deadline)
	assert.Equal(t, []string{"Customer Service"}, input.AISkills)
}

func TestNewJobUpdateInput_SkillsNilMeansKeep(t *testing.T) {
	f := form.NewPostingForm()
	f.JobTitle = "Barista"

	input := NewJobUpdateInput(f, nil)
	assert.Nil(t, input.AISkills, "nil skills leave stored ai_skills untouched")

	input = NewJobUpdateInput(f, []string{"Go"})
	assert.Equal(t, []string{"Go"}, input.AISkills)
}

func TestMaxApplicants(t *testing.T) {
	assert.Nil(t, maxApplicants(""))
	assert.Nil(t, maxApplicants("lots"))
	require.NotNil(t, maxApplicants(" 25 "))
	assert.Equal(t, 25, *maxApplicants(" 25 "))
}

func strPtr(s string) *string { return &s }
