package db

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jcabanilla/internhub/internal/form"
)

// Job statuses
const (
	JobStatusPublished = "published"
	JobStatusClosed    = "closed"
)

// Job represents a published job posting row.
type Job struct {
	ID                       uuid.UUID  `json:"id"`
	EmployerID               uuid.UUID  `json:"employer_id"`
	JobTitle                 string     `json:"job_title"`
	Location                 string     `json:"location"`
	RemoteOptions            string     `json:"remote_options"`
	WorkType                 string     `json:"work_type"`
	PayType                  string     `json:"pay_type"`
	PayAmount                string     `json:"pay_amount"`
	RecommendedCourses       []string   `json:"recommended_courses"`
	VerificationTier         string     `json:"verification_tier"`
	JobDescription           string     `json:"job_description"`
	JobSummary               string     `json:"job_summary"`
	Responsibilities         []string   `json:"responsibilities"`
	MustHaveQualifications   []string   `json:"must_have_qualifications"`
	NiceToHaveQualifications []string   `json:"nice_to_have_qualifications"`
	ApplicationDeadline      *time.Time `json:"application_deadline,omitempty"`
	MaxApplicants            *int       `json:"max_applicants,omitempty"`
	PerksAndBenefits         []string   `json:"perks_and_benefits"`
	AISkills                 []string   `json:"ai_skills"`
	Status                   string     `json:"status"`
	CreatedAt                time.Time  `json:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at"`
}

// DeadlineParts renders the stored deadline back into the {date,time} split
// the form engine works with.
func (j *Job) DeadlineParts() form.Deadline {
	if j.ApplicationDeadline == nil {
		return form.Deadline{}
	}
	return form.Deadline{
		Date: j.ApplicationDeadline.Format("2006-01-02"),
		Time: j.ApplicationDeadline.Format("15:04"),
	}
}

// JobCreateInput carries the fields for inserting a job row.
//
// Deadline is the raw "YYYY-MM-DD HH:MM" text the form produced; it is handed
// to Postgres to parse, so malformed input surfaces as a timestamp syntax
// error at the insert site.
type JobCreateInput struct {
	EmployerID               uuid.UUID
	JobTitle                 string
	Location                 string
	RemoteOptions            string
	WorkType                 string
	PayType                  string
	PayAmount                string
	RecommendedCourses       []string
	VerificationTier         string
	JobDescription           string
	JobSummary               string
	Responsibilities         []string
	MustHaveQualifications   []string
	NiceToHaveQualifications []string
	Deadline                 *string
	MaxApplicants            *int
	PerksAndBenefits         []string
	AISkills                 []string
}

// JobUpdateInput carries the fields for a partial update. Nil slices leave
// the stored value untouched only for AISkills; every other field is written
// as given, matching the quick-edit wire contract.
type JobUpdateInput struct {
	JobTitle                 string
	Location                 string
	RemoteOptions            string
	WorkType                 string
	PayType                  string
	PayAmount                string
	RecommendedCourses       []string
	VerificationTier         string
	JobDescription           string
	JobSummary               string
	Responsibilities         []string
	MustHaveQualifications   []string
	NiceToHaveQualifications []string
	Deadline                 *string
	MaxApplicants            *int
	PerksAndBenefits         []string
	AISkills                 []string
}

// ListJobsOptions filters and paginates the job listing query.
type ListJobsOptions struct {
	Limit      int
	Offset     int
	EmployerID *uuid.UUID
	WorkType   *string
	Tier       *string
	Status     *string
}

// NewJobCreateInput maps a canonical form onto an insert input.
func NewJobCreateInput(employerID uuid.UUID, f form.PostingForm) *JobCreateInput {
	return &JobCreateInput{
		EmployerID:               employerID,
		JobTitle:                 f.JobTitle,
		Location:                 f.Location,
		RemoteOptions:            string(f.RemoteOptions),
		WorkType:                 string(f.WorkType),
		PayType:                  string(f.PayType),
		PayAmount:                f.PayAmount,
		RecommendedCourses:       f.RecommendedCourses,
		VerificationTier:         string(f.VerificationTier),
		JobDescription:           f.JobDescription,
		JobSummary:               f.JobSummary,
		Responsibilities:         f.Responsibilities,
		MustHaveQualifications:   f.MustHaveQualifications,
		NiceToHaveQualifications: f.NiceToHaveQualifications,
		Deadline:                 deadlineText(f.ApplicationDeadline),
		MaxApplicants:            maxApplicants(f.MaxApplicants),
		PerksAndBenefits:         f.PerksAndBenefits,
		AISkills:                 f.Skills,
	}
}

// NewJobUpdateInput maps a canonical form onto an update input. skills is nil
// when the title did not change, leaving the stored ai_skills untouched.
func NewJobUpdateInput(f form.PostingForm, skills []string) *JobUpdateInput {
	return &JobUpdateInput{
		JobTitle:                 f.JobTitle,
		Location:                 f.Location,
		RemoteOptions:            string(f.RemoteOptions),
		WorkType:                 string(f.WorkType),
		PayType:                  string(f.PayType),
		PayAmount:                f.PayAmount,
		RecommendedCourses:       f.RecommendedCourses,
		VerificationTier:         string(f.VerificationTier),
		JobDescription:           f.JobDescription,
		JobSummary:               f.JobSummary,
		Responsibilities:         f.Responsibilities,
		MustHaveQualifications:   f.MustHaveQualifications,
		NiceToHaveQualifications: f.NiceToHaveQualifications,
		Deadline:                 deadlineText(f.ApplicationDeadline),
		MaxApplicants:            maxApplicants(f.MaxApplicants),
		PerksAndBenefits:         f.PerksAndBenefits,
		AISkills:                 skills,
	}
}

// deadlineText joins the deadline parts into the text Postgres parses. A
// date-only deadline gets a midnight time.
func deadlineText(d form.Deadline) *string {
	if d.Date == "" {
		return nil
	}
	t := d.Time
	if t == "" {
		t = "00:00"
	}
	s := d.Date + " " + t
	return &s
}

func maxApplicants(s string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &n
}
