// Package form implements the job-posting form engine: the canonical posting
// record, normalization of externally-shaped rows into it, step-scoped
// validation, duplicate similarity scoring, and the wizard state machine that
// ties them together.
package form

import (
	"encoding/json"
)

// RemoteOption is the work arrangement offered by a posting.
type RemoteOption string

// Remote option values
const (
	RemoteOnSite RemoteOption = "On-site"
	RemoteHybrid RemoteOption = "Hybrid"
	RemoteWFH    RemoteOption = "Work from home"
)

// WorkType is the employment type of a posting.
type WorkType string

// Work type values
const (
	WorkOJT      WorkType = "OJT/Internship"
	WorkPartTime WorkType = "Part-time"
	WorkFullTime WorkType = "Full-time"
	WorkContract WorkType = "Contract"
)

// PayType is the compensation schedule of a posting.
type PayType string

// Pay type values
const (
	PayNone    PayType = "No Pay"
	PayWeekly  PayType = "Weekly"
	PayMonthly PayType = "Monthly"
	PayYearly  PayType = "Yearly"
)

// Tier is the employer verification tier attached to a posting.
type Tier string

// Verification tiers
const (
	TierBasic    Tier = "basic"
	TierStandard Tier = "standard"
	TierFull     Tier = "full"
)

// QuestionType identifies the answer format of an application question.
type QuestionType string

// Question types
const (
	QuestionText   QuestionType = "text"
	QuestionSingle QuestionType = "single"
	QuestionMulti  QuestionType = "multi"
	QuestionYesNo  QuestionType = "yesno"
)

// Deadline is an application deadline split into its date and time parts.
// Either part may be empty.
type Deadline struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// IsZero reports whether neither a date nor a time is set.
func (d Deadline) IsZero() bool {
	return d.Date == "" && d.Time == ""
}

// Question is a single screening question attached to a posting.
//
// CorrectAnswer is set for single/yesno questions, CorrectAnswers for
// multi (accepted choices) and text (required keywords). Both are empty
// unless AutoReject is true.
type Question struct {
	Question       string
	Type           QuestionType
	Options        []string
	AutoReject     bool
	CorrectAnswer  string
	CorrectAnswers []string
}

// questionJSON is the wire shape of Question. correctAnswer is a union of
// string and array on the wire, so Question carries custom JSON methods.
type questionJSON struct {
	Question      string       `json:"question"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options,omitempty"`
	AutoReject    bool         `json:"autoReject"`
	CorrectAnswer any          `json:"correctAnswer,omitempty"`
}

// MarshalJSON emits correctAnswer as a string for single/yesno questions and
// as an array for multi/text questions.
func (q Question) MarshalJSON() ([]byte, error) {
	out := questionJSON{
		Question:   q.Question,
		Type:       q.Type,
		Options:    q.Options,
		AutoReject: q.AutoReject,
	}
	if q.AutoReject {
		switch q.Type {
		case QuestionSingle, QuestionYesNo:
			if q.CorrectAnswer != "" {
				out.CorrectAnswer = q.CorrectAnswer
			}
		case QuestionMulti, QuestionText:
			if len(q.CorrectAnswers) > 0 {
				out.CorrectAnswer = q.CorrectAnswers
			}
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts correctAnswer as either a string or an array and
// routes it to the field matching the question type.
func (q *Question) UnmarshalJSON(data []byte) error {
	var in questionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*q = Question{
		Question:   in.Question,
		Type:       in.Type,
		Options:    in.Options,
		AutoReject: in.AutoReject,
	}
	switch answer := in.CorrectAnswer.(type) {
	case string:
		q.CorrectAnswer = answer
	case []any:
		for _, v := range answer {
			if s, ok := v.(string); ok {
				q.CorrectAnswers = append(q.CorrectAnswers, s)
			}
		}
	}
	return nil
}

// PostingForm is the canonical in-memory job posting record. Every wizard
// flow and every wire adapter works against this one shape; external rows of
// any casing or nesting are mapped into it by Normalize.
type PostingForm struct {
	JobTitle      string       `json:"jobTitle"`
	Location      string       `json:"location"`
	RemoteOptions RemoteOption `json:"remoteOptions"`
	WorkType      WorkType     `json:"workType"`
	PayType       PayType      `json:"payType"`
	PayAmount     string       `json:"payAmount"`

	// RecommendedCourses is a true list; the legacy comma-joined string
	// lives only at the wire boundary.
	RecommendedCourses []string `json:"recommendedCourses"`

	VerificationTier Tier `json:"verificationTier"`

	JobDescription string `json:"jobDescription"`
	JobSummary     string `json:"jobSummary"`

	// List-editing UI always keeps at least one row, so these are never
	// empty slices; the minimum is a single blank element.
	Responsibilities         []string `json:"responsibilities"`
	MustHaveQualifications   []string `json:"mustHaveQualifications"`
	NiceToHaveQualifications []string `json:"niceToHaveQualifications"`

	ApplicationDeadline  Deadline   `json:"applicationDeadline"`
	MaxApplicants        string     `json:"maxApplicants"`
	ApplicationQuestions []Question `json:"applicationQuestions"`
	PerksAndBenefits     []string   `json:"perksAndBenefits"`
	Skills               []string   `json:"skills"`
}

// NewPostingForm returns a blank form with the defaults a freshly mounted
// wizard starts from.
func NewPostingForm() PostingForm {
	return PostingForm{
		VerificationTier:         TierBasic,
		RecommendedCourses:       []string{},
		Responsibilities:         []string{""},
		MustHaveQualifications:   []string{""},
		NiceToHaveQualifications: []string{""},
		ApplicationQuestions:     []Question{},
		PerksAndBenefits:         []string{},
		Skills:                   []string{},
	}
}

// PerkCatalog enumerates the perk identifiers a posting may carry.
var PerkCatalog = []string{
	"allowance",
	"certificate",
	"flexible-hours",
	"free-meals",
	"health-insurance",
	"mentorship",
	"paid-leave",
	"training",
	"transport-subsidy",
	"work-equipment",
}
