package form

import "strconv"

// Wire adapters. The backend grew two distinct shapes at the same logical
// boundary: a camelCase bundle for create/publish and a flat snake_case
// bundle for partial updates. Both mappings live here, as explicit field
// tables, and nowhere else.

// Publish actions accepted by the post-a-job endpoint.
const (
	ActionPublish   = "publishJob"
	ActionSaveDraft = "saveDraft"
)

// PublishRequest is the wire body of POST /api/employers/post-a-job.
type PublishRequest struct {
	Action   string      `json:"action"`
	FormData PublishData `json:"formData"`
}

// PublishData is the camelCase wire rendering of a posting. Optional numeric
// and date fields are null when empty; the course list collapses to the
// legacy comma-joined string.
type PublishData struct {
	JobTitle                 string       `json:"jobTitle"`
	Location                 string       `json:"location"`
	RemoteOptions            RemoteOption `json:"remoteOptions"`
	WorkType                 WorkType     `json:"workType"`
	PayType                  PayType      `json:"payType"`
	PayAmount                *string      `json:"payAmount"`
	RecommendedCourse        string       `json:"recommendedCourse"`
	VerificationTier         Tier         `json:"verificationTier"`
	JobDescription           string       `json:"jobDescription"`
	JobSummary               string       `json:"jobSummary"`
	Responsibilities         []string     `json:"responsibilities"`
	MustHaveQualifications   []string     `json:"mustHaveQualifications"`
	NiceToHaveQualifications []string     `json:"niceToHaveQualifications"`
	ApplicationDeadline      *Deadline    `json:"applicationDeadline"`
	MaxApplicants            *int         `json:"maxApplicants"`
	ApplicationQuestions     []Question   `json:"applicationQuestions"`
	PerksAndBenefits         []string     `json:"perksAndBenefits"`
	Skills                   []string     `json:"skills"`
}

// NewPublishRequest renders a canonical form as the publish wire bundle.
func NewPublishRequest(f PostingForm, action string) PublishRequest {
	data := PublishData{
		JobTitle:                 f.JobTitle,
		Location:                 f.Location,
		RemoteOptions:            f.RemoteOptions,
		WorkType:                 f.WorkType,
		PayType:                  f.PayType,
		PayAmount:                optionalPay(f),
		RecommendedCourse:        JoinCourses(f.RecommendedCourses),
		VerificationTier:         f.VerificationTier,
		JobDescription:           f.JobDescription,
		JobSummary:               f.JobSummary,
		Responsibilities:         f.Responsibilities,
		MustHaveQualifications:   f.MustHaveQualifications,
		NiceToHaveQualifications: f.NiceToHaveQualifications,
		MaxApplicants:            optionalInt(f.MaxApplicants),
		ApplicationQuestions:     f.ApplicationQuestions,
		PerksAndBenefits:         f.PerksAndBenefits,
		Skills:                   f.Skills,
	}
	if !f.ApplicationDeadline.IsZero() {
		deadline := f.ApplicationDeadline
		data.ApplicationDeadline = &deadline
	}
	return PublishRequest{Action: action, FormData: data}
}

// PublishResponse is the canonical success body of the publish endpoint: one
// nesting, no defensive probing required.
type PublishResponse struct {
	JobID string `json:"job_id"`
}

// UpdateRequest is the flat snake_case wire body of
// PUT /api/job-listings/job-cards/{id}/update.
type UpdateRequest struct {
	JobTitle                 string       `json:"job_title"`
	Location                 string       `json:"location"`
	RemoteOptions            RemoteOption `json:"remote_options"`
	WorkType                 WorkType     `json:"work_type"`
	PayType                  PayType      `json:"pay_type"`
	PayAmount                string       `json:"pay_amount"`
	RecommendedCourse        string       `json:"recommended_course"`
	VerificationTier         Tier         `json:"verification_tier"`
	JobDescription           string       `json:"job_description"`
	JobSummary               string       `json:"job_summary"`
	Responsibilities         []string     `json:"responsibilities"`
	MustHaveQualifications   []string     `json:"must_have_qualifications"`
	NiceToHaveQualifications []string     `json:"nice_to_have_qualifications"`
	ApplicationDeadline      Deadline     `json:"application_deadline"`
	MaxApplicants            *int         `json:"max_applicants"`
	ApplicationQuestions     []Question   `json:"application_questions"`
	PerksAndBenefits         []string     `json:"perks_and_benefits"`

	// AISkills is only present when the title changed from its original
	// value; an unchanged title keeps the stored skills untouched.
	AISkills []string `json:"ai_skills,omitempty"`
}

// NewUpdateRequest renders a canonical form as the partial-update wire
// bundle. original is the posting as loaded into the quick-edit wizard; its
// title decides whether ai_skills rides along.
func NewUpdateRequest(f PostingForm, original *PostingForm) UpdateRequest {
	req := UpdateRequest{
		JobTitle:                 f.JobTitle,
		Location:                 f.Location,
		RemoteOptions:            f.RemoteOptions,
		WorkType:                 f.WorkType,
		PayType:                  f.PayType,
		PayAmount:                f.PayAmount,
		RecommendedCourse:        JoinCourses(f.RecommendedCourses),
		VerificationTier:         f.VerificationTier,
		JobDescription:           f.JobDescription,
		JobSummary:               f.JobSummary,
		Responsibilities:         f.Responsibilities,
		MustHaveQualifications:   f.MustHaveQualifications,
		NiceToHaveQualifications: f.NiceToHaveQualifications,
		ApplicationDeadline:      f.ApplicationDeadline,
		MaxApplicants:            optionalInt(f.MaxApplicants),
		ApplicationQuestions:     f.ApplicationQuestions,
		PerksAndBenefits:         f.PerksAndBenefits,
	}
	if original == nil || !foldEqual(original.JobTitle, f.JobTitle) {
		req.AISkills = f.Skills
	}
	return req
}

// TitleChanged reports whether the edited title differs from the original,
// the trigger for recomputing ai_skills.
func TitleChanged(original, edited PostingForm) bool {
	return !foldEqual(original.JobTitle, edited.JobTitle)
}

// optionalPay renders payAmount, which only means anything when a paying
// schedule is selected.
func optionalPay(f PostingForm) *string {
	if f.PayType == "" || f.PayType == PayNone || blank(f.PayAmount) {
		return nil
	}
	amount := f.PayAmount
	return &amount
}

// optionalInt parses numeric text to a nullable integer for the wire.
func optionalInt(s string) *int {
	if blank(s) {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
