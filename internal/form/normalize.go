package form

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jcabanilla/internhub/internal/clean"
)

// Normalize maps an arbitrary externally-shaped posting record (server row,
// draft JSON, duplicate source) into a fully-populated PostingForm. Key casing,
// nesting, and value encoding are all unknown at the call site: every field
// family tries its known shapes in priority order and falls back to a safe
// default. Normalize never fails; malformed JSON inside values is treated as
// a plain string.
func Normalize(raw map[string]any) PostingForm {
	f := NewPostingForm()
	if raw == nil {
		return f
	}

	f.JobTitle = scalarField(raw, "jobTitle", "job_title", "title")
	f.Location = scalarField(raw, "location", "job_location")
	f.RemoteOptions = RemoteOption(scalarField(raw, "remoteOptions", "remote_options", "work_arrangement"))
	f.WorkType = WorkType(scalarField(raw, "workType", "work_type", "job_type"))
	f.PayType = PayType(scalarField(raw, "payType", "pay_type", "salary_type"))
	f.PayAmount = scalarField(raw, "payAmount", "pay_amount", "salary", "compensation")
	f.JobDescription = clean.Text(scalarField(raw, "jobDescription", "job_description", "description"))
	f.JobSummary = clean.Text(scalarField(raw, "jobSummary", "job_summary", "summary"))
	f.MaxApplicants = scalarField(raw, "maxApplicants", "max_applicants", "applicant_limit")

	if tier := scalarField(raw, "verificationTier", "verification_tier", "tier"); tier != "" {
		f.VerificationTier = Tier(tier)
	}

	f.RecommendedCourses = normalizeCourses(firstValue(raw, "recommendedCourses", "recommendedCourse", "recommended_course", "course"))

	f.Responsibilities = listField(raw, "responsibilities", "job_responsibilities")
	f.MustHaveQualifications = listField(raw, "mustHaveQualifications", "must_have_qualifications", "qualifications")
	f.NiceToHaveQualifications = listField(raw, "niceToHaveQualifications", "nice_to_have_qualifications")

	f.ApplicationDeadline = normalizeDeadline(raw)
	f.ApplicationQuestions = normalizeQuestions(firstValue(raw, "applicationQuestions", "application_questions", "questions"))

	f.PerksAndBenefits = bareListField(raw, "perksAndBenefits", "perks_and_benefits", "perks", "benefits")
	f.Skills = bareListField(raw, "skills", "ai_skills")

	return f
}

// firstValue returns the first present key's value, in priority order.
func firstValue(raw map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := raw[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

// scalarField resolves a scalar through its alias chain and coerces the value
// to a trimmed string.
func scalarField(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := coerceString(raw[key]); s != "" {
			return s
		}
	}
	return ""
}

// coerceString renders a raw JSON value as a string. Numbers keep their
// shortest decimal form; anything non-scalar collapses to "".
func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case json.Number:
		return val.String()
	default:
		return ""
	}
}

// listField resolves a list-editing field: always at least one (possibly
// blank) element.
func listField(raw map[string]any, keys ...string) []string {
	items := coerceStringList(firstValue(raw, keys...))
	if len(items) == 0 {
		return []string{""}
	}
	return items
}

// bareListField resolves a plain collection field: empty means empty.
func bareListField(raw map[string]any, keys ...string) []string {
	items := coerceStringList(firstValue(raw, keys...))
	if items == nil {
		return []string{}
	}
	return items
}

// coerceStringList turns a raw value into a flat list of strings. A native
// sequence is used as-is; a string is tried as JSON first and then split on
// commas; any other non-empty scalar is wrapped as a single element.
func coerceStringList(v any) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case []string:
		return append([]string(nil), val...)
	case []any:
		items := make([]string, 0, len(val))
		for _, item := range val {
			items = append(items, coerceString(item))
		}
		return items
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return nil
		}
		if strings.HasPrefix(trimmed, "[") {
			var parsed []any
			if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
				items := make([]string, 0, len(parsed))
				for _, item := range parsed {
					items = append(items, coerceString(item))
				}
				return items
			}
		}
		if strings.Contains(trimmed, ",") {
			parts := strings.Split(trimmed, ",")
			items := make([]string, 0, len(parts))
			for _, part := range parts {
				items = append(items, strings.TrimSpace(part))
			}
			return items
		}
		return []string{trimmed}
	default:
		if s := coerceString(v); s != "" {
			return []string{s}
		}
		return nil
	}
}

// normalizeDeadline accepts a {date,time} record, a combined
// "YYYY-MM-DD HH:MM" string, or split *_date/*_time keys.
func normalizeDeadline(raw map[string]any) Deadline {
	switch val := firstValue(raw, "applicationDeadline", "application_deadline").(type) {
	case map[string]any:
		return Deadline{
			Date: coerceString(firstValue(val, "date")),
			Time: coerceString(firstValue(val, "time")),
		}
	case string:
		return splitDeadline(val)
	}

	date := scalarField(raw, "applicationDeadlineDate", "application_deadline_date", "deadline_date")
	timeStr := scalarField(raw, "applicationDeadlineTime", "application_deadline_time", "deadline_time")
	if date != "" || timeStr != "" {
		return Deadline{Date: date, Time: truncateTime(timeStr)}
	}
	return Deadline{}
}

// splitDeadline splits a combined timestamp on the first space. The time part
// is truncated to HH:MM.
func splitDeadline(s string) Deadline {
	s = strings.TrimSpace(s)
	if s == "" {
		return Deadline{}
	}
	date, rest, found := strings.Cut(s, " ")
	if !found {
		return Deadline{Date: date}
	}
	return Deadline{Date: date, Time: truncateTime(rest)}
}

func truncateTime(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 5 {
		return s[:5]
	}
	return s
}

// normalizeQuestions flattens a heterogeneous sequence of question records.
// Unknown or malformed entries become empty-shell questions rather than
// failing the whole posting.
func normalizeQuestions(v any) []Question {
	items, ok := v.([]any)
	if !ok {
		return []Question{}
	}
	questions := make([]Question, 0, len(items))
	for _, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			questions = append(questions, Question{Type: QuestionText})
			continue
		}
		questions = append(questions, normalizeQuestion(record))
	}
	return questions
}

func normalizeQuestion(record map[string]any) Question {
	q := Question{
		Question:   scalarField(record, "question", "question_text", "text"),
		Type:       normalizeQuestionType(scalarField(record, "type", "question_type")),
		AutoReject: coerceBool(firstValue(record, "autoReject", "auto_reject")),
	}

	switch q.Type {
	case QuestionYesNo:
		q.Options = []string{"Yes", "No"}
	case QuestionSingle, QuestionMulti:
		q.Options = normalizeOptions(firstValue(record, "options", "choices"))
	}

	if q.AutoReject {
		answer := firstValue(record, "correctAnswer", "correct_answer")
		switch q.Type {
		case QuestionSingle, QuestionYesNo:
			if items := coerceStringList(answer); len(items) > 0 {
				q.CorrectAnswer = items[0]
			}
		case QuestionMulti, QuestionText:
			q.CorrectAnswers = coerceStringList(answer)
		}
	}
	return q
}

func normalizeQuestionType(s string) QuestionType {
	switch QuestionType(strings.ToLower(s)) {
	case QuestionSingle:
		return QuestionSingle
	case QuestionMulti:
		return QuestionMulti
	case QuestionYesNo:
		return QuestionYesNo
	default:
		return QuestionText
	}
}

// normalizeOptions accepts a JSON string, a plain sequence of strings, or a
// sequence of {option_value} records.
func normalizeOptions(v any) []string {
	if items, ok := v.([]any); ok {
		options := make([]string, 0, len(items))
		for _, item := range items {
			if record, ok := item.(map[string]any); ok {
				options = append(options, scalarField(record, "option_value", "optionValue", "value", "label"))
				continue
			}
			options = append(options, coerceString(item))
		}
		return options
	}
	if items := coerceStringList(v); items != nil {
		return items
	}
	return []string{}
}

func coerceBool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return strings.EqualFold(strings.TrimSpace(val), "true")
	case float64:
		return val != 0
	default:
		return false
	}
}
