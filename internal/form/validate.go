package form

import "strings"

// Step identifies a wizard step.
type Step string

// Wizard steps
const (
	StepCreate       Step = "create"
	StepVerification Step = "verification"
	StepWrite        Step = "write"
	StepManage       Step = "manage"
	StepPreview      Step = "preview"

	// StepPosted is the terminal success screen. Only the create flow
	// reaches it, and only via MarkPosted.
	StepPosted Step = "posted"
)

// Flow identifies a wizard call site. The four flows share the same engine
// and differ only in their step sequence and rules.
type Flow string

// Wizard flows
const (
	FlowCreate    Flow = "create"
	FlowDraft     Flow = "draft"
	FlowDuplicate Flow = "duplicate"
	FlowQuickEdit Flow = "quick-edit"
)

// Rules captures the per-flow behavior that historically drifted between the
// four wizard variants. Divergences are configuration here, never separate
// validator implementations.
type Rules struct {
	Steps []Step

	// RequirePayType controls whether the create step treats payType as
	// required. The original create flow left it optional while the
	// duplicate and quick-edit flows required it; kept as a per-flow rule.
	RequirePayType bool

	// AllowJump permits direct step jumps via the clickable indicator,
	// bypassing per-step gates. Submit still re-validates everything.
	AllowJump bool

	// HasPostedStep marks flows with a terminal success screen.
	HasPostedStep bool

	// CheckSimilarity gates submission on the duplicate similarity policy.
	CheckSimilarity bool
}

var fiveSteps = []Step{StepCreate, StepVerification, StepWrite, StepManage, StepPreview}
var fourSteps = []Step{StepCreate, StepWrite, StepManage, StepPreview}

var flowRules = map[Flow]Rules{
	FlowCreate:    {Steps: fiveSteps, HasPostedStep: true},
	FlowDraft:     {Steps: fiveSteps},
	FlowDuplicate: {Steps: fourSteps, RequirePayType: true, AllowJump: true, CheckSimilarity: true},
	FlowQuickEdit: {Steps: fiveSteps, RequirePayType: true},
}

// RulesFor returns the rules table entry for a flow. Unknown flows get the
// create flow's rules.
func RulesFor(flow Flow) Rules {
	if rules, ok := flowRules[flow]; ok {
		return rules
	}
	return flowRules[FlowCreate]
}

// ValidateStep computes the error map for one step: field name → is invalid.
// Fields outside the step are absent from the map. Display of the errors is
// the caller's concern; see Wizard.ShowErrors.
func ValidateStep(f PostingForm, step Step, rules Rules) map[string]bool {
	errs := map[string]bool{}
	switch step {
	case StepCreate:
		errs["jobTitle"] = blank(f.JobTitle)
		errs["location"] = blank(f.Location)
		errs["remoteOptions"] = blank(string(f.RemoteOptions))
		errs["workType"] = blank(string(f.WorkType))
		errs["recommendedCourse"] = len(f.RecommendedCourses) == 0
		if rules.RequirePayType {
			errs["payType"] = blank(string(f.PayType))
		}
	case StepWrite:
		errs["jobDescription"] = blank(f.JobDescription)
		errs["jobSummary"] = blank(f.JobSummary)
		errs["responsibilities"] = allBlank(f.Responsibilities)
		errs["mustHaveQualifications"] = allBlank(f.MustHaveQualifications)
	}
	// verification, manage, and preview steps have no required fields
	return errs
}

// ValidateAll merges the error maps of every step in the flow; the submission
// gate re-runs this regardless of how the user navigated.
func ValidateAll(f PostingForm, rules Rules) map[string]bool {
	errs := map[string]bool{}
	for _, step := range rules.Steps {
		for field, invalid := range ValidateStep(f, step, rules) {
			errs[field] = errs[field] || invalid
		}
	}
	return errs
}

// Valid reports whether an error map permits advancing: every value false.
func Valid(errs map[string]bool) bool {
	for _, invalid := range errs {
		if invalid {
			return false
		}
	}
	return true
}

// InvalidFields lists the fields flagged in an error map, for error messages.
func InvalidFields(errs map[string]bool) []string {
	fields := make([]string, 0, len(errs))
	for field, invalid := range errs {
		if invalid {
			fields = append(fields, field)
		}
	}
	return fields
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// allBlank reports whether every element of a list-editing field trims to
// empty. A single blank row is the field's untouched default.
func allBlank(items []string) bool {
	for _, item := range items {
		if !blank(item) {
			return false
		}
	}
	return true
}
