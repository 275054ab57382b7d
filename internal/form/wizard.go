package form

// Wizard is the multi-step posting form state machine. It owns an exclusive
// copy of the form, the current step, the step-scoped error map, and the
// "has attempted" display flag. One Wizard instance backs one open form; it
// is not safe for concurrent use and does not need to be.
type Wizard struct {
	flow  Flow
	rules Rules

	index     int // 0-based position in rules.Steps
	form      PostingForm
	source    *PostingForm // duplicate flow only
	errors    map[string]bool
	attempted bool
	posted    bool
}

// NewWizard creates a wizard for a flow, optionally seeded from an external
// record (draft resume, quick-edit row, duplicate source). The seed is run
// through Normalize so the wizard only ever holds canonical data.
func NewWizard(flow Flow, seed map[string]any) *Wizard {
	w := &Wizard{
		flow:  flow,
		rules: RulesFor(flow),
		form:  NewPostingForm(),
	}
	if seed != nil {
		w.form = Normalize(seed)
	}
	if flow == FlowDuplicate {
		source := w.form
		w.source = &source
	}
	return w
}

// Flow returns the wizard's call-site flow.
func (w *Wizard) Flow() Flow { return w.flow }

// Form returns the live form for editing. Mutations invalidate nothing until
// the next transition re-validates.
func (w *Wizard) Form() *PostingForm { return &w.form }

// Step returns the active step, or StepPosted on the success screen.
func (w *Wizard) Step() Step {
	if w.posted {
		return StepPosted
	}
	return w.rules.Steps[w.index]
}

// StepNumber returns the 1-based step counter the step indicator displays.
// The posted success screen counts as one past the last step.
func (w *Wizard) StepNumber() int {
	if w.posted {
		return len(w.rules.Steps) + 1
	}
	return w.index + 1
}

// Errors returns the most recently computed error map.
func (w *Wizard) Errors() map[string]bool { return w.errors }

// ShowErrors reports whether errors should be displayed: only after the user
// has attempted to advance at least once on the current step.
func (w *Wizard) ShowErrors() bool { return w.attempted }

// Next validates the active step and advances if it passes. On failure the
// wizard stays put, surfaces the error map, and reports false.
func (w *Wizard) Next() bool {
	errs := ValidateStep(w.form, w.Step(), w.rules)
	if !Valid(errs) {
		w.errors = errs
		w.attempted = true
		return false
	}
	if w.index < len(w.rules.Steps)-1 {
		w.index++
	}
	w.errors = nil
	w.attempted = false
	return true
}

// Prev steps back unconditionally; earlier steps are never re-validated on
// the way back. The posted success screen has no backward transition.
func (w *Wizard) Prev() {
	if w.posted {
		return
	}
	if w.index > 0 {
		w.index--
		w.attempted = false
	}
}

// GoToStep jumps directly to a 1-based step, without a validation gate. Only
// flows with a clickable step indicator allow it; the final submit still
// re-validates everything.
func (w *Wizard) GoToStep(n int) error {
	if !w.rules.AllowJump {
		return &StepError{Message: "direct step navigation is not available in this flow"}
	}
	if n < 1 || n > len(w.rules.Steps) {
		return &StepError{Message: "step out of range"}
	}
	w.index = n - 1
	w.attempted = false
	return nil
}

// Submit re-runs full validation for every step regardless of navigation
// history, then applies the duplicate similarity policy where the flow
// requires it. On success it returns the canonical form for the submission
// adapter; the wizard itself performs no I/O.
func (w *Wizard) Submit() (PostingForm, error) {
	errs := ValidateAll(w.form, w.rules)
	if !Valid(errs) {
		w.errors = errs
		w.attempted = true
		return PostingForm{}, &InvalidFormError{Fields: InvalidFields(errs)}
	}
	if w.rules.CheckSimilarity && w.source != nil {
		report := Similarity(*w.source, w.form)
		if DuplicateVerdict(*w.source, w.form, report) == VerdictBlock {
			return PostingForm{}, &TooSimilarError{Score: report.Score}
		}
	}
	w.errors = nil
	w.attempted = false
	return w.form, nil
}

// SimilarityStatus returns the current similarity report and verdict against
// the duplicate source, for banner display. Flows without a source report a
// zero score and VerdictOK.
func (w *Wizard) SimilarityStatus() (SimilarityReport, Verdict) {
	if w.source == nil {
		return SimilarityReport{Total: similarityFieldCount}, VerdictOK
	}
	report := Similarity(*w.source, w.form)
	return report, DuplicateVerdict(*w.source, w.form, report)
}

// MarkPosted moves to the terminal success screen. Only the create flow has
// one, and only from its final step.
func (w *Wizard) MarkPosted() {
	if w.rules.HasPostedStep && w.index == len(w.rules.Steps)-1 {
		w.posted = true
	}
}

// Reset returns to step one with a blanked form, the only transition out of
// the posted screen.
func (w *Wizard) Reset() {
	w.index = 0
	w.form = NewPostingForm()
	w.errors = nil
	w.attempted = false
	w.posted = false
}
