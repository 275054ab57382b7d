// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jcabanilla/internhub/internal/form"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintPostingSummary outputs a human-readable summary of a normalized posting.
func (p *Printer) PrintPostingSummary(f form.PostingForm) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Title:    %s\n", f.JobTitle))
	sb.WriteString(fmt.Sprintf("Location: %s\n", f.Location))
	sb.WriteString(fmt.Sprintf("Type:     %s / %s\n", f.WorkType, f.RemoteOptions))
	if f.PayType != "" && f.PayType != form.PayNone {
		sb.WriteString(fmt.Sprintf("Pay:      %s (%s)\n", f.PayAmount, f.PayType))
	}
	if !f.ApplicationDeadline.IsZero() {
		sb.WriteString(fmt.Sprintf("Deadline: %s %s\n", f.ApplicationDeadline.Date, f.ApplicationDeadline.Time))
	}
	sb.WriteString("\n")

	if len(f.RecommendedCourses) > 0 {
		sb.WriteString("Courses:\n")
		for _, course := range f.RecommendedCourses {
			sb.WriteString(fmt.Sprintf("  • %s\n", course))
		}
		sb.WriteString("\n")
	}

	responsibilities := nonBlank(f.Responsibilities)
	if len(responsibilities) > 0 {
		sb.WriteString("Responsibilities:\n")
		count := min(len(responsibilities), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", responsibilities[i]))
		}
		if len(responsibilities) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(responsibilities)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(f.ApplicationQuestions) > 0 {
		sb.WriteString(fmt.Sprintf("Questions: %d", len(f.ApplicationQuestions)))
		autoReject := 0
		for _, q := range f.ApplicationQuestions {
			if q.AutoReject {
				autoReject++
			}
		}
		if autoReject > 0 {
			sb.WriteString(fmt.Sprintf(" (%d auto-reject)", autoReject))
		}
		sb.WriteString("\n")
	}

	p.printBox("JOB POSTING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidation outputs the submission-gate result for a posting.
func (p *Printer) PrintValidation(errs map[string]bool) {
	if form.Valid(errs) {
		p.printBox("VALIDATION", "All required fields present.")
		return
	}

	fields := form.InvalidFields(errs)
	sort.Strings(fields)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d field(s) incomplete:\n\n", len(fields)))
	for _, field := range fields {
		sb.WriteString(fmt.Sprintf("  ✗ %s\n", field))
	}

	p.printBox("VALIDATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSimilarityReport outputs a duplicate-similarity comparison.
func (p *Printer) PrintSimilarityReport(report form.SimilarityReport, verdict form.Verdict) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Score:   %.1f%% (%d of %d fields match)\n",
		report.Score, report.Matched, report.Total))

	switch verdict {
	case form.VerdictBlock:
		sb.WriteString("Verdict: BLOCK (postings are near-identical)")
	case form.VerdictWarn:
		sb.WriteString("Verdict: WARN (postings are very similar)")
	default:
		sb.WriteString("Verdict: OK")
	}

	p.printBox("SIMILARITY", sb.String())
}

func nonBlank(items []string) []string {
	var out []string
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			out = append(out, item)
		}
	}
	return out
}
