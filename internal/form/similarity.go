package form

import (
	"encoding/json"
	"sort"
	"strings"
)

// Similarity policy thresholds, in percent.
const (
	// BlockThreshold is the score at which a duplicate is refused outright.
	BlockThreshold = 90
	// WarnThreshold is the score at which a duplicate draws a warning but
	// may still be submitted.
	WarnThreshold = 75
)

// similarityFieldCount is the fixed denominator of the score: 10 scalar
// fields, 4 list fields, and the question sequence.
const similarityFieldCount = 15

// Verdict is the outcome of the duplicate similarity policy.
type Verdict int

// Verdicts, from least to most restrictive.
const (
	VerdictOK Verdict = iota
	VerdictWarn
	VerdictBlock
)

// SimilarityReport quantifies how close a candidate duplicate is to its
// source posting.
type SimilarityReport struct {
	Score   float64 `json:"score"`
	Matched int     `json:"matched"`
	Total   int     `json:"total"`
}

// Similarity computes the field-overlap score between a source posting and a
// candidate duplicate: matched fields over a fixed 15-field total, as a 0-100
// percentage.
func Similarity(source, candidate PostingForm) SimilarityReport {
	matched := 0

	scalarPairs := [][2]string{
		{source.JobTitle, candidate.JobTitle},
		{source.Location, candidate.Location},
		{string(source.RemoteOptions), string(candidate.RemoteOptions)},
		{string(source.WorkType), string(candidate.WorkType)},
		{string(source.PayType), string(candidate.PayType)},
		{source.PayAmount, candidate.PayAmount},
		{JoinCourses(source.RecommendedCourses), JoinCourses(candidate.RecommendedCourses)},
		{source.JobDescription, candidate.JobDescription},
		{source.JobSummary, candidate.JobSummary},
		{source.MaxApplicants, candidate.MaxApplicants},
	}
	for _, pair := range scalarPairs {
		if foldEqual(pair[0], pair[1]) {
			matched++
		}
	}

	listPairs := [][2][]string{
		{source.Responsibilities, candidate.Responsibilities},
		{source.MustHaveQualifications, candidate.MustHaveQualifications},
		{source.NiceToHaveQualifications, candidate.NiceToHaveQualifications},
		{source.PerksAndBenefits, candidate.PerksAndBenefits},
	}
	for _, pair := range listPairs {
		if sortedJSON(pair[0]) == sortedJSON(pair[1]) {
			matched++
		}
	}

	// Questions compare order-sensitively: reordering them is a real edit.
	if structuralJSON(source.ApplicationQuestions) == structuralJSON(candidate.ApplicationQuestions) {
		matched++
	}

	return SimilarityReport{
		Score:   100 * float64(matched) / float64(similarityFieldCount),
		Matched: matched,
		Total:   similarityFieldCount,
	}
}

// DuplicateVerdict applies the duplicate policy to a report. A changed title
// suppresses all warnings regardless of score: retitling is taken as
// sufficient evidence of differentiation.
func DuplicateVerdict(source, candidate PostingForm, report SimilarityReport) Verdict {
	if !foldEqual(source.JobTitle, candidate.JobTitle) {
		return VerdictOK
	}
	switch {
	case report.Score >= BlockThreshold:
		return VerdictBlock
	case report.Score >= WarnThreshold:
		return VerdictWarn
	default:
		return VerdictOK
	}
}

func foldEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// sortedJSON serializes a sorted copy of a list, so ordering differences do
// not count as edits for list fields.
func sortedJSON(items []string) string {
	sorted := append([]string(nil), items...)
	sort.Strings(sorted)
	return structuralJSON(sorted)
}

func structuralJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
