package form

import (
	"fmt"
	"sort"
	"strings"
)

// InvalidFormError reports the fields that failed the submission gate.
type InvalidFormError struct {
	Fields []string
}

func (e *InvalidFormError) Error() string {
	fields := append([]string(nil), e.Fields...)
	sort.Strings(fields)
	return fmt.Sprintf("posting is incomplete: %s", strings.Join(fields, ", "))
}

// TooSimilarError reports a duplicate submission blocked by the similarity
// policy. It is not retryable without editing the posting.
type TooSimilarError struct {
	Score float64
}

func (e *TooSimilarError) Error() string {
	return fmt.Sprintf("posting is %.1f%% identical to its source; edit it before publishing", e.Score)
}

// StepError reports an illegal wizard transition.
type StepError struct {
	Message string
}

func (e *StepError) Error() string {
	return e.Message
}
