package form

import "strings"

// coursePattern maps free-text markers to a canonical program title. Matching
// is case-insensitive substring containment, checked in order.
type coursePattern struct {
	markers   []string
	canonical string
}

var coursePatterns = []coursePattern{
	{[]string{"bsit", "information technology"}, "BS - Information Technology"},
	{[]string{"bscs", "computer science"}, "BS - Computer Science"},
	{[]string{"bsis", "information systems"}, "BS - Information Systems"},
	{[]string{"bscpe", "computer engineering"}, "BS - Computer Engineering"},
}

// CanonicalCourse maps a free-text course value onto one of the known program
// titles. Values matching no known program pass through trimmed.
func CanonicalCourse(s string) string {
	trimmed := strings.TrimSpace(s)
	lower := strings.ToLower(trimmed)
	for _, pattern := range coursePatterns {
		for _, marker := range pattern.markers {
			if strings.Contains(lower, marker) {
				return pattern.canonical
			}
		}
	}
	return trimmed
}

// normalizeCourses coerces a raw course value (true list, comma-joined string,
// or single value) into a list of canonical program titles. Blank segments are
// dropped.
func normalizeCourses(v any) []string {
	segments := coerceStringList(v)
	courses := make([]string, 0, len(segments))
	for _, segment := range segments {
		if course := CanonicalCourse(segment); course != "" {
			courses = append(courses, course)
		}
	}
	return courses
}

// JoinCourses renders the course list in the legacy comma-joined wire form.
func JoinCourses(courses []string) string {
	return strings.Join(courses, ", ")
}
