// Package clean provides plain-text cleanup for description fields that
// arrive as rich-text markup from the posting editor.
package clean

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var multiSpace = regexp.MustCompile(`[ \t]+`)
var multiNewline = regexp.MustCompile(`\n{3,}`)

// Text strips markup from a description value. Plain-text input passes
// through trimmed; parse failures degrade to the trimmed input rather than
// erroring, since cleanup is best-effort by contract.
func Text(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.Contains(trimmed, "<") {
		return trimmed
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(trimmed))
	if err != nil {
		return trimmed
	}
	doc.Find("script, style, noscript").Remove()

	// Keep paragraph and list-item boundaries as line breaks.
	doc.Find("p, li, br, div").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml("\n")
	})

	return Whitespace(doc.Find("body").Text())
}

// Whitespace collapses runs of spaces and blank lines and trims each line.
func Whitespace(s string) string {
	s = multiSpace.ReplaceAllString(s, " ")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")
	s = multiNewline.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
