// Package sections reconstructs titled sections from raw model output.
//
// The model is prompted to mark every section title with the 【…】 bracket
// pair, but the output is free-form text and may deviate. The parser is
// deliberately tolerant: malformed fragments degrade to fewer sections, never
// to an error, so the caller can always render whatever was recognized.
package sections

import (
	"strings"

	"github.com/mzhao/legal-drafter/internal/types"
)

const (
	openMarker  = "【"
	closeMarker = "】"
)

// Parse decomposes a raw response into ordered (title, body) sections.
//
// Text before the first opening marker is preamble and is discarded. A
// fragment with no closing marker is dropped, as is one whose body is blank
// after trimming. Nested markers inside a body are literal text; the parser
// recognizes exactly one level of sectioning. On input with no recognizable
// structure the result is empty, never an error.
func Parse(raw string) []types.ParsedSection {
	parsed := []types.ParsedSection{}

	fragments := strings.Split(raw, openMarker)
	for _, fragment := range fragments[1:] {
		title, body, found := strings.Cut(fragment, closeMarker)
		if !found {
			continue
		}
		body = strings.TrimSpace(body)
		if body == "" {
			continue
		}
		parsed = append(parsed, types.ParsedSection{
			Title: strings.TrimSpace(title),
			Body:  body,
		})
	}

	return parsed
}

// Render flattens parsed sections back into plain text for export, one titled
// block per section.
func Render(sections []types.ParsedSection) string {
	var sb strings.Builder
	for i, s := range sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(s.Title)
		sb.WriteString("\n")
		sb.WriteString(s.Body)
		sb.WriteString("\n")
	}
	return sb.String()
}
