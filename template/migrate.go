package template

import "strings"

// Migrate rewrites legacy notation in stored template text into canonical
// new-syntax form without evaluating anything: @path|filter chains become
// @(FILTER(path)) function nesting, =path becomes @path, and =(expr) becomes
// @(expr). Text already in canonical form is left untouched, so the pass is
// idempotent.
func Migrate(input string) string {
	var output strings.Builder

	for _, span := range Scan(input) {
		switch span.Type {
		case SpanLegacy, SpanFormula:
			output.WriteString(canonical(span))
		default:
			output.WriteString(span.Text)
		}
	}

	return output.String()
}
