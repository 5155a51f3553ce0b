// Package template scans raw template text into literal and expression
// spans, renders templates against an evaluation context with per-expression
// fault containment, and migrates legacy syntax into canonical form.
package template

import (
	"strings"
	"unicode"

	"github.com/robbyt/go-flowexpr/engines/legacy"
)

// SpanType tags a scanned region of template text.
type SpanType int

const (
	// SpanLiteral is plain text, passed through unchanged.
	SpanLiteral SpanType = iota

	// SpanLegacy is an old-style @path or @path|filter|... region.
	SpanLegacy

	// SpanFormula is a new-style =expr, =(expr) or canonical @(expr) region.
	SpanFormula
)

// Span is one scanned region. Text always holds the raw source. Legacy spans
// carry the resolved path and filter chain; formula spans carry the
// expression source to parse (parenthesized groups keep their parens so
// parse errors point at the right character).
type Span struct {
	Type    SpanType
	Text    string
	Path    string
	Filters []legacy.Filter
	Expr    string
	Bare    bool
}

// Scan splits template text into an ordered sequence of spans. An @ preceded
// by an identifier character is literal text, so email addresses and twitter
// handles embedded in words are never mis-read as expressions.
func Scan(input string) []Span {
	runes := []rune(input)
	var spans []Span

	litStart := 0
	flushLiteral := func(end int) {
		if end > litStart {
			spans = append(spans, Span{Type: SpanLiteral, Text: string(runes[litStart:end])})
		}
	}

	i := 0
	for i < len(runes) {
		ch := runes[i]

		if ch == '@' && (i == 0 || !isIdentRune(runes[i-1])) {
			if span, next, ok := scanAt(runes, i); ok {
				flushLiteral(i)
				spans = append(spans, span)
				i, litStart = next, next
				continue
			}
		}

		if ch == '=' {
			if span, next, ok := scanEquals(runes, i); ok {
				flushLiteral(i)
				spans = append(spans, span)
				i, litStart = next, next
				continue
			}
		}

		i++
	}
	flushLiteral(len(runes))

	return spans
}

// scanAt reads a span starting at an @: either a canonical @(expr) group or
// a legacy path with optional filters.
func scanAt(runes []rune, start int) (Span, int, bool) {
	i := start + 1
	if i >= len(runes) {
		return Span{}, 0, false
	}

	if runes[i] == '(' {
		end, ok := scanBalanced(runes, i)
		if !ok {
			return Span{}, 0, false
		}
		return Span{
			Type: SpanFormula,
			Text: string(runes[start:end]),
			Expr: string(runes[start+1 : end]),
		}, end, true
	}

	if !isIdentStart(runes[i]) {
		return Span{}, 0, false
	}

	pathEnd := i
	for pathEnd < len(runes) && isPathRune(runes[pathEnd]) {
		pathEnd++
	}
	for pathEnd > i && runes[pathEnd-1] == '.' {
		pathEnd-- // a trailing period is sentence punctuation, not path
	}

	path := string(runes[i:pathEnd])
	filters, end := scanFilters(runes, pathEnd)

	return Span{
		Type:    SpanLegacy,
		Text:    string(runes[start:end]),
		Path:    path,
		Filters: filters,
	}, end, true
}

// scanEquals reads a span starting at an =: a parenthesized group, a bare
// path, or a function call without outer parens.
func scanEquals(runes []rune, start int) (Span, int, bool) {
	i := start + 1
	if i >= len(runes) {
		return Span{}, 0, false
	}

	if runes[i] == '(' {
		end, ok := scanBalanced(runes, i)
		if !ok {
			return Span{}, 0, false
		}
		return Span{
			Type: SpanFormula,
			Text: string(runes[start:end]),
			Expr: string(runes[start+1 : end]),
		}, end, true
	}

	if !isIdentStart(runes[i]) {
		return Span{}, 0, false
	}

	pathEnd := i
	for pathEnd < len(runes) && isPathRune(runes[pathEnd]) {
		pathEnd++
	}

	// a following ( makes this a function call; consume the argument group
	if pathEnd < len(runes) && runes[pathEnd] == '(' {
		end, ok := scanBalanced(runes, pathEnd)
		if !ok {
			return Span{}, 0, false
		}
		return Span{
			Type: SpanFormula,
			Text: string(runes[start:end]),
			Expr: string(runes[start+1 : end]),
		}, end, true
	}

	for pathEnd > i && runes[pathEnd-1] == '.' {
		pathEnd--
	}
	if pathEnd == i {
		return Span{}, 0, false
	}

	return Span{
		Type: SpanFormula,
		Text: string(runes[start:pathEnd]),
		Expr: string(runes[start+1 : pathEnd]),
		Bare: true,
	}, pathEnd, true
}

// scanFilters reads zero or more |name or |name:"arg" segments.
func scanFilters(runes []rune, start int) ([]legacy.Filter, int) {
	var filters []legacy.Filter

	i := start
	for i < len(runes) && runes[i] == '|' {
		nameStart := i + 1
		if nameStart >= len(runes) || !isIdentStart(runes[nameStart]) {
			break
		}

		nameEnd := nameStart
		for nameEnd < len(runes) && isIdentRune(runes[nameEnd]) {
			nameEnd++
		}

		filter := legacy.Filter{Name: string(runes[nameStart:nameEnd])}
		next := nameEnd

		if next+1 < len(runes) && runes[next] == ':' && runes[next+1] == '"' {
			closing := indexRune(runes, next+2, '"')
			if closing < 0 {
				break
			}
			filter.Arg = string(runes[next+2 : closing])
			next = closing + 1
		}

		filters = append(filters, filter)
		i = next
	}

	return filters, i
}

// scanBalanced consumes a parenthesized group starting at an opening paren,
// honoring nesting and skipping over double-quoted string literals (where ""
// is an escaped quote and parens are just characters). Returns the index
// just past the matching close paren.
func scanBalanced(runes []rune, start int) (int, bool) {
	depth := 0
	inString := false

	for i := start; i < len(runes); i++ {
		switch {
		case runes[i] == '"':
			inString = !inString
		case inString:
			// string contents are opaque
		case runes[i] == '(':
			depth++
		case runes[i] == ')':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}

// canonical rewrites a span into canonical new-syntax text, used when a
// failed expression is re-emitted and by the migrator.
func canonical(span Span) string {
	switch span.Type {
	case SpanLegacy:
		if len(span.Filters) == 0 {
			return span.Text
		}
		return "@(" + legacy.MigrateChain(span.Path, span.Filters) + ")"

	case SpanFormula:
		if span.Bare {
			return "@" + span.Expr
		}
		if strings.HasPrefix(span.Expr, "(") {
			return "@" + span.Expr
		}
		return "@(" + span.Expr + ")"
	}
	return span.Text
}

func indexRune(runes []rune, start int, target rune) int {
	for i := start; i < len(runes); i++ {
		if runes[i] == target {
			return i
		}
	}
	return -1
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isIdentRune(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_'
}

func isPathRune(ch rune) bool {
	return isIdentRune(ch) || ch == '.'
}
