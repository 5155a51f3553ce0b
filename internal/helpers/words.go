package helpers

import (
	"regexp"
	"strings"
	"unicode"
)

// wordBreaks matches runs of whitespace, punctuation and symbols, the
// characters that separate words when not splitting by spaces only.
var wordBreaks = regexp.MustCompile(`[\s\p{P}\p{S}]+`)

// Words splits text into words. When bySpacesOnly is false, punctuation such
// as hyphens also breaks words, so "abc-def" counts as two.
func Words(text string, bySpacesOnly bool) []string {
	if bySpacesOnly {
		return strings.Fields(text)
	}

	var words []string
	for _, word := range wordBreaks.Split(text, -1) {
		if word != "" {
			words = append(words, word)
		}
	}
	return words
}

// FirstWord returns the first space-separated word of text, or "" if there is
// none.
func FirstWord(text string) string {
	if words := strings.Fields(text); len(words) > 0 {
		return words[0]
	}
	return ""
}

// RemoveFirstWord returns text with its first space-separated word and the
// following whitespace removed.
func RemoveFirstWord(text string) string {
	trimmed := strings.TrimLeft(text, " \t\n")
	if idx := strings.IndexFunc(trimmed, unicode.IsSpace); idx >= 0 {
		return strings.TrimLeft(trimmed[idx:], " \t\n")
	}
	return ""
}

// Proper title-cases text: the first letter of every word is uppercased and
// the rest lowercased.
func Proper(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	startOfWord := true
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			startOfWord = true
			b.WriteRune(r)
		case startOfWord:
			b.WriteRune(unicode.ToUpper(r))
			startOfWord = false
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
