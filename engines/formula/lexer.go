package formula

import (
	"strings"
	"unicode"
)

// tokenize splits an expression into tokens. Whitespace between tokens is
// insignificant. Single-quoted strings are not supported and surface as a
// lex error on the quote, matching the error the parser would report.
func tokenize(input string) ([]Token, error) {
	runes := []rune(input)
	var tokens []Token

	i := 0
	for i < len(runes) {
		ch := runes[i]

		switch {
		case unicode.IsSpace(ch):
			i++

		case ch >= '0' && ch <= '9':
			start := i
			seenPoint := false
			for i < len(runes) && (isDigit(runes[i]) || (runes[i] == '.' && !seenPoint && i+1 < len(runes) && isDigit(runes[i+1]))) {
				if runes[i] == '.' {
					seenPoint = true
				}
				i++
			}
			tokens = append(tokens, Token{Type: TokenNumber, Value: string(runes[start:i]), Pos: start})

		case ch == '"':
			value, next, ok := readString(runes, i)
			if !ok {
				return nil, &ParseError{Fragment: `"`}
			}
			tokens = append(tokens, Token{Type: TokenString, Value: value, Pos: i})
			i = next

		case isIdentStart(ch):
			start := i
			for i < len(runes) && isPathRune(runes[i]) {
				i++
			}
			value := string(runes[start:i])
			tokenType := TokenIdentifier
			if strings.EqualFold(value, "true") || strings.EqualFold(value, "false") {
				tokenType = TokenBool
			}
			tokens = append(tokens, Token{Type: tokenType, Value: value, Pos: start})

		case ch == '(':
			tokens = append(tokens, Token{Type: TokenLParen, Value: "(", Pos: i})
			i++
		case ch == ')':
			tokens = append(tokens, Token{Type: TokenRParen, Value: ")", Pos: i})
			i++
		case ch == ',':
			tokens = append(tokens, Token{Type: TokenComma, Value: ",", Pos: i})
			i++

		case ch == '<':
			if i+1 < len(runes) && (runes[i+1] == '>' || runes[i+1] == '=') {
				tokens = append(tokens, Token{Type: TokenOperator, Value: string(runes[i : i+2]), Pos: i})
				i += 2
			} else {
				tokens = append(tokens, Token{Type: TokenOperator, Value: "<", Pos: i})
				i++
			}
		case ch == '>':
			if i+1 < len(runes) && runes[i+1] == '=' {
				tokens = append(tokens, Token{Type: TokenOperator, Value: ">=", Pos: i})
				i += 2
			} else {
				tokens = append(tokens, Token{Type: TokenOperator, Value: ">", Pos: i})
				i++
			}
		case strings.ContainsRune("+-*/^=&", ch):
			tokens = append(tokens, Token{Type: TokenOperator, Value: string(ch), Pos: i})
			i++

		default:
			return nil, &ParseError{Fragment: string(ch)}
		}
	}

	tokens = append(tokens, Token{Type: TokenEOF, Value: "end of expression", Pos: len(runes)})
	return tokens, nil
}

// readString reads a double-quoted string literal starting at the opening
// quote, treating "" as an escaped embedded quote. Returns the unescaped
// value and the index just past the closing quote.
func readString(runes []rune, start int) (string, int, bool) {
	var b strings.Builder
	i := start + 1
	for i < len(runes) {
		if runes[i] == '"' {
			if i+1 < len(runes) && runes[i+1] == '"' {
				b.WriteRune('"')
				i += 2
				continue
			}
			return b.String(), i + 1, true
		}
		b.WriteRune(runes[i])
		i++
	}
	return "", 0, false
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isPathRune(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' || ch == '.'
}
