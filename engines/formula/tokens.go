// Package formula implements the new-syntax expression engine: a tokenizer,
// a precedence-climbing parser and a typed evaluator for expressions such as
// `UPPER(contact.first_name) & " " & flow.water_source`.
package formula

import "fmt"

// TokenType classifies a lexical atom within an expression.
type TokenType int

const (
	// TokenEOF marks the end of the token stream.
	TokenEOF TokenType = iota

	// TokenNumber is a numeric literal such as 1 or 2.5.
	TokenNumber

	// TokenString is a double-quoted string literal; "" escapes a quote.
	TokenString

	// TokenBool is a case-insensitive TRUE or FALSE literal.
	TokenBool

	// TokenIdentifier is a function name or dotted variable path.
	TokenIdentifier

	// TokenOperator is one of + - * / ^ & = <> > >= < <=.
	TokenOperator

	// TokenLParen, TokenRParen and TokenComma are the grouping atoms.
	TokenLParen
	TokenRParen
	TokenComma
)

// Token is a single lexical atom with its source position.
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

func (t Token) String() string {
	if t.Type == TokenEOF {
		return "<eof>"
	}
	return fmt.Sprintf("%q", t.Value)
}
