package formula

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Operator precedence, lowest first. Comparisons do not chain: a = b = c is
// a parse error at the second "=".
var (
	comparisonOps     = opSet("=", "<>", ">", ">=", "<", "<=")
	additiveOps       = opSet("+", "-")
	multiplicativeOps = opSet("*", "/")
)

// Parse tokenizes and parses an expression into its tree form. The returned
// error is always a *ParseError carrying the fragment where parsing stopped.
func Parse(input string) (Node, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}
	node, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != TokenEOF {
		return nil, p.errorAt(p.peek())
	}
	return node, nil
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *parser) advance() Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *parser) errorAt(tok Token) error {
	return &ParseError{Fragment: tok.Value}
}

// parseExpression handles the lowest precedence level: a single optional
// binary comparison over concatenations.
func (p *parser) parseExpression() (Node, error) {
	lhs, err := p.parseConcatenation()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.Type == TokenOperator && comparisonOps[tok.Value] {
		p.advance()
		rhs, err := p.parseConcatenation()
		if err != nil {
			return nil, err
		}
		return &BinaryOp{Op: tok.Value, LHS: lhs, RHS: rhs}, nil
	}
	return lhs, nil
}

// parseConcatenation handles &, which binds looser than arithmetic so that
// "n: " & 1 + 2 concatenates the sum.
func (p *parser) parseConcatenation() (Node, error) {
	lhs, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		if tok.Type != TokenOperator || tok.Value != "&" {
			return lhs, nil
		}
		p.advance()

		rhs, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		lhs = &BinaryOp{Op: "&", LHS: lhs, RHS: rhs}
	}
}

func (p *parser) parseAdditive() (Node, error) {
	lhs, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		if tok.Type != TokenOperator || !additiveOps[tok.Value] {
			return lhs, nil
		}
		p.advance()

		rhs, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		lhs = &BinaryOp{Op: tok.Value, LHS: lhs, RHS: rhs}
	}
}

func (p *parser) parseMultiplicative() (Node, error) {
	lhs, err := p.parsePower()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		if tok.Type != TokenOperator || !multiplicativeOps[tok.Value] {
			return lhs, nil
		}
		p.advance()

		rhs, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		lhs = &BinaryOp{Op: tok.Value, LHS: lhs, RHS: rhs}
	}
}

// parsePower handles the right-associative ^ operator.
func (p *parser) parsePower() (Node, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.Type == TokenOperator && tok.Value == "^" {
		p.advance()
		rhs, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		return &BinaryOp{Op: "^", LHS: lhs, RHS: rhs}, nil
	}
	return lhs, nil
}

// parseUnary handles leading minus, which binds tighter than ^ so that
// -2^2 is (-2)^2.
func (p *parser) parseUnary() (Node, error) {
	if tok := p.peek(); tok.Type == TokenOperator && tok.Value == "-" {
		p.advance()
		expr, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryMinus{Expr: expr}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Node, error) {
	tok := p.peek()

	switch tok.Type {
	case TokenNumber:
		p.advance()
		value, err := decimal.NewFromString(tok.Value)
		if err != nil {
			return nil, p.errorAt(tok)
		}
		return &Literal{Value: value}, nil

	case TokenString:
		p.advance()
		return &Literal{Value: tok.Value}, nil

	case TokenBool:
		p.advance()
		return &Literal{Value: strings.EqualFold(tok.Value, "true")}, nil

	case TokenIdentifier:
		p.advance()
		if p.peek().Type == TokenLParen {
			return p.parseCall(tok.Value)
		}
		return &VariableRef{Path: tok.Value}, nil

	case TokenLParen:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if closing := p.peek(); closing.Type != TokenRParen {
			return nil, p.errorAt(closing)
		}
		p.advance()
		return expr, nil
	}

	return nil, p.errorAt(tok)
}

// parseCall parses the argument list of name(...). The opening paren is the
// current token.
func (p *parser) parseCall(name string) (Node, error) {
	p.advance() // consume (

	call := &FunctionCall{Name: name}
	if p.peek().Type == TokenRParen {
		p.advance()
		return call, nil
	}

	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)

		switch tok := p.peek(); tok.Type {
		case TokenComma:
			p.advance()
		case TokenRParen:
			p.advance()
			return call, nil
		default:
			return nil, p.errorAt(tok)
		}
	}
}

func opSet(ops ...string) map[string]bool {
	set := make(map[string]bool, len(ops))
	for _, op := range ops {
		set[op] = true
	}
	return set
}
