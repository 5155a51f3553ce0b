package formula

// ParseError reports where tokenizing or parsing stopped unexpectedly. The
// fragment is the offending character or token text.
type ParseError struct {
	Fragment string
}

func (e *ParseError) Error() string {
	return "Expression error at: " + e.Fragment
}

// DivisionByZeroError reports a division by zero during evaluation.
type DivisionByZeroError struct{}

func (e *DivisionByZeroError) Error() string {
	return "Division by zero"
}

// TypeMismatchError reports operand types incompatible with an operator.
type TypeMismatchError struct {
	Message string
}

func (e *TypeMismatchError) Error() string {
	return e.Message
}

// errArithmetic is the canonical operand-type failure for + - * / ^ and
// unary minus.
func errArithmetic() error {
	return &TypeMismatchError{Message: "Expression could not be evaluated as decimal or date arithmetic"}
}

// errComparison is the operand-type failure for ordering comparisons over
// values with no common coercible type.
func errComparison() error {
	return &TypeMismatchError{Message: "Expressions could not be compared as numbers, strings or dates"}
}
