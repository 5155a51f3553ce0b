package data

// UndefinedVariableError is returned when a dotted path has no value in the
// context.
type UndefinedVariableError struct {
	Path string
}

func (e *UndefinedVariableError) Error() string {
	return "Undefined variable: " + e.Path
}
