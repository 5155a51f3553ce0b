package functions

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/robbyt/go-flowexpr/platform/data"
	"github.com/robbyt/go-flowexpr/platform/types"
)

// UndefinedFunctionError is returned when no function matches a call name.
type UndefinedFunctionError struct {
	Name string
}

func (e *UndefinedFunctionError) Error() string {
	return "Undefined function: " + e.Name
}

// ArityError is returned when a call's argument count falls outside the
// function's declared bounds.
type ArityError struct {
	Name    string
	TooMany bool
}

func (e *ArityError) Error() string {
	if e.TooMany {
		return "Too many arguments provided for function " + e.Name
	}
	return "Too few arguments provided for function " + e.Name
}

// FunctionCallError is returned when a function implementation fails, e.g. a
// negative repeat count. It carries the rendered argument list for display.
type FunctionCallError struct {
	Name string
	Args string
}

func (e *FunctionCallError) Error() string {
	return "Error calling function " + e.Name + " with arguments " + e.Args
}

// formatArgs renders an argument list for error messages: strings quoted,
// decimals in canonical form, booleans as TRUE/FALSE.
func formatArgs(env *data.Context, args []any) string {
	rendered := make([]string, len(args))
	for i, arg := range args {
		switch typed := arg.(type) {
		case string:
			rendered[i] = `"` + typed + `"`
		case decimal.Decimal:
			rendered[i] = types.FormatDecimal(typed)
		default:
			s, err := types.ToString(arg, env.Timezone())
			if err != nil {
				s = "?"
			}
			rendered[i] = s
		}
	}
	return strings.Join(rendered, ", ")
}
