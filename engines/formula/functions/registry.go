// Package functions holds the registry of built-in template functions. The
// registry is built once at process start and never mutated afterwards, so
// concurrent evaluations can read it without synchronization.
package functions

import (
	"slices"
	"strings"

	"github.com/robbyt/go-flowexpr/platform/data"
)

// Func describes a single built-in: its argument count bounds and its
// implementation. Variadic functions use MaxArgs of -1.
type Func struct {
	MinArgs int
	MaxArgs int
	Call    func(env *data.Context, args []any) (any, error)
}

// registry maps uppercased function names to their definitions. Lookups are
// case-insensitive.
var registry = buildRegistry()

// Lookup resolves a function name case-insensitively.
func Lookup(name string) (Func, bool) {
	fn, ok := registry[strings.ToUpper(name)]
	return fn, ok
}

// Names returns the sorted names of all registered functions.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Invoke resolves and calls a function, enforcing its declared arity. Any
// failure inside the implementation, including argument coercion, surfaces
// as a FunctionCallError naming the function and its literal argument list.
func Invoke(env *data.Context, name string, args []any) (any, error) {
	upper := strings.ToUpper(name)

	fn, ok := registry[upper]
	if !ok {
		return nil, &UndefinedFunctionError{Name: upper}
	}

	if len(args) < fn.MinArgs {
		return nil, &ArityError{Name: upper, TooMany: false}
	}
	if fn.MaxArgs >= 0 && len(args) > fn.MaxArgs {
		return nil, &ArityError{Name: upper, TooMany: true}
	}

	result, err := fn.Call(env, args)
	if err != nil {
		return nil, &FunctionCallError{Name: upper, Args: formatArgs(env, args)}
	}
	return result, nil
}
