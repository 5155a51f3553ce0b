// Package flowexpr evaluates the small formula language embedded in message
// and flow templates: literal text interspersed with expressions in the
// legacy @path|filter notation and the newer =expr / @(expr) notation,
// resolved against a caller-built evaluation context.
//
// The package-level functions cover the common cases:
//
//	env := data.NewContext(variables, time.UTC, types.DayFirst)
//	output, errs := flowexpr.Render("Hello =UPPER(contact.first_name)", env, false)
//
// Per-expression failures never abort a render: the failed span is re-emitted
// in canonical syntax and its message returned alongside the output.
package flowexpr

import (
	"fmt"
	"log/slog"

	"github.com/robbyt/go-flowexpr/engines/formula"
	"github.com/robbyt/go-flowexpr/platform/data"
	"github.com/robbyt/go-flowexpr/template"
)

// Templater renders, evaluates and migrates templates with a fixed
// configuration. It holds no per-call state and is safe for concurrent use.
type Templater struct {
	handler   slog.Handler
	urlEncode bool
}

// New creates a Templater from functional options.
func New(opts ...Option) (*Templater, error) {
	t := &Templater{}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, fmt.Errorf("error applying option: %w", err)
		}
	}
	return t, nil
}

// Render substitutes every expression in the template against the context,
// returning the rendered text and the message of each failed expression in
// order of appearance.
func (t *Templater) Render(input string, env *data.Context) (string, []string) {
	renderer := template.NewRenderer(t.handler, t.urlEncode)
	return renderer.Render(input, env)
}

// Evaluate parses and evaluates a single expression (without any = or @
// delimiters) against the context.
func (t *Templater) Evaluate(expression string, env *data.Context) (any, error) {
	node, err := formula.Parse(expression)
	if err != nil {
		return nil, err
	}
	return formula.Evaluate(node, env)
}

// Migrate rewrites legacy template notation into canonical syntax without
// evaluating it. The pass is idempotent.
func (t *Templater) Migrate(input string) string {
	return template.Migrate(input)
}

// Render evaluates a template with default configuration. See
// Templater.Render.
func Render(input string, env *data.Context, urlEncode bool) (string, []string) {
	renderer := template.NewRenderer(nil, urlEncode)
	return renderer.Render(input, env)
}

// Evaluate parses and evaluates a single expression with default
// configuration. See Templater.Evaluate.
func Evaluate(expression string, env *data.Context) (any, error) {
	node, err := formula.Parse(expression)
	if err != nil {
		return nil, err
	}
	return formula.Evaluate(node, env)
}

// Migrate rewrites legacy template notation into canonical syntax. See
// Templater.Migrate.
func Migrate(input string) string {
	return template.Migrate(input)
}
