package template

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/robbyt/go-flowexpr/engines/formula"
	"github.com/robbyt/go-flowexpr/engines/legacy"
	"github.com/robbyt/go-flowexpr/internal/helpers"
	"github.com/robbyt/go-flowexpr/platform/data"
	"github.com/robbyt/go-flowexpr/platform/types"
)

// Renderer substitutes expression spans into template text. A failed span
// never aborts the rest of the template: its source is re-emitted in
// canonical syntax and its error message collected, in order of appearance.
type Renderer struct {
	logger    *slog.Logger
	urlEncode bool
}

// NewRenderer creates a renderer. A nil handler gets default logging. When
// urlEncode is set, substituted values (and only those) are percent-encoded.
func NewRenderer(handler slog.Handler, urlEncode bool) *Renderer {
	_, logger := helpers.SetupLogger(handler, "template", "Renderer")

	return &Renderer{
		logger:    logger,
		urlEncode: urlEncode,
	}
}

// Render evaluates every expression span of the template against the context
// and returns the substituted text along with the error message of each
// failed span, left to right.
func (r *Renderer) Render(input string, env *data.Context) (string, []string) {
	var output strings.Builder
	var errs []string

	for _, span := range Scan(input) {
		switch span.Type {
		case SpanLiteral:
			output.WriteString(span.Text)

		case SpanLegacy:
			// substitution only fires for known roots, so stray handles
			// like "@nicpottier" survive as literal text
			if !env.HasRoot(span.Path) {
				output.WriteString(span.Text)
				continue
			}
			r.renderValue(&output, &errs, span, env, func() (any, error) {
				return legacy.Apply(env, span.Path, span.Filters)
			})

		case SpanFormula:
			r.renderValue(&output, &errs, span, env, func() (any, error) {
				node, err := formula.Parse(span.Expr)
				if err != nil {
					return nil, err
				}
				return formula.Evaluate(node, env)
			})
		}
	}

	return output.String(), errs
}

// renderValue runs one expression strategy, substituting its stringified
// result or containing its failure.
func (r *Renderer) renderValue(output *strings.Builder, errs *[]string, span Span, env *data.Context, eval func() (any, error)) {
	value, err := eval()
	if err == nil {
		var text string
		text, err = types.ToString(value, env.Timezone())
		if err == nil {
			if r.urlEncode {
				text = urlQuote(text)
			}
			r.logger.Debug("substituted expression", "source", span.Text, "value", text)
			output.WriteString(text)
			return
		}
	}

	r.logger.Warn("expression error", "source", span.Text, "error", err)
	output.WriteString(canonical(span))
	*errs = append(*errs, err.Error())
}

// urlQuote percent-encodes a substituted value, using %20 rather than + for
// spaces.
func urlQuote(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}
