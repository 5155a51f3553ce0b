// Package data builds and resolves the evaluation context: the immutable
// snapshot of variables, timezone and date style that a template is rendered
// against. Callers flatten their domain objects (a contact record, flow
// results) into nested maps; this package normalizes them into a dotted-path
// lookup table so the engines stay free of any domain model coupling.
package data

import (
	"strings"
	"time"

	"github.com/robbyt/go-flowexpr/platform/types"
)

// Context is an immutable snapshot of everything an evaluation can observe:
// the flattened variable mapping, the rendering timezone, the date style for
// ambiguous date strings, and the pinned evaluation instant read by NOW() and
// TODAY(). It is created once per render call and never mutated.
type Context struct {
	variables map[string]any
	roots     map[string]bool
	timezone  *time.Location
	dateStyle types.DateStyle
	now       time.Time
}

// NewContext builds a context from a nested variable map. A nil timezone
// defaults to UTC. The evaluation instant is captured at construction; use
// WithNow to pin it for deterministic evaluation.
func NewContext(variables map[string]any, tz *time.Location, style types.DateStyle) *Context {
	if tz == nil {
		tz = time.UTC
	}

	flattened := Flatten(variables)

	roots := make(map[string]bool, len(flattened))
	for key := range flattened {
		root, _, _ := strings.Cut(key, ".")
		roots[root] = true
	}

	return &Context{
		variables: flattened,
		roots:     roots,
		timezone:  tz,
		dateStyle: style,
		now:       time.Now().In(tz),
	}
}

// WithNow returns a copy of the context pinned to the given evaluation
// instant.
func (c *Context) WithNow(now time.Time) *Context {
	clone := *c
	clone.now = now.In(c.timezone)
	return &clone
}

// Timezone returns the timezone that temporal values render in.
func (c *Context) Timezone() *time.Location {
	return c.timezone
}

// DateStyle returns the day/month disambiguation rule for date parsing.
func (c *Context) DateStyle() types.DateStyle {
	return c.dateStyle
}

// Now returns the pinned evaluation instant.
func (c *Context) Now() time.Time {
	return c.now
}

// Resolve looks up a dotted variable path, case-insensitively.
func (c *Context) Resolve(path string) (any, error) {
	if value, ok := c.variables[strings.ToLower(path)]; ok {
		return value, nil
	}
	return nil, &UndefinedVariableError{Path: path}
}

// HasRoot reports whether the first segment of a dotted path names a known
// top-level variable. Legacy @-substitution only fires for known roots, so
// that text like "@nicpottier is on twitter" passes through untouched.
func (c *Context) HasRoot(path string) bool {
	root, _, _ := strings.Cut(strings.ToLower(path), ".")
	return c.roots[root]
}
