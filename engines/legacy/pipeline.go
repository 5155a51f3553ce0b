// Package legacy implements the old `@path|filter1|filter2` substitution
// pipeline. It shares the value model and variable lookup contract with the
// formula engine but performs no expression parsing: the path resolves
// against the context and each filter transforms the running value
// left-to-right.
package legacy

import (
	"strconv"
	"strings"

	"github.com/robbyt/go-flowexpr/internal/helpers"
	"github.com/robbyt/go-flowexpr/platform/data"
	"github.com/robbyt/go-flowexpr/platform/types"
)

// Filter is one step in a pipe chain, optionally parametrized, e.g.
// time_delta:"3".
type Filter struct {
	Name string
	Arg  string
}

// Apply resolves a dotted path and runs the filter chain over the value.
// Unknown filter names pass the value through untouched, preserving
// already-published templates that reference retired filters.
func Apply(env *data.Context, path string, filters []Filter) (any, error) {
	value, err := env.Resolve(path)
	if err != nil {
		return nil, err
	}

	for _, filter := range filters {
		value, err = applyFilter(env, value, filter)
		if err != nil {
			return nil, err
		}
	}
	return value, nil
}

func applyFilter(env *data.Context, value any, filter Filter) (any, error) {
	// time_delta operates on the date kind; everything else is a string
	// transform.
	if strings.EqualFold(filter.Name, "time_delta") {
		days, err := strconv.Atoi(filter.Arg)
		if err != nil {
			return value, nil
		}
		date, err := types.ToDateTime(value, env.Timezone(), env.DateStyle())
		if err != nil {
			return nil, err
		}
		return date.AddDays(days), nil
	}

	text, err := types.ToString(value, env.Timezone())
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filter.Name) {
	case "first_word":
		return helpers.FirstWord(text), nil
	case "remove_first_word":
		return helpers.RemoveFirstWord(text), nil
	case "upper_case":
		return strings.ToUpper(text), nil
	case "lower_case":
		return strings.ToLower(text), nil
	case "capitalize", "title_case":
		return helpers.Proper(text), nil
	}

	// tolerant passthrough for retired filters
	return value, nil
}
