package legacy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robbyt/go-flowexpr/platform/data"
	"github.com/robbyt/go-flowexpr/platform/types"
)

func testContext(t *testing.T) *data.Context {
	t.Helper()

	return data.NewContext(map[string]any{
		"contact": map[string]any{
			"__default__": "Joe Blow",
			"first_name":  "Joe",
		},
		"flow": map[string]any{
			"water_source": "Well",
			"joined":       time.Date(2014, 12, 1, 9, 0, 0, 0, time.UTC),
		},
	}, time.UTC, types.DayFirst)
}

func TestApply(t *testing.T) {
	t.Parallel()

	env := testContext(t)

	tests := []struct {
		name     string
		path     string
		filters  []Filter
		expected string
	}{
		{
			name:     "bare path",
			path:     "flow.water_source",
			expected: "Well",
		},
		{
			name:     "default key",
			path:     "contact",
			expected: "Joe Blow",
		},
		{
			name:     "upper_case",
			path:     "flow.water_source",
			filters:  []Filter{{Name: "upper_case"}},
			expected: "WELL",
		},
		{
			name:     "lower_case then capitalize",
			path:     "flow.water_source",
			filters:  []Filter{{Name: "lower_case"}, {Name: "capitalize"}},
			expected: "Well",
		},
		{
			name:     "first_word",
			path:     "contact",
			filters:  []Filter{{Name: "first_word"}},
			expected: "Joe",
		},
		{
			name:     "remove_first_word",
			path:     "contact",
			filters:  []Filter{{Name: "remove_first_word"}},
			expected: "Blow",
		},
		{
			name:     "title_case",
			path:     "contact",
			filters:  []Filter{{Name: "lower_case"}, {Name: "title_case"}},
			expected: "Joe Blow",
		},
		{
			name:     "time_delta adds days",
			path:     "flow.joined",
			filters:  []Filter{{Name: "time_delta", Arg: "3"}},
			expected: "04-12-2014 09:00",
		},
		{
			name:     "time_delta negative days",
			path:     "flow.joined",
			filters:  []Filter{{Name: "time_delta", Arg: "-1"}},
			expected: "30-11-2014 09:00",
		},
		{
			name:     "time_delta bad argument passes through",
			path:     "flow.water_source",
			filters:  []Filter{{Name: "time_delta", Arg: "x"}},
			expected: "Well",
		},
		{
			name:     "unknown filter passes through",
			path:     "flow.water_source",
			filters:  []Filter{{Name: "reverse"}},
			expected: "Well",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := Apply(env, tt.path, tt.filters)
			require.NoError(t, err)

			text, err := types.ToString(value, env.Timezone())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, text)
		})
	}
}

func TestApplyUndefinedPath(t *testing.T) {
	t.Parallel()

	env := testContext(t)

	_, err := Apply(env, "flow.boil", nil)
	require.Error(t, err)
	assert.Equal(t, "Undefined variable: flow.boil", err.Error())
}

func TestMigrateChain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		filters  []Filter
		expected string
	}{
		{
			name:     "no filters",
			path:     "contact.first_name",
			expected: "contact.first_name",
		},
		{
			name:     "single filter",
			path:     "contact",
			filters:  []Filter{{Name: "upper_case"}},
			expected: "UPPER(contact)",
		},
		{
			name:     "filters nest outward",
			path:     "contact",
			filters:  []Filter{{Name: "first_word"}, {Name: "upper_case"}},
			expected: "UPPER(FIRST_WORD(contact))",
		},
		{
			name:     "capitalize and title_case both map to PROPER",
			path:     "contact",
			filters:  []Filter{{Name: "capitalize"}, {Name: "title_case"}},
			expected: "PROPER(PROPER(contact))",
		},
		{
			name:     "time_delta becomes addition",
			path:     "flow.joined",
			filters:  []Filter{{Name: "time_delta", Arg: "3"}},
			expected: "flow.joined + 3",
		},
		{
			name:     "unknown filter is dropped",
			path:     "contact",
			filters:  []Filter{{Name: "reverse"}, {Name: "upper_case"}},
			expected: "UPPER(contact)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MigrateChain(tt.path, tt.filters))
		})
	}
}
