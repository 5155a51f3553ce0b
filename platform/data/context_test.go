package data

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robbyt/go-flowexpr/platform/types"
)

func testVariables() map[string]any {
	return map[string]any{
		"contact": map[string]any{
			"__default__": "Joe Blow",
			"first_name":  "Joe",
			"language":    "eng",
		},
		"flow": map[string]any{
			"water_source": "Well",
			"users":        5,
			"average":      2.5,
			"joined":       time.Date(2014, 12, 1, 9, 0, 0, 0, time.UTC),
		},
	}
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	flattened := Flatten(testVariables())

	assert.Equal(t, "Joe Blow", flattened["contact"], "default key supplies the map's own value")
	assert.Equal(t, "Joe", flattened["contact.first_name"])
	assert.Equal(t, "Well", flattened["flow.water_source"])

	users, ok := flattened["flow.users"].(decimal.Decimal)
	require.True(t, ok, "ints normalize to decimals")
	assert.True(t, users.Equal(decimal.NewFromInt(5)))

	joined, ok := flattened["flow.joined"].(types.DateTime)
	require.True(t, ok, "time.Time normalizes to DateTime")
	assert.False(t, joined.DateOnly)
}

func TestFlattenNormalizesKeys(t *testing.T) {
	t.Parallel()

	flattened := Flatten(map[string]any{
		"Contact": map[string]any{"First_Name": "Joe"},
	})
	assert.Equal(t, "Joe", flattened["contact.first_name"])
}

func TestContextResolve(t *testing.T) {
	t.Parallel()

	env := NewContext(testVariables(), time.UTC, types.DayFirst)

	value, err := env.Resolve("contact.first_name")
	require.NoError(t, err)
	assert.Equal(t, "Joe", value)

	value, err = env.Resolve("CONTACT.First_Name")
	require.NoError(t, err)
	assert.Equal(t, "Joe", value, "lookup is case-insensitive")

	value, err = env.Resolve("contact")
	require.NoError(t, err)
	assert.Equal(t, "Joe Blow", value)

	_, err = env.Resolve("flow.boil")
	require.Error(t, err)
	assert.Equal(t, "Undefined variable: flow.boil", err.Error())
}

func TestContextHasRoot(t *testing.T) {
	t.Parallel()

	env := NewContext(testVariables(), time.UTC, types.DayFirst)

	assert.True(t, env.HasRoot("contact"))
	assert.True(t, env.HasRoot("flow.boil"), "root is known even when the leaf is not")
	assert.False(t, env.HasRoot("nicpottier"))
}

func TestContextDefaults(t *testing.T) {
	t.Parallel()

	env := NewContext(nil, nil, types.DayFirst)
	assert.Equal(t, time.UTC, env.Timezone(), "nil timezone defaults to UTC")

	pinned := time.Date(2014, 12, 1, 9, 0, 0, 0, time.UTC)
	env = env.WithNow(pinned)
	assert.True(t, env.Now().Equal(pinned))
}
