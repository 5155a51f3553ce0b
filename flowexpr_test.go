package flowexpr

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
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
			"users":  5,
			"joined": time.Date(2014, 12, 1, 9, 0, 0, 0, time.UTC),
		},
	}, time.UTC, types.DayFirst)
}

func TestNew(t *testing.T) {
	t.Parallel()

	templater, err := New()
	require.NoError(t, err)
	require.NotNil(t, templater)

	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, nil)
	templater, err = New(WithLogHandler(handler), WithURLEncoding())
	require.NoError(t, err)
	assert.Equal(t, handler, templater.handler)
	assert.True(t, templater.urlEncode)

	templater, err = New(WithLogHandler(nil))
	require.NoError(t, err)
	assert.Nil(t, templater.handler, "nil handler is ignored")
}

func TestTemplaterRender(t *testing.T) {
	t.Parallel()

	env := testContext(t)

	templater, err := New()
	require.NoError(t, err)

	output, errs := templater.Render("Hi =UPPER(contact.first_name), you are user @flow.users", env)
	assert.Equal(t, "Hi JOE, you are user 5", output)
	assert.Empty(t, errs)

	output, errs = templater.Render("@(1 / 0)", env)
	assert.Equal(t, "@(1 / 0)", output)
	assert.Equal(t, []string{"Division by zero"}, errs)
}

func TestTemplaterRenderURLEncoded(t *testing.T) {
	t.Parallel()

	env := testContext(t)

	templater, err := New(WithURLEncoding())
	require.NoError(t, err)

	output, errs := templater.Render("?name=@contact", env)
	assert.Equal(t, "?name=Joe%20Blow", output)
	assert.Empty(t, errs)
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	env := testContext(t)

	value, err := Evaluate("flow.users + 1", env)
	require.NoError(t, err)
	num, ok := value.(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, num.Equal(decimal.NewFromInt(6)))

	_, err = Evaluate("2 +", env)
	require.Error(t, err)
	assert.Equal(t, "Expression error at: end of expression", err.Error())
}

func TestRender(t *testing.T) {
	t.Parallel()

	env := testContext(t)

	output, errs := Render("Hello @contact.first_name", env, false)
	assert.Equal(t, "Hello Joe", output)
	assert.Empty(t, errs)
}

func TestMigrate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "@(UPPER(contact))", Migrate("@contact|upper_case"))
	assert.Equal(t, "@contact.first_name", Migrate("=contact.first_name"))
}
