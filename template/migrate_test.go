package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text untouched",
			input:    "Hello World",
			expected: "Hello World",
		},
		{
			name:     "bare path untouched",
			input:    "Hi @contact.first_name, how are you?",
			expected: "Hi @contact.first_name, how are you?",
		},
		{
			name:     "single filter",
			input:    "@contact.first_name|upper_case",
			expected: "@(UPPER(contact.first_name))",
		},
		{
			name:     "filters nest outward",
			input:    "@contact|first_word|upper_case",
			expected: "@(UPPER(FIRST_WORD(contact)))",
		},
		{
			name:     "time delta becomes addition",
			input:    `@flow.joined|time_delta:"3"`,
			expected: "@(flow.joined + 3)",
		},
		{
			name:     "equals path becomes at path",
			input:    "=contact.first_name",
			expected: "@contact.first_name",
		},
		{
			name:     "equals group becomes at group",
			input:    "=(flow.users + 1)",
			expected: "@(flow.users + 1)",
		},
		{
			name:     "equals call gains outer parens",
			input:    "=UPPER(contact)",
			expected: "@(UPPER(contact))",
		},
		{
			name:     "canonical group untouched",
			input:    "@(UPPER(contact))",
			expected: "@(UPPER(contact))",
		},
		{
			name:     "mixed template",
			input:    `Hi @contact.first_name|upper_case, you joined =(flow.joined) at foo@bar.com`,
			expected: `Hi @(UPPER(contact.first_name)), you joined @(flow.joined) at foo@bar.com`,
		},
		{
			name:     "unknown filter dropped",
			input:    "@contact|reverse|upper_case",
			expected: "@(UPPER(contact))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := Migrate(tt.input)
			assert.Equal(t, tt.expected, actual)

			assert.Equal(t, actual, Migrate(actual), "migration is idempotent")
		})
	}
}
