package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateTime(t *testing.T) {
	t.Parallel()

	kabul, err := time.LoadLocation("Asia/Kabul")
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		style    DateStyle
		expected DateTime
		wantErr  bool
	}{
		{
			name:     "day first",
			input:    "01-02-2013",
			style:    DayFirst,
			expected: NewDate(2013, 2, 1, kabul),
		},
		{
			name:     "month first",
			input:    "01-02-2013",
			style:    MonthFirst,
			expected: NewDate(2013, 1, 2, kabul),
		},
		{
			name:     "impossible as day first swaps",
			input:    "01-31-2013",
			style:    DayFirst,
			expected: NewDate(2013, 1, 31, kabul),
		},
		{
			name:     "with hour and minute",
			input:    "01-02-2013 07:08",
			style:    DayFirst,
			expected: DateTime{Time: time.Date(2013, 2, 1, 7, 8, 0, 0, kabul)},
		},
		{
			name:     "with complete time",
			input:    "01-02-2013 07:08:09.100000",
			style:    DayFirst,
			expected: DateTime{Time: time.Date(2013, 2, 1, 7, 8, 9, 100000000, kabul)},
		},
		{
			name:     "slash separators and two-digit year",
			input:    "1/12/14 9:00",
			style:    DayFirst,
			expected: DateTime{Time: time.Date(2014, 12, 1, 9, 0, 0, 0, kabul)},
		},
		{
			name:     "pm time",
			input:    "01-02-2013 3:04 PM",
			style:    DayFirst,
			expected: DateTime{Time: time.Date(2013, 2, 1, 15, 4, 0, 0, kabul)},
		},
		{
			name:     "iso year first",
			input:    "2013-02-01",
			style:    DayFirst,
			expected: NewDate(2013, 2, 1, kabul),
		},
		{name: "empty", input: "", style: DayFirst, wantErr: true},
		{name: "not a date", input: "xxx", style: DayFirst, wantErr: true},
		{name: "impossible both ways", input: "31-31-2013", style: DayFirst, wantErr: true},
		{name: "trailing junk", input: "01-02-2013 xxx", style: DayFirst, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := ParseDateTime(tt.input, kabul, tt.style)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected.DateOnly, actual.DateOnly)
			assert.True(t, tt.expected.Time.Equal(actual.Time), "expected %s, got %s", tt.expected.Time, actual.Time)
		})
	}
}

func TestDateTimeFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    DateTime
		expected string
	}{
		{
			name:     "date only",
			value:    NewDate(2014, 7, 4, time.UTC),
			expected: "04-07-2014",
		},
		{
			name:     "zero seconds omitted",
			value:    DateTime{Time: time.Date(2014, 12, 2, 9, 0, 0, 0, time.UTC)},
			expected: "02-12-2014 09:00",
		},
		{
			name:     "seconds shown when non-zero",
			value:    DateTime{Time: time.Date(2014, 12, 2, 9, 0, 30, 0, time.UTC)},
			expected: "02-12-2014 09:00:30",
		},
		{
			name:     "microseconds shown when non-zero",
			value:    DateTime{Time: time.Date(2014, 12, 2, 9, 0, 30, 123000, time.UTC)},
			expected: "02-12-2014 09:00:30.000123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.value.Format(time.UTC))
		})
	}
}

func TestDateTimeArithmetic(t *testing.T) {
	t.Parallel()

	joined := DateTime{Time: time.Date(2014, 12, 1, 9, 0, 0, 0, time.UTC)}

	plusDay := joined.AddDays(1)
	assert.Equal(t, "02-12-2014 09:00", plusDay.Format(time.UTC))
	assert.False(t, plusDay.DateOnly)

	date := NewDate(2014, 7, 1, time.UTC)
	assert.Equal(t, "04-07-2014", date.AddDays(3).Format(time.UTC))
	assert.True(t, date.AddDays(3).DateOnly, "adding days preserves date-only")

	plusTime := joined.AddTime(NewTimeOfDay(2, 30, 0))
	assert.Equal(t, "01-12-2014 11:30", plusTime.Format(time.UTC))

	minusTime := joined.AddTime(-NewTimeOfDay(2, 30, 0))
	assert.Equal(t, "01-12-2014 06:30", minusTime.Format(time.UTC))
}

func TestTimeOfDayFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "02:30", NewTimeOfDay(2, 30, 0).Format())
	assert.Equal(t, "02:30:15", NewTimeOfDay(2, 30, 15).Format())
	assert.Equal(t, "00:00", NewTimeOfDay(0, 0, 0).Format())
}
