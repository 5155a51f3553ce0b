// Package types defines the value model shared by every part of the template
// engine: decimals, strings, booleans and the temporal kinds, along with the
// coercions that operators and functions apply to them.
//
// Values flowing through the engine are always one of:
//   - decimal.Decimal
//   - string
//   - bool
//   - DateTime
//   - TimeOfDay
//
// The data provider normalizes raw Go values (ints, floats, time.Time) into
// these kinds before evaluation begins.
package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateStyle disambiguates numeric date strings such as "01/02/2003", which
// could be read day-first or month-first depending on locale.
type DateStyle int

const (
	// DayFirst reads "01/02/2003" as the 1st of February.
	DayFirst DateStyle = iota

	// MonthFirst reads "01/02/2003" as January 2nd.
	MonthFirst
)

// ToString converts a value to its canonical string form. Decimals are
// rendered with trailing zeros stripped, booleans as TRUE/FALSE, and temporal
// values in the given timezone.
func ToString(value any, tz *time.Location) (string, error) {
	switch typed := value.(type) {
	case string:
		return typed, nil
	case decimal.Decimal:
		return FormatDecimal(typed), nil
	case bool:
		if typed {
			return "TRUE", nil
		}
		return "FALSE", nil
	case DateTime:
		return typed.Format(tz), nil
	case TimeOfDay:
		return typed.Format(), nil
	case time.Time:
		return DateTime{Time: typed}.Format(tz), nil
	}
	return "", fmt.Errorf("unable to convert %v to a string", value)
}

// ToDecimal converts a value to a decimal, accepting numeric strings.
func ToDecimal(value any) (decimal.Decimal, error) {
	switch typed := value.(type) {
	case decimal.Decimal:
		return typed, nil
	case int:
		return decimal.NewFromInt(int64(typed)), nil
	case int64:
		return decimal.NewFromInt(typed), nil
	case float64:
		return decimal.NewFromFloat(typed), nil
	case string:
		parsed, err := decimal.NewFromString(strings.TrimSpace(typed))
		if err != nil {
			return decimal.Zero, fmt.Errorf("%q is not a valid number", typed)
		}
		return parsed, nil
	}
	return decimal.Zero, fmt.Errorf("unable to convert %v to a number", value)
}

// ToBool converts a value to a boolean. Decimals are truthy when non-zero,
// and the strings "true"/"false" are accepted case-insensitively.
func ToBool(value any) (bool, error) {
	switch typed := value.(type) {
	case bool:
		return typed, nil
	case decimal.Decimal:
		return !typed.IsZero(), nil
	case string:
		if strings.EqualFold(typed, "true") {
			return true, nil
		}
		if strings.EqualFold(typed, "false") {
			return false, nil
		}
	}
	return false, fmt.Errorf("unable to convert %v to a boolean", value)
}

// ToDateTime converts a value to a DateTime, parsing strings with the given
// date style.
func ToDateTime(value any, tz *time.Location, style DateStyle) (DateTime, error) {
	switch typed := value.(type) {
	case DateTime:
		return typed, nil
	case time.Time:
		return DateTime{Time: typed}, nil
	case string:
		return ParseDateTime(typed, tz, style)
	}
	return DateTime{}, fmt.Errorf("unable to convert %v to a date", value)
}

// FormatDecimal renders a decimal in its shortest exact form, with trailing
// zeros and any trailing decimal point stripped.
func FormatDecimal(d decimal.Decimal) string {
	formatted := d.String()
	if strings.ContainsRune(formatted, '.') {
		formatted = strings.TrimRight(formatted, "0")
		formatted = strings.TrimSuffix(formatted, ".")
	}
	return formatted
}
