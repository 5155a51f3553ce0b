package types

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateTime is an instant that remembers whether its source carried a time
// component. A value produced by DATE(...) or parsed from a bare date string
// is date-only, and renders without a time.
type DateTime struct {
	Time     time.Time
	DateOnly bool
}

// NewDate returns a date-only DateTime at midnight in the given timezone.
func NewDate(year, month, day int, tz *time.Location) DateTime {
	return DateTime{
		Time:     time.Date(year, time.Month(month), day, 0, 0, 0, 0, tz),
		DateOnly: true,
	}
}

// AddDays shifts the date by whole days, preserving date-only-ness.
func (d DateTime) AddDays(days int) DateTime {
	return DateTime{Time: d.Time.AddDate(0, 0, days), DateOnly: d.DateOnly}
}

// AddTime shifts the instant by a time-of-day delta. The result always
// carries a time component.
func (d DateTime) AddTime(t TimeOfDay) DateTime {
	return DateTime{Time: d.Time.Add(time.Duration(t))}
}

// Compare orders two DateTimes by instant: -1, 0 or 1.
func (d DateTime) Compare(other DateTime) int {
	switch {
	case d.Time.Before(other.Time):
		return -1
	case d.Time.After(other.Time):
		return 1
	}
	return 0
}

// Format renders the value in the given timezone as DD-MM-YYYY, followed by
// HH:MM for timed values, with seconds and microseconds only when non-zero.
func (d DateTime) Format(tz *time.Location) string {
	local := d.Time.In(tz)
	if d.DateOnly {
		return local.Format("02-01-2006")
	}

	formatted := local.Format("02-01-2006 15:04")
	if local.Second() != 0 || local.Nanosecond() != 0 {
		formatted += local.Format(":05")
		if local.Nanosecond() != 0 {
			formatted += fmt.Sprintf(".%06d", local.Nanosecond()/1000)
		}
	}
	return formatted
}

// TimeOfDay is a time-of-day delta produced by TIME(...), applied to dates
// as an offset rather than as whole days.
type TimeOfDay time.Duration

// NewTimeOfDay builds a time-of-day delta from hours, minutes and seconds.
func NewTimeOfDay(hours, minutes, seconds int) TimeOfDay {
	return TimeOfDay(time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second)
}

// Format renders the delta as HH:MM, with seconds only when non-zero.
func (t TimeOfDay) Format() string {
	d := time.Duration(t)
	hours := int(d / time.Hour)
	minutes := int(d % time.Hour / time.Minute)
	seconds := int(d % time.Minute / time.Second)

	formatted := fmt.Sprintf("%02d:%02d", hours, minutes)
	if seconds != 0 {
		formatted += fmt.Sprintf(":%02d", seconds)
	}
	return formatted
}

var (
	datePattern = regexp.MustCompile(`^\s*(\d{1,4})[-/.](\d{1,2})[-/.](\d{1,4})(.*)$`)
	timePattern = regexp.MustCompile(`^(\d{1,2}):(\d{1,2})(?::(\d{1,2})(?:\.(\d{1,6}))?)?\s*([AaPp][Mm])?\s*$`)
)

// ParseDateTime parses a date string with optional time, honoring the date
// style for ambiguous day/month ordering. Accepted separators are "-", "/"
// and "."; years may be two or four digits. When the preferred day/month
// order is impossible (e.g. "01-31-2013" day-first) the fields are swapped.
func ParseDateTime(value string, tz *time.Location, style DateStyle) (DateTime, error) {
	match := datePattern.FindStringSubmatch(value)
	if match == nil {
		return DateTime{}, fmt.Errorf("%q is not a valid date", value)
	}

	first, _ := strconv.Atoi(match[1])
	second, _ := strconv.Atoi(match[2])
	third, _ := strconv.Atoi(match[3])

	var year, month, day int
	if len(match[1]) == 4 {
		year, month, day = first, second, third
	} else {
		year = normalizeYear(third)
		if style == DayFirst {
			day, month = first, second
		} else {
			month, day = first, second
		}
		if month > 12 && day <= 12 {
			month, day = day, month
		}
	}

	if !validDate(year, month, day) {
		return DateTime{}, fmt.Errorf("%q is not a valid date", value)
	}

	rest := strings.TrimSpace(match[4])
	if rest == "" {
		return NewDate(year, month, day, tz), nil
	}

	timeMatch := timePattern.FindStringSubmatch(rest)
	if timeMatch == nil {
		return DateTime{}, fmt.Errorf("%q is not a valid date", value)
	}

	hour, _ := strconv.Atoi(timeMatch[1])
	minute, _ := strconv.Atoi(timeMatch[2])
	secs, _ := strconv.Atoi(timeMatch[3])
	micros, _ := strconv.Atoi(padMicros(timeMatch[4]))

	if meridiem := timeMatch[5]; meridiem != "" {
		if strings.EqualFold(meridiem, "pm") && hour < 12 {
			hour += 12
		} else if strings.EqualFold(meridiem, "am") && hour == 12 {
			hour = 0
		}
	}

	if hour > 23 || minute > 59 || secs > 59 {
		return DateTime{}, fmt.Errorf("%q is not a valid date", value)
	}

	instant := time.Date(year, time.Month(month), day, hour, minute, secs, micros*1000, tz)
	return DateTime{Time: instant}, nil
}

// normalizeYear expands two-digit years, mapping 00-68 into the 2000s and
// 69-99 into the 1900s.
func normalizeYear(year int) int {
	if year >= 100 {
		return year
	}
	if year <= 68 {
		return year + 2000
	}
	return year + 1900
}

func validDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return false
	}
	check := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return check.Year() == year && int(check.Month()) == month && check.Day() == day
}

func padMicros(fraction string) string {
	for len(fraction) > 0 && len(fraction) < 6 {
		fraction += "0"
	}
	return fraction
}
