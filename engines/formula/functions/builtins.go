package functions

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/robbyt/go-flowexpr/internal/helpers"
	"github.com/robbyt/go-flowexpr/platform/data"
	"github.com/robbyt/go-flowexpr/platform/types"
)

func buildRegistry() map[string]Func {
	return map[string]Func{
		"ABS":               {MinArgs: 1, MaxArgs: 1, Call: fnAbs},
		"AND":               {MinArgs: 1, MaxArgs: -1, Call: fnAnd},
		"CONCATENATE":       {MinArgs: 1, MaxArgs: -1, Call: fnConcatenate},
		"DATE":              {MinArgs: 3, MaxArgs: 3, Call: fnDate},
		"FIRST_WORD":        {MinArgs: 1, MaxArgs: 1, Call: fnFirstWord},
		"IF":                {MinArgs: 3, MaxArgs: 3, Call: fnIf},
		"LEFT":              {MinArgs: 2, MaxArgs: 2, Call: fnLeft},
		"LEN":               {MinArgs: 1, MaxArgs: 1, Call: fnLen},
		"LOWER":             {MinArgs: 1, MaxArgs: 1, Call: fnLower},
		"MAX":               {MinArgs: 1, MaxArgs: -1, Call: fnMax},
		"MIN":               {MinArgs: 1, MaxArgs: -1, Call: fnMin},
		"NOW":               {MinArgs: 0, MaxArgs: 0, Call: fnNow},
		"OR":                {MinArgs: 1, MaxArgs: -1, Call: fnOr},
		"PROPER":            {MinArgs: 1, MaxArgs: 1, Call: fnProper},
		"REMOVE_FIRST_WORD": {MinArgs: 1, MaxArgs: 1, Call: fnRemoveFirstWord},
		"REPT":              {MinArgs: 2, MaxArgs: 2, Call: fnRept},
		"RIGHT":             {MinArgs: 2, MaxArgs: 2, Call: fnRight},
		"SUBSTITUTE":        {MinArgs: 3, MaxArgs: 3, Call: fnSubstitute},
		"SUM":               {MinArgs: 1, MaxArgs: -1, Call: fnSum},
		"TIME":              {MinArgs: 3, MaxArgs: 3, Call: fnTime},
		"TODAY":             {MinArgs: 0, MaxArgs: 0, Call: fnToday},
		"UPPER":             {MinArgs: 1, MaxArgs: 1, Call: fnUpper},
		"WORD_COUNT":        {MinArgs: 1, MaxArgs: 2, Call: fnWordCount},
	}
}

func fnAbs(env *data.Context, args []any) (any, error) {
	num, err := types.ToDecimal(args[0])
	if err != nil {
		return nil, err
	}
	return num.Abs(), nil
}

func fnAnd(env *data.Context, args []any) (any, error) {
	for _, arg := range args {
		truthy, err := types.ToBool(arg)
		if err != nil {
			return nil, err
		}
		if !truthy {
			return false, nil
		}
	}
	return true, nil
}

func fnOr(env *data.Context, args []any) (any, error) {
	for _, arg := range args {
		truthy, err := types.ToBool(arg)
		if err != nil {
			return nil, err
		}
		if truthy {
			return true, nil
		}
	}
	return false, nil
}

func fnConcatenate(env *data.Context, args []any) (any, error) {
	var b strings.Builder
	for _, arg := range args {
		text, err := types.ToString(arg, env.Timezone())
		if err != nil {
			return nil, err
		}
		b.WriteString(text)
	}
	return b.String(), nil
}

func fnDate(env *data.Context, args []any) (any, error) {
	year, err := asInt(args[0])
	if err != nil {
		return nil, err
	}
	month, err := asInt(args[1])
	if err != nil {
		return nil, err
	}
	day, err := asInt(args[2])
	if err != nil {
		return nil, err
	}

	check := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if check.Year() != year || int(check.Month()) != month || check.Day() != day {
		return nil, fmt.Errorf("%d-%d-%d is not a valid date", year, month, day)
	}
	return types.NewDate(year, month, day, env.Timezone()), nil
}

func fnTime(env *data.Context, args []any) (any, error) {
	hours, err := asInt(args[0])
	if err != nil {
		return nil, err
	}
	minutes, err := asInt(args[1])
	if err != nil {
		return nil, err
	}
	seconds, err := asInt(args[2])
	if err != nil {
		return nil, err
	}
	return types.NewTimeOfDay(hours, minutes, seconds), nil
}

func fnNow(env *data.Context, args []any) (any, error) {
	return types.DateTime{Time: env.Now()}, nil
}

func fnToday(env *data.Context, args []any) (any, error) {
	now := env.Now().In(env.Timezone())
	return types.NewDate(now.Year(), int(now.Month()), now.Day(), env.Timezone()), nil
}

func fnIf(env *data.Context, args []any) (any, error) {
	cond, err := types.ToBool(args[0])
	if err != nil {
		return nil, err
	}
	if cond {
		return args[1], nil
	}
	return args[2], nil
}

func fnLen(env *data.Context, args []any) (any, error) {
	text, err := types.ToString(args[0], env.Timezone())
	if err != nil {
		return nil, err
	}
	return decimal.NewFromInt(int64(utf8.RuneCountInString(text))), nil
}

func fnUpper(env *data.Context, args []any) (any, error) {
	text, err := types.ToString(args[0], env.Timezone())
	if err != nil {
		return nil, err
	}
	return strings.ToUpper(text), nil
}

func fnLower(env *data.Context, args []any) (any, error) {
	text, err := types.ToString(args[0], env.Timezone())
	if err != nil {
		return nil, err
	}
	return strings.ToLower(text), nil
}

func fnProper(env *data.Context, args []any) (any, error) {
	text, err := types.ToString(args[0], env.Timezone())
	if err != nil {
		return nil, err
	}
	return helpers.Proper(text), nil
}

func fnFirstWord(env *data.Context, args []any) (any, error) {
	text, err := types.ToString(args[0], env.Timezone())
	if err != nil {
		return nil, err
	}
	return helpers.FirstWord(text), nil
}

func fnRemoveFirstWord(env *data.Context, args []any) (any, error) {
	text, err := types.ToString(args[0], env.Timezone())
	if err != nil {
		return nil, err
	}
	return helpers.RemoveFirstWord(text), nil
}

func fnSubstitute(env *data.Context, args []any) (any, error) {
	text, err := types.ToString(args[0], env.Timezone())
	if err != nil {
		return nil, err
	}
	old, err := types.ToString(args[1], env.Timezone())
	if err != nil {
		return nil, err
	}
	replacement, err := types.ToString(args[2], env.Timezone())
	if err != nil {
		return nil, err
	}
	return strings.ReplaceAll(text, old, replacement), nil
}

func fnRept(env *data.Context, args []any) (any, error) {
	text, err := types.ToString(args[0], env.Timezone())
	if err != nil {
		return nil, err
	}
	count, err := asInt(args[1])
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, errors.New("number of repetitions must be non-negative")
	}
	return strings.Repeat(text, count), nil
}

func fnLeft(env *data.Context, args []any) (any, error) {
	text, err := types.ToString(args[0], env.Timezone())
	if err != nil {
		return nil, err
	}
	count, err := asInt(args[1])
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, errors.New("number of characters must be non-negative")
	}
	runes := []rune(text)
	if count > len(runes) {
		count = len(runes)
	}
	return string(runes[:count]), nil
}

func fnRight(env *data.Context, args []any) (any, error) {
	text, err := types.ToString(args[0], env.Timezone())
	if err != nil {
		return nil, err
	}
	count, err := asInt(args[1])
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, errors.New("number of characters must be non-negative")
	}
	runes := []rune(text)
	if count > len(runes) {
		count = len(runes)
	}
	return string(runes[len(runes)-count:]), nil
}

func fnWordCount(env *data.Context, args []any) (any, error) {
	text, err := types.ToString(args[0], env.Timezone())
	if err != nil {
		return nil, err
	}

	bySpacesOnly := false
	if len(args) > 1 {
		bySpacesOnly, err = types.ToBool(args[1])
		if err != nil {
			return nil, err
		}
	}
	return decimal.NewFromInt(int64(len(helpers.Words(text, bySpacesOnly)))), nil
}

func fnMax(env *data.Context, args []any) (any, error) {
	return foldDecimals(args, func(best, next decimal.Decimal) decimal.Decimal {
		if next.GreaterThan(best) {
			return next
		}
		return best
	})
}

func fnMin(env *data.Context, args []any) (any, error) {
	return foldDecimals(args, func(best, next decimal.Decimal) decimal.Decimal {
		if next.LessThan(best) {
			return next
		}
		return best
	})
}

func fnSum(env *data.Context, args []any) (any, error) {
	return foldDecimals(args, decimal.Decimal.Add)
}

func foldDecimals(args []any, combine func(decimal.Decimal, decimal.Decimal) decimal.Decimal) (any, error) {
	acc, err := types.ToDecimal(args[0])
	if err != nil {
		return nil, err
	}
	for _, arg := range args[1:] {
		num, err := types.ToDecimal(arg)
		if err != nil {
			return nil, err
		}
		acc = combine(acc, num)
	}
	return acc, nil
}

// asInt coerces to a decimal and truncates to an int.
func asInt(value any) (int, error) {
	num, err := types.ToDecimal(value)
	if err != nil {
		return 0, err
	}
	return int(num.IntPart()), nil
}
