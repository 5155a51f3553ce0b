package formula

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/robbyt/go-flowexpr/engines/formula/functions"
	"github.com/robbyt/go-flowexpr/platform/data"
	"github.com/robbyt/go-flowexpr/platform/types"
)

// Evaluate walks an expression tree against a context, post-order, and
// returns the resulting value. Every failure comes back as an error rather
// than a panic.
func Evaluate(node Node, env *data.Context) (any, error) {
	switch typed := node.(type) {
	case *Literal:
		return typed.Value, nil

	case *VariableRef:
		return env.Resolve(typed.Path)

	case *UnaryMinus:
		value, err := Evaluate(typed.Expr, env)
		if err != nil {
			return nil, err
		}
		num, err := types.ToDecimal(value)
		if err != nil {
			return nil, errArithmetic()
		}
		return num.Neg(), nil

	case *FunctionCall:
		args := make([]any, len(typed.Args))
		for i, argNode := range typed.Args {
			arg, err := Evaluate(argNode, env)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return functions.Invoke(env, typed.Name, args)

	case *BinaryOp:
		lhs, err := Evaluate(typed.LHS, env)
		if err != nil {
			return nil, err
		}
		rhs, err := Evaluate(typed.RHS, env)
		if err != nil {
			return nil, err
		}
		return evaluateBinary(env, typed.Op, lhs, rhs)
	}

	return nil, errArithmetic()
}

func evaluateBinary(env *data.Context, op string, lhs, rhs any) (any, error) {
	switch op {
	case "+", "-", "*", "/", "^":
		return evaluateArithmetic(env, op, lhs, rhs)
	case "&":
		return evaluateConcatenation(env, lhs, rhs)
	case "=", "<>":
		equal := valuesEqual(env, lhs, rhs)
		if op == "<>" {
			return !equal, nil
		}
		return equal, nil
	case ">", ">=", "<", "<=":
		return evaluateOrdering(env, op, lhs, rhs)
	}
	return nil, errArithmetic()
}

// evaluateArithmetic first tries plain decimal arithmetic, then for + and -
// falls back to date arithmetic: a decimal operand is whole days, and a
// TimeOfDay operand is a time-of-day delta.
func evaluateArithmetic(env *data.Context, op string, lhs, rhs any) (any, error) {
	lnum, lerr := types.ToDecimal(lhs)
	rnum, rerr := types.ToDecimal(rhs)

	if lerr == nil && rerr == nil {
		switch op {
		case "+":
			return lnum.Add(rnum), nil
		case "-":
			return lnum.Sub(rnum), nil
		case "*":
			return lnum.Mul(rnum), nil
		case "/":
			if rnum.IsZero() {
				return nil, &DivisionByZeroError{}
			}
			return lnum.Div(rnum), nil
		case "^":
			return power(lnum, rnum), nil
		}
	}

	if op == "+" || op == "-" {
		if result, ok := evaluateDateArithmetic(env, op, lhs, rhs); ok {
			return result, nil
		}
	}
	return nil, errArithmetic()
}

func evaluateDateArithmetic(env *data.Context, op string, lhs, rhs any) (any, bool) {
	// date ± time-of-day delta
	if delta, ok := rhs.(types.TimeOfDay); ok {
		if date, err := types.ToDateTime(lhs, env.Timezone(), env.DateStyle()); err == nil {
			if op == "-" {
				delta = -delta
			}
			return date.AddTime(delta), true
		}
		return nil, false
	}
	if delta, ok := lhs.(types.TimeOfDay); ok && op == "+" {
		if date, err := types.ToDateTime(rhs, env.Timezone(), env.DateStyle()); err == nil {
			return date.AddTime(delta), true
		}
		return nil, false
	}

	// date ± whole days; for + the date may be on either side
	if date, err := types.ToDateTime(lhs, env.Timezone(), env.DateStyle()); err == nil {
		if days, err := types.ToDecimal(rhs); err == nil {
			if op == "-" {
				return date.AddDays(-int(days.IntPart())), true
			}
			return date.AddDays(int(days.IntPart())), true
		}
		return nil, false
	}
	if op == "+" {
		if date, err := types.ToDateTime(rhs, env.Timezone(), env.DateStyle()); err == nil {
			if days, err := types.ToDecimal(lhs); err == nil {
				return date.AddDays(int(days.IntPart())), true
			}
		}
	}
	return nil, false
}

// power raises base to an exponent, exactly for integer exponents and via
// float math otherwise.
func power(base, exponent decimal.Decimal) decimal.Decimal {
	if exponent.IsInteger() {
		return base.Pow(exponent)
	}
	result := math.Pow(base.InexactFloat64(), exponent.InexactFloat64())
	return decimal.NewFromFloat(result)
}

func evaluateConcatenation(env *data.Context, lhs, rhs any) (any, error) {
	left, err := types.ToString(lhs, env.Timezone())
	if err != nil {
		return nil, err
	}
	right, err := types.ToString(rhs, env.Timezone())
	if err != nil {
		return nil, err
	}
	return left + right, nil
}

// valuesEqual compares two values for equality. Strings compare
// case-insensitively; values of differing kinds that share no coercion
// compare unequal rather than raising an error.
func valuesEqual(env *data.Context, lhs, rhs any) bool {
	lbool, lIsBool := lhs.(bool)
	rbool, rIsBool := rhs.(bool)
	if lIsBool || rIsBool {
		return lIsBool && rIsBool && lbool == rbool
	}

	lstr, lIsStr := lhs.(string)
	rstr, rIsStr := rhs.(string)
	if lIsStr && rIsStr {
		return strings.EqualFold(lstr, rstr)
	}

	if ltime, ok := lhs.(types.TimeOfDay); ok {
		rtime, ok := rhs.(types.TimeOfDay)
		return ok && ltime == rtime
	}

	if isTemporal(lhs) || isTemporal(rhs) {
		ldate, lerr := types.ToDateTime(lhs, env.Timezone(), env.DateStyle())
		rdate, rerr := types.ToDateTime(rhs, env.Timezone(), env.DateStyle())
		return lerr == nil && rerr == nil && ldate.Compare(rdate) == 0
	}

	lnum, lerr := types.ToDecimal(lhs)
	rnum, rerr := types.ToDecimal(rhs)
	if lerr == nil && rerr == nil {
		return lnum.Equal(rnum)
	}
	return false
}

// evaluateOrdering compares two values that must share one of the decimal,
// string or date kinds. String ordering is case-sensitive over code points.
func evaluateOrdering(env *data.Context, op string, lhs, rhs any) (any, error) {
	cmp, err := compareValues(env, lhs, rhs)
	if err != nil {
		return nil, err
	}

	switch op {
	case ">":
		return cmp > 0, nil
	case ">=":
		return cmp >= 0, nil
	case "<":
		return cmp < 0, nil
	case "<=":
		return cmp <= 0, nil
	}
	return nil, errComparison()
}

func compareValues(env *data.Context, lhs, rhs any) (int, error) {
	lstr, lIsStr := lhs.(string)
	rstr, rIsStr := rhs.(string)
	if lIsStr && rIsStr {
		return strings.Compare(lstr, rstr), nil
	}

	if lnum, err := types.ToDecimal(lhs); err == nil {
		if rnum, err := types.ToDecimal(rhs); err == nil {
			return lnum.Cmp(rnum), nil
		}
	}

	if isTemporal(lhs) || isTemporal(rhs) {
		ldate, lerr := types.ToDateTime(lhs, env.Timezone(), env.DateStyle())
		rdate, rerr := types.ToDateTime(rhs, env.Timezone(), env.DateStyle())
		if lerr == nil && rerr == nil {
			return ldate.Compare(rdate), nil
		}
	}
	return 0, errComparison()
}

func isTemporal(value any) bool {
	switch value.(type) {
	case types.DateTime, types.TimeOfDay:
		return true
	}
	return false
}
