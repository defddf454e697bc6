package functions

import (
	"fmt"

	"github.com/formulaengine/core/decimal"
	"github.com/formulaengine/core/value"
)

// Error reports a function-body failure that isn't a plain arity or
// coercion problem (e.g. sqrt of a negative number).
type Error struct {
	Function string
	Message  string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Function, e.Message) }

func toDecimal(fn string, v value.Value) (decimal.Decimal, error) {
	d, err := v.ToDecimal()
	if err != nil {
		return decimal.Decimal{}, &Error{Function: fn, Message: err.Error()}
	}
	return d, nil
}

func toArray(fn string, v value.Value) ([]value.Value, error) {
	if v.Kind() != value.KindArray {
		return nil, &Error{Function: fn, Message: "expected an array argument"}
	}
	return v.AsArray(), nil
}

func toInt(fn string, v value.Value) (int, error) {
	switch v.Kind() {
	case value.KindDecimal:
		return int(v.AsDecimal().IntPart()), nil
	case value.KindFloat:
		return int(v.AsFloat()), nil
	default:
		return 0, &Error{Function: fn, Message: "expected a numeric argument"}
	}
}

func toStr(v value.Value) string { return v.String() }

// parseRoundingMode maps the optional mode-name string argument several
// functions accept onto decimal.RoundingMode, defaulting to HALF_UP.
func parseRoundingMode(fn string, v value.Value) (decimal.RoundingMode, error) {
	if v.IsNull() {
		return decimal.RoundHalfUp, nil
	}
	switch v.String() {
	case "CEIL":
		return decimal.RoundCeil, nil
	case "FLOOR":
		return decimal.RoundFloor, nil
	case "DOWN":
		return decimal.RoundDown, nil
	case "UP":
		return decimal.RoundUp, nil
	case "HALF_UP":
		return decimal.RoundHalfUp, nil
	case "HALF_DOWN":
		return decimal.RoundHalfDown, nil
	case "HALF_EVEN":
		return decimal.RoundHalfEven, nil
	case "HALF_ODD":
		return decimal.RoundHalfOdd, nil
	default:
		return 0, &Error{Function: fn, Message: "unrecognized rounding mode " + v.String()}
	}
}

func arg(args []value.Value, i int, def value.Value) value.Value {
	if i < len(args) {
		return args[i]
	}
	return def
}
