package functions

import (
	"github.com/spf13/cast"

	"github.com/formulaengine/core/decimal"
	"github.com/formulaengine/core/value"
)

func registerTypeConv(r *Registry) {
	r.Register("NUMBER", Definition{MinArgs: 1, MaxArgs: 1, Call: fnNumber})
	r.Register("STRING", Definition{MinArgs: 1, MaxArgs: 1, Call: fnString})
	r.Register("BOOLEAN", Definition{MinArgs: 1, MaxArgs: 1, Call: fnBoolean})
	r.Register("TYPEOF", Definition{MinArgs: 1, MaxArgs: 1, Call: fnTypeOf})
}

// fnNumber parses x to Decimal. Canonical decimal text parses exactly;
// anything else (looser numeric text, a bool) falls back to cast's
// lenient coercion before being re-anchored as Decimal.
func fnNumber(args []value.Value) (value.Value, error) {
	switch args[0].Kind() {
	case value.KindDecimal:
		return args[0], nil
	case value.KindFloat:
		return value.NewDecimal(decimal.FromFloat(args[0].AsFloat())), nil
	case value.KindString:
		if d, err := decimal.FromString(args[0].AsString()); err == nil {
			return value.NewDecimal(d), nil
		}
		f, err := cast.ToFloat64E(args[0].AsString())
		if err != nil {
			return value.Value{}, &Error{Function: "NUMBER", Message: err.Error()}
		}
		return value.NewDecimal(decimal.FromFloat(f)), nil
	case value.KindBool:
		f, _ := cast.ToFloat64E(args[0].AsBool())
		return value.NewDecimal(decimal.FromFloat(f)), nil
	default:
		return value.Value{}, &Error{Function: "NUMBER", Message: "cannot convert to a number"}
	}
}

func fnString(args []value.Value) (value.Value, error) {
	return value.NewString(args[0].String()), nil
}

// fnBoolean parses textual booleans strictly via cast rather than
// falling back to the truthiness of an arbitrary non-empty string.
func fnBoolean(args []value.Value) (value.Value, error) {
	if args[0].Kind() == value.KindString {
		b, err := cast.ToBoolE(args[0].AsString())
		if err != nil {
			return value.Value{}, &Error{Function: "BOOLEAN", Message: err.Error()}
		}
		return value.NewBool(b), nil
	}
	return value.NewBool(args[0].ToBool()), nil
}

func fnTypeOf(args []value.Value) (value.Value, error) {
	switch args[0].Kind() {
	case value.KindFloat:
		return value.NewString("number"), nil
	default:
		return value.NewString(args[0].TypeName()), nil
	}
}
