package functions

import (
	"github.com/formulaengine/core/decimal"
	"github.com/formulaengine/core/value"
)

func registerMath(r *Registry) {
	r.Register("ABS", Definition{MinArgs: 1, MaxArgs: 1, Call: fnAbs})
	r.Register("ROUND", Definition{MinArgs: 1, MaxArgs: 3, Call: fnRound})
	r.Register("FLOOR", Definition{MinArgs: 1, MaxArgs: 2, Call: fnFloor})
	r.Register("CEIL", Definition{MinArgs: 1, MaxArgs: 2, Call: fnCeil})
	r.Register("TRUNCATE", Definition{MinArgs: 1, MaxArgs: 2, Call: fnTruncate})
	r.Register("MIN", Definition{MinArgs: 1, MaxArgs: -1, Call: fnMin})
	r.Register("MAX", Definition{MinArgs: 1, MaxArgs: -1, Call: fnMax})
	r.Register("POW", Definition{MinArgs: 2, MaxArgs: 2, Call: fnPow})
	r.Register("SQRT", Definition{MinArgs: 1, MaxArgs: 1, Call: fnSqrt})
	r.Register("LOG", Definition{MinArgs: 1, MaxArgs: 1, Call: fnLog})
	r.Register("LOG10", Definition{MinArgs: 1, MaxArgs: 1, Call: fnLog10})
	r.Register("SIGN", Definition{MinArgs: 1, MaxArgs: 1, Call: fnSign})
	r.Register("DECIMAL", Definition{MinArgs: 1, MaxArgs: 2, Call: fnDecimal})
	r.Register("SCALE", Definition{MinArgs: 1, MaxArgs: 1, Call: fnScale})
	r.Register("PRECISION", Definition{MinArgs: 1, MaxArgs: 1, Call: fnPrecision})
	r.Register("DIVIDE", Definition{MinArgs: 2, MaxArgs: 4, Call: fnDivide})
}

func fnAbs(args []value.Value) (value.Value, error) {
	d, err := toDecimal("ABS", args[0])
	if err != nil {
		return value.Value{}, err
	}
	return value.NewDecimal(d.Abs()), nil
}

func fnRound(args []value.Value) (value.Value, error) {
	d, err := toDecimal("ROUND", args[0])
	if err != nil {
		return value.Value{}, err
	}
	places := int32(0)
	if len(args) > 1 {
		p, err := toInt("ROUND", args[1])
		if err != nil {
			return value.Value{}, err
		}
		places = int32(p)
	}
	mode, err := parseRoundingMode("ROUND", arg(args, 2, value.Null))
	if err != nil {
		return value.Value{}, err
	}
	return value.NewDecimal(d.Round(places, mode)), nil
}

func fnFloor(args []value.Value) (value.Value, error) {
	d, err := toDecimal("FLOOR", args[0])
	if err != nil {
		return value.Value{}, err
	}
	places := int32(0)
	if len(args) > 1 {
		p, err := toInt("FLOOR", args[1])
		if err != nil {
			return value.Value{}, err
		}
		places = int32(p)
	}
	return value.NewDecimal(d.Round(places, decimal.RoundFloor)), nil
}

func fnCeil(args []value.Value) (value.Value, error) {
	d, err := toDecimal("CEIL", args[0])
	if err != nil {
		return value.Value{}, err
	}
	places := int32(0)
	if len(args) > 1 {
		p, err := toInt("CEIL", args[1])
		if err != nil {
			return value.Value{}, err
		}
		places = int32(p)
	}
	return value.NewDecimal(d.Round(places, decimal.RoundCeil)), nil
}

func fnTruncate(args []value.Value) (value.Value, error) {
	d, err := toDecimal("TRUNCATE", args[0])
	if err != nil {
		return value.Value{}, err
	}
	places := int32(0)
	if len(args) > 1 {
		p, err := toInt("TRUNCATE", args[1])
		if err != nil {
			return value.Value{}, err
		}
		places = int32(p)
	}
	return value.NewDecimal(d.Round(places, decimal.RoundDown)), nil
}

// fnMin and fnMax are variadic; a single array argument reduces over
// its elements instead of being compared as one value.
func fnMin(args []value.Value) (value.Value, error) { return minMax("MIN", args, false) }
func fnMax(args []value.Value) (value.Value, error) { return minMax("MAX", args, true) }

func minMax(name string, args []value.Value, wantMax bool) (value.Value, error) {
	operands := args
	if len(args) == 1 && args[0].Kind() == value.KindArray {
		operands = args[0].AsArray()
	}
	if len(operands) == 0 {
		return value.Value{}, &Error{Function: name, Message: "no values to compare"}
	}
	best, err := toDecimal(name, operands[0])
	if err != nil {
		return value.Value{}, err
	}
	for _, v := range operands[1:] {
		d, err := toDecimal(name, v)
		if err != nil {
			return value.Value{}, err
		}
		if (wantMax && d.GreaterThan(best)) || (!wantMax && d.LessThan(best)) {
			best = d
		}
	}
	return value.NewDecimal(best), nil
}

func fnPow(args []value.Value) (value.Value, error) {
	base, err := toDecimal("POW", args[0])
	if err != nil {
		return value.Value{}, err
	}
	exp, err := toDecimal("POW", args[1])
	if err != nil {
		return value.Value{}, err
	}
	if exp.IsInteger() {
		return value.NewDecimal(base.PowInt(exp.IntPart())), nil
	}
	return value.NewDecimal(base.PowFloat(exp.Float64())), nil
}

func fnSqrt(args []value.Value) (value.Value, error) {
	d, err := toDecimal("SQRT", args[0])
	if err != nil {
		return value.Value{}, err
	}
	if d.IsNegative() {
		return value.Value{}, &Error{Function: "SQRT", Message: "square root of a negative number"}
	}
	return value.NewDecimal(d.Sqrt()), nil
}

func fnLog(args []value.Value) (value.Value, error) {
	d, err := toDecimal("LOG", args[0])
	if err != nil {
		return value.Value{}, err
	}
	return value.NewDecimal(d.Ln()), nil
}

func fnLog10(args []value.Value) (value.Value, error) {
	d, err := toDecimal("LOG10", args[0])
	if err != nil {
		return value.Value{}, err
	}
	return value.NewDecimal(d.Log10()), nil
}

func fnSign(args []value.Value) (value.Value, error) {
	d, err := toDecimal("SIGN", args[0])
	if err != nil {
		return value.Value{}, err
	}
	switch {
	case d.IsZero():
		return value.NewDecimal(decimal.Zero), nil
	case d.IsNegative():
		return value.NewDecimal(decimal.FromInt(-1)), nil
	default:
		return value.NewDecimal(decimal.FromInt(1)), nil
	}
}

func fnDecimal(args []value.Value) (value.Value, error) {
	switch args[0].Kind() {
	case value.KindDecimal, value.KindFloat:
		d, err := toDecimal("DECIMAL", args[0])
		if err != nil {
			return value.Value{}, err
		}
		return applyOptionalScale("DECIMAL", d, args)
	case value.KindString:
		d, err := decimal.FromString(args[0].AsString())
		if err != nil {
			return value.Value{}, &Error{Function: "DECIMAL", Message: err.Error()}
		}
		return applyOptionalScale("DECIMAL", d, args)
	default:
		return value.Value{}, &Error{Function: "DECIMAL", Message: "cannot convert to decimal"}
	}
}

func applyOptionalScale(fn string, d decimal.Decimal, args []value.Value) (value.Value, error) {
	if len(args) < 2 {
		return value.NewDecimal(d), nil
	}
	scale, err := toInt(fn, args[1])
	if err != nil {
		return value.Value{}, err
	}
	return value.NewDecimal(d.Round(int32(scale), decimal.RoundHalfUp)), nil
}

func fnScale(args []value.Value) (value.Value, error) {
	d, err := toDecimal("SCALE", args[0])
	if err != nil {
		return value.Value{}, err
	}
	return value.NewDecimal(decimal.FromInt(int64(d.Scale()))), nil
}

func fnPrecision(args []value.Value) (value.Value, error) {
	d, err := toDecimal("PRECISION", args[0])
	if err != nil {
		return value.Value{}, err
	}
	return value.NewDecimal(decimal.FromInt(int64(d.Precision()))), nil
}

func fnDivide(args []value.Value) (value.Value, error) {
	a, err := toDecimal("DIVIDE", args[0])
	if err != nil {
		return value.Value{}, err
	}
	b, err := toDecimal("DIVIDE", args[1])
	if err != nil {
		return value.Value{}, err
	}
	scale := int32(10)
	if len(args) > 2 && !args[2].IsNull() {
		s, err := toInt("DIVIDE", args[2])
		if err != nil {
			return value.Value{}, err
		}
		scale = int32(s)
	}
	mode, err := parseRoundingMode("DIVIDE", arg(args, 3, value.Null))
	if err != nil {
		return value.Value{}, err
	}
	q, err := a.DivScale(b, scale, mode)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewDecimal(q), nil
}
