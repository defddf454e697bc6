package functions

import (
	"github.com/formulaengine/core/decimal"
	"github.com/formulaengine/core/value"
)

// registerAggregate wires the non-iterating aggregate/array builtins.
// SUM's two-argument form and FILTER/MAP are engine-known special forms
// dispatched directly by the evaluator (they need unevaluated argument
// ASTs to bind `it`) and are never registered here.
func registerAggregate(r *Registry) {
	r.Register("SUM", Definition{MinArgs: 1, MaxArgs: 1, Call: fnSum})
	r.Register("AVG", Definition{MinArgs: 1, MaxArgs: 1, Call: fnAvg})
	r.Register("COUNT", Definition{MinArgs: 1, MaxArgs: 1, Call: fnCount})
	r.Register("PRODUCT", Definition{MinArgs: 1, MaxArgs: 1, Call: fnProduct})
	r.Register("FIRST", Definition{MinArgs: 1, MaxArgs: 1, Call: fnFirst})
	r.Register("LAST", Definition{MinArgs: 1, MaxArgs: 1, Call: fnLast})
	r.Register("REVERSE", Definition{MinArgs: 1, MaxArgs: 1, Call: fnReverse})
	r.Register("SLICE", Definition{MinArgs: 2, MaxArgs: 3, Call: fnSlice})
	r.Register("INCLUDES", Definition{MinArgs: 2, MaxArgs: 2, Call: fnIncludes})
	r.Register("INDEXOF", Definition{MinArgs: 2, MaxArgs: 2, Call: fnIndexOf})
	r.Register("FLATTEN", Definition{MinArgs: 1, MaxArgs: 2, Call: fnFlatten})
}

func sumOf(fn string, arr []value.Value) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, v := range arr {
		d, err := toDecimal(fn, v)
		if err != nil {
			return decimal.Decimal{}, err
		}
		sum = sum.Add(d)
	}
	return sum, nil
}

func fnSum(args []value.Value) (value.Value, error) {
	arr, err := toArray("SUM", args[0])
	if err != nil {
		return value.Value{}, err
	}
	sum, err := sumOf("SUM", arr)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewDecimal(sum), nil
}

func fnAvg(args []value.Value) (value.Value, error) {
	arr, err := toArray("AVG", args[0])
	if err != nil {
		return value.Value{}, err
	}
	if len(arr) == 0 {
		return value.Value{}, &Error{Function: "AVG", Message: "cannot average an empty array"}
	}
	sum, err := sumOf("AVG", arr)
	if err != nil {
		return value.Value{}, err
	}
	avg, err := sum.DivScale(decimal.FromInt(int64(len(arr))), 10, decimal.RoundHalfUp)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewDecimal(avg), nil
}

func fnCount(args []value.Value) (value.Value, error) {
	arr, err := toArray("COUNT", args[0])
	if err != nil {
		return value.Value{}, err
	}
	return value.NewDecimal(decimal.FromInt(int64(len(arr)))), nil
}

func fnProduct(args []value.Value) (value.Value, error) {
	arr, err := toArray("PRODUCT", args[0])
	if err != nil {
		return value.Value{}, err
	}
	product := decimal.FromInt(1)
	for _, v := range arr {
		d, err := toDecimal("PRODUCT", v)
		if err != nil {
			return value.Value{}, err
		}
		product = product.Mul(d)
	}
	return value.NewDecimal(product), nil
}

func fnFirst(args []value.Value) (value.Value, error) {
	arr, err := toArray("FIRST", args[0])
	if err != nil {
		return value.Value{}, err
	}
	if len(arr) == 0 {
		return value.Null, nil
	}
	return arr[0], nil
}

func fnLast(args []value.Value) (value.Value, error) {
	arr, err := toArray("LAST", args[0])
	if err != nil {
		return value.Value{}, err
	}
	if len(arr) == 0 {
		return value.Null, nil
	}
	return arr[len(arr)-1], nil
}

func fnReverse(args []value.Value) (value.Value, error) {
	arr, err := toArray("REVERSE", args[0])
	if err != nil {
		return value.Value{}, err
	}
	out := make([]value.Value, len(arr))
	for i, v := range arr {
		out[len(arr)-1-i] = v
	}
	return value.NewArray(out), nil
}

func fnSlice(args []value.Value) (value.Value, error) {
	arr, err := toArray("SLICE", args[0])
	if err != nil {
		return value.Value{}, err
	}
	start, err := toInt("SLICE", args[1])
	if err != nil {
		return value.Value{}, err
	}
	end := len(arr)
	if len(args) > 2 && !args[2].IsNull() {
		e, err := toInt("SLICE", args[2])
		if err != nil {
			return value.Value{}, err
		}
		end = e
	}
	start = clampIndex(start, len(arr))
	end = clampIndex(end, len(arr))
	if start > end {
		return value.NewArray(nil), nil
	}
	out := make([]value.Value, end-start)
	copy(out, arr[start:end])
	return value.NewArray(out), nil
}

func clampIndex(i, length int) int {
	if i < 0 {
		i = 0
	}
	if i > length {
		i = length
	}
	return i
}

func fnIncludes(args []value.Value) (value.Value, error) {
	arr, err := toArray("INCLUDES", args[0])
	if err != nil {
		return value.Value{}, err
	}
	for _, v := range arr {
		if v.Equal(args[1]) {
			return value.NewBool(true), nil
		}
	}
	return value.NewBool(false), nil
}

func fnIndexOf(args []value.Value) (value.Value, error) {
	arr, err := toArray("INDEXOF", args[0])
	if err != nil {
		return value.Value{}, err
	}
	for i, v := range arr {
		if v.Equal(args[1]) {
			return value.NewDecimal(decimal.FromInt(int64(i))), nil
		}
	}
	return value.NewDecimal(decimal.FromInt(-1)), nil
}

func fnFlatten(args []value.Value) (value.Value, error) {
	arr, err := toArray("FLATTEN", args[0])
	if err != nil {
		return value.Value{}, err
	}
	depth := 1
	if len(args) > 1 {
		d, err := toInt("FLATTEN", args[1])
		if err != nil {
			return value.Value{}, err
		}
		depth = d
	}
	return value.NewArray(flatten(arr, depth)), nil
}

func flatten(arr []value.Value, depth int) []value.Value {
	if depth <= 0 {
		return arr
	}
	var out []value.Value
	for _, v := range arr {
		if v.Kind() == value.KindArray {
			out = append(out, flatten(v.AsArray(), depth-1)...)
		} else {
			out = append(out, v)
		}
	}
	return out
}
