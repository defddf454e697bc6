package functions

import (
	"github.com/formulaengine/core/decimal"
	"github.com/formulaengine/core/value"
)

func registerLookup(r *Registry) {
	r.Register("LOOKUP", Definition{MinArgs: 3, MaxArgs: 3, Call: fnLookup})
	r.Register("RANGE", Definition{MinArgs: 5, MaxArgs: 5, Call: fnRange})
}

// fnLookup linearly scans a table (array of objects) for the first row
// whose fields match every key in criteria, and returns returnField
// from that row. It returns Decimal 0 rather than raising when the
// table is Null, nothing matches, or returnField is absent on the
// matching row — these tables are used as cascading pricing defaults.
// A criteria argument that isn't a plain object is still a hard error.
func fnLookup(args []value.Value) (value.Value, error) {
	table, criteria, returnField := args[0], args[1], args[2]

	if table.IsNull() {
		return zeroResult(), nil
	}
	rows, err := toArray("LOOKUP", table)
	if err != nil {
		return value.Value{}, err
	}
	if criteria.Kind() != value.KindObject {
		return value.Value{}, &Error{Function: "LOOKUP", Message: "criteria must be an object"}
	}
	field := returnField.AsString()

	for _, row := range rows {
		if row.Kind() != value.KindObject {
			continue
		}
		if rowMatches(row.AsObject(), criteria.AsObject()) {
			if v, ok := row.AsObject().Get(field); ok {
				return v, nil
			}
			return zeroResult(), nil
		}
	}
	return zeroResult(), nil
}

func rowMatches(row, criteria *value.Object) bool {
	for _, key := range criteria.Keys() {
		want, _ := criteria.Get(key)
		got, ok := row.Get(key)
		if !ok || !numericAwareEqual(got, want) {
			return false
		}
	}
	return true
}

// numericAwareEqual treats Decimal and Float as comparable by numeric
// value (unlike value.Value.Equal, which never equates the two kinds),
// and falls back to stringified comparison when either side isn't
// numeric, matching the "Decimal<->string by stringified form" rule.
func numericAwareEqual(a, b value.Value) bool {
	if a.IsNumeric() && b.IsNumeric() {
		da, _ := a.ToDecimal()
		db, _ := b.ToDecimal()
		return da.Equal(db)
	}
	if a.Kind() == b.Kind() {
		return a.Equal(b)
	}
	return a.String() == b.String()
}

func zeroResult() value.Value { return value.NewDecimal(decimal.Zero) }

// fnRange scans tiers for the first row where minField <= value <
// maxField, treating a missing or Null maxField as +infinity, and
// returns returnField from that row (Decimal 0 if none match).
func fnRange(args []value.Value) (value.Value, error) {
	table, v, minField, maxField, returnField := args[0], args[1], args[2].AsString(), args[3].AsString(), args[4].AsString()

	rows, err := toArray("RANGE", table)
	if err != nil {
		return value.Value{}, err
	}
	target, err := toDecimal("RANGE", v)
	if err != nil {
		return value.Value{}, err
	}

	for _, row := range rows {
		if row.Kind() != value.KindObject {
			continue
		}
		obj := row.AsObject()
		minV, ok := obj.Get(minField)
		if !ok {
			continue
		}
		min, err := toDecimal("RANGE", minV)
		if err != nil {
			return value.Value{}, err
		}
		if target.LessThan(min) {
			continue
		}
		maxV, hasMax := obj.Get(maxField)
		if hasMax && !maxV.IsNull() {
			max, err := toDecimal("RANGE", maxV)
			if err != nil {
				return value.Value{}, err
			}
			if target.GreaterThanOrEqual(max) {
				continue
			}
		}
		if result, ok := obj.Get(returnField); ok {
			return result, nil
		}
		return zeroResult(), nil
	}
	return zeroResult(), nil
}
