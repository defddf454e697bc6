package functions

import (
	"testing"

	"github.com/formulaengine/core/decimal"
	"github.com/formulaengine/core/value"
)

func dec(s string) value.Value {
	d, err := decimal.FromString(s)
	if err != nil {
		panic(err)
	}
	return value.NewDecimal(d)
}

func call(t *testing.T, r *Registry, name string, args ...value.Value) value.Value {
	t.Helper()
	def, ok := r.Lookup(name)
	if !ok {
		t.Fatalf("function %s not registered", name)
	}
	if err := CheckArity(name, def, len(args)); err != nil {
		t.Fatalf("%s: unexpected arity error: %v", name, err)
	}
	v, err := def.Call(args)
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", name, err)
	}
	return v
}

func TestMathFunctions(t *testing.T) {
	r := NewRegistry()

	if got := call(t, r, "ABS", dec("-5.5")); got.String() != "5.5" {
		t.Errorf("ABS(-5.5) = %s", got.String())
	}
	if got := call(t, r, "ROUND", dec("19.125"), dec("2")); got.String() != "19.13" {
		t.Errorf("ROUND(19.125, 2) = %s, want 19.13", got.String())
	}
	if got := call(t, r, "MAX", value.NewArray([]value.Value{dec("1"), dec("9"), dec("3")})); got.String() != "9" {
		t.Errorf("MAX(array) = %s, want 9", got.String())
	}
	if got := call(t, r, "MIN", dec("4"), dec("1"), dec("7")); got.String() != "1" {
		t.Errorf("MIN(4,1,7) = %s, want 1", got.String())
	}
	if got := call(t, r, "DIVIDE", dec("10"), dec("3"), dec("2")); got.String() != "3.33" {
		t.Errorf("DIVIDE(10,3,2) = %s, want 3.33", got.String())
	}
}

func TestAggregateFunctions(t *testing.T) {
	r := NewRegistry()
	arr := value.NewArray([]value.Value{dec("1"), dec("2"), dec("3")})

	if got := call(t, r, "SUM", arr); got.String() != "6" {
		t.Errorf("SUM = %s, want 6", got.String())
	}
	if got := call(t, r, "COUNT", arr); got.String() != "3" {
		t.Errorf("COUNT = %s, want 3", got.String())
	}
	if got := call(t, r, "FIRST", arr); got.String() != "1" {
		t.Errorf("FIRST = %s, want 1", got.String())
	}
	if got := call(t, r, "LAST", arr); got.String() != "3" {
		t.Errorf("LAST = %s, want 3", got.String())
	}
	if got := call(t, r, "INDEXOF", arr, dec("2")); got.String() != "1" {
		t.Errorf("INDEXOF = %s, want 1", got.String())
	}
	if got := call(t, r, "INDEXOF", arr, dec("99")); got.String() != "-1" {
		t.Errorf("INDEXOF missing = %s, want -1", got.String())
	}
}

func TestStringFunctions(t *testing.T) {
	r := NewRegistry()
	if got := call(t, r, "UPPER", value.NewString("straße")); got.AsString() == "" {
		t.Error("UPPER should not return empty")
	}
	if got := call(t, r, "CONCAT", value.NewString("a"), dec("1"), value.NewString("b")); got.AsString() != "a1b" {
		t.Errorf("CONCAT = %q, want a1b", got.AsString())
	}
	if got := call(t, r, "CONTAINS", value.NewString("hello world"), value.NewString("wor")); !got.AsBool() {
		t.Error("expected CONTAINS to find substring")
	}
}

func TestLookupNoMatchReturnsZero(t *testing.T) {
	r := NewRegistry()
	row := value.NewObject()
	row.Set("region", value.NewString("US"))
	row.Set("rate", dec("0.02"))
	table := value.NewArray([]value.Value{value.NewObjectValue(row)})

	criteria := value.NewObject()
	criteria.Set("region", value.NewString("JP"))

	got := call(t, r, "LOOKUP", table, value.NewObjectValue(criteria), value.NewString("rate"))
	if !got.Equal(value.NewDecimal(decimal.Zero)) {
		t.Errorf("expected Decimal 0 on no match, got %s", got.String())
	}
}

func TestLookupMatches(t *testing.T) {
	r := NewRegistry()
	usRow := value.NewObject()
	usRow.Set("region", value.NewString("US"))
	usRow.Set("category", value.NewString("food"))
	usRow.Set("rate", dec("0.02"))

	euRow := value.NewObject()
	euRow.Set("region", value.NewString("EU"))
	euRow.Set("category", value.NewString("food"))
	euRow.Set("rate", dec("0.10"))

	table := value.NewArray([]value.Value{value.NewObjectValue(usRow), value.NewObjectValue(euRow)})

	criteria := value.NewObject()
	criteria.Set("region", value.NewString("EU"))
	criteria.Set("category", value.NewString("food"))

	got := call(t, r, "LOOKUP", table, value.NewObjectValue(criteria), value.NewString("rate"))
	if got.String() != "0.10" {
		t.Errorf("LOOKUP = %s, want 0.10", got.String())
	}
}

func TestRangeTiers(t *testing.T) {
	r := NewRegistry()
	mk := func(min, max, rate value.Value) value.Value {
		o := value.NewObject()
		o.Set("min", min)
		o.Set("max", max)
		o.Set("rate", rate)
		return value.NewObjectValue(o)
	}
	tiers := value.NewArray([]value.Value{
		mk(dec("0"), dec("1000"), dec("0.10")),
		mk(dec("1000"), dec("5000"), dec("0.15")),
		mk(dec("5000"), value.Null, dec("0.20")),
	})

	cases := []struct {
		v    value.Value
		want string
	}{
		{dec("1000"), "0.15"},
		{dec("5000"), "0.20"},
		{dec("-5"), "0"},
	}
	for _, c := range cases {
		got := call(t, r, "RANGE", tiers, c.v, value.NewString("min"), value.NewString("max"), value.NewString("rate"))
		if got.String() != c.want {
			t.Errorf("RANGE(%s) = %s, want %s", c.v.String(), got.String(), c.want)
		}
	}
}

func TestArityChecking(t *testing.T) {
	r := NewRegistry()
	def, _ := r.Lookup("ABS")
	if err := CheckArity("ABS", def, 0); err == nil {
		t.Fatal("expected ArgumentCountError for too few args")
	}
	if err := CheckArity("ABS", def, 2); err == nil {
		t.Fatal("expected ArgumentCountError for too many args")
	}
}

func TestTypeOfReportsNumberForFloat(t *testing.T) {
	r := NewRegistry()
	if got := call(t, r, "TYPEOF", value.NewFloat(1.5)); got.AsString() != "number" {
		t.Errorf("TYPEOF(float) = %s, want number", got.AsString())
	}
	if got := call(t, r, "TYPEOF", dec("1.5")); got.AsString() != "decimal" {
		t.Errorf("TYPEOF(decimal) = %s, want decimal", got.AsString())
	}
}
