package evaluator

import (
	"testing"

	"github.com/formulaengine/core/functions"
	"github.com/formulaengine/core/parser"
	"github.com/formulaengine/core/value"
)

func eval(t *testing.T, src string, ctx *Context, opts Options) (value.Value, error) {
	t.Helper()
	node, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) unexpected error: %v", src, err)
	}
	return New(opts).Evaluate(node, ctx, NewFrame())
}

func mustEval(t *testing.T, src string, ctx *Context) value.Value {
	t.Helper()
	v, err := eval(t, src, ctx, DefaultOptions(functions.NewRegistry()))
	if err != nil {
		t.Fatalf("eval(%q) unexpected error: %v", src, err)
	}
	return v
}

func TestDecimalExactness(t *testing.T) {
	ctx := NewContext()
	cases := map[string]string{
		"0.1 + 0.2":        "0.3",
		"1000.10 - 1000.00": "0.10",
		"19.99 * 3":        "59.97",
	}
	for src, want := range cases {
		got := mustEval(t, src, ctx)
		if got.String() != want {
			t.Errorf("%s = %s, want %s", src, got.String(), want)
		}
	}
}

func TestStringConcatenation(t *testing.T) {
	ctx := NewContext()
	got := mustEval(t, `"total: " + 5`, ctx)
	if got.String() != "total: 5" {
		t.Errorf("got %q", got.String())
	}
}

func TestDivisionByZero(t *testing.T) {
	ctx := NewContext()
	ctx.Variables["a"] = 10
	ctx.Variables["b"] = 0
	_, err := eval(t, "$a / $b", ctx, DefaultOptions(functions.NewRegistry()))
	if err == nil {
		t.Fatal("expected DivisionByZeroError")
	}
	if _, ok := err.(*DivisionByZeroError); !ok {
		t.Fatalf("expected *DivisionByZeroError, got %T", err)
	}
}

func TestShortCircuitAndOr(t *testing.T) {
	ctx := NewContext()
	got := mustEval(t, "false && $undef", ctx)
	if got.AsBool() != false {
		t.Error("expected false && $undef == false with no error")
	}
	got = mustEval(t, "true || $undef", ctx)
	if got.AsBool() != true {
		t.Error("expected true || $undef == true with no error")
	}
}

func TestUndefinedVariableStrictVsLenient(t *testing.T) {
	ctx := NewContext()
	strict := DefaultOptions(functions.NewRegistry())
	_, err := eval(t, "$missing", ctx, strict)
	if err == nil {
		t.Fatal("expected UndefinedVariableError in strict mode")
	}

	lenient := strict
	lenient.StrictMode = false
	v, err := eval(t, "$missing", ctx, lenient)
	if err != nil {
		t.Fatalf("unexpected error in lenient mode: %v", err)
	}
	if !v.IsNull() {
		t.Errorf("expected Null in lenient mode, got %v", v)
	}
}

func TestTernaryAndNestedMemberAccess(t *testing.T) {
	ctx := NewContext()
	ctx.Variables["score"] = 85
	got := mustEval(t, `$score>=90?"A":($score>=80?"B":"C")`, ctx)
	if got.AsString() != "B" {
		t.Errorf("got %q, want B", got.AsString())
	}

	ctx2 := NewContext()
	ctx2.Variables["customer"] = map[string]interface{}{
		"address": map[string]interface{}{"city": "NY"},
	}
	got2 := mustEval(t, "$customer.address.city", ctx2)
	if got2.AsString() != "NY" {
		t.Errorf("got %q, want NY", got2.AsString())
	}
}

func TestCascadingInvoice(t *testing.T) {
	ctx := NewContext()
	ctx.Variables["unitPrice"] = 100
	ctx.Variables["quantity"] = 5
	ctx.Variables["discountRate"] = 0.1

	gross := mustEval(t, "$unitPrice * $quantity", ctx)
	if gross.String() != "500" {
		t.Fatalf("gross = %s, want 500", gross.String())
	}
	ctx.Variables["gross"] = gross
	discount := mustEval(t, "$gross * $discountRate", ctx)
	if discount.String() != "50.0" {
		t.Fatalf("discount = %s, want 50.0", discount.String())
	}
}

func TestSumTwoArgIteratesWithIt(t *testing.T) {
	ctx := NewContext()
	ctx.Variables["items"] = []interface{}{1, 2, 3}
	got := mustEval(t, "SUM($items, $it * 2)", ctx)
	if got.String() != "12" {
		t.Errorf("SUM($items, $it*2) = %s, want 12", got.String())
	}
}

func TestFilterAndMap(t *testing.T) {
	ctx := NewContext()
	ctx.Variables["items"] = []interface{}{1, 2, 3, 4}

	filtered := mustEval(t, "FILTER($items, $it > 2)", ctx)
	if len(filtered.AsArray()) != 2 {
		t.Fatalf("expected 2 filtered items, got %d", len(filtered.AsArray()))
	}

	mapped := mustEval(t, "MAP($items, $it * 10)", ctx)
	arr := mapped.AsArray()
	if len(arr) != 4 || arr[0].String() != "10" {
		t.Fatalf("unexpected MAP result: %v", arr)
	}
}

func TestMemberAccessOnNullStrictVsLenient(t *testing.T) {
	ctx := NewContext()
	ctx.Variables["missing"] = nil

	strict := DefaultOptions(functions.NewRegistry())
	_, err := eval(t, "$missing.prop", ctx, strict)
	if err == nil {
		t.Fatal("expected PropertyAccessError in strict mode")
	}

	lenient := strict
	lenient.StrictMode = false
	v, err := eval(t, "$missing.prop", ctx, lenient)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.IsNull() {
		t.Error("expected Null result in lenient mode")
	}
}

func TestIndexOutOfRangeReturnsNull(t *testing.T) {
	ctx := NewContext()
	ctx.Variables["arr"] = []interface{}{1, 2}
	got := mustEval(t, "$arr[5]", ctx)
	if !got.IsNull() {
		t.Errorf("expected Null for out-of-range index, got %v", got)
	}
}

func TestMaxRecursionDepthGuard(t *testing.T) {
	ctx := NewContext()
	opts := DefaultOptions(functions.NewRegistry())
	opts.MaxRecursionDepth = 2
	// Four nested unary negations go deeper than the limit of 2 and trip the guard.
	_, err := eval(t, "-(-(-(-1)))", ctx, opts)
	if err == nil {
		t.Fatal("expected MaxRecursionError")
	}
	if _, ok := err.(*MaxRecursionError); !ok {
		t.Fatalf("expected *MaxRecursionError, got %T", err)
	}
}
