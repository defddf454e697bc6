package dependency

import (
	"testing"

	"github.com/formulaengine/core/parser"
)

func mustExtract(t *testing.T, src string) map[string]struct{} {
	t.Helper()
	node, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) unexpected error: %v", src, err)
	}
	return Extract(node)
}

func TestExtractSimpleVariable(t *testing.T) {
	names := mustExtract(t, "$a + $b")
	if _, ok := names["a"]; !ok {
		t.Error("expected 'a' collected")
	}
	if _, ok := names["b"]; !ok {
		t.Error("expected 'b' collected")
	}
	if len(names) != 2 {
		t.Errorf("expected exactly 2 names, got %v", names)
	}
}

func TestExtractIgnoresContextVariables(t *testing.T) {
	names := mustExtract(t, "$a + @fxRate")
	if _, ok := names["fxRate"]; ok {
		t.Error("context variables must never be collected")
	}
	if _, ok := names["a"]; !ok {
		t.Error("expected 'a' collected")
	}
}

func TestExtractMemberChainOnlyRoot(t *testing.T) {
	names := mustExtract(t, "$customer.address.city")
	if len(names) != 1 {
		t.Fatalf("expected exactly 1 name, got %v", names)
	}
	if _, ok := names["customer"]; !ok {
		t.Error("expected root variable 'customer' collected")
	}
}

func TestExtractRecursesIntoIndexExpression(t *testing.T) {
	names := mustExtract(t, "$items[$idx]")
	if _, ok := names["items"]; !ok {
		t.Error("expected 'items' collected")
	}
	if _, ok := names["idx"]; !ok {
		t.Error("expected 'idx' collected from index expression")
	}
}

func TestExtractRecursesIntoFunctionArgsAndObjectValues(t *testing.T) {
	names := mustExtract(t, `sum($list) + {k: $v}.k`)
	for _, want := range []string{"list", "v"} {
		if _, ok := names[want]; !ok {
			t.Errorf("expected %q collected, got %v", want, names)
		}
	}
}
