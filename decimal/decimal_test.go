package decimal

import "testing"

func mustFrom(t *testing.T, s string) Decimal {
	t.Helper()
	d, err := FromString(s)
	if err != nil {
		t.Fatalf("FromString(%q) unexpected error: %v", s, err)
	}
	return d
}

func TestFromStringInvalid(t *testing.T) {
	if _, err := FromString("not-a-number"); err == nil {
		t.Fatal("expected error for malformed decimal text")
	}
}

func TestAddSubMulExact(t *testing.T) {
	a := mustFrom(t, "0.1")
	b := mustFrom(t, "0.2")
	sum := a.Add(b)
	if sum.String() != "0.3" {
		t.Errorf("0.1 + 0.2 = %s, want 0.3", sum.String())
	}

	diff := mustFrom(t, "1.00").Sub(mustFrom(t, "0.35"))
	if diff.String() != "0.65" {
		t.Errorf("1.00 - 0.35 = %s, want 0.65", diff.String())
	}

	prod := mustFrom(t, "2.5").Mul(mustFrom(t, "4"))
	if prod.String() != "10.0" {
		t.Errorf("2.5 * 4 = %s, want 10.0", prod.String())
	}
}

func TestDivScaleByZeroIsError(t *testing.T) {
	x := mustFrom(t, "10")
	if _, err := x.DivScale(Zero, 2, RoundHalfUp); err == nil {
		t.Fatal("expected DivisionByZeroError")
	}
	if _, err := x.Div(Zero); err == nil {
		t.Fatal("expected DivisionByZeroError from Div")
	}
	if _, err := x.Mod(Zero); err == nil {
		t.Fatal("expected DivisionByZeroError from Mod")
	}
}

func TestDivScaleRounds(t *testing.T) {
	x := mustFrom(t, "10")
	y := mustFrom(t, "3")
	q, err := x.DivScale(y, 2, RoundHalfUp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.String() != "3.33" {
		t.Errorf("10/3 rounded to 2 places = %s, want 3.33", q.String())
	}
}

func TestRoundingModes(t *testing.T) {
	cases := []struct {
		mode RoundingMode
		in   string
		want string
	}{
		{RoundCeil, "1.21", "1.3"},
		{RoundCeil, "-1.21", "-1.2"},
		{RoundFloor, "1.29", "1.2"},
		{RoundFloor, "-1.21", "-1.3"},
		{RoundDown, "1.29", "1.2"},
		{RoundDown, "-1.29", "-1.2"},
		{RoundUp, "1.21", "1.3"},
		{RoundUp, "-1.21", "-1.3"},
		{RoundHalfUp, "1.25", "1.3"},
		{RoundHalfDown, "1.25", "1.2"},
		{RoundHalfEven, "1.25", "1.2"},
		{RoundHalfEven, "1.35", "1.4"},
	}

	for _, c := range cases {
		got := mustFrom(t, c.in).Round(1, c.mode)
		if got.String() != c.want {
			t.Errorf("Round(%s, mode=%d) = %s, want %s", c.in, c.mode, got.String(), c.want)
		}
	}
}

func TestCompareAndEqual(t *testing.T) {
	a := mustFrom(t, "1.50")
	b := mustFrom(t, "1.5")
	if !a.Equal(b) {
		t.Error("1.50 should equal 1.5 numerically")
	}
	if a.Compare(b) != Equal {
		t.Errorf("Compare(1.50, 1.5) = %d, want Equal", a.Compare(b))
	}

	c := mustFrom(t, "2")
	if !c.GreaterThan(a) {
		t.Error("expected 2 > 1.50")
	}
	if !a.LessThan(c) {
		t.Error("expected 1.50 < 2")
	}
	if !a.LessThanOrEqual(b) {
		t.Error("expected 1.50 <= 1.5")
	}
}

func TestScaleAndPrecision(t *testing.T) {
	x := mustFrom(t, "123.4500")
	if x.Scale() != 4 {
		t.Errorf("Scale() = %d, want 4", x.Scale())
	}
	if x.Precision() != 7 {
		t.Errorf("Precision() = %d, want 7", x.Precision())
	}
}

func TestPowIntNegativeExponent(t *testing.T) {
	x := mustFrom(t, "2")
	got := x.PowInt(-2)
	if got.String() != "0.25" {
		t.Errorf("2^-2 = %s, want 0.25", got.String())
	}
}

func TestIsIntegerAndIntPart(t *testing.T) {
	x := mustFrom(t, "42.00")
	if !x.IsInteger() {
		t.Error("42.00 should report as integer")
	}
	if x.IntPart() != 42 {
		t.Errorf("IntPart() = %d, want 42", x.IntPart())
	}

	y := mustFrom(t, "42.5")
	if y.IsInteger() {
		t.Error("42.5 should not report as integer")
	}
}

func TestAbsNegIsNegative(t *testing.T) {
	x := mustFrom(t, "-5.5")
	if !x.IsNegative() {
		t.Error("expected -5.5 to be negative")
	}
	if x.Abs().String() != "5.5" {
		t.Errorf("Abs(-5.5) = %s, want 5.5", x.Abs().String())
	}
	if x.Neg().String() != "5.5" {
		t.Errorf("Neg(-5.5) = %s, want 5.5", x.Neg().String())
	}
}

func TestNormalizeTrimsTrailingZeros(t *testing.T) {
	cases := map[string]string{
		"10.50": "10.5",
		"10.00": "10",
		"10.5":  "10.5",
		"10":    "10",
		"0.00":  "0",
	}
	for in, want := range cases {
		got := mustFrom(t, in).Normalize().String()
		if got != want {
			t.Errorf("Normalize(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestCheckLimitsRejectsOutOfRangeExponent(t *testing.T) {
	limits := Limits{MaxExponent: 10, MinExponent: -10}

	within := FromInt(12345)
	if err := CheckLimits(within, limits); err != nil {
		t.Errorf("expected %v to be within limits, got %v", within, err)
	}

	huge := mustFrom(t, "10").PowInt(100) // 10^100, exponent 100
	if err := CheckLimits(huge, limits); err == nil {
		t.Error("expected exponent-out-of-range error for 10^100 against ±10 limits")
	}
}
