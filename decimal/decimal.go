// Package decimal adapts shopspring/decimal to the arbitrary-precision
// decimal contract required by §6.3: construction, the four basic
// operations, scaled division/modulo with an explicit rounding mode,
// integer power, sqrt/log/log10, rounding, comparison, scale/precision,
// and lossless textual round-tripping.
//
// The engine treats the underlying library as an external collaborator;
// nothing outside this package imports shopspring/decimal directly.
package decimal

import (
	"fmt"
	"math"
	"strings"

	shopspring "github.com/shopspring/decimal"
)

// RoundingMode enumerates the rounding algorithms named in §6.3.
type RoundingMode int

const (
	RoundCeil RoundingMode = iota
	RoundFloor
	RoundDown // toward zero
	RoundUp   // away from zero
	RoundHalfUp
	RoundHalfDown
	RoundHalfEven
	// RoundHalfOdd is mapped onto RoundHalfUp by this adapter: shopspring
	// has no native banker's-rounding-to-odd mode. See §9 open question (c).
	RoundHalfOdd
)

// Decimal is an immutable arbitrary-precision decimal value; every
// operation below returns a new value.
type Decimal struct {
	d shopspring.Decimal
}

// Zero is the additive identity.
var Zero = Decimal{d: shopspring.Zero}

// FromString parses the canonical textual form of a decimal number.
func FromString(s string) (Decimal, error) {
	d, err := shopspring.NewFromString(s)
	if err != nil {
		return Decimal{}, &InvalidDecimalError{Text: s, Cause: err}
	}
	return Decimal{d: d}, nil
}

// FromInt constructs a Decimal from a native integer.
func FromInt(v int64) Decimal { return Decimal{d: shopspring.NewFromInt(v)} }

// FromFloat constructs a Decimal from a native float64. Lossy by nature;
// used only where the source explicitly requested float semantics.
func FromFloat(v float64) Decimal { return Decimal{d: shopspring.NewFromFloat(v)} }

// String renders the canonical decimal text (never scientific notation,
// never a native float) — the form required by §6.4 serialization. The
// value's scale is kept, so trailing fractional zeros are rendered
// (2.5 * 4 renders as "10.0"); Normalize is what drops them.
func (x Decimal) String() string {
	if x.d.Exponent() >= 0 {
		return x.d.String()
	}
	return x.d.StringFixed(-x.d.Exponent())
}

// Float64 converts to a native float64, lossily.
func (x Decimal) Float64() float64 {
	f, _ := x.d.Float64()
	return f
}

// IsZero reports whether x is exactly zero.
func (x Decimal) IsZero() bool { return x.d.IsZero() }

// IsNegative reports whether x is strictly less than zero.
func (x Decimal) IsNegative() bool { return x.d.Sign() < 0 }

// IsInteger reports whether x has no fractional part.
func (x Decimal) IsInteger() bool { return x.d.IsInteger() }

// IntPart returns the integer part as a native int64 (truncated toward zero).
func (x Decimal) IntPart() int64 { return x.d.IntPart() }

// Add returns x + y.
func (x Decimal) Add(y Decimal) Decimal { return Decimal{d: x.d.Add(y.d)} }

// Sub returns x - y.
func (x Decimal) Sub(y Decimal) Decimal { return Decimal{d: x.d.Sub(y.d)} }

// Mul returns x * y.
func (x Decimal) Mul(y Decimal) Decimal { return Decimal{d: x.d.Mul(y.d)} }

// DivScale returns x / y rounded to scale decimal places using mode.
// Raises DivisionByZeroError when y is zero.
func (x Decimal) DivScale(y Decimal, scale int32, mode RoundingMode) (Decimal, error) {
	if y.IsZero() {
		return Decimal{}, &DivisionByZeroError{}
	}
	q := x.d.DivRound(y.d, scale+1) // extra guard digit before final round
	return Decimal{d: round(q, scale, mode)}, nil
}

// Div divides at the default division scale (callers needing a specific
// scale should use DivScale).
func (x Decimal) Div(y Decimal) (Decimal, error) {
	if y.IsZero() {
		return Decimal{}, &DivisionByZeroError{}
	}
	return Decimal{d: x.d.Div(y.d)}, nil
}

// Mod returns x modulo y. Raises DivisionByZeroError when y is zero.
func (x Decimal) Mod(y Decimal) (Decimal, error) {
	if y.IsZero() {
		return Decimal{}, &DivisionByZeroError{}
	}
	return Decimal{d: x.d.Mod(y.d)}, nil
}

// PowInt raises x to an integer power. A negative power is 1 divided by
// the positive power at the default division scale, with trailing zeros
// trimmed (2^-2 is 0.25).
func (x Decimal) PowInt(exp int64) Decimal {
	if exp >= 0 {
		return Decimal{d: x.d.Pow(shopspring.NewFromInt(exp))}
	}
	pos := x.d.Pow(shopspring.NewFromInt(-exp))
	return Decimal{d: shopspring.NewFromInt(1).Div(pos)}.Normalize()
}

// PowFloat raises x to a non-integer power via a float64 round-trip.
func (x Decimal) PowFloat(exp float64) Decimal {
	base, _ := x.d.Float64()
	return FromFloat(math.Pow(base, exp))
}

// Sqrt returns the square root of x. The caller must ensure x is
// non-negative.
func (x Decimal) Sqrt() Decimal {
	f, _ := x.d.Float64()
	return FromFloat(math.Sqrt(f))
}

// Ln returns the natural logarithm of x.
func (x Decimal) Ln() Decimal {
	f, _ := x.d.Float64()
	return FromFloat(math.Log(f))
}

// Log10 returns the base-10 logarithm of x.
func (x Decimal) Log10() Decimal {
	f, _ := x.d.Float64()
	return FromFloat(math.Log10(f))
}

// Round rounds x to scale decimal places using the given mode.
func (x Decimal) Round(scale int32, mode RoundingMode) Decimal {
	return Decimal{d: round(x.d, scale, mode)}
}

// Abs returns the absolute value of x.
func (x Decimal) Abs() Decimal { return Decimal{d: x.d.Abs()} }

// Neg returns the additive inverse of x.
func (x Decimal) Neg() Decimal { return Decimal{d: x.d.Neg()} }

// CompareResult is the three-way outcome of Compare.
type CompareResult int

const (
	Less CompareResult = -1
	Equal CompareResult = 0
	Greater CompareResult = 1
)

// Compare returns Less, Equal, or Greater for x versus y.
func (x Decimal) Compare(y Decimal) CompareResult {
	return CompareResult(x.d.Cmp(y.d))
}

// Equal reports whether x and y represent the same numeric value,
// independent of trailing zeros.
func (x Decimal) Equal(y Decimal) bool { return x.d.Equal(y.d) }

// GreaterThan, LessThan, GreaterThanOrEqual, LessThanOrEqual are
// convenience wrappers over Compare used throughout the evaluator.
func (x Decimal) GreaterThan(y Decimal) bool        { return x.Compare(y) == Greater }
func (x Decimal) LessThan(y Decimal) bool           { return x.Compare(y) == Less }
func (x Decimal) GreaterThanOrEqual(y Decimal) bool { return x.Compare(y) != Less }
func (x Decimal) LessThanOrEqual(y Decimal) bool    { return x.Compare(y) != Greater }

// Scale returns the number of digits to the right of the decimal point.
func (x Decimal) Scale() int32 {
	return -x.d.Exponent()
}

// Precision returns the total count of significant digits.
func (x Decimal) Precision() int32 {
	coeff := x.d.Coefficient()
	s := strings.TrimLeft(strings.TrimPrefix(coeff.String(), "-"), "0")
	if s == "" {
		return 1
	}
	return int32(len(s))
}

// Normalize trims insignificant trailing zeros from x's fractional part
// (e.g. "10.50" -> "10.5", "10.00" -> "10"), per §6.2's
// `preserve_trailing_zeros=false` default. Integers and values with no
// trailing zeros are returned unchanged.
func (x Decimal) Normalize() Decimal {
	s := x.String()
	if !strings.Contains(s, ".") {
		return x
	}
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	d, err := shopspring.NewFromString(s)
	if err != nil {
		return x
	}
	return Decimal{d: d}
}

func round(d shopspring.Decimal, scale int32, mode RoundingMode) shopspring.Decimal {
	switch mode {
	case RoundCeil:
		return d.RoundCeil(scale)
	case RoundFloor:
		return d.RoundFloor(scale)
	case RoundDown:
		return d.Truncate(scale)
	case RoundUp:
		return roundAwayFromZero(d, scale)
	case RoundHalfDown:
		return roundHalfDown(d, scale)
	case RoundHalfEven:
		return d.RoundBank(scale)
	case RoundHalfOdd:
		// No native HALF_ODD: fall back to HALF_UP, matching the source's
		// own HALF_ODD -> HALF_CEIL substitution in spirit (§9 open question c).
		return d.Round(scale)
	case RoundHalfUp:
		fallthrough
	default:
		return d.Round(scale)
	}
}

func roundAwayFromZero(d shopspring.Decimal, scale int32) shopspring.Decimal {
	truncated := d.Truncate(scale)
	if d.Equal(truncated) {
		return truncated
	}
	unit := shopspring.New(1, -scale)
	if d.Sign() < 0 {
		return truncated.Sub(unit)
	}
	return truncated.Add(unit)
}

func roundHalfDown(d shopspring.Decimal, scale int32) shopspring.Decimal {
	truncated := d.Truncate(scale)
	remainder := d.Sub(truncated).Abs()
	half := shopspring.New(5, -(scale + 1))
	if remainder.GreaterThan(half) {
		return roundAwayFromZero(d, scale)
	}
	return truncated
}

// InvalidDecimalError reports a malformed decimal text literal.
type InvalidDecimalError struct {
	Text  string
	Cause error
}

func (e *InvalidDecimalError) Error() string {
	return fmt.Sprintf("invalid decimal %q: %v", e.Text, e.Cause)
}

func (e *InvalidDecimalError) Unwrap() error { return e.Cause }

// DivisionByZeroError reports division or modulo by zero.
type DivisionByZeroError struct{}

func (e *DivisionByZeroError) Error() string { return "decimal: division by zero" }

// Limits bounds the exponent range a Decimal's magnitude may occupy, per
// §6.2's `decimal.max_exponent`/`min_exponent` engine options.
type Limits struct {
	MaxExponent int
	MinExponent int
}

// DefaultLimits returns the §6.2 defaults (±1000).
func DefaultLimits() Limits {
	return Limits{MaxExponent: 1000, MinExponent: -1000}
}

// MagnitudeExponent returns the power-of-ten exponent E such that x's
// absolute value falls in [10^E, 10^(E+1)) — the exponent x would carry
// in normalized scientific notation (zero for zero itself). This is the
// "adjusted exponent" sense of max_exponent/min_exponent: it tracks the
// number's order of magnitude, not merely its internal fractional scale,
// so a coefficient that grows huge through repeated multiplication is
// caught even when its scale (digits after the point) never changes.
func (x Decimal) MagnitudeExponent() int {
	if x.IsZero() {
		return 0
	}
	return int(x.Precision()) - 1 - int(x.Scale())
}

// CheckLimits reports ExponentOutOfRangeError if x's magnitude exponent
// (MagnitudeExponent) falls outside limits. Callers performing
// arithmetic that can grow a value's magnitude without bound
// (multiplication, division, exponentiation) should check every result
// against the configured limits to catch a runaway computation before it
// produces an unusably large or small coefficient.
func CheckLimits(x Decimal, limits Limits) error {
	exp := x.MagnitudeExponent()
	if exp > limits.MaxExponent || exp < limits.MinExponent {
		return &ExponentOutOfRangeError{Exponent: exp, Min: limits.MinExponent, Max: limits.MaxExponent}
	}
	return nil
}

// ExponentOutOfRangeError reports a Decimal whose exponent fell outside
// the configured max_exponent/min_exponent bounds.
type ExponentOutOfRangeError struct {
	Exponent int
	Min      int
	Max      int
}

func (e *ExponentOutOfRangeError) Error() string {
	return fmt.Sprintf("decimal: exponent %d outside configured range [%d, %d]", e.Exponent, e.Min, e.Max)
}
