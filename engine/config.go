// Package engine implements the Engine façade of §4.6: parsing with an
// AST/dependency cache, single and batch evaluation, validation, and
// function-library registration, wired atop the lexer/parser,
// dependency, evaluator, and decimal packages.
package engine

import "github.com/formulaengine/core/decimal"

// ErrorPolicy is the per-formula (or engine-default) on_error behavior
// of §4.6/§7.
type ErrorPolicy int

const (
	ErrorThrow ErrorPolicy = iota
	ErrorNull
	ErrorZero
	ErrorDefault
	ErrorSkip
)

// RoundingPolicy is the effective-rounding contract applied to a
// Decimal formula result before it is injected into the working
// context, per §4.6 step 5 and the "default_rounding" config of §6.2.
// A zero-value RoundingPolicy with Enabled=false means "no rounding".
type RoundingPolicy struct {
	Enabled   bool
	Mode      decimal.RoundingMode
	Precision int32
}

// DecimalConfig mirrors §6.2's `decimal` configuration block.
type DecimalConfig struct {
	Precision             int
	RoundingMode          decimal.RoundingMode
	DivisionScale         int32
	AutoConvertFloats     bool
	MaxExponent           int
	MinExponent           int
	PreserveTrailingZeros bool
}

// SecurityConfig mirrors §6.2's `security` configuration block.
type SecurityConfig struct {
	MaxExpressionLength int
	MaxRecursionDepth   int
	MaxIterations       int
	MaxExecutionTimeMs  int
}

// Config is the Engine's construction-time configuration, per §6.2.
type Config struct {
	EnableCache          bool
	MaxCacheSize         int
	StrictMode           bool
	VariablePrefix       byte
	ContextPrefix        byte
	Decimal              DecimalConfig
	DefaultRounding      RoundingPolicy
	Security             SecurityConfig
	DefaultErrorBehavior ErrorPolicy
}

// DefaultConfig returns the enumerated defaults of §6.2.
func DefaultConfig() Config {
	return Config{
		EnableCache:    true,
		MaxCacheSize:   1000,
		StrictMode:     true,
		VariablePrefix: '$',
		ContextPrefix:  '@',
		Decimal: DecimalConfig{
			Precision:             20,
			RoundingMode:          decimal.RoundHalfUp,
			DivisionScale:         10,
			AutoConvertFloats:     true,
			MaxExponent:           1000,
			MinExponent:           -1000,
			PreserveTrailingZeros: false,
		},
		DefaultRounding:      RoundingPolicy{Enabled: false},
		Security:             SecurityConfig{MaxExpressionLength: 10000, MaxRecursionDepth: 100, MaxIterations: 10000, MaxExecutionTimeMs: 5000},
		DefaultErrorBehavior: ErrorThrow,
	}
}
