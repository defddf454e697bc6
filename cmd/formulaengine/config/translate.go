package config

import (
	"fmt"
	"strings"

	"github.com/formulaengine/core/decimal"
	"github.com/formulaengine/core/engine"
)

// ToEngine translates the TOML-shaped Config into engine.Config,
// parsing the string-valued rounding modes and error policy named in
// §6.2 into their typed enums.
func (c *Config) ToEngine() (engine.Config, error) {
	mode, err := parseRoundingMode(c.Engine.Decimal.RoundingMode)
	if err != nil {
		return engine.Config{}, fmt.Errorf("engine.decimal.rounding_mode: %w", err)
	}
	defaultMode, err := parseRoundingMode(c.Engine.DefaultRounding.Mode)
	if err != nil {
		return engine.Config{}, fmt.Errorf("engine.default_rounding.mode: %w", err)
	}
	policy, err := parseErrorPolicy(c.Engine.DefaultErrorBehavior)
	if err != nil {
		return engine.Config{}, fmt.Errorf("engine.default_error_behavior: %w", err)
	}
	variablePrefix, err := singleByte(c.Engine.VariablePrefix, '$')
	if err != nil {
		return engine.Config{}, fmt.Errorf("engine.variable_prefix: %w", err)
	}
	contextPrefix, err := singleByte(c.Engine.ContextPrefix, '@')
	if err != nil {
		return engine.Config{}, fmt.Errorf("engine.context_prefix: %w", err)
	}

	return engine.Config{
		EnableCache:    c.Engine.EnableCache,
		MaxCacheSize:   c.Engine.MaxCacheSize,
		StrictMode:     c.Engine.StrictMode,
		VariablePrefix: variablePrefix,
		ContextPrefix:  contextPrefix,
		Decimal: engine.DecimalConfig{
			Precision:             c.Engine.Decimal.Precision,
			RoundingMode:          mode,
			DivisionScale:         c.Engine.Decimal.DivisionScale,
			AutoConvertFloats:     c.Engine.Decimal.AutoConvertFloats,
			MaxExponent:           c.Engine.Decimal.MaxExponent,
			MinExponent:           c.Engine.Decimal.MinExponent,
			PreserveTrailingZeros: c.Engine.Decimal.PreserveTrailingZeros,
		},
		DefaultRounding: engine.RoundingPolicy{
			Enabled:   c.Engine.DefaultRounding.Enabled,
			Mode:      defaultMode,
			Precision: c.Engine.DefaultRounding.Precision,
		},
		Security: engine.SecurityConfig{
			MaxExpressionLength: c.Engine.Security.MaxExpressionLength,
			MaxRecursionDepth:   c.Engine.Security.MaxRecursionDepth,
			MaxIterations:       c.Engine.Security.MaxIterations,
			MaxExecutionTimeMs:  c.Engine.Security.MaxExecutionTimeMs,
		},
		DefaultErrorBehavior: policy,
	}, nil
}

func parseRoundingMode(s string) (decimal.RoundingMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CEIL", "CEILING":
		return decimal.RoundCeil, nil
	case "FLOOR":
		return decimal.RoundFloor, nil
	case "DOWN", "TRUNCATE":
		return decimal.RoundDown, nil
	case "UP":
		return decimal.RoundUp, nil
	case "HALF_UP":
		return decimal.RoundHalfUp, nil
	case "HALF_DOWN":
		return decimal.RoundHalfDown, nil
	case "HALF_EVEN", "BANKERS":
		return decimal.RoundHalfEven, nil
	case "HALF_ODD":
		return decimal.RoundHalfOdd, nil
	default:
		return 0, fmt.Errorf("unknown rounding mode %q", s)
	}
}

func parseErrorPolicy(s string) (engine.ErrorPolicy, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "THROW":
		return engine.ErrorThrow, nil
	case "NULL":
		return engine.ErrorNull, nil
	case "ZERO":
		return engine.ErrorZero, nil
	case "DEFAULT":
		return engine.ErrorDefault, nil
	case "SKIP":
		return engine.ErrorSkip, nil
	default:
		return 0, fmt.Errorf("unknown error policy %q", s)
	}
}

func singleByte(s string, fallback byte) (byte, error) {
	if s == "" {
		return fallback, nil
	}
	if len(s) != 1 {
		return 0, fmt.Errorf("expected a single character, got %q", s)
	}
	return s[0], nil
}
