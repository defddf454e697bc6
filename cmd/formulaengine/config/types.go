// Package config provides configuration management for the
// formulaengine CLI. Configuration is loaded from an embedded TOML
// default merged with an optional user config file.
package config

// Config is the root configuration structure, unmarshaled from TOML
// by viper via mapstructure tags.
type Config struct {
	Engine    EngineConfig    `mapstructure:"engine"`
	Formatter FormatterConfig `mapstructure:"formatter"`
}

// EngineConfig mirrors §6.2's enumerated engine options in their
// string/TOML-friendly form, translated to engine.Config by ToEngine.
type EngineConfig struct {
	EnableCache          bool           `mapstructure:"enable_cache"`
	MaxCacheSize         int            `mapstructure:"max_cache_size"`
	StrictMode           bool           `mapstructure:"strict_mode"`
	VariablePrefix       string         `mapstructure:"variable_prefix"`
	ContextPrefix        string         `mapstructure:"context_prefix"`
	Decimal              DecimalConfig  `mapstructure:"decimal"`
	DefaultRounding      RoundingConfig `mapstructure:"default_rounding"`
	Security             SecurityConfig `mapstructure:"security"`
	DefaultErrorBehavior string         `mapstructure:"default_error_behavior"`
}

// DecimalConfig mirrors §6.2's `decimal` configuration block.
type DecimalConfig struct {
	Precision             int    `mapstructure:"precision"`
	RoundingMode          string `mapstructure:"rounding_mode"`
	DivisionScale         int32  `mapstructure:"division_scale"`
	AutoConvertFloats     bool   `mapstructure:"auto_convert_floats"`
	MaxExponent           int    `mapstructure:"max_exponent"`
	MinExponent           int    `mapstructure:"min_exponent"`
	PreserveTrailingZeros bool   `mapstructure:"preserve_trailing_zeros"`
}

// RoundingConfig mirrors §6.2's `default_rounding` configuration block.
type RoundingConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Mode      string `mapstructure:"mode"`
	Precision int32  `mapstructure:"precision"`
}

// SecurityConfig mirrors §6.2's `security` configuration block.
type SecurityConfig struct {
	MaxExpressionLength int `mapstructure:"max_expression_length"`
	MaxRecursionDepth   int `mapstructure:"max_recursion_depth"`
	MaxIterations       int `mapstructure:"max_iterations"`
	MaxExecutionTimeMs  int `mapstructure:"max_execution_time_ms"`
}

// FormatterConfig holds CLI output formatter settings.
type FormatterConfig struct {
	DefaultFormat string `mapstructure:"default_format"`
	Verbose       bool   `mapstructure:"verbose"`
	IncludeErrors bool   `mapstructure:"include_errors"`
}
