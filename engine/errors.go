package engine

import "fmt"

// DuplicateFormulaError reports two formulas submitted to evaluate_all
// under the same id.
type DuplicateFormulaError struct{ ID string }

func (e *DuplicateFormulaError) Error() string {
	return fmt.Sprintf("duplicate formula id %q", e.ID)
}

// MaxExpressionLengthError reports an expression rejected before
// parsing because it exceeds the configured length guard.
type MaxExpressionLengthError struct {
	Length int
	Limit  int
}

func (e *MaxExpressionLengthError) Error() string {
	return fmt.Sprintf("expression length %d exceeds limit %d", e.Length, e.Limit)
}

// ConfigurationError reports an invalid Engine configuration.
type ConfigurationError struct{ Message string }

func (e *ConfigurationError) Error() string { return e.Message }
