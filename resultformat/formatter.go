// Package resultformat renders engine.EvalResult and engine.BatchResult
// values for output, mirroring the format.Formatter contract: one
// interface, several concrete renderers, and a name/extension registry.
package resultformat

import (
	"io"

	"github.com/formulaengine/core/engine"
)

// Formatter renders a single evaluation or a batch result.
// All formatters must implement this interface.
type Formatter interface {
	// FormatResult writes a single evaluate result.
	FormatResult(w io.Writer, id string, result engine.EvalResult, opts Options) error

	// FormatBatch writes a batch evaluate_all result.
	FormatBatch(w io.Writer, batch engine.BatchResult, opts Options) error

	// Extensions returns file extensions this formatter handles.
	Extensions() []string
}

// Options controls formatter behavior.
type Options struct {
	Verbose       bool // Show accessed variables, elapsed time
	IncludeErrors bool // Append the batch-level error list
}
