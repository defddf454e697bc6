package resultformat

import (
	"fmt"
	"io"
	"sort"

	"github.com/formulaengine/core/engine"
)

// TextFormatter renders results as human-readable plain text, the
// primary formatter for interactive CLI use.
type TextFormatter struct{}

// Extensions returns the file extensions handled by this formatter.
func (f *TextFormatter) Extensions() []string { return []string{".txt"} }

// FormatResult writes a single result as "id = value" or "id: error".
func (f *TextFormatter) FormatResult(w io.Writer, id string, result engine.EvalResult, opts Options) error {
	if !result.Success {
		fmt.Fprintf(w, "%s: error: %v\n", id, result.Error)
		return nil
	}
	fmt.Fprintf(w, "%s = %s\n", id, result.Value.String())
	if opts.Verbose {
		fmt.Fprintf(w, "  elapsed: %dms\n", result.ElapsedMs)
		if len(result.AccessedVars) > 0 {
			vars := append([]string(nil), result.AccessedVars...)
			sort.Strings(vars)
			fmt.Fprintf(w, "  accessed: %v\n", vars)
		}
	}
	return nil
}

// FormatBatch writes every result in evaluation order, followed by a
// summary line, matching the batch envelope of §4.6.
func (f *TextFormatter) FormatBatch(w io.Writer, batch engine.BatchResult, opts Options) error {
	for _, id := range batch.EvaluationOrder {
		res, ok := batch.Results[id]
		if !ok {
			continue
		}
		if err := f.FormatResult(w, id, res, opts); err != nil {
			return err
		}
	}

	if opts.IncludeErrors {
		for _, err := range batch.Errors {
			fmt.Fprintf(w, "error: %v\n", err)
		}
	}

	fmt.Fprintf(w, "success=%t elapsed=%dms\n", batch.Success, batch.TotalElapsedMs)
	return nil
}
