package resultformat

import (
	"encoding/json"
	"io"

	"github.com/formulaengine/core/engine"
)

// JSONFormatter renders results as JSON, for programmatic consumption.
type JSONFormatter struct{}

// Extensions returns the file extensions handled by this formatter.
func (f *JSONFormatter) Extensions() []string { return []string{".json"} }

// JSONResult is the wire shape of one evaluate result.
type JSONResult struct {
	ID           string   `json:"id" yaml:"id"`
	Value        string   `json:"value,omitempty" yaml:"value,omitempty"`
	Success      bool     `json:"success" yaml:"success"`
	Error        string   `json:"error,omitempty" yaml:"error,omitempty"`
	ElapsedMs    int64    `json:"elapsed_ms" yaml:"elapsed_ms"`
	AccessedVars []string `json:"accessed_vars,omitempty" yaml:"accessed_vars,omitempty"`
}

// JSONBatch is the wire shape of a batch evaluate_all result.
type JSONBatch struct {
	BatchID         string       `json:"batch_id" yaml:"batch_id"`
	Results         []JSONResult `json:"results" yaml:"results"`
	EvaluationOrder []string     `json:"evaluation_order" yaml:"evaluation_order"`
	Errors          []string     `json:"errors,omitempty" yaml:"errors,omitempty"`
	Success         bool         `json:"success" yaml:"success"`
	TotalElapsedMs  int64        `json:"total_elapsed_ms" yaml:"total_elapsed_ms"`
}

func toJSONResult(id string, r engine.EvalResult) JSONResult {
	jr := JSONResult{ID: id, Success: r.Success, ElapsedMs: r.ElapsedMs, AccessedVars: r.AccessedVars}
	if r.Success {
		jr.Value = r.Value.String()
	} else {
		jr.Error = r.Error.Error()
	}
	return jr
}

// FormatResult writes a single result as a JSON object.
func (f *JSONFormatter) FormatResult(w io.Writer, id string, result engine.EvalResult, opts Options) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSONResult(id, result))
}

// FormatBatch writes the full batch envelope as JSON.
func (f *JSONFormatter) FormatBatch(w io.Writer, batch engine.BatchResult, opts Options) error {
	jb := JSONBatch{
		BatchID:         batch.BatchID,
		EvaluationOrder: batch.EvaluationOrder,
		Success:         batch.Success,
		TotalElapsedMs:  batch.TotalElapsedMs,
	}
	for _, id := range batch.EvaluationOrder {
		if res, ok := batch.Results[id]; ok {
			jb.Results = append(jb.Results, toJSONResult(id, res))
		}
	}
	if opts.IncludeErrors {
		for _, err := range batch.Errors {
			jb.Errors = append(jb.Errors, err.Error())
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jb)
}
