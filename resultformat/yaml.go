package resultformat

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/formulaengine/core/engine"
)

// YAMLFormatter renders results as YAML, reusing the JSON wire shapes
// (yaml.v3 respects the same struct tags convention via its own
// `yaml:` tags, so these types carry both).
type YAMLFormatter struct{}

// Extensions returns the file extensions handled by this formatter.
func (f *YAMLFormatter) Extensions() []string { return []string{".yaml", ".yml"} }

// FormatResult writes a single result as a YAML document.
func (f *YAMLFormatter) FormatResult(w io.Writer, id string, result engine.EvalResult, opts Options) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(toJSONResult(id, result))
}

// FormatBatch writes the full batch envelope as a YAML document.
func (f *YAMLFormatter) FormatBatch(w io.Writer, batch engine.BatchResult, opts Options) error {
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

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(jb)
}
