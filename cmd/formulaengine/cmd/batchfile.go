package cmd

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/formulaengine/core/engine"
	"github.com/formulaengine/core/evaluator"
)

// batchFile is the `batch`/`validate` YAML document shape: a list of
// formulas plus the variable context they run against.
type batchFile struct {
	Formulas []formulaDef           `yaml:"formulas"`
	Context  map[string]interface{} `yaml:"context"`
}

type formulaDef struct {
	ID           string      `yaml:"id"`
	Expr         string      `yaml:"expr"`
	Dependencies []string    `yaml:"dependencies,omitempty"`
	OnError      string      `yaml:"on_error,omitempty"`
	Default      interface{} `yaml:"default,omitempty"`
}

func loadBatchFile(path string) (*batchFile, error) {
	if err := validateFilePath(path); err != nil {
		return nil, fmt.Errorf("invalid file: %w", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var doc batchFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return &doc, nil
}

func (doc *batchFile) toFormulas() ([]engine.Formula, error) {
	out := make([]engine.Formula, 0, len(doc.Formulas))
	for _, fd := range doc.Formulas {
		onError := engine.ErrorThrow
		if fd.OnError != "" {
			var err error
			onError, err = parseOnError(fd.OnError)
			if err != nil {
				return nil, fmt.Errorf("formula %s: %w", fd.ID, err)
			}
		}
		f := engine.Formula{
			ID:           fd.ID,
			Expr:         fd.Expr,
			Dependencies: fd.Dependencies,
			OnError:      onError,
		}
		out = append(out, f)
	}
	return out, nil
}

func (doc *batchFile) toContext() *evaluator.Context {
	ctx := evaluator.NewContext()
	for k, v := range doc.Context {
		ctx.Variables[k] = v
	}
	return ctx
}

func parseOnError(s string) (engine.ErrorPolicy, error) {
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
		return 0, fmt.Errorf("unknown on_error policy %q", s)
	}
}
