package resultformat

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/formulaengine/core/decimal"
	"github.com/formulaengine/core/engine"
	"github.com/formulaengine/core/value"
)

func sampleBatch() engine.BatchResult {
	d, _ := decimal.FromString("540")
	return engine.BatchResult{
		BatchID:         "batch-1",
		EvaluationOrder: []string{"gross", "total"},
		Success:         true,
		TotalElapsedMs:  5,
		Results: map[string]engine.EvalResult{
			"gross": {Value: value.NewDecimal(decimal.Zero), Success: true},
			"total": {Value: value.NewDecimal(d), Success: true},
		},
	}
}

func TestResolveByExplicitFormat(t *testing.T) {
	if _, ok := Resolve("json", "").(*JSONFormatter); !ok {
		t.Error("expected JSON formatter for name \"json\"")
	}
	if _, ok := Resolve("yml", "").(*YAMLFormatter); !ok {
		t.Error("expected yaml formatter for alias \"yml\"")
	}
	if _, ok := Resolve("nonsense", "").(*TextFormatter); !ok {
		t.Error("expected text formatter fallback for unknown name")
	}
}

func TestResolveByOutputExtension(t *testing.T) {
	if _, ok := Resolve("", "result.yaml").(*YAMLFormatter); !ok {
		t.Error("expected YAML formatter for .yaml output extension")
	}
	if _, ok := Resolve("", "result.json").(*JSONFormatter); !ok {
		t.Error("expected JSON formatter for .json output extension")
	}
	if _, ok := Resolve("", "").(*TextFormatter); !ok {
		t.Error("expected text formatter when neither format nor output path is given")
	}
}

func TestResolveExplicitFormatWinsOverOutputExtension(t *testing.T) {
	if _, ok := Resolve("json", "result.yaml").(*JSONFormatter); !ok {
		t.Error("expected explicit --format to win over the output file's extension")
	}
}

func TestTextFormatterFormatsBatchInOrder(t *testing.T) {
	var buf bytes.Buffer
	f := &TextFormatter{}
	if err := f.FormatBatch(&buf, sampleBatch(), Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "gross = 0") || !strings.Contains(out, "total = 540") {
		t.Errorf("expected both results rendered in order, got:\n%s", out)
	}
	if !strings.Contains(out, "success=true") {
		t.Errorf("expected success summary line, got:\n%s", out)
	}
}

func TestJSONFormatterProducesValidJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &JSONFormatter{}
	if err := f.FormatBatch(&buf, sampleBatch(), Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded JSONBatch
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(decoded.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(decoded.Results))
	}
	if decoded.BatchID != "batch-1" {
		t.Errorf("batch id = %q", decoded.BatchID)
	}
}

func TestJSONFormatterReportsErrorResult(t *testing.T) {
	var buf bytes.Buffer
	f := &JSONFormatter{}
	result := engine.EvalResult{Success: false, Error: &engine.ConfigurationError{Message: "boom"}}
	if err := f.FormatResult(&buf, "bad", result, Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded JSONResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.Success {
		t.Error("expected success=false")
	}
	if decoded.Error != "boom" {
		t.Errorf("error = %q, want boom", decoded.Error)
	}
}

func TestYAMLFormatterRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	f := &YAMLFormatter{}
	if err := f.FormatBatch(&buf, sampleBatch(), Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "batch_id: batch-1") {
		t.Errorf("expected batch_id field in YAML output, got:\n%s", buf.String())
	}

	var decoded JSONBatch
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid YAML output: %v", err)
	}
	if decoded.BatchID != "batch-1" || len(decoded.Results) != 2 || decoded.Results[1].Value != "540" {
		t.Errorf("YAML did not round-trip the batch: %+v", decoded)
	}
}
