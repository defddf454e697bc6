package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/formulaengine/core/engine"
)

func TestLoadBatchFileParsesFormulasAndContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "formulas.yaml")
	content := `formulas:
  - id: gross
    expr: "$unitPrice * $quantity"
  - id: discount
    expr: "$gross * $discountRate"
    on_error: ZERO
context:
  unitPrice: 100
  quantity: 5
  discountRate: 0.1
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	oldwd, _ := os.Getwd()
	defer os.Chdir(oldwd)
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	doc, err := loadBatchFile("formulas.yaml")
	if err != nil {
		t.Fatalf("loadBatchFile: %v", err)
	}
	if len(doc.Formulas) != 2 {
		t.Fatalf("expected 2 formulas, got %d", len(doc.Formulas))
	}

	formulas, err := doc.toFormulas()
	if err != nil {
		t.Fatalf("toFormulas: %v", err)
	}
	if formulas[1].OnError != engine.ErrorZero {
		t.Errorf("expected discount on_error=ZERO, got %v", formulas[1].OnError)
	}

	ctx := doc.toContext()
	if ctx.Variables["unitPrice"] != 100 {
		t.Errorf("unitPrice = %v", ctx.Variables["unitPrice"])
	}
}

func TestParseOnErrorRejectsUnknown(t *testing.T) {
	if _, err := parseOnError("BOGUS"); err == nil {
		t.Fatal("expected error for unknown on_error policy")
	}
}

func TestLoadBatchFileRejectsTraversal(t *testing.T) {
	if err := validateFilePath("../../etc/passwd.yaml"); err == nil {
		t.Fatal("expected path traversal to be rejected")
	}
}
