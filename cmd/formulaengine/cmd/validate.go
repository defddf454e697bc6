package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file.yaml>",
	Short: "Check a YAML formula set for syntax errors and cycles without evaluating",
	Long: `Load a YAML document of { formulas:, context: } and run validate,
reporting syntax errors, duplicate ids, and dependency cycles without
evaluating any formula.

Example:
  formulaengine validate invoice.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(args[0])
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) error {
	eng, err := loadEngine()
	if err != nil {
		return err
	}

	doc, err := loadBatchFile(path)
	if err != nil {
		return err
	}
	formulas, err := doc.toFormulas()
	if err != nil {
		return err
	}

	result := eng.Validate(formulas)
	if result.Valid {
		fmt.Fprintln(os.Stdout, "valid")
		fmt.Fprintf(os.Stdout, "evaluation order: %v\n", result.Order)
	} else {
		fmt.Fprintln(os.Stdout, "invalid")
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stdout, "  error: %v\n", e)
		}
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stdout, "  warning: %s\n", w)
	}

	if !result.Valid {
		os.Exit(1)
	}
	return nil
}
