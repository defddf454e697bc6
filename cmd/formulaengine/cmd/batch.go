package cmd

import (
	"github.com/spf13/cobra"

	"github.com/formulaengine/core/engine"
	"github.com/formulaengine/core/resultformat"
)

var (
	batchFormat string
	batchOutput string
)

var batchCmd = &cobra.Command{
	Use:   "batch <file.yaml>",
	Short: "Evaluate a YAML formula set and print the batch result",
	Long: `Load a YAML document of { formulas:, context: } and run
evaluate_all against it, printing the ordered results.

Example:
  formulaengine batch invoice.yaml --format=json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(args[0])
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchFormat, "format", "", "output format: text, json, yaml")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "write the batch result to this file instead of stdout")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(path string) error {
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

	out, closeOut, err := openOutput(batchOutput)
	if err != nil {
		return err
	}
	defer closeOut()

	result := eng.EvaluateAll(formulas, doc.toContext(), engine.BatchOptions{})
	formatter := resultformat.Resolve(batchFormat, batchOutput)
	return formatter.FormatBatch(out, result, resultformat.Options{IncludeErrors: true})
}
