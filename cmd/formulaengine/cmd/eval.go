package cmd

import (
	"github.com/spf13/cobra"

	"github.com/formulaengine/core/resultformat"
)

var (
	evalVars   []string
	evalExtras []string
	evalFormat string
	evalOutput string
)

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate a single expression and print the result",
	Long: `Evaluate a single formula expression against variables supplied via
repeated --var/--extra flags and print the result.

Examples:
  formulaengine eval '$a + $b' --var a=1 --var b=2
  formulaengine eval 'UPPER($name)' --var name=ada --format=json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEval(args[0])
	},
}

func init() {
	evalCmd.Flags().StringArrayVar(&evalVars, "var", nil, "variable assignment name=value (repeatable)")
	evalCmd.Flags().StringArrayVar(&evalExtras, "extra", nil, "context (@) assignment name=value (repeatable)")
	evalCmd.Flags().StringVar(&evalFormat, "format", "", "output format: text, json, yaml")
	evalCmd.Flags().StringVarP(&evalOutput, "output", "o", "", "write the result to this file instead of stdout")
	rootCmd.AddCommand(evalCmd)
}

func runEval(expr string) error {
	eng, err := loadEngine()
	if err != nil {
		return err
	}
	ctx, err := buildContext(evalVars, evalExtras)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(evalOutput)
	if err != nil {
		return err
	}
	defer closeOut()

	result := eng.Evaluate(expr, ctx)
	formatter := resultformat.Resolve(evalFormat, evalOutput)
	return formatter.FormatResult(out, "result", result, resultformat.Options{Verbose: true, IncludeErrors: true})
}
