// Package cmd implements the formulaengine CLI: eval/validate/batch/cache
// subcommands over the engine façade.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	engcfg "github.com/formulaengine/core/cmd/formulaengine/config"
	"github.com/formulaengine/core/engine"
)

var rootCmd = &cobra.Command{
	Use:   "formulaengine",
	Short: "formulaengine - evaluate configuration-driven formulas",
	Long: `formulaengine parses and evaluates named formulas over a shared
variable environment, ordering them by dependency and computing results
with arbitrary-precision decimal arithmetic.

Examples:
  formulaengine eval '$a + $b' --var a=1 --var b=2
  formulaengine validate formulas.yaml
  formulaengine batch formulas.yaml
  formulaengine cache stats`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// loadEngine loads the CLI configuration and constructs an Engine from
// it, the shared entry point every subcommand uses to avoid
// duplicating config-to-engine wiring.
func loadEngine() (*engine.Engine, error) {
	cfg, err := engcfg.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	engCfg, err := cfg.ToEngine()
	if err != nil {
		return nil, fmt.Errorf("translate config: %w", err)
	}
	return engine.New(engCfg), nil
}
