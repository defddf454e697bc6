// Command formulaengine is the CLI entry point: eval/validate/batch/cache
// subcommands over the engine façade.
package main

import "github.com/formulaengine/core/cmd/formulaengine/cmd"

func main() {
	cmd.Execute()
}
