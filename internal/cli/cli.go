// Package cli wires the scheduler's subcommands together with cobra: a
// small struct holding shared state plus one *cobra.Command method per
// verb.
package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// App holds the CLI's shared flag state.
type App struct {
	root  *cobra.Command
	debug bool
}

// NewApp builds the scheduler CLI: run, validate, and explain.
func NewApp() *App {
	a := &App{}

	a.root = &cobra.Command{
		Use:   "scheduler",
		Short: "Solve a daily schedule from entity constraints and windows",
		Long: `scheduler reads a table of recurring entities (medications, meals,
tasks...) with per-entity frequency, spacing constraints, and soft time
windows, and produces a single day's schedule that satisfies every hard
constraint while honoring windows as closely as the configured penalty
weight allows.`,
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "log solver internals (variable/constraint counts, target resolution, chosen windows)")
	a.root.PersistentFlags().Bool("no-color", false, "disable colored output")
	a.root.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
			color.NoColor = true
		}
	}

	a.root.AddCommand(a.runCmd())
	a.root.AddCommand(a.validateCmd())
	a.root.AddCommand(a.explainCmd())

	return a
}

// Execute runs the CLI, returning any error cobra's RunE handlers produce.
func (a *App) Execute() error {
	return a.root.Execute()
}
