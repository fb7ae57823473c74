// Package cmd implements the Toy command-line driver described in
// spec.md §6: run a script or inline expression, optionally drop into a
// REPL afterward, and map diagnostics to the exit codes spec.md §6/§7
// define. Grounded on the teacher's cmd/dwscript/cmd package.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set by build flags; it backs both `toy version` and
// cobra's built-in --version flag.
var Version = "0.1.0-dev"

var rootCmd = &cobra.Command{
	Use:     "toy [script]",
	Short:   "Toy language interpreter",
	Long:    "toy runs Toy scripts: a small dynamically-typed language with closures, classes, and a parallel-execution construct.",
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runScript,

	// Diagnostics are already written to stderr by run(); avoid cobra's
	// default double-printing of RunE errors and its usage dump.
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command, returning whatever error RunE produced.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("toy version %s\n", Version))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.Flags().StringP("eval", "e", "", "evaluate inline source instead of reading a file")
	rootCmd.Flags().Bool("tokens", false, "trace the token stream before parsing")
	rootCmd.Flags().Bool("ast", false, "print the parsed program before evaluation")
	rootCmd.Flags().BoolP("debug", "d", false, "enable debug mode (implies --tokens --ast)")
	rootCmd.Flags().Bool("lint", false, "run the semantic lint pass and abort on warnings")
	rootCmd.Flags().Bool("repl", false, "drop into an interactive REPL after running the script")
	rootCmd.Flags().Bool("examples", false, "list bundled example scripts and exit")
}
