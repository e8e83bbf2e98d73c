// Package cmd implements the vanilla CLI, grounded on the teacher's
// cmd/dwscript/cmd package layout (root.go + one file per subcommand).
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "vanilla",
	Short: "Vanilla language interpreter",
	Long: `vanilla is a tree-walking interpreter for the Vanilla scripting
language: a small, dynamically typed language with arbitrary-precision
numbers, a tri-state boolean, and a real dynamic-library FFI bridge.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var verbose bool

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
