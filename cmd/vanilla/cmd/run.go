package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/vanilla/internal/errors"
	"github.com/cwbudde/vanilla/internal/lexer"
	"github.com/cwbudde/vanilla/internal/parser"
	"github.com/cwbudde/vanilla/pkg/vanilla"
	"github.com/cwbudde/vanilla/pkg/xmlprinter"
	"github.com/spf13/cobra"
)

var (
	dumpAST bool
	trace   bool
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run a Vanilla source file",
	Long: `Execute a Vanilla program from a file.

Examples:
  # Run a script file
  vanilla run script.vnl

  # Run with AST dump (for debugging)
  vanilla run --dump-ast script.vnl

  # Run with execution trace
  vanilla run --trace script.vnl`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST as XML (for debugging)")
	runCmd.Flags().BoolVar(&trace, "trace", false, "trace execution (for debugging)")
}

// runScript implements spec.md §6's CLI contract: one positional file
// argument, exit 0 on success, nonzero with a single "[line:col] Stage
// error : message" line on stderr otherwise.
func runScript(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	source := string(content)

	l := lexer.New(source)
	p := parser.New(l)
	program, perr := p.ParseProgram()
	if perr != nil {
		fmt.Fprintln(os.Stderr, perr.Error())
		return errSilent
	}

	if dumpAST {
		fmt.Print(xmlprinter.Print(program))
	}

	if trace {
		fmt.Fprintf(os.Stderr, "[trace] executing %s\n", filename)
	}

	engine := vanilla.New(vanilla.WithFileName(filename))
	if _, evalErr := engine.Eval(source); evalErr != nil {
		if ve, ok := evalErr.(*errors.VanillaError); ok {
			fmt.Fprintln(os.Stderr, ve.Error())
		} else {
			fmt.Fprintln(os.Stderr, evalErr.Error())
		}
		return errSilent
	}

	return nil
}

// errSilent signals runScript's caller (cobra) that the diagnostic has
// already been printed to stderr in spec.md §6's exact format, so cobra
// should not print its own "Error: ..." wrapper.
var errSilent = silentError{}

type silentError struct{}

func (silentError) Error() string { return "" }
