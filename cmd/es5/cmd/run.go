package cmd

import (
	"fmt"
	"os"

	"github.com/es5lang/es5/pkg/es5"
	"github.com/spf13/cobra"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run an ES5.1 script file or inline expression",
	Long: `Execute an ECMAScript 5.1 program from a file or inline expression.

Examples:
  # Run a script file
  es5 run script.js

  # Evaluate inline code
  es5 run -e "console.log(1 + 2);"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
}

func runScript(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	interp := es5.NewInterpreter(func(parts []string) {
		for i, p := range parts {
			if i > 0 {
				fmt.Print(" ")
			}
			fmt.Print(p)
		}
		fmt.Println()
	})

	result, err := interp.ExecuteString(source, filename)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return fmt.Errorf("parsing %s failed", filename)
	}

	if interp.IsError(result) {
		str, _ := interp.ToString(result)
		fmt.Fprintf(os.Stderr, "uncaught exception: %s\n", str)
		return fmt.Errorf("execution of %s failed", filename)
	}

	return nil
}

// readSource resolves the run/lex/parse subcommands' shared input
// convention: -e/--eval takes precedence over a file argument, matching
// the teacher CLI's own evalExpr handling.
func readSource(eval string, args []string) (source, filename string, err error) {
	if eval != "" {
		return eval, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e flag for inline code")
}
