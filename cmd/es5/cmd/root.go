package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "es5",
	Short: "ES5.1 parser and interpreter",
	Long: `es5 is a self-contained ECMAScript 5.1 parser and tree-walking
interpreter: a lexical scanner, a recursive-descent/Pratt parser, and an
evaluator implementing the ES5.1 Value/Reference/Completion model over the
minimum intrinsics set (Object, Function, Array, String, Number, Boolean,
the Error hierarchy, Math).

This is a from-scratch implementation of ECMA-262 5th Edition, not a
wrapper around an existing JS engine. There is no REPL: run a file or an
inline expression with "es5 run".`,
	Version: Version,
}

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
