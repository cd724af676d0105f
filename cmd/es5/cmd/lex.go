package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/es5lang/es5/pkg/es5"
	"github.com/spf13/cobra"
)

var (
	lexEvalExpr string
	showPos     bool
	showType    bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize an ES5.1 file or expression",
	Long: `Tokenize (lex) an ECMAScript 5.1 program and print the resulting
tokens. Useful for debugging the scanner.`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showType, "show-type", false, "show token type names")
}

func lexScript(_ *cobra.Command, args []string) error {
	source, _, err := readSource(lexEvalExpr, args)
	if err != nil {
		return err
	}

	scanner := es5.NewStringScanner(source)
	dumpTokens(os.Stdout, scanner, showPos, showType)

	for _, e := range scanner.Errors() {
		fmt.Fprintln(os.Stderr, e.Error())
	}
	return nil
}

// dumpTokens writes one line per token until EOF, the shared rendering
// logic between the CLI and the lex-output snapshot test.
func dumpTokens(w io.Writer, scanner *es5.Scanner, showPos, showType bool) {
	for {
		tok := scanner.Next()
		line := tok.Literal
		if showType {
			line = fmt.Sprintf("%s %q", tok.Type, tok.Literal)
		}
		if showPos {
			line = fmt.Sprintf("%s [%s]", line, tok.Start)
		}
		fmt.Fprintln(w, line)
		if tok.Type.String() == "EOF" {
			break
		}
	}
}
