package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/es5lang/es5/internal/ast"
	"github.com/es5lang/es5/pkg/es5"
	"github.com/spf13/cobra"
)

var (
	parseEvalExpr string
	dumpAST       bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse an ES5.1 file or expression and display its AST",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "parse inline code instead of reading from file")
	parseCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the full AST node tree instead of re-printed source")
}

func runParse(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(parseEvalExpr, args)
	if err != nil {
		return err
	}

	program, err := es5.ParseString(source, filename)
	if err != nil {
		return err
	}

	if dumpAST {
		dumpNode(os.Stdout, program, 0)
		return nil
	}
	fmt.Print(program.String())
	return nil
}

// dumpNode writes node's tag and every field it declares via the generic
// Node.Fields() contract, descending into any nested Node or []Child
// without a per-node-type switch — the Fields()/Attributes() contract
// (internal/ast/ast.go) exists precisely so tools like this one don't need
// one. Attribute keys are sorted since map iteration order is not stable,
// and this output feeds a snapshot test as well as the CLI.
func dumpNode(w io.Writer, node ast.Node, indent int) {
	prefix := strings.Repeat("  ", indent)
	attrMap := node.Attributes()
	keys := make([]string, 0, len(attrMap))
	for k := range attrMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	attrs := ""
	for _, k := range keys {
		attrs += fmt.Sprintf(" %s=%v", k, attrMap[k])
	}
	fmt.Fprintf(w, "%s%s%s\n", prefix, node.Kind(), attrs)
	for _, f := range node.Fields() {
		dumpChild(w, f.Name, f.Value, indent+1)
	}
}

func dumpChild(w io.Writer, name string, child ast.Child, indent int) {
	prefix := strings.Repeat("  ", indent)
	switch v := child.(type) {
	case nil:
		fmt.Fprintf(w, "%s%s: <nil>\n", prefix, name)
	case ast.Node:
		fmt.Fprintf(w, "%s%s:\n", prefix, name)
		dumpNode(w, v, indent+1)
	case []ast.Child:
		fmt.Fprintf(w, "%s%s: [%d]\n", prefix, name, len(v))
		for _, c := range v {
			dumpChild(w, "-", c, indent+1)
		}
	default:
		fmt.Fprintf(w, "%s%s: %v\n", prefix, name, v)
	}
}
