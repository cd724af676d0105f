package cmd

import (
	"bytes"
	"testing"

	"github.com/es5lang/es5/pkg/es5"
	"github.com/gkampitakis/go-snaps/snaps"
)

// sample is shared between the AST-dump and token-dump snapshots so both
// exercise the same surface of the language (function declarations, a
// binary expression, an array literal with a `.length` property access).
const sample = `
function add(a, b) {
	return a + b;
}
var total = add(1, 2) + [1, 2, 3].length;
`

// TestParseDumpASTSnapshot snapshots the --dump-ast output of the parse
// subcommand, the same way the teacher pins down fixture output with
// go-snaps (internal/interp/fixture_test.go's snaps.MatchSnapshot).
func TestParseDumpASTSnapshot(t *testing.T) {
	program, err := es5.ParseString(sample, "<snapshot>")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var buf bytes.Buffer
	dumpNode(&buf, program, 0)

	snaps.MatchSnapshot(t, buf.String())
}

// TestLexDumpSnapshot snapshots the lex subcommand's token stream with both
// --show-type and --show-pos enabled.
func TestLexDumpSnapshot(t *testing.T) {
	scanner := es5.NewStringScanner(sample)

	var buf bytes.Buffer
	dumpTokens(&buf, scanner, true, true)

	snaps.MatchSnapshot(t, buf.String())
}
