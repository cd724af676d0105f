package parser

import (
	"testing"

	"github.com/es5lang/es5/internal/ast"
)

func checkParserErrors(t *testing.T, p *Parser) {
	t.Helper()
	if len(p.Errors()) != 0 {
		for _, err := range p.Errors() {
			t.Errorf("parser error: %s", err.Error())
		}
		t.FailNow()
	}
}

func TestNumericLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"5;", 5},
		{"0;", 0},
		{"3.14;", 3.14},
		{".5;", 0.5},
		{"0x1F;", 31},
		{"1e3;", 1000},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := New(tt.input, "")
			program := p.ParseProgram()
			checkParserErrors(t, p)

			if len(program.Body) != 1 {
				t.Fatalf("program has wrong number of statements, got=%d", len(program.Body))
			}
			stmt, ok := program.Body[0].(*ast.ExpressionStatement)
			if !ok {
				t.Fatalf("statement is not *ast.ExpressionStatement, got=%T", program.Body[0])
			}
			lit, ok := stmt.Expr.(*ast.Literal)
			if !ok || lit.LitKind != ast.NumberLiteralKind {
				t.Fatalf("expression is not a numeric literal, got=%T", stmt.Expr)
			}
			if lit.Value.(float64) != tt.expected {
				t.Errorf("literal.Value = %v, want %v", lit.Value, tt.expected)
			}
		})
	}
}

func TestStringLiteralEscapes(t *testing.T) {
	p := New(`"a\nbA";`, "")
	program := p.ParseProgram()
	checkParserErrors(t, p)

	stmt := program.Body[0].(*ast.ExpressionStatement)
	lit := stmt.Expr.(*ast.Literal)
	if lit.Value.(string) != "a\nbA" {
		t.Errorf("got %q, want %q", lit.Value, "a\nbA")
	}
}

func TestBinaryOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3;", "(1 + (2 * 3))"},
		{"(1 + 2) * 3;", "((1 + 2) * 3)"},
		{"1 < 2 == 3 < 4;", "((1 < 2) == (3 < 4))"},
		{"a = b = 1;", "a = b = 1"},
		{"a.b.c;", "a.b.c"},
		{"a[0][1];", "a[0][1]"},
		{"typeof a === \"function\";", `(typeof a === "function")`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := New(tt.input, "")
			program := p.ParseProgram()
			checkParserErrors(t, p)
			got := program.Body[0].(*ast.ExpressionStatement).Expr.String()
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestASINoSemicolonBeforeBrace(t *testing.T) {
	p := New("{ 1\n2 }", "")
	p.ParseProgram()
	checkParserErrors(t, p)
}

func TestASIRestrictedReturn(t *testing.T) {
	// ASI inserts a semicolon after `return`, making the numeric literal on
	// the following line an unreachable second statement rather than the
	// return value (ES5.1 §12.9 restricted production).
	p := New("function f() { return\n1; }", "")
	program := p.ParseProgram()
	checkParserErrors(t, p)

	fn := program.Body[0].(*ast.FunctionDeclaration)
	ret, ok := fn.Body.Body[0].(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("expected ReturnStatement, got %T", fn.Body.Body[0])
	}
	if ret.Argument != nil {
		t.Errorf("expected no return argument due to ASI, got %v", ret.Argument)
	}
	if len(fn.Body.Body) != 2 {
		t.Fatalf("expected 2 statements in function body, got %d", len(fn.Body.Body))
	}
}

func TestRegexVsDivisionDisambiguation(t *testing.T) {
	p := New("a = b / c / d;", "")
	program := p.ParseProgram()
	checkParserErrors(t, p)
	got := program.Body[0].(*ast.ExpressionStatement).Expr.String()
	want := "a = ((b / c) / d)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	p2 := New("var re = /abc/g;", "")
	program2 := p2.ParseProgram()
	checkParserErrors(t, p2)
	decl := program2.Body[0].(*ast.VariableStatement).Declarations[0]
	lit, ok := decl.Init.(*ast.Literal)
	if !ok || lit.LitKind != ast.RegexLiteralKind {
		t.Fatalf("expected regex literal initializer, got %T", decl.Init)
	}
}

func TestFunctionDeclarationAndExpression(t *testing.T) {
	p := New("function add(a, b) { return a + b; }", "")
	program := p.ParseProgram()
	checkParserErrors(t, p)

	fn, ok := program.Body[0].(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("expected *ast.FunctionDeclaration, got %T", program.Body[0])
	}
	if fn.Id.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("unexpected function shape: %+v", fn)
	}
}

func TestForInVsForDisambiguation(t *testing.T) {
	p := New("for (var k in obj) { x = k; }", "")
	program := p.ParseProgram()
	checkParserErrors(t, p)
	if _, ok := program.Body[0].(*ast.ForInStatement); !ok {
		t.Fatalf("expected *ast.ForInStatement, got %T", program.Body[0])
	}

	p2 := New("for (var i = 0; i < 10; i++) { x = i; }", "")
	program2 := p2.ParseProgram()
	checkParserErrors(t, p2)
	if _, ok := program2.Body[0].(*ast.ForStatement); !ok {
		t.Fatalf("expected *ast.ForStatement, got %T", program2.Body[0])
	}
}

func TestStrictModeEarlyErrors(t *testing.T) {
	tests := []string{
		`"use strict"; var eval = 1;`,
		`"use strict"; with (a) { b = 1; }`,
		`"use strict"; function f(a, a) {}`,
		`"use strict"; delete x;`,
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			p := New(src, "")
			p.ParseProgram()
			if len(p.Errors()) == 0 {
				t.Errorf("expected a strict-mode early error for %q", src)
			}
		})
	}
}

func TestLabeledBreakContinue(t *testing.T) {
	p := New(`outer: for (;;) { break outer; }`, "")
	p.ParseProgram()
	checkParserErrors(t, p)
}

func TestUndefinedLabelIsAnError(t *testing.T) {
	p := New(`for (;;) { break outer; }`, "")
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected an error for undefined label")
	}
}

func TestTryCatchFinally(t *testing.T) {
	p := New(`try { a(); } catch (e) { b(); } finally { c(); }`, "")
	program := p.ParseProgram()
	checkParserErrors(t, p)
	tryStmt, ok := program.Body[0].(*ast.TryStatement)
	if !ok {
		t.Fatalf("expected *ast.TryStatement, got %T", program.Body[0])
	}
	if tryStmt.Handler == nil || tryStmt.Finalizer == nil {
		t.Fatalf("expected both a catch handler and a finally block")
	}
}
