package interp

import (
	"strings"
	"testing"

	"github.com/es5lang/es5/internal/parser"
	"github.com/es5lang/es5/internal/runtime"
)

// testEval parses and evaluates input against a fresh Interpreter, panicking
// on a parser error exactly like the teacher's own testEval helper.
func testEval(input string) runtime.Completion {
	p := parser.New(input, "<test>")
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		panic("parser errors: " + errs.Error())
	}

	it := New(nil)
	return it.Run(program)
}

func testEvalValue(t *testing.T, input string) runtime.Value {
	t.Helper()
	c := testEval(input)
	if c.Type == runtime.Throw {
		t.Fatalf("%s: uncaught exception: %v", input, c.Exception)
	}
	return c.Value
}

func TestEvalArithmetic(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"1 + 2;", 3},
		{"10 - 4;", 6},
		{"3 * 4;", 12},
		{"10 / 4;", 2.5},
		{"10 % 3;", 1},
		{"2 + 3 * 4;", 14},
		{"(2 + 3) * 4;", 20},
		{"-5 + 10;", 5},
	}
	for _, tt := range tests {
		v := testEvalValue(t, tt.input)
		n, ok := v.(runtime.NumberValue)
		if !ok {
			t.Fatalf("%s: expected NumberValue, got %T (%v)", tt.input, v, v)
		}
		if float64(n) != tt.expected {
			t.Errorf("%s: got %v, want %v", tt.input, n, tt.expected)
		}
	}
}

func TestEvalStringConcatenation(t *testing.T) {
	tests := []struct{ input, expected string }{
		{`"foo" + "bar";`, "foobar"},
		{`"n=" + 5;`, "n=5"},
		{`1 + 1 + "x";`, "2x"},
		{`"x" + 1 + 1;`, "x11"},
	}
	for _, tt := range tests {
		v := testEvalValue(t, tt.input)
		s, ok := v.(runtime.StringValue)
		if !ok {
			t.Fatalf("%s: expected StringValue, got %T (%v)", tt.input, v, v)
		}
		if string(s) != tt.expected {
			t.Errorf("%s: got %q, want %q", tt.input, s, tt.expected)
		}
	}
}

func TestEvalComparisons(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"1 < 2;", true},
		{"2 < 1;", false},
		{"2 <= 2;", true},
		{"1 == 1;", true},
		{"1 == '1';", true},
		{"1 === '1';", false},
		{"null == undefined;", true},
		{"null === undefined;", false},
		{"NaN == NaN;", false},
		{"NaN < 1;", false},
		{"NaN >= 1;", false},
	}
	for _, tt := range tests {
		v := testEvalValue(t, tt.input)
		b, ok := v.(runtime.BooleanValue)
		if !ok {
			t.Fatalf("%s: expected BooleanValue, got %T (%v)", tt.input, v, v)
		}
		if bool(b) != tt.expected {
			t.Errorf("%s: got %v, want %v", tt.input, b, tt.expected)
		}
	}
}

func TestEvalVariablesAndAssignment(t *testing.T) {
	v := testEvalValue(t, `
		var x = 1;
		x = x + 41;
		x;
	`)
	n, ok := v.(runtime.NumberValue)
	if !ok || float64(n) != 42 {
		t.Fatalf("got %v, want 42", v)
	}
}

func TestEvalFunctionCallsAndClosures(t *testing.T) {
	v := testEvalValue(t, `
		function makeAdder(x) {
			return function(y) { return x + y; };
		}
		var add5 = makeAdder(5);
		add5(37);
	`)
	n, ok := v.(runtime.NumberValue)
	if !ok || float64(n) != 42 {
		t.Fatalf("got %v, want 42", v)
	}
}

func TestEvalLoopsAndBreakContinue(t *testing.T) {
	v := testEvalValue(t, `
		var result = 0;
		for (var i = 0; i < 10; i++) {
			if (i === 5) break;
			if (i % 2 === 0) continue;
			result += i;
		}
		result;
	`)
	n, ok := v.(runtime.NumberValue)
	if !ok || float64(n) != 4 { // 1 + 3
		t.Fatalf("got %v, want 4", v)
	}
}

func TestEvalTryCatchFinally(t *testing.T) {
	v := testEvalValue(t, `
		var log = "";
		try {
			log += "try";
			throw "boom";
		} catch (e) {
			log += ":catch(" + e + ")";
		} finally {
			log += ":finally";
		}
		log;
	`)
	s, ok := v.(runtime.StringValue)
	if !ok || string(s) != "try:catch(boom):finally" {
		t.Fatalf("got %v, want %q", v, "try:catch(boom):finally")
	}
}

func TestEvalArrayIndexAssignmentMaintainsLength(t *testing.T) {
	v := testEvalValue(t, `
		var a = [];
		a[2] = 1;
		a.length;
	`)
	n, ok := v.(runtime.NumberValue)
	if !ok || float64(n) != 3 {
		t.Fatalf("got %v, want 3", v)
	}
}

func TestEvalArrayLengthTruncatesIndices(t *testing.T) {
	v := testEvalValue(t, `
		var a = [1, 2, 3];
		a.length = 1;
		typeof a[2];
	`)
	s, ok := v.(runtime.StringValue)
	if !ok || string(s) != "undefined" {
		t.Fatalf("got %v, want %q", v, "undefined")
	}
}

func TestEvalUncaughtThrowPropagatesAsThrowCompletion(t *testing.T) {
	c := testEval(`throw new Error("fatal");`)
	if c.Type != runtime.Throw {
		t.Fatalf("expected Throw completion, got %v", c.Type)
	}
	if c.Exception == nil {
		t.Fatalf("expected a non-nil Exception")
	}
}

func TestEvalObjectAndArrayLiterals(t *testing.T) {
	v := testEvalValue(t, `
		var obj = { a: 1, b: [2, 3, 4] };
		obj.a + obj.b[1] + obj.b.length;
	`)
	n, ok := v.(runtime.NumberValue)
	if !ok || float64(n) != 1+3+3 {
		t.Fatalf("got %v, want %v", v, 1+3+3)
	}
}

func TestEvalInstanceofAndIn(t *testing.T) {
	v := testEvalValue(t, `
		function Foo() {}
		var f = new Foo();
		var r = (f instanceof Foo) + "," + ("a" in {a: 1});
		r;
	`)
	s, ok := v.(runtime.StringValue)
	if !ok {
		t.Fatalf("expected StringValue, got %T (%v)", v, v)
	}
	if !strings.Contains(string(s), "true,true") {
		t.Errorf("got %q, want it to contain %q", s, "true,true")
	}
}
