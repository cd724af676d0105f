package es5

import (
	"strings"
	"testing"

	"github.com/es5lang/es5/internal/runtime"
)

// evalString runs src against a fresh Interpreter and fails the test if
// execution raises a parse error or an uncaught exception.
func evalString(t *testing.T, src string) Value {
	t.Helper()
	it := NewInterpreter(nil)
	result, err := it.ExecuteString(src, "<test>")
	if err != nil {
		t.Fatalf("ExecuteString(%q) parse error: %v", src, err)
	}
	if it.IsError(result) {
		str, _ := it.ToString(result)
		t.Fatalf("ExecuteString(%q) uncaught exception: %s", src, str)
	}
	return result
}

func TestExecuteStringLiterals(t *testing.T) {
	tests := []struct {
		src      string
		expected string
	}{
		{"1 + 2;", "3"},
		{"'a' + 'b';", "ab"},
		{"1 + '2';", "12"},
		{"10 % 3;", "1"},
		{"2 * (3 + 4);", "14"},
		{"true && false;", "false"},
		{"null == undefined;", "true"},
		{"null === undefined;", "false"},
		{"1 < 2;", "true"},
		{"NaN === NaN;", "false"},
		{"typeof undefined;", "undefined"},
		{"typeof 'x';", "string"},
		{"typeof function(){};", "function"},
	}

	for _, tt := range tests {
		it := NewInterpreter(nil)
		result, err := it.ExecuteString(tt.src, "<test>")
		if err != nil {
			t.Fatalf("%s: parse error: %v", tt.src, err)
		}
		str, convErr := it.ToString(result)
		if convErr != nil {
			t.Fatalf("%s: ToString error: %v", tt.src, convErr)
		}
		if str != tt.expected {
			t.Errorf("%s: got %q, want %q", tt.src, str, tt.expected)
		}
	}
}

func TestExecuteStringVariablesAndFunctions(t *testing.T) {
	src := `
		var x = 10;
		function square(n) { return n * n; }
		x + square(4);
	`
	it := NewInterpreter(nil)
	result, err := it.ExecuteString(src, "<test>")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	str, err := it.ToString(result)
	if err != nil {
		t.Fatalf("ToString error: %v", err)
	}
	if str != "26" {
		t.Errorf("got %q, want %q", str, "26")
	}
}

func TestExecuteStringControlFlow(t *testing.T) {
	src := `
		var sum = 0;
		for (var i = 0; i < 5; i++) {
			if (i % 2 === 0) {
				sum += i;
			}
		}
		sum;
	`
	it := NewInterpreter(nil)
	result, err := it.ExecuteString(src, "<test>")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	str, _ := it.ToString(result)
	if str != "6" {
		t.Errorf("got %q, want %q", str, "6")
	}
}

func TestExecuteStringThrowReturnsErrorValue(t *testing.T) {
	it := NewInterpreter(nil)
	result, err := it.ExecuteString(`throw new TypeError("boom");`, "<test>")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if !it.IsError(result) {
		t.Fatalf("expected an Error value, got %v", result)
	}
	str, _ := it.ToString(result)
	if !strings.Contains(str, "boom") {
		t.Errorf("expected message to contain 'boom', got %q", str)
	}
}

func TestExecuteStringUncaughtThrowFromRuntimeOperation(t *testing.T) {
	it := NewInterpreter(nil)
	result, err := it.ExecuteString(`null.foo;`, "<test>")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if !it.IsError(result) {
		t.Fatalf("expected a TypeError value for property access on null, got %v", result)
	}
}

func TestExecuteStringCatchSuppressesUncaughtException(t *testing.T) {
	src := `
		var caught = false;
		try {
			throw "oops";
		} catch (e) {
			caught = (e === "oops");
		}
		caught;
	`
	result := evalString(t, src)
	if result.Type() != "boolean" || result.String() != "true" {
		t.Errorf("got %v, want true", result)
	}
}

func TestParseStringSyntaxError(t *testing.T) {
	_, err := ParseString("var = ;", "<test>")
	if err == nil {
		t.Fatalf("expected a parse error for invalid syntax")
	}
}

func TestParseStringValidProgram(t *testing.T) {
	program, err := ParseString("var x = 1; x + 1;", "<test>")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if program == nil {
		t.Fatalf("expected a non-nil program")
	}
}

func TestSetGlobalAndSetHostFunction(t *testing.T) {
	it := NewInterpreter(nil)
	it.SetGlobal("CONFIG_VALUE", Num(42))
	it.SetHostFunction("doubleValue", 1, func(this Value, args []Value) (Value, *Exception) {
		n, ok := args[0].(runtime.NumberValue)
		if !ok {
			return nil, NewTypeError("doubleValue expects a number")
		}
		return Num(float64(n) * 2), nil
	})

	result, err := it.ExecuteString("doubleValue(CONFIG_VALUE);", "<test>")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	str, _ := it.ToString(result)
	if str != "84" {
		t.Errorf("got %q, want %q", str, "84")
	}
}

func TestHostLogFunctionReceivesConsoleOutput(t *testing.T) {
	var captured []string
	it := NewInterpreter(func(parts []string) {
		captured = append(captured, strings.Join(parts, " "))
	})
	_, err := it.ExecuteString(`console.log("hello", "world");`, "<test>")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(captured) != 1 || captured[0] != "hello world" {
		t.Errorf("got %v, want [%q]", captured, "hello world")
	}
}
