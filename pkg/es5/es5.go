// Package es5 is the public embedding API for the ES5.1 parser and
// interpreter (spec.md §6): parse_string/parse_file, a Parser exposing
// per-production entry points, a Scanner/TokenStream pair, and an
// Interpreter with execute_string/execute_program/to_string plus a hook
// for installing host functions on the global object before execution.
//
// Grounded on _examples/CWBudde-go-dws's own internal/{lexer,parser,interp}
// split: this package is a thin facade re-exporting those packages' types
// rather than reimplementing anything, matching how the teacher's own
// cmd/dwscript CLI consumes its internal packages directly (go-dws has no
// equivalent pkg/dwscript facade; this package is SPEC_FULL.md's own
// addition, grounded on the teacher's internal API shapes instead of a
// teacher file).
package es5

import (
	"github.com/es5lang/es5/internal/ast"
	"github.com/es5lang/es5/internal/runtime"
)

// Value is any ES5.1 value a script can produce or a host function can
// return: undefined, null, a boolean, a number, a string, or an Object
// (which also covers functions and arrays, per ES5.1's single Object type).
type Value = runtime.Value

// Program is the root of a parsed ES5.1 AST (spec.md §4.3/§14).
type Program = ast.Program

// Undefined and Null are ES5.1's two non-Object primitive singletons other
// than booleans/numbers/strings, re-exported so host code constructing
// Values doesn't need to import internal/runtime directly.
var (
	Undefined = runtime.Undefined
	Null      = runtime.Null
)

// Bool, Num and Str box a Go bool/float64/string as the corresponding
// ES5.1 primitive Value.
func Bool(b bool) Value   { return runtime.Bool(b) }
func Num(n float64) Value { return runtime.Num(n) }
func Str(s string) Value  { return runtime.Str(s) }
