// Package interp implements a tree-walking evaluator for the ES5.1 AST
// (spec.md §5): it owns the running program's Realm (global object,
// intrinsics, global environment), threads the current ExecutionContext
// through statement/expression evaluation, and turns parse output into
// Completion records and thrown exceptions.
//
// Grounded on _examples/CWBudde-go-dws/internal/interp/interpreter.go's
// Interpreter struct (env/output/callStack/exception fields, a `New`
// constructor taking an io.Writer for program output) and on its
// statements.go/expressions.go file split, adapted from DWScript's
// signal-flag control flow (exitSignal/continueSignal/breakSignal checked
// after every statement) to ES5.1's Completion-record model spec.md §3.3
// calls for: every statement-evaluating method returns a runtime.Completion
// instead of mutating interpreter-wide flags.
package interp

import (
	"math/rand"

	"github.com/es5lang/es5/internal/ast"
	"github.com/es5lang/es5/internal/runtime"
)

// HostLogFunc is the hook `console.log` (spec.md §4.7's only I/O-adjacent
// builtin) calls with its already-ToString'd arguments; the CLI driver
// (cmd/es5, out of this package's scope) supplies the one that writes to
// stdout, while embedders can capture output instead.
type HostLogFunc func(args []string)

// Interpreter executes a parsed Program against a Realm. One Interpreter
// corresponds to one global environment: running several independent
// programs means creating several Interpreters (spec.md §6's
// `execute_string`/`execute_program` both operate on a single instance).
type Interpreter struct {
	realm *Realm

	callStack *runtime.CallStack
	exception *runtime.Exception // uncaught exception surfaced to the host after Run

	output HostLogFunc
	rand   *rand.Rand
}

// New creates an Interpreter with a freshly-built Realm (global object and
// all of spec.md §4.7's intrinsics already installed). output receives
// console.log's arguments; a nil output silently discards them.
func New(output HostLogFunc) *Interpreter {
	interp := &Interpreter{
		callStack: runtime.NewCallStack(0),
		output:    output,
		rand:      rand.New(rand.NewSource(1)),
	}
	interp.realm = NewRealm(interp)
	return interp
}

// Realm exposes the interpreter's global object and intrinsics, e.g. so a
// host embedding the engine (pkg/es5) can inject additional global
// bindings before running a program.
func (interp *Interpreter) Realm() *Realm { return interp.realm }

// Exception returns the exception a prior Run left uncaught, or nil.
func (interp *Interpreter) Exception() *runtime.Exception { return interp.exception }

// Materialize turns a possibly-synthesized Exception into one guaranteed to
// carry a real ES Error instance in Value, for a host (pkg/es5) that needs
// to hand an uncaught exception back to script-visible code (spec.md §6:
// execute_* returns the Error object to the host, not a host exception).
func (interp *Interpreter) Materialize(exc *runtime.Exception) *runtime.Exception { return interp.raise(exc) }

// Run executes program's top-level statement list under the global
// execution context (ES5.1 §10.4.1/§14) and returns its completion value —
// the value of the last evaluated expression statement, Undefined if the
// program produced no such value, or a Throw completion if it terminated
// with an uncaught exception.
func (interp *Interpreter) Run(program *ast.Program) runtime.Completion {
	interp.realm.globalCtx.Strict = program.Strict
	interp.declarationBindingInstantiation(interp.realm.globalCtx, program.Body, nil, false)

	var last runtime.Value = runtime.Undefined
	for _, stmt := range program.Body {
		c := interp.evalStatement(interp.realm.globalCtx, stmt)
		switch c.Type {
		case runtime.Normal:
			if c.Value != nil {
				last = c.Value
			}
		case runtime.Throw:
			interp.exception = c.Exception
			return c
		default:
			// Break/Continue/Return reaching the top level is a parser
			// invariant violation (the parser rejects misplaced
			// break/continue/return), not a reachable runtime state.
			return c
		}
	}
	return runtime.NormalCompletion(last)
}

// raise materializes a synthesized Exception (one with Kind/Message but no
// Value yet — see runtime.Exception) into a real `new <Kind>(message)`
// instance bound to this Realm's Error.prototype subtree, the first time an
// abstract operation's failure needs to become script-visible. Exceptions
// that already carry a Value (script `throw expr;`) pass through unchanged.
func (interp *Interpreter) raise(exc *runtime.Exception) *runtime.Exception {
	if exc == nil || !exc.IsSynthesized() {
		return exc
	}
	ctor := interp.realm.errorConstructors[exc.Kind]
	if ctor == nil {
		ctor = interp.realm.errorConstructors["Error"]
	}
	errObj, callExc := ctor.Construct(nil, []runtime.Value{runtime.Str(exc.Message)})
	if callExc != nil {
		// Constructing the Error object itself failed (should not happen
		// for the built-in constructors); fall back to a bare string so
		// the host still observes a throw rather than a silent drop.
		return runtime.Throw(runtime.Str(exc.Kind + ": " + exc.Message))
	}
	return runtime.Throw(errObj)
}
