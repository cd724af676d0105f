package es5

import (
	"github.com/es5lang/es5/internal/builtins"
	"github.com/es5lang/es5/internal/interp"
	"github.com/es5lang/es5/internal/runtime"
)

// Exception is a thrown (or about-to-be-thrown) ES5.1 value, used by
// HostFunc to signal a runtime error without raising a host-language panic
// across the evaluator boundary (spec.md §6).
type Exception = runtime.Exception

// NewTypeError, NewRangeError and NewSyntaxError build the synthesized form
// of the matching native Error kind; the interpreter materializes it into a
// real `new TypeError(message)` instance (bound to the running program's
// own Error.prototype) the first time it crosses into evaluated code.
func NewTypeError(message string) *Exception   { return runtime.NewTypeError(message) }
func NewRangeError(message string) *Exception  { return runtime.NewRangeError(message) }
func NewSyntaxError(message string) *Exception { return runtime.NewSyntaxError(message) }

// HostFunc is the signature a Go function installed on the global object
// (or any object) must have. this is the ES5.1 this-binding at the call
// site; args is already padded/truncated by nothing — callers should index
// defensively, exactly as a script-defined function's own arguments object
// would need to.
type HostFunc func(this Value, args []Value) (Value, *Exception)

// HostLogFunc receives console.log's arguments, already ToString'd —
// spec.md §4.7's only required I/O hook. A nil HostLogFunc silently
// discards console.log output.
type HostLogFunc = interp.HostLogFunc

// Interpreter executes parsed ES5.1 programs against one persistent global
// object (spec.md §6's `Interpreter`). Create one per independent script
// environment; running several unrelated programs against a shared global
// means reusing the same Interpreter, exactly as spec.md §6 describes
// execute_string/execute_program both operating on a single instance.
type Interpreter struct {
	ip *interp.Interpreter
}

// NewInterpreter creates an Interpreter with a fresh global object and all
// of spec.md §4.7's intrinsics already installed. log receives console.log
// output.
func NewInterpreter(log HostLogFunc) *Interpreter {
	return &Interpreter{ip: interp.New(log)}
}

// SetGlobal installs name as a property of the global object, for a host
// that wants to expose data (not just functions) to scripts before running
// them.
func (it *Interpreter) SetGlobal(name string, v Value) {
	it.ip.Realm().GlobalObject().Put(name, v, false)
}

// SetHostFunction installs fn as a callable global property named name,
// with the given declared .length (spec.md §6's "hook to install host
// functions on the global object before execution"). The installed function
// object has no [[Construct]]; scripts can call it but not `new` it.
func (it *Interpreter) SetHostFunction(name string, length int, fn HostFunc) {
	in := it.ip.Realm().Intrinsics()
	obj := runtime.NewObjectWithClass(in.FunctionPrototype, "Function")
	obj.FunctionName = name
	obj.DefineDataProperty("name", Str(name), false, false, true)
	obj.DefineDataProperty("length", Num(float64(length)), false, false, true)
	obj.Call = func(this Value, args []Value) (Value, *Exception) { return fn(this, args) }
	it.ip.Realm().GlobalObject().Put(name, obj, false)
}

// ExecuteString parses source and runs it as a Program (spec.md §6's
// `execute_string`). A parse failure is returned as a Go error (an
// errors.ParseExceptions); a runtime failure is not — per spec.md §7, an
// uncaught Throw completion is returned as the thrown Value instead. A
// runtime failure or a thrown Error instance is told apart from a normal
// result by IsError; a thrown non-Error value (`throw "x"`) comes back
// like an ordinary result.
func (it *Interpreter) ExecuteString(source, filename string) (Value, error) {
	program, err := ParseString(source, filename)
	if err != nil {
		return nil, err
	}
	return it.ExecuteProgram(program), nil
}

// ExecuteProgram runs an already-parsed Program (spec.md §6's
// `execute_program`) against this Interpreter's global object.
func (it *Interpreter) ExecuteProgram(program *Program) Value {
	c := it.ip.Run(program)
	if c.Type == runtime.Throw {
		exc := it.ip.Materialize(c.Exception)
		return exc.Value
	}
	if c.Value == nil {
		return runtime.Undefined
	}
	return c.Value
}

// IsError reports whether v is an instance of Error (or one of its native
// subclasses) — how a host distinguishes ExecuteString/ExecuteProgram's
// "uncaught exception" result from an ordinary completion value, since
// both are returned the same way (spec.md §7).
func (it *Interpreter) IsError(v Value) bool {
	obj, ok := v.(*runtime.Object)
	if !ok {
		return false
	}
	errProto := it.ip.Realm().Intrinsics().ErrorPrototype
	for cur := obj; cur != nil; cur = cur.Prototype {
		if cur == errProto {
			return true
		}
	}
	return false
}

// ToString applies the ES5.1 ToString abstract operation (§9.8) to v
// (spec.md §6's `to_string`), invoking a user-defined toString/valueOf if v
// is an Object.
func (it *Interpreter) ToString(v Value) (string, error) {
	s, exc := builtins.ToStringValue(v)
	if exc != nil {
		return "", exc
	}
	return s, nil
}
