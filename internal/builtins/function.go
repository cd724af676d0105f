package builtins

import (
	"strings"

	"github.com/es5lang/es5/internal/runtime"
)

// installFunction wires Function.prototype (ES5.1 §15.3). spec.md §4.7 only
// requires Function.prototype's call/apply/bind/toString, not a Function
// constructor able to compile new code from strings — that would need a
// bridge back into internal/lexer/parser, which this package deliberately
// has no dependency on (see helpers.go's package doc). The constructor is
// still installed, since `new Function(...)` is valid syntax a script may
// reach at runtime; it reports the same "not supported" condition a host
// that disables eval-like constructs would.
func (in *Intrinsics) installFunction() {
	proto := in.FunctionPrototype
	ctor := in.FunctionCtor

	ctor.FunctionName = "Function"
	ctor.DefineDataProperty("prototype", proto, false, false, false)
	ctor.DefineDataProperty("length", runtime.Num(1), false, false, false)
	proto.DefineDataProperty("constructor", ctor, true, false, true)

	notSupported := func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		return nil, runtime.NewTypeError("Function constructor is not supported")
	}
	ctor.Call = notSupported
	ctor.Construct = notSupported

	// Function.prototype itself is callable and returns undefined, per
	// §15.3.4.
	proto.Call = func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		return runtime.Undefined, nil
	}

	method(proto, "toString", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, exc := requireThisObject(this, "Function.prototype.toString")
		if exc != nil {
			return nil, exc
		}
		if !obj.IsCallable() {
			return nil, runtime.NewTypeError("Function.prototype.toString called on non-function")
		}
		name := obj.FunctionName
		params := strings.Join(obj.FormalParamNames, ", ")
		if obj.Call != nil && obj.FormalParamNames == nil && obj.ParameterMap == nil {
			return runtime.Str("function " + name + "() { [native code] }"), nil
		}
		return runtime.Str("function " + name + "(" + params + ") { [user code] }"), nil
	})

	method(proto, "call", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		fn, exc := requireCallable(this, "Function.prototype.call")
		if exc != nil {
			return nil, exc
		}
		thisArg := Arg(args, 0)
		var callArgs []runtime.Value
		if len(args) > 1 {
			callArgs = args[1:]
		}
		return fn.Call(thisArg, callArgs)
	})

	method(proto, "apply", 2, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		fn, exc := requireCallable(this, "Function.prototype.apply")
		if exc != nil {
			return nil, exc
		}
		thisArg := Arg(args, 0)
		argArrayVal := Arg(args, 1)
		if argArrayVal == runtime.Undefined || argArrayVal == runtime.Null {
			return fn.Call(thisArg, nil)
		}
		argArray, ok := argArrayVal.(*runtime.Object)
		if !ok {
			return nil, runtime.NewTypeError("Function.prototype.apply argument must be an array-like object")
		}
		n := arrayLength(argArray)
		callArgs := make([]runtime.Value, n)
		for i := 0; i < n; i++ {
			v, exc := arrayGet(argArray, i)
			if exc != nil {
				return nil, exc
			}
			callArgs[i] = v
		}
		return fn.Call(thisArg, callArgs)
	})

	method(proto, "bind", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		target, exc := requireCallable(this, "Function.prototype.bind")
		if exc != nil {
			return nil, exc
		}
		boundThis := Arg(args, 0)
		var boundArgs []runtime.Value
		if len(args) > 1 {
			boundArgs = append(boundArgs, args[1:]...)
		}

		bound := &runtime.Object{Class: "Function", Prototype: proto, Extensible: true, FunctionName: "bound " + target.FunctionName}
		bound.Call = func(_ runtime.Value, callArgs []runtime.Value) (runtime.Value, *runtime.Exception) {
			return target.Call(boundThis, append(append([]runtime.Value{}, boundArgs...), callArgs...))
		}
		if target.Construct != nil {
			bound.Construct = func(_ runtime.Value, callArgs []runtime.Value) (runtime.Value, *runtime.Exception) {
				return target.Construct(nil, append(append([]runtime.Value{}, boundArgs...), callArgs...))
			}
		}
		length := 0
		if lv, exc := target.Get("length"); exc == nil {
			length = int(runtime.ToNumberPrimitive(lv))
		}
		length -= len(boundArgs)
		if length < 0 {
			length = 0
		}
		bound.DefineDataProperty("length", runtime.Num(float64(length)), false, false, true)
		return bound, nil
	})
}

func requireCallable(this runtime.Value, what string) (*runtime.Object, *runtime.Exception) {
	obj, ok := this.(*runtime.Object)
	if !ok || !obj.IsCallable() {
		return nil, runtime.NewTypeError(what + " called on non-callable value")
	}
	return obj, nil
}
