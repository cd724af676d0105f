// Package builtins implements the spec.md §4.7 minimum intrinsics set:
// Object, Function, Array, String, Number, Boolean, the Error hierarchy,
// Math, and the global parseInt/parseFloat/isNaN/isFinite/encodeURI family,
// plus the host-injected console.log hook.
//
// Grounded on _examples/CWBudde-go-dws/internal/interp/builtins's own
// split (one file per category: math.go, strings.go, array.go, ...) and on
// its doc.go's stated reason for existing as a standalone package: "to
// avoid circular dependencies with the main interpreter package" — here
// every built-in is implemented purely in terms of runtime.Value/Object,
// never internal/interp, so a callback argument (Array.prototype.map's
// function, a getter/setter) is invoked simply as fn.Call(this, args)
// without the evaluator ever being involved.
package builtins

import (
	"strconv"

	"github.com/es5lang/es5/internal/runtime"
)

// ToStringValue implements the full ES5.1 §9.8 ToString abstract operation,
// including the Object case (§9.8 step, via ToPrimitive(hint String) then
// recursing on the resulting primitive) that runtime.NumberToString/
// StringValue alone can't cover without calling back into an object's
// toString/valueOf.
func ToStringValue(v runtime.Value) (string, *runtime.Exception) {
	switch val := v.(type) {
	case runtime.UndefinedValue:
		return "undefined", nil
	case runtime.NullValue:
		return "null", nil
	case runtime.BooleanValue:
		return val.String(), nil
	case runtime.NumberValue:
		return val.String(), nil
	case runtime.StringValue:
		return string(val), nil
	case *runtime.Object:
		prim, exc := val.DefaultValue("String")
		if exc != nil {
			return "", exc
		}
		return ToStringValue(prim)
	default:
		return "", runtime.NewTypeError("cannot convert value to string")
	}
}

// ToNumberValue implements the full ES5.1 §9.3 ToNumber, covering the
// Object case via ToPrimitive(hint Number).
func ToNumberValue(v runtime.Value) (float64, *runtime.Exception) {
	if obj, ok := v.(*runtime.Object); ok {
		prim, exc := obj.DefaultValue("Number")
		if exc != nil {
			return 0, exc
		}
		return runtime.ToNumberPrimitive(prim), nil
	}
	return runtime.ToNumberPrimitive(v), nil
}

// ToObjectValue implements ES5.1 §9.9 ToObject for the built-in wrapper
// cases: an already-Object value passes through; Undefined/Null raise a
// TypeError; Boolean/Number/String are boxed against the prototype the
// caller supplies (the running Realm's Boolean.prototype/Number.prototype/
// String.prototype, threaded in by whichever builtin needs it — builtins
// has no Realm of its own to look these up in automatically).
func ToObjectValue(v runtime.Value, boolProto, numProto, strProto *runtime.Object) (*runtime.Object, *runtime.Exception) {
	switch val := v.(type) {
	case *runtime.Object:
		return val, nil
	case runtime.BooleanValue:
		o := runtime.NewObjectWithClass(boolProto, "Boolean")
		o.PrimitiveValue = val
		return o, nil
	case runtime.NumberValue:
		o := runtime.NewObjectWithClass(numProto, "Number")
		o.PrimitiveValue = val
		return o, nil
	case runtime.StringValue:
		o := runtime.NewObjectWithClass(strProto, "String")
		o.PrimitiveValue = val
		return o, nil
	default:
		return nil, runtime.NewTypeError("cannot convert undefined or null to object")
	}
}

// Arg returns args[i], or Undefined if the call was made with fewer than
// i+1 arguments — every built-in reads its parameters this way rather than
// bounds-checking args directly, matching how optional/defaulted ES5.1
// parameters behave.
func Arg(args []runtime.Value, i int) runtime.Value {
	if i < 0 || i >= len(args) {
		return runtime.Undefined
	}
	return args[i]
}

// ArgNumber and ArgString are Arg plus the matching ToNumber/ToString
// coercion, for the very common case of a built-in that only needs a
// primitive-ish parameter.
func ArgNumber(args []runtime.Value, i int) (float64, *runtime.Exception) {
	return ToNumberValue(Arg(args, i))
}

func ArgString(args []runtime.Value, i int) (string, *runtime.Exception) {
	return ToStringValue(Arg(args, i))
}

// method installs a non-enumerable, writable, configurable NativeFunc as a
// named data property of obj — the shape every built-in method/constructor
// on a prototype or constructor object takes (ES5.1 §15's convention that
// built-in properties are {writable:true, enumerable:false,
// configurable:true} unless stated otherwise).
func method(obj *runtime.Object, name string, length int, fn runtime.NativeFunc) {
	fo := &runtime.Object{Class: "Function", Extensible: true, Call: fn, FunctionName: name}
	fo.DefineDataProperty("length", runtime.Num(float64(length)), false, false, false)
	fo.DefineDataProperty("name", runtime.Str(name), false, false, true)
	obj.DefineDataProperty(name, fo, true, false, true)
}

// value installs a plain data property with the §15 default attributes
// used by non-constant, non-method own properties on intrinsics.
func value(obj *runtime.Object, name string, v runtime.Value, writable, enumerable, configurable bool) {
	obj.DefineDataProperty(name, v, writable, enumerable, configurable)
}

// requireThisObject returns this as *Object or a TypeError, for methods
// that only make sense called on an object (most Object.prototype/
// Array.prototype methods are, despite ES5.1's generic-method looseness,
// only ever meaningfully called this way by real scripts).
func requireThisObject(this runtime.Value, what string) (*runtime.Object, *runtime.Exception) {
	obj, ok := this.(*runtime.Object)
	if !ok {
		return nil, runtime.NewTypeError(what + " called on non-object")
	}
	return obj, nil
}

// formatFloat formats f in fixed-point notation with prec digits after the
// decimal point, for Number.prototype.toFixed: a plain
// strconv.FormatFloat(f, 'f', prec, 64) with no further adjustment.
func formatFloat(f float64, prec int) string {
	return strconv.FormatFloat(f, 'f', prec, 64)
}

// clampInt clamps n into [lo, hi].
func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// normalizeIndex implements the relative-index convention shared by
// Array.prototype.slice/splice and String.prototype.slice: a negative index
// counts back from length, then clamps into [0, length].
func normalizeIndex(idx, length int) int {
	if idx < 0 {
		idx += length
	}
	return clampInt(idx, 0, length)
}
