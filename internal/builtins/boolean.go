package builtins

import "github.com/es5lang/es5/internal/runtime"

// installBoolean wires Boolean/Boolean.prototype (ES5.1 §15.6).
func (in *Intrinsics) installBoolean() {
	proto := in.BooleanPrototype
	ctor := in.BooleanCtor

	ctor.FunctionName = "Boolean"
	ctor.DefineDataProperty("prototype", proto, false, false, false)
	ctor.DefineDataProperty("length", runtime.Num(1), false, false, false)
	proto.DefineDataProperty("constructor", ctor, true, false, true)

	ctor.Call = func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		return runtime.Bool(runtime.ToBoolean(Arg(args, 0))), nil
	}
	ctor.Construct = func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		o := runtime.NewObjectWithClass(proto, "Boolean")
		o.PrimitiveValue = runtime.Bool(runtime.ToBoolean(Arg(args, 0)))
		return o, nil
	}

	thisBoolean := func(this runtime.Value, what string) (bool, *runtime.Exception) {
		switch v := this.(type) {
		case runtime.BooleanValue:
			return bool(v), nil
		case *runtime.Object:
			if v.Class == "Boolean" {
				if b, ok := v.PrimitiveValue.(runtime.BooleanValue); ok {
					return bool(b), nil
				}
			}
			return false, runtime.NewTypeError(what + " called on incompatible receiver")
		default:
			return false, runtime.NewTypeError(what + " called on incompatible receiver")
		}
	}

	method(proto, "valueOf", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		b, exc := thisBoolean(this, "Boolean.prototype.valueOf")
		if exc != nil {
			return nil, exc
		}
		return runtime.Bool(b), nil
	})
	method(proto, "toString", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		b, exc := thisBoolean(this, "Boolean.prototype.toString")
		if exc != nil {
			return nil, exc
		}
		if b {
			return runtime.Str("true"), nil
		}
		return runtime.Str("false"), nil
	})
}
