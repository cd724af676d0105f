package builtins

import "github.com/es5lang/es5/internal/runtime"

// installErrors wires Error/Error.prototype and the six NativeError
// subclasses (ES5.1 §15.11).
func (in *Intrinsics) installErrors() {
	proto := in.ErrorPrototype
	ctor := in.ErrorCtor

	ctor.FunctionName = "Error"
	ctor.DefineDataProperty("prototype", proto, false, false, false)
	ctor.DefineDataProperty("length", runtime.Num(1), false, false, false)
	proto.DefineDataProperty("constructor", ctor, true, false, true)
	proto.DefineDataProperty("name", runtime.Str("Error"), true, false, true)
	proto.DefineDataProperty("message", runtime.Str(""), true, false, true)

	makeErrorBody := func(proto *runtime.Object, class string) runtime.NativeFunc {
		return func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
			o := runtime.NewObjectWithClass(proto, "Error")
			if Arg(args, 0) != runtime.Undefined {
				msg, exc := ArgString(args, 0)
				if exc != nil {
					return nil, exc
				}
				o.DefineDataProperty("message", runtime.Str(msg), true, false, true)
			}
			return o, nil
		}
	}
	ctor.Call = makeErrorBody(proto, "Error")
	ctor.Construct = makeErrorBody(proto, "Error")

	method(proto, "toString", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, exc := requireThisObject(this, "Error.prototype.toString")
		if exc != nil {
			return nil, exc
		}
		nameVal, exc := obj.Get("name")
		if exc != nil {
			return nil, exc
		}
		name := "Error"
		if nameVal != runtime.Undefined {
			name, exc = ToStringValue(nameVal)
			if exc != nil {
				return nil, exc
			}
		}
		msgVal, exc := obj.Get("message")
		if exc != nil {
			return nil, exc
		}
		msg := ""
		if msgVal != runtime.Undefined {
			msg, exc = ToStringValue(msgVal)
			if exc != nil {
				return nil, exc
			}
		}
		switch {
		case name == "":
			return runtime.Str(msg), nil
		case msg == "":
			return runtime.Str(name), nil
		default:
			return runtime.Str(name + ": " + msg), nil
		}
	})

	for _, kind := range errorKinds {
		nproto := in.NativeErrorPrototypes[kind]
		nctor := in.NativeErrorCtors[kind]

		nctor.FunctionName = kind
		nctor.Prototype = in.FunctionPrototype
		nctor.DefineDataProperty("prototype", nproto, false, false, false)
		nctor.DefineDataProperty("length", runtime.Num(1), false, false, false)
		nproto.DefineDataProperty("constructor", nctor, true, false, true)
		nproto.DefineDataProperty("name", runtime.Str(kind), true, false, true)
		nproto.DefineDataProperty("message", runtime.Str(""), true, false, true)

		body := makeErrorBody(nproto, "Error")
		nctor.Call = body
		nctor.Construct = body
	}
}
