package builtins

import "github.com/es5lang/es5/internal/runtime"

// errorKinds lists the six NativeError subclasses spec.md §4.7 requires in
// addition to the base Error constructor (ES5.1 §15.11.6).
var errorKinds = []string{"TypeError", "RangeError", "ReferenceError", "SyntaxError", "URIError", "EvalError"}

// Intrinsics holds every object spec.md §4.7 requires to exist before a
// program runs: the nine built-in prototypes and their constructors (Object,
// Function, Array, String, Number, Boolean, Error, RegExp, Date), the
// NativeError hierarchy, the Math object, and the global object those
// constructors (plus parseInt/parseFloat/console/...) are installed onto.
// internal/interp's Realm wraps an Intrinsics and wires its GlobalObject
// into the global environment record.
type Intrinsics struct {
	ObjectPrototype   *runtime.Object
	ObjectCtor        *runtime.Object
	FunctionPrototype *runtime.Object
	FunctionCtor      *runtime.Object
	ArrayPrototype    *runtime.Object
	ArrayCtor         *runtime.Object
	StringPrototype   *runtime.Object
	StringCtor        *runtime.Object
	NumberPrototype   *runtime.Object
	NumberCtor        *runtime.Object
	BooleanPrototype  *runtime.Object
	BooleanCtor       *runtime.Object
	ErrorPrototype    *runtime.Object
	ErrorCtor         *runtime.Object
	RegExpPrototype   *runtime.Object
	RegExpCtor        *runtime.Object
	DatePrototype     *runtime.Object
	DateCtor          *runtime.Object

	// NativeErrorPrototypes/NativeErrorCtors are keyed by errorKinds
	// entries ("TypeError", "RangeError", ...).
	NativeErrorPrototypes map[string]*runtime.Object
	NativeErrorCtors      map[string]*runtime.Object

	MathObject   *runtime.Object
	GlobalObject *runtime.Object

	rng func() float64
}

// randomFloat returns Math.random's next value from rng, or 0 when rng is
// nil (NewIntrinsics was given no source, or Intrinsics was constructed by
// hand rather than through NewIntrinsics).
func (in *Intrinsics) randomFloat() float64 {
	if in.rng == nil {
		return 0
	}
	return in.rng()
}

func newConstructorShell(functionPrototype *runtime.Object) *runtime.Object {
	return &runtime.Object{Class: "Function", Prototype: functionPrototype, Extensible: true}
}

// NewIntrinsics builds the whole intrinsics graph. consoleLog receives
// console.log's already-ToString'd arguments (pass nil to discard them);
// rng supplies Math.random's next value (pass nil to always return 0,
// useful for deterministic tests).
func NewIntrinsics(consoleLog func(args []string), rng func() float64) *Intrinsics {
	in := &Intrinsics{rng: rng}

	in.ObjectPrototype = runtime.NewObject(nil)
	in.FunctionPrototype = runtime.NewObjectWithClass(in.ObjectPrototype, "Function")
	in.ArrayPrototype = runtime.NewObjectWithClass(in.ObjectPrototype, "Array")
	in.ArrayPrototype.DefineDataProperty("length", runtime.Num(0), true, false, false)
	in.StringPrototype = runtime.NewObjectWithClass(in.ObjectPrototype, "String")
	in.StringPrototype.PrimitiveValue = runtime.Str("")
	in.NumberPrototype = runtime.NewObjectWithClass(in.ObjectPrototype, "Number")
	in.NumberPrototype.PrimitiveValue = runtime.Num(0)
	in.BooleanPrototype = runtime.NewObjectWithClass(in.ObjectPrototype, "Boolean")
	in.BooleanPrototype.PrimitiveValue = runtime.Bool(false)
	in.ErrorPrototype = runtime.NewObjectWithClass(in.ObjectPrototype, "Error")
	in.RegExpPrototype = runtime.NewObjectWithClass(in.ObjectPrototype, "RegExp")
	in.DatePrototype = runtime.NewObjectWithClass(in.ObjectPrototype, "Date")

	in.NativeErrorPrototypes = make(map[string]*runtime.Object)
	in.NativeErrorCtors = make(map[string]*runtime.Object)
	for _, kind := range errorKinds {
		in.NativeErrorPrototypes[kind] = runtime.NewObjectWithClass(in.ErrorPrototype, "Error")
	}

	in.GlobalObject = runtime.NewObject(in.ObjectPrototype)

	in.ObjectCtor = newConstructorShell(in.FunctionPrototype)
	in.FunctionCtor = newConstructorShell(in.FunctionPrototype)
	in.ArrayCtor = newConstructorShell(in.FunctionPrototype)
	in.StringCtor = newConstructorShell(in.FunctionPrototype)
	in.NumberCtor = newConstructorShell(in.FunctionPrototype)
	in.BooleanCtor = newConstructorShell(in.FunctionPrototype)
	in.ErrorCtor = newConstructorShell(in.FunctionPrototype)
	in.RegExpCtor = newConstructorShell(in.FunctionPrototype)
	in.DateCtor = newConstructorShell(in.FunctionPrototype)
	for _, kind := range errorKinds {
		in.NativeErrorCtors[kind] = newConstructorShell(in.FunctionPrototype)
	}

	in.installObject()
	in.installFunction()
	in.installArray()
	in.installString()
	in.installNumber()
	in.installBoolean()
	in.installErrors()
	in.installRegExp()
	in.installDate()

	in.MathObject = runtime.NewObject(in.ObjectPrototype)
	in.installMath()
	in.installGlobal(consoleLog)

	return in
}

// AllErrorConstructors returns Error plus the six NativeError subclasses
// keyed by name, for internal/interp's raise() to look up the right
// constructor for a synthesized TypeError/RangeError/....
func (in *Intrinsics) AllErrorConstructors() map[string]*runtime.Object {
	out := map[string]*runtime.Object{"Error": in.ErrorCtor}
	for kind, ctor := range in.NativeErrorCtors {
		out[kind] = ctor
	}
	return out
}
