package runtime

import (
	"fmt"
	"strconv"
)

// NativeFunc is the shape every callable Object's [[Call]] (and, for
// constructors, [[Construct]]) internal method takes. The evaluator builds
// one of these for every user-defined FunctionExpression/Declaration
// (closing over the function's body and captured scope) and for every
// built-in function (closing over Go logic); runtime itself never invokes
// the interpreter, so this package has no import on internal/interp.
type NativeFunc func(this Value, args []Value) (Value, *Exception)

// Object is the runtime representation of every ES5.1 object — plain
// objects, arrays, functions, Boolean/Number/String wrappers, Errors, and
// the intrinsics themselves — distinguished by Class and by which optional
// internal slots are populated (spec.md §3.4, ES5.1 §8.6/§8.12).
type Object struct {
	// Class is the [[Class]] internal property ("Object", "Array",
	// "Function", "Error", "Arguments", "Boolean", "Number", "String",
	// "Date", "RegExp"), used by Object.prototype.toString and a handful of
	// built-ins that special-case exotic objects.
	Class string
	// Prototype is [[Prototype]]; nil means the prototype chain ends here.
	Prototype *Object
	// Extensible is [[Extensible]]; once false, no new own properties can
	// be added (Object.preventExtensions/seal/freeze).
	Extensible bool

	props *propertyMap

	// Call, when non-nil, makes this object callable ([[Call]] is defined)
	// — typeof reports "function" for it. Construct, when non-nil, makes it
	// usable with `new`. Most function objects set both; "fat arrow"-free
	// ES5.1 functions in sloppy mode always do (every FunctionExpression
	// gets a Construct via the default [[Construct]] the evaluator wires).
	Call      NativeFunc
	Construct NativeFunc

	// PrimitiveValue holds the wrapped primitive for Boolean/Number/String
	// wrapper objects ([[PrimitiveValue]], ES5.1 §15.6-§15.8).
	PrimitiveValue Value

	// ParameterMap, when non-nil, marks this as a mapped arguments object
	// (ES5.1 §10.6) and holds the index->parameter-name mapping used to
	// keep arguments[i] and the corresponding named parameter in sync for
	// non-strict functions.
	ParameterMap map[int]string

	// FunctionName/FormalParamNames/Strict describe a function object for
	// Function.prototype.toString, arguments object creation, and the
	// strict-mode restrictions on its own "caller"/"arguments" properties.
	FunctionName     string
	FormalParamNames []string
	FunctionStrict   bool
}

// NewObject creates a plain extensible object with the given prototype and
// [[Class]] "Object" (ES5.1 §15.2.2.1 default [[Class]]).
func NewObject(prototype *Object) *Object {
	return &Object{Class: "Object", Prototype: prototype, Extensible: true, props: newPropertyMap()}
}

// NewObjectWithClass creates an extensible object with an explicit
// [[Class]] (used for Array, Arguments, Error, Date, RegExp, and the
// wrapper classes).
func NewObjectWithClass(prototype *Object, class string) *Object {
	return &Object{Class: class, Prototype: prototype, Extensible: true, props: newPropertyMap()}
}

// Type implements Value: every Object reports "object" except a callable
// one, which reports "function" (ES5.1 §11.4.3).
func (o *Object) Type() string {
	if o.Call != nil {
		return "function"
	}
	return "object"
}

// String implements Value with a debugging-only rendering; builtins use
// ToString (conversion.go), which calls [[DefaultValue]] instead.
func (o *Object) String() string {
	if o.Call != nil {
		name := o.FunctionName
		return fmt.Sprintf("function %s() { [native code] }", name)
	}
	return "[object " + o.Class + "]"
}

// IsCallable reports whether [[Call]] is defined.
func (o *Object) IsCallable() bool { return o != nil && o.Call != nil }

// GetOwnProperty implements [[GetOwnProperty]] (ES5.1 §8.12.1): look up name
// among o's own properties only, with no prototype walk.
func (o *Object) GetOwnProperty(name string) *PropertyDescriptor {
	return o.props.get(name)
}

// GetProperty implements [[GetProperty]] (ES5.1 §8.12.2): walk the
// prototype chain until name is found as an own property, or return nil.
func (o *Object) GetProperty(name string) *PropertyDescriptor {
	for cur := o; cur != nil; cur = cur.Prototype {
		if d := cur.props.get(name); d != nil {
			return d
		}
	}
	return nil
}

// Get implements [[Get]] (ES5.1 §8.12.3): resolve name to a Value, invoking
// an accessor getter (bound to this object as `this`) when the property is
// an accessor, or returning Undefined if it has none.
func (o *Object) Get(name string) (Value, *Exception) {
	d := o.GetProperty(name)
	if d == nil {
		return Undefined, nil
	}
	if d.IsAccessor {
		if d.Get == nil {
			return Undefined, nil
		}
		return d.Get.Call(o, nil)
	}
	return d.Value, nil
}

// CanPut implements [[CanPut]] (ES5.1 §8.12.4): whether a [[Put]] of name
// would be permitted, consulting inherited accessor/data attributes when o
// has no own property by that name.
func (o *Object) CanPut(name string) bool {
	if d := o.props.get(name); d != nil {
		if d.IsAccessor {
			return d.Set != nil
		}
		return d.Writable
	}
	if o.Prototype == nil {
		return o.Extensible
	}
	inherited := o.Prototype.GetProperty(name)
	if inherited == nil {
		return o.Extensible
	}
	if inherited.IsAccessor {
		return inherited.Set != nil
	}
	if !o.Extensible {
		return false
	}
	return inherited.Writable
}

// Put implements [[Put]] (ES5.1 §8.12.5): assign value to name, routing
// through an inherited or own accessor setter when present, otherwise
// creating/overwriting a plain data property. throwOnFailure governs
// whether a failed CanPut raises a TypeError (strict mode) or is silently
// ignored (sloppy mode).
func (o *Object) Put(name string, value Value, throwOnFailure bool) *Exception {
	if !o.CanPut(name) {
		if throwOnFailure {
			return NewTypeError(fmt.Sprintf("cannot assign to read only property '%s'", name))
		}
		return nil
	}
	if o.Class == "Array" && name == "length" {
		return o.putArrayLength(value, throwOnFailure)
	}
	own := o.props.get(name)
	if own != nil && !own.IsAccessor {
		own.Value = value
		o.growArrayLengthFor(name)
		return nil
	}
	inherited := o.GetProperty(name)
	if inherited != nil && inherited.IsAccessor {
		_, exc := inherited.Set.Call(o, []Value{value})
		return exc
	}
	o.props.set(name, DataProperty(value))
	o.growArrayLengthFor(name)
	return nil
}

// isArrayIndex reports whether name is a canonical array index string
// (ES5.1 §15.4): a decimal integer in [0, 2^32-2] with no leading zeros or
// sign, i.e. ToString(ToUint32(name)) == name.
func isArrayIndex(name string) (uint64, bool) {
	n, err := strconv.ParseUint(name, 10, 64)
	if err != nil || n >= 4294967295 {
		return 0, false
	}
	if strconv.FormatUint(n, 10) != name {
		return 0, false
	}
	return n, true
}

// arrayLength reads this Array object's own "length" value, defaulting to 0
// if it is missing or malformed.
func (o *Object) arrayLength() uint64 {
	d := o.props.get("length")
	if d == nil {
		return 0
	}
	n, ok := d.Value.(NumberValue)
	if !ok {
		return 0
	}
	return uint64(ToUint32(float64(n)))
}

// growArrayLengthFor implements the length-maintenance half of the Array
// exotic [[DefineOwnProperty]] (ES5.1 §15.4.5.1): writing an array-index
// property grows length to index+1 when the index is >= the current length.
// A no-op for non-Array objects and non-index property names.
func (o *Object) growArrayLengthFor(name string) {
	if o.Class != "Array" {
		return
	}
	idx, ok := isArrayIndex(name)
	if !ok {
		return
	}
	if idx >= o.arrayLength() {
		o.setArrayLengthValue(idx + 1)
	}
}

func (o *Object) setArrayLengthValue(n uint64) {
	if d := o.props.get("length"); d != nil {
		d.Value = Num(float64(n))
		return
	}
	o.props.set("length", &PropertyDescriptor{Value: Num(float64(n)), Writable: true})
}

// putArrayLength implements assigning an Array's own "length" property
// (ES5.1 §15.4.5.1): the new value must reduce to a valid 32-bit length, and
// shrinking it deletes every own index property >= the new length.
func (o *Object) putArrayLength(value Value, throwOnFailure bool) *Exception {
	newLenNum, exc := toNumberValue(value)
	if exc != nil {
		return exc
	}
	newLen := ToUint32(newLenNum)
	if float64(newLen) != newLenNum {
		return NewRangeError("invalid array length")
	}
	oldLen := o.arrayLength()
	for i := oldLen; i > uint64(newLen); i-- {
		o.props.delete(strconv.FormatUint(i-1, 10))
	}
	o.setArrayLengthValue(uint64(newLen))
	return nil
}

// toNumberValue applies ES5.1 §9.3 ToNumber, routing Objects through
// [[DefaultValue]] first. Duplicated (in miniature) from
// internal/builtins' own ToNumberValue since this package cannot import
// builtins (builtins depends on runtime, not the reverse).
func toNumberValue(v Value) (float64, *Exception) {
	obj, ok := v.(*Object)
	if !ok {
		return ToNumberPrimitive(v), nil
	}
	prim, exc := obj.DefaultValue("Number")
	if exc != nil {
		return 0, exc
	}
	return ToNumberPrimitive(prim), nil
}

// HasProperty implements [[HasProperty]] (ES5.1 §8.12.6): true if name
// exists anywhere along the prototype chain.
func (o *Object) HasProperty(name string) bool {
	return o.GetProperty(name) != nil
}

// Delete implements [[Delete]] (ES5.1 §8.12.7): remove an own,
// configurable property; non-configurable own properties refuse deletion
// (raising TypeError only when throwOnFailure is set); a missing own
// property deletes trivially.
func (o *Object) Delete(name string, throwOnFailure bool) (bool, *Exception) {
	d := o.props.get(name)
	if d == nil {
		return true, nil
	}
	if !d.Configurable {
		if throwOnFailure {
			return false, NewTypeError(fmt.Sprintf("property '%s' is non-configurable and cannot be deleted", name))
		}
		return false, nil
	}
	o.props.delete(name)
	return true, nil
}

// DefaultValue implements [[DefaultValue]] (ES5.1 §8.12.8): calls
// "valueOf" then "toString" (or the reverse for hint "String") looking for
// the first callable result whose return value is a primitive.
func (o *Object) DefaultValue(hint string) (Value, *Exception) {
	order := []string{"valueOf", "toString"}
	if hint == "String" {
		order = []string{"toString", "valueOf"}
	}
	for _, name := range order {
		fnVal, exc := o.Get(name)
		if exc != nil {
			return nil, exc
		}
		fn, ok := fnVal.(*Object)
		if !ok || !fn.IsCallable() {
			continue
		}
		result, exc := fn.Call(o, nil)
		if exc != nil {
			return nil, exc
		}
		if _, isObject := result.(*Object); !isObject {
			return result, nil
		}
	}
	return nil, NewTypeError("cannot convert object to primitive value")
}

// DefineOwnProperty implements a practical subset of [[DefineOwnProperty]]
// (ES5.1 §8.12.9) sufficient for Object.defineProperty/defineProperties and
// for the evaluator's own property creation: it validates extensibility and
// non-configurable-redefinition rules, then installs desc verbatim (partial
// descriptors are expected to have been completed by the caller against the
// current descriptor, mirroring ES5.1's "fill in defaults from the current
// property" step).
func (o *Object) DefineOwnProperty(name string, desc *PropertyDescriptor, throwOnFailure bool) (bool, *Exception) {
	current := o.props.get(name)
	if current == nil {
		if !o.Extensible {
			if throwOnFailure {
				return false, NewTypeError("object is not extensible")
			}
			return false, nil
		}
		o.props.set(name, desc)
		return true, nil
	}
	if !current.Configurable {
		if desc.Configurable {
			if throwOnFailure {
				return false, NewTypeError(fmt.Sprintf("cannot redefine non-configurable property '%s'", name))
			}
			return false, nil
		}
		if current.IsAccessor != desc.IsAccessor {
			if throwOnFailure {
				return false, NewTypeError(fmt.Sprintf("cannot redefine property '%s' between data and accessor", name))
			}
			return false, nil
		}
		if !current.IsAccessor && !current.Writable && desc.Writable {
			if throwOnFailure {
				return false, NewTypeError(fmt.Sprintf("cannot redefine non-writable property '%s' as writable", name))
			}
			return false, nil
		}
	}
	o.props.set(name, desc)
	return true, nil
}

// OwnPropertyNames returns own property names in insertion order (used for
// for-in enumeration, Object.keys, and JSON.stringify).
func (o *Object) OwnPropertyNames() []string {
	return o.props.names()
}

// DefineDataProperty is a convenience used throughout the evaluator and
// builtins for the common case of installing a plain data property
// directly (bypassing [[DefineOwnProperty]]'s redefinition checks, which
// don't apply when the engine itself is constructing an intrinsic).
func (o *Object) DefineDataProperty(name string, value Value, writable, enumerable, configurable bool) {
	o.props.set(name, &PropertyDescriptor{Value: value, Writable: writable, Enumerable: enumerable, Configurable: configurable})
}

// DefineAccessorProperty installs an accessor property directly, bypassing
// [[DefineOwnProperty]]'s redefinition checks (engine-internal use only).
func (o *Object) DefineAccessorProperty(name string, get, set *Object, enumerable, configurable bool) {
	o.props.set(name, AccessorProperty(get, set, enumerable, configurable))
}
