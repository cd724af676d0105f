package builtins

import "github.com/es5lang/es5/internal/runtime"

// installObject wires Object/Object.prototype (ES5.1 §15.2): the
// constructor/call form, the five prototype methods spec.md §4.7 names,
// and the Object.* static methods (create, defineProperty,
// defineProperties, keys, getOwnPropertyNames, getPrototypeOf, freeze,
// seal, preventExtensions and their isX queries).
func (in *Intrinsics) installObject() {
	proto := in.ObjectPrototype
	ctor := in.ObjectCtor

	ctor.FunctionName = "Object"
	ctor.DefineDataProperty("prototype", proto, false, false, false)
	ctor.DefineDataProperty("length", runtime.Num(1), false, false, false)
	proto.DefineDataProperty("constructor", ctor, true, false, true)

	newPlainObject := func(arg runtime.Value) runtime.Value {
		switch arg.(type) {
		case runtime.UndefinedValue, runtime.NullValue, nil:
			return runtime.NewObject(proto)
		}
		if obj, ok := arg.(*runtime.Object); ok {
			return obj
		}
		boxed, exc := ToObjectValue(arg, in.BooleanPrototype, in.NumberPrototype, in.StringPrototype)
		if exc != nil {
			return runtime.NewObject(proto)
		}
		return boxed
	}
	ctor.Call = func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		return newPlainObject(Arg(args, 0)), nil
	}
	ctor.Construct = func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		return newPlainObject(Arg(args, 0)), nil
	}

	method(proto, "toString", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		if this == nil || this == runtime.Undefined {
			return runtime.Str("[object Undefined]"), nil
		}
		if this == runtime.Null {
			return runtime.Str("[object Null]"), nil
		}
		obj, ok := this.(*runtime.Object)
		if !ok {
			return runtime.Str("[object Object]"), nil
		}
		return runtime.Str("[object " + obj.Class + "]"), nil
	})
	method(proto, "toLocaleString", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, exc := requireThisObject(this, "toLocaleString")
		if exc != nil {
			return nil, exc
		}
		fnVal, exc := obj.Get("toString")
		if exc != nil {
			return nil, exc
		}
		fn, ok := fnVal.(*runtime.Object)
		if !ok || !fn.IsCallable() {
			return nil, runtime.NewTypeError("toString is not a function")
		}
		return fn.Call(obj, nil)
	})
	method(proto, "valueOf", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, exc := requireThisObject(this, "valueOf")
		if exc != nil {
			return nil, exc
		}
		return obj, nil
	})
	method(proto, "hasOwnProperty", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, exc := requireThisObject(this, "hasOwnProperty")
		if exc != nil {
			return nil, exc
		}
		name, exc := ArgString(args, 0)
		if exc != nil {
			return nil, exc
		}
		return runtime.Bool(obj.GetOwnProperty(name) != nil), nil
	})
	method(proto, "isPrototypeOf", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, exc := requireThisObject(this, "isPrototypeOf")
		if exc != nil {
			return nil, exc
		}
		other, ok := Arg(args, 0).(*runtime.Object)
		if !ok {
			return runtime.False, nil
		}
		for cur := other.Prototype; cur != nil; cur = cur.Prototype {
			if cur == obj {
				return runtime.True, nil
			}
		}
		return runtime.False, nil
	})
	method(proto, "propertyIsEnumerable", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, exc := requireThisObject(this, "propertyIsEnumerable")
		if exc != nil {
			return nil, exc
		}
		name, exc := ArgString(args, 0)
		if exc != nil {
			return nil, exc
		}
		d := obj.GetOwnProperty(name)
		return runtime.Bool(d != nil && d.Enumerable), nil
	})

	method(ctor, "create", 2, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		var objProto *runtime.Object
		switch p := Arg(args, 0).(type) {
		case *runtime.Object:
			objProto = p
		case runtime.NullValue:
			objProto = nil
		default:
			return nil, runtime.NewTypeError("Object.create proto must be an object or null")
		}
		result := runtime.NewObject(objProto)
		if propsVal := Arg(args, 1); propsVal != runtime.Undefined {
			propsObj, ok := propsVal.(*runtime.Object)
			if !ok {
				return nil, runtime.NewTypeError("Object.create properties must be an object")
			}
			if exc := defineProperties(result, propsObj); exc != nil {
				return nil, exc
			}
		}
		return result, nil
	})
	method(ctor, "defineProperty", 3, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, ok := Arg(args, 0).(*runtime.Object)
		if !ok {
			return nil, runtime.NewTypeError("Object.defineProperty called on non-object")
		}
		name, exc := ArgString(args, 1)
		if exc != nil {
			return nil, exc
		}
		descObj, ok := Arg(args, 2).(*runtime.Object)
		if !ok {
			return nil, runtime.NewTypeError("property description must be an object")
		}
		desc, exc := toPropertyDescriptor(obj, name, descObj)
		if exc != nil {
			return nil, exc
		}
		if ok, exc := obj.DefineOwnProperty(name, desc, true); exc != nil || !ok {
			return nil, exc
		}
		return obj, nil
	})
	method(ctor, "defineProperties", 2, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, ok := Arg(args, 0).(*runtime.Object)
		if !ok {
			return nil, runtime.NewTypeError("Object.defineProperties called on non-object")
		}
		propsObj, ok := Arg(args, 1).(*runtime.Object)
		if !ok {
			return nil, runtime.NewTypeError("Object.defineProperties properties must be an object")
		}
		if exc := defineProperties(obj, propsObj); exc != nil {
			return nil, exc
		}
		return obj, nil
	})
	method(ctor, "keys", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, ok := Arg(args, 0).(*runtime.Object)
		if !ok {
			return nil, runtime.NewTypeError("Object.keys called on non-object")
		}
		result := newArray(in.ArrayPrototype)
		idx := 0
		for _, name := range obj.OwnPropertyNames() {
			if d := obj.GetOwnProperty(name); d != nil && d.Enumerable {
				arraySet(result, idx, runtime.Str(name))
				idx++
			}
		}
		arraySetLength(result, idx)
		return result, nil
	})
	method(ctor, "getOwnPropertyNames", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, ok := Arg(args, 0).(*runtime.Object)
		if !ok {
			return nil, runtime.NewTypeError("Object.getOwnPropertyNames called on non-object")
		}
		names := obj.OwnPropertyNames()
		result := newArray(in.ArrayPrototype)
		for idx, name := range names {
			arraySet(result, idx, runtime.Str(name))
		}
		arraySetLength(result, len(names))
		return result, nil
	})
	method(ctor, "getOwnPropertyDescriptor", 2, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, ok := Arg(args, 0).(*runtime.Object)
		if !ok {
			return nil, runtime.NewTypeError("Object.getOwnPropertyDescriptor called on non-object")
		}
		name, exc := ArgString(args, 1)
		if exc != nil {
			return nil, exc
		}
		d := obj.GetOwnProperty(name)
		if d == nil {
			return runtime.Undefined, nil
		}
		return fromPropertyDescriptor(proto, d), nil
	})
	method(ctor, "getPrototypeOf", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, ok := Arg(args, 0).(*runtime.Object)
		if !ok {
			return nil, runtime.NewTypeError("Object.getPrototypeOf called on non-object")
		}
		if obj.Prototype == nil {
			return runtime.Null, nil
		}
		return obj.Prototype, nil
	})
	method(ctor, "preventExtensions", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, ok := Arg(args, 0).(*runtime.Object)
		if !ok {
			return nil, runtime.NewTypeError("Object.preventExtensions called on non-object")
		}
		obj.Extensible = false
		return obj, nil
	})
	method(ctor, "isExtensible", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, ok := Arg(args, 0).(*runtime.Object)
		if !ok {
			return nil, runtime.NewTypeError("Object.isExtensible called on non-object")
		}
		return runtime.Bool(obj.Extensible), nil
	})
	method(ctor, "seal", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, ok := Arg(args, 0).(*runtime.Object)
		if !ok {
			return nil, runtime.NewTypeError("Object.seal called on non-object")
		}
		for _, name := range obj.OwnPropertyNames() {
			d := obj.GetOwnProperty(name)
			d.Configurable = false
		}
		obj.Extensible = false
		return obj, nil
	})
	method(ctor, "isSealed", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, ok := Arg(args, 0).(*runtime.Object)
		if !ok {
			return nil, runtime.NewTypeError("Object.isSealed called on non-object")
		}
		if obj.Extensible {
			return runtime.False, nil
		}
		for _, name := range obj.OwnPropertyNames() {
			if obj.GetOwnProperty(name).Configurable {
				return runtime.False, nil
			}
		}
		return runtime.True, nil
	})
	method(ctor, "freeze", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, ok := Arg(args, 0).(*runtime.Object)
		if !ok {
			return nil, runtime.NewTypeError("Object.freeze called on non-object")
		}
		for _, name := range obj.OwnPropertyNames() {
			d := obj.GetOwnProperty(name)
			d.Configurable = false
			if !d.IsAccessor {
				d.Writable = false
			}
		}
		obj.Extensible = false
		return obj, nil
	})
	method(ctor, "isFrozen", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, ok := Arg(args, 0).(*runtime.Object)
		if !ok {
			return nil, runtime.NewTypeError("Object.isFrozen called on non-object")
		}
		if obj.Extensible {
			return runtime.False, nil
		}
		for _, name := range obj.OwnPropertyNames() {
			d := obj.GetOwnProperty(name)
			if d.Configurable || (!d.IsAccessor && d.Writable) {
				return runtime.False, nil
			}
		}
		return runtime.True, nil
	})
}

// toPropertyDescriptor implements ES5.1 §8.10.5: read value/writable/get/
// set/enumerable/configurable off descObj, filling in "fall back to the
// current descriptor, else the ES5.1 default" for any field absent from
// descObj.
func toPropertyDescriptor(target *runtime.Object, name string, descObj *runtime.Object) (*runtime.PropertyDescriptor, *runtime.Exception) {
	current := target.GetOwnProperty(name)
	desc := &runtime.PropertyDescriptor{}
	if current != nil {
		*desc = *current
	}

	hasGet := descObj.GetOwnProperty("get") != nil
	hasSet := descObj.GetOwnProperty("set") != nil
	hasValue := descObj.GetOwnProperty("value") != nil
	hasWritable := descObj.GetOwnProperty("writable") != nil

	if hasGet || hasSet {
		desc.IsAccessor = true
		if hasGet {
			g, exc := descObj.Get("get")
			if exc != nil {
				return nil, exc
			}
			if fn, ok := g.(*runtime.Object); ok {
				desc.Get = fn
			} else if g != runtime.Undefined {
				return nil, runtime.NewTypeError("getter must be a function")
			}
		}
		if hasSet {
			s, exc := descObj.Get("set")
			if exc != nil {
				return nil, exc
			}
			if fn, ok := s.(*runtime.Object); ok {
				desc.Set = fn
			} else if s != runtime.Undefined {
				return nil, runtime.NewTypeError("setter must be a function")
			}
		}
	} else if hasValue || hasWritable {
		desc.IsAccessor = false
		if hasValue {
			v, exc := descObj.Get("value")
			if exc != nil {
				return nil, exc
			}
			desc.Value = v
		}
		if hasWritable {
			w, exc := descObj.Get("writable")
			if exc != nil {
				return nil, exc
			}
			desc.Writable = runtime.ToBoolean(w)
		}
	}
	if d := descObj.GetOwnProperty("enumerable"); d != nil {
		v, exc := descObj.Get("enumerable")
		if exc != nil {
			return nil, exc
		}
		desc.Enumerable = runtime.ToBoolean(v)
	}
	if d := descObj.GetOwnProperty("configurable"); d != nil {
		v, exc := descObj.Get("configurable")
		if exc != nil {
			return nil, exc
		}
		desc.Configurable = runtime.ToBoolean(v)
	}
	return desc, nil
}

func fromPropertyDescriptor(objectPrototype *runtime.Object, d *runtime.PropertyDescriptor) *runtime.Object {
	out := runtime.NewObject(objectPrototype)
	if d.IsAccessor {
		if d.Get != nil {
			out.DefineDataProperty("get", d.Get, true, true, true)
		} else {
			out.DefineDataProperty("get", runtime.Undefined, true, true, true)
		}
		if d.Set != nil {
			out.DefineDataProperty("set", d.Set, true, true, true)
		} else {
			out.DefineDataProperty("set", runtime.Undefined, true, true, true)
		}
	} else {
		out.DefineDataProperty("value", d.Value, true, true, true)
		out.DefineDataProperty("writable", runtime.Bool(d.Writable), true, true, true)
	}
	out.DefineDataProperty("enumerable", runtime.Bool(d.Enumerable), true, true, true)
	out.DefineDataProperty("configurable", runtime.Bool(d.Configurable), true, true, true)
	return out
}

func defineProperties(obj *runtime.Object, propsObj *runtime.Object) *runtime.Exception {
	for _, name := range propsObj.OwnPropertyNames() {
		d := propsObj.GetOwnProperty(name)
		if d == nil || !d.Enumerable {
			continue
		}
		descVal, exc := propsObj.Get(name)
		if exc != nil {
			return exc
		}
		descObj, ok := descVal.(*runtime.Object)
		if !ok {
			return runtime.NewTypeError("property description must be an object")
		}
		desc, exc := toPropertyDescriptor(obj, name, descObj)
		if exc != nil {
			return exc
		}
		if _, exc := obj.DefineOwnProperty(name, desc, true); exc != nil {
			return exc
		}
	}
	return nil
}
