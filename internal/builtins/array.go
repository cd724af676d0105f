package builtins

import (
	"strconv"
	"strings"

	"github.com/es5lang/es5/internal/runtime"
)

// newArray creates an empty Array exotic object with length 0.
func newArray(prototype *runtime.Object) *runtime.Object {
	a := runtime.NewObjectWithClass(prototype, "Array")
	a.DefineDataProperty("length", runtime.Num(0), true, false, false)
	return a
}

func arrayLength(a *runtime.Object) int {
	v, _ := a.Get("length")
	return int(runtime.ToNumberPrimitive(v))
}

// arraySetLength grows/shrinks the length property directly; used by
// builtins that build a result array index-by-index rather than through
// script-visible [[Put]] (which would otherwise re-run the length
// maintenance logic on every element).
func arraySetLength(a *runtime.Object, n int) {
	a.DefineDataProperty("length", runtime.Num(float64(n)), true, false, false)
}

// arraySet assigns index i of array a to v and grows length if needed,
// mirroring the Array exotic [[DefineOwnProperty]] length-maintenance
// invariant (ES5.1 §15.4.5.1) without going through the general-purpose
// (and here unused) DefineOwnProperty path.
func arraySet(a *runtime.Object, i int, v runtime.Value) {
	a.DefineDataProperty(strconv.Itoa(i), v, true, true, true)
	if i >= arrayLength(a) {
		arraySetLength(a, i+1)
	}
}

func arrayGet(a *runtime.Object, i int) (runtime.Value, *runtime.Exception) {
	return a.Get(strconv.Itoa(i))
}

func arrayDelete(a *runtime.Object, i int) {
	_, _ = a.Delete(strconv.Itoa(i), false)
}

// NewArray, ArraySet, ArrayGet and ArrayLength re-export the package's own
// array index/length helpers for internal/interp, which needs to build
// Array objects for array literals and for Function.prototype.apply-style
// argument unpacking without duplicating the length-maintenance logic here.
func NewArray(prototype *runtime.Object) *runtime.Object { return newArray(prototype) }
func ArraySet(a *runtime.Object, i int, v runtime.Value)  { arraySet(a, i, v) }
func ArrayGet(a *runtime.Object, i int) (runtime.Value, *runtime.Exception) {
	return arrayGet(a, i)
}
func ArrayLength(a *runtime.Object) int { return arrayLength(a) }

// installArray wires Array/Array.prototype (ES5.1 §15.4).
func (in *Intrinsics) installArray() {
	proto := in.ArrayPrototype
	ctor := in.ArrayCtor

	ctor.FunctionName = "Array"
	ctor.DefineDataProperty("prototype", proto, false, false, false)
	ctor.DefineDataProperty("length", runtime.Num(1), false, false, false)
	proto.DefineDataProperty("constructor", ctor, true, false, true)

	build := func(args []runtime.Value) (runtime.Value, *runtime.Exception) {
		result := newArray(proto)
		if len(args) == 1 {
			if n, ok := args[0].(runtime.NumberValue); ok {
				f := float64(n)
				if f < 0 || f != float64(uint32(f)) {
					return nil, runtime.NewRangeError("invalid array length")
				}
				arraySetLength(result, int(f))
				return result, nil
			}
		}
		for i, v := range args {
			arraySet(result, i, v)
		}
		return result, nil
	}
	ctor.Call = func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) { return build(args) }
	ctor.Construct = func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) { return build(args) }

	method(ctor, "isArray", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, ok := Arg(args, 0).(*runtime.Object)
		return runtime.Bool(ok && obj.Class == "Array"), nil
	})

	method(proto, "toString", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, exc := requireThisObject(this, "Array.prototype.toString")
		if exc != nil {
			return nil, exc
		}
		return arrayJoin(obj, ",")
	})
	method(proto, "join", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, exc := requireThisObject(this, "Array.prototype.join")
		if exc != nil {
			return nil, exc
		}
		sep := ","
		if Arg(args, 0) != runtime.Undefined {
			s, exc := ArgString(args, 0)
			if exc != nil {
				return nil, exc
			}
			sep = s
		}
		return arrayJoin(obj, sep)
	})
	method(proto, "push", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, exc := requireThisObject(this, "Array.prototype.push")
		if exc != nil {
			return nil, exc
		}
		n := arrayLength(obj)
		for _, v := range args {
			arraySet(obj, n, v)
			n++
		}
		return runtime.Num(float64(n)), nil
	})
	method(proto, "pop", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, exc := requireThisObject(this, "Array.prototype.pop")
		if exc != nil {
			return nil, exc
		}
		n := arrayLength(obj)
		if n == 0 {
			return runtime.Undefined, nil
		}
		v, exc := arrayGet(obj, n-1)
		if exc != nil {
			return nil, exc
		}
		arrayDelete(obj, n-1)
		arraySetLength(obj, n-1)
		return v, nil
	})
	method(proto, "shift", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, exc := requireThisObject(this, "Array.prototype.shift")
		if exc != nil {
			return nil, exc
		}
		n := arrayLength(obj)
		if n == 0 {
			return runtime.Undefined, nil
		}
		first, exc := arrayGet(obj, 0)
		if exc != nil {
			return nil, exc
		}
		for i := 1; i < n; i++ {
			v, exc := arrayGet(obj, i)
			if exc != nil {
				return nil, exc
			}
			arraySet(obj, i-1, v)
		}
		arrayDelete(obj, n-1)
		arraySetLength(obj, n-1)
		return first, nil
	})
	method(proto, "unshift", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, exc := requireThisObject(this, "Array.prototype.unshift")
		if exc != nil {
			return nil, exc
		}
		n := arrayLength(obj)
		k := len(args)
		for i := n - 1; i >= 0; i-- {
			v, exc := arrayGet(obj, i)
			if exc != nil {
				return nil, exc
			}
			arraySet(obj, i+k, v)
		}
		for i, v := range args {
			arraySet(obj, i, v)
		}
		arraySetLength(obj, n+k)
		return runtime.Num(float64(n + k)), nil
	})
	method(proto, "slice", 2, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, exc := requireThisObject(this, "Array.prototype.slice")
		if exc != nil {
			return nil, exc
		}
		n := arrayLength(obj)
		start, end, exc := sliceBounds(args, n)
		if exc != nil {
			return nil, exc
		}
		result := newArray(proto)
		idx := 0
		for i := start; i < end; i++ {
			v, exc := arrayGet(obj, i)
			if exc != nil {
				return nil, exc
			}
			arraySet(result, idx, v)
			idx++
		}
		return result, nil
	})
	method(proto, "splice", 2, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, exc := requireThisObject(this, "Array.prototype.splice")
		if exc != nil {
			return nil, exc
		}
		n := arrayLength(obj)
		startArg, exc := ArgNumber(args, 0)
		if exc != nil {
			return nil, exc
		}
		start := normalizeIndex(int(runtime.ToIntegerNumber(startArg)), n)
		deleteCount := n - start
		if len(args) >= 2 {
			dc, exc := ArgNumber(args, 1)
			if exc != nil {
				return nil, exc
			}
			deleteCount = clampInt(int(dc), 0, n-start)
		}
		items := []runtime.Value{}
		if len(args) > 2 {
			items = args[2:]
		}

		removed := newArray(proto)
		for i := 0; i < deleteCount; i++ {
			v, exc := arrayGet(obj, start+i)
			if exc != nil {
				return nil, exc
			}
			arraySet(removed, i, v)
		}

		tail := make([]runtime.Value, 0, n-start-deleteCount)
		for i := start + deleteCount; i < n; i++ {
			v, exc := arrayGet(obj, i)
			if exc != nil {
				return nil, exc
			}
			tail = append(tail, v)
		}

		idx := start
		for _, v := range items {
			arraySet(obj, idx, v)
			idx++
		}
		for _, v := range tail {
			arraySet(obj, idx, v)
			idx++
		}
		newLen := idx
		for i := newLen; i < n; i++ {
			arrayDelete(obj, i)
		}
		arraySetLength(obj, newLen)
		return removed, nil
	})
	method(proto, "concat", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, exc := requireThisObject(this, "Array.prototype.concat")
		if exc != nil {
			return nil, exc
		}
		result := newArray(proto)
		idx := 0
		appendOne := func(v runtime.Value) *runtime.Exception {
			if other, ok := v.(*runtime.Object); ok && other.Class == "Array" {
				n := arrayLength(other)
				for i := 0; i < n; i++ {
					ev, exc := arrayGet(other, i)
					if exc != nil {
						return exc
					}
					arraySet(result, idx, ev)
					idx++
				}
				return nil
			}
			arraySet(result, idx, v)
			idx++
			return nil
		}
		if exc := appendOne(obj); exc != nil {
			return nil, exc
		}
		for _, a := range args {
			if exc := appendOne(a); exc != nil {
				return nil, exc
			}
		}
		return result, nil
	})
	method(proto, "reverse", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, exc := requireThisObject(this, "Array.prototype.reverse")
		if exc != nil {
			return nil, exc
		}
		n := arrayLength(obj)
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			vi, exc := arrayGet(obj, i)
			if exc != nil {
				return nil, exc
			}
			vj, exc := arrayGet(obj, j)
			if exc != nil {
				return nil, exc
			}
			arraySet(obj, i, vj)
			arraySet(obj, j, vi)
		}
		return obj, nil
	})
	method(proto, "indexOf", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, exc := requireThisObject(this, "Array.prototype.indexOf")
		if exc != nil {
			return nil, exc
		}
		target := Arg(args, 0)
		n := arrayLength(obj)
		start := 0
		if len(args) > 1 {
			f, exc := ArgNumber(args, 1)
			if exc != nil {
				return nil, exc
			}
			start = normalizeIndex(int(f), n)
		}
		for i := start; i < n; i++ {
			v, exc := arrayGet(obj, i)
			if exc != nil {
				return nil, exc
			}
			if runtime.StrictEquals(v, target) {
				return runtime.Num(float64(i)), nil
			}
		}
		return runtime.Num(-1), nil
	})
	method(proto, "lastIndexOf", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, exc := requireThisObject(this, "Array.prototype.lastIndexOf")
		if exc != nil {
			return nil, exc
		}
		target := Arg(args, 0)
		n := arrayLength(obj)
		for i := n - 1; i >= 0; i-- {
			v, exc := arrayGet(obj, i)
			if exc != nil {
				return nil, exc
			}
			if runtime.StrictEquals(v, target) {
				return runtime.Num(float64(i)), nil
			}
		}
		return runtime.Num(-1), nil
	})

	iterate := func(name string, fn func(obj *runtime.Object, n int, callback *runtime.Object, thisArg runtime.Value) (runtime.Value, *runtime.Exception)) {
		method(proto, name, 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
			obj, exc := requireThisObject(this, "Array.prototype."+name)
			if exc != nil {
				return nil, exc
			}
			callback, ok := Arg(args, 0).(*runtime.Object)
			if !ok || !callback.IsCallable() {
				return nil, runtime.NewTypeError(name + " callback is not a function")
			}
			n := arrayLength(obj)
			return fn(obj, n, callback, Arg(args, 1))
		})
	}
	iterate("forEach", func(obj *runtime.Object, n int, callback *runtime.Object, thisArg runtime.Value) (runtime.Value, *runtime.Exception) {
		for i := 0; i < n; i++ {
			v, exc := arrayGet(obj, i)
			if exc != nil {
				return nil, exc
			}
			if _, exc := callback.Call(thisArg, []runtime.Value{v, runtime.Num(float64(i)), obj}); exc != nil {
				return nil, exc
			}
		}
		return runtime.Undefined, nil
	})
	iterate("map", func(obj *runtime.Object, n int, callback *runtime.Object, thisArg runtime.Value) (runtime.Value, *runtime.Exception) {
		result := newArray(proto)
		for i := 0; i < n; i++ {
			v, exc := arrayGet(obj, i)
			if exc != nil {
				return nil, exc
			}
			r, exc := callback.Call(thisArg, []runtime.Value{v, runtime.Num(float64(i)), obj})
			if exc != nil {
				return nil, exc
			}
			arraySet(result, i, r)
		}
		return result, nil
	})
	iterate("filter", func(obj *runtime.Object, n int, callback *runtime.Object, thisArg runtime.Value) (runtime.Value, *runtime.Exception) {
		result := newArray(proto)
		idx := 0
		for i := 0; i < n; i++ {
			v, exc := arrayGet(obj, i)
			if exc != nil {
				return nil, exc
			}
			r, exc := callback.Call(thisArg, []runtime.Value{v, runtime.Num(float64(i)), obj})
			if exc != nil {
				return nil, exc
			}
			if runtime.ToBoolean(r) {
				arraySet(result, idx, v)
				idx++
			}
		}
		return result, nil
	})
	iterate("every", func(obj *runtime.Object, n int, callback *runtime.Object, thisArg runtime.Value) (runtime.Value, *runtime.Exception) {
		for i := 0; i < n; i++ {
			v, exc := arrayGet(obj, i)
			if exc != nil {
				return nil, exc
			}
			r, exc := callback.Call(thisArg, []runtime.Value{v, runtime.Num(float64(i)), obj})
			if exc != nil {
				return nil, exc
			}
			if !runtime.ToBoolean(r) {
				return runtime.False, nil
			}
		}
		return runtime.True, nil
	})
	iterate("some", func(obj *runtime.Object, n int, callback *runtime.Object, thisArg runtime.Value) (runtime.Value, *runtime.Exception) {
		for i := 0; i < n; i++ {
			v, exc := arrayGet(obj, i)
			if exc != nil {
				return nil, exc
			}
			r, exc := callback.Call(thisArg, []runtime.Value{v, runtime.Num(float64(i)), obj})
			if exc != nil {
				return nil, exc
			}
			if runtime.ToBoolean(r) {
				return runtime.True, nil
			}
		}
		return runtime.False, nil
	})

	reduceImpl := func(name string, reverse bool) {
		method(proto, name, 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
			obj, exc := requireThisObject(this, "Array.prototype."+name)
			if exc != nil {
				return nil, exc
			}
			callback, ok := Arg(args, 0).(*runtime.Object)
			if !ok || !callback.IsCallable() {
				return nil, runtime.NewTypeError(name + " callback is not a function")
			}
			n := arrayLength(obj)
			indices := make([]int, n)
			for i := range indices {
				if reverse {
					indices[i] = n - 1 - i
				} else {
					indices[i] = i
				}
			}
			var acc runtime.Value
			start := 0
			if len(args) > 1 {
				acc = args[1]
			} else {
				if n == 0 {
					return nil, runtime.NewTypeError("reduce of empty array with no initial value")
				}
				v, exc := arrayGet(obj, indices[0])
				if exc != nil {
					return nil, exc
				}
				acc = v
				start = 1
			}
			for _, i := range indices[start:] {
				v, exc := arrayGet(obj, i)
				if exc != nil {
					return nil, exc
				}
				r, exc := callback.Call(runtime.Undefined, []runtime.Value{acc, v, runtime.Num(float64(i)), obj})
				if exc != nil {
					return nil, exc
				}
				acc = r
			}
			return acc, nil
		})
	}
	reduceImpl("reduce", false)
	reduceImpl("reduceRight", true)

	method(proto, "sort", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, exc := requireThisObject(this, "Array.prototype.sort")
		if exc != nil {
			return nil, exc
		}
		n := arrayLength(obj)
		values := make([]runtime.Value, n)
		for i := 0; i < n; i++ {
			v, exc := arrayGet(obj, i)
			if exc != nil {
				return nil, exc
			}
			values[i] = v
		}
		var compareErr *runtime.Exception
		compareFn, hasCompare := Arg(args, 0).(*runtime.Object)
		less := func(a, b runtime.Value) bool {
			if compareErr != nil {
				return false
			}
			if hasCompare && compareFn.IsCallable() {
				r, exc := compareFn.Call(runtime.Undefined, []runtime.Value{a, b})
				if exc != nil {
					compareErr = exc
					return false
				}
				return runtime.ToNumberPrimitive(r) < 0
			}
			as, _ := ToStringValue(a)
			bs, _ := ToStringValue(b)
			return as < bs
		}
		insertionSort(values, less)
		if compareErr != nil {
			return nil, compareErr
		}
		for i, v := range values {
			arraySet(obj, i, v)
		}
		return obj, nil
	})
}

func sliceBounds(args []runtime.Value, n int) (int, int, *runtime.Exception) {
	start := 0
	end := n
	if Arg(args, 0) != runtime.Undefined {
		f, exc := ArgNumber(args, 0)
		if exc != nil {
			return 0, 0, exc
		}
		start = normalizeIndex(int(runtime.ToIntegerNumber(f)), n)
	}
	if Arg(args, 1) != runtime.Undefined {
		f, exc := ArgNumber(args, 1)
		if exc != nil {
			return 0, 0, exc
		}
		end = normalizeIndex(int(runtime.ToIntegerNumber(f)), n)
	}
	if end < start {
		end = start
	}
	return start, end, nil
}

func arrayJoin(obj *runtime.Object, sep string) (runtime.Value, *runtime.Exception) {
	n := arrayLength(obj)
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		v, exc := arrayGet(obj, i)
		if exc != nil {
			return nil, exc
		}
		if v == runtime.Undefined || v == runtime.Null {
			parts[i] = ""
			continue
		}
		s, exc := ToStringValue(v)
		if exc != nil {
			return nil, exc
		}
		parts[i] = s
	}
	return runtime.Str(strings.Join(parts, sep)), nil
}

// insertionSort is a stable sort used by Array.prototype.sort; ES5.1 does
// not mandate stability, but production engines provide it, so an O(n^2)
// stable sort is preferred over Go's unstable sort.Slice.
func insertionSort(values []runtime.Value, less func(a, b runtime.Value) bool) {
	for i := 1; i < len(values); i++ {
		for j := i; j > 0 && less(values[j], values[j-1]); j-- {
			values[j], values[j-1] = values[j-1], values[j]
		}
	}
}
