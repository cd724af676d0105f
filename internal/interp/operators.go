package interp

import (
	"math"

	"github.com/es5lang/es5/internal/builtins"
	"github.com/es5lang/es5/internal/runtime"
)

// evalBinaryOp dispatches a BinaryExpression's operator to the matching
// ES5.1 §11.5-§11.10 abstract algorithm. Both operands have already been
// reduced to plain Values (GetValue already applied) by the caller.
func (interp *Interpreter) evalBinaryOp(op string, left, right runtime.Value) (runtime.Value, *runtime.Exception) {
	switch op {
	case "+":
		return addOperator(left, right)
	case "-":
		return numericOp(left, right, func(a, b float64) float64 { return a - b })
	case "*":
		return numericOp(left, right, func(a, b float64) float64 { return a * b })
	case "/":
		return numericOp(left, right, func(a, b float64) float64 { return a / b })
	case "%":
		return numericOp(left, right, math.Mod)
	case "<":
		return relationalOp(left, right, true)
	case ">":
		return relationalOpSwapped(left, right, true)
	case "<=":
		return relationalOpSwapped(left, right, false)
	case ">=":
		return relationalOp(left, right, false)
	case "==":
		eq, exc := abstractEquals(left, right)
		return runtime.Bool(eq), exc
	case "!=":
		eq, exc := abstractEquals(left, right)
		return runtime.Bool(!eq), exc
	case "===":
		return runtime.Bool(strictEqualsTyped(left, right)), nil
	case "!==":
		return runtime.Bool(!strictEqualsTyped(left, right)), nil
	case "&":
		return int32Op(left, right, func(a, b int32) int32 { return a & b })
	case "|":
		return int32Op(left, right, func(a, b int32) int32 { return a | b })
	case "^":
		return int32Op(left, right, func(a, b int32) int32 { return a ^ b })
	case "<<":
		return shiftOp(left, right, func(a int32, s uint) int32 { return a << s })
	case ">>":
		return shiftOp(left, right, func(a int32, s uint) int32 { return a >> s })
	case ">>>":
		n, exc := builtins.ToNumberValue(left)
		if exc != nil {
			return nil, exc
		}
		s, exc := builtins.ToNumberValue(right)
		if exc != nil {
			return nil, exc
		}
		shift := uint(runtime.ToUint32(s)) & 31
		return runtime.Num(float64(runtime.ToUint32(n) >> shift)), nil
	case "instanceof":
		return instanceOfOperator(left, right)
	case "in":
		return inOperator(left, right)
	default:
		return nil, runtime.NewTypeError("unsupported binary operator " + op)
	}
}

// addOperator implements ES5.1 §11.6.1: ToPrimitive both operands with no
// hint, then string-concatenate if either primitive is a string, else
// numeric add.
func addOperator(left, right runtime.Value) (runtime.Value, *runtime.Exception) {
	lp, exc := toPrimitiveNoHint(left)
	if exc != nil {
		return nil, exc
	}
	rp, exc := toPrimitiveNoHint(right)
	if exc != nil {
		return nil, exc
	}
	_, lIsStr := lp.(runtime.StringValue)
	_, rIsStr := rp.(runtime.StringValue)
	if lIsStr || rIsStr {
		ls, exc := builtins.ToStringValue(lp)
		if exc != nil {
			return nil, exc
		}
		rs, exc := builtins.ToStringValue(rp)
		if exc != nil {
			return nil, exc
		}
		return runtime.Str(ls + rs), nil
	}
	ln := runtime.ToNumberPrimitive(lp)
	rn := runtime.ToNumberPrimitive(rp)
	return runtime.Num(ln + rn), nil
}

// toPrimitiveNoHint implements ES5.1 §9.1 ToPrimitive with no hint (treated
// as hint Number, except Date — which this implementation doesn't special
// case, matching ES5.1's own "unless it is a Date object" being the only
// exception and this interpreter choosing not to special-case Date's
// default hint since spec.md never requires `date + ""`-style coercion).
func toPrimitiveNoHint(v runtime.Value) (runtime.Value, *runtime.Exception) {
	obj, ok := v.(*runtime.Object)
	if !ok {
		return v, nil
	}
	return obj.DefaultValue("Number")
}

func numericOp(left, right runtime.Value, fn func(a, b float64) float64) (runtime.Value, *runtime.Exception) {
	ln, exc := builtins.ToNumberValue(left)
	if exc != nil {
		return nil, exc
	}
	rn, exc := builtins.ToNumberValue(right)
	if exc != nil {
		return nil, exc
	}
	return runtime.Num(fn(ln, rn)), nil
}

func int32Op(left, right runtime.Value, fn func(a, b int32) int32) (runtime.Value, *runtime.Exception) {
	ln, exc := builtins.ToNumberValue(left)
	if exc != nil {
		return nil, exc
	}
	rn, exc := builtins.ToNumberValue(right)
	if exc != nil {
		return nil, exc
	}
	return runtime.Num(float64(fn(runtime.ToInt32(ln), runtime.ToInt32(rn)))), nil
}

func shiftOp(left, right runtime.Value, fn func(a int32, s uint) int32) (runtime.Value, *runtime.Exception) {
	ln, exc := builtins.ToNumberValue(left)
	if exc != nil {
		return nil, exc
	}
	rn, exc := builtins.ToNumberValue(right)
	if exc != nil {
		return nil, exc
	}
	shift := uint(runtime.ToUint32(rn)) & 31
	return runtime.Num(float64(fn(runtime.ToInt32(ln), shift))), nil
}

// relationalOp implements `<` (wantLess=true) and `>=` (wantLess=false,
// negated) via the shared Abstract Relational Comparison (ES5.1 §11.8.5).
func relationalOp(left, right runtime.Value, wantLess bool) (runtime.Value, *runtime.Exception) {
	result, exc := abstractLessThan(left, right)
	if exc != nil {
		return nil, exc
	}
	if result == nil {
		return runtime.False, nil
	}
	if wantLess {
		return runtime.Bool(*result), nil
	}
	return runtime.Bool(!*result), nil
}

// relationalOpSwapped implements `>` and `<=`, which ES5.1 defines by
// evaluating the Abstract Relational Comparison with operands swapped.
func relationalOpSwapped(left, right runtime.Value, wantGreater bool) (runtime.Value, *runtime.Exception) {
	result, exc := abstractLessThan(right, left)
	if exc != nil {
		return nil, exc
	}
	if result == nil {
		return runtime.False, nil
	}
	if wantGreater {
		return runtime.Bool(*result), nil
	}
	return runtime.Bool(!*result), nil
}

// abstractLessThan implements ES5.1 §11.8.5: nil result means "undefined"
// (at least one operand was NaN), per the spec's three-valued logic.
func abstractLessThan(left, right runtime.Value) (*bool, *runtime.Exception) {
	lp, exc := toPrimitiveNoHint(left)
	if exc != nil {
		return nil, exc
	}
	rp, exc := toPrimitiveNoHint(right)
	if exc != nil {
		return nil, exc
	}
	ls, lIsStr := lp.(runtime.StringValue)
	rs, rIsStr := rp.(runtime.StringValue)
	if lIsStr && rIsStr {
		result := string(ls) < string(rs)
		return &result, nil
	}
	ln := runtime.ToNumberPrimitive(lp)
	rn := runtime.ToNumberPrimitive(rp)
	if math.IsNaN(ln) || math.IsNaN(rn) {
		return nil, nil
	}
	result := ln < rn
	return &result, nil
}

// strictEqualsTyped implements `===`: a Type() mismatch is false, otherwise
// runtime.StrictEquals (which repeats the same Type() check) decides.
func strictEqualsTyped(a, b runtime.Value) bool {
	if a.Type() != b.Type() {
		return false
	}
	return runtime.StrictEquals(a, b)
}

// abstractEquals implements the ES5.1 §11.9.3 Abstract Equality Comparison
// Algorithm (the `==` operator)'s cross-type coercion rules, falling back
// to strict equality when both operands share a type.
func abstractEquals(a, b runtime.Value) (bool, *runtime.Exception) {
	if a.Type() == b.Type() {
		return runtime.StrictEquals(a, b), nil
	}
	_, aUndef := a.(runtime.UndefinedValue)
	_, aNull := a.(runtime.NullValue)
	_, bUndef := b.(runtime.UndefinedValue)
	_, bNull := b.(runtime.NullValue)
	if (aUndef || aNull) && (bUndef || bNull) {
		return true, nil
	}
	if aUndef || aNull || bUndef || bNull {
		return false, nil
	}

	an, aIsNum := a.(runtime.NumberValue)
	_ = an
	bn, bIsNum := b.(runtime.NumberValue)
	_ = bn
	if aIsNum {
		if _, ok := b.(runtime.StringValue); ok {
			bf, exc := builtins.ToNumberValue(b)
			if exc != nil {
				return false, exc
			}
			return float64(a.(runtime.NumberValue)) == bf, nil
		}
	}
	if bIsNum {
		if _, ok := a.(runtime.StringValue); ok {
			af, exc := builtins.ToNumberValue(a)
			if exc != nil {
				return false, exc
			}
			return af == float64(b.(runtime.NumberValue)), nil
		}
	}
	if _, ok := a.(runtime.BooleanValue); ok {
		af, exc := builtins.ToNumberValue(a)
		if exc != nil {
			return false, exc
		}
		return abstractEquals(runtime.Num(af), b)
	}
	if _, ok := b.(runtime.BooleanValue); ok {
		bf, exc := builtins.ToNumberValue(b)
		if exc != nil {
			return false, exc
		}
		return abstractEquals(a, runtime.Num(bf))
	}

	aObj, aIsObj := a.(*runtime.Object)
	bObj, bIsObj := b.(*runtime.Object)
	isPrimitive := func(v runtime.Value) bool {
		switch v.(type) {
		case runtime.NumberValue, runtime.StringValue:
			return true
		default:
			return false
		}
	}
	if aIsObj && isPrimitive(b) {
		prim, exc := aObj.DefaultValue("")
		if exc != nil {
			return false, exc
		}
		return abstractEquals(prim, b)
	}
	if bIsObj && isPrimitive(a) {
		prim, exc := bObj.DefaultValue("")
		if exc != nil {
			return false, exc
		}
		return abstractEquals(a, prim)
	}
	return false, nil
}

// instanceOfOperator implements ES5.1 §11.8.6: right must be callable, then
// walk left's prototype chain looking for right's "prototype" property.
func instanceOfOperator(left, right runtime.Value) (runtime.Value, *runtime.Exception) {
	ctor, ok := right.(*runtime.Object)
	if !ok || !ctor.IsCallable() {
		return nil, runtime.NewTypeError("right-hand side of instanceof is not callable")
	}
	leftObj, ok := left.(*runtime.Object)
	if !ok {
		return runtime.False, nil
	}
	protoVal, exc := ctor.Get("prototype")
	if exc != nil {
		return nil, exc
	}
	proto, ok := protoVal.(*runtime.Object)
	if !ok {
		return nil, runtime.NewTypeError("prototype is not an object")
	}
	for cur := leftObj.Prototype; cur != nil; cur = cur.Prototype {
		if cur == proto {
			return runtime.True, nil
		}
	}
	return runtime.False, nil
}

// inOperator implements ES5.1 §11.8.7.
func inOperator(left, right runtime.Value) (runtime.Value, *runtime.Exception) {
	obj, ok := right.(*runtime.Object)
	if !ok {
		return nil, runtime.NewTypeError("cannot use 'in' operator on a non-object")
	}
	name, exc := builtins.ToStringValue(left)
	if exc != nil {
		return nil, exc
	}
	return runtime.Bool(obj.HasProperty(name)), nil
}
