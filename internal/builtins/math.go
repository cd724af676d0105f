package builtins

import (
	"math"

	"github.com/es5lang/es5/internal/runtime"
)

// installMath wires the Math object (ES5.1 §15.8).
func (in *Intrinsics) installMath() {
	m := in.MathObject

	value(m, "E", runtime.Num(math.E), false, false, false)
	value(m, "LN10", runtime.Num(math.Ln10), false, false, false)
	value(m, "LN2", runtime.Num(math.Ln2), false, false, false)
	value(m, "LOG2E", runtime.Num(1/math.Ln2), false, false, false)
	value(m, "LOG10E", runtime.Num(1/math.Ln10), false, false, false)
	value(m, "PI", runtime.Num(math.Pi), false, false, false)
	value(m, "SQRT1_2", runtime.Num(math.Sqrt(0.5)), false, false, false)
	value(m, "SQRT2", runtime.Num(math.Sqrt2), false, false, false)

	unary := func(name string, fn func(float64) float64) {
		method(m, name, 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
			n, exc := ArgNumber(args, 0)
			if exc != nil {
				return nil, exc
			}
			return runtime.Num(fn(n)), nil
		})
	}
	unary("abs", math.Abs)
	unary("acos", math.Acos)
	unary("asin", math.Asin)
	unary("atan", math.Atan)
	unary("ceil", math.Ceil)
	unary("cos", math.Cos)
	unary("exp", math.Exp)
	unary("floor", math.Floor)
	unary("log", math.Log)
	unary("sin", math.Sin)
	unary("sqrt", math.Sqrt)
	unary("tan", math.Tan)
	unary("round", func(n float64) float64 {
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return n
		}
		return math.Floor(n + 0.5)
	})

	method(m, "atan2", 2, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		y, exc := ArgNumber(args, 0)
		if exc != nil {
			return nil, exc
		}
		x, exc := ArgNumber(args, 1)
		if exc != nil {
			return nil, exc
		}
		return runtime.Num(math.Atan2(y, x)), nil
	})
	method(m, "pow", 2, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		x, exc := ArgNumber(args, 0)
		if exc != nil {
			return nil, exc
		}
		y, exc := ArgNumber(args, 1)
		if exc != nil {
			return nil, exc
		}
		return runtime.Num(math.Pow(x, y)), nil
	})
	method(m, "max", 2, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		if len(args) == 0 {
			return runtime.NegativeInfinity, nil
		}
		best := math.Inf(-1)
		for _, a := range args {
			n, exc := ToNumberValue(a)
			if exc != nil {
				return nil, exc
			}
			if math.IsNaN(n) {
				return runtime.NaN, nil
			}
			if n > best {
				best = n
			}
		}
		return runtime.Num(best), nil
	})
	method(m, "min", 2, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		if len(args) == 0 {
			return runtime.PositiveInfinity, nil
		}
		best := math.Inf(1)
		for _, a := range args {
			n, exc := ToNumberValue(a)
			if exc != nil {
				return nil, exc
			}
			if math.IsNaN(n) {
				return runtime.NaN, nil
			}
			if n < best {
				best = n
			}
		}
		return runtime.Num(best), nil
	})
	method(m, "random", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		return runtime.Num(in.randomFloat()), nil
	})
}
