package builtins

import (
	"strconv"
	"strings"

	"github.com/es5lang/es5/internal/runtime"
)

// installNumber wires Number/Number.prototype (ES5.1 §15.7).
func (in *Intrinsics) installNumber() {
	proto := in.NumberPrototype
	ctor := in.NumberCtor

	ctor.FunctionName = "Number"
	ctor.DefineDataProperty("prototype", proto, false, false, false)
	ctor.DefineDataProperty("length", runtime.Num(1), false, false, false)
	proto.DefineDataProperty("constructor", ctor, true, false, true)

	value(ctor, "MAX_VALUE", runtime.Num(1.7976931348623157e+308), false, false, false)
	value(ctor, "MIN_VALUE", runtime.Num(5e-324), false, false, false)
	value(ctor, "NaN", runtime.NaN, false, false, false)
	value(ctor, "NEGATIVE_INFINITY", runtime.NegativeInfinity, false, false, false)
	value(ctor, "POSITIVE_INFINITY", runtime.PositiveInfinity, false, false, false)

	ctor.Call = func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		if len(args) == 0 {
			return runtime.Num(0), nil
		}
		n, exc := ToNumberValue(args[0])
		if exc != nil {
			return nil, exc
		}
		return runtime.Num(n), nil
	}
	ctor.Construct = func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		n := 0.0
		if len(args) > 0 {
			var exc *runtime.Exception
			n, exc = ToNumberValue(args[0])
			if exc != nil {
				return nil, exc
			}
		}
		o := runtime.NewObjectWithClass(proto, "Number")
		o.PrimitiveValue = runtime.Num(n)
		return o, nil
	}

	thisNumber := func(this runtime.Value, what string) (float64, *runtime.Exception) {
		switch v := this.(type) {
		case runtime.NumberValue:
			return float64(v), nil
		case *runtime.Object:
			if v.Class == "Number" {
				if n, ok := v.PrimitiveValue.(runtime.NumberValue); ok {
					return float64(n), nil
				}
			}
			return 0, runtime.NewTypeError(what + " called on incompatible receiver")
		default:
			return 0, runtime.NewTypeError(what + " called on incompatible receiver")
		}
	}

	method(proto, "valueOf", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		n, exc := thisNumber(this, "Number.prototype.valueOf")
		if exc != nil {
			return nil, exc
		}
		return runtime.Num(n), nil
	})
	method(proto, "toString", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		n, exc := thisNumber(this, "Number.prototype.toString")
		if exc != nil {
			return nil, exc
		}
		radix := 10
		if Arg(args, 0) != runtime.Undefined {
			f, exc := ArgNumber(args, 0)
			if exc != nil {
				return nil, exc
			}
			radix = int(f)
		}
		if radix == 10 {
			return runtime.Str(runtime.NumberToString(n)), nil
		}
		if radix < 2 || radix > 36 {
			return nil, runtime.NewRangeError("toString radix must be between 2 and 36")
		}
		return runtime.Str(numberToStringRadix(n, radix)), nil
	})
	method(proto, "toLocaleString", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		n, exc := thisNumber(this, "Number.prototype.toLocaleString")
		if exc != nil {
			return nil, exc
		}
		return runtime.Str(runtime.NumberToString(n)), nil
	})
	method(proto, "toFixed", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		n, exc := thisNumber(this, "Number.prototype.toFixed")
		if exc != nil {
			return nil, exc
		}
		digits := 0
		if Arg(args, 0) != runtime.Undefined {
			f, exc := ArgNumber(args, 0)
			if exc != nil {
				return nil, exc
			}
			digits = int(f)
		}
		if digits < 0 || digits > 20 {
			return nil, runtime.NewRangeError("toFixed digits must be between 0 and 20")
		}
		if n != n {
			return runtime.Str("NaN"), nil
		}
		return runtime.Str(formatFloat(n, digits)), nil
	})
	method(proto, "toPrecision", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		n, exc := thisNumber(this, "Number.prototype.toPrecision")
		if exc != nil {
			return nil, exc
		}
		if Arg(args, 0) == runtime.Undefined {
			return runtime.Str(runtime.NumberToString(n)), nil
		}
		f, exc := ArgNumber(args, 0)
		if exc != nil {
			return nil, exc
		}
		prec := int(f)
		if prec < 1 || prec > 21 {
			return nil, runtime.NewRangeError("toPrecision argument must be between 1 and 21")
		}
		return runtime.Str(strconv.FormatFloat(n, 'g', prec, 64)), nil
	})
	method(proto, "toExponential", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		n, exc := thisNumber(this, "Number.prototype.toExponential")
		if exc != nil {
			return nil, exc
		}
		digits := 6
		if Arg(args, 0) != runtime.Undefined {
			f, exc := ArgNumber(args, 0)
			if exc != nil {
				return nil, exc
			}
			digits = int(f)
		}
		s := strconv.FormatFloat(n, 'e', digits, 64)
		return runtime.Str(fixExponentDigits(s)), nil
	})
}

// numberToStringRadix implements ToString(n, radix) for radix != 10
// (ES5.1 §15.7.4.2's "An implementation-dependent algorithm" escape
// hatch), covering the integer and fractional parts separately.
func numberToStringRadix(n float64, radix int) string {
	if n != n {
		return "NaN"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	intPart := int64(n)
	frac := n - float64(intPart)
	s := strconv.FormatInt(intPart, radix)
	if frac > 0 {
		var sb strings.Builder
		sb.WriteString(s)
		sb.WriteByte('.')
		for i := 0; i < 20 && frac > 0; i++ {
			frac *= float64(radix)
			digit := int(frac)
			sb.WriteByte("0123456789abcdefghijklmnopqrstuvwxyz"[digit])
			frac -= float64(digit)
		}
		s = sb.String()
	}
	if neg {
		s = "-" + s
	}
	return s
}

func fixExponentDigits(s string) string {
	idx := strings.IndexAny(s, "eE")
	if idx < 0 {
		return s
	}
	mantissa, exp := s[:idx], s[idx+1:]
	sign := "+"
	if len(exp) > 0 && (exp[0] == '+' || exp[0] == '-') {
		if exp[0] == '-' {
			sign = "-"
		}
		exp = exp[1:]
	}
	exp = strings.TrimLeft(exp, "0")
	if exp == "" {
		exp = "0"
	}
	return mantissa + "e" + sign + exp
}
