package builtins

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/es5lang/es5/internal/runtime"
)

// installGlobal wires the global object's free functions (ES5.1 §15.1) and
// the host-injected console.log hook (spec.md §4.7's only I/O-adjacent
// builtin; everything else about console is out of scope).
func (in *Intrinsics) installGlobal(consoleLog func(args []string)) {
	g := in.GlobalObject

	value(g, "undefined", runtime.Undefined, false, false, false)
	value(g, "NaN", runtime.NaN, false, false, false)
	value(g, "Infinity", runtime.PositiveInfinity, false, false, false)

	value(g, "Object", in.ObjectCtor, true, false, true)
	value(g, "Function", in.FunctionCtor, true, false, true)
	value(g, "Array", in.ArrayCtor, true, false, true)
	value(g, "String", in.StringCtor, true, false, true)
	value(g, "Number", in.NumberCtor, true, false, true)
	value(g, "Boolean", in.BooleanCtor, true, false, true)
	value(g, "Error", in.ErrorCtor, true, false, true)
	value(g, "RegExp", in.RegExpCtor, true, false, true)
	value(g, "Date", in.DateCtor, true, false, true)
	for _, kind := range errorKinds {
		value(g, kind, in.NativeErrorCtors[kind], true, false, true)
	}
	value(g, "Math", in.MathObject, true, false, true)

	method(g, "parseInt", 2, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		s, exc := ArgString(args, 0)
		if exc != nil {
			return nil, exc
		}
		radix := 0
		if Arg(args, 1) != runtime.Undefined {
			f, exc := ArgNumber(args, 1)
			if exc != nil {
				return nil, exc
			}
			radix = int(runtime.ToInt32(f))
		}
		return runtime.Num(parseIntString(s, radix)), nil
	})
	method(g, "parseFloat", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		s, exc := ArgString(args, 0)
		if exc != nil {
			return nil, exc
		}
		return runtime.Num(parseFloatString(s)), nil
	})
	method(g, "isNaN", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		n, exc := ArgNumber(args, 0)
		if exc != nil {
			return nil, exc
		}
		return runtime.Bool(math.IsNaN(n)), nil
	})
	method(g, "isFinite", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		n, exc := ArgNumber(args, 0)
		if exc != nil {
			return nil, exc
		}
		return runtime.Bool(!math.IsNaN(n) && !math.IsInf(n, 0)), nil
	})

	uriMethod := func(name string, fn func(string) (string, error)) {
		method(g, name, 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
			s, exc := ArgString(args, 0)
			if exc != nil {
				return nil, exc
			}
			out, err := fn(s)
			if err != nil {
				return nil, runtime.NewURIError(name + ": " + err.Error())
			}
			return runtime.Str(out), nil
		})
	}
	uriMethod("encodeURI", func(s string) (string, error) { return url.PathEscape(s), nil })
	uriMethod("decodeURI", func(s string) (string, error) { return url.PathUnescape(s) })
	uriMethod("encodeURIComponent", func(s string) (string, error) { return url.QueryEscape(s), nil })
	uriMethod("decodeURIComponent", func(s string) (string, error) { return url.QueryUnescape(s) })

	console := runtime.NewObject(in.ObjectPrototype)
	method(console, "log", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		if consoleLog == nil {
			return runtime.Undefined, nil
		}
		out := make([]string, len(args))
		for i, a := range args {
			s, exc := ToStringValue(a)
			if exc != nil {
				return nil, exc
			}
			out[i] = s
		}
		consoleLog(out)
		return runtime.Undefined, nil
	})
	value(g, "console", console, true, false, true)
}

// parseIntString implements the global parseInt (ES5.1 §15.1.2.2): skip
// leading whitespace, optional sign, an optional "0x"/"0X" prefix that
// forces radix 16 when radix is 0 or unspecified, then the longest prefix
// of digits valid in the resulting radix.
func parseIntString(s string, radix int) float64 {
	s = strings.TrimLeft(s, "\t\n\v\f\r \u00a0\ufeff")
	neg := false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	stripPrefix := radix == 0 || radix == 16
	if stripPrefix && len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
		radix = 16
	}
	if radix == 0 {
		radix = 10
	}
	if radix < 2 || radix > 36 {
		return math.NaN()
	}
	end := 0
	for end < len(s) && digitValue(s[end]) < radix {
		end++
	}
	if end == 0 {
		return math.NaN()
	}
	n, err := strconv.ParseInt(s[:end], radix, 64)
	if err != nil {
		// Overflow beyond int64: fall back to float accumulation.
		f := 0.0
		for i := 0; i < end; i++ {
			f = f*float64(radix) + float64(digitValue(s[i]))
		}
		if neg {
			return -f
		}
		return f
	}
	if neg {
		return -float64(n)
	}
	return float64(n)
}

func digitValue(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'z':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'Z':
		return int(b-'A') + 10
	default:
		return 99
	}
}

// parseFloatString implements the global parseFloat (ES5.1 §15.1.2.3):
// longest leading prefix that parses as a decimal literal (with optional
// sign, Infinity keyword), NaN otherwise.
func parseFloatString(s string) float64 {
	s = strings.TrimLeft(s, "\t\n\v\f\r \u00a0\ufeff")
	sign := ""
	rest := s
	if len(rest) > 0 && (rest[0] == '+' || rest[0] == '-') {
		sign = string(rest[0])
		rest = rest[1:]
	}
	if strings.HasPrefix(rest, "Infinity") {
		if sign == "-" {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}
	i := 0
	sawDigit := false
	for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
		i++
		sawDigit = true
	}
	if i < len(rest) && rest[i] == '.' {
		i++
		for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
			i++
			sawDigit = true
		}
	}
	if !sawDigit {
		return math.NaN()
	}
	if i < len(rest) && (rest[i] == 'e' || rest[i] == 'E') {
		j := i + 1
		if j < len(rest) && (rest[j] == '+' || rest[j] == '-') {
			j++
		}
		k := j
		for k < len(rest) && rest[k] >= '0' && rest[k] <= '9' {
			k++
		}
		if k > j {
			i = k
		}
	}
	f, err := strconv.ParseFloat(sign+rest[:i], 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
