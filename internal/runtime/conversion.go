package runtime

import (
	"math"
	"strconv"
	"strings"
)

// ToBoolean implements ES5.1 §9.2: pure table lookup, no object coercion
// needed since it never inspects an Object's contents beyond "it's not
// undefined/null/false/0/NaN/''".
func ToBoolean(v Value) bool {
	switch val := v.(type) {
	case UndefinedValue:
		return false
	case NullValue:
		return false
	case BooleanValue:
		return bool(val)
	case NumberValue:
		f := float64(val)
		return f != 0 && !math.IsNaN(f)
	case StringValue:
		return len(val) > 0
	case *Object:
		return true
	default:
		return true
	}
}

// ToNumberPrimitive implements ES5.1 §9.3 for every value kind except
// Object: Object must first go through ToPrimitive(hint Number), which
// needs [[DefaultValue]] and is available directly as Object.DefaultValue,
// so callers do `prim, exc := obj.DefaultValue("Number"); n := ToNumberPrimitive(prim)`.
func ToNumberPrimitive(v Value) float64 {
	switch val := v.(type) {
	case UndefinedValue:
		return math.NaN()
	case NullValue:
		return 0
	case BooleanValue:
		if val {
			return 1
		}
		return 0
	case NumberValue:
		return float64(val)
	case StringValue:
		return stringToNumber(string(val))
	default:
		return math.NaN()
	}
}

// stringToNumber implements ES5.1 §9.3.1 StringToNumber: trim whitespace,
// accept "Infinity"/"-Infinity"/"+Infinity", hex (0x/0X) literals, decimal
// literals, and an empty/whitespace-only string as 0; anything else is NaN.
func stringToNumber(s string) float64 {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0
	}
	neg := false
	rest := trimmed
	switch {
	case strings.HasPrefix(rest, "+"):
		rest = rest[1:]
	case strings.HasPrefix(rest, "-"):
		neg = true
		rest = rest[1:]
	}
	if rest == "Infinity" {
		if neg {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}
	if strings.HasPrefix(rest, "0x") || strings.HasPrefix(rest, "0X") {
		n, err := strconv.ParseUint(rest[2:], 16, 64)
		if err != nil || rest == "0x" || rest == "0X" {
			return math.NaN()
		}
		if neg {
			return -float64(n)
		}
		return float64(n)
	}
	if strings.ContainsAny(rest, "iInN") {
		// ParseFloat accepts "inf"/"infinity"/"nan" spellings that are not
		// StrNumericLiterals; "Infinity" itself was handled above.
		return math.NaN()
	}
	f, err := strconv.ParseFloat(rest, 64)
	if err != nil {
		return math.NaN()
	}
	if neg {
		return -f
	}
	return f
}

// ToIntegerNumber implements ES5.1 §9.4 ToInteger on an already-computed
// Number (post-ToNumber): NaN becomes 0, infinities pass through unchanged,
// everything else truncates toward zero.
func ToIntegerNumber(n float64) float64 {
	if math.IsNaN(n) {
		return 0
	}
	if math.IsInf(n, 0) {
		return n
	}
	return math.Trunc(n)
}

// ToInt32 implements ES5.1 §9.5: reduce modulo 2^32 into the signed 32-bit
// range.
func ToInt32(n float64) int32 {
	if math.IsNaN(n) || math.IsInf(n, 0) || n == 0 {
		return 0
	}
	posInt := math.Trunc(n)
	mod := math.Mod(posInt, 4294967296)
	if mod < 0 {
		mod += 4294967296
	}
	if mod >= 2147483648 {
		return int32(mod - 4294967296)
	}
	return int32(mod)
}

// ToUint32 implements ES5.1 §9.6: reduce modulo 2^32 into the unsigned
// 32-bit range.
func ToUint32(n float64) uint32 {
	if math.IsNaN(n) || math.IsInf(n, 0) || n == 0 {
		return 0
	}
	posInt := math.Trunc(n)
	mod := math.Mod(posInt, 4294967296)
	if mod < 0 {
		mod += 4294967296
	}
	return uint32(mod)
}

// ToUint16 implements ES5.1 §9.7: reduce modulo 2^16.
func ToUint16(n float64) uint16 {
	if math.IsNaN(n) || math.IsInf(n, 0) || n == 0 {
		return 0
	}
	posInt := math.Trunc(n)
	mod := math.Mod(posInt, 65536)
	if mod < 0 {
		mod += 65536
	}
	return uint16(mod)
}

// SameValue implements the ES5.1 §9.12 SameValue algorithm used by
// Object.is-equivalents and property-descriptor comparison: unlike
// StrictEquals, NaN equals NaN and +0 does not equal -0.
func SameValue(a, b Value) bool {
	if a.Type() != b.Type() {
		return false
	}
	switch x := a.(type) {
	case UndefinedValue, NullValue:
		return a == b
	case BooleanValue:
		return x == b.(BooleanValue)
	case StringValue:
		return x == b.(StringValue)
	case NumberValue:
		y := b.(NumberValue)
		xf, yf := float64(x), float64(y)
		if math.IsNaN(xf) && math.IsNaN(yf) {
			return true
		}
		if xf == 0 && yf == 0 {
			return math.Signbit(xf) == math.Signbit(yf)
		}
		return xf == yf
	case *Object:
		y, ok := b.(*Object)
		return ok && x == y
	default:
		return false
	}
}

// StrictEquals implements the ES5.1 §11.9.6 Strict Equality Comparison
// Algorithm (the `===` operator), including the type-mismatch-is-false
// case. Null and non-callable Objects share the Type() "object", so the
// Null and Object cases also compare the concrete Go types.
func StrictEquals(a, b Value) bool {
	if a.Type() != b.Type() {
		return false
	}
	switch x := a.(type) {
	case UndefinedValue, NullValue:
		return a == b
	case BooleanValue:
		return x == b.(BooleanValue)
	case StringValue:
		return x == b.(StringValue)
	case NumberValue:
		y := b.(NumberValue)
		return float64(x) == float64(y)
	case *Object:
		y, ok := b.(*Object)
		return ok && x == y
	default:
		return false
	}
}
