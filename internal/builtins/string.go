package builtins

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/es5lang/es5/internal/runtime"
)

// installString wires String/String.prototype (ES5.1 §15.5).
//
// Pattern-matching methods (match/search/replace/split-by-regexp) are
// implemented against Go's regexp (RE2) rather than a hand-rolled ES5.1
// regular-expression engine: RE2 lacks backreferences and lookahead, which
// ECMA-262's grammar allows. This is a documented divergence (see
// DESIGN.md) rather than a silent gap — scripts that rely on those
// constructs will get a SyntaxError ("unsupported regular expression")
// instead of a wrong result.
func (in *Intrinsics) installString() {
	proto := in.StringPrototype
	ctor := in.StringCtor

	ctor.FunctionName = "String"
	ctor.DefineDataProperty("prototype", proto, false, false, false)
	ctor.DefineDataProperty("length", runtime.Num(1), false, false, false)
	proto.DefineDataProperty("constructor", ctor, true, false, true)

	ctor.Call = func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		if len(args) == 0 {
			return runtime.Str(""), nil
		}
		s, exc := ToStringValue(args[0])
		if exc != nil {
			return nil, exc
		}
		return runtime.Str(s), nil
	}
	ctor.Construct = func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		s := ""
		if len(args) > 0 {
			var exc *runtime.Exception
			s, exc = ToStringValue(args[0])
			if exc != nil {
				return nil, exc
			}
		}
		o := runtime.NewObjectWithClass(proto, "String")
		o.PrimitiveValue = runtime.Str(s)
		o.DefineDataProperty("length", runtime.Num(float64(len([]rune(s)))), false, false, false)
		return o, nil
	}

	method(ctor, "fromCharCode", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		var sb strings.Builder
		for _, a := range args {
			n, exc := ToNumberValue(a)
			if exc != nil {
				return nil, exc
			}
			sb.WriteRune(rune(runtime.ToUint16(n)))
		}
		return runtime.Str(sb.String()), nil
	})

	thisString := func(this runtime.Value, what string) (string, *runtime.Exception) {
		switch v := this.(type) {
		case runtime.StringValue:
			return string(v), nil
		case *runtime.Object:
			if v.Class == "String" {
				if s, ok := v.PrimitiveValue.(runtime.StringValue); ok {
					return string(s), nil
				}
			}
			return ToStringValue(v)
		default:
			return ToStringValue(this)
		}
	}

	method(proto, "toString", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		s, exc := thisString(this, "String.prototype.toString")
		if exc != nil {
			return nil, exc
		}
		return runtime.Str(s), nil
	})
	method(proto, "valueOf", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		s, exc := thisString(this, "String.prototype.valueOf")
		if exc != nil {
			return nil, exc
		}
		return runtime.Str(s), nil
	})
	method(proto, "charAt", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		s, exc := thisString(this, "charAt")
		if exc != nil {
			return nil, exc
		}
		r := []rune(s)
		idx, exc := ArgNumber(args, 0)
		if exc != nil {
			return nil, exc
		}
		i := int(runtime.ToIntegerNumber(idx))
		if i < 0 || i >= len(r) {
			return runtime.Str(""), nil
		}
		return runtime.Str(string(r[i])), nil
	})
	method(proto, "charCodeAt", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		s, exc := thisString(this, "charCodeAt")
		if exc != nil {
			return nil, exc
		}
		r := []rune(s)
		idx, exc := ArgNumber(args, 0)
		if exc != nil {
			return nil, exc
		}
		i := int(runtime.ToIntegerNumber(idx))
		if i < 0 || i >= len(r) {
			return runtime.NaN, nil
		}
		return runtime.Num(float64(r[i])), nil
	})
	method(proto, "indexOf", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		s, exc := thisString(this, "indexOf")
		if exc != nil {
			return nil, exc
		}
		search, exc := ArgString(args, 0)
		if exc != nil {
			return nil, exc
		}
		r := []rune(s)
		start := 0
		if len(args) > 1 {
			f, exc := ArgNumber(args, 1)
			if exc != nil {
				return nil, exc
			}
			start = clampInt(int(runtime.ToIntegerNumber(f)), 0, len(r))
		}
		idx := strings.Index(string(r[start:]), search)
		if idx < 0 {
			return runtime.Num(-1), nil
		}
		return runtime.Num(float64(start + len([]rune(string(r[start:])[:idx])))), nil
	})
	method(proto, "lastIndexOf", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		s, exc := thisString(this, "lastIndexOf")
		if exc != nil {
			return nil, exc
		}
		search, exc := ArgString(args, 0)
		if exc != nil {
			return nil, exc
		}
		idx := strings.LastIndex(s, search)
		if idx < 0 {
			return runtime.Num(-1), nil
		}
		return runtime.Num(float64(len([]rune(s[:idx])))), nil
	})
	method(proto, "slice", 2, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		s, exc := thisString(this, "slice")
		if exc != nil {
			return nil, exc
		}
		r := []rune(s)
		start, end, exc := sliceBounds(args, len(r))
		if exc != nil {
			return nil, exc
		}
		return runtime.Str(string(r[start:end])), nil
	})
	method(proto, "substring", 2, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		s, exc := thisString(this, "substring")
		if exc != nil {
			return nil, exc
		}
		r := []rune(s)
		n := len(r)
		start := 0
		end := n
		if Arg(args, 0) != runtime.Undefined {
			f, exc := ArgNumber(args, 0)
			if exc != nil {
				return nil, exc
			}
			start = clampInt(int(runtime.ToIntegerNumber(f)), 0, n)
		}
		if Arg(args, 1) != runtime.Undefined {
			f, exc := ArgNumber(args, 1)
			if exc != nil {
				return nil, exc
			}
			end = clampInt(int(runtime.ToIntegerNumber(f)), 0, n)
		}
		if start > end {
			start, end = end, start
		}
		return runtime.Str(string(r[start:end])), nil
	})
	method(proto, "substr", 2, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		s, exc := thisString(this, "substr")
		if exc != nil {
			return nil, exc
		}
		r := []rune(s)
		n := len(r)
		start := 0
		if Arg(args, 0) != runtime.Undefined {
			f, exc := ArgNumber(args, 0)
			if exc != nil {
				return nil, exc
			}
			start = normalizeIndex(int(runtime.ToIntegerNumber(f)), n)
		}
		length := n - start
		if Arg(args, 1) != runtime.Undefined {
			f, exc := ArgNumber(args, 1)
			if exc != nil {
				return nil, exc
			}
			length = clampInt(int(runtime.ToIntegerNumber(f)), 0, n-start)
		}
		return runtime.Str(string(r[start : start+length])), nil
	})
	method(proto, "concat", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		s, exc := thisString(this, "concat")
		if exc != nil {
			return nil, exc
		}
		var sb strings.Builder
		sb.WriteString(s)
		for _, a := range args {
			as, exc := ToStringValue(a)
			if exc != nil {
				return nil, exc
			}
			sb.WriteString(as)
		}
		return runtime.Str(sb.String()), nil
	})
	method(proto, "toUpperCase", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		s, exc := thisString(this, "toUpperCase")
		if exc != nil {
			return nil, exc
		}
		return runtime.Str(strings.ToUpper(s)), nil
	})
	method(proto, "toLowerCase", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		s, exc := thisString(this, "toLowerCase")
		if exc != nil {
			return nil, exc
		}
		return runtime.Str(strings.ToLower(s)), nil
	})
	method(proto, "toLocaleUpperCase", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		s, exc := thisString(this, "toLocaleUpperCase")
		if exc != nil {
			return nil, exc
		}
		return runtime.Str(strings.ToUpper(s)), nil
	})
	method(proto, "toLocaleLowerCase", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		s, exc := thisString(this, "toLocaleLowerCase")
		if exc != nil {
			return nil, exc
		}
		return runtime.Str(strings.ToLower(s)), nil
	})
	method(proto, "trim", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		s, exc := thisString(this, "trim")
		if exc != nil {
			return nil, exc
		}
		return runtime.Str(strings.TrimSpace(s)), nil
	})
	method(proto, "localeCompare", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		s, exc := thisString(this, "localeCompare")
		if exc != nil {
			return nil, exc
		}
		other, exc := ArgString(args, 0)
		if exc != nil {
			return nil, exc
		}
		return runtime.Num(float64(strings.Compare(s, other))), nil
	})

	compileRegexp := func(pattern string) (*regexp.Regexp, *runtime.Exception) {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, runtime.NewSyntaxError("unsupported regular expression: " + err.Error())
		}
		return re, nil
	}
	patternOf := func(v runtime.Value) (string, bool, *runtime.Exception) {
		if obj, ok := v.(*runtime.Object); ok && obj.Class == "RegExp" {
			src, _ := obj.Get("source")
			global, _ := obj.Get("global")
			s, exc := ToStringValue(src)
			return s, runtime.ToBoolean(global), exc
		}
		s, exc := ToStringValue(v)
		return regexp.QuoteMeta(s), false, exc
	}

	method(proto, "split", 2, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		s, exc := thisString(this, "split")
		if exc != nil {
			return nil, exc
		}
		result := newArray(in.ArrayPrototype)
		if Arg(args, 0) == runtime.Undefined {
			arraySet(result, 0, runtime.Str(s))
			return result, nil
		}
		limit := -1
		if Arg(args, 1) != runtime.Undefined {
			f, exc := ArgNumber(args, 1)
			if exc != nil {
				return nil, exc
			}
			limit = int(runtime.ToUint32(f))
		}
		pattern, _, exc := patternOf(Arg(args, 0))
		if exc != nil {
			return nil, exc
		}
		var parts []string
		if pattern == "" {
			for _, r := range s {
				parts = append(parts, string(r))
			}
		} else {
			re, exc := compileRegexp(pattern)
			if exc != nil {
				return nil, exc
			}
			parts = re.Split(s, -1)
		}
		for i, p := range parts {
			if limit >= 0 && i >= limit {
				break
			}
			arraySet(result, i, runtime.Str(p))
		}
		return result, nil
	})
	method(proto, "match", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		s, exc := thisString(this, "match")
		if exc != nil {
			return nil, exc
		}
		pattern, global, exc := patternOf(Arg(args, 0))
		if exc != nil {
			return nil, exc
		}
		re, exc := compileRegexp(pattern)
		if exc != nil {
			return nil, exc
		}
		if !global {
			m := re.FindStringSubmatch(s)
			if m == nil {
				return runtime.Null, nil
			}
			result := newArray(in.ArrayPrototype)
			for i, g := range m {
				arraySet(result, i, runtime.Str(g))
			}
			return result, nil
		}
		all := re.FindAllString(s, -1)
		if all == nil {
			return runtime.Null, nil
		}
		result := newArray(in.ArrayPrototype)
		for i, g := range all {
			arraySet(result, i, runtime.Str(g))
		}
		return result, nil
	})
	method(proto, "search", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		s, exc := thisString(this, "search")
		if exc != nil {
			return nil, exc
		}
		pattern, _, exc := patternOf(Arg(args, 0))
		if exc != nil {
			return nil, exc
		}
		re, exc := compileRegexp(pattern)
		if exc != nil {
			return nil, exc
		}
		loc := re.FindStringIndex(s)
		if loc == nil {
			return runtime.Num(-1), nil
		}
		return runtime.Num(float64(len([]rune(s[:loc[0]])))), nil
	})
	method(proto, "replace", 2, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		s, exc := thisString(this, "replace")
		if exc != nil {
			return nil, exc
		}
		pattern, global, exc := patternOf(Arg(args, 0))
		if exc != nil {
			return nil, exc
		}
		re, exc := compileRegexp(pattern)
		if exc != nil {
			return nil, exc
		}
		replacement := Arg(args, 1)
		callback, isFunc := replacement.(*runtime.Object)
		doReplace := func(match []string) (string, *runtime.Exception) {
			if isFunc && callback.IsCallable() {
				callArgs := make([]runtime.Value, len(match))
				for i, m := range match {
					callArgs[i] = runtime.Str(m)
				}
				r, exc := callback.Call(runtime.Undefined, callArgs)
				if exc != nil {
					return "", exc
				}
				return ToStringValue(r)
			}
			tmpl, exc := ToStringValue(replacement)
			if exc != nil {
				return "", exc
			}
			return expandReplacement(tmpl, match), nil
		}

		count := 1
		if global {
			count = -1
		}
		var sb strings.Builder
		last := 0
		matches := re.FindAllStringSubmatchIndex(s, count)
		for _, m := range matches {
			sb.WriteString(s[last:m[0]])
			groups := make([]string, len(m)/2)
			for i := range groups {
				if m[2*i] < 0 {
					groups[i] = ""
					continue
				}
				groups[i] = s[m[2*i]:m[2*i+1]]
			}
			rep, exc := doReplace(groups)
			if exc != nil {
				return nil, exc
			}
			sb.WriteString(rep)
			last = m[1]
		}
		sb.WriteString(s[last:])
		return runtime.Str(sb.String()), nil
	})
}

// expandReplacement handles the $1, $2, $&, $$ substitution patterns ES5.1
// §15.5.4.11 defines for a string replacement template.
func expandReplacement(tmpl string, groups []string) string {
	var sb strings.Builder
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] != '$' || i+1 >= len(tmpl) {
			sb.WriteByte(tmpl[i])
			continue
		}
		next := tmpl[i+1]
		switch {
		case next == '$':
			sb.WriteByte('$')
			i++
		case next == '&':
			if len(groups) > 0 {
				sb.WriteString(groups[0])
			}
			i++
		case next >= '0' && next <= '9':
			j := i + 1
			for j < len(tmpl) && tmpl[j] >= '0' && tmpl[j] <= '9' {
				j++
			}
			n, _ := strconv.Atoi(tmpl[i+1 : j])
			if n > 0 && n < len(groups) {
				sb.WriteString(groups[n])
				i = j - 1
			} else {
				sb.WriteByte(tmpl[i])
			}
		default:
			sb.WriteByte(tmpl[i])
		}
	}
	return sb.String()
}
