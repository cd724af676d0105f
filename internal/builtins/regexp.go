package builtins

import (
	"regexp"
	"strings"

	"github.com/es5lang/es5/internal/runtime"
)

// installRegExp wires a minimal RegExp/RegExp.prototype (ES5.1 §15.10).
// spec.md §5 Open Questions leaves regex semantics to either a host
// library or a from-scratch Annex B engine; this package picks the
// former, backing RegExp by Go's regexp (RE2) package exactly as
// string.go's match/search/replace/split do. The consequence (documented
// in DESIGN.md) is the same: backreferences and lookahead, which RE2
// doesn't support, surface as a SyntaxError at RegExp construction time
// instead of silently matching wrong.
func (in *Intrinsics) installRegExp() {
	proto := in.RegExpPrototype
	ctor := in.RegExpCtor

	ctor.FunctionName = "RegExp"
	ctor.DefineDataProperty("prototype", proto, false, false, false)
	ctor.DefineDataProperty("length", runtime.Num(2), false, false, false)
	proto.DefineDataProperty("constructor", ctor, true, false, true)
	proto.DefineDataProperty("source", runtime.Str(""), false, false, false)
	proto.DefineDataProperty("global", runtime.False, false, false, false)
	proto.DefineDataProperty("ignoreCase", runtime.False, false, false, false)
	proto.DefineDataProperty("multiline", runtime.False, false, false, false)
	proto.DefineDataProperty("lastIndex", runtime.Num(0), true, false, false)

	build := func(args []runtime.Value) (runtime.Value, *runtime.Exception) {
		pattern := ""
		flags := ""
		first := Arg(args, 0)
		if obj, ok := first.(*runtime.Object); ok && obj.Class == "RegExp" {
			src, _ := obj.Get("source")
			pattern, _ = ToStringValue(src)
			if Arg(args, 1) == runtime.Undefined {
				fv, _ := obj.Get("global")
				gv, _ := obj.Get("ignoreCase")
				mv, _ := obj.Get("multiline")
				if runtime.ToBoolean(fv) {
					flags += "g"
				}
				if runtime.ToBoolean(gv) {
					flags += "i"
				}
				if runtime.ToBoolean(mv) {
					flags += "m"
				}
			}
		} else if first != runtime.Undefined {
			var exc *runtime.Exception
			pattern, exc = ToStringValue(first)
			if exc != nil {
				return nil, exc
			}
		}
		if Arg(args, 1) != runtime.Undefined {
			f, exc := ToStringValue(args[1])
			if exc != nil {
				return nil, exc
			}
			flags = f
		}

		goPattern := pattern
		var goFlags string
		if strings.Contains(flags, "i") {
			goFlags += "i"
		}
		if strings.Contains(flags, "m") {
			goFlags += "m"
		}
		if goFlags != "" {
			goPattern = "(?" + goFlags + ")" + goPattern
		}
		if _, err := regexp.Compile(goPattern); err != nil {
			return nil, runtime.NewSyntaxError("invalid regular expression: " + err.Error())
		}

		o := runtime.NewObjectWithClass(proto, "RegExp")
		o.DefineDataProperty("source", runtime.Str(pattern), false, false, false)
		o.DefineDataProperty("global", runtime.Bool(strings.Contains(flags, "g")), false, false, false)
		o.DefineDataProperty("ignoreCase", runtime.Bool(strings.Contains(flags, "i")), false, false, false)
		o.DefineDataProperty("multiline", runtime.Bool(strings.Contains(flags, "m")), false, false, false)
		o.DefineDataProperty("lastIndex", runtime.Num(0), true, false, false)
		return o, nil
	}
	ctor.Call = func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) { return build(args) }
	ctor.Construct = func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) { return build(args) }

	compiled := func(obj *runtime.Object) (*regexp.Regexp, error) {
		src, _ := obj.Get("source")
		s, _ := ToStringValue(src)
		var goFlags string
		if iv, _ := obj.Get("ignoreCase"); runtime.ToBoolean(iv) {
			goFlags += "i"
		}
		if mv, _ := obj.Get("multiline"); runtime.ToBoolean(mv) {
			goFlags += "m"
		}
		if goFlags != "" {
			s = "(?" + goFlags + ")" + s
		}
		return regexp.Compile(s)
	}

	method(proto, "toString", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, exc := requireThisObject(this, "RegExp.prototype.toString")
		if exc != nil {
			return nil, exc
		}
		src, _ := obj.Get("source")
		s, _ := ToStringValue(src)
		flags := ""
		if gv, _ := obj.Get("global"); runtime.ToBoolean(gv) {
			flags += "g"
		}
		if iv, _ := obj.Get("ignoreCase"); runtime.ToBoolean(iv) {
			flags += "i"
		}
		if mv, _ := obj.Get("multiline"); runtime.ToBoolean(mv) {
			flags += "m"
		}
		return runtime.Str("/" + s + "/" + flags), nil
	})
	method(proto, "test", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, exc := requireThisObject(this, "RegExp.prototype.test")
		if exc != nil {
			return nil, exc
		}
		s, exc := ArgString(args, 0)
		if exc != nil {
			return nil, exc
		}
		re, err := compiled(obj)
		if err != nil {
			return nil, runtime.NewSyntaxError(err.Error())
		}
		return runtime.Bool(re.MatchString(s)), nil
	})
	method(proto, "exec", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		obj, exc := requireThisObject(this, "RegExp.prototype.exec")
		if exc != nil {
			return nil, exc
		}
		s, exc := ArgString(args, 0)
		if exc != nil {
			return nil, exc
		}
		re, err := compiled(obj)
		if err != nil {
			return nil, runtime.NewSyntaxError(err.Error())
		}
		global := false
		if gv, _ := obj.Get("global"); runtime.ToBoolean(gv) {
			global = true
		}
		start := 0
		if global {
			liv, _ := obj.Get("lastIndex")
			start = int(runtime.ToNumberPrimitive(liv))
			if start < 0 || start > len(s) {
				obj.Put("lastIndex", runtime.Num(0), false)
				return runtime.Null, nil
			}
		}
		loc := re.FindStringSubmatchIndex(s[start:])
		if loc == nil {
			if global {
				obj.Put("lastIndex", runtime.Num(0), false)
			}
			return runtime.Null, nil
		}
		result := newArray(in.ArrayPrototype)
		for i := 0; i < len(loc)/2; i++ {
			if loc[2*i] < 0 {
				arraySet(result, i, runtime.Undefined)
				continue
			}
			arraySet(result, i, runtime.Str(s[start+loc[2*i]:start+loc[2*i+1]]))
		}
		result.DefineDataProperty("index", runtime.Num(float64(start+loc[0])), true, true, true)
		result.DefineDataProperty("input", runtime.Str(s), true, true, true)
		if global {
			obj.Put("lastIndex", runtime.Num(float64(start+loc[1])), false)
		}
		return result, nil
	})
}
