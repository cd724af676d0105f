package builtins

import (
	"math"
	"time"

	"github.com/es5lang/es5/internal/runtime"
)

// installDate wires Date/Date.prototype (ES5.1 §15.9), resolving the
// regex/Date Open Question (spec.md §5) the same way as RegExp: backed by
// Go's standard time package rather than a hand-rolled ES5.1 time algorithm.
// Time values are stored as milliseconds since the epoch in
// Object.PrimitiveValue, mirroring how String/Number/Boolean box their
// primitive (ES5.1 §15.9.5 describes Date objects as holding a [[Value]]
// internal slot the same way).
func (in *Intrinsics) installDate() {
	proto := in.DatePrototype
	ctor := in.DateCtor

	ctor.FunctionName = "Date"
	ctor.DefineDataProperty("prototype", proto, false, false, false)
	ctor.DefineDataProperty("length", runtime.Num(7), false, false, false)
	proto.DefineDataProperty("constructor", ctor, true, false, true)

	newDate := func(ms float64) *runtime.Object {
		o := runtime.NewObjectWithClass(proto, "Date")
		o.PrimitiveValue = runtime.Num(ms)
		return o
	}
	timeOf := func(ms float64) time.Time {
		return time.UnixMilli(int64(ms)).UTC()
	}

	ctor.Call = func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		return runtime.Str(timeOf(float64(time.Now().UnixMilli())).Format(time.RFC1123)), nil
	}
	ctor.Construct = func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		switch len(args) {
		case 0:
			return newDate(float64(time.Now().UnixMilli())), nil
		case 1:
			if s, ok := args[0].(runtime.StringValue); ok {
				t, err := parseDateString(string(s))
				if err != nil {
					return newDate(math.NaN()), nil
				}
				return newDate(float64(t.UnixMilli())), nil
			}
			n, exc := ToNumberValue(args[0])
			if exc != nil {
				return nil, exc
			}
			return newDate(n), nil
		default:
			parts := make([]int, 7)
			parts[2] = 1 // day defaults to 1
			for i := 0; i < len(args) && i < 7; i++ {
				n, exc := ArgNumber(args, i)
				if exc != nil {
					return nil, exc
				}
				parts[i] = int(n)
			}
			year := parts[0]
			if year >= 0 && year <= 99 {
				year += 1900
			}
			t := time.Date(year, time.Month(parts[1]+1), parts[2], parts[3], parts[4], parts[5], parts[6]*int(time.Millisecond/time.Nanosecond), time.UTC)
			return newDate(float64(t.UnixMilli())), nil
		}
	}

	method(ctor, "now", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		return runtime.Num(float64(time.Now().UnixMilli())), nil
	})
	method(ctor, "parse", 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		s, exc := ArgString(args, 0)
		if exc != nil {
			return nil, exc
		}
		t, err := parseDateString(s)
		if err != nil {
			return runtime.NaN, nil
		}
		return runtime.Num(float64(t.UnixMilli())), nil
	})
	method(ctor, "UTC", 7, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		parts := make([]int, 7)
		parts[2] = 1
		for i := 0; i < len(args) && i < 7; i++ {
			n, exc := ArgNumber(args, i)
			if exc != nil {
				return nil, exc
			}
			parts[i] = int(n)
		}
		year := parts[0]
		if year >= 0 && year <= 99 {
			year += 1900
		}
		t := time.Date(year, time.Month(parts[1]+1), parts[2], parts[3], parts[4], parts[5], parts[6]*int(time.Millisecond/time.Nanosecond), time.UTC)
		return runtime.Num(float64(t.UnixMilli())), nil
	})

	thisTime := func(this runtime.Value, what string) (time.Time, float64, *runtime.Exception) {
		obj, ok := this.(*runtime.Object)
		if !ok || obj.Class != "Date" {
			return time.Time{}, 0, runtime.NewTypeError(what + " called on non-Date")
		}
		ms := runtime.ToNumberPrimitive(obj.PrimitiveValue)
		return timeOf(ms), ms, nil
	}

	method(proto, "getTime", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		_, ms, exc := thisTime(this, "Date.prototype.getTime")
		if exc != nil {
			return nil, exc
		}
		return runtime.Num(ms), nil
	})
	method(proto, "valueOf", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		_, ms, exc := thisTime(this, "Date.prototype.valueOf")
		if exc != nil {
			return nil, exc
		}
		return runtime.Num(ms), nil
	})
	method(proto, "toString", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		t, ms, exc := thisTime(this, "Date.prototype.toString")
		if exc != nil {
			return nil, exc
		}
		if ms != ms {
			return runtime.Str("Invalid Date"), nil
		}
		return runtime.Str(t.Format(time.RFC1123)), nil
	})
	method(proto, "toISOString", 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		t, _, exc := thisTime(this, "Date.prototype.toISOString")
		if exc != nil {
			return nil, exc
		}
		return runtime.Str(t.Format("2006-01-02T15:04:05.000Z")), nil
	})

	getter := func(name string, fn func(time.Time) int) {
		method(proto, name, 0, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
			t, ms, exc := thisTime(this, "Date.prototype."+name)
			if exc != nil {
				return nil, exc
			}
			if ms != ms {
				return runtime.NaN, nil
			}
			return runtime.Num(float64(fn(t))), nil
		})
	}
	getter("getFullYear", func(t time.Time) int { return t.Year() })
	getter("getUTCFullYear", func(t time.Time) int { return t.Year() })
	getter("getMonth", func(t time.Time) int { return int(t.Month()) - 1 })
	getter("getUTCMonth", func(t time.Time) int { return int(t.Month()) - 1 })
	getter("getDate", func(t time.Time) int { return t.Day() })
	getter("getUTCDate", func(t time.Time) int { return t.Day() })
	getter("getDay", func(t time.Time) int { return int(t.Weekday()) })
	getter("getUTCDay", func(t time.Time) int { return int(t.Weekday()) })
	getter("getHours", func(t time.Time) int { return t.Hour() })
	getter("getUTCHours", func(t time.Time) int { return t.Hour() })
	getter("getMinutes", func(t time.Time) int { return t.Minute() })
	getter("getUTCMinutes", func(t time.Time) int { return t.Minute() })
	getter("getSeconds", func(t time.Time) int { return t.Second() })
	getter("getUTCSeconds", func(t time.Time) int { return t.Second() })
	getter("getMilliseconds", func(t time.Time) int { return t.Nanosecond() / 1e6 })
	getter("getUTCMilliseconds", func(t time.Time) int { return t.Nanosecond() / 1e6 })
	getter("getTimezoneOffset", func(t time.Time) int { return 0 })

	setter := func(name string, apply func(time.Time, int) time.Time) {
		method(proto, name, 1, func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
			obj, ok := this.(*runtime.Object)
			if !ok || obj.Class != "Date" {
				return nil, runtime.NewTypeError("Date.prototype." + name + " called on non-Date")
			}
			n, exc := ArgNumber(args, 0)
			if exc != nil {
				return nil, exc
			}
			ms := runtime.ToNumberPrimitive(obj.PrimitiveValue)
			t := timeOf(ms)
			t = apply(t, int(n))
			newMs := float64(t.UnixMilli())
			obj.PrimitiveValue = runtime.Num(newMs)
			return runtime.Num(newMs), nil
		})
	}
	setter("setFullYear", func(t time.Time, v int) time.Time {
		return time.Date(v, t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	})
	setter("setMonth", func(t time.Time, v int) time.Time {
		return time.Date(t.Year(), time.Month(v+1), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	})
	setter("setDate", func(t time.Time, v int) time.Time {
		return time.Date(t.Year(), t.Month(), v, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	})
	setter("setHours", func(t time.Time, v int) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), v, t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	})
	setter("setMinutes", func(t time.Time, v int) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), v, t.Second(), t.Nanosecond(), time.UTC)
	})
	setter("setSeconds", func(t time.Time, v int) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), v, t.Nanosecond(), time.UTC)
	})
	setter("setMilliseconds", func(t time.Time, v int) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), v*int(time.Millisecond/time.Nanosecond), time.UTC)
	})
	setter("setTime", func(t time.Time, v int) time.Time {
		return time.UnixMilli(int64(v)).UTC()
	})
}

func parseDateString(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05.000Z",
		"2006-01-02",
		time.RFC1123,
		time.RFC1123Z,
		time.ANSIC,
	}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
