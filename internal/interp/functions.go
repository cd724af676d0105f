package interp

import (
	"strconv"

	"github.com/es5lang/es5/internal/ast"
	"github.com/es5lang/es5/internal/builtins"
	"github.com/es5lang/es5/internal/runtime"
)

// createFunction builds the runtime.Object for a FunctionDeclaration or
// FunctionExpression (ES5.1 §13.2 Creating Function Objects). scope is the
// LexicalEnvironment captured as the function's [[Scope]]; selfName, when
// non-empty, is a named function expression's own identifier, visible only
// inside the function body via an extra immutable-binding environment
// wrapping scope (ES5.1 §13 NOTE 2).
func (interp *Interpreter) createFunction(name string, params []*ast.Identifier, body *ast.BlockStatement, strict bool, scope *runtime.LexicalEnvironment, selfName string) *runtime.Object {
	closureScope := scope
	fn := &runtime.Object{
		Class:      "Function",
		Prototype:  interp.realm.intrinsics.FunctionPrototype,
		Extensible: true,
	}
	fn.FunctionName = name
	fn.FunctionStrict = strict
	paramNames := make([]string, len(params))
	for i, p := range params {
		paramNames[i] = p.Name
	}
	fn.FormalParamNames = paramNames

	if selfName != "" {
		rec := runtime.NewDeclarativeEnvironmentRecord()
		rec.CreateImmutableBinding(selfName)
		closureScope = runtime.NewLexicalEnvironment(rec, scope)
	}

	proto := runtime.NewObject(interp.realm.intrinsics.ObjectPrototype)
	proto.DefineDataProperty("constructor", fn, true, false, true)
	fn.DefineDataProperty("prototype", proto, true, false, false)
	fn.DefineDataProperty("length", runtime.Num(float64(len(params))), false, false, false)
	fn.DefineDataProperty("name", runtime.Str(name), false, false, true)

	fn.Call = func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		if selfName != "" {
			if rec, ok := closureScope.Record.(*runtime.DeclarativeEnvironmentRecord); ok {
				rec.InitializeImmutableBinding(selfName, fn)
			}
		}
		return interp.callFunction(fn, this, args, params, body, strict, closureScope)
	}
	fn.Construct = func(this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.Exception) {
		protoVal, exc := fn.Get("prototype")
		if exc != nil {
			return nil, exc
		}
		instProto, ok := protoVal.(*runtime.Object)
		if !ok {
			instProto = interp.realm.intrinsics.ObjectPrototype
		}
		instance := runtime.NewObject(instProto)
		result, exc := fn.Call(instance, args)
		if exc != nil {
			return nil, exc
		}
		if obj, ok := result.(*runtime.Object); ok {
			return obj, nil
		}
		return instance, nil
	}
	return fn
}

// callFunction implements [[Call]] for a user-defined function (ES5.1
// §13.2.1): establishes a fresh function execution context (new Declarative
// environment for both Lexical/VariableEnv, `this` resolved per §10.4.3),
// runs Declaration Binding Instantiation, evaluates the body, and turns a
// Return completion (or falling off the end) into the call's result.
func (interp *Interpreter) callFunction(fn *runtime.Object, this runtime.Value, args []runtime.Value, params []*ast.Identifier, body *ast.BlockStatement, strict bool, scope *runtime.LexicalEnvironment) (runtime.Value, *runtime.Exception) {
	thisBinding := interp.resolveThisBinding(this, strict)

	rec := runtime.NewDeclarativeEnvironmentRecord()
	env := runtime.NewLexicalEnvironment(rec, scope)
	ctx := &runtime.ExecutionContext{LexicalEnv: env, VariableEnv: env, ThisBinding: thisBinding, Strict: strict}

	if exc := interp.callStack.Push(ctx); exc != nil {
		return nil, exc
	}
	defer interp.callStack.Pop()

	for i, p := range params {
		var v runtime.Value = runtime.Undefined
		if i < len(args) {
			v = args[i]
		}
		if rec.HasBinding(p.Name) {
			_ = rec.SetMutableBinding(p.Name, v, false)
		} else {
			rec.CreateMutableBinding(p.Name, false)
			_ = rec.SetMutableBinding(p.Name, v, false)
		}
	}

	if !rec.HasBinding("arguments") {
		argsObj := interp.createArgumentsObject(fn, params, args, rec, strict)
		rec.CreateMutableBinding("arguments", false)
		_ = rec.SetMutableBinding("arguments", argsObj, false)
	}

	interp.declarationBindingInstantiation(ctx, body.Body, nil, true)

	c := interp.evalStatements(ctx, body.Body)
	switch c.Type {
	case runtime.Return:
		return c.Value, nil
	case runtime.Throw:
		return nil, c.Exception
	default:
		return runtime.Undefined, nil
	}
}

// resolveThisBinding implements the ThisBinding resolution a function call
// applies to its argument (ES5.1 §10.4.3): strict-mode code uses the
// supplied value verbatim; sloppy-mode code replaces undefined/null with
// the global object and boxes a primitive through ToObject.
func (interp *Interpreter) resolveThisBinding(this runtime.Value, strict bool) runtime.Value {
	if strict {
		if this == nil {
			return runtime.Undefined
		}
		return this
	}
	if this == nil || this == runtime.Undefined || this == runtime.Null {
		return interp.realm.intrinsics.GlobalObject
	}
	if _, ok := this.(*runtime.Object); ok {
		return this
	}
	boxed := boxPrimitive(this, interp.realm.intrinsics)
	return boxed
}

func boxPrimitive(v runtime.Value, in *builtins.Intrinsics) runtime.Value {
	switch val := v.(type) {
	case runtime.BooleanValue:
		o := runtime.NewObjectWithClass(in.BooleanPrototype, "Boolean")
		o.PrimitiveValue = val
		return o
	case runtime.NumberValue:
		o := runtime.NewObjectWithClass(in.NumberPrototype, "Number")
		o.PrimitiveValue = val
		return o
	case runtime.StringValue:
		o := runtime.NewObjectWithClass(in.StringPrototype, "String")
		o.PrimitiveValue = val
		return o
	default:
		return v
	}
}

// createArgumentsObject builds the `arguments` object (ES5.1 §10.6): always
// unmapped when strict is true, mapped otherwise. In a mapped object,
// arguments[i] and its named parameter binding stay in sync via
// ParameterMap for every index below len(args); when a parameter name
// repeats, only its last occurrence is mapped (ES5.1's last-wins mapping
// rule).
func (interp *Interpreter) createArgumentsObject(fn *runtime.Object, params []*ast.Identifier, args []runtime.Value, env *runtime.DeclarativeEnvironmentRecord, strict bool) *runtime.Object {
	in := interp.realm.intrinsics
	o := runtime.NewObjectWithClass(in.ObjectPrototype, "Arguments")
	for i, a := range args {
		o.DefineDataProperty(indexName(i), a, true, true, true)
	}
	o.DefineDataProperty("length", runtime.Num(float64(len(args))), true, false, true)
	o.DefineDataProperty("callee", fn, true, false, true)

	if !strict {
		mapped := map[int]string{}
		seen := map[string]bool{}
		for i := len(params) - 1; i >= 0; i-- {
			name := params[i].Name
			if seen[name] || i >= len(args) {
				continue
			}
			seen[name] = true
			mapped[i] = name
		}
		if len(mapped) > 0 {
			o.ParameterMap = mapped
			for i, name := range mapped {
				idx, boundName := i, name
				getter := &runtime.Object{Class: "Function", Extensible: true, Call: func(_ runtime.Value, _ []runtime.Value) (runtime.Value, *runtime.Exception) {
					v, exc := env.GetBindingValue(boundName, false)
					return v, exc
				}}
				setter := &runtime.Object{Class: "Function", Extensible: true, Call: func(_ runtime.Value, setArgs []runtime.Value) (runtime.Value, *runtime.Exception) {
					var v runtime.Value = runtime.Undefined
					if len(setArgs) > 0 {
						v = setArgs[0]
					}
					exc := env.SetMutableBinding(boundName, v, false)
					return runtime.Undefined, exc
				}}
				o.DefineAccessorProperty(indexName(idx), getter, setter, true, true)
			}
		}
	}
	return o
}

func indexName(i int) string {
	return strconv.Itoa(i)
}
