package interp

import (
	"github.com/es5lang/es5/internal/ast"
	"github.com/es5lang/es5/internal/builtins"
	"github.com/es5lang/es5/internal/lexer"
	"github.com/es5lang/es5/internal/runtime"
)

// evalExpression dispatches on the concrete ast.Expression type and always
// returns a plain Value (GetValue already applied to any Reference), the
// form every statement and nested expression evaluator wants (ES5.1 §11
// uniformly calls GetValue on its operands).
func (interp *Interpreter) evalExpression(ctx *runtime.ExecutionContext, expr ast.Expression) (runtime.Value, *runtime.Exception) {
	switch e := expr.(type) {
	case *ast.Identifier, *ast.MemberExpression:
		ref, exc := interp.evalReference(ctx, expr)
		if exc != nil {
			return nil, exc
		}
		return interp.getValue(ctx, ref)
	case *ast.ThisExpression:
		return ctx.ThisBinding, nil
	case *ast.Literal:
		return interp.evalLiteral(e)
	case *ast.ArrayExpression:
		return interp.evalArrayExpression(ctx, e)
	case *ast.ObjectExpression:
		return interp.evalObjectExpression(ctx, e)
	case *ast.FunctionExpression:
		selfName := ""
		if e.Id != nil {
			selfName = e.Id.Name
		}
		return interp.createFunction("", e.Params, e.Body, e.Strict || ctx.Strict, ctx.LexicalEnv, selfName), nil
	case *ast.NewExpression:
		return interp.evalNewExpression(ctx, e)
	case *ast.CallExpression:
		return interp.evalCallExpression(ctx, e)
	case *ast.UpdateExpression:
		return interp.evalUpdateExpression(ctx, e)
	case *ast.UnaryExpression:
		return interp.evalUnaryExpression(ctx, e)
	case *ast.BinaryExpression:
		left, exc := interp.evalExpression(ctx, e.Left)
		if exc != nil {
			return nil, exc
		}
		right, exc := interp.evalExpression(ctx, e.Right)
		if exc != nil {
			return nil, exc
		}
		return interp.evalBinaryOp(e.Operator, left, right)
	case *ast.LogicalExpression:
		return interp.evalLogicalExpression(ctx, e)
	case *ast.AssignmentExpression:
		return interp.evalAssignmentExpression(ctx, e)
	case *ast.ConditionalExpression:
		test, exc := interp.evalExpression(ctx, e.Test)
		if exc != nil {
			return nil, exc
		}
		if runtime.ToBoolean(test) {
			return interp.evalExpression(ctx, e.Consequent)
		}
		return interp.evalExpression(ctx, e.Alternate)
	case *ast.SequenceExpression:
		var last runtime.Value = runtime.Undefined
		for _, sub := range e.Expressions {
			v, exc := interp.evalExpression(ctx, sub)
			if exc != nil {
				return nil, exc
			}
			last = v
		}
		return last, nil
	default:
		return nil, runtime.NewTypeError("unsupported expression node")
	}
}

// evalReference resolves an Identifier or MemberExpression to a Reference
// without calling GetValue, for assignment targets, delete/typeof, and
// ++/-- operands (ES5.1 §11.1.2/§11.2.1).
func (interp *Interpreter) evalReference(ctx *runtime.ExecutionContext, expr ast.Expression) (*runtime.Reference, *runtime.Exception) {
	switch e := expr.(type) {
	case *ast.Identifier:
		for env := ctx.LexicalEnv; env != nil; env = env.Outer {
			if env.Record.HasBinding(e.Name) {
				return runtime.NewEnvironmentReference(env.Record, e.Name, ctx.Strict), nil
			}
		}
		return runtime.NewEnvironmentReference(nil, e.Name, ctx.Strict), nil
	case *ast.MemberExpression:
		baseVal, exc := interp.evalExpression(ctx, e.Object)
		if exc != nil {
			return nil, exc
		}
		name, exc := interp.memberName(ctx, e)
		if exc != nil {
			return nil, exc
		}
		if baseVal == runtime.Undefined || baseVal == runtime.Null {
			return nil, runtime.NewTypeError("cannot read property '" + name + "' of " + baseVal.String())
		}
		return runtime.NewPropertyReference(baseVal, name, ctx.Strict), nil
	default:
		return nil, runtime.NewTypeError("invalid reference expression")
	}
}

func (interp *Interpreter) memberName(ctx *runtime.ExecutionContext, e *ast.MemberExpression) (string, *runtime.Exception) {
	if !e.Computed {
		return e.Property.(*ast.Identifier).Name, nil
	}
	v, exc := interp.evalExpression(ctx, e.Property)
	if exc != nil {
		return "", exc
	}
	return builtins.ToStringValue(v)
}

// getValue implements ES5.1 §8.7.1 GetValue: an unresolvable environment
// reference raises ReferenceError; a primitive-base property reference goes
// through ToObject first (the wrapper object is discarded immediately
// after, matching ES5.1's "as if" wording — no binding is created on the
// primitive).
func (interp *Interpreter) getValue(ctx *runtime.ExecutionContext, ref *runtime.Reference) (runtime.Value, *runtime.Exception) {
	if ref.Env != nil {
		return ref.Env.GetBindingValue(ref.Name, ref.Strict)
	}
	if ref.IsUnresolvable() {
		return nil, runtime.NewReferenceError(ref.Name + " is not defined")
	}
	if ref.HasPrimitiveBase() {
		obj, exc := interp.toObject(ref.Base)
		if exc != nil {
			return nil, exc
		}
		return obj.Get(ref.Name)
	}
	return ref.Base.(*runtime.Object).Get(ref.Name)
}

// putValue implements ES5.1 §8.7.2 PutValue.
func (interp *Interpreter) putValue(ctx *runtime.ExecutionContext, ref *runtime.Reference, v runtime.Value) *runtime.Exception {
	if ref.Env != nil {
		return ref.Env.SetMutableBinding(ref.Name, v, ref.Strict)
	}
	if ref.IsUnresolvable() {
		if ref.Strict {
			return runtime.NewReferenceError(ref.Name + " is not defined")
		}
		return interp.realm.intrinsics.GlobalObject.Put(ref.Name, v, false)
	}
	if ref.HasPrimitiveBase() {
		obj, exc := interp.toObject(ref.Base)
		if exc != nil {
			return exc
		}
		return obj.Put(ref.Name, v, ref.Strict)
	}
	return ref.Base.(*runtime.Object).Put(ref.Name, v, ref.Strict)
}

// toObject implements ES5.1 §9.9 ToObject in terms of the running realm's
// wrapper prototypes.
func (interp *Interpreter) toObject(v runtime.Value) (*runtime.Object, *runtime.Exception) {
	in := interp.realm.intrinsics
	return builtins.ToObjectValue(v, in.BooleanPrototype, in.NumberPrototype, in.StringPrototype)
}

func (interp *Interpreter) evalLiteral(lit *ast.Literal) (runtime.Value, *runtime.Exception) {
	switch lit.LitKind {
	case ast.NullLiteralKind:
		return runtime.Null, nil
	case ast.BooleanLiteralKind:
		return runtime.Bool(lit.Value.(bool)), nil
	case ast.NumberLiteralKind:
		return runtime.Num(lit.Value.(float64)), nil
	case ast.StringLiteralKind:
		return runtime.Str(lit.Value.(string)), nil
	case ast.RegexLiteralKind:
		rv := lit.Value.(*lexer.RegexValue)
		ctorVal, exc := interp.realm.intrinsics.RegExpCtor.Construct(nil, []runtime.Value{runtime.Str(rv.Pattern), runtime.Str(rv.Flags)})
		return ctorVal, exc
	default:
		return runtime.Undefined, nil
	}
}

func (interp *Interpreter) evalArrayExpression(ctx *runtime.ExecutionContext, e *ast.ArrayExpression) (runtime.Value, *runtime.Exception) {
	in := interp.realm.intrinsics
	arr := builtins.NewArray(in.ArrayPrototype)
	for i, el := range e.Elements {
		if el == nil {
			continue
		}
		v, exc := interp.evalExpression(ctx, el)
		if exc != nil {
			return nil, exc
		}
		builtins.ArraySet(arr, i, v)
	}
	if n := len(e.Elements); n > builtins.ArrayLength(arr) {
		arr.DefineDataProperty("length", runtime.Num(float64(n)), true, false, false)
	}
	return arr, nil
}

func (interp *Interpreter) evalObjectExpression(ctx *runtime.ExecutionContext, e *ast.ObjectExpression) (runtime.Value, *runtime.Exception) {
	in := interp.realm.intrinsics
	obj := runtime.NewObject(in.ObjectPrototype)
	type accessorPair struct{ get, set *runtime.Object }
	accessors := map[string]*accessorPair{}
	for _, prop := range e.Properties {
		name, exc := interp.propertyKeyName(ctx, prop.Key)
		if exc != nil {
			return nil, exc
		}
		switch prop.PropKind {
		case ast.PropertyInit:
			v, exc := interp.evalExpression(ctx, prop.Value)
			if exc != nil {
				return nil, exc
			}
			obj.DefineDataProperty(name, v, true, true, true)
			delete(accessors, name)
		case ast.PropertyGet, ast.PropertySet:
			fnExpr := prop.Value.(*ast.FunctionExpression)
			fn := interp.createFunction("", fnExpr.Params, fnExpr.Body, fnExpr.Strict || ctx.Strict, ctx.LexicalEnv, "")
			pair := accessors[name]
			if pair == nil {
				pair = &accessorPair{}
				accessors[name] = pair
			}
			if prop.PropKind == ast.PropertyGet {
				pair.get = fn
			} else {
				pair.set = fn
			}
			obj.DefineAccessorProperty(name, pair.get, pair.set, true, true)
		}
	}
	return obj, nil
}

func (interp *Interpreter) propertyKeyName(ctx *runtime.ExecutionContext, key ast.Expression) (string, *runtime.Exception) {
	switch k := key.(type) {
	case *ast.Identifier:
		return k.Name, nil
	case *ast.Literal:
		v, exc := interp.evalLiteral(k)
		if exc != nil {
			return "", exc
		}
		return builtins.ToStringValue(v)
	default:
		v, exc := interp.evalExpression(ctx, key)
		if exc != nil {
			return "", exc
		}
		return builtins.ToStringValue(v)
	}
}

func (interp *Interpreter) evalNewExpression(ctx *runtime.ExecutionContext, e *ast.NewExpression) (runtime.Value, *runtime.Exception) {
	calleeVal, exc := interp.evalExpression(ctx, e.Callee)
	if exc != nil {
		return nil, exc
	}
	ctor, ok := calleeVal.(*runtime.Object)
	if !ok || ctor.Construct == nil {
		return nil, runtime.NewTypeError("not a constructor")
	}
	args, exc := interp.evalArgumentList(ctx, e.Args)
	if exc != nil {
		return nil, exc
	}
	return ctor.Construct(nil, args)
}

func (interp *Interpreter) evalArgumentList(ctx *runtime.ExecutionContext, list []ast.Expression) ([]runtime.Value, *runtime.Exception) {
	args := make([]runtime.Value, len(list))
	for i, a := range list {
		v, exc := interp.evalExpression(ctx, a)
		if exc != nil {
			return nil, exc
		}
		args[i] = v
	}
	return args, nil
}

func (interp *Interpreter) evalCallExpression(ctx *runtime.ExecutionContext, e *ast.CallExpression) (runtime.Value, *runtime.Exception) {
	var thisVal runtime.Value = runtime.Undefined
	var fnVal runtime.Value
	var exc *runtime.Exception

	switch callee := e.Callee.(type) {
	case *ast.MemberExpression:
		ref, refExc := interp.evalReference(ctx, callee)
		if refExc != nil {
			return nil, refExc
		}
		fnVal, exc = interp.getValue(ctx, ref)
		if exc != nil {
			return nil, exc
		}
		thisVal = ref.Base
	case *ast.Identifier:
		ref, refExc := interp.evalReference(ctx, callee)
		if refExc != nil {
			return nil, refExc
		}
		fnVal, exc = interp.getValue(ctx, ref)
		if exc != nil {
			return nil, exc
		}
		if ref.Env != nil {
			thisVal = ref.Env.ImplicitThisValue()
		}
	default:
		fnVal, exc = interp.evalExpression(ctx, e.Callee)
		if exc != nil {
			return nil, exc
		}
	}

	fn, ok := fnVal.(*runtime.Object)
	if !ok || !fn.IsCallable() {
		return nil, runtime.NewTypeError("value is not a function")
	}
	args, exc := interp.evalArgumentList(ctx, e.Args)
	if exc != nil {
		return nil, exc
	}
	return fn.Call(thisVal, args)
}

func (interp *Interpreter) evalUpdateExpression(ctx *runtime.ExecutionContext, e *ast.UpdateExpression) (runtime.Value, *runtime.Exception) {
	ref, exc := interp.evalReference(ctx, e.Argument)
	if exc != nil {
		return nil, exc
	}
	old, exc := interp.getValue(ctx, ref)
	if exc != nil {
		return nil, exc
	}
	oldNum, exc := builtins.ToNumberValue(old)
	if exc != nil {
		return nil, exc
	}
	var newNum float64
	if e.Operator == "++" {
		newNum = oldNum + 1
	} else {
		newNum = oldNum - 1
	}
	if exc := interp.putValue(ctx, ref, runtime.Num(newNum)); exc != nil {
		return nil, exc
	}
	if e.Prefix {
		return runtime.Num(newNum), nil
	}
	return runtime.Num(oldNum), nil
}

func (interp *Interpreter) evalUnaryExpression(ctx *runtime.ExecutionContext, e *ast.UnaryExpression) (runtime.Value, *runtime.Exception) {
	switch e.Operator {
	case "typeof":
		if id, ok := e.Argument.(*ast.Identifier); ok {
			ref, exc := interp.evalReference(ctx, id)
			if exc != nil {
				return nil, exc
			}
			if ref.IsUnresolvable() {
				return runtime.Str("undefined"), nil
			}
			v, exc := interp.getValue(ctx, ref)
			if exc != nil {
				return nil, exc
			}
			return runtime.Str(v.Type()), nil
		}
		v, exc := interp.evalExpression(ctx, e.Argument)
		if exc != nil {
			return nil, exc
		}
		return runtime.Str(v.Type()), nil
	case "delete":
		switch arg := e.Argument.(type) {
		case *ast.MemberExpression:
			baseVal, exc := interp.evalExpression(ctx, arg.Object)
			if exc != nil {
				return nil, exc
			}
			name, exc := interp.memberName(ctx, arg)
			if exc != nil {
				return nil, exc
			}
			obj, exc := interp.toObject(baseVal)
			if exc != nil {
				return nil, exc
			}
			ok, exc := obj.Delete(name, ctx.Strict)
			if exc != nil {
				return nil, exc
			}
			return runtime.Bool(ok), nil
		case *ast.Identifier:
			for env := ctx.LexicalEnv; env != nil; env = env.Outer {
				if env.Record.HasBinding(arg.Name) {
					return runtime.Bool(env.Record.DeleteBinding(arg.Name)), nil
				}
			}
			return runtime.True, nil
		default:
			_, exc := interp.evalExpression(ctx, e.Argument)
			if exc != nil {
				return nil, exc
			}
			return runtime.True, nil
		}
	case "void":
		_, exc := interp.evalExpression(ctx, e.Argument)
		if exc != nil {
			return nil, exc
		}
		return runtime.Undefined, nil
	}

	v, exc := interp.evalExpression(ctx, e.Argument)
	if exc != nil {
		return nil, exc
	}
	switch e.Operator {
	case "!":
		return runtime.Bool(!runtime.ToBoolean(v)), nil
	case "-":
		n, exc := builtins.ToNumberValue(v)
		if exc != nil {
			return nil, exc
		}
		return runtime.Num(-n), nil
	case "+":
		n, exc := builtins.ToNumberValue(v)
		if exc != nil {
			return nil, exc
		}
		return runtime.Num(n), nil
	case "~":
		n, exc := builtins.ToNumberValue(v)
		if exc != nil {
			return nil, exc
		}
		return runtime.Num(float64(^runtime.ToInt32(n))), nil
	default:
		return nil, runtime.NewTypeError("unsupported unary operator " + e.Operator)
	}
}

func (interp *Interpreter) evalLogicalExpression(ctx *runtime.ExecutionContext, e *ast.LogicalExpression) (runtime.Value, *runtime.Exception) {
	left, exc := interp.evalExpression(ctx, e.Left)
	if exc != nil {
		return nil, exc
	}
	switch e.Operator {
	case "&&":
		if !runtime.ToBoolean(left) {
			return left, nil
		}
		return interp.evalExpression(ctx, e.Right)
	case "||":
		if runtime.ToBoolean(left) {
			return left, nil
		}
		return interp.evalExpression(ctx, e.Right)
	default:
		return nil, runtime.NewTypeError("unsupported logical operator " + e.Operator)
	}
}

func (interp *Interpreter) evalAssignmentExpression(ctx *runtime.ExecutionContext, e *ast.AssignmentExpression) (runtime.Value, *runtime.Exception) {
	ref, exc := interp.evalReference(ctx, e.Left)
	if exc != nil {
		return nil, exc
	}
	if e.Operator == "=" {
		v, exc := interp.evalExpression(ctx, e.Right)
		if exc != nil {
			return nil, exc
		}
		if exc := interp.putValue(ctx, ref, v); exc != nil {
			return nil, exc
		}
		return v, nil
	}

	old, exc := interp.getValue(ctx, ref)
	if exc != nil {
		return nil, exc
	}
	rightVal, exc := interp.evalExpression(ctx, e.Right)
	if exc != nil {
		return nil, exc
	}
	op := e.Operator[:len(e.Operator)-1]
	result, exc := interp.evalBinaryOp(op, old, rightVal)
	if exc != nil {
		return nil, exc
	}
	if exc := interp.putValue(ctx, ref, result); exc != nil {
		return nil, exc
	}
	return result, nil
}
