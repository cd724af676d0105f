package interp

import (
	"github.com/es5lang/es5/internal/ast"
	"github.com/es5lang/es5/internal/runtime"
)

// declarationBindingInstantiation implements ES5.1 §10.5 Declaration
// Binding Instantiation: bind each formal parameter name (if not already
// bound — functions.go binds parameters to their actual argument values
// before calling this), hoist every function declaration reachable from
// stmts (without descending into a nested function's own body) into
// ctx.VariableEnv, overwriting any existing binding, then hoist every `var`
// name the same way without overwriting an existing binding.
func (interp *Interpreter) declarationBindingInstantiation(ctx *runtime.ExecutionContext, stmts []ast.Statement, paramNames []string, isFunctionCode bool) {
	rec := ctx.VariableEnv.Record
	for _, name := range paramNames {
		if !rec.HasBinding(name) {
			rec.CreateMutableBinding(name, false)
		}
	}

	funcDecls, varNames := collectHoistable(stmts)
	for _, fd := range funcDecls {
		fn := interp.createFunction(fd.Id.Name, fd.Params, fd.Body, fd.Strict || ctx.Strict, ctx.LexicalEnv, "")
		if rec.HasBinding(fd.Id.Name) {
			_ = rec.SetMutableBinding(fd.Id.Name, fn, false)
		} else {
			rec.CreateMutableBinding(fd.Id.Name, false)
			_ = rec.SetMutableBinding(fd.Id.Name, fn, false)
		}
	}
	for _, name := range varNames {
		if !rec.HasBinding(name) {
			rec.CreateMutableBinding(name, false)
		}
	}
}

// collectHoistable walks a statement list the way ES5.1 §10.5 scans source
// text for VariableDeclaration and FunctionDeclaration productions: into
// every nested statement (blocks, if/while/for/switch/try/labeled/with)
// but never into the body of a FunctionDeclaration or FunctionExpression,
// whose own hoisting happens only once that function is itself called.
func collectHoistable(stmts []ast.Statement) (funcDecls []*ast.FunctionDeclaration, varNames []string) {
	var walkStmt func(ast.Statement)
	var walkStmts func([]ast.Statement)

	walkStmts = func(list []ast.Statement) {
		for _, s := range list {
			walkStmt(s)
		}
	}
	walkStmt = func(stmt ast.Statement) {
		switch s := stmt.(type) {
		case *ast.FunctionDeclaration:
			funcDecls = append(funcDecls, s)
		case *ast.VariableStatement:
			for _, d := range s.Declarations {
				varNames = append(varNames, d.Id.Name)
			}
		case *ast.BlockStatement:
			walkStmts(s.Body)
		case *ast.IfStatement:
			walkStmt(s.Consequent)
			if s.Alternate != nil {
				walkStmt(s.Alternate)
			}
		case *ast.DoWhileStatement:
			walkStmt(s.Body)
		case *ast.WhileStatement:
			walkStmt(s.Body)
		case *ast.ForStatement:
			if vs, ok := s.Init.(*ast.VariableStatement); ok {
				for _, d := range vs.Declarations {
					varNames = append(varNames, d.Id.Name)
				}
			}
			walkStmt(s.Body)
		case *ast.ForInStatement:
			if vd, ok := s.Left.(*ast.VariableDeclarator); ok {
				varNames = append(varNames, vd.Id.Name)
			}
			walkStmt(s.Body)
		case *ast.WithStatement:
			walkStmt(s.Body)
		case *ast.SwitchStatement:
			for _, clause := range s.Cases {
				walkStmts(clause.Consequent)
			}
		case *ast.LabeledStatement:
			walkStmt(s.Body)
		case *ast.TryStatement:
			walkStmts(s.Block.Body)
			if s.Handler != nil {
				walkStmts(s.Handler.Body.Body)
			}
			if s.Finalizer != nil {
				walkStmts(s.Finalizer.Body)
			}
		}
	}

	walkStmts(stmts)
	return funcDecls, varNames
}

// evalStatements runs a statement list in order (a Program body or a
// function/block body), short-circuiting on the first abrupt completion
// (ES5.1 §12.1's block-evaluation rule: the value of a block is the value
// of its last Normal-completing statement, carried forward across
// intervening value-less statements).
func (interp *Interpreter) evalStatements(ctx *runtime.ExecutionContext, stmts []ast.Statement) runtime.Completion {
	var last runtime.Value = runtime.Undefined
	for _, stmt := range stmts {
		c := interp.evalStatement(ctx, stmt)
		if c.Value != nil {
			last = c.Value
		}
		if c.IsAbrupt() {
			c.Value = last
			return c
		}
	}
	return runtime.NormalCompletion(last)
}

// evalStatement dispatches on the concrete ast.Statement type (spec.md §9
// "Dynamic dispatch on node kind"), implementing each statement's ES5.1
// §12 production.
func (interp *Interpreter) evalStatement(ctx *runtime.ExecutionContext, stmt ast.Statement) runtime.Completion {
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		return interp.evalStatements(ctx, s.Body)
	case *ast.VariableStatement:
		return interp.evalVariableStatement(ctx, s)
	case *ast.EmptyStatement:
		return runtime.NormalCompletion(nil)
	case *ast.ExpressionStatement:
		v, exc := interp.evalExpression(ctx, s.Expr)
		if exc != nil {
			return runtime.ThrowCompletion(exc)
		}
		return runtime.NormalCompletion(v)
	case *ast.IfStatement:
		return interp.evalIfStatement(ctx, s)
	case *ast.DoWhileStatement:
		return interp.evalDoWhileStatement(ctx, s, "")
	case *ast.WhileStatement:
		return interp.evalWhileStatement(ctx, s, "")
	case *ast.ForStatement:
		return interp.evalForStatement(ctx, s, "")
	case *ast.ForInStatement:
		return interp.evalForInStatement(ctx, s, "")
	case *ast.ContinueStatement:
		label := ""
		if s.Label != nil {
			label = s.Label.Name
		}
		return runtime.ContinueCompletion(label)
	case *ast.BreakStatement:
		label := ""
		if s.Label != nil {
			label = s.Label.Name
		}
		return runtime.BreakCompletion(label)
	case *ast.ReturnStatement:
		var v runtime.Value = runtime.Undefined
		if s.Argument != nil {
			val, exc := interp.evalExpression(ctx, s.Argument)
			if exc != nil {
				return runtime.ThrowCompletion(exc)
			}
			v = val
		}
		return runtime.ReturnCompletion(v)
	case *ast.WithStatement:
		return interp.evalWithStatement(ctx, s)
	case *ast.SwitchStatement:
		return interp.evalSwitchStatement(ctx, s, "")
	case *ast.LabeledStatement:
		return interp.evalLabeledStatement(ctx, s)
	case *ast.ThrowStatement:
		v, exc := interp.evalExpression(ctx, s.Argument)
		if exc != nil {
			return runtime.ThrowCompletion(exc)
		}
		return runtime.ThrowCompletion(runtime.Throw(v))
	case *ast.TryStatement:
		return interp.evalTryStatement(ctx, s)
	case *ast.DebuggerStatement:
		return runtime.NormalCompletion(nil)
	case *ast.FunctionDeclaration:
		// Hoisted by declarationBindingInstantiation; encountering one as a
		// statement (it is still a statement list member syntactically) is
		// a no-op (ES5.1 §12 NOTE, FunctionDeclaration produces no
		// completion of its own).
		return runtime.NormalCompletion(nil)
	default:
		return runtime.ThrowCompletion(runtime.NewTypeError("unsupported statement node"))
	}
}

func (interp *Interpreter) evalVariableStatement(ctx *runtime.ExecutionContext, s *ast.VariableStatement) runtime.Completion {
	for _, decl := range s.Declarations {
		if decl.Init == nil {
			continue
		}
		v, exc := interp.evalExpression(ctx, decl.Init)
		if exc != nil {
			return runtime.ThrowCompletion(exc)
		}
		exc = interp.bindIdentifier(ctx, decl.Id.Name, v)
		if exc != nil {
			return runtime.ThrowCompletion(exc)
		}
	}
	return runtime.NormalCompletion(nil)
}

// bindIdentifier assigns v to name's binding by walking the scope chain,
// used for var-declaration initializers (which target whichever var
// binding declarationBindingInstantiation already created, rather than a
// fresh property on the innermost environment).
func (interp *Interpreter) bindIdentifier(ctx *runtime.ExecutionContext, name string, v runtime.Value) *runtime.Exception {
	for env := ctx.LexicalEnv; env != nil; env = env.Outer {
		if env.Record.HasBinding(name) {
			return env.Record.SetMutableBinding(name, v, ctx.Strict)
		}
	}
	return ctx.VariableEnv.Record.SetMutableBinding(name, v, ctx.Strict)
}

func (interp *Interpreter) evalIfStatement(ctx *runtime.ExecutionContext, s *ast.IfStatement) runtime.Completion {
	test, exc := interp.evalExpression(ctx, s.Test)
	if exc != nil {
		return runtime.ThrowCompletion(exc)
	}
	if runtime.ToBoolean(test) {
		return interp.evalStatement(ctx, s.Consequent)
	}
	if s.Alternate != nil {
		return interp.evalStatement(ctx, s.Alternate)
	}
	return runtime.NormalCompletion(nil)
}

// loopSignal interprets a loop body's completion against the loop's own
// label (ES5.1 §12.6/§12.12): an unlabeled or matching-label Continue
// resumes iteration, an unlabeled or matching-label Break exits the loop
// normally, anything else (Return, Throw, a differently-labeled
// Break/Continue) propagates.
func loopSignal(c runtime.Completion, label string) (shouldBreak bool, propagate *runtime.Completion) {
	switch c.Type {
	case runtime.Break:
		if c.Target == "" || c.Target == label {
			return true, nil
		}
		return false, &c
	case runtime.Continue:
		if c.Target == "" || c.Target == label {
			return false, nil
		}
		return false, &c
	case runtime.Throw, runtime.Return:
		return false, &c
	default:
		return false, nil
	}
}

func (interp *Interpreter) evalWhileStatement(ctx *runtime.ExecutionContext, s *ast.WhileStatement, label string) runtime.Completion {
	var last runtime.Value = runtime.Undefined
	for {
		test, exc := interp.evalExpression(ctx, s.Test)
		if exc != nil {
			return runtime.ThrowCompletion(exc)
		}
		if !runtime.ToBoolean(test) {
			return runtime.NormalCompletion(last)
		}
		c := interp.evalStatement(ctx, s.Body)
		if c.Value != nil {
			last = c.Value
		}
		brk, propagate := loopSignal(c, label)
		if propagate != nil {
			propagate.Value = last
			return *propagate
		}
		if brk {
			return runtime.NormalCompletion(last)
		}
	}
}

func (interp *Interpreter) evalDoWhileStatement(ctx *runtime.ExecutionContext, s *ast.DoWhileStatement, label string) runtime.Completion {
	var last runtime.Value = runtime.Undefined
	for {
		c := interp.evalStatement(ctx, s.Body)
		if c.Value != nil {
			last = c.Value
		}
		brk, propagate := loopSignal(c, label)
		if propagate != nil {
			propagate.Value = last
			return *propagate
		}
		if brk {
			return runtime.NormalCompletion(last)
		}
		test, exc := interp.evalExpression(ctx, s.Test)
		if exc != nil {
			return runtime.ThrowCompletion(exc)
		}
		if !runtime.ToBoolean(test) {
			return runtime.NormalCompletion(last)
		}
	}
}

func (interp *Interpreter) evalForStatement(ctx *runtime.ExecutionContext, s *ast.ForStatement, label string) runtime.Completion {
	switch init := s.Init.(type) {
	case *ast.VariableStatement:
		if c := interp.evalVariableStatement(ctx, init); c.IsAbrupt() {
			return c
		}
	case ast.Expression:
		if _, exc := interp.evalExpression(ctx, init); exc != nil {
			return runtime.ThrowCompletion(exc)
		}
	}

	var last runtime.Value = runtime.Undefined
	for {
		if s.Test != nil {
			test, exc := interp.evalExpression(ctx, s.Test)
			if exc != nil {
				return runtime.ThrowCompletion(exc)
			}
			if !runtime.ToBoolean(test) {
				return runtime.NormalCompletion(last)
			}
		}
		c := interp.evalStatement(ctx, s.Body)
		if c.Value != nil {
			last = c.Value
		}
		brk, propagate := loopSignal(c, label)
		if propagate != nil {
			propagate.Value = last
			return *propagate
		}
		if brk {
			return runtime.NormalCompletion(last)
		}
		if s.Update != nil {
			if _, exc := interp.evalExpression(ctx, s.Update); exc != nil {
				return runtime.ThrowCompletion(exc)
			}
		}
	}
}

func (interp *Interpreter) evalForInStatement(ctx *runtime.ExecutionContext, s *ast.ForInStatement, label string) runtime.Completion {
	rightVal, exc := interp.evalExpression(ctx, s.Right)
	if exc != nil {
		return runtime.ThrowCompletion(exc)
	}
	if rightVal == runtime.Undefined || rightVal == runtime.Null {
		return runtime.NormalCompletion(runtime.Undefined)
	}
	obj, exc := interp.toObject(rightVal)
	if exc != nil {
		return runtime.ThrowCompletion(exc)
	}

	assign := func(name string) *runtime.Exception {
		switch left := s.Left.(type) {
		case *ast.VariableDeclarator:
			return interp.bindIdentifier(ctx, left.Id.Name, runtime.Str(name))
		case ast.Expression:
			ref, exc := interp.evalReference(ctx, left)
			if exc != nil {
				return exc
			}
			return interp.putValue(ctx, ref, runtime.Str(name))
		}
		return nil
	}

	var last runtime.Value = runtime.Undefined
	seen := map[string]bool{}
	for cur := obj; cur != nil; cur = cur.Prototype {
		for _, name := range cur.OwnPropertyNames() {
			if seen[name] {
				continue
			}
			seen[name] = true
			d := cur.GetOwnProperty(name)
			if d == nil || !d.Enumerable {
				continue
			}
			if exc := assign(name); exc != nil {
				return runtime.ThrowCompletion(exc)
			}
			c := interp.evalStatement(ctx, s.Body)
			if c.Value != nil {
				last = c.Value
			}
			brk, propagate := loopSignal(c, label)
			if propagate != nil {
				propagate.Value = last
				return *propagate
			}
			if brk {
				return runtime.NormalCompletion(last)
			}
		}
	}
	return runtime.NormalCompletion(last)
}

func (interp *Interpreter) evalWithStatement(ctx *runtime.ExecutionContext, s *ast.WithStatement) runtime.Completion {
	v, exc := interp.evalExpression(ctx, s.Object)
	if exc != nil {
		return runtime.ThrowCompletion(exc)
	}
	obj, exc := interp.toObject(v)
	if exc != nil {
		return runtime.ThrowCompletion(exc)
	}
	rec := runtime.NewObjectEnvironmentRecord(obj, true)
	withEnv := runtime.NewLexicalEnvironment(rec, ctx.LexicalEnv)
	withCtx := &runtime.ExecutionContext{LexicalEnv: withEnv, VariableEnv: ctx.VariableEnv, ThisBinding: ctx.ThisBinding, Strict: ctx.Strict}
	return interp.evalStatement(withCtx, s.Body)
}

func (interp *Interpreter) evalSwitchStatement(ctx *runtime.ExecutionContext, s *ast.SwitchStatement, label string) runtime.Completion {
	disc, exc := interp.evalExpression(ctx, s.Discriminant)
	if exc != nil {
		return runtime.ThrowCompletion(exc)
	}

	matchIdx := -1
	defaultIdx := -1
	for i, clause := range s.Cases {
		if clause.Test == nil {
			defaultIdx = i
			continue
		}
		testVal, exc := interp.evalExpression(ctx, clause.Test)
		if exc != nil {
			return runtime.ThrowCompletion(exc)
		}
		if runtime.StrictEquals(disc, testVal) {
			matchIdx = i
			break
		}
	}
	if matchIdx == -1 {
		if defaultIdx == -1 {
			return runtime.NormalCompletion(runtime.Undefined)
		}
		matchIdx = defaultIdx
	}

	var last runtime.Value = runtime.Undefined
	for i := matchIdx; i < len(s.Cases); i++ {
		for _, stmt := range s.Cases[i].Consequent {
			c := interp.evalStatement(ctx, stmt)
			if c.Value != nil {
				last = c.Value
			}
			if c.Type == runtime.Break && (c.Target == "" || c.Target == label) {
				return runtime.NormalCompletion(last)
			}
			if c.IsAbrupt() {
				c.Value = last
				return c
			}
		}
	}
	return runtime.NormalCompletion(last)
}

func (interp *Interpreter) evalLabeledStatement(ctx *runtime.ExecutionContext, s *ast.LabeledStatement) runtime.Completion {
	label := s.Label.Name
	var c runtime.Completion
	switch body := s.Body.(type) {
	case *ast.WhileStatement:
		c = interp.evalWhileStatement(ctx, body, label)
	case *ast.DoWhileStatement:
		c = interp.evalDoWhileStatement(ctx, body, label)
	case *ast.ForStatement:
		c = interp.evalForStatement(ctx, body, label)
	case *ast.ForInStatement:
		c = interp.evalForInStatement(ctx, body, label)
	case *ast.SwitchStatement:
		c = interp.evalSwitchStatement(ctx, body, label)
	default:
		c = interp.evalStatement(ctx, s.Body)
	}
	if c.Type == runtime.Break && c.Target == label {
		return runtime.NormalCompletion(c.Value)
	}
	return c
}

func (interp *Interpreter) evalTryStatement(ctx *runtime.ExecutionContext, s *ast.TryStatement) runtime.Completion {
	c := interp.evalStatements(ctx, s.Block.Body)

	if c.Type == runtime.Throw && s.Handler != nil {
		rec := runtime.NewDeclarativeEnvironmentRecord()
		rec.CreateMutableBinding(s.Handler.Param.Name, false)
		_ = rec.SetMutableBinding(s.Handler.Param.Name, exceptionValue(interp, c.Exception), ctx.Strict)
		catchEnv := runtime.NewLexicalEnvironment(rec, ctx.LexicalEnv)
		catchCtx := &runtime.ExecutionContext{LexicalEnv: catchEnv, VariableEnv: ctx.VariableEnv, ThisBinding: ctx.ThisBinding, Strict: ctx.Strict}
		c = interp.evalStatements(catchCtx, s.Handler.Body.Body)
	}

	if s.Finalizer != nil {
		fc := interp.evalStatements(ctx, s.Finalizer.Body)
		if fc.IsAbrupt() {
			return fc
		}
	}
	return c
}

// exceptionValue extracts the catch-bound Value from an *Exception, lazily
// materializing a synthesized (Kind/Message-only) exception into a real
// Error instance the way Interpreter.raise does for a throw escaping to the
// host.
func exceptionValue(interp *Interpreter, exc *runtime.Exception) runtime.Value {
	if exc == nil {
		return runtime.Undefined
	}
	if !exc.IsSynthesized() {
		return exc.Value
	}
	resolved := interp.raise(exc)
	if resolved.Value != nil {
		return resolved.Value
	}
	return runtime.Str(resolved.Error())
}
