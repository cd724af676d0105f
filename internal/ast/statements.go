package ast

import (
	"strings"

	"github.com/es5lang/es5/internal/lexer"
)

// BlockStatement is a Block (ES5.1 §12.1): a brace-delimited statement list.
type BlockStatement struct {
	Body     []Statement
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (n *BlockStatement) statementNode()     {}
func (n *BlockStatement) Kind() string        { return "BlockStatement" }
func (n *BlockStatement) Pos() lexer.Position { return n.StartPos }
func (n *BlockStatement) End() lexer.Position { return n.EndPos }
func (n *BlockStatement) Fields() []Field     { return []Field{{"Body", stmtChildren(n.Body)}} }
func (n *BlockStatement) Attributes() map[string]any { return nil }
func (n *BlockStatement) String() string {
	parts := make([]string, len(n.Body))
	for i, s := range n.Body {
		parts[i] = s.String()
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

// VariableDeclarator is one binding inside a VariableStatement
// (ES5.1 §12.2), e.g. `x = 1` in `var x = 1, y;`.
type VariableDeclarator struct {
	Id       *Identifier
	Init     Expression // nil when no initializer
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (n *VariableDeclarator) Kind() string        { return "VariableDeclarator" }
func (n *VariableDeclarator) Pos() lexer.Position { return n.StartPos }
func (n *VariableDeclarator) End() lexer.Position { return n.EndPos }
func (n *VariableDeclarator) Fields() []Field {
	var init Child
	if n.Init != nil {
		init = n.Init
	}
	return []Field{{"Id", n.Id}, {"Init", init}}
}
func (n *VariableDeclarator) Attributes() map[string]any { return nil }
func (n *VariableDeclarator) String() string {
	if n.Init != nil {
		return n.Id.Name + " = " + n.Init.String()
	}
	return n.Id.Name
}

// VariableStatement is a `var` declaration statement (ES5.1 §12.2).
type VariableStatement struct {
	Declarations []*VariableDeclarator
	StartPos     lexer.Position
	EndPos       lexer.Position
}

func (n *VariableStatement) statementNode()     {}
func (n *VariableStatement) Kind() string        { return "VariableStatement" }
func (n *VariableStatement) Pos() lexer.Position { return n.StartPos }
func (n *VariableStatement) End() lexer.Position { return n.EndPos }
func (n *VariableStatement) Fields() []Field {
	cs := make([]Child, len(n.Declarations))
	for i, d := range n.Declarations {
		cs[i] = d
	}
	return []Field{{"Declarations", cs}}
}
func (n *VariableStatement) Attributes() map[string]any { return nil }
func (n *VariableStatement) String() string {
	parts := make([]string, len(n.Declarations))
	for i, d := range n.Declarations {
		parts[i] = d.String()
	}
	return "var " + strings.Join(parts, ", ") + ";"
}

// EmptyStatement is a bare `;` (ES5.1 §12.3).
type EmptyStatement struct {
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (n *EmptyStatement) statementNode()     {}
func (n *EmptyStatement) Kind() string        { return "EmptyStatement" }
func (n *EmptyStatement) Pos() lexer.Position { return n.StartPos }
func (n *EmptyStatement) End() lexer.Position { return n.EndPos }
func (n *EmptyStatement) Fields() []Field     { return nil }
func (n *EmptyStatement) Attributes() map[string]any { return nil }
func (n *EmptyStatement) String() string             { return ";" }

// ExpressionStatement is an ExpressionStatement (ES5.1 §12.4).
type ExpressionStatement struct {
	Expr     Expression
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (n *ExpressionStatement) statementNode()     {}
func (n *ExpressionStatement) Kind() string        { return "ExpressionStatement" }
func (n *ExpressionStatement) Pos() lexer.Position { return n.StartPos }
func (n *ExpressionStatement) End() lexer.Position { return n.EndPos }
func (n *ExpressionStatement) Fields() []Field     { return []Field{{"Expr", n.Expr}} }
func (n *ExpressionStatement) Attributes() map[string]any { return nil }
func (n *ExpressionStatement) String() string             { return n.Expr.String() + ";" }

// IfStatement is an IfStatement (ES5.1 §12.5). Alternate is nil when there
// is no `else` clause.
type IfStatement struct {
	Test       Expression
	Consequent Statement
	Alternate  Statement
	StartPos   lexer.Position
	EndPos     lexer.Position
}

func (n *IfStatement) statementNode()     {}
func (n *IfStatement) Kind() string        { return "IfStatement" }
func (n *IfStatement) Pos() lexer.Position { return n.StartPos }
func (n *IfStatement) End() lexer.Position { return n.EndPos }
func (n *IfStatement) Fields() []Field {
	var alt Child
	if n.Alternate != nil {
		alt = n.Alternate
	}
	return []Field{{"Test", n.Test}, {"Consequent", n.Consequent}, {"Alternate", alt}}
}
func (n *IfStatement) Attributes() map[string]any { return nil }
func (n *IfStatement) String() string {
	s := "if (" + n.Test.String() + ") " + n.Consequent.String()
	if n.Alternate != nil {
		s += " else " + n.Alternate.String()
	}
	return s
}

// DoWhileStatement is a do-while iteration statement (ES5.1 §12.6.1).
type DoWhileStatement struct {
	Body     Statement
	Test     Expression
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (n *DoWhileStatement) statementNode()     {}
func (n *DoWhileStatement) Kind() string        { return "DoWhileStatement" }
func (n *DoWhileStatement) Pos() lexer.Position { return n.StartPos }
func (n *DoWhileStatement) End() lexer.Position { return n.EndPos }
func (n *DoWhileStatement) Fields() []Field {
	return []Field{{"Body", n.Body}, {"Test", n.Test}}
}
func (n *DoWhileStatement) Attributes() map[string]any { return nil }
func (n *DoWhileStatement) String() string {
	return "do " + n.Body.String() + " while (" + n.Test.String() + ");"
}

// WhileStatement is a while iteration statement (ES5.1 §12.6.2).
type WhileStatement struct {
	Test     Expression
	Body     Statement
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (n *WhileStatement) statementNode()     {}
func (n *WhileStatement) Kind() string        { return "WhileStatement" }
func (n *WhileStatement) Pos() lexer.Position { return n.StartPos }
func (n *WhileStatement) End() lexer.Position { return n.EndPos }
func (n *WhileStatement) Fields() []Field {
	return []Field{{"Test", n.Test}, {"Body", n.Body}}
}
func (n *WhileStatement) Attributes() map[string]any { return nil }
func (n *WhileStatement) String() string {
	return "while (" + n.Test.String() + ") " + n.Body.String()
}

// ForStatement is a C-style for statement (ES5.1 §12.6.3). Init may be a
// VariableStatement (var-form) or an Expression, or nil; Test and Update may
// be nil.
type ForStatement struct {
	Init     Node // *VariableStatement, Expression, or nil
	Test     Expression
	Update   Expression
	Body     Statement
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (n *ForStatement) statementNode()     {}
func (n *ForStatement) Kind() string        { return "ForStatement" }
func (n *ForStatement) Pos() lexer.Position { return n.StartPos }
func (n *ForStatement) End() lexer.Position { return n.EndPos }
func (n *ForStatement) Fields() []Field {
	var initC, testC, updC Child
	if n.Init != nil {
		initC = n.Init
	}
	if n.Test != nil {
		testC = n.Test
	}
	if n.Update != nil {
		updC = n.Update
	}
	return []Field{{"Init", initC}, {"Test", testC}, {"Update", updC}, {"Body", n.Body}}
}
func (n *ForStatement) Attributes() map[string]any { return nil }
func (n *ForStatement) String() string {
	init, test, upd := "", "", ""
	if n.Init != nil {
		init = n.Init.String()
	}
	if n.Test != nil {
		test = n.Test.String()
	}
	if n.Update != nil {
		upd = n.Update.String()
	}
	return "for (" + init + "; " + test + "; " + upd + ") " + n.Body.String()
}

// ForInStatement is a for-in iteration statement (ES5.1 §12.6.4). Left is
// either a *VariableDeclarator (var-form, single binding, no initializer) or
// an Expression (assignment-target form).
type ForInStatement struct {
	Left     Node
	Right    Expression
	Body     Statement
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (n *ForInStatement) statementNode()     {}
func (n *ForInStatement) Kind() string        { return "ForInStatement" }
func (n *ForInStatement) Pos() lexer.Position { return n.StartPos }
func (n *ForInStatement) End() lexer.Position { return n.EndPos }
func (n *ForInStatement) Fields() []Field {
	return []Field{{"Left", n.Left}, {"Right", n.Right}, {"Body", n.Body}}
}
func (n *ForInStatement) Attributes() map[string]any { return nil }
func (n *ForInStatement) String() string {
	return "for (" + n.Left.String() + " in " + n.Right.String() + ") " + n.Body.String()
}

// ContinueStatement is a ContinueStatement (ES5.1 §12.7). Label is nil for
// the unlabeled form.
type ContinueStatement struct {
	Label    *Identifier
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (n *ContinueStatement) statementNode()     {}
func (n *ContinueStatement) Kind() string        { return "ContinueStatement" }
func (n *ContinueStatement) Pos() lexer.Position { return n.StartPos }
func (n *ContinueStatement) End() lexer.Position { return n.EndPos }
func (n *ContinueStatement) Fields() []Field {
	var lbl Child
	if n.Label != nil {
		lbl = n.Label
	}
	return []Field{{"Label", lbl}}
}
func (n *ContinueStatement) Attributes() map[string]any { return nil }
func (n *ContinueStatement) String() string {
	if n.Label != nil {
		return "continue " + n.Label.Name + ";"
	}
	return "continue;"
}

// BreakStatement is a BreakStatement (ES5.1 §12.8). Label is nil for the
// unlabeled form.
type BreakStatement struct {
	Label    *Identifier
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (n *BreakStatement) statementNode()     {}
func (n *BreakStatement) Kind() string        { return "BreakStatement" }
func (n *BreakStatement) Pos() lexer.Position { return n.StartPos }
func (n *BreakStatement) End() lexer.Position { return n.EndPos }
func (n *BreakStatement) Fields() []Field {
	var lbl Child
	if n.Label != nil {
		lbl = n.Label
	}
	return []Field{{"Label", lbl}}
}
func (n *BreakStatement) Attributes() map[string]any { return nil }
func (n *BreakStatement) String() string {
	if n.Label != nil {
		return "break " + n.Label.Name + ";"
	}
	return "break;"
}

// ReturnStatement is a ReturnStatement (ES5.1 §12.9). Argument is nil for the
// bare `return;` form.
type ReturnStatement struct {
	Argument Expression
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (n *ReturnStatement) statementNode()     {}
func (n *ReturnStatement) Kind() string        { return "ReturnStatement" }
func (n *ReturnStatement) Pos() lexer.Position { return n.StartPos }
func (n *ReturnStatement) End() lexer.Position { return n.EndPos }
func (n *ReturnStatement) Fields() []Field {
	var arg Child
	if n.Argument != nil {
		arg = n.Argument
	}
	return []Field{{"Argument", arg}}
}
func (n *ReturnStatement) Attributes() map[string]any { return nil }
func (n *ReturnStatement) String() string {
	if n.Argument != nil {
		return "return " + n.Argument.String() + ";"
	}
	return "return;"
}

// WithStatement is a WithStatement (ES5.1 §12.10); an early error in strict
// mode (spec.md §4.3).
type WithStatement struct {
	Object   Expression
	Body     Statement
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (n *WithStatement) statementNode()     {}
func (n *WithStatement) Kind() string        { return "WithStatement" }
func (n *WithStatement) Pos() lexer.Position { return n.StartPos }
func (n *WithStatement) End() lexer.Position { return n.EndPos }
func (n *WithStatement) Fields() []Field {
	return []Field{{"Object", n.Object}, {"Body", n.Body}}
}
func (n *WithStatement) Attributes() map[string]any { return nil }
func (n *WithStatement) String() string {
	return "with (" + n.Object.String() + ") " + n.Body.String()
}

// CaseClause is one `case expr:` or default `:` arm of a SwitchStatement
// (ES5.1 §12.11). Test is nil for the default clause.
type CaseClause struct {
	Test       Expression
	Consequent []Statement
	StartPos   lexer.Position
	EndPos     lexer.Position
}

func (n *CaseClause) Kind() string        { return "CaseClause" }
func (n *CaseClause) Pos() lexer.Position { return n.StartPos }
func (n *CaseClause) End() lexer.Position { return n.EndPos }
func (n *CaseClause) Fields() []Field {
	var test Child
	if n.Test != nil {
		test = n.Test
	}
	return []Field{{"Test", test}, {"Consequent", stmtChildren(n.Consequent)}}
}
func (n *CaseClause) Attributes() map[string]any { return nil }
func (n *CaseClause) String() string {
	var sb strings.Builder
	if n.Test != nil {
		sb.WriteString("case " + n.Test.String() + ":")
	} else {
		sb.WriteString("default:")
	}
	for _, s := range n.Consequent {
		sb.WriteString(" " + s.String())
	}
	return sb.String()
}

// SwitchStatement is a SwitchStatement (ES5.1 §12.11).
type SwitchStatement struct {
	Discriminant Expression
	Cases        []*CaseClause
	StartPos     lexer.Position
	EndPos       lexer.Position
}

func (n *SwitchStatement) statementNode()     {}
func (n *SwitchStatement) Kind() string        { return "SwitchStatement" }
func (n *SwitchStatement) Pos() lexer.Position { return n.StartPos }
func (n *SwitchStatement) End() lexer.Position { return n.EndPos }
func (n *SwitchStatement) Fields() []Field {
	cs := make([]Child, len(n.Cases))
	for i, c := range n.Cases {
		cs[i] = c
	}
	return []Field{{"Discriminant", n.Discriminant}, {"Cases", cs}}
}
func (n *SwitchStatement) Attributes() map[string]any { return nil }
func (n *SwitchStatement) String() string {
	parts := make([]string, len(n.Cases))
	for i, c := range n.Cases {
		parts[i] = c.String()
	}
	return "switch (" + n.Discriminant.String() + ") { " + strings.Join(parts, " ") + " }"
}

// LabeledStatement is a LabelledStatement (ES5.1 §12.12).
type LabeledStatement struct {
	Label    *Identifier
	Body     Statement
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (n *LabeledStatement) statementNode()     {}
func (n *LabeledStatement) Kind() string        { return "LabeledStatement" }
func (n *LabeledStatement) Pos() lexer.Position { return n.StartPos }
func (n *LabeledStatement) End() lexer.Position { return n.EndPos }
func (n *LabeledStatement) Fields() []Field {
	return []Field{{"Label", n.Label}, {"Body", n.Body}}
}
func (n *LabeledStatement) Attributes() map[string]any { return nil }
func (n *LabeledStatement) String() string {
	return n.Label.Name + ": " + n.Body.String()
}

// ThrowStatement is a ThrowStatement (ES5.1 §12.13).
type ThrowStatement struct {
	Argument Expression
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (n *ThrowStatement) statementNode()     {}
func (n *ThrowStatement) Kind() string        { return "ThrowStatement" }
func (n *ThrowStatement) Pos() lexer.Position { return n.StartPos }
func (n *ThrowStatement) End() lexer.Position { return n.EndPos }
func (n *ThrowStatement) Fields() []Field     { return []Field{{"Argument", n.Argument}} }
func (n *ThrowStatement) Attributes() map[string]any { return nil }
func (n *ThrowStatement) String() string             { return "throw " + n.Argument.String() + ";" }

// CatchClause is the `catch (param) { body }` clause of a TryStatement
// (ES5.1 §12.14).
type CatchClause struct {
	Param    *Identifier
	Body     *BlockStatement
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (n *CatchClause) Kind() string        { return "CatchClause" }
func (n *CatchClause) Pos() lexer.Position { return n.StartPos }
func (n *CatchClause) End() lexer.Position { return n.EndPos }
func (n *CatchClause) Fields() []Field {
	return []Field{{"Param", n.Param}, {"Body", n.Body}}
}
func (n *CatchClause) Attributes() map[string]any { return nil }
func (n *CatchClause) String() string {
	return "catch (" + n.Param.Name + ") " + n.Body.String()
}

// TryStatement is a TryStatement (ES5.1 §12.14). Handler and Finalizer are
// nil when absent; at least one of the two is always present (early error
// otherwise, enforced by the parser).
type TryStatement struct {
	Block     *BlockStatement
	Handler   *CatchClause
	Finalizer *BlockStatement
	StartPos  lexer.Position
	EndPos    lexer.Position
}

func (n *TryStatement) statementNode()     {}
func (n *TryStatement) Kind() string        { return "TryStatement" }
func (n *TryStatement) Pos() lexer.Position { return n.StartPos }
func (n *TryStatement) End() lexer.Position { return n.EndPos }
func (n *TryStatement) Fields() []Field {
	var handler, fin Child
	if n.Handler != nil {
		handler = n.Handler
	}
	if n.Finalizer != nil {
		fin = n.Finalizer
	}
	return []Field{{"Block", n.Block}, {"Handler", handler}, {"Finalizer", fin}}
}
func (n *TryStatement) Attributes() map[string]any { return nil }
func (n *TryStatement) String() string {
	s := "try " + n.Block.String()
	if n.Handler != nil {
		s += " " + n.Handler.String()
	}
	if n.Finalizer != nil {
		s += " finally " + n.Finalizer.String()
	}
	return s
}

// DebuggerStatement is a DebuggerStatement (ES5.1 §12.15); evaluates as a
// no-op (spec.md §4.6).
type DebuggerStatement struct {
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (n *DebuggerStatement) statementNode()     {}
func (n *DebuggerStatement) Kind() string        { return "DebuggerStatement" }
func (n *DebuggerStatement) Pos() lexer.Position { return n.StartPos }
func (n *DebuggerStatement) End() lexer.Position { return n.EndPos }
func (n *DebuggerStatement) Fields() []Field     { return nil }
func (n *DebuggerStatement) Attributes() map[string]any { return nil }
func (n *DebuggerStatement) String() string             { return "debugger;" }

// FunctionDeclaration is a FunctionDeclaration (ES5.1 §13); hoisted into the
// enclosing variable/function environment at the start of its scope
// (spec.md §4.3, §4.4).
type FunctionDeclaration struct {
	Id       *Identifier
	Params   []*Identifier
	Body     *BlockStatement
	Strict   bool
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (n *FunctionDeclaration) statementNode()     {}
func (n *FunctionDeclaration) Kind() string        { return "FunctionDeclaration" }
func (n *FunctionDeclaration) Pos() lexer.Position { return n.StartPos }
func (n *FunctionDeclaration) End() lexer.Position { return n.EndPos }
func (n *FunctionDeclaration) Fields() []Field {
	params := make([]Child, len(n.Params))
	for i, p := range n.Params {
		params[i] = p
	}
	return []Field{{"Id", n.Id}, {"Params", params}, {"Body", n.Body}}
}
func (n *FunctionDeclaration) Attributes() map[string]any {
	return map[string]any{"strict": n.Strict}
}
func (n *FunctionDeclaration) String() string {
	return "function " + n.Id.Name + "(" + joinParams(n.Params) + ") " + n.Body.String()
}
