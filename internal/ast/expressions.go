package ast

import (
	"strconv"
	"strings"

	"github.com/es5lang/es5/internal/lexer"
)

// Identifier is a reference to a binding (ES5.1 §11.1.2).
type Identifier struct {
	Name     string
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (n *Identifier) expressionNode()              {}
func (n *Identifier) Kind() string                  { return "Identifier" }
func (n *Identifier) Pos() lexer.Position           { return n.StartPos }
func (n *Identifier) End() lexer.Position           { return n.EndPos }
func (n *Identifier) Fields() []Field               { return nil }
func (n *Identifier) Attributes() map[string]any    { return map[string]any{"name": n.Name} }
func (n *Identifier) String() string                { return n.Name }

// ThisExpression is the `this` keyword (ES5.1 §11.1.1).
type ThisExpression struct {
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (n *ThisExpression) expressionNode()           {}
func (n *ThisExpression) Kind() string              { return "ThisExpression" }
func (n *ThisExpression) Pos() lexer.Position        { return n.StartPos }
func (n *ThisExpression) End() lexer.Position        { return n.EndPos }
func (n *ThisExpression) Fields() []Field            { return nil }
func (n *ThisExpression) Attributes() map[string]any { return nil }
func (n *ThisExpression) String() string             { return "this" }

// LiteralKind distinguishes the semantic kinds a Literal node can hold.
type LiteralKind int

const (
	NullLiteralKind LiteralKind = iota
	BooleanLiteralKind
	NumberLiteralKind
	StringLiteralKind
	RegexLiteralKind
)

// Literal is a NullLiteral, BooleanLiteral, NumericLiteral, StringLiteral or
// RegularExpressionLiteral (ES5.1 §7.8). Value holds the decoded semantic
// value: nil, bool, float64, string, or *lexer.RegexValue respectively.
type Literal struct {
	LitKind LiteralKind
	Value   any
	Raw     string
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (n *Literal) expressionNode()    {}
func (n *Literal) Kind() string        { return "Literal" }
func (n *Literal) Pos() lexer.Position { return n.StartPos }
func (n *Literal) End() lexer.Position { return n.EndPos }
func (n *Literal) Fields() []Field     { return nil }
func (n *Literal) Attributes() map[string]any {
	return map[string]any{"value": n.Value, "raw": n.Raw}
}
func (n *Literal) String() string {
	if n.LitKind == StringLiteralKind {
		return strconv.Quote(n.Value.(string))
	}
	return n.Raw
}

// ArrayExpression is an ArrayLiteral (ES5.1 §11.1.4). Elements may contain
// nil entries for elisions (e.g. `[1,,3]`).
type ArrayExpression struct {
	Elements []Expression
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (n *ArrayExpression) expressionNode()    {}
func (n *ArrayExpression) Kind() string        { return "ArrayExpression" }
func (n *ArrayExpression) Pos() lexer.Position { return n.StartPos }
func (n *ArrayExpression) End() lexer.Position { return n.EndPos }
func (n *ArrayExpression) Fields() []Field {
	return []Field{{"Elements", exprChildren(n.Elements)}}
}
func (n *ArrayExpression) Attributes() map[string]any { return nil }
func (n *ArrayExpression) String() string {
	parts := make([]string, len(n.Elements))
	for i, e := range n.Elements {
		if e != nil {
			parts[i] = e.String()
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// PropertyKind distinguishes the three ObjectLiteral property forms
// (ES5.1 §11.1.5): data, get accessor, set accessor.
type PropertyKind int

const (
	PropertyInit PropertyKind = iota
	PropertyGet
	PropertySet
)

// Property is one PropertyAssignment inside an ObjectExpression.
type Property struct {
	Key      Expression // Identifier, string Literal, or numeric Literal
	Value    Expression // FunctionExpression for Get/Set
	PropKind PropertyKind
	Computed bool
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (n *Property) expressionNode()    {}
func (n *Property) Kind() string        { return "Property" }
func (n *Property) Pos() lexer.Position { return n.StartPos }
func (n *Property) End() lexer.Position { return n.EndPos }
func (n *Property) Fields() []Field {
	return []Field{{"Key", n.Key}, {"Value", n.Value}}
}
func (n *Property) Attributes() map[string]any {
	kind := "init"
	switch n.PropKind {
	case PropertyGet:
		kind = "get"
	case PropertySet:
		kind = "set"
	}
	return map[string]any{"kind": kind, "computed": n.Computed}
}
func (n *Property) String() string {
	switch n.PropKind {
	case PropertyGet:
		return "get " + n.Key.String() + "() " + n.Value.String()
	case PropertySet:
		return "set " + n.Key.String() + "(...) " + n.Value.String()
	default:
		return n.Key.String() + ": " + n.Value.String()
	}
}

// ObjectExpression is an ObjectLiteral (ES5.1 §11.1.5).
type ObjectExpression struct {
	Properties []*Property
	StartPos   lexer.Position
	EndPos     lexer.Position
}

func (n *ObjectExpression) expressionNode()    {}
func (n *ObjectExpression) Kind() string        { return "ObjectExpression" }
func (n *ObjectExpression) Pos() lexer.Position { return n.StartPos }
func (n *ObjectExpression) End() lexer.Position { return n.EndPos }
func (n *ObjectExpression) Fields() []Field {
	cs := make([]Child, len(n.Properties))
	for i, p := range n.Properties {
		cs[i] = p
	}
	return []Field{{"Properties", cs}}
}
func (n *ObjectExpression) Attributes() map[string]any { return nil }
func (n *ObjectExpression) String() string {
	parts := make([]string, len(n.Properties))
	for i, p := range n.Properties {
		parts[i] = p.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// FunctionExpression is a FunctionExpression (ES5.1 §13). Id is nil for
// anonymous function expressions; when non-nil the name is bound only
// inside the function's own scope (spec.md §4.3 "Function declaration vs
// expression").
type FunctionExpression struct {
	Id        *Identifier
	Params    []*Identifier
	Body      *BlockStatement
	Strict    bool
	StartPos  lexer.Position
	EndPos    lexer.Position
}

func (n *FunctionExpression) expressionNode()    {}
func (n *FunctionExpression) Kind() string        { return "FunctionExpression" }
func (n *FunctionExpression) Pos() lexer.Position { return n.StartPos }
func (n *FunctionExpression) End() lexer.Position { return n.EndPos }
func (n *FunctionExpression) Fields() []Field {
	var id Child
	if n.Id != nil {
		id = n.Id
	}
	params := make([]Child, len(n.Params))
	for i, p := range n.Params {
		params[i] = p
	}
	return []Field{{"Id", id}, {"Params", params}, {"Body", n.Body}}
}
func (n *FunctionExpression) Attributes() map[string]any {
	return map[string]any{"strict": n.Strict}
}
func (n *FunctionExpression) String() string {
	name := ""
	if n.Id != nil {
		name = " " + n.Id.Name
	}
	return "function" + name + "(" + joinParams(n.Params) + ") " + n.Body.String()
}

func joinParams(params []*Identifier) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name
	}
	return strings.Join(parts, ", ")
}

// MemberExpression is a MemberExpression (ES5.1 §11.2): either `object.property`
// (Computed == false, Property is an Identifier) or `object[property]`
// (Computed == true, Property is any Expression).
type MemberExpression struct {
	Object   Expression
	Property Expression
	Computed bool
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (n *MemberExpression) expressionNode()    {}
func (n *MemberExpression) Kind() string        { return "MemberExpression" }
func (n *MemberExpression) Pos() lexer.Position { return n.StartPos }
func (n *MemberExpression) End() lexer.Position { return n.EndPos }
func (n *MemberExpression) Fields() []Field {
	return []Field{{"Object", n.Object}, {"Property", n.Property}}
}
func (n *MemberExpression) Attributes() map[string]any {
	return map[string]any{"computed": n.Computed}
}
func (n *MemberExpression) String() string {
	if n.Computed {
		return n.Object.String() + "[" + n.Property.String() + "]"
	}
	return n.Object.String() + "." + n.Property.String()
}

// NewExpression is a NewExpression / member new-with-arguments (ES5.1 §11.2.2).
type NewExpression struct {
	Callee   Expression
	Args     []Expression
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (n *NewExpression) expressionNode()    {}
func (n *NewExpression) Kind() string        { return "NewExpression" }
func (n *NewExpression) Pos() lexer.Position { return n.StartPos }
func (n *NewExpression) End() lexer.Position { return n.EndPos }
func (n *NewExpression) Fields() []Field {
	return []Field{{"Callee", n.Callee}, {"Args", exprChildren(n.Args)}}
}
func (n *NewExpression) Attributes() map[string]any { return nil }
func (n *NewExpression) String() string {
	return "new " + n.Callee.String() + "(" + joinExprs(n.Args) + ")"
}

// CallExpression is a CallExpression (ES5.1 §11.2.3).
type CallExpression struct {
	Callee   Expression
	Args     []Expression
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (n *CallExpression) expressionNode()    {}
func (n *CallExpression) Kind() string        { return "CallExpression" }
func (n *CallExpression) Pos() lexer.Position { return n.StartPos }
func (n *CallExpression) End() lexer.Position { return n.EndPos }
func (n *CallExpression) Fields() []Field {
	return []Field{{"Callee", n.Callee}, {"Args", exprChildren(n.Args)}}
}
func (n *CallExpression) Attributes() map[string]any { return nil }
func (n *CallExpression) String() string {
	return n.Callee.String() + "(" + joinExprs(n.Args) + ")"
}

func joinExprs(exprs []Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

// UpdateExpression is a postfix or prefix ++/-- (ES5.1 §11.3, §11.4.4-5).
type UpdateExpression struct {
	Operator string // "++" or "--"
	Argument Expression
	Prefix   bool
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (n *UpdateExpression) expressionNode()    {}
func (n *UpdateExpression) Kind() string        { return "UpdateExpression" }
func (n *UpdateExpression) Pos() lexer.Position { return n.StartPos }
func (n *UpdateExpression) End() lexer.Position { return n.EndPos }
func (n *UpdateExpression) Fields() []Field     { return []Field{{"Argument", n.Argument}} }
func (n *UpdateExpression) Attributes() map[string]any {
	return map[string]any{"operator": n.Operator, "prefix": n.Prefix}
}
func (n *UpdateExpression) String() string {
	if n.Prefix {
		return n.Operator + n.Argument.String()
	}
	return n.Argument.String() + n.Operator
}

// UnaryExpression is a unary operator expression (ES5.1 §11.4): delete, void,
// typeof, +, -, ~, !.
type UnaryExpression struct {
	Operator string
	Argument Expression
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (n *UnaryExpression) expressionNode()    {}
func (n *UnaryExpression) Kind() string        { return "UnaryExpression" }
func (n *UnaryExpression) Pos() lexer.Position { return n.StartPos }
func (n *UnaryExpression) End() lexer.Position { return n.EndPos }
func (n *UnaryExpression) Fields() []Field     { return []Field{{"Argument", n.Argument}} }
func (n *UnaryExpression) Attributes() map[string]any {
	return map[string]any{"operator": n.Operator}
}
func (n *UnaryExpression) String() string {
	sep := ""
	if len(n.Operator) > 1 {
		sep = " "
	}
	return n.Operator + sep + n.Argument.String()
}

// BinaryExpression is a binary operator expression: arithmetic, relational,
// equality, bitwise, `in`, `instanceof` (ES5.1 §11.5-11.10).
type BinaryExpression struct {
	Operator string
	Left     Expression
	Right    Expression
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (n *BinaryExpression) expressionNode()    {}
func (n *BinaryExpression) Kind() string        { return "BinaryExpression" }
func (n *BinaryExpression) Pos() lexer.Position { return n.StartPos }
func (n *BinaryExpression) End() lexer.Position { return n.EndPos }
func (n *BinaryExpression) Fields() []Field {
	return []Field{{"Left", n.Left}, {"Right", n.Right}}
}
func (n *BinaryExpression) Attributes() map[string]any {
	return map[string]any{"operator": n.Operator}
}
func (n *BinaryExpression) String() string {
	return "(" + n.Left.String() + " " + n.Operator + " " + n.Right.String() + ")"
}

// LogicalExpression is `&&` or `||` (ES5.1 §11.11); kept distinct from
// BinaryExpression because its evaluation short-circuits.
type LogicalExpression struct {
	Operator string
	Left     Expression
	Right    Expression
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (n *LogicalExpression) expressionNode()    {}
func (n *LogicalExpression) Kind() string        { return "LogicalExpression" }
func (n *LogicalExpression) Pos() lexer.Position { return n.StartPos }
func (n *LogicalExpression) End() lexer.Position { return n.EndPos }
func (n *LogicalExpression) Fields() []Field {
	return []Field{{"Left", n.Left}, {"Right", n.Right}}
}
func (n *LogicalExpression) Attributes() map[string]any {
	return map[string]any{"operator": n.Operator}
}
func (n *LogicalExpression) String() string {
	return "(" + n.Left.String() + " " + n.Operator + " " + n.Right.String() + ")"
}

// AssignmentExpression is `=` or a compound assignment (ES5.1 §11.13).
type AssignmentExpression struct {
	Operator string // "=", "+=", "-=", ...
	Left     Expression
	Right    Expression
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (n *AssignmentExpression) expressionNode()    {}
func (n *AssignmentExpression) Kind() string        { return "AssignmentExpression" }
func (n *AssignmentExpression) Pos() lexer.Position { return n.StartPos }
func (n *AssignmentExpression) End() lexer.Position { return n.EndPos }
func (n *AssignmentExpression) Fields() []Field {
	return []Field{{"Left", n.Left}, {"Right", n.Right}}
}
func (n *AssignmentExpression) Attributes() map[string]any {
	return map[string]any{"operator": n.Operator}
}
func (n *AssignmentExpression) String() string {
	return n.Left.String() + " " + n.Operator + " " + n.Right.String()
}

// ConditionalExpression is the `?:` ternary operator (ES5.1 §11.12).
type ConditionalExpression struct {
	Test       Expression
	Consequent Expression
	Alternate  Expression
	StartPos   lexer.Position
	EndPos     lexer.Position
}

func (n *ConditionalExpression) expressionNode()    {}
func (n *ConditionalExpression) Kind() string        { return "ConditionalExpression" }
func (n *ConditionalExpression) Pos() lexer.Position { return n.StartPos }
func (n *ConditionalExpression) End() lexer.Position { return n.EndPos }
func (n *ConditionalExpression) Fields() []Field {
	return []Field{{"Test", n.Test}, {"Consequent", n.Consequent}, {"Alternate", n.Alternate}}
}
func (n *ConditionalExpression) Attributes() map[string]any { return nil }
func (n *ConditionalExpression) String() string {
	return n.Test.String() + " ? " + n.Consequent.String() + " : " + n.Alternate.String()
}

// SequenceExpression is the comma operator (ES5.1 §11.14).
type SequenceExpression struct {
	Expressions []Expression
	StartPos    lexer.Position
	EndPos      lexer.Position
}

func (n *SequenceExpression) expressionNode()    {}
func (n *SequenceExpression) Kind() string        { return "SequenceExpression" }
func (n *SequenceExpression) Pos() lexer.Position { return n.StartPos }
func (n *SequenceExpression) End() lexer.Position { return n.EndPos }
func (n *SequenceExpression) Fields() []Field {
	return []Field{{"Expressions", exprChildren(n.Expressions)}}
}
func (n *SequenceExpression) Attributes() map[string]any { return nil }
func (n *SequenceExpression) String() string             { return joinExprs(n.Expressions) }
