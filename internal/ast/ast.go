// Package ast defines the ECMAScript 5.1 Abstract Syntax Tree node types
// (spec.md §3 "AST node", §4.5 of ECMA-262 grammar productions).
//
// Every concrete node type is a tagged variant: a Go struct with named
// fields, satisfying the Node interface. Fields() and Attributes() expose
// the AST navigation contract spec.md §6 describes — an ordered list of
// named child/child-list slots, and a flat map of scalar metadata — so
// generic tools (pretty-printers, visitors) can walk any node without a
// type switch, the way the teacher's ast package exposes per-node
// TokenLiteral/String/Pos but organized as Go struct fields rather than an
// open class hierarchy (spec.md §9 "Dynamic dispatch on node kind").
package ast

import "github.com/es5lang/es5/internal/lexer"

// Child is the value of one field slot: another Node, a list of Children
// (spec.md §9 Open Questions: "AstChild = Node | List<AstChild> | Scalar |
// Null"), or a scalar (string, float64, bool) or nil.
type Child any

// Field is one named, ordered child or child-list slot of a Node.
type Field struct {
	Name  string
	Value Child
}

// Node is the base interface every AST node satisfies.
type Node interface {
	// Kind returns the node's tag, e.g. "BinaryExpression".
	Kind() string
	// Pos returns the start position of the node in source.
	Pos() lexer.Position
	// End returns the position just past the node in source.
	End() lexer.Position
	// Fields returns the node's ordered named child/child-list slots.
	Fields() []Field
	// Attributes returns the node's flat scalar metadata (e.g. "operator", "name").
	Attributes() map[string]any
	// String renders the node as ES5.1 source text (approximately; used for
	// debugging and the round-trip-parse testable property of spec.md §8).
	String() string
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action without itself being a value.
type Statement interface {
	Node
	statementNode()
}

// Program is the root of the AST (spec.md §3). Strict records whether the
// Program's own directive prologue (spec.md §4.3) contained "use strict".
type Program struct {
	Body      []Statement
	Strict    bool
	StartPos  lexer.Position
	EndPos    lexer.Position
}

func (p *Program) Kind() string          { return "Program" }
func (p *Program) Pos() lexer.Position   { return p.StartPos }
func (p *Program) End() lexer.Position   { return p.EndPos }
func (p *Program) Fields() []Field       { return []Field{{"Body", stmtChildren(p.Body)}} }
func (p *Program) Attributes() map[string]any {
	return map[string]any{"strict": p.Strict}
}
func (p *Program) String() string {
	s := ""
	for _, st := range p.Body {
		s += st.String() + "\n"
	}
	return s
}

func stmtChildren(stmts []Statement) []Child {
	out := make([]Child, len(stmts))
	for i, s := range stmts {
		out[i] = s
	}
	return out
}

func exprChildren(exprs []Expression) []Child {
	out := make([]Child, len(exprs))
	for i, e := range exprs {
		out[i] = e
	}
	return out
}
