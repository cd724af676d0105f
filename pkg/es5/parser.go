package es5

import (
	"github.com/es5lang/es5/internal/ast"
	"github.com/es5lang/es5/internal/parser"
)

// Parser wraps a single parse session over one source string (spec.md §6's
// `make_string_parser`): Parse() parses a full Program, while the
// Parse<Production> methods let a caller drive individual grammar entry
// points directly — useful for tooling that only needs to parse a
// fragment (a single statement or expression) rather than a whole program.
type Parser struct {
	p *parser.Parser
}

// NewStringParser creates a Parser over source. filename is used only for
// diagnostics in any ParseExceptions the session accumulates.
func NewStringParser(source, filename string) *Parser {
	return &Parser{p: parser.New(source, filename)}
}

// Parse parses source as a complete Program (ES5.1 §14).
func (ps *Parser) Parse() (*Program, error) {
	program := ps.p.ParseProgram()
	if errs := collectErrors(ps.p); len(errs) > 0 {
		return nil, errs
	}
	return program, nil
}

// ParseStatement parses a single Statement production.
func (ps *Parser) ParseStatement() (ast.Statement, error) {
	stmt := ps.p.ParseStatement()
	if errs := collectErrors(ps.p); len(errs) > 0 {
		return nil, errs
	}
	return stmt, nil
}

// ParseExpression parses a single Expression production.
func (ps *Parser) ParseExpression() (ast.Expression, error) {
	expr := ps.p.ParseExpression()
	if errs := collectErrors(ps.p); len(errs) > 0 {
		return nil, errs
	}
	return expr, nil
}

// ParseFunctionDeclaration parses a single FunctionDeclaration production.
func (ps *Parser) ParseFunctionDeclaration() (*ast.FunctionDeclaration, error) {
	decl := ps.p.ParseFunctionDeclaration()
	if errs := collectErrors(ps.p); len(errs) > 0 {
		return nil, errs
	}
	return decl, nil
}
