// Package parser implements a recursive-descent / Pratt parser that turns
// an ECMAScript 5.1 token stream into an *ast.Program (spec.md §4.3).
//
// Key patterns:
//   - One-token lookahead: Parser.cur is the current token; advance() pulls
//     the next one from the lexer.TokenStream under an explicit scanning
//     Goal (division vs. regex), since the lexer cannot disambiguate '/' on
//     its own (spec.md §4.1/§4.2).
//   - Pratt expression parsing: prefixParseFns/infixParseFns keyed by token
//     type, combined with a precedence table, parse the 11.x expression
//     grammar without one function per precedence level.
//   - Automatic Semicolon Insertion: statement parsers call
//     consumeSemicolon(), which accepts an explicit ';', a following '}',
//     a line terminator before the next token, or EOF (spec.md §4.3 "ASI").
//   - Early errors accumulate in p.errors as *errors.ParseException; the
//     caller (pkg/es5) decides whether to surface only the first or all.
package parser

import (
	"fmt"

	"github.com/es5lang/es5/internal/ast"
	esrerrors "github.com/es5lang/es5/internal/errors"
	"github.com/es5lang/es5/internal/lexer"
)

// Precedence levels, lowest to highest (ES5.1 §11).
const (
	_ int = iota
	LOWEST
	COMMA       // ,
	ASSIGN      // = += -= ...
	CONDITIONAL // ?:
	LOGICALOR   // ||
	LOGICALAND  // &&
	BITOR       // |
	BITXOR      // ^
	BITAND      // &
	EQUALITY    // == != === !==
	RELATIONAL  // < > <= >= instanceof in
	SHIFT       // << >> >>>
	ADDITIVE    // + -
	MULTIPLICATIVE
	UNARY // ! ~ + - typeof void delete prefix ++ --
	POSTFIX
	CALL   // f(x)
	MEMBER // a.b a[b] new
)

var precedences = map[lexer.TokenType]int{
	lexer.COMMA:      COMMA,
	lexer.QUESTION:   CONDITIONAL,
	lexer.OR:         LOGICALOR,
	lexer.AND:        LOGICALAND,
	lexer.PIPE:       BITOR,
	lexer.CARET:      BITXOR,
	lexer.AMP:        BITAND,
	lexer.EQ:         EQUALITY,
	lexer.NE:         EQUALITY,
	lexer.EQQ:        EQUALITY,
	lexer.NEQ:        EQUALITY,
	lexer.LT:         RELATIONAL,
	lexer.GT:         RELATIONAL,
	lexer.LE:         RELATIONAL,
	lexer.GE:         RELATIONAL,
	lexer.INSTANCEOF: RELATIONAL,
	lexer.IN:         RELATIONAL,
	lexer.SHL:        SHIFT,
	lexer.SHR:        SHIFT,
	lexer.USHR:       SHIFT,
	lexer.PLUS:       ADDITIVE,
	lexer.MINUS:      ADDITIVE,
	lexer.STAR:       MULTIPLICATIVE,
	lexer.SLASH:      MULTIPLICATIVE,
	lexer.PERCENT:    MULTIPLICATIVE,
	lexer.LPAREN:     CALL,
	lexer.LBRACK:     MEMBER,
	lexer.DOT:        MEMBER,
}

type prefixParseFn func() ast.Expression
type infixParseFn func(left ast.Expression) ast.Expression

// Parser turns a token stream into an AST. NoIn suppresses the `in` operator
// while parsing the init-expression of a for(;;) / for-in head, resolving
// the ES5.1 §12.6.4 grammar ambiguity between the two for-statement forms.
type Parser struct {
	ts       *lexer.TokenStream
	filename string
	source   string

	cur    lexer.Token
	strict bool

	noIn bool

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn

	errors esrerrors.ParseExceptions

	loopDepth   int
	switchDepth int
	funcDepth   int
	labelStack  []map[string]bool
}

// New creates a Parser over source, reporting positions under filename (used
// only for diagnostics; "" is fine for parse_string).
func New(source, filename string) *Parser {
	l := lexer.New(source)
	ts := lexer.NewTokenStream(l)
	p := &Parser{ts: ts, filename: filename, source: source}
	p.labelStack = []map[string]bool{{}}

	p.prefixParseFns = map[lexer.TokenType]prefixParseFn{}
	p.infixParseFns = map[lexer.TokenType]infixParseFn{}
	p.registerPrefixFns()
	p.registerInfixFns()

	p.advance()
	return p
}

// Errors returns every ParseException accumulated while parsing.
func (p *Parser) Errors() esrerrors.ParseExceptions { return p.errors }

// Filename and Source return the values passed to New, so a caller
// converting a LexErrors entry into a ParseException can attach the same
// source context a parse-level error would carry.
func (p *Parser) Filename() string { return p.filename }
func (p *Parser) Source() string   { return p.source }

// LexErrors returns every lexical error (unterminated string, bad escape,
// illegal character, ...) the underlying scanner accumulated — surfaced
// separately from Errors() since a lexical failure is detected inside
// TokenStream.Consume, not at a point p.errorf can attach a parse-level
// message to.
func (p *Parser) LexErrors() []lexer.Error { return p.ts.Errors() }

// ParseStatement parses a single Statement production, for callers (pkg/es5)
// that want to drive the parser one statement at a time instead of through
// ParseProgram's top-level loop.
func (p *Parser) ParseStatement() ast.Statement { return p.parseStatement() }

// ParseExpression parses a single Expression production at the comma
// (AssignmentExpression, AssignmentExpression) precedence level — the same
// grammar entry a statement's expression position uses.
func (p *Parser) ParseExpression() ast.Expression { return p.parseExpressionAllowComma() }

// ParseFunctionDeclaration parses a single FunctionDeclaration production.
func (p *Parser) ParseFunctionDeclaration() *ast.FunctionDeclaration { return p.parseFunctionDeclaration() }

func (p *Parser) advance() {
	goal := lexer.GoalRegExp
	if p.allowsDivision() {
		goal = lexer.GoalDiv
	}
	p.cur = p.ts.Consume(goal)
}

// allowsDivision reports whether p.cur (the token about to be replaced) ends
// an expression, meaning a following '/' must scan as division rather than a
// regex literal (spec.md §4.1 "goal symbol").
func (p *Parser) allowsDivision() bool {
	switch p.cur.Type {
	case lexer.IDENT, lexer.NUMBER, lexer.STRING, lexer.REGEX,
		lexer.RPAREN, lexer.RBRACK, lexer.RBRACE,
		lexer.THIS, lexer.NULLLIT, lexer.TRUELIT, lexer.FALSELIT:
		return true
	default:
		return false
	}
}

func (p *Parser) pos() lexer.Position { return p.cur.Start }

func (p *Parser) errorf(pos lexer.Position, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.errors = append(p.errors, esrerrors.NewParseException(pos, msg, p.source, p.filename))
}

func (p *Parser) expect(tt lexer.TokenType, what string) bool {
	if p.cur.Type == tt {
		return true
	}
	p.errorf(p.pos(), "expected %s but found %q", what, p.cur.Literal)
	return false
}

// consumeSemicolon implements ASI (spec.md §4.3): accepts an explicit ';',
// or — when the offending token is '}'/EOF or is preceded by a line
// terminator — inserts one silently. Returns false (and records an error)
// only when none of those conditions hold.
func (p *Parser) consumeSemicolon() bool {
	if p.cur.Type == lexer.SEMICOLON {
		p.advance()
		return true
	}
	if p.cur.Type == lexer.RBRACE || p.cur.Type == lexer.EOF {
		return true
	}
	if p.cur.PrecededByLineTerminator {
		return true
	}
	p.errorf(p.pos(), "expected ';' but found %q", p.cur.Literal)
	return false
}

func (p *Parser) pushLabels() { p.labelStack = append(p.labelStack, map[string]bool{}) }
func (p *Parser) popLabels()  { p.labelStack = p.labelStack[:len(p.labelStack)-1] }

func (p *Parser) declareLabel(pos lexer.Position, name string) {
	top := p.labelStack[len(p.labelStack)-1]
	if top[name] {
		p.errorf(pos, "label %q has already been declared", name)
		return
	}
	top[name] = true
}

func (p *Parser) undeclareLabel(name string) {
	delete(p.labelStack[len(p.labelStack)-1], name)
}

func (p *Parser) labelDeclared(name string) bool {
	return p.labelStack[len(p.labelStack)-1][name]
}

// checkStrictBindingName reports the early errors ES5.1 §C imposes in strict
// mode on eval/arguments used as a binding identifier (function/catch
// parameter, var/function declaration name). strict reflects the mode of
// the code the binding occurs in — which for a named function expression's
// own identifier, or a function declaration's identifier, is the function's
// own body strictness, not necessarily the enclosing context's.
func (p *Parser) checkStrictBindingName(pos lexer.Position, name string, strict bool) {
	if !strict {
		return
	}
	if name == "eval" || name == "arguments" {
		p.errorf(pos, "%q may not be used as a binding identifier in strict mode", name)
	}
}
