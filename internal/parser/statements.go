package parser

import (
	"github.com/es5lang/es5/internal/ast"
	"github.com/es5lang/es5/internal/lexer"
)

// ParseProgram parses an entire source unit (ES5.1 §14).
func (p *Parser) ParseProgram() *ast.Program {
	start := p.cur.Start
	body, strict := p.parseStatementListAndDirectives(lexer.EOF, false)
	return &ast.Program{Body: body, Strict: strict, StartPos: start, EndPos: p.cur.End}
}

// parseStatementListAndDirectives parses statements up to (but not
// consuming) `terminator`, recognizing a leading directive prologue
// (ES5.1 §14.1) and switching the parser into strict mode for the
// remainder if "use strict" appears among the directives. topLevel
// controls nothing here but documents intent at call sites.
func (p *Parser) parseStatementListAndDirectives(terminator lexer.TokenType, topLevel bool) ([]ast.Statement, bool) {
	_ = topLevel
	var body []ast.Statement
	inPrologue := true

	for p.cur.Type != terminator && p.cur.Type != lexer.EOF {
		if inPrologue {
			if dir, ok := p.directiveOf(); ok {
				if dir == `"use strict"` || dir == `'use strict'` {
					p.strict = true
				}
				body = append(body, p.parseStatement())
				continue
			}
			inPrologue = false
		}
		body = append(body, p.parseStatement())
	}
	return body, p.strict
}

// directiveOf reports whether p.cur begins a directive prologue entry — an
// ExpressionStatement consisting solely of a StringLiteral — and if so,
// returns its raw source lexeme (quotes included) without consuming
// anything. The raw lexeme is used, not p.cur.Value, because ES5.1 §14.1's
// "use strict" recognition is defined over the literal source characters:
// an escape sequence like "use\x20strict" decodes to the same string but
// must NOT trigger strict mode.
func (p *Parser) directiveOf() (string, bool) {
	if p.cur.Type != lexer.STRING {
		return "", false
	}
	peek := p.peekToken()
	if peek.Type != lexer.SEMICOLON && peek.Type != lexer.RBRACE && peek.Type != lexer.EOF && !peek.PrecededByLineTerminator {
		return "", false
	}
	return p.source[p.cur.Start.Offset:p.cur.End.Offset], true
}

// parseFunctionBody parses the BlockStatement that is a FunctionBody
// (ES5.1 §13), returning whether the function's own code is strict (either
// inherited from the enclosing context or via its own "use strict"
// directive).
func (p *Parser) parseFunctionBody() (*ast.BlockStatement, bool) {
	start := p.cur.Start
	p.expect(lexer.LBRACE, "'{'")
	p.advance()
	inherited := p.strict
	body, strict := p.parseStatementListAndDirectives(lexer.RBRACE, false)
	end := p.cur.End
	p.expect(lexer.RBRACE, "'}'")
	p.advance()
	p.strict = inherited
	return &ast.BlockStatement{Body: body, StartPos: start, EndPos: end}, strict
}

// parseStatement dispatches on the current token to the right statement
// grammar production (ES5.1 §12).
func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case lexer.LBRACE:
		return p.parseBlockStatement()
	case lexer.VAR:
		return p.parseVariableStatement()
	case lexer.SEMICOLON:
		return p.parseEmptyStatement()
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.DO:
		return p.parseDoWhileStatement()
	case lexer.WHILE:
		return p.parseWhileStatement()
	case lexer.FOR:
		return p.parseForOrForInStatement()
	case lexer.CONTINUE:
		return p.parseContinueStatement()
	case lexer.BREAK:
		return p.parseBreakStatement()
	case lexer.RETURN:
		return p.parseReturnStatement()
	case lexer.WITH:
		return p.parseWithStatement()
	case lexer.SWITCH:
		return p.parseSwitchStatement()
	case lexer.THROW:
		return p.parseThrowStatement()
	case lexer.TRY:
		return p.parseTryStatement()
	case lexer.DEBUGGER:
		return p.parseDebuggerStatement()
	case lexer.FUNCTION:
		return p.parseFunctionDeclaration()
	case lexer.IDENT:
		if p.peekToken().Type == lexer.COLON {
			return p.parseLabeledStatement()
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	start := p.cur.Start
	p.advance() // consume '{'
	var body []ast.Statement
	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		body = append(body, p.parseStatement())
	}
	end := p.cur.End
	p.expect(lexer.RBRACE, "'}'")
	p.advance()
	return &ast.BlockStatement{Body: body, StartPos: start, EndPos: end}
}

func (p *Parser) parseVariableDeclarationList(noIn bool) []*ast.VariableDeclarator {
	savedNoIn := p.noIn
	p.noIn = noIn
	var decls []*ast.VariableDeclarator
	for {
		start := p.cur.Start
		if p.cur.Type != lexer.IDENT {
			p.errorf(p.pos(), "expected variable name, found %q", p.cur.Literal)
			break
		}
		id := &ast.Identifier{Name: p.cur.Value.(string), StartPos: p.cur.Start, EndPos: p.cur.End}
		p.checkStrictBindingName(id.Pos(), id.Name, p.strict)
		p.advance()
		var init ast.Expression
		end := id.End()
		if p.cur.Type == lexer.ASSIGN {
			p.advance()
			init = p.parseAssignmentExpression()
			if init != nil {
				end = init.End()
			}
		}
		decls = append(decls, &ast.VariableDeclarator{Id: id, Init: init, StartPos: start, EndPos: end})
		if p.cur.Type == lexer.COMMA {
			p.advance()
			continue
		}
		break
	}
	p.noIn = savedNoIn
	return decls
}

func (p *Parser) parseVariableStatement() *ast.VariableStatement {
	start := p.cur.Start
	p.advance() // consume 'var'
	decls := p.parseVariableDeclarationList(false)
	end := p.cur.Start
	if len(decls) > 0 {
		end = decls[len(decls)-1].End()
	}
	p.consumeSemicolon()
	return &ast.VariableStatement{Declarations: decls, StartPos: start, EndPos: end}
}

func (p *Parser) parseEmptyStatement() *ast.EmptyStatement {
	start, end := p.cur.Start, p.cur.End
	p.advance()
	return &ast.EmptyStatement{StartPos: start, EndPos: end}
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	start := p.cur.Start
	if p.cur.Type == lexer.FUNCTION {
		p.errorf(start, "function declaration not allowed in statement position here")
	}
	expr := p.parseExpressionAllowComma()
	end := start
	if expr != nil {
		end = expr.End()
	}
	p.consumeSemicolon()
	return &ast.ExpressionStatement{Expr: expr, StartPos: start, EndPos: end}
}

func (p *Parser) parseIfStatement() *ast.IfStatement {
	start := p.cur.Start
	p.advance() // 'if'
	p.expect(lexer.LPAREN, "'('")
	p.advance()
	test := p.parseExpressionAllowComma()
	p.expect(lexer.RPAREN, "')'")
	p.advance()
	consequent := p.parseStatement()
	var alternate ast.Statement
	end := consequent.End()
	if p.cur.Type == lexer.ELSE {
		p.advance()
		alternate = p.parseStatement()
		end = alternate.End()
	}
	return &ast.IfStatement{Test: test, Consequent: consequent, Alternate: alternate, StartPos: start, EndPos: end}
}

func (p *Parser) parseDoWhileStatement() *ast.DoWhileStatement {
	start := p.cur.Start
	p.advance() // 'do'
	p.loopDepth++
	body := p.parseStatement()
	p.loopDepth--
	p.expect(lexer.WHILE, "'while'")
	p.advance()
	p.expect(lexer.LPAREN, "'('")
	p.advance()
	test := p.parseExpressionAllowComma()
	p.expect(lexer.RPAREN, "')'")
	end := p.cur.End
	p.advance()
	// a ';' here is optional even without ASI (ES5.1 §12.6.1 note).
	if p.cur.Type == lexer.SEMICOLON {
		p.advance()
	}
	return &ast.DoWhileStatement{Body: body, Test: test, StartPos: start, EndPos: end}
}

func (p *Parser) parseWhileStatement() *ast.WhileStatement {
	start := p.cur.Start
	p.advance() // 'while'
	p.expect(lexer.LPAREN, "'('")
	p.advance()
	test := p.parseExpressionAllowComma()
	p.expect(lexer.RPAREN, "')'")
	p.advance()
	p.loopDepth++
	body := p.parseStatement()
	p.loopDepth--
	return &ast.WhileStatement{Test: test, Body: body, StartPos: start, EndPos: body.End()}
}

// parseForOrForInStatement disambiguates ForStatement from ForInStatement
// (ES5.1 §12.6.3/§12.6.4) by speculatively parsing the head and checking for
// a following `in` keyword, using NoIn mode while parsing any expression
// there so a bare `in` is never absorbed as a RelationalExpression operator.
func (p *Parser) parseForOrForInStatement() ast.Statement {
	start := p.cur.Start
	p.advance() // 'for'
	p.expect(lexer.LPAREN, "'('")
	p.advance()

	if p.cur.Type == lexer.SEMICOLON {
		return p.finishForStatement(start, nil)
	}

	if p.cur.Type == lexer.VAR {
		p.advance() // 'var'
		decls := p.parseVariableDeclarationList(true)
		if p.cur.Type == lexer.IN && len(decls) == 1 && decls[0].Init == nil {
			return p.finishForInStatement(start, decls[0])
		}
		initStmt := &ast.VariableStatement{Declarations: decls, StartPos: start}
		return p.finishForStatement(start, initStmt)
	}

	savedNoIn := p.noIn
	p.noIn = true
	initExpr := p.parseExpressionAllowComma()
	p.noIn = savedNoIn

	if p.cur.Type == lexer.IN {
		return p.finishForInStatement(start, initExpr)
	}
	return p.finishForStatement(start, initExpr)
}

func (p *Parser) finishForInStatement(start lexer.Position, left ast.Node) *ast.ForInStatement {
	p.advance() // 'in'
	right := p.parseExpressionAllowComma()
	p.expect(lexer.RPAREN, "')'")
	p.advance()
	p.loopDepth++
	body := p.parseStatement()
	p.loopDepth--
	return &ast.ForInStatement{Left: left, Right: right, Body: body, StartPos: start, EndPos: body.End()}
}

func (p *Parser) finishForStatement(start lexer.Position, init ast.Node) *ast.ForStatement {
	p.expect(lexer.SEMICOLON, "';'")
	p.advance()
	var test ast.Expression
	if p.cur.Type != lexer.SEMICOLON {
		test = p.parseExpressionAllowComma()
	}
	p.expect(lexer.SEMICOLON, "';'")
	p.advance()
	var update ast.Expression
	if p.cur.Type != lexer.RPAREN {
		update = p.parseExpressionAllowComma()
	}
	p.expect(lexer.RPAREN, "')'")
	p.advance()
	p.loopDepth++
	body := p.parseStatement()
	p.loopDepth--
	return &ast.ForStatement{Init: init, Test: test, Update: update, Body: body, StartPos: start, EndPos: body.End()}
}

// parseOptionalLabel reads a restricted-production identifier label for
// continue/break (ES5.1 §12.7/§12.8): the label must be on the same line as
// the keyword (no line terminator before it).
func (p *Parser) parseOptionalLabel() *ast.Identifier {
	if p.cur.Type == lexer.IDENT && !p.cur.PrecededByLineTerminator {
		id := &ast.Identifier{Name: p.cur.Value.(string), StartPos: p.cur.Start, EndPos: p.cur.End}
		p.advance()
		return id
	}
	return nil
}

func (p *Parser) parseContinueStatement() *ast.ContinueStatement {
	start := p.cur.Start
	end := p.cur.End
	p.advance() // 'continue'
	label := p.parseOptionalLabel()
	if label != nil {
		end = label.End()
		if !p.labelDeclared(label.Name) {
			p.errorf(label.Pos(), "undefined label %q", label.Name)
		}
	} else if p.loopDepth == 0 {
		p.errorf(start, "illegal continue statement: no surrounding iteration statement")
	}
	p.consumeSemicolon()
	return &ast.ContinueStatement{Label: label, StartPos: start, EndPos: end}
}

func (p *Parser) parseBreakStatement() *ast.BreakStatement {
	start := p.cur.Start
	end := p.cur.End
	p.advance() // 'break'
	label := p.parseOptionalLabel()
	if label != nil {
		end = label.End()
		if !p.labelDeclared(label.Name) {
			p.errorf(label.Pos(), "undefined label %q", label.Name)
		}
	} else if p.loopDepth == 0 && p.switchDepth == 0 {
		p.errorf(start, "illegal break statement: no surrounding iteration or switch statement")
	}
	p.consumeSemicolon()
	return &ast.BreakStatement{Label: label, StartPos: start, EndPos: end}
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	start := p.cur.Start
	end := p.cur.End
	p.advance() // 'return'
	if p.funcDepth == 0 {
		p.errorf(start, "return statement outside of a function body")
	}
	var arg ast.Expression
	if p.cur.Type != lexer.SEMICOLON && p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF && !p.cur.PrecededByLineTerminator {
		arg = p.parseExpressionAllowComma()
		end = arg.End()
	}
	p.consumeSemicolon()
	return &ast.ReturnStatement{Argument: arg, StartPos: start, EndPos: end}
}

func (p *Parser) parseWithStatement() *ast.WithStatement {
	start := p.cur.Start
	if p.strict {
		p.errorf(start, "with statement is not allowed in strict mode")
	}
	p.advance() // 'with'
	p.expect(lexer.LPAREN, "'('")
	p.advance()
	obj := p.parseExpressionAllowComma()
	p.expect(lexer.RPAREN, "')'")
	p.advance()
	body := p.parseStatement()
	return &ast.WithStatement{Object: obj, Body: body, StartPos: start, EndPos: body.End()}
}

func (p *Parser) parseSwitchStatement() *ast.SwitchStatement {
	start := p.cur.Start
	p.advance() // 'switch'
	p.expect(lexer.LPAREN, "'('")
	p.advance()
	disc := p.parseExpressionAllowComma()
	p.expect(lexer.RPAREN, "')'")
	p.advance()
	p.expect(lexer.LBRACE, "'{'")
	p.advance()

	p.switchDepth++
	var cases []*ast.CaseClause
	sawDefault := false
	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		caseStart := p.cur.Start
		var test ast.Expression
		if p.cur.Type == lexer.CASE {
			p.advance()
			test = p.parseExpressionAllowComma()
		} else if p.cur.Type == lexer.DEFAULT {
			if sawDefault {
				p.errorf(caseStart, "more than one default clause in switch statement")
			}
			sawDefault = true
			p.advance()
		} else {
			p.errorf(p.pos(), "expected 'case' or 'default'")
			break
		}
		p.expect(lexer.COLON, "':'")
		p.advance()
		var consequent []ast.Statement
		for p.cur.Type != lexer.CASE && p.cur.Type != lexer.DEFAULT && p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
			consequent = append(consequent, p.parseStatement())
		}
		end := p.cur.Start
		if len(consequent) > 0 {
			end = consequent[len(consequent)-1].End()
		}
		cases = append(cases, &ast.CaseClause{Test: test, Consequent: consequent, StartPos: caseStart, EndPos: end})
	}
	p.switchDepth--
	end := p.cur.End
	p.expect(lexer.RBRACE, "'}'")
	p.advance()
	return &ast.SwitchStatement{Discriminant: disc, Cases: cases, StartPos: start, EndPos: end}
}

func (p *Parser) parseLabeledStatement() *ast.LabeledStatement {
	start := p.cur.Start
	label := &ast.Identifier{Name: p.cur.Value.(string), StartPos: p.cur.Start, EndPos: p.cur.End}
	p.declareLabel(start, label.Name)
	p.advance() // identifier
	p.advance() // ':'
	body := p.parseStatement()
	p.undeclareLabel(label.Name)
	return &ast.LabeledStatement{Label: label, Body: body, StartPos: start, EndPos: body.End()}
}

func (p *Parser) parseThrowStatement() *ast.ThrowStatement {
	start := p.cur.Start
	p.advance() // 'throw'
	if p.cur.PrecededByLineTerminator {
		p.errorf(start, "illegal newline after 'throw'")
	}
	arg := p.parseExpressionAllowComma()
	end := start
	if arg != nil {
		end = arg.End()
	}
	p.consumeSemicolon()
	return &ast.ThrowStatement{Argument: arg, StartPos: start, EndPos: end}
}

func (p *Parser) parseTryStatement() *ast.TryStatement {
	start := p.cur.Start
	p.advance() // 'try'
	block := p.parseBlockStatement()
	var handler *ast.CatchClause
	var finalizer *ast.BlockStatement
	end := block.End()

	if p.cur.Type == lexer.CATCH {
		catchStart := p.cur.Start
		p.advance()
		p.expect(lexer.LPAREN, "'('")
		p.advance()
		var param *ast.Identifier
		if p.cur.Type == lexer.IDENT {
			param = &ast.Identifier{Name: p.cur.Value.(string), StartPos: p.cur.Start, EndPos: p.cur.End}
			p.checkStrictBindingName(param.Pos(), param.Name, p.strict)
		} else {
			p.errorf(p.pos(), "expected catch parameter name")
		}
		p.advance()
		p.expect(lexer.RPAREN, "')'")
		p.advance()
		catchBody := p.parseBlockStatement()
		handler = &ast.CatchClause{Param: param, Body: catchBody, StartPos: catchStart, EndPos: catchBody.End()}
		end = handler.End()
	}
	if p.cur.Type == lexer.FINALLY {
		p.advance()
		finalizer = p.parseBlockStatement()
		end = finalizer.End()
	}
	if handler == nil && finalizer == nil {
		p.errorf(start, "missing catch or finally after try block")
	}
	return &ast.TryStatement{Block: block, Handler: handler, Finalizer: finalizer, StartPos: start, EndPos: end}
}

func (p *Parser) parseDebuggerStatement() *ast.DebuggerStatement {
	start, end := p.cur.Start, p.cur.End
	p.advance()
	p.consumeSemicolon()
	return &ast.DebuggerStatement{StartPos: start, EndPos: end}
}

func (p *Parser) parseFunctionDeclaration() *ast.FunctionDeclaration {
	start := p.cur.Start
	p.advance() // 'function'
	var id *ast.Identifier
	if p.cur.Type == lexer.IDENT {
		id = &ast.Identifier{Name: p.cur.Value.(string), StartPos: p.cur.Start, EndPos: p.cur.End}
		p.advance()
	} else {
		p.errorf(p.pos(), "function declaration requires a name")
	}
	fn := p.parseFunctionLiteral(id)
	return &ast.FunctionDeclaration{Id: id, Params: fn.Params, Body: fn.Body, Strict: fn.Strict, StartPos: start, EndPos: fn.End()}
}
