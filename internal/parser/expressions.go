package parser

import (
	"github.com/es5lang/es5/internal/ast"
	"github.com/es5lang/es5/internal/lexer"
)

func (p *Parser) registerPrefixFns() {
	p.prefixParseFns[lexer.IDENT] = p.parseIdentifierExpr
	p.prefixParseFns[lexer.NUMBER] = p.parseNumberLiteral
	p.prefixParseFns[lexer.STRING] = p.parseStringLiteral
	p.prefixParseFns[lexer.REGEX] = p.parseRegexLiteral
	p.prefixParseFns[lexer.NULLLIT] = p.parseNullLiteral
	p.prefixParseFns[lexer.TRUELIT] = p.parseBooleanLiteral
	p.prefixParseFns[lexer.FALSELIT] = p.parseBooleanLiteral
	p.prefixParseFns[lexer.THIS] = p.parseThisExpr
	p.prefixParseFns[lexer.LPAREN] = p.parseGroupExpr
	p.prefixParseFns[lexer.LBRACK] = p.parseArrayLiteral
	p.prefixParseFns[lexer.LBRACE] = p.parseObjectLiteral
	p.prefixParseFns[lexer.FUNCTION] = p.parseFunctionExpr
	p.prefixParseFns[lexer.NEW] = p.parseNewExpr
	p.prefixParseFns[lexer.BANG] = p.parseUnaryExpr
	p.prefixParseFns[lexer.TILDE] = p.parseUnaryExpr
	p.prefixParseFns[lexer.PLUS] = p.parseUnaryExpr
	p.prefixParseFns[lexer.MINUS] = p.parseUnaryExpr
	p.prefixParseFns[lexer.TYPEOF] = p.parseUnaryExpr
	p.prefixParseFns[lexer.VOID] = p.parseUnaryExpr
	p.prefixParseFns[lexer.DELETE] = p.parseUnaryExpr
	p.prefixParseFns[lexer.INC] = p.parsePrefixUpdate
	p.prefixParseFns[lexer.DEC] = p.parsePrefixUpdate
}

func (p *Parser) registerInfixFns() {
	for tt := range precedences {
		switch tt {
		case lexer.LPAREN:
			p.infixParseFns[tt] = p.parseCallExpr
		case lexer.LBRACK:
			p.infixParseFns[tt] = p.parseComputedMemberExpr
		case lexer.DOT:
			p.infixParseFns[tt] = p.parseMemberExpr
		case lexer.QUESTION:
			p.infixParseFns[tt] = p.parseConditionalExpr
		case lexer.OR, lexer.AND:
			p.infixParseFns[tt] = p.parseLogicalExpr
		case lexer.COMMA:
			p.infixParseFns[tt] = p.parseSequenceExpr
		default:
			p.infixParseFns[tt] = p.parseBinaryExpr
		}
	}
	for tt := range assignmentOperatorTokens {
		p.infixParseFns[tt] = p.parseAssignmentExpr
	}
}

// assignmentOperatorTokens is every token type IsAssignmentOperator reports
// true for; parseExpression's loop needs to treat them as infix operators
// even though, per the grammar, AssignmentExpression is right-associative
// and lower precedence than ConditionalExpression.
var assignmentOperatorTokens = map[lexer.TokenType]bool{
	lexer.ASSIGN: true, lexer.PLUSEQ: true, lexer.MINUSEQ: true,
	lexer.STAREQ: true, lexer.SLASHEQ: true, lexer.PERCENTEQ: true,
	lexer.SHLEQ: true, lexer.SHREQ: true, lexer.USHREQ: true,
	lexer.AMPEQ: true, lexer.PIPEEQ: true, lexer.CARETEQ: true,
}

func init() {
	for tt := range assignmentOperatorTokens {
		precedences[tt] = ASSIGN
	}
}

func (p *Parser) peekToken() lexer.Token { return p.ts.Peek(lexer.GoalDiv) }

func (p *Parser) peekPrecedence() int {
	if p.noIn && p.peekToken().Type == lexer.IN {
		return LOWEST
	}
	if prec, ok := precedences[p.peekToken().Type]; ok {
		return prec
	}
	return LOWEST
}

// parseExpression parses an AssignmentExpression-or-looser construct with
// the given minimum precedence (ES5.1 §11), stopping when the next operator
// binds no tighter. When p.noIn is set, a bare `in` token is not treated as
// an operator — used while parsing a for-statement head (ES5.1 §12.6.4).
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.cur.Type]
	if prefix == nil {
		p.errorf(p.pos(), "unexpected token %q in expression", p.cur.Literal)
		p.advance()
		return nil
	}
	left := prefix()

	// Postfix ++/-- binds to the full LeftHandSideExpression — including any
	// member/call chain just built by an infix step below — so it is
	// re-checked after every iteration, not just once after the primary
	// (ES5.1 §11.3: "no LineTerminator allowed before" the operator).
	for {
		if !p.cur.PrecededByLineTerminator && (p.cur.Type == lexer.INC || p.cur.Type == lexer.DEC) {
			left = p.parsePostfixUpdate(left)
			continue
		}
		// p.cur is the operator token; each infix parser consumes it itself.
		curPrec := LOWEST
		if prec, ok := precedences[p.cur.Type]; ok && !(p.noIn && p.cur.Type == lexer.IN) {
			curPrec = prec
		}
		if !(precedence < curPrec) {
			break
		}
		infix := p.infixParseFns[p.cur.Type]
		if infix == nil {
			break
		}
		left = infix(left)
	}
	return left
}

// parseAssignmentExpression parses a single AssignmentExpression, used
// wherever the grammar forbids the comma operator (call arguments, array and
// object literal elements, for-statement clauses).
func (p *Parser) parseAssignmentExpression() ast.Expression {
	return p.parseExpression(ASSIGN - 1)
}

// parseExpressionAllowComma parses a full Expression, including the comma
// operator, used for statement-level expressions.
func (p *Parser) parseExpressionAllowComma() ast.Expression {
	return p.parseExpression(LOWEST)
}

func (p *Parser) parseIdentifierExpr() ast.Expression {
	id := &ast.Identifier{Name: p.cur.Value.(string), StartPos: p.cur.Start, EndPos: p.cur.End}
	p.advance()
	return id
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	lit := &ast.Literal{
		LitKind: ast.NumberLiteralKind, Value: p.cur.Value.(float64), Raw: p.cur.Literal,
		StartPos: p.cur.Start, EndPos: p.cur.End,
	}
	p.advance()
	return lit
}

func (p *Parser) parseStringLiteral() ast.Expression {
	lit := &ast.Literal{
		LitKind: ast.StringLiteralKind, Value: p.cur.Value.(string), Raw: p.cur.Literal,
		StartPos: p.cur.Start, EndPos: p.cur.End,
	}
	p.advance()
	return lit
}

func (p *Parser) parseRegexLiteral() ast.Expression {
	var val *lexer.RegexValue
	if rv, ok := p.cur.Value.(*lexer.RegexValue); ok {
		val = rv
	}
	lit := &ast.Literal{
		LitKind: ast.RegexLiteralKind, Value: val, Raw: p.cur.Literal,
		StartPos: p.cur.Start, EndPos: p.cur.End,
	}
	p.advance()
	return lit
}

func (p *Parser) parseNullLiteral() ast.Expression {
	lit := &ast.Literal{LitKind: ast.NullLiteralKind, Value: nil, Raw: "null", StartPos: p.cur.Start, EndPos: p.cur.End}
	p.advance()
	return lit
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	v := p.cur.Type == lexer.TRUELIT
	lit := &ast.Literal{LitKind: ast.BooleanLiteralKind, Value: v, Raw: p.cur.Literal, StartPos: p.cur.Start, EndPos: p.cur.End}
	p.advance()
	return lit
}

func (p *Parser) parseThisExpr() ast.Expression {
	n := &ast.ThisExpression{StartPos: p.cur.Start, EndPos: p.cur.End}
	p.advance()
	return n
}

func (p *Parser) parseGroupExpr() ast.Expression {
	p.advance() // consume '('
	noIn := p.noIn
	p.noIn = false
	expr := p.parseExpressionAllowComma()
	p.noIn = noIn
	if !p.expect(lexer.RPAREN, "')'") {
		return expr
	}
	p.advance()
	return expr
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	start := p.cur.Start
	p.advance() // consume '['
	var elements []ast.Expression
	for p.cur.Type != lexer.RBRACK && p.cur.Type != lexer.EOF {
		if p.cur.Type == lexer.COMMA {
			elements = append(elements, nil) // elision
			p.advance()
			continue
		}
		elements = append(elements, p.parseAssignmentExpression())
		if p.cur.Type == lexer.COMMA {
			p.advance()
		} else {
			break
		}
	}
	end := p.cur.End
	p.expect(lexer.RBRACK, "']'")
	p.advance()
	return &ast.ArrayExpression{Elements: elements, StartPos: start, EndPos: end}
}

func (p *Parser) parsePropertyKey() ast.Expression {
	switch p.cur.Type {
	case lexer.STRING:
		return p.parseStringLiteral()
	case lexer.NUMBER:
		return p.parseNumberLiteral()
	default:
		// IdentifierName: any keyword is legal as a property name (ES5.1 §11.1.5).
		id := &ast.Identifier{Name: p.cur.Literal, StartPos: p.cur.Start, EndPos: p.cur.End}
		p.advance()
		return id
	}
}

func propKeyName(key ast.Expression) string {
	switch k := key.(type) {
	case *ast.Identifier:
		return k.Name
	case *ast.Literal:
		if k.LitKind == ast.StringLiteralKind {
			return k.Value.(string)
		}
		return k.Raw
	}
	return ""
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	start := p.cur.Start
	p.advance() // consume '{'
	var props []*ast.Property
	seen := map[string][]ast.PropertyKind{}

	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		propStart := p.cur.Start
		if (p.cur.Type == lexer.IDENT) && (p.cur.Value == "get" || p.cur.Value == "set") &&
			p.peekToken().Type != lexer.COLON && p.peekToken().Type != lexer.COMMA && p.peekToken().Type != lexer.RBRACE {
			accessor := p.cur.Value.(string)
			p.advance() // consume get/set
			key := p.parsePropertyKey()
			fn := p.parseFunctionLiteral(nil)
			kind := ast.PropertyGet
			if accessor == "set" {
				kind = ast.PropertySet
			}
			name := propKeyName(key)
			seen[name] = append(seen[name], kind)
			p.checkDuplicateAccessor(propStart, name, seen[name])
			props = append(props, &ast.Property{Key: key, Value: fn, PropKind: kind, StartPos: propStart, EndPos: fn.End()})
		} else {
			key := p.parsePropertyKey()
			if !p.expect(lexer.COLON, "':'") {
				break
			}
			p.advance()
			val := p.parseAssignmentExpression()
			name := propKeyName(key)
			seen[name] = append(seen[name], ast.PropertyInit)
			p.checkDuplicateAccessor(propStart, name, seen[name])
			var end lexer.Position
			if val != nil {
				end = val.End()
			}
			props = append(props, &ast.Property{Key: key, Value: val, PropKind: ast.PropertyInit, StartPos: propStart, EndPos: end})
		}
		if p.cur.Type == lexer.COMMA {
			p.advance()
		} else {
			break
		}
	}
	end := p.cur.End
	p.expect(lexer.RBRACE, "'}'")
	p.advance()
	return &ast.ObjectExpression{Properties: props, StartPos: start, EndPos: end}
}

// checkDuplicateAccessor enforces ES5.1 §11.1.5's early errors for a
// repeated property name: more than one data value is an error in strict
// mode only, while "init" mixed with "get"/"set", or a repeated "get" or
// "set", is an error in any mode.
func (p *Parser) checkDuplicateAccessor(pos lexer.Position, name string, kinds []ast.PropertyKind) {
	if len(kinds) < 2 {
		return
	}
	dataCount := 0
	getCount := 0
	setCount := 0
	for _, k := range kinds {
		switch k {
		case ast.PropertyInit:
			dataCount++
		case ast.PropertyGet:
			getCount++
		case ast.PropertySet:
			setCount++
		}
	}
	if p.strict && dataCount > 1 {
		p.errorf(pos, "duplicate data property %q in object literal not allowed in strict mode", name)
	}
	if dataCount > 0 && (getCount > 0 || setCount > 0) {
		p.errorf(pos, "property %q cannot have both a data descriptor and an accessor descriptor", name)
	}
	if getCount > 1 {
		p.errorf(pos, "duplicate getter for property %q", name)
	}
	if setCount > 1 {
		p.errorf(pos, "duplicate setter for property %q", name)
	}
}

func (p *Parser) parseUnaryExpr() ast.Expression {
	op := p.cur.Literal
	start := p.cur.Start
	opPos := p.cur.Start
	opType := p.cur.Type
	p.advance()
	arg := p.parseExpression(UNARY)
	if opType == lexer.DELETE {
		if id, ok := arg.(*ast.Identifier); ok && p.strict {
			p.errorf(opPos, "delete of an unqualified identifier %q is not allowed in strict mode", id.Name)
		}
	}
	var end lexer.Position
	if arg != nil {
		end = arg.End()
	}
	return &ast.UnaryExpression{Operator: op, Argument: arg, StartPos: start, EndPos: end}
}

func (p *Parser) parsePrefixUpdate() ast.Expression {
	op := p.cur.Literal
	start := p.cur.Start
	p.advance()
	arg := p.parseExpression(UNARY)
	p.checkAssignmentTarget(start, arg)
	var end lexer.Position
	if arg != nil {
		end = arg.End()
	}
	return &ast.UpdateExpression{Operator: op, Argument: arg, Prefix: true, StartPos: start, EndPos: end}
}

func (p *Parser) parsePostfixUpdate(left ast.Expression) ast.Expression {
	op := p.cur.Literal
	end := p.cur.End
	p.checkAssignmentTarget(p.cur.Start, left)
	p.advance()
	var start lexer.Position
	if left != nil {
		start = left.Pos()
	}
	return &ast.UpdateExpression{Operator: op, Argument: left, Prefix: false, StartPos: start, EndPos: end}
}

// checkAssignmentTarget enforces the early error that forbids eval/arguments
// as the target of ++, --, or a simple/compound assignment in strict-mode
// code (ES5.1 §11.13.1, §11.4.4-5 Annex notes).
func (p *Parser) checkAssignmentTarget(pos lexer.Position, target ast.Expression) {
	if !p.strict {
		return
	}
	if id, ok := target.(*ast.Identifier); ok && (id.Name == "eval" || id.Name == "arguments") {
		p.errorf(pos, "%q may not be assigned to in strict mode", id.Name)
	}
}

func (p *Parser) parseBinaryExpr(left ast.Expression) ast.Expression {
	op := p.cur.Literal
	prec := precedences[p.cur.Type]
	p.advance()
	right := p.parseExpression(prec)
	var start, end lexer.Position
	if left != nil {
		start = left.Pos()
	}
	if right != nil {
		end = right.End()
	}
	return &ast.BinaryExpression{Operator: op, Left: left, Right: right, StartPos: start, EndPos: end}
}

func (p *Parser) parseLogicalExpr(left ast.Expression) ast.Expression {
	op := p.cur.Literal
	prec := precedences[p.cur.Type]
	p.advance()
	right := p.parseExpression(prec)
	var start, end lexer.Position
	if left != nil {
		start = left.Pos()
	}
	if right != nil {
		end = right.End()
	}
	return &ast.LogicalExpression{Operator: op, Left: left, Right: right, StartPos: start, EndPos: end}
}

func (p *Parser) parseConditionalExpr(test ast.Expression) ast.Expression {
	p.advance() // consume '?'
	noIn := p.noIn
	p.noIn = false
	consequent := p.parseAssignmentExpression()
	p.noIn = noIn
	if !p.expect(lexer.COLON, "':'") {
		return consequent
	}
	p.advance()
	alternate := p.parseAssignmentExpression()
	var start, end lexer.Position
	if test != nil {
		start = test.Pos()
	}
	if alternate != nil {
		end = alternate.End()
	}
	return &ast.ConditionalExpression{Test: test, Consequent: consequent, Alternate: alternate, StartPos: start, EndPos: end}
}

func (p *Parser) parseAssignmentExpr(left ast.Expression) ast.Expression {
	op := p.cur.Type.CompoundOp() + "="
	opPos := p.cur.Start
	p.checkAssignmentTarget(opPos, left)
	if !isValidAssignmentTarget(left) {
		p.errorf(opPos, "invalid assignment target")
	}
	p.advance()
	right := p.parseExpression(ASSIGN - 1)
	var start, end lexer.Position
	if left != nil {
		start = left.Pos()
	}
	if right != nil {
		end = right.End()
	}
	return &ast.AssignmentExpression{Operator: op, Left: left, Right: right, StartPos: start, EndPos: end}
}

func isValidAssignmentTarget(e ast.Expression) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.MemberExpression:
		return true
	default:
		return false
	}
}

func (p *Parser) parseSequenceExpr(left ast.Expression) ast.Expression {
	exprs := []ast.Expression{left}
	for p.cur.Type == lexer.COMMA {
		p.advance() // consume ','
		exprs = append(exprs, p.parseAssignmentExpression())
	}
	var start, end lexer.Position
	if left != nil {
		start = left.Pos()
	}
	if len(exprs) > 0 && exprs[len(exprs)-1] != nil {
		end = exprs[len(exprs)-1].End()
	}
	return &ast.SequenceExpression{Expressions: exprs, StartPos: start, EndPos: end}
}

func (p *Parser) parseMemberExpr(obj ast.Expression) ast.Expression {
	p.advance() // consume '.'
	if p.cur.Type != lexer.IDENT && !p.cur.Type.IsKeyword() && !p.cur.Type.IsStrictReserved() && p.cur.Type != lexer.NULLLIT && p.cur.Type != lexer.TRUELIT && p.cur.Type != lexer.FALSELIT {
		p.errorf(p.pos(), "expected property name after '.'")
	}
	prop := &ast.Identifier{Name: p.cur.Literal, StartPos: p.cur.Start, EndPos: p.cur.End}
	end := p.cur.End
	p.advance()
	var start lexer.Position
	if obj != nil {
		start = obj.Pos()
	}
	return &ast.MemberExpression{Object: obj, Property: prop, Computed: false, StartPos: start, EndPos: end}
}

func (p *Parser) parseComputedMemberExpr(obj ast.Expression) ast.Expression {
	p.advance() // consume '['
	noIn := p.noIn
	p.noIn = false
	prop := p.parseExpressionAllowComma()
	p.noIn = noIn
	end := p.cur.End
	p.expect(lexer.RBRACK, "']'")
	p.advance()
	var start lexer.Position
	if obj != nil {
		start = obj.Pos()
	}
	return &ast.MemberExpression{Object: obj, Property: prop, Computed: true, StartPos: start, EndPos: end}
}

func (p *Parser) parseArgumentList() (args []ast.Expression, end lexer.Position) {
	p.advance() // consume '('
	for p.cur.Type != lexer.RPAREN && p.cur.Type != lexer.EOF {
		args = append(args, p.parseAssignmentExpression())
		if p.cur.Type == lexer.COMMA {
			p.advance()
		} else {
			break
		}
	}
	end = p.cur.End
	p.expect(lexer.RPAREN, "')'")
	p.advance()
	return args, end
}

func (p *Parser) parseCallExpr(callee ast.Expression) ast.Expression {
	var start lexer.Position
	if callee != nil {
		start = callee.Pos()
	}
	args, end := p.parseArgumentList()
	return &ast.CallExpression{Callee: callee, Args: args, StartPos: start, EndPos: end}
}

func (p *Parser) parseNewExpr() ast.Expression {
	start := p.cur.Start
	p.advance() // consume 'new'
	// Stop before a trailing call: `new a.b()` binds `()` as the
	// constructor arguments, not as a nested CallExpression (ES5.1 §11.2.2)
	// — so member access (DOT/LBRACK, precedence MEMBER) continues but
	// LPAREN (precedence CALL) does not.
	callee := p.parseExpression(CALL)
	var args []ast.Expression
	end := start
	if callee != nil {
		end = callee.End()
	}
	if p.cur.Type == lexer.LPAREN {
		args, end = p.parseArgumentList()
	}
	return &ast.NewExpression{Callee: callee, Args: args, StartPos: start, EndPos: end}
}

// parseFunctionExpr parses a FunctionExpression (ES5.1 §13), with an
// optional binding name.
func (p *Parser) parseFunctionExpr() ast.Expression {
	start := p.cur.Start
	p.advance() // consume 'function'
	var id *ast.Identifier
	if p.cur.Type == lexer.IDENT {
		id = &ast.Identifier{Name: p.cur.Value.(string), StartPos: p.cur.Start, EndPos: p.cur.End}
		p.advance()
	}
	fn := p.parseFunctionLiteral(id)
	fn.StartPos = start
	return fn
}

// parseFunctionLiteral parses the `(params) { body }` tail shared by
// function declarations, function expressions, and get/set accessors.
func (p *Parser) parseFunctionLiteral(id *ast.Identifier) *ast.FunctionExpression {
	start := p.cur.Start
	params := p.parseParamList()

	savedStrict := p.strict
	p.funcDepth++
	p.pushLabels()
	savedLoop, savedSwitch := p.loopDepth, p.switchDepth
	p.loopDepth, p.switchDepth = 0, 0

	body, strict := p.parseFunctionBody()
	p.checkDuplicateParams(start, params, strict)
	if id != nil {
		p.checkStrictBindingName(id.Pos(), id.Name, strict)
	}

	p.loopDepth, p.switchDepth = savedLoop, savedSwitch
	p.popLabels()
	p.funcDepth--
	p.strict = savedStrict

	return &ast.FunctionExpression{Id: id, Params: params, Body: body, Strict: strict, StartPos: start, EndPos: body.End()}
}

func (p *Parser) parseParamList() []*ast.Identifier {
	p.expect(lexer.LPAREN, "'('")
	p.advance()
	var params []*ast.Identifier
	for p.cur.Type != lexer.RPAREN && p.cur.Type != lexer.EOF {
		if p.cur.Type == lexer.IDENT {
			params = append(params, &ast.Identifier{Name: p.cur.Value.(string), StartPos: p.cur.Start, EndPos: p.cur.End})
		} else {
			p.errorf(p.pos(), "expected parameter name, found %q", p.cur.Literal)
		}
		p.advance()
		if p.cur.Type == lexer.COMMA {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RPAREN, "')'")
	p.advance()
	return params
}

// checkDuplicateParams enforces the strict-mode early error forbidding
// duplicate formal parameter names (ES5.1 §13.1), plus eval/arguments as a
// parameter name.
func (p *Parser) checkDuplicateParams(pos lexer.Position, params []*ast.Identifier, strict bool) {
	if !strict {
		return
	}
	seen := map[string]bool{}
	for _, param := range params {
		if param.Name == "eval" || param.Name == "arguments" {
			p.errorf(param.Pos(), "%q may not be used as a parameter name in strict mode", param.Name)
		}
		if seen[param.Name] {
			p.errorf(pos, "duplicate formal parameter %q not allowed in strict mode", param.Name)
		}
		seen[param.Name] = true
	}
}
