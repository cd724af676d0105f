package lexer

// TokenType identifies the lexical category of a Token.
//
// The constants are grouped the way ECMA-262 5.1 groups them: punctuators,
// keywords, the ES5.1 "future reserved words" (both unconditional and the
// additional strict-mode-only set from Annex C), and literal kinds.
type TokenType int

const (
	// ILLEGAL marks a character the scanner could not classify.
	ILLEGAL TokenType = iota
	// EOF marks the end of the source.
	EOF

	// IDENT is an Identifier (ES5.1 §7.6) that is not a keyword.
	IDENT

	literalBegin
	NUMBER     // NumericLiteral, §7.8.3
	STRING     // StringLiteral, §7.8.4
	REGEX      // RegularExpressionLiteral, §7.8.5
	NULLLIT    // the `null` literal, §7.8.1
	TRUELIT    // `true`
	FALSELIT   // `false`
	literalEnd

	keywordBegin
	BREAK
	CASE
	CATCH
	CONTINUE
	DEBUGGER
	DEFAULT
	DELETE
	DO
	ELSE
	FINALLY
	FOR
	FUNCTION
	IF
	IN
	INSTANCEOF
	NEW
	RETURN
	SWITCH
	THIS
	THROW
	TRY
	TYPEOF
	VAR
	VOID
	WHILE
	WITH
	keywordEnd

	// futureReservedBegin/End: ES5.1 §7.6.1.2, reserved unconditionally.
	futureReservedBegin
	CLASS
	CONST
	ENUM
	EXPORT
	EXTENDS
	IMPORT
	SUPER
	futureReservedEnd

	// strictFutureReservedBegin/End: additional words reserved only in
	// strict mode (ES5.1 §7.6.1.2, the "future reserved words" that become
	// keywords if and only if the surrounding code is strict).
	strictFutureReservedBegin
	IMPLEMENTS
	INTERFACE
	LET
	PACKAGE
	PRIVATE
	PROTECTED
	PUBLIC
	STATIC
	YIELD
	strictFutureReservedEnd

	punctBegin
	LBRACE    // {
	RBRACE    // }
	LPAREN    // (
	RPAREN    // )
	LBRACK    // [
	RBRACK    // ]
	DOT       // .
	SEMICOLON // ;
	COMMA     // ,
	LT        // <
	GT        // >
	LE        // <=
	GE        // >=
	EQ        // ==
	NE        // !=
	EQQ       // ===
	NEQ       // !==
	PLUS      // +
	MINUS     // -
	STAR      // *
	PERCENT   // %
	INC       // ++
	DEC       // --
	SHL       // <<
	SHR       // >>
	USHR      // >>>
	AMP       // &
	PIPE      // |
	CARET     // ^
	BANG      // !
	TILDE     // ~
	AND       // &&
	OR        // ||
	QUESTION  // ?
	COLON     // :
	ASSIGN    // =
	PLUSEQ    // +=
	MINUSEQ   // -=
	STAREQ    // *=
	PERCENTEQ // %=
	SHLEQ     // <<=
	SHREQ     // >>=
	USHREQ    // >>>=
	AMPEQ     // &=
	PIPEEQ    // |=
	CARETEQ   // ^=
	SLASH     // / (division; RegularExpressionLiteral is a separate kind)
	SLASHEQ   // /=
	punctEnd
)

var tokenNames = map[TokenType]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF", IDENT: "IDENT",
	NUMBER: "NUMBER", STRING: "STRING", REGEX: "REGEX",
	NULLLIT: "null", TRUELIT: "true", FALSELIT: "false",

	BREAK: "break", CASE: "case", CATCH: "catch", CONTINUE: "continue",
	DEBUGGER: "debugger", DEFAULT: "default", DELETE: "delete", DO: "do",
	ELSE: "else", FINALLY: "finally", FOR: "for", FUNCTION: "function",
	IF: "if", IN: "in", INSTANCEOF: "instanceof", NEW: "new",
	RETURN: "return", SWITCH: "switch", THIS: "this", THROW: "throw",
	TRY: "try", TYPEOF: "typeof", VAR: "var", VOID: "void",
	WHILE: "while", WITH: "with",

	CLASS: "class", CONST: "const", ENUM: "enum", EXPORT: "export",
	EXTENDS: "extends", IMPORT: "import", SUPER: "super",

	IMPLEMENTS: "implements", INTERFACE: "interface", LET: "let",
	PACKAGE: "package", PRIVATE: "private", PROTECTED: "protected",
	PUBLIC: "public", STATIC: "static", YIELD: "yield",

	LBRACE: "{", RBRACE: "}", LPAREN: "(", RPAREN: ")", LBRACK: "[", RBRACK: "]",
	DOT: ".", SEMICOLON: ";", COMMA: ",",
	LT: "<", GT: ">", LE: "<=", GE: ">=", EQ: "==", NE: "!=", EQQ: "===", NEQ: "!==",
	PLUS: "+", MINUS: "-", STAR: "*", PERCENT: "%", INC: "++", DEC: "--",
	SHL: "<<", SHR: ">>", USHR: ">>>", AMP: "&", PIPE: "|", CARET: "^",
	BANG: "!", TILDE: "~", AND: "&&", OR: "||", QUESTION: "?", COLON: ":",
	ASSIGN: "=", PLUSEQ: "+=", MINUSEQ: "-=", STAREQ: "*=", PERCENTEQ: "%=",
	SHLEQ: "<<=", SHREQ: ">>=", USHREQ: ">>>=", AMPEQ: "&=", PIPEEQ: "|=",
	CARETEQ: "^=", SLASH: "/", SLASHEQ: "/=",
}

// keywords maps the literal spelling of every unconditional keyword and
// reserved word to its TokenType. Identifiers not present here scan as IDENT.
var keywords = map[string]TokenType{}

// strictKeywords holds the Annex C words that are only reserved inside
// strict-mode code; elsewhere they scan as plain identifiers.
var strictKeywords = map[string]TokenType{}

func init() {
	for tt := keywordBegin + 1; tt < keywordEnd; tt++ {
		keywords[tokenNames[tt]] = tt
	}
	for tt := futureReservedBegin + 1; tt < futureReservedEnd; tt++ {
		keywords[tokenNames[tt]] = tt
	}
	for tt := strictFutureReservedBegin + 1; tt < strictFutureReservedEnd; tt++ {
		strictKeywords[tokenNames[tt]] = tt
	}
	// null/true/false are recognized as literal-kind keywords.
	keywords["null"] = NULLLIT
	keywords["true"] = TRUELIT
	keywords["false"] = FALSELIT
}

// String renders the canonical spelling of a token type, for error messages.
func (t TokenType) String() string {
	if s, ok := tokenNames[t]; ok {
		return s
	}
	return "UNKNOWN"
}

// IsLiteral reports whether t is one of the literal-kind token types.
func (t TokenType) IsLiteral() bool { return t > literalBegin && t < literalEnd }

// IsKeyword reports whether t is an unconditional ES5.1 keyword or reserved word.
func (t TokenType) IsKeyword() bool {
	return (t > keywordBegin && t < keywordEnd) || (t > futureReservedBegin && t < futureReservedEnd)
}

// IsStrictReserved reports whether t is one of the additional words Annex C
// reserves only inside strict-mode code.
func (t TokenType) IsStrictReserved() bool {
	return t > strictFutureReservedBegin && t < strictFutureReservedEnd
}

// LookupIdent classifies a scanned identifier: a keyword/reserved-word
// TokenType if `lit` spells one, IDENT otherwise. `strict` additionally
// folds in the Annex C strict-mode-only reserved words.
func LookupIdent(lit string, strict bool) TokenType {
	if tt, ok := keywords[lit]; ok {
		return tt
	}
	if strict {
		if tt, ok := strictKeywords[lit]; ok {
			return tt
		}
	}
	return IDENT
}

// assignmentOperators maps compound/simple assignment punctuators to the
// binary operator they combine with "=" (empty string for plain "=").
var assignmentOperators = map[TokenType]string{
	ASSIGN: "", PLUSEQ: "+", MINUSEQ: "-", STAREQ: "*", SLASHEQ: "/",
	PERCENTEQ: "%", SHLEQ: "<<", SHREQ: ">>", USHREQ: ">>>",
	AMPEQ: "&", PIPEEQ: "|", CARETEQ: "^",
}

// IsAssignmentOperator reports whether t is `=` or a compound assignment punctuator.
func (t TokenType) IsAssignmentOperator() bool {
	_, ok := assignmentOperators[t]
	return ok
}

// CompoundOp returns the binary operator a compound assignment combines
// with plain assignment (e.g. PLUSEQ -> "+"), or "" for plain ASSIGN.
func (t TokenType) CompoundOp() string {
	return assignmentOperators[t]
}
