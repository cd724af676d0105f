// Package lexer implements the ECMAScript 5.1 scanner (ES5.1 §7): the
// Character Source and Scanner of spec.md §4.1, plus the TokenStream
// lookahead buffer of §4.2.
package lexer

import "fmt"

// Position identifies a 1-based line/column location in source text, plus
// the 0-based byte offset used for slicing the original source.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// RegexValue is the decoded semantic value of a RegularExpressionLiteral:
// the verbatim pattern body and flag letters, with delimiters and escapes
// left untouched (ES5.1 defers pattern validation to RegExp instantiation).
type RegexValue struct {
	Pattern string
	Flags   string
}

// Token is one lexical token (spec.md §3 "Token").
type Token struct {
	Type TokenType
	// Literal is the raw source text of the token (its lexeme).
	Literal string
	// Value is the decoded semantic value: float64 for NUMBER, the decoded
	// string (escapes processed, no quotes) for STRING, the decoded name for
	// IDENT/keywords (equal to Literal unless the source used \uXXXX
	// escapes), *RegexValue for REGEX.
	// nil for punctuators and EOF/ILLEGAL.
	Value any
	Start Position
	End   Position
	// PrecededByLineTerminator records whether a LineTerminator (ES5.1
	// §7.3) was skipped between the previous token and this one. This is
	// the bit Automatic Semicolon Insertion (§7.9) keys off.
	PrecededByLineTerminator bool
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Type, t.Literal, t.Start)
}

// IsEOF reports whether the token marks end of input.
func (t Token) IsEOF() bool { return t.Type == EOF }
