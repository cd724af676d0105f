package es5

import "github.com/es5lang/es5/internal/lexer"

// Token is one lexical token (spec.md §4.1/§4.2), re-exported so callers of
// Scanner/TokenStream don't need to import internal/lexer directly.
type Token = lexer.Token

// Scanner wraps the bare ES5.1 scanner (spec.md §6's `make_string_scanner`):
// Next returns the next token, always choosing the regex-permitting goal
// symbol. Callers that need goal-aware rescanning (distinguishing division
// from a regex literal by grammatical context) want TokenStream instead,
// which is what the real parser drives.
type Scanner struct {
	lex *lexer.Lexer
}

// NewStringScanner creates a Scanner over source.
func NewStringScanner(source string) *Scanner {
	return &Scanner{lex: lexer.New(source)}
}

// Next returns the next token, scanning under the RegExp goal symbol — the
// safe default for a caller with no grammatical context of its own (e.g.
// a syntax-highlighting tool), since treating an ambiguous leading '/' as
// a regex only fails to tokenize expressions where '/' is actually
// division, which a context-free scan cannot tell apart anyway.
func (s *Scanner) Next() Token {
	return s.lex.NextToken(lexer.GoalRegExp, false)
}

// Errors returns every lexical error accumulated so far.
func (s *Scanner) Errors() []lexer.Error { return s.lex.Errors() }

// TokenStream wraps a Scanner with one-token lookahead (spec.md §4.2),
// resolving the division/regex ambiguity the way the real parser does: the
// caller supplies the goal symbol appropriate to its own grammatical
// position via PeekDiv/PeekRegExp/ConsumeDiv/ConsumeRegExp.
type TokenStream struct {
	ts *lexer.TokenStream
}

// NewStringTokenStream creates a TokenStream over source.
func NewStringTokenStream(source string) *TokenStream {
	return &TokenStream{ts: lexer.NewTokenStream(lexer.New(source))}
}

// PeekDiv and PeekRegExp look ahead one token under the two ES5.1 goal
// symbols without consuming it; ConsumeDiv/ConsumeRegExp do the same and
// advance past it.
func (t *TokenStream) PeekDiv() Token       { return t.ts.Peek(lexer.GoalDiv) }
func (t *TokenStream) PeekRegExp() Token    { return t.ts.Peek(lexer.GoalRegExp) }
func (t *TokenStream) ConsumeDiv() Token    { return t.ts.Consume(lexer.GoalDiv) }
func (t *TokenStream) ConsumeRegExp() Token { return t.ts.Consume(lexer.GoalRegExp) }

// Errors returns every lexical error accumulated so far.
func (t *TokenStream) Errors() []lexer.Error { return t.ts.Errors() }
