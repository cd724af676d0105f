package lexer

// TokenStream wraps a Lexer with the one-token lookahead the Parser needs
// (spec.md §4.2). The parser selects a scanning Goal (division vs. regex)
// before each read; if a token was already buffered under the wrong goal and
// turns out to be an ambiguous '/' or '/=', the buffered token is discarded
// and rescanned from the saved pre-token position — this is the
// "rescan_as_regex" behavior spec.md §4.1/§9 describes.
type TokenStream struct {
	lex      *Lexer
	strict   bool
	buffered *Token
	bufGoal  Goal
	preState State
}

// NewTokenStream creates a TokenStream over the given Lexer, starting in
// non-strict mode. The strict-mode flag is updated via SetStrict when a
// "use strict" directive prologue is discovered, since that determines
// Annex C keyword classification and octal-literal/escape early errors.
func NewTokenStream(l *Lexer) *TokenStream {
	return &TokenStream{lex: l}
}

// SetStrict updates the strict-mode flag used for subsequent scans. Any
// already-buffered token was scanned before the mode changed, so it is
// invalidated and will be rescanned on the next Peek/Consume.
func (ts *TokenStream) SetStrict(strict bool) {
	if ts.strict == strict {
		return
	}
	ts.strict = strict
	if ts.buffered != nil {
		ts.lex.RestoreState(ts.preState)
		ts.buffered = nil
	}
}

// Strict reports the current strict-mode flag.
func (ts *TokenStream) Strict() bool { return ts.strict }

func (ts *TokenStream) scan(goal Goal) {
	ts.preState = ts.lex.SaveState()
	t := ts.lex.NextToken(goal, ts.strict)
	ts.buffered = &t
	ts.bufGoal = goal
}

// isAmbiguousSlash reports whether a buffered token's type depends on which
// goal it was scanned with - only '/' | '/=' (division) vs REGEX are
// ambiguous; every other token type scans identically under either goal.
func isAmbiguousSlash(t Token) bool {
	return t.Type == SLASH || t.Type == SLASHEQ || t.Type == REGEX
}

// Peek returns the next token under the given goal without consuming it.
func (ts *TokenStream) Peek(goal Goal) Token {
	if ts.buffered == nil {
		ts.scan(goal)
	} else if ts.bufGoal != goal && isAmbiguousSlash(*ts.buffered) {
		ts.lex.RestoreState(ts.preState)
		ts.scan(goal)
	}
	return *ts.buffered
}

// Consume returns the next token under the given goal and advances past it.
func (ts *TokenStream) Consume(goal Goal) Token {
	t := ts.Peek(goal)
	ts.buffered = nil
	return t
}

// Errors returns all lexical errors accumulated by the underlying Lexer.
func (ts *TokenStream) Errors() []Error { return ts.lex.Errors() }
