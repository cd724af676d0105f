package es5

import (
	"os"

	esrerrors "github.com/es5lang/es5/internal/errors"
	"github.com/es5lang/es5/internal/parser"
)

// ParseString parses source as a complete ES5.1 Program (spec.md §6's
// `parse_string`). filename is used only for diagnostics in returned
// ParseExceptions; "" is fine for inline/eval sources. The returned error
// is always either nil or an errors.ParseExceptions (a slice of
// *errors.ParseException) — the caller can type assert it to inspect every
// accumulated error, or just use Error(), which joins all their messages.
func ParseString(source, filename string) (*Program, error) {
	p := parser.New(source, filename)
	program := p.ParseProgram()
	if errs := collectErrors(p); len(errs) > 0 {
		return nil, errs
	}
	return program, nil
}

// ParseFile reads path and parses it as a complete ES5.1 Program (spec.md
// §6's `parse_file`). Source files are always read as UTF-8, stripping a
// leading BOM if present (internal/lexer.New already does the stripping).
func ParseFile(path string) (*Program, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseString(string(content), path)
}

// collectErrors merges a Parser's syntactic errors with its scanner's
// lexical errors into one ParseExceptions list — a script with both an
// unterminated string and a later unexpected token reports both, not just
// one error category. The syntactic errors come first, then the lexical
// ones, each group in the order it was recorded; the list is not sorted
// by source position.
func collectErrors(p *parser.Parser) esrerrors.ParseExceptions {
	errs := p.Errors()
	for _, lexErr := range p.LexErrors() {
		errs = append(errs, esrerrors.NewParseException(lexErr.Pos, lexErr.Message, p.Source(), p.Filename()))
	}
	return errs
}
