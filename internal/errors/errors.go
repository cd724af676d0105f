// Package errors formats parse-time and early-error failures with source
// context, mirroring the diagnostic surface a host embedding the engine
// sees when parse_string/parse_file fail (spec.md §6, §7).
package errors

import (
	"fmt"
	"strings"

	"github.com/es5lang/es5/internal/lexer"
)

// ParseException is the error type returned by parse_string/parse_file and
// make_string_parser when source text cannot be turned into a Program —
// either a lexical error (unterminated string, bad escape, ...) or a
// syntactic/early error (unexpected token, duplicate strict-mode formal
// parameter, with-statement inside strict code, ...).
type ParseException struct {
	Message string
	File    string
	Source  string
	Pos     lexer.Position
}

// NewParseException creates a ParseException for the given position.
func NewParseException(pos lexer.Position, message, source, file string) *ParseException {
	return &ParseException{Pos: pos, Message: message, Source: source, File: file}
}

// Error implements the error interface.
func (e *ParseException) Error() string {
	return e.Format(false)
}

// Format renders the error with a source line and a caret pointing at the
// failing column. When color is true, ANSI codes highlight the caret.
func (e *ParseException) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "%s:%d:%d: %s\n", e.File, e.Pos.Line, e.Pos.Column, e.Message)
	} else {
		fmt.Fprintf(&sb, "%d:%d: %s\n", e.Pos.Line, e.Pos.Column, e.Message)
	}

	line := sourceLine(e.Source, e.Pos.Line)
	if line == "" {
		return strings.TrimRight(sb.String(), "\n")
	}

	prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
	sb.WriteString(prefix)
	sb.WriteString(line)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", len(prefix)+max(e.Pos.Column-1, 0)))
	if color {
		sb.WriteString("\033[1;31m")
	}
	sb.WriteString("^")
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// ParseExceptions is a collection of ParseException accumulated while
// parsing; the parser does not necessarily stop at the first syntax error.
// The public API (spec.md §6) returns the whole collection as the error:
// Error() joins every message, one per line, and First() returns the
// first one recorded.
type ParseExceptions []*ParseException

func (es ParseExceptions) Error() string {
	if len(es) == 0 {
		return "no parse errors"
	}
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "\n")
}

// First returns the first exception, or nil if the list is empty.
func (es ParseExceptions) First() *ParseException {
	if len(es) == 0 {
		return nil
	}
	return es[0]
}
