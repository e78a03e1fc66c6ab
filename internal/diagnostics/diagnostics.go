// Package diagnostics implements the analyzer's single error channel
// (spec.md §6-§7): a stable-coded, located error plus isatty-gated
// colorized formatting, grounded on the DiagnosticError{Code, Token,
// Message} + errorSet deduplication pattern the teacher's walker uses.
package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/lychee-tools/lychee/internal/token"
	"github.com/mattn/go-isatty"
)

// Code is a stable diagnostic identifier, independent of the message
// wording, so tests and tooling can key off it instead of string-matching
// prose.
type Code string

const (
	ErrUnresolvedType       Code = "ErrA001"
	ErrUnresolvedFunction   Code = "ErrA002"
	ErrUnresolvedField      Code = "ErrA003"
	ErrAmbiguousOverload    Code = "ErrA004"
	ErrUnresolvedGeneric    Code = "ErrA005"
	ErrArityMismatch        Code = "ErrA010"
	ErrStructFieldShape     Code = "ErrA011"
	ErrDuplicateField       Code = "ErrA012"
	ErrNotAssignable        Code = "ErrA013"
	ErrTypeMismatch         Code = "ErrA020"
	ErrExpectedInteger      Code = "ErrA021"
	ErrExpectedBool         Code = "ErrA022"
	ErrExpectedPointer      Code = "ErrA023"
	ErrExpectedStruct       Code = "ErrA024"
	ErrControlFlow          Code = "ErrA030"
	ErrCyclicStruct         Code = "ErrA040"
	ErrDuplicateSignature   Code = "ErrA041"
)

// Error is a single fatal semantic error, carrying a stable code, a
// human-readable message, and the source location of the construct that
// caused it, per spec.md §7's error taxonomy.
type Error struct {
	Code     Code
	Message  string
	Location token.Location
	cause    error
}

func New(code Code, location token.Location, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Location: location}
}

// Wrap attaches outer context (construct name and location of the
// surrounding operation) to an inner error, the way funxy's walker
// prefixes inner errors with the enclosing construct.
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Location)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// dedupKey matches the teacher's "line:col:code" deduplication key.
func (e *Error) dedupKey() string {
	return fmt.Sprintf("%d:%d:%s", e.Location.Line, e.Location.Column, e.Code)
}

// Set deduplicates diagnostics the way the teacher's walker.errorSet does:
// keyed by line, column and code, so the same construct never reports
// twice during one analysis pass.
type Set struct {
	byKey map[string]*Error
	order []string
}

func NewSet() *Set {
	return &Set{byKey: map[string]*Error{}}
}

func (s *Set) Add(e *Error) {
	key := e.dedupKey()
	if _, exists := s.byKey[key]; !exists {
		s.order = append(s.order, key)
	}
	s.byKey[key] = e
}

func (s *Set) All() []*Error {
	out := make([]*Error, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.byKey[key])
	}
	return out
}

func (s *Set) Empty() bool {
	return len(s.order) == 0
}

const (
	colorRed   = "\x1b[31m"
	colorBold  = "\x1b[1m"
	colorReset = "\x1b[0m"
)

// Print writes every diagnostic in s to w, one per line, in the order
// first added. When w is a terminal (checked via go-isatty, the way
// funxy's builtins gate their own ANSI output) the code and location are
// colorized; otherwise the output is plain text suitable for piping.
func (s *Set) Print(w io.Writer) {
	colorize := false
	if f, ok := w.(*os.File); ok {
		colorize = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	for _, e := range s.All() {
		if colorize {
			fmt.Fprintf(w, "%s%s%s: %s %s(%s)%s\n", colorBold, e.Code, colorReset, e.Message, colorRed, e.Location, colorReset)
		} else {
			fmt.Fprintf(w, "%s: %s (%s)\n", e.Code, e.Message, e.Location)
		}
	}
}
