// Package token holds the source-location type threaded through every AST
// and analyzed-expression node. The lexer and parser that produce these
// locations live outside this module (see spec.md §1); this package only
// carries their output.
package token

import "fmt"

// Location identifies a single point in a source file. Every parsed AST
// node and every analyzed expression carries one, so that a semantic error
// can always be reported against the construct that caused it.
type Location struct {
	File   string
	Line   int
	Column int
}

func (l Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("line %d, column %d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Zero reports whether l was never assigned a real position, which happens
// for synthesized nodes (e.g. tuple field names) that borrow their
// location from an enclosing expression instead.
func (l Location) Zero() bool {
	return l.File == "" && l.Line == 0 && l.Column == 0
}
