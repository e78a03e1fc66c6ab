// Package assembler names the final compiler stage that lowers an analyzed
// program to machine or bytecode text, out of scope for this module per
// spec.md §1. Only the interface a real implementation would satisfy lives
// here.
package assembler

import "github.com/lychee-tools/lychee/internal/analyzer"

// Assembler turns an analyzed program into assembled bytes. The concrete
// implementation (a text assembler, a direct bytecode emitter, ...) is an
// external collaborator.
type Assembler interface {
	Assemble(*analyzer.Program) ([]byte, error)
}
