// Package codegen names the code-generation stage that lowers an analyzed
// program directly to machine code, bypassing a separate assembler, out of
// scope for this module per spec.md §1. Only the interface a real
// implementation would satisfy lives here.
package codegen

import "github.com/lychee-tools/lychee/internal/analyzer"

// Generator lowers an analyzed program to generated code bytes.
type Generator interface {
	Generate(*analyzer.Program) ([]byte, error)
}
