// Package ast defines the parsed-program data model the semantic core
// consumes: the input contract spec.md §6 calls ParsedProgram. Lexing and
// parsing are external collaborators (spec.md §1); nothing in this
// package reads source text or builds these trees from it.
package ast

import (
	"github.com/lychee-tools/lychee/internal/ident"
	"github.com/lychee-tools/lychee/internal/token"
)

// Field is one declared field of a struct, in declaration order.
type Field struct {
	Name     string
	Type     Type
	Location token.Location
}

// StructDecl is a parsed struct declaration, possibly generic.
type StructDecl struct {
	Name           string
	GenericParams  []string
	Fields         []Field
	Location       token.Location
}

// EnumVariant is one declared variant of an enum, carrying the integer tag
// the variant resolves to.
type EnumVariant struct {
	Name     string
	Tag      int64
	Location token.Location
}

// EnumDecl is a parsed enum declaration. Enums in this language are
// value-typed with an integer underlying representation; they carry no
// payload.
type EnumDecl struct {
	Name     string
	Variants []EnumVariant
	Location token.Location
}

// AliasDecl is a parsed `type Name = T` declaration.
type AliasDecl struct {
	Name     string
	Target   Type
	Location token.Location
}

// Param is one declared parameter of a function header, in declaration
// order.
type Param struct {
	Name string
	Type Type
}

// FunctionDecl is a parsed function declaration, possibly generic.
type FunctionDecl struct {
	Name          string
	GenericParams []string
	Params        []Param
	ReturnType    Type
	Body          *Expression
	Location      token.Location
}

// Import is a single `use` clause: the local name it introduces and the
// module path it resolves to.
type Import struct {
	Name   string
	Target ident.Path
}

// Module is one parsed source module: its own declarations plus the
// imports visible while resolving unqualified names inside it.
type Module struct {
	Path    ident.Path
	File    string
	Imports []Import
	Structs   []StructDecl
	Enums     []EnumDecl
	Aliases   []AliasDecl
	Functions []FunctionDecl
}

// Program is the parser's complete output: every module in the compiled
// unit, keyed by its module path string, plus the entry function.
type Program struct {
	Modules map[string]*Module
	Main    ident.ModuleID
}
