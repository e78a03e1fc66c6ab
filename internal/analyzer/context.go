package analyzer

import (
	"github.com/lychee-tools/lychee/internal/diagnostics"
	"github.com/lychee-tools/lychee/internal/ident"
	"github.com/lychee-tools/lychee/internal/resolver"
	"github.com/lychee-tools/lychee/internal/session"
	"github.com/lychee-tools/lychee/internal/token"
	"github.com/lychee-tools/lychee/internal/typesystem"
)

// scope is one frame of the locals stack: the set of names declared
// directly in it. A name declared here shadows the same name in an
// enclosing frame; redeclaring it within this same frame is fatal.
type scope struct {
	vars map[string]typesystem.Type
}

// Context is the mutable state threaded through one function body's
// analysis: the read-only resolver tables, the enclosing function's
// generic parameters and return type, and the locals stack, per spec.md
// §4.3's AnalyzerContext. Apart from tuple structs that buildTuple adds
// through Types.EnsureTupleStruct, the tables are read-only; the locals
// stack and the instance tracker are the other state the analyzer mutates.
type Context struct {
	Types     *resolver.ResolvedTypes
	Functions *resolver.ResolvedFunctions
	ModulePath ident.Path
	Imports   map[string]ident.Path

	GenericParams typesystem.GenericParams
	ReturnType    typesystem.Type

	locals []scope

	Instances *InstanceSet
	Session   session.Session
}

// NewContext starts a fresh per-function analysis context. Call PushScope
// once before analyzing the function's top-level block to open its first
// scope (the parameters are declared into it by the caller).
func NewContext(prog *resolver.Program, modulePath ident.Path, generics typesystem.GenericParams, returnType typesystem.Type, instances *InstanceSet, sess session.Session) *Context {
	return &Context{
		Types:         prog.Types,
		Functions:     prog.Functions,
		ModulePath:    modulePath,
		Imports:       prog.Imports[modulePath.String()],
		GenericParams: generics,
		ReturnType:    returnType,
		Instances:     instances,
		Session:       sess,
	}
}

// PushScope opens a new, empty locals frame.
func (c *Context) PushScope() {
	c.locals = append(c.locals, scope{vars: map[string]typesystem.Type{}})
}

// PopScope discards the innermost locals frame.
func (c *Context) PopScope() {
	c.locals = c.locals[:len(c.locals)-1]
}

// Declare introduces name into the current (innermost) scope. Redeclaring a
// name already present in that same scope is fatal; shadowing a name from
// an enclosing scope is permitted, per spec.md §3's locals-stack invariant.
func (c *Context) Declare(name string, ty typesystem.Type, loc token.Location) error {
	current := &c.locals[len(c.locals)-1]
	if _, exists := current.vars[name]; exists {
		return diagnostics.New(diagnostics.ErrNotAssignable, loc, "Variable '%s' already declared", name)
	}
	current.vars[name] = ty
	return nil
}

// Lookup searches the locals stack from innermost to outermost scope.
func (c *Context) Lookup(name string) (typesystem.Type, bool) {
	for i := len(c.locals) - 1; i >= 0; i-- {
		if ty, ok := c.locals[i].vars[name]; ok {
			return ty, true
		}
	}
	return typesystem.Type{}, false
}

// ResolveGenericParam reports whether name is one of the enclosing
// function's own generic parameters.
func (c *Context) ResolveGenericParam(name string) (typesystem.GenericID, bool) {
	for _, g := range c.GenericParams {
		if g.Name == name {
			return g, true
		}
	}
	return typesystem.GenericID{}, false
}

