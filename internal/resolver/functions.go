package resolver

import (
	"fmt"

	"github.com/lychee-tools/lychee/internal/ident"
	"github.com/lychee-tools/lychee/internal/token"
	"github.com/lychee-tools/lychee/internal/typesystem"
)

// ResolvedFunctionHeader is a function declaration after its parameter and
// return types have been resolved. GenericParams is empty for a
// non-generic function.
type ResolvedFunctionHeader struct {
	ID             ident.ModuleID
	GenericParams  typesystem.GenericParams
	ParameterOrder []string
	ParameterTypes map[string]typesystem.Type
	ReturnType     typesystem.Type
	Location       token.Location
}

// ParameterTypesInOrder returns the header's parameter types in
// declaration order, the shape overload resolution compares against a
// call's argument types.
func (h *ResolvedFunctionHeader) ParameterTypesInOrder() []typesystem.Type {
	types := make([]typesystem.Type, len(h.ParameterOrder))
	for i, name := range h.ParameterOrder {
		types[i] = h.ParameterTypes[name]
	}
	return types
}

// ResolvedFunctions is the read-only function table the Name Resolver
// produces. Functions are grouped by fully-qualified id to support
// overloading: several headers may share one id as long as they differ in
// parameter types or generic arity (enforced at resolution time, see add
// below).
type ResolvedFunctions struct {
	ByID     map[string][]*ResolvedFunctionHeader // keyed by ident.ModuleID.String()
	Builtins map[string]ident.ModuleID            // unqualified builtin name -> id
}

func newResolvedFunctions() *ResolvedFunctions {
	return &ResolvedFunctions{
		ByID:     map[string][]*ResolvedFunctionHeader{},
		Builtins: map[string]ident.ModuleID{},
	}
}

// Candidates resolves a call-site identifier to the set of function
// headers reachable under that name, applying the same unqualified
// resolution order as ResolveType: a reference written with no path at
// all is tried against the builtins, then the imports, and only then
// resolved against the current module; a qualified reference goes
// straight to its resolved module path.
func (rf *ResolvedFunctions) Candidates(current ident.Path, imports map[string]ident.Path, id ident.ItemID) []*ResolvedFunctionHeader {
	if id.IsModuleLocal && id.ModulePath.Len() == 0 {
		if builtinID, ok := rf.Builtins[id.Name]; ok {
			return rf.ByID[builtinID.String()]
		}
		if target, ok := imports[id.Name]; ok {
			resolved := ident.ModuleID{ModulePath: target, Name: id.Name}
			return rf.ByID[resolved.String()]
		}
	}
	resolved := ident.ModuleID{ModulePath: id.ModulePath.Resolve(current), Name: id.Name}
	return rf.ByID[resolved.String()]
}

// CandidatesByArity narrows Candidates to headers with the given
// parameter count, and (when wantGenericArity >= 0) the given number of
// generic parameters.
func CandidatesByArity(candidates []*ResolvedFunctionHeader, arity, wantGenericArity int) []*ResolvedFunctionHeader {
	var out []*ResolvedFunctionHeader
	for _, c := range candidates {
		if len(c.ParameterOrder) != arity {
			continue
		}
		if wantGenericArity >= 0 && len(c.GenericParams) != wantGenericArity {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (rf *ResolvedFunctions) add(header *ResolvedFunctionHeader) error {
	key := header.ID.String()
	for _, existing := range rf.ByID[key] {
		if len(existing.GenericParams) != len(header.GenericParams) {
			continue
		}
		if typesystem.EqualSlice(existing.ParameterTypesInOrder(), header.ParameterTypesInOrder()) {
			return fmt.Errorf("duplicate function signature '%s' at %s (first declared at %s)", header.ID, header.Location, existing.Location)
		}
	}
	rf.ByID[key] = append(rf.ByID[key], header)
	return nil
}
