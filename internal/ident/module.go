// Package ident models the module-path and item-identifier values that
// name resolution and type resolution resolve unqualified references
// against.
package ident

import "strings"

// Path is an ordered sequence of module path segments, e.g. ["collections",
// "list"] for `collections::list`. An Absolute path is resolved from the
// program root; a relative path is resolved against the module performing
// the lookup.
type Path struct {
	Segments []string
	Absolute bool
}

// Len reports the number of segments in p.
func (p Path) Len() int {
	return len(p.Segments)
}

// Resolve rewrites a relative path against the module path of the code
// doing the lookup. An absolute path, or a path already rooted at the
// program root, is returned unchanged.
func (p Path) Resolve(current Path) Path {
	if p.Absolute {
		return p
	}
	combined := make([]string, 0, len(current.Segments)+len(p.Segments))
	combined = append(combined, current.Segments...)
	combined = append(combined, p.Segments...)
	return Path{Segments: combined, Absolute: true}
}

func (p Path) String() string {
	return strings.Join(p.Segments, "::")
}

// Equal reports whether p and other name the same path.
func (p Path) Equal(other Path) bool {
	if p.Absolute != other.Absolute || len(p.Segments) != len(other.Segments) {
		return false
	}
	for i, seg := range p.Segments {
		if other.Segments[i] != seg {
			return false
		}
	}
	return true
}

// ModuleID names a single declaration (a type, a function, a constant) by
// the module it lives in plus its own name. Two ModuleIDs are equal only
// when both the resolved module path and the name match.
type ModuleID struct {
	ModulePath Path
	Name       string
}

func (m ModuleID) String() string {
	if m.ModulePath.Len() == 0 {
		return m.Name
	}
	return m.ModulePath.String() + "::" + m.Name
}

// Equal reports structural equality between m and other.
func (m ModuleID) Equal(other ModuleID) bool {
	return m.Name == other.Name && m.ModulePath.Equal(other.ModulePath)
}

// ItemID is the reference a parse site produced for a name: ModuleID plus
// whether the parse site supplied any path segments at all. A bare
// identifier with no qualifying path ("foo") has IsModuleLocal true; a
// qualified reference ("bar::foo" or "::bar::foo") has it false. Only an
// IsModuleLocal reference is looked up among local variables (where a
// local wins over a same-named function) and among builtins and imports;
// a qualified reference already named its target module explicitly.
type ItemID struct {
	ModuleID
	IsModuleLocal bool
}

// Resolve rewrites the item's module path against the current module, the
// way ModuleId::resolve did in the originating implementation, preserving
// IsModuleLocal.
func (i ItemID) Resolve(current Path) ItemID {
	return ItemID{
		ModuleID:      ModuleID{ModulePath: i.ModulePath.Resolve(current), Name: i.Name},
		IsModuleLocal: i.IsModuleLocal,
	}
}
