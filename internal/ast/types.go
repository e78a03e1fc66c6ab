package ast

import (
	"github.com/lychee-tools/lychee/internal/ident"
	"github.com/lychee-tools/lychee/internal/token"
)

// TypeKind discriminates the two parsed-type-expression shapes the grammar
// produces: a (possibly generic, possibly qualified) name, or a pointer to
// another parsed type.
type TypeKind int

const (
	TypeNamed TypeKind = iota
	TypePointer
)

// Type is a parsed type expression, as written by the programmer, before
// the resolver maps it to a typesystem.Type. It may reference a generic
// parameter of the enclosing header by name; only the resolver knows
// whether a given Named type is a builtin, a generic parameter, or a
// struct/enum reference.
type Type struct {
	Kind     TypeKind
	Location token.Location

	// TypeNamed
	ID          ident.ItemID
	GenericArgs []Type

	// TypePointer
	Inner *Type
}

func NamedType(loc token.Location, id ident.ItemID, genericArgs []Type) Type {
	return Type{Kind: TypeNamed, Location: loc, ID: id, GenericArgs: genericArgs}
}

func PointerType(loc token.Location, inner Type) Type {
	return Type{Kind: TypePointer, Location: loc, Inner: &inner}
}

func (t Type) String() string {
	switch t.Kind {
	case TypePointer:
		return "&" + t.Inner.String()
	default:
		return t.ID.String()
	}
}
