package typesystem

import (
	"fmt"
	"strings"

	"github.com/lychee-tools/lychee/internal/ident"
)

// Kind discriminates the variants of Type, the closed tagged union this
// package works with everywhere. Unlike the teacher's Hindley-Milner type
// family (an interface satisfied by a dozen structs), this system is
// nominal and fully resolved by the time analysis runs, so one struct with
// a Kind tag is enough to cover every variant.
type Kind int

const (
	KindUnit Kind = iota
	KindBool
	KindChar
	KindInteger
	KindPointer
	KindStruct
	KindEnum
	KindFunction
	KindGeneric
)

// GenericID names a generic parameter declared on a function or struct
// header, scoped to that header.
type GenericID struct {
	Name string
}

// StructRef is a fully-applied reference to a struct type: the struct's
// declared identity plus one concrete type argument per generic
// parameter, in declaration order.
type StructRef struct {
	ID          ident.ModuleID
	GenericArgs []Type
}

// Type is the canonical analyzed type id (AnalyzedTypeId). Build one with
// the Unit/Bool/.../Generic constructors below rather than composing the
// zero value directly; the zero value is Unit, and Bool/Char need only
// their Kind set.
type Type struct {
	Kind Kind

	Width int // KindInteger

	Inner *Type // KindPointer

	Struct StructRef // KindStruct

	Enum ident.ModuleID // KindEnum

	Return *Type  // KindFunction
	Params []Type // KindFunction

	Generic GenericID // KindGeneric
}

func Unit() Type { return Type{Kind: KindUnit} }
func Bool() Type { return Type{Kind: KindBool} }
func Char() Type { return Type{Kind: KindChar} }

// Integer returns the integer type of the given byte width (1, 2, 4 or 8).
func Integer(width int) Type {
	return Type{Kind: KindInteger, Width: width}
}

func Pointer(inner Type) Type {
	return Type{Kind: KindPointer, Inner: &inner}
}

func StructType(ref StructRef) Type {
	return Type{Kind: KindStruct, Struct: ref}
}

func EnumType(id ident.ModuleID) Type {
	return Type{Kind: KindEnum, Enum: id}
}

func FunctionType(ret Type, params []Type) Type {
	return Type{Kind: KindFunction, Return: &ret, Params: params}
}

func GenericType(g GenericID) Type {
	return Type{Kind: KindGeneric, Generic: g}
}

// WidthForLiteral picks the narrowest of {4, 8} that can hold v: width 4
// if -2^31 <= v <= 2^31-1, else 8.
func WidthForLiteral(v int64) int {
	const (
		min32 = -(1 << 31)
		max32 = (1 << 31) - 1
	)
	if v >= min32 && v <= max32 {
		return 4
	}
	return 8
}

// Size reports the byte size of t. Struct sizes are owned by the resolver,
// so callers pass a lookup rather than this package depending on it.
func (t Type) Size(structSize func(ident.ModuleID) int) int {
	switch t.Kind {
	case KindUnit:
		return 0
	case KindBool, KindChar:
		return 1
	case KindInteger:
		return t.Width
	case KindPointer, KindFunction:
		return 8
	case KindEnum:
		return 4
	case KindStruct:
		return structSize(t.Struct.ID)
	default:
		return 0
	}
}

// ContainsGeneric reports whether t still mentions an unsubstituted
// GenericType anywhere in its structure. A fully analyzed expression must
// never have a type for which this returns true once a function body is
// monomorphized.
func (t Type) ContainsGeneric() bool {
	switch t.Kind {
	case KindGeneric:
		return true
	case KindPointer:
		return t.Inner.ContainsGeneric()
	case KindStruct:
		for _, a := range t.Struct.GenericArgs {
			if a.ContainsGeneric() {
				return true
			}
		}
		return false
	case KindFunction:
		if t.Return.ContainsGeneric() {
			return true
		}
		for _, p := range t.Params {
			if p.ContainsGeneric() {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func (t Type) String() string {
	switch t.Kind {
	case KindUnit:
		return "unit"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindInteger:
		switch t.Width {
		case 1:
			return "byte"
		case 2:
			return "short"
		case 4:
			return "int"
		case 8:
			return "long"
		default:
			return fmt.Sprintf("i%d", t.Width*8)
		}
	case KindPointer:
		return "&" + t.Inner.String()
	case KindStruct:
		if len(t.Struct.GenericArgs) == 0 {
			return t.Struct.ID.Name
		}
		args := make([]string, len(t.Struct.GenericArgs))
		for i, a := range t.Struct.GenericArgs {
			args[i] = a.String()
		}
		return fmt.Sprintf("%s<%s>", t.Struct.ID.Name, strings.Join(args, ","))
	case KindEnum:
		return t.Enum.Name
	case KindFunction:
		params := make([]string, len(t.Params))
		for i, p := range t.Params {
			params[i] = p.String()
		}
		return fmt.Sprintf("fn(%s) -> %s", strings.Join(params, ","), t.Return.String())
	case KindGeneric:
		return t.Generic.Name
	default:
		return "?"
	}
}
