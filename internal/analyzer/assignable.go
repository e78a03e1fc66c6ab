package analyzer

import (
	"github.com/lychee-tools/lychee/internal/token"
	"github.com/lychee-tools/lychee/internal/typesystem"
)

// AssignableKind enumerates the l-value forms spec.md §8 names as the
// assignability closure: a name local to the current function, a
// dereferenced pointer, a field of a struct l-value, a field reached
// through one or more pointer indirections, or an indexed pointer.
type AssignableKind int

const (
	ALocalVariable AssignableKind = iota
	ADereference
	AFieldAccess
	APointerFieldAccess
	AArrayIndex
)

// Assignable is the result of classifying an already-analyzed expression
// as an l-value: its storage kind, its type, and the analyzed expression
// node it was derived from (reused as the codegen's lowering target).
type Assignable struct {
	Kind     AssignableKind
	Ty       typesystem.Type
	Location token.Location
	Expr     *Expression
}

// analyzeAssignableExpression classifies an already-typed expression as
// assignable or not, per spec.md §4.3's "Assignability classification".
// Any expression form outside the five l-value kinds fails with the
// expression's own location, matching the property test of spec.md §8:
// exactly {LocalVariable, Dereference, FieldAccess, PointerFieldAccess,
// ArrayIndex} are assignable.
func analyzeAssignableExpression(e *Expression) (*Assignable, error) {
	switch e.Kind {
	case KLocalVariable:
		return &Assignable{Kind: ALocalVariable, Ty: e.Ty, Location: e.Location, Expr: e}, nil
	case KDereference:
		return &Assignable{Kind: ADereference, Ty: e.Ty, Location: e.Location, Expr: e}, nil
	case KFieldAccess:
		// A field access is only an l-value when its own base was one; a
		// field read off a temporary (e.g. a function call returning a
		// struct by value) may be read but never assigned into.
		if e.Base == nil {
			return nil, errNotAssignable(e.Location)
		}
		return &Assignable{Kind: AFieldAccess, Ty: e.Ty, Location: e.Location, Expr: e}, nil
	case KPointerFieldAccess:
		return &Assignable{Kind: APointerFieldAccess, Ty: e.Ty, Location: e.Location, Expr: e}, nil
	case KArrayIndex:
		return &Assignable{Kind: AArrayIndex, Ty: e.Ty, Location: e.Location, Expr: e}, nil
	default:
		return nil, errNotAssignable(e.Location)
	}
}
