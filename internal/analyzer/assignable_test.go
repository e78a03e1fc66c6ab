package analyzer

import (
	"testing"

	"github.com/lychee-tools/lychee/internal/typesystem"
)

// TestAssignabilityClosure checks spec.md §8's closure: exactly
// {LocalVariable, Dereference, FieldAccess (with an assignable base),
// PointerFieldAccess, ArrayIndex} are assignable, nothing else is.
func TestAssignabilityClosure(t *testing.T) {
	localBase := &Expression{Kind: KLocalVariable, Ty: typesystem.Integer(4)}
	localBaseAssignable, err := analyzeAssignableExpression(localBase)
	if err != nil {
		t.Fatalf("expected local variable to be assignable: %v", err)
	}

	assignableCases := []*Expression{
		localBase,
		{Kind: KDereference, Ty: typesystem.Integer(4)},
		{Kind: KFieldAccess, Ty: typesystem.Integer(4), Base: localBaseAssignable},
		{Kind: KPointerFieldAccess, Ty: typesystem.Integer(4)},
		{Kind: KArrayIndex, Ty: typesystem.Integer(4)},
	}
	for _, e := range assignableCases {
		if _, err := analyzeAssignableExpression(e); err != nil {
			t.Errorf("expected kind %d to be assignable, got error: %v", e.Kind, err)
		}
	}

	notAssignableCases := []*Expression{
		{Kind: KLiteral, Ty: typesystem.Integer(4)},
		{Kind: KBinaryMath, Ty: typesystem.Integer(4)},
		{Kind: KFunctionCall, Ty: typesystem.Integer(4)},
		{Kind: KFieldAccess, Ty: typesystem.Integer(4), Base: nil}, // field off a temporary
	}
	for _, e := range notAssignableCases {
		if _, err := analyzeAssignableExpression(e); err == nil {
			t.Errorf("expected kind %d (base=%v) to be rejected as not assignable", e.Kind, e.Base)
		}
	}
}

// TestBorrowDereferenceRoundTrip checks that *&x recovers x's original
// type, per spec.md §8's round-trip property.
func TestBorrowDereferenceRoundTrip(t *testing.T) {
	x := &Expression{Kind: KLocalVariable, Ty: typesystem.Integer(4), LocalName: "x"}
	target, err := analyzeAssignableExpression(x)
	if err != nil {
		t.Fatalf("x should be assignable: %v", err)
	}
	borrow := &Expression{Kind: KBorrow, Ty: typesystem.Pointer(x.Ty), Expr: x, Target: target}
	if borrow.Ty.Kind != typesystem.KindPointer {
		t.Fatalf("expected &x to be a pointer, got %s", borrow.Ty)
	}
	deref := &Expression{Kind: KDereference, Ty: *borrow.Ty.Inner, Expr: borrow}
	if !deref.Ty.Equal(x.Ty) {
		t.Errorf("*&x = %s, want %s", deref.Ty, x.Ty)
	}
}
