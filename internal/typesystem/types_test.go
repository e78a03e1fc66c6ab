package typesystem

import (
	"testing"

	"github.com/lychee-tools/lychee/internal/ident"
	"github.com/lychee-tools/lychee/internal/token"
)

func TestWidthForLiteral(t *testing.T) {
	cases := []struct {
		v    int64
		want int
	}{
		{1<<31 - 1, 4},
		{1 << 31, 8},
		{-(1 << 31), 4},
		{-(1<<31) - 1, 8},
	}
	for _, c := range cases {
		if got := WidthForLiteral(c.v); got != c.want {
			t.Errorf("WidthForLiteral(%d) = %d, want %d", c.v, got, c.want)
		}
	}
}

func TestEqualStructural(t *testing.T) {
	p := ident.ModuleID{Name: "Pair"}
	a := StructType(StructRef{ID: p, GenericArgs: []Type{Integer(4)}})
	b := StructType(StructRef{ID: p, GenericArgs: []Type{Integer(4)}})
	c := StructType(StructRef{ID: p, GenericArgs: []Type{Integer(8)}})
	if !a.Equal(b) {
		t.Errorf("expected %s to equal %s", a, b)
	}
	if a.Equal(c) {
		t.Errorf("expected %s to not equal %s", a, c)
	}
}

func TestResolveGenericTypeIdempotent(t *testing.T) {
	params := GenericParams{{Name: "T"}}
	args := []Type{Integer(4)}
	ty := Pointer(GenericType(GenericID{Name: "T"}))
	once := ResolveGenericType(ty, params, args)
	twice := ResolveGenericType(once, params, args)
	if !once.Equal(twice) {
		t.Errorf("ResolveGenericType not idempotent: %s vs %s", once, twice)
	}
	if !once.Equal(Pointer(Integer(4))) {
		t.Errorf("got %s, want &int", once)
	}
}

func TestUnifyAndInferRoundTrip(t *testing.T) {
	params := GenericParams{{Name: "T"}}
	param := GenericType(GenericID{Name: "T"})
	arg := Integer(8)
	bindings := GenericBindings{}
	if err := UnifyAndInfer(arg, param, bindings, token.Location{}); err != nil {
		t.Fatalf("UnifyAndInfer failed: %v", err)
	}
	resolvedArgs, ok := bindings.Args(params)
	if !ok {
		t.Fatalf("expected T to be bound")
	}
	if !ResolveGenericType(param, params, resolvedArgs).Equal(arg) {
		t.Errorf("round trip mismatch")
	}
}

func TestUnifyAndInferAmbiguous(t *testing.T) {
	bindings := GenericBindings{"T": Integer(4)}
	err := UnifyAndInfer(Integer(8), GenericType(GenericID{Name: "T"}), bindings, token.Location{})
	if err == nil {
		t.Fatal("expected ambiguous generic argument error")
	}
}

func TestCanCast(t *testing.T) {
	if !CanCast(Integer(4), Integer(8)) {
		t.Error("int widening should be castable")
	}
	if !CanCast(Char(), Integer(4)) {
		t.Error("char -> int should be castable")
	}
	if CanCast(Bool(), Char()) {
		t.Error("bool -> char should not be castable")
	}
	if !CanCast(Pointer(Integer(4)), Pointer(Bool())) {
		t.Error("pointer -> pointer should always be castable")
	}
}
