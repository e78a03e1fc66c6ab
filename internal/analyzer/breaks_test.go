package analyzer

import (
	"testing"

	"github.com/lychee-tools/lychee/internal/typesystem"
)

func breakOf(ty *typesystem.Type) *Expression {
	e := &Expression{Kind: KBreak, Ty: typesystem.Unit()}
	if ty != nil {
		e.Operand = &Expression{Kind: KLiteral, Ty: *ty}
	}
	return e
}

func TestAssertBreakReturnTypeAgreement(t *testing.T) {
	intTy := typesystem.Integer(4)
	body := &Expression{Kind: KBlock, Statements: []*Expression{breakOf(&intTy), breakOf(&intTy)}}
	ty, found, err := assertBreakReturnType(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found || !ty.Equal(intTy) {
		t.Fatalf("got (%s, %v), want (int, true)", ty, found)
	}
}

func TestAssertBreakReturnTypeMismatch(t *testing.T) {
	intTy := typesystem.Integer(4)
	boolTy := typesystem.Bool()
	body := &Expression{Kind: KBlock, Statements: []*Expression{breakOf(&intTy), breakOf(&boolTy)}}
	if _, _, err := assertBreakReturnType(body); err == nil {
		t.Fatal("expected mismatched break types to be fatal")
	}
}

func TestAssertBreakReturnTypeIgnoresNestedLoop(t *testing.T) {
	intTy := typesystem.Integer(4)
	boolTy := typesystem.Bool()
	nested := &Expression{Kind: KLoop, Body: &Expression{Kind: KBlock, Statements: []*Expression{breakOf(&boolTy)}}}
	body := &Expression{Kind: KBlock, Statements: []*Expression{nested, breakOf(&intTy)}}
	ty, found, err := assertBreakReturnType(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found || !ty.Equal(intTy) {
		t.Fatalf("nested loop's break leaked into the outer loop's type: got (%s, %v)", ty, found)
	}
}

func TestAssertBreakReturnTypeNoBreak(t *testing.T) {
	body := &Expression{Kind: KBlock}
	ty, found, err := assertBreakReturnType(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found || !ty.Equal(typesystem.Unit()) {
		t.Fatalf("got (%s, %v), want (unit, false)", ty, found)
	}
}

func TestLoopResultTypeTable(t *testing.T) {
	unit := typesystem.Unit()
	intTy := typesystem.Integer(4)

	if ty, err := loopResultType(false, false, intTy, nil, loc0); err != nil || !ty.Equal(intTy) {
		t.Errorf("no condition, no else: got (%s, %v), want (int, nil)", ty, err)
	}
	if ty, err := loopResultType(true, false, unit, nil, loc0); err != nil || !ty.Equal(unit) {
		t.Errorf("condition, no else, unit break: got (%s, %v), want (unit, nil)", ty, err)
	}
	if _, err := loopResultType(true, false, intTy, nil, loc0); err == nil {
		t.Error("condition without else requires a unit break type")
	}
	if ty, err := loopResultType(true, true, intTy, &intTy, loc0); err != nil || !ty.Equal(intTy) {
		t.Errorf("condition and matching else: got (%s, %v), want (int, nil)", ty, err)
	}
	boolTy := typesystem.Bool()
	if _, err := loopResultType(true, true, intTy, &boolTy, loc0); err == nil {
		t.Error("condition and mismatched else should be fatal")
	}
	if _, err := loopResultType(false, true, intTy, &intTy, loc0); err == nil {
		t.Error("else without condition is an illegal loop shape")
	}
}
