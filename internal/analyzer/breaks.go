package analyzer

import (
	"fmt"

	"github.com/lychee-tools/lychee/internal/token"
	"github.com/lychee-tools/lychee/internal/typesystem"
)

// assertBreakReturnType walks an already-analyzed loop body and derives the
// common type shared by every reachable break payload, per spec.md §4.3's
// "Loops and break typing": reachable means not through a nested loop (a
// break inside a nested loop belongs to that loop, not this one). Returns
// the common type, whether any break was reachable at all, and an error if
// two reachable breaks disagree.
func assertBreakReturnType(body *Expression) (typesystem.Type, bool, error) {
	var common typesystem.Type
	found := false
	var loc token.Location

	var walk func(e *Expression) error
	walk = func(e *Expression) error {
		if e == nil {
			return nil
		}
		switch e.Kind {
		case KBreak:
			var breakTy typesystem.Type
			if e.Operand != nil {
				breakTy = e.Operand.Ty
			} else {
				breakTy = typesystem.Unit()
			}
			if !found {
				common, found, loc = breakTy, true, e.Location
				return nil
			}
			if !common.Equal(breakTy) {
				return errBreakTypeMismatch(breakTy.String(), common.String(), e.Location)
			}
			return nil
		case KLoop:
			// A nested loop's breaks belong to it, not the enclosing loop.
			return nil
		case KBlock:
			for _, s := range e.Statements {
				if err := walk(s); err != nil {
					return err
				}
			}
			return nil
		case KIf:
			if err := walk(e.Condition); err != nil {
				return err
			}
			if err := walk(e.Then); err != nil {
				return err
			}
			return walk(e.Else)
		case KReturn:
			return walk(e.Operand)
		case KDereference, KBorrow, KLogicalNot, KCast, KUnaryMath, KIncrement, KDecrement:
			return walk(e.Expr)
		case KDeclaration:
			return walk(e.Value)
		case KFieldAccess:
			return walk(e.Expr)
		case KPointerFieldAccess:
			return walk(e.PointerBase)
		case KArrayIndex:
			if err := walk(e.ArrayBase); err != nil {
				return err
			}
			return walk(e.ArrayIndex)
		case KBinaryMath, KBinaryComparison, KBinaryEquals, KBinaryNotEquals, KBinaryLogical:
			if err := walk(e.Left); err != nil {
				return err
			}
			return walk(e.Right)
		case KAssign, KMathAssign, KLogicAssign:
			if e.LHS != nil {
				if err := walk(e.LHS.Expr); err != nil {
					return err
				}
			}
			return walk(e.Right)
		case KFunctionCall:
			if e.Call != nil && e.Call.IsPointer {
				if err := walk(e.Call.PointerExpr); err != nil {
					return err
				}
			}
			for _, a := range e.Args {
				if err := walk(a); err != nil {
					return err
				}
			}
			return nil
		case KTuple:
			for _, el := range e.Elements {
				if err := walk(el); err != nil {
					return err
				}
			}
			return nil
		case KStructInstance:
			for _, v := range e.FieldValues {
				if err := walk(v); err != nil {
					return err
				}
			}
			return nil
		case KContinue, KLocalVariable, KLiteral, KConstantPointer, KSizeof, KFunctionPointer, KEnumVariant:
			return nil
		default:
			panic(fmt.Sprintf("assertBreakReturnType: unhandled expression kind %d", e.Kind))
		}
	}

	if err := walk(body); err != nil {
		return typesystem.Type{}, false, err
	}
	if !found {
		return typesystem.Unit(), false, nil
	}
	_ = loc
	return common, true, nil
}

// loopResultType applies spec.md §4.3's loop-result table given whether a
// condition and an else branch are present, the unified break type B, and
// (when present) the else branch's analyzed type.
func loopResultType(hasCondition, hasElse bool, breakTy typesystem.Type, elseTy *typesystem.Type, loc token.Location) (typesystem.Type, error) {
	switch {
	case hasCondition && hasElse:
		if !elseTy.Equal(breakTy) {
			return typesystem.Type{}, errTypeMismatch(elseTy.String(), breakTy.String(), loc)
		}
		return breakTy, nil
	case hasCondition && !hasElse:
		if !breakTy.Equal(typesystem.Unit()) {
			return typesystem.Type{}, errBreakTypeMismatch(breakTy.String(), "unit", loc)
		}
		return typesystem.Unit(), nil
	case !hasCondition && !hasElse:
		return breakTy, nil
	default: // !hasCondition && hasElse
		return typesystem.Type{}, errIllegalLoopShape(loc)
	}
}
