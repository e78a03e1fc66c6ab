package analyzer

import (
	"github.com/lychee-tools/lychee/internal/ast"
	"github.com/lychee-tools/lychee/internal/ident"
	"github.com/lychee-tools/lychee/internal/resolver"
	"github.com/lychee-tools/lychee/internal/token"
	"github.com/lychee-tools/lychee/internal/typesystem"
)

func buildLiteral(n *ast.Expression) (*Expression, error) {
	switch n.Literal.Kind {
	case ast.LiteralUnit:
		return &Expression{Kind: KLiteral, Ty: typesystem.Unit(), Location: n.Location, Literal: n.Literal}, nil
	case ast.LiteralBool:
		return &Expression{Kind: KLiteral, Ty: typesystem.Bool(), Location: n.Location, Literal: n.Literal}, nil
	case ast.LiteralChar:
		return &Expression{Kind: KLiteral, Ty: typesystem.Char(), Location: n.Location, Literal: n.Literal}, nil
	case ast.LiteralInteger:
		width := typesystem.WidthForLiteral(n.Literal.Integer)
		return &Expression{Kind: KLiteral, Ty: typesystem.Integer(width), Location: n.Location, Literal: n.Literal}, nil
	case ast.LiteralString:
		return &Expression{Kind: KConstantPointer, Ty: typesystem.Pointer(typesystem.Char()), Location: n.Location, ConstantString: n.Literal.String}, nil
	default:
		return nil, errNonKindType("literal", "known", "unknown", n.Location)
	}
}

func buildUnary(ctx *Context, n *ast.Expression, operand *Expression, castTarget *typesystem.Type) (*Expression, error) {
	switch n.UnaryOp.Kind {
	case ast.UnaryMath:
		if operand.Ty.Kind != typesystem.KindInteger {
			return nil, errNonKindType("unary operand", "integer", operand.Ty.String(), operand.Location)
		}
		return &Expression{Kind: KUnaryMath, Ty: operand.Ty, Location: n.Location, MathOp: n.UnaryOp.Math, Expr: operand}, nil

	case ast.UnaryLogicalNot:
		if !operand.Ty.Equal(typesystem.Bool()) {
			return nil, errNonKindType("unary operand", "bool", operand.Ty.String(), operand.Location)
		}
		return &Expression{Kind: KLogicalNot, Ty: typesystem.Bool(), Location: n.Location, Expr: operand}, nil

	case ast.UnaryDereference:
		if operand.Ty.Kind != typesystem.KindPointer {
			return nil, errNonKindType("dereference operand", "pointer", operand.Ty.String(), operand.Location)
		}
		return &Expression{Kind: KDereference, Ty: *operand.Ty.Inner, Location: n.Location, Expr: operand}, nil

	case ast.UnaryBorrow:
		target, err := analyzeAssignableExpression(operand)
		if err != nil {
			return nil, err
		}
		return &Expression{Kind: KBorrow, Ty: typesystem.Pointer(operand.Ty), Location: n.Location, Expr: operand, Target: target}, nil

	case ast.UnaryIncrement, ast.UnaryDecrement:
		target, err := analyzeAssignableExpression(operand)
		if err != nil {
			return nil, err
		}
		if target.Ty.Kind != typesystem.KindInteger {
			return nil, errNonKindType("increment/decrement operand", "integer", target.Ty.String(), operand.Location)
		}
		kind := KIncrement
		if n.UnaryOp.Kind == ast.UnaryDecrement {
			kind = KDecrement
		}
		return &Expression{Kind: kind, Ty: target.Ty, Location: n.Location, Expr: operand, Target: target}, nil

	case ast.UnaryCast:
		if !typesystem.CanCast(operand.Ty, *castTarget) {
			return nil, errCannotCast(operand.Ty.String(), castTarget.String(), n.Location)
		}
		return &Expression{Kind: KCast, Ty: *castTarget, Location: n.Location, Expr: operand, CastTarget: *castTarget}, nil

	case ast.UnaryMember:
		return buildMemberAccess(ctx, n, operand)
	}
	return nil, errNonKindType("unary operator", "known", "unknown", n.Location)
}

func buildMemberAccess(ctx *Context, n *ast.Expression, operand *Expression) (*Expression, error) {
	field := n.UnaryOp.Member
	switch operand.Ty.Kind {
	case typesystem.KindStruct:
		decl, ok := ctx.Types.GetStruct(operand.Ty.Struct.ID)
		if !ok {
			return nil, errTypeNotFound(operand.Ty.Struct.ID.Name, n.Location)
		}
		declaredTy, ok := decl.FieldTypes[field]
		if !ok {
			return nil, errFieldNotFound(operand.Ty.Struct.ID.Name, field, n.Location)
		}
		substituted := typesystem.ResolveGenericType(declaredTy, decl.GenericParams, operand.Ty.Struct.GenericArgs)
		var base *Assignable
		if a, err := analyzeAssignableExpression(operand); err == nil {
			base = a
		}
		return &Expression{Kind: KFieldAccess, Ty: substituted, Location: n.Location, Expr: operand, Base: base, FieldName: field}, nil

	case typesystem.KindPointer:
		indirection := 0
		cur := operand.Ty
		for cur.Kind == typesystem.KindPointer {
			indirection++
			cur = *cur.Inner
		}
		if cur.Kind != typesystem.KindStruct {
			return nil, errNonKindType("member access", "struct (through pointer)", operand.Ty.String(), n.Location)
		}
		decl, ok := ctx.Types.GetStruct(cur.Struct.ID)
		if !ok {
			return nil, errTypeNotFound(cur.Struct.ID.Name, n.Location)
		}
		declaredTy, ok := decl.FieldTypes[field]
		if !ok {
			return nil, errFieldNotFound(cur.Struct.ID.Name, field, n.Location)
		}
		substituted := typesystem.ResolveGenericType(declaredTy, decl.GenericParams, cur.Struct.GenericArgs)
		return &Expression{Kind: KPointerFieldAccess, Ty: substituted, Location: n.Location, PointerBase: operand, FieldName: field, Indirection: indirection}, nil

	default:
		return nil, errNonKindType("member access", "struct", operand.Ty.String(), n.Location)
	}
}

func buildBinary(n *ast.Expression, left, right *Expression) (*Expression, error) {
	switch n.BinOp.Kind {
	case ast.BinaryMath:
		if left.Ty.Kind != typesystem.KindInteger || !left.Ty.Equal(right.Ty) {
			return nil, errTypeMismatch(right.Ty.String(), left.Ty.String(), n.Location)
		}
		return &Expression{Kind: KBinaryMath, Ty: left.Ty, Location: n.Location, BinMathOp: n.BinOp.Math, Left: left, Right: right}, nil

	case ast.BinaryComparison:
		if left.Ty.Kind != typesystem.KindInteger || !left.Ty.Equal(right.Ty) {
			return nil, errTypeMismatch(right.Ty.String(), left.Ty.String(), n.Location)
		}
		return &Expression{Kind: KBinaryComparison, Ty: typesystem.Bool(), Location: n.Location, Comparison: n.BinOp.Comparison, Left: left, Right: right}, nil

	case ast.BinaryEquals, ast.BinaryNotEquals:
		allowedKind := left.Ty.Kind == typesystem.KindInteger || left.Ty.Kind == typesystem.KindBool ||
			left.Ty.Kind == typesystem.KindChar || left.Ty.Kind == typesystem.KindEnum
		if !left.Ty.Equal(right.Ty) || !allowedKind {
			return nil, errTypeMismatch(right.Ty.String(), left.Ty.String(), n.Location)
		}
		kind := KBinaryEquals
		if n.BinOp.Kind == ast.BinaryNotEquals {
			kind = KBinaryNotEquals
		}
		return &Expression{Kind: kind, Ty: typesystem.Bool(), Location: n.Location, Left: left, Right: right}, nil

	case ast.BinaryLogical:
		if !left.Ty.Equal(typesystem.Bool()) || !right.Ty.Equal(typesystem.Bool()) {
			return nil, errNonKindType("logical operand", "bool", left.Ty.String(), n.Location)
		}
		return &Expression{Kind: KBinaryLogical, Ty: typesystem.Bool(), Location: n.Location, Logic: n.BinOp.Logic, Left: left, Right: right}, nil

	case ast.BinaryAssign:
		lhs, err := analyzeAssignableExpression(left)
		if err != nil {
			return nil, err
		}
		if !lhs.Ty.Equal(right.Ty) {
			return nil, errTypeMismatch(right.Ty.String(), lhs.Ty.String(), n.Location)
		}
		return &Expression{Kind: KAssign, Ty: lhs.Ty, Location: n.Location, LHS: lhs, Right: right}, nil

	case ast.BinaryMathAssign:
		lhs, err := analyzeAssignableExpression(left)
		if err != nil {
			return nil, err
		}
		if lhs.Ty.Kind != typesystem.KindInteger || !lhs.Ty.Equal(right.Ty) {
			return nil, errNonKindType("op-assign operand", "matching integer", right.Ty.String(), n.Location)
		}
		return &Expression{Kind: KMathAssign, Ty: lhs.Ty, Location: n.Location, LHS: lhs, Right: right, BinMathOp: n.BinOp.Math}, nil

	case ast.BinaryLogicAssign:
		lhs, err := analyzeAssignableExpression(left)
		if err != nil {
			return nil, err
		}
		if !lhs.Ty.Equal(typesystem.Bool()) || !right.Ty.Equal(typesystem.Bool()) {
			return nil, errNonKindType("op-assign operand", "bool", right.Ty.String(), n.Location)
		}
		return &Expression{Kind: KLogicAssign, Ty: typesystem.Bool(), Location: n.Location, LHS: lhs, Right: right, Logic: n.BinOp.Logic}, nil

	case ast.BinaryIndex:
		if left.Ty.Kind != typesystem.KindPointer {
			return nil, errNonKindType("index base", "pointer", left.Ty.String(), n.Location)
		}
		if right.Ty.Kind != typesystem.KindInteger {
			return nil, errNonKindType("index", "integer", right.Ty.String(), n.Location)
		}
		return &Expression{Kind: KArrayIndex, Ty: *left.Ty.Inner, Location: n.Location, ArrayBase: left, ArrayIndex: right}, nil
	}
	return nil, errNonKindType("binary operator", "known", "unknown", n.Location)
}

func buildTuple(ctx *Context, elements []*Expression, loc token.Location) (*Expression, error) {
	elemTypes := make([]typesystem.Type, len(elements))
	for i, e := range elements {
		elemTypes[i] = e.Ty
	}
	ref := ctx.Types.EnsureTupleStruct(elemTypes)
	decl, _ := ctx.Types.GetStruct(ref.ID)
	return &Expression{
		Kind:       KTuple,
		Ty:         typesystem.StructType(ref),
		Location:   loc,
		Elements:   elements,
		StructID:   ref,
		FieldOrder: decl.FieldOrder,
	}, nil
}

func buildLoop(n *ast.Expression, children []*Expression) (*Expression, error) {
	idx := 0
	var init, condition, step, elseExpr *Expression
	if n.Init != nil {
		init = children[idx]
		idx++
		if !init.Ty.Equal(typesystem.Unit()) {
			return nil, errNonKindType("loop init", "unit", init.Ty.String(), init.Location)
		}
	}
	if n.Condition != nil {
		condition = children[idx]
		idx++
		if !condition.Ty.Equal(typesystem.Bool()) {
			return nil, errNonKindType("loop condition", "bool", condition.Ty.String(), condition.Location)
		}
	}
	if n.Step != nil {
		step = children[idx]
		idx++
		if !step.Ty.Equal(typesystem.Unit()) && step.Ty.Kind != typesystem.KindInteger {
			return nil, errNonKindType("loop step", "unit or integer", step.Ty.String(), step.Location)
		}
	}
	body := children[idx]
	idx++
	if !body.Ty.Equal(typesystem.Unit()) {
		return nil, errNonKindType("loop body", "unit", body.Ty.String(), body.Location)
	}
	if n.Else != nil {
		elseExpr = children[idx]
	}

	breakTy, hasBreak, err := assertBreakReturnType(body)
	if err != nil {
		return nil, err
	}
	_ = hasBreak
	var elseTy *typesystem.Type
	if elseExpr != nil {
		elseTy = &elseExpr.Ty
	}
	resultTy, err := loopResultType(condition != nil, elseExpr != nil, breakTy, elseTy, n.Location)
	if err != nil {
		return nil, err
	}

	return &Expression{
		Kind:     KLoop,
		Ty:       resultTy,
		Location: n.Location,
		Init:     init,
		Condition: condition,
		Step:     step,
		Body:     body,
		Else:     elseExpr,
	}, nil
}

func resolveStructID(ctx *Context, ref ast.GenericIdentifier, loc token.Location) (ident.ModuleID, error) {
	id := ref.ID
	if id.IsModuleLocal && id.ModulePath.Len() == 0 {
		if target, ok := ctx.Imports[id.Name]; ok {
			resolved := ident.ModuleID{ModulePath: target, Name: id.Name}
			if _, ok := ctx.Types.KnownStructs[resolved.String()]; ok {
				return resolved, nil
			}
		}
	}
	resolved := ident.ModuleID{ModulePath: id.ModulePath.Resolve(ctx.ModulePath), Name: id.Name}
	if _, ok := ctx.Types.KnownStructs[resolved.String()]; !ok {
		return ident.ModuleID{}, errTypeNotFound(resolved.Name, loc)
	}
	return resolved, nil
}

func resolveExplicitStructArgs(ctx *Context, ref ast.GenericIdentifier, decl *resolver.ResolvedStruct, loc token.Location) ([]typesystem.Type, error) {
	if len(ref.GenericArgs) == 0 {
		if len(decl.GenericParams) != 0 {
			return nil, errArity(ref.ID.Name, loc)
		}
		return nil, nil
	}
	if len(ref.GenericArgs) != len(decl.GenericParams) {
		return nil, errArity(ref.ID.Name, loc)
	}
	args := make([]typesystem.Type, len(ref.GenericArgs))
	for i, a := range ref.GenericArgs {
		resolved, err := ctx.Types.ResolveType(ctx.ModulePath, ctx.Imports, ctx.GenericParams, a)
		if err != nil {
			return nil, err
		}
		args[i] = resolved
	}
	return args, nil
}

func checkStructFieldShape(decl *resolver.ResolvedStruct, fields []ast.StructFieldValue, structName string, loc token.Location) error {
	seen := map[string]bool{}
	for _, f := range fields {
		if seen[f.Name] {
			return errDuplicateField(structName, f.Name, loc)
		}
		seen[f.Name] = true
		if _, declared := decl.FieldTypes[f.Name]; !declared {
			return errFieldShape(structName, loc)
		}
	}
	if len(seen) != len(decl.FieldOrder) {
		return errFieldShape(structName, loc)
	}
	return nil
}

func buildStructInstance(ctx *Context, item *workItem, children []*Expression, loc token.Location) (*Expression, error) {
	values := map[string]*Expression{}
	for i, name := range item.structFields {
		declaredTy := item.structDecl.FieldTypes[name]
		substituted := typesystem.ResolveGenericType(declaredTy, item.structDecl.GenericParams, item.structRef.GenericArgs)
		if !children[i].Ty.Equal(substituted) {
			return nil, errTypeMismatch(children[i].Ty.String(), substituted.String(), children[i].Location)
		}
		values[name] = children[i]
	}
	ctx.Instances.RecordStruct(item.structRef.ID, item.structRef.GenericArgs)
	return &Expression{
		Kind:        KStructInstance,
		Ty:          typesystem.StructType(*item.structRef),
		Location:    loc,
		StructID:    *item.structRef,
		FieldValues: values,
		FieldOrder:  item.structFields,
	}, nil
}
