package analyzer

import (
	"github.com/lychee-tools/lychee/internal/ast"
	"github.com/lychee-tools/lychee/internal/resolver"
	"github.com/lychee-tools/lychee/internal/typesystem"
)

// workItem is one entry of the explicit two-phase work stack spec.md §4.3
// prescribes in place of host recursion: (node, visited, in_loop_scope,
// type_hint), plus the handful of auxiliary fields a node needs carried
// from its first visit (when children are pushed) to its second (when its
// own type is computed from the now-analyzed children).
type workItem struct {
	node        *ast.Expression
	visited     bool
	inLoopScope bool
	typeHint    *typesystem.Type

	declType     *typesystem.Type       // ExprDeclaration: resolved annotation, if any
	calleeIdent  *ast.GenericIdentifier // ExprFunctionCall: set when the callee is a bare/qualified identifier (not pushed as a child)
	structRef    *typesystem.StructRef  // ExprStructInstance
	structFields []string               // ExprStructInstance: declared field names in push order
	structDecl   *resolver.ResolvedStruct
	sizeofTy     *typesystem.Type // ExprSizeof
	castTarget   *typesystem.Type // UnaryCast
	childCount   int
}

// AnalyzeFunctionBody analyzes one function's body expression. The caller
// must have already pushed the scope holding the function's parameters.
func AnalyzeFunctionBody(ctx *Context, body *ast.Expression) (*Expression, error) {
	return AnalyzeExpression(ctx, body, false, nil)
}

// AnalyzeExpression is the iterative two-phase expression analyzer: it
// bounds recursion by an explicit work stack instead of the host call
// stack, so a pathologically deep expression tree analyzes without
// overflowing it, per spec.md §8's deeply-nested-block boundary case.
//
// On first pop (visited=false) the node is pushed back with visited=true
// and its children are pushed in reverse, so they are popped and analyzed
// left-to-right before the parent's second visit runs. On second pop the
// node consumes its already-analyzed children off the tail of output and
// computes its own type and analyzed kind.
func AnalyzeExpression(ctx *Context, root *ast.Expression, inLoopScope bool, typeHint *typesystem.Type) (*Expression, error) {
	stack := []*workItem{{node: root, inLoopScope: inLoopScope, typeHint: typeHint}}
	var output []*Expression

	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !item.visited {
			item.visited = true
			stack = append(stack, item)
			base := len(stack)
			if err := firstVisit(ctx, item, &stack); err != nil {
				return nil, err
			}
			// firstVisit pushes children left to right; reverse them so the
			// leftmost child is popped, and analyzed, first.
			for i, j := base, len(stack)-1; i < j; i, j = i+1, j-1 {
				stack[i], stack[j] = stack[j], stack[i]
			}
			continue
		}

		result, err := secondVisit(ctx, item, output)
		if err != nil {
			return nil, err
		}
		output = append(output[:len(output)-item.childCount], result)
	}

	if len(output) != 1 {
		panic("analyzer: work stack did not converge to a single result")
	}
	return output[0], nil
}

func push(stack *[]*workItem, items ...*workItem) {
	for i := len(items) - 1; i >= 0; i-- {
		*stack = append(*stack, items[i])
	}
}

func child(node *ast.Expression, inLoop bool, hint *typesystem.Type) *workItem {
	return &workItem{node: node, inLoopScope: inLoop, typeHint: hint}
}

// firstVisit pushes item's children (if any) onto stack, opening a block
// scope where the grammar requires one, and resolving any pure type
// expressions the node carries (these need no traversal of their own).
func firstVisit(ctx *Context, item *workItem, stack *[]*workItem) error {
	n := item.node
	switch n.Kind {
	case ast.ExprBlock:
		ctx.PushScope()
		for _, s := range n.Statements {
			push(stack, child(s, item.inLoopScope, nil))
		}
		item.childCount = len(n.Statements)

	case ast.ExprReturn, ast.ExprBreak:
		if n.Operand != nil {
			push(stack, child(n.Operand, item.inLoopScope, nil))
			item.childCount = 1
		}

	case ast.ExprContinue:
		// leaf

	case ast.ExprIf:
		push(stack, child(n.Condition, item.inLoopScope, nil))
		push(stack, child(n.Then, item.inLoopScope, nil))
		item.childCount = 2
		if n.Else != nil {
			push(stack, child(n.Else, item.inLoopScope, nil))
			item.childCount = 3
		}

	case ast.ExprLoop:
		if n.Init != nil {
			push(stack, child(n.Init, item.inLoopScope, nil))
			item.childCount++
		}
		if n.Condition != nil {
			push(stack, child(n.Condition, item.inLoopScope, nil))
			item.childCount++
		}
		if n.Step != nil {
			push(stack, child(n.Step, item.inLoopScope, nil))
			item.childCount++
		}
		push(stack, child(n.Body, true, nil))
		item.childCount++
		if n.Else != nil {
			push(stack, child(n.Else, item.inLoopScope, nil))
			item.childCount++
		}

	case ast.ExprDeclaration:
		if n.VarType != nil {
			resolved, err := ctx.Types.ResolveType(ctx.ModulePath, ctx.Imports, ctx.GenericParams, *n.VarType)
			if err != nil {
				return err
			}
			item.declType = &resolved
		}
		push(stack, child(n.Value, item.inLoopScope, item.declType))
		item.childCount = 1

	case ast.ExprVariable, ast.ExprLiteral:
		// leaves; resolved directly in secondVisit.

	case ast.ExprUnary:
		if n.UnaryOp.Kind == ast.UnaryCast {
			resolved, err := ctx.Types.ResolveType(ctx.ModulePath, ctx.Imports, ctx.GenericParams, n.UnaryOp.CastTarget)
			if err != nil {
				return err
			}
			item.castTarget = &resolved
		}
		push(stack, child(n.Expr, item.inLoopScope, nil))
		item.childCount = 1

	case ast.ExprBinary:
		push(stack, child(n.Left, item.inLoopScope, nil))
		push(stack, child(n.Right, item.inLoopScope, nil))
		item.childCount = 2

	case ast.ExprFunctionCall:
		if n.Callee.Kind == ast.ExprVariable {
			ref := n.Callee.VariableRef
			item.calleeIdent = &ref
		} else {
			push(stack, child(n.Callee, item.inLoopScope, nil))
			item.childCount++
		}
		for _, a := range n.Args {
			push(stack, child(a, item.inLoopScope, nil))
			item.childCount++
		}

	case ast.ExprMemberFunctionCall:
		// Rewritten by the parser into a plain call; by this point the
		// analyzer only needs the receiver, which the rewrite already
		// folded into Args[0] of the equivalent FunctionCall node. A
		// standalone ExprMemberFunctionCall reaching here means the
		// rewrite did not happen upstream; treat the receiver as an
		// ordinary operand so at least partial diagnostics are possible.
		push(stack, child(n.Receiver, item.inLoopScope, nil))
		item.childCount = 1

	case ast.ExprSizeof:
		resolved, err := ctx.Types.ResolveType(ctx.ModulePath, ctx.Imports, ctx.GenericParams, n.SizeofType)
		if err != nil {
			return err
		}
		item.sizeofTy = &resolved

	case ast.ExprTuple:
		for _, e := range n.Elements {
			push(stack, child(e, item.inLoopScope, nil))
		}
		item.childCount = len(n.Elements)

	case ast.ExprStructInstance:
		structID, err := resolveStructID(ctx, n.StructName, n.Location)
		if err != nil {
			return err
		}
		decl, ok := ctx.Types.GetStruct(structID)
		if !ok {
			return errTypeNotFound(structID.Name, n.Location)
		}
		genericArgs, err := resolveExplicitStructArgs(ctx, n.StructName, decl, n.Location)
		if err != nil {
			return err
		}
		if err := checkStructFieldShape(decl, n.Fields, n.StructName.ID.Name, n.Location); err != nil {
			return err
		}
		byName := map[string]*ast.Expression{}
		for _, f := range n.Fields {
			byName[f.Name] = f.Value
		}
		item.structRef = &typesystem.StructRef{ID: structID, GenericArgs: genericArgs}
		item.structDecl = decl
		item.structFields = decl.FieldOrder
		for _, name := range decl.FieldOrder {
			push(stack, child(byName[name], item.inLoopScope, nil))
		}
		item.childCount = len(decl.FieldOrder)
	}
	return nil
}

// secondVisit computes a node's analyzed form from its already-analyzed
// children, which sit at the tail of output in left-to-right order.
func secondVisit(ctx *Context, item *workItem, output []*Expression) (*Expression, error) {
	n := item.node
	children := output[len(output)-item.childCount:]

	switch n.Kind {
	case ast.ExprBlock:
		defer ctx.PopScope()
		ty := typesystem.Unit()
		if n.ReturnsValue && len(children) > 0 {
			ty = children[len(children)-1].Ty
		}
		return &Expression{Kind: KBlock, Ty: ty, Location: n.Location, Statements: children, ReturnsValue: n.ReturnsValue}, nil

	case ast.ExprReturn:
		var operand *Expression
		if len(children) == 1 {
			operand = children[0]
		}
		got := typesystem.Unit()
		if operand != nil {
			got = operand.Ty
		}
		if !got.Equal(ctx.ReturnType) {
			return nil, errTypeMismatch(got.String(), ctx.ReturnType.String(), n.Location)
		}
		return &Expression{Kind: KReturn, Ty: typesystem.Unit(), Location: n.Location, Operand: operand}, nil

	case ast.ExprContinue:
		if !item.inLoopScope {
			return nil, errOutsideLoop("continue", n.Location)
		}
		return &Expression{Kind: KContinue, Ty: typesystem.Unit(), Location: n.Location}, nil

	case ast.ExprBreak:
		if !item.inLoopScope {
			return nil, errOutsideLoop("break", n.Location)
		}
		var operand *Expression
		if len(children) == 1 {
			operand = children[0]
		}
		return &Expression{Kind: KBreak, Ty: typesystem.Unit(), Location: n.Location, Operand: operand}, nil

	case ast.ExprIf:
		cond, then := children[0], children[1]
		if !cond.Ty.Equal(typesystem.Bool()) {
			return nil, errNonKindType("if condition", "bool", cond.Ty.String(), cond.Location)
		}
		var elseExpr *Expression
		ty := typesystem.Unit()
		if n.Else != nil {
			elseExpr = children[2]
			if !then.Ty.Equal(elseExpr.Ty) {
				return nil, errTypeMismatch(elseExpr.Ty.String(), then.Ty.String(), elseExpr.Location)
			}
			ty = then.Ty
		} else if !then.Ty.Equal(typesystem.Unit()) {
			return nil, errNonKindType("if-without-else branch", "unit", then.Ty.String(), then.Location)
		}
		return &Expression{Kind: KIf, Ty: ty, Location: n.Location, Condition: cond, Then: then, Else: elseExpr}, nil

	case ast.ExprLoop:
		return buildLoop(n, children)

	case ast.ExprDeclaration:
		value := children[0]
		if item.declType != nil && !item.declType.Equal(value.Ty) {
			return nil, errTypeMismatch(value.Ty.String(), item.declType.String(), n.Location)
		}
		if err := ctx.Declare(n.VarName, value.Ty, n.Location); err != nil {
			return nil, err
		}
		return &Expression{Kind: KDeclaration, Ty: typesystem.Unit(), Location: n.Location, VarName: n.VarName, Value: value}, nil

	case ast.ExprVariable:
		return resolveVariable(ctx, n.VariableRef, item.typeHint, n.Location)

	case ast.ExprLiteral:
		return buildLiteral(n)

	case ast.ExprUnary:
		return buildUnary(ctx, n, children[0], item.castTarget)

	case ast.ExprBinary:
		return buildBinary(n, children[0], children[1])

	case ast.ExprFunctionCall:
		var args []*Expression
		var callee *Expression
		if item.calleeIdent != nil {
			args = children
		} else {
			callee, args = children[0], children[1:]
		}
		if item.calleeIdent != nil {
			return resolveCallByIdentifier(ctx, *item.calleeIdent, args, n.Location)
		}
		return resolveCallByPointerExpr(callee, args, n.Location)

	case ast.ExprMemberFunctionCall:
		return nil, errNotFound("member function", n.Method, n.Location)

	case ast.ExprSizeof:
		return &Expression{Kind: KSizeof, Ty: typesystem.Integer(4), Location: n.Location, SizeofType: *item.sizeofTy}, nil

	case ast.ExprTuple:
		return buildTuple(ctx, children, n.Location)

	case ast.ExprStructInstance:
		return buildStructInstance(ctx, item, children, n.Location)
	}

	panic("analyzer: unhandled expression kind")
}
