package analyzer

import (
	"github.com/lychee-tools/lychee/internal/ast"
	"github.com/lychee-tools/lychee/internal/resolver"
	"github.com/lychee-tools/lychee/internal/token"
	"github.com/lychee-tools/lychee/internal/typesystem"
)

// argTypes projects the already-analyzed argument list into its type
// vector, the shape both overload lookup and unification compare against.
func argTypes(args []*Expression) []typesystem.Type {
	out := make([]typesystem.Type, len(args))
	for i, a := range args {
		out[i] = a.Ty
	}
	return out
}

func filterByArity(candidates []*resolver.ResolvedFunctionHeader, arity, wantGenericArity int) []*resolver.ResolvedFunctionHeader {
	return resolver.CandidatesByArity(candidates, arity, wantGenericArity)
}

// resolveCallByIdentifier implements spec.md §4.3's "Function calls —
// overload and generic resolution" for a callee written as a bare or
// qualified identifier. A local variable of function type with that name
// takes precedence (the same "local wins" rule spec.md §9 settles for
// plain variable resolution); otherwise the function table is consulted
// with explicit or inferred generics.
func resolveCallByIdentifier(ctx *Context, calleeID ast.GenericIdentifier, args []*Expression, loc token.Location) (*Expression, error) {
	A := argTypes(args)

	if calleeID.ID.IsModuleLocal && calleeID.ID.ModulePath.Len() == 0 && len(calleeID.GenericArgs) == 0 {
		if localTy, ok := ctx.Lookup(calleeID.ID.Name); ok && localTy.Kind == typesystem.KindFunction && typesystem.EqualSlice(localTy.Params, A) {
			pointerExpr := &Expression{Kind: KLocalVariable, Ty: localTy, Location: loc, LocalName: calleeID.ID.Name}
			return &Expression{
				Kind:     KFunctionCall,
				Ty:       *localTy.Return,
				Location: loc,
				Call:     &CallTarget{IsPointer: true, PointerExpr: pointerExpr},
				Args:     args,
			}, nil
		}
		// A local that shadows a function name but isn't itself a matching
		// function pointer doesn't shadow the call form: fall through to
		// ordinary function-table resolution, as the original's
		// determine_function_call does (it only ever special-cases the
		// FunctionType pointer path and otherwise always looks the name up
		// as a Variable against the function table).
	}

	candidates := ctx.Functions.Candidates(ctx.ModulePath, ctx.Imports, calleeID.ID)
	if len(candidates) == 0 {
		return nil, errNotFound("function", calleeID.ID.Name, loc)
	}

	if len(calleeID.GenericArgs) > 0 {
		return resolveExplicitGenericCall(ctx, calleeID, candidates, A, args, loc)
	}
	return resolveImplicitGenericCall(ctx, calleeID, candidates, A, args, loc)
}

func resolveExplicitGenericCall(ctx *Context, calleeID ast.GenericIdentifier, candidates []*resolver.ResolvedFunctionHeader, A []typesystem.Type, args []*Expression, loc token.Location) (*Expression, error) {
	explicitArgs := make([]typesystem.Type, len(calleeID.GenericArgs))
	for i, ga := range calleeID.GenericArgs {
		resolved, err := ctx.Types.ResolveType(ctx.ModulePath, ctx.Imports, ctx.GenericParams, ga)
		if err != nil {
			return nil, err
		}
		explicitArgs[i] = resolved
	}

	var match *resolver.ResolvedFunctionHeader
	matches := 0
	for _, c := range filterByArity(candidates, len(A), len(explicitArgs)) {
		params := c.ParameterTypesInOrder()
		substituted := make([]typesystem.Type, len(params))
		for i, p := range params {
			substituted[i] = typesystem.ResolveGenericType(p, c.GenericParams, explicitArgs)
		}
		if typesystem.EqualSlice(substituted, A) {
			match, matches = c, matches+1
		}
	}
	if matches == 0 {
		return nil, errNotFound("function", calleeID.ID.Name, loc)
	}
	if matches > 1 {
		return nil, errAmbiguousOverload(calleeID.ID.Name, loc)
	}

	retTy := typesystem.ResolveGenericType(match.ReturnType, match.GenericParams, explicitArgs)
	ctx.Instances.RecordFunction(match.ID, explicitArgs)
	return &Expression{
		Kind:     KFunctionCall,
		Ty:       retTy,
		Location: loc,
		Call:     &CallTarget{IsPointer: false, FunctionID: match.ID, GenericArgs: explicitArgs},
		Args:     args,
	}, nil
}

func resolveImplicitGenericCall(ctx *Context, calleeID ast.GenericIdentifier, candidates []*resolver.ResolvedFunctionHeader, A []typesystem.Type, args []*Expression, loc token.Location) (*Expression, error) {
	for _, c := range filterByArity(candidates, len(A), 0) {
		if typesystem.EqualSlice(c.ParameterTypesInOrder(), A) {
			ctx.Instances.RecordFunction(c.ID, nil)
			return &Expression{
				Kind:     KFunctionCall,
				Ty:       c.ReturnType,
				Location: loc,
				Call:     &CallTarget{IsPointer: false, FunctionID: c.ID},
				Args:     args,
			}, nil
		}
	}

	var success *resolver.ResolvedFunctionHeader
	var successArgs []typesystem.Type
	successes := 0
	for _, c := range candidates {
		params := c.ParameterTypesInOrder()
		if len(params) != len(A) || len(c.GenericParams) == 0 {
			continue
		}
		bindings := typesystem.GenericBindings{}
		ok := true
		for i, p := range params {
			if err := typesystem.UnifyAndInfer(A[i], p, bindings, loc); err != nil {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		resolvedArgs, complete := bindings.Args(c.GenericParams)
		if !complete {
			continue
		}
		substituted := make([]typesystem.Type, len(params))
		for i, p := range params {
			substituted[i] = typesystem.ResolveGenericType(p, c.GenericParams, resolvedArgs)
		}
		if !typesystem.EqualSlice(substituted, A) {
			continue
		}
		success, successArgs, successes = c, resolvedArgs, successes+1
	}

	if successes == 0 {
		return nil, errNotFound("function", calleeID.ID.Name, loc)
	}
	if successes > 1 {
		return nil, errAmbiguousOverload(calleeID.ID.Name, loc)
	}

	retTy := typesystem.ResolveGenericType(success.ReturnType, success.GenericParams, successArgs)
	ctx.Instances.RecordFunction(success.ID, successArgs)
	return &Expression{
		Kind:     KFunctionCall,
		Ty:       retTy,
		Location: loc,
		Call:     &CallTarget{IsPointer: false, FunctionID: success.ID, GenericArgs: successArgs},
		Args:     args,
	}, nil
}

// resolveCallByPointerExpr implements call form 1 ("Function-pointer
// call") for a callee that was analyzed as an ordinary expression (i.e.
// anything other than a bare/qualified identifier).
func resolveCallByPointerExpr(callee *Expression, args []*Expression, loc token.Location) (*Expression, error) {
	A := argTypes(args)
	if callee.Ty.Kind != typesystem.KindFunction || !typesystem.EqualSlice(callee.Ty.Params, A) {
		return nil, errNonKindType("callee", "matching function pointer", callee.Ty.String(), loc)
	}
	return &Expression{
		Kind:     KFunctionCall,
		Ty:       *callee.Ty.Return,
		Location: loc,
		Call:     &CallTarget{IsPointer: true, PointerExpr: callee},
		Args:     args,
	}, nil
}
