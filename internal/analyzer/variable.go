package analyzer

import (
	"strings"

	"github.com/lychee-tools/lychee/internal/ast"
	"github.com/lychee-tools/lychee/internal/resolver"
	"github.com/lychee-tools/lychee/internal/token"
	"github.com/lychee-tools/lychee/internal/typesystem"
)

// resolveVariable implements the "var" row of spec.md §4.3's typing table:
// a local in scope always wins (shadowing any function of the same name);
// failing that, an unqualified name is tried against every enum's variants
// visible in the current module ("file-scoped", per get_enum_from_variant);
// failing that, the name is resolved as a function pointer, guided by
// typeHint when one is available or else requiring a single unambiguous
// non-generic candidate.
func resolveVariable(ctx *Context, ref ast.GenericIdentifier, hint *typesystem.Type, loc token.Location) (*Expression, error) {
	id := ref.ID
	unqualified := id.IsModuleLocal && id.ModulePath.Len() == 0

	if len(ref.GenericArgs) == 0 && unqualified {
		if ty, ok := ctx.Lookup(id.Name); ok {
			return &Expression{Kind: KLocalVariable, Ty: ty, Location: loc, LocalName: id.Name}, nil
		}
		if expr, ok := lookupEnumVariant(ctx, id.Name, loc); ok {
			return expr, nil
		}
	}

	return resolveFunctionPointerVariable(ctx, ref, hint, loc)
}

func lookupEnumVariant(ctx *Context, name string, loc token.Location) (*Expression, bool) {
	prefix := ctx.ModulePath.String() + "::"
	for key, e := range ctx.Types.Enums {
		if ctx.ModulePath.Len() > 0 {
			if !strings.HasPrefix(key, prefix) || strings.Contains(key[len(prefix):], "::") {
				continue
			}
		} else if strings.Contains(key, "::") {
			continue
		}
		tag, ok := e.VariantTags[name]
		if !ok {
			continue
		}
		enumID, ok := ctx.Types.KnownEnums[key]
		if !ok {
			continue
		}
		return &Expression{
			Kind:     KEnumVariant,
			Ty:       typesystem.EnumType(enumID),
			Location: loc,
			EnumID:   enumID,
			Variant:  name,
			Tag:      tag,
		}, true
	}
	return nil, false
}

func resolveFunctionPointerVariable(ctx *Context, ref ast.GenericIdentifier, hint *typesystem.Type, loc token.Location) (*Expression, error) {
	candidates := ctx.Functions.Candidates(ctx.ModulePath, ctx.Imports, ref.ID)
	if len(candidates) == 0 {
		return nil, errNotFound("variable", ref.ID.Name, loc)
	}

	if len(ref.GenericArgs) > 0 {
		explicitArgs := make([]typesystem.Type, len(ref.GenericArgs))
		for i, ga := range ref.GenericArgs {
			resolved, err := ctx.Types.ResolveType(ctx.ModulePath, ctx.Imports, ctx.GenericParams, ga)
			if err != nil {
				return nil, err
			}
			explicitArgs[i] = resolved
		}
		for _, c := range candidates {
			if len(c.GenericParams) == len(explicitArgs) {
				return buildFunctionPointer(c, explicitArgs, loc), nil
			}
		}
		return nil, errNotFound("function", ref.ID.Name, loc)
	}

	if hint != nil && hint.Kind == typesystem.KindFunction {
		if expr, matches, err := matchFunctionPointerByHint(candidates, *hint, loc); err != nil {
			return nil, err
		} else if matches == 1 {
			return expr, nil
		} else if matches > 1 {
			return nil, errAmbiguousOverload(ref.ID.Name, loc)
		}
	}

	if len(candidates) != 1 {
		return nil, errAmbiguousOverload(ref.ID.Name, loc)
	}
	only := candidates[0]
	if len(only.GenericParams) != 0 {
		return nil, errNotFound("function", ref.ID.Name, loc)
	}
	return buildFunctionPointer(only, nil, loc), nil
}

func matchFunctionPointerByHint(candidates []*resolver.ResolvedFunctionHeader, hint typesystem.Type, loc token.Location) (*Expression, int, error) {
	var match *resolver.ResolvedFunctionHeader
	var matchArgs []typesystem.Type
	matches := 0

	for _, c := range candidates {
		params := c.ParameterTypesInOrder()
		if len(params) != len(hint.Params) {
			continue
		}
		if len(c.GenericParams) == 0 {
			if typesystem.EqualSlice(params, hint.Params) && c.ReturnType.Equal(*hint.Return) {
				match, matchArgs, matches = c, nil, matches+1
			}
			continue
		}

		bindings := typesystem.GenericBindings{}
		ok := true
		for i, p := range params {
			if err := typesystem.UnifyAndInfer(hint.Params[i], p, bindings, loc); err != nil {
				ok = false
				break
			}
		}
		if ok {
			if err := typesystem.UnifyAndInfer(*hint.Return, c.ReturnType, bindings, loc); err != nil {
				ok = false
			}
		}
		if !ok {
			continue
		}
		resolvedArgs, complete := bindings.Args(c.GenericParams)
		if !complete {
			continue
		}
		match, matchArgs, matches = c, resolvedArgs, matches+1
	}

	if matches != 1 {
		return nil, matches, nil
	}
	return buildFunctionPointer(match, matchArgs, loc), matches, nil
}

func buildFunctionPointer(h *resolver.ResolvedFunctionHeader, genericArgs []typesystem.Type, loc token.Location) *Expression {
	params := h.ParameterTypesInOrder()
	substituted := make([]typesystem.Type, len(params))
	for i, p := range params {
		substituted[i] = typesystem.ResolveGenericType(p, h.GenericParams, genericArgs)
	}
	retTy := typesystem.ResolveGenericType(h.ReturnType, h.GenericParams, genericArgs)
	return &Expression{
		Kind:                KFunctionPointer,
		Ty:                  typesystem.FunctionType(retTy, substituted),
		Location:            loc,
		FunctionRef:         h.ID,
		FunctionGenericArgs: genericArgs,
	}
}
