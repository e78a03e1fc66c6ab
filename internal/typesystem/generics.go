package typesystem

// GenericParams is the ordered list of generic parameters declared on a
// function or struct header. Index returns the position of g within it, so
// a concrete argument tuple of matching length can be indexed by it.
type GenericParams []GenericID

// Index returns the position of g in p, or -1 if g is not declared here.
func (p GenericParams) Index(g GenericID) int {
	for i, candidate := range p {
		if candidate.Name == g.Name {
			return i
		}
	}
	return -1
}

// Resolve looks up the concrete argument bound to g, given a matching
// args tuple produced for this parameter list.
func (p GenericParams) Resolve(g GenericID, args []Type) (Type, bool) {
	i := p.Index(g)
	if i < 0 || i >= len(args) {
		return Type{}, false
	}
	return args[i], true
}

// ResolveGenericType replaces every GenericType(g) appearing in ty with
// its corresponding concrete argument from args, recursing into Pointer,
// StructType.GenericArgs and FunctionType. It is idempotent: resolving an
// already-fully-substituted type returns it unchanged.
func ResolveGenericType(ty Type, params GenericParams, args []Type) Type {
	switch ty.Kind {
	case KindGeneric:
		resolved, ok := params.Resolve(ty.Generic, args)
		if !ok {
			// A header that type-checked against its own generic_params
			// can never reach this; the panic marks a resolver bug, not
			// a user error.
			panic("typesystem: generic parameter " + ty.Generic.Name + " has no matching argument")
		}
		return resolved
	case KindPointer:
		inner := ResolveGenericType(*ty.Inner, params, args)
		return Pointer(inner)
	case KindStruct:
		resolvedArgs := make([]Type, len(ty.Struct.GenericArgs))
		for i, arg := range ty.Struct.GenericArgs {
			resolvedArgs[i] = ResolveGenericType(arg, params, args)
		}
		return StructType(StructRef{ID: ty.Struct.ID, GenericArgs: resolvedArgs})
	case KindFunction:
		resolvedParams := make([]Type, len(ty.Params))
		for i, p := range ty.Params {
			resolvedParams[i] = ResolveGenericType(p, params, args)
		}
		return FunctionType(ResolveGenericType(*ty.Return, params, args), resolvedParams)
	default:
		return ty
	}
}
