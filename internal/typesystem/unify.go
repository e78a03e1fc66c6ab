package typesystem

import (
	"fmt"

	"github.com/lychee-tools/lychee/internal/token"
)

// GenericBindings accumulates the type argument inferred for each generic
// parameter encountered during UnifyAndInfer. The zero value is ready to
// use.
type GenericBindings map[string]Type

// Get returns the binding for g, if any.
func (b GenericBindings) Get(g GenericID) (Type, bool) {
	t, ok := b[g.Name]
	return t, ok
}

// Args projects b into a concrete argument tuple ordered by params,
// failing if any parameter was never bound.
func (b GenericBindings) Args(params GenericParams) ([]Type, bool) {
	args := make([]Type, len(params))
	for i, p := range params {
		t, ok := b[p.Name]
		if !ok {
			return nil, false
		}
		args[i] = t
	}
	return args, true
}

// UnifyAndInfer walks argTy and paramTy structurally in lockstep. Wherever
// paramTy is a GenericType, it binds that generic to the corresponding
// piece of argTy (erroring if it is already bound to something else);
// everywhere else it requires the head constructor to match and recurses
// into children, and requires terminal types to be equal.
func UnifyAndInfer(argTy, paramTy Type, bindings GenericBindings, loc token.Location) error {
	if paramTy.Kind == KindGeneric {
		if existing, ok := bindings[paramTy.Generic.Name]; ok && !existing.Equal(argTy) {
			return fmt.Errorf("ambiguous generic argument '%s' at %s", paramTy.Generic.Name, loc)
		}
		bindings[paramTy.Generic.Name] = argTy
		return nil
	}

	if argTy.Kind == KindPointer && paramTy.Kind == KindPointer {
		return UnifyAndInfer(*argTy.Inner, *paramTy.Inner, bindings, loc)
	}

	if argTy.Kind == KindStruct && paramTy.Kind == KindStruct {
		if !argTy.Struct.ID.Equal(paramTy.Struct.ID) || len(argTy.Struct.GenericArgs) != len(paramTy.Struct.GenericArgs) {
			return fmt.Errorf("type '%s' does not match expected type '%s' at %s", argTy, paramTy, loc)
		}
		for i := range argTy.Struct.GenericArgs {
			if err := UnifyAndInfer(argTy.Struct.GenericArgs[i], paramTy.Struct.GenericArgs[i], bindings, loc); err != nil {
				return err
			}
		}
		return nil
	}

	if argTy.Kind == KindFunction && paramTy.Kind == KindFunction {
		if len(argTy.Params) != len(paramTy.Params) {
			return fmt.Errorf("type '%s' does not match expected type '%s' at %s", argTy, paramTy, loc)
		}
		for i := range argTy.Params {
			if err := UnifyAndInfer(argTy.Params[i], paramTy.Params[i], bindings, loc); err != nil {
				return err
			}
		}
		return UnifyAndInfer(*argTy.Return, *paramTy.Return, bindings, loc)
	}

	if !argTy.Equal(paramTy) {
		return fmt.Errorf("type '%s' does not match expected type '%s' at %s", argTy, paramTy, loc)
	}
	return nil
}
