package analyzer

import (
	"github.com/lychee-tools/lychee/internal/diagnostics"
	"github.com/lychee-tools/lychee/internal/token"
)

// Error message builders matching the literal templates spec.md §6 names:
// "<what> expression has non-<kind> type '<ty>' at <loc>.", "<kind> '<name>'
// not found at <loc>.", "Variable '<name>' already declared at <loc>.",
// "Break type '<t>' does not match loop return type '<u>' at <loc>.".
// diagnostics.Error.Error() appends " at <loc>" itself, so these builders
// omit the trailing location clause and the final period is dropped too
// (the "at <loc>" suffix already reads naturally without one).

func errNonKindType(what, kind, ty string, loc token.Location) error {
	return diagnostics.New(diagnostics.ErrTypeMismatch, loc, "%s expression has non-%s type '%s'", what, kind, ty)
}

func errNotFound(kind, name string, loc token.Location) error {
	return diagnostics.New(diagnostics.ErrUnresolvedFunction, loc, "%s '%s' not found", kind, name)
}

func errTypeNotFound(name string, loc token.Location) error {
	return diagnostics.New(diagnostics.ErrUnresolvedType, loc, "type '%s' not found", name)
}

func errAlreadyDeclared(name string, loc token.Location) error {
	return diagnostics.New(diagnostics.ErrNotAssignable, loc, "Variable '%s' already declared", name)
}

func errBreakTypeMismatch(got, want string, loc token.Location) error {
	return diagnostics.New(diagnostics.ErrControlFlow, loc, "Break type '%s' does not match loop return type '%s'", got, want)
}

func errTypeMismatch(got, want string, loc token.Location) error {
	return diagnostics.New(diagnostics.ErrTypeMismatch, loc, "type '%s' does not match expected type '%s'", got, want)
}

func errNotAssignable(loc token.Location) error {
	return diagnostics.New(diagnostics.ErrNotAssignable, loc, "expression is not assignable")
}

func errOutsideLoop(what string, loc token.Location) error {
	return diagnostics.New(diagnostics.ErrControlFlow, loc, "'%s' outside any enclosing loop", what)
}

func errArity(name string, loc token.Location) error {
	return diagnostics.New(diagnostics.ErrArityMismatch, loc, "no overload of '%s' matches the supplied argument count", name)
}

func errAmbiguousOverload(name string, loc token.Location) error {
	return diagnostics.New(diagnostics.ErrAmbiguousOverload, loc, "call to '%s' is ambiguous", name)
}

func errFieldShape(structName string, loc token.Location) error {
	return diagnostics.New(diagnostics.ErrStructFieldShape, loc, "struct instance of '%s' does not supply exactly its declared fields", structName)
}

func errDuplicateField(structName, field string, loc token.Location) error {
	return diagnostics.New(diagnostics.ErrDuplicateField, loc, "field '%s' supplied more than once in struct instance of '%s'", field, structName)
}

func errIllegalLoopShape(loc token.Location) error {
	return diagnostics.New(diagnostics.ErrControlFlow, loc, "loop with an else branch requires a condition")
}

func errCannotCast(from, to string, loc token.Location) error {
	return diagnostics.New(diagnostics.ErrTypeMismatch, loc, "cannot cast '%s' to '%s'", from, to)
}

func errFieldNotFound(structName, field string, loc token.Location) error {
	return diagnostics.New(diagnostics.ErrUnresolvedField, loc, "field '%s' not found on struct '%s'", field, structName)
}
