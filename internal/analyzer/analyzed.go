// Package analyzer implements the expression analyzer (spec.md §4.3): for
// every function body it walks the parsed expression tree and produces a
// typed tree, enforcing the typing rules, assignability, break-type
// unification, overload/generic call resolution, and the generic instance
// tracker (spec.md §4.4).
package analyzer

import (
	"github.com/lychee-tools/lychee/internal/ast"
	"github.com/lychee-tools/lychee/internal/ident"
	"github.com/lychee-tools/lychee/internal/token"
	"github.com/lychee-tools/lychee/internal/typesystem"
)

// Kind discriminates the analyzed-expression variants. Every variant names
// a concrete l-value or r-value form from spec.md §4.3's typing table; the
// assignability closure of spec.md §8 is exactly {LocalVariable,
// Dereference, FieldAccess, PointerFieldAccess, ArrayIndex}.
type Kind int

const (
	KBlock Kind = iota
	KReturn
	KContinue
	KBreak
	KIf
	KLoop
	KDeclaration
	KLocalVariable
	KLiteral
	KConstantPointer
	KUnaryMath
	KLogicalNot
	KDereference
	KBorrow
	KIncrement
	KDecrement
	KCast
	KFieldAccess
	KPointerFieldAccess
	KArrayIndex
	KBinaryMath
	KBinaryComparison
	KBinaryEquals
	KBinaryNotEquals
	KBinaryLogical
	KAssign
	KMathAssign
	KLogicAssign
	KSizeof
	KTuple
	KStructInstance
	KFunctionCall
	KFunctionPointer
	KEnumVariant
)

// CallTarget is the resolved callee of a FunctionCall: either a first-class
// function-pointer value that was itself analyzed, or a direct reference to
// one resolved function with its generic arguments substituted, per
// spec.md §4.3's two call forms.
type CallTarget struct {
	IsPointer    bool
	PointerExpr  *Expression
	FunctionID   ident.ModuleID
	GenericArgs  []typesystem.Type
}

// Expression is an analyzed expression-tree node: a parsed node enriched
// with a concrete type and its original source location. Exactly one group
// of fields is meaningful, selected by Kind, mirroring ast.Expression's
// single-struct tagged-union shape so the same iterative work stack can
// build these without an interface indirection.
type Expression struct {
	Kind     Kind
	Ty       typesystem.Type
	Location token.Location

	// KBlock
	Statements   []*Expression
	ReturnsValue bool

	// KReturn, KBreak: Operand is nil for a bare return/break
	Operand *Expression

	// KIf
	Condition *Expression
	Then      *Expression
	Else      *Expression

	// KLoop
	Init *Expression
	Step *Expression
	Body *Expression

	// KDeclaration
	VarName string
	Value   *Expression

	// KLocalVariable
	LocalName string

	// KLiteral
	Literal ast.Literal

	// KConstantPointer (string literal)
	ConstantString string

	// KUnaryMath, KIncrement, KDecrement, KMathAssign (math sub-op)
	MathOp   ast.UnaryMathOp
	BinMathOp ast.BinaryMathOp

	// KLogicalNot, KDereference, KBorrow, KIncrement, KDecrement, KCast
	Expr *Expression

	// KIncrement, KDecrement: the assignable the increment targets
	Target *Assignable

	// KCast
	CastTarget typesystem.Type

	// KFieldAccess
	Base      *Assignable // lvalue base
	FieldName string

	// KPointerFieldAccess
	PointerBase  *Expression // the pointer-typed operand; Indirection counts the dereferences down to the struct
	Indirection  int

	// KArrayIndex
	ArrayBase  *Expression
	ArrayIndex *Expression

	// KBinaryMath, KBinaryComparison, KBinaryEquals, KBinaryLogical, KAssign, KMathAssign, KLogicAssign
	Left       *Expression
	Right      *Expression
	Comparison ast.BinaryComparisonOp
	Logic      ast.BinaryLogicOp
	LHS        *Assignable // KAssign, KMathAssign, KLogicAssign: the assignable left side

	// KSizeof
	SizeofType typesystem.Type

	// KTuple
	Elements []*Expression

	// KStructInstance
	StructID    typesystem.StructRef
	FieldValues map[string]*Expression
	FieldOrder  []string

	// KFunctionCall
	Call *CallTarget
	Args []*Expression

	// KFunctionPointer
	FunctionRef ident.ModuleID
	FunctionGenericArgs []typesystem.Type

	// KEnumVariant
	EnumID  ident.ModuleID
	Variant string
	Tag     int64
}
