package ast

import (
	"github.com/lychee-tools/lychee/internal/ident"
	"github.com/lychee-tools/lychee/internal/token"
)

// ExprKind discriminates the parsed-expression variants the analyzer
// consumes. This mirrors a closed sum type (one struct, one tag, fields
// grouped by the kind that uses them) rather than a Go interface per
// variant, because the expression analyzer walks this tree with an
// explicit work stack and benefits from a single concrete node type it can
// push, pop, and re-push without going through an interface's dynamic
// dispatch at every step.
type ExprKind int

const (
	ExprBlock ExprKind = iota
	ExprReturn
	ExprContinue
	ExprBreak
	ExprIf
	ExprLoop
	ExprDeclaration
	ExprVariable
	ExprLiteral
	ExprUnary
	ExprBinary
	ExprFunctionCall
	ExprMemberFunctionCall
	ExprSizeof
	ExprTuple
	ExprStructInstance
)

// GenericIdentifier is a name reference as written at a use site: the item
// it names, plus any explicit generic arguments supplied with `::<...>`
// syntax.
type GenericIdentifier struct {
	ID          ident.ItemID
	GenericArgs []Type
}

// StructFieldValue is one `name: value` pair inside a struct instance
// literal, in the order the programmer wrote it (not declaration order).
type StructFieldValue struct {
	Name  string
	Value *Expression
}

// LiteralKind discriminates the constant forms the grammar produces.
type LiteralKind int

const (
	LiteralUnit LiteralKind = iota
	LiteralBool
	LiteralChar
	LiteralInteger
	LiteralString
)

// Literal is a parsed constant value.
type Literal struct {
	Kind    LiteralKind
	Bool    bool
	Char    byte
	Integer int64
	String  string
}

// UnaryOpKind discriminates the unary operator forms.
type UnaryOpKind int

const (
	UnaryMath UnaryOpKind = iota
	UnaryLogicalNot
	UnaryDereference
	UnaryBorrow
	UnaryIncrement
	UnaryDecrement
	UnaryCast
	UnaryMember
)

// UnaryOp is a parsed unary operator, with the payload the specific form
// needs (the math sub-op, the prefix/postfix flag, the cast target, or the
// member name).
type UnaryOp struct {
	Kind       UnaryOpKind
	Math       UnaryMathOp
	IsPrefix   bool
	CastTarget Type
	Member     string
}

// BinaryOpKind discriminates the binary operator forms.
type BinaryOpKind int

const (
	BinaryMath BinaryOpKind = iota
	BinaryComparison
	BinaryEquals
	BinaryNotEquals
	BinaryLogical
	BinaryAssign
	BinaryMathAssign
	BinaryLogicAssign
	BinaryIndex
)

// BinaryOp is a parsed binary operator, with the payload the specific form
// needs.
type BinaryOp struct {
	Kind       BinaryOpKind
	Math       BinaryMathOp
	Comparison BinaryComparisonOp
	Logic      BinaryLogicOp
}

// Expression is a parsed expression-tree node. Exactly one group of fields
// below is meaningful, selected by Kind; the rest are zero.
type Expression struct {
	Kind     ExprKind
	Location token.Location

	// ExprBlock
	Statements    []*Expression
	ReturnsValue  bool

	// ExprReturn, ExprBreak: operand is optional (nil for bare return/break)
	Operand *Expression

	// ExprIf
	Condition *Expression
	Then      *Expression
	Else      *Expression

	// ExprLoop
	Init *Expression
	Step *Expression
	Body *Expression

	// ExprDeclaration
	VarType *Type
	VarName string
	Value   *Expression

	// ExprVariable
	VariableRef GenericIdentifier

	// ExprLiteral
	Literal Literal

	// ExprUnary
	UnaryOp UnaryOp
	Expr    *Expression

	// ExprBinary
	BinOp BinaryOp
	Left  *Expression
	Right *Expression

	// ExprFunctionCall
	Callee *Expression
	Args   []*Expression

	// ExprMemberFunctionCall
	Receiver *Expression
	Method   string

	// ExprSizeof
	SizeofType Type

	// ExprTuple
	Elements []*Expression

	// ExprStructInstance
	StructName GenericIdentifier
	Fields     []StructFieldValue
}
