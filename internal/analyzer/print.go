package analyzer

import (
	"bytes"
	"fmt"
)

// printer is a minimal indenting text buffer, in the shape of funxy's
// CodePrinter: track an indent level, write whole lines, indent/dedent
// around a nested block.
type printer struct {
	buf    bytes.Buffer
	indent int
}

func (p *printer) line(format string, args ...any) {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteByte('\n')
}

// PrintProgram renders prog as an indented debug tree, one function per
// top-level block, grounded on analyzed_expression_printer.rs's
// print_program/print_expression/print_assignable_expression. Intended for
// the `-print-typed` CLI flag, not for round-tripping back to source.
func PrintProgram(prog *Program) string {
	p := &printer{}
	for _, fn := range prog.Functions {
		printFunctionHeader(p, fn)
		printExpression(p, fn.Body)
	}
	return p.buf.String()
}

func printFunctionHeader(p *printer, fn *Function) {
	p.line("Function%v(%s)", fn.GenericParams, fn.ID)
	p.indent++
	for _, name := range fn.ParameterOrder {
		p.line("%s: %s", name, fn.ParameterTypes[name])
	}
	p.indent--
	p.line("-> %s", fn.ReturnType)
}

func printExpression(p *printer, e *Expression) {
	if e == nil {
		p.line("<nil>")
		return
	}
	p.line("Expr type: %s", e.Ty)
	switch e.Kind {
	case KBlock:
		p.line("Block (returns: %v) {", e.ReturnsValue)
		p.indent++
		for _, s := range e.Statements {
			printExpression(p, s)
		}
		p.indent--
		p.line("}")

	case KReturn:
		p.line("Return {")
		p.indent++
		if e.Operand != nil {
			printExpression(p, e.Operand)
		}
		p.indent--
		p.line("}")

	case KContinue:
		p.line("Continue")

	case KBreak:
		p.line("Break {")
		p.indent++
		if e.Operand != nil {
			printExpression(p, e.Operand)
		}
		p.indent--
		p.line("}")

	case KIf:
		p.line("If {")
		p.indent++
		printExpression(p, e.Condition)
		printExpression(p, e.Then)
		if e.Else != nil {
			printExpression(p, e.Else)
		}
		p.indent--
		p.line("}")

	case KLoop:
		p.line("Loop {")
		p.indent++
		if e.Init != nil {
			printExpression(p, e.Init)
		}
		if e.Condition != nil {
			printExpression(p, e.Condition)
		}
		if e.Step != nil {
			printExpression(p, e.Step)
		}
		printExpression(p, e.Body)
		if e.Else != nil {
			printExpression(p, e.Else)
		}
		p.indent--
		p.line("}")

	case KDeclaration:
		p.line("Declaration(%s)", e.VarName)
		p.indent++
		printExpression(p, e.Value)
		p.indent--

	case KLocalVariable:
		p.line("LocalVariable(%s)", e.LocalName)

	case KLiteral:
		p.line("Literal(%v)", e.Literal)

	case KConstantPointer:
		p.line("ConstantPointer(%q)", e.ConstantString)

	case KUnaryMath:
		p.line("UnaryMath(%v)", e.MathOp)
		p.indent++
		printExpression(p, e.Expr)
		p.indent--

	case KLogicalNot:
		p.line("LogicalNot")
		p.indent++
		printExpression(p, e.Expr)
		p.indent--

	case KDereference:
		p.line("Dereference")
		p.indent++
		printExpression(p, e.Expr)
		p.indent--

	case KBorrow:
		p.line("Borrow")
		p.indent++
		printAssignable(p, e.Target)
		p.indent--

	case KIncrement, KDecrement:
		name := "Increment"
		if e.Kind == KDecrement {
			name = "Decrement"
		}
		p.line("%s", name)
		p.indent++
		printAssignable(p, e.Target)
		p.indent--

	case KCast:
		p.line("Cast(%s)", e.CastTarget)
		p.indent++
		printExpression(p, e.Expr)
		p.indent--

	case KFieldAccess:
		p.line("FieldAccess(%s)", e.FieldName)
		p.indent++
		printExpression(p, e.Expr)
		p.indent--

	case KPointerFieldAccess:
		p.line("PointerFieldAccess(%s, %d)", e.FieldName, e.Indirection)
		p.indent++
		printExpression(p, e.PointerBase)
		p.indent--

	case KArrayIndex:
		p.line("ArrayIndex")
		p.indent++
		printExpression(p, e.ArrayBase)
		printExpression(p, e.ArrayIndex)
		p.indent--

	case KBinaryMath:
		p.line("BinaryMath(%v)", e.BinMathOp)
		p.indent++
		printExpression(p, e.Left)
		printExpression(p, e.Right)
		p.indent--

	case KBinaryComparison:
		p.line("BinaryComparison(%v)", e.Comparison)
		p.indent++
		printExpression(p, e.Left)
		printExpression(p, e.Right)
		p.indent--

	case KBinaryEquals, KBinaryNotEquals:
		p.line("BinaryEquals(not: %v)", e.Kind == KBinaryNotEquals)
		p.indent++
		printExpression(p, e.Left)
		printExpression(p, e.Right)
		p.indent--

	case KBinaryLogical:
		p.line("BinaryLogical(%v)", e.Logic)
		p.indent++
		printExpression(p, e.Left)
		printExpression(p, e.Right)
		p.indent--

	case KAssign:
		p.line("Assign")
		p.indent++
		printAssignable(p, e.LHS)
		printExpression(p, e.Right)
		p.indent--

	case KMathAssign:
		p.line("MathAssign(%v)", e.BinMathOp)
		p.indent++
		printAssignable(p, e.LHS)
		printExpression(p, e.Right)
		p.indent--

	case KLogicAssign:
		p.line("LogicAssign(%v)", e.Logic)
		p.indent++
		printAssignable(p, e.LHS)
		printExpression(p, e.Right)
		p.indent--

	case KSizeof:
		p.line("Sizeof(%s)", e.SizeofType)

	case KTuple:
		p.line("Tuple")
		p.indent++
		for _, el := range e.Elements {
			printExpression(p, el)
		}
		p.indent--

	case KStructInstance:
		p.line("Struct(%s)", e.StructID.ID)
		p.indent++
		for _, name := range e.FieldOrder {
			p.line("%s:", name)
			p.indent++
			printExpression(p, e.FieldValues[name])
			p.indent--
		}
		p.indent--

	case KFunctionCall:
		p.line("FunctionCall")
		p.indent++
		if e.Call.IsPointer {
			printExpression(p, e.Call.PointerExpr)
		} else {
			p.line("Function(%s)", e.Call.FunctionID)
		}
		for _, a := range e.Args {
			printExpression(p, a)
		}
		p.indent--

	case KFunctionPointer:
		p.line("FunctionPointer(%s)", e.FunctionRef)

	case KEnumVariant:
		p.line("EnumVariant(%s::%s)", e.EnumID, e.Variant)

	default:
		p.line("<unknown kind %d>", e.Kind)
	}
}

func printAssignable(p *printer, a *Assignable) {
	if a == nil {
		p.line("<nil assignable>")
		return
	}
	switch a.Kind {
	case ALocalVariable:
		p.line("LocalVariable(%s)", a.Expr.LocalName)
	case ADereference:
		p.line("Dereference")
		p.indent++
		printExpression(p, a.Expr.Expr)
		p.indent--
	case AFieldAccess:
		p.line("FieldAccess(%s)", a.Expr.FieldName)
		p.indent++
		printAssignable(p, a.Expr.Base)
		p.indent--
	case APointerFieldAccess:
		p.line("PointerFieldAccess(%s, %d)", a.Expr.FieldName, a.Expr.Indirection)
		p.indent++
		printExpression(p, a.Expr.PointerBase)
		p.indent--
	case AArrayIndex:
		p.line("ArrayIndex")
		p.indent++
		printExpression(p, a.Expr.ArrayBase)
		printExpression(p, a.Expr.ArrayIndex)
		p.indent--
	}
}
