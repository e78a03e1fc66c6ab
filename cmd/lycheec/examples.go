package main

import (
	"github.com/lychee-tools/lychee/internal/ast"
	"github.com/lychee-tools/lychee/internal/ident"
	"github.com/lychee-tools/lychee/internal/token"
)

// The real lexer and parser are external collaborators this repository
// never implements (spec.md §1); lycheec has no text-to-AST path to drive
// from a manifest's module roots. Instead its entry name selects one of
// the seed end-to-end scenarios spec.md §8 specifies directly, already
// shaped as the ParsedProgram the resolver and analyzer expect. A real
// toolchain build swaps this registry for a loader that hands the merger
// whatever the parser produced.
var examplePrograms = map[string]func() *ast.Program{
	"examples::arithmetic":     exampleArithmetic,
	"examples::generic_id":     exampleGenericIdentity,
	"examples::generic_struct": exampleGenericStruct,
	"examples::overload":       exampleOverload,
	"examples::break_mismatch": exampleBreakMismatch,
	"examples::decl_mismatch":  exampleDeclarationMismatch,
}

var loc0 = token.Location{File: "<example>", Line: 1, Column: 1}

func mainModule(path ident.Path, functions []ast.FunctionDecl, structs []ast.StructDecl) *ast.Program {
	return &ast.Program{
		Modules: map[string]*ast.Module{
			path.String(): {
				Path:      path,
				Structs:   structs,
				Functions: functions,
			},
		},
		Main: ident.ModuleID{ModulePath: path, Name: "main"},
	}
}

func localRef(name string) ident.ItemID {
	return ident.ItemID{ModuleID: ident.ModuleID{Name: name}, IsModuleLocal: true}
}

func namedType(name string) ast.Type {
	return ast.NamedType(loc0, localRef(name), nil)
}

func variable(name string) *ast.Expression {
	return &ast.Expression{Kind: ast.ExprVariable, Location: loc0, VariableRef: ast.GenericIdentifier{ID: localRef(name)}}
}

func intLit(v int64) *ast.Expression {
	return &ast.Expression{Kind: ast.ExprLiteral, Location: loc0, Literal: ast.Literal{Kind: ast.LiteralInteger, Integer: v}}
}

func boolLit(v bool) *ast.Expression {
	return &ast.Expression{Kind: ast.ExprLiteral, Location: loc0, Literal: ast.Literal{Kind: ast.LiteralBool, Bool: v}}
}

func block(returnsValue bool, stmts ...*ast.Expression) *ast.Expression {
	return &ast.Expression{Kind: ast.ExprBlock, Location: loc0, Statements: stmts, ReturnsValue: returnsValue}
}

func ret(operand *ast.Expression) *ast.Expression {
	return &ast.Expression{Kind: ast.ExprReturn, Location: loc0, Operand: operand}
}

func decl(name string, ty *ast.Type, value *ast.Expression) *ast.Expression {
	return &ast.Expression{Kind: ast.ExprDeclaration, Location: loc0, VarName: name, VarType: ty, Value: value}
}

func binMath(op ast.BinaryMathOp, left, right *ast.Expression) *ast.Expression {
	return &ast.Expression{Kind: ast.ExprBinary, Location: loc0, BinOp: ast.BinaryOp{Kind: ast.BinaryMath, Math: op}, Left: left, Right: right}
}

func assign(left, right *ast.Expression) *ast.Expression {
	return &ast.Expression{Kind: ast.ExprBinary, Location: loc0, BinOp: ast.BinaryOp{Kind: ast.BinaryAssign}, Left: left, Right: right}
}

func member(base *ast.Expression, name string) *ast.Expression {
	return &ast.Expression{Kind: ast.ExprUnary, Location: loc0, UnaryOp: ast.UnaryOp{Kind: ast.UnaryMember, Member: name}, Expr: base}
}

func call(callee *ast.Expression, args ...*ast.Expression) *ast.Expression {
	return &ast.Expression{Kind: ast.ExprFunctionCall, Location: loc0, Callee: callee, Args: args}
}

func borrow(operand *ast.Expression) *ast.Expression {
	return &ast.Expression{Kind: ast.ExprUnary, Location: loc0, UnaryOp: ast.UnaryOp{Kind: ast.UnaryBorrow}, Expr: operand}
}

// exampleArithmetic is spec.md §8 scenario 1:
// fn main() -> int { return 1+2; }
func exampleArithmetic() *ast.Program {
	modPath := ident.Path{Segments: []string{"examples"}, Absolute: true}
	fn := ast.FunctionDecl{
		Name:       "main",
		ReturnType: namedType("int"),
		Location:   loc0,
		Body:       block(true, ret(binMath(ast.MathAdd, intLit(1), intLit(2)))),
	}
	return mainModule(modPath, []ast.FunctionDecl{fn}, nil)
}

// exampleGenericIdentity is spec.md §8 scenario 2:
// fn id<T>(x:T) -> T { return x; } fn main() -> int { return id(7); }
func exampleGenericIdentity() *ast.Program {
	modPath := ident.Path{Segments: []string{"examples"}, Absolute: true}
	idFn := ast.FunctionDecl{
		Name:          "id",
		GenericParams: []string{"T"},
		Params:        []ast.Param{{Name: "x", Type: namedType("T")}},
		ReturnType:    namedType("T"),
		Location:      loc0,
		Body:          block(true, ret(variable("x"))),
	}
	mainFn := ast.FunctionDecl{
		Name:       "main",
		ReturnType: namedType("int"),
		Location:   loc0,
		Body:       block(true, ret(call(variable("id"), intLit(7)))),
	}
	return mainModule(modPath, []ast.FunctionDecl{idFn, mainFn}, nil)
}

// exampleGenericStruct is spec.md §8 scenario 3:
// struct P<T>{x:T,y:T} + main(){ let p = P::<int>{x:1,y:2}; p.x = p.y; }
func exampleGenericStruct() *ast.Program {
	modPath := ident.Path{Segments: []string{"examples"}, Absolute: true}
	pStruct := ast.StructDecl{
		Name:          "P",
		GenericParams: []string{"T"},
		Location:      loc0,
		Fields: []ast.Field{
			{Name: "x", Type: namedType("T"), Location: loc0},
			{Name: "y", Type: namedType("T"), Location: loc0},
		},
	}
	instance := &ast.Expression{
		Kind:     ast.ExprStructInstance,
		Location: loc0,
		StructName: ast.GenericIdentifier{
			ID:          localRef("P"),
			GenericArgs: []ast.Type{namedType("int")},
		},
		Fields: []ast.StructFieldValue{
			{Name: "x", Value: intLit(1)},
			{Name: "y", Value: intLit(2)},
		},
	}
	mainFn := ast.FunctionDecl{
		Name:       "main",
		ReturnType: namedType("unit"),
		Location:   loc0,
		Body: block(false,
			decl("p", nil, instance),
			assign(member(variable("p"), "x"), member(variable("p"), "y")),
		),
	}
	return mainModule(modPath, []ast.FunctionDecl{mainFn}, []ast.StructDecl{pStruct})
}

// exampleOverload is spec.md §8 scenario 6:
// fn f(x:int){} fn f(x:&int){} fn main(){ let a = 0; f(a); f(&a); }
func exampleOverload() *ast.Program {
	modPath := ident.Path{Segments: []string{"examples"}, Absolute: true}
	byValue := ast.FunctionDecl{
		Name:       "f",
		Params:     []ast.Param{{Name: "x", Type: namedType("int")}},
		ReturnType: namedType("unit"),
		Location:   loc0,
		Body:       block(false),
	}
	byPointer := ast.FunctionDecl{
		Name:       "f",
		Params:     []ast.Param{{Name: "x", Type: ast.PointerType(loc0, namedType("int"))}},
		ReturnType: namedType("unit"),
		Location:   loc0,
		Body:       block(false),
	}
	mainFn := ast.FunctionDecl{
		Name:       "main",
		ReturnType: namedType("unit"),
		Location:   loc0,
		Body: block(false,
			decl("a", nil, intLit(0)),
			call(variable("f"), variable("a")),
			call(variable("f"), borrow(variable("a"))),
		),
	}
	return mainModule(modPath, []ast.FunctionDecl{byValue, byPointer, mainFn}, nil)
}

// exampleBreakMismatch is spec.md §8 scenario 4, expected to fail analysis:
// loop { if cond { break 5; } else { break; } }
func exampleBreakMismatch() *ast.Program {
	modPath := ident.Path{Segments: []string{"examples"}, Absolute: true}
	ifExpr := &ast.Expression{
		Kind:      ast.ExprIf,
		Location:  loc0,
		Condition: variable("cond"),
		Then:      block(false, &ast.Expression{Kind: ast.ExprBreak, Location: loc0, Operand: intLit(5)}),
		Else:      block(false, &ast.Expression{Kind: ast.ExprBreak, Location: loc0}),
	}
	loopExpr := &ast.Expression{Kind: ast.ExprLoop, Location: loc0, Body: block(false, ifExpr)}
	mainFn := ast.FunctionDecl{
		Name:       "main",
		ReturnType: namedType("unit"),
		Location:   loc0,
		Body:       block(false, decl("cond", nil, boolLit(true)), loopExpr),
	}
	return mainModule(modPath, []ast.FunctionDecl{mainFn}, nil)
}

// exampleDeclarationMismatch is spec.md §8 scenario 5, expected to fail
// analysis: let x:int = "hi";
func exampleDeclarationMismatch() *ast.Program {
	modPath := ident.Path{Segments: []string{"examples"}, Absolute: true}
	strLit := &ast.Expression{Kind: ast.ExprLiteral, Location: loc0, Literal: ast.Literal{Kind: ast.LiteralString, String: "hi"}}
	intType := namedType("int")
	mainFn := ast.FunctionDecl{
		Name:       "main",
		ReturnType: namedType("unit"),
		Location:   loc0,
		Body:       block(false, decl("x", &intType, strLit)),
	}
	return mainModule(modPath, []ast.FunctionDecl{mainFn}, nil)
}
