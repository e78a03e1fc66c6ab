package analyzer

import (
	"github.com/lychee-tools/lychee/internal/ast"
	"github.com/lychee-tools/lychee/internal/ident"
	"github.com/lychee-tools/lychee/internal/token"
)

var loc0 = token.Location{File: "test.ly", Line: 1, Column: 1}

func namedType(name string) ast.Type {
	return ast.NamedType(loc0, ident.ItemID{ModuleID: ident.ModuleID{Name: name}, IsModuleLocal: true}, nil)
}

func varRef(name string) ast.GenericIdentifier {
	return ast.GenericIdentifier{ID: ident.ItemID{ModuleID: ident.ModuleID{Name: name}, IsModuleLocal: true}}
}

func intLit(v int64) *ast.Expression {
	return &ast.Expression{Kind: ast.ExprLiteral, Location: loc0, Literal: ast.Literal{Kind: ast.LiteralInteger, Integer: v}}
}

func variable(name string) *ast.Expression {
	return &ast.Expression{Kind: ast.ExprVariable, Location: loc0, VariableRef: varRef(name)}
}

func block(returnsValue bool, stmts ...*ast.Expression) *ast.Expression {
	return &ast.Expression{Kind: ast.ExprBlock, Location: loc0, Statements: stmts, ReturnsValue: returnsValue}
}

func ret(operand *ast.Expression) *ast.Expression {
	return &ast.Expression{Kind: ast.ExprReturn, Location: loc0, Operand: operand}
}

func decl(name string, value *ast.Expression) *ast.Expression {
	return &ast.Expression{Kind: ast.ExprDeclaration, Location: loc0, VarName: name, Value: value}
}

func binMath(op ast.BinaryMathOp, left, right *ast.Expression) *ast.Expression {
	return &ast.Expression{Kind: ast.ExprBinary, Location: loc0, BinOp: ast.BinaryOp{Kind: ast.BinaryMath, Math: op}, Left: left, Right: right}
}

// modProgram builds a single-module program with one "main" module holding
// fn, ready for resolver.Build followed by AnalyzeProgram.
func modProgram(modPath ident.Path, fn ast.FunctionDecl, structs []ast.StructDecl, enums []ast.EnumDecl) *ast.Program {
	return &ast.Program{
		Modules: map[string]*ast.Module{
			modPath.String(): {
				Path:      modPath,
				Structs:   structs,
				Enums:     enums,
				Functions: []ast.FunctionDecl{fn},
			},
		},
	}
}
