package analyzer

import (
	"testing"

	"github.com/lychee-tools/lychee/internal/ast"
	"github.com/lychee-tools/lychee/internal/ident"
	"github.com/lychee-tools/lychee/internal/resolver"
	"github.com/lychee-tools/lychee/internal/session"
	"github.com/lychee-tools/lychee/internal/typesystem"
)

func analyzeOne(t *testing.T, modPath ident.Path, fn ast.FunctionDecl, structs []ast.StructDecl, enums []ast.EnumDecl) *Program {
	t.Helper()
	prog := modProgram(modPath, fn, structs, enums)
	resolved, err := resolver.Build(prog)
	if err != nil {
		t.Fatalf("resolver.Build failed: %v", err)
	}
	analyzed, err := AnalyzeProgram(prog, resolved, session.New())
	if err != nil {
		t.Fatalf("AnalyzeProgram failed: %v", err)
	}
	return analyzed
}

func TestAnalyzeDeclarationAndReturn(t *testing.T) {
	modPath := ident.Path{Segments: []string{"main"}, Absolute: true}
	fn := ast.FunctionDecl{
		Name:       "main",
		ReturnType: namedType("int"),
		Body: block(true,
			decl("x", binMath(ast.MathAdd, intLit(1), intLit(2))),
			variable("x"),
		),
	}
	analyzed := analyzeOne(t, modPath, fn, nil, nil)
	if len(analyzed.Functions) != 1 {
		t.Fatalf("expected one analyzed function, got %d", len(analyzed.Functions))
	}
	body := analyzed.Functions[0].Body
	if !body.Ty.Equal(typesystem.Integer(4)) {
		t.Errorf("expected block to evaluate to int, got %s", body.Ty)
	}
	decl0 := body.Statements[0]
	if decl0.Kind != KDeclaration || !decl0.Value.Ty.Equal(typesystem.Integer(4)) {
		t.Errorf("expected x's declared value to be int, got %s", decl0.Value.Ty)
	}
}

func TestAnalyzeLoopWithBreakValue(t *testing.T) {
	modPath := ident.Path{Segments: []string{"main"}, Absolute: true}
	loopExpr := &ast.Expression{
		Kind:     ast.ExprLoop,
		Location: loc0,
		Body: block(false, &ast.Expression{
			Kind:     ast.ExprBreak,
			Location: loc0,
			Operand:  intLit(7),
		}),
	}
	fn := ast.FunctionDecl{
		Name:       "main",
		ReturnType: namedType("int"),
		Body:       block(true, loopExpr),
	}
	analyzed := analyzeOne(t, modPath, fn, nil, nil)
	body := analyzed.Functions[0].Body
	if !body.Ty.Equal(typesystem.Integer(4)) {
		t.Fatalf("expected loop-without-condition to evaluate to its break type (int), got %s", body.Ty)
	}
}

func TestAnalyzeConditionalLoopRequiresUnitBreak(t *testing.T) {
	modPath := ident.Path{Segments: []string{"main"}, Absolute: true}
	loopExpr := &ast.Expression{
		Kind:      ast.ExprLoop,
		Location:  loc0,
		Condition: &ast.Expression{Kind: ast.ExprLiteral, Location: loc0, Literal: ast.Literal{Kind: ast.LiteralBool, Bool: true}},
		Body: block(false, &ast.Expression{
			Kind:     ast.ExprBreak,
			Location: loc0,
			Operand:  intLit(7),
		}),
	}
	fn := ast.FunctionDecl{
		Name:       "main",
		ReturnType: namedType("unit"),
		Body:       block(false, loopExpr),
	}
	prog := modProgram(modPath, fn, nil, nil)
	resolved, err := resolver.Build(prog)
	if err != nil {
		t.Fatalf("resolver.Build failed: %v", err)
	}
	if _, err := AnalyzeProgram(prog, resolved, session.New()); err == nil {
		t.Fatal("expected a conditional loop breaking with a non-unit value to be fatal")
	}
}

func TestAnalyzeStructInstanceGenericRecordsInstance(t *testing.T) {
	modPath := ident.Path{Segments: []string{"main"}, Absolute: true}
	boxStruct := ast.StructDecl{
		Name:          "Box",
		GenericParams: []string{"T"},
		Fields: []ast.Field{
			{Name: "value", Type: ast.NamedType(loc0, ident.ItemID{ModuleID: ident.ModuleID{Name: "T"}, IsModuleLocal: true}, nil)},
		},
	}
	instanceExpr := &ast.Expression{
		Kind:     ast.ExprStructInstance,
		Location: loc0,
		StructName: ast.GenericIdentifier{
			ID:          ident.ItemID{ModuleID: ident.ModuleID{Name: "Box"}, IsModuleLocal: true},
			GenericArgs: []ast.Type{namedType("int")},
		},
		Fields: []ast.StructFieldValue{{Name: "value", Value: intLit(5)}},
	}
	fn := ast.FunctionDecl{
		Name:       "main",
		ReturnType: namedType("unit"),
		Body:       block(false, decl("b", instanceExpr)),
	}
	analyzed := analyzeOne(t, modPath, fn, []ast.StructDecl{boxStruct}, nil)
	structs := analyzed.Instances.Structs()
	if len(structs) != 1 {
		t.Fatalf("expected exactly one recorded struct instance, got %d", len(structs))
	}
	if structs[0].ID.Name != "Box" || len(structs[0].Args) != 1 || !structs[0].Args[0].Equal(typesystem.Integer(4)) {
		t.Errorf("unexpected instance recorded: %+v", structs[0])
	}
}

func TestAnalyzeEnumVariantIsFileScoped(t *testing.T) {
	modPath := ident.Path{Segments: []string{"main"}, Absolute: true}
	colorEnum := ast.EnumDecl{
		Name: "Color",
		Variants: []ast.EnumVariant{
			{Name: "Red", Tag: 0},
			{Name: "Blue", Tag: 1},
		},
	}
	fn := ast.FunctionDecl{
		Name:       "main",
		ReturnType: namedType("unit"),
		Body:       block(false, decl("c", variable("Red"))),
	}
	analyzed := analyzeOne(t, modPath, fn, nil, []ast.EnumDecl{colorEnum})
	value := analyzed.Functions[0].Body.Statements[0].Value
	if value.Kind != KEnumVariant || value.Variant != "Red" || value.Tag != 0 {
		t.Errorf("expected Red to resolve to enum variant tag 0, got %+v", value)
	}
}

// TestAnalyzeDeepNestingDoesNotOverflow exercises the explicit work-stack
// analyzer against a very deep expression tree: AnalyzeExpression must
// bound its recursion by the heap-allocated stack slice rather than the
// host call stack, per spec.md §8's deep-nesting boundary case.
func TestAnalyzeDeepNestingDoesNotOverflow(t *testing.T) {
	modPath := ident.Path{Segments: []string{"main"}, Absolute: true}
	const depth = 10000
	expr := intLit(1)
	for i := 0; i < depth; i++ {
		expr = &ast.Expression{
			Kind:     ast.ExprUnary,
			Location: loc0,
			UnaryOp:  ast.UnaryOp{Kind: ast.UnaryMath, Math: ast.UnaryPlus},
			Expr:     expr,
		}
	}
	fn := ast.FunctionDecl{
		Name:       "main",
		ReturnType: namedType("int"),
		Body:       block(true, expr),
	}
	analyzed := analyzeOne(t, modPath, fn, nil, nil)
	if !analyzed.Functions[0].Body.Ty.Equal(typesystem.Integer(4)) {
		t.Errorf("expected deeply nested unary chain to resolve to int, got %s", analyzed.Functions[0].Body.Ty)
	}
}
