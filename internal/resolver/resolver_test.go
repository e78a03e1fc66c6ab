package resolver

import (
	"testing"

	"github.com/lychee-tools/lychee/internal/ast"
	"github.com/lychee-tools/lychee/internal/ident"
	"github.com/lychee-tools/lychee/internal/typesystem"
)

func TestResolveBuiltinType(t *testing.T) {
	modPath := ident.Path{Segments: []string{"main"}, Absolute: true}
	prog := &ast.Program{
		Modules: map[string]*ast.Module{
			"main": {
				Path: modPath,
				Functions: []ast.FunctionDecl{
					{
						Name:       "main",
						ReturnType: ast.Type{Kind: ast.TypeNamed, ID: ident.ItemID{ModuleID: ident.ModuleID{Name: "int"}, IsModuleLocal: true}},
					},
				},
			},
		},
	}
	resolved, err := Build(prog)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	headers := resolved.Functions.ByID[ident.ModuleID{ModulePath: modPath, Name: "main"}.String()]
	if len(headers) != 1 {
		t.Fatalf("expected one main header, got %d", len(headers))
	}
	if !headers[0].ReturnType.Equal(typesystem.Integer(4)) {
		t.Errorf("expected main to return int, got %s", headers[0].ReturnType)
	}
}

func TestCyclicStructByValueIsFatal(t *testing.T) {
	modPath := ident.Path{Segments: []string{"main"}, Absolute: true}
	selfRef := ast.Type{Kind: ast.TypeNamed, ID: ident.ItemID{ModuleID: ident.ModuleID{Name: "Node"}, IsModuleLocal: true}}
	prog := &ast.Program{
		Modules: map[string]*ast.Module{
			"main": {
				Path: modPath,
				Structs: []ast.StructDecl{
					{Name: "Node", Fields: []ast.Field{{Name: "next", Type: selfRef}}},
				},
			},
		},
	}
	if _, err := Build(prog); err == nil {
		t.Fatal("expected cyclic struct definition to be fatal")
	}
}

func TestSelfReferentialStructByPointerIsAccepted(t *testing.T) {
	modPath := ident.Path{Segments: []string{"main"}, Absolute: true}
	selfPtr := ast.PointerType(ast.Type{}.Location, ast.Type{Kind: ast.TypeNamed, ID: ident.ItemID{ModuleID: ident.ModuleID{Name: "Node"}, IsModuleLocal: true}})
	prog := &ast.Program{
		Modules: map[string]*ast.Module{
			"main": {
				Path: modPath,
				Structs: []ast.StructDecl{
					{Name: "Node", Fields: []ast.Field{
						{Name: "value", Type: ast.Type{Kind: ast.TypeNamed, ID: ident.ItemID{ModuleID: ident.ModuleID{Name: "int"}, IsModuleLocal: true}}},
						{Name: "next", Type: selfPtr},
					}},
				},
			},
		},
	}
	resolved, err := Build(prog)
	if err != nil {
		t.Fatalf("expected pointer self-reference to be accepted, got %v", err)
	}
	s, ok := resolved.Types.GetStruct(ident.ModuleID{ModulePath: modPath, Name: "Node"})
	if !ok {
		t.Fatal("expected Node to be resolved")
	}
	if s.FieldOffsets["value"] != 0 || s.FieldOffsets["next"] != 4 {
		t.Errorf("unexpected layout: %+v", s.FieldOffsets)
	}
	if s.Size != 12 {
		t.Errorf("expected size 12 (4 byte int + 8 byte pointer), got %d", s.Size)
	}
}
