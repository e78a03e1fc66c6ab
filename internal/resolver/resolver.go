package resolver

import (
	"fmt"

	"github.com/lychee-tools/lychee/internal/ast"
	"github.com/lychee-tools/lychee/internal/ident"
	"github.com/lychee-tools/lychee/internal/typesystem"
)

// Program is the Name Resolver's output: the two read-only tables the
// expression analyzer consults, plus the import map each module needs to
// keep resolving unqualified references during expression analysis.
type Program struct {
	Types     *ResolvedTypes
	Functions *ResolvedFunctions
	Imports   map[string]map[string]ident.Path // module path string -> local name -> target
}

// Build runs the Name Resolver over a fully parsed program: it resolves
// imports, builds the type and function tables, computes struct field
// layouts, and detects cyclic-by-value struct definitions and duplicate
// function signatures. Every failure here is fatal and reported with the
// location of the offending declaration, per spec.md §4.1.
func Build(program *ast.Program) (*Program, error) {
	types := newResolvedTypes()
	functions := newResolvedFunctions()
	imports := map[string]map[string]ident.Path{}

	for _, mod := range program.Modules {
		importMap := map[string]ident.Path{}
		for _, imp := range mod.Imports {
			importMap[imp.Name] = imp.Target
		}
		imports[mod.Path.String()] = importMap

		for _, sd := range mod.Structs {
			id := ident.ModuleID{ModulePath: mod.Path, Name: sd.Name}
			types.KnownStructs[id.String()] = id
		}
		for _, ed := range mod.Enums {
			id := ident.ModuleID{ModulePath: mod.Path, Name: ed.Name}
			types.KnownEnums[id.String()] = id
		}
		for _, ad := range mod.Aliases {
			types.registerAlias(mod.Path, importMap, ad)
		}
	}

	// Every struct, enum and alias identity in the program is now known, so
	// alias targets can be resolved to a fixed point (spec.md §4.1 step 2):
	// an alias's target may name another alias, or a struct/enum declared
	// later in the program, in any order.
	if err := types.resolveAliasesFixedPoint(); err != nil {
		return nil, err
	}

	var structOrder []ident.ModuleID
	for _, mod := range program.Modules {
		importMap := imports[mod.Path.String()]
		for _, sd := range mod.Structs {
			id := ident.ModuleID{ModulePath: mod.Path, Name: sd.Name}
			resolved, err := resolveStructFields(types, mod.Path, importMap, sd)
			if err != nil {
				return nil, err
			}
			types.Structs[id.String()] = resolved
			structOrder = append(structOrder, id)
		}
		for _, ed := range mod.Enums {
			id := ident.ModuleID{ModulePath: mod.Path, Name: ed.Name}
			resolved, err := resolveEnum(ed)
			if err != nil {
				return nil, err
			}
			types.Enums[id.String()] = resolved
		}
	}

	if err := types.computeLayout(structOrder); err != nil {
		return nil, err
	}

	for _, mod := range program.Modules {
		importMap := imports[mod.Path.String()]
		for _, fd := range mod.Functions {
			header, err := resolveFunctionHeader(types, mod.Path, importMap, fd)
			if err != nil {
				return nil, err
			}
			if err := functions.add(header); err != nil {
				return nil, err
			}
		}
	}

	return &Program{Types: types, Functions: functions, Imports: imports}, nil
}

func resolveStructFields(types *ResolvedTypes, modPath ident.Path, imports map[string]ident.Path, sd ast.StructDecl) (*ResolvedStruct, error) {
	generics := make(typesystem.GenericParams, len(sd.GenericParams))
	for i, g := range sd.GenericParams {
		generics[i] = typesystem.GenericID{Name: g}
	}
	resolved := &ResolvedStruct{
		FieldOrder:    make([]string, 0, len(sd.Fields)),
		FieldTypes:    map[string]typesystem.Type{},
		FieldOffsets:  map[string]int{},
		GenericParams: generics,
		Location:      sd.Location,
	}
	seen := map[string]bool{}
	for _, f := range sd.Fields {
		if seen[f.Name] {
			return nil, fmt.Errorf("duplicate struct field '%s' at %s", f.Name, f.Location)
		}
		seen[f.Name] = true
		ty, err := types.ResolveType(modPath, imports, generics, f.Type)
		if err != nil {
			return nil, err
		}
		resolved.FieldOrder = append(resolved.FieldOrder, f.Name)
		resolved.FieldTypes[f.Name] = ty
	}
	return resolved, nil
}

func resolveEnum(ed ast.EnumDecl) (*ResolvedEnum, error) {
	resolved := &ResolvedEnum{
		VariantTags:  map[string]int64{},
		VariantOrder: make([]string, 0, len(ed.Variants)),
		Location:     ed.Location,
	}
	seen := map[string]bool{}
	for _, v := range ed.Variants {
		if seen[v.Name] {
			return nil, fmt.Errorf("duplicate enum variant '%s' at %s", v.Name, v.Location)
		}
		seen[v.Name] = true
		resolved.VariantOrder = append(resolved.VariantOrder, v.Name)
		resolved.VariantTags[v.Name] = v.Tag
	}
	return resolved, nil
}

func resolveFunctionHeader(types *ResolvedTypes, modPath ident.Path, imports map[string]ident.Path, fd ast.FunctionDecl) (*ResolvedFunctionHeader, error) {
	generics := make(typesystem.GenericParams, len(fd.GenericParams))
	for i, g := range fd.GenericParams {
		generics[i] = typesystem.GenericID{Name: g}
	}
	header := &ResolvedFunctionHeader{
		ID:             ident.ModuleID{ModulePath: modPath, Name: fd.Name},
		GenericParams:  generics,
		ParameterOrder: make([]string, 0, len(fd.Params)),
		ParameterTypes: map[string]typesystem.Type{},
		Location:       fd.Location,
	}
	for _, p := range fd.Params {
		ty, err := types.ResolveType(modPath, imports, generics, p.Type)
		if err != nil {
			return nil, err
		}
		header.ParameterOrder = append(header.ParameterOrder, p.Name)
		header.ParameterTypes[p.Name] = ty
	}
	ret, err := types.ResolveType(modPath, imports, generics, fd.ReturnType)
	if err != nil {
		return nil, err
	}
	header.ReturnType = ret
	return header, nil
}
