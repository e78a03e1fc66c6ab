package analyzer

import (
	"github.com/lychee-tools/lychee/internal/ast"
	"github.com/lychee-tools/lychee/internal/ident"
	"github.com/lychee-tools/lychee/internal/resolver"
	"github.com/lychee-tools/lychee/internal/session"
	"github.com/lychee-tools/lychee/internal/typesystem"
)

// Function is one function's analyzed body plus the header information the
// codegen/assembler stage needs to lower it: its resolved parameter order
// and types, return type, and declared generics.
type Function struct {
	ID             ident.ModuleID
	GenericParams  typesystem.GenericParams
	ParameterOrder []string
	ParameterTypes map[string]typesystem.Type
	ReturnType     typesystem.Type
	Body           *Expression
}

// Program is the Expression Analyzer's complete output for one parsed
// program: every function's typed body plus the generic instances actually
// used across all of them (spec.md §4.4).
type Program struct {
	Functions []*Function
	Instances *InstanceSet
}

// AnalyzeProgram runs the Expression Analyzer over every function declared
// in parsed, using resolved as the read-only type/function tables. It stops
// at the first function that fails to analyze, per spec.md §4.3's fatal
// per-declaration error model (each diagnostic already carries its own
// location; the caller decides whether to collect further errors via
// internal/diagnostics.Set instead of stopping here).
func AnalyzeProgram(parsed *ast.Program, resolved *resolver.Program, sess session.Session) (*Program, error) {
	instances := NewInstanceSet()
	var functions []*Function

	for _, mod := range parsed.Modules {
		for _, fd := range mod.Functions {
			fn, err := analyzeFunction(resolved, mod.Path, fd, instances, sess)
			if err != nil {
				return nil, err
			}
			functions = append(functions, fn)
		}
	}

	return &Program{Functions: functions, Instances: instances}, nil
}

func analyzeFunction(resolved *resolver.Program, modPath ident.Path, fd ast.FunctionDecl, instances *InstanceSet, sess session.Session) (*Function, error) {
	generics := make(typesystem.GenericParams, len(fd.GenericParams))
	for i, g := range fd.GenericParams {
		generics[i] = typesystem.GenericID{Name: g}
	}

	header := &Function{
		ID:             ident.ModuleID{ModulePath: modPath, Name: fd.Name},
		GenericParams:  generics,
		ParameterOrder: make([]string, 0, len(fd.Params)),
		ParameterTypes: map[string]typesystem.Type{},
	}

	imports := resolved.Imports[modPath.String()]
	paramTypes := make([]typesystem.Type, len(fd.Params))
	for i, p := range fd.Params {
		ty, err := resolved.Types.ResolveType(modPath, imports, generics, p.Type)
		if err != nil {
			return nil, err
		}
		header.ParameterOrder = append(header.ParameterOrder, p.Name)
		header.ParameterTypes[p.Name] = ty
		paramTypes[i] = ty
	}
	returnTy, err := resolved.Types.ResolveType(modPath, imports, generics, fd.ReturnType)
	if err != nil {
		return nil, err
	}
	header.ReturnType = returnTy

	ctx := NewContext(resolved, modPath, generics, returnTy, instances, sess)
	ctx.PushScope()
	for i, name := range header.ParameterOrder {
		if err := ctx.Declare(name, paramTypes[i], fd.Location); err != nil {
			return nil, err
		}
	}

	body, err := AnalyzeFunctionBody(ctx, fd.Body)
	if err != nil {
		return nil, err
	}
	ctx.PopScope()

	header.Body = body
	return header, nil
}
