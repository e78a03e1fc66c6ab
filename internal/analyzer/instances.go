package analyzer

import (
	"sort"

	"github.com/lychee-tools/lychee/internal/ident"
	"github.com/lychee-tools/lychee/internal/typesystem"
)

// instanceKey canonicalizes one (id, type-argument tuple) pairing into a
// comparable string, so the tracker's sets collapse duplicate
// monomorphizations per spec.md §4.4.
func instanceKey(id ident.ModuleID, args []typesystem.Type) string {
	key := id.String()
	for _, a := range args {
		key += "|" + a.String()
	}
	return key
}

// Instance is one recorded monomorphization: a generic function or struct
// paired with the concrete type arguments it was used with.
type Instance struct {
	ID   ident.ModuleID
	Args []typesystem.Type
}

// InstanceSet records every concrete generic-argument tuple encountered
// per generic function and per generic struct during one analysis run, so
// a later emitter can generate exactly the monomorphizations actually
// used. Insertion is idempotent, per spec.md §4.4.
type InstanceSet struct {
	functions map[string]Instance
	structs   map[string]Instance
}

func NewInstanceSet() *InstanceSet {
	return &InstanceSet{functions: map[string]Instance{}, structs: map[string]Instance{}}
}

// RecordFunction registers a generic function instantiation. A no-op for a
// non-generic function (empty args).
func (s *InstanceSet) RecordFunction(id ident.ModuleID, args []typesystem.Type) {
	if len(args) == 0 {
		return
	}
	s.functions[instanceKey(id, args)] = Instance{ID: id, Args: args}
}

// RecordStruct registers a generic struct instantiation encountered via a
// struct-instance literal. A no-op for a non-generic struct (empty args).
func (s *InstanceSet) RecordStruct(id ident.ModuleID, args []typesystem.Type) {
	if len(args) == 0 {
		return
	}
	s.structs[instanceKey(id, args)] = Instance{ID: id, Args: args}
}

// Functions returns the recorded function instances in a stable order.
func (s *InstanceSet) Functions() []Instance {
	return sortedInstances(s.functions)
}

// Structs returns the recorded struct instances in a stable order.
func (s *InstanceSet) Structs() []Instance {
	return sortedInstances(s.structs)
}

func sortedInstances(m map[string]Instance) []Instance {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Instance, len(keys))
	for i, k := range keys {
		out[i] = m[k]
	}
	return out
}
