package resolver

import (
	"fmt"

	"github.com/lychee-tools/lychee/internal/ident"
	"github.com/lychee-tools/lychee/internal/typesystem"
)

// alignment returns the natural alignment of ty in bytes. Structs align to
// their widest field; everything else aligns to its own size.
func (rt *ResolvedTypes) alignment(ty typesystem.Type) int {
	if ty.Kind != typesystem.KindStruct {
		return ty.Size(rt.StructSize)
	}
	s, ok := rt.GetStruct(ty.Struct.ID)
	if !ok {
		return 1
	}
	widest := 1
	for _, name := range s.FieldOrder {
		if a := rt.alignment(s.FieldTypes[name]); a > widest {
			widest = a
		}
	}
	return widest
}

// EnsureTupleStruct returns the (possibly newly synthesized) struct
// identity for a tuple type with these element types, in field order
// item0..itemN-1, per spec.md §3: "Tuple types are synthesized on
// demand... a struct with fields item0..itemN-1". Repeated calls with
// structurally equal element types return the same canonical id, so two
// occurrences of `(int,long)` compare equal.
func (rt *ResolvedTypes) EnsureTupleStruct(elems []typesystem.Type) typesystem.StructRef {
	name := tupleName(elems)
	id := ident.ModuleID{ModulePath: ident.Path{Segments: []string{"$tuple"}, Absolute: true}, Name: name}
	key := id.String()
	if _, exists := rt.Structs[key]; exists {
		return typesystem.StructRef{ID: id}
	}

	s := &ResolvedStruct{
		FieldOrder:   make([]string, len(elems)),
		FieldTypes:   map[string]typesystem.Type{},
		FieldOffsets: map[string]int{},
	}
	offset := 0
	for i, elemTy := range elems {
		fieldName := fmt.Sprintf("item%d", i)
		s.FieldOrder[i] = fieldName
		s.FieldTypes[fieldName] = elemTy
		s.FieldOffsets[fieldName] = offset
		offset += elemTy.Size(rt.StructSize)
	}
	s.Size = offset

	rt.Structs[key] = s
	rt.KnownStructs[key] = id
	return typesystem.StructRef{ID: id}
}

func tupleName(elems []typesystem.Type) string {
	name := fmt.Sprintf("tuple%d", len(elems))
	for _, e := range elems {
		name += "_" + e.String()
	}
	return name
}

func alignUp(offset, alignment int) int {
	if alignment <= 1 {
		return offset
	}
	rem := offset % alignment
	if rem == 0 {
		return offset
	}
	return offset + (alignment - rem)
}

// computeLayout fills in FieldOffsets and Size for every struct in
// structOrder, detecting a cyclic by-value definition (a struct that
// transitively contains itself as a direct field, not through a pointer)
// along the way. structOrder need not be a topological order; dependent
// structs are computed on demand and memoized. Fields are placed back to
// back in declaration order with no padding, so a struct's size is the sum
// of its field sizes; EnsureTupleStruct lays out tuples the same way.
func (rt *ResolvedTypes) computeLayout(structOrder []ident.ModuleID) error {
	done := map[string]bool{}
	var visit func(id ident.ModuleID, stack map[string]bool) error
	visit = func(id ident.ModuleID, stack map[string]bool) error {
		key := id.String()
		if done[key] {
			return nil
		}
		if stack[key] {
			return fmt.Errorf("cyclic struct definition involving '%s' at %s", id, rt.Structs[key].Location)
		}
		stack[key] = true
		s := rt.Structs[key]
		offset := 0
		for _, name := range s.FieldOrder {
			fieldTy := s.FieldTypes[name]
			if fieldTy.Kind == typesystem.KindStruct {
				if err := visit(fieldTy.Struct.ID, stack); err != nil {
					return err
				}
			}
			s.FieldOffsets[name] = offset
			offset += fieldTy.Size(rt.StructSize)
		}
		s.Size = offset
		done[key] = true
		delete(stack, key)
		return nil
	}
	for _, id := range structOrder {
		if err := visit(id, map[string]bool{}); err != nil {
			return err
		}
	}
	return nil
}
