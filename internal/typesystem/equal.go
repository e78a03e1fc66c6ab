package typesystem

// Equal reports deep structural equality between t and other, as required
// by the AnalyzedTypeId equality contract (identifiers compare
// structurally, not by pointer identity).
func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KindUnit, KindBool, KindChar:
		return true
	case KindInteger:
		return t.Width == other.Width
	case KindPointer:
		return t.Inner.Equal(*other.Inner)
	case KindStruct:
		if !t.Struct.ID.Equal(other.Struct.ID) || len(t.Struct.GenericArgs) != len(other.Struct.GenericArgs) {
			return false
		}
		for i, a := range t.Struct.GenericArgs {
			if !a.Equal(other.Struct.GenericArgs[i]) {
				return false
			}
		}
		return true
	case KindEnum:
		return t.Enum.Equal(other.Enum)
	case KindFunction:
		if !t.Return.Equal(*other.Return) || len(t.Params) != len(other.Params) {
			return false
		}
		for i, p := range t.Params {
			if !p.Equal(other.Params[i]) {
				return false
			}
		}
		return true
	case KindGeneric:
		return t.Generic.Name == other.Generic.Name
	default:
		return false
	}
}

// EqualSlice reports whether two type slices are pairwise equal in order.
func EqualSlice(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
