package typesystem

// CanCast reports whether a value of type src may be cast to dst with the
// `as` operator: identical types, any integer widening/narrowing, integer
// <-> char, integer <-> bool (zero/nonzero), and pointer <-> pointer
// regardless of pointee.
func CanCast(src, dst Type) bool {
	if src.Equal(dst) {
		return true
	}
	switch {
	case src.Kind == KindInteger && dst.Kind == KindInteger:
		return true
	case src.Kind == KindChar && dst.Kind == KindInteger:
		return true
	case src.Kind == KindInteger && dst.Kind == KindChar:
		return true
	case src.Kind == KindBool && dst.Kind == KindInteger:
		return true
	case src.Kind == KindInteger && dst.Kind == KindBool:
		return true
	case src.Kind == KindPointer && dst.Kind == KindPointer:
		return true
	default:
		return false
	}
}
