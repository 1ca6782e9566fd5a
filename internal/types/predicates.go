package types

// IsPrimitive reports whether T is a bare Primitive (spec.md §4.1).
func IsPrimitive(t Type) bool {
	_, ok := t.(*Primitive)
	return ok
}

// IsBoxedPrimitive is isBoxedPrimitive(T) from spec.md §4.1: T is an Object
// marked as wrapping a primitive.
func IsBoxedPrimitive(t Type) bool {
	o, ok := t.(*Object)
	return ok && o.IsBoxedPrimitive()
}

// IsRecursivelyUnboxedRef is isRecursivelyUnboxedRef(T) from spec.md §4.1: T
// is composite and at least one structural child is recursively unboxed.
func IsRecursivelyUnboxedRef(t Type) bool {
	switch v := t.(type) {
	case *Tuple:
		for _, e := range v.Elems {
			if IsRecursivelyUnboxed(e) {
				return true
			}
		}
		return false
	case *Array:
		return IsPrimitive(v.Elem) || IsRecursivelyUnboxedRef(v.Elem)
	case *ResizableArray:
		return IsPrimitive(v.Elem) || IsRecursivelyUnboxedRef(v.Elem)
	case *Union:
		for _, m := range v.Members {
			if IsRecursivelyUnboxed(m) {
				return true
			}
		}
		return false
	case *Object:
		for _, a := range v.TypeArgs {
			if IsRecursivelyUnboxed(a) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// IsRecursivelyUnboxed is isRecursivelyUnboxed(T) from spec.md §4.1.
func IsRecursivelyUnboxed(t Type) bool {
	return IsPrimitive(t) || IsRecursivelyUnboxedRef(t)
}

// IsUnboxingApplicable is isUnboxingApplicable(T) from spec.md §4.1: same
// shape as IsRecursivelyUnboxedRef, but the leaf predicate is "boxed
// primitive" rather than "primitive" — does T, as it stands, still mention a
// boxed primitive anywhere.
func IsUnboxingApplicable(t Type) bool {
	switch v := t.(type) {
	case *Object:
		if v.IsBoxedPrimitive() {
			return true
		}
		for _, a := range v.TypeArgs {
			if IsUnboxingApplicable(a) {
				return true
			}
		}
		return false
	case *Tuple:
		for _, e := range v.Elems {
			if IsUnboxingApplicable(e) {
				return true
			}
		}
		return false
	case *Array:
		return IsUnboxingApplicable(v.Elem)
	case *ResizableArray:
		return IsUnboxingApplicable(v.Elem)
	case *Union:
		for _, m := range v.Members {
			if IsUnboxingApplicable(m) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// UnboxableUnionMember finds the first constituent of u that is a boxed
// primitive, or a type parameter whose constraint is one (members are not
// searched recursively), the way the original ArkTS-style checker's
// IsLegalBoxedPrimitiveConversion locates a union's "unboxable" member before
// comparing primitive kinds (see SPEC_FULL.md, Supplemental Features).
// Returns the member and true, or nil/false if no member qualifies.
func UnboxableUnionMember(u *Union) (Type, bool) {
	for _, m := range u.Members {
		if IsBoxedPrimitive(m) {
			return m, true
		}
		if tp, ok := m.(*TypeParameter); ok && tp.Constraint != nil && IsBoxedPrimitive(tp.Constraint) {
			return m, true
		}
	}
	return nil, false
}
