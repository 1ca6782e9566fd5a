// Package unbox implements the Unboxing Lowering Pass: the Type Rewriter
// (this file), Declaration Normaliser, Conversion Synthesiser, Type
// Adjuster, AST Visitor, and Pass Driver described in spec.md §4.
package unbox

import (
	"github.com/corvidlang/unboxlower/internal/checker"
	"github.com/corvidlang/unboxlower/internal/types"
)

// seenSet is the TypeIdStorage of spec.md §3: a stack (here, a set — only
// membership is ever queried) of type-parameter ids currently in flight
// inside one Normalize call, used to short-circuit recursive type
// parameters (spec.md §4.2 "Cycle protection").
type seenSet map[int]bool

// Normalize is the Type Rewriter's top-level entry point: it returns T
// with every boxed-primitive leaf replaced by its underlying primitive,
// sharing unchanged subtrees by identity (spec.md §4.2).
func Normalize(c checker.Checker, t types.Type) types.Type {
	return normalize(c, t, seenSet{}, true)
}

// NormalizeReferenceOnly is the Type Rewriter's "reference" entry point,
// used when descending into a context that holds references rather than
// values — generic type arguments and resizable-array elements — where a
// boxed-primitive leaf must NOT collapse to a bare primitive (spec.md §4.2,
// "Non-obvious invariant").
func NormalizeReferenceOnly(c checker.Checker, t types.Type) types.Type {
	return normalize(c, t, seenSet{}, false)
}

func normalize(c checker.Checker, t types.Type, seen seenSet, top bool) types.Type {
	if t == nil {
		return nil
	}

	switch v := t.(type) {
	case *types.TypeParameter:
		if seen[v.ID] {
			return v
		}
		seen[v.ID] = true
		v.Constraint = normalize(c, v.Constraint, seen, top)
		return v

	case *types.Tuple:
		changed := false
		elems := make([]types.Type, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = normalize(c, e, seen, true)
			if elems[i] != e {
				changed = true
			}
		}
		if !changed {
			return v
		}
		return &types.Tuple{Elems: elems}

	case *types.Array:
		elem := normalize(c, v.Elem, seen, true)
		if elem == v.Elem {
			return v
		}
		return c.CreateArrayType(elem)

	case *types.ResizableArray:
		elem := normalize(c, v.Elem, seen, false)
		if elem == v.Elem {
			return v
		}
		return c.CreateResizableArrayType(elem)

	case *types.Union:
		changed := false
		members := make([]types.Type, len(v.Members))
		for i, m := range v.Members {
			members[i] = normalize(c, m, seen, true)
			if members[i] != m {
				changed = true
			}
		}
		if !changed {
			return v
		}
		return c.CreateUnionType(members...)

	case *types.Object:
		if v.IsBoxedPrimitive() {
			if top {
				return &types.Primitive{Kind: v.UnboxedKind()}
			}
			return v
		}
		if len(v.TypeArgs) == 0 {
			return v
		}
		changed := false
		args := make([]types.Type, len(v.TypeArgs))
		for i, a := range v.TypeArgs {
			args[i] = normalize(c, a, seen, false)
			if args[i] != a {
				changed = true
			}
		}
		if !changed {
			return v
		}
		return c.SubstituteArguments(v, args)

	default:
		return t
	}
}
