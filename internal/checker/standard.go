package checker

import (
	"github.com/corvidlang/unboxlower/internal/ast"
	"github.com/corvidlang/unboxlower/internal/types"
)

// Standard is a concrete, minimal Checker sufficient to run the Unboxing
// Lowering Pass against the builtin wrapper manifest and the sample
// programs in internal/sampleprograms. It is not a full type checker: it
// knows only the type relations this pass actually queries.
type Standard struct {
	wrappers map[types.PrimitiveKind]*types.Object
}

// NewStandard builds a Standard checker around a pre-built wrapper
// registry, keyed by the primitive kind each wrapper boxes (the builtin
// Int/Long/Float/Double/Byte/Short/Char/Boolean classes).
func NewStandard(wrappers map[types.PrimitiveKind]*types.Object) *Standard {
	return &Standard{wrappers: wrappers}
}

func (s *Standard) Wrapper(k types.PrimitiveKind) *types.Object { return s.wrappers[k] }

func (s *Standard) MaybeBoxType(t types.Type) types.Type {
	p, ok := t.(*types.Primitive)
	if !ok {
		return t
	}
	if w := s.wrappers[p.Kind]; w != nil {
		return w
	}
	return t
}

func (s *Standard) MaybeUnboxType(t types.Type) types.Type {
	o, ok := t.(*types.Object)
	if !ok || !o.IsBoxedPrimitive() {
		return t
	}
	return &types.Primitive{Kind: o.UnboxedKind()}
}

func (s *Standard) GlobalString() types.Type    { return types.StringSingleton }
func (s *Standard) GlobalNull() types.Type      { return types.NullSingleton }
func (s *Standard) GlobalUndefined() types.Type { return types.UndefinedSingleton }

func (s *Standard) CreateArrayType(elem types.Type) *types.Array {
	return &types.Array{Elem: elem}
}

func (s *Standard) CreateResizableArrayType(elem types.Type) *types.ResizableArray {
	return &types.ResizableArray{Elem: elem}
}

func (s *Standard) CreateUnionType(members ...types.Type) types.Type {
	dedup := make([]types.Type, 0, len(members))
	for _, m := range members {
		found := false
		for _, d := range dedup {
			if s.IsIdenticalTo(d, m) {
				found = true
				break
			}
		}
		if !found {
			dedup = append(dedup, m)
		}
	}
	if len(dedup) == 1 {
		return dedup[0]
	}
	return &types.Union{Members: dedup}
}

func (s *Standard) SubstituteArguments(obj *types.Object, args []types.Type) *types.Object {
	clone := *obj
	clone.TypeArgs = args
	return &clone
}

// GetApparentType resolves a type parameter down to its constraint, the way
// a real checker's "apparent type" step does for member/assignability
// lookups; every other type is returned unchanged.
func (s *Standard) GetApparentType(t types.Type) types.Type {
	seen := map[int]bool{}
	for {
		tp, ok := t.(*types.TypeParameter)
		if !ok || tp.Constraint == nil || seen[tp.ID] {
			return t
		}
		seen[tp.ID] = true
		t = tp.Constraint
	}
}

func (s *Standard) GetNonNullishType(t types.Type) types.Type {
	u, ok := t.(*types.Union)
	if !ok {
		return t
	}
	kept := make([]types.Type, 0, len(u.Members))
	for _, m := range u.Members {
		switch m.(type) {
		case *types.NullType, *types.UndefinedType:
			continue
		default:
			kept = append(kept, m)
		}
	}
	return s.CreateUnionType(kept...)
}

func (s *Standard) ETSType(t types.Type) (types.PrimitiveKind, bool) {
	switch v := s.MaybeUnboxType(t).(type) {
	case *types.Primitive:
		return v.Kind, true
	default:
		return 0, false
	}
}

// CreateBuiltinArraySignature builds the constructor signature for
// `new T[n1][n2]...` of the given rank: one Int parameter per dimension,
// returning an Array nested rank times around elem.
func (s *Standard) CreateBuiltinArraySignature(elem types.Type, rank int) *types.Method {
	params := make([]types.Type, rank)
	ret := elem
	for i := 0; i < rank; i++ {
		params[i] = &types.Primitive{Kind: types.Int}
		ret = &types.Array{Elem: ret}
	}
	return &types.Method{Name: "new", Params: params, Return: ret}
}

func (s *Standard) Recheck(expr ast.Expression) types.Type {
	return expr.GetType()
}

// IsIdenticalTo is structural type equality (spec.md §6 relation.isIdenticalTo).
func (s *Standard) IsIdenticalTo(a, b types.Type) bool {
	if a == b {
		return true
	}
	switch av := a.(type) {
	case *types.Primitive:
		bv, ok := b.(*types.Primitive)
		return ok && av.Kind == bv.Kind
	case *types.Object:
		bv, ok := b.(*types.Object)
		if !ok || av.Name != bv.Name || len(av.TypeArgs) != len(bv.TypeArgs) {
			return false
		}
		for i := range av.TypeArgs {
			if !s.IsIdenticalTo(av.TypeArgs[i], bv.TypeArgs[i]) {
				return false
			}
		}
		return true
	case *types.Array:
		bv, ok := b.(*types.Array)
		return ok && s.IsIdenticalTo(av.Elem, bv.Elem)
	case *types.ResizableArray:
		bv, ok := b.(*types.ResizableArray)
		return ok && s.IsIdenticalTo(av.Elem, bv.Elem)
	case *types.Tuple:
		bv, ok := b.(*types.Tuple)
		if !ok || len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if !s.IsIdenticalTo(av.Elems[i], bv.Elems[i]) {
				return false
			}
		}
		return true
	case *types.Union:
		bv, ok := b.(*types.Union)
		if !ok || len(av.Members) != len(bv.Members) {
			return false
		}
		for _, m := range av.Members {
			match := false
			for _, n := range bv.Members {
				if s.IsIdenticalTo(m, n) {
					match = true
					break
				}
			}
			if !match {
				return false
			}
		}
		return true
	case *types.TypeParameter:
		bv, ok := b.(*types.TypeParameter)
		return ok && av.ID == bv.ID
	case *types.Enum:
		bv, ok := b.(*types.Enum)
		return ok && av.Name == bv.Name
	case *types.StringType:
		_, ok := b.(*types.StringType)
		return ok
	case *types.NullType:
		_, ok := b.(*types.NullType)
		return ok
	case *types.UndefinedType:
		_, ok := b.(*types.UndefinedType)
		return ok
	case *types.AnyType:
		_, ok := b.(*types.AnyType)
		return ok
	case *types.NeverType:
		_, ok := b.(*types.NeverType)
		return ok
	default:
		return false
	}
}

// IsSupertypeOf is relation.isSupertypeOf from spec.md §6: enough subtype
// reasoning to drive the Type Adjuster's widening search and union checks.
func (s *Standard) IsSupertypeOf(super, sub types.Type) bool {
	if s.IsIdenticalTo(super, sub) {
		return true
	}
	if _, ok := super.(*types.AnyType); ok {
		return true
	}
	if _, ok := sub.(*types.NeverType); ok {
		return true
	}
	if u, ok := super.(*types.Union); ok {
		for _, m := range u.Members {
			if s.IsSupertypeOf(m, sub) {
				return true
			}
		}
		return false
	}
	if u, ok := sub.(*types.Union); ok {
		for _, m := range u.Members {
			if !s.IsSupertypeOf(super, m) {
				return false
			}
		}
		return true
	}
	superObj, superIsObj := super.(*types.Object)
	subObj, subIsObj := sub.(*types.Object)
	if superIsObj && subIsObj {
		return isObjectAncestor(superObj, subObj)
	}
	if superArr, ok := super.(*types.Array); ok {
		if subArr, ok := sub.(*types.Array); ok {
			return s.IsSupertypeOf(superArr.Elem, subArr.Elem)
		}
	}
	if superArr, ok := super.(*types.ResizableArray); ok {
		if subArr, ok := sub.(*types.ResizableArray); ok {
			return s.IsIdenticalTo(superArr.Elem, subArr.Elem)
		}
	}
	return false
}

func isObjectAncestor(ancestor, descendant *types.Object) bool {
	if ancestor.Name == descendant.Name {
		return true
	}
	for _, sup := range descendant.Supertypes {
		if isObjectAncestor(ancestor, sup) {
			return true
		}
	}
	return false
}
