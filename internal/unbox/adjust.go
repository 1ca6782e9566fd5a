package unbox

import (
	"github.com/corvidlang/unboxlower/internal/ast"
	"github.com/corvidlang/unboxlower/internal/passdiag"
	"github.com/corvidlang/unboxlower/internal/types"
)

// AdjustType is the Type Adjuster (spec.md §4.5): the central decision
// table every visitor handler calls whenever an expression's actual type
// must be reconciled with a type the surrounding context expects.
func AdjustType(ctx *Context, expr ast.Expression, expected types.Type) ast.Expression {
	expected = ctx.Checker.GetApparentType(expected)
	actual := ctx.Checker.Recheck(expr)

	// Case 1: Primitive actual, reference expected.
	if prim, ok := actual.(*types.Primitive); ok && !types.IsPrimitive(expected) {
		return adjustPrimitiveToReference(ctx, expr, prim.Kind, expected)
	}

	// Case 2: boxed (or type-param constrained to boxed) actual, primitive
	// expected.
	if boxedKind, ok := boxedKindOf(actual); ok {
		if expectedPrim, ok := expected.(*types.Primitive); ok {
			unboxed := InsertUnboxing(ctx, expr)
			if boxedKind == expectedPrim.Kind {
				return unboxed
			}
			return convertPrimitive(ctx, unboxed, boxedKind, expectedPrim.Kind)
		}

		// Case 3: boxed actual, reference expected, but expected is not a
		// supertype of actual — unbox, then recurse (spec.md §4.5 case 3).
		if !types.IsPrimitive(expected) && !ctx.Checker.IsSupertypeOf(expected, actual) {
			unboxed := InsertUnboxing(ctx, expr)
			return AdjustType(ctx, unboxed, expected)
		}
	}

	// Case 4: two different primitive kinds.
	if aPrim, ok := actual.(*types.Primitive); ok {
		if ePrim, ok := expected.(*types.Primitive); ok && aPrim.Kind != ePrim.Kind {
			return convertPrimitive(ctx, expr, aPrim.Kind, ePrim.Kind)
		}
	}

	// Case 5: no-op.
	return expr
}

// boxedKindOf reports the wrapped primitive kind of t, whether t is itself
// a boxed-primitive Object or a TypeParameter whose constraint is one
// (spec.md §4.5 case 2, "Boxed-or-(type-param-with-boxed-constraint)").
func boxedKindOf(t types.Type) (types.PrimitiveKind, bool) {
	switch v := t.(type) {
	case *types.Object:
		if v.IsBoxedPrimitive() {
			return v.UnboxedKind(), true
		}
	case *types.TypeParameter:
		if v.Constraint != nil {
			return boxedKindOf(v.Constraint)
		}
	}
	return 0, false
}

// convertPrimitive performs a primitive-to-primitive conversion, choosing a
// pure literal re-coercion when expr is itself a numeric literal and the
// general intrinsic-call builder otherwise.
func convertPrimitive(ctx *Context, expr ast.Expression, from, to types.PrimitiveKind) ast.Expression {
	if lit, ok := expr.(*ast.NumberLiteral); ok {
		return PerformLiteralConversion(ctx, lit, to)
	}
	return CreateToIntrinsicCall(ctx, from, to, expr)
}

// adjustPrimitiveToReference implements case 1's widening search: walk the
// standard chain Byte -> Short -> Int -> Long -> Float -> Double, picking
// the first step whose boxed form expected accepts (expected is a supertype
// of it);
// fall back to a handful of single-step conversions observed in practice,
// then box the (possibly converted) value.
func adjustPrimitiveToReference(ctx *Context, expr ast.Expression, actualKind types.PrimitiveKind, expected types.Type) ast.Expression {
	// When the expected reference type is a union, narrow to its specific
	// unboxable constituent first (the original ArkTS-style checker's
	// FindUnboxableType/IsLegalBoxedPrimitiveConversion does the same before
	// ever comparing primitive kinds; see SPEC_FULL.md, Supplemental
	// Features) rather than asking the widening search to reason about the
	// whole union directly.
	if union, ok := expected.(*types.Union); ok {
		if member, found := types.UnboxableUnionMember(union); found {
			expected = ctx.Checker.GetApparentType(member)
		}
	}

	targetKind, ok := pickWideningTarget(ctx, actualKind, expected)
	passdiag.Assertf(ok, expr.Pos(), "", "adjustType: no widening target for primitive %s against expected %s", actualKind, expected.String())

	converted := expr
	if targetKind != actualKind {
		converted = convertPrimitive(ctx, expr, actualKind, targetKind)
	}
	return InsertBoxing(ctx, converted, targetKind)
}

func pickWideningTarget(ctx *Context, actualKind types.PrimitiveKind, expected types.Type) (types.PrimitiveKind, bool) {
	start := -1
	for i, k := range types.WideningChain {
		if k == actualKind {
			start = i
			break
		}
	}
	if start >= 0 {
		for i := start; i < len(types.WideningChain); i++ {
			k := types.WideningChain[i]
			wrapper := ctx.Checker.Wrapper(k)
			if wrapper != nil && ctx.Checker.IsSupertypeOf(expected, wrapper) {
				return k, true
			}
		}
	}

	// Fallbacks observed in the widening-chain miss case (spec.md §4.5): a
	// handful of single-step conversions that don't fit the chain walk but
	// still resolve to a primitive-to-primitive-then-box pipeline. Char ->
	// String is deliberately not modelled here: this repository's wrapper
	// manifest only describes primitive<->primitive conversions, so that
	// fallback falls through to the assertion below exactly as spec.md
	// §4.5's "the pass aborts" describes for a genuinely unmatched case.
	switch actualKind {
	case types.Byte:
		if w := ctx.Checker.Wrapper(types.Char); w != nil && ctx.Checker.IsSupertypeOf(expected, w) {
			return types.Char, true
		}
	case types.Float:
		if w := ctx.Checker.Wrapper(types.Int); w != nil && ctx.Checker.IsSupertypeOf(expected, w) {
			return types.Int, true
		}
	case types.Double:
		if w := ctx.Checker.Wrapper(types.Long); w != nil && ctx.Checker.IsSupertypeOf(expected, w) {
			return types.Long, true
		}
	}
	return 0, false
}
