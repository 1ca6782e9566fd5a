// Package checker models the type-checker oracle the Unboxing Lowering Pass
// consults but does not own (spec.md §1, §6: "the type-checker... used as an
// oracle for type relations, boxing/unboxing of leaf types, builtin
// lookups, and rechecking a subtree"). Checker is an interface so a real
// compiler plugs in its own full checker; Standard is a concrete
// implementation sufficient to run the pass end-to-end against the builtin
// wrapper manifest and the sample programs in internal/sampleprograms.
package checker

import (
	"github.com/corvidlang/unboxlower/internal/ast"
	"github.com/corvidlang/unboxlower/internal/types"
)

// Checker is the set of type-checker services spec.md §6 lists as
// "Consumed from the type-checker".
type Checker interface {
	// MaybeBoxType / MaybeUnboxType pointwise box/unbox a leaf type;
	// identity otherwise.
	MaybeBoxType(t types.Type) types.Type
	MaybeUnboxType(t types.Type) types.Type

	IsIdenticalTo(a, b types.Type) bool
	IsSupertypeOf(super, sub types.Type) bool

	// Wrapper returns the builtin boxed-primitive wrapper Object for a
	// primitive kind (GlobalInt, GlobalLong, ... from spec.md §6).
	Wrapper(k types.PrimitiveKind) *types.Object

	GlobalString() types.Type
	GlobalNull() types.Type
	GlobalUndefined() types.Type

	CreateArrayType(elem types.Type) *types.Array
	CreateResizableArrayType(elem types.Type) *types.ResizableArray
	// CreateUnionType builds a union from members, canonicalising through
	// whatever collapsing rule the checker uses (e.g. a one-member union
	// collapses to that member).
	CreateUnionType(members ...types.Type) types.Type
	// SubstituteArguments re-instantiates obj's type arguments, used after
	// the Type Rewriter rewrites a generic Object's arguments in place.
	SubstituteArguments(obj *types.Object, args []types.Type) *types.Object

	// GetApparentType canonicalises expected before AdjustType inspects it
	// (spec.md §4.5).
	GetApparentType(t types.Type) types.Type
	// GetNonNullishType strips null/undefined from a union (used by
	// NonNullExpression's handler, spec.md §4.6).
	GetNonNullishType(t types.Type) types.Type

	// ETSType returns the primitive kind tag used by the widening switch,
	// and false if t has none (spec.md §6).
	ETSType(t types.Type) (types.PrimitiveKind, bool)

	// CreateBuiltinArraySignature supplies the constructor signature for a
	// multi-dimensional array-new of the given rank.
	CreateBuiltinArraySignature(arrayElem types.Type, rank int) *types.Method

	// Recheck returns the up-to-date type of expr after a mutation,
	// standing in for "the oracle rechecks the subtree" (spec.md §4.5). In
	// Standard this is simply expr.GetType(), since every rewrite in this
	// pass updates an expression's computed type as it goes.
	Recheck(expr ast.Expression) types.Type
}
