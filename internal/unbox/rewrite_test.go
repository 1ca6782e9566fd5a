package unbox_test

import (
	"strings"
	"testing"

	"github.com/kr/pretty"

	"github.com/corvidlang/unboxlower/internal/sampleprograms"
	"github.com/corvidlang/unboxlower/internal/types"
	"github.com/corvidlang/unboxlower/internal/unbox"
)

// TestNormalizeTableDriven exercises Normalize over several type-graph
// shapes at once; a mismatch is reported with github.com/kr/pretty's
// struct diff rather than a raw %#v dump, the same way go-snaps (this
// repo's other test-tooling dependency) uses kr/pretty internally for
// readable struct comparisons.
func TestNormalizeTableDriven(t *testing.T) {
	chk := sampleprograms.NewChecker()
	intWrapper := chk.Wrapper(types.Int)
	doubleWrapper := chk.Wrapper(types.Double)

	cases := []struct {
		name string
		in   types.Type
		want types.Type
	}{
		{
			name: "bare primitive is unchanged",
			in:   &types.Primitive{Kind: types.Int},
			want: &types.Primitive{Kind: types.Int},
		},
		{
			name: "boxed primitive unboxes",
			in:   intWrapper,
			want: &types.Primitive{Kind: types.Int},
		},
		{
			name: "tuple unboxes every boxed element",
			in:   &types.Tuple{Elems: []types.Type{intWrapper, doubleWrapper}},
			want: &types.Tuple{Elems: []types.Type{
				&types.Primitive{Kind: types.Int},
				&types.Primitive{Kind: types.Double},
			}},
		},
		{
			name: "fixed array unboxes its element",
			in:   &types.Array{Elem: intWrapper},
			want: &types.Array{Elem: &types.Primitive{Kind: types.Int}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := unbox.Normalize(chk, tc.in)
			if diff := pretty.Diff(tc.want, got); len(diff) > 0 {
				t.Fatalf("Normalize(%s) mismatch:\n%s", tc.name, strings.Join(diff, "\n"))
			}
		})
	}
}

func TestNormalizeTopLevelBoxedPrimitiveUnboxes(t *testing.T) {
	chk := sampleprograms.NewChecker()
	intWrapper := chk.Wrapper(types.Int)

	got := unbox.Normalize(chk, intWrapper)
	prim, ok := got.(*types.Primitive)
	if !ok || prim.Kind != types.Int {
		t.Fatalf("Normalize(IntWrapper) = %v, want primitive int", got)
	}
}

func TestNormalizeResizableArrayKeepsElementBoxed(t *testing.T) {
	chk := sampleprograms.NewChecker()
	intWrapper := chk.Wrapper(types.Int)
	ra := &types.ResizableArray{Elem: intWrapper}

	got := unbox.Normalize(chk, ra)
	gotRA, ok := got.(*types.ResizableArray)
	if !ok {
		t.Fatalf("Normalize(ResizableArray) = %T, want *types.ResizableArray", got)
	}
	if !types.IsBoxedPrimitive(gotRA.Elem) {
		t.Fatalf("ResizableArray element expected to stay boxed, got %s", gotRA.Elem)
	}
}

func TestNormalizeFixedArrayUnboxesElement(t *testing.T) {
	chk := sampleprograms.NewChecker()
	intWrapper := chk.Wrapper(types.Int)
	arr := &types.Array{Elem: intWrapper}

	got := unbox.Normalize(chk, arr)
	gotArr, ok := got.(*types.Array)
	if !ok {
		t.Fatalf("Normalize(Array) = %T, want *types.Array", got)
	}
	if !types.IsPrimitive(gotArr.Elem) {
		t.Fatalf("Array element expected to unbox, got %s", gotArr.Elem)
	}
}

func TestNormalizeTypeParameterIsCycleSafe(t *testing.T) {
	chk := sampleprograms.NewChecker()
	tp := &types.TypeParameter{ID: 1, Name: "T"}
	tp.Constraint = tp // self-referential constraint

	got := unbox.Normalize(chk, tp)
	if got != tp {
		t.Fatalf("Normalize on a self-referential type parameter should return it unchanged, got %v", got)
	}
}

func TestNormalizeReferenceOnlyNeverUnboxesTopLevel(t *testing.T) {
	chk := sampleprograms.NewChecker()
	intWrapper := chk.Wrapper(types.Int)

	got := unbox.NormalizeReferenceOnly(chk, intWrapper)
	if !types.IsBoxedPrimitive(got) {
		t.Fatalf("NormalizeReferenceOnly(IntWrapper) = %v, want it to stay boxed", got)
	}
}
