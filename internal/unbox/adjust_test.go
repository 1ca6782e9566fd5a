package unbox_test

import (
	"testing"

	"github.com/corvidlang/unboxlower/internal/arena"
	"github.com/corvidlang/unboxlower/internal/ast"
	"github.com/corvidlang/unboxlower/internal/binder"
	"github.com/corvidlang/unboxlower/internal/sampleprograms"
	"github.com/corvidlang/unboxlower/internal/types"
	"github.com/corvidlang/unboxlower/internal/unbox"
)

func newTestContext() *unbox.Context {
	chk := sampleprograms.NewChecker()
	return unbox.NewContext(chk, binder.NewStandard(), arena.New())
}

func TestAdjustTypePrimitiveToReferenceBoxes(t *testing.T) {
	ctx := newTestContext()
	intWrapper := ctx.Checker.Wrapper(types.Int)

	lit := &ast.NumberLiteral{IntValue: 7, Kind: types.Int}
	lit.SetType(&types.Primitive{Kind: types.Int})

	got := unbox.AdjustType(ctx, lit, intWrapper)
	newExpr, ok := got.(*ast.NewExpression)
	if !ok {
		t.Fatalf("AdjustType(int -> Integer) = %T, want *ast.NewExpression", got)
	}
	if newExpr.ClassName != intWrapper.Name {
		t.Fatalf("boxed expression constructs %q, want %q", newExpr.ClassName, intWrapper.Name)
	}
}

func TestAdjustTypeBoxedToPrimitiveUnboxes(t *testing.T) {
	ctx := newTestContext()
	intWrapper := ctx.Checker.Wrapper(types.Int)

	v := &ast.Variable{Name: "a", Type: intWrapper}
	id := &ast.Identifier{Value: "a", Ref: v}
	id.SetType(intWrapper)

	got := unbox.AdjustType(ctx, id, &types.Primitive{Kind: types.Int})
	call, ok := got.(*ast.CallExpression)
	if !ok {
		t.Fatalf("AdjustType(Integer -> int) = %T, want *ast.CallExpression", got)
	}
	access, ok := call.Callee.(*ast.PropertyAccessExpression)
	if !ok || access.Name != "unboxed" {
		t.Fatalf("expected a call to .unboxed(), got %#v", call.Callee)
	}
}

func TestAdjustTypeDifferentPrimitivesConverts(t *testing.T) {
	ctx := newTestContext()

	lit := &ast.NumberLiteral{IntValue: 3, Kind: types.Int}
	lit.SetType(&types.Primitive{Kind: types.Int})

	got := unbox.AdjustType(ctx, lit, &types.Primitive{Kind: types.Double})
	out, ok := got.(*ast.NumberLiteral)
	if !ok {
		t.Fatalf("AdjustType(int -> double) on a literal = %T, want *ast.NumberLiteral", got)
	}
	if !out.IsFloat || out.Kind != types.Double {
		t.Fatalf("expected a float literal of kind double, got %#v", out)
	}
}

func TestAdjustTypeNoopWhenAlreadyMatching(t *testing.T) {
	ctx := newTestContext()

	lit := &ast.NumberLiteral{IntValue: 3, Kind: types.Int}
	lit.SetType(&types.Primitive{Kind: types.Int})

	got := unbox.AdjustType(ctx, lit, &types.Primitive{Kind: types.Int})
	if got != lit {
		t.Fatalf("AdjustType should be a no-op when actual already matches expected, got a different node")
	}
}
