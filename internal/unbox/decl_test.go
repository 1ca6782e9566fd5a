package unbox_test

import (
	"testing"

	"github.com/corvidlang/unboxlower/internal/ast"
	"github.com/corvidlang/unboxlower/internal/types"
	"github.com/corvidlang/unboxlower/internal/unbox"
)

// TestHandleDeclarationIsIdempotent checks the memoisation spec.md §4.3
// relies on: calling HandleDeclaration twice on the same node leaves the
// declarator's already-unboxed type exactly as the first call set it.
func TestHandleDeclarationIsIdempotent(t *testing.T) {
	ctx := newTestContext()
	intWrapper := ctx.Checker.Wrapper(types.Int)

	v := &ast.Variable{Name: "a", Type: intWrapper}
	decl := &ast.VariableDeclarator{Name: "a", Variable: v}
	decl.SetType(intWrapper)
	v.Decl = decl

	unbox.HandleDeclaration(ctx, decl, false)
	first := decl.GetType()

	unbox.HandleDeclaration(ctx, decl, false)
	second := decl.GetType()

	if first != second {
		t.Fatalf("second HandleDeclaration call changed the declarator's type: %v -> %v", first, second)
	}
	if !types.IsPrimitive(first) {
		t.Fatalf("declarator expected primitive type after normalisation, got %s", first)
	}
}

// TestHandleDeclarationForceUnboxBypassesMemo checks that forceUnbox (used
// by the external annotation sweep) re-runs normalisation even on an
// already-handled node.
func TestHandleDeclarationForceUnboxBypassesMemo(t *testing.T) {
	ctx := newTestContext()
	intWrapper := ctx.Checker.Wrapper(types.Int)

	prop := &ast.ClassProperty{Name: "p", Variable: &ast.Variable{Name: "p", Type: intWrapper}}
	prop.SetType(intWrapper)
	prop.Variable.Decl = prop

	unbox.HandleDeclaration(ctx, prop, false)
	if !types.IsPrimitive(prop.GetType()) {
		t.Fatalf("expected property to normalise on first call, got %s", prop.GetType())
	}

	// Re-box it by hand to simulate a later pass needing re-normalisation,
	// then confirm forceUnbox actually revisits the node instead of trusting
	// the memo.
	prop.SetType(intWrapper)
	prop.Variable.Type = intWrapper
	unbox.HandleDeclaration(ctx, prop, true)
	if !types.IsPrimitive(prop.GetType()) {
		t.Fatalf("forceUnbox expected to re-normalise, property still %s", prop.GetType())
	}
}
