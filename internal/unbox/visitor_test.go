package unbox_test

import (
	"testing"

	"github.com/corvidlang/unboxlower/internal/ast"
	"github.com/corvidlang/unboxlower/internal/types"
	"github.com/corvidlang/unboxlower/internal/unbox"
)

// TestVisitPropertyAccessGetterSetterPair checks spec.md §4.6's Member
// expression rule: when a property resolves to a getter/setter pair, a
// plain read picks the getter's return type and an assignment target picks
// the setter's parameter type, both unboxed by the normal declaration
// normalisation the getter/setter methods go through like any other
// function.
func TestVisitPropertyAccessGetterSetterPair(t *testing.T) {
	ctx := newTestContext()
	intWrapper := ctx.Checker.Wrapper(types.Int)

	getter := &ast.FunctionDecl{Name: "getValue", ReturnType: intWrapper}
	setter := &ast.FunctionDecl{Name: "setValue", Params: []*ast.Param{{Name: "v", Type: intWrapper}}}
	prop := &ast.ClassProperty{
		Name:     "value",
		Variable: &ast.Variable{Name: "value", Type: intWrapper},
		Getter:   getter,
		Setter:   setter,
	}
	prop.SetType(intWrapper)

	objVar := &ast.Variable{Name: "obj", Type: &types.Object{Name: "Widget"}}
	readObj := &ast.Identifier{Value: "obj", Ref: objVar}
	readObj.SetType(objVar.Type)

	read := &ast.PropertyAccessExpression{Object: readObj, Name: "value", Property: prop}
	read.SetType(intWrapper)

	got := unbox.VisitExpression(ctx, read)
	pa, ok := got.(*ast.PropertyAccessExpression)
	if !ok {
		t.Fatalf("VisitExpression(read) = %T, want *ast.PropertyAccessExpression", got)
	}
	if !types.IsPrimitive(pa.GetType()) {
		t.Fatalf("getter-backed read should resolve to the getter's (unboxed) return type, got %s", pa.GetType())
	}
	if !types.IsPrimitive(getter.ReturnType) {
		t.Fatalf("getter's own return type should have been normalised in place, got %s", getter.ReturnType)
	}

	writeObj := &ast.Identifier{Value: "obj", Ref: objVar}
	writeObj.SetType(objVar.Type)

	write := &ast.PropertyAccessExpression{Object: writeObj, Name: "value", Property: prop, IsAssignmentTarget: true}
	write.SetType(intWrapper)

	got = unbox.VisitExpression(ctx, write)
	pa, ok = got.(*ast.PropertyAccessExpression)
	if !ok {
		t.Fatalf("VisitExpression(write) = %T, want *ast.PropertyAccessExpression", got)
	}
	if !types.IsPrimitive(pa.GetType()) {
		t.Fatalf("setter-backed write should resolve to the setter's (unboxed) parameter type, got %s", pa.GetType())
	}
	if !types.IsPrimitive(setter.Params[0].Type) {
		t.Fatalf("setter's own parameter type should have been normalised in place, got %s", setter.Params[0].Type)
	}
}

// TestAssignmentExpressionMarksPropertyAccessTarget checks that visiting an
// AssignmentExpression whose Target is a PropertyAccessExpression sets
// IsAssignmentTarget before descending into it, so the setter branch above
// is actually reachable through the full expression visitor rather than
// only when a test sets the flag by hand.
func TestAssignmentExpressionMarksPropertyAccessTarget(t *testing.T) {
	ctx := newTestContext()
	intWrapper := ctx.Checker.Wrapper(types.Int)

	getter := &ast.FunctionDecl{Name: "getValue", ReturnType: intWrapper}
	setter := &ast.FunctionDecl{Name: "setValue", Params: []*ast.Param{{Name: "v", Type: intWrapper}}}
	prop := &ast.ClassProperty{
		Name:     "value",
		Variable: &ast.Variable{Name: "value", Type: intWrapper},
		Getter:   getter,
		Setter:   setter,
	}
	prop.SetType(intWrapper)

	objVar := &ast.Variable{Name: "obj", Type: &types.Object{Name: "Widget"}}
	obj := &ast.Identifier{Value: "obj", Ref: objVar}
	obj.SetType(objVar.Type)

	target := &ast.PropertyAccessExpression{Object: obj, Name: "value", Property: prop}
	target.SetType(intWrapper)

	lit := &ast.NumberLiteral{IntValue: 3, Kind: types.Int}
	lit.SetType(&types.Primitive{Kind: types.Int})

	assign := &ast.AssignmentExpression{Target: target, Value: lit}
	assign.SetType(intWrapper)

	got := unbox.VisitExpression(ctx, assign)
	out, ok := got.(*ast.AssignmentExpression)
	if !ok {
		t.Fatalf("VisitExpression(assign) = %T, want *ast.AssignmentExpression", got)
	}
	if !target.IsAssignmentTarget {
		t.Fatalf("AssignmentExpression handler did not mark its PropertyAccessExpression target")
	}
	if !types.IsPrimitive(out.GetType()) {
		t.Fatalf("assignment's type should follow the (unboxed) setter parameter type, got %s", out.GetType())
	}
}
