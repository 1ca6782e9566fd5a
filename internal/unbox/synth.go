package unbox

import (
	"github.com/corvidlang/unboxlower/internal/ast"
	"github.com/corvidlang/unboxlower/internal/passdiag"
	"github.com/corvidlang/unboxlower/internal/types"
)

// The Conversion Synthesiser (spec.md §4.4). Every builder here produces a
// fully typed, parent-linked, name-bound fragment: it stamps the fragment's
// token position from the expression it replaces, leaves the caller to
// relink it via ast.ReplaceChild, and finishes by invoking the binder on the
// finished fragment.

// InsertUnboxing synthesises expr.unboxed(), or returns expr's own wrapped
// argument directly when expr is itself `new Boxed(x)` with x already of the
// target primitive kind (spec.md §4.4.1, peephole).
func InsertUnboxing(ctx *Context, expr ast.Expression) ast.Expression {
	boxed, ok := expr.GetType().(*types.Object)
	passdiag.Assertf(ok && boxed.IsBoxedPrimitive(), expr.Pos(), "", "insertUnboxing: expr is not boxed-primitive typed (%T)", expr.GetType())
	target := boxed.UnboxedKind()

	if ne, ok := expr.(*ast.NewExpression); ok && len(ne.Args) == 1 {
		if p, ok := ne.Args[0].GetType().(*types.Primitive); ok && p.Kind == target {
			arg := ne.Args[0]
			arg.SetParent(expr.Parent())
			return arg
		}
	}

	wrapper := ctx.Checker.Wrapper(target)
	passdiag.Assertf(wrapper != nil, expr.Pos(), "", "insertUnboxing: no builtin wrapper for primitive %s", target)
	method, ok := wrapper.InstanceMethods["unboxed"]
	passdiag.Assertf(ok, expr.Pos(), "", "insertUnboxing: wrapper %s has no unboxed() method", wrapper.Name)

	callee := &ast.PropertyAccessExpression{Object: expr, Name: "unboxed"}
	callee.Token = ctx.Arena.NewToken("unboxed")
	callee.Token.Pos = expr.Pos()
	callee.SetType(method.Return)
	expr.SetParent(callee)

	call := &ast.CallExpression{Callee: callee, Signature: method}
	call.Token = ctx.Arena.NewToken("unboxed()")
	call.Token.Pos = expr.Pos()
	call.SetType(&types.Primitive{Kind: target})
	callee.SetParent(call)

	ctx.Binder.BindLoweredNode(call)
	return call
}

// InsertBoxing synthesises `new Boxed(expr)`, or returns expr's own
// receiver directly when expr is itself `receiver.unboxed()` and receiver
// is already of the target boxed type (spec.md §4.4.2, peephole).
func InsertBoxing(ctx *Context, expr ast.Expression, kind types.PrimitiveKind) ast.Expression {
	if call, ok := expr.(*ast.CallExpression); ok {
		if pa, ok := call.Callee.(*ast.PropertyAccessExpression); ok && pa.Name == "unboxed" {
			if recvType, ok := pa.Object.GetType().(*types.Object); ok && recvType.IsBoxedPrimitive() && recvType.UnboxedKind() == kind {
				recv := pa.Object
				recv.SetParent(expr.Parent())
				return recv
			}
		}
	}

	wrapper := ctx.Checker.Wrapper(kind)
	passdiag.Assertf(wrapper != nil, expr.Pos(), "", "insertBoxing: no builtin wrapper for primitive %s", kind)
	passdiag.Assertf(len(wrapper.Constructors) == 1, expr.Pos(), "", "insertBoxing: wrapper %s has no single-arg constructor", wrapper.Name)
	ctor := wrapper.Constructors[0]

	box := &ast.NewExpression{ClassName: wrapper.Name, Args: []ast.Expression{expr}, Signature: ctor}
	box.Token = ctx.Arena.NewToken("new " + wrapper.Name)
	box.Token.Pos = expr.Pos()
	box.SetType(wrapper)
	expr.SetParent(box)

	ctx.Binder.BindLoweredNode(box)
	return box
}

// CreateToIntrinsicCall synthesises Boxed(fromKind).to<Boxed(toKind)>(expr),
// a static-method call on the source wrapper (spec.md §4.4.3).
func CreateToIntrinsicCall(ctx *Context, fromKind, toKind types.PrimitiveKind, expr ast.Expression) ast.Expression {
	fromWrapper := ctx.Checker.Wrapper(fromKind)
	passdiag.Assertf(fromWrapper != nil, expr.Pos(), "", "createToIntrinsicCall: no builtin wrapper for primitive %s", fromKind)
	name := "to" + toKind.BoxedName()
	method, ok := fromWrapper.StaticMethods[name]
	passdiag.Assertf(ok, expr.Pos(), "", "createToIntrinsicCall: wrapper %s has no static method %s", fromWrapper.Name, name)

	classRef := &ast.Identifier{Value: fromWrapper.Name}
	classRef.Token = ctx.Arena.NewToken(fromWrapper.Name)
	classRef.Token.Pos = expr.Pos()

	callee := &ast.PropertyAccessExpression{Object: classRef, Name: name, IsStatic: true}
	callee.Token = ctx.Arena.NewToken(name)
	callee.Token.Pos = expr.Pos()
	classRef.SetParent(callee)

	call := &ast.CallExpression{Callee: callee, Args: []ast.Expression{expr}, Spreads: []bool{false}, Signature: method}
	call.Token = ctx.Arena.NewToken(name + "()")
	call.Token.Pos = expr.Pos()
	call.SetType(&types.Primitive{Kind: toKind})
	callee.SetParent(call)
	expr.SetParent(call)

	ctx.Binder.BindLoweredNode(call)
	return call
}

// PerformLiteralConversion re-coerces a numeric/char literal's stored value
// to expectedKind and returns a fresh literal node carrying that kind
// (spec.md §4.4.4): truncating casts for integer narrowings, round-to-
// nearest for float narrowings, matching the standard two's-complement /
// IEEE-754 semantics a direct `(T) v` cast would produce.
func PerformLiteralConversion(ctx *Context, lit *ast.NumberLiteral, expectedKind types.PrimitiveKind) *ast.NumberLiteral {
	out := &ast.NumberLiteral{Kind: expectedKind}
	out.Token = ctx.Arena.NewToken(lit.TokenLiteral())
	out.Token.Pos = lit.Pos()
	out.SetType(&types.Primitive{Kind: expectedKind})

	switch expectedKind {
	case types.Float:
		out.IsFloat = true
		out.FloatValue = float64(float32(numericValue(lit)))
	case types.Double:
		out.IsFloat = true
		out.FloatValue = numericValue(lit)
	case types.Char:
		out.IntValue = int64(rune(int64(numericValue(lit))))
	case types.Byte:
		out.IntValue = int64(int8(int64(numericValue(lit))))
	case types.Short:
		out.IntValue = int64(int16(int64(numericValue(lit))))
	case types.Int:
		out.IntValue = int64(int32(int64(numericValue(lit))))
	case types.Long:
		out.IntValue = int64(numericValue(lit))
	case types.Bool:
		out.IntValue = int64(numericValue(lit))
	default:
		passdiag.Unreachable(lit.Pos(), "performLiteralConversion: unhandled primitive kind %s", expectedKind)
	}
	ctx.Binder.BindLoweredNode(out)
	return out
}

func numericValue(lit *ast.NumberLiteral) float64 {
	if lit.IsFloat {
		return lit.FloatValue
	}
	return float64(lit.IntValue)
}
