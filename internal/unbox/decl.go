package unbox

import (
	"github.com/corvidlang/unboxlower/internal/ast"
	"github.com/corvidlang/unboxlower/internal/types"
)

// HandleDeclaration is the Declaration Normaliser (spec.md §4.3). It is
// idempotent on a given declaration node, memoised through ctx.Handled so
// repeated calls (eager from the driver, lazy from the member-access
// handler) cost O(1) after the first. The synthesiser and the call/new
// handlers do not call it: they work from a *types.Method signature, which
// carries no declaration node.
//
// forceUnbox overrides the dynamic-interop class-property skip and also
// bypasses the memo, the way the external annotation sweep (spec.md §4.7
// step 5) force-normalises properties "even in dynamic-interop programs".
func HandleDeclaration(ctx *Context, decl ast.Declaration, forceUnbox bool) {
	if ctx.Handled[decl] && !forceUnbox {
		return
	}
	switch d := decl.(type) {
	case *ast.FunctionDecl:
		handleFunction(ctx, d)
	case *ast.ClassProperty:
		handleClassProperty(ctx, d, forceUnbox)
	case *ast.VariableDeclarator:
		handleVariableDeclarator(ctx, d)
	}
	ctx.Handled[decl] = true
}

func handleFunction(ctx *Context, fn *ast.FunctionDecl) {
	changed := false
	valueOf := isValueOfSpecialCase(fn)

	for _, p := range fn.Params {
		if !types.IsUnboxingApplicable(p.Type) {
			continue
		}
		normalizeParam(ctx, p)
		changed = true
	}
	if fn.RestParam != nil && types.IsUnboxingApplicable(fn.RestParam.Type) {
		normalizeParam(ctx, fn.RestParam)
		changed = true
	}

	// valueOf retains its boxed return type (spec.md §4.3, "Special case"):
	// codegen needs the wrapper's own valueOf to still produce a boxed
	// instance, even though its argument is unboxed like any other.
	if !valueOf && types.IsUnboxingApplicable(fn.ReturnType) {
		fn.ReturnType = Normalize(ctx.Checker, fn.ReturnType)
		changed = true
	}

	if changed {
		fn.MangledName = ctx.Binder.BuildFunctionName(fn)
	}
}

// isValueOfSpecialCase matches spec.md §4.3's valueOf identification: the
// enclosing method is named valueOf, its enclosing class is a boxed
// primitive wrapper, it has exactly one parameter, and that parameter is
// not an enum.
func isValueOfSpecialCase(fn *ast.FunctionDecl) bool {
	if fn.Name != "valueOf" || fn.EnclosingClass == nil || !fn.EnclosingClass.IsBoxedPrimitiveWrapper {
		return false
	}
	if len(fn.Params) != 1 {
		return false
	}
	_, isEnum := fn.Params[0].Type.(*types.Enum)
	return !isEnum
}

func normalizeParam(ctx *Context, p *ast.Param) {
	p.Type = Normalize(ctx.Checker, p.Type)
	if p.NameNode != nil {
		p.NameNode.SetType(p.Type)
	}
	if p.Variable != nil {
		p.Variable.Type = p.Type
	}
}

func handleClassProperty(ctx *Context, prop *ast.ClassProperty, forceUnbox bool) {
	if ctx.DynamicInterop && !forceUnbox {
		return
	}
	if !types.IsUnboxingApplicable(prop.GetType()) {
		return
	}
	normalized := Normalize(ctx.Checker, prop.GetType())
	prop.SetType(normalized)
	if prop.Variable != nil {
		prop.Variable.Type = normalized
	}
}

func handleVariableDeclarator(ctx *Context, decl *ast.VariableDeclarator) {
	if !types.IsUnboxingApplicable(decl.GetType()) {
		return
	}
	normalized := Normalize(ctx.Checker, decl.GetType())
	decl.SetType(normalized)
	if decl.Variable != nil {
		decl.Variable.Type = normalized
	}
}
