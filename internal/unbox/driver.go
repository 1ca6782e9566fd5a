package unbox

import (
	"github.com/corvidlang/unboxlower/internal/ast"
	"github.com/corvidlang/unboxlower/internal/passdiag"
	"github.com/corvidlang/unboxlower/internal/token"
	"github.com/corvidlang/unboxlower/internal/types"
)

// Run is the Pass Driver (spec.md §4.7): the top-level orchestrator that
// sequences the Type Rewriter, Declaration Normaliser, and AST Visitor over
// one program.
func Run(ctx *Context, prog *ast.Program) {
	seedWrappers(ctx)

	ctx.DynamicInterop = prog.DynamicInterop
	preorderNormalizeTypes(ctx, prog)
	postorderNormalizeDeclarations(ctx, prog)
	VisitProgram(ctx, prog)
	sweepExternals(ctx, prog)
	refineSourceRanges(prog)
}

// seedWrappers is step 1, "pre-seed wrappers". A real compiler's builtin
// wrapper classes carry their own AST method bodies that must be normalised
// like any other declaration; this repository's wrappers are synthesised
// directly from the manifest (internal/config.BuildWrappers) already in
// unboxed-signature form, so this step degenerates to a sanity check rather
// than a rewrite: there are no wrapper method declarations to normalise.
func seedWrappers(ctx *Context) {
	for _, kind := range types.WideningChain {
		wrapper := ctx.Checker.Wrapper(kind)
		if wrapper == nil {
			continue
		}
		if m, ok := wrapper.InstanceMethods["unboxed"]; ok {
			passdiag.Assertf(types.IsPrimitive(m.Return), token.Zero, "",
				"seedWrappers: wrapper %s's unboxed() does not return a primitive", wrapper.Name)
		}
	}
}

// preorderNormalizeTypes is step 2: walk the program preorder, rewriting
// every typed node's computed type (and its bound variable's type) through
// the Type Rewriter. Declarations are deliberately left to the postorder
// sweep below (spec.md §9, "Order of operations").
func preorderNormalizeTypes(ctx *Context, prog *ast.Program) {
	for _, stmt := range prog.Statements {
		normalizeStatementTypes(ctx, stmt)
	}
}

func normalizeStatementTypes(ctx *Context, stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		for _, child := range s.Statements {
			normalizeStatementTypes(ctx, child)
		}
	case *ast.IfStatement:
		normalizeExprTypes(ctx, s.Test)
		normalizeStatementTypes(ctx, s.Then)
		if s.Else != nil {
			normalizeStatementTypes(ctx, s.Else)
		}
	case *ast.WhileStatement:
		normalizeExprTypes(ctx, s.Test)
		normalizeStatementTypes(ctx, s.Body)
	case *ast.DoWhileStatement:
		normalizeStatementTypes(ctx, s.Body)
		normalizeExprTypes(ctx, s.Test)
	case *ast.ForStatement:
		if s.Init != nil {
			normalizeStatementTypes(ctx, s.Init)
		}
		if s.Test != nil {
			normalizeExprTypes(ctx, s.Test)
		}
		if s.Update != nil {
			normalizeExprTypes(ctx, s.Update)
		}
		normalizeStatementTypes(ctx, s.Body)
	case *ast.ForOfStatement:
		normalizeExprTypes(ctx, s.Iterable)
		HandleForOf(ctx, s)
		normalizeStatementTypes(ctx, s.Body)
	case *ast.SwitchStatement:
		normalizeExprTypes(ctx, s.Discriminant)
		for _, c := range s.Cases {
			if c.Test != nil {
				normalizeExprTypes(ctx, c.Test)
			}
			for _, body := range c.Body {
				normalizeStatementTypes(ctx, body)
			}
		}
	case *ast.ExpressionStatement:
		normalizeExprTypes(ctx, s.Expr)
	case *ast.ReturnStatement:
		if s.Arg != nil {
			normalizeExprTypes(ctx, s.Arg)
		}
	case *ast.VarDeclStatement:
		for _, d := range s.Declarators {
			if d.Init != nil {
				normalizeExprTypes(ctx, d.Init)
			}
		}
	case *ast.FunctionDecl:
		if s.Body != nil {
			normalizeStatementTypes(ctx, s.Body)
		}
	case *ast.ClassDecl:
		for _, prop := range s.Properties {
			if prop.Init != nil {
				normalizeExprTypes(ctx, prop.Init)
			}
		}
		for _, m := range s.Methods {
			normalizeStatementTypes(ctx, m)
		}
		for _, c := range s.Constructors {
			normalizeStatementTypes(ctx, c)
		}
	}
}

// normalizeExprTypes replaces expr's own computed type in place, then
// recurses into its children. This repository has no separate
// annotation-usage AST kind, so ArrayCreationExpression's element type is
// normalised here too; TSAsExpression's target type is left as written
// (visitAs reads it to tell a boxed target from a primitive one).
func normalizeExprTypes(ctx *Context, expr ast.Expression) {
	if expr == nil {
		return
	}
	expr.SetType(Normalize(ctx.Checker, expr.GetType()))

	switch e := expr.(type) {
	case *ast.BinaryExpression:
		normalizeExprTypes(ctx, e.Left)
		normalizeExprTypes(ctx, e.Right)
	case *ast.UnaryExpression:
		normalizeExprTypes(ctx, e.Operand)
	case *ast.ConditionalExpression:
		normalizeExprTypes(ctx, e.Test)
		normalizeExprTypes(ctx, e.Then)
		normalizeExprTypes(ctx, e.Else)
	case *ast.AssignmentExpression:
		normalizeExprTypes(ctx, e.Target)
		normalizeExprTypes(ctx, e.Value)
	case *ast.CallExpression:
		normalizeExprTypes(ctx, e.Callee)
		for _, a := range e.Args {
			normalizeExprTypes(ctx, a)
		}
	case *ast.NewExpression:
		for _, a := range e.Args {
			normalizeExprTypes(ctx, a)
		}
	case *ast.PropertyAccessExpression:
		normalizeExprTypes(ctx, e.Object)
	case *ast.ElementAccessExpression:
		normalizeExprTypes(ctx, e.Object)
		normalizeExprTypes(ctx, e.Index)
	case *ast.ArrayExpression:
		for _, el := range e.Elements {
			normalizeExprTypes(ctx, el)
		}
	case *ast.ArrayCreationExpression:
		e.ElementType = Normalize(ctx.Checker, e.ElementType)
		for _, d := range e.Dimensions {
			normalizeExprTypes(ctx, d)
		}
	case *ast.TSAsExpression:
		normalizeExprTypes(ctx, e.Expr)
	case *ast.NonNullExpression:
		normalizeExprTypes(ctx, e.Expr)
	case *ast.SequenceExpression:
		for _, x := range e.Exprs {
			normalizeExprTypes(ctx, x)
		}
	}
}

// postorderNormalizeDeclarations is step 3: visit every class property,
// function, and variable declarator postorder, handing each to the
// Declaration Normaliser.
func postorderNormalizeDeclarations(ctx *Context, prog *ast.Program) {
	for _, stmt := range prog.Statements {
		normalizeDeclarationsIn(ctx, stmt)
	}
}

func normalizeDeclarationsIn(ctx *Context, stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		for _, child := range s.Statements {
			normalizeDeclarationsIn(ctx, child)
		}
	case *ast.IfStatement:
		normalizeDeclarationsIn(ctx, s.Then)
		if s.Else != nil {
			normalizeDeclarationsIn(ctx, s.Else)
		}
	case *ast.WhileStatement:
		normalizeDeclarationsIn(ctx, s.Body)
	case *ast.DoWhileStatement:
		normalizeDeclarationsIn(ctx, s.Body)
	case *ast.ForStatement:
		if s.Init != nil {
			normalizeDeclarationsIn(ctx, s.Init)
		}
		normalizeDeclarationsIn(ctx, s.Body)
	case *ast.ForOfStatement:
		normalizeDeclarationsIn(ctx, s.Body)
	case *ast.SwitchStatement:
		for _, c := range s.Cases {
			for _, body := range c.Body {
				normalizeDeclarationsIn(ctx, body)
			}
		}
	case *ast.VarDeclStatement:
		for _, d := range s.Declarators {
			HandleDeclaration(ctx, d, false)
		}
	case *ast.FunctionDecl:
		HandleDeclaration(ctx, s, false)
		if s.Body != nil {
			normalizeDeclarationsIn(ctx, s.Body)
		}
	case *ast.ClassDecl:
		for _, prop := range s.Properties {
			HandleDeclaration(ctx, prop, false)
		}
		for _, m := range s.Methods {
			normalizeDeclarationsIn(ctx, m)
		}
		for _, c := range s.Constructors {
			normalizeDeclarationsIn(ctx, c)
		}
	}
}

// sweepExternals is step 5: every transitively-imported external program
// has the properties of each of its top-level class declarations
// force-normalised (even under dynamic-interop), then its property
// initializers re-visited.
func sweepExternals(ctx *Context, prog *ast.Program) {
	prevInterop := ctx.DynamicInterop
	for _, ext := range prog.Externals {
		ctx.DynamicInterop = ext.DynamicInterop
		for _, stmt := range ext.Statements {
			cls, ok := stmt.(*ast.ClassDecl)
			if !ok {
				continue
			}
			for _, prop := range cls.Properties {
				HandleDeclaration(ctx, prop, true)
				if prop.Init != nil {
					VisitExpression(ctx, prop.Init)
				}
			}
		}
	}
	ctx.DynamicInterop = prevInterop
}

// refineSourceRanges is step 6. Source-range refinement and apparent-type
// cache invalidation are the driver's/checker's own responsibility in a
// full compiler (spec.md §6, "out of scope"); this repository's Checker has
// no such cache, so this is a deliberate no-op kept as an explicit seam a
// real driver implementation would fill in.
func refineSourceRanges(*ast.Program) {}
