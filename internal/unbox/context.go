package unbox

import (
	"github.com/corvidlang/unboxlower/internal/arena"
	"github.com/corvidlang/unboxlower/internal/ast"
	"github.com/corvidlang/unboxlower/internal/binder"
	"github.com/corvidlang/unboxlower/internal/checker"
)

// Context is the pass-context value spec.md §9 ("Global mutable state")
// insists on: the handled memo, the collaborator references, and whatever
// current-program bookkeeping a handler needs, threaded explicitly through
// every helper rather than kept in package-level globals.
type Context struct {
	Checker checker.Checker
	Binder  binder.Binder
	Arena   *arena.Arena

	// Handled is the declaration-identity memo of spec.md §3/§4.3.
	Handled map[ast.Node]bool

	// CurrentFunction is the enclosing function of the statement/expression
	// currently being visited, consulted by the return-statement handler.
	CurrentFunction *ast.FunctionDecl

	// DynamicInterop mirrors the current program's dynamic-interop flag
	// (spec.md §4.3, class-property special case).
	DynamicInterop bool
}

// NewContext builds a fresh pass context around the given collaborators.
func NewContext(c checker.Checker, b binder.Binder, a *arena.Arena) *Context {
	return &Context{Checker: c, Binder: b, Arena: a, Handled: map[ast.Node]bool{}}
}
