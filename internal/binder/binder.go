// Package binder models the name binder the Unboxing Lowering Pass consults
// but does not own (spec.md §1, §6: "consulted to rebuild mangled method
// names and to bind freshly synthesized nodes"). Binder is an interface so
// a real compiler's binder can be substituted; Standard is grounded on
// go-dws's overload-signature comparison
// (internal/semantic/overload_resolution.go): a function's mangled name
// encodes its parameter types so overloads with the same name stay
// distinguishable after a signature is rewritten.
package binder

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/corvidlang/unboxlower/internal/ast"
	"github.com/corvidlang/unboxlower/internal/types"
)

// Binder is the set of binder services spec.md §6 lists as "Consumed from
// the binder".
type Binder interface {
	// BuildFunctionName recomputes fn's mangled symbol after its signature
	// changed (spec.md §4.3: "request the name-binder to rebuild the
	// function's mangled name").
	BuildFunctionName(fn *ast.FunctionDecl) string

	// BindLoweredNode binds identifiers/members inside a freshly
	// synthesised subtree (spec.md §4.4: "invokes the binder on the
	// synthesised subtree"). For call/new expressions this means resolving
	// Callee/ClassName references; Standard's implementation is a no-op
	// beyond identity since this pass's synthesised subtrees are built
	// already-resolved (their Signature field set directly by the
	// Conversion Synthesiser).
	BindLoweredNode(expr ast.Expression)
}

// Standard is the Binder used by internal/unbox's tests and by
// cmd/unboxlower.
type Standard struct{}

// NewStandard constructs a Standard binder.
func NewStandard() *Standard { return &Standard{} }

// BuildFunctionName mangles fn.Name with its (now-unboxed) parameter type
// names, e.g. "add$int,int". Identifier text is first run through Unicode
// NFC normalisation (golang.org/x/text/unicode/norm), the same
// normalisation go-dws applies to string built-ins
// (internal/string_helpers.go), so that two source files using different
// Unicode compositions of the same identifier mangle identically.
func (Standard) BuildFunctionName(fn *ast.FunctionDecl) string {
	name := norm.NFC.String(fn.Name)
	parts := make([]string, 0, len(fn.Params)+1)
	for _, p := range fn.Params {
		parts = append(parts, norm.NFC.String(typeTag(p.Type)))
	}
	if fn.RestParam != nil {
		parts = append(parts, "..."+typeTag(fn.RestParam.Type))
	}
	if len(parts) == 0 {
		return name
	}
	return name + "$" + strings.Join(parts, ",")
}

// BindLoweredNode is a no-op: this repository's synthesised subtrees are
// built fully resolved by the Conversion Synthesiser (their Signature field
// is set directly), so there is nothing left for a binder pass to resolve.
// A production binder would walk expr and bind any Identifier/
// PropertyAccessExpression it finds to its declaring symbol.
func (Standard) BindLoweredNode(ast.Expression) {}

func typeTag(t types.Type) string {
	if t == nil {
		return "?"
	}
	return t.String()
}
