package ast

import "github.com/corvidlang/unboxlower/internal/types"

// Variable is the binding a declaration introduces: a function parameter,
// a variable declarator, or a class property. Identifiers that reference a
// declaration share a pointer to its Variable, which is how spec.md §3's
// type/variable coherence invariant is checked: for every typed node N with
// a bound variable V, type(N) must equal type(V).
type Variable struct {
	Name string
	Type types.Type
	Decl Node
}

// Param is a function parameter: a name, declared type, and the Variable
// the parameter introduces into the function body's scope.
type Param struct {
	Name     string
	Type     types.Type
	Variable *Variable
	NameNode *Identifier // the Identifier carrying this parameter's name
}
