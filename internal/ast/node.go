// Package ast defines the typed AST nodes the Unboxing Lowering Pass
// rewrites. It mirrors go-dws's internal/ast package: a flat tree of
// concrete node structs, each carrying its own token/position and (for
// typed nodes) a mutable "computed type" slot, linked to a parent for
// in-place splicing.
package ast

import (
	"github.com/corvidlang/unboxlower/internal/token"
	"github.com/corvidlang/unboxlower/internal/types"
)

// Node is the base interface every AST node implements.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
	Parent() Node
	SetParent(Node)
}

// Expression is any node that produces a value. Every expression carries a
// computed-type slot, so it also satisfies Typed.
type Expression interface {
	Node
	Typed
	expressionNode()
}

// Statement is any node that performs an action but produces no value.
type Statement interface {
	Node
	statementNode()
}

// Typed is the capability satisfied by every node with a computed-type
// slot (spec.md §3: "each expression carries a mutable computed type
// slot"). Declarations (FunctionDecl, ClassProperty, VariableDeclarator)
// also implement it for their stored signature/declared type.
type Typed interface {
	GetType() types.Type
	SetType(types.Type)
}

// Declaration is the capability shared by ScriptFunction/method, class
// property, and variable declarator nodes (spec.md §9, "Polymorphism by
// capability"). It exists so pass code can ask "is this a declaration?"
// without a type switch over every concrete kind.
type Declaration interface {
	Node
	declarationNode()
}
