package ast

import (
	"strings"

	"github.com/corvidlang/unboxlower/internal/token"
	"github.com/corvidlang/unboxlower/internal/types"
)

// FunctionDecl is a script function or a class method. It is the
// declaration kind the Declaration Normaliser (spec.md §4.3) rewrites
// first, since call sites need an already-normalised signature.
type FunctionDecl struct {
	stmtBase
	Name         string
	Params       []*Param
	RestParam    *Param // nil if the function has no rest parameter
	ReturnType   types.Type
	Body         *BlockStatement
	IsMethod     bool
	EnclosingClass *ClassDecl // nil for a script function
	IsStatic     bool
	MangledName  string
}

func (*FunctionDecl) statementNode()   {}
func (*FunctionDecl) declarationNode() {}
func (f *FunctionDecl) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.Name + ": " + p.Type.String()
	}
	ret := "void"
	if f.ReturnType != nil {
		ret = f.ReturnType.String()
	}
	return "function " + f.Name + "(" + strings.Join(parts, ", ") + "): " + ret
}

// VariableDeclarator is a single `name: Type = init` binding inside a
// VarDeclStatement.
type VariableDeclarator struct {
	base
	Name     string
	Variable *Variable
	Init     Expression // nil if uninitialized
}

func (*VariableDeclarator) declarationNode() {}
func (d *VariableDeclarator) String() string {
	out := d.Name + ": " + d.Type.String()
	if d.Init != nil {
		out += " = " + d.Init.String()
	}
	return out
}

// ClassProperty is a field on a class, optionally getter/setter backed.
type ClassProperty struct {
	base
	Name     string
	Variable *Variable
	Init     Expression // nil if uninitialized
	Getter   *FunctionDecl
	Setter   *FunctionDecl
}

func (*ClassProperty) declarationNode() {}
func (p *ClassProperty) String() string {
	out := p.Name + ": " + p.Type.String()
	if p.Init != nil {
		out += " = " + p.Init.String()
	}
	return out
}

// ClassDecl is a class declaration: its properties, methods, and
// constructors. IsBoxedPrimitiveWrapper marks the builtin wrapper classes
// (Int, Double, Char, ...) the Pass Driver pre-seeds (spec.md §4.7 step 1).
type ClassDecl struct {
	stmtBase
	Name                   string
	Properties             []*ClassProperty
	Methods                []*FunctionDecl
	Constructors           []*FunctionDecl
	IsBoxedPrimitiveWrapper bool
	WrappedKind            *types.PrimitiveKind
	// DynamicInterop marks a class whose enclosing program is flagged for
	// dynamic-interop (spec.md §4.3, class property special case / §4.7
	// External annotation sweep).
	DynamicInterop bool
}

func (*ClassDecl) statementNode() {}
func (c *ClassDecl) String() string {
	return "class " + c.Name
}

// NewSyntheticToken builds a token carrying no real lexical text, used when
// synthesising AST fragments (spec.md §4.4) before a source range is copied
// onto them from the expression being replaced.
func NewSyntheticToken(literal string) token.Token {
	return token.Token{Kind: token.IDENT, Literal: literal, Pos: token.Zero}
}
