package ast

import "github.com/corvidlang/unboxlower/internal/token"

// Program is the root of a parsed (or, in this repo, hand-built) AST: a
// sequence of top-level statements, which may themselves be declarations
// (FunctionDecl, ClassDecl, VarDeclStatement).
type Program struct {
	Statements []Statement
	// Name identifies the program for the External Annotation Sweep
	// (spec.md §4.7 step 5), which needs to distinguish the main program
	// from its transitively imported externals.
	Name string
	// DynamicInterop mirrors the dynamic-interop flag observed on a whole
	// program (spec.md §1, "only its flag on declarations is observed").
	DynamicInterop bool
	// Externals lists transitively imported external programs, revisited
	// in the annotation-only sweep.
	Externals []*Program
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out string
	for _, s := range p.Statements {
		out += s.String() + "\n"
	}
	return out
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Zero
}

func (p *Program) Parent() Node     { return nil }
func (p *Program) SetParent(Node)   {}
