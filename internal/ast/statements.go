package ast

import (
	"strings"

	"github.com/corvidlang/unboxlower/internal/token"
)

// stmtBase is the statement analogue of base: shared token/parent plumbing.
type stmtBase struct {
	Token  token.Token
	parent Node
}

func (b *stmtBase) TokenLiteral() string { return b.Token.Literal }
func (b *stmtBase) Pos() token.Position  { return b.Token.Pos }
func (b *stmtBase) Parent() Node         { return b.parent }
func (b *stmtBase) SetParent(p Node)     { b.parent = p }

// ExpressionStatement wraps a single expression used in statement position.
type ExpressionStatement struct {
	stmtBase
	Expr Expression
}

func (*ExpressionStatement) statementNode() {}
func (s *ExpressionStatement) String() string {
	if s.Expr != nil {
		return s.Expr.String()
	}
	return ""
}

// ReturnStatement is `return expr;` (expr may be nil for a bare return).
type ReturnStatement struct {
	stmtBase
	Arg Expression
}

func (*ReturnStatement) statementNode() {}
func (s *ReturnStatement) String() string {
	if s.Arg != nil {
		return "return " + s.Arg.String()
	}
	return "return"
}

// BlockStatement is a `{ ... }` statement sequence.
type BlockStatement struct {
	stmtBase
	Statements []Statement
}

func (*BlockStatement) statementNode() {}
func (s *BlockStatement) String() string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, st := range s.Statements {
		sb.WriteString("  ")
		sb.WriteString(strings.ReplaceAll(st.String(), "\n", "\n  "))
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// IfStatement is `if (test) then else else`.
type IfStatement struct {
	stmtBase
	Test Expression
	Then Statement
	Else Statement // nil if no else branch
}

func (*IfStatement) statementNode() {}
func (s *IfStatement) String() string {
	out := "if (" + s.Test.String() + ") " + s.Then.String()
	if s.Else != nil {
		out += " else " + s.Else.String()
	}
	return out
}

// WhileStatement is `while (test) body`.
type WhileStatement struct {
	stmtBase
	Test Expression
	Body Statement
}

func (*WhileStatement) statementNode() {}
func (s *WhileStatement) String() string {
	return "while (" + s.Test.String() + ") " + s.Body.String()
}

// DoWhileStatement is `do body while (test);`.
type DoWhileStatement struct {
	stmtBase
	Body Statement
	Test Expression
}

func (*DoWhileStatement) statementNode() {}
func (s *DoWhileStatement) String() string {
	return "do " + s.Body.String() + " while (" + s.Test.String() + ")"
}

// ForStatement is the classic C-style `for (init; test; update) body`.
type ForStatement struct {
	stmtBase
	Init   Statement
	Test   Expression
	Update Expression
	Body   Statement
}

func (*ForStatement) statementNode() {}
func (s *ForStatement) String() string {
	return "for (...; " + s.Test.String() + "; ...) " + s.Body.String()
}

// ForOfStatement is `for (const name of iterable) body`. Its loop variable's
// type is computed specially, before the main visitor pass runs (spec.md
// §4.6 "For-of statement").
type ForOfStatement struct {
	stmtBase
	VarName  string
	VarDecl  *Variable
	Iterable Expression
	Body     Statement
}

func (*ForOfStatement) statementNode() {}
func (s *ForOfStatement) String() string {
	return "for (const " + s.VarName + " of " + s.Iterable.String() + ") " + s.Body.String()
}

// SwitchCase is one `case test: body` arm of a SwitchStatement; Test is nil
// for the `default:` arm.
type SwitchCase struct {
	Test Expression
	Body []Statement
}

// SwitchStatement is `switch (discriminant) { case ...: ... }`.
type SwitchStatement struct {
	stmtBase
	Discriminant Expression
	Cases        []*SwitchCase
}

func (*SwitchStatement) statementNode() {}
func (s *SwitchStatement) String() string {
	var sb strings.Builder
	sb.WriteString("switch (" + s.Discriminant.String() + ") {\n")
	for _, c := range s.Cases {
		if c.Test != nil {
			sb.WriteString("  case " + c.Test.String() + ":\n")
		} else {
			sb.WriteString("  default:\n")
		}
	}
	sb.WriteString("}")
	return sb.String()
}

// VarDeclStatement declares one or more variables in statement position.
type VarDeclStatement struct {
	stmtBase
	Declarators []*VariableDeclarator
}

func (*VarDeclStatement) statementNode() {}
func (s *VarDeclStatement) String() string {
	parts := make([]string, len(s.Declarators))
	for i, d := range s.Declarators {
		parts[i] = d.String()
	}
	return "let " + strings.Join(parts, ", ")
}
