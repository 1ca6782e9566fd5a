// Package printer pretty-prints a lowered program for the CLI's before/
// after diff and for test snapshots, grounded on go-dws's pkg/printer: a
// small recursive-descent writer over the AST rather than relying on each
// node's own String() (which stays terse and unindented).
package printer

import (
	"fmt"
	"strings"

	"github.com/corvidlang/unboxlower/internal/ast"
)

// Print renders prog as indented statements. Simple statements end in a
// semicolon; function, class, and block headers and braces do not.
func Print(prog *ast.Program) string {
	var sb strings.Builder
	for _, s := range prog.Statements {
		printStatement(&sb, s, 0)
	}
	return sb.String()
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
}

func printStatement(sb *strings.Builder, stmt ast.Statement, depth int) {
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		indent(sb, depth)
		sb.WriteString("{\n")
		for _, child := range s.Statements {
			printStatement(sb, child, depth+1)
		}
		indent(sb, depth)
		sb.WriteString("}\n")

	case *ast.FunctionDecl:
		indent(sb, depth)
		fmt.Fprintf(sb, "function %s(...): %s\n", s.Name, typeName(s.ReturnType))
		if s.Body != nil {
			printStatement(sb, s.Body, depth)
		}

	case *ast.ClassDecl:
		indent(sb, depth)
		fmt.Fprintf(sb, "class %s {\n", s.Name)
		for _, p := range s.Properties {
			indent(sb, depth+1)
			fmt.Fprintf(sb, "%s: %s\n", p.Name, typeName(p.GetType()))
		}
		for _, m := range s.Methods {
			printStatement(sb, m, depth+1)
		}
		indent(sb, depth)
		sb.WriteString("}\n")

	case *ast.VarDeclStatement:
		indent(sb, depth)
		parts := make([]string, len(s.Declarators))
		for i, d := range s.Declarators {
			parts[i] = fmt.Sprintf("%s: %s", d.Name, typeName(d.GetType()))
			if d.Init != nil {
				parts[i] += " = " + d.Init.String()
			}
		}
		fmt.Fprintf(sb, "let %s;\n", strings.Join(parts, ", "))

	default:
		indent(sb, depth)
		sb.WriteString(stmt.String())
		sb.WriteString(";\n")
	}
}

func typeName(t interface{ String() string }) string {
	if t == nil {
		return "void"
	}
	return t.String()
}
