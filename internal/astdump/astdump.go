// Package astdump builds a read-only JSON projection of a lowered
// program's type surface, backing `unboxlower run --json` and letting
// tests assert on a single JSON path instead of a whole-struct comparison.
// Projection is marshaled with the standard library; path queries against
// that projection go through github.com/tidwall/gjson, the way
// SPEC_FULL.md's DOMAIN STACK table wires it in.
package astdump

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/corvidlang/unboxlower/internal/ast"
	"github.com/corvidlang/unboxlower/internal/types"
)

// decl is one top-level declaration's projected shape.
type decl struct {
	Kind       string   `json:"kind"`
	Name       string   `json:"name,omitempty"`
	Type       string   `json:"type,omitempty"`
	ReturnType string   `json:"returnType,omitempty"`
	Params     []string `json:"params,omitempty"`
}

// projection is the whole-program shape Dump serializes.
type projection struct {
	Name           string `json:"name"`
	DynamicInterop bool   `json:"dynamicInterop"`
	Decls          []decl `json:"decls"`
}

// Dump renders prog's top-level declarations as a JSON document.
func Dump(prog *ast.Program) (string, error) {
	proj := projection{Name: prog.Name, DynamicInterop: prog.DynamicInterop}
	for _, stmt := range prog.Statements {
		proj.Decls = append(proj.Decls, projectStatement(stmt))
	}
	out, err := json.MarshalIndent(proj, "", "  ")
	if err != nil {
		return "", fmt.Errorf("astdump: marshal: %w", err)
	}
	return string(out), nil
}

func projectStatement(stmt ast.Statement) decl {
	switch s := stmt.(type) {
	case *ast.FunctionDecl:
		params := make([]string, len(s.Params))
		for i, p := range s.Params {
			params[i] = typeStr(p.Type)
		}
		return decl{Kind: "function", Name: s.Name, ReturnType: typeStr(s.ReturnType), Params: params}
	case *ast.ClassDecl:
		return decl{Kind: "class", Name: s.Name}
	case *ast.VarDeclStatement:
		if len(s.Declarators) > 0 {
			d := s.Declarators[0]
			return decl{Kind: "var", Name: d.Name, Type: typeStr(d.GetType())}
		}
		return decl{Kind: "var"}
	default:
		return decl{Kind: "statement"}
	}
}

func typeStr(t types.Type) string {
	if t == nil {
		return ""
	}
	return t.String()
}

// Query runs a gjson path expression against a JSON document produced by
// Dump — e.g. Query(doc, "decls.0.returnType").
func Query(jsonDoc, path string) gjson.Result {
	return gjson.Get(jsonDoc, path)
}
