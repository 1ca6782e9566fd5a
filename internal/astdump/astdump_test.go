package astdump_test

import (
	"strings"
	"testing"

	"github.com/corvidlang/unboxlower/internal/astdump"
	"github.com/corvidlang/unboxlower/internal/sampleprograms"
)

func TestDumpProjectsVarDecl(t *testing.T) {
	chk := sampleprograms.NewChecker()
	prog, ok := sampleprograms.Build(chk, "E1")
	if !ok {
		t.Fatalf("Build(E1) reported not-ok")
	}

	doc, err := astdump.Dump(prog)
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if !strings.Contains(doc, `"name": "E1_BoxUnboxFusion"`) {
		t.Fatalf("Dump output missing program name: %s", doc)
	}

	name := astdump.Query(doc, "decls.0.name")
	if name.String() != "x" {
		t.Fatalf("Query(decls.0.name) = %q, want %q", name.String(), "x")
	}
}

func TestDumpProjectsLeadingVarDeclKind(t *testing.T) {
	chk := sampleprograms.NewChecker()
	prog, ok := sampleprograms.Build(chk, "E2")
	if !ok {
		t.Fatalf("Build(E2) reported not-ok")
	}

	doc, err := astdump.Dump(prog)
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	kind := astdump.Query(doc, "decls.0.kind")
	if kind.String() != "var" {
		t.Fatalf("Query(decls.0.kind) = %q, want %q", kind.String(), "var")
	}
}
