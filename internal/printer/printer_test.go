package printer_test

import (
	"strings"
	"testing"

	"github.com/corvidlang/unboxlower/internal/printer"
	"github.com/corvidlang/unboxlower/internal/sampleprograms"
)

func TestPrintVarDeclStatement(t *testing.T) {
	chk := sampleprograms.NewChecker()
	prog, ok := sampleprograms.Build(chk, "E1")
	if !ok {
		t.Fatalf("Build(E1) reported not-ok")
	}

	out := printer.Print(prog)
	if !strings.Contains(out, "let x: int") {
		t.Fatalf("Print output missing declaration, got: %s", out)
	}
}

func TestPrintSwitchStatement(t *testing.T) {
	chk := sampleprograms.NewChecker()
	prog, ok := sampleprograms.Build(chk, "E4")
	if !ok {
		t.Fatalf("Build(E4) reported not-ok")
	}

	out := printer.Print(prog)
	if !strings.Contains(out, "switch") {
		t.Fatalf("Print output missing switch statement, got: %s", out)
	}
}
