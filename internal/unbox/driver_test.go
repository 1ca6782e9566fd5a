package unbox_test

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/corvidlang/unboxlower/internal/arena"
	"github.com/corvidlang/unboxlower/internal/ast"
	"github.com/corvidlang/unboxlower/internal/binder"
	"github.com/corvidlang/unboxlower/internal/printer"
	"github.com/corvidlang/unboxlower/internal/sampleprograms"
	"github.com/corvidlang/unboxlower/internal/types"
	"github.com/corvidlang/unboxlower/internal/unbox"
)

func lower(t *testing.T, name string) *ast.Program {
	t.Helper()
	chk := sampleprograms.NewChecker()
	prog, ok := sampleprograms.Build(chk, name)
	if !ok {
		t.Fatalf("unknown sample %q", name)
	}
	ctx := unbox.NewContext(chk, binder.NewStandard(), arena.New())
	unbox.Run(ctx, prog)
	return prog
}

// TestSamplesLower runs every shipped sample through the pass and snapshots
// its printed shape, so a change to the visitor/rewriter/synthesiser that
// alters a fixture's output is caught even without running the program.
func TestSamplesLower(t *testing.T) {
	for _, name := range sampleprograms.Names() {
		name := name
		t.Run(name, func(t *testing.T) {
			prog := lower(t, name)
			snaps.MatchSnapshot(t, name, printer.Print(prog))
		})
	}
}

// TestMixedArithmeticUnboxesDeclaredVars checks E2: both `a: Integer` and
// the inferred `c` collapse to the bare int primitive once nothing
// downstream still requires boxing.
func TestMixedArithmeticUnboxesDeclaredVars(t *testing.T) {
	prog := lower(t, "E2")

	for _, name := range []string{"a", "c"} {
		v := findVar(t, prog, name)
		if !types.IsPrimitive(v.Type) {
			t.Fatalf("variable %q expected primitive type after lowering, got %s", name, v.Type)
		}
	}
}

// TestGenericInstanceRetentionKeepsArrayBoxed checks E3: a ResizableArray's
// element stays a boxed Object (generic instances are rewritten
// reference-only), while a fixed Array of the same wrapper unboxes its
// element all the way down.
func TestGenericInstanceRetentionKeepsArrayBoxed(t *testing.T) {
	prog := lower(t, "E3")

	xs := findVar(t, prog, "xs")
	resizable, ok := xs.Type.(*types.ResizableArray)
	if !ok {
		t.Fatalf("xs expected *types.ResizableArray, got %T", xs.Type)
	}
	if !types.IsBoxedPrimitive(resizable.Elem) {
		t.Fatalf("xs element expected to stay boxed, got %s", resizable.Elem)
	}

	zs := findVar(t, prog, "zs")
	fixed, ok := zs.Type.(*types.Array)
	if !ok {
		t.Fatalf("zs expected *types.Array, got %T", zs.Type)
	}
	if !types.IsPrimitive(fixed.Elem) {
		t.Fatalf("zs element expected to unbox, got %s", fixed.Elem)
	}
}

// TestSwitchOnBoxedCharUnboxesDiscriminant checks E4: once every case test
// is a primitive-char literal, the switch's discriminant no longer needs
// its boxed Character wrapper.
func TestSwitchOnBoxedCharUnboxesDiscriminant(t *testing.T) {
	prog := lower(t, "E4")

	var sw *ast.SwitchStatement
	for _, stmt := range prog.Statements {
		if s, ok := stmt.(*ast.SwitchStatement); ok {
			sw = s
		}
	}
	if sw == nil {
		t.Fatalf("E4 expected a switch statement")
	}
	if !types.IsPrimitive(sw.Discriminant.GetType()) {
		t.Fatalf("switch discriminant expected primitive type after lowering, got %s", sw.Discriminant.GetType())
	}
}

// TestNullishCoalescingUnboxesResult checks E6: `maybe ?? 0` on a nullable
// boxed Integer still collapses to a bare int once the result is assigned
// to an int-typed variable.
func TestNullishCoalescingUnboxesResult(t *testing.T) {
	prog := lower(t, "E6")
	v := findVar(t, prog, "v")
	if !types.IsPrimitive(v.Type) {
		t.Fatalf("v expected primitive type after lowering, got %s", v.Type)
	}
}

func findVar(t *testing.T, prog *ast.Program, name string) *ast.Variable {
	t.Helper()
	for _, stmt := range prog.Statements {
		decl, ok := stmt.(*ast.VarDeclStatement)
		if !ok {
			continue
		}
		for _, d := range decl.Declarators {
			if d.Name == name {
				return d.Variable
			}
		}
	}
	t.Fatalf("no variable named %q found", name)
	return nil
}
