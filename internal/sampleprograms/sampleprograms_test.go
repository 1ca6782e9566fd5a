package sampleprograms_test

import (
	"testing"

	"github.com/corvidlang/unboxlower/internal/sampleprograms"
)

func TestNamesMatchesSpecOrder(t *testing.T) {
	want := []string{"E1", "E2", "E3", "E4", "E5", "E6", "E7"}
	got := sampleprograms.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuildEveryNamedSample(t *testing.T) {
	chk := sampleprograms.NewChecker()
	for _, name := range sampleprograms.Names() {
		prog, ok := sampleprograms.Build(chk, name)
		if !ok {
			t.Fatalf("Build(%q) reported not-ok", name)
		}
		if prog == nil {
			t.Fatalf("Build(%q) returned a nil program", name)
		}
		if len(prog.Statements) == 0 {
			t.Fatalf("Build(%q) returned a program with no statements", name)
		}
	}
}

func TestBuildUnknownSampleFails(t *testing.T) {
	chk := sampleprograms.NewChecker()
	if _, ok := sampleprograms.Build(chk, "E99"); ok {
		t.Fatalf("Build(%q) expected not-ok for an unknown sample", "E99")
	}
}
