// Package arena models the compilation arena spec.md §3/§5 describes. It
// mints the synthetic tokens of freshly built AST nodes and counts them; the
// nodes and types themselves are ordinary Go allocations, not routed through
// Arena, and Go's garbage collector owns reclamation. Each Arena carries a
// RunID identifying its pass run; neither the minted tokens nor a raised
// passdiag.InvariantViolation record that RunID.
package arena

import (
	"github.com/google/uuid"

	"github.com/corvidlang/unboxlower/internal/ast"
	"github.com/corvidlang/unboxlower/internal/token"
)

// Arena owns node allocation for one pass invocation.
type Arena struct {
	RunID  uuid.UUID
	minted int
}

// New creates an Arena for a fresh pass run, tagging it with a random UUID
// (github.com/google/uuid) the way a long-lived host process would want to
// correlate a reported invariant violation back to the specific invocation
// that raised it.
func New() *Arena {
	return &Arena{RunID: uuid.New()}
}

// Minted reports how many nodes this arena has allocated so far.
func (a *Arena) Minted() int { return a.minted }

// NewToken mints a synthetic token for a freshly built node, before its
// source range is copied from the expression it replaces (the synthesiser
// assigns the token's Pos directly after this call).
func (a *Arena) NewToken(literal string) token.Token {
	a.minted++
	return ast.NewSyntheticToken(literal)
}
