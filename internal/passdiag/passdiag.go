// Package passdiag implements the pass's assertional error model (spec.md
// §7: "any inconsistency... is a compiler bug and aborts the process. No
// diagnostic text is produced by this pass."). It adapts go-dws's
// internal/errors formatting (source context, line/column, caret) into an
// InvariantViolation raised by this package's Assertf/Unreachable, so an
// internal bug still reports *where* in the source it was detected even
// though it is never a user-facing diagnostic.
package passdiag

import (
	"fmt"
	"strings"

	"github.com/corvidlang/unboxlower/internal/token"
)

// InvariantViolation is raised (via panic) when the pass detects a
// structurally unexpected variant, a missing synthesised signature, or any
// other condition spec.md §7 calls "a compiler bug". It is never recovered
// inside this package: the whole compilation is unsound once raised (spec.md
// §7, "no retry, no fallback, no partial output").
type InvariantViolation struct {
	Message string
	Source  string
	Pos     token.Position
}

func (e *InvariantViolation) Error() string { return e.Format() }

// Format renders the violation the way go-dws's CompilerError.Format
// renders a user diagnostic: a position header, the offending source line,
// and a caret pointing at the column.
func (e *InvariantViolation) Format() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("unboxlower: internal error at %d:%d: %s\n", e.Pos.Line, e.Pos.Column, e.Message))
	if line := sourceLine(e.Source, e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+e.Pos.Column-1))
		sb.WriteString("^")
	}
	return sb.String()
}

func sourceLine(source string, line int) string {
	if source == "" || line < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// Assertf panics with an InvariantViolation if cond is false. pos/source
// give the violation its location; callers that have no meaningful source
// text (most of this pass, since it never touches raw text) pass "".
func Assertf(cond bool, pos token.Position, source, format string, args ...any) {
	if cond {
		return
	}
	panic(&InvariantViolation{Message: fmt.Sprintf(format, args...), Source: source, Pos: pos})
}

// Unreachable panics unconditionally; used for "unreachable default in the
// widening switch" and similarly structurally-impossible branches (spec.md
// §7).
func Unreachable(pos token.Position, format string, args ...any) {
	panic(&InvariantViolation{Message: fmt.Sprintf(format, args...), Pos: pos})
}
