package types

import (
	"fmt"

	"github.com/sml-lang/interp/internal/ast"
)

// Error is the inferencer's failure mode (spec §7 TypeError): unbound
// identifier, unification failure, non-exhaustive record pattern with
// no ellipsis, constructor arity mismatch. It always carries the source
// position of the node that triggered it.
type Error struct {
	Pos     ast.Pos
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: type error: %s", e.Pos, e.Message)
}

func errUnbound(pos ast.Pos, name string) error {
	return &Error{Pos: pos, Message: fmt.Sprintf("unbound identifier %q", name)}
}

func errUnify(pos ast.Pos, a, b Type) error {
	return &Error{Pos: pos, Message: fmt.Sprintf("cannot unify %s with %s", a.Description(), b.Description())}
}

func errArity(pos ast.Pos, ctor string, want, got int) error {
	return &Error{Pos: pos, Message: fmt.Sprintf("constructor %q expects %d argument(s), got %d", ctor, want, got)}
}

func errRecordField(pos ast.Pos, label string) error {
	return &Error{Pos: pos, Message: fmt.Sprintf("record has no field %q and pattern has no ellipsis", label)}
}
