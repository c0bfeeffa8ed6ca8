// Package optimize runs a fixed list of core-to-core rewrite passes to
// a fixpoint. It ships only the identity pass; the slot exists so a
// later pass can be dropped in without touching the compiler or
// evaluator (spec §9).
package optimize

import "github.com/sml-lang/interp/internal/core"

// Pass rewrites a core program, returning a new program (or the same
// *core.Program pointer if it made no change).
type Pass interface {
	Name() string
	Run(prog *core.Program) (*core.Program, error)
}

// RunToFixpoint applies passes in order, repeating the full list until
// a round leaves the program pointer unchanged or maxRounds is reached.
// Reference equality is the termination test (§9 Open Question,
// resolved in favour of pointer comparison over a deep-equality walk:
// every pass that changes nothing must return its input program
// unmodified, which every pass in this package does).
func RunToFixpoint(prog *core.Program, passes []Pass, maxRounds int) (*core.Program, error) {
	cur := prog
	for round := 0; round < maxRounds; round++ {
		next := cur
		for _, p := range passes {
			out, err := p.Run(next)
			if err != nil {
				return nil, err
			}
			next = out
		}
		if next == cur {
			return cur, nil
		}
		cur = next
	}
	return cur, nil
}
