package optimize

import (
	"testing"

	"github.com/sml-lang/interp/internal/core"
)

func TestRunToFixpointIdentityConverges(t *testing.T) {
	prog := &core.Program{}
	out, err := RunToFixpoint(prog, []Pass{Identity{}}, 4)
	if err != nil {
		t.Fatalf("RunToFixpoint: %v", err)
	}
	if out != prog {
		t.Fatalf("expected identity pass to return the same pointer")
	}
}

type countingPass struct {
	calls *int
}

func (countingPass) Name() string { return "counting" }

func (c countingPass) Run(prog *core.Program) (*core.Program, error) {
	*c.calls++
	if *c.calls >= 3 {
		return prog, nil
	}
	return &core.Program{Decls: prog.Decls}, nil
}

func TestRunToFixpointStopsWhenPointerStable(t *testing.T) {
	calls := 0
	prog := &core.Program{}
	out, err := RunToFixpoint(prog, []Pass{countingPass{&calls}}, 10)
	if err != nil {
		t.Fatalf("RunToFixpoint: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected exactly 3 calls before stabilising, got %d", calls)
	}
	if out == prog {
		t.Fatalf("expected a fresh program pointer once the pass rewrote it")
	}
}
