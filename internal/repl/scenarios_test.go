package repl

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/sml-lang/interp/internal/config"
)

// scenarios mirrors the end-to-end scenario table: each input is run
// through a fresh REPL session (so earlier scenarios never leak
// bindings into later ones) and the output lines are snapshotted
// verbatim, the same "val name = value : type" text a real session
// would print.
var scenarios = []struct {
	name  string
	input string
}{
	{"arithmetic", "1 + 2"},
	{"val_list", "val xs = [1,2,3]"},
	{"let_and", "let val x = 3 and y = 4 in x + y end"},
	{"rec_factorial", "val rec fact = fn 0 => 1 | n => n * fact (n - 1); fact 5"},
	{"from_group_compute_yield", "from e in [{id=1,dept=10},{id=2,dept=10},{id=3,dept=20}] group dept compute c = count yield {dept, c}"},
	{"cons_pattern_fn", "(fn (x::xs) => x) [10,20,30]"},
}

func TestEndToEndScenarios(t *testing.T) {
	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			r := New(config.Default())
			var out bytes.Buffer
			r.evalLine(sc.input, &out)
			snaps.MatchSnapshot(t, fmt.Sprintf("%s_output", sc.name), out.String())
		})
	}
}
