package repl

import (
	"fmt"
	"io"
)

// replCommands lists every ":"-prefixed command, used both for help
// text and liner's tab completion.
var replCommands = []string{":help", ":quit", ":history", ":reset"}

func (r *REPL) handleCommand(input string, out io.Writer) {
	switch input {
	case ":help":
		r.printHelp(out)
	case ":history":
		r.printHistory(out)
	case ":reset":
		r.reset(out)
	default:
		fmt.Fprintf(out, "%s: unknown command %q (try :help)\n", red("Error"), input)
	}
}

func (r *REPL) printHelp(out io.Writer) {
	fmt.Fprintln(out, bold("Commands:"))
	fmt.Fprintln(out, "  :help      show this message")
	fmt.Fprintln(out, "  :history   show input history for this session")
	fmt.Fprintln(out, "  :reset     discard all bindings and start a fresh session")
	fmt.Fprintln(out, "  :quit      exit (:q, :exit also work)")
}

func (r *REPL) printHistory(out io.Writer) {
	for i, line := range r.history {
		fmt.Fprintf(out, "%3d  %s\n", i+1, line)
	}
}

func (r *REPL) reset(out io.Writer) {
	r.pipe = r.pipe.Reset()
	r.history = nil
	fmt.Fprintln(out, dim("Session reset."))
}
