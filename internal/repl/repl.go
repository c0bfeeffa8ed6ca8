// Package repl implements the interactive read-eval-print loop built on
// top of internal/pipeline: each line is parsed, inferred, resolved,
// optimized, compiled and evaluated as one or more top-level
// declarations, with bindings persisting across lines the way a
// sequence of top-level declarations in one source file would (spec
// §5/§6).
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/sml-lang/interp/internal/config"
	"github.com/sml-lang/interp/internal/eval"
	"github.com/sml-lang/interp/internal/pipeline"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// REPL is a persistent interpreter session: one Pipeline whose state
// (type environment, datatype registry, evaluator bindings) survives
// from one line of input to the next.
type REPL struct {
	pipe    *pipeline.Pipeline
	history []string
	version string
}

// New creates a REPL seeded with the builtin environment.
func New(cfg *config.Config) *REPL {
	return &REPL{pipe: pipeline.New(cfg), version: "dev"}
}

// NewWithVersion creates a REPL that reports version in its banner.
func NewWithVersion(cfg *config.Config, version string) *REPL {
	if version == "" {
		version = "dev"
	}
	return &REPL{pipe: pipeline.New(cfg), version: version}
}

// Start runs the interactive loop, reading from in (liner manages its
// own terminal I/O; in is unused when liner attaches to a real
// terminal, but kept for Start's signature to mirror a plain
// io.Reader-driven batch runner) and writing all output to out.
func (r *REPL) Start(in io.Reader, out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(true)

	historyFile := filepath.Join(os.TempDir(), ".sml_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	fmt.Fprintf(out, "%s %s\n", bold("sml"), bold(r.version))
	fmt.Fprintln(out, dim("Type :help for help, :quit to exit"))
	fmt.Fprintln(out)

	line.SetCompleter(func(input string) (c []string) {
		if !strings.HasPrefix(input, ":") {
			return nil
		}
		for _, cmd := range replCommands {
			if strings.HasPrefix(cmd, input) {
				c = append(c, cmd)
			}
		}
		return c
	})

	for {
		input, err := line.Prompt("sml> ")
		if err == io.EOF {
			fmt.Fprintln(out, green("Goodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if needsContinuation(input) {
			var lines []string
			lines = append(lines, input)
			for needsContinuation(lines[len(lines)-1]) {
				cont, err := line.Prompt("...> ")
				if err != nil {
					break
				}
				lines = append(lines, cont)
			}
			input = strings.Join(lines, "\n")
		}

		line.AppendHistory(input)
		r.history = append(r.history, input)

		if strings.HasPrefix(input, ":") {
			if input == ":quit" || input == ":q" || input == ":exit" {
				fmt.Fprintln(out, green("Goodbye!"))
				break
			}
			r.handleCommand(input, out)
			continue
		}

		r.evalLine(input, out)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

// needsContinuation reports whether input looks like the first (or
// latest) line of an as-yet-incomplete "let ... in ... end" or
// "from ... yield" clause; a trailing "in" or "," is the same
// lightweight heuristic as a one-shot expression that isn't done yet.
func needsContinuation(input string) bool {
	trimmed := strings.TrimRight(input, " \t")
	return strings.HasSuffix(trimmed, " in") || strings.HasSuffix(trimmed, ",")
}

// evalLine runs one line of input through the pipeline and prints each
// resulting declaration's bindings in spec §6's "val name = value : type"
// form, or a phase-tagged error message on failure.
func (r *REPL) evalLine(input string, out io.Writer) {
	results, err := r.pipe.Eval(input, "<repl>")
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
		return
	}
	for _, res := range results {
		for _, b := range res.Bindings {
			fmt.Fprintf(out, "%s %s = %s %s %s\n",
				yellow("val"), b.Name, eval.FormatTyped(b.Value, b.Type), dim(":"), dim(b.Type.Moniker()))
		}
	}
}
