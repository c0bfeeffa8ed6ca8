package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/sml-lang/interp/internal/config"
	"github.com/sml-lang/interp/internal/errors"
	"github.com/sml-lang/interp/internal/eval"
	"github.com/sml-lang/interp/internal/pipeline"
	"github.com/sml-lang/interp/internal/repl"
)

var (
	// Version is set by ldflags during release builds.
	Version = "dev"

	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		versionFlag = flag.Bool("version", false, "Print version information")
		helpFlag    = flag.Bool("help", false, "Show help")
		jsonFlag    = flag.Bool("json", false, "Report errors as structured JSON")
		configFlag  = flag.String("config", "", "Path to a sml.yaml config file")
	)

	flag.Parse()

	if *versionFlag {
		fmt.Printf("sml %s\n", bold(Version))
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		printHelp()
		return
	}

	cfg := config.Default()
	if *configFlag != "" {
		var err error
		cfg, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			os.Exit(1)
		}
	}

	switch command := flag.Arg(0); command {
	case "run":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing file argument\n", red("Error"))
			fmt.Println("Usage: sml run <file.sml>")
			os.Exit(1)
		}
		runFile(cfg, flag.Arg(1), *jsonFlag)

	case "repl":
		repl.NewWithVersion(cfg, Version).Start(os.Stdin, os.Stdout)

	case "check":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing file argument\n", red("Error"))
			fmt.Println("Usage: sml check <file.sml>")
			os.Exit(1)
		}
		checkFile(cfg, flag.Arg(1), *jsonFlag)

	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", red("Error"), command)
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(bold("sml - a Standard ML interpreter"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  sml <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Printf("  %s <file>   Run a program\n", cyan("run"))
	fmt.Printf("  %s          Start the interactive REPL\n", cyan("repl"))
	fmt.Printf("  %s <file>   Parse, type-check and evaluate a program, printing OK instead of its bindings\n", cyan("check"))
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  --version        Print version information")
	fmt.Println("  --help           Show this help message")
	fmt.Println("  --json           Report errors as structured JSON (run/check)")
	fmt.Println("  --config <path>  Load optimizer/backend settings from a YAML file")
}

func runFile(cfg *config.Config, path string, asJSON bool) {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}

	p := pipeline.New(cfg)
	results, err := p.Eval(string(src), path)
	if err != nil {
		reportError(err, asJSON)
		os.Exit(1)
	}
	for _, res := range results {
		for _, b := range res.Bindings {
			fmt.Printf("val %s = %s : %s\n", b.Name, eval.FormatTyped(b.Value, b.Type), b.Type.Moniker())
		}
	}
}

func checkFile(cfg *config.Config, path string, asJSON bool) {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}

	p := pipeline.New(cfg)
	if _, err := p.Eval(string(src), path); err != nil {
		reportError(err, asJSON)
		os.Exit(1)
	}
	fmt.Println(green("OK"))
}

// reportError prints err either as a colored one-liner or, under
// -json, as the structured *errors.Report a phase builder produced
// (falling back to the plain message for an error that never went
// through internal/errors, e.g. a file-not-found from os.ReadFile).
func reportError(err error, asJSON bool) {
	if asJSON {
		if rep, ok := errors.AsReport(err); ok {
			if out, jerr := rep.ToJSON(false); jerr == nil {
				fmt.Fprintln(os.Stderr, out)
				return
			}
		}
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
}
