// Package pipeline wires the interpreter's stages — parser, type
// inferencer, surface→core resolver, optimizer, compiler, evaluator —
// into the single path spec §1 describes, and keeps the state a REPL
// session (or a run of several top-level declarations from one source
// file) must thread across declarations: the inferencer's environment,
// the datatype registry, and the evaluator's bindings.
package pipeline

import (
	"github.com/sml-lang/interp/internal/ast"
	"github.com/sml-lang/interp/internal/builtins"
	"github.com/sml-lang/interp/internal/compiler"
	"github.com/sml-lang/interp/internal/config"
	"github.com/sml-lang/interp/internal/core"
	"github.com/sml-lang/interp/internal/eval"
	"github.com/sml-lang/interp/internal/optimize"
	"github.com/sml-lang/interp/internal/parser"
	"github.com/sml-lang/interp/internal/resolver"
	"github.com/sml-lang/interp/internal/types"
)

// Binding is one name a declaration bound, with its resulting value and
// inferred type, in the shape the REPL prints (spec §6: "val ⟨name⟩ =
// ⟨value⟩ : ⟨type⟩").
type Binding struct {
	Name  string
	Value eval.Value
	Type  types.Type
}

// Pipeline holds every piece of state that must survive from one
// top-level declaration to the next: the inferencer's environment (so
// later declarations see earlier ones' schemes), the datatype registry,
// and the evaluator's bindings.
type Pipeline struct {
	store     *types.Store
	datatypes *types.DataRegistry
	tyEnv     *types.Env
	evaluator *eval.Evaluator
	passes    []optimize.Pass
	cfg       *config.Config
}

// New builds a Pipeline seeded with the builtin registry's bootstrap
// type environment and runtime environment (internal/builtins), so
// "List.map", "hd", "tl" and the rest resolve from the first
// declaration onward.
func New(cfg *config.Config) *Pipeline {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Pipeline{
		store:     types.NewStore(),
		datatypes: types.NewDataRegistry(),
		tyEnv:     builtins.Env(),
		evaluator: eval.NewEvaluator(builtins.Environment()),
		passes:    []optimize.Pass{optimize.Identity{}},
		cfg:       cfg,
	}
}

// Reset discards all bindings and returns a fresh Pipeline with the
// same configuration, for a REPL's ":reset" command.
func (p *Pipeline) Reset() *Pipeline {
	return New(p.cfg)
}

// Eval parses src (which may contain several ";"-separated top-level
// declarations or bare expressions) and runs each one, in order,
// through inference, resolution, optimization, compilation and
// evaluation, returning one Bindings-producing result per declaration.
func (p *Pipeline) Eval(src, file string) ([]Result, error) {
	prog, err := parser.ParseProgram([]byte(src), file)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(prog.Decls))
	for _, d := range prog.Decls {
		res, err := p.evalDecl(d)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Result is everything one top-level declaration produced: the names it
// bound (empty for a datatype declaration) and the value of its
// right-hand side, matching "val it = e" sugar for a bare expression.
type Result struct {
	Bindings []Binding
}

func (p *Pipeline) evalDecl(d ast.Decl) (Result, error) {
	single := &ast.Program{Decls: []ast.Decl{d}}

	inf := types.NewInferencer(p.store, p.datatypes)
	infResult, err := inf.InferProgram(p.tyEnv, single)
	if err != nil {
		return Result{}, err
	}
	p.tyEnv = infResult.Env

	res := resolver.New(infResult.TypeMap, p.datatypes, builtins.Lookup)
	coreProg, err := res.ResolveProgram(single)
	if err != nil {
		return Result{}, err
	}

	optimized, err := optimize.RunToFixpoint(coreProg, p.passes, p.cfg.InlinePassCount)
	if err != nil {
		return Result{}, err
	}

	compiled, err := compiler.Compile(optimized)
	if err != nil {
		return Result{}, err
	}

	var names []string
	if len(compiled.Decls) == 1 {
		if let, ok := compiled.Decls[0].(*core.Let); ok {
			if vd, ok := let.Decl.(*core.ValDecl); ok {
				for _, b := range vd.Bindings {
					names = append(names, core.PatNames(b.Pat)...)
				}
			}
		}
	}

	if _, err := p.evaluator.EvalProgram(compiled); err != nil {
		return Result{}, err
	}

	bindings := make([]Binding, 0, len(names))
	for _, name := range names {
		v, ok := p.evaluator.Env().Get(name)
		if !ok {
			continue
		}
		scheme, _ := p.tyEnv.Lookup(name)
		var t types.Type = types.Unit
		if scheme != nil {
			t = scheme.Type
		}
		bindings = append(bindings, Binding{Name: name, Value: v, Type: t})
	}
	return Result{Bindings: bindings}, nil
}
