// Package toy is the embeddable public API: parse and run Toy source, and
// register host-language extension functions into the global scope, per
// spec.md §6. The REPL collaborator (out of scope per spec.md §1) is built
// against it; the CLI driver calls the internal packages directly.
package toy

import (
	"bytes"
	"fmt"
	"io"

	"github.com/cwbudde/go-toy/internal/builtins"
	"github.com/cwbudde/go-toy/internal/errors"
	"github.com/cwbudde/go-toy/internal/evaluator"
	"github.com/cwbudde/go-toy/internal/lexer"
	"github.com/cwbudde/go-toy/internal/parser"
	"github.com/cwbudde/go-toy/internal/resolver"
	"github.com/cwbudde/go-toy/internal/runtime"
)

// ExtensionFunc is the Go implementation behind a registered extension
// callable, receiving already-evaluated Toy argument values.
type ExtensionFunc func(args []Value) (Value, error)

// Value is the runtime value type exchanged across the embedding
// boundary; it is an alias of the internal representation so callers
// never need to import an internal package directly.
type Value = runtime.Value

// Engine holds one registry of host extensions and a persistent global
// environment shared across every Eval call, mirroring the REPL contract
// of spec.md §6 ("a persistent global environment").
type Engine struct {
	out       io.Writer
	lint      bool
	exts      *builtins.Registry
	evaluator *evaluator.Evaluator
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithOutput sends `print` output to w. Without it, New discards printed
// output (it is still returned in Result.Output by Eval).
func WithOutput(w io.Writer) Option {
	return func(e *Engine) { e.out = w }
}

// WithLint enables the resolver's best-effort semantic lint pass
// (spec.md §2 item 4) and turns its warnings into an Eval error.
func WithLint(enabled bool) Option {
	return func(e *Engine) { e.lint = enabled }
}

// New creates an Engine ready to register extensions and evaluate source.
func New(opts ...Option) *Engine {
	e := &Engine{out: io.Discard, exts: builtins.NewRegistry()}
	for _, opt := range opts {
		opt(e)
	}
	e.evaluator = evaluator.New(e.out, e.exts)
	return e
}

// RegisterFunction exposes fn to Toy scripts under name, callable with
// exactly arity arguments (spec.md §6's extension registry contract: name,
// arity, invocation function). Safe to call at any time, including
// between Eval calls against the same persistent global environment.
func (e *Engine) RegisterFunction(name string, arity int, fn ExtensionFunc) {
	e.exts.Register(name, arity, builtins.CategorySystem, builtins.Func(fn))
	info, _ := e.exts.Get(name)
	e.evaluator.Globals.Define(name, evaluator.NewExtension(info))
}

// Result is the outcome of one Eval call.
type Result struct {
	// Output is everything `print` wrote during this run.
	Output string
}

// Eval lexes, parses, optionally lints, and runs source against the
// Engine's persistent global environment, per spec.md §7's propagation
// policy: lexical/syntactic diagnostics abort before evaluation ever
// starts.
func (e *Engine) Eval(source string) (*Result, error) {
	var buf bytes.Buffer
	out := io.MultiWriter(e.out, &buf)
	e.evaluator.Out = out

	tokens, lexErrs := lexer.ScanTokens(source)
	if len(lexErrs) > 0 {
		var diags []*errors.Diagnostic
		for _, msg := range lexErrs {
			diags = append(diags, errors.NewDiagnostic(errors.Lexical, 0, "%s", msg))
		}
		return nil, fmt.Errorf("%s", errors.FormatAll(diags, source, false))
	}

	p := parser.New(tokens)
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		return nil, fmt.Errorf("%s", errors.FormatAll(p.Errors(), source, false))
	}

	if e.lint {
		if diags := resolver.Analyze(prog); len(diags) > 0 {
			return nil, fmt.Errorf("%s", errors.FormatAll(diags, source, false))
		}
	}

	if err := e.evaluator.Run(prog); err != nil {
		if rtErr, ok := err.(interface{ Diagnostic() *errors.Diagnostic }); ok {
			return nil, fmt.Errorf("%s", rtErr.Diagnostic().Format(source, false))
		}
		return nil, err
	}

	return &Result{Output: buf.String()}, nil
}

// Globals exposes the persistent global environment, primarily for tests
// that want to assert on top-level bindings after an Eval.
func (e *Engine) Globals() *runtime.Environment {
	return e.evaluator.Globals
}
