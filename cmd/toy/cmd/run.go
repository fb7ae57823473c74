package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/go-toy/internal/errors"
	"github.com/cwbudde/go-toy/internal/evaluator"
	"github.com/cwbudde/go-toy/internal/lexer"
	"github.com/cwbudde/go-toy/internal/parser"
	"github.com/cwbudde/go-toy/internal/repl"
	"github.com/cwbudde/go-toy/internal/resolver"
)

func runScript(c *cobra.Command, args []string) error {
	examples, _ := c.Flags().GetBool("examples")
	if examples {
		return listExamples()
	}

	evalExpr, _ := c.Flags().GetString("eval")
	traceTokens, _ := c.Flags().GetBool("tokens")
	traceAST, _ := c.Flags().GetBool("ast")
	debug, _ := c.Flags().GetBool("debug")
	lint, _ := c.Flags().GetBool("lint")
	startRepl, _ := c.Flags().GetBool("repl")
	if debug {
		traceTokens, traceAST = true, true
	}

	var source, name string
	switch {
	case evalExpr != "":
		source, name = evalExpr, "<eval>"
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return exitCoded(1, fmt.Errorf("failed to read file %s: %w", args[0], err))
		}
		source, name = string(content), args[0]
	case startRepl:
		// No script: fall straight through to the REPL below.
	default:
		return exitCoded(1, fmt.Errorf("either provide a script path or use -e for inline code"))
	}

	if source != "" {
		if err := run(source, name, traceTokens, traceAST, lint); err != nil {
			return err
		}
	}

	if startRepl || (source == "" && evalExpr == "" && len(args) == 0) {
		r := repl.New(Version, os.Stdout)
		return r.Start(os.Stdout)
	}
	return nil
}

func run(source, name string, traceTokens, traceAST, lint bool) error {
	tokens, lexErrs := lexer.ScanTokens(source)
	if traceTokens {
		fmt.Println("Tokens:")
		for _, t := range tokens {
			fmt.Printf("  %s\n", t)
		}
	}
	if len(lexErrs) > 0 {
		var diags []*errors.Diagnostic
		for _, msg := range lexErrs {
			diags = append(diags, errors.NewDiagnostic(errors.Lexical, 0, "%s", msg))
		}
		fmt.Fprintln(os.Stderr, errors.FormatAll(diags, source, true))
		return exitCoded(65, fmt.Errorf("lexical analysis failed in %s", name))
	}

	p := parser.New(tokens)
	prog := p.ParseProgram()
	if traceAST {
		fmt.Println("AST:")
		for _, stmt := range prog.Statements {
			fmt.Printf("  %s\n", stmt.String())
		}
	}
	if len(p.Errors()) > 0 {
		fmt.Fprintln(os.Stderr, errors.FormatAll(p.Errors(), source, true))
		return exitCoded(65, fmt.Errorf("parsing failed in %s", name))
	}

	if lint {
		if diags := resolver.Analyze(prog); len(diags) > 0 {
			fmt.Fprintln(os.Stderr, errors.FormatAll(diags, source, true))
			return exitCoded(65, fmt.Errorf("lint failed in %s", name))
		}
	}

	ev := evaluator.New(os.Stdout, nil)
	if err := ev.Run(prog); err != nil {
		if rtErr, ok := err.(interface{ Diagnostic() *errors.Diagnostic }); ok {
			fmt.Fprintln(os.Stderr, rtErr.Diagnostic().Format(source, true))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return exitCoded(70, fmt.Errorf("execution failed in %s", name))
	}

	return nil
}

// exitCode wraps an error with its driver exit code; cobra's default
// error handling just prints and exits 1, so the root command checks for
// this type and exits explicitly instead (see main.go).
type exitCode struct {
	code int
	err  error
}

func (e *exitCode) Error() string { return e.err.Error() }
func (e *exitCode) Unwrap() error { return e.err }

func exitCoded(code int, err error) error {
	return &exitCode{code: code, err: err}
}

// ExitCodeOf extracts the intended process exit code from err, defaulting
// to 1 for any error that didn't originate from exitCoded.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	if ec, ok := err.(*exitCode); ok {
		return ec.code
	}
	return 1
}

func listExamples() error {
	entries, err := os.ReadDir("examples")
	if err != nil {
		fmt.Println("No bundled examples found.")
		return nil
	}
	fmt.Println("Available examples:")
	for _, e := range entries {
		fmt.Printf("  %s\n", e.Name())
	}
	return nil
}
