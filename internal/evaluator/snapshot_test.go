package evaluator

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/cwbudde/go-toy/internal/lexer"
	"github.com/cwbudde/go-toy/internal/parser"
)

// TestProgramOutputSnapshots pins the full printed output of a handful of
// representative programs, one per language feature area, so a change in
// evaluation semantics shows up as a diff against the snapshot go-snaps
// records on its first run, instead of requiring a new hand-written
// assertion per feature.
func TestProgramOutputSnapshots(t *testing.T) {
	programs := map[string]string{
		"fibonacci": `
			function fib(n) {
				if (n < 2) { return n; }
				return fib(n - 1) + fib(n - 2);
			}
			let i = 0;
			repeat 8 times {
				print fib(i);
				i = i + 1;
			}
		`,
		"closures_and_classes": `
			class Accumulator {
				init(start) { this.total = start; }
				add(n) { this.total = this.total + n; return this.total; }
			}
			let acc = new Accumulator(100);
			let addTen = (n) => acc.add(n);
			print addTen(1);
			print addTen(2);
			print acc.total;
		`,
		"string_and_numeric_coercion": `
			print "count = " + 3;
			print 7 / 2;
			print 7 % 2;
			print 1 == 1.0;
		`,
	}

	for name, src := range programs {
		src := src
		t.Run(name, func(t *testing.T) {
			tokens, lexErrs := lexer.ScanTokens(src)
			if len(lexErrs) > 0 {
				t.Fatalf("unexpected lexer errors: %v", lexErrs)
			}
			p := parser.New(tokens)
			prog := p.ParseProgram()
			if len(p.Errors()) > 0 {
				t.Fatalf("unexpected parser errors: %v", p.Errors())
			}

			var buf bytes.Buffer
			ev := New(&buf, nil)
			if err := ev.Run(prog); err != nil {
				t.Fatalf("unexpected runtime error: %v", err)
			}

			snaps.MatchSnapshot(t, buf.String())
		})
	}
}
