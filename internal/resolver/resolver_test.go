package resolver

import (
	"testing"

	"github.com/cwbudde/go-toy/internal/lexer"
	"github.com/cwbudde/go-toy/internal/parser"
)

func analyze(t *testing.T, input string) int {
	t.Helper()
	tokens, _ := lexer.ScanTokens(input)
	p := parser.New(tokens)
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	return len(Analyze(prog))
}

func TestNoWarningsForWellFormedProgram(t *testing.T) {
	n := analyze(t, `
		let x = 1;
		function add(a, b) { return a + b; }
		print add(x, 2);
	`)
	if n != 0 {
		t.Fatalf("expected no warnings, got %d", n)
	}
}

func TestReturnOutsideFunctionWarns(t *testing.T) {
	n := analyze(t, `return 1;`)
	if n != 1 {
		t.Fatalf("expected 1 warning, got %d", n)
	}
}

func TestLambdaDeclarationAndCallDoNotWarn(t *testing.T) {
	n := analyze(t, `let f = () => 1; print f();`)
	if n != 0 {
		t.Fatalf("expected no warnings, got %d", n)
	}
}

func TestPossiblyUndeclaredVariableWarns(t *testing.T) {
	n := analyze(t, `print y;`)
	if n != 1 {
		t.Fatalf("expected 1 warning, got %d", n)
	}
}

func TestThisIsNeverFlaggedAsUndeclared(t *testing.T) {
	n := analyze(t, `class C { m() { print this; } }`)
	if n != 0 {
		t.Fatalf("expected no warnings, got %d", n)
	}
}

func TestUnreachableStatementAfterReturnWarns(t *testing.T) {
	n := analyze(t, `
		function f() {
			return 1;
			print "never";
		}
	`)
	if n != 1 {
		t.Fatalf("expected 1 warning, got %d", n)
	}
}

func TestUnreachableWarningReportedOnceForTrailingRun(t *testing.T) {
	n := analyze(t, `
		function f() {
			return 1;
			print "a";
			print "b";
		}
	`)
	if n != 1 {
		t.Fatalf("expected exactly 1 warning for the whole unreachable run, got %d", n)
	}
}

func TestReturnAsFinalStatementDoesNotWarn(t *testing.T) {
	n := analyze(t, `function f() { print "ok"; return 1; }`)
	if n != 0 {
		t.Fatalf("expected no warnings, got %d", n)
	}
}

func TestReturnInsideIfDoesNotMakeEnclosingBlockUnreachable(t *testing.T) {
	n := analyze(t, `
		function f(x) {
			if (x) { return 1; }
			print "still reachable";
			return 2;
		}
	`)
	if n != 0 {
		t.Fatalf("expected no warnings, got %d", n)
	}
}
