// Package resolver implements the optional semantic lint pass from
// spec.md §2 item 4: a best-effort walk over the AST that reports
// declared-before-use, return-outside-function, and unreachable-after-
// return diagnostics without mutating the tree or gating evaluation.
// Grounded on the teacher's `semantic.Analyzer` shape (an
// accumulate-diagnostics walker kept separate from the evaluator).
package resolver

import (
	"github.com/cwbudde/go-toy/internal/ast"
	toyerrors "github.com/cwbudde/go-toy/internal/errors"
)

// scope tracks which names are declared in a lexical block during the walk.
type scope map[string]bool

// Resolver walks a parsed Program collecting semantic diagnostics.
type Resolver struct {
	scopes      []scope
	functionDep int // nesting depth of enclosing function bodies
	diags       []*toyerrors.Diagnostic
}

// New creates a Resolver ready to analyze a program.
func New() *Resolver {
	return &Resolver{}
}

// Analyze walks prog and returns any semantic diagnostics found. It never
// stops the pipeline by itself (spec.md §7): callers decide whether lint
// warnings gate execution.
func Analyze(prog *ast.Program) []*toyerrors.Diagnostic {
	r := New()
	r.beginScope()
	r.resolveStmts(prog.Statements)
	r.endScope()
	return r.diags
}

// resolveStmts resolves a statement list in order, warning once when a
// `return` is followed by further statements in the same list (spec.md §2
// item 4's unreachable-code check). A nested `return` inside an `if`/`while`
// body doesn't make the remainder of the *enclosing* list unreachable, so
// this only tracks returns that appear directly in stmts itself.
func (r *Resolver) resolveStmts(stmts []ast.Statement) {
	reported := false
	for i, st := range stmts {
		r.resolveStmt(st)
		if _, isReturn := st.(*ast.Return); isReturn && i+1 < len(stmts) && !reported {
			r.warn(stmtLine(stmts[i+1]), "unreachable code after 'return'")
			reported = true
		}
	}
}

func (r *Resolver) beginScope() { r.scopes = append(r.scopes, scope{}) }
func (r *Resolver) endScope()   { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *Resolver) declare(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}

func (r *Resolver) isDeclared(name string) bool {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if r.scopes[i][name] {
			return true
		}
	}
	return false
}

func (r *Resolver) warn(line int, format string, args ...any) {
	r.diags = append(r.diags, toyerrors.NewDiagnostic(toyerrors.Semantic, line, format, args...))
}

func (r *Resolver) resolveStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		r.resolveExpr(s.Expression)
	case *ast.Print:
		r.resolveExpr(s.Expression)
	case *ast.Let:
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.declare(s.Name.Lexeme)
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()
	case *ast.If:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *ast.While:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)
	case *ast.Function:
		r.declare(s.Name.Lexeme)
		r.resolveFunction(s)
	case *ast.Return:
		if r.functionDep == 0 {
			r.warn(s.Keyword.Line, "'return' used outside of a function")
		}
		if s.Value != nil {
			r.resolveExpr(s.Value)
		}
	case *ast.Class:
		r.declare(s.Name.Lexeme)
		for _, m := range s.Methods {
			r.resolveFunction(m)
		}
	case *ast.Parallel:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()
	case *ast.Repeat:
		r.resolveExpr(s.Count)
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()
	case *ast.Delete:
		r.resolveExpr(s.Target)
	}
}

func (r *Resolver) resolveFunction(fn *ast.Function) {
	r.functionDep++
	r.beginScope()
	for _, p := range fn.Params {
		r.declare(p.Lexeme)
	}
	r.resolveStmts(fn.Body)
	r.endScope()
	r.functionDep--
}

func (r *Resolver) resolveExpr(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Variable:
		if e.Name.Lexeme != "this" && !r.isDeclared(e.Name.Lexeme) {
			r.warn(e.Name.Line, "use of possibly undeclared variable '%s'", e.Name.Lexeme)
		}
	case *ast.Assign:
		r.resolveExpr(e.Value)
	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Unary:
		r.resolveExpr(e.Right)
	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}
	case *ast.Get:
		r.resolveExpr(e.Object)
	case *ast.Set:
		r.resolveExpr(e.Object)
		r.resolveExpr(e.Value)
	case *ast.Lambda:
		r.functionDep++
		r.beginScope()
		for _, p := range e.Params {
			r.declare(p.Lexeme)
		}
		r.resolveExpr(e.Body)
		r.endScope()
		r.functionDep--
	}
}

// stmtLine extracts the line of stmt's leading token, for pointing a
// diagnostic at the first unreachable statement after a `return`.
func stmtLine(stmt ast.Statement) int {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		return exprLine(s.Expression)
	case *ast.Print:
		return s.Token.Line
	case *ast.Let:
		return s.Token.Line
	case *ast.Block:
		return s.Token.Line
	case *ast.If:
		return s.Token.Line
	case *ast.While:
		return s.Token.Line
	case *ast.Function:
		return s.Token.Line
	case *ast.Return:
		return s.Keyword.Line
	case *ast.Class:
		return s.Token.Line
	case *ast.Parallel:
		return s.Token.Line
	case *ast.Repeat:
		return s.Token.Line
	case *ast.Delete:
		return s.Token.Line
	default:
		return 0
	}
}

func exprLine(expr ast.Expression) int {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Token.Line
	case *ast.Variable:
		return e.Name.Line
	case *ast.Assign:
		return e.Name.Line
	case *ast.Binary:
		return e.Operator.Line
	case *ast.Unary:
		return e.Operator.Line
	case *ast.Call:
		return e.CloseParen.Line
	case *ast.Get:
		return e.Name.Line
	case *ast.Set:
		return e.Name.Line
	case *ast.Lambda:
		return e.Keyword.Line
	default:
		return 0
	}
}
