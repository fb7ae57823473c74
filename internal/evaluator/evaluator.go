// Package evaluator implements the tree-walking evaluator from spec.md
// §4.3: it executes statements for side effects and evaluates expressions
// against a current, rebindable environment, owning the callable/instance
// runtime representation described in spec.md §3.
package evaluator

import (
	"fmt"
	"io"

	"github.com/cwbudde/go-toy/internal/ast"
	"github.com/cwbudde/go-toy/internal/builtins"
	"github.com/cwbudde/go-toy/internal/runtime"
)

// Evaluator owns the globals environment and the current environment,
// which is rebound on scope entry/exit (spec.md §4.3).
type Evaluator struct {
	Globals *runtime.Environment
	current *runtime.Environment
	Out     io.Writer
	exts    *builtins.Registry
}

// New creates an Evaluator writing `print` output to out, with the given
// extension registry (spec.md §6's extension registry contract) seeded
// into globals.
func New(out io.Writer, exts *builtins.Registry) *Evaluator {
	e := &Evaluator{Globals: runtime.NewEnvironment(), Out: out, exts: exts}
	e.current = e.Globals
	if exts != nil {
		for _, info := range exts.All() {
			info := info
			e.Globals.Define(info.Name, &Extension{Info: info})
		}
	}
	return e
}

// Run executes every top-level statement of prog in sequence, aborting on
// the first runtime failure (spec.md §7's propagation policy). A `return`
// that reaches the top level is reported as a runtime failure.
func (e *Evaluator) Run(prog *ast.Program) error {
	for _, stmt := range prog.Statements {
		result, err := e.exec(stmt)
		if err != nil {
			return err
		}
		if result.returning {
			return newRuntimeError(0, "Cannot return from top-level code")
		}
	}
	return nil
}

// execResult threads the "returning" flag and its value up through
// recursive statement execution, the strategy spec.md §9 recommends for
// non-local `return` exits ("explicit return-value plumbing ... with a
// returning flag") instead of panic/recover.
type execResult struct {
	returning bool
	value     runtime.Value
}

var normalResult = execResult{}

func (e *Evaluator) exec(stmt ast.Statement) (execResult, error) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := e.eval(s.Expression)
		return normalResult, err
	case *ast.Print:
		v, err := e.eval(s.Expression)
		if err != nil {
			return normalResult, err
		}
		fmt.Fprintln(e.Out, Stringify(v))
		return normalResult, nil
	case *ast.Let:
		var v runtime.Value = runtime.Null{}
		if s.Initializer != nil {
			var err error
			v, err = e.eval(s.Initializer)
			if err != nil {
				return normalResult, err
			}
		}
		e.current.Define(s.Name.Lexeme, v)
		return normalResult, nil
	case *ast.Block:
		return e.execBlock(s.Statements, runtime.NewChild(e.current))
	case *ast.If:
		return e.execIf(s)
	case *ast.While:
		return e.execWhile(s)
	case *ast.Function:
		fn := &Function{Decl: s, Closure: e.current}
		e.current.Define(s.Name.Lexeme, fn)
		return normalResult, nil
	case *ast.Return:
		var v runtime.Value = runtime.Null{}
		if s.Value != nil {
			var err error
			v, err = e.eval(s.Value)
			if err != nil {
				return normalResult, err
			}
		}
		return execResult{returning: true, value: v}, nil
	case *ast.Class:
		return normalResult, e.execClass(s)
	case *ast.Parallel:
		return normalResult, e.execParallel(s)
	case *ast.Repeat:
		return e.execRepeat(s)
	case *ast.Delete:
		return normalResult, e.execDelete(s)
	default:
		return normalResult, fmt.Errorf("unhandled statement type %T", stmt)
	}
}

// execBlock runs statements in env, the environment active for their
// scope (spec.md §4.3's Block semantics), restoring the evaluator's
// current environment afterward even on error or early return.
func (e *Evaluator) execBlock(stmts []ast.Statement, env *runtime.Environment) (execResult, error) {
	previous := e.current
	e.current = env
	defer func() { e.current = previous }()

	for _, stmt := range stmts {
		result, err := e.exec(stmt)
		if err != nil {
			return normalResult, err
		}
		if result.returning {
			return result, nil
		}
	}
	return normalResult, nil
}

func (e *Evaluator) execIf(s *ast.If) (execResult, error) {
	cond, err := e.eval(s.Condition)
	if err != nil {
		return normalResult, err
	}
	if runtime.Truthy(cond) {
		return e.exec(s.Then)
	}
	if s.Else != nil {
		return e.exec(s.Else)
	}
	return normalResult, nil
}

func (e *Evaluator) execWhile(s *ast.While) (execResult, error) {
	for {
		cond, err := e.eval(s.Condition)
		if err != nil {
			return normalResult, err
		}
		if !runtime.Truthy(cond) {
			return normalResult, nil
		}
		result, err := e.exec(s.Body)
		if err != nil {
			return normalResult, err
		}
		if result.returning {
			return result, nil
		}
	}
}

// execClass implements spec.md §4.3's two-phase class binding: define the
// name to null first so methods can self-reference the class, then build
// the method table and patch the binding to the finished Class value.
func (e *Evaluator) execClass(s *ast.Class) error {
	e.current.Define(s.Name.Lexeme, runtime.Null{})

	methods := make(map[string]*Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = &Function{Decl: m, Closure: e.current}
	}

	class := &Class{Name: s.Name.Lexeme, Methods: methods}
	return e.current.Assign(s.Name.Lexeme, class)
}

func (e *Evaluator) execRepeat(s *ast.Repeat) (execResult, error) {
	countVal, err := e.eval(s.Count)
	if err != nil {
		return normalResult, err
	}
	f, ok := runtime.AsFloat(countVal)
	if !ok {
		return normalResult, newRuntimeError(s.Token.Line, "Repeat count must be a number")
	}
	count := int64(f) // truncate toward zero, per spec.md §4.3

	for i := int64(0); i < count; i++ {
		env := runtime.NewChild(e.current)
		result, err := e.execBlock(s.Statements, env)
		if err != nil {
			return normalResult, err
		}
		if result.returning {
			return result, nil
		}
	}
	return normalResult, nil
}

func (e *Evaluator) execDelete(s *ast.Delete) error {
	switch target := s.Target.(type) {
	case *ast.Variable:
		owner := e.current.OwningScope(target.Name.Lexeme)
		if owner == nil {
			return newRuntimeError(target.Name.Line, "Cannot delete undefined variable '%s'", target.Name.Lexeme)
		}
		owner.Define(target.Name.Lexeme, runtime.Null{})
		return nil
	case *ast.Get:
		obj, err := e.eval(target.Object)
		if err != nil {
			return err
		}
		instance, ok := obj.(*Instance)
		if !ok {
			return newRuntimeError(target.Name.Line, "Can only delete object properties")
		}
		if !instance.HasField(target.Name.Lexeme) {
			return newRuntimeError(target.Name.Line, "Cannot delete undefined property '%s'", target.Name.Lexeme)
		}
		instance.SetField(target.Name.Lexeme, runtime.Null{})
		return nil
	default:
		return newRuntimeError(0, "Invalid delete target")
	}
}

// Stringify implements spec.md §4.3's stringification rules.
func Stringify(v runtime.Value) string {
	return v.String()
}
