package evaluator

import (
	"github.com/cwbudde/go-toy/internal/ast"
	"github.com/cwbudde/go-toy/internal/runtime"
	"github.com/cwbudde/go-toy/internal/token"
)

func (e *Evaluator) eval(expr ast.Expression) (runtime.Value, error) {
	switch ex := expr.(type) {
	case *ast.Literal:
		return literalValue(ex), nil
	case *ast.Variable:
		v, ok := e.current.Get(ex.Name.Lexeme)
		if !ok {
			return nil, newRuntimeError(ex.Name.Line, "Undefined variable '%s'", ex.Name.Lexeme)
		}
		return v, nil
	case *ast.Assign:
		v, err := e.eval(ex.Value)
		if err != nil {
			return nil, err
		}
		if err := e.current.Assign(ex.Name.Lexeme, v); err != nil {
			return nil, newRuntimeError(ex.Name.Line, "Undefined variable '%s'", ex.Name.Lexeme)
		}
		return v, nil
	case *ast.Binary:
		return e.evalBinary(ex)
	case *ast.Unary:
		return e.evalUnary(ex)
	case *ast.Call:
		return e.evalCall(ex)
	case *ast.Get:
		return e.evalGet(ex)
	case *ast.Set:
		return e.evalSet(ex)
	case *ast.Lambda:
		return &Lambda{Decl: ex, Closure: e.current}, nil
	default:
		return nil, newRuntimeError(0, "unhandled expression type %T", expr)
	}
}

// evalExprIn evaluates expr with env temporarily swapped in as current,
// used for a lambda's single-expression body (spec.md §4.3).
func (e *Evaluator) evalExprIn(expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	previous := e.current
	e.current = env
	defer func() { e.current = previous }()
	return e.eval(expr)
}

func literalValue(lit *ast.Literal) runtime.Value {
	switch v := lit.Value.(type) {
	case nil:
		return runtime.Null{}
	case bool:
		return runtime.Bool(v)
	case int64:
		return runtime.Int(v)
	case float64:
		return runtime.Float(v)
	case string:
		return runtime.Str(v)
	default:
		return runtime.Null{}
	}
}

func (e *Evaluator) evalCall(ex *ast.Call) (runtime.Value, error) {
	callee, err := e.eval(ex.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]runtime.Value, len(ex.Args))
	for i, a := range ex.Args {
		v, err := e.eval(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, newRuntimeError(ex.CloseParen.Line, "Can only call functions and classes")
	}
	if len(args) != fn.Arity() {
		return nil, newRuntimeError(ex.CloseParen.Line,
			"Expected %d argument(s) but got %d", fn.Arity(), len(args))
	}
	return fn.Call(e, args, ex.CloseParen.Line)
}

func (e *Evaluator) evalGet(ex *ast.Get) (runtime.Value, error) {
	obj, err := e.eval(ex.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*Instance)
	if !ok {
		return nil, newRuntimeError(ex.Name.Line, "Only instances have properties")
	}
	if v, ok := instance.GetField(ex.Name.Lexeme); ok {
		return v, nil
	}
	if method, ok := instance.Class.FindMethod(ex.Name.Lexeme); ok {
		return method.Bind(instance), nil
	}
	return nil, newRuntimeError(ex.Name.Line, "Undefined property '%s'", ex.Name.Lexeme)
}

func (e *Evaluator) evalSet(ex *ast.Set) (runtime.Value, error) {
	obj, err := e.eval(ex.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*Instance)
	if !ok {
		return nil, newRuntimeError(ex.Name.Line, "Only instances have fields")
	}
	v, err := e.eval(ex.Value)
	if err != nil {
		return nil, err
	}
	instance.SetField(ex.Name.Lexeme, v)
	return v, nil
}

func (e *Evaluator) evalUnary(ex *ast.Unary) (runtime.Value, error) {
	right, err := e.eval(ex.Right)
	if err != nil {
		return nil, err
	}
	switch ex.Operator.Kind {
	case token.MINUS:
		f, ok := runtime.AsFloat(right)
		if !ok {
			return nil, newRuntimeError(ex.Operator.Line, "Operand must be a number")
		}
		return runtime.NumberFromFloat(-f), nil
	case token.BANG:
		return runtime.Bool(!runtime.Truthy(right)), nil
	default:
		return nil, newRuntimeError(ex.Operator.Line, "Unknown unary operator '%s'", ex.Operator.Lexeme)
	}
}
