package evaluator

import (
	"math"

	"github.com/cwbudde/go-toy/internal/ast"
	"github.com/cwbudde/go-toy/internal/runtime"
	"github.com/cwbudde/go-toy/internal/token"
)

// evalBinary implements spec.md §4.3's binary operator semantics. `&&` and
// `||` short-circuit and are handled before the right operand is evaluated;
// every other operator evaluates both sides first.
func (e *Evaluator) evalBinary(ex *ast.Binary) (runtime.Value, error) {
	if ex.Operator.Kind == token.AND || ex.Operator.Kind == token.OR {
		return e.evalLogical(ex)
	}

	left, err := e.eval(ex.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.eval(ex.Right)
	if err != nil {
		return nil, err
	}

	switch ex.Operator.Kind {
	case token.PLUS:
		return evalPlus(left, right, ex.Operator.Line)
	case token.MINUS:
		return arithmetic(left, right, ex.Operator.Line, func(a, b float64) float64 { return a - b })
	case token.STAR:
		return arithmetic(left, right, ex.Operator.Line, func(a, b float64) float64 { return a * b })
	case token.SLASH:
		return evalDivide(left, right, ex.Operator.Line)
	case token.PERCENT:
		return evalModulo(left, right, ex.Operator.Line)
	case token.GREATER:
		return compare(left, right, ex.Operator.Line, func(a, b float64) bool { return a > b })
	case token.GE:
		return compare(left, right, ex.Operator.Line, func(a, b float64) bool { return a >= b })
	case token.LESS:
		return compare(left, right, ex.Operator.Line, func(a, b float64) bool { return a < b })
	case token.LE:
		return compare(left, right, ex.Operator.Line, func(a, b float64) bool { return a <= b })
	case token.EQ:
		return runtime.Bool(runtime.Equal(left, right)), nil
	case token.NEQ:
		return runtime.Bool(!runtime.Equal(left, right)), nil
	default:
		return nil, newRuntimeError(ex.Operator.Line, "Unknown binary operator '%s'", ex.Operator.Lexeme)
	}
}

// evalLogical short-circuits: `&&` returns its left side when falsy without
// evaluating the right, and symmetrically for `||`.
func (e *Evaluator) evalLogical(ex *ast.Binary) (runtime.Value, error) {
	left, err := e.eval(ex.Left)
	if err != nil {
		return nil, err
	}

	if ex.Operator.Kind == token.OR {
		if runtime.Truthy(left) {
			return left, nil
		}
	} else {
		if !runtime.Truthy(left) {
			return left, nil
		}
	}

	return e.eval(ex.Right)
}

// evalPlus implements spec.md §4.3's Open Question resolution: if either
// operand is a string, stringify both sides and concatenate; otherwise
// require both to be numeric.
func evalPlus(left, right runtime.Value, line int) (runtime.Value, error) {
	_, leftStr := left.(runtime.Str)
	_, rightStr := right.(runtime.Str)
	if leftStr || rightStr {
		return runtime.Str(Stringify(left) + Stringify(right)), nil
	}
	return arithmetic(left, right, line, func(a, b float64) float64 { return a + b })
}

func arithmetic(left, right runtime.Value, line int, op func(a, b float64) float64) (runtime.Value, error) {
	lf, rf, err := numericOperands(left, right, line)
	if err != nil {
		return nil, err
	}
	return runtime.NumberFromFloat(op(lf, rf)), nil
}

func evalDivide(left, right runtime.Value, line int) (runtime.Value, error) {
	lf, rf, err := numericOperands(left, right, line)
	if err != nil {
		return nil, err
	}
	if rf == 0 {
		return nil, newRuntimeError(line, "Division by zero")
	}
	return runtime.NumberFromFloat(lf / rf), nil
}

func evalModulo(left, right runtime.Value, line int) (runtime.Value, error) {
	lf, rf, err := numericOperands(left, right, line)
	if err != nil {
		return nil, err
	}
	if rf == 0 {
		return nil, newRuntimeError(line, "Modulo by zero")
	}
	return runtime.NumberFromFloat(math.Mod(lf, rf)), nil
}

func compare(left, right runtime.Value, line int, op func(a, b float64) bool) (runtime.Value, error) {
	lf, rf, err := numericOperands(left, right, line)
	if err != nil {
		return nil, err
	}
	return runtime.Bool(op(lf, rf)), nil
}

// numericOperands coerces both operands to numbers, leniently parsing a
// string operand as a number when it isn't already numeric (spec.md §4.3).
func numericOperands(left, right runtime.Value, line int) (float64, float64, error) {
	lf, ok := runtime.AsFloat(left)
	if !ok {
		return 0, 0, newRuntimeError(line, "Operands must be numbers")
	}
	rf, ok := runtime.AsFloat(right)
	if !ok {
		return 0, 0, newRuntimeError(line, "Operands must be numbers")
	}
	return lf, rf, nil
}
