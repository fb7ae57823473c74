package evaluator

import (
	"fmt"
	"sync"

	"github.com/cwbudde/go-toy/internal/ast"
	"github.com/cwbudde/go-toy/internal/builtins"
	"github.com/cwbudde/go-toy/internal/runtime"
)

// Callable is the polymorphic capability set from spec.md §3: arity,
// call, and a display form for stringification. Every callable runtime
// value also satisfies runtime.Value (Type/String).
type Callable interface {
	runtime.Value
	Arity() int
	Call(ev *Evaluator, args []runtime.Value, line int) (runtime.Value, error)
}

// Function is a user-declared function or a method, carrying its AST body
// and the environment captured at its declaration site (spec.md §3).
type Function struct {
	Decl    *ast.Function
	Closure *runtime.Environment
}

func (f *Function) Type() string { return "FUNCTION" }
func (f *Function) String() string {
	return fmt.Sprintf("<function %s>", f.Decl.Name.Lexeme)
}
func (f *Function) Arity() int { return len(f.Decl.Params) }

// Call creates a fresh child scope of Closure, binds parameters
// positionally, and executes the body, catching its Return signal.
func (f *Function) Call(ev *Evaluator, args []runtime.Value, line int) (runtime.Value, error) {
	env := runtime.NewChild(f.Closure)
	for i, param := range f.Decl.Params {
		env.Define(param.Lexeme, args[i])
	}
	result, err := ev.execBlock(f.Decl.Body, env)
	if err != nil {
		return nil, err
	}
	if result.returning {
		return result.value, nil
	}
	return runtime.Null{}, nil
}

// Bind produces a method callable whose body sees `this` bound to instance,
// per spec.md §4.3's "Method binding": a fresh scope whose parent is the
// function's captured environment extended with `this`.
func (f *Function) Bind(instance *Instance) *Function {
	env := runtime.NewChild(f.Closure)
	env.Define("this", instance)
	return &Function{Decl: f.Decl, Closure: env}
}

// Lambda is an anonymous callable whose body is a single expression
// (spec.md §3/§4.3).
type Lambda struct {
	Decl    *ast.Lambda
	Closure *runtime.Environment
}

func (l *Lambda) Type() string   { return "FUNCTION" }
func (l *Lambda) String() string { return "<lambda>" }
func (l *Lambda) Arity() int     { return len(l.Decl.Params) }

func (l *Lambda) Call(ev *Evaluator, args []runtime.Value, line int) (runtime.Value, error) {
	env := runtime.NewChild(l.Closure)
	for i, param := range l.Decl.Params {
		env.Define(param.Lexeme, args[i])
	}
	return ev.evalExprIn(l.Decl.Body, env)
}

// Class is a callable constructor holding a flat method table (spec.md
// §3: "no superclass chain is defined at this level").
type Class struct {
	Name    string
	Methods map[string]*Function
}

func (c *Class) Type() string   { return "CLASS" }
func (c *Class) String() string { return fmt.Sprintf("<class %s>", c.Name) }

// FindMethod looks up a method by name; a single-level map lookup per
// spec.md §3.
func (c *Class) FindMethod(name string) (*Function, bool) {
	m, ok := c.Methods[name]
	return m, ok
}

// Arity reports init's arity if the class defines one, else zero.
func (c *Class) Arity() int {
	if initFn, ok := c.FindMethod("init"); ok {
		return initFn.Arity()
	}
	return 0
}

// Call constructs a fresh Instance and, if the class defines "init",
// invokes it bound to the new instance (spec.md §4.3's "Constructor").
func (c *Class) Call(ev *Evaluator, args []runtime.Value, line int) (runtime.Value, error) {
	instance := &Instance{Class: c, Fields: make(map[string]runtime.Value)}
	if initFn, ok := c.FindMethod("init"); ok {
		if _, err := initFn.Bind(instance).Call(ev, args, line); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Extension wraps a host-registered native function (spec.md §3's
// "extension callable" variant, spec.md §6's registry contract). Calling
// it runs the host's Go closure directly; no Toy-level environment is
// created.
type Extension struct {
	Info *builtins.Info
}

// NewExtension wraps a registered extension as a callable runtime value.
func NewExtension(info *builtins.Info) *Extension { return &Extension{Info: info} }

func (x *Extension) Type() string   { return "FUNCTION" }
func (x *Extension) String() string { return fmt.Sprintf("<extension %s>", x.Info.Name) }
func (x *Extension) Arity() int     { return x.Info.Arity }

func (x *Extension) Call(ev *Evaluator, args []runtime.Value, line int) (runtime.Value, error) {
	v, err := x.Info.Fn(args)
	if err != nil {
		return nil, newRuntimeError(line, "%s", err.Error())
	}
	return v, nil
}

// Instance is a value created by calling a Class (spec.md §3). Fields are
// guarded by a mutex for the same reason Environment is: `parallel`
// branches may share an instance.
type Instance struct {
	Class  *Class
	mu     sync.RWMutex
	Fields map[string]runtime.Value
}

func (i *Instance) Type() string   { return "INSTANCE" }
func (i *Instance) String() string { return fmt.Sprintf("<instance of %s>", i.Class.Name) }

// GetField reads a field, reporting whether it exists.
func (i *Instance) GetField(name string) (runtime.Value, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	v, ok := i.Fields[name]
	return v, ok
}

// SetField writes a field unconditionally (property writes always write
// to the fields map, per spec.md §3).
func (i *Instance) SetField(name string, val runtime.Value) {
	i.mu.Lock()
	i.Fields[name] = val
	i.mu.Unlock()
}

// HasField reports whether name is present in Fields.
func (i *Instance) HasField(name string) bool {
	_, ok := i.GetField(name)
	return ok
}
