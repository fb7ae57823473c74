// Package builtins implements the host-extension registry contract from
// spec.md §6: a mutex-guarded table the driver populates with native
// callables before the evaluator seeds them into its global scope.
package builtins

import (
	"sort"
	"sync"

	"github.com/cwbudde/go-toy/internal/runtime"
)

// Category groups registered extensions for listing/introspection
// purposes; it carries no behavior of its own.
type Category string

const (
	// CategoryIO covers host-provided input/output extensions.
	CategoryIO Category = "io"
	// CategorySystem covers everything else a host chooses to expose.
	CategorySystem Category = "system"
)

// Func is the native implementation behind an extension callable: it
// receives already-evaluated arguments and returns a runtime value or an
// error, mirroring spec.md §3's "extension callable" variant.
type Func func(args []runtime.Value) (runtime.Value, error)

// Info is the metadata describing one registered extension.
type Info struct {
	Name     string
	Arity    int
	Category Category
	Fn       Func
}

// Registry holds every extension the host has registered, keyed by its
// exact (case-sensitive) name — Toy, unlike the teacher language, does
// not fold identifier case.
type Registry struct {
	mu         sync.RWMutex
	functions  map[string]*Info
	categories map[Category][]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		functions:  make(map[string]*Info),
		categories: make(map[Category][]string),
	}
}

// Register adds or replaces the extension named name.
func (r *Registry) Register(name string, arity int, category Category, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.functions[name]; !exists {
		r.categories[category] = append(r.categories[category], name)
	}
	r.functions[name] = &Info{Name: name, Arity: arity, Category: category, Fn: fn}
}

// Get looks up an extension by name.
func (r *Registry) Get(name string) (*Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.functions[name]
	return info, ok
}

// All returns every registered extension, sorted by name for
// deterministic globals seeding.
func (r *Registry) All() []*Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Info, 0, len(r.functions))
	for _, info := range r.functions {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// ByCategory returns the extensions registered under category, sorted by
// name.
func (r *Registry) ByCategory(category Category) []*Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := r.categories[category]
	result := make([]*Info, 0, len(names))
	for _, name := range names {
		if info, ok := r.functions[name]; ok {
			result = append(result, info)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}
