package decl

import (
	"fmt"
	"slices"
)

// References to values
type Ref[T any] struct {
	Value T
}

// Env[T] is one lexical layer of bindings, chained to its enclosing layer.
type Env[T any] struct {
	store map[string]*Ref[T]
	outer *Env[T]
	depth int
}

// NewEnv[T] creates a new environment nested within an outer one.
// If outer is nil then returns a fresh top-level environment.
func NewEnv[T any](outer *Env[T]) *Env[T] {
	e := &Env[T]{store: make(map[string]*Ref[T]), outer: outer}
	if outer != nil {
		e.depth = outer.depth + 1
	}
	return e
}

// GetRef retrieves a binding by name. It checks the current environment
// first, then recursively checks outer environments.
func (e *Env[T]) GetRef(name string) *Ref[T] {
	ref, ok := e.store[name]
	if (!ok || ref == nil) && e.outer != nil {
		ref = e.outer.GetRef(name)
	}
	return ref
}

func (e *Env[T]) Get(name string) (out T, found bool) {
	ref := e.GetRef(name)
	if ref != nil {
		out = ref.Value
		found = true
	}
	return
}

// GetLocal only looks at this layer.
func (e *Env[T]) GetLocal(name string) (out T, found bool) {
	if ref, ok := e.store[name]; ok && ref != nil {
		return ref.Value, true
	}
	return
}

func (e *Env[T]) Set(key string, value T) {
	e.store[key] = &Ref[T]{Value: value}
}

// Push creates a child layer.
func (e *Env[T]) Push() *Env[T] {
	return NewEnv(e)
}

// Outer returns the enclosing layer, nil for the root.
func (e *Env[T]) Outer() *Env[T] {
	return e.outer
}

// Depth is 0 for the root layer.
func (e *Env[T]) Depth() int {
	return e.depth
}

// String representation for debugging
func (e *Env[T]) String() string {
	return fmt.Sprintf("Env[T]{store: %v, depth: %d}", e.Keys(), e.depth)
}

// Keys returns the sorted keys in this environment (not including outer environments)
func (e *Env[T]) Keys() []string {
	keys := make([]string, 0, len(e.store))
	for k := range e.store {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
