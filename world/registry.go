package world

import (
	"errors"
	"fmt"
	"iter"
)

// ErrNotRegistered is returned when a name or id is looked up in a Registry
// that does not hold it. Compiled-in names missing from a registry indicate a
// broken setup, so callers are expected to treat a wrapped ErrNotRegistered
// as fatal.
var ErrNotRegistered = errors.New("not registered")

// Registry is a compact mapping from human-readable names to numeric ids and
// from ids to definitions. Ids are assigned sequentially in registration
// order. A Registry is built once during world initialisation and must be
// treated as immutable afterwards, at which point it is safe for concurrent
// reads.
type Registry[T any] struct {
	byName map[string]uint32
	defs   []T
	names  []string
}

// NewRegistry creates an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{byName: make(map[string]uint32)}
}

// Register adds a definition under the name passed and returns the id
// assigned to it. Registering a name twice returns an error.
func (r *Registry[T]) Register(name string, def T) (uint32, error) {
	if _, ok := r.byName[name]; ok {
		return 0, fmt.Errorf("registry: %q already registered", name)
	}
	id := uint32(len(r.defs))
	r.byName[name] = id
	r.defs = append(r.defs, def)
	r.names = append(r.names, name)
	return id, nil
}

// ByName returns the id and definition registered under the name passed.
func (r *Registry[T]) ByName(name string) (uint32, T, error) {
	id, ok := r.byName[name]
	if !ok {
		var zero T
		return 0, zero, fmt.Errorf("registry: %q: %w", name, ErrNotRegistered)
	}
	return id, r.defs[id], nil
}

// ByID returns the definition registered under the id passed.
func (r *Registry[T]) ByID(id uint32) (T, error) {
	if int(id) >= len(r.defs) {
		var zero T
		return zero, fmt.Errorf("registry: id %d: %w", id, ErrNotRegistered)
	}
	return r.defs[id], nil
}

// Name returns the name the id passed was registered under, or an empty
// string for an unknown id.
func (r *Registry[T]) Name(id uint32) string {
	if int(id) >= len(r.names) {
		return ""
	}
	return r.names[id]
}

// Len returns the number of definitions registered.
func (r *Registry[T]) Len() int { return len(r.defs) }

// All yields every (id, definition) pair in registration order.
func (r *Registry[T]) All() iter.Seq2[uint32, T] {
	return func(yield func(uint32, T) bool) {
		for id, def := range r.defs {
			if !yield(uint32(id), def) {
				return
			}
		}
	}
}
