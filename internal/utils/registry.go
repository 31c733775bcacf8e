package utils

import (
	"fmt"
	"sort"
	"sync"
)

// Registry is a thread-safe, named lookup table. Keys are registered once.
type Registry[V any] struct {
	mu    sync.RWMutex
	name  string
	items map[string]V
}

// NewRegistry creates an empty registry; name is used in error messages
func NewRegistry[V any](name string) *Registry[V] {
	return &Registry[V]{
		name:  name,
		items: make(map[string]V),
	}
}

// Register adds value under key, refusing empty and duplicate keys
func (r *Registry[V]) Register(key string, value V) error {
	if err := NotEmpty(r.name + " key")(key); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[key]; exists {
		return fmt.Errorf("%s '%s' is already registered", r.name, key)
	}
	r.items[key] = value
	return nil
}

// MustRegister is Register for package initialisation
func (r *Registry[V]) MustRegister(key string, value V) {
	if err := r.Register(key, value); err != nil {
		panic(err)
	}
}

// Get retrieves an item from the registry
func (r *Registry[V]) Get(key string) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, exists := r.items[key]
	return value, exists
}

// GetOrError retrieves an item or explains which keys are known
func (r *Registry[V]) GetOrError(key string) (V, error) {
	if value, ok := r.Get(key); ok {
		return value, nil
	}
	var zero V
	return zero, fmt.Errorf("unknown %s '%s' (known: %v)", r.name, key, r.List())
}

// List returns the registered keys sorted
func (r *Registry[V]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.items))
	for key := range r.items {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Size returns the number of items in the registry
func (r *Registry[V]) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}
