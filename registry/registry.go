// Package registry keeps named, shared policy instances.
//
// Circuit breakers, bulkheads, and rate limiters only work when every call
// to a resource goes through the same instance. A Registry hands out that
// instance by name, creating it on first use:
//
//	breakers := registry.New(func(name string) *circuit.Breaker[string] {
//	    return circuit.New[string](circuit.Config{FailureThreshold: 5})
//	})
//	b := breakers.Get("billing-api")
package registry

import (
	"errors"
	"strings"
	"sync"
)

// MaxNameLength is the maximum allowed length for an instance name.
const MaxNameLength = 512

// Sentinel errors for registry operations.
var (
	ErrInvalidName = errors.New("registry: name is invalid")
	ErrNameTooLong = errors.New("registry: name exceeds max length")
)

// Registry is a get-or-create store of named instances. The zero value is
// not usable; create one with New.
type Registry[V any] struct {
	mu        sync.RWMutex
	instances map[string]V
	order     []string // Maintains creation order
	create    func(name string) V
}

// New creates a registry whose missing entries are built by create.
func New[V any](create func(name string) V) *Registry[V] {
	return &Registry[V]{
		instances: make(map[string]V),
		create:    create,
	}
}

// Get returns the instance registered under name, creating it on first
// use. Concurrent callers racing on the same name all receive the same
// instance.
func (r *Registry[V]) Get(name string) V {
	r.mu.RLock()
	v, ok := r.instances[name]
	r.mu.RUnlock()
	if ok {
		return v
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check: another caller may have created it while we upgraded
	// the lock.
	if v, ok := r.instances[name]; ok {
		return v
	}

	v = r.create(name)
	r.instances[name] = v
	r.order = append(r.order, name)
	return v
}

// Lookup returns the instance registered under name without creating one.
func (r *Registry[V]) Lookup(name string) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.instances[name]
	return v, ok
}

// Remove drops the instance registered under name. Idempotent.
func (r *Registry[V]) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.instances[name]; !ok {
		return
	}
	delete(r.instances, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Names returns the registered names in creation order.
func (r *Registry[V]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// ValidateName checks if a name is usable as a registry key.
func ValidateName(name string) error {
	if name == "" || strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}
	if len(name) > MaxNameLength {
		return ErrNameTooLong
	}
	if strings.ContainsAny(name, "\n\r") {
		return ErrInvalidName
	}
	return nil
}
