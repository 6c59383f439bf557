// Package registry holds the thread-safe mapping from hotkey identity to
// bound action, with conflict detection.
package registry

import (
	"errors"
	"sync"

	"keygrab/keys"
)

// ErrConflict is returned by Register when the identity is already bound.
var ErrConflict = errors.New("hotkey combination already registered")

// ErrNilAction is returned by Register for a binding without an action.
var ErrNilAction = errors.New("hotkey action is required")

// Binding is a registered hotkey: the combination, the action to run and
// display metadata. Bindings are owned by the registry that holds them;
// Snapshot returns copies.
type Binding struct {
	VK          uint32
	Mods        keys.Mask
	Action      func()
	Description string
	Enabled     bool
}

// ID returns the canonical identity of the binding's combination.
func (b Binding) ID() keys.ID {
	return keys.Combine(b.VK, b.Mods)
}

// Registry is a mutex-guarded map keyed by combination identity.
// All methods are safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	bindings map[keys.ID]Binding
}

func New() *Registry {
	return &Registry{bindings: make(map[keys.ID]Binding)}
}

// Register inserts a binding. It fails without mutating anything if the
// binding has no action or its identity is already present.
func (r *Registry) Register(b Binding) error {
	if b.Action == nil {
		return ErrNilAction
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	id := b.ID()
	if _, exists := r.bindings[id]; exists {
		return ErrConflict
	}
	r.bindings[id] = b
	return nil
}

// Unregister removes the binding for id, reporting whether it was present.
func (r *Registry) Unregister(id keys.ID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.bindings[id]; !exists {
		return false
	}
	delete(r.bindings, id)
	return true
}

// Conflict reports whether id is already bound.
func (r *Registry) Conflict(id keys.ID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.bindings[id]
	return exists
}

// Snapshot returns an independent copy of the current bindings, safe to
// iterate without holding any lock. Order is unspecified.
func (r *Registry) Snapshot() []Binding {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Binding, 0, len(r.bindings))
	for _, b := range r.bindings {
		out = append(out, b)
	}
	return out
}

// Clear empties the registry.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.bindings)
}

// Len returns the number of registered bindings.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bindings)
}
