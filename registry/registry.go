package registry

import (
	"sync"

	"github.com/vesselworks/wasm-bundle/unit"
)

// Registry is the shared unit registry: the host's own type-resolution
// scope. Contexts fall back to it for names their bundle does not define,
// so shared/platform units resolve identically inside and outside a bundle.
//
// Registry is thread-safe.
type Registry struct {
	mu    sync.RWMutex
	units map[string]*unit.Unit
}

// New creates an empty shared registry
func New() *Registry {
	return &Registry{
		units: make(map[string]*unit.Unit),
	}
}

// Register adds a unit under its name.
// Register overwrites any existing unit with the same name.
func (r *Registry) Register(u *unit.Unit) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.units[u.Name] = u
}

// Lookup returns the unit registered under name, or nil if not found
func (r *Registry) Lookup(name string) *unit.Unit {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.units[name]
}

// Len returns the number of registered units
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.units)
}
