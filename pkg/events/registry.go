package events

import (
	"sort"
	"sync"
)

// Registry holds the handler bound to each event name. Setting a name
// that already exists replaces its handler.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Descriptor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Descriptor)}
}

// Set stores d under d.Name and returns the descriptor it replaced.
func (r *Registry) Set(d Descriptor) (Descriptor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, ok := r.entries[d.Name]
	r.entries[d.Name] = d
	return prev, ok
}

// Get returns the descriptor bound to name.
func (r *Registry) Get(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.entries[name]
	return d, ok
}

// Delete removes name.
func (r *Registry) Delete(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, name)
}

// Names returns the bound event names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for n := range r.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of bound events.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
