package events

import (
	"fmt"
	"sort"
	"sync"
)

// Factory builds a handler for one definition. client is the shared
// context every handler receives, name is the derived event name.
type Factory[C any] func(client C, name string, def Definition) (Handler, error)

// Factories maps handler keys to factories.
type Factories[C any] struct {
	mu sync.RWMutex
	m  map[string]Factory[C]
}

// NewFactories returns an empty set.
func NewFactories[C any]() *Factories[C] {
	return &Factories[C]{m: make(map[string]Factory[C])}
}

// Register adds a factory under key. Registering the same key twice or a
// nil factory panics, as both are programming errors caught at init.
func (f *Factories[C]) Register(key string, fn Factory[C]) {
	if fn == nil {
		panic("events: Register factory is nil")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, dup := f.m[key]; dup {
		panic(fmt.Sprintf("events: Register called twice for %q", key))
	}
	f.m[key] = fn
}

// Lookup returns the factory registered under key.
func (f *Factories[C]) Lookup(key string) (Factory[C], bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	fn, ok := f.m[key]
	return fn, ok
}

// Keys returns the registered keys, sorted.
func (f *Factories[C]) Keys() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	keys := make([]string, 0, len(f.m))
	for k := range f.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
