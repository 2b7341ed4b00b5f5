package capability

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Lookuper resolves capabilities by name.
type Lookuper interface {
	Lookup(name string) (Capability, bool)
}

// Registry is an in-memory, concurrency-safe table of named capabilities.
type Registry struct {
	mu    sync.RWMutex
	items map[string]Capability
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]Capability)}
}

// Register adds a capability under name. Surrounding whitespace in names is
// ignored here and in Lookup.
func (r *Registry) Register(name string, c Capability) error {
	if r == nil {
		return errors.New("capability registry is nil")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("capability name required")
	}
	if c == nil {
		return fmt.Errorf("capability %s: nil implementation", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[name]; exists {
		return fmt.Errorf("capability already registered: %s", name)
	}
	r.items[name] = c
	return nil
}

// Lookup returns the capability registered under name.
func (r *Registry) Lookup(name string) (Capability, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.items[strings.TrimSpace(name)]
	return c, ok
}

// Names lists the registered capability names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
