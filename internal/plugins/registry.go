// Package plugins holds the plugin registry and the bundled plugin factories.
package plugins

import (
	"fmt"
	"sort"
	"sync"

	"stylecfg/internal/interfaces"
)

// Registry holds plugin factories by name
type Registry struct {
	mu        sync.RWMutex
	factories map[string]interfaces.PluginFactory
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]interfaces.PluginFactory),
	}
}

// Register adds a factory. Names are unique.
func (r *Registry) Register(factory interfaces.PluginFactory) error {
	if factory == nil {
		return fmt.Errorf("plugin factory cannot be nil")
	}
	name := factory.Name()
	if name == "" {
		return fmt.Errorf("plugin factory has no name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("plugin %q is already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// MustRegister is Register for package initialization
func (r *Registry) MustRegister(factories ...interfaces.PluginFactory) {
	for _, f := range factories {
		if err := r.Register(f); err != nil {
			panic(err)
		}
	}
}

// Lookup returns the factory registered under name
func (r *Registry) Lookup(name string) (interfaces.PluginFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.factories[name]
	return f, ok
}

// Names returns registered plugin names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtin returns a registry with every bundled plugin registered
func Builtin() *Registry {
	r := NewRegistry()
	r.MustRegister(
		&Typography{},
		&Forms{},
		&AspectRatio{},
	)
	return r
}
