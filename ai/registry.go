package ai

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// BackendFactory constructs an Embedder. Factories are invoked at most once
// per registered name; the resulting handle is cached for the remainder of
// the process.
type BackendFactory func() (Embedder, error)

// Registry maps user-facing backend names to embedding backends and caches
// loaded handles by name. Handles are never mutated after insertion, so
// concurrent readers are safe; concurrent first-time loads of the same name
// resolve first-writer-wins under the registry lock.
type Registry struct {
	mu        sync.Mutex
	factories map[string]BackendFactory
	handles   map[string]Embedder
	logger    *slog.Logger
}

// NewRegistry creates an empty backend registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]BackendFactory),
		handles:   make(map[string]Embedder),
		logger:    slog.Default().With("component", "backend-registry"),
	}
}

// Register makes a backend available under the given name.
// Registering an existing name replaces its factory but keeps an already
// loaded handle.
func (r *Registry) Register(name string, factory BackendFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Load returns the embedding backend registered under name, constructing it
// on first use. Repeated calls with the same name return the same handle
// without reloading. Unknown names return ErrUnknownBackend.
func (r *Registry) Load(name string) (Embedder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if handle, ok := r.handles[name]; ok {
		return handle, nil
	}

	factory, ok := r.factories[name]
	if !ok {
		r.logger.Error("backend not registered", "name", name)
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}

	r.logger.Info("loading embedding backend", "name", name)
	handle, err := factory()
	if err != nil {
		return nil, fmt.Errorf("loading backend %q: %w", name, err)
	}

	r.handles[name] = handle
	return handle, nil
}

// Names returns the registered backend names, sorted for stable display.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clear drops all cached handles and registered factories.
// Intended for tests that need a fresh process-like state.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories = make(map[string]BackendFactory)
	r.handles = make(map[string]Embedder)
}
