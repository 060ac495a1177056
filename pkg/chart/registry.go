package chart

import (
	"errors"
	"sort"
	"sync"
)

// ErrChartTypeNotFound is returned when a chart type name is not registered.
var ErrChartTypeNotFound = errors.New("chart: chart type not registered")

// Registry maps chart type names ("line", "bar", ...) to constructors so
// declarative sources can name an engine.
type Registry struct {
	mu    sync.RWMutex
	types map[string]Constructor
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used by Register.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds a constructor to the default registry.
func Register(name string, ctor Constructor) {
	defaultRegistry.Register(name, ctor)
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]Constructor)}
}

// Register adds or replaces the constructor for name. A nil constructor
// removes the entry.
func (r *Registry) Register(name string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ctor == nil {
		delete(r.types, name)
		return
	}
	r.types[name] = ctor
}

// Lookup returns the constructor registered for name.
func (r *Registry) Lookup(name string) (Constructor, bool) {
	r.mu.RLock()
	ctor, ok := r.types[name]
	r.mu.RUnlock()
	return ctor, ok
}

// Names returns the registered type names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}
