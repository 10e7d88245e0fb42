package rules

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages rule metadata registration and lookup.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Metadata
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Metadata)}
}

// Register adds a rule's metadata to the registry.
// Panics if a rule with the same code is already registered.
func (r *Registry) Register(m Metadata) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.rules[m.Code]; exists {
		panic(fmt.Sprintf("rule %q already registered", m.Code))
	}
	r.rules[m.Code] = m
}

// Get retrieves metadata by code. The second result is false when the
// code is not a registered rule.
func (r *Registry) Get(code string) (Metadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.rules[code]
	return m, ok
}

// Has returns true if the code names a registered rule.
func (r *Registry) Has(code string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rules[code]
	return ok
}

// All returns all registered metadata sorted by code.
func (r *Registry) All() []Metadata {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]Metadata, 0, len(r.rules))
	for _, m := range r.rules {
		result = append(result, m)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result
}

// Codes returns all registered rule codes sorted alphabetically.
func (r *Registry) Codes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codes := make([]string, 0, len(r.rules))
	for code := range r.rules {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry that rule packages
// register into at init time.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds metadata to the default registry.
func Register(m Metadata) {
	defaultRegistry.Register(m)
}

// Known reports whether the code (before alias redirection) names a
// registered rule.
func Known(code string) bool {
	return defaultRegistry.Has(code)
}

// Lookup retrieves metadata for a code from the default registry.
func Lookup(code string) (Metadata, bool) {
	return defaultRegistry.Get(code)
}
