package scenario

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gobwas/glob"
)

// Registry holds scenarios in registration order.
type Registry struct {
	mu        sync.RWMutex
	scenarios []Scenario
	index     map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register adds s. Names must be unique and non-empty.
func (r *Registry) Register(s Scenario) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if s.Run == nil {
		return fmt.Errorf("scenario %q has no run function", s.Name)
	}
	if _, exists := r.index[s.Name]; exists {
		return fmt.Errorf("scenario %q already registered", s.Name)
	}

	r.index[s.Name] = len(r.scenarios)
	r.scenarios = append(r.scenarios, s)
	return nil
}

// Get returns the scenario called name.
func (r *Registry) Get(name string) (Scenario, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[name]
	if !ok {
		return Scenario{}, false
	}
	return r.scenarios[i], true
}

// All returns every scenario in registration order.
func (r *Registry) All() []Scenario {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Scenario(nil), r.scenarios...)
}

// Names returns the sorted scenario names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.scenarios))
	for _, s := range r.scenarios {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names
}

// Match returns the scenarios whose name matches any of patterns, in
// registration order. No patterns match everything.
func (r *Registry) Match(patterns ...string) ([]Scenario, error) {
	if len(patterns) == 0 {
		return r.All(), nil
	}

	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid scenario pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}

	var matched []Scenario
	for _, s := range r.All() {
		for _, g := range globs {
			if g.Match(s.Name) {
				matched = append(matched, s)
				break
			}
		}
	}
	return matched, nil
}
