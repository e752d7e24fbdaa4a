package world

import (
	"fmt"
	"sort"
	"sync"
)

// Manager provides thread-safe access to the loaded scenarios, indexed by ID.
type Manager struct {
	mu        sync.RWMutex
	scenarios map[string]*Scenario
}

// NewManager creates a Manager from the given scenarios.
//
// Postcondition: Returns a Manager with every scenario indexed by ID, or an
// error on duplicate IDs.
func NewManager(scenarios []*Scenario) (*Manager, error) {
	m := &Manager{scenarios: make(map[string]*Scenario, len(scenarios))}
	for _, s := range scenarios {
		if _, exists := m.scenarios[s.ID]; exists {
			return nil, fmt.Errorf("duplicate scenario ID: %q", s.ID)
		}
		m.scenarios[s.ID] = s
	}
	return m, nil
}

// Get returns the scenario with id.
func (m *Manager) Get(id string) (*Scenario, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.scenarios[id]
	return s, ok
}

// IDs returns every scenario ID in sorted order.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.scenarios))
	for id := range m.scenarios {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Count returns the number of scenarios.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.scenarios)
}
