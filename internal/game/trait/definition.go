// Package trait holds the static catalog of traits and mutations: their cost,
// conflicts, prerequisites, flat stat effects and thermal contributions.
package trait

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ID identifies a trait. IDs that carry behavior beyond their catalog data
// are declared as constants in ids.go.
type ID string

// StatMods are flat attribute deltas a trait applies every stat reset.
type StatMods struct {
	Str   int `yaml:"str"`
	Dex   int `yaml:"dex"`
	Int   int `yaml:"int"`
	Per   int `yaml:"per"`
	Dodge int `yaml:"dodge"`
	Hit   int `yaml:"hit"`
	Speed int `yaml:"speed"`
}

// IsZero reports whether m changes nothing.
func (m StatMods) IsZero() bool { return m == StatMods{} }

// Warmth is the pair of temperature contributions a mutation provides:
// Warm applies while the part is already above normal, Cold otherwise.
type Warmth struct {
	Warm int `yaml:"warm"`
	Cold int `yaml:"cold"`
}

// Def is the static definition of a trait, loaded from YAML.
type Def struct {
	ID          ID       `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Points      int      `yaml:"points"`
	Mutable     bool     `yaml:"mutable"` // may appear through spontaneous mutation
	Cancels     []ID     `yaml:"cancels"`
	Prereqs     []ID     `yaml:"prereqs"`
	Replaces    []ID     `yaml:"replaces"`
	Stats       StatMods `yaml:"stats"`
	MissReason  string   `yaml:"miss_reason"`
	Warmth      Warmth   `yaml:"warmth"`
}

// Registry holds all known trait Defs keyed by ID.
// A populated Registry is read-only and safe for concurrent readers.
type Registry struct {
	defs map[ID]*Def
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[ID]*Def)}
}

// Register adds def, overwriting any existing entry with the same ID.
// Precondition: def must not be nil and def.ID must not be empty.
func (r *Registry) Register(def *Def) {
	r.defs[def.ID] = def
}

// Get returns the Def for id, or (nil, false) if not found.
func (r *Registry) Get(id ID) (*Def, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// Name returns the display name of id, falling back to the raw ID.
func (r *Registry) Name(id ID) string {
	if d, ok := r.defs[id]; ok && d.Name != "" {
		return d.Name
	}
	return string(id)
}

// All returns every Def sorted by ID.
func (r *Registry) All() []*Def {
	out := make([]*Def, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Conflicts reports whether a and b cancel each other in either direction.
func (r *Registry) Conflicts(a, b ID) bool {
	if d, ok := r.defs[a]; ok && contains(d.Cancels, b) {
		return true
	}
	if d, ok := r.defs[b]; ok && contains(d.Cancels, a) {
		return true
	}
	return false
}

// Validate checks that every cross reference resolves and no trait cancels itself.
//
// Postcondition: returns nil or an error listing every violation.
func (r *Registry) Validate() error {
	var errs []string
	for _, d := range r.All() {
		for _, ref := range [][]ID{d.Cancels, d.Prereqs, d.Replaces} {
			for _, id := range ref {
				if _, ok := r.defs[id]; !ok {
					errs = append(errs, fmt.Sprintf("%s references unknown trait %s", d.ID, id))
				}
				if id == d.ID {
					errs = append(errs, fmt.Sprintf("%s references itself", d.ID))
				}
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("trait registry invalid:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func contains(ids []ID, id ID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

type catalogFile struct {
	Traits []*Def `yaml:"traits"`
}

// Parse decodes a YAML catalog document of the form `traits: [...]` into a Registry.
//
// Postcondition: returns a validated Registry or an error.
func Parse(data []byte) (*Registry, error) {
	var f catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing trait catalog: %w", err)
	}
	reg := NewRegistry()
	for _, d := range f.Traits {
		if d.ID == "" {
			return nil, fmt.Errorf("parsing trait catalog: trait with empty id")
		}
		if _, dup := reg.defs[d.ID]; dup {
			return nil, fmt.Errorf("parsing trait catalog: duplicate trait %s", d.ID)
		}
		reg.Register(d)
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return reg, nil
}

// LoadFile reads and parses the trait catalog at path.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return Parse(data)
}
