package inventory

import (
	"fmt"
	"sort"
)

// Registry holds all loaded clothing definitions indexed by ID.
type Registry struct {
	clothing map[string]*ClothingDef
}

// NewRegistry returns an empty Registry.
//
// Postcondition: all internal maps are initialised.
func NewRegistry() *Registry {
	return &Registry{clothing: make(map[string]*ClothingDef)}
}

// RegisterClothing adds c to the registry.
//
// Precondition:  c must not be nil.
// Postcondition: Clothing(c.ID) returns (c, true); returns error if c.ID already registered.
func (r *Registry) RegisterClothing(c *ClothingDef) error {
	if _, exists := r.clothing[c.ID]; exists {
		return fmt.Errorf("inventory: Registry.RegisterClothing: clothing ID %q already registered", c.ID)
	}
	r.clothing[c.ID] = c
	return nil
}

// Clothing returns the ClothingDef for id and whether it was found.
func (r *Registry) Clothing(id string) (*ClothingDef, bool) {
	c, ok := r.clothing[id]
	return c, ok
}

// AllClothing returns every registered def sorted by ID.
//
// Postcondition: len(result) == number of registered defs.
func (r *Registry) AllClothing() []*ClothingDef {
	out := make([]*ClothingDef, 0, len(r.clothing))
	for _, c := range r.clothing {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
