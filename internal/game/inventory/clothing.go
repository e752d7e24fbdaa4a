// Package inventory provides clothing definitions, their loaders, and the
// worn-equipment view the body simulation reads warmth, coverage and flags
// from.
package inventory

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/biosim/internal/game/body"
)

// Flag is a capability tag on a clothing item.
type Flag string

const (
	FlagFit            Flag = "FIT"
	FlagPockets        Flag = "POCKETS"
	FlagHood           Flag = "HOOD"
	FlagCollar         Flag = "COLLAR"
	FlagClimateControl Flag = "CLIMATE_CONTROL"
	FlagRadProof       Flag = "RAD_PROOF"
	FlagRadResist      Flag = "RAD_RESIST"
	FlagFancy          Flag = "FANCY"
	FlagSuperFancy     Flag = "SUPER_FANCY"
	FlagWaterproof     Flag = "WATERPROOF"
	FlagSkintight      Flag = "SKINTIGHT"
)

var validFlags = map[Flag]struct{}{
	FlagFit: {}, FlagPockets: {}, FlagHood: {}, FlagCollar: {}, FlagClimateControl: {},
	FlagRadProof: {}, FlagRadResist: {}, FlagFancy: {}, FlagSuperFancy: {},
	FlagWaterproof: {}, FlagSkintight: {},
}

// ClothingDef defines the static properties of a wearable item loaded from YAML.
type ClothingDef struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Covers      []body.Part `yaml:"covers"`
	Coverage    int         `yaml:"coverage"`    // percent of each covered part
	Warmth      int         `yaml:"warmth"`
	Encumbrance int         `yaml:"encumbrance"`
	WindResist  int         `yaml:"wind_resist"` // percent
	EnvResist   int         `yaml:"env_resist"`
	Flags       []Flag      `yaml:"flags"`
}

// CoversPart reports whether the item covers p.
func (c *ClothingDef) CoversPart(p body.Part) bool {
	for _, cp := range c.Covers {
		if cp == p {
			return true
		}
	}
	return false
}

// HasFlag reports whether the item carries f.
func (c *ClothingDef) HasFlag(f Flag) bool {
	for _, x := range c.Flags {
		if x == f {
			return true
		}
	}
	return false
}

// Validate reports an error if the def is missing required fields or contains illegal values.
// Precondition: def is non-nil.
// Postcondition: Returns nil iff the def is well-formed.
func (c *ClothingDef) Validate() error {
	var errs []error
	if c.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if c.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if len(c.Covers) == 0 {
		errs = append(errs, errors.New("covers must name at least one part"))
	}
	for _, p := range c.Covers {
		if !p.Valid() {
			errs = append(errs, fmt.Errorf("covers %q is not a body part", p))
		}
	}
	if c.Coverage < 0 || c.Coverage > 100 {
		errs = append(errs, errors.New("coverage must be within [0, 100]"))
	}
	if c.WindResist < 0 || c.WindResist > 100 {
		errs = append(errs, errors.New("wind_resist must be within [0, 100]"))
	}
	if c.Warmth < 0 {
		errs = append(errs, errors.New("warmth must be >= 0"))
	}
	if c.Encumbrance < 0 {
		errs = append(errs, errors.New("encumbrance must be >= 0"))
	}
	for _, f := range c.Flags {
		if _, ok := validFlags[f]; !ok {
			errs = append(errs, fmt.Errorf("flag %q is not a known flag", f))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("clothing validation failed: %v", errs)
	}
	return nil
}

type clothingFile struct {
	Clothing []*ClothingDef `yaml:"clothing"`
}

// ParseClothing decodes a YAML document of the form `clothing: [...]`.
//
// Postcondition: all returned defs pass Validate.
func ParseClothing(data []byte) ([]*ClothingDef, error) {
	var f clothingFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("ParseClothing: %w", err)
	}
	for _, c := range f.Clothing {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("ParseClothing: invalid clothing %q: %w", c.ID, err)
		}
	}
	if f.Clothing == nil {
		f.Clothing = []*ClothingDef{}
	}
	return f.Clothing, nil
}

// LoadClothing reads all .yaml files in dir and returns the parsed ClothingDefs.
// Precondition: dir must be a readable directory.
// Postcondition: Returns non-nil slice and nil error on success; all returned defs pass Validate.
func LoadClothing(dir string) ([]*ClothingDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadClothing: cannot read directory %q: %w", dir, err)
	}
	out := []*ClothingDef{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadClothing: cannot read file %q: %w", path, err)
		}
		defs, err := ParseClothing(data)
		if err != nil {
			return nil, fmt.Errorf("LoadClothing: %q: %w", path, err)
		}
		out = append(out, defs...)
	}
	return out, nil
}
