// Package content assembles the immutable rules catalog the simulation is
// built on: traits, effects, legacy diseases, morale type names and
// clothing. Catalogs ship embedded and may be overridden from a directory;
// every document is checked against its JSON schema before it is decoded.
package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/biosim/internal/game/effect"
	"github.com/cory-johannsen/biosim/internal/game/inventory"
	"github.com/cory-johannsen/biosim/internal/game/morale"
	"github.com/cory-johannsen/biosim/internal/game/trait"
)

//go:embed data/*.yaml
var embedded embed.FS

//go:embed scripts/*.lua
var scripts embed.FS

// Scripts returns the embedded Lua effect hooks.
func Scripts() fs.FS {
	sub, err := fs.Sub(scripts, "scripts")
	if err != nil {
		panic(err)
	}
	return sub
}

// Catalog file names, shared by the embedded set and override directories.
const (
	TraitsFile   = "traits.yaml"
	EffectsFile  = "effects.yaml"
	DiseasesFile = "diseases.yaml"
	MoraleFile   = "morale.yaml"
	ClothingFile = "clothing.yaml"
)

// DiseaseDef holds the defaults of one legacy disease type.
type DiseaseDef struct {
	ID           effect.ID `yaml:"id"`
	MaxIntensity int       `yaml:"max_intensity"`
	Decay        int       `yaml:"decay"`
	Duration     int       `yaml:"duration"`
}

// Catalog is the read-only rules set. Build one at startup and share it.
type Catalog struct {
	Traits      *trait.Registry
	Effects     *effect.Registry
	Diseases    map[effect.ID]DiseaseDef
	MoraleNames morale.Names
	Clothing    *inventory.Registry
}

// requiredEffects have dedicated behavior and must exist in every catalog.
var requiredEffects = []effect.ID{
	effect.Cold, effect.Hot, effect.Frostbite, effect.FrostbiteRecovery,
	effect.Bite, effect.Infected, effect.Recover, effect.Sleep,
	effect.Asthma, effect.OnFire, effect.Fungus, effect.Spores,
	effect.Hallu, effect.Teleglow, effect.AlarmClock, effect.Shakes,
	effect.Blisters, effect.Darkness, effect.Downed, effect.Stunned,
}

// Default builds the Catalog from the embedded documents.
//
// Postcondition: returns a validated Catalog or an error.
func Default() (*Catalog, error) {
	return build(func(name string) ([]byte, error) {
		return fs.ReadFile(embedded, "data/"+name)
	})
}

// Load builds a Catalog from dir. A file missing from dir falls back to the
// embedded document of the same name; an empty dir means Default.
//
// Postcondition: returns a validated Catalog or an error.
func Load(dir string) (*Catalog, error) {
	if dir == "" {
		return Default()
	}
	return build(func(name string) ([]byte, error) {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if errors.Is(err, fs.ErrNotExist) {
			return fs.ReadFile(embedded, "data/"+name)
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		return data, nil
	})
}

func build(read func(name string) ([]byte, error)) (*Catalog, error) {
	docs := make(map[string][]byte)
	for _, name := range []string{TraitsFile, EffectsFile, DiseasesFile, MoraleFile, ClothingFile} {
		data, err := read(name)
		if err != nil {
			return nil, fmt.Errorf("content: %w", err)
		}
		if err := validateDocument(name, data); err != nil {
			return nil, fmt.Errorf("content: %w", err)
		}
		docs[name] = data
	}

	cat := &Catalog{Clothing: inventory.NewRegistry()}
	var err error
	if cat.Traits, err = trait.Parse(docs[TraitsFile]); err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	if cat.Effects, err = effect.Parse(docs[EffectsFile]); err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	if cat.Diseases, err = parseDiseases(docs[DiseasesFile]); err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	if cat.MoraleNames, err = morale.ParseNames(docs[MoraleFile]); err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	clothing, err := inventory.ParseClothing(docs[ClothingFile])
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	for _, c := range clothing {
		if err := cat.Clothing.RegisterClothing(c); err != nil {
			return nil, fmt.Errorf("content: %w", err)
		}
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

// Validate checks cross-catalog references.
//
// Postcondition: returns nil or an error listing every violation.
func (c *Catalog) Validate() error {
	var errs []string
	for _, id := range requiredEffects {
		if _, ok := c.Effects.Get(id); !ok {
			errs = append(errs, fmt.Sprintf("required effect %q missing", id))
		}
	}
	for _, d := range c.Effects.All() {
		for _, ids := range [][]trait.ID{d.ResistTraits, d.ImmuneTraits} {
			for _, t := range ids {
				if _, ok := c.Traits.Get(t); !ok {
					errs = append(errs, fmt.Sprintf("effect %q references unknown trait %q", d.ID, t))
				}
			}
		}
	}
	ids := make([]string, 0, len(c.Diseases))
	for id := range c.Diseases {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	for _, id := range ids {
		if _, ok := c.Effects.Get(effect.ID(id)); !ok {
			errs = append(errs, fmt.Sprintf("disease %q has no effect definition", id))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("content: catalog invalid:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Disease returns the defaults for disease type id, falling back to a
// single-intensity, non-decaying definition.
func (c *Catalog) Disease(id effect.ID) DiseaseDef {
	if d, ok := c.Diseases[id]; ok {
		return d
	}
	return DiseaseDef{ID: id, MaxIntensity: 1}
}

type diseasesFile struct {
	Diseases []DiseaseDef `yaml:"diseases"`
}

func parseDiseases(data []byte) (map[effect.ID]DiseaseDef, error) {
	var f diseasesFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing disease catalog: %w", err)
	}
	out := make(map[effect.ID]DiseaseDef, len(f.Diseases))
	for _, d := range f.Diseases {
		if _, dup := out[d.ID]; dup {
			return nil, fmt.Errorf("parsing disease catalog: duplicate disease %s", d.ID)
		}
		out[d.ID] = d
	}
	return out, nil
}
