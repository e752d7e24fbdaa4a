// Package effect defines timed status effects: their static catalog
// definitions, the per-character active set keyed by (id, body part), and the
// legacy disease list that predates effects but shares their semantics.
package effect

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/biosim/internal/game/trait"
)

// ChannelMod is one magnitude channel of an effect tier.
type ChannelMod struct {
	Amount int `yaml:"amount"`
	Bound  int `yaml:"bound"`  // 0 = unbounded
	Chance int `yaml:"chance"` // 1-in-N per eligible turn; 0 or 1 = always
	Tick   int `yaml:"tick"`   // eligible every N turns; 0 or 1 = every turn
}

// Active reports whether the channel does anything.
func (m ChannelMod) Active() bool { return m.Amount != 0 }

// Channels holds every named magnitude channel an effect tier can drive.
type Channels struct {
	Health    ChannelMod `yaml:"health"`
	HealthMod ChannelMod `yaml:"health_mod"`
	Stim      ChannelMod `yaml:"stim"`
	Hunger    ChannelMod `yaml:"hunger"`
	Thirst    ChannelMod `yaml:"thirst"`
	Fatigue   ChannelMod `yaml:"fatigue"`
	Radiation ChannelMod `yaml:"radiation"`
	Pain      ChannelMod `yaml:"pain"`
	Hurt      ChannelMod `yaml:"hurt"`
	Sleep     ChannelMod `yaml:"sleep"`
	PKill     ChannelMod `yaml:"pkill"`
}

// Tier is the per-intensity data of an effect.
type Tier struct {
	Name     string         `yaml:"name"`
	Stats    trait.StatMods `yaml:"stats"`
	Channels Channels       `yaml:"channels"`
}

// Def is the static definition of an effect, loaded from YAML.
type Def struct {
	ID            ID         `yaml:"id"`
	Name          string     `yaml:"name"`
	Description   string     `yaml:"description"`
	MaxIntensity  int        `yaml:"max_intensity"`
	ResistTraits  []trait.ID `yaml:"resist_traits"`
	ResistEffects []ID       `yaml:"resist_effects"`
	ImmuneTraits  []trait.ID `yaml:"immune_traits"`
	ApplyMessage  string     `yaml:"apply_message"`
	RemoveMessage string     `yaml:"remove_message"`
	Tiers         []Tier     `yaml:"tiers"`
	LuaOnTick     string     `yaml:"lua_on_tick"`
}

// Max returns the intensity cap, never less than 1.
func (d *Def) Max() int {
	if d.MaxIntensity < 1 {
		return 1
	}
	return d.MaxIntensity
}

// TierFor returns the tier data for intensity. Intensities past the last
// declared tier reuse it; a Def without tiers yields an empty Tier.
func (d *Def) TierFor(intensity int) Tier {
	if len(d.Tiers) == 0 {
		return Tier{}
	}
	i := intensity - 1
	if i < 0 {
		i = 0
	}
	if i >= len(d.Tiers) {
		i = len(d.Tiers) - 1
	}
	return d.Tiers[i]
}

// DisplayName returns the tier name when set, otherwise the effect name.
func (d *Def) DisplayName(intensity int) string {
	if n := d.TierFor(intensity).Name; n != "" {
		return n
	}
	return d.Name
}

// Registry holds all known effect Defs keyed by ID.
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

// All returns every Def sorted by ID.
func (r *Registry) All() []*Def {
	out := make([]*Def, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type catalogFile struct {
	Effects []*Def `yaml:"effects"`
}

// Parse decodes a YAML catalog document of the form `effects: [...]`.
//
// Postcondition: returns a Registry whose every resist_effects entry resolves,
// or an error.
func Parse(data []byte) (*Registry, error) {
	var f catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing effect catalog: %w", err)
	}
	reg := NewRegistry()
	for _, d := range f.Effects {
		if d.ID == "" {
			return nil, fmt.Errorf("parsing effect catalog: effect with empty id")
		}
		if _, dup := reg.defs[d.ID]; dup {
			return nil, fmt.Errorf("parsing effect catalog: duplicate effect %s", d.ID)
		}
		if len(d.Tiers) > d.Max() {
			return nil, fmt.Errorf("parsing effect catalog: %s declares %d tiers but max_intensity %d", d.ID, len(d.Tiers), d.Max())
		}
		reg.Register(d)
	}
	for _, d := range reg.defs {
		for _, r := range d.ResistEffects {
			if _, ok := reg.defs[r]; !ok {
				return nil, fmt.Errorf("parsing effect catalog: %s resists unknown effect %s", d.ID, r)
			}
		}
	}
	return reg, nil
}

// LoadFile reads and parses the effect catalog at path.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return Parse(data)
}
