package character

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/biosim/internal/content"
	"github.com/cory-johannsen/biosim/internal/game/body"
	"github.com/cory-johannsen/biosim/internal/game/effect"
	"github.com/cory-johannsen/biosim/internal/game/inventory"
	"github.com/cory-johannsen/biosim/internal/game/trait"
	"github.com/cory-johannsen/biosim/internal/game/world"
)

// Build constructs a Character from a scenario subject. Every trait, worn
// item and effect the subject names must exist in cat.
//
// Precondition: cat must not be nil.
// Postcondition: Returns a Character placed at start, or a non-nil error.
func Build(cat *content.Catalog, subj world.Subject, start world.Point, logger *zap.Logger) (*Character, error) {
	if cat == nil {
		return nil, errors.New("catalog must not be nil")
	}
	name := subj.Name
	if name == "" {
		name = "Survivor"
	}
	c := New(cat, name, logger)
	c.Pos = start

	for _, raw := range subj.Traits {
		id := trait.ID(raw)
		if _, ok := cat.Traits.Get(id); !ok {
			return nil, fmt.Errorf("subject %q: unknown trait %q", name, raw)
		}
		c.Traits.Add(id)
	}
	for _, b := range subj.Bionics {
		c.Bionics[b] = true
	}

	eq := inventory.NewEquipment()
	for _, id := range subj.Wear {
		def, ok := cat.Clothing.Clothing(id)
		if !ok {
			return nil, fmt.Errorf("subject %q: unknown clothing %q", name, id)
		}
		eq.Wear(def)
	}
	for id, n := range subj.Tools {
		eq.Tools[id] = n
	}
	c.Equip = eq
	c.Wielding = subj.Wielding

	c.Hunger = subj.Hunger
	c.Thirst = subj.Thirst
	c.Fatigue = subj.Fatigue
	c.Pain = subj.Pain
	c.Radiation = subj.Radiation
	c.Stim = subj.Stim

	for part, w := range subj.Wetness {
		p, err := body.ParsePart(part)
		if err != nil || p == body.Whole {
			return nil, fmt.Errorf("subject %q: wetness on %q: not a body part", name, part)
		}
		c.Wetness.Set(p, w)
	}

	for _, se := range subj.Effects {
		p, err := body.ParsePart(se.Part)
		if err != nil {
			return nil, fmt.Errorf("subject %q: effect %s: %w", name, se.ID, err)
		}
		if _, ok := cat.Effects.Get(effect.ID(se.ID)); !ok {
			return nil, fmt.Errorf("subject %q: unknown effect %q", name, se.ID)
		}
		c.AddEffect(effect.ID(se.ID), p, se.Duration, max(se.Intensity, 1), se.Permanent)
	}
	if subj.Asleep {
		c.FallAsleep(600)
	}
	c.DrainMessages()
	c.Clamp()
	return c, nil
}
