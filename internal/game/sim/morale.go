package sim

import (
	"github.com/cory-johannsen/biosim/internal/game/body"
	"github.com/cory-johannsen/biosim/internal/game/character"
	"github.com/cory-johannsen/biosim/internal/game/inventory"
	"github.com/cory-johannsen/biosim/internal/game/morale"
	"github.com/cory-johannsen/biosim/internal/game/thermal"
	"github.com/cory-johannsen/biosim/internal/game/trait"
)

// Persistent entries last a few turns past the condition that feeds them.
const (
	persistDuration = 5
	persistDecay    = 5
)

// styleBonus is the basic wardrobe bonus a stylish character gets for each
// covered part.
var styleBonus = []struct {
	part  body.Part
	bonus int
}{
	{body.Torso, 6},
	{body.Legs, 5},
	{body.Feet, 2},
	{body.Hands, 2},
	{body.Head, 2},
}

// ApplyPersistent refreshes the morale entries that follow directly from the
// character's traits, gear and condition. Every entry is written with
// cap_existing so repeated calls never accumulate.
func ApplyPersistent(c *character.Character, report thermal.Report) {
	persist := func(typ morale.Type, bonus int, item string) {
		if bonus == 0 {
			return
		}
		c.Morale.Add(typ, bonus, bonus, persistDuration, persistDecay, true, item)
	}

	if c.Traits.Has(trait.Hoarder) {
		persist(morale.PermHoarder, -max(0, 20-5*c.Equip.CountFlag(inventory.FlagPockets)), "")
	}

	if c.Traits.Has(trait.Stylish) {
		bonus := 2*c.Equip.CountFlag(inventory.FlagFancy) + 4*c.Equip.CountFlag(inventory.FlagSuperFancy)
		if bonus > 0 {
			for _, s := range styleBonus {
				if c.Equip.Covers(s.part) {
					bonus += s.bonus
				}
			}
		}
		persist(morale.PermFancy, min(bonus, 20), "")
	}

	constrained := 0
	if c.Traits.Has(trait.Flowers) && c.Equip.Covers(body.Head) {
		constrained -= 10
	}
	if c.Traits.Has(trait.Roots) && c.Equip.Covers(body.Feet) {
		constrained -= 10
	}
	persist(morale.PermConstrained, constrained, "")

	if c.Pain > 0 {
		bonus := 0
		switch {
		case c.Traits.Has(trait.Cenobite):
			bonus = min(60, c.Pain*2/3)
		case c.Traits.Has(trait.Masochist):
			bonus = min(25, c.Pain*2/5)
		}
		if c.PKill > 0 {
			bonus -= c.PKill
		}
		persist(morale.PermMasochist, max(bonus, 0), "")
	}

	if report.Comfy {
		persist(morale.Comfy, 3, "")
	}

	wet := 0
	for _, p := range body.ThermalParts {
		if w := c.Wetness.Get(p); w > 0 && c.Equip.Covers(p) {
			wet += w / 10
		}
	}
	persist(morale.PermWetClothes, -min(wet, 25), "clothes")

	// Personality is read last so it reacts to the refreshed level.
	switch level := c.Morale.Level(morale.Neutral); {
	case c.Traits.Has(trait.Optimistic) && level < 0:
		persist(morale.PermOptimist, 9, "")
	case c.Traits.Has(trait.BadTemper) && level > 0:
		persist(morale.PermBadTemper, -9, "")
	}
}
