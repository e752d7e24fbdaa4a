package sim

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/biosim/internal/game/body"
	"github.com/cory-johannsen/biosim/internal/game/character"
	"github.com/cory-johannsen/biosim/internal/game/dice"
	"github.com/cory-johannsen/biosim/internal/game/effect"
	"github.com/cory-johannsen/biosim/internal/game/inventory"
	"github.com/cory-johannsen/biosim/internal/game/morale"
	"github.com/cory-johannsen/biosim/internal/game/trait"
	"github.com/cory-johannsen/biosim/internal/game/world"
)

// Radiation schedule.
const (
	radiationInterval     = 150
	radiationHurtInterval = 90
	radiationHurtFloor    = 150
	radiogenicInterval    = 50
)

// asthmaOdds is the base 1-in-n chance per turn of an attack while awake.
const asthmaOdds = 3600

func (s *Simulator) radiation(c *character.Character, snap world.Snapshot) {
	if local := snap.Radiation; local > 0 {
		switch {
		case c.Equip.HasFlagAnywhere(inventory.FlagRadProof):
		case c.Equip.HasFlagAnywhere(inventory.FlagRadResist):
			c.Radiation += dice.Rng(s.src, 0, local/16)
		default:
			c.Radiation += dice.Rng(s.src, 0, local/4)
		}
	}

	if c.Traits.Has(trait.RadioGenic) && c.Radiation > 0 && c.Turn%radiogenicInterval == 0 {
		for _, h := range body.AllHP {
			c.Heal(h, 1)
		}
		c.Radiation--
	}

	if c.Turn%radiationInterval == 0 {
		c.Radiation = min(max(c.Radiation, character.MinRadiation), character.MaxRadiation)
		if dice.Rng(s.src, 60, 2500) < c.Radiation {
			if id, ok := Mutate(c, s.src); ok {
				s.log.Info("spontaneous mutation",
					zap.String("character", c.ID.String()),
					zap.String("trait", string(id)),
					zap.Int("radiation", c.Radiation),
				)
			}
			c.Radiation = max(c.Radiation/2-5, 0)
		}
		if c.Radiation > 0 && dice.Rng(s.src, 0, 1000) < c.Radiation && dice.OneIn(s.src, 3) {
			c.Vomit(dice.Rng(s.src, 30, 50), dice.Rng(s.src, 30, 50))
		}
	}

	if c.Radiation > radiationHurtFloor && c.Turn%radiationHurtInterval == 0 {
		c.Notify(character.Bad, "You feel sick from radiation.")
		c.HurtAll(c.Radiation / 100)
	}
}

// Mutate grants c one mutation chosen uniformly among the mutable traits it
// could gain, removing any trait the new one cancels or replaces.
//
// Postcondition: returns false and changes nothing when no trait is eligible.
func Mutate(c *character.Character, src dice.Source) (trait.ID, bool) {
	reg := c.Catalog().Traits
	pool := c.Traits.Eligible(reg)
	if len(pool) == 0 {
		return "", false
	}
	def := pool[src.Intn(len(pool))]
	for _, held := range c.Traits.Sorted() {
		if reg.Conflicts(def.ID, held) {
			c.Traits.Remove(held)
			c.Notify(character.Info, "You lose your %s mutation.", reg.Name(held))
		}
	}
	for _, old := range def.Replaces {
		if c.Traits.Has(old) {
			c.Traits.Remove(old)
			c.Notify(character.Info, "Your %s mutation changes.", reg.Name(old))
		}
	}
	c.Traits.Add(def.ID)
	c.Notify(character.Warning, "You gain a mutation called %s!", def.Name)
	return def.ID, true
}

// environment applies the lingering fields on the character's tile.
func (s *Simulator) environment(c *character.Character, snap world.Snapshot) {
	linger := func(id effect.ID, part body.Part, intensity int) {
		if a := c.AddEffect(id, part, 0, intensity, false); a != nil && a.Duration < 2 {
			a.Duration = 2
		}
	}
	if snap.Smoke > 0 {
		linger(effect.Smoke, body.Whole, 1)
	}
	if snap.TearGas > 0 {
		linger(effect.TearGas, body.Whole, 1)
	}
	if snap.Spores > 0 && dice.OneIn(s.src, 3) {
		linger(effect.Spores, body.Whole, min(snap.Spores, 3))
	}
}

// wetness soaks submerged parts and dries the rest.
func (s *Simulator) wetness(c *character.Character, snap world.Snapshot) {
	rate := 1
	if snap.Sunlit() {
		rate++
	}
	if snap.FireUnder > 0 || len(snap.HeatSources) > 0 {
		rate += 2
	}
	if snap.Weather.Humidity > 70 && c.Turn%2 == 1 {
		rate = 0
	}

	wasWet, nowWet := false, false
	for _, p := range body.All {
		w := c.Wetness.Get(p)
		if snap.Submerged(body.Submersible(p)) && !c.Equip.Waterproof(p) {
			w = character.MaxWetness
		} else if w > 0 {
			wasWet = true
			w = max(w-rate, 0)
		}
		if w > 0 {
			nowWet = true
		}
		c.Wetness.Set(p, w)
	}
	if wasWet && !nowWet {
		c.Notify(character.Good, "You feel dry again.")
		c.Morale.Add(morale.DriedOff, 4, 4, 20, 10, false, "")
	}
}

// asthma rolls for a spontaneous attack. Smoke makes one far more likely.
func (s *Simulator) asthma(c *character.Character, snap world.Snapshot) {
	if !c.Traits.Has(trait.Asthma) || c.Effects.Has(effect.Asthma) {
		return
	}
	odds := asthmaOdds - 50*c.Stim
	if c.Asleep() {
		odds *= 2
	}
	if snap.Smoke > 0 {
		odds /= 10
	}
	if !dice.OneIn(s.src, max(odds, 1)) {
		return
	}
	if !c.Asleep() && c.Equip.UseCharge("inhaler") {
		c.Notify(character.Info, "You feel an attack coming on and take a puff from your inhaler.")
		return
	}
	c.Notify(character.Bad, "You can't breathe... asthma attack!")
	c.AddEffect(effect.Asthma, body.Whole, 50, 1, false)
}
