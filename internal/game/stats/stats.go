// Package stats recomputes a character's transient attribute, dodge, hit and
// speed modifiers from its current traits, gear, pain, morale, radiation,
// stimulants and effects.
package stats

import (
	"github.com/cory-johannsen/biosim/internal/game/body"
	"github.com/cory-johannsen/biosim/internal/game/character"
	"github.com/cory-johannsen/biosim/internal/game/effect"
	"github.com/cory-johannsen/biosim/internal/game/trait"
)

// Bionic ids with stat effects.
const (
	BioHydraulics  = "bio_hydraulics"
	BioEyeEnhancer = "bio_eye_enhancer"
	BioStrEnhancer = "bio_str_enhancer"
	BioIntEnhancer = "bio_int_enhancer"
	BioDexEnhancer = "bio_dex_enhancer"
)

// Miss reasons reported to combat.
const (
	ReasonPain      = "Your pain distracts you!"
	ReasonMorale    = "What's the point of fighting?"
	ReasonRadiation = "Radiation weakens you."
	ReasonStim      = "You shake with the excess stimulation."
)

// partStats is the per-part stat penalty of effects whose tier table alone
// cannot express body-part dependence.
var partStats = map[effect.ID]func(p body.Part, intensity int) trait.StatMods{
	effect.Cold:      coldStats,
	effect.Hot:       hotStats,
	effect.Frostbite: frostbiteStats,
}

func coldStats(p body.Part, i int) trait.StatMods {
	switch p {
	case body.Torso:
		return trait.StatMods{Dex: -i}
	case body.Head:
		return trait.StatMods{Int: -(i - 1)}
	case body.Mouth:
		return trait.StatMods{Per: -(i - 1)}
	case body.Arms:
		return trait.StatMods{Dex: -(i - 1)}
	case body.Hands:
		return trait.StatMods{Dex: -(i - 1), Hit: -(i - 1)}
	case body.Legs:
		return trait.StatMods{Speed: -2 * i}
	case body.Feet:
		return trait.StatMods{Speed: -2 * (i - 1)}
	}
	return trait.StatMods{}
}

func hotStats(p body.Part, i int) trait.StatMods {
	switch p {
	case body.Head:
		return trait.StatMods{Int: -(i - 1)}
	case body.Torso:
		return trait.StatMods{Str: -(i - 1)}
	case body.Legs, body.Feet:
		return trait.StatMods{Speed: -2 * (i - 1)}
	}
	return trait.StatMods{}
}

func frostbiteStats(p body.Part, i int) trait.StatMods {
	switch p {
	case body.Hands:
		return trait.StatMods{Dex: -i}
	case body.Feet:
		return trait.StatMods{Speed: -5 * i}
	case body.Mouth:
		return trait.StatMods{Per: -i}
	}
	return trait.StatMods{}
}

// Reset zeroes c's transient bonuses and derives them again from scratch,
// then recomputes current stats and speed.
//
// Precondition: c must have a catalog attached.
// Postcondition: calling Reset twice on unchanged state yields identical
// bonuses, current stats, speed and miss reasons.
func Reset(c *character.Character) {
	c.Bonus = character.Bonuses{}
	c.ClearMissReasons()
	b := &c.Bonus

	applyBionics(c, b)
	applyTraits(c, b)
	applyPain(c, b)
	applyMorale(c, b)
	applyRadiation(c, b)
	applyStim(c, b)
	applyEffects(c, b)
	applyCombat(c, b)

	c.Cur = character.Stats{
		Str: max(c.Base.Str+b.Str, 0),
		Dex: max(c.Base.Dex+b.Dex, 0),
		Int: max(c.Base.Int+b.Int, 0),
		Per: max(c.Base.Per+b.Per, 0),
	}
	c.Speed = Speed(c)
}

func add(b *character.Bonuses, m trait.StatMods) {
	b.Str += m.Str
	b.Dex += m.Dex
	b.Int += m.Int
	b.Per += m.Per
	b.Dodge += m.Dodge
	b.Hit += m.Hit
	b.Speed += m.Speed
}

func halve(m trait.StatMods) trait.StatMods {
	return trait.StatMods{
		Str: m.Str / 2, Dex: m.Dex / 2, Int: m.Int / 2, Per: m.Per / 2,
		Dodge: m.Dodge / 2, Hit: m.Hit / 2, Speed: m.Speed / 2,
	}
}

func applyBionics(c *character.Character, b *character.Bonuses) {
	if c.Bionics[BioHydraulics] {
		b.Str += 20
	}
	if _, ok := c.Bionics[BioEyeEnhancer]; ok {
		b.Per += 2
	}
	if _, ok := c.Bionics[BioStrEnhancer]; ok {
		b.Str += 2
	}
	if _, ok := c.Bionics[BioIntEnhancer]; ok {
		b.Int += 2
	}
	if _, ok := c.Bionics[BioDexEnhancer]; ok {
		b.Dex += 2
	}
}

func applyTraits(c *character.Character, b *character.Bonuses) {
	reg := c.Catalog().Traits
	add(b, c.Traits.Stats(reg))
	for _, id := range c.Traits.Sorted() {
		if d, ok := reg.Get(id); ok && d.MissReason != "" && d.Stats.Dex < 0 {
			c.AddMissReason(d.MissReason, -d.Stats.Dex)
		}
	}
	if c.Traits.Has(trait.CompoundEyes) && !c.Equip.Covers(body.Eyes) {
		b.Per++
	}
	if !c.Equip.Covers(body.Mouth) {
		switch {
		case c.Traits.Has(trait.WhiskersRat):
			b.Dodge += 2
		case c.Traits.Has(trait.Whiskers):
			b.Dodge++
		}
	}
}

// EffectivePain is pain net of painkillers, halved by PAINRESIST.
func EffectivePain(c *character.Character) int {
	p := c.Pain - c.PKill
	if p <= 0 {
		return 0
	}
	if c.Traits.Has(trait.PainResist) {
		p /= 2
	}
	return p
}

func applyPain(c *character.Character, b *character.Bonuses) {
	p := EffectivePain(c)
	if p <= 0 {
		return
	}
	if !c.Traits.Has(trait.Cenobite) {
		b.Str -= p / 15
		b.Dex -= p / 15
		c.AddMissReason(ReasonPain, p/15)
	}
	b.Per -= p / 20
	if c.Traits.Has(trait.IntSlime) {
		b.Int -= 1 + p
	} else {
		b.Int -= 1 + p/25
	}
}

func applyMorale(c *character.Character, b *character.Bonuses) {
	m := c.MoraleLevel()
	if abs(m) < 100 {
		return
	}
	b.Str += m / 180
	b.Dex += m / 200
	if m < 0 {
		c.AddMissReason(ReasonMorale, -m/200)
	}
	b.Per += m / 125
	b.Int += m / 100
}

func applyRadiation(c *character.Character, b *character.Bonuses) {
	r := c.Radiation
	if r <= 0 {
		return
	}
	b.Str -= r / 80
	b.Dex -= r / 110
	c.AddMissReason(ReasonRadiation, r/110)
	b.Per -= r / 100
	b.Int -= r / 120
}

func applyStim(c *character.Character, b *character.Bonuses) {
	s := c.Stim
	b.Dex += s / 10
	b.Per += s / 7
	b.Int += s / 6
	switch {
	case s >= 30:
		over := abs(s - 15)
		b.Dex -= over / 8
		c.AddMissReason(ReasonStim, over/8)
		b.Per -= over / 12
		b.Int -= over / 14
	case s <= -10:
		crash := abs(s)
		b.Dex -= crash / 8
		b.Per -= crash / 12
		b.Int -= crash / 14
	}
}

func applyEffects(c *character.Character, b *character.Bonuses) {
	for _, a := range c.Effects.All() {
		m := a.Def.TierFor(a.Intensity).Stats
		if fn, ok := partStats[a.ID()]; ok {
			pm := fn(a.Part, a.Intensity)
			m = trait.StatMods{
				Str: m.Str + pm.Str, Dex: m.Dex + pm.Dex, Int: m.Int + pm.Int, Per: m.Per + pm.Per,
				Dodge: m.Dodge + pm.Dodge, Hit: m.Hit + pm.Hit, Speed: m.Speed + pm.Speed,
			}
		}
		if m.IsZero() {
			continue
		}
		if c.Resists(a.Def) {
			m = halve(m)
		}
		add(b, m)
	}
	for _, d := range c.Diseases.All() {
		def, ok := c.Catalog().Effects.Get(d.Type)
		if !ok {
			continue
		}
		m := def.TierFor(d.Intensity).Stats
		if c.Resists(def) {
			m = halve(m)
		}
		add(b, m)
	}
}

func applyCombat(c *character.Character, b *character.Bonuses) {
	b.Dodge += c.Style.Dodge - c.Equip.Encumbrance(body.Legs)/2 - c.Equip.Encumbrance(body.Torso)
	b.Hit += c.Style.Hit - c.Equip.Encumbrance(body.Torso)
}

// Speed returns the action points c gains per turn. Bonus.Speed must already
// hold the trait and effect speed modifiers.
//
// Postcondition: result >= BaseSpeed/4.
func Speed(c *character.Character) int {
	s := c.BaseSpeed + c.Bonus.Speed

	if p := EffectivePain(c); p > 0 {
		pen := int(float64(p) * 0.7)
		if c.Traits.Has(trait.Cenobite) {
			pen /= 4
		}
		s -= min(pen, 60)
	}
	if c.PKill >= 10 {
		s -= min(c.PKill/10, 30)
	}
	if m := c.MoraleLevel(); abs(m) >= 100 {
		s += min(max(m/25, -10), 10)
	}
	if c.Radiation >= 40 {
		s -= min(c.Radiation/40, 20)
	}
	if c.Thirst > 40 {
		s -= (c.Thirst - 40) / 10
	}
	if c.Hunger > 100 {
		s -= (c.Hunger - 100) / 10
	}
	s += min(c.Stim, 40)

	if c.Traits.Has(trait.Quick) {
		s = int(float64(s) * 1.10)
	}
	return max(s, c.BaseSpeed/4)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
