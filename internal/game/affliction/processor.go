// Package affliction advances a character's active effects and legacy
// diseases by one turn: immunity purges, per-tier magnitude channels, the
// per-effect special behaviors, optional scripted hooks, and aging.
package affliction

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/biosim/internal/game/body"
	"github.com/cory-johannsen/biosim/internal/game/character"
	"github.com/cory-johannsen/biosim/internal/game/dice"
	"github.com/cory-johannsen/biosim/internal/game/effect"
	"github.com/cory-johannsen/biosim/internal/game/world"
)

// Scripts runs the scripted tick hook named by an effect definition.
// *scripting.Manager satisfies it.
type Scripts interface {
	EffectTick(hook string, c *character.Character, a *effect.Active)
}

// Processor applies one turn of effect and disease processing.
// A Processor holds no per-character state and may be shared.
type Processor struct {
	src     dice.Source
	scripts Scripts
	log     *zap.Logger
}

// NewProcessor returns a Processor drawing every roll from src. scripts may
// be nil, in which case scripted hooks are skipped.
//
// Precondition: src must not be nil.
func NewProcessor(src dice.Source, scripts Scripts, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{src: src, scripts: scripts, log: logger}
}

// Process runs one turn of effect processing for c.
//
// Precondition: c must have a catalog attached.
// Postcondition: every surviving non-permanent effect has aged by one turn;
// entries at or below zero duration or intensity are gone; scalars are
// clamped.
func (p *Processor) Process(c *character.Character, snap world.Snapshot) {
	p.purge(c, snap)

	for _, a := range c.Effects.All() {
		if c.Dead {
			break
		}
		if live, ok := c.Effects.Get(a.ID(), a.Part); !ok || live != a {
			continue
		}
		reduced := c.Resists(a.Def)
		p.applyChannels(c, a.Def.TierFor(a.Intensity).Channels, a.Part, reduced)

		if b, ok := behaviors[a.ID()]; ok {
			b(&Tick{C: c, A: a, Snap: snap, Src: p.src, Reduced: reduced})
		}
		if a.Def.LuaOnTick != "" && p.scripts != nil {
			p.scripts.EffectTick(a.Def.LuaOnTick, c, a)
		}
	}

	for _, d := range c.Diseases.All() {
		def, ok := c.Catalog().Effects.Get(d.Type)
		if !ok {
			continue
		}
		p.applyChannels(c, def.TierFor(d.Intensity).Channels, d.Part, c.Resists(def))
	}

	for _, a := range c.Effects.Age() {
		if a.Def.RemoveMessage != "" {
			c.Notify(character.Info, "%s", a.Def.RemoveMessage)
		}
	}
	c.Clamp()
}

// TickDiseases ages the legacy disease list and rolls each entry's decay.
func (p *Processor) TickDiseases(c *character.Character) {
	for _, d := range c.Diseases.Tick(p.src) {
		p.log.Debug("disease ended", zap.String("disease", string(d.Type)), zap.Stringer("part", d.Part))
		if def, ok := c.Catalog().Effects.Get(d.Type); ok && def.RemoveMessage != "" {
			c.Notify(character.Good, "%s", def.RemoveMessage)
		}
	}
}

// purge removes afflictions the character cannot have: anything one of its
// traits is immune to, darkness in sunlight and fire under water.
func (p *Processor) purge(c *character.Character, snap world.Snapshot) {
	for _, a := range c.Effects.All() {
		if c.Traits.HasAny(a.Def.ImmuneTraits...) {
			c.Effects.Remove(a.ID(), a.Part)
		}
	}
	for _, d := range c.Diseases.All() {
		if def, ok := c.Catalog().Effects.Get(d.Type); ok && c.Traits.HasAny(def.ImmuneTraits...) {
			c.Diseases.Remove(d.Type, d.Part)
		}
	}
	if snap.Sunlit() && c.Effects.Has(effect.Darkness) {
		c.Effects.RemoveAll(effect.Darkness)
		c.Notify(character.Good, "The sunlight dispels the darkness.")
	}
	if snap.Submerged(false) && c.Effects.Has(effect.OnFire) {
		for _, a := range c.Effects.All() {
			if a.ID() == effect.OnFire {
				c.RemoveEffect(effect.OnFire, a.Part)
			}
		}
	}
}

// roll decides whether m fires this turn and returns its amount, halved when
// reduced.
func (p *Processor) roll(turn int, m effect.ChannelMod, reduced bool) (int, bool) {
	if !m.Active() {
		return 0, false
	}
	if m.Tick > 1 && turn%m.Tick != 0 {
		return 0, false
	}
	if m.Chance > 1 && !dice.OneIn(p.src, m.Chance) {
		return 0, false
	}
	amt := m.Amount
	if reduced {
		amt /= 2
	}
	return amt, amt != 0
}

// bounded adds amt to cur without carrying it past bound. A zero bound is
// unbounded; a value already past the bound is left alone.
func bounded(cur, amt, bound int) int {
	switch {
	case bound == 0:
		return cur + amt
	case amt > 0:
		if cur >= bound {
			return cur
		}
		return min(cur+amt, bound)
	default:
		if cur <= bound {
			return cur
		}
		return max(cur+amt, bound)
	}
}

func (p *Processor) applyChannels(c *character.Character, ch effect.Channels, part body.Part, reduced bool) {
	scalar := func(m effect.ChannelMod, v *int) {
		if amt, ok := p.roll(c.Turn, m, reduced); ok {
			*v = bounded(*v, amt, m.Bound)
		}
	}
	scalar(ch.Health, &c.Health)
	scalar(ch.HealthMod, &c.HealthMod)
	scalar(ch.Stim, &c.Stim)
	scalar(ch.Hunger, &c.Hunger)
	scalar(ch.Thirst, &c.Thirst)
	scalar(ch.Fatigue, &c.Fatigue)
	scalar(ch.Radiation, &c.Radiation)
	scalar(ch.PKill, &c.PKill)

	if amt, ok := p.roll(c.Turn, ch.Pain, reduced); ok {
		before := c.Pain
		c.ModPain(bounded(c.Pain, amt, ch.Pain.Bound) - c.Pain)
		if c.Pain > before {
			painMessage(c, part, c.Pain-before)
		}
	}
	if amt, ok := p.roll(c.Turn, ch.Hurt, reduced); ok {
		target := part
		if !target.Valid() {
			target = body.Torso
		}
		c.HurtPart(target, amt)
		if amt >= 5 {
			c.Notify(character.Bad, "Your %s is badly damaged!", target)
		} else {
			c.Notify(character.Bad, "Your %s hurts!", target)
		}
	}
	if amt, ok := p.roll(c.Turn, ch.Sleep, reduced); ok && !c.Asleep() {
		c.Notify(character.Bad, "You pass out.")
		c.FallAsleep(amt)
	}
}

func painMessage(c *character.Character, part body.Part, n int) {
	name := partName(part)
	switch {
	case n >= 10:
		c.Notify(character.Bad, "Your %s is wracked with agony!", name)
	case n >= 3:
		c.Notify(character.Bad, "Your %s throbs with pain.", name)
	default:
		c.Notify(character.Bad, "You feel a twinge in your %s.", name)
	}
}

func partName(p body.Part) string {
	if !p.Valid() {
		return "body"
	}
	return p.String()
}
