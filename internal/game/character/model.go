// Package character defines the simulated character aggregate: attributes,
// hit points, physiological scalars, per-part body state and the trackers the
// per-turn systems read and write.
package character

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/biosim/internal/content"
	"github.com/cory-johannsen/biosim/internal/game/addiction"
	"github.com/cory-johannsen/biosim/internal/game/body"
	"github.com/cory-johannsen/biosim/internal/game/effect"
	"github.com/cory-johannsen/biosim/internal/game/inventory"
	"github.com/cory-johannsen/biosim/internal/game/morale"
	"github.com/cory-johannsen/biosim/internal/game/trait"
	"github.com/cory-johannsen/biosim/internal/game/world"
)

// Stats holds the four core attributes.
type Stats struct {
	Str int
	Dex int
	Int int
	Per int
}

// Bonuses are the transient deltas recomputed every turn.
type Bonuses struct {
	Str   int
	Dex   int
	Int   int
	Per   int
	Dodge int
	Hit   int
	Speed int
}

// Style holds the dodge and hit buffs granted by the active combat style.
type Style struct {
	Dodge int
	Hit   int
}

// MissReason is one weighted cause of reduced accuracy.
type MissReason struct {
	Reason string
	Weight int
}

// MessageKind classifies a player-facing message.
type MessageKind int

const (
	Info MessageKind = iota
	Good
	Bad
	Warning
)

var messageKindNames = [...]string{"info", "good", "bad", "warning"}

func (k MessageKind) String() string {
	if k < 0 || int(k) >= len(messageKindNames) {
		return "unknown"
	}
	return messageKindNames[k]
}

// Message is one player-facing line produced during a turn.
type Message struct {
	Turn int
	Kind MessageKind
	Text string
}

// Equipment is the worn-gear view the simulation reads. *inventory.Equipment
// satisfies it.
type Equipment interface {
	Warmth(p body.Part) int
	Encumbrance(p body.Part) int
	WindResist(p body.Part) int
	EnvResist(p body.Part) int
	Covers(p body.Part) bool
	HasFlag(p body.Part, f inventory.Flag) bool
	HasFlagAnywhere(f inventory.Flag) bool
	CountFlag(f inventory.Flag) int
	FlagWarmth(f inventory.Flag, parts ...body.Part) int
	ClimateControl() bool
	Waterproof(p body.Part) bool
	Charges(id string) int
	UseCharge(id string) bool
}

// Default starting values.
const (
	DefaultStat  = 8
	DefaultSpeed = 100
)

// Scalar bounds applied by Clamp.
const (
	MinPain, MaxPain           = 0, 250
	MinPKill, MaxPKill         = 0, 200
	MinRadiation, MaxRadiation = 0, 2000
	MinHunger, MaxHunger       = -1000, 6000
	MinThirst, MaxThirst       = -1000, 1200
	MinFatigue, MaxFatigue     = -1000, 1000
	MinStim, MaxStim           = -200, 200
	MinHealth, MaxHealth       = -200, 200
	MaxFrostbite               = 4200
	MaxWetness                 = 100
)

// Character is the aggregate root of the body simulation. It is not safe for
// concurrent use; one goroutine advances a character at a time.
type Character struct {
	ID   uuid.UUID
	Name string
	Turn int
	Pos  world.Point

	Base  Stats
	Cur   Stats
	Bonus Bonuses

	BaseSpeed int
	Speed     int

	HP    [body.NumHPParts]int
	HPMax [body.NumHPParts]int

	Health    int
	HealthMod int
	Hunger    int
	Thirst    int
	Fatigue   int
	Stim      int
	Pain      int
	PKill     int
	Radiation int

	Temp      body.Array[int]
	TempConv  body.Array[int]
	Frostbite body.Array[int]
	Wetness   body.Array[int] // percent soaked, 0..MaxWetness

	Traits     *trait.Set
	Bionics    map[string]bool // installed bionic -> powered
	Style      Style
	Morale     *morale.Tracker
	Effects    *effect.Set
	Diseases   *effect.Diseases
	Addictions *addiction.Tracker
	Equip      Equipment
	Wielding   bool

	Dead         bool
	CauseOfDeath string

	missReasons []MissReason
	messages    []Message

	cat *content.Catalog
	log *zap.Logger
}

// New returns a healthy character with default attributes, no traits and no
// gear.
//
// Precondition: cat must not be nil.
// Postcondition: every temperature starts at TempNorm; HP is full.
func New(cat *content.Catalog, name string, logger *zap.Logger) *Character {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Character{
		ID:         uuid.New(),
		Name:       name,
		Base:       Stats{Str: DefaultStat, Dex: DefaultStat, Int: DefaultStat, Per: DefaultStat},
		BaseSpeed:  DefaultSpeed,
		Speed:      DefaultSpeed,
		Temp:       body.Fill(TempNorm),
		TempConv:   body.Fill(TempNorm),
		Traits:     trait.NewSet(),
		Bionics:    make(map[string]bool),
		Morale:     morale.NewTracker(),
		Effects:    effect.NewSet(),
		Diseases:   effect.NewDiseases(),
		Addictions: addiction.NewTracker(),
		Equip:      inventory.NewEquipment(),
		cat:        cat,
		log:        logger,
	}
	c.Cur = c.Base
	c.RecalcHP()
	for i := range c.HP {
		c.HP[i] = c.HPMax[i]
	}
	return c
}

// TempNorm is the comfortable body temperature every part starts at.
const TempNorm = 5000

// Attach rebinds a decoded character to its catalog and logger.
func (c *Character) Attach(cat *content.Catalog, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c.cat = cat
	c.log = logger
}

// Catalog returns the rules catalog the character was built against.
func (c *Character) Catalog() *content.Catalog { return c.cat }

// Logger returns the character's logger, never nil.
func (c *Character) Logger() *zap.Logger {
	if c.log == nil {
		return zap.NewNop()
	}
	return c.log
}

// RecalcHP derives max HP from base strength: 60 + 3*str per pool, with the
// head at 80%. Current HP is clamped to the new maxima.
func (c *Character) RecalcHP() {
	hp := 60 + c.Base.Str*3
	for _, p := range body.AllHP {
		m := hp
		if p == body.HeadHP {
			m = hp * 80 / 100
		}
		c.HPMax[p] = m
		if c.HP[p] > m {
			c.HP[p] = m
		}
	}
}

// HasTrait reports whether the character has id.
func (c *Character) HasTrait(id trait.ID) bool { return c.Traits.Has(id) }

// Asleep reports whether the character is sleeping.
func (c *Character) Asleep() bool { return c.Effects.Has(effect.Sleep) }

// Personality maps the character's traits to a morale skew.
func (c *Character) Personality() morale.Personality {
	switch {
	case c.Traits.Has(trait.Optimistic):
		return morale.Optimist
	case c.Traits.Has(trait.BadTemper):
		return morale.BadTempered
	}
	return morale.Neutral
}

// Susceptibility maps the character's traits to an addiction susceptibility.
func (c *Character) Susceptibility() addiction.Susceptibility {
	switch {
	case c.Traits.Has(trait.Addictive):
		return addiction.Addictive
	case c.Traits.Has(trait.NonAddictive):
		return addiction.NonAddictive
	}
	return addiction.Normal
}

// MoraleLevel returns the skewed sum of every morale entry.
func (c *Character) MoraleLevel() int {
	return c.Morale.Level(c.Personality())
}

// AddEffect looks id up in the catalog and applies it. Immune characters and
// unknown ids are ignored; unknown ids are logged.
//
// Postcondition: returns the live entry, or nil when nothing was applied.
func (c *Character) AddEffect(id effect.ID, part body.Part, duration, intensity int, permanent bool) *effect.Active {
	def, ok := c.cat.Effects.Get(id)
	if !ok {
		c.Logger().Warn("unknown effect", zap.String("effect", string(id)))
		return nil
	}
	for _, t := range def.ImmuneTraits {
		if c.Traits.Has(t) {
			return nil
		}
	}
	fresh := !c.Effects.HasOn(id, part)
	a := c.Effects.Add(def, part, duration, intensity, permanent)
	if fresh && def.ApplyMessage != "" {
		c.Notify(Bad, "%s", def.ApplyMessage)
	}
	return a
}

// RemoveEffect deletes (id, part) unconditionally.
func (c *Character) RemoveEffect(id effect.ID, part body.Part) bool {
	a, ok := c.Effects.Get(id, part)
	if !ok {
		return false
	}
	c.Effects.Remove(id, part)
	if a.Def.RemoveMessage != "" {
		c.Notify(Info, "%s", a.Def.RemoveMessage)
	}
	return true
}

// AddDisease infects the character with the legacy disease typ, taking its
// intensity cap and decay from the catalog.
func (c *Character) AddDisease(typ effect.ID, part body.Part, duration, intensity int, permanent bool) *effect.Disease {
	def := c.cat.Disease(typ)
	if d, ok := c.cat.Effects.Get(typ); ok {
		for _, t := range d.ImmuneTraits {
			if c.Traits.Has(t) {
				return nil
			}
		}
	}
	if duration == 0 {
		duration = def.Duration
	}
	return c.Diseases.Add(effect.Disease{
		Type:         typ,
		Part:         part,
		Duration:     duration,
		Intensity:    max(intensity, 1),
		MaxIntensity: def.MaxIntensity,
		Decay:        def.Decay,
		Permanent:    permanent,
	})
}

// Resists reports whether the character halves def: it has one of the
// effect's resist traits or is under one of its resist effects.
func (c *Character) Resists(def *effect.Def) bool {
	if c.Traits.HasAny(def.ResistTraits...) {
		return true
	}
	for _, id := range def.ResistEffects {
		if c.Effects.Has(id) {
			return true
		}
	}
	return false
}

// Afflicted reports whether the character has id as an effect or a disease.
func (c *Character) Afflicted(id effect.ID) bool {
	return c.Effects.Has(id) || c.Diseases.Has(id)
}

// Notify appends a player-facing message.
func (c *Character) Notify(kind MessageKind, format string, args ...any) {
	c.messages = append(c.messages, Message{Turn: c.Turn, Kind: kind, Text: fmt.Sprintf(format, args...)})
}

// DrainMessages returns and clears the pending messages.
func (c *Character) DrainMessages() []Message {
	out := c.messages
	c.messages = nil
	return out
}

// AddMissReason records a weighted cause of reduced accuracy.
func (c *Character) AddMissReason(reason string, weight int) {
	if weight <= 0 {
		return
	}
	c.missReasons = append(c.missReasons, MissReason{Reason: reason, Weight: weight})
}

// ClearMissReasons empties the miss-reason list.
func (c *Character) ClearMissReasons() { c.missReasons = c.missReasons[:0] }

// MissReasons returns a copy of the current miss-reason list.
func (c *Character) MissReasons() []MissReason {
	out := make([]MissReason, len(c.missReasons))
	copy(out, c.missReasons)
	return out
}

// Hurt deals dmg to pool. A destroyed head or torso kills the character.
func (c *Character) Hurt(pool body.HPPart, dmg int) {
	if dmg <= 0 || pool < 0 || pool >= body.NumHPParts {
		return
	}
	c.HP[pool] = max(c.HP[pool]-dmg, 0)
	if c.HP[pool] == 0 && (pool == body.HeadHP || pool == body.TorsoHP) {
		c.Die("succumbed to injuries")
	}
}

// HurtPart deals dmg to the healthiest pool backing p. Eyes and the whole
// body fall back to the torso.
func (c *Character) HurtPart(p body.Part, dmg int) {
	pools := body.HPPoolsFor(p)
	if len(pools) == 0 {
		pools = []body.HPPart{body.TorsoHP}
	}
	best := pools[0]
	for _, h := range pools[1:] {
		if c.HP[h] > c.HP[best] {
			best = h
		}
	}
	c.Hurt(best, dmg)
}

// HurtAll deals dmg to every pool.
func (c *Character) HurtAll(dmg int) {
	for _, h := range body.AllHP {
		c.Hurt(h, dmg)
	}
}

// Heal restores up to n HP to pool.
func (c *Character) Heal(pool body.HPPart, n int) {
	if n <= 0 || pool < 0 || pool >= body.NumHPParts {
		return
	}
	c.HP[pool] = min(c.HP[pool]+n, c.HPMax[pool])
}

// BloodLoss returns the percentage of HP lost across the pools backing p.
//
// Postcondition: 0 <= result <= 100; a zero maximum yields 0.
func (c *Character) BloodLoss(p body.Part) int {
	cur, mx := 0, 0
	for _, h := range body.HPPoolsFor(body.Parent(p)) {
		cur += c.HP[h]
		mx += c.HPMax[h]
	}
	if mx <= 0 {
		return 0
	}
	return min(max(100-100*cur/mx, 0), 100)
}

// ModPain adds n to pain. NOPAIN ignores increases.
func (c *Character) ModPain(n int) {
	if n > 0 && c.Traits.Has(trait.NoPain) {
		return
	}
	c.Pain += n
	c.Pain = clamp(c.Pain, MinPain, MaxPain)
}

// Clamp forces every scalar back inside its documented bounds.
func (c *Character) Clamp() {
	c.Pain = clamp(c.Pain, MinPain, MaxPain)
	c.PKill = clamp(c.PKill, MinPKill, MaxPKill)
	c.Radiation = clamp(c.Radiation, MinRadiation, MaxRadiation)
	c.Hunger = clamp(c.Hunger, MinHunger, MaxHunger)
	c.Thirst = clamp(c.Thirst, MinThirst, MaxThirst)
	c.Fatigue = clamp(c.Fatigue, MinFatigue, MaxFatigue)
	c.Stim = clamp(c.Stim, MinStim, MaxStim)
	c.Health = clamp(c.Health, MinHealth, MaxHealth)
	c.HealthMod = clamp(c.HealthMod, MinHealth, MaxHealth)
	for i := range c.Frostbite {
		c.Frostbite[i] = clamp(c.Frostbite[i], 0, MaxFrostbite)
		c.Wetness[i] = clamp(c.Wetness[i], 0, MaxWetness)
	}
}

// FallAsleep puts the character to sleep for duration turns.
func (c *Character) FallAsleep(duration int) {
	if c.Asleep() {
		return
	}
	c.AddEffect(effect.Sleep, body.Whole, duration, 1, false)
	c.Notify(Info, "You fall asleep.")
}

// WakeUp ends sleep and hibernation.
func (c *Character) WakeUp() {
	if !c.Asleep() {
		return
	}
	c.Effects.RemoveAll(effect.Sleep)
	c.Effects.RemoveAll(effect.LyingDown)
	c.Effects.RemoveAll(effect.Hibernating)
	c.Notify(Info, "You wake up.")
}

// Vomit empties the stomach, purging painkillers and alcohol.
func (c *Character) Vomit(hunger, thirst int) {
	c.Notify(Bad, "You throw up heavily!")
	c.Hunger += hunger
	c.Thirst += thirst
	for _, id := range []effect.ID{effect.PKill1, effect.PKill2, effect.PKill3, effect.Drunk} {
		c.Effects.RemoveAll(id)
	}
	c.Clamp()
}

// Die marks the character dead. The first cause sticks.
func (c *Character) Die(cause string) {
	if c.Dead {
		return
	}
	c.Dead = true
	c.CauseOfDeath = cause
	c.Notify(Bad, "You die: %s.", cause)
	c.Logger().Info("character died", zap.String("id", c.ID.String()), zap.String("cause", cause), zap.Int("turn", c.Turn))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
