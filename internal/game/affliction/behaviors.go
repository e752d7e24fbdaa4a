package affliction

import (
	"github.com/cory-johannsen/biosim/internal/game/body"
	"github.com/cory-johannsen/biosim/internal/game/character"
	"github.com/cory-johannsen/biosim/internal/game/dice"
	"github.com/cory-johannsen/biosim/internal/game/effect"
	"github.com/cory-johannsen/biosim/internal/game/trait"
	"github.com/cory-johannsen/biosim/internal/game/world"
)

// Tick is the context handed to a Behavior for one active effect.
type Tick struct {
	C       *character.Character
	A       *effect.Active
	Snap    world.Snapshot
	Src     dice.Source
	Reduced bool
}

// OneIn reports a 1-in-n chance.
func (t *Tick) OneIn(n int) bool { return dice.OneIn(t.Src, n) }

// Rng returns a value in [lo, hi].
func (t *Tick) Rng(lo, hi int) int { return dice.Rng(t.Src, lo, hi) }

// end schedules the effect for removal at the end of the turn.
func (t *Tick) end() { t.A.Duration = 0 }

// target is the part damage lands on: the effect's own part, or the torso
// for whole-body effects.
func (t *Tick) target() body.Part {
	if t.A.Part.Valid() {
		return t.A.Part
	}
	return body.Torso
}

// Behavior is the special per-turn logic of one effect. It runs after the
// effect's channels and may change its own duration or intensity.
type Behavior func(t *Tick)

var behaviors = map[effect.ID]Behavior{
	effect.OnFire:      onFire,
	effect.Fungus:      fungus,
	effect.Spores:      spores,
	effect.Bleed:       bleed,
	effect.Hallu:       hallu,
	effect.Cold:        cold,
	effect.Hot:         hot,
	effect.Frostbite:   frostbite,
	effect.Tapeworm:    flavor(3072, "Your bowels gurgle..."),
	effect.Bloodworms:  flavor(3072, "You feel oddly lightheaded."),
	effect.Brainworm:   flavor(1536, "Your head aches with a dull throb."),
	effect.Paincysts:   flavor(3072, "Your joints ache."),
	effect.Teleglow:    teleglow,
	effect.Asthma:      asthma,
	effect.Sleep:       sleep,
	effect.AlarmClock:  alarmClock,
	effect.Bite:        bite,
	effect.Infected:    infected,
	effect.Dermatik:    dermatik,
	effect.Formication: formication,
	effect.Poison:      flavor(150, "You feel sick."),
	effect.BadPoison:   badPoison,
	effect.FoodPoison:  foodPoison,
	effect.Shakes:      flavor(50, "Your hands are shaking."),
	effect.Drunk:       drunk,
	effect.CommonCold:  commonCold,
	effect.Flu:         flu,
	effect.Blisters:    blisters,
	effect.Smoke:       smoke,
	effect.TearGas:     tearGas,
	effect.Downed:      downed,
	effect.Stunned:     stunned,
	effect.Boomered:    boomered,
	effect.LyingDown:   lyingDown,
}

// Behaviors returns the IDs that carry special behavior.
func Behaviors() []effect.ID {
	out := make([]effect.ID, 0, len(behaviors))
	for id := range behaviors {
		out = append(out, id)
	}
	return out
}

func flavor(n int, msg string) Behavior {
	return func(t *Tick) {
		if !t.C.Asleep() && t.OneIn(n) {
			t.C.Notify(character.Bad, "%s", msg)
		}
	}
}

func vomit(t *Tick) {
	t.C.Vomit(t.Rng(30, 50), t.Rng(30, 50))
}

func cough(t *Tick) {
	t.C.Notify(character.Bad, "You cough heavily.")
	if t.C.Asleep() && t.OneIn(4) {
		t.C.WakeUp()
	}
	if t.C.Traits.Has(trait.Asthma) && t.OneIn(20) {
		t.C.AddEffect(effect.Asthma, body.Whole, 50*t.Rng(1, 4), 1, false)
	}
}

func onFire(t *Tick) {
	if t.C.Wetness.Get(body.Torso) > 50 {
		t.end()
		return
	}
	t.C.HurtAll(t.Rng(1, t.A.Intensity))
	if t.OneIn(3) {
		t.C.Notify(character.Bad, "You're burning!")
	}
}

// Fungal infections count up and escalate with age.
const (
	fungusGrowth = 3600
	fungusBloom  = 7200
)

func fungus(t *Tick) {
	if !t.Reduced || t.C.Turn%2 == 0 {
		t.A.Duration++
	}
	switch d := t.A.Duration; {
	case d > fungusBloom:
		t.A.SetIntensity(3)
		if t.OneIn(600) {
			t.C.Notify(character.Bad, "Your flesh tears open and fungus sprouts from the wounds!")
			t.C.HurtAll(t.Rng(5, 15))
			if n := t.Snap.SpawnHostile("fungal_spore", t.Rng(1, 3)); n > 0 {
				t.C.Notify(character.Warning, "Spores burst from your body!")
			}
		}
	case d > fungusGrowth:
		t.A.SetIntensity(2)
		if t.OneIn(1200) {
			t.C.Notify(character.Bad, "You feel nauseous.")
			vomit(t)
		}
	default:
		if t.OneIn(2400) {
			t.C.Notify(character.Bad, "You feel a slight itch.")
		}
	}
}

func spores(t *Tick) {
	n := 100 / t.A.Intensity
	if t.Reduced {
		n *= 2
	}
	if t.OneIn(n) && !t.C.Effects.Has(effect.Fungus) {
		t.C.AddEffect(effect.Fungus, body.Whole, 1, 1, true)
	}
}

func bleed(t *Tick) {
	if t.C.Effects.Has(effect.LyingDown) && t.OneIn(10) {
		t.A.ModIntensity(-1)
		if t.A.Intensity == 0 {
			t.C.Notify(character.Good, "Your %s stops bleeding.", partName(t.A.Part))
		}
	}
}

// Hallucination timeline, keyed to the remaining duration of a full dose.
const (
	halluDose     = 3600
	halluNotice   = halluDose * 95 / 100
	halluComeup   = halluDose * 90 / 100
	halluPeak     = halluDose * 80 / 100
	halluComedown = halluDose * 30 / 100
)

func hallu(t *Tick) {
	c := t.C
	switch d := t.A.Duration; {
	case d > halluNotice:
		if t.OneIn(300) {
			c.Notify(character.Warning, "You feel a little strange.")
		}
	case d > halluComeup:
		if t.OneIn(100) {
			c.Notify(character.Bad, "You feel nauseous.")
			if t.OneIn(5) {
				vomit(t)
			}
		}
	case d == halluPeak:
		c.Notify(character.Warning, "Something feels very, very wrong.")
	case d > halluPeak:
		if c.Stim < 100 {
			c.Stim++
		}
		c.Hunger--
	case d == halluComedown:
		c.Notify(character.Info, "You feel totally exhausted.")
		c.Fatigue += 100
	case d > halluComedown:
		if t.OneIn(10) {
			c.AddEffect(effect.Visuals, body.Whole, t.Rng(15, 30), 1, false)
		}
	}
}

func cold(t *Tick) {
	c, i := t.C, t.A.Intensity
	switch t.A.Part {
	case body.Torso:
		if i >= 2 && !c.Asleep() && t.OneIn(400) {
			c.Notify(character.Bad, "You shiver uncontrollably.")
		}
	case body.Hands:
		if i == 3 && t.OneIn(500) {
			c.Notify(character.Bad, "Your fingers are numb.")
		}
	case body.Head:
		if i == 3 && t.OneIn(400) {
			c.Notify(character.Bad, "Your thoughts are sluggish from the cold.")
		}
	}
}

func hot(t *Tick) {
	c, i := t.C, t.A.Intensity
	switch t.A.Part {
	case body.Head:
		if i == 3 && t.OneIn(300) {
			c.Notify(character.Bad, "Your head is pounding from the heat.")
			c.ModPain(1)
		}
	case body.Torso:
		if i >= 2 && t.OneIn(50) {
			c.Thirst++
		}
		if i == 3 && t.OneIn(600) {
			c.Notify(character.Bad, "The heat makes you nauseous.")
			vomit(t)
		}
	}
}

func frostbite(t *Tick) {
	if t.A.Intensity == 2 && t.OneIn(300) {
		t.C.Notify(character.Bad, "Your %s stings with frostbite.", partName(t.A.Part))
		t.C.ModPain(1)
	}
}

func teleglow(t *Tick) {
	c, d := t.C, t.A.Duration
	if d > 6000 && t.OneIn(3000) {
		if t.Snap.SpawnHostile("flaming_eye", 1) > 0 {
			c.Notify(character.Warning, "A glowing eye opens in the air beside you!")
		}
	}
	if d > 3600 {
		if t.OneIn(1200) {
			c.Notify(character.Bad, "Your vision is filled with bright lights...")
			c.AddEffect(effect.Blind, body.Whole, t.Rng(50, 100), 1, false)
		}
		if !c.Asleep() && t.OneIn(2500) {
			c.Notify(character.Bad, "You lose consciousness.")
			c.FallAsleep(1200)
		}
		if t.OneIn(4000) {
			vomit(t)
		}
		if t.OneIn(5000) {
			c.AddEffect(effect.Hallu, body.Whole, halluDose, 1, false)
		}
		return
	}
	if t.OneIn(4000) {
		c.Notify(character.Warning, "You feel a strange pulling sensation.")
	}
}

// Asthma kills once attacks stack past this many turns.
const (
	asthmaFatal = 1200
	inhaler     = "inhaler"
)

func asthma(t *Tick) {
	c := t.C
	if t.A.Duration > asthmaFatal {
		c.Notify(character.Bad, "Your asthma overcomes you. You stop breathing.")
		c.Die("asthma attack")
		return
	}
	if c.Asleep() {
		c.Notify(character.Bad, "Your asthma wakes you up!")
		c.WakeUp()
		return
	}
	if c.Equip.UseCharge(inhaler) {
		c.Notify(character.Good, "You take a puff from your inhaler.")
		t.end()
	}
}

// Sleep state machine constants.
const (
	hibernateHunger = -60
	hibernateWake   = 300
)

func sleep(t *Tick) {
	c := t.C
	hibernating := c.Effects.Has(effect.Hibernating)
	if !hibernating && c.Traits.Has(trait.Hibernate) && c.Hunger < hibernateHunger && c.Thirst < hibernateHunger {
		c.AddEffect(effect.Hibernating, body.Whole, 1, 1, true)
		c.Notify(character.Info, "You settle into a long hibernation.")
		hibernating = true
	}
	if hibernating {
		if c.Hunger > hibernateWake || c.Thirst > hibernateWake {
			c.Notify(character.Warning, "Hunger rouses you from hibernation.")
			c.WakeUp()
			return
		}
		t.A.Duration = max(t.A.Duration, 2)
	}

	c.Fatigue--
	if t.OneIn(300) {
		c.Health++
	}

	switch {
	case c.Effects.Intensity(effect.Cold, body.Torso) == 3 && t.OneIn(100):
		c.Notify(character.Bad, "The cold wakes you up.")
		c.WakeUp()
	case c.Effects.Intensity(effect.Hot, body.Torso) == 3 && t.OneIn(100):
		c.Notify(character.Bad, "It is too hot to sleep.")
		c.WakeUp()
	case c.Fatigue <= 0 && !hibernating:
		n := 6
		if c.Traits.HasAny(trait.HeavySleeper, trait.HeavySleeper2) {
			n = 12
		}
		if t.OneIn(n) {
			c.WakeUp()
		}
	}
}

func alarmClock(t *Tick) {
	c := t.C
	if t.A.Duration != 1 {
		return
	}
	if !c.Asleep() {
		c.Notify(character.Info, "Your alarm clock beeps.")
		return
	}
	heavy := c.Traits.HasAny(trait.HeavySleeper, trait.HeavySleeper2)
	if c.Effects.Has(effect.Deaf) || (heavy && t.OneIn(3)) {
		c.Notify(character.Info, "Your alarm clock rings, but you sleep through it.")
		t.A.Duration += 100
		return
	}
	c.Notify(character.Info, "Your alarm clock wakes you up.")
	c.WakeUp()
}

// Bite and infection progression.
const (
	biteToInfection  = 3600
	infectionFatal   = 14400
	infectionStage   = 4800
	recoveryInterval = 10
	biteOdds         = 108000
	infectedOdds     = 864000
)

func recoveryFactor(c *character.Character) int {
	f := 100 + c.Health/10
	if c.Traits.Has(trait.InfResist) {
		f += 200
	}
	if c.Effects.Has(effect.Recover) {
		f -= c.Effects.Duration(effect.Recover, body.Whole) / 600
	}
	return f
}

// bite and infected count their duration up toward the next stage, so the
// entry must not age whatever way it was added.
func bite(t *Tick) {
	c, a := t.C, t.A
	a.Permanent = true
	if c.Turn%recoveryInterval == 0 && dice.XInY(t.Src, recoveryFactor(c), biteOdds) {
		c.Notify(character.Good, "Your %s wound begins to feel better.", partName(a.Part))
		t.end()
		return
	}
	if a.Duration > biteToInfection {
		c.AddEffect(effect.Infected, a.Part, 1, 1, true)
		t.end()
		return
	}
	a.Duration++
}

func infected(t *Tick) {
	c, a := t.C, t.A
	a.Permanent = true
	if c.Turn%recoveryInterval == 0 && dice.XInY(t.Src, recoveryFactor(c), infectedOdds) {
		c.Notify(character.Good, "Your %s wound begins to feel better.", partName(a.Part))
		c.AddEffect(effect.Recover, body.Whole, 4*a.Duration, 1, false)
		t.end()
		return
	}
	if a.Duration > infectionFatal {
		c.Notify(character.Bad, "The infection in your %s overwhelms you.", partName(a.Part))
		c.Die("infection")
		return
	}
	a.Duration++
	a.SetIntensity(1 + a.Duration/infectionStage)
}

// Dermatik eggs hatch after this many turns.
const dermatikHatch = 14400

func dermatik(t *Tick) {
	c, a := t.C, t.A
	a.Duration++
	if a.Duration > dermatikHatch {
		c.Notify(character.Bad, "Insect larvae burst out of your %s!", partName(a.Part))
		c.HurtPart(t.target(), t.Rng(5, 10))
		t.Snap.SpawnHostile("dermatik_larva", t.Rng(1, 4))
		c.RemoveEffect(effect.Formication, a.Part)
		t.end()
		return
	}
	if t.OneIn(3600) {
		c.AddEffect(effect.Formication, a.Part, 600, 1, false)
	}
}

func formication(t *Tick) {
	if t.C.Asleep() || !t.OneIn(600/t.A.Intensity) {
		return
	}
	t.C.Notify(character.Bad, "You start scratching your %s!", partName(t.A.Part))
	t.C.HurtPart(t.target(), 1)
}

func badPoison(t *Tick) {
	if t.OneIn(100) {
		t.C.Notify(character.Bad, "You feel very sick.")
	}
	if !t.Reduced && t.OneIn(600) {
		vomit(t)
	}
}

func foodPoison(t *Tick) {
	n := 300
	if t.Reduced {
		n = 600
	}
	if t.OneIn(n) {
		vomit(t)
	}
}

func drunk(t *Tick) {
	i := t.A.Intensity
	if i >= 2 && !t.C.Asleep() && t.OneIn(200) {
		t.C.Notify(character.Info, "You hiccup.")
	}
	if i == 3 && t.OneIn(500) {
		vomit(t)
	}
}

func commonCold(t *Tick) {
	if t.OneIn(300) {
		cough(t)
	}
}

func flu(t *Tick) {
	if t.OneIn(300) {
		cough(t)
	}
	if t.OneIn(3600) {
		vomit(t)
	}
}

func blisters(t *Tick) {
	if t.A.Part == body.Hands && t.C.Wielding && t.OneIn(10) {
		t.C.Notify(character.Bad, "Your blistered hands sting.")
		t.C.ModPain(1)
	}
}

func smoke(t *Tick) {
	if t.OneIn(5) {
		cough(t)
	}
}

func tearGas(t *Tick) {
	if t.OneIn(3) {
		cough(t)
		t.C.ModPain(1)
	}
}

func downed(t *Tick) {
	if t.C.Asleep() {
		return
	}
	if t.Rng(0, 20) < t.C.Cur.Dex {
		t.C.Notify(character.Info, "You get back on your feet.")
		t.end()
	}
}

func stunned(t *Tick) {
	if t.Reduced && t.A.Duration > 1 {
		t.A.Duration--
	}
}

func boomered(t *Tick) {
	if t.C.Wetness.Get(body.Head) > 50 || t.Snap.Submerged(false) {
		t.C.Notify(character.Good, "The bile washes off.")
		t.end()
	}
}

func lyingDown(t *Tick) {
	c := t.C
	if t.A.Duration != 1 || c.Asleep() {
		return
	}
	n := 3
	if c.Fatigue > 200 {
		n = 1
	}
	if t.OneIn(n) {
		c.FallAsleep(6000)
		return
	}
	c.Notify(character.Info, "You lie awake.")
}
