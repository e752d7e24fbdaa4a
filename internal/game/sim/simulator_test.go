package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/biosim/internal/content"
	"github.com/cory-johannsen/biosim/internal/game/addiction"
	"github.com/cory-johannsen/biosim/internal/game/body"
	"github.com/cory-johannsen/biosim/internal/game/character"
	"github.com/cory-johannsen/biosim/internal/game/dice"
	"github.com/cory-johannsen/biosim/internal/game/effect"
	"github.com/cory-johannsen/biosim/internal/game/inventory"
	"github.com/cory-johannsen/biosim/internal/game/morale"
	"github.com/cory-johannsen/biosim/internal/game/sim"
	"github.com/cory-johannsen/biosim/internal/game/thermal"
	"github.com/cory-johannsen/biosim/internal/game/trait"
	"github.com/cory-johannsen/biosim/internal/game/world"
)

var centre = world.Point{X: 3, Y: 3}

func catalog(t testing.TB) *content.Catalog {
	t.Helper()
	cat, err := content.Default()
	require.NoError(t, err)
	return cat
}

func newChar(t testing.TB) *character.Character {
	t.Helper()
	c := character.New(catalog(t), "Ada", nil)
	c.Pos = centre
	c.Turn = 1
	return c
}

func mild() *world.Grid {
	g := world.NewGrid(7, 7, world.Weather{TemperatureF: 70, WaterTemperatureF: 60, Humidity: 40})
	g.SetIndoors(true)
	return g
}

func wear(t *testing.T, c *character.Character, id string) {
	t.Helper()
	def, ok := c.Catalog().Clothing.Clothing(id)
	require.True(t, ok, id)
	c.Equip.(*inventory.Equipment).Wear(def)
}

func hasMessage(msgs []character.Message, text string) bool {
	for _, m := range msgs {
		if m.Text == text {
			return true
		}
	}
	return false
}

func TestTurn_AdvancesAndClamps(t *testing.T) {
	c := newChar(t)
	c.Hunger = 99999
	sim.New(dice.Never, nil, nil).Turn(c, mild())
	assert.Equal(t, 2, c.Turn)
	assert.Equal(t, character.MaxHunger, c.Hunger)
}

func TestTurn_DeadCharacterIsFrozen(t *testing.T) {
	c := newChar(t)
	c.Die("testing")
	sim.New(dice.Never, nil, nil).Turn(c, mild())
	assert.Equal(t, 1, c.Turn)
}

func TestRun_StopsAtDeath(t *testing.T) {
	c := newChar(t)
	c.AddEffect(effect.Asthma, body.Whole, 1300, 1, false)
	n := sim.New(dice.Never, nil, nil).Run(c, mild(), 10)
	assert.Equal(t, 1, n)
	assert.True(t, c.Dead)
	assert.Equal(t, "asthma attack", c.CauseOfDeath)
}

func TestTurn_NeedsEveryTenTurns(t *testing.T) {
	c := newChar(t)
	c.Turn = 10
	c.Stim = 5
	c.PKill = 3
	s := sim.New(dice.Never, nil, nil)
	s.Turn(c, mild())
	assert.Equal(t, 1, c.Hunger)
	assert.Equal(t, 1, c.Thirst)
	assert.Equal(t, 1, c.Fatigue)
	assert.Equal(t, 4, c.Stim)
	assert.Equal(t, 2, c.PKill)

	s.Turn(c, mild())
	assert.Equal(t, 1, c.Hunger, "turn 11 is not a needs turn")
}

func TestApplyPersistent_Idempotent(t *testing.T) {
	c := newChar(t)
	c.Traits.Add(trait.Stylish)
	wear(t, c, "tuxedo")

	sim.ApplyPersistent(c, thermal.Report{})
	once := c.Morale.Entries()
	sim.ApplyPersistent(c, thermal.Report{})
	sim.ApplyPersistent(c, thermal.Report{})
	assert.Equal(t, once, c.Morale.Entries())

	e, ok := c.Morale.Get(morale.PermFancy)
	require.True(t, ok)
	assert.Equal(t, 15, e.Bonus, "super fancy 4, torso 6, legs 5")
}

func TestApplyPersistent_Constrained(t *testing.T) {
	c := newChar(t)
	c.Traits.Add(trait.Flowers)
	c.Traits.Add(trait.Roots)
	wear(t, c, "balclava")
	wear(t, c, "sneakers")
	sim.ApplyPersistent(c, thermal.Report{})
	e, ok := c.Morale.Get(morale.PermConstrained)
	require.True(t, ok)
	assert.Equal(t, -20, e.Bonus)
}

func TestApplyPersistent_Masochist(t *testing.T) {
	c := newChar(t)
	c.Traits.Add(trait.Masochist)
	c.Pain = 50
	sim.ApplyPersistent(c, thermal.Report{})
	e, ok := c.Morale.Get(morale.PermMasochist)
	require.True(t, ok)
	assert.Equal(t, 20, e.Bonus)

	c.PKill = 30
	sim.ApplyPersistent(c, thermal.Report{})
	e, _ = c.Morale.Get(morale.PermMasochist)
	assert.Equal(t, 20, e.Bonus, "painkillers stop the bonus from growing but leave the entry to expire")
}

func TestApplyPersistent_Personality(t *testing.T) {
	c := newChar(t)
	c.Traits.Add(trait.Optimistic)
	c.Morale.Add(morale.FoodBad, -20, -20, 100, 50, false, "")
	sim.ApplyPersistent(c, thermal.Report{})
	e, ok := c.Morale.Get(morale.PermOptimist)
	require.True(t, ok)
	assert.Equal(t, 9, e.Bonus)

	g := newChar(t)
	g.Traits.Add(trait.BadTemper)
	g.Morale.Add(morale.FoodGood, 20, 20, 100, 50, false, "")
	sim.ApplyPersistent(g, thermal.Report{})
	e, ok = g.Morale.Get(morale.PermBadTemper)
	require.True(t, ok)
	assert.Equal(t, -9, e.Bonus)
}

func TestApplyPersistent_ComfyAndWet(t *testing.T) {
	c := newChar(t)
	wear(t, c, "tshirt")
	c.Wetness.Set(body.Torso, 50)
	sim.ApplyPersistent(c, thermal.Report{Comfy: true})

	e, ok := c.Morale.Get(morale.Comfy)
	require.True(t, ok)
	assert.Equal(t, 3, e.Bonus)

	e, ok = c.Morale.Get(morale.PermWetClothes)
	require.True(t, ok)
	assert.Equal(t, -5, e.Bonus)
	assert.Equal(t, "Wet clothes", c.Catalog().MoraleNames.Describe(e, ""))
}

func TestMutate_RespectsCancelsAndReplaces(t *testing.T) {
	cat := catalog(t)
	rapid.Check(t, func(rt *rapid.T) {
		c := character.New(cat, "Mu", nil)
		c.Traits.Add(trait.Whiskers)
		c.Traits.Add(trait.PainResist)
		c.Traits.Add(trait.HeavySleeper)
		src := dice.NewSeededSource(rapid.Int64().Draw(rt, "seed"))

		id, ok := sim.Mutate(c, src)
		if !ok {
			rt.Fatalf("no eligible mutation")
		}
		if !c.Traits.Has(id) {
			rt.Fatalf("%s not granted", id)
		}
		def, _ := cat.Traits.Get(id)
		if !def.Mutable {
			rt.Fatalf("%s is not mutable", id)
		}
		for _, held := range c.Traits.Sorted() {
			if held != id && cat.Traits.Conflicts(id, held) {
				rt.Fatalf("%s kept alongside conflicting %s", held, id)
			}
		}
		for _, old := range def.Replaces {
			if c.Traits.Has(old) {
				rt.Fatalf("%s should have replaced %s", id, old)
			}
		}
	})
}

func TestTurn_RadiationAccumulates(t *testing.T) {
	cases := []struct {
		name string
		suit string
		want int
	}{
		{"exposed", "", 100},
		{"resistant suit", "cleansuit", 25},
		{"sealed suit", "hazmat_suit", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newChar(t)
			if tc.suit != "" {
				wear(t, c, tc.suit)
			}
			g := mild()
			g.SetRadiation(centre, 400)
			sim.New(dice.Never, nil, nil).Turn(c, g)
			assert.Equal(t, tc.want, c.Radiation)
		})
	}
}

func TestTurn_RadiationSickness(t *testing.T) {
	c := newChar(t)
	c.Radiation = 500
	c.Turn = 90
	sim.New(dice.Never, nil, nil).Turn(c, mild())
	for _, h := range body.AllHP {
		assert.Equal(t, c.HPMax[h]-5, c.HP[h], h.String())
	}
}

func TestTurn_RadiationMutates(t *testing.T) {
	c := newChar(t)
	c.Radiation = 2000
	c.Turn = 150
	sim.New(dice.FixedSource(0), nil, nil).Turn(c, mild())
	assert.Equal(t, 1, c.Traits.Len())
	assert.Equal(t, 995, c.Radiation)
	assert.Equal(t, 31, c.Hunger, "one from needs, thirty from vomiting")
}

func TestTurn_WetnessSoaksAndDries(t *testing.T) {
	c := newChar(t)
	g := mild()
	g.SetTerrain(centre, world.DeepWater)
	s := sim.New(dice.Never, nil, nil)
	s.Turn(c, g)
	for _, p := range body.ThermalParts {
		assert.Equal(t, character.MaxWetness, c.Wetness.Get(p), p.String())
	}

	c.Pos = world.Point{X: 1, Y: 1}
	c.DrainMessages()
	s.Run(c, g, 99)
	assert.Equal(t, 1, c.Wetness.Get(body.Torso))
	assert.False(t, c.Morale.Has(morale.DriedOff))

	s.Turn(c, g)
	assert.Equal(t, 0, c.Wetness.Get(body.Torso))
	assert.True(t, c.Morale.Has(morale.DriedOff))
	assert.True(t, hasMessage(c.DrainMessages(), "You feel dry again."))
}

func TestTurn_WaterproofPartsStayDry(t *testing.T) {
	c := newChar(t)
	wear(t, c, "boots_winter")
	g := mild()
	g.SetTerrain(centre, world.ShallowWater)
	sim.New(dice.Never, nil, nil).Turn(c, g)
	assert.Equal(t, 0, c.Wetness.Get(body.Feet))
	assert.Equal(t, character.MaxWetness, c.Wetness.Get(body.Legs))
	assert.Equal(t, 0, c.Wetness.Get(body.Torso))
}

func TestTurn_AsthmaUsesInhalerFirst(t *testing.T) {
	c := newChar(t)
	c.Traits.Add(trait.Asthma)
	c.Equip.(*inventory.Equipment).Tools["inhaler"] = 1
	s := sim.New(dice.FixedSource(0), nil, nil)

	s.Turn(c, mild())
	assert.Equal(t, 0, c.Equip.Charges("inhaler"))
	assert.False(t, c.Effects.Has(effect.Asthma))

	s.Turn(c, mild())
	assert.True(t, c.Effects.Has(effect.Asthma))
}

func TestTurn_SmokeLingers(t *testing.T) {
	c := newChar(t)
	g := mild()
	g.SetField(centre, world.FieldSmoke, 2)
	s := sim.New(dice.Never, nil, nil)

	s.Turn(c, g)
	require.True(t, c.Effects.Has(effect.Smoke))
	assert.Equal(t, 2, c.Effects.Duration(effect.Smoke, body.Whole))

	c.Pos = world.Point{X: 1, Y: 1}
	s.Turn(c, g)
	assert.True(t, c.Effects.Has(effect.Smoke))
	s.Turn(c, g)
	assert.False(t, c.Effects.Has(effect.Smoke))
}

func TestTurn_AlcoholWithdrawal(t *testing.T) {
	c := newChar(t)
	c.Addictions.Restore(addiction.Addiction{Type: addiction.Alcohol, Intensity: 5, Sated: 0})
	sim.New(dice.FixedSource(0), nil, nil).Turn(c, mild())

	e, ok := c.Morale.Get(morale.CravingAlcohol)
	require.True(t, ok)
	assert.Equal(t, -35, e.Bonus)
	assert.True(t, c.Effects.Has(effect.Shakes))
	assert.True(t, c.Effects.Has(effect.Hallu))
	assert.Equal(t, -1, c.Addictions.Get(addiction.Alcohol).Sated)
}

func TestTurn_UnsatedAddictionFades(t *testing.T) {
	c := newChar(t)
	c.Addictions.Restore(addiction.Addiction{Type: addiction.Caffeine, Intensity: 5, Sated: -4000})
	s := sim.New(dice.Never, nil, nil)

	last := 5
	for i := 0; i < 5000 && c.Addictions.Has(addiction.Caffeine); i++ {
		s.Turn(c, mild())
		if a := c.Addictions.Get(addiction.Caffeine); a != nil {
			require.LessOrEqual(t, a.Intensity, last)
			last = a.Intensity
		}
	}
	assert.False(t, c.Addictions.Has(addiction.Caffeine))
	assert.True(t, hasMessage(c.DrainMessages(), "You no longer crave caffeine."))
}

func TestProperty_TurnKeepsStateBounded(t *testing.T) {
	cat := catalog(t)
	defs := cat.Effects.All()
	terrains := []world.Terrain{world.Floor, world.ShallowWater, world.DeepWater}
	rapid.Check(t, func(rt *rapid.T) {
		g := world.NewGrid(7, 7, world.Weather{
			TemperatureF:      rapid.IntRange(-40, 110).Draw(rt, "temp"),
			WaterTemperatureF: rapid.IntRange(33, 80).Draw(rt, "water"),
			Wind:              rapid.IntRange(0, 50).Draw(rt, "wind"),
			Humidity:          rapid.IntRange(0, 100).Draw(rt, "humidity"),
			Sunny:             rapid.Bool().Draw(rt, "sunny"),
			Daylight:          rapid.Bool().Draw(rt, "daylight"),
		})
		g.SetTerrain(centre, rapid.SampledFrom(terrains).Draw(rt, "terrain"))
		g.SetRadiation(centre, rapid.IntRange(0, 500).Draw(rt, "rad"))
		g.SetField(world.Point{X: 4, Y: 3}, world.FieldFire, rapid.IntRange(0, 3).Draw(rt, "fire"))
		g.SetField(centre, world.FieldSmoke, rapid.IntRange(0, 2).Draw(rt, "smoke"))

		c := character.New(cat, "Prop", nil)
		c.Pos = centre
		c.Pain = rapid.IntRange(0, 300).Draw(rt, "pain")
		c.Stim = rapid.IntRange(-250, 250).Draw(rt, "stim")
		for i, n := 0, rapid.IntRange(0, 4).Draw(rt, "effects"); i < n; i++ {
			def := rapid.SampledFrom(defs).Draw(rt, "effect")
			part := body.Part(rapid.IntRange(-1, body.NumParts-1).Draw(rt, "part"))
			c.AddEffect(def.ID, part, rapid.IntRange(1, 5000).Draw(rt, "duration"), rapid.IntRange(1, 3).Draw(rt, "intensity"), false)
		}

		s := sim.New(dice.NewSeededSource(rapid.Int64().Draw(rt, "seed")), nil, nil)
		s.Run(c, g, rapid.IntRange(1, 40).Draw(rt, "turns"))

		check := func(name string, v, lo, hi int) {
			if v < lo || v > hi {
				rt.Fatalf("%s = %d outside [%d, %d]", name, v, lo, hi)
			}
		}
		check("pain", c.Pain, character.MinPain, character.MaxPain)
		check("pkill", c.PKill, character.MinPKill, character.MaxPKill)
		check("radiation", c.Radiation, character.MinRadiation, character.MaxRadiation)
		check("hunger", c.Hunger, character.MinHunger, character.MaxHunger)
		check("thirst", c.Thirst, character.MinThirst, character.MaxThirst)
		check("fatigue", c.Fatigue, character.MinFatigue, character.MaxFatigue)
		check("stim", c.Stim, character.MinStim, character.MaxStim)
		for _, p := range body.All {
			check("frostbite "+p.String(), c.Frostbite.Get(p), 0, character.MaxFrostbite)
			check("wetness "+p.String(), c.Wetness.Get(p), 0, character.MaxWetness)
		}
		for _, h := range body.AllHP {
			check("hp "+h.String(), c.HP[h], 0, c.HPMax[h])
		}
	})
}
