package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/biosim/internal/content"
	"github.com/cory-johannsen/biosim/internal/game/body"
	"github.com/cory-johannsen/biosim/internal/game/character"
	"github.com/cory-johannsen/biosim/internal/game/effect"
	"github.com/cory-johannsen/biosim/internal/game/inventory"
	"github.com/cory-johannsen/biosim/internal/game/morale"
	"github.com/cory-johannsen/biosim/internal/game/stats"
	"github.com/cory-johannsen/biosim/internal/game/trait"
)

func newChar(t testing.TB) *character.Character {
	t.Helper()
	cat, err := content.Default()
	require.NoError(t, err)
	return character.New(cat, "Tess", nil)
}

func TestReset_Baseline(t *testing.T) {
	c := newChar(t)
	stats.Reset(c)
	assert.Equal(t, character.Bonuses{}, c.Bonus)
	assert.Equal(t, c.Base, c.Cur)
	assert.Equal(t, 100, c.Speed)
	assert.Empty(t, c.MissReasons())
}

func TestReset_Pain(t *testing.T) {
	c := newChar(t)
	c.Pain = 60
	stats.Reset(c)
	assert.Equal(t, -4, c.Bonus.Str)
	assert.Equal(t, -4, c.Bonus.Dex)
	assert.Equal(t, -3, c.Bonus.Per)
	assert.Equal(t, -3, c.Bonus.Int)
	assert.Equal(t, 58, c.Speed, "pain penalty 60*0.7 = 42")
	require.Len(t, c.MissReasons(), 1)
	assert.Equal(t, character.MissReason{Reason: stats.ReasonPain, Weight: 4}, c.MissReasons()[0])
}

func TestReset_PainResistHalves(t *testing.T) {
	c := newChar(t)
	c.Traits.Add(trait.PainResist)
	c.Pain = 60
	stats.Reset(c)
	assert.Equal(t, -2, c.Bonus.Str)
	assert.Equal(t, -2, c.Bonus.Int, "1 + 30/25")
}

func TestReset_PainKillerOffsets(t *testing.T) {
	c := newChar(t)
	c.Pain = 30
	c.PKill = 30
	stats.Reset(c)
	assert.Equal(t, 0, c.Bonus.Str)
	assert.Equal(t, 97, c.Speed, "pkill 30 costs 3 speed")
}

func TestReset_CenobiteIgnoresPainStrDex(t *testing.T) {
	c := newChar(t)
	c.Traits.Add(trait.Cenobite)
	c.Pain = 60
	stats.Reset(c)
	assert.Equal(t, 0, c.Bonus.Str)
	assert.Equal(t, 0, c.Bonus.Dex)
	assert.Equal(t, -3, c.Bonus.Per)
	assert.Equal(t, 90, c.Speed, "42/4 = 10")
}

func TestReset_IntSlime(t *testing.T) {
	c := newChar(t)
	c.Traits.Add(trait.IntSlime)
	c.Pain = 10
	stats.Reset(c)
	assert.Equal(t, -1-11, c.Bonus.Int, "catalog -1, then 1 + pain")
}

func TestReset_Morale(t *testing.T) {
	c := newChar(t)
	c.Morale.Add(morale.FeelingGood, 200, 200, 1000, 500, false, "")
	stats.Reset(c)
	assert.Equal(t, 1, c.Bonus.Str)
	assert.Equal(t, 1, c.Bonus.Dex)
	assert.Equal(t, 1, c.Bonus.Per)
	assert.Equal(t, 2, c.Bonus.Int)
	assert.Equal(t, 108, c.Speed)

	c.Morale = morale.NewTracker()
	c.Morale.Add(morale.FeelingBad, -99, -99, 1000, 500, false, "")
	stats.Reset(c)
	assert.Equal(t, 0, c.Bonus.Int, "below the threshold")
}

func TestReset_Radiation(t *testing.T) {
	c := newChar(t)
	c.Radiation = 240
	stats.Reset(c)
	assert.Equal(t, -3, c.Bonus.Str)
	assert.Equal(t, -2, c.Bonus.Dex)
	assert.Equal(t, -2, c.Bonus.Per)
	assert.Equal(t, -2, c.Bonus.Int)
	assert.Equal(t, 94, c.Speed)
}

func TestReset_Stimulants(t *testing.T) {
	c := newChar(t)
	c.Stim = 20
	stats.Reset(c)
	assert.Equal(t, 2, c.Bonus.Dex)
	assert.Equal(t, 2, c.Bonus.Per)
	assert.Equal(t, 3, c.Bonus.Int)
	assert.Equal(t, 120, c.Speed)

	c.Stim = 55
	stats.Reset(c)
	assert.Equal(t, 5-5, c.Bonus.Dex)
	assert.Equal(t, 7-3, c.Bonus.Per)
	assert.Equal(t, 9-2, c.Bonus.Int)

	c.Stim = -20
	stats.Reset(c)
	assert.Equal(t, -2-2, c.Bonus.Dex, "crash")
	assert.Equal(t, -2-1, c.Bonus.Per)
	assert.Equal(t, -3-1, c.Bonus.Int)
	assert.Equal(t, 80, c.Speed)
}

func TestReset_Bionics(t *testing.T) {
	c := newChar(t)
	c.Bionics[stats.BioHydraulics] = false
	c.Bionics[stats.BioEyeEnhancer] = false
	stats.Reset(c)
	assert.Equal(t, 0, c.Bonus.Str, "unpowered hydraulics do nothing")
	assert.Equal(t, 2, c.Bonus.Per)
	c.Bionics[stats.BioHydraulics] = true
	stats.Reset(c)
	assert.Equal(t, 20, c.Bonus.Str)
}

func TestReset_TraitConditionals(t *testing.T) {
	c := newChar(t)
	c.Traits.Add(trait.CompoundEyes)
	c.Traits.Add(trait.WhiskersRat)
	stats.Reset(c)
	assert.Equal(t, 1, c.Bonus.Per)
	assert.Equal(t, 2, c.Bonus.Dodge)

	cat := c.Catalog()
	eq := inventory.NewEquipment()
	for _, id := range []string{"sunglasses", "balclava"} {
		def, ok := cat.Clothing.Clothing(id)
		require.True(t, ok)
		eq.Wear(def)
	}
	c.Equip = eq
	stats.Reset(c)
	assert.Equal(t, 0, c.Bonus.Per)
	assert.Equal(t, 0, c.Bonus.Dodge)
}

func TestReset_TraitStatsAndMissReason(t *testing.T) {
	c := newChar(t)
	c.Traits.Add("THICK_SCALES")
	c.Traits.Add("CHITIN3")
	stats.Reset(c)
	assert.Equal(t, -3, c.Bonus.Dex)
	assert.Equal(t, 90, c.Speed)
	require.Len(t, c.MissReasons(), 1)
	assert.Equal(t, 2, c.MissReasons()[0].Weight)
}

func TestReset_EffectTiersAndParts(t *testing.T) {
	c := newChar(t)
	c.AddEffect(effect.Shakes, body.Whole, 10, 1, false)
	c.AddEffect(effect.Cold, body.Legs, 10, 3, false)
	c.AddEffect(effect.Frostbite, body.Hands, 10, 2, false)
	stats.Reset(c)
	assert.Equal(t, -4-2, c.Bonus.Dex)
	assert.Equal(t, -1, c.Bonus.Str)
	assert.Equal(t, 94, c.Speed)
}

func TestReset_ResistHalvesEffectStats(t *testing.T) {
	c := newChar(t)
	c.AddEffect(effect.Poison, body.Whole, 10, 1, false)
	stats.Reset(c)
	assert.Equal(t, -3, c.Bonus.Dex)
	c.Traits.Add(trait.PoisResist)
	stats.Reset(c)
	assert.Equal(t, -1, c.Bonus.Dex)
	assert.Equal(t, -1, c.Bonus.Str)
}

func TestReset_EncumbranceHitsDodgeAndHit(t *testing.T) {
	c := newChar(t)
	def, ok := c.Catalog().Clothing.Clothing("hazmat_suit")
	require.True(t, ok)
	eq := inventory.NewEquipment()
	eq.Wear(def)
	c.Equip = eq
	c.Style = character.Style{Dodge: 2, Hit: 1}
	stats.Reset(c)
	assert.Equal(t, 2-18-37, c.Bonus.Dodge)
	assert.Equal(t, 1-37, c.Bonus.Hit)
}

func TestSpeed_NeedsAndQuick(t *testing.T) {
	c := newChar(t)
	c.Thirst = 140
	c.Hunger = 200
	stats.Reset(c)
	assert.Equal(t, 80, c.Speed)
	c.Traits.Add(trait.Quick)
	stats.Reset(c)
	assert.Equal(t, 88, c.Speed)
}

func TestSpeed_Floor(t *testing.T) {
	c := newChar(t)
	c.Hunger = 6000
	stats.Reset(c)
	assert.Equal(t, 25, c.Speed)
}

func TestCurrentStatsNeverNegative(t *testing.T) {
	c := newChar(t)
	c.Pain = 250
	c.Radiation = 2000
	stats.Reset(c)
	assert.GreaterOrEqual(t, c.Cur.Str, 0)
	assert.GreaterOrEqual(t, c.Cur.Dex, 0)
	assert.GreaterOrEqual(t, c.Cur.Int, 0)
	assert.GreaterOrEqual(t, c.Cur.Per, 0)
}

func TestReset_Idempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := newChar(t)
		c.Pain = rapid.IntRange(0, 250).Draw(rt, "pain")
		c.PKill = rapid.IntRange(0, 200).Draw(rt, "pkill")
		c.Radiation = rapid.IntRange(0, 2000).Draw(rt, "rad")
		c.Stim = rapid.IntRange(-200, 200).Draw(rt, "stim")
		c.Hunger = rapid.IntRange(-1000, 6000).Draw(rt, "hunger")
		c.Thirst = rapid.IntRange(-1000, 1200).Draw(rt, "thirst")
		if rapid.Bool().Draw(rt, "quick") {
			c.Traits.Add(trait.Quick)
		}
		if rapid.Bool().Draw(rt, "cold") {
			c.AddEffect(effect.Cold, body.Torso, 10, rapid.IntRange(1, 3).Draw(rt, "ci"), false)
		}
		c.Morale.Add(morale.FeelingGood, rapid.IntRange(-300, 300).Draw(rt, "m"), 300, 100, 50, false, "")

		stats.Reset(c)
		bonus, cur, speed, reasons := c.Bonus, c.Cur, c.Speed, c.MissReasons()
		stats.Reset(c)
		assert.Equal(rt, bonus, c.Bonus)
		assert.Equal(rt, cur, c.Cur)
		assert.Equal(rt, speed, c.Speed)
		assert.Equal(rt, reasons, c.MissReasons())
	})
}

func TestReset_DiseasesApplyTierStats(t *testing.T) {
	c := newChar(t)
	c.AddDisease(effect.CommonCold, body.Whole, 0, 1, false)
	stats.Reset(c)
	assert.Equal(t, -3, c.Bonus.Str)
	assert.Equal(t, -2, c.Bonus.Int)
}
