package thermal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/biosim/internal/content"
	"github.com/cory-johannsen/biosim/internal/game/body"
	"github.com/cory-johannsen/biosim/internal/game/character"
	"github.com/cory-johannsen/biosim/internal/game/dice"
	"github.com/cory-johannsen/biosim/internal/game/effect"
	"github.com/cory-johannsen/biosim/internal/game/inventory"
	"github.com/cory-johannsen/biosim/internal/game/thermal"
	"github.com/cory-johannsen/biosim/internal/game/world"
)

var centre = world.Point{X: 5, Y: 5}

func newChar(t testing.TB) *character.Character {
	t.Helper()
	cat, err := content.Default()
	require.NoError(t, err)
	c := character.New(cat, "Nadia", nil)
	c.Pos = centre
	return c
}

func newModel() *thermal.Model {
	return thermal.NewModel(dice.NewSeededSource(7), nil)
}

func TestCelsiusUnits(t *testing.T) {
	assert.Equal(t, 0, thermal.CelsiusUnits(32))
	assert.Equal(t, 10000, thermal.CelsiusUnits(212))
	assert.Equal(t, -3000, thermal.CelsiusUnits(-22))
}

func TestWindchill(t *testing.T) {
	assert.Equal(t, -21, thermal.Windchill(-22, 50, 10))
	assert.Equal(t, -19, thermal.Windchill(0, 50, 15))
	assert.Equal(t, 0, thermal.Windchill(20, 50, 3), "calm air below 4 mph")
	assert.Equal(t, 15, thermal.Windchill(90, 80, 0), "humid heat feels hotter")
	assert.Less(t, thermal.Windchill(90, 80, 10), 15)
}

func TestTierOf(t *testing.T) {
	cases := []struct {
		temp int
		want thermal.Tier
	}{
		{400, thermal.TierFreezing},
		{500, thermal.TierVeryCold},
		{1999, thermal.TierVeryCold},
		{3499, thermal.TierCold},
		{3500, thermal.TierComfortable},
		{6500, thermal.TierComfortable},
		{6501, thermal.TierHot},
		{8001, thermal.TierVeryHot},
		{9501, thermal.TierScorching},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, thermal.TierOf(tc.temp), "temp %d", tc.temp)
	}
	assert.Equal(t, "chilly", thermal.TierCold.String())
}

func TestUpdate_ColdExposureDescendsOneTierAtATime(t *testing.T) {
	g := world.NewGrid(11, 11, world.Weather{TemperatureF: -22, WaterTemperatureF: 33, Wind: 10, Humidity: 50})
	c := newChar(t)
	m := newModel()

	prev := 0
	for turn := 0; turn < 700; turn++ {
		m.Update(c, world.Take(g, c.Pos))
		cur := c.Effects.Intensity(effect.Cold, body.Torso)
		require.GreaterOrEqual(t, cur, prev, "turn %d", turn)
		require.LessOrEqual(t, cur-prev, 1, "turn %d skipped a tier", turn)
		prev = cur
	}
	assert.Equal(t, 3, prev)
	assert.Equal(t, 2, c.Effects.Intensity(effect.Frostbite, body.Hands))
	for _, p := range body.FrostbiteParts {
		assert.LessOrEqual(t, c.Frostbite.Get(p), character.MaxFrostbite)
	}
	assert.Less(t, c.TempConv.Get(body.Torso), thermal.Freezing)

	var warned bool
	for _, msg := range c.DrainMessages() {
		if msg.Text == "You feel your torso beginning to go numb from the cold!" {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestUpdate_AdjacentFireThawsHands(t *testing.T) {
	// 5°F with a 25 mph wind is the medium frostbite band.
	g := world.NewGrid(11, 11, world.Weather{TemperatureF: 5, WaterTemperatureF: 33, Wind: 25, Humidity: 50})
	g.SetField(world.Point{X: 6, Y: 5}, world.FieldFire, 3)
	c := newChar(t)
	c.Temp = body.Fill(2000)
	c.Frostbite.Set(body.Hands, 1000)
	m := newModel()

	last := c.Frostbite.Get(body.Hands)
	for turn := 0; turn < 400; turn++ {
		m.Update(c, world.Take(g, c.Pos))
		now := c.Frostbite.Get(body.Hands)
		require.LessOrEqual(t, now, last, "turn %d", turn)
		require.Zero(t, c.Effects.Intensity(effect.Frostbite, body.Hands), "turn %d", turn)
		if turn == 9 {
			assert.Equal(t, 940, now, "thaw plus fire relief")
		}
		last = now
	}
	assert.Zero(t, last)
	assert.Greater(t, c.Temp.Get(body.Hands), thermal.Cold)
	assert.LessOrEqual(t, c.TempConv.Get(body.Hands), thermal.Hot, "fire warmth is capped")
}

func TestUpdate_ColdHandsWithoutFireGainFrostbite(t *testing.T) {
	g := world.NewGrid(11, 11, world.Weather{TemperatureF: 5, WaterTemperatureF: 33, Wind: 25, Humidity: 50})
	c := newChar(t)
	c.Temp = body.Fill(2000)
	c.Frostbite.Set(body.Hands, 1000)
	m := newModel()

	m.Update(c, world.Take(g, c.Pos))
	assert.Equal(t, 1008, c.Frostbite.Get(body.Hands), "medium risk")
}

func TestUpdate_RelaxationApproachesConvergence(t *testing.T) {
	g := world.NewGrid(11, 11, world.Weather{TemperatureF: 70, WaterTemperatureF: 60, Humidity: 50})
	g.SetIndoors(true)
	c := newChar(t)
	c.Temp = body.Fill(3000)
	c.AddEffect(effect.Cold, body.Torso, 1, 1, true)
	m := newModel()

	gap := func() int {
		d := c.Temp.Get(body.Torso) - c.TempConv.Get(body.Torso)
		if d < 0 {
			return -d
		}
		return d
	}
	m.Update(c, world.Take(g, c.Pos))
	last := gap()
	for turn := 0; turn < 300; turn++ {
		m.Update(c, world.Take(g, c.Pos))
		require.LessOrEqual(t, gap(), last, "turn %d", turn)
		last = gap()
	}
	assert.Greater(t, c.Temp.Get(body.Torso), thermal.Cold)
	assert.False(t, c.Effects.Has(effect.Cold))
}

func TestUpdate_WarmthReducesExposure(t *testing.T) {
	w := world.Weather{TemperatureF: 10, WaterTemperatureF: 33, Wind: 5, Humidity: 50}
	g := world.NewGrid(11, 11, w)
	bare := newChar(t)
	dressed := newChar(t)
	parka, ok := dressed.Catalog().Clothing.Clothing("parka")
	require.True(t, ok)
	eq := inventory.NewEquipment()
	eq.Wear(parka)
	dressed.Equip = eq

	m := newModel()
	m.Update(bare, world.Take(g, bare.Pos))
	m.Update(dressed, world.Take(g, dressed.Pos))
	assert.Greater(t, dressed.TempConv.Get(body.Torso), bare.TempConv.Get(body.Torso))
	assert.Equal(t, bare.TempConv.Get(body.Feet), dressed.TempConv.Get(body.Feet), "parka leaves the feet bare")
}

func TestUpdate_BlistersNearManyFires(t *testing.T) {
	g := world.NewGrid(11, 11, world.Weather{TemperatureF: 70, WaterTemperatureF: 60, Humidity: 50})
	for _, p := range []world.Point{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 4, Y: 5}, {X: 5, Y: 6}} {
		g.SetField(p, world.FieldFire, 3)
	}
	c := newChar(t)
	newModel().Update(c, world.Take(g, c.Pos))
	assert.True(t, c.Effects.HasOn(effect.Blisters, body.Torso))
	assert.Greater(t, c.TempConv.Get(body.Torso), thermal.Scorching)
}

func TestUpdate_SubmergedLegsUseWaterTemperature(t *testing.T) {
	g := world.NewGrid(11, 11, world.Weather{TemperatureF: 70, WaterTemperatureF: 40, Humidity: 50})
	g.SetTerrain(centre, world.ShallowWater)
	c := newChar(t)
	newModel().Update(c, world.Take(g, c.Pos))
	assert.Less(t, c.TempConv.Get(body.Legs), c.TempConv.Get(body.Torso))
	assert.Less(t, c.TempConv.Get(body.Feet), c.TempConv.Get(body.Arms))
}

func TestUpdate_FrostbiteTimersStayBounded(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := world.Weather{
			TemperatureF:      rapid.IntRange(-60, 100).Draw(rt, "temp"),
			WaterTemperatureF: 40,
			Wind:              rapid.IntRange(0, 60).Draw(rt, "wind"),
			Humidity:          rapid.IntRange(0, 100).Draw(rt, "humidity"),
		}
		g := world.NewGrid(11, 11, w)
		c := newChar(t)
		for _, p := range body.FrostbiteParts {
			c.Frostbite.Set(p, rapid.IntRange(0, character.MaxFrostbite).Draw(rt, "timer"))
		}
		c.Temp = body.Fill(rapid.IntRange(-2000, 9000).Draw(rt, "body"))
		m := newModel()
		for i := 0; i < 20; i++ {
			m.Update(c, world.Take(g, c.Pos))
			for _, p := range body.FrostbiteParts {
				v := c.Frostbite.Get(p)
				if v < 0 || v > character.MaxFrostbite {
					rt.Fatalf("%s timer %d out of range", p, v)
				}
			}
		}
	})
}
