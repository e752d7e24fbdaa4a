package effect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/biosim/internal/game/body"
	"github.com/cory-johannsen/biosim/internal/game/dice"
	"github.com/cory-johannsen/biosim/internal/game/effect"
)

type fixedSource struct{ val int }

func (f *fixedSource) Intn(n int) int {
	if f.val >= n {
		return n - 1
	}
	return f.val
}

func TestDiseases_AddMerges(t *testing.T) {
	ds := effect.NewDiseases()
	ds.Add(effect.Disease{Type: effect.CommonCold, Part: body.Whole, Duration: 100, Intensity: 1, MaxIntensity: 2})
	d := ds.Add(effect.Disease{Type: effect.CommonCold, Part: body.Whole, Duration: 50, Intensity: 5, MaxIntensity: 2})
	assert.Equal(t, 1, ds.Len())
	assert.Equal(t, 150, d.Duration)
	assert.Equal(t, 2, d.Intensity)
}

func TestDiseases_TickAgesAndDrops(t *testing.T) {
	ds := effect.NewDiseases()
	ds.Add(effect.Disease{Type: "a", Part: body.Whole, Duration: 1, Intensity: 1})
	ds.Add(effect.Disease{Type: "b", Part: body.Whole, Duration: 5, Intensity: 1, Permanent: true})

	dropped := ds.Tick(&fixedSource{val: 1})
	require.Len(t, dropped, 1)
	assert.Equal(t, effect.ID("a"), dropped[0].Type)
	assert.True(t, ds.Has("b"))
	assert.Equal(t, 5, ds.Get("b", body.Whole).Duration)
}

func TestDiseases_DecayRoll(t *testing.T) {
	ds := effect.NewDiseases()
	ds.Add(effect.Disease{Type: "flu", Part: body.Whole, Duration: 100, Intensity: 2, MaxIntensity: 3, Decay: 10})
	ds.Tick(&fixedSource{val: 0})
	assert.Equal(t, 1, ds.Get("flu", body.Whole).Intensity)
	ds.Tick(&fixedSource{val: 0})
	assert.False(t, ds.Has("flu"), "decayed to zero intensity")
}

func TestDiseases_Remove(t *testing.T) {
	ds := effect.NewDiseases()
	ds.Add(effect.Disease{Type: "a", Part: body.Head, Duration: 1, Intensity: 1})
	assert.False(t, ds.Remove("a", body.Torso))
	assert.True(t, ds.Remove("a", body.Head))
	assert.Zero(t, ds.Len())
}

// TestProperty_Diseases_Bounded verifies that ticking never leaves an entry
// with non-positive duration or intensity above its cap.
func TestProperty_Diseases_Bounded(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ds := effect.NewDiseases()
		n := rapid.IntRange(1, 8).Draw(rt, "n")
		for i := 0; i < n; i++ {
			ds.Add(effect.Disease{
				Type:         effect.ID(rapid.SampledFrom([]string{"a", "b", "c"}).Draw(rt, "type")),
				Part:         body.Part(rapid.IntRange(0, body.NumParts-1).Draw(rt, "part")),
				Duration:     rapid.IntRange(1, 30).Draw(rt, "dur"),
				Intensity:    rapid.IntRange(1, 5).Draw(rt, "int"),
				MaxIntensity: rapid.IntRange(1, 5).Draw(rt, "max"),
				Decay:        rapid.IntRange(0, 5).Draw(rt, "decay"),
			})
		}
		src := dice.NewSeededSource(rapid.Int64().Draw(rt, "seed"))
		for turn := 0; turn < 40; turn++ {
			ds.Tick(src)
			for _, d := range ds.All() {
				assert.Greater(rt, d.Duration, 0)
				assert.Greater(rt, d.Intensity, 0)
				assert.LessOrEqual(rt, d.Intensity, d.MaxIntensity)
			}
		}
	})
}
