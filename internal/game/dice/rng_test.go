package dice_test

import (
	"testing"

	"github.com/cory-johannsen/biosim/internal/game/dice"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

type fixedSource struct{ val int }

func (f *fixedSource) Intn(n int) int {
	if f.val >= n {
		return n - 1
	}
	return f.val
}

func TestRng_InClosedRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lo := rapid.IntRange(-1000, 1000).Draw(rt, "lo")
		hi := rapid.IntRange(-1000, 1000).Draw(rt, "hi")
		seed := rapid.Int64().Draw(rt, "seed")
		v := dice.Rng(dice.NewSeededSource(seed), lo, hi)
		if lo > hi {
			lo, hi = hi, lo
		}
		assert.GreaterOrEqual(rt, v, lo)
		assert.LessOrEqual(rt, v, hi)
	})
}

func TestOneIn_AlwaysTrueAtOneOrLess(t *testing.T) {
	src := &fixedSource{val: 5}
	assert.True(t, dice.OneIn(src, 1))
	assert.True(t, dice.OneIn(src, 0))
	assert.True(t, dice.OneIn(src, -3))
	assert.False(t, dice.OneIn(src, 10))
	assert.True(t, dice.OneIn(&fixedSource{val: 0}, 10))
}

func TestXInY_Bounds(t *testing.T) {
	src := &fixedSource{val: 0}
	assert.False(t, dice.XInY(src, 0, 100))
	assert.True(t, dice.XInY(src, 100, 100))
	assert.True(t, dice.XInY(src, 1, 100))
	assert.False(t, dice.XInY(&fixedSource{val: 99}, 50, 100))
}

func TestDice_SumsRolls(t *testing.T) {
	assert.Equal(t, 30, dice.Dice(&fixedSource{val: 14}, 2, 15))
	assert.Equal(t, 0, dice.Dice(&fixedSource{val: 3}, 0, 6))
}

func TestSeededSource_Replays(t *testing.T) {
	a := dice.NewSeededSource(42)
	b := dice.NewSeededSource(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestSeededSource_PanicsOnZero(t *testing.T) {
	assert.Panics(t, func() { dice.NewSeededSource(1).Intn(0) })
}

func TestTotal_MatchesRoll(t *testing.T) {
	src := &fixedSource{val: 14}
	assert.Equal(t, 45, dice.Total(dice.Expression{Raw: "3d15", Count: 3, Sides: 15}, src))
}

func TestFixedSource(t *testing.T) {
	assert.True(t, dice.OneIn(dice.FixedSource(0), 1000))
	assert.False(t, dice.OneIn(dice.Never, 2))
	assert.False(t, dice.XInY(dice.Never, 99, 100))
	assert.Equal(t, 7, dice.Rng(dice.Never, 3, 7))
	assert.Equal(t, 3, dice.Rng(dice.FixedSource(0), 3, 7))
	assert.Panics(t, func() { dice.FixedSource(0).Intn(0) })
}
