package curve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/biosim/internal/game/curve"
)

func TestLogisticRange_Endpoints(t *testing.T) {
	assert.Equal(t, 1.0, curve.LogisticRange(10, 20, 5))
	assert.Equal(t, 1.0, curve.LogisticRange(10, 20, 10))
	assert.Equal(t, 0.0, curve.LogisticRange(10, 20, 20))
	assert.Equal(t, 0.0, curve.LogisticRange(10, 20, 99))
	assert.InDelta(t, 0.5, curve.LogisticRange(0, 100, 50), 1e-9)
	assert.Equal(t, 0.0, curve.LogisticRange(20, 20, 20), "degenerate window")
}

func TestLogisticRange_MonotoneAndBounded(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lo := rapid.IntRange(-10000, 10000).Draw(rt, "lo")
		width := rapid.IntRange(1, 10000).Draw(rt, "width")
		a := rapid.IntRange(lo-100, lo+width+100).Draw(rt, "a")
		b := rapid.IntRange(a, lo+width+200).Draw(rt, "b")
		va := curve.LogisticRange(lo, lo+width, a)
		vb := curve.LogisticRange(lo, lo+width, b)
		assert.GreaterOrEqual(rt, va, vb)
		assert.GreaterOrEqual(rt, vb, 0.0)
		assert.LessOrEqual(rt, va, 1.0)
	})
}
