package body_test

import (
	"testing"

	"github.com/cory-johannsen/biosim/internal/game/body"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParsePart_RoundTripsNames(t *testing.T) {
	for _, p := range body.All {
		b, err := p.MarshalText()
		require.NoError(t, err)
		var got body.Part
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, p, got)
	}
}

func TestParsePart_Whole(t *testing.T) {
	p, err := body.ParsePart("")
	require.NoError(t, err)
	assert.Equal(t, body.Whole, p)
	assert.Equal(t, "whole body", p.String())
}

func TestParsePart_Unknown(t *testing.T) {
	_, err := body.ParsePart("tail")
	assert.Error(t, err)
}

func TestArray_GetSetIgnoreInvalid(t *testing.T) {
	a := body.Fill(7)
	a.Set(body.Whole, 99)
	assert.Equal(t, 0, a.Get(body.Whole))
	a.Set(body.Feet, 3)
	assert.Equal(t, 3, a.Get(body.Feet))
	assert.Equal(t, 7, a[body.Torso])
}

func TestHPPoolsFor_EveryThermalPartHasAPool(t *testing.T) {
	for _, p := range body.ThermalParts {
		assert.NotEmpty(t, body.HPPoolsFor(p), p.String())
	}
	assert.Empty(t, body.HPPoolsFor(body.Eyes))
}

func TestNeighbours_Connected(t *testing.T) {
	seen := map[body.Part]bool{body.Torso: true}
	for changed := true; changed; {
		changed = false
		for _, e := range body.Neighbours {
			if seen[e.A] != seen[e.B] {
				seen[e.A], seen[e.B] = true, true
				changed = true
			}
		}
	}
	for _, p := range body.ThermalParts {
		assert.True(t, seen[p], "%s unreachable from torso", p)
	}
}

func TestParent_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := body.Part(rapid.IntRange(0, body.NumParts-1).Draw(rt, "part"))
		parent := body.Parent(p)
		assert.True(rt, parent.Valid())
		assert.Equal(rt, parent, body.Parent(parent), "Parent must be idempotent")
	})
}
