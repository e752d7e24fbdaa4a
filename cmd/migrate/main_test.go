package main

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMigrator records the calls run makes.
type fakeMigrator struct {
	calls []string
	steps int
	err   error
}

func (f *fakeMigrator) Up() error   { f.calls = append(f.calls, "up"); return f.err }
func (f *fakeMigrator) Down() error { f.calls = append(f.calls, "down"); return f.err }
func (f *fakeMigrator) Steps(n int) error {
	f.calls = append(f.calls, "steps")
	f.steps = n
	return f.err
}
func (f *fakeMigrator) Version() (uint, bool, error) { return 1, false, nil }

func TestRun_Directions(t *testing.T) {
	tests := []struct {
		direction string
		steps     int
		call      string
		wantSteps int
	}{
		{"up", 0, "up", 0},
		{"up", 2, "steps", 2},
		{"down", 0, "down", 0},
		{"down", 1, "steps", -1},
	}
	for _, tc := range tests {
		f := &fakeMigrator{}
		changed, err := run(f, tc.direction, tc.steps)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, []string{tc.call}, f.calls, tc.direction)
		assert.Equal(t, tc.wantSteps, f.steps)
	}
}

func TestRun_NoChangeIsNotAnError(t *testing.T) {
	changed, err := run(&fakeMigrator{err: migrate.ErrNoChange}, "up", 0)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestRun_VersionOnly(t *testing.T) {
	f := &fakeMigrator{}
	changed, err := run(f, "version", 0)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, f.calls)
}

func TestRun_Errors(t *testing.T) {
	_, err := run(&fakeMigrator{}, "sideways", 0)
	assert.ErrorContains(t, err, "invalid direction")

	boom := errors.New("dirty database")
	_, err = run(&fakeMigrator{err: boom}, "down", 0)
	assert.ErrorIs(t, err, boom)
}
