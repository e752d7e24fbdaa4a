// Package addiction tracks per-substance cravings: how strongly a character is
// hooked and how long until the next dose is needed.
package addiction

import (
	"sort"

	"github.com/cory-johannsen/biosim/internal/game/dice"
)

// Type identifies an addictive substance class.
type Type string

const (
	Nicotine    Type = "nicotine"
	Caffeine    Type = "caffeine"
	Alcohol     Type = "alcohol"
	SleepPills  Type = "sleeping_pills"
	Opiates     Type = "opiates"
	Amphetamine Type = "amphetamine"
	Cocaine     Type = "cocaine"
	Crack       Type = "crack"
	Mutagen     Type = "mutagen"
	Diazepam    Type = "diazepam"
)

// Types lists every substance in a fixed order.
var Types = []Type{Nicotine, Caffeine, Alcohol, SleepPills, Opiates, Amphetamine, Cocaine, Crack, Mutagen, Diazepam}

// MaxIntensity bounds every addiction.
const MaxIntensity = 20

// Addiction is one craving.
//
// Invariant: 0 < Intensity <= MaxIntensity.
type Addiction struct {
	Type      Type
	Intensity int
	Sated     int // turns of satisfaction left; negative while craving
}

// Susceptibility adjusts addiction speed and recovery for a character.
type Susceptibility int

const (
	Normal Susceptibility = iota
	Addictive
	NonAddictive
)

// timer returns the sated increment granted per dose.
func (s Susceptibility) timer() int {
	switch s {
	case Addictive:
		return 800
	case NonAddictive:
		return 1800
	}
	return 1200
}

func (s Susceptibility) strength(base int) int {
	switch s {
	case Addictive:
		return base * 2
	case NonAddictive:
		return base / 2
	}
	return base
}

// floor is the sated level below which an addiction starts to fade.
func (s Susceptibility) floor() int {
	switch s {
	case Addictive:
		return -4000
	case NonAddictive:
		return -3200
	}
	return -3600
}

// WithdrawalFunc is invoked for every addiction in withdrawal during Tick.
type WithdrawalFunc func(a *Addiction)

// Tracker holds the addictions of one character in insertion order.
// It is not safe for concurrent use.
type Tracker struct {
	list []*Addiction
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker { return &Tracker{} }

// Add records one dose of typ with the given addictive strength.
//
// An existing addiction has its sated counter topped up: reset to one timer
// when negative, raised by a full timer below 600, and otherwise converged
// toward 3000. Its intensity then escalates when the strength beats a roll,
// capped at MaxIntensity. Without an existing entry a new one is created with
// probability strength/100.
//
// Precondition: src must be non-nil.
// Postcondition: every intensity stays within [1, MaxIntensity].
func (t *Tracker) Add(typ Type, strength int, sus Susceptibility, src dice.Source) {
	timer := sus.timer()
	strength = sus.strength(strength)
	if a := t.Get(typ); a != nil {
		switch {
		case a.Sated < 0:
			a.Sated = timer
		case a.Sated < 600:
			a.Sated += timer
		default:
			a.Sated += (3000 - a.Sated) / 2
		}
		if (dice.Rng(src, 0, strength) > dice.Rng(src, 0, a.Intensity*5) ||
			dice.Rng(src, 0, 500) < strength) && a.Intensity < MaxIntensity {
			a.Intensity++
		}
		return
	}
	if dice.Rng(src, 0, 100) < strength {
		t.list = append(t.list, &Addiction{Type: typ, Intensity: 1, Sated: timer})
	}
}

// Restore appends a fully specified addiction, clamping its intensity.
func (t *Tracker) Restore(a Addiction) {
	if a.Intensity < 1 {
		return
	}
	if a.Intensity > MaxIntensity {
		a.Intensity = MaxIntensity
	}
	t.list = append(t.list, &a)
}

// Get returns the addiction of typ or nil.
func (t *Tracker) Get(typ Type) *Addiction {
	for _, a := range t.list {
		if a.Type == typ {
			return a
		}
	}
	return nil
}

// Has reports whether the character is addicted to typ.
func (t *Tracker) Has(typ Type) bool { return t.Get(typ) != nil }

// Remove drops the addiction of typ.
func (t *Tracker) Remove(typ Type) {
	for i, a := range t.list {
		if a.Type == typ {
			t.list = append(t.list[:i], t.list[i+1:]...)
			return
		}
	}
}

// All returns copies of every addiction in insertion order.
func (t *Tracker) All() []Addiction {
	out := make([]Addiction, len(t.list))
	for i, a := range t.list {
		out[i] = *a
	}
	return out
}

// Len returns the number of addictions.
func (t *Tracker) Len() int { return len(t.list) }

// Tick advances every addiction by one turn.
//
// An addiction at sated <= 0 and intensity >= 3 is in withdrawal and is passed
// to withdraw. Sated then drops by one, and by one more unless a 1-in-
// (intensity-2) roll succeeds. Once sated sinks below the susceptibility floor
// minus 100 per intensity point, a weak addiction (intensity <= 2) is dropped
// and a stronger one shrinks to intensity/2 - 1 with sated reset to zero.
//
// Precondition: src must be non-nil; withdraw may be nil.
// Postcondition: returns the types dropped this turn.
func (t *Tracker) Tick(sus Susceptibility, src dice.Source, withdraw WithdrawalFunc) []Type {
	var dropped []Type
	kept := t.list[:0]
	for _, a := range t.list {
		if a.Sated <= 0 && a.Intensity >= 3 && withdraw != nil {
			withdraw(a)
		}
		a.Sated--
		if !dice.OneIn(src, a.Intensity-2) && a.Sated > 0 {
			a.Sated--
		}
		if a.Sated < sus.floor()-100*a.Intensity {
			if a.Intensity <= 2 {
				dropped = append(dropped, a.Type)
				continue
			}
			a.Intensity = a.Intensity/2 - 1
			a.Sated = 0
			if a.Intensity < 1 {
				a.Intensity = 1
			}
		}
		kept = append(kept, a)
	}
	t.list = kept
	return dropped
}

// Craving returns the addiction types currently below zero sated, sorted.
func (t *Tracker) Craving() []Type {
	var out []Type
	for _, a := range t.list {
		if a.Sated < 0 {
			out = append(out, a.Type)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
