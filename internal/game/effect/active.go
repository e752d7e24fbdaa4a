package effect

import (
	"sort"

	"github.com/cory-johannsen/biosim/internal/game/body"
)

// Key identifies one live effect: at most one entry exists per Key.
type Key struct {
	ID   ID
	Part body.Part
}

// Active tracks one applied effect on a character.
type Active struct {
	Def       *Def
	Part      body.Part
	Duration  int
	Intensity int
	Permanent bool // duration is not aged down
}

// ID returns the effect ID.
func (a *Active) ID() ID { return a.Def.ID }

// Key returns the entry's identity.
func (a *Active) Key() Key { return Key{ID: a.Def.ID, Part: a.Part} }

// SetIntensity stores n clamped to [0, Def.Max()].
func (a *Active) SetIntensity(n int) {
	a.Intensity = clamp(n, 0, a.Def.Max())
}

// ModIntensity adds delta to the intensity, clamped to [0, Def.Max()].
func (a *Active) ModIntensity(delta int) { a.SetIntensity(a.Intensity + delta) }

// Set tracks all effects currently applied to one character.
// It is not safe for concurrent use; the caller must serialise access.
type Set struct {
	effects map[Key]*Active
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{effects: make(map[Key]*Active)}
}

// Add inserts or merges an effect.
// A new entry starts at intensity clamped to [1, def.Max()].
// Re-adding an existing (id, part) extends the duration by duration and sets
// the intensity to min(existing+intensity, def.Max()).
//
// Precondition: def must not be nil.
// Postcondition: exactly one entry exists for (def.ID, part).
func (s *Set) Add(def *Def, part body.Part, duration, intensity int, permanent bool) *Active {
	k := Key{ID: def.ID, Part: part}
	if existing, ok := s.effects[k]; ok {
		existing.Duration += duration
		existing.SetIntensity(existing.Intensity + intensity)
		if permanent {
			existing.Permanent = true
		}
		return existing
	}
	a := &Active{
		Def:       def,
		Part:      part,
		Duration:  duration,
		Intensity: clamp(intensity, 1, def.Max()),
		Permanent: permanent,
	}
	s.effects[k] = a
	return a
}

// Restore inserts a fully specified entry without merging, replacing any
// entry with the same key. Used when loading saved state.
func (s *Set) Restore(a *Active) {
	s.effects[a.Key()] = a
}

// Remove deletes the (id, part) entry. Removing an absent entry is a no-op.
// Returns whether an entry was removed.
func (s *Set) Remove(id ID, part body.Part) bool {
	k := Key{ID: id, Part: part}
	if _, ok := s.effects[k]; !ok {
		return false
	}
	delete(s.effects, k)
	return true
}

// RemoveAll deletes every entry with id regardless of part.
func (s *Set) RemoveAll(id ID) bool {
	removed := false
	for k := range s.effects {
		if k.ID == id {
			delete(s.effects, k)
			removed = true
		}
	}
	return removed
}

// Get returns the (id, part) entry.
func (s *Set) Get(id ID, part body.Part) (*Active, bool) {
	a, ok := s.effects[Key{ID: id, Part: part}]
	return a, ok
}

// Has reports whether id is active on any part.
func (s *Set) Has(id ID) bool {
	for k := range s.effects {
		if k.ID == id {
			return true
		}
	}
	return false
}

// HasOn reports whether id is active on part.
func (s *Set) HasOn(id ID, part body.Part) bool {
	_, ok := s.effects[Key{ID: id, Part: part}]
	return ok
}

// Intensity returns the (id, part) intensity, or 0 when absent.
func (s *Set) Intensity(id ID, part body.Part) int {
	if a, ok := s.effects[Key{ID: id, Part: part}]; ok {
		return a.Intensity
	}
	return 0
}

// Duration returns the (id, part) duration, or 0 when absent.
func (s *Set) Duration(id ID, part body.Part) int {
	if a, ok := s.effects[Key{ID: id, Part: part}]; ok {
		return a.Duration
	}
	return 0
}

// Len returns the number of live entries.
func (s *Set) Len() int { return len(s.effects) }

// All returns a snapshot of every entry ordered by (ID, Part) so that
// iteration order, and therefore random draws, are reproducible.
func (s *Set) All() []*Active {
	out := make([]*Active, 0, len(s.effects))
	for _, a := range s.effects {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Def.ID != out[j].Def.ID {
			return out[i].Def.ID < out[j].Def.ID
		}
		return out[i].Part < out[j].Part
	})
	return out
}

// Age decrements the duration of every non-permanent entry by one, then
// removes every entry whose duration or intensity is at or below zero.
//
// Postcondition: returns the removed entries in (ID, Part) order.
func (s *Set) Age() []*Active {
	for _, a := range s.effects {
		if !a.Permanent {
			a.Duration--
		}
	}
	return s.Sweep()
}

// Sweep removes entries whose duration or intensity is at or below zero
// without aging anything.
func (s *Set) Sweep() []*Active {
	var removed []*Active
	for _, a := range s.All() {
		if a.Duration <= 0 || a.Intensity <= 0 {
			delete(s.effects, a.Key())
			removed = append(removed, a)
		}
	}
	return removed
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
