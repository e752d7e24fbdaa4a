package effect

import (
	"github.com/cory-johannsen/biosim/internal/game/body"
	"github.com/cory-johannsen/biosim/internal/game/dice"
)

// Disease is one entry of the legacy disease list. Diseases predate effects
// and keep their own decay roll: each turn an entry loses one intensity with
// a 1-in-Decay chance.
type Disease struct {
	Type         ID
	Part         body.Part
	Duration     int
	Intensity    int
	MaxIntensity int
	Decay        int // 0 = never decays
	Permanent    bool
}

// Diseases is the ordered legacy disease list of one character.
// It is not safe for concurrent use.
type Diseases struct {
	list []*Disease
}

// NewDiseases returns an empty list.
func NewDiseases() *Diseases { return &Diseases{} }

// Add inserts d or merges it into the existing (type, part) entry: duration
// extends and intensity sums, capped at MaxIntensity.
//
// Postcondition: exactly one entry exists for (d.Type, d.Part).
func (ds *Diseases) Add(d Disease) *Disease {
	if d.MaxIntensity < 1 {
		d.MaxIntensity = 1
	}
	if existing := ds.Get(d.Type, d.Part); existing != nil {
		existing.Duration += d.Duration
		existing.Intensity = clamp(existing.Intensity+d.Intensity, 0, existing.MaxIntensity)
		if d.Permanent {
			existing.Permanent = true
		}
		return existing
	}
	d.Intensity = clamp(d.Intensity, 1, d.MaxIntensity)
	nd := d
	ds.list = append(ds.list, &nd)
	return &nd
}

// Get returns the (type, part) entry or nil.
func (ds *Diseases) Get(t ID, part body.Part) *Disease {
	for _, d := range ds.list {
		if d.Type == t && d.Part == part {
			return d
		}
	}
	return nil
}

// Has reports whether t is present on any part.
func (ds *Diseases) Has(t ID) bool {
	for _, d := range ds.list {
		if d.Type == t {
			return true
		}
	}
	return false
}

// Remove deletes the (type, part) entry.
func (ds *Diseases) Remove(t ID, part body.Part) bool {
	for i, d := range ds.list {
		if d.Type == t && d.Part == part {
			ds.list = append(ds.list[:i], ds.list[i+1:]...)
			return true
		}
	}
	return false
}

// All returns the entries in insertion order. The slice is a copy; the
// entries are shared.
func (ds *Diseases) All() []*Disease {
	return append([]*Disease(nil), ds.list...)
}

// Len returns the number of entries.
func (ds *Diseases) Len() int { return len(ds.list) }

// Tick ages every non-permanent entry, rolls each entry's decay chance, and
// drops entries whose duration or intensity reached zero.
//
// Postcondition: returns the dropped entries in list order.
func (ds *Diseases) Tick(src dice.Source) []*Disease {
	var kept, dropped []*Disease
	for _, d := range ds.list {
		if !d.Permanent {
			d.Duration--
		}
		if d.Decay > 0 && d.Intensity > 0 && dice.OneIn(src, d.Decay) {
			d.Intensity--
		}
		if d.Duration <= 0 || d.Intensity <= 0 {
			dropped = append(dropped, d)
			continue
		}
		kept = append(kept, d)
	}
	ds.list = kept
	return dropped
}
