package inventory

import (
	"math"

	"github.com/cory-johannsen/biosim/internal/game/body"
)

// WornItem records one clothing item a character is wearing.
type WornItem struct {
	// Def is the item's static definition.
	Def *ClothingDef
}

// Equipment holds the clothing worn by a character, outermost last, plus the
// charges left on carried tools (inhalers and the like).
//
// Equipment answers every per-part question the body simulation asks about
// gear; it is not safe for concurrent use.
type Equipment struct {
	Worn  []*WornItem
	Tools map[string]int
}

// NewEquipment returns an empty Equipment.
//
// Postcondition: Worn is empty; Tools is a non-nil, empty map.
func NewEquipment() *Equipment {
	return &Equipment{Tools: make(map[string]int)}
}

// Wear puts def on top of whatever is already worn.
//
// Precondition: def must not be nil.
func (e *Equipment) Wear(def *ClothingDef) {
	e.Worn = append(e.Worn, &WornItem{Def: def})
}

// TakeOff removes the outermost worn item with id.
// Postcondition: returns false when no such item is worn.
func (e *Equipment) TakeOff(id string) bool {
	for i := len(e.Worn) - 1; i >= 0; i-- {
		if e.Worn[i].Def.ID == id {
			e.Worn = append(e.Worn[:i], e.Worn[i+1:]...)
			return true
		}
	}
	return false
}

// Warmth sums the warmth of every item covering p.
func (e *Equipment) Warmth(p body.Part) int {
	total := 0
	for _, w := range e.Worn {
		if w.Def.CoversPart(p) {
			total += w.Def.Warmth
		}
	}
	return total
}

// Encumbrance sums the encumbrance of every item covering p. Each FIT item
// is one point lighter, never below zero.
func (e *Equipment) Encumbrance(p body.Part) int {
	total := 0
	for _, w := range e.Worn {
		if !w.Def.CoversPart(p) {
			continue
		}
		enc := w.Def.Encumbrance
		if w.Def.HasFlag(FlagFit) && enc > 0 {
			enc--
		}
		total += enc
	}
	return total
}

// WindResist returns the percentage of wind blocked at p. Each covering item
// blocks its wind_resist share of the coverage it provides, and layers
// compound multiplicatively.
//
// Postcondition: 0 <= result <= 100.
func (e *Equipment) WindResist(p body.Part) int {
	exposed := 1.0
	for _, w := range e.Worn {
		if !w.Def.CoversPart(p) {
			continue
		}
		blocked := float64(w.Def.Coverage) / 100 * float64(w.Def.WindResist) / 100
		exposed *= 1 - blocked
	}
	return int(math.Round(100 - exposed*100))
}

// EnvResist sums the environmental resistance of items covering p.
func (e *Equipment) EnvResist(p body.Part) int {
	total := 0
	for _, w := range e.Worn {
		if w.Def.CoversPart(p) {
			total += w.Def.EnvResist
		}
	}
	return total
}

// Covers reports whether any worn item covers p.
func (e *Equipment) Covers(p body.Part) bool {
	for _, w := range e.Worn {
		if w.Def.CoversPart(p) {
			return true
		}
	}
	return false
}

// HasFlag reports whether an item covering p carries f.
func (e *Equipment) HasFlag(p body.Part, f Flag) bool {
	for _, w := range e.Worn {
		if w.Def.CoversPart(p) && w.Def.HasFlag(f) {
			return true
		}
	}
	return false
}

// HasFlagAnywhere reports whether any worn item carries f.
func (e *Equipment) HasFlagAnywhere(f Flag) bool {
	for _, w := range e.Worn {
		if w.Def.HasFlag(f) {
			return true
		}
	}
	return false
}

// CountFlag returns how many worn items carry f.
func (e *Equipment) CountFlag(f Flag) int {
	n := 0
	for _, w := range e.Worn {
		if w.Def.HasFlag(f) {
			n++
		}
	}
	return n
}

// FlagWarmth returns the highest warmth among worn items that carry f and
// cover any of parts, or 0 when none does. Without parts every worn item
// counts.
func (e *Equipment) FlagWarmth(f Flag, parts ...body.Part) int {
	best := 0
	for _, w := range e.Worn {
		if !w.Def.HasFlag(f) {
			continue
		}
		if len(parts) == 0 {
			best = max(best, w.Def.Warmth)
			continue
		}
		for _, p := range parts {
			if w.Def.CoversPart(p) {
				best = max(best, w.Def.Warmth)
				break
			}
		}
	}
	return best
}

// ClimateControl reports whether any worn item regulates temperature.
func (e *Equipment) ClimateControl() bool {
	return e.HasFlagAnywhere(FlagClimateControl)
}

// Waterproof reports whether p is covered by a waterproof item.
func (e *Equipment) Waterproof(p body.Part) bool {
	return e.HasFlag(p, FlagWaterproof)
}

// Charges returns the charges left on tool id.
func (e *Equipment) Charges(id string) int {
	return e.Tools[id]
}

// UseCharge spends one charge of tool id.
// Postcondition: returns false and changes nothing when no charge is left.
func (e *Equipment) UseCharge(id string) bool {
	if e.Tools[id] <= 0 {
		return false
	}
	e.Tools[id]--
	return true
}
