// Package morale tracks the decaying contributions that make up a
// character's mood.
package morale

import "github.com/cory-johannsen/biosim/internal/game/curve"

// Type identifies the kind of a morale contribution.
type Type string

const (
	FoodGood         Type = "FOOD_GOOD"
	FoodBad          Type = "FOOD_BAD"
	FoodHot          Type = "FOOD_HOT"
	Music            Type = "MUSIC"
	Honey            Type = "HONEY"
	Game             Type = "GAME"
	Comfy            Type = "COMFY"
	Wet              Type = "WET"
	DriedOff         Type = "DRIED_OFF"
	Cold             Type = "COLD"
	Hot              Type = "HOT"
	FeelingBad       Type = "FEELING_BAD"
	FeelingGood      Type = "FEELING_GOOD"
	Pain             Type = "PAIN"
	Moodswing        Type = "MOODSWING"
	CravingNicotine  Type = "CRAVING_NICOTINE"
	CravingCaffeine  Type = "CRAVING_CAFFEINE"
	CravingAlcohol   Type = "CRAVING_ALCOHOL"
	CravingOpiate    Type = "CRAVING_OPIATE"
	CravingSpeed     Type = "CRAVING_SPEED"
	CravingCocaine   Type = "CRAVING_COCAINE"
	CravingCrack     Type = "CRAVING_CRACK"
	CravingMutagen   Type = "CRAVING_MUTAGEN"
	CravingDiazepam  Type = "CRAVING_DIAZEPAM"
	PermMasochist    Type = "PERM_MASOCHIST"
	PermHoarder      Type = "PERM_HOARDER"
	PermFancy        Type = "PERM_FANCY"
	PermOptimist     Type = "PERM_OPTIMIST"
	PermBadTemper    Type = "PERM_BADTEMPER"
	PermConstrained  Type = "PERM_CONSTRAINED"
	PermWetClothes   Type = "PERM_WET_CLOTHES"
)

// Entry is one morale contribution.
//
// Invariant: MaxBonus == 0 || |Bonus| <= |MaxBonus|.
type Entry struct {
	Type       Type
	ItemType   string // optional associated item; "" when none
	Bonus      int
	MaxBonus   int
	Duration   int
	DecayStart int
	Age        int
}

// Net returns the bonus after decay: the full bonus until Age passes
// DecayStart, then scaled down by the logistic curve until it reaches zero at
// Duration.
func (e Entry) Net() int {
	if e.Age > e.DecayStart {
		return int(float64(e.Bonus) * curve.LogisticRange(e.DecayStart, e.Duration, e.Age))
	}
	return e.Bonus
}

// Personality skews every entry's net bonus.
type Personality int

const (
	Neutral Personality = iota
	Optimist
	BadTempered
)

// Skew applies the ±25% personality adjustment to a net bonus.
// Optimists amplify positive and dampen negative contributions; the
// bad-tempered do the opposite.
func (p Personality) Skew(net int) int {
	switch p {
	case Optimist:
		if net >= 0 {
			return int(float64(net) * 1.25)
		}
		return int(float64(net) * 0.75)
	case BadTempered:
		if net >= 0 {
			return int(float64(net) * 0.75)
		}
		return int(float64(net) * 1.25)
	}
	return net
}

// Tracker is the ordered morale list of one character.
// It is not safe for concurrent use.
type Tracker struct {
	entries []*Entry
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker { return &Tracker{} }

// Add inserts or merges a morale contribution matched by (typ, item).
//
// On match the stored bonus is first decayed to its current value, so a
// repeated add does not restart decay for free. With capExisting the new
// duration and decayStart replace the old ones. Otherwise, when the old and
// new bonuses share a sign, whichever of the old remaining time and the new
// value is longer wins; when the signs differ the new values win. Age resets
// to zero on every touch.
//
// Postcondition: maxBonus == 0 || |entry.Bonus| <= |maxBonus|.
func (t *Tracker) Add(typ Type, bonus, maxBonus, duration, decayStart int, capExisting bool, item string) {
	for _, e := range t.entries {
		if e.Type != typ || e.ItemType != item {
			continue
		}
		if e.Age > e.DecayStart {
			e.Bonus = int(float64(e.Bonus) * curve.LogisticRange(e.DecayStart, e.Duration, e.Age))
		}
		if capExisting {
			e.Duration = duration
			e.DecayStart = decayStart
		} else if (e.Bonus > 0) == (maxBonus > 0) {
			e.Duration = max(e.Duration-e.Age, duration)
			e.DecayStart = max(e.DecayStart-e.Age, decayStart)
		} else {
			e.Duration = duration
			e.DecayStart = decayStart
		}
		e.Age = 0
		if abs(e.Bonus) < abs(maxBonus) || maxBonus == 0 {
			e.Bonus += bonus
		}
		e.MaxBonus = maxBonus
		e.Bonus = capBonus(e.Bonus, maxBonus)
		return
	}
	t.entries = append(t.entries, &Entry{
		Type:       typ,
		ItemType:   item,
		Bonus:      capBonus(bonus, maxBonus),
		MaxBonus:   maxBonus,
		Duration:   duration,
		DecayStart: decayStart,
	})
}

// Restore appends e verbatim, enforcing the bonus cap. Used when loading.
func (t *Tracker) Restore(e Entry) {
	e.Bonus = capBonus(e.Bonus, e.MaxBonus)
	t.entries = append(t.entries, &e)
}

// Remove deletes every entry of typ.
func (t *Tracker) Remove(typ Type) {
	kept := t.entries[:0]
	for _, e := range t.entries {
		if e.Type != typ {
			kept = append(kept, e)
		}
	}
	t.entries = kept
}

// Has reports whether an entry of typ exists.
func (t *Tracker) Has(typ Type) bool {
	for _, e := range t.entries {
		if e.Type == typ {
			return true
		}
	}
	return false
}

// Get returns a copy of the first entry of typ.
func (t *Tracker) Get(typ Type) (Entry, bool) {
	for _, e := range t.entries {
		if e.Type == typ {
			return *e, true
		}
	}
	return Entry{}, false
}

// Entries returns copies of every entry in insertion order.
func (t *Tracker) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	for i, e := range t.entries {
		out[i] = *e
	}
	return out
}

// Len returns the number of entries.
func (t *Tracker) Len() int { return len(t.entries) }

// Level sums every entry's decayed, personality-skewed bonus.
func (t *Tracker) Level(p Personality) int {
	total := 0
	for _, e := range t.entries {
		total += p.Skew(e.Net())
	}
	return total
}

// Age advances every entry by one turn and drops entries whose age reached
// their duration or whose bonus is zero.
func (t *Tracker) Age() {
	kept := t.entries[:0]
	for _, e := range t.entries {
		e.Age++
		if e.Bonus == 0 || e.Age >= e.Duration {
			continue
		}
		kept = append(kept, e)
	}
	t.entries = kept
}

func capBonus(bonus, maxBonus int) int {
	if maxBonus == 0 || abs(bonus) <= abs(maxBonus) {
		return bonus
	}
	if bonus < 0 {
		return -abs(maxBonus)
	}
	return abs(maxBonus)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
