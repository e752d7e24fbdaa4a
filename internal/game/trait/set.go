package trait

import "sort"

// Set is the collection of traits a character currently has.
// The zero value is not usable; use NewSet.
type Set struct {
	ids map[ID]struct{}
}

// NewSet returns a Set holding ids.
func NewSet(ids ...ID) *Set {
	s := &Set{ids: make(map[ID]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Has reports whether id is present.
func (s *Set) Has(id ID) bool {
	_, ok := s.ids[id]
	return ok
}

// HasAny reports whether any of ids is present.
func (s *Set) HasAny(ids ...ID) bool {
	for _, id := range ids {
		if s.Has(id) {
			return true
		}
	}
	return false
}

// Add inserts id.
func (s *Set) Add(id ID) { s.ids[id] = struct{}{} }

// Remove deletes id. Removing an absent trait is a no-op.
func (s *Set) Remove(id ID) { delete(s.ids, id) }

// Len returns the number of traits held.
func (s *Set) Len() int { return len(s.ids) }

// Sorted returns the held IDs in lexical order.
func (s *Set) Sorted() []ID {
	out := make([]ID, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Stats sums the flat stat deltas of every held trait known to reg.
func (s *Set) Stats(reg *Registry) StatMods {
	var total StatMods
	for id := range s.ids {
		d, ok := reg.Get(id)
		if !ok {
			continue
		}
		total.Str += d.Stats.Str
		total.Dex += d.Stats.Dex
		total.Int += d.Stats.Int
		total.Per += d.Stats.Per
		total.Dodge += d.Stats.Dodge
		total.Hit += d.Stats.Hit
		total.Speed += d.Stats.Speed
	}
	return total
}

// Eligible returns the mutable traits of reg that the holder of s could gain:
// absent, every prerequisite present.
//
// Postcondition: result is sorted by ID.
func (s *Set) Eligible(reg *Registry) []*Def {
	var out []*Def
	for _, d := range reg.All() {
		if !d.Mutable || s.Has(d.ID) {
			continue
		}
		ok := true
		for _, p := range d.Prereqs {
			if !s.Has(p) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, d)
		}
	}
	return out
}
