package world

// HeatRadius is how far from a character heat sources are considered.
const HeatRadius = 6

// lavaHeat is the fire-equivalent strength of a lava tile.
const lavaHeat = 3

// HeatSource is a visible fire or lava tile near the character.
type HeatSource struct {
	At       Point
	Distance int // Chebyshev distance, at least 1
	Strength int
}

// Snapshot freezes everything the body simulation reads from the world for
// one character-turn, so that every body part sees the same conditions.
type Snapshot struct {
	Pos         Point
	Weather     Weather
	Terrain     Terrain
	Outdoors    bool
	Radiation   int
	FireUnder   int // fire field strength on the character's tile
	HotAir      int // hot air tier on the character's tile
	Smoke       int
	TearGas     int
	Spores      int
	HeatSources []HeatSource
	spawner     Spawner
}

// Take builds the Snapshot for a character standing at pos.
//
// Precondition: m must be non-nil.
// Postcondition: HeatSources holds every fire or lava tile other than pos
// within HeatRadius that pos can see, in row-major order.
func Take(m Map, pos Point) Snapshot {
	s := Snapshot{
		Pos:       pos,
		Weather:   m.Weather(),
		Terrain:   m.Terrain(pos),
		Outdoors:  m.Outdoors(pos),
		Radiation: m.Radiation(pos),
		FireUnder: m.Field(pos, FieldFire),
		HotAir:    m.Field(pos, FieldHotAir),
		Smoke:     m.Field(pos, FieldSmoke),
		TearGas:   m.Field(pos, FieldTearGas),
		Spores:    m.Field(pos, FieldSpores),
	}
	for y := pos.Y - HeatRadius; y <= pos.Y+HeatRadius; y++ {
		for x := pos.X - HeatRadius; x <= pos.X+HeatRadius; x++ {
			p := Point{x, y}
			if p == pos {
				continue
			}
			heat := m.Field(p, FieldFire)
			if m.Terrain(p) == Lava {
				heat = lavaHeat
			}
			if heat <= 0 || !m.Sees(pos, p) {
				continue
			}
			s.HeatSources = append(s.HeatSources, HeatSource{At: p, Distance: max(1, pos.Chebyshev(p)), Strength: heat})
		}
	}
	if sp, ok := m.(Spawner); ok {
		s.spawner = sp
	}
	return s
}

// Sunlit reports whether the character stands in daylight under open sky.
func (s Snapshot) Sunlit() bool {
	return s.Outdoors && s.Weather.Daylight
}

// Submerged reports whether a part of the given height is under water.
// Standing in shallow water submerges only the lower body.
func (s Snapshot) Submerged(lower bool) bool {
	switch s.Terrain {
	case DeepWater:
		return true
	case ShallowWater:
		return lower
	}
	return false
}

// SpawnHostile forwards to the world's Spawner when it has one.
func (s Snapshot) SpawnHostile(kind string, n int) int {
	if s.spawner == nil {
		return 0
	}
	return s.spawner.SpawnHostile(kind, s.Pos, n)
}
