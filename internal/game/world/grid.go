package world

import "sync"

// Spawn records one creature placed by SpawnHostile.
type Spawn struct {
	Kind string
	At   Point
}

type fieldKey struct {
	P    Point
	Kind FieldKind
}

// Grid is a rectangular tile map implementing Map and Spawner.
// It is safe for concurrent use.
type Grid struct {
	mu        sync.RWMutex
	width     int
	height    int
	weather   Weather
	indoors   bool
	terrain   map[Point]Terrain
	fields    map[fieldKey]int
	radiation map[Point]int
	baseRad   int
	spawns    []Spawn
}

// NewGrid returns an empty outdoor grid of the given size with weather w.
//
// Precondition: width and height are positive.
func NewGrid(width, height int, w Weather) *Grid {
	return &Grid{
		width:     width,
		height:    height,
		weather:   w,
		terrain:   make(map[Point]Terrain),
		fields:    make(map[fieldKey]int),
		radiation: make(map[Point]int),
	}
}

// InBounds reports whether p lies on the grid.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.width && p.Y < g.height
}

// Weather implements Map.
func (g *Grid) Weather() Weather {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.weather
}

// SetWeather replaces the outdoor conditions.
func (g *Grid) SetWeather(w Weather) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.weather = w
}

// SetIndoors marks the whole grid as sheltered from the sky.
func (g *Grid) SetIndoors(indoors bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.indoors = indoors
}

// Terrain implements Map.
func (g *Grid) Terrain(p Point) Terrain {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.terrain[p]
}

// SetTerrain sets the terrain at p. Points off the grid are ignored.
func (g *Grid) SetTerrain(p Point, t Terrain) {
	if !g.InBounds(p) {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if t == Floor {
		delete(g.terrain, p)
		return
	}
	g.terrain[p] = t
}

// Field implements Map.
func (g *Grid) Field(p Point, kind FieldKind) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.fields[fieldKey{p, kind}]
}

// SetField sets the strength of kind at p; zero removes it.
func (g *Grid) SetField(p Point, kind FieldKind, strength int) {
	if !g.InBounds(p) {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if strength <= 0 {
		delete(g.fields, fieldKey{p, kind})
		return
	}
	g.fields[fieldKey{p, kind}] = strength
}

// Radiation implements Map.
func (g *Grid) Radiation(p Point) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if r, ok := g.radiation[p]; ok {
		return r
	}
	return g.baseRad
}

// SetRadiation sets the radiation level at p.
func (g *Grid) SetRadiation(p Point, level int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.radiation[p] = level
}

// SetBaseRadiation sets the level of every tile without an explicit value.
func (g *Grid) SetBaseRadiation(level int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.baseRad = level
}

// Outdoors implements Map.
func (g *Grid) Outdoors(Point) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return !g.indoors
}

// Sees implements Map using a Bresenham line; opaque tiles strictly between
// the endpoints block sight.
func (g *Grid) Sees(from, to Point) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	dx, dy := abs(to.X-from.X), -abs(to.Y-from.Y)
	sx, sy := 1, 1
	if from.X > to.X {
		sx = -1
	}
	if from.Y > to.Y {
		sy = -1
	}
	err := dx + dy
	x, y := from.X, from.Y
	for {
		if x == to.X && y == to.Y {
			return true
		}
		p := Point{x, y}
		if p != from && g.terrain[p].Opaque() {
			return false
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// SpawnHostile implements Spawner, placing creatures on free tiles around near.
func (g *Grid) SpawnHostile(kind string, near Point, n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	placed := 0
	for dy := -1; dy <= 1 && placed < n; dy++ {
		for dx := -1; dx <= 1 && placed < n; dx++ {
			p := Point{near.X + dx, near.Y + dy}
			if p == near || !g.InBounds(p) || g.terrain[p] == Wall || g.occupied(p) {
				continue
			}
			g.spawns = append(g.spawns, Spawn{Kind: kind, At: p})
			placed++
		}
	}
	return placed
}

func (g *Grid) occupied(p Point) bool {
	for _, s := range g.spawns {
		if s.At == p {
			return true
		}
	}
	return false
}

// Spawns returns every creature placed so far.
func (g *Grid) Spawns() []Spawn {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]Spawn(nil), g.spawns...)
}
