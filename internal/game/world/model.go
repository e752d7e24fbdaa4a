// Package world is the read-only world view the body simulation consumes:
// weather, terrain, fields, line of sight and radiation around a character.
// It also ships a YAML-backed grid implementation used by scenarios.
package world

import (
	"fmt"
	"strings"
)

// Point is a tile coordinate.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Chebyshev returns the king-move distance between p and q.
func (p Point) Chebyshev(q Point) int {
	return max(abs(p.X-q.X), abs(p.Y-q.Y))
}

// Terrain classifies a tile.
type Terrain int

const (
	Floor Terrain = iota
	Wall
	ShallowWater
	DeepWater
	Lava
)

var terrainNames = map[Terrain]string{
	Floor:        "floor",
	Wall:         "wall",
	ShallowWater: "shallow_water",
	DeepWater:    "deep_water",
	Lava:         "lava",
}

func (t Terrain) String() string {
	if n, ok := terrainNames[t]; ok {
		return n
	}
	return fmt.Sprintf("terrain(%d)", int(t))
}

// ParseTerrain maps a terrain name to its Terrain.
func ParseTerrain(s string) (Terrain, error) {
	for t, n := range terrainNames {
		if strings.EqualFold(n, s) {
			return t, nil
		}
	}
	return Floor, fmt.Errorf("unknown terrain %q", s)
}

// Opaque reports whether the terrain blocks line of sight.
func (t Terrain) Opaque() bool { return t == Wall }

// FieldKind identifies a field layered over terrain.
type FieldKind int

const (
	FieldFire FieldKind = iota
	FieldHotAir
	FieldSmoke
	FieldTearGas
	FieldSpores
)

var fieldNames = map[FieldKind]string{
	FieldFire:    "fire",
	FieldHotAir:  "hot_air",
	FieldSmoke:   "smoke",
	FieldTearGas: "tear_gas",
	FieldSpores:  "spores",
}

func (k FieldKind) String() string {
	if n, ok := fieldNames[k]; ok {
		return n
	}
	return fmt.Sprintf("field(%d)", int(k))
}

// ParseFieldKind maps a field name to its FieldKind.
func ParseFieldKind(s string) (FieldKind, error) {
	for k, n := range fieldNames {
		if strings.EqualFold(n, s) {
			return k, nil
		}
	}
	return FieldFire, fmt.Errorf("unknown field %q", s)
}

// Weather holds the scalar outdoor conditions.
type Weather struct {
	TemperatureF      int  `yaml:"temperature_f"`
	WaterTemperatureF int  `yaml:"water_temperature_f"`
	Wind              int  `yaml:"wind"` // mph
	Humidity          int  `yaml:"humidity"`
	Sunny             bool `yaml:"sunny"`
	Daylight          bool `yaml:"daylight"`
}

// Map is the world view consumed by the body simulation. Implementations
// must tolerate out-of-bounds points, answering as for open floor.
type Map interface {
	Weather() Weather
	Terrain(p Point) Terrain
	// Field returns the strength of kind at p, or 0 when absent.
	Field(p Point, kind FieldKind) int
	Sees(from, to Point) bool
	Radiation(p Point) int
	Outdoors(p Point) bool
}

// Spawner places hostile creatures into the world.
type Spawner interface {
	// SpawnHostile places up to n creatures of kind next to near and returns
	// how many were placed.
	SpawnHostile(kind string, near Point, n int) int
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
