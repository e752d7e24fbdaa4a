package world

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlScenarioFile is the top-level YAML structure for scenario files.
type yamlScenarioFile struct {
	Scenario yamlScenario `yaml:"scenario"`
}

// yamlScenario is the YAML representation of a scenario.
type yamlScenario struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Width       int          `yaml:"width"`
	Height      int          `yaml:"height"`
	Indoors     bool         `yaml:"indoors"`
	Radiation   int          `yaml:"radiation"`
	Weather     Weather      `yaml:"weather"`
	Start       Point        `yaml:"start"`
	Tiles       []yamlTile   `yaml:"tiles"`
	Fields      []yamlField  `yaml:"fields"`
	Subject     Subject      `yaml:"subject"`
	Turns       int          `yaml:"turns"`
	Seed        int64        `yaml:"seed"`
	Hotspots    []yamlHotRad `yaml:"hotspots"`
}

type yamlTile struct {
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	Terrain string `yaml:"terrain"`
}

type yamlField struct {
	X        int    `yaml:"x"`
	Y        int    `yaml:"y"`
	Kind     string `yaml:"kind"`
	Strength int    `yaml:"strength"`
}

type yamlHotRad struct {
	X     int `yaml:"x"`
	Y     int `yaml:"y"`
	Level int `yaml:"level"`
}

// SubjectEffect is an effect applied to the scenario character at start.
type SubjectEffect struct {
	ID        string `yaml:"id"`
	Part      string `yaml:"part"`
	Duration  int    `yaml:"duration"`
	Intensity int    `yaml:"intensity"`
	Permanent bool   `yaml:"permanent"`
}

// Subject describes the character a scenario starts with. It is plain data;
// turning it into a character is the caller's concern.
type Subject struct {
	Name      string          `yaml:"name"`
	Traits    []string        `yaml:"traits"`
	Bionics   []string        `yaml:"bionics"`
	Wear      []string        `yaml:"wear"`
	Tools     map[string]int  `yaml:"tools"`
	Asleep    bool            `yaml:"asleep"`
	Wielding  bool            `yaml:"wielding"`
	Hunger    int             `yaml:"hunger"`
	Thirst    int             `yaml:"thirst"`
	Fatigue   int             `yaml:"fatigue"`
	Pain      int             `yaml:"pain"`
	Radiation int             `yaml:"radiation"`
	Stim      int             `yaml:"stim"`
	Effects   []SubjectEffect `yaml:"effects"`
	Wetness   map[string]int  `yaml:"wetness"`
}

// Scenario is a grid, a starting position and a subject to simulate there.
type Scenario struct {
	ID          string
	Name        string
	Description string
	Start       Point
	Turns       int
	Seed        int64
	Subject     Subject
	Grid        *Grid
}

// Validate checks scenario invariants.
//
// Postcondition: Returns nil if valid, or an error describing the first violation.
func (s *Scenario) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("scenario ID must not be empty")
	}
	if s.Name == "" {
		return fmt.Errorf("scenario %q: name must not be empty", s.ID)
	}
	if s.Grid == nil || s.Grid.width <= 0 || s.Grid.height <= 0 {
		return fmt.Errorf("scenario %q: width and height must be positive", s.ID)
	}
	if !s.Grid.InBounds(s.Start) {
		return fmt.Errorf("scenario %q: start %v is off the grid", s.ID, s.Start)
	}
	if s.Grid.Terrain(s.Start) == Wall {
		return fmt.Errorf("scenario %q: start %v is inside a wall", s.ID, s.Start)
	}
	if s.Turns < 0 {
		return fmt.Errorf("scenario %q: turns must not be negative", s.ID)
	}
	return nil
}

// LoadScenarioFromFile reads and validates a single scenario YAML file.
//
// Precondition: path must point to a valid YAML scenario file.
// Postcondition: Returns a validated Scenario or a non-nil error.
func LoadScenarioFromFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading scenario file %s: %w", path, err)
	}
	return LoadScenarioFromBytes(data)
}

// LoadScenarioFromBytes parses and validates a scenario from YAML bytes.
//
// Precondition: data must be valid YAML conforming to the scenario schema.
// Postcondition: Returns a validated Scenario or a non-nil error.
func LoadScenarioFromBytes(data []byte) (*Scenario, error) {
	var file yamlScenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing scenario YAML: %w", err)
	}
	sc, err := convertYAMLScenario(file.Scenario)
	if err != nil {
		return nil, fmt.Errorf("converting scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("validating scenario: %w", err)
	}
	return sc, nil
}

// LoadScenariosFromDir loads all YAML files in a directory as scenarios.
//
// Precondition: dir must be a valid directory path.
// Postcondition: Returns all validated scenarios or the first error encountered.
func LoadScenariosFromDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading scenario directory %s: %w", dir, err)
	}

	var scenarios []*Scenario
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		sc, err := LoadScenarioFromFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("loading scenario from %s: %w", name, err)
		}
		scenarios = append(scenarios, sc)
	}

	if len(scenarios) == 0 {
		return nil, fmt.Errorf("no scenario files found in %s", dir)
	}

	return scenarios, nil
}

// convertYAMLScenario converts the parsed YAML structures into domain types.
func convertYAMLScenario(ys yamlScenario) (*Scenario, error) {
	g := NewGrid(ys.Width, ys.Height, ys.Weather)
	g.SetIndoors(ys.Indoors)
	g.SetBaseRadiation(ys.Radiation)
	for _, t := range ys.Tiles {
		terr, err := ParseTerrain(t.Terrain)
		if err != nil {
			return nil, fmt.Errorf("tile (%d,%d): %w", t.X, t.Y, err)
		}
		g.SetTerrain(Point{t.X, t.Y}, terr)
	}
	for _, f := range ys.Fields {
		kind, err := ParseFieldKind(f.Kind)
		if err != nil {
			return nil, fmt.Errorf("field (%d,%d): %w", f.X, f.Y, err)
		}
		g.SetField(Point{f.X, f.Y}, kind, f.Strength)
	}
	for _, h := range ys.Hotspots {
		g.SetRadiation(Point{h.X, h.Y}, h.Level)
	}
	return &Scenario{
		ID:          ys.ID,
		Name:        ys.Name,
		Description: strings.TrimSpace(ys.Description),
		Start:       ys.Start,
		Turns:       ys.Turns,
		Seed:        ys.Seed,
		Subject:     ys.Subject,
		Grid:        g,
	}, nil
}
