// Package config provides Viper-based configuration loading for the
// simulator binaries.
package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// SimulationConfig controls how characters are simulated.
type SimulationConfig struct {
	// ContentDir overrides the embedded catalogs file by file. Empty = embedded.
	ContentDir string `mapstructure:"content_dir"`
	// ScriptDir holds Lua effect hooks. Empty = embedded hooks.
	ScriptDir string `mapstructure:"script_dir"`
	// ScenarioDir is the directory of scenario YAML files the daemon hosts.
	ScenarioDir string `mapstructure:"scenario_dir"`
	// InstructionLimit caps Lua opcodes per hook call. 0 = scripting default.
	InstructionLimit int `mapstructure:"instruction_limit"`
	// Seed seeds the random source; 0 draws from crypto/rand.
	Seed int64 `mapstructure:"seed"`
	// TurnInterval is the wall-clock time between daemon turns.
	TurnInterval time.Duration `mapstructure:"turn_interval"`
	// AutosaveTurns is how many turns pass between saves; 0 disables autosave.
	AutosaveTurns int `mapstructure:"autosave_turns"`
	// TurnsPerHour is the length of one in-game hour in turns.
	TurnsPerHour int `mapstructure:"turns_per_hour"`
	// StartHour is the in-game hour the daemon starts at.
	StartHour int `mapstructure:"start_hour"`
}

// StoreConfig selects where characters are saved.
type StoreConfig struct {
	// Driver is one of "postgres", "sqlite", "memory".
	Driver string `mapstructure:"driver"`
	// SQLitePath is the database file used by the sqlite driver.
	SQLitePath string `mapstructure:"sqlite_path"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Store      StoreConfig      `mapstructure:"store"`
	Database   DatabaseConfig   `mapstructure:"database"`
}

// violations collects configuration problems so Validate can report every
// one of them at once.
type violations []string

func (v *violations) addf(format string, args ...any) {
	*v = append(*v, fmt.Sprintf(format, args...))
}

func (v violations) err(prefix string) error {
	if len(v) == 0 {
		return nil
	}
	return fmt.Errorf("%s%s", prefix, strings.Join(v, "; "))
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "console"}
	sslModes   = []string{"disable", "require", "verify-ca", "verify-full"}
	drivers    = []string{"postgres", "sqlite", "memory"}
)

// Validate checks all configuration invariants. The database section is only
// checked when the postgres store is selected.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var v violations
	c.Logging.check(&v)
	c.Simulation.check(&v)
	c.Store.check(&v)
	if c.Store.Driver == "postgres" {
		c.Database.check(&v)
	}
	return v.err("configuration validation failed: ")
}

func (l LoggingConfig) check(v *violations) {
	if !slices.Contains(logLevels, l.Level) {
		v.addf("logging.level must be one of %v, got %q", logLevels, l.Level)
	}
	if !slices.Contains(logFormats, l.Format) {
		v.addf("logging.format must be one of %v, got %q", logFormats, l.Format)
	}
}

func (s SimulationConfig) check(v *violations) {
	if s.InstructionLimit < 0 {
		v.addf("simulation.instruction_limit must be >= 0, got %d", s.InstructionLimit)
	}
	if s.TurnInterval <= 0 {
		v.addf("simulation.turn_interval must be positive, got %s", s.TurnInterval)
	}
	if s.AutosaveTurns < 0 {
		v.addf("simulation.autosave_turns must be >= 0, got %d", s.AutosaveTurns)
	}
	if s.TurnsPerHour < 1 {
		v.addf("simulation.turns_per_hour must be >= 1, got %d", s.TurnsPerHour)
	}
	if s.StartHour < 0 || s.StartHour > 23 {
		v.addf("simulation.start_hour must be 0-23, got %d", s.StartHour)
	}
}

func (s StoreConfig) check(v *violations) {
	if !slices.Contains(drivers, s.Driver) {
		v.addf("store.driver must be one of %v, got %q", drivers, s.Driver)
		return
	}
	if s.Driver == "sqlite" && s.SQLitePath == "" {
		v.addf("store.sqlite_path must not be empty for the sqlite driver")
	}
}

func (d DatabaseConfig) check(v *violations) {
	if d.Host == "" {
		v.addf("database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		v.addf("database.port must be 1-65535, got %d", d.Port)
	}
	if d.User == "" {
		v.addf("database.user must not be empty")
	}
	if d.Name == "" {
		v.addf("database.name must not be empty")
	}
	if !slices.Contains(sslModes, d.SSLMode) {
		v.addf("database.sslmode must be one of %v, got %q", sslModes, d.SSLMode)
	}
	switch {
	case d.MaxConns < 1:
		v.addf("database.max_conns must be >= 1, got %d", d.MaxConns)
	case d.MinConns < 0:
		v.addf("database.min_conns must be >= 0, got %d", d.MinConns)
	case d.MinConns > d.MaxConns:
		v.addf("database.min_conns (%d) exceeds database.max_conns (%d)", d.MinConns, d.MaxConns)
	}
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and the
// environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	return LoadFromViper(v)
}

// New returns a Viper instance carrying the defaults and BIOSIM_ environment
// overrides, ready for a config file or flag bindings.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("BIOSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// defaults mirrors configs/dev.yaml except for the log format.
var defaults = map[string]any{
	"logging.level":  "info",
	"logging.format": "json",

	"simulation.content_dir":       "",
	"simulation.script_dir":        "",
	"simulation.scenario_dir":      "content/scenarios",
	"simulation.instruction_limit": 0,
	"simulation.seed":              0,
	"simulation.turn_interval":     "6s",
	"simulation.autosave_turns":    100,
	"simulation.turns_per_hour":    600,
	"simulation.start_hour":        8,

	"store.driver":      "sqlite",
	"store.sqlite_path": "data/biosim.db",

	"database.host":              "localhost",
	"database.port":              5432,
	"database.user":              "biosim",
	"database.password":          "biosim",
	"database.name":              "biosim",
	"database.sslmode":           "disable",
	"database.max_conns":         10,
	"database.min_conns":         2,
	"database.max_conn_lifetime": "1h",
}

func setDefaults(v *viper.Viper) {
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
}
