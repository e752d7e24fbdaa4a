package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// postgresConfig is a valid configuration using the postgres store, so every
// section is checked.
func postgresConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Simulation: SimulationConfig{
			TurnInterval:  6 * time.Second,
			AutosaveTurns: 100,
			TurnsPerHour:  600,
			StartHour:     8,
		},
		Store: StoreConfig{Driver: "postgres"},
		Database: DatabaseConfig{
			Host:            "db",
			Port:            5432,
			User:            "sim",
			Password:        "secret",
			Name:            "characters",
			SSLMode:         "require",
			MaxConns:        4,
			MinConns:        1,
			MaxConnLifetime: time.Hour,
		},
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "biosim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestValidate_PostgresConfig(t *testing.T) {
	assert.NoError(t, postgresConfig().Validate())
}

func TestDatabaseDSN(t *testing.T) {
	assert.Equal(t,
		"postgres://sim:secret@db:5432/characters?sslmode=require",
		postgresConfig().Database.DSN())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
  format: console
simulation:
  seed: 42
  turn_interval: 250ms
  autosave_turns: 20
  start_hour: 21
store:
  driver: sqlite
  sqlite_path: /tmp/biosim-test.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, int64(42), cfg.Simulation.Seed)
	assert.Equal(t, 250*time.Millisecond, cfg.Simulation.TurnInterval)
	assert.Equal(t, 20, cfg.Simulation.AutosaveTurns)
	assert.Equal(t, 21, cfg.Simulation.StartHour)
	assert.Equal(t, 600, cfg.Simulation.TurnsPerHour, "unset keys keep their default")
	assert.Equal(t, "content/scenarios", cfg.Simulation.ScenarioDir)
	assert.Equal(t, "/tmp/biosim-test.db", cfg.Store.SQLitePath)
}

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "data/biosim.db", cfg.Store.SQLitePath)
	assert.Equal(t, 6*time.Second, cfg.Simulation.TurnInterval)
	assert.Equal(t, 8, cfg.Simulation.StartHour)
	assert.Equal(t, time.Hour, cfg.Database.MaxConnLifetime)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BIOSIM_STORE_DRIVER", "memory")
	t.Setenv("BIOSIM_SIMULATION_SEED", "9")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, int64(9), cfg.Simulation.Seed)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.ErrorContains(t, err, "reading config file")

	_, err = Load(writeConfig(t, "simulation:\n  turns_per_hour: 0\n"))
	assert.ErrorContains(t, err, "simulation.turns_per_hour")
}

func TestValidate_Store(t *testing.T) {
	tests := []struct {
		name  string
		store StoreConfig
		want  string
	}{
		{"memory", StoreConfig{Driver: "memory"}, ""},
		{"sqlite with path", StoreConfig{Driver: "sqlite", SQLitePath: "x.db"}, ""},
		{"sqlite without path", StoreConfig{Driver: "sqlite"}, "store.sqlite_path"},
		{"unknown driver", StoreConfig{Driver: "mongo"}, "store.driver"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := postgresConfig()
			cfg.Store = tc.store
			err := cfg.Validate()
			if tc.want == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.want)
		})
	}
}

func TestValidate_DatabaseIgnoredWithoutPostgres(t *testing.T) {
	cfg := postgresConfig()
	cfg.Store = StoreConfig{Driver: "sqlite", SQLitePath: "x.db"}
	cfg.Database = DatabaseConfig{}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		key    string
		mutate func(*Config)
	}{
		{"logging.level", func(c *Config) { c.Logging.Level = "trace" }},
		{"logging.format", func(c *Config) { c.Logging.Format = "xml" }},
		{"simulation.turn_interval", func(c *Config) { c.Simulation.TurnInterval = 0 }},
		{"simulation.autosave_turns", func(c *Config) { c.Simulation.AutosaveTurns = -1 }},
		{"simulation.turns_per_hour", func(c *Config) { c.Simulation.TurnsPerHour = 0 }},
		{"simulation.start_hour", func(c *Config) { c.Simulation.StartHour = 24 }},
		{"simulation.instruction_limit", func(c *Config) { c.Simulation.InstructionLimit = -5 }},
		{"database.host", func(c *Config) { c.Database.Host = "" }},
		{"database.sslmode", func(c *Config) { c.Database.SSLMode = "prefer" }},
		{"database.max_conns", func(c *Config) { c.Database.MaxConns = 0 }},
		{"database.min_conns", func(c *Config) { c.Database.MinConns = 20 }},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			cfg := postgresConfig()
			tc.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tc.key)
		})
	}
}

func TestValidate_AggregatesViolations(t *testing.T) {
	cfg := postgresConfig()
	cfg.Logging.Level = "trace"
	cfg.Simulation.TurnsPerHour = 0
	cfg.Database.Port = 0

	err := cfg.Validate()
	require.Error(t, err)
	for _, key := range []string{"logging.level", "simulation.turns_per_hour", "database.port"} {
		assert.Contains(t, err.Error(), key)
	}
}

func TestPropertyStartHourRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		hour := rapid.IntRange(-48, 48).Draw(t, "hour")
		cfg := postgresConfig()
		cfg.Simulation.StartHour = hour
		err := cfg.Validate()
		if valid := hour >= 0 && hour <= 23; valid != (err == nil) {
			t.Fatalf("start_hour %d: valid=%v err=%v", hour, valid, err)
		}
	})
}

func TestPropertyPortRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		port := rapid.IntRange(-1000, 100000).Draw(t, "port")
		cfg := postgresConfig()
		cfg.Database.Port = port
		err := cfg.Validate()
		if valid := port >= 1 && port <= 65535; valid != (err == nil) {
			t.Fatalf("port %d: valid=%v err=%v", port, valid, err)
		}
	})
}

func TestPropertyConnBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		maxConns := rapid.Int32Range(1, 100).Draw(t, "max_conns")
		minConns := rapid.Int32Range(0, 200).Draw(t, "min_conns")
		cfg := postgresConfig()
		cfg.Database.MaxConns = maxConns
		cfg.Database.MinConns = minConns
		err := cfg.Validate()
		if valid := minConns <= maxConns; valid != (err == nil) {
			t.Fatalf("max=%d min=%d: valid=%v err=%v", maxConns, minConns, valid, err)
		}
	})
}
