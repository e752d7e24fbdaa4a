// Package app holds the constructors shared by the simulator binaries. The
// daemon assembles them with wire; the CLI calls them directly.
package app

import (
	"context"
	"fmt"

	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/cory-johannsen/biosim/internal/config"
	"github.com/cory-johannsen/biosim/internal/content"
	"github.com/cory-johannsen/biosim/internal/game/dice"
	"github.com/cory-johannsen/biosim/internal/game/sim"
	"github.com/cory-johannsen/biosim/internal/observability"
	"github.com/cory-johannsen/biosim/internal/scripting"
	"github.com/cory-johannsen/biosim/internal/simserver"
	"github.com/cory-johannsen/biosim/internal/storage"
	"github.com/cory-johannsen/biosim/internal/storage/postgres"
	"github.com/cory-johannsen/biosim/internal/storage/sqlite"
)

// ProviderSet builds a Simulator and everything under it from a Config.
var ProviderSet = wire.NewSet(
	ProvideLogging,
	ProvideLogger,
	ProvideCatalog,
	ProvideSource,
	ProvideRoller,
	ProvideScripts,
	ProvideSimulator,
)

// DaemonSet adds the store and the host machinery to ProviderSet.
var DaemonSet = wire.NewSet(
	ProviderSet,
	ProvideStore,
	ProvideClock,
	ProvideTickManager,
	ProvideHostOptions,
	simserver.NewHost,
)

// ProvideLogging extracts the logging section.
func ProvideLogging(cfg config.Config) config.LoggingConfig { return cfg.Logging }

// ServiceName names the binary in every log line.
type ServiceName string

// ProvideLogger builds the root logger.
func ProvideLogger(cfg config.LoggingConfig, service ServiceName) (*zap.Logger, error) {
	return observability.NewLogger(cfg, string(service))
}

// ProvideCatalog loads the content catalog, preferring cfg.ContentDir over
// the embedded documents.
func ProvideCatalog(cfg config.Config, logger *zap.Logger) (*content.Catalog, error) {
	cat, err := content.Load(cfg.Simulation.ContentDir)
	if err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}
	logger.Info("content loaded", zap.String("dir", cfg.Simulation.ContentDir))
	return cat, nil
}

// ProvideSource returns a seeded source when cfg names a seed and a
// crypto-backed one otherwise.
func ProvideSource(cfg config.Config) dice.Source {
	if cfg.Simulation.Seed != 0 {
		return dice.NewSeededSource(cfg.Simulation.Seed)
	}
	return dice.NewCryptoSource()
}

// ProvideRoller wraps src in a logging Roller.
func ProvideRoller(src dice.Source, logger *zap.Logger) *dice.Roller {
	return dice.NewLoggedRoller(src, logger.Named("dice"))
}

// ProvideScripts loads the Lua hooks from cfg.ScriptDir, or the embedded
// hooks when it is empty.
func ProvideScripts(cfg config.Config, roller *dice.Roller, logger *zap.Logger) (*scripting.Manager, func(), error) {
	mgr := scripting.NewManager(roller, logger.Named("scripting"))
	var err error
	if dir := cfg.Simulation.ScriptDir; dir != "" {
		err = mgr.Load(dir, cfg.Simulation.InstructionLimit)
	} else {
		err = mgr.LoadFS(content.Scripts(), cfg.Simulation.InstructionLimit)
	}
	if err != nil {
		mgr.Close()
		return nil, nil, err
	}
	return mgr, mgr.Close, nil
}

// ProvideSimulator builds the turn scheduler.
func ProvideSimulator(src dice.Source, scripts *scripting.Manager, logger *zap.Logger) *sim.Simulator {
	return sim.New(src, scripts, logger.Named("sim"))
}

// ProvideStore opens the configured character store. The Host that receives
// it closes it on Stop.
func ProvideStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (storage.Store, error) {
	switch cfg.Store.Driver {
	case "postgres":
		st, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		logger.Info("store opened", zap.String("driver", "postgres"), zap.String("host", cfg.Database.Host))
		return st, nil
	case "sqlite":
		st, err := sqlite.Open(cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("store opened", zap.String("driver", "sqlite"), zap.String("path", cfg.Store.SQLitePath))
		return st, nil
	case "memory":
		logger.Warn("store is in memory; characters are lost on exit")
		return storage.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// ProvideClock starts the day clock at the configured hour.
func ProvideClock(cfg config.Config) *simserver.Clock {
	return simserver.NewClock(cfg.Simulation.StartHour, cfg.Simulation.TurnsPerHour)
}

// ProvideTickManager paces turns at the configured interval.
func ProvideTickManager(cfg config.Config) *simserver.TickManager {
	return simserver.NewTickManager(cfg.Simulation.TurnInterval)
}

// ProvideHostOptions extracts the host tuning.
func ProvideHostOptions(cfg config.Config) simserver.Options {
	return simserver.Options{AutosaveTurns: cfg.Simulation.AutosaveTurns}
}
