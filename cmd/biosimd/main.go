// Package main provides the simulation daemon: it hosts the subject of every
// scenario in the scenario directory, advances them on a wall-clock ticker
// and saves them to the configured store.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/biosim/internal/config"
	"github.com/cory-johannsen/biosim/internal/game/world"
	"github.com/cory-johannsen/biosim/internal/server"
	"github.com/cory-johannsen/biosim/internal/simserver"
)

type daemon struct {
	host   *simserver.Host
	logger *zap.Logger
}

func newDaemon(host *simserver.Host, logger *zap.Logger) *daemon {
	return &daemon{host: host, logger: logger}
}

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	stopTimeout := flag.Duration("stop-timeout", 10*time.Second, "per-service shutdown timeout")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	d, cleanup, err := initializeDaemon(ctx, cfg, "biosimd")
	if err != nil {
		log.Fatalf("initializing daemon: %v", err)
	}
	defer cleanup()
	logger := d.logger
	defer func() { _ = logger.Sync() }()

	scenarios, err := world.LoadScenariosFromDir(cfg.Simulation.ScenarioDir)
	if err != nil {
		logger.Fatal("loading scenarios", zap.Error(err))
	}
	worldMgr, err := world.NewManager(scenarios)
	if err != nil {
		logger.Fatal("indexing scenarios", zap.Error(err))
	}
	for _, id := range worldMgr.IDs() {
		sc, _ := worldMgr.Get(id)
		if _, err := d.host.Admit(ctx, sc); err != nil {
			logger.Fatal("admitting scenario", zap.String("scenario", id), zap.Error(err))
		}
	}
	logger.Info("daemon ready",
		zap.Int("scenarios", worldMgr.Count()),
		zap.Int("characters", len(d.host.Residents())),
		zap.Stringer("hour", d.host.Clock().Hour()),
		zap.Duration("turn_interval", cfg.Simulation.TurnInterval),
		zap.String("store", cfg.Store.Driver),
		zap.Duration("startup", time.Since(start)),
	)

	lc := server.NewLifecycle(logger, *stopTimeout)
	lc.Add("host", d.host)
	if err := lc.Run(ctx); err != nil {
		logger.Error("daemon stopped with error", zap.Error(err))
	}
}
