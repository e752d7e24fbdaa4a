// Package main provides the scenario runner: it builds the subject of each
// scenario, simulates it for the scenario's turn count and prints what
// happened.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/biosim/internal/app"
	"github.com/cory-johannsen/biosim/internal/config"
	"github.com/cory-johannsen/biosim/internal/content"
	"github.com/cory-johannsen/biosim/internal/game/affliction"
	"github.com/cory-johannsen/biosim/internal/game/body"
	"github.com/cory-johannsen/biosim/internal/game/character"
	"github.com/cory-johannsen/biosim/internal/game/thermal"
	"github.com/cory-johannsen/biosim/internal/game/world"
	"github.com/cory-johannsen/biosim/internal/storage"
)

const defaultTurns = 600

type options struct {
	turns int
	seed  int64
	quiet bool
	save  bool
}

func main() {
	configPath := flag.String("config", "", "path to configuration file; empty = defaults and environment")
	scenarioPath := flag.String("scenario", "", "scenario YAML file; empty = every scenario in simulation.scenario_dir")
	turns := flag.Int("turns", 0, "turns to simulate; 0 = the scenario's own count")
	seed := flag.Int64("seed", 0, "random seed; 0 = the scenario's seed, then simulation.seed")
	quiet := flag.Bool("quiet", false, "print only the final report")
	save := flag.Bool("save", false, "save each character to the configured store")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	logger, err := app.ProvideLogger(cfg.Logging, "biosim")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	cat, err := app.ProvideCatalog(cfg, logger)
	if err != nil {
		logger.Fatal("loading content", zap.Error(err))
	}

	var scenarios []*world.Scenario
	if *scenarioPath != "" {
		sc, err := world.LoadScenarioFromFile(*scenarioPath)
		if err != nil {
			logger.Fatal("loading scenario", zap.String("path", *scenarioPath), zap.Error(err))
		}
		scenarios = []*world.Scenario{sc}
	} else {
		scenarios, err = world.LoadScenariosFromDir(cfg.Simulation.ScenarioDir)
		if err != nil {
			logger.Fatal("loading scenarios", zap.Error(err))
		}
	}

	ctx := context.Background()
	var store storage.Store
	if *save {
		if store, err = app.ProvideStore(ctx, cfg, logger); err != nil {
			logger.Fatal("opening store", zap.Error(err))
		}
		defer store.Close()
	}

	opts := options{turns: *turns, seed: *seed, quiet: *quiet, save: *save}
	for _, sc := range scenarios {
		c, err := run(ctx, os.Stdout, cfg, cat, sc, opts, logger)
		if err != nil {
			logger.Fatal("running scenario", zap.String("scenario", sc.ID), zap.Error(err))
		}
		if store != nil {
			if err := storage.SaveCharacter(ctx, store, c); err != nil {
				logger.Fatal("saving character", zap.String("scenario", sc.ID), zap.Error(err))
			}
			fmt.Fprintf(os.Stdout, "saved %s as %s\n\n", c.Name, c.ID)
		}
	}
}

// run simulates one scenario and writes its transcript and report to w.
func run(ctx context.Context, w io.Writer, cfg config.Config, cat *content.Catalog, sc *world.Scenario, opts options, logger *zap.Logger) (*character.Character, error) {
	start := time.Now()
	switch {
	case opts.seed != 0:
		cfg.Simulation.Seed = opts.seed
	case sc.Seed != 0:
		cfg.Simulation.Seed = sc.Seed
	}
	n := opts.turns
	if n == 0 {
		n = sc.Turns
	}
	if n == 0 {
		n = defaultTurns
	}

	logger = logger.With(zap.String("scenario", sc.ID))
	src := app.ProvideSource(cfg)
	scripts, cleanup, err := app.ProvideScripts(cfg, app.ProvideRoller(src, logger), logger)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	simulator := app.ProvideSimulator(src, scripts, logger)

	c, err := character.Build(cat, sc.Subject, sc.Start, logger)
	if err != nil {
		return nil, fmt.Errorf("building subject: %w", err)
	}

	fmt.Fprintf(w, "== %s: %s ==\n", sc.ID, sc.Name)
	done := 0
	for ; done < n && !c.Dead; done++ {
		if ctx.Err() != nil {
			break
		}
		simulator.Turn(c, sc.Grid)
		for _, m := range c.DrainMessages() {
			if !opts.quiet {
				fmt.Fprintf(w, "[%5d] %-7s %s\n", m.Turn, m.Kind, m.Text)
			}
		}
	}
	report(w, c)
	logger.Info("scenario finished",
		zap.Int("turns", done),
		zap.Bool("dead", c.Dead),
		zap.Duration("elapsed", time.Since(start)),
	)
	return c, nil
}

func report(w io.Writer, c *character.Character) {
	fmt.Fprintf(w, "-- %s after %d turns --\n", c.Name, c.Turn)
	if c.Dead {
		fmt.Fprintf(w, "dead: %s\n", c.CauseOfDeath)
	}
	fmt.Fprintf(w, "hunger %d  thirst %d  fatigue %d  pain %d  radiation %d  morale %d\n",
		c.Hunger, c.Thirst, c.Fatigue, c.Pain, c.Radiation, c.MoraleLevel())
	for _, p := range body.ThermalParts {
		t := c.Temp.Get(p)
		fmt.Fprintf(w, "  %-6s %5d %s\n", p, t, thermal.TierOf(t))
	}
	for _, d := range affliction.Describe(c) {
		fmt.Fprintf(w, "  * %s\n", d.Name)
	}
	fmt.Fprintln(w)
}
