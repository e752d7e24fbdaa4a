// Package simserver hosts long-lived characters: it advances them on a
// wall-clock ticker, drives the day/night cycle and saves them to a store.
package simserver

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/biosim/internal/content"
	"github.com/cory-johannsen/biosim/internal/game/character"
	"github.com/cory-johannsen/biosim/internal/game/sim"
	"github.com/cory-johannsen/biosim/internal/game/world"
	"github.com/cory-johannsen/biosim/internal/observability"
	"github.com/cory-johannsen/biosim/internal/storage"
)

// Options tune a Host.
type Options struct {
	// AutosaveTurns saves every resident whose turn counter is a multiple of
	// it. 0 disables autosave.
	AutosaveTurns int
}

// resident is one hosted character and the scenario grid it lives in.
type resident struct {
	c       *character.Character
	grid    *world.Grid
	weather world.Weather
}

// Host owns the hosted characters. Admit must not race with a running tick;
// everything else is safe for concurrent use.
type Host struct {
	cat    *content.Catalog
	sim    *sim.Simulator
	store  storage.Store
	clock  *Clock
	ticker *TickManager
	opts   Options
	log    *zap.Logger

	mu        sync.Mutex
	residents map[uuid.UUID]*resident

	started atomic.Bool
	done    chan struct{}
}

// NewHost wires a Host. The clock is registered as the ticker's first
// callback so every character sees the hour of the turn it runs in.
//
// Precondition: every argument except logger must be non-nil.
func NewHost(cat *content.Catalog, simulator *sim.Simulator, store storage.Store, clock *Clock, ticker *TickManager, opts Options, logger *zap.Logger) *Host {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Host{
		cat:       cat,
		sim:       simulator,
		store:     store,
		clock:     clock,
		ticker:    ticker,
		opts:      opts,
		log:       logger,
		residents: make(map[uuid.UUID]*resident),
		done:      make(chan struct{}),
	}
	ticker.Register("clock", h.advanceClock)
	return h
}

// Admit hosts the subject of sc. A living character of the same name already
// in the store is resumed; otherwise a new one is built and saved.
//
// Postcondition: the character is registered with the ticker.
func (h *Host) Admit(ctx context.Context, sc *world.Scenario) (*character.Character, error) {
	c, resumed, err := h.resume(ctx, sc)
	if err != nil {
		return nil, err
	}
	if c == nil {
		if c, err = character.Build(h.cat, sc.Subject, sc.Start, h.log); err != nil {
			return nil, fmt.Errorf("admitting %s: %w", sc.ID, err)
		}
		if err := storage.SaveCharacter(ctx, h.store, c); err != nil {
			return nil, err
		}
	}

	r := &resident{c: c, grid: sc.Grid, weather: sc.Grid.Weather()}
	h.mu.Lock()
	h.residents[c.ID] = r
	h.mu.Unlock()
	h.ticker.Register(c.ID.String(), func() { h.turn(r) })

	h.log.Info("character admitted",
		zap.String("character", c.ID.String()),
		zap.String("name", c.Name),
		zap.String("scenario", sc.ID),
		zap.Bool("resumed", resumed),
		zap.Int("turn", c.Turn),
	)
	return c, nil
}

func (h *Host) resume(ctx context.Context, sc *world.Scenario) (*character.Character, bool, error) {
	name := sc.Subject.Name
	if name == "" {
		return nil, false, nil
	}
	recs, err := h.store.List(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("listing saved characters: %w", err)
	}
	for _, rec := range recs {
		if rec.Name != name || rec.Dead {
			continue
		}
		c, err := storage.LoadCharacter(ctx, h.store, rec.ID, h.cat, h.log)
		if err != nil {
			return nil, false, err
		}
		return c, true, nil
	}
	return nil, false, nil
}

// Residents returns the hosted characters.
func (h *Host) Residents() []*character.Character {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*character.Character, 0, len(h.residents))
	for _, r := range h.residents {
		out = append(out, r.c)
	}
	return out
}

// Clock returns the host's day clock.
func (h *Host) Clock() *Clock { return h.clock }

func (h *Host) advanceClock() {
	if hour, changed := h.clock.Advance(); changed {
		h.log.Debug("hour", zap.Stringer("hour", hour), zap.String("period", string(hour.Period())))
	}
}

// turn advances one resident by one turn.
func (h *Host) turn(r *resident) {
	c := r.c
	r.grid.SetWeather(h.clock.Weather(r.weather))
	h.sim.Turn(c, r.grid)

	observability.LogMessages(h.log, c, c.DrainMessages())

	switch {
	case c.Dead:
		h.log.Info("character died",
			zap.String("character", c.ID.String()),
			zap.String("cause", c.CauseOfDeath),
			zap.Int("turn", c.Turn),
		)
		h.ticker.Unregister(c.ID.String())
		h.mu.Lock()
		delete(h.residents, c.ID)
		h.mu.Unlock()
		h.save(c)
	case h.opts.AutosaveTurns > 0 && c.Turn%h.opts.AutosaveTurns == 0:
		h.save(c)
	}
}

func (h *Host) save(c *character.Character) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := storage.SaveCharacter(ctx, h.store, c); err != nil {
		h.log.Warn("autosave failed", zap.String("character", c.ID.String()), zap.Error(err))
	}
}

// SaveAll writes every resident to the store.
func (h *Host) SaveAll(ctx context.Context) error {
	var errs []error
	for _, c := range h.Residents() {
		if err := storage.SaveCharacter(ctx, h.store, c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Start runs the ticker until ctx is cancelled.
//
// Precondition: Start is called at most once.
func (h *Host) Start(ctx context.Context) error {
	h.started.Store(true)
	defer close(h.done)
	return h.ticker.Run(ctx)
}

// Stop waits for a running Start to finish its tick, then saves every
// resident and closes the store.
func (h *Host) Stop(ctx context.Context) error {
	if h.started.Load() {
		select {
		case <-h.done:
		case <-ctx.Done():
			return fmt.Errorf("waiting for ticker: %w", ctx.Err())
		}
	}
	err := h.SaveAll(ctx)
	return errors.Join(err, h.store.Close())
}
