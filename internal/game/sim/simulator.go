// Package sim drives one character through simulated turns, running every
// body subsystem in a fixed order and applying the turn's one-off rules.
package sim

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/biosim/internal/game/affliction"
	"github.com/cory-johannsen/biosim/internal/game/body"
	"github.com/cory-johannsen/biosim/internal/game/character"
	"github.com/cory-johannsen/biosim/internal/game/dice"
	"github.com/cory-johannsen/biosim/internal/game/stats"
	"github.com/cory-johannsen/biosim/internal/game/thermal"
	"github.com/cory-johannsen/biosim/internal/game/world"
)

// needsInterval is how many turns pass between hunger, thirst and fatigue
// increments.
const needsInterval = 10

// Simulator advances characters one turn at a time. It holds no per-character
// state; a single Simulator may serve many characters, one call at a time.
type Simulator struct {
	src         dice.Source
	thermal     *thermal.Model
	afflictions *affliction.Processor
	log         *zap.Logger
}

// New returns a Simulator drawing every roll from src. scripts may be nil.
//
// Precondition: src must not be nil.
// Postcondition: returns a ready Simulator.
func New(src dice.Source, scripts affliction.Scripts, logger *zap.Logger) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{
		src:         src,
		thermal:     thermal.NewModel(src, logger.Named("thermal")),
		afflictions: affliction.NewProcessor(src, scripts, logger.Named("affliction")),
		log:         logger,
	}
}

// Turn advances c by one turn in world m.
//
// The order is fixed: stats are reset before anything reads them, body
// temperature is resolved before the effects that react to it, and morale is
// refreshed after every effect has run.
//
// Precondition: c has a catalog attached; m is non-nil.
// Postcondition: c.Turn has advanced by one unless c is dead; every scalar is
// within its bounds.
func (s *Simulator) Turn(c *character.Character, m world.Map) {
	if c.Dead {
		return
	}
	snap := world.Take(m, c.Pos)

	stats.Reset(c)
	report := s.thermal.Update(c, snap)
	s.afflictions.Process(c, snap)

	c.Morale.Age()
	ApplyPersistent(c, report)

	for _, typ := range c.Addictions.Tick(c.Susceptibility(), s.src, s.withdrawal(c)) {
		c.Notify(character.Good, "You no longer crave %s.", typ)
	}

	if c.Turn%needsInterval == 0 {
		s.needs(c)
	}
	s.radiation(c, snap)
	s.environment(c, snap)
	s.afflictions.TickDiseases(c)
	s.wetness(c, snap)
	s.asthma(c, snap)

	c.Clamp()
	c.Turn++
	s.log.Debug("turn",
		zap.String("character", c.ID.String()),
		zap.Int("turn", c.Turn),
		zap.Int("torso_temp", c.Temp.Get(body.Torso)),
		zap.Int("torso_hp", c.HP[body.TorsoHP]),
		zap.Int("morale", c.MoraleLevel()),
		zap.Int("effects", c.Effects.Len()),
		zap.Bool("dead", c.Dead),
	)
}

// Run advances c by n turns, stopping early if it dies.
//
// Postcondition: returns the number of turns actually simulated.
func (s *Simulator) Run(c *character.Character, m world.Map, n int) int {
	done := 0
	for ; done < n && !c.Dead; done++ {
		s.Turn(c, m)
	}
	return done
}

// needs applies the slow drift of hunger, thirst and fatigue and lets
// painkillers and stimulants wear off.
func (s *Simulator) needs(c *character.Character) {
	c.Hunger++
	c.Thirst++
	if !c.Asleep() {
		c.Fatigue++
	}
	switch {
	case c.Stim > 0:
		c.Stim--
	case c.Stim < 0:
		c.Stim++
	}
	if c.PKill > 0 {
		c.PKill--
	}
	switch {
	case c.Hunger == 3000:
		c.Notify(character.Warning, "You are starving!")
	case c.Thirst == 600:
		c.Notify(character.Warning, "You are dehydrated!")
	case c.Fatigue == 600 && !c.Asleep():
		c.Notify(character.Warning, "You can barely keep your eyes open.")
	}
}
