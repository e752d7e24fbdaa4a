package simserver

import (
	"fmt"
	"sync"

	"github.com/cory-johannsen/biosim/internal/game/world"
)

// TimePeriod is a named phase of the day.
type TimePeriod string

const (
	PeriodMidnight  TimePeriod = "Midnight"
	PeriodLateNight TimePeriod = "Late Night"
	PeriodDawn      TimePeriod = "Dawn"
	PeriodMorning   TimePeriod = "Morning"
	PeriodAfternoon TimePeriod = "Afternoon"
	PeriodDusk      TimePeriod = "Dusk"
	PeriodEvening   TimePeriod = "Evening"
	PeriodNight     TimePeriod = "Night"
)

// dayParts lists each period with the last hour it covers, in order.
var dayParts = []struct {
	until    GameHour
	period   TimePeriod
	daylight bool
}{
	{0, PeriodMidnight, false},
	{4, PeriodLateNight, false},
	{6, PeriodDawn, true},
	{11, PeriodMorning, true},
	{16, PeriodAfternoon, true},
	{18, PeriodDusk, true},
	{21, PeriodEvening, false},
	{23, PeriodNight, false},
}

// GameHour is an in-game hour in [0, 23].
type GameHour int32

func (h GameHour) part() int {
	for i, p := range dayParts {
		if h <= p.until {
			return i
		}
	}
	return len(dayParts) - 1
}

// Period returns the named time period for this hour.
func (h GameHour) Period() TimePeriod { return dayParts[h.part()].period }

// Daylight reports whether the sun is up, dawn through dusk.
func (h GameHour) Daylight() bool { return dayParts[h.part()].daylight }

// String returns the hour in "HH:00" format.
func (h GameHour) String() string {
	return fmt.Sprintf("%02d:00", int(h))
}

// Clock counts daemon turns into in-game hours. It is safe for concurrent
// use; the host advances it and handlers may read it.
type Clock struct {
	mu           sync.Mutex
	hour         GameHour
	turns        int
	turnsPerHour int
}

// NewClock creates a Clock at startHour that advances one hour every
// turnsPerHour turns.
//
// Precondition: turnsPerHour > 0.
func NewClock(startHour, turnsPerHour int) *Clock {
	if turnsPerHour <= 0 {
		panic("simserver.NewClock: turnsPerHour must be > 0")
	}
	return &Clock{
		hour:         GameHour(((startHour % 24) + 24) % 24),
		turnsPerHour: turnsPerHour,
	}
}

// Hour returns the current hour.
func (c *Clock) Hour() GameHour {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hour
}

// Advance counts one turn and returns the hour after it. changed is true
// when the turn completed an hour.
func (c *Clock) Advance() (h GameHour, changed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.turns++
	if c.turns >= c.turnsPerHour {
		c.turns = 0
		c.hour = (c.hour + 1) % 24
		changed = true
	}
	return c.hour, changed
}

// Weather returns base with Daylight set for the current hour. Sunny skies
// only count while the sun is up.
func (c *Clock) Weather(base world.Weather) world.Weather {
	base.Daylight = c.Hour().Daylight()
	base.Sunny = base.Sunny && base.Daylight
	return base
}
