// Package dice provides the randomness abstraction shared by every simulation
// subsystem, together with roll-result types and the integer helpers
// (Rng, OneIn, XInY) the body simulation draws from.
package dice

import (
	"fmt"
	"strings"
)

// Source is the randomness provider for every roll.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// RollResult records one evaluated Expression.
//
// Postcondition: Total() == sum(Dice) + Modifier.
type RollResult struct {
	Expression string
	Dice       []int
	Modifier   int
}

// Total returns the sum of all die results plus the modifier.
func (r RollResult) Total() int {
	total := r.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// String renders the roll as "2d6+3: 4 5 +3 = 12".
func (r RollResult) String() string {
	var b strings.Builder
	b.WriteString(r.Expression)
	b.WriteByte(':')
	for _, d := range r.Dice {
		fmt.Fprintf(&b, " %d", d)
	}
	if r.Modifier != 0 || len(r.Dice) == 0 {
		fmt.Fprintf(&b, " %+d", r.Modifier)
	}
	fmt.Fprintf(&b, " = %d", r.Total())
	return b.String()
}
