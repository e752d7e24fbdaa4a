package dice

import "math"

// FixedSource always answers v clamped into [0, n). FixedSource(0) makes every
// OneIn and XInY succeed; Never makes every chance fail.
type FixedSource int

// Never is a FixedSource under which no chance ever fires.
const Never = FixedSource(math.MaxInt)

// Intn implements Source.
func (f FixedSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	return min(max(int(f), 0), n-1)
}
