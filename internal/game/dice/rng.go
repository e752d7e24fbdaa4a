package dice

// Rng returns a uniformly distributed int in the closed range [lo, hi].
// Reversed bounds are swapped.
//
// Precondition: src must be non-nil.
// Postcondition: lo <= result <= hi.
func Rng(src Source, lo, hi int) int {
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo + src.Intn(hi-lo+1)
}

// OneIn reports a 1-in-n chance. Any n <= 1 always succeeds.
func OneIn(src Source, n int) bool {
	if n <= 1 {
		return true
	}
	return src.Intn(n) == 0
}

// XInY reports an x-in-y chance.
//
// Postcondition: returns false when x <= 0 and true when x >= y.
func XInY(src Source, x, y int) bool {
	if x <= 0 || y <= 0 {
		return false
	}
	if x >= y {
		return true
	}
	return src.Intn(y) < x
}

// Dice sums n rolls of a die with the given number of sides.
// Returns 0 when n or sides is not positive.
func Dice(src Source, n, sides int) int {
	if n <= 0 || sides <= 0 {
		return 0
	}
	total := 0
	for i := 0; i < n; i++ {
		total += src.Intn(sides) + 1
	}
	return total
}

// Total rolls e against src and returns only the total.
func Total(e Expression, src Source) int {
	return Roll(e, src).Total()
}
