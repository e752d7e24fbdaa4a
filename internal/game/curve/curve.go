// Package curve provides the smooth transition curves shared by the morale
// and body temperature models.
package curve

import "math"

const logiCutoff = 4.0

var (
	logiMin   = logistic(-logiCutoff)
	logiMax   = logistic(logiCutoff)
	logiRange = logiMax - logiMin
)

func logistic(t float64) float64 {
	return 1 / (1 + math.Exp(-t))
}

// LogisticRange is a flipped logistic curve rescaled onto [min, max]: it is
// 1.0 at or before min, falls smoothly through 0.5 at the midpoint, and is
// 0.0 at or after max. A degenerate window (min >= max) yields 0.
//
// Postcondition: 0 <= result <= 1; non-increasing in pos.
func LogisticRange(min, max, pos int) float64 {
	if min >= max {
		return 0
	}
	if pos <= min {
		return 1
	}
	if pos >= max {
		return 0
	}
	unit := float64(pos-min) / float64(max-min)
	scaled := logiCutoff * (2*unit - 1)
	v := (logistic(-scaled) - logiMin) / logiRange
	return math.Max(0, math.Min(1, v))
}
