package thermal

// Risk is the frostbite exposure band of an extremity.
type Risk int

const (
	RiskNone Risk = iota
	RiskLow
	RiskMedium
	RiskHigh
)

func (r Risk) String() string {
	switch r {
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	}
	return "none"
}

// Timer thresholds of the frostbite state machine.
const (
	frostnipAt  = 1800
	frostbiteAt = 3600
	lowRiskCap  = 2000
	maxTimer    = 4200
)

// Per-turn timer deltas by band.
const (
	lowGain    = 3
	mediumGain = 8
	highGain   = 72
	thawRate   = 3
)

// FrostbiteRisk classifies felt temperature f (°F) and effective wind w (mph)
// into an exposure band. Bands are checked in order and the first match wins;
// an extremity that is not cold is never at risk and the caller gates on that.
func FrostbiteRisk(f, w int) Risk {
	switch {
	case (f < 30 && f >= 10) ||
		(f < 10 && f >= -5 && w < 20 && -4*f+3*w-20 < 0):
		return RiskLow
	case (f < 10 && f >= -5 && w < 20 && -4*f+3*w-20 >= 0) ||
		(f < 10 && f >= -5 && w >= 20) ||
		(f < -5 && w < 10) ||
		(f < -5 && w >= 10 && -4*f+3*w-170 < 0):
		return RiskMedium
	case f < -5 && w >= 10 && -4*f+3*w-170 >= 0:
		return RiskHigh
	}
	return RiskNone
}

// advanceTimer returns the timer after one turn at the given risk.
//
// Postcondition: 0 <= result <= maxTimer.
func advanceTimer(timer int, r Risk) int {
	switch r {
	case RiskLow:
		if timer < lowRiskCap {
			timer += lowGain
		}
	case RiskMedium:
		timer += mediumGain
	case RiskHigh:
		timer += highGain
	default:
		timer -= thawRate
	}
	return min(max(timer, 0), maxTimer)
}
