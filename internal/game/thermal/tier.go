// Package thermal simulates per-part body temperature: the target each part
// converges on given weather, clothing, heat and mutations, the relaxation of
// current temperature toward it, and the frostbite timers of the extremities.
package thermal

import (
	"math"
)

// Body temperature thresholds.
const (
	Freezing  = 500
	VeryCold  = 2000
	Cold      = 3500
	Norm      = 5000
	Hot       = 6500
	VeryHot   = 8000
	Scorching = 9500
)

// Comfortable ambient offsets subtracted from the outside temperature.
const (
	AmbientAwake  = 1900
	AmbientAsleep = 3100
)

// Tier classifies a body temperature for display.
type Tier int

const (
	TierFreezing Tier = iota
	TierVeryCold
	TierCold
	TierComfortable
	TierHot
	TierVeryHot
	TierScorching
)

var tierNames = [...]string{"freezing", "very cold", "chilly", "comfortable", "warm", "very hot", "scorching"}

func (t Tier) String() string {
	if t < 0 || int(t) >= len(tierNames) {
		return "unknown"
	}
	return tierNames[t]
}

// TierOf classifies temp.
func TierOf(temp int) Tier {
	switch {
	case temp < Freezing:
		return TierFreezing
	case temp < VeryCold:
		return TierVeryCold
	case temp < Cold:
		return TierCold
	case temp > Scorching:
		return TierScorching
	case temp > VeryHot:
		return TierVeryHot
	case temp > Hot:
		return TierHot
	}
	return TierComfortable
}

// coldIntensity returns the cold effect intensity for temp, or 0.
func coldIntensity(temp int) int {
	switch {
	case temp < Freezing:
		return 3
	case temp < VeryCold:
		return 2
	case temp < Cold:
		return 1
	}
	return 0
}

// hotIntensity returns the hot effect intensity for temp, or 0.
func hotIntensity(temp int) int {
	switch {
	case temp > Scorching:
		return 3
	case temp > VeryHot:
		return 2
	case temp > Hot:
		return 1
	}
	return 0
}

// CelsiusUnits converts a Fahrenheit reading to hundredths of a degree
// Celsius, truncating like integer arithmetic.
func CelsiusUnits(f int) int {
	return 100 * (f - 32) * 5 / 9
}

// Windchill returns the felt temperature offset in °F for air at tempF with
// the given humidity and wind speed in mph. Below 50°F it uses the North
// American wind chill index, which is undefined in calm air and yields 0 for
// winds under 4 mph. At or above 50°F it uses the apparent temperature model.
func Windchill(tempF, humidity, wind int) int {
	t := float64(tempF)
	w := float64(wind)
	if t < 50 {
		if w < 4 {
			return 0
		}
		v := math.Pow(w, 0.16)
		return int(35.74 + 0.6215*t - 35.75*v + 0.4275*t*v - t)
	}
	ms := w * 0.44704
	c := (t - 32) * 5 / 9
	vapour := float64(humidity) / 100 * 6.105 * math.Exp(17.27*c/(237.70+c))
	chill := 0.33*vapour - 0.70*ms - 4.00
	return int(chill * 9 / 5)
}
