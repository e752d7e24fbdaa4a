package thermal

import (
	"math"

	"go.uber.org/zap"

	"github.com/cory-johannsen/biosim/internal/game/body"
	"github.com/cory-johannsen/biosim/internal/game/character"
	"github.com/cory-johannsen/biosim/internal/game/curve"
	"github.com/cory-johannsen/biosim/internal/game/dice"
	"github.com/cory-johannsen/biosim/internal/game/effect"
	"github.com/cory-johannsen/biosim/internal/game/inventory"
	"github.com/cory-johannsen/biosim/internal/game/world"
)

// BioClimate is the climate control bionic.
const BioClimate = "bio_climate"

const (
	onFireHeat    = 15000
	hotAirPerTier = 500
	maxHotAir     = 4
	sunHeat       = 1000
	overcastHeat  = 500
	fluHeat       = 1500
	coldChill     = 750
	climateBand   = 2500
	blisterLimit  = 10
	equalizeRate  = 0.0001
	relaxRounding = 600
)

var (
	rateAir     = math.Exp(-0.002)
	rateShallow = math.Exp(-0.004)
	rateDeep    = math.Exp(-0.008)
)

var (
	coldWarnings = [...]string{
		3: "You feel your %s beginning to go numb from the cold!",
		2: "You feel your %s getting very cold.",
		1: "You feel your %s getting chilly.",
	}
	hotWarnings = [...]string{
		3: "You feel your %s getting red hot from the heat!",
		2: "You feel your %s getting very hot.",
		1: "You feel your %s getting warm.",
	}
)

// Report summarises one Update.
type Report struct {
	// Comfy is set when bonus warmth held a part in the comfortable range.
	Comfy bool
}

// Model advances body temperatures one turn at a time.
type Model struct {
	src dice.Source
	log *zap.Logger
}

// NewModel returns a Model drawing warning rolls from src.
//
// Precondition: src must not be nil.
func NewModel(src dice.Source, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Model{src: src, log: logger}
}

// heat aggregates the visible fire near a character.
type heat struct {
	conv    int
	blister int
	best    int // strongest fire within one tile
	sources []world.HeatSource
}

func gatherHeat(snap world.Snapshot) heat {
	var h heat
	h.sources = snap.HeatSources
	if snap.FireUnder > 0 {
		h.sources = append([]world.HeatSource{{At: snap.Pos, Distance: 1, Strength: snap.FireUnder}}, h.sources...)
	}
	for _, s := range h.sources {
		d := max(s.Distance, 1)
		h.conv += 300 * s.Strength * s.Strength / (d * d)
		h.blister += s.Strength / (d * d)
		if d <= 1 {
			h.best = max(h.best, s.Strength)
		}
	}
	return h
}

// Update recomputes the convergence temperature of every thermal part from
// snap, relaxes current temperatures toward it, keeps the cold and hot
// effects in step with the resulting tiers and advances frostbite timers.
//
// Precondition: c must have a catalog and equipment attached.
// Postcondition: every part's Frostbite timer is within [0, MaxFrostbite].
func (m *Model) Update(c *character.Character, snap world.Snapshot) Report {
	var rep Report
	h := gatherHeat(snap)
	wind := snap.Weather.Wind
	if !snap.Outdoors {
		wind = 0
	}

	for _, p := range body.ThermalParts {
		conv, comfy := m.convergence(c, snap, p, wind, h)
		c.TempConv.Set(p, conv)
		rep.Comfy = rep.Comfy || comfy

		if isExtremity(p) {
			for _, s := range h.sources {
				if t := c.Frostbite.Get(p); t > 0 {
					c.Frostbite.Set(p, t-(s.Strength-max(s.Distance, 1)/2))
				}
			}
		}
		if h.blister-c.Equip.EnvResist(p) > blisterLimit {
			c.AddEffect(effect.Blisters, p, 1, 1, false)
		}
	}

	for _, p := range body.ThermalParts {
		equalize(c, p)
		before := c.Temp.Get(p)
		relax(c, snap, p)
		m.syncTiers(c, p, before)
		if isExtremity(p) {
			m.frostbite(c, snap, p, wind, fireWarmth(p, h.best) > 0)
		}
	}
	return rep
}

// convergence returns the temperature p drifts toward this turn and whether
// bonus warmth kept it comfortable.
func (m *Model) convergence(c *character.Character, snap world.Snapshot, p body.Part, wind int, h heat) (int, bool) {
	w := snap.Weather
	cur := c.Temp.Get(p)
	ambient := AmbientAwake
	if c.Asleep() {
		ambient = AmbientAsleep
	}
	homeo := 30 * (1 + curve.LogisticRange(VeryCold, VeryHot, cur))

	outside := CelsiusUnits(w.TemperatureF)
	partWind := int(float64(wind) * (1 - float64(c.Equip.WindResist(p))/100))
	chill := Windchill(w.TemperatureF, w.Humidity, partWind)
	if snap.Submerged(body.Submersible(p)) {
		outside = CelsiusUnits(w.WaterTemperatureF)
		chill = 0
	}

	conv := Norm + (outside - ambient) + chill*100 + int(homeo*float64(c.Equip.Warmth(p)))
	conv -= c.Hunger/6 + 100
	if !c.Asleep() {
		conv -= int(1.5 * float64(c.Fatigue))
	}
	conv += h.conv
	if c.Effects.Has(effect.OnFire) {
		conv += onFireHeat
	}
	if snap.HotAir > 0 {
		conv += hotAirPerTier * min(snap.HotAir, maxHotAir)
	}
	if snap.Sunlit() {
		if w.Sunny {
			conv += sunHeat
		} else {
			conv += overcastHeat
		}
	}
	if p == body.Head && c.Afflicted(effect.Flu) {
		conv += fluHeat
	}
	if c.Afflicted(effect.CommonCold) {
		conv -= coldChill
	}
	conv += mutationWarmth(c, cur)
	if c.Bionics[BioClimate] || c.Equip.ClimateControl() {
		conv = climateControl(conv)
	}
	conv -= c.BloodLoss(p) * conv / 200

	bonus := fireWarmth(p, h.best) + itemWarmth(c, p, homeo)
	if bonus <= 0 {
		return conv, false
	}
	return applyBonus(conv, cur, bonus), cur > Cold && cur < Hot
}

func mutationWarmth(c *character.Character, cur int) int {
	reg := c.Catalog().Traits
	total := 0
	for _, id := range c.Traits.Sorted() {
		d, ok := reg.Get(id)
		if !ok {
			continue
		}
		if cur > Norm {
			total += d.Warmth.Warm
		} else {
			total += d.Warmth.Cold
		}
	}
	return total
}

// climateControl snaps a convergence inside the regulated band to the next
// threshold toward normal. Targets beyond the band are out of its reach.
func climateControl(conv int) int {
	if conv < Freezing-climateBand || conv > Scorching+climateBand {
		return conv
	}
	switch {
	case conv > Scorching:
		return VeryHot
	case conv > VeryHot:
		return Hot
	case conv > Hot:
		return Norm
	case conv < Freezing:
		return VeryCold
	case conv < VeryCold:
		return Cold
	case conv < Cold:
		return Norm
	}
	return conv
}

// fireWarmth is the extra warmth a part gains from holding it near a fire of
// strength best.
func fireWarmth(p body.Part, best int) int {
	if best <= 0 {
		return 0
	}
	switch body.GroupOf(p) {
	case body.GroupCore:
		return best * best * 150
	case body.GroupArms:
		return best * 600
	case body.GroupFeet:
		return best * 1200
	case body.GroupHands:
		return best * 1500
	}
	return 0
}

// itemWarmth is the warmth of tucking a part into a pocket, hood or collar.
func itemWarmth(c *character.Character, p body.Part, homeo float64) int {
	var w int
	switch p {
	case body.Hands:
		if !c.Wielding {
			w = c.Equip.FlagWarmth(inventory.FlagPockets)
		}
	case body.Head:
		if c.Equip.Encumbrance(body.Head) < 10 {
			w = c.Equip.FlagWarmth(inventory.FlagHood)
		}
	case body.Mouth:
		if c.Equip.Encumbrance(body.Mouth) < 10 {
			w = c.Equip.FlagWarmth(inventory.FlagCollar)
		}
	}
	return int(homeo * float64(w))
}

// applyBonus adds bonus warmth without overshooting the temperature that
// would bring cur back to normal.
func applyBonus(conv, cur, bonus int) int {
	desired := 501*Norm - 499*cur
	switch {
	case abs(Norm-desired) < 1000:
		desired = Norm
	case desired > Hot:
		desired = Hot
	}
	switch {
	case desired < conv:
		return conv
	case desired < conv+bonus:
		return desired
	}
	return conv + bonus
}

// equalize exchanges a little heat between p and each of its neighbours.
func equalize(c *character.Character, p body.Part) {
	for _, e := range body.Neighbours {
		var other body.Part
		switch p {
		case e.A:
			other = e.B
		case e.B:
			other = e.A
		default:
			continue
		}
		diff := int(float64(c.Temp.Get(other)-c.Temp.Get(p)) * equalizeRate)
		c.Temp.Set(p, c.Temp.Get(p)+diff)
	}
}

// relax moves p's temperature exponentially toward its convergence.
func relax(c *character.Character, snap world.Snapshot, p body.Part) {
	cur, conv := c.Temp.Get(p), c.TempConv.Get(p)
	if cur == conv {
		return
	}
	diff := cur - conv
	rounding := 0.0
	if diff < 0 && diff > -relaxRounding {
		rounding = 1
	}
	rate := rateAir
	switch {
	case snap.Terrain == world.DeepWater:
		rate = rateDeep
	case snap.Terrain == world.ShallowWater && body.Submersible(p):
		rate = rateShallow
	}
	c.Temp.Set(p, int(math.Floor(float64(diff)*rate+float64(conv)+rounding)))
}

// syncTiers sets the cold and hot effects on p to match its temperature and
// warns when the temperature crossed a threshold.
func (m *Model) syncTiers(c *character.Character, p body.Part, before int) {
	cur := c.Temp.Get(p)
	setTier(c, effect.Cold, p, coldIntensity(cur))
	setTier(c, effect.Hot, p, hotIntensity(cur))

	prevCold, nowCold := coldIntensity(before), coldIntensity(cur)
	if nowCold > prevCold {
		c.Notify(character.Warning, coldWarnings[nowCold], p)
	}
	prevHot, nowHot := hotIntensity(before), hotIntensity(cur)
	if nowHot > prevHot {
		c.Notify(character.Warning, hotWarnings[nowHot], p)
	}
}

// setTier pins id on p to intensity n, removing it at 0.
func setTier(c *character.Character, id effect.ID, p body.Part, n int) {
	a, ok := c.Effects.Get(id, p)
	switch {
	case n == 0:
		if ok {
			c.RemoveEffect(id, p)
		}
	case ok:
		a.SetIntensity(n)
	default:
		c.AddEffect(id, p, 1, n, true)
	}
}

// frostbite advances the timer of extremity p and applies its effects. A part
// warmed by an adjacent fire is never at risk, whatever the air.
func (m *Model) frostbite(c *character.Character, snap world.Snapshot, p body.Part, wind int, warmed bool) {
	wet := c.Wetness.Get(p)
	felt := int(float64(snap.Weather.TemperatureF) + float64(c.Equip.Warmth(p))*0.2 - float64(20*wet/100))
	partWind := int(float64(wind) * (1 - float64(c.Equip.WindResist(p))/100.0))
	prev := c.Effects.Intensity(effect.Frostbite, p)

	risk := RiskNone
	if c.Temp.Get(p) < Cold && !warmed {
		risk = FrostbiteRisk(felt, partWind)
	}
	switch risk {
	case RiskLow:
		if prev == 0 && dice.OneIn(m.src, 100) {
			c.Notify(character.Warning, "Your %s feels cold and stiff. You should warm it up.", p)
		}
	case RiskMedium:
		if prev < 2 && dice.OneIn(m.src, 100) {
			c.Notify(character.Warning, "Your %s is freezing. You need to warm it up!", p)
		}
	}

	timer := advanceTimer(c.Frostbite.Get(p), risk)
	c.Frostbite.Set(p, timer)

	switch {
	case timer >= frostbiteAt:
		setTier(c, effect.Frostbite, p, 2)
		c.RemoveEffect(effect.FrostbiteRecovery, p)
	case timer >= frostnipAt:
		if prev == 2 {
			c.AddEffect(effect.FrostbiteRecovery, p, 1, 1, true)
		}
		setTier(c, effect.Frostbite, p, 1)
	case timer == 0:
		c.RemoveEffect(effect.Frostbite, p)
		c.RemoveEffect(effect.FrostbiteRecovery, p)
	}
	if risk == RiskHigh {
		m.log.Debug("high frostbite risk", zap.Stringer("part", p), zap.Int("timer", timer))
	}
}

func isExtremity(p body.Part) bool {
	for _, e := range body.FrostbiteParts {
		if e == p {
			return true
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
