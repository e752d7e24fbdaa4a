package effect

// ID identifies an effect. Every effect with a special per-turn behavior has
// a constant here; purely table-driven effects need only a catalog entry.
type ID string

const (
	OnFire            ID = "onfire"
	Fungus            ID = "fungus"
	Spores            ID = "spores"
	Bleed             ID = "bleed"
	Hallu             ID = "hallu"
	Visuals           ID = "visuals"
	Cold              ID = "cold"
	Hot               ID = "hot"
	Frostbite         ID = "frostbite"
	FrostbiteRecovery ID = "frostbite_recovery"
	Blisters          ID = "blisters"
	Tapeworm          ID = "tapeworm"
	Bloodworms        ID = "bloodworms"
	Brainworm         ID = "brainworm"
	Paincysts         ID = "paincysts"
	Teleglow          ID = "teleglow"
	Asthma            ID = "asthma"
	Sleep             ID = "sleep"
	LyingDown         ID = "lying_down"
	AlarmClock        ID = "alarm_clock"
	Bite              ID = "bite"
	Infected          ID = "infected"
	Recover           ID = "recover"
	Dermatik          ID = "dermatik"
	Formication       ID = "formication"
	Poison            ID = "poison"
	BadPoison         ID = "badpoison"
	FoodPoison        ID = "foodpoison"
	Shakes            ID = "shakes"
	Drunk             ID = "drunk"
	CommonCold        ID = "common_cold"
	Flu               ID = "flu"
	Smoke             ID = "smoke"
	TearGas           ID = "teargas"
	Darkness          ID = "darkness"
	Downed            ID = "downed"
	Stunned           ID = "stunned"
	Boomered          ID = "boomered"
	Blind             ID = "blind"
	Deaf              ID = "deaf"
	PKill1            ID = "pkill1"
	PKill2            ID = "pkill2"
	PKill3            ID = "pkill3"
	Hibernating       ID = "hibernating"
)
