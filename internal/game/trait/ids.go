package trait

// Traits with behavior beyond flat catalog data.
const (
	PainResist    ID = "PAINRESIST"
	Cenobite      ID = "CENOBITE"
	NoPain        ID = "NOPAIN"
	IntSlime      ID = "INT_SLIME"
	CompoundEyes  ID = "COMPOUND_EYES"
	Whiskers      ID = "WHISKERS"
	WhiskersRat   ID = "WHISKERS_RAT"
	Quick         ID = "QUICK"
	Optimistic    ID = "OPTIMISTIC"
	BadTemper     ID = "BADTEMPER"
	Hoarder       ID = "HOARDER"
	Stylish       ID = "STYLISH"
	Flowers       ID = "FLOWERS"
	Roots         ID = "ROOTS"
	Masochist     ID = "MASOCHIST"
	Addictive     ID = "ADDICTIVE"
	NonAddictive  ID = "NONADDICTIVE"
	InfResist     ID = "INFRESIST"
	InfImmune     ID = "INFIMMUNE"
	ParaImmune    ID = "PARAIMMUNE"
	MycusImmune   ID = "M_IMMUNE"
	DisImmune     ID = "DISIMMUNE"
	PoisResist    ID = "POISRESIST"
	HeavySleeper  ID = "HEAVYSLEEPER"
	HeavySleeper2 ID = "HEAVYSLEEPER2"
	Asthma        ID = "ASTHMA"
	Hibernate     ID = "HIBERNATE"
	RadioGenic    ID = "RADIOGENIC"
)
