package body

// HPPart identifies one hit-point pool. Pools are coarser than parts: hands
// share the arm pools and the mouth shares the head pool.
type HPPart int

const (
	HeadHP HPPart = iota
	TorsoHP
	ArmLHP
	ArmRHP
	LegLHP
	LegRHP

	NumHPParts = 6
)

var hpNames = [NumHPParts]string{"head", "torso", "left arm", "right arm", "left leg", "right leg"}

func (h HPPart) String() string {
	if h < 0 || h >= NumHPParts {
		return "hp(?)"
	}
	return hpNames[h]
}

// AllHP lists every HP pool.
var AllHP = [NumHPParts]HPPart{HeadHP, TorsoHP, ArmLHP, ArmRHP, LegLHP, LegRHP}

// HPPoolsFor returns the HP pools that back p. Eyes own no pool.
func HPPoolsFor(p Part) []HPPart {
	switch p {
	case Head, Mouth:
		return []HPPart{HeadHP}
	case Torso:
		return []HPPart{TorsoHP}
	case Arms, Hands:
		return []HPPart{ArmLHP, ArmRHP}
	case Legs, Feet:
		return []HPPart{LegLHP, LegRHP}
	}
	return nil
}

// Parent maps a part to the part whose HP pool it draws on.
func Parent(p Part) Part {
	switch p {
	case Hands:
		return Arms
	case Feet:
		return Legs
	case Mouth, Eyes:
		return Head
	}
	return p
}

// FrostbiteParts are the extremities that accumulate a frostbite timer.
var FrostbiteParts = []Part{Hands, Feet, Mouth}

// ThermalParts are the parts whose temperature is simulated. Eyes are
// covered by the head.
var ThermalParts = []Part{Torso, Head, Mouth, Arms, Hands, Legs, Feet}

// Edge is an undirected heat-exchange link between two parts.
type Edge struct{ A, B Part }

// Neighbours is the heat-exchange graph: the torso is the hub, and every
// extremity exchanges with its parent limb.
var Neighbours = []Edge{
	{Torso, Arms},
	{Torso, Legs},
	{Torso, Head},
	{Head, Mouth},
	{Arms, Hands},
	{Legs, Feet},
}

// LimbGroup classifies a part for proximity-to-fire bonus warmth.
type LimbGroup int

const (
	GroupCore LimbGroup = iota // head, torso, mouth, legs
	GroupArms
	GroupFeet
	GroupHands
	GroupNone
)

// GroupOf returns the bonus-warmth group of p.
func GroupOf(p Part) LimbGroup {
	switch p {
	case Head, Torso, Mouth, Legs:
		return GroupCore
	case Arms:
		return GroupArms
	case Feet:
		return GroupFeet
	case Hands:
		return GroupHands
	}
	return GroupNone
}

// Submersible reports whether p is under water when standing in shallow water.
func Submersible(p Part) bool {
	return p == Legs || p == Feet
}
