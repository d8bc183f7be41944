package comp

import "fmt"

type BodyKind uint8

const (
	BodyHumanoid BodyKind = iota
	BodyQuadrupedLow
	BodyQuadrupedSmall
	BodyQuadrupedMedium
	BodyBirdMedium
	BodyBirdLarge
	BodyFishSmall
	BodyFishMedium
	BodyBipedLarge
	BodyBipedSmall
	BodyObject
	BodyGolem
	BodyDragon
	BodyTheropod
	BodyShip

	BodyKindCount
)

var bodyKindNames = [BodyKindCount]string{
	BodyHumanoid:        "Humanoid",
	BodyQuadrupedLow:    "QuadrupedLow",
	BodyQuadrupedSmall:  "QuadrupedSmall",
	BodyQuadrupedMedium: "QuadrupedMedium",
	BodyBirdMedium:      "BirdMedium",
	BodyBirdLarge:       "BirdLarge",
	BodyFishSmall:       "FishSmall",
	BodyFishMedium:      "FishMedium",
	BodyBipedLarge:      "BipedLarge",
	BodyBipedSmall:      "BipedSmall",
	BodyObject:          "Object",
	BodyGolem:           "Golem",
	BodyDragon:          "Dragon",
	BodyTheropod:        "Theropod",
	BodyShip:            "Ship",
}

func (k BodyKind) String() string {
	if k < BodyKindCount {
		return bodyKindNames[k]
	}
	return fmt.Sprintf("BodyKind(%d)", uint8(k))
}

// Species only distinguishes humanoids; other bodies leave it zero.
type Species uint8

const (
	SpeciesDanari Species = iota
	SpeciesDwarf
	SpeciesElf
	SpeciesHuman
	SpeciesOrc
	SpeciesUndead

	SpeciesCount
)

var speciesNames = [SpeciesCount]string{
	SpeciesDanari: "Danari",
	SpeciesDwarf:  "Dwarf",
	SpeciesElf:    "Elf",
	SpeciesHuman:  "Human",
	SpeciesOrc:    "Orc",
	SpeciesUndead: "Undead",
}

func (s Species) String() string {
	if s < SpeciesCount {
		return speciesNames[s]
	}
	return fmt.Sprintf("Species(%d)", uint8(s))
}

type BodyData struct {
	Kind    BodyKind
	Species Species
}

func (b BodyData) String() string {
	if b.Kind == BodyHumanoid {
		return b.Kind.String() + "/" + b.Species.String()
	}
	return b.Kind.String()
}

// BodyFromWire decodes the body bytes of an entity sync. Kind 0 means the
// entity has no body; unknown values are rejected.
func BodyFromWire(kind, species byte) (BodyData, bool) {
	if kind == 0 || BodyKind(kind-1) >= BodyKindCount {
		return BodyData{}, false
	}
	b := BodyData{Kind: BodyKind(kind - 1)}
	if b.Kind == BodyHumanoid {
		if Species(species) >= SpeciesCount {
			return BodyData{}, false
		}
		b.Species = Species(species)
	}
	return b, true
}

// Wire is the inverse of BodyFromWire.
func (b BodyData) Wire() (kind, species byte) {
	return byte(b.Kind) + 1, byte(b.Species)
}
