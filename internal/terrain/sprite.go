package terrain

import "fmt"

// SpriteKind is the decorative or interactive object occupying a fluid block.
// Declaration order is part of the model: the flower and furniture groups
// are contiguous ranges.
type SpriteKind uint8

const (
	SpriteEmpty SpriteKind = iota
	SpriteBarrelCactus
	SpriteRoundCactus
	SpriteShortCactus
	SpriteMedFlatCactus
	SpriteShortFlatCactus
	SpriteBlueFlower
	SpritePinkFlower
	SpritePurpleFlower
	SpriteRedFlower
	SpriteWhiteFlower
	SpriteYellowFlower
	SpriteSunflower
	SpriteLongGrass
	SpriteMediumGrass
	SpriteShortGrass
	SpriteApple
	SpriteMushroom
	SpriteLiana
	SpriteVelorite
	SpriteVeloriteFrag
	SpriteChest
	SpritePumpkin
	SpriteWelwitch
	SpriteLingonBerry
	SpriteLeafyPlant
	SpriteFern
	SpriteDeadBush
	SpriteBlueberry
	SpriteEmber
	SpriteCorn
	SpriteWheatYellow
	SpriteWheatGreen
	SpriteCabbage
	SpriteFlax
	SpriteCarrot
	SpriteTomato
	SpriteRadish
	SpriteCoconut
	SpriteTurnip
	SpriteWindow1
	SpriteWindow2
	SpriteWindow3
	SpriteWindow4
	SpriteScarecrow
	SpriteStreetLamp
	SpriteStreetLampTall
	SpriteDoor
	SpriteBed
	SpriteBench
	SpriteChairSingle
	SpriteChairDouble
	SpriteCoatRack
	SpriteCrate
	SpriteDrawerLarge
	SpriteDrawerMedium
	SpriteDrawerSmall
	SpriteDungeonWallDecor
	SpriteHangingBasket
	SpriteHangingSign
	SpriteWallLamp
	SpritePlanter
	SpriteShelf
	SpriteTableSide
	SpriteTableDining
	SpriteTableDouble
	SpriteWardrobeSingle
	SpriteWardrobeDouble
	SpriteLargeGrass
	SpritePot
	SpriteStones
	SpriteTwigs
	SpriteDropGate
	SpriteDropGateBottom
	SpriteGrassSnow
	SpriteReed
	SpriteBeehive
	SpriteLargeCactus
	SpriteVialEmpty
	SpritePotionMinor
	SpriteGrassBlue
	SpriteChestBuried
	SpriteMud
	SpriteFireBowlGround
	SpriteCaveMushroom
	SpriteBowl
	SpriteSavannaGrass
	SpriteTallSavannaGrass
	SpriteRedSavannaGrass
	SpriteSavannaBush
	SpriteAmethyst
	SpriteRuby
	SpriteSapphire
	SpriteEmerald
	SpriteTopaz
	SpriteDiamond
	SpriteSeashells
	SpriteLantern
	SpriteCoal
	SpriteCobalt
	SpriteCopper
	SpriteIron
	SpriteTin
	SpriteSilver
	SpriteGold

	SpriteKindCount
)

var spriteKindNames = [SpriteKindCount]string{
	SpriteEmpty:            "Empty",
	SpriteBarrelCactus:     "BarrelCactus",
	SpriteRoundCactus:      "RoundCactus",
	SpriteShortCactus:      "ShortCactus",
	SpriteMedFlatCactus:    "MedFlatCactus",
	SpriteShortFlatCactus:  "ShortFlatCactus",
	SpriteBlueFlower:       "BlueFlower",
	SpritePinkFlower:       "PinkFlower",
	SpritePurpleFlower:     "PurpleFlower",
	SpriteRedFlower:        "RedFlower",
	SpriteWhiteFlower:      "WhiteFlower",
	SpriteYellowFlower:     "YellowFlower",
	SpriteSunflower:        "Sunflower",
	SpriteLongGrass:        "LongGrass",
	SpriteMediumGrass:      "MediumGrass",
	SpriteShortGrass:       "ShortGrass",
	SpriteApple:            "Apple",
	SpriteMushroom:         "Mushroom",
	SpriteLiana:            "Liana",
	SpriteVelorite:         "Velorite",
	SpriteVeloriteFrag:     "VeloriteFrag",
	SpriteChest:            "Chest",
	SpritePumpkin:          "Pumpkin",
	SpriteWelwitch:         "Welwitch",
	SpriteLingonBerry:      "LingonBerry",
	SpriteLeafyPlant:       "LeafyPlant",
	SpriteFern:             "Fern",
	SpriteDeadBush:         "DeadBush",
	SpriteBlueberry:        "Blueberry",
	SpriteEmber:            "Ember",
	SpriteCorn:             "Corn",
	SpriteWheatYellow:      "WheatYellow",
	SpriteWheatGreen:       "WheatGreen",
	SpriteCabbage:          "Cabbage",
	SpriteFlax:             "Flax",
	SpriteCarrot:           "Carrot",
	SpriteTomato:           "Tomato",
	SpriteRadish:           "Radish",
	SpriteCoconut:          "Coconut",
	SpriteTurnip:           "Turnip",
	SpriteWindow1:          "Window1",
	SpriteWindow2:          "Window2",
	SpriteWindow3:          "Window3",
	SpriteWindow4:          "Window4",
	SpriteScarecrow:        "Scarecrow",
	SpriteStreetLamp:       "StreetLamp",
	SpriteStreetLampTall:   "StreetLampTall",
	SpriteDoor:             "Door",
	SpriteBed:              "Bed",
	SpriteBench:            "Bench",
	SpriteChairSingle:      "ChairSingle",
	SpriteChairDouble:      "ChairDouble",
	SpriteCoatRack:         "CoatRack",
	SpriteCrate:            "Crate",
	SpriteDrawerLarge:      "DrawerLarge",
	SpriteDrawerMedium:     "DrawerMedium",
	SpriteDrawerSmall:      "DrawerSmall",
	SpriteDungeonWallDecor: "DungeonWallDecor",
	SpriteHangingBasket:    "HangingBasket",
	SpriteHangingSign:      "HangingSign",
	SpriteWallLamp:         "WallLamp",
	SpritePlanter:          "Planter",
	SpriteShelf:            "Shelf",
	SpriteTableSide:        "TableSide",
	SpriteTableDining:      "TableDining",
	SpriteTableDouble:      "TableDouble",
	SpriteWardrobeSingle:   "WardrobeSingle",
	SpriteWardrobeDouble:   "WardrobeDouble",
	SpriteLargeGrass:       "LargeGrass",
	SpritePot:              "Pot",
	SpriteStones:           "Stones",
	SpriteTwigs:            "Twigs",
	SpriteDropGate:         "DropGate",
	SpriteDropGateBottom:   "DropGateBottom",
	SpriteGrassSnow:        "GrassSnow",
	SpriteReed:             "Reed",
	SpriteBeehive:          "Beehive",
	SpriteLargeCactus:      "LargeCactus",
	SpriteVialEmpty:        "VialEmpty",
	SpritePotionMinor:      "PotionMinor",
	SpriteGrassBlue:        "GrassBlue",
	SpriteChestBuried:      "ChestBuried",
	SpriteMud:              "Mud",
	SpriteFireBowlGround:   "FireBowlGround",
	SpriteCaveMushroom:     "CaveMushroom",
	SpriteBowl:             "Bowl",
	SpriteSavannaGrass:     "SavannaGrass",
	SpriteTallSavannaGrass: "TallSavannaGrass",
	SpriteRedSavannaGrass:  "RedSavannaGrass",
	SpriteSavannaBush:      "SavannaBush",
	SpriteAmethyst:         "Amethyst",
	SpriteRuby:             "Ruby",
	SpriteSapphire:         "Sapphire",
	SpriteEmerald:          "Emerald",
	SpriteTopaz:            "Topaz",
	SpriteDiamond:          "Diamond",
	SpriteSeashells:        "Seashells",
	SpriteLantern:          "Lantern",
	SpriteCoal:             "Coal",
	SpriteCobalt:           "Cobalt",
	SpriteCopper:           "Copper",
	SpriteIron:             "Iron",
	SpriteTin:              "Tin",
	SpriteSilver:           "Silver",
	SpriteGold:             "Gold",
}

func (s SpriteKind) String() string {
	if s < SpriteKindCount {
		return spriteKindNames[s]
	}
	return fmt.Sprintf("SpriteKind(%d)", uint8(s))
}

// InRange reports whether s lies in the inclusive declaration range [lo, hi].
func (s SpriteKind) InRange(lo, hi SpriteKind) bool {
	return s >= lo && s <= hi
}

// IsFlower reports membership in either plant group.
func (s SpriteKind) IsFlower() bool {
	return s.InRange(SpriteBarrelCactus, SpriteTurnip) || s.InRange(SpriteLargeGrass, SpriteLargeCactus)
}

func (s SpriteKind) IsFurniture() bool {
	return s.InRange(SpriteWindow1, SpriteWardrobeDouble)
}
