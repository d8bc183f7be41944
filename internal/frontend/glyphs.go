package frontend

import (
	"github.com/Versifine/veloterm/internal/comp"
	"github.com/Versifine/veloterm/internal/terrain"
	"github.com/gdamore/tcell/v2"
)

// unresolved marks a cell whose sprite or block has no glyph.
const unresolved = '?'

var blockGlyphs = [terrain.BlockKindCount]rune{
	terrain.Air:             ' ',
	terrain.Water:           '≈',
	terrain.Rock:            'o',
	terrain.WeakRock:        '.',
	terrain.Lava:            '≈',
	terrain.GlowingRock:     '*',
	terrain.GlowingWeakRock: '.',
	terrain.Grass:           ',',
	terrain.Snow:            '≈',
	terrain.Earth:           '0',
	terrain.Sand:            '▓',
	terrain.Wood:            '≡',
	terrain.Leaves:          '♠',
	terrain.Misc:            '#',
}

func blockGlyph(k terrain.BlockKind) rune {
	if k >= terrain.BlockKindCount {
		return unresolved
	}
	return blockGlyphs[k]
}

// spriteGlyphs holds the sprites with a glyph of their own; the flower and
// furniture ranges are resolved in spriteGlyph.
var spriteGlyphs = [terrain.SpriteKindCount]rune{
	terrain.SpriteApple:        'a',
	terrain.SpriteSunflower:    'u',
	terrain.SpriteMushroom:     'm',
	terrain.SpriteVelorite:     'v',
	terrain.SpriteVeloriteFrag: 'v',
	terrain.SpriteChest:        'c',
	terrain.SpriteCrate:        'c',
	terrain.SpriteStones:       '"',
	terrain.SpriteTwigs:        ';',
	terrain.SpriteAmethyst:     '☼',
	terrain.SpriteRuby:         '☼',
	terrain.SpriteBeehive:      'b',
	terrain.SpriteBed:          'Θ',
	terrain.SpriteBench:        '╥',
	terrain.SpriteChairSingle:  '╥',
	terrain.SpriteChairDouble:  '╥',
	terrain.SpriteTableSide:    '╤',
	terrain.SpriteTableDining:  '╤',
	terrain.SpriteTableDouble:  '╤',
}

const (
	flowerGlyph    = '♣'
	furnitureGlyph = 'π'
)

// spriteGlyph resolves a sprite to its glyph; ok is false for sprites that
// have none.
func spriteGlyph(s terrain.SpriteKind) (rune, bool) {
	if s >= terrain.SpriteKindCount {
		return 0, false
	}
	if g := spriteGlyphs[s]; g != 0 {
		return g, true
	}
	switch {
	case s.IsFlower():
		return flowerGlyph, true
	case s.IsFurniture():
		return furnitureGlyph, true
	}
	return 0, false
}

type bodyStyle struct {
	glyph rune
	color tcell.Color
}

var (
	colorBrown1 = tcell.NewRGBColor(255, 64, 64)
	colorBrown2 = tcell.NewRGBColor(238, 59, 59)
	colorOrange = tcell.NewRGBColor(255, 165, 0)
	colorBlue   = tcell.NewRGBColor(0, 0, 255)
	colorIvory  = tcell.NewRGBColor(255, 255, 240)
	colorGreen  = tcell.NewRGBColor(0, 255, 0)
	colorWhite  = tcell.NewRGBColor(255, 255, 255)
	colorRed    = tcell.NewRGBColor(255, 0, 0)
	colorYellow = tcell.NewRGBColor(255, 255, 0)
	colorTan    = tcell.NewRGBColor(210, 180, 140)
	colorBlack  = tcell.NewRGBColor(0, 0, 0)
	colorPink   = tcell.NewRGBColor(255, 192, 203)
)

var speciesStyles = [comp.SpeciesCount]bodyStyle{
	comp.SpeciesDanari: {'☻', colorBrown2},
	comp.SpeciesDwarf:  {'☺', colorOrange},
	comp.SpeciesElf:    {'☺', colorBlue},
	comp.SpeciesHuman:  {'☺', colorIvory},
	comp.SpeciesOrc:    {'☻', colorGreen},
	comp.SpeciesUndead: {'☻', colorWhite},
}

// bodyStyles is indexed by body kind; humanoids take their entry from
// speciesStyles instead.
var bodyStyles = [comp.BodyKindCount]bodyStyle{
	comp.BodyHumanoid:        {'☺', colorIvory},
	comp.BodyQuadrupedLow:    {'4', colorRed},
	comp.BodyQuadrupedSmall:  {'q', colorRed},
	comp.BodyQuadrupedMedium: {'Q', colorRed},
	comp.BodyBirdMedium:      {'b', colorRed},
	comp.BodyBirdLarge:       {'B', colorRed},
	comp.BodyFishSmall:       {'f', colorRed},
	comp.BodyFishMedium:      {'F', colorRed},
	comp.BodyBipedLarge:      {'2', colorRed},
	comp.BodyBipedSmall:      {'2', colorRed},
	comp.BodyObject:          {'◙', colorYellow},
	comp.BodyGolem:           {'G', colorTan},
	comp.BodyDragon:          {'₧', colorRed},
	comp.BodyTheropod:        {'T', colorRed},
	comp.BodyShip:            {'S', colorBrown1},
}

func bodyGlyph(b comp.BodyData) (rune, tcell.Color) {
	if b.Kind >= comp.BodyKindCount {
		return unresolved, colorRed
	}
	if b.Kind == comp.BodyHumanoid && b.Species < comp.SpeciesCount {
		st := speciesStyles[b.Species]
		return st.glyph, st.color
	}
	st := bodyStyles[b.Kind]
	return st.glyph, st.color
}

// levelTint blends blocks one to three levels below the player's feet
// toward white, nearest first.
var levelTint = [...]float64{0.15, 0.30, 0.50}

// tint applies the tint for a block depth levels below the scan origin.
// Other depths keep the block colour.
func tint(c terrain.Rgb, depth int) tcell.Color {
	if depth < 0 || depth >= len(levelTint) {
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	t := levelTint[depth]
	blend := func(v uint8) int32 {
		return int32(v) + int32(t*float64(255-v))
	}
	return tcell.NewRGBColor(blend(c.R), blend(c.G), blend(c.B))
}
