// Package terrain holds the voxel block model and the client-side chunk store.
package terrain

import "fmt"

type BlockKind uint8

const (
	Air BlockKind = iota
	Water
	Rock
	WeakRock
	Lava
	GlowingRock
	GlowingWeakRock
	Grass
	Snow
	Earth
	Sand
	Wood
	Leaves
	Misc

	BlockKindCount
)

var blockKindNames = [BlockKindCount]string{
	Air:             "Air",
	Water:           "Water",
	Rock:            "Rock",
	WeakRock:        "WeakRock",
	Lava:            "Lava",
	GlowingRock:     "GlowingRock",
	GlowingWeakRock: "GlowingWeakRock",
	Grass:           "Grass",
	Snow:            "Snow",
	Earth:           "Earth",
	Sand:            "Sand",
	Wood:            "Wood",
	Leaves:          "Leaves",
	Misc:            "Misc",
}

func (k BlockKind) String() string {
	if k < BlockKindCount {
		return blockKindNames[k]
	}
	return fmt.Sprintf("BlockKind(%d)", uint8(k))
}

// IsFluid reports whether blocks of this kind carry a sprite instead of a
// colour.
func (k BlockKind) IsFluid() bool {
	return k == Air || k == Water
}

// IsFilled reports whether the kind is a solid, coloured block.
func (k BlockKind) IsFilled() bool {
	return k < BlockKindCount && !k.IsFluid()
}

type Rgb struct {
	R, G, B uint8
}

// Block is a single voxel. Filled kinds carry a colour, fluid kinds may carry
// a sprite.
type Block struct {
	kind   BlockKind
	color  Rgb
	sprite SpriteKind
}

var (
	AirBlock   = Block{kind: Air}
	WaterBlock = Block{kind: Water}
)

func NewBlock(kind BlockKind, color Rgb) Block {
	if kind.IsFluid() {
		return Block{kind: kind}
	}
	return Block{kind: kind, color: color}
}

// NewSpriteBlock places a sprite in a fluid block. Filled kinds cannot hold
// sprites, so they fall back to air.
func NewSpriteBlock(kind BlockKind, sprite SpriteKind) Block {
	if !kind.IsFluid() {
		kind = Air
	}
	return Block{kind: kind, sprite: sprite}
}

func (b Block) Kind() BlockKind { return b.kind }

func (b Block) IsFilled() bool { return b.kind.IsFilled() }

// Color returns the block colour; ok is false for fluid blocks.
func (b Block) Color() (Rgb, bool) {
	if !b.IsFilled() {
		return Rgb{}, false
	}
	return b.color, true
}

// Sprite returns the sprite occupying the block; ok is false for filled
// blocks, which never hold sprites.
func (b Block) Sprite() (SpriteKind, bool) {
	if b.IsFilled() {
		return SpriteEmpty, false
	}
	return b.sprite, true
}

func (b Block) String() string {
	if b.IsFilled() {
		return fmt.Sprintf("%s#%02x%02x%02x", b.kind, b.color.R, b.color.G, b.color.B)
	}
	if b.sprite != SpriteEmpty {
		return fmt.Sprintf("%s(%s)", b.kind, b.sprite)
	}
	return b.kind.String()
}

// Raw packs the block for the wire: kind in the top byte, then either the
// colour or the sprite in the low byte.
func (b Block) Raw() uint32 {
	raw := uint32(b.kind) << 24
	if b.IsFilled() {
		return raw | uint32(b.color.R)<<16 | uint32(b.color.G)<<8 | uint32(b.color.B)
	}
	return raw | uint32(b.sprite)
}

// BlockFromRaw unpacks a wire block. Unknown kinds decode as Misc and
// unknown sprites as empty.
func BlockFromRaw(raw uint32) Block {
	kind := BlockKind(raw >> 24)
	if kind >= BlockKindCount {
		kind = Misc
	}
	if kind.IsFluid() {
		sprite := SpriteKind(raw & 0xff)
		if sprite >= SpriteKindCount {
			sprite = SpriteEmpty
		}
		return Block{kind: kind, sprite: sprite}
	}
	return Block{kind: kind, color: Rgb{R: uint8(raw >> 16), G: uint8(raw >> 8), B: uint8(raw)}}
}
