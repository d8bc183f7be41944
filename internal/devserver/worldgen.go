package devserver

import (
	"math"

	"github.com/Versifine/veloterm/internal/protocol"
	"github.com/Versifine/veloterm/internal/terrain"
)

const (
	chunkMinZ   = 16
	chunkHeight = 64
	seaLevel    = 38
	snowLine    = 52
	baseHeight  = 42
)

// Generator produces deterministic terrain from a seed. Every column is a
// pure function of (seed, x, y), so neighbouring chunks agree at their
// borders without sharing state.
type Generator struct {
	seed uint64
}

func NewGenerator(seed int64) *Generator {
	return &Generator{seed: uint64(seed)}
}

// Height is the z of the topmost solid block of a column.
func (g *Generator) Height(x, y int32) int32 {
	fx, fy := float64(x), float64(y)
	n := g.noise(fx/64, fy/64, 0)*18 + g.noise(fx/16, fy/16, 1)*5
	h := int32(math.Floor(baseHeight + n - 11))
	return max(chunkMinZ+2, min(h, chunkMinZ+chunkHeight-12))
}

// SpawnPoint searches outward from the origin for dry land.
func (g *Generator) SpawnPoint() protocol.Vec3 {
	for r := int32(0); r < 256; r += 4 {
		for _, p := range [][2]int32{{r, 0}, {0, r}, {-r, 0}, {0, -r}, {r, r}, {-r, -r}} {
			if h := g.Height(p[0], p[1]); h > seaLevel && h < snowLine && g.treeAt(p[0], p[1]) == 0 {
				return protocol.Vec3{X: float64(p[0]) + 0.5, Y: float64(p[1]) + 0.5, Z: float64(h + 1)}
			}
		}
	}
	return protocol.Vec3{X: 0.5, Y: 0.5, Z: float64(g.Height(0, 0) + 1)}
}

// IsSolid reports whether the voxel blocks movement. Ground and tree trunks
// do; leaves, water and decorations do not. Everything below the generated
// range is solid.
func (g *Generator) IsSolid(x, y, z int32) bool {
	if z < chunkMinZ {
		return true
	}
	h := g.Height(x, y)
	if z <= h {
		return true
	}
	th := g.treeAt(x, y)
	return th != 0 && z <= th+4
}

func (g *Generator) IsLiquid(x, y, z int32) bool {
	return z <= seaLevel && z > g.Height(x, y)
}

func (g *Generator) Chunk(pos terrain.ChunkPos) *terrain.Chunk {
	c := terrain.NewChunk(chunkMinZ, chunkHeight)
	for ly := int32(0); ly < terrain.ChunkSize; ly++ {
		for lx := int32(0); lx < terrain.ChunkSize; lx++ {
			g.fillColumn(c, lx, ly, pos.X*terrain.ChunkSize+lx, pos.Y*terrain.ChunkSize+ly)
		}
	}
	return c
}

func (g *Generator) fillColumn(c *terrain.Chunk, lx, ly, x, y int32) {
	h := g.Height(x, y)
	r := g.hash(x, y, 2)
	for z := int32(chunkMinZ); z < chunkMinZ+chunkHeight; z++ {
		var b terrain.Block
		switch {
		case z <= h-4:
			v := uint8(95 + r%20)
			b = terrain.NewBlock(terrain.Rock, terrain.Rgb{R: v, G: v, B: v + 5})
		case z < h:
			b = terrain.NewBlock(terrain.Earth, terrain.Rgb{R: 110, G: 80, B: 50})
		case z == h:
			b = g.surface(h, r)
		case z <= seaLevel:
			b = terrain.WaterBlock
		default:
			b = g.above(x, y, z, h, r)
		}
		_ = c.Set(lx, ly, z, b)
	}
}

func (g *Generator) surface(h int32, r uint64) terrain.Block {
	switch {
	case h <= seaLevel+1:
		return terrain.NewBlock(terrain.Sand, terrain.Rgb{R: 220, G: 200, B: 140})
	case h >= snowLine:
		return terrain.NewBlock(terrain.Snow, terrain.Rgb{R: 240, G: 245, B: 250})
	}
	return terrain.NewBlock(terrain.Grass, terrain.Rgb{R: 70, G: uint8(130 + r%40), B: 50})
}

var decorations = []terrain.SpriteKind{
	terrain.SpriteLongGrass, terrain.SpriteMediumGrass, terrain.SpriteShortGrass,
	terrain.SpriteRedFlower, terrain.SpriteYellowFlower, terrain.SpriteBlueFlower,
	terrain.SpriteSunflower, terrain.SpriteMushroom, terrain.SpriteStones,
	terrain.SpriteTwigs, terrain.SpriteApple, terrain.SpriteVeloriteFrag,
}

// above resolves air blocks over dry land: tree trunks, canopies and ground
// decorations.
func (g *Generator) above(x, y, z, h int32, r uint64) terrain.Block {
	if th := g.treeAt(x, y); th != 0 && z <= th+4 {
		return terrain.NewBlock(terrain.Wood, terrain.Rgb{R: 90, G: 60, B: 30})
	}
	for dy := int32(-2); dy <= 2; dy++ {
		for dx := int32(-2); dx <= 2; dx++ {
			if abs(dx)+abs(dy) > 3 {
				continue
			}
			th := g.treeAt(x+dx, y+dy)
			if th != 0 && z >= th+4 && z <= th+6 && (dx != 0 || dy != 0 || z > th+4) {
				return terrain.NewBlock(terrain.Leaves, terrain.Rgb{R: 40, G: 110, B: 40})
			}
		}
	}
	if z == h+1 && h > seaLevel+1 && h < snowLine && r%1000 < 60 {
		return terrain.NewSpriteBlock(terrain.Air, decorations[(r/1000)%uint64(len(decorations))])
	}
	return terrain.AirBlock
}

// treeAt returns the ground height under a tree rooted at (x, y), or 0.
func (g *Generator) treeAt(x, y int32) int32 {
	if g.hash(x, y, 3)%1000 >= 8 {
		return 0
	}
	h := g.Height(x, y)
	if h <= seaLevel+1 || h >= snowLine {
		return 0
	}
	return h
}

func (g *Generator) hash(x, y int32, salt uint64) uint64 {
	v := g.seed ^ salt*0x9e3779b97f4a7c15
	v ^= uint64(uint32(x)) * 0xbf58476d1ce4e5b9
	v ^= uint64(uint32(y)) * 0x94d049bb133111eb
	return splitmix(v)
}

func splitmix(v uint64) uint64 {
	v += 0x9e3779b97f4a7c15
	v = (v ^ v>>30) * 0xbf58476d1ce4e5b9
	v = (v ^ v>>27) * 0x94d049bb133111eb
	return v ^ v>>31
}

// noise is smoothed value noise in [0, 1).
func (g *Generator) noise(fx, fy float64, salt uint64) float64 {
	x0, y0 := math.Floor(fx), math.Floor(fy)
	tx, ty := smooth(fx-x0), smooth(fy-y0)
	ix, iy := int32(x0), int32(y0)
	corner := func(dx, dy int32) float64 {
		return float64(g.hash(ix+dx, iy+dy, salt+10)>>11) / (1 << 53)
	}
	top := lerp(corner(0, 0), corner(1, 0), tx)
	bottom := lerp(corner(0, 1), corner(1, 1), tx)
	return lerp(top, bottom, ty)
}

func smooth(t float64) float64 { return t * t * (3 - 2*t) }

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func abs(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// rng is a seeded linear congruential generator for reproducible NPC
// placement and wandering.
type rng struct {
	state uint64
}

func newRNG(seed uint64) *rng { return &rng{state: seed} }

func (r *rng) Uint64() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

func (r *rng) Float64() float64 {
	return float64(r.Uint64()>>11) / (1 << 53)
}

func (r *rng) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Uint64() % uint64(n))
}
