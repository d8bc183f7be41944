package devserver

import (
	"math"
	"testing"

	"github.com/Versifine/veloterm/internal/protocol"
	"github.com/Versifine/veloterm/internal/terrain"
)

func TestGeneratorDeterministic(t *testing.T) {
	pos := terrain.ChunkPos{X: 1, Y: -2}
	a := NewGenerator(5).Chunk(pos).ToWire(pos)
	b := NewGenerator(5).Chunk(pos).ToWire(pos)
	for i := range a.Blocks {
		if a.Blocks[i] != b.Blocks[i] {
			t.Fatalf("block %d differs between runs: %x vs %x", i, a.Blocks[i], b.Blocks[i])
		}
	}

	c := NewGenerator(6).Chunk(pos).ToWire(pos)
	same := true
	for i := range a.Blocks {
		if a.Blocks[i] != c.Blocks[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical chunks")
	}
}

func TestHeightStaysInsideChunkBand(t *testing.T) {
	g := NewGenerator(42)
	for x := int32(-300); x < 300; x += 7 {
		for y := int32(-300); y < 300; y += 11 {
			h := g.Height(x, y)
			if h < chunkMinZ+2 || h > chunkMinZ+chunkHeight-12 {
				t.Fatalf("Height(%d, %d) = %d outside the chunk band", x, y, h)
			}
		}
	}
}

func TestChunkColumnLayout(t *testing.T) {
	g := NewGenerator(9)
	pos := terrain.ChunkPos{X: -1, Y: 0}
	c := g.Chunk(pos)
	for ly := int32(0); ly < terrain.ChunkSize; ly += 5 {
		for lx := int32(0); lx < terrain.ChunkSize; lx += 5 {
			x, y := pos.X*terrain.ChunkSize+lx, pos.Y*terrain.ChunkSize+ly
			h := g.Height(x, y)
			for z := int32(chunkMinZ); z <= h; z++ {
				if b, _ := c.Get(lx, ly, z); !b.IsFilled() {
					t.Fatalf("(%d,%d,%d) below the surface is %v", x, y, z, b)
				}
			}
			for z := h + 1; z <= seaLevel; z++ {
				if b, _ := c.Get(lx, ly, z); b.Kind() != terrain.Water {
					t.Fatalf("(%d,%d,%d) under sea level is %v", x, y, z, b)
				}
			}
			if b, _ := c.Get(lx, ly, chunkMinZ+chunkHeight-1); b.Kind() != terrain.Air {
				t.Fatalf("top of column (%d,%d) is %v", x, y, b)
			}
		}
	}
}

func TestChunkSurvivesWireEncoding(t *testing.T) {
	pos := terrain.ChunkPos{X: 3, Y: 3}
	c := NewGenerator(1).Chunk(pos)
	p, err := protocol.CreateTerrainChunkPacket(c.ToWire(pos))
	if err != nil {
		t.Fatalf("CreateTerrainChunkPacket() error = %v", err)
	}
	wire, err := protocol.ParseTerrainChunk(p.Reader())
	if err != nil {
		t.Fatalf("ParseTerrainChunk() error = %v", err)
	}
	gotPos, got, err := terrain.ChunkFromWire(wire)
	if err != nil || gotPos != pos {
		t.Fatalf("ChunkFromWire() = %v, %v", gotPos, err)
	}
	for i := range c.Blocks {
		if got.Blocks[i] != c.Blocks[i] {
			t.Fatalf("block %d = %v, want %v", i, got.Blocks[i], c.Blocks[i])
		}
	}
}

func TestSpawnPointOnDryLand(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 99} {
		g := NewGenerator(seed)
		p := g.SpawnPoint()
		h := g.Height(int32(math.Floor(p.X)), int32(math.Floor(p.Y)))
		if p.Z != float64(h+1) {
			t.Errorf("seed %d: spawn z = %v, ground %d", seed, p.Z, h)
		}
	}
}

func TestSolidAndLiquid(t *testing.T) {
	g := NewGenerator(4)
	var sawWater bool
	for x := int32(-200); x < 200; x += 3 {
		h := g.Height(x, 17)
		if !g.IsSolid(x, 17, h) || !g.IsSolid(x, 17, chunkMinZ-1) {
			t.Fatalf("column %d: ground not solid", x)
		}
		if g.IsLiquid(x, 17, h) {
			t.Fatalf("column %d: ground reported as water", x)
		}
		if h < seaLevel {
			sawWater = true
			if !g.IsLiquid(x, 17, seaLevel) || g.IsSolid(x, 17, seaLevel) {
				t.Fatalf("column %d: sea surface not water", x)
			}
		}
		if g.IsLiquid(x, 17, seaLevel+1) {
			t.Fatalf("column %d: water above sea level", x)
		}
	}
	if !sawWater {
		t.Log("no submerged columns sampled")
	}
}

func TestGroundAtFloatsOnWater(t *testing.T) {
	g := NewGenerator(4)
	for x := -200.0; x < 200; x += 3 {
		p := groundAt(g, x, 17)
		if p.Z < seaLevel {
			t.Fatalf("groundAt(%v) = %v, below sea level", x, p)
		}
	}
}

func TestRNGDeterministic(t *testing.T) {
	a, b := newRNG(11), newRNG(11)
	for range 100 {
		if a.Uint64() != b.Uint64() {
			t.Fatal("rng sequences diverged")
		}
	}
	r := newRNG(3)
	for range 1000 {
		if v := r.Float64(); v < 0 || v >= 1 {
			t.Fatalf("Float64() = %v", v)
		}
		if v := r.Intn(7); v < 0 || v >= 7 {
			t.Fatalf("Intn(7) = %d", v)
		}
	}
	if r.Intn(0) != 0 {
		t.Fatal("Intn(0) != 0")
	}
}

func TestAddItem(t *testing.T) {
	slots := starterInventory()
	if len(slots) != inventorySize {
		t.Fatalf("starter inventory has %d slots", len(slots))
	}
	if !addItem(slots, "Apple") || slots[0].Amount != 6 {
		t.Fatalf("Apple did not stack: %+v", slots[0])
	}
	if !addItem(slots, "Feather") || slots[4].Name != "Feather" {
		t.Fatalf("Feather not placed in the first free slot: %+v", slots[4])
	}

	full := []protocol.ItemStack{{Name: "Torch", Amount: 1}}
	if addItem(full, "Scale") {
		t.Fatal("addItem() succeeded on a full inventory")
	}
}
