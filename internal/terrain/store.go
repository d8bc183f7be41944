package terrain

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Versifine/veloterm/internal/protocol"
)

// ChunkSize is the horizontal edge length of a terrain chunk.
const ChunkSize = protocol.TerrainChunkSize

var (
	ErrChunkNotLoaded = errors.New("terrain chunk not loaded")
	ErrOutOfBounds    = errors.New("block position outside chunk")
)

// defaultBelow is what lies under the stored column of a chunk.
var defaultBelow = NewBlock(Rock, Rgb{R: 100, G: 100, B: 100})

type ChunkPos struct {
	X int32
	Y int32
}

// Chunk is a 32x32 column of blocks from MinZ up to MinZ+Height. Queries
// outside that band resolve to Below or Above.
type Chunk struct {
	MinZ   int32
	Height int32
	Blocks []Block
	Above  Block
	Below  Block
}

func NewChunk(minZ, height int32) *Chunk {
	if height < 0 {
		height = 0
	}
	return &Chunk{
		MinZ:   minZ,
		Height: height,
		Blocks: make([]Block, ChunkSize*ChunkSize*int(height)),
		Above:  AirBlock,
		Below:  defaultBelow,
	}
}

// ChunkFromWire converts a decoded chunk packet.
func ChunkFromWire(tc *protocol.TerrainChunk) (ChunkPos, *Chunk, error) {
	pos := ChunkPos{X: tc.X, Y: tc.Y}
	if len(tc.Blocks) != ChunkSize*ChunkSize*int(tc.Height) {
		return pos, nil, fmt.Errorf("chunk %d,%d: %w", tc.X, tc.Y, protocol.ErrInvalidChunkShape)
	}
	c := NewChunk(tc.MinZ, tc.Height)
	for i, raw := range tc.Blocks {
		c.Blocks[i] = BlockFromRaw(raw)
	}
	return pos, c, nil
}

// ToWire is the inverse of ChunkFromWire.
func (c *Chunk) ToWire(pos ChunkPos) protocol.TerrainChunk {
	raw := make([]uint32, len(c.Blocks))
	for i, b := range c.Blocks {
		raw[i] = b.Raw()
	}
	return protocol.TerrainChunk{X: pos.X, Y: pos.Y, MinZ: c.MinZ, Height: c.Height, Blocks: raw}
}

func (c *Chunk) index(lx, ly, z int32) int {
	return int(((z-c.MinZ)*ChunkSize+ly)*ChunkSize + lx)
}

// Get takes chunk-local x/y and a world z.
func (c *Chunk) Get(lx, ly, z int32) (Block, error) {
	if lx < 0 || lx >= ChunkSize || ly < 0 || ly >= ChunkSize {
		return Block{}, ErrOutOfBounds
	}
	switch {
	case z < c.MinZ:
		return c.Below, nil
	case z >= c.MinZ+c.Height:
		return c.Above, nil
	}
	return c.Blocks[c.index(lx, ly, z)], nil
}

func (c *Chunk) Set(lx, ly, z int32, b Block) error {
	if lx < 0 || lx >= ChunkSize || ly < 0 || ly >= ChunkSize || z < c.MinZ || z >= c.MinZ+c.Height {
		return ErrOutOfBounds
	}
	c.Blocks[c.index(lx, ly, z)] = b
	return nil
}

// Store holds the chunks streamed from the server around the player.
type Store struct {
	mu     sync.RWMutex
	chunks map[ChunkPos]*Chunk
}

func NewStore() *Store {
	return &Store{chunks: make(map[ChunkPos]*Chunk)}
}

// ChunkPosOf returns the chunk containing world column (x, y).
func ChunkPosOf(x, y int32) ChunkPos {
	return ChunkPos{X: floorDiv(x, ChunkSize), Y: floorDiv(y, ChunkSize)}
}

func (s *Store) InsertChunk(pos ChunkPos, c *Chunk) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.chunks == nil {
		s.chunks = make(map[ChunkPos]*Chunk)
	}
	s.chunks[pos] = c
}

func (s *Store) IsLoaded(pos ChunkPos) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.chunks[pos]
	return ok
}

func (s *Store) LoadedChunkCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

// Get returns the block at a world position.
func (s *Store) Get(x, y, z int32) (Block, error) {
	pos := ChunkPosOf(x, y)
	s.mu.RLock()
	c, ok := s.chunks[pos]
	s.mu.RUnlock()
	if !ok {
		return Block{}, ErrChunkNotLoaded
	}
	return c.Get(floorMod(x, ChunkSize), floorMod(y, ChunkSize), z)
}

func (s *Store) SetBlock(x, y, z int32, b Block) error {
	pos := ChunkPosOf(x, y)
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.chunks[pos]
	if !ok {
		return ErrChunkNotLoaded
	}
	return c.Set(floorMod(x, ChunkSize), floorMod(y, ChunkSize), z, b)
}

// RetainWithin drops every chunk further than dist chunks (Chebyshev) from
// center and returns how many were removed.
func (s *Store) RetainWithin(center ChunkPos, dist int32) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for pos := range s.chunks {
		if abs32(pos.X-center.X) > dist || abs32(pos.Y-center.Y) > dist {
			delete(s.chunks, pos)
			removed++
		}
	}
	return removed
}

func floorDiv(a, b int32) int32 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int32) int32 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
