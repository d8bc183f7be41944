package protocol

import (
	"bytes"
	"fmt"
	"io"
)

// TerrainChunkSize is the horizontal edge length of a chunk in blocks.
const TerrainChunkSize = 32

const (
	maxChunkHeight = 1024
	maxPaletteLen  = 4096
)

// TerrainChunk is a 32x32 column of blocks starting at MinZ. Blocks are raw
// packed block values indexed ((z-MinZ)*32+y)*32+x with chunk-local x/y.
type TerrainChunk struct {
	X      int32
	Y      int32
	MinZ   int32
	Height int32
	Blocks []uint32
}

// CreateTerrainChunkPacket encodes the chunk as a palette followed by
// run-length pairs of (run, palette index).
func CreateTerrainChunkPacket(c TerrainChunk) (*Packet, error) {
	want := TerrainChunkSize * TerrainChunkSize * int(c.Height)
	if c.Height <= 0 || c.Height > maxChunkHeight || len(c.Blocks) != want {
		return nil, fmt.Errorf("%w: height=%d blocks=%d", ErrInvalidChunkShape, c.Height, len(c.Blocks))
	}

	paletteIndex := make(map[uint32]int32)
	var palette []uint32
	for _, b := range c.Blocks {
		if _, ok := paletteIndex[b]; !ok {
			paletteIndex[b] = int32(len(palette))
			palette = append(palette, b)
		}
	}
	if len(palette) > maxPaletteLen {
		return nil, fmt.Errorf("%w: palette too large (%d)", ErrInvalidChunkShape, len(palette))
	}

	buf := new(bytes.Buffer)
	_ = WriteVarint(buf, c.X)
	_ = WriteVarint(buf, c.Y)
	_ = WriteVarint(buf, c.MinZ)
	_ = WriteVarint(buf, c.Height)
	_ = WriteVarint(buf, int32(len(palette)))
	for _, p := range palette {
		_ = WriteUint32(buf, p)
	}

	runs := 0
	for i := 0; i < len(c.Blocks); {
		j := i + 1
		for j < len(c.Blocks) && c.Blocks[j] == c.Blocks[i] {
			j++
		}
		runs++
		i = j
	}
	_ = WriteVarint(buf, int32(runs))
	for i := 0; i < len(c.Blocks); {
		j := i + 1
		for j < len(c.Blocks) && c.Blocks[j] == c.Blocks[i] {
			j++
		}
		_ = WriteVarint(buf, int32(j-i))
		_ = WriteVarint(buf, paletteIndex[c.Blocks[i]])
		i = j
	}

	return &Packet{
		ID:      S2CTerrainChunk,
		Payload: buf.Bytes(),
	}, nil
}

func ParseTerrainChunk(r io.Reader) (*TerrainChunk, error) {
	var c TerrainChunk
	var err error
	if c.X, err = ReadVarint(r); err != nil {
		return nil, err
	}
	if c.Y, err = ReadVarint(r); err != nil {
		return nil, err
	}
	if c.MinZ, err = ReadVarint(r); err != nil {
		return nil, err
	}
	if c.Height, err = ReadVarint(r); err != nil {
		return nil, err
	}
	if c.Height <= 0 || c.Height > maxChunkHeight {
		return nil, fmt.Errorf("%w: height=%d", ErrInvalidChunkShape, c.Height)
	}

	paletteLen, err := ReadVarint(r)
	if err != nil {
		return nil, err
	}
	if paletteLen <= 0 || paletteLen > maxPaletteLen {
		return nil, fmt.Errorf("%w: palette length %d", ErrInvalidChunkShape, paletteLen)
	}
	palette := make([]uint32, paletteLen)
	for i := range palette {
		if palette[i], err = ReadUint32(r); err != nil {
			return nil, err
		}
	}

	total := TerrainChunkSize * TerrainChunkSize * int(c.Height)
	runs, err := ReadVarint(r)
	if err != nil {
		return nil, err
	}
	if runs <= 0 || int(runs) > total {
		return nil, fmt.Errorf("%w: run count %d", ErrInvalidChunkShape, runs)
	}

	c.Blocks = make([]uint32, 0, total)
	for i := int32(0); i < runs; i++ {
		run, err := ReadVarint(r)
		if err != nil {
			return nil, err
		}
		idx, err := ReadVarint(r)
		if err != nil {
			return nil, err
		}
		if run <= 0 || len(c.Blocks)+int(run) > total {
			return nil, fmt.Errorf("%w: run length %d", ErrInvalidChunkShape, run)
		}
		if idx < 0 || idx >= paletteLen {
			return nil, fmt.Errorf("palette index out of range: %d (palette len: %d)", idx, paletteLen)
		}
		for k := int32(0); k < run; k++ {
			c.Blocks = append(c.Blocks, palette[idx])
		}
	}
	if len(c.Blocks) != total {
		return nil, fmt.Errorf("%w: got %d blocks, want %d", ErrInvalidChunkShape, len(c.Blocks), total)
	}
	return &c, nil
}

type BlockUpdate struct {
	X     int32
	Y     int32
	Z     int32
	Block uint32
}

func CreateBlockUpdatePacket(u BlockUpdate) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteVarint(buf, u.X)
	_ = WriteVarint(buf, u.Y)
	_ = WriteVarint(buf, u.Z)
	_ = WriteUint32(buf, u.Block)
	return &Packet{
		ID:      S2CBlockUpdate,
		Payload: buf.Bytes(),
	}
}

func ParseBlockUpdate(r io.Reader) (*BlockUpdate, error) {
	var u BlockUpdate
	var err error
	if u.X, err = ReadVarint(r); err != nil {
		return nil, err
	}
	if u.Y, err = ReadVarint(r); err != nil {
		return nil, err
	}
	if u.Z, err = ReadVarint(r); err != nil {
		return nil, err
	}
	if u.Block, err = ReadUint32(r); err != nil {
		return nil, err
	}
	return &u, nil
}
