package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func makeChunk(height int32, fill func(i int) uint32) TerrainChunk {
	blocks := make([]uint32, TerrainChunkSize*TerrainChunkSize*int(height))
	for i := range blocks {
		blocks[i] = fill(i)
	}
	return TerrainChunk{X: -3, Y: 7, MinZ: -16, Height: height, Blocks: blocks}
}

func TestTerrainChunkRoundTrip(t *testing.T) {
	chunk := makeChunk(40, func(i int) uint32 {
		switch z := i / (TerrainChunkSize * TerrainChunkSize); {
		case z < 10:
			return 0x02_50_50_50
		case z == 10:
			return 0x07_20_a0_20 + uint32(i%3)
		default:
			return 0
		}
	})

	packet, err := CreateTerrainChunkPacket(chunk)
	if err != nil {
		t.Fatalf("CreateTerrainChunkPacket() error = %v", err)
	}
	if len(packet.Payload) > len(chunk.Blocks) {
		t.Fatalf("encoded chunk is %d bytes for %d blocks", len(packet.Payload), len(chunk.Blocks))
	}

	got, err := ParseTerrainChunk(packet.Reader())
	if err != nil {
		t.Fatalf("ParseTerrainChunk() error = %v", err)
	}
	if got.X != chunk.X || got.Y != chunk.Y || got.MinZ != chunk.MinZ || got.Height != chunk.Height {
		t.Fatalf("header = %+v", got)
	}
	for i := range chunk.Blocks {
		if got.Blocks[i] != chunk.Blocks[i] {
			t.Fatalf("block %d = %x, want %x", i, got.Blocks[i], chunk.Blocks[i])
		}
	}
}

func TestCreateTerrainChunkRejectsBadShape(t *testing.T) {
	chunk := makeChunk(4, func(int) uint32 { return 0 })
	chunk.Blocks = chunk.Blocks[:10]
	if _, err := CreateTerrainChunkPacket(chunk); !errors.Is(err, ErrInvalidChunkShape) {
		t.Fatalf("error = %v, want ErrInvalidChunkShape", err)
	}
}

func TestParseTerrainChunkRejectsShortRuns(t *testing.T) {
	buf := new(bytes.Buffer)
	_ = WriteVarint(buf, 0)
	_ = WriteVarint(buf, 0)
	_ = WriteVarint(buf, 0)
	_ = WriteVarint(buf, 1) // height
	_ = WriteVarint(buf, 1) // palette
	_ = WriteUint32(buf, 0)
	_ = WriteVarint(buf, 1) // one run
	_ = WriteVarint(buf, 5) // too short for 32*32
	_ = WriteVarint(buf, 0)

	if _, err := ParseTerrainChunk(buf); !errors.Is(err, ErrInvalidChunkShape) {
		t.Fatalf("error = %v, want ErrInvalidChunkShape", err)
	}
}

func TestParseTerrainChunkRejectsPaletteIndex(t *testing.T) {
	buf := new(bytes.Buffer)
	_ = WriteVarint(buf, 0)
	_ = WriteVarint(buf, 0)
	_ = WriteVarint(buf, 0)
	_ = WriteVarint(buf, 1)
	_ = WriteVarint(buf, 1)
	_ = WriteUint32(buf, 0)
	_ = WriteVarint(buf, 1)
	_ = WriteVarint(buf, TerrainChunkSize*TerrainChunkSize)
	_ = WriteVarint(buf, 3)

	if _, err := ParseTerrainChunk(buf); err == nil {
		t.Fatal("ParseTerrainChunk() accepted an out of range palette index")
	}
}

func TestChatCommandPacket(t *testing.T) {
	packet := CreateChatCommandPacket("group", []string{"hello", "there"})
	cmd, err := ParseChatCommand(packet.Reader())
	if err != nil {
		t.Fatalf("ParseChatCommand() error = %v", err)
	}
	if cmd.Name != "group" || len(cmd.Args) != 2 || cmd.Args[1] != "there" {
		t.Fatalf("ParseChatCommand() = %+v", cmd)
	}
	if cmd.String() != "/group hello there" {
		t.Fatalf("String() = %q", cmd.String())
	}
}

func TestParseChatCommandRejectsHugeArgCount(t *testing.T) {
	buf := new(bytes.Buffer)
	_ = WriteString(buf, "x")
	_ = WriteVarint(buf, 100000)
	if _, err := ParseChatCommand(buf); !errors.Is(err, ErrInvalidPacket) {
		t.Fatalf("error = %v, want ErrInvalidPacket", err)
	}
}

func TestCharacterListPacket(t *testing.T) {
	items := []CharacterItem{{ID: 1, Alias: "Alice", Level: 3}, {ID: 99, Alias: "Bob"}}
	list, err := ParseCharacterList(CreateCharacterListPacket(items).Reader())
	if err != nil {
		t.Fatalf("ParseCharacterList() error = %v", err)
	}
	if len(list.Characters) != 2 || list.Characters[1].ID != 99 || list.Characters[0].Alias != "Alice" {
		t.Fatalf("ParseCharacterList() = %+v", list)
	}
}

func TestParseCharacterListRejectsBadCount(t *testing.T) {
	for _, count := range []int32{-1, maxCharacters + 1, 1 << 30} {
		buf := new(bytes.Buffer)
		_ = WriteVarint(buf, count)
		if _, err := ParseCharacterList(buf); !errors.Is(err, ErrInvalidPacket) {
			t.Fatalf("count %d: error = %v, want ErrInvalidPacket", count, err)
		}
	}
}

func TestServerChatPacket(t *testing.T) {
	in := ServerChat{Type: ChatGroup, Sender: 42, Group: "crew", Message: "hi"}
	out, err := ParseServerChat(CreateServerChatPacket(in).Reader())
	if err != nil {
		t.Fatalf("ParseServerChat() error = %v", err)
	}
	if *out != in {
		t.Fatalf("ParseServerChat() = %+v, want %+v", *out, in)
	}
}

func TestConnStateDefaults(t *testing.T) {
	cs := NewConnState()
	if cs.Get() != Handshaking {
		t.Fatalf("initial state = %v", cs.Get())
	}
	if cs.GetThreshold() != -1 {
		t.Fatalf("initial threshold = %d", cs.GetThreshold())
	}
	cs.Set(InGame)
	cs.SetThreshold(256)
	if cs.Get().String() != "InGame" || cs.GetThreshold() != 256 {
		t.Fatalf("state = %v threshold = %d", cs.Get(), cs.GetThreshold())
	}
}
