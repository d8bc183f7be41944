package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func TestReadPacket(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		want    *Packet
		wantErr error
	}{
		{
			name: "plain packet",
			input: []byte{
				0x06,                         // Length = 6
				0x01,                         // PacketID = 1
				0x48, 0x65, 0x6c, 0x6c, 0x6f, // "Hello"
			},
			want: &Packet{ID: 1, Payload: []byte("Hello")},
		},
		{
			name: "empty payload",
			input: []byte{
				0x01, // Length = 1
				0x00, // PacketID = 0
			},
			want: &Packet{ID: 0, Payload: []byte{}},
		},
		{
			name: "multi-byte packet id",
			input: []byte{
				0x03,       // Length = 3
				0x80, 0x01, // PacketID = 128
				0x01,
			},
			want: &Packet{ID: 128, Payload: []byte{0x01}},
		},
		{
			name:    "length larger than data",
			input:   []byte{0x10, 0x01, 0x48},
			wantErr: ErrInvalidPacket,
		},
		{
			name:    "zero length",
			input:   []byte{0x00},
			wantErr: ErrInvalidPacket,
		},
		{
			name:    "length above maximum",
			input:   []byte{0xff, 0xff, 0xff, 0x7f},
			wantErr: ErrPacketTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadPacket(bytes.NewReader(tt.input), -1)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ReadPacket() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadPacket() error = %v", err)
			}
			if got.ID != tt.want.ID {
				t.Errorf("ReadPacket() ID = %v, want %v", got.ID, tt.want.ID)
			}
			if !bytes.Equal(got.Payload, tt.want.Payload) {
				t.Errorf("ReadPacket() Payload = %v, want %v", got.Payload, tt.want.Payload)
			}
		})
	}
}

func TestWritePacketUncompressed(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePacket(&buf, &Packet{ID: 1, Payload: []byte("Hello")}, -1); err != nil {
		t.Fatalf("WritePacket() error = %v", err)
	}
	want := []byte{0x06, 0x01, 0x48, 0x65, 0x6c, 0x6c, 0x6f}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("WritePacket() = %v, want %v", buf.Bytes(), want)
	}
}

func TestWritePacketBelowThresholdHasZeroDataLength(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePacket(&buf, &Packet{ID: 1, Payload: []byte("Hi")}, 256); err != nil {
		t.Fatalf("WritePacket() error = %v", err)
	}
	// [Length=4][DataLength=0][ID=1]["Hi"]
	want := []byte{0x04, 0x00, 0x01, 0x48, 0x69}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("WritePacket() = %v, want %v", buf.Bytes(), want)
	}
}

func TestReadWritePacketRoundTrip(t *testing.T) {
	packets := []*Packet{
		{ID: 0x01, Payload: []byte("Hello, World!")},
		{ID: 0x00, Payload: []byte{}},
		{ID: 0x7FFFFFFF, Payload: []byte{0x01, 0x02, 0x03}},
		{ID: 0x0A, Payload: []byte{0x00, 0xFF, 0x12, 0x34, 0xAB, 0xCD}},
		{ID: 0x0B, Payload: bytes.Repeat([]byte("x"), 4096)},
	}
	for _, threshold := range []int{-1, 0, 64} {
		for _, p := range packets {
			var buf bytes.Buffer
			if err := WritePacket(&buf, p, threshold); err != nil {
				t.Fatalf("threshold %d: WritePacket() error = %v", threshold, err)
			}
			got, err := ReadPacket(&buf, threshold)
			if err != nil {
				t.Fatalf("threshold %d: ReadPacket() error = %v", threshold, err)
			}
			if got.ID != p.ID || !bytes.Equal(got.Payload, p.Payload) {
				t.Fatalf("threshold %d: got %v, want %v", threshold, got, p)
			}
			if buf.Len() != 0 {
				t.Fatalf("threshold %d: %d bytes left over", threshold, buf.Len())
			}
		}
	}
}

func TestCompressionShrinksRepetitivePayload(t *testing.T) {
	p := &Packet{ID: S2CTerrainChunk, Payload: bytes.Repeat([]byte{0x07}, 8192)}
	var buf bytes.Buffer
	if err := WritePacket(&buf, p, 256); err != nil {
		t.Fatalf("WritePacket() error = %v", err)
	}
	if buf.Len() >= len(p.Payload) {
		t.Fatalf("compressed frame is %d bytes, payload %d", buf.Len(), len(p.Payload))
	}
}

func TestWritePacketSingleWrite(t *testing.T) {
	w := &countingWriter{}
	if err := WritePacket(w, &Packet{ID: 3, Payload: []byte("frame")}, 0); err != nil {
		t.Fatalf("WritePacket() error = %v", err)
	}
	if w.writes != 1 {
		t.Fatalf("WritePacket() issued %d writes, want 1", w.writes)
	}
}

func TestReadPacketError(t *testing.T) {
	r := &errorReader{err: errors.New("read error")}
	if _, err := ReadPacket(r, -1); err == nil {
		t.Error("ReadPacket() expected error, got nil")
	}
}

func TestWritePacketError(t *testing.T) {
	w := &errorWriter{err: errors.New("write error")}
	if err := WritePacket(w, &Packet{ID: 1, Payload: []byte("test")}, -1); err == nil {
		t.Error("WritePacket() expected error, got nil")
	}
}

func TestPacketName(t *testing.T) {
	if got := PacketName(S2CTerrainChunk); got != "TerrainChunk" {
		t.Fatalf("PacketName(S2CTerrainChunk) = %q", got)
	}
	if got := PacketName(0x7f); got != "Unknown" {
		t.Fatalf("PacketName(0x7f) = %q", got)
	}
}

type errorReader struct {
	err error
}

func (e *errorReader) Read(p []byte) (n int, err error) {
	return 0, e.err
}

type errorWriter struct {
	err error
}

func (e *errorWriter) Write(p []byte) (n int, err error) {
	return 0, e.err
}

type countingWriter struct {
	bytes.Buffer
	writes int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	c.writes++
	return c.Buffer.Write(p)
}

func BenchmarkReadPacket(b *testing.B) {
	data := []byte{0x10, 0x01}
	data = append(data, bytes.Repeat([]byte("x"), 15)...)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ReadPacket(bytes.NewReader(data), -1)
	}
}

func BenchmarkWritePacket(b *testing.B) {
	packet := &Packet{ID: 1, Payload: bytes.Repeat([]byte("x"), 100)}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var buf bytes.Buffer
		_ = WritePacket(&buf, packet, -1)
	}
}
