package protocol

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
)

const MaxPacketSize = 2097152 // 2MB

type Packet struct {
	ID      int32
	Payload []byte
}

// Reader returns a reader positioned at the start of the payload.
func (p *Packet) Reader() *bytes.Reader {
	return bytes.NewReader(p.Payload)
}

func (p *Packet) String() string {
	return fmt.Sprintf("Packet{ID: 0x%02x (%s), Len: %d}", p.ID, PacketName(p.ID), len(p.Payload))
}

// ReadPacket reads one frame. A negative threshold means compression is off
// and frames are [Length][ID][Payload]; otherwise frames carry a data length
// field after Length, zero for uncompressed payloads.
func ReadPacket(r io.Reader, threshold int) (*Packet, error) {
	packetLen, err := ReadVarint(r)
	if err != nil {
		return nil, err
	}

	if packetLen <= 0 {
		return nil, ErrInvalidPacket
	}
	if packetLen > MaxPacketSize {
		return nil, ErrPacketTooLarge
	}

	data := make([]byte, packetLen)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, errors.Join(ErrInvalidPacket, err)
	}

	var rawDataReader io.Reader = bytes.NewReader(data)

	if threshold >= 0 {
		dataLen, err := ReadVarint(rawDataReader)
		if err != nil {
			return nil, err
		}
		if dataLen < 0 || dataLen > MaxPacketSize {
			return nil, ErrPacketTooLarge
		}

		if dataLen != 0 {
			z, err := zlib.NewReader(rawDataReader)
			if err != nil {
				return nil, errors.Join(ErrInvalidPacket, err)
			}
			defer z.Close()

			decompressed := make([]byte, dataLen)
			if _, err := io.ReadFull(z, decompressed); err != nil {
				return nil, errors.Join(ErrInvalidPacket, err)
			}
			rawDataReader = bytes.NewReader(decompressed)
		}
	}

	id, err := ReadVarint(rawDataReader)
	if err != nil {
		return nil, errors.Join(ErrInvalidPacket, err)
	}
	payload, err := io.ReadAll(rawDataReader)
	if err != nil {
		return nil, err
	}
	return &Packet{
		ID:      id,
		Payload: payload,
	}, nil
}

func WritePacket(w io.Writer, packet *Packet, threshold int) error {
	idBuf := bytes.NewBuffer(make([]byte, 0, 5))
	if err := WriteVarint(idBuf, packet.ID); err != nil {
		return err
	}

	uncompressedLen := idBuf.Len() + len(packet.Payload)
	if uncompressedLen > MaxPacketSize {
		return ErrPacketTooLarge
	}

	var packetData []byte
	var dataLength int32 // 0 means uncompressed

	if threshold >= 0 && uncompressedLen >= threshold {
		var buf bytes.Buffer
		z := zlib.NewWriter(&buf)
		if _, err := z.Write(idBuf.Bytes()); err != nil {
			return err
		}
		if _, err := z.Write(packet.Payload); err != nil {
			return err
		}
		if err := z.Close(); err != nil {
			return err
		}
		packetData = buf.Bytes()
		dataLength = int32(uncompressedLen)
	} else {
		packetData = append(idBuf.Bytes(), packet.Payload...)
	}

	// Build the whole frame first so a frame is a single Write; websocket
	// transports map one Write to one message.
	frame := bytes.NewBuffer(make([]byte, 0, len(packetData)+10))
	if threshold >= 0 {
		dataLenBuf := bytes.NewBuffer(make([]byte, 0, 5))
		if err := WriteVarint(dataLenBuf, dataLength); err != nil {
			return err
		}
		if err := WriteVarint(frame, int32(dataLenBuf.Len()+len(packetData))); err != nil {
			return err
		}
		frame.Write(dataLenBuf.Bytes())
	} else {
		if err := WriteVarint(frame, int32(len(packetData))); err != nil {
			return err
		}
	}
	frame.Write(packetData)

	_, err := w.Write(frame.Bytes())
	return err
}
