package protocol

import (
	"encoding/binary"
	"io"
	"math"
)

const (
	SEGMENT_BITS = 0x7F
	CONTINUE_BIT = 0x80

	// MaxStringLength bounds every length-prefixed string on the wire.
	MaxStringLength = 32767
)

func ReadVarint(r io.Reader) (value int32, err error) {
	position := 0
	var currentByte [1]byte
	for {
		if _, err = io.ReadFull(r, currentByte[:]); err != nil {
			return 0, err
		}
		b := currentByte[0]
		value |= int32(b&SEGMENT_BITS) << position
		if (b & CONTINUE_BIT) == 0 {
			return value, nil
		}
		position += 7
		if position >= 32 {
			return 0, ErrVarIntTooLong
		}
	}
}

func WriteVarint(w io.Writer, value int32) error {
	uvalue := uint32(value)
	for {
		temp := byte(uvalue & SEGMENT_BITS)
		uvalue >>= 7
		if uvalue != 0 {
			temp |= CONTINUE_BIT
		}
		if _, err := w.Write([]byte{temp}); err != nil {
			return err
		}
		if uvalue == 0 {
			return nil
		}
	}
}

func ReadVarLong(r io.Reader) (value int64, err error) {
	position := 0
	var currentByte [1]byte
	for {
		if _, err = io.ReadFull(r, currentByte[:]); err != nil {
			return 0, err
		}
		b := currentByte[0]
		value |= int64(b&SEGMENT_BITS) << position
		if (b & CONTINUE_BIT) == 0 {
			return value, nil
		}
		position += 7
		if position >= 64 {
			return 0, ErrVarLongTooLong
		}
	}
}

func WriteVarLong(w io.Writer, value int64) error {
	uvalue := uint64(value)
	for {
		temp := byte(uvalue & SEGMENT_BITS)
		uvalue >>= 7
		if uvalue != 0 {
			temp |= CONTINUE_BIT
		}
		if _, err := w.Write([]byte{temp}); err != nil {
			return err
		}
		if uvalue == 0 {
			return nil
		}
	}
}

// VarintLen returns the encoded size of value in bytes.
func VarintLen(value int32) int {
	uvalue := uint32(value)
	n := 1
	for uvalue >= CONTINUE_BIT {
		uvalue >>= 7
		n++
	}
	return n
}

func ReadString(r io.Reader) (string, error) {
	length, err := ReadVarint(r)
	if err != nil {
		return "", err
	}
	if length < 0 || length > MaxStringLength*4 {
		return "", ErrStringTooLong
	}
	strBytes := make([]byte, length)
	if _, err := io.ReadFull(r, strBytes); err != nil {
		return "", err
	}
	return string(strBytes), nil
}

func WriteString(w io.Writer, s string) error {
	if len(s) > MaxStringLength*4 {
		return ErrStringTooLong
	}
	if err := WriteVarint(w, int32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func ReadByte(r io.Reader) (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func WriteByte(w io.Writer, b byte) error {
	_, err := w.Write([]byte{b})
	return err
}

func ReadBool(r io.Reader) (bool, error) {
	b, err := ReadByte(r)
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

func WriteBool(w io.Writer, value bool) error {
	var b byte
	if value {
		b = 1
	}
	return WriteByte(w, b)
}

func ReadUnsignedShort(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

func WriteUnsignedShort(w io.Writer, value uint16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], value)
	_, err := w.Write(buf[:])
	return err
}

func ReadUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

func WriteUint32(w io.Writer, value uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], value)
	_, err := w.Write(buf[:])
	return err
}

func ReadInt64(r io.Reader) (int64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(buf[:])), nil
}

func WriteInt64(w io.Writer, value int64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(value))
	_, err := w.Write(buf[:])
	return err
}

func ReadUint64(r io.Reader) (uint64, error) {
	v, err := ReadInt64(r)
	return uint64(v), err
}

func WriteUint64(w io.Writer, value uint64) error {
	return WriteInt64(w, int64(value))
}

func ReadFloat(r io.Reader) (float32, error) {
	bits, err := ReadUint32(r)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

func WriteFloat(w io.Writer, value float32) error {
	return WriteUint32(w, math.Float32bits(value))
}

func ReadDouble(r io.Reader) (float64, error) {
	bits, err := ReadUint64(r)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

func WriteDouble(w io.Writer, value float64) error {
	return WriteUint64(w, math.Float64bits(value))
}

// Vec3 is a world-space position on the wire: x/y horizontal, z up.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

func ReadVec3(r io.Reader) (Vec3, error) {
	var v Vec3
	var err error
	if v.X, err = ReadDouble(r); err != nil {
		return Vec3{}, err
	}
	if v.Y, err = ReadDouble(r); err != nil {
		return Vec3{}, err
	}
	if v.Z, err = ReadDouble(r); err != nil {
		return Vec3{}, err
	}
	return v, nil
}

func WriteVec3(w io.Writer, v Vec3) error {
	if err := WriteDouble(w, v.X); err != nil {
		return err
	}
	if err := WriteDouble(w, v.Y); err != nil {
		return err
	}
	return WriteDouble(w, v.Z)
}
