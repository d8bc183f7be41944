package protocol

import (
	"bytes"
	"io"
)

const maxRemoveBatch = 4096

// EntitySync announces an entity or replaces its replicated components.
// BodyKind 0 means the entity has no body; Alias is set for players.
type EntitySync struct {
	UID      uint64
	Position Vec3
	BodyKind byte
	Species  byte
	Alias    string
}

func CreateEntitySyncPacket(e EntitySync) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteUint64(buf, e.UID)
	_ = WriteVec3(buf, e.Position)
	_ = WriteByte(buf, e.BodyKind)
	_ = WriteByte(buf, e.Species)
	_ = WriteString(buf, e.Alias)
	return &Packet{
		ID:      S2CEntitySync,
		Payload: buf.Bytes(),
	}
}

func ParseEntitySync(r io.Reader) (*EntitySync, error) {
	var e EntitySync
	var err error
	if e.UID, err = ReadUint64(r); err != nil {
		return nil, err
	}
	if e.Position, err = ReadVec3(r); err != nil {
		return nil, err
	}
	if e.BodyKind, err = ReadByte(r); err != nil {
		return nil, err
	}
	if e.Species, err = ReadByte(r); err != nil {
		return nil, err
	}
	if e.Alias, err = ReadString(r); err != nil {
		return nil, err
	}
	return &e, nil
}

type EntityPosition struct {
	UID      uint64
	Position Vec3
}

func CreateEntityPositionPacket(uid uint64, pos Vec3) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteUint64(buf, uid)
	_ = WriteVec3(buf, pos)
	return &Packet{
		ID:      S2CEntityPosition,
		Payload: buf.Bytes(),
	}
}

func ParseEntityPosition(r io.Reader) (*EntityPosition, error) {
	var e EntityPosition
	var err error
	if e.UID, err = ReadUint64(r); err != nil {
		return nil, err
	}
	if e.Position, err = ReadVec3(r); err != nil {
		return nil, err
	}
	return &e, nil
}

func CreateEntityRemovePacket(uids []uint64) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteVarint(buf, int32(len(uids)))
	for _, uid := range uids {
		_ = WriteUint64(buf, uid)
	}
	return &Packet{
		ID:      S2CEntityRemove,
		Payload: buf.Bytes(),
	}
}

func ParseEntityRemove(r io.Reader) ([]uint64, error) {
	count, err := ReadVarint(r)
	if err != nil {
		return nil, err
	}
	if count < 0 || count > maxRemoveBatch {
		return nil, ErrInvalidPacket
	}
	uids := make([]uint64, 0, count)
	for i := int32(0); i < count; i++ {
		uid, err := ReadUint64(r)
		if err != nil {
			return nil, err
		}
		uids = append(uids, uid)
	}
	return uids, nil
}

type EntityStats struct {
	UID           uint64
	HealthCurrent float32
	HealthMaximum float32
	EnergyCurrent float32
	EnergyMaximum float32
}

func CreateEntityStatsPacket(s EntityStats) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteUint64(buf, s.UID)
	_ = WriteFloat(buf, s.HealthCurrent)
	_ = WriteFloat(buf, s.HealthMaximum)
	_ = WriteFloat(buf, s.EnergyCurrent)
	_ = WriteFloat(buf, s.EnergyMaximum)
	return &Packet{
		ID:      S2CEntityStats,
		Payload: buf.Bytes(),
	}
}

func ParseEntityStats(r io.Reader) (*EntityStats, error) {
	var s EntityStats
	var err error
	if s.UID, err = ReadUint64(r); err != nil {
		return nil, err
	}
	if s.HealthCurrent, err = ReadFloat(r); err != nil {
		return nil, err
	}
	if s.HealthMaximum, err = ReadFloat(r); err != nil {
		return nil, err
	}
	if s.EnergyCurrent, err = ReadFloat(r); err != nil {
		return nil, err
	}
	if s.EnergyMaximum, err = ReadFloat(r); err != nil {
		return nil, err
	}
	return &s, nil
}
