package protocol

import (
	"bytes"
	"io"
)

const maxCharacters = 256

type CharacterItem struct {
	ID    int64
	Alias string
	Level int32
}

type CharacterList struct {
	Characters []CharacterItem
}

func CreateRequestCharacterListPacket() *Packet {
	return &Packet{
		ID:      C2SRequestCharacterList,
		Payload: []byte{},
	}
}

func CreateCharacterListPacket(items []CharacterItem) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteVarint(buf, int32(len(items)))
	for _, item := range items {
		_ = WriteVarLong(buf, item.ID)
		_ = WriteString(buf, item.Alias)
		_ = WriteVarint(buf, item.Level)
	}
	return &Packet{
		ID:      S2CCharacterList,
		Payload: buf.Bytes(),
	}
}

func ParseCharacterList(r io.Reader) (*CharacterList, error) {
	count, err := ReadVarint(r)
	if err != nil {
		return nil, err
	}
	if count < 0 || count > maxCharacters {
		return nil, ErrInvalidPacket
	}
	list := &CharacterList{Characters: make([]CharacterItem, 0, count)}
	for i := int32(0); i < count; i++ {
		var item CharacterItem
		if item.ID, err = ReadVarLong(r); err != nil {
			return nil, err
		}
		if item.Alias, err = ReadString(r); err != nil {
			return nil, err
		}
		if item.Level, err = ReadVarint(r); err != nil {
			return nil, err
		}
		list.Characters = append(list.Characters, item)
	}
	return list, nil
}

func CreateSelectCharacterPacket(id int64) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteVarLong(buf, id)
	return &Packet{
		ID:      C2SSelectCharacter,
		Payload: buf.Bytes(),
	}
}

func ParseSelectCharacter(r io.Reader) (int64, error) {
	return ReadVarLong(r)
}

// CharacterActive confirms the selected character is in game and names the
// uid of the entity the client controls.
type CharacterActive struct {
	EntityUID uint64
	Position  Vec3
}

func CreateCharacterActivePacket(uid uint64, pos Vec3) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteUint64(buf, uid)
	_ = WriteVec3(buf, pos)
	return &Packet{
		ID:      S2CCharacterActive,
		Payload: buf.Bytes(),
	}
}

func ParseCharacterActive(r io.Reader) (*CharacterActive, error) {
	var ca CharacterActive
	var err error
	if ca.EntityUID, err = ReadUint64(r); err != nil {
		return nil, err
	}
	if ca.Position, err = ReadVec3(r); err != nil {
		return nil, err
	}
	return &ca, nil
}

func CreateSetViewDistancePacket(distance uint32) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteVarint(buf, int32(distance))
	return &Packet{
		ID:      C2SSetViewDistance,
		Payload: buf.Bytes(),
	}
}

func ParseSetViewDistance(r io.Reader) (uint32, error) {
	v, err := ReadVarint(r)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, ErrInvalidPacket
	}
	return uint32(v), nil
}
