package protocol

import (
	"bytes"
	"io"
)

// Inventory actions carried by C2SInventoryAction.
const (
	InventorySwap byte = iota
	InventoryUse
)

const maxInventorySlots = 512

type InventoryAction struct {
	Kind  byte
	SlotA int32
	SlotB int32
}

func CreateInventoryActionPacket(kind byte, a, b int32) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteByte(buf, kind)
	_ = WriteVarint(buf, a)
	_ = WriteVarint(buf, b)
	return &Packet{
		ID:      C2SInventoryAction,
		Payload: buf.Bytes(),
	}
}

func ParseInventoryAction(r io.Reader) (*InventoryAction, error) {
	var act InventoryAction
	var err error
	if act.Kind, err = ReadByte(r); err != nil {
		return nil, err
	}
	if act.SlotA, err = ReadVarint(r); err != nil {
		return nil, err
	}
	if act.SlotB, err = ReadVarint(r); err != nil {
		return nil, err
	}
	return &act, nil
}

// ItemStack is one inventory slot; an empty Name is an empty slot.
type ItemStack struct {
	Name   string
	Amount uint32
}

func CreateInventoryUpdatePacket(slots []ItemStack) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteVarint(buf, int32(len(slots)))
	for _, s := range slots {
		_ = WriteString(buf, s.Name)
		_ = WriteVarint(buf, int32(s.Amount))
	}
	return &Packet{
		ID:      S2CInventoryUpdate,
		Payload: buf.Bytes(),
	}
}

func ParseInventoryUpdate(r io.Reader) ([]ItemStack, error) {
	count, err := ReadVarint(r)
	if err != nil {
		return nil, err
	}
	if count < 0 || count > maxInventorySlots {
		return nil, ErrInvalidPacket
	}
	slots := make([]ItemStack, 0, count)
	for i := int32(0); i < count; i++ {
		name, err := ReadString(r)
		if err != nil {
			return nil, err
		}
		amount, err := ReadVarint(r)
		if err != nil {
			return nil, err
		}
		slots = append(slots, ItemStack{Name: name, Amount: uint32(amount)})
	}
	return slots, nil
}
