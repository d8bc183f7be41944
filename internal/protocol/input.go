package protocol

import (
	"bytes"
	"io"
)

// Control actions carried by C2SControlAction.
const (
	ActionJump byte = iota
	ActionPrimary
	ActionSecondary
	ActionToggleGlide
	ActionRespawn
)

type ControllerInputs struct {
	MoveX float32
	MoveY float32
}

func CreateControllerInputsPacket(moveX, moveY float32) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteFloat(buf, moveX)
	_ = WriteFloat(buf, moveY)
	return &Packet{
		ID:      C2SControllerInputs,
		Payload: buf.Bytes(),
	}
}

func ParseControllerInputs(r io.Reader) (*ControllerInputs, error) {
	var in ControllerInputs
	var err error
	if in.MoveX, err = ReadFloat(r); err != nil {
		return nil, err
	}
	if in.MoveY, err = ReadFloat(r); err != nil {
		return nil, err
	}
	return &in, nil
}

type ControlAction struct {
	Action  byte
	Pressed bool
}

func CreateControlActionPacket(action byte, pressed bool) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteByte(buf, action)
	_ = WriteBool(buf, pressed)
	return &Packet{
		ID:      C2SControlAction,
		Payload: buf.Bytes(),
	}
}

func ParseControlAction(r io.Reader) (*ControlAction, error) {
	var ca ControlAction
	var err error
	if ca.Action, err = ReadByte(r); err != nil {
		return nil, err
	}
	if ca.Pressed, err = ReadBool(r); err != nil {
		return nil, err
	}
	return &ca, nil
}

type KeepAlive struct {
	KeepAliveID int64
}

func CreateKeepAlivePacket(keepAliveID int64, packetID int32) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteInt64(buf, keepAliveID)
	return &Packet{
		ID:      packetID,
		Payload: buf.Bytes(),
	}
}

func ParseKeepAlive(r io.Reader) (*KeepAlive, error) {
	keepAliveID, err := ReadInt64(r)
	if err != nil {
		return nil, err
	}
	return &KeepAlive{
		KeepAliveID: keepAliveID,
	}, nil
}
