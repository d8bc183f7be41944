package protocol

import (
	"bytes"
	"io"
)

// Invite kinds.
const (
	InviteGroup byte = iota
	InviteTrade
)

// Invite answers.
const (
	InviteAccepted byte = iota
	InviteDeclined
	InviteTimedOut
)

type Invite struct {
	InviterUID uint64
	Kind       byte
	TimeoutMs  int32
}

func CreateInvitePacket(inv Invite) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteUint64(buf, inv.InviterUID)
	_ = WriteByte(buf, inv.Kind)
	_ = WriteVarint(buf, inv.TimeoutMs)
	return &Packet{
		ID:      S2CInvite,
		Payload: buf.Bytes(),
	}
}

func ParseInvite(r io.Reader) (*Invite, error) {
	var inv Invite
	var err error
	if inv.InviterUID, err = ReadUint64(r); err != nil {
		return nil, err
	}
	if inv.Kind, err = ReadByte(r); err != nil {
		return nil, err
	}
	if inv.TimeoutMs, err = ReadVarint(r); err != nil {
		return nil, err
	}
	return &inv, nil
}

type InviteComplete struct {
	TargetUID uint64
	Answer    byte
	Kind      byte
}

func CreateInviteCompletePacket(ic InviteComplete) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteUint64(buf, ic.TargetUID)
	_ = WriteByte(buf, ic.Answer)
	_ = WriteByte(buf, ic.Kind)
	return &Packet{
		ID:      S2CInviteComplete,
		Payload: buf.Bytes(),
	}
}

func ParseInviteComplete(r io.Reader) (*InviteComplete, error) {
	var ic InviteComplete
	var err error
	if ic.TargetUID, err = ReadUint64(r); err != nil {
		return nil, err
	}
	if ic.Answer, err = ReadByte(r); err != nil {
		return nil, err
	}
	if ic.Kind, err = ReadByte(r); err != nil {
		return nil, err
	}
	return &ic, nil
}

func CreateInviteResponsePacket(accept bool) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteBool(buf, accept)
	return &Packet{
		ID:      C2SInviteResponse,
		Payload: buf.Bytes(),
	}
}

func ParseInviteResponse(r io.Reader) (bool, error) {
	return ReadBool(r)
}
