package protocol

import (
	"bytes"
	"io"
)

type Register struct {
	Username string
	Password string
}

func CreateRegisterPacket(username, password string) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteString(buf, username)
	_ = WriteString(buf, password)
	return &Packet{
		ID:      C2SRegister,
		Payload: buf.Bytes(),
	}
}

func ParseRegister(r io.Reader) (*Register, error) {
	var reg Register
	var err error
	if reg.Username, err = ReadString(r); err != nil {
		return nil, err
	}
	if reg.Password, err = ReadString(r); err != nil {
		return nil, err
	}
	return &reg, nil
}

type RegisterResult struct {
	OK     bool
	Reason string
}

func CreateRegisterResultPacket(ok bool, reason string) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteBool(buf, ok)
	_ = WriteString(buf, reason)
	return &Packet{
		ID:      S2CRegisterResult,
		Payload: buf.Bytes(),
	}
}

func ParseRegisterResult(r io.Reader) (*RegisterResult, error) {
	var res RegisterResult
	var err error
	if res.OK, err = ReadBool(r); err != nil {
		return nil, err
	}
	if res.Reason, err = ReadString(r); err != nil {
		return nil, err
	}
	return &res, nil
}
