package protocol

import (
	"bytes"
	"io"
)

type Hello struct {
	ProtocolVersion int32
	ClientName      string
}

func CreateHelloPacket(protocolVersion int32, clientName string) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteVarint(buf, protocolVersion)
	_ = WriteString(buf, clientName)
	return &Packet{
		ID:      C2SHello,
		Payload: buf.Bytes(),
	}
}

func ParseHello(r io.Reader) (*Hello, error) {
	var hello Hello
	version, err := ReadVarint(r)
	if err != nil {
		return nil, err
	}
	hello.ProtocolVersion = version
	name, err := ReadString(r)
	if err != nil {
		return nil, err
	}
	hello.ClientName = name
	return &hello, nil
}

// ServerInfo describes the server before registration. An empty
// AuthProvider means the server accepts plain username registration.
type ServerInfo struct {
	ProtocolVersion int32
	Name            string
	Description     string
	GitHash         string
	AuthProvider    string
}

func CreateServerInfoPacket(info ServerInfo) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteVarint(buf, info.ProtocolVersion)
	_ = WriteString(buf, info.Name)
	_ = WriteString(buf, info.Description)
	_ = WriteString(buf, info.GitHash)
	_ = WriteString(buf, info.AuthProvider)
	return &Packet{
		ID:      S2CServerInfo,
		Payload: buf.Bytes(),
	}
}

func ParseServerInfo(r io.Reader) (*ServerInfo, error) {
	var info ServerInfo
	var err error
	if info.ProtocolVersion, err = ReadVarint(r); err != nil {
		return nil, err
	}
	if info.Name, err = ReadString(r); err != nil {
		return nil, err
	}
	if info.Description, err = ReadString(r); err != nil {
		return nil, err
	}
	if info.GitHash, err = ReadString(r); err != nil {
		return nil, err
	}
	if info.AuthProvider, err = ReadString(r); err != nil {
		return nil, err
	}
	return &info, nil
}

const maxPlayerList = 4096

type PlayerList struct {
	Players []string
}

func CreatePlayerListPacket(players []string) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteVarint(buf, int32(len(players)))
	for _, p := range players {
		_ = WriteString(buf, p)
	}
	return &Packet{
		ID:      S2CPlayerList,
		Payload: buf.Bytes(),
	}
}

func ParsePlayerList(r io.Reader) (*PlayerList, error) {
	count, err := ReadVarint(r)
	if err != nil {
		return nil, err
	}
	if count < 0 || count > maxPlayerList {
		return nil, ErrInvalidPacket
	}
	list := &PlayerList{Players: make([]string, 0, count)}
	for i := int32(0); i < count; i++ {
		name, err := ReadString(r)
		if err != nil {
			return nil, err
		}
		list.Players = append(list.Players, name)
	}
	return list, nil
}

func CreateSetCompressionPacket(threshold int32) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteVarint(buf, threshold)
	return &Packet{
		ID:      S2CSetCompression,
		Payload: buf.Bytes(),
	}
}

func ParseSetCompression(r io.Reader) (int32, error) {
	return ReadVarint(r)
}
