package protocol

import (
	"bytes"
	"io"
	"strings"
)

// Chat scopes carried by S2CChatMessage.
const (
	ChatWorld byte = iota
	ChatGroup
	ChatTell
	ChatSay
	ChatRegion
	ChatFaction
	ChatOnline
	ChatOffline
	ChatCommandInfo
	ChatCommandError
	ChatKill
	ChatNpc
	ChatMeta
)

const maxCommandArgs = 64

func CreateChatMessagePacket(msg string) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteString(buf, msg)
	return &Packet{
		ID:      C2SChatMessage,
		Payload: buf.Bytes(),
	}
}

func ParseChatMessage(r io.Reader) (string, error) {
	return ReadString(r)
}

type ChatCommand struct {
	Name string
	Args []string
}

func (c ChatCommand) String() string {
	if len(c.Args) == 0 {
		return "/" + c.Name
	}
	return "/" + c.Name + " " + strings.Join(c.Args, " ")
}

func CreateChatCommandPacket(name string, args []string) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteString(buf, name)
	_ = WriteVarint(buf, int32(len(args)))
	for _, a := range args {
		_ = WriteString(buf, a)
	}
	return &Packet{
		ID:      C2SChatCommand,
		Payload: buf.Bytes(),
	}
}

func ParseChatCommand(r io.Reader) (*ChatCommand, error) {
	var cmd ChatCommand
	name, err := ReadString(r)
	if err != nil {
		return nil, err
	}
	cmd.Name = name
	count, err := ReadVarint(r)
	if err != nil {
		return nil, err
	}
	if count < 0 || count > maxCommandArgs {
		return nil, ErrInvalidPacket
	}
	cmd.Args = make([]string, 0, count)
	for i := int32(0); i < count; i++ {
		arg, err := ReadString(r)
		if err != nil {
			return nil, err
		}
		cmd.Args = append(cmd.Args, arg)
	}
	return &cmd, nil
}

// ServerChat is a chat line delivered to the client. Sender is the uid of
// the speaking entity, zero for server messages.
type ServerChat struct {
	Type    byte
	Sender  uint64
	Group   string
	Message string
}

func CreateServerChatPacket(chat ServerChat) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteByte(buf, chat.Type)
	_ = WriteUint64(buf, chat.Sender)
	_ = WriteString(buf, chat.Group)
	_ = WriteString(buf, chat.Message)
	return &Packet{
		ID:      S2CChatMessage,
		Payload: buf.Bytes(),
	}
}

func ParseServerChat(r io.Reader) (*ServerChat, error) {
	var chat ServerChat
	var err error
	if chat.Type, err = ReadByte(r); err != nil {
		return nil, err
	}
	if chat.Sender, err = ReadUint64(r); err != nil {
		return nil, err
	}
	if chat.Group, err = ReadString(r); err != nil {
		return nil, err
	}
	if chat.Message, err = ReadString(r); err != nil {
		return nil, err
	}
	return &chat, nil
}

func CreateNotificationPacket(text string) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteString(buf, text)
	return &Packet{
		ID:      S2CNotification,
		Payload: buf.Bytes(),
	}
}

func ParseNotification(r io.Reader) (string, error) {
	return ReadString(r)
}

func CreateDisconnectPacket(reason string) *Packet {
	buf := new(bytes.Buffer)
	_ = WriteString(buf, reason)
	return &Packet{
		ID:      S2CDisconnect,
		Payload: buf.Bytes(),
	}
}

func ParseDisconnect(r io.Reader) (string, error) {
	return ReadString(r)
}
