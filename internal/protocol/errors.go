package protocol

import "errors"

var (
	ErrVarIntTooLong     = errors.New("varint is too long")
	ErrVarLongTooLong    = errors.New("varlong is too long")
	ErrStringTooLong     = errors.New("string exceeds maximum length")
	ErrPacketTooLarge    = errors.New("packet size exceeds maximum allowed")
	ErrInvalidPacket     = errors.New("invalid packet structure")
	ErrUnexpectedPacket  = errors.New("unexpected packet for connection state")
	ErrProtocolMismatch  = errors.New("protocol version mismatch")
	ErrInvalidChunkShape = errors.New("invalid terrain chunk shape")
)
