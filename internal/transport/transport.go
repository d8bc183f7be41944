// Package transport carries protocol frames over a byte stream or a
// WebSocket. Both ends of the game connection use it.
package transport

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/Versifine/veloterm/internal/protocol"
	"github.com/gorilla/websocket"
)

var ErrUnexpectedMessage = errors.New("unexpected websocket message type")

// Conn is a framed, bidirectional packet connection. ReadPacket must only
// be called from one goroutine; WritePacket is safe for concurrent use.
type Conn interface {
	ReadPacket(threshold int) (*protocol.Packet, error)
	WritePacket(p *protocol.Packet, threshold int) error
	SetReadDeadline(t time.Time) error
	RemoteAddr() net.Addr
	Close() error
}

type streamConn struct {
	conn    net.Conn
	reader  *bufio.Reader
	writeMu sync.Mutex
}

// NewStream frames packets directly on a stream connection.
func NewStream(conn net.Conn) Conn {
	return &streamConn{conn: conn, reader: bufio.NewReader(conn)}
}

func (s *streamConn) ReadPacket(threshold int) (*protocol.Packet, error) {
	return protocol.ReadPacket(s.reader, threshold)
}

func (s *streamConn) WritePacket(p *protocol.Packet, threshold int) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return protocol.WritePacket(s.conn, p, threshold)
}

func (s *streamConn) SetReadDeadline(t time.Time) error { return s.conn.SetReadDeadline(t) }
func (s *streamConn) RemoteAddr() net.Addr              { return s.conn.RemoteAddr() }
func (s *streamConn) Close() error                      { return s.conn.Close() }

// wsConn sends each frame as one binary message.
type wsConn struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func NewWebSocket(conn *websocket.Conn) Conn {
	return &wsConn{conn: conn}
}

func (w *wsConn) ReadPacket(threshold int) (*protocol.Packet, error) {
	for {
		messageType, r, err := w.conn.NextReader()
		if err != nil {
			return nil, err
		}
		switch messageType {
		case websocket.BinaryMessage:
			return protocol.ReadPacket(r, threshold)
		case websocket.TextMessage:
			return nil, fmt.Errorf("%w: text", ErrUnexpectedMessage)
		}
	}
}

func (w *wsConn) WritePacket(p *protocol.Packet, threshold int) error {
	var buf bytes.Buffer
	if err := protocol.WritePacket(&buf, p, threshold); err != nil {
		return err
	}
	w.writeMu.Lock()
	defer w.writeMu.Unlock()
	return w.conn.WriteMessage(websocket.BinaryMessage, buf.Bytes())
}

func (w *wsConn) SetReadDeadline(t time.Time) error { return w.conn.SetReadDeadline(t) }
func (w *wsConn) RemoteAddr() net.Addr              { return w.conn.RemoteAddr() }

func (w *wsConn) Close() error {
	w.writeMu.Lock()
	_ = w.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	w.writeMu.Unlock()
	return w.conn.Close()
}
