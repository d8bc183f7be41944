// Package client is the game-client library: it owns the server
// connection, replicates entities into a donburi world and keeps the
// terrain around the player.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Versifine/veloterm/internal/protocol"
	"github.com/Versifine/veloterm/internal/terrain"
	"github.com/Versifine/veloterm/internal/transport"
	"github.com/yohamta/donburi"
)

const (
	clientName = "veloterm"

	KeepAliveInterval = 5 * time.Second
	ServerTimeout     = 40 * time.Second

	incomingBuffer = 1024
)

type ServerInfo = protocol.ServerInfo

type CharacterItem = protocol.CharacterItem

// CharacterList is the last list received from the server. Loading is set
// between LoadCharacterList and the server's answer.
type CharacterList struct {
	Loading    bool
	Characters []CharacterItem
}

// Presence is set once the server confirms the selected character.
type Presence struct {
	CharacterID int64
	EntityUID   uint64
}

type incoming struct {
	packet *protocol.Packet
	err    error
}

// Client is not safe for concurrent use: every method except Close must be
// called from the goroutine that calls Tick.
type Client struct {
	conn  transport.Conn
	state *protocol.ConnState
	info  ServerInfo

	players []string

	incoming  chan incoming
	closing   chan struct{}
	readDone  chan struct{}
	reading   bool
	readErr   error
	closeOnce sync.Once

	world    donburi.World
	terrain  *terrain.Store
	entities map[uint64]donburi.Entity
	player   donburi.Entity

	characters       CharacterList
	pendingCharacter int64
	presence         *Presence
	viewDistance     uint32
	idleSent         bool
	invite           *Invite

	sinceKeepAlive   time.Duration
	sinceRecv        time.Duration
	keepAliveID      int64
	disconnected     bool
	disconnectReason string
}

// New connects to the server and completes the handshake. The returned
// client is ready for Register.
func New(ctx context.Context, args ConnectionArgs) (*Client, error) {
	conn, err := dial(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", args.Hostname, err)
	}
	slog.Info("Connected to server", "address", args.Hostname, "transport", args.Kind)
	c, err := newClient(ctx, conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return c, nil
}

func newClient(ctx context.Context, conn transport.Conn) (*Client, error) {
	c := &Client{
		conn:     conn,
		state:    protocol.NewConnState(),
		incoming: make(chan incoming, incomingBuffer),
		closing:  make(chan struct{}),
		readDone: make(chan struct{}),
		world:    donburi.NewWorld(),
		terrain:  terrain.NewStore(),
		entities: make(map[uint64]donburi.Entity),
	}
	if err := c.withContext(ctx, c.handshake); err != nil {
		return nil, fmt.Errorf("handshake failed: %w", err)
	}
	return c, nil
}

// withContext runs fn, a blocking read sequence, and unblocks it when ctx
// ends by expiring the read deadline.
func (c *Client) withContext(ctx context.Context, fn func() error) error {
	stop := context.AfterFunc(ctx, func() {
		_ = c.conn.SetReadDeadline(time.Unix(1, 0))
	})
	err := fn()
	if !stop() {
		_ = c.conn.SetReadDeadline(time.Time{})
		if err != nil {
			return fmt.Errorf("%w: %w", ctx.Err(), err)
		}
	}
	return err
}

func (c *Client) handshake() error {
	slog.Info("Starting handshake", "state", c.state.Get())
	if err := c.write(protocol.CreateHelloPacket(protocol.CurrentProtocolVersion, clientName)); err != nil {
		return err
	}
	gotInfo := false
	for {
		packet, err := c.conn.ReadPacket(c.state.GetThreshold())
		if err != nil {
			return err
		}
		slog.Debug("Received packet in handshake", "packet", protocol.PacketName(packet.ID))
		switch packet.ID {
		case protocol.S2CSetCompression:
			threshold, err := protocol.ParseSetCompression(packet.Reader())
			if err != nil {
				return err
			}
			slog.Info("Setting compression", "threshold", threshold)
			c.state.SetThreshold(int(threshold))
		case protocol.S2CServerInfo:
			info, err := protocol.ParseServerInfo(packet.Reader())
			if err != nil {
				return err
			}
			if info.ProtocolVersion != protocol.CurrentProtocolVersion {
				return fmt.Errorf("%w: server speaks %d, client %d",
					protocol.ErrProtocolMismatch, info.ProtocolVersion, protocol.CurrentProtocolVersion)
			}
			c.info = *info
			gotInfo = true
		case protocol.S2CPlayerList:
			list, err := protocol.ParsePlayerList(packet.Reader())
			if err != nil {
				return err
			}
			c.players = list.Players
			if gotInfo {
				c.state.Set(protocol.Registering)
				return nil
			}
		case protocol.S2CDisconnect:
			reason, _ := protocol.ParseDisconnect(packet.Reader())
			return fmt.Errorf("%w: %s", ErrServerDisconnected, reason)
		default:
			return fmt.Errorf("%w: %s during handshake", protocol.ErrUnexpectedPacket, protocol.PacketName(packet.ID))
		}
	}
}

// Register logs in. trust is asked before credentials are sent to a server
// that delegates authentication to an external provider; a nil trust
// rejects every provider.
func (c *Client) Register(ctx context.Context, username, password string, trust func(provider string) bool) error {
	if st := c.state.Get(); st != protocol.Registering {
		return fmt.Errorf("%w: register in state %s", protocol.ErrUnexpectedPacket, st)
	}
	if provider := c.info.AuthProvider; provider != "" && (trust == nil || !trust(provider)) {
		return fmt.Errorf("%w: %s", ErrAuthNotTrusted, provider)
	}
	return c.withContext(ctx, func() error {
		if err := c.write(protocol.CreateRegisterPacket(username, password)); err != nil {
			return err
		}
		for {
			packet, err := c.conn.ReadPacket(c.state.GetThreshold())
			if err != nil {
				return err
			}
			switch packet.ID {
			case protocol.S2CRegisterResult:
				res, err := protocol.ParseRegisterResult(packet.Reader())
				if err != nil {
					return err
				}
				if !res.OK {
					return fmt.Errorf("%w: %s", ErrRegisterFailed, res.Reason)
				}
				c.state.SetUsername(username)
				c.state.Set(protocol.CharacterScreen)
				slog.Info("Registered", "username", username)
				c.startReader()
				return nil
			case protocol.S2CPlayerList:
				if list, err := protocol.ParsePlayerList(packet.Reader()); err == nil {
					c.players = list.Players
				}
			case protocol.S2CDisconnect:
				reason, _ := protocol.ParseDisconnect(packet.Reader())
				return fmt.Errorf("%w: %s", ErrServerDisconnected, reason)
			default:
				slog.Debug("Ignoring packet while registering", "packet", protocol.PacketName(packet.ID))
			}
		}
	})
}

func (c *Client) startReader() {
	c.reading = true
	go c.readLoop()
}

// readLoop decodes packets for Tick. Compression changes are applied here so
// the next frame is read with the new threshold.
func (c *Client) readLoop() {
	defer close(c.readDone)
	for {
		packet, err := c.conn.ReadPacket(c.state.GetThreshold())
		if err == nil && packet.ID == protocol.S2CSetCompression {
			var threshold int32
			if threshold, err = protocol.ParseSetCompression(packet.Reader()); err == nil {
				slog.Info("Setting compression", "threshold", threshold)
				c.state.SetThreshold(int(threshold))
				continue
			}
		}
		select {
		case c.incoming <- incoming{packet: packet, err: err}:
		case <-c.closing:
			return
		}
		if err != nil {
			return
		}
	}
}

func (c *Client) write(p *protocol.Packet) error {
	select {
	case <-c.closing:
		return ErrNotConnected
	default:
	}
	return c.conn.WritePacket(p, c.state.GetThreshold())
}

func (c *Client) ServerInfo() ServerInfo { return c.info }

// Players lists the players online as last reported by the server.
func (c *Client) Players() []string { return c.players }

func (c *Client) Username() string { return c.state.GetUsername() }

// Close tears down the connection. It is safe to call more than once.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closing)
		err = c.conn.Close()
		if c.reading {
			<-c.readDone
		}
		slog.Info("Client closed")
	})
	return err
}
