package client

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Versifine/veloterm/internal/comp"
	"github.com/Versifine/veloterm/internal/protocol"
	"github.com/Versifine/veloterm/internal/terrain"
)

// Tick applies every packet received since the previous call, forwards this
// frame's movement and returns what happened. dt is the real duration of
// the previous frame; it drives keepalive, the server timeout and invite
// expiry.
func (c *Client) Tick(inputs comp.ControllerInputs, dt time.Duration) ([]Event, error) {
	if c.readErr != nil {
		return nil, c.readErr
	}
	var events []Event
drain:
	for {
		select {
		case in := <-c.incoming:
			if in.err != nil {
				c.readErr = c.readFailure(in.err)
				return events, c.readErr
			}
			c.sinceRecv = 0
			var err error
			if events, err = c.handlePacket(in.packet, events); err != nil {
				return events, err
			}
		default:
			break drain
		}
	}

	if c.disconnected {
		return events, nil
	}
	// Idle inputs are sent once; the server keeps the last direction.
	if in := inputs.Normalized(); c.presence != nil && !(in.IsZero() && c.idleSent) {
		if err := c.write(protocol.CreateControllerInputsPacket(in.MoveX, in.MoveY)); err != nil {
			return events, fmt.Errorf("send inputs: %w", err)
		}
		c.idleSent = in.IsZero()
	}

	if c.reading {
		c.sinceRecv += dt
		if c.sinceRecv > ServerTimeout {
			c.readErr = fmt.Errorf("%w: nothing received for %s", ErrServerTimeout, c.sinceRecv)
			return events, c.readErr
		}
		c.sinceKeepAlive += dt
		if c.sinceKeepAlive >= KeepAliveInterval {
			c.sinceKeepAlive = 0
			c.keepAliveID++
			if err := c.write(protocol.CreateKeepAlivePacket(c.keepAliveID, protocol.C2SKeepAlive)); err != nil {
				return events, fmt.Errorf("send keepalive: %w", err)
			}
		}
	}

	c.expireInvite(dt)
	c.pruneTerrain()
	return events, nil
}

func (c *Client) readFailure(err error) error {
	if c.disconnected {
		return fmt.Errorf("%w: %s", ErrServerDisconnected, c.disconnectReason)
	}
	return fmt.Errorf("read packet: %w", err)
}

func (c *Client) handlePacket(packet *protocol.Packet, events []Event) ([]Event, error) {
	r := packet.Reader()
	switch packet.ID {
	case protocol.S2CCharacterList:
		list, err := protocol.ParseCharacterList(r)
		if err != nil {
			return events, fmt.Errorf("parse character list: %w", err)
		}
		c.characters = CharacterList{Characters: list.Characters}
		slog.Debug("Character list received", "count", len(list.Characters))

	case protocol.S2CCharacterActive:
		active, err := protocol.ParseCharacterActive(r)
		if err != nil {
			return events, fmt.Errorf("parse character active: %w", err)
		}
		c.spawnPlayer(active)

	case protocol.S2CPlayerList:
		list, err := protocol.ParsePlayerList(r)
		if err != nil {
			return events, fmt.Errorf("parse player list: %w", err)
		}
		c.players = list.Players

	case protocol.S2CEntitySync:
		es, err := protocol.ParseEntitySync(r)
		if err != nil {
			return events, fmt.Errorf("parse entity sync: %w", err)
		}
		c.syncEntity(es)

	case protocol.S2CEntityPosition:
		pos, err := protocol.ParseEntityPosition(r)
		if err != nil {
			return events, fmt.Errorf("parse entity position: %w", err)
		}
		c.moveEntity(pos.UID, pos.Position)

	case protocol.S2CEntityRemove:
		uids, err := protocol.ParseEntityRemove(r)
		if err != nil {
			return events, fmt.Errorf("parse entity remove: %w", err)
		}
		for _, uid := range uids {
			c.markRemoved(uid)
		}

	case protocol.S2CEntityStats:
		stats, err := protocol.ParseEntityStats(r)
		if err != nil {
			return events, fmt.Errorf("parse entity stats: %w", err)
		}
		c.applyStats(stats)

	case protocol.S2CTerrainChunk:
		chunk, err := protocol.ParseTerrainChunk(r)
		if err != nil {
			return events, fmt.Errorf("parse terrain chunk: %w", err)
		}
		pos, ch, err := terrain.ChunkFromWire(chunk)
		if err != nil {
			return events, err
		}
		c.terrain.InsertChunk(pos, ch)

	case protocol.S2CBlockUpdate:
		u, err := protocol.ParseBlockUpdate(r)
		if err != nil {
			return events, fmt.Errorf("parse block update: %w", err)
		}
		if err := c.terrain.SetBlock(u.X, u.Y, u.Z, terrain.BlockFromRaw(u.Block)); err != nil {
			slog.Debug("Dropped block update", "x", u.X, "y", u.Y, "z", u.Z, "error", err)
		}

	case protocol.S2CChatMessage:
		chat, err := protocol.ParseServerChat(r)
		if err != nil {
			return events, fmt.Errorf("parse chat: %w", err)
		}
		events = append(events, ChatEvent{Msg: chatFromWire(chat)})

	case protocol.S2CInvite:
		inv, err := protocol.ParseInvite(r)
		if err != nil {
			return events, fmt.Errorf("parse invite: %w", err)
		}
		c.invite = &Invite{
			Inviter:   inv.InviterUID,
			Kind:      InviteKind(inv.Kind),
			Remaining: time.Duration(inv.TimeoutMs) * time.Millisecond,
		}
		slog.Info("Invite received", "inviter", inv.InviterUID, "kind", c.invite.Kind)

	case protocol.S2CInviteComplete:
		ic, err := protocol.ParseInviteComplete(r)
		if err != nil {
			return events, fmt.Errorf("parse invite complete: %w", err)
		}
		events = append(events, InviteCompleteEvent{
			Target: ic.TargetUID,
			Answer: InviteAnswer(ic.Answer),
			Kind:   InviteKind(ic.Kind),
		})

	case protocol.S2CInventoryUpdate:
		slots, err := protocol.ParseInventoryUpdate(r)
		if err != nil {
			return events, fmt.Errorf("parse inventory: %w", err)
		}
		if c.setInventory(slots) {
			events = append(events, InventoryUpdatedEvent{})
		}

	case protocol.S2CNotification:
		text, err := protocol.ParseNotification(r)
		if err != nil {
			return events, fmt.Errorf("parse notification: %w", err)
		}
		events = append(events, NotificationEvent{Text: text})

	case protocol.S2CKeepAlive:
		ka, err := protocol.ParseKeepAlive(r)
		if err != nil {
			return events, fmt.Errorf("parse keepalive: %w", err)
		}
		if err := c.write(protocol.CreateKeepAlivePacket(ka.KeepAliveID, protocol.C2SKeepAlive)); err != nil {
			return events, fmt.Errorf("answer keepalive: %w", err)
		}

	case protocol.S2CDisconnect:
		reason, _ := protocol.ParseDisconnect(r)
		c.disconnected = true
		c.disconnectReason = reason
		slog.Warn("Server closed the session", "reason", reason)
		events = append(events, DisconnectEvent{Reason: reason})

	default:
		slog.Debug("Unhandled packet", "packet", protocol.PacketName(packet.ID), "state", c.state.Get())
	}
	return events, nil
}

func chatFromWire(chat *protocol.ServerChat) comp.ChatMsg {
	t := comp.ChatType(chat.Type)
	if t >= comp.ChatTypeCount {
		t = comp.ChatMeta
	}
	return comp.ChatMsg{Type: t, Sender: chat.Sender, Group: chat.Group, Message: chat.Message}
}

func (c *Client) expireInvite(dt time.Duration) {
	if c.invite == nil {
		return
	}
	c.invite.Remaining -= dt
	if c.invite.Remaining <= 0 {
		slog.Info("Invite expired", "inviter", c.invite.Inviter)
		c.invite = nil
	}
}

// pruneTerrain drops chunks the server no longer streams to us.
func (c *Client) pruneTerrain() {
	if c.viewDistance == 0 {
		return
	}
	pos, ok := c.PlayerPos()
	if !ok {
		return
	}
	x, y, _ := pos.Floor()
	if removed := c.terrain.RetainWithin(terrain.ChunkPosOf(x, y), int32(c.viewDistance)+1); removed > 0 {
		slog.Debug("Pruned terrain", "chunks", removed)
	}
}
