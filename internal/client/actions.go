package client

import (
	"fmt"
	"log/slog"

	"github.com/Versifine/veloterm/internal/comp"
	"github.com/Versifine/veloterm/internal/protocol"
)

const (
	minViewDistance = 1
	maxViewDistance = 65
)

// LoadCharacterList asks the server for the account's characters. The
// answer arrives through Tick.
func (c *Client) LoadCharacterList() error {
	c.characters.Loading = true
	return c.write(protocol.CreateRequestCharacterListPacket())
}

func (c *Client) CharacterList() CharacterList { return c.characters }

// RequestCharacter selects a character; Presence is set once the server
// spawns it.
func (c *Client) RequestCharacter(id int64) error {
	c.pendingCharacter = id
	slog.Info("Requesting character", "id", id)
	return c.write(protocol.CreateSelectCharacterPacket(id))
}

func (c *Client) Presence() (Presence, bool) {
	if c.presence == nil {
		return Presence{}, false
	}
	return *c.presence, true
}

// SetViewDistance sets the terrain radius in chunks, clamped to [1, 65].
func (c *Client) SetViewDistance(distance uint32) error {
	distance = max(minViewDistance, min(distance, maxViewDistance))
	c.viewDistance = distance
	return c.write(protocol.CreateSetViewDistancePacket(distance))
}

func (c *Client) ViewDistance() uint32 { return c.viewDistance }

func (c *Client) requireGame() error {
	if c.presence == nil {
		return ErrNotInGame
	}
	return nil
}

var inputActions = [comp.InputKindCount]byte{
	comp.InputJump:      protocol.ActionJump,
	comp.InputPrimary:   protocol.ActionPrimary,
	comp.InputSecondary: protocol.ActionSecondary,
}

// HandleInput forwards a press or release of a held action.
func (c *Client) HandleInput(kind comp.InputKind, pressed bool) error {
	if err := c.requireGame(); err != nil {
		return err
	}
	if kind >= comp.InputKindCount {
		return fmt.Errorf("unknown input %v", kind)
	}
	return c.write(protocol.CreateControlActionPacket(inputActions[kind], pressed))
}

func (c *Client) ToggleGlide() error {
	if err := c.requireGame(); err != nil {
		return err
	}
	return c.write(protocol.CreateControlActionPacket(protocol.ActionToggleGlide, true))
}

func (c *Client) Respawn() error {
	if err := c.requireGame(); err != nil {
		return err
	}
	return c.write(protocol.CreateControlActionPacket(protocol.ActionRespawn, true))
}

// Invite returns the pending invite, if any.
func (c *Client) Invite() (Invite, bool) {
	if c.invite == nil {
		return Invite{}, false
	}
	return *c.invite, true
}

func (c *Client) AcceptInvite() error  { return c.answerInvite(true) }
func (c *Client) DeclineInvite() error { return c.answerInvite(false) }

func (c *Client) answerInvite(accept bool) error {
	if c.invite == nil {
		return ErrNoInvite
	}
	slog.Info("Answering invite", "inviter", c.invite.Inviter, "accept", accept)
	c.invite = nil
	return c.write(protocol.CreateInviteResponsePacket(accept))
}

func (c *Client) SendChat(msg string) error {
	if err := c.requireGame(); err != nil {
		return err
	}
	return c.write(protocol.CreateChatMessagePacket(msg))
}

// SendCommand sends a server command; name excludes the leading slash.
func (c *Client) SendCommand(name string, args []string) error {
	if err := c.requireGame(); err != nil {
		return err
	}
	return c.write(protocol.CreateChatCommandPacket(name, args))
}

func (c *Client) SwapSlots(a, b comp.Slot) error {
	if err := c.requireGame(); err != nil {
		return err
	}
	return c.write(protocol.CreateInventoryActionPacket(protocol.InventorySwap, int32(a), int32(b)))
}

func (c *Client) UseSlot(s comp.Slot) error {
	if err := c.requireGame(); err != nil {
		return err
	}
	return c.write(protocol.CreateInventoryActionPacket(protocol.InventoryUse, int32(s), -1))
}
