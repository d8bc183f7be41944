package client

import (
	"time"

	"github.com/Versifine/veloterm/internal/comp"
	"github.com/Versifine/veloterm/internal/protocol"
)

// Event is something Tick observed that the caller may want to react to.
type Event interface {
	isEvent()
}

type ChatEvent struct {
	Msg comp.ChatMsg
}

type DisconnectEvent struct {
	Reason string
}

type InviteCompleteEvent struct {
	Target uint64
	Answer InviteAnswer
	Kind   InviteKind
}

type InventoryUpdatedEvent struct{}

type NotificationEvent struct {
	Text string
}

func (ChatEvent) isEvent()             {}
func (DisconnectEvent) isEvent()       {}
func (InviteCompleteEvent) isEvent()   {}
func (InventoryUpdatedEvent) isEvent() {}
func (NotificationEvent) isEvent()     {}

type InviteKind byte

const (
	InviteGroup InviteKind = InviteKind(protocol.InviteGroup)
	InviteTrade InviteKind = InviteKind(protocol.InviteTrade)
)

func (k InviteKind) String() string {
	switch k {
	case InviteGroup:
		return "group"
	case InviteTrade:
		return "trade"
	default:
		return "unknown"
	}
}

type InviteAnswer byte

const (
	InviteAccepted InviteAnswer = InviteAnswer(protocol.InviteAccepted)
	InviteDeclined InviteAnswer = InviteAnswer(protocol.InviteDeclined)
	InviteTimedOut InviteAnswer = InviteAnswer(protocol.InviteTimedOut)
)

func (a InviteAnswer) String() string {
	switch a {
	case InviteAccepted:
		return "accepted"
	case InviteDeclined:
		return "declined"
	case InviteTimedOut:
		return "timed out"
	default:
		return "unknown"
	}
}

// Invite is a pending invitation. Remaining counts down with Tick and the
// invite is dropped when it reaches zero.
type Invite struct {
	Inviter   uint64
	Kind      InviteKind
	Remaining time.Duration
}
