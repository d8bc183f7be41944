// Package frontend draws the world around the player as an 80x50 grid of
// terminal cells and turns key presses into client actions.
package frontend

import (
	"time"

	"github.com/Versifine/veloterm/internal/client"
	"github.com/Versifine/veloterm/internal/clock"
	"github.com/Versifine/veloterm/internal/comp"
	"github.com/Versifine/veloterm/internal/terrain"
	"github.com/yohamta/donburi"
)

const (
	ScreenWidth  = 80
	ScreenHeight = 50

	chatLines   = 10
	chatColumns = 48
	zoomStep    = 1.5
)

// Game is the part of the client the loop drives. *client.Client
// implements it.
type Game interface {
	Tick(inputs comp.ControllerInputs, dt time.Duration) ([]client.Event, error)
	Cleanup()

	World() donburi.World
	Terrain() *terrain.Store
	EntityByUID(uid uint64) (donburi.Entity, bool)
	PlayerPos() (comp.PosData, bool)
	CurrentHealth() (comp.StatData, bool)
	CurrentEnergy() (comp.StatData, bool)
	Inventory() []comp.ItemStack
	Invite() (client.Invite, bool)

	HandleInput(kind comp.InputKind, pressed bool) error
	ToggleGlide() error
	Respawn() error
	AcceptInvite() error
	DeclineInvite() error
	SendChat(msg string) error
	SendCommand(name string, args []string) error
	SwapSlots(a, b comp.Slot) error
	UseSlot(s comp.Slot) error
}

// Resources are the long-lived handles produced by session bootstrap.
type Resources struct {
	Client Game
	Clock  *clock.Clock
}

// State is the UI state owned by the frontend. Action flags follow a
// toggle model: the terminal reports no key releases, so a second press of
// the same key is the release.
type State struct {
	Zoom float64

	ChatLog          []string
	ChatInput        string
	ChatInputEnabled bool

	InvToggle bool

	JumpActive      bool
	PrimaryActive   bool
	SecondaryActive bool
	GlideActive     bool

	// InvPos is the 1-based inventory row under the cursor; Arrowed is the
	// slot it points at. Arrowed1 and Arrowed2 are the swap source and
	// destination picked with the Right key, ArrowedPos counts those
	// presses.
	InvPos     int
	Arrowed    comp.Slot
	Arrowed1   *comp.Slot
	Arrowed2   *comp.Slot
	UseSlot    *comp.Slot
	ArrowedPos int
	Swap       bool
	UseItem    bool
}

func NewState() *State {
	return &State{
		Zoom:   1.0,
		InvPos: 1,
	}
}

// RecentChat returns up to n chat lines, most recent first.
func (s *State) RecentChat(n int) []string {
	out := make([]string, 0, min(n, len(s.ChatLog)))
	for i := len(s.ChatLog) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.ChatLog[i])
	}
	return out
}

func (s *State) appendChat(msg comp.ChatMsg) bool {
	switch msg.Type {
	case comp.ChatWorld:
		s.ChatLog = append(s.ChatLog, msg.Message)
	case comp.ChatGroup:
		s.ChatLog = append(s.ChatLog, "[Group] "+msg.Message)
	default:
		return false
	}
	return true
}
