package frontend

import (
	"log/slog"
	"strings"
	"unicode"

	"github.com/Versifine/veloterm/internal/comp"
	"github.com/gdamore/tcell/v2"
)

// moveKeys maps movement keys to a direction; numpad digits arrive as
// plain runes.
var moveKeys = map[rune][2]float32{
	'w': {0, 1},
	'a': {-1, 0},
	's': {0, -1},
	'd': {1, 0},
	'8': {0, 1},
	'4': {-1, 0},
	'2': {0, -1},
	'5': {0, -1},
	'6': {1, 0},
	'7': {-1, 1},
	'9': {1, 1},
	'1': {-1, -1},
	'3': {1, -1},
}

// input applies one key event to the UI state and forwards actions to the
// game. Movement accumulates into inputs for the current tick only.
type input struct {
	st     *State
	game   Game
	inputs comp.ControllerInputs
}

// handleKey returns true when the key asks to quit.
func (in *input) handleKey(ev *tcell.EventKey) bool {
	if in.st.ChatInputEnabled {
		in.chatKey(ev)
		return false
	}
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyEnter:
		in.st.ChatInputEnabled = true
	case tcell.KeyUp:
		in.moveCursor(-1)
	case tcell.KeyDown:
		in.moveCursor(1)
	case tcell.KeyRight:
		in.advanceArrow()
	case tcell.KeyLeft:
		slot := in.st.Arrowed
		in.st.UseSlot = &slot
		in.st.UseItem = true
	case tcell.KeyRune:
		in.runeKey(unicode.ToLower(ev.Rune()))
	}
	return false
}

func (in *input) runeKey(r rune) {
	if dir, ok := moveKeys[r]; ok {
		in.inputs.MoveX += dir[0]
		in.inputs.MoveY += dir[1]
		return
	}
	st := in.st
	switch r {
	case ' ':
		in.toggle(&st.JumpActive, comp.InputJump)
	case 'x':
		in.toggle(&st.PrimaryActive, comp.InputPrimary)
	case 'z':
		in.toggle(&st.SecondaryActive, comp.InputSecondary)
	case 'g':
		in.report("glide", in.game.ToggleGlide())
		st.GlideActive = !st.GlideActive
	case 'r':
		in.report("respawn", in.game.Respawn())
	case 'u':
		in.report("accept invite", in.game.AcceptInvite())
	case 'i':
		in.report("decline invite", in.game.DeclineInvite())
	case 't':
		st.InvToggle = !st.InvToggle
	case '+', '=':
		st.Zoom /= zoomStep
	case '-':
		st.Zoom *= zoomStep
	}
}

// toggle presses kind when the flag is clear and releases it otherwise.
func (in *input) toggle(flag *bool, kind comp.InputKind) {
	in.report(kind.String(), in.game.HandleInput(kind, !*flag))
	*flag = !*flag
}

func (in *input) chatKey(ev *tcell.EventKey) {
	st := in.st
	switch ev.Key() {
	case tcell.KeyEnter:
		in.submitChat()
	case tcell.KeyEscape:
		st.ChatInput = ""
		st.ChatInputEnabled = false
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if r := []rune(st.ChatInput); len(r) > 0 {
			st.ChatInput = string(r[:len(r)-1])
		}
	case tcell.KeyRune:
		st.ChatInput += string(ev.Rune())
	}
}

// submitChat sends the buffer as chat, or as a command when it starts with
// a slash, then leaves chat mode.
func (in *input) submitChat() {
	msg := in.st.ChatInput
	in.st.ChatInput = ""
	in.st.ChatInputEnabled = false
	if strings.TrimSpace(msg) == "" {
		return
	}
	if cmd, ok := strings.CutPrefix(msg, "/"); ok {
		fields := strings.Fields(cmd)
		if len(fields) == 0 {
			return
		}
		in.report("command", in.game.SendCommand(fields[0], fields[1:]))
		return
	}
	in.report("chat", in.game.SendChat(msg))
}

func (in *input) moveCursor(delta int) {
	in.st.InvPos = max(1, in.st.InvPos+delta)
	in.st.Arrowed = comp.Slot(in.st.InvPos - 1)
}

func (in *input) advanceArrow() {
	st := in.st
	slot := st.Arrowed
	switch st.ArrowedPos {
	case 0:
		st.Arrowed1 = &slot
		st.ArrowedPos = 1
		st.Swap = false
	case 1:
		st.Arrowed2 = &slot
		st.ArrowedPos = 2
	default:
		st.Swap = true
	}
}

// applyInventory forwards a pending swap or use and resets the cursor.
func (in *input) applyInventory() {
	st := in.st
	if st.Swap {
		if st.Arrowed1 != nil && st.Arrowed2 != nil {
			in.report("swap", in.game.SwapSlots(*st.Arrowed1, *st.Arrowed2))
		}
		st.Swap = false
		st.ArrowedPos = 0
		st.Arrowed1, st.Arrowed2 = nil, nil
	}
	if st.UseItem {
		if st.UseSlot != nil {
			in.report("use", in.game.UseSlot(*st.UseSlot))
		}
		st.UseItem = false
		st.UseSlot = nil
	}
}

func (in *input) report(action string, err error) {
	if err != nil {
		slog.Warn("Action failed", "action", action, "error", err)
	}
}
