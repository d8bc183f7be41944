package frontend

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Versifine/veloterm/internal/clock"
	"github.com/Versifine/veloterm/internal/comp"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const (
	hudRight = 58

	statsX, statsY, statsW, statsH = 39, 0, 20, 5

	controlsRow  = ScreenHeight - 20
	chatBaseRow  = ScreenHeight - 12
	chatInputRow = ScreenHeight - 11
	inviteRow    = statsY + statsH + 1
	inventoryW   = 26
)

var (
	textStyle  = tcell.StyleDefault.Foreground(colorWhite).Background(colorBlack)
	labelStyle = tcell.StyleDefault.Foreground(colorPink).Background(colorBlack)
	chatClear  = strings.Repeat(" ", 64)
)

var controlsHelp = []string{
	"wasd/numpad - Move",
	"space - Jump",
	"x / z - Attack",
	"g glide  r respawn",
	"u / i - Invite y/n",
	"t - Inventory",
	"enter - Chat",
	"+/- zoom  esc quit",
}

type view struct {
	screen tcell.Screen
	game   Game
}

// print writes s from column x, clipped to the screen, and returns the
// column after the last cell written.
func (v *view) print(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			w = 1
		}
		if x >= 0 && x < ScreenWidth && y >= 0 && y < ScreenHeight {
			v.screen.SetContent(x, y, r, nil, style)
		}
		x += w
	}
	return x
}

// printRight writes s so that it ends just before column right.
func (v *view) printRight(right, y int, s string, style tcell.Style) {
	v.print(right-runewidth.StringWidth(s), y, s, style)
}

// segment is a run of text sharing a style.
type segment struct {
	text  string
	style tcell.Style
}

func (v *view) printSegmentsRight(right, y int, segs ...segment) {
	width := 0
	for _, s := range segs {
		width += runewidth.StringWidth(s.text)
	}
	x := right - width
	for _, s := range segs {
		x = v.print(x, y, s.text, s.style)
	}
}

func (v *view) fill(x, y, w, h int) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			if col >= 0 && col < ScreenWidth && row >= 0 && row < ScreenHeight {
				v.screen.SetContent(col, row, ' ', nil, textStyle)
			}
		}
	}
}

// box draws a single-line frame whose corners are (x, y) and (x+w, y+h)
// and blanks the inside.
func (v *view) box(x, y, w, h int) {
	v.fill(x, y, w+1, h+1)
	for col := x + 1; col < x+w; col++ {
		v.screen.SetContent(col, y, '─', nil, textStyle)
		v.screen.SetContent(col, y+h, '─', nil, textStyle)
	}
	for row := y + 1; row < y+h; row++ {
		v.screen.SetContent(x, row, '│', nil, textStyle)
		v.screen.SetContent(x+w, row, '│', nil, textStyle)
	}
	v.screen.SetContent(x, y, '┌', nil, textStyle)
	v.screen.SetContent(x+w, y, '┐', nil, textStyle)
	v.screen.SetContent(x, y+h, '└', nil, textStyle)
	v.screen.SetContent(x+w, y+h, '┘', nil, textStyle)
}

func formatStat(v float32) string {
	return strconv.FormatFloat(float64(v)/10, 'f', -1, 32)
}

func (v *view) drawStats(stats clock.Stats) {
	health, _ := v.game.CurrentHealth()
	energy, _ := v.game.CurrentEnergy()
	v.box(statsX, statsY, statsW, statsH)
	v.printSegmentsRight(hudRight, 1, segment{"FPS: ", labelStyle}, segment{strconv.Itoa(int(stats.FPS)), textStyle})
	v.printSegmentsRight(hudRight, 2, segment{"Frame Time: ", labelStyle},
		segment{strconv.FormatInt(stats.FrameTime.Milliseconds(), 10) + " ms", textStyle})
	v.printSegmentsRight(hudRight, 3, segment{"Health: ", labelStyle},
		segment{formatStat(health.Current) + "/" + formatStat(health.Maximum), textStyle})
	v.printSegmentsRight(hudRight, 4, segment{"Energy: ", labelStyle},
		segment{formatStat(energy.Current) + "/" + formatStat(energy.Maximum), textStyle})
}

func (v *view) drawControls() {
	v.printRight(hudRight, controlsRow, "/------- Controls ------\\", textStyle)
	for i, line := range controlsHelp {
		v.printRight(hudRight, controlsRow+1+i, fmt.Sprintf("|  %-21s|", line), textStyle)
	}
	v.printRight(hudRight, controlsRow+1+len(controlsHelp), "\\-----------------------/", textStyle)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func (v *view) drawChat(st *State) {
	for i, line := range st.RecentChat(chatLines) {
		row := chatBaseRow - i
		v.printRight(hudRight, row, chatClear, textStyle)
		v.printRight(hudRight, row, truncateRunes(line, chatColumns), textStyle)
	}
	if st.ChatInputEnabled {
		v.printRight(hudRight, chatInputRow, chatClear, textStyle)
		v.printSegmentsRight(hudRight, chatInputRow, segment{"Say: ", labelStyle},
			segment{truncateRunes(st.ChatInput, chatColumns-6) + "_", textStyle})
	}
}

// inviterName resolves the inviting entity's alias, empty when unknown.
func (v *view) inviterName(uid uint64) string {
	e, ok := v.game.EntityByUID(uid)
	if !ok {
		return ""
	}
	entry := v.game.World().Entry(e)
	if !entry.HasComponent(comp.Player) {
		return ""
	}
	return comp.Player.GetValue(entry).Alias
}

func (v *view) drawInvite() {
	inv, ok := v.game.Invite()
	if !ok {
		return
	}
	from := v.inviterName(inv.Inviter)
	if from == "" {
		from = "someone"
	}
	secs := int(inv.Remaining.Round(time.Second) / time.Second)
	text := fmt.Sprintf("%s invite from %s (u/i) %ds", inv.Kind, from, secs)
	v.printRight(hudRight, inviteRow, chatClear, textStyle)
	v.printSegmentsRight(hudRight, inviteRow, segment{"Invite: ", labelStyle}, segment{text, textStyle})
}

func (v *view) drawInventory(st *State) {
	slots := v.game.Inventory()
	rows := max(len(slots), st.InvPos)
	v.box(0, 0, inventoryW, rows+1)
	v.print(2, 0, " Inventory ", labelStyle)
	for i := 0; i < rows && i+1 < ScreenHeight; i++ {
		slot := comp.Slot(i)
		marker := "  "
		switch {
		case st.Arrowed1 != nil && *st.Arrowed1 == slot:
			marker = "* "
		case st.Arrowed2 != nil && *st.Arrowed2 == slot:
			marker = "+ "
		}
		if i+1 == st.InvPos {
			marker = "> "
		}
		name := "-"
		if i < len(slots) && !slots[i].IsEmpty() {
			name = slots[i].Name
			if slots[i].Amount > 1 {
				name += " x" + strconv.FormatUint(uint64(slots[i].Amount), 10)
			}
		}
		v.print(1, i+1, truncateRunes(fmt.Sprintf("%s%2d %s", marker, i+1, name), inventoryW-1), textStyle)
	}
}

// drawHUD draws the overlays on top of the world view.
func (v *view) drawHUD(st *State, stats clock.Stats) {
	v.drawStats(stats)
	v.drawInvite()
	v.drawControls()
	v.drawChat(st)
	if st.InvToggle {
		v.drawInventory(st)
	}
}
