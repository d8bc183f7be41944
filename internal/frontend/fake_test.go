package frontend

import (
	"fmt"
	"strings"
	"time"

	"github.com/Versifine/veloterm/internal/client"
	"github.com/Versifine/veloterm/internal/comp"
	"github.com/Versifine/veloterm/internal/terrain"
	"github.com/yohamta/donburi"
)

// fakeGame records every call the frontend makes and serves a fixed world.
type fakeGame struct {
	world    donburi.World
	store    *terrain.Store
	player   donburi.Entity
	entities map[uint64]donburi.Entity

	health, energy comp.StatData
	inventory      []comp.ItemStack
	invite         *client.Invite

	ticks   []comp.ControllerInputs
	pending [][]client.Event
	tickErr error
	cleanup int
	calls   []string
}

func newFakeGame(pos comp.PosData) *fakeGame {
	g := &fakeGame{
		world:    donburi.NewWorld(),
		store:    terrain.NewStore(),
		entities: make(map[uint64]donburi.Entity),
		health:   comp.StatData{Current: 750, Maximum: 1000},
		energy:   comp.StatData{Current: 1000, Maximum: 1000},
	}
	g.player = g.spawn(1, pos, comp.BodyData{Kind: comp.BodyHumanoid, Species: comp.SpeciesHuman}, "Wanderer")
	return g
}

func (g *fakeGame) spawn(uid uint64, pos comp.PosData, body comp.BodyData, alias string) donburi.Entity {
	e := g.world.Create(comp.Uid, comp.Pos, comp.Body, comp.Player)
	entry := g.world.Entry(e)
	comp.Uid.SetValue(entry, comp.UidData{Value: uid})
	comp.Pos.SetValue(entry, pos)
	comp.Body.SetValue(entry, body)
	comp.Player.SetValue(entry, comp.PlayerData{Alias: alias})
	g.entities[uid] = e
	return e
}

// column fills a world column with b from z 0 up to top.
func (g *fakeGame) column(x, y, top int32, b terrain.Block) {
	pos := terrain.ChunkPosOf(x, y)
	if !g.store.IsLoaded(pos) {
		g.store.InsertChunk(pos, terrain.NewChunk(0, 64))
	}
	for z := int32(0); z <= top; z++ {
		_ = g.store.SetBlock(x, y, z, b)
	}
}

func (g *fakeGame) Tick(inputs comp.ControllerInputs, _ time.Duration) ([]client.Event, error) {
	g.ticks = append(g.ticks, inputs)
	if g.tickErr != nil {
		return nil, g.tickErr
	}
	if len(g.pending) == 0 {
		return nil, nil
	}
	events := g.pending[0]
	g.pending = g.pending[1:]
	return events, nil
}

func (g *fakeGame) Cleanup() { g.cleanup++ }

func (g *fakeGame) World() donburi.World    { return g.world }
func (g *fakeGame) Terrain() *terrain.Store { return g.store }

func (g *fakeGame) EntityByUID(uid uint64) (donburi.Entity, bool) {
	e, ok := g.entities[uid]
	return e, ok
}

func (g *fakeGame) PlayerPos() (comp.PosData, bool) {
	return comp.Pos.GetValue(g.world.Entry(g.player)), true
}

func (g *fakeGame) CurrentHealth() (comp.StatData, bool) { return g.health, true }
func (g *fakeGame) CurrentEnergy() (comp.StatData, bool) { return g.energy, true }
func (g *fakeGame) Inventory() []comp.ItemStack          { return g.inventory }

func (g *fakeGame) Invite() (client.Invite, bool) {
	if g.invite == nil {
		return client.Invite{}, false
	}
	return *g.invite, true
}

func (g *fakeGame) record(format string, args ...any) error {
	g.calls = append(g.calls, fmt.Sprintf(format, args...))
	return nil
}

func (g *fakeGame) HandleInput(kind comp.InputKind, pressed bool) error {
	return g.record("input %s %t", kind, pressed)
}
func (g *fakeGame) ToggleGlide() error   { return g.record("glide") }
func (g *fakeGame) Respawn() error       { return g.record("respawn") }
func (g *fakeGame) AcceptInvite() error  { return g.record("accept") }
func (g *fakeGame) DeclineInvite() error { return g.record("decline") }
func (g *fakeGame) SendChat(msg string) error {
	return g.record("chat %s", msg)
}
func (g *fakeGame) SendCommand(name string, args []string) error {
	return g.record("command %s [%s]", name, strings.Join(args, " "))
}
func (g *fakeGame) SwapSlots(a, b comp.Slot) error { return g.record("swap %d %d", a, b) }
func (g *fakeGame) UseSlot(s comp.Slot) error      { return g.record("use %d", s) }
