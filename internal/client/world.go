package client

import (
	"log/slog"

	"github.com/Versifine/veloterm/internal/comp"
	"github.com/Versifine/veloterm/internal/protocol"
	"github.com/Versifine/veloterm/internal/terrain"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/component"
	"github.com/yohamta/donburi/filter"
)

var pendingRemoval = donburi.NewQuery(filter.Contains(comp.PendingRemoval))

// World is the replicated ECS world. Callers read it between ticks and
// must not mutate it.
func (c *Client) World() donburi.World { return c.world }

func (c *Client) Terrain() *terrain.Store { return c.terrain }

// Entity returns the player's entity once a character is active.
func (c *Client) Entity() (donburi.Entity, bool) {
	if c.presence == nil || !c.world.Valid(c.player) {
		var none donburi.Entity
		return none, false
	}
	return c.player, true
}

func (c *Client) EntityByUID(uid uint64) (donburi.Entity, bool) {
	e, ok := c.entities[uid]
	if !ok || !c.world.Valid(e) {
		var none donburi.Entity
		return none, false
	}
	return e, true
}

func (c *Client) playerEntry() (*donburi.Entry, bool) {
	e, ok := c.Entity()
	if !ok {
		return nil, false
	}
	return c.world.Entry(e), true
}

func (c *Client) PlayerPos() (comp.PosData, bool) {
	entry, ok := c.playerEntry()
	if !ok {
		return comp.PosData{}, false
	}
	return comp.Pos.GetValue(entry), true
}

func (c *Client) CurrentHealth() (comp.StatData, bool) {
	return playerStat(c, comp.Health)
}

func (c *Client) CurrentEnergy() (comp.StatData, bool) {
	return playerStat(c, comp.Energy)
}

func playerStat(c *Client, stat *donburi.ComponentType[comp.StatData]) (comp.StatData, bool) {
	entry, ok := c.playerEntry()
	if !ok || !entry.HasComponent(stat) {
		return comp.StatData{}, false
	}
	return stat.GetValue(entry), true
}

// Inventory returns a copy of the player's slots.
func (c *Client) Inventory() []comp.ItemStack {
	entry, ok := c.playerEntry()
	if !ok || !entry.HasComponent(comp.Inventory) {
		return nil
	}
	slots := comp.Inventory.Get(entry).Slots
	out := make([]comp.ItemStack, len(slots))
	copy(out, slots)
	return out
}

// Cleanup deletes the entities the server removed during the last Tick.
func (c *Client) Cleanup() {
	var doomed []donburi.Entity
	pendingRemoval.Each(c.world, func(entry *donburi.Entry) {
		if entry.HasComponent(comp.Uid) {
			delete(c.entities, comp.Uid.GetValue(entry).Value)
		}
		doomed = append(doomed, entry.Entity())
	})
	for _, e := range doomed {
		c.world.Remove(e)
	}
}

func posFromWire(v protocol.Vec3) comp.PosData {
	return comp.PosData{X: v.X, Y: v.Y, Z: v.Z}
}

func setComponent[T any](entry *donburi.Entry, c *donburi.ComponentType[T], v T) {
	if !entry.HasComponent(c) {
		entry.AddComponent(c)
	}
	c.SetValue(entry, v)
}

func (c *Client) spawnPlayer(active *protocol.CharacterActive) {
	alias := c.Username()
	for _, ch := range c.characters.Characters {
		if ch.ID == c.pendingCharacter {
			alias = ch.Alias
		}
	}
	c.syncEntity(&protocol.EntitySync{UID: active.EntityUID, Position: active.Position, Alias: alias})
	c.player = c.entities[active.EntityUID]
	entry := c.world.Entry(c.player)
	for _, ct := range []component.IComponentType{comp.Health, comp.Energy, comp.Inventory} {
		if !entry.HasComponent(ct) {
			entry.AddComponent(ct)
		}
	}
	c.presence = &Presence{CharacterID: c.pendingCharacter, EntityUID: active.EntityUID}
	c.state.Set(protocol.InGame)
	slog.Info("Character active", "alias", alias, "uid", active.EntityUID, "position", active.Position)
}

func (c *Client) syncEntity(es *protocol.EntitySync) {
	body, hasBody := comp.BodyFromWire(es.BodyKind, es.Species)
	entity, ok := c.EntityByUID(es.UID)
	if !ok {
		types := []component.IComponentType{comp.Uid, comp.Pos}
		if hasBody {
			types = append(types, comp.Body)
		}
		if es.Alias != "" {
			types = append(types, comp.Player)
		}
		entity = c.world.Create(types...)
		c.entities[es.UID] = entity
	}
	entry := c.world.Entry(entity)
	comp.Uid.SetValue(entry, comp.UidData{Value: es.UID})
	comp.Pos.SetValue(entry, posFromWire(es.Position))
	if hasBody {
		setComponent(entry, comp.Body, body)
	} else if entry.HasComponent(comp.Body) {
		entry.RemoveComponent(comp.Body)
	}
	if es.Alias != "" {
		setComponent(entry, comp.Player, comp.PlayerData{Alias: es.Alias})
	}
	if entry.HasComponent(comp.PendingRemoval) {
		entry.RemoveComponent(comp.PendingRemoval)
	}
}

func (c *Client) moveEntity(uid uint64, pos protocol.Vec3) {
	e, ok := c.EntityByUID(uid)
	if !ok {
		slog.Debug("Position for unknown entity", "uid", uid)
		return
	}
	comp.Pos.SetValue(c.world.Entry(e), posFromWire(pos))
}

func (c *Client) markRemoved(uid uint64) {
	e, ok := c.EntityByUID(uid)
	if !ok {
		return
	}
	if c.presence != nil && e == c.player {
		slog.Warn("Server removed the player entity, ignoring", "uid", uid)
		return
	}
	entry := c.world.Entry(e)
	if !entry.HasComponent(comp.PendingRemoval) {
		entry.AddComponent(comp.PendingRemoval)
	}
}

func (c *Client) applyStats(s *protocol.EntityStats) {
	e, ok := c.EntityByUID(s.UID)
	if !ok {
		return
	}
	entry := c.world.Entry(e)
	setComponent(entry, comp.Health, comp.StatData{Current: s.HealthCurrent, Maximum: s.HealthMaximum})
	setComponent(entry, comp.Energy, comp.StatData{Current: s.EnergyCurrent, Maximum: s.EnergyMaximum})
}

func (c *Client) setInventory(slots []protocol.ItemStack) bool {
	entry, ok := c.playerEntry()
	if !ok {
		return false
	}
	inv := comp.InventoryData{Slots: make([]comp.ItemStack, len(slots))}
	for i, s := range slots {
		inv.Slots[i] = comp.ItemStack{Name: s.Name, Amount: s.Amount}
	}
	setComponent(entry, comp.Inventory, inv)
	return true
}
