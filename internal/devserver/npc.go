package devserver

import (
	"math"

	"github.com/Versifine/veloterm/internal/comp"
	"github.com/Versifine/veloterm/internal/protocol"
)

const (
	npcSpawnRadius = 24
	npcMaxHealth   = 500
	npcStep        = 1.5
	hostileReach   = 2.0
	hostileDamage  = 40
)

type npcKind struct {
	alias   string
	body    comp.BodyData
	hostile bool
	loot    string
}

var npcKinds = []npcKind{
	{alias: "Rabbit", body: comp.BodyData{Kind: comp.BodyQuadrupedSmall}, loot: "Raw Meat"},
	{alias: "Deer", body: comp.BodyData{Kind: comp.BodyQuadrupedMedium}, loot: "Raw Meat"},
	{alias: "Crocodile", body: comp.BodyData{Kind: comp.BodyQuadrupedLow}, hostile: true, loot: "Scale"},
	{alias: "Chicken", body: comp.BodyData{Kind: comp.BodyBirdMedium}, loot: "Feather"},
	{alias: "Gnarling", body: comp.BodyData{Kind: comp.BodyBipedSmall}, hostile: true, loot: "Linen"},
	{alias: "Dwarven Merchant", body: comp.BodyData{Kind: comp.BodyHumanoid, Species: comp.SpeciesDwarf}, loot: "Coins"},
	{alias: "Orc Hunter", body: comp.BodyData{Kind: comp.BodyHumanoid, Species: comp.SpeciesOrc}, loot: "Coins"},
	{alias: "Raptor", body: comp.BodyData{Kind: comp.BodyTheropod}, hostile: true, loot: "Raw Meat"},
	{alias: "Stone Golem", body: comp.BodyData{Kind: comp.BodyGolem}, hostile: true, loot: "Stones"},
	{alias: "Campfire", body: comp.BodyData{Kind: comp.BodyObject}},
}

type npc struct {
	uid    uint64
	kind   *npcKind
	pos    protocol.Vec3
	health float32
}

func (n *npc) sync() *protocol.Packet {
	kind, species := n.kind.body.Wire()
	return protocol.CreateEntitySyncPacket(protocol.EntitySync{
		UID:      n.uid,
		Position: n.pos,
		BodyKind: kind,
		Species:  species,
		Alias:    n.kind.alias,
	})
}

func (n *npc) stats() *protocol.Packet {
	return protocol.CreateEntityStatsPacket(protocol.EntityStats{
		UID:           n.uid,
		HealthCurrent: n.health,
		HealthMaximum: npcMaxHealth,
	})
}

func (n *npc) static() bool { return n.kind.body.Kind == comp.BodyObject }

// spawnNPCs scatters count NPCs around center on dry ground.
func spawnNPCs(gen *Generator, r *rng, alloc func() uint64, center protocol.Vec3, count int) []*npc {
	npcs := make([]*npc, 0, count)
	for range count {
		angle := r.Float64() * 2 * math.Pi
		dist := 4 + r.Float64()*(npcSpawnRadius-4)
		x := center.X + math.Cos(angle)*dist
		y := center.Y + math.Sin(angle)*dist
		npcs = append(npcs, &npc{
			uid:    alloc(),
			kind:   &npcKinds[r.Intn(len(npcKinds))],
			pos:    groundAt(gen, x, y),
			health: npcMaxHealth,
		})
	}
	return npcs
}

// wander moves the NPC one step in a random direction.
func (n *npc) wander(gen *Generator, r *rng) {
	if n.static() {
		return
	}
	angle := r.Float64() * 2 * math.Pi
	n.pos = groundAt(gen, n.pos.X+math.Cos(angle)*npcStep, n.pos.Y+math.Sin(angle)*npcStep)
}

// groundAt places a point on the terrain surface, or on the water surface
// when the ground is submerged.
func groundAt(gen *Generator, x, y float64) protocol.Vec3 {
	h := gen.Height(int32(math.Floor(x)), int32(math.Floor(y)))
	z := float64(h + 1)
	if h < seaLevel {
		z = seaLevel
	}
	return protocol.Vec3{X: x, Y: y, Z: z}
}

func distance2D(a, b protocol.Vec3) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
