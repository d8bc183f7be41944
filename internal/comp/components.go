// Package comp declares the ECS components the client replicates into its
// donburi world, plus the small value types shared with the frontend.
package comp

import (
	"math"

	"github.com/yohamta/donburi"
)

// PosData is a world position in blocks; Z grows upwards.
type PosData struct {
	X, Y, Z float64
}

var Pos = donburi.NewComponentType[PosData]()

// Floor returns the block containing the position.
func (p PosData) Floor() (x, y, z int32) {
	return int32(math.Floor(p.X)), int32(math.Floor(p.Y)), int32(math.Floor(p.Z))
}

type UidData struct {
	Value uint64
}

var Uid = donburi.NewComponentType[UidData]()

var Body = donburi.NewComponentType[BodyData]()

// StatData is a current/maximum pair as replicated by the server. The HUD
// shows both divided by ten.
type StatData struct {
	Current float32
	Maximum float32
}

var (
	Health = donburi.NewComponentType[StatData]()
	Energy = donburi.NewComponentType[StatData]()
)

// PlayerData marks entities controlled by a connected player.
type PlayerData struct {
	Alias string
}

var Player = donburi.NewComponentType[PlayerData]()

type InventoryData struct {
	Slots []ItemStack
}

var Inventory = donburi.NewComponentType[InventoryData]()

// PendingRemovalData flags an entity the server removed; the client deletes
// flagged entities on Cleanup so the frame that observed the removal can
// still read them.
type PendingRemovalData struct{}

var PendingRemoval = donburi.NewComponentType[PendingRemovalData]()
