package devserver

import (
	"log/slog"

	"github.com/Versifine/veloterm/internal/protocol"
)

const inventorySize = 18

// Healing per consumed item, in health units.
var consumables = map[string]float32{
	"Apple":          100,
	"Dwarven Cheese": 250,
	"Raw Meat":       50,
}

func starterInventory() []protocol.ItemStack {
	slots := make([]protocol.ItemStack, inventorySize)
	copy(slots, []protocol.ItemStack{
		{Name: "Apple", Amount: 5},
		{Name: "Dwarven Cheese", Amount: 2},
		{Name: "Wooden Sword", Amount: 1},
		{Name: "Torch", Amount: 3},
	})
	return slots
}

// addItem stacks name onto an existing stack or the first free slot; false
// when the inventory is full.
func addItem(slots []protocol.ItemStack, name string) bool {
	free := -1
	for i, s := range slots {
		if s.Name == name && s.Amount > 0 {
			slots[i].Amount++
			return true
		}
		if free < 0 && s.Amount == 0 {
			free = i
		}
	}
	if free < 0 {
		return false
	}
	slots[free] = protocol.ItemStack{Name: name, Amount: 1}
	return true
}

func validSlot(slots []protocol.ItemStack, i int32) bool {
	return i >= 0 && int(i) < len(slots)
}

func (ss *session) inventoryAction(ia *protocol.InventoryAction) error {
	switch ia.Kind {
	case protocol.InventorySwap:
		if !validSlot(ss.inventory, ia.SlotA) || !validSlot(ss.inventory, ia.SlotB) {
			return ss.notify("Invalid inventory slot")
		}
		ss.inventory[ia.SlotA], ss.inventory[ia.SlotB] = ss.inventory[ia.SlotB], ss.inventory[ia.SlotA]
	case protocol.InventoryUse:
		if !validSlot(ss.inventory, ia.SlotA) || ss.inventory[ia.SlotA].Amount == 0 {
			return ss.notify("Nothing to use in that slot")
		}
		item := &ss.inventory[ia.SlotA]
		heal, ok := consumables[item.Name]
		if !ok {
			return ss.notify(item.Name + " cannot be used")
		}
		item.Amount--
		if item.Amount == 0 {
			*item = protocol.ItemStack{}
		}
		ss.health = min(ss.health+heal, maxStat)
		if err := ss.send(ss.statsPacket()); err != nil {
			return err
		}
	default:
		slog.Debug("Unknown inventory action", "kind", ia.Kind)
		return nil
	}
	return ss.send(protocol.CreateInventoryUpdatePacket(ss.inventory))
}
