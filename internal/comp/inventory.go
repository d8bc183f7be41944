package comp

import "strconv"

// Slot is an index into the player's inventory.
type Slot int32

func (s Slot) String() string {
	return "slot " + strconv.Itoa(int(s))
}

// ItemStack is one inventory slot; an empty Name is an empty slot.
type ItemStack struct {
	Name   string
	Amount uint32
}

func (s ItemStack) IsEmpty() bool {
	return s.Name == ""
}
