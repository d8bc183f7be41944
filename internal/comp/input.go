package comp

import (
	"fmt"
	"math"
)

// InputKind is a held action forwarded with HandleInput.
type InputKind uint8

const (
	InputJump InputKind = iota
	InputPrimary
	InputSecondary

	InputKindCount
)

func (k InputKind) String() string {
	switch k {
	case InputJump:
		return "Jump"
	case InputPrimary:
		return "Primary"
	case InputSecondary:
		return "Secondary"
	default:
		return fmt.Sprintf("InputKind(%d)", uint8(k))
	}
}

// ControllerInputs is the per-tick movement intent. MoveX points east and
// MoveY north.
type ControllerInputs struct {
	MoveX float32
	MoveY float32
}

// Normalized scales the move direction down to unit length when it is
// longer than one; shorter vectors are returned unchanged.
func (c ControllerInputs) Normalized() ControllerInputs {
	l := math.Hypot(float64(c.MoveX), float64(c.MoveY))
	if l <= 1 {
		return c
	}
	return ControllerInputs{MoveX: float32(float64(c.MoveX) / l), MoveY: float32(float64(c.MoveY) / l)}
}

func (c ControllerInputs) IsZero() bool {
	return c.MoveX == 0 && c.MoveY == 0
}
