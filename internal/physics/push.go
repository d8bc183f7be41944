package physics

import "math"

const (
	pushMaxPerCollider = 0.08
	pushMaxPerTick     = 0.12
	pushStrength       = 0.7
)

// ApplyColliderPush nudges pos horizontally out of any colliders it overlaps,
// without moving it into solid blocks.
func ApplyColliderPush(pos Vec3, blocks BlockStore, colliders []Collider) Vec3 {
	if len(colliders) == 0 {
		return pos
	}

	var pushX, pushY float64
	body := BodyAABB(pos)
	for _, c := range colliders {
		w, h := c.Width, c.Height
		if w <= 0 {
			w = BodyWidth
		}
		if h <= 0 {
			h = BodyHeight
		}
		if body.Max.Z <= c.Position.Z || body.Min.Z >= c.Position.Z+h {
			continue
		}

		dx, dy := pos.X-c.Position.X, pos.Y-c.Position.Y
		minDist := BodyHalfWidth + w*0.5
		dist2 := dx*dx + dy*dy
		if dist2 >= minDist*minDist {
			continue
		}
		dist := math.Sqrt(dist2)
		if dist < CollisionTolerance {
			dx, dy, dist = 1, 0, 1
		}

		mag := math.Min((minDist-dist)*pushStrength, pushMaxPerCollider)
		pushX += dx / dist * mag
		pushY += dy / dist * mag
	}

	length := math.Hypot(pushX, pushY)
	if length <= CollisionTolerance {
		return pos
	}
	if length > pushMaxPerTick {
		scale := pushMaxPerTick / length
		pushX *= scale
		pushY *= scale
	}
	newPos, _ := ResolveMovement(pos, Vec3{X: pushX, Y: pushY}, blocks)
	return newPos
}
