package physics

import "math"

// BlockStore reports which voxels block movement.
type BlockStore interface {
	IsSolid(x, y, z int32) bool
}

// LiquidStore is implemented by block stores that know about water.
type LiquidStore interface {
	IsLiquid(x, y, z int32) bool
}

type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// others returns the two axes perpendicular to a.
func (a Axis) others() (Axis, Axis) {
	switch a {
	case AxisX:
		return AxisY, AxisZ
	case AxisY:
		return AxisX, AxisZ
	}
	return AxisX, AxisY
}

type Vec3 struct {
	X float64
	Y float64
	Z float64
}

func (v Vec3) Get(a Axis) float64 {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	}
	return v.Z
}

func (v *Vec3) set(a Axis, f float64) {
	switch a {
	case AxisX:
		v.X = f
	case AxisY:
		v.Y = f
	default:
		v.Z = f
	}
}

type AABB struct {
	Min Vec3
	Max Vec3
}

// BodyAABB is the box of a body standing with its feet at pos.
func BodyAABB(pos Vec3) AABB {
	return AABB{
		Min: Vec3{X: pos.X - BodyHalfWidth, Y: pos.Y - BodyHalfWidth, Z: pos.Z},
		Max: Vec3{X: pos.X + BodyHalfWidth, Y: pos.Y + BodyHalfWidth, Z: pos.Z + BodyHeight},
	}
}

func (b AABB) Intersects(o AABB) bool {
	return b.Min.X < o.Max.X && b.Max.X > o.Min.X &&
		b.Min.Y < o.Max.Y && b.Max.Y > o.Min.Y &&
		b.Min.Z < o.Max.Z && b.Max.Z > o.Min.Z
}

func CollidesWithBlock(box AABB, blocks BlockStore) bool {
	if blocks == nil {
		return false
	}
	for z := floorForMin(box.Min.Z); z <= floorForMax(box.Max.Z); z++ {
		for y := floorForMin(box.Min.Y); y <= floorForMax(box.Max.Y); y++ {
			for x := floorForMin(box.Min.X); x <= floorForMax(box.Max.X); x++ {
				if blocks.IsSolid(x, y, z) {
					return true
				}
			}
		}
	}
	return false
}

// ResolveMovement moves pos by velocity one axis at a time, vertical first,
// stopping at the first solid voxel on each axis. Blocked axes come back with
// zero velocity.
func ResolveMovement(pos, velocity Vec3, blocks BlockStore) (Vec3, Vec3) {
	newPos, newVel := pos, velocity
	for _, a := range [...]Axis{AxisZ, AxisX, AxisY} {
		p, v := resolveAxis(newPos, a, newVel.Get(a), blocks)
		newPos.set(a, p)
		newVel.set(a, v)
	}
	return newPos, newVel
}

func resolveAxis(pos Vec3, a Axis, delta float64, blocks BlockStore) (float64, float64) {
	if blocks == nil || nearlyZero(delta) {
		return pos.Get(a) + delta, delta
	}

	box := BodyAABB(pos)
	u, w := a.others()
	uMin, uMax := floorForMin(box.Min.Get(u)), floorForMax(box.Max.Get(u))
	wMin, wMax := floorForMin(box.Min.Get(w)), floorForMax(box.Max.Get(w))
	blocked := func(c int32) bool {
		var p [3]int32
		p[a] = c
		for iu := uMin; iu <= uMax; iu++ {
			p[u] = iu
			for iw := wMin; iw <= wMax; iw++ {
				p[w] = iw
				if blocks.IsSolid(p[0], p[1], p[2]) {
					return true
				}
			}
		}
		return false
	}

	allowed := delta
	if delta > 0 {
		edge := box.Max.Get(a)
		for c := floorForMax(edge) + 1; c <= int32(math.Floor(edge+delta)); c++ {
			if blocked(c) {
				allowed = math.Min(allowed, float64(c)-edge)
				break
			}
		}
	} else {
		edge := box.Min.Get(a)
		for c := floorForMin(edge) - 1; c >= int32(math.Floor(edge+delta)); c-- {
			if blocked(c) {
				allowed = math.Max(allowed, float64(c+1)-edge)
				break
			}
		}
	}

	if !nearlyEqual(allowed, delta) {
		return pos.Get(a) + allowed, 0
	}
	return pos.Get(a) + delta, delta
}

func floorForMin(v float64) int32 {
	return int32(math.Floor(v + CollisionTolerance))
}

func floorForMax(v float64) int32 {
	return int32(math.Floor(v - CollisionTolerance))
}

func nearlyZero(v float64) bool {
	return math.Abs(v) <= CollisionTolerance
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= CollisionTolerance
}
