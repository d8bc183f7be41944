package physics

import "math"

type State struct {
	Position Vec3
	Velocity Vec3
	OnGround bool
	InLiquid bool
}

// Input is the movement intent for one tick. MoveX and MoveY are clamped to
// the unit circle.
type Input struct {
	MoveX float64
	MoveY float64
	Jump  bool
	Glide bool
}

// Collider is another body the mover is pushed away from.
type Collider struct {
	Position Vec3
	Width    float64
	Height   float64
}

func Tick(state *State, input Input, blocks BlockStore) {
	TickWithColliders(state, input, blocks, nil)
}

func TickWithColliders(state *State, input Input, blocks BlockStore, colliders []Collider) {
	if state == nil {
		return
	}

	state.OnGround = isStandingOnSolidBlock(state.Position, blocks)
	state.InLiquid = isInLiquid(state.Position, blocks)

	moveX, moveY := clampMove(input.MoveX, input.MoveY)
	friction, accel := AirFriction, AirAcceleration
	switch {
	case state.InLiquid:
		friction, accel = LiquidFriction, SwimAcceleration
	case state.OnGround:
		friction, accel = GroundFriction, GroundAcceleration
	case input.Glide:
		accel = GlideAcceleration
	}
	state.Velocity.X += moveX * accel
	state.Velocity.Y += moveY * accel

	if input.Jump {
		switch {
		case state.InLiquid:
			state.Velocity.Z = math.Max(state.Velocity.Z, SwimUpVelocity)
		case state.OnGround:
			state.Velocity.Z = JumpInitialVelocity
		}
	}

	pos, vel := ResolveMovement(state.Position, state.Velocity, blocks)
	if state.OnGround && horizontallyBlocked(state.Velocity, vel) {
		pos, vel = stepUp(state.Position, state.Velocity, pos, vel, blocks)
	}
	state.Position, state.Velocity = pos, vel
	state.Position = ApplyColliderPush(state.Position, blocks, colliders)
	state.OnGround = isStandingOnSolidBlock(state.Position, blocks)
	state.InLiquid = isInLiquid(state.Position, blocks)

	gravity, drag := GravityAcceleration, VerticalDrag
	if state.InLiquid {
		gravity, drag = LiquidGravity, LiquidDrag
	}
	state.Velocity.Z = (state.Velocity.Z - gravity) * drag
	if input.Glide && !state.OnGround && !state.InLiquid {
		state.Velocity.Z = math.Max(state.Velocity.Z, -GlideFallSpeed)
	}
	state.Velocity.X *= friction
	state.Velocity.Y *= friction
	zeroResidualVelocity(&state.Velocity)
}

func clampMove(x, y float64) (float64, float64) {
	if l := math.Hypot(x, y); l > 1 {
		return x / l, y / l
	}
	return x, y
}

func horizontallyBlocked(want, got Vec3) bool {
	return (!nearlyZero(want.X) && got.X == 0) || (!nearlyZero(want.Y) && got.Y == 0)
}

// stepUp retries a blocked horizontal move from StepHeight higher, then
// settles back onto the ground. The step is kept only when it gets further.
func stepUp(from, want, pos, vel Vec3, blocks BlockStore) (Vec3, Vec3) {
	raised := from
	raised.Z += StepHeight
	if CollidesWithBlock(BodyAABB(raised), blocks) {
		return pos, vel
	}
	stepped, stepVel := ResolveMovement(raised, Vec3{X: want.X, Y: want.Y}, blocks)
	stepped.Z, _ = resolveAxis(stepped, AxisZ, -StepHeight, blocks)
	if horizontalDist2(from, stepped) <= horizontalDist2(from, pos)+CollisionTolerance {
		return pos, vel
	}
	return stepped, Vec3{X: stepVel.X, Y: stepVel.Y}
}

func horizontalDist2(a, b Vec3) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	return dx*dx + dy*dy
}

func isStandingOnSolidBlock(pos Vec3, blocks BlockStore) bool {
	if blocks == nil {
		return false
	}
	probe := BodyAABB(pos)
	probe.Min.Z -= GroundProbeDepth
	probe.Max.Z = pos.Z
	return CollidesWithBlock(probe, blocks)
}

func isInLiquid(pos Vec3, blocks BlockStore) bool {
	liquids, ok := blocks.(LiquidStore)
	if !ok {
		return false
	}
	return liquids.IsLiquid(
		int32(math.Floor(pos.X)),
		int32(math.Floor(pos.Y)),
		int32(math.Floor(pos.Z+LiquidProbeHeight)),
	)
}

func zeroResidualVelocity(v *Vec3) {
	if math.Abs(v.X) < MinimumResidual {
		v.X = 0
	}
	if math.Abs(v.Y) < MinimumResidual {
		v.Y = 0
	}
	if math.Abs(v.Z) < MinimumResidual {
		v.Z = 0
	}
}
