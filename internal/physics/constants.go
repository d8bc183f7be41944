package physics

// Velocities are in blocks per tick; accelerations in blocks per tick².
const (
	GravityAcceleration = 0.08
	VerticalDrag        = 0.98

	GroundFriction     = 0.91 * 0.6
	AirFriction        = 0.91
	GroundAcceleration = 0.375
	AirAcceleration    = 0.02

	JumpInitialVelocity = 0.42
	StepHeight          = 1.0

	GlideFallSpeed    = 0.1
	GlideAcceleration = 0.06

	LiquidGravity      = 0.02
	LiquidDrag         = 0.8
	LiquidFriction     = 0.8
	SwimAcceleration   = 0.1
	SwimUpVelocity     = 0.12
	LiquidProbeHeight  = 0.4
	GroundProbeDepth   = 0.001
	MinimumResidual    = 1e-4
	CollisionTolerance = 1e-9

	BodyWidth     = 0.8
	BodyHeight    = 1.8
	BodyHalfWidth = BodyWidth / 2.0
)
