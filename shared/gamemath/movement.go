package gamemath

import "math"

// Movement constants. The server integrates with the same values at the same
// 1/60 s step, so changing any of these desyncs prediction.
const (
	PlayerSpeed      = 15.0
	SprintMultiplier = 1.8
	Gravity          = -6.0
	JumpForce        = 9.0

	// GroundEpsilon is the height below which a player counts as grounded
	// for jump eligibility.
	GroundEpsilon = 0.01

	// PlayerRadius is the half-width of the player's collision footprint on
	// the ground plane.
	PlayerRadius = 0.5

	// SimDelta is the fixed simulation step.
	SimDelta = 1.0 / 60.0
)

// MoveDirection is one of the four cardinal movement directions a command
// resolves to. Movement is never a blended diagonal.
type MoveDirection int

const (
	DirNone MoveDirection = iota
	DirForward
	DirBackward
	DirLeft
	DirRight
)

func (d MoveDirection) String() string {
	switch d {
	case DirForward:
		return "forward"
	case DirBackward:
		return "backward"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	}
	return "none"
}

// Command is the movement-relevant slice of a player input command.
type Command struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Sprint   bool
	Jump     bool
	Yaw      float64
}

// MoveState is the kinematic state advanced by Step. Exactly one exists for
// the locally controlled player; the server keeps one per connected player.
type MoveState struct {
	Pos     Vec3
	VertVel float64
}

// ObstacleResolver resolves a planar move against arena collision, returning
// the final X/Z. A nil resolver means open ground.
type ObstacleResolver func(fromX, fromZ, toX, toZ float64) (float64, float64)

// DetermineDirection maps movement flags to a single cardinal direction.
// Opposite flags cancel; a surviving strafe flag wins over forward/backward,
// so forward+right resolves to right, backward+left to left, and so on. The
// server uses the identical table.
func DetermineDirection(forward, backward, left, right bool) MoveDirection {
	if forward && backward {
		forward, backward = false, false
	}
	if left && right {
		left, right = false, false
	}
	switch {
	case left:
		return DirLeft
	case right:
		return DirRight
	case forward:
		return DirForward
	case backward:
		return DirBackward
	}
	return DirNone
}

// DirectionVector returns the unit ground-plane vector for a direction given
// the facing yaw. Convention: forward is -Z at yaw 0.
func DirectionVector(yaw float64, dir MoveDirection) Vec3 {
	sin, cos := math.Sin(yaw), math.Cos(yaw)
	forward := Vec3{X: -sin, Z: -cos}
	right := Vec3{X: cos, Z: -sin}

	switch dir {
	case DirForward:
		return forward
	case DirBackward:
		return forward.Scale(-1)
	case DirLeft:
		return right.Scale(-1)
	case DirRight:
		return right
	}
	return Vec3{}
}

// Step advances the state by one fixed tick. prevJump is the jump flag of the
// previously applied command; the jump impulse fires only on its rising edge
// and only while grounded. The function is pure apart from the resolver and
// must stay bit-for-bit reproducible: it runs every render frame on the
// client and every sub-step on the server.
func Step(s MoveState, cmd Command, prevJump bool, delta float64, resolve ObstacleResolver) MoveState {
	dir := DetermineDirection(cmd.Forward, cmd.Backward, cmd.Left, cmd.Right)

	if dir != DirNone {
		speed := PlayerSpeed
		if cmd.Sprint {
			speed *= SprintMultiplier
		}
		move := DirectionVector(cmd.Yaw, dir).Scale(speed * delta)
		toX := s.Pos.X + move.X
		toZ := s.Pos.Z + move.Z
		if resolve != nil {
			toX, toZ = resolve(s.Pos.X, s.Pos.Z, toX, toZ)
		}
		s.Pos.X = toX
		s.Pos.Z = toZ
	}

	s.VertVel += Gravity * delta

	if cmd.Jump && !prevJump && s.Pos.Y <= GroundEpsilon {
		s.VertVel = JumpForce
	}

	s.Pos.Y += s.VertVel * delta

	if s.Pos.Y <= 0 {
		s.Pos.Y = 0
		s.VertVel = 0
	}

	return s
}
