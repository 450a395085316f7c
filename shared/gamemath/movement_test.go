package gamemath

import (
	"math"
	"testing"
)

func TestDetermineDirectionTable(t *testing.T) {
	cases := []struct {
		name                          string
		forward, backward, left, right bool
		want                          MoveDirection
	}{
		{"none", false, false, false, false, DirNone},
		{"forward", true, false, false, false, DirForward},
		{"backward", false, true, false, false, DirBackward},
		{"left", false, false, true, false, DirLeft},
		{"right", false, false, false, true, DirRight},
		{"forward+left", true, false, true, false, DirLeft},
		{"forward+right", true, false, false, true, DirRight},
		{"backward+left", false, true, true, false, DirLeft},
		{"backward+right", false, true, false, true, DirRight},
		{"forward+backward", true, true, false, false, DirNone},
		{"left+right", false, false, true, true, DirNone},
		{"forward+backward+left", true, true, true, false, DirLeft},
		{"all", true, true, true, true, DirNone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DetermineDirection(tc.forward, tc.backward, tc.left, tc.right)
			if got != tc.want {
				t.Fatalf("DetermineDirection(%v,%v,%v,%v) = %v, want %v",
					tc.forward, tc.backward, tc.left, tc.right, got, tc.want)
			}
		})
	}
}

func TestDirectionVectorYawZero(t *testing.T) {
	const eps = 1e-12

	fwd := DirectionVector(0, DirForward)
	if math.Abs(fwd.X) > eps || math.Abs(fwd.Z+1) > eps {
		t.Fatalf("forward at yaw 0 = %+v, want (0,0,-1)", fwd)
	}
	right := DirectionVector(0, DirRight)
	if math.Abs(right.X-1) > eps || math.Abs(right.Z) > eps {
		t.Fatalf("right at yaw 0 = %+v, want (1,0,0)", right)
	}
	left := DirectionVector(0, DirLeft)
	if math.Abs(left.X+1) > eps || math.Abs(left.Z) > eps {
		t.Fatalf("left at yaw 0 = %+v, want (-1,0,0)", left)
	}
}

func TestStepForwardSpeed(t *testing.T) {
	s := Step(MoveState{}, Command{Forward: true}, false, SimDelta, nil)
	wantZ := -PlayerSpeed * SimDelta
	if math.Abs(s.Pos.Z-wantZ) > 1e-12 || s.Pos.X != 0 {
		t.Fatalf("forward step moved to %+v, want z=%v", s.Pos, wantZ)
	}

	s = Step(MoveState{}, Command{Forward: true, Sprint: true}, false, SimDelta, nil)
	wantZ = -PlayerSpeed * SprintMultiplier * SimDelta
	if math.Abs(s.Pos.Z-wantZ) > 1e-12 {
		t.Fatalf("sprint step moved to %+v, want z=%v", s.Pos, wantZ)
	}
}

func TestStepJumpEdgeTriggered(t *testing.T) {
	s := MoveState{}
	prevJump := false
	impulses := 0

	// Hold jump for three consecutive ticks while grounded.
	for i := 0; i < 3; i++ {
		before := s.VertVel
		s = Step(s, Command{Jump: true}, prevJump, SimDelta, nil)
		if s.VertVel > before && s.VertVel > JumpForce/2 {
			impulses++
		}
		prevJump = true
	}

	if impulses != 1 {
		t.Fatalf("jump impulse applied %d times over 3 held ticks, want 1", impulses)
	}
	if s.Pos.Y <= 0 {
		t.Fatalf("player should be airborne after jump, y=%v", s.Pos.Y)
	}
}

func TestStepNoMidairJump(t *testing.T) {
	s := Step(MoveState{}, Command{Jump: true}, false, SimDelta, nil)

	// Release, then press again while airborne: no second impulse.
	s = Step(s, Command{}, true, SimDelta, nil)
	velBefore := s.VertVel
	s = Step(s, Command{Jump: true}, false, SimDelta, nil)
	if s.VertVel > velBefore {
		t.Fatalf("midair jump applied an impulse: vel %v -> %v", velBefore, s.VertVel)
	}
}

func TestStepGroundClamp(t *testing.T) {
	s := MoveState{Pos: Vec3{Y: 0.001}, VertVel: -5}
	s = Step(s, Command{}, false, SimDelta, nil)
	if s.Pos.Y != 0 || s.VertVel != 0 {
		t.Fatalf("ground contact should clamp to y=0 and zero velocity, got y=%v vel=%v", s.Pos.Y, s.VertVel)
	}
}

func TestStepEmptyCommandIsSteadyState(t *testing.T) {
	s := MoveState{}
	for i := 0; i < 10; i++ {
		s = Step(s, Command{}, false, SimDelta, nil)
	}
	if s.Pos != (Vec3{}) {
		t.Fatalf("idle grounded player drifted to %+v", s.Pos)
	}
}

func TestStepDeterministic(t *testing.T) {
	tape := []Command{
		{Forward: true, Yaw: 0.3},
		{Forward: true, Sprint: true, Yaw: 0.3},
		{Forward: true, Right: true, Jump: true, Yaw: 0.7},
		{Jump: true, Yaw: 0.7},
		{Backward: true, Left: true, Yaw: -1.2},
		{},
		{Left: true, Sprint: true, Yaw: 2.9},
	}

	run := func() MoveState {
		s := MoveState{}
		prevJump := false
		for i := 0; i < 600; i++ {
			cmd := tape[i%len(tape)]
			s = Step(s, cmd, prevJump, SimDelta, nil)
			prevJump = cmd.Jump
		}
		return s
	}

	a, b := run(), run()
	if a != b {
		t.Fatalf("two identical runs diverged: %+v vs %+v", a, b)
	}
}

func TestLerpAngleShortestArc(t *testing.T) {
	got := LerpAngle(0.1, 2*math.Pi-0.1, 0.5)
	if math.Abs(math.Mod(got+2*math.Pi, 2*math.Pi)) > 1e-9 {
		t.Fatalf("LerpAngle crossed the long way: got %v, want 0", got)
	}
}
