package systems

import (
	"log"
	"math"
	"time"

	"github.com/ferngale/spellarena-mp/components"
	cfg "github.com/ferngale/spellarena-mp/config"
	"github.com/ferngale/spellarena-mp/shared/gamemath"
	"github.com/ferngale/spellarena-mp/shared/messages"
	"github.com/ferngale/spellarena-mp/shared/netcomponents"
	"github.com/ferngale/spellarena-mp/shared/netconfig"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const resendInterval = 50 * time.Millisecond

type netInputState struct {
	seq          uint32
	lastInput    messages.PlayerInput
	hasLast      bool
	lastSendTime time.Time
}

// NewNetworkInputSystem returns an ECS system that samples keyboard and mouse
// input once per fixed tick, steps local prediction with it, and sends
// PlayerInput messages to the server when the input state changes or the
// resend interval elapses.
func NewNetworkInputSystem(sendFn func(any) error, prediction *NetPrediction, localNetID func() esync.NetworkId) func(*ecs.ECS) {
	state := &netInputState{}
	bindings := cfg.Input.Bindings

	return func(e *ecs.ECS) {
		// Nothing to predict until the first snapshot has seeded the spawn.
		if !prediction.Initialized || localNetID() == 0 {
			return
		}

		cmd := gamemath.Command{
			Forward:  anyKeyPressed(bindings[cfg.ActionMoveForward].Keys),
			Backward: anyKeyPressed(bindings[cfg.ActionMoveBackward].Keys),
			Left:     anyKeyPressed(bindings[cfg.ActionMoveLeft].Keys),
			Right:    anyKeyPressed(bindings[cfg.ActionMoveRight].Keys),
			Sprint:   anyKeyPressed(bindings[cfg.ActionSprint].Keys),
			Jump:     anyKeyPressed(bindings[cfg.ActionJump].Keys),
			Yaw:      mouseYaw(),
		}
		attack := anyKeyPressed(bindings[cfg.ActionAttack].Keys)
		cast := anyKeyPressed(bindings[cfg.ActionCast].Keys)

		now := time.Now()
		state.seq++

		moved := prediction.PredictStep(cmd)

		dir := gamemath.DetermineDirection(cmd.Forward, cmd.Backward, cmd.Left, cmd.Right)
		grounded := moved.Pos.Y <= gamemath.GroundEpsilon
		anim := netconfig.DeriveAnimation(dir != gamemath.DirNone, cmd.Sprint, grounded, attack, cast)

		applyLocalState(e.World, localNetID(), moved, cmd, anim, dir != gamemath.DirNone)

		fwd := gamemath.DirectionVector(cmd.Yaw, gamemath.DirForward)
		input := messages.PlayerInput{
			Sequence:  state.seq,
			Forward:   cmd.Forward,
			Backward:  cmd.Backward,
			Left:      cmd.Left,
			Right:     cmd.Right,
			Sprint:    cmd.Sprint,
			Jump:      cmd.Jump,
			Attack:    attack,
			Cast:      cast,
			Yaw:       cmd.Yaw,
			ForwardX:  fwd.X,
			ForwardY:  fwd.Y,
			ForwardZ:  fwd.Z,
			Animation: anim,
			Timestamp: now.UnixMilli(),
		}

		// Only send when the controls changed or the resend interval elapsed;
		// the server latches the last command between sends.
		if state.hasLast && input.SameControls(state.lastInput) && now.Sub(state.lastSendTime) < resendInterval {
			return
		}

		if err := sendFn(input); err != nil {
			log.Printf("[netinput] send error: %v", err)
			return
		}

		// Only transmitted sequences enter the command log: the server never
		// acknowledges a sequence it did not receive, so untransmitted
		// entries could only age out as false loss.
		prediction.Record(state.seq, now)

		state.lastInput = input
		state.hasLast = true
		state.lastSendTime = now
	}
}

// applyLocalState writes the freshly predicted pose onto the local player
// entity so rendering and the camera see it this same frame.
func applyLocalState(world donburi.World, localID esync.NetworkId, moved gamemath.MoveState, cmd gamemath.Command, anim string, moving bool) {
	entity := esync.FindByNetworkId(world, localID)
	if !world.Valid(entity) {
		return
	}
	entry := world.Entry(entity)
	if !entry.HasComponent(netcomponents.NetTransform) {
		return
	}

	tf := netcomponents.NetTransform.Get(entry)
	tf.SetPos(moved.Pos)
	tf.Yaw = cmd.Yaw

	if entry.HasComponent(components.LocalPlayer) {
		local := components.LocalPlayer.Get(entry)
		local.State = moved
		local.Yaw = cmd.Yaw
		local.PrevJump = cmd.Jump
		local.Sprinting = cmd.Sprint
		local.Moving = moving
		local.Animation = anim
	}

	if entry.HasComponent(netcomponents.NetPlayerState) {
		netcomponents.NetPlayerState.Get(entry).Animation = anim
	}
}

// mouseYaw derives the facing angle from the cursor position relative to the
// screen center, where the local player is drawn. Screen right is world +X,
// screen down is world +Z; yaw 0 faces -Z.
func mouseYaw() float64 {
	mx, my := ebiten.CursorPosition()
	dx := float64(mx - cfg.C.Width/2)
	dy := float64(my - cfg.C.Height/2)
	if dx == 0 && dy == 0 {
		return 0
	}
	return math.Atan2(-dx, -dy)
}

func anyKeyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}
