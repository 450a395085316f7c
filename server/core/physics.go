package core

import (
	"github.com/ferngale/spellarena-mp/shared/gamemath"
	"github.com/ferngale/spellarena-mp/shared/messages"
	"github.com/ferngale/spellarena-mp/shared/netcomponents"
)

// updateMovement runs sub-stepped movement for all players. Called once per
// server tick with s.mu held. Sub-stepping ensures the movement constants
// that were tuned for the 60 Hz client step integrate identically at the
// server's lower tick rate.
func (s *Server) updateMovement() {
	stepsPerTick := 60 / s.loop.tickRate // 3 at 20 Hz
	if stepsPerTick < 1 {
		stepsPerTick = 1
	}

	for _, session := range s.sessions {
		if !session.joined || !s.world.Valid(session.entity) {
			continue
		}

		cmd := commandFromInput(session.input)
		for step := 0; step < stepsPerTick; step++ {
			session.state = gamemath.Step(session.state, cmd, session.prevJump, gamemath.SimDelta, session.collider.Resolve)
			session.prevJump = cmd.Jump
		}

		// After all sub-steps, write the final pose back to the synced
		// components.
		entry := s.world.Entry(session.entity)

		tf := netcomponents.NetTransform.Get(entry)
		tf.SetPos(session.state.Pos)
		tf.Yaw = session.input.Yaw

		state := netcomponents.NetPlayerState.Get(entry)
		state.LastSequence = session.lastSeq
		if session.input.Animation != "" {
			state.Animation = session.input.Animation
		}
	}
}

// commandFromInput maps a latched wire command onto the movement kernel's
// input. Yaw rides along unmodified: facing is client-authoritative.
func commandFromInput(in messages.PlayerInput) gamemath.Command {
	return gamemath.Command{
		Forward:  in.Forward,
		Backward: in.Backward,
		Left:     in.Left,
		Right:    in.Right,
		Sprint:   in.Sprint,
		Jump:     in.Jump,
		Yaw:      in.Yaw,
	}
}
