package systems

import (
	"log"
	"time"

	"github.com/ferngale/spellarena-mp/network"
	"github.com/ferngale/spellarena-mp/shared/arenadata"
	"github.com/ferngale/spellarena-mp/shared/gamemath"
	"github.com/ferngale/spellarena-mp/shared/netconfig"
)

// ReconcileStats accumulates reconciliation outcomes between diagnostic
// reports.
type ReconcileStats struct {
	Acks     int
	Gentle   int
	Blends   int
	Snaps    int
	MaxError float64
}

// NetPrediction owns client-side prediction for the local player: the
// authoritative-mirror movement state, the log of sent inputs, and the
// tiered reconciliation against server acknowledgements.
type NetPrediction struct {
	Log *network.CommandLog
	RTT *network.RTTTracker

	State    gamemath.MoveState
	PrevJump bool

	// True once the first server snapshot has seeded the position.
	Initialized bool

	Collider *arenadata.Collider

	Stats ReconcileStats
}

func NewNetPrediction() *NetPrediction {
	return &NetPrediction{
		Log: network.NewCommandLog(),
		RTT: network.NewRTTTracker(),
	}
}

// InitCollision builds the obstacle space prediction resolves against. The
// server builds an identical one per player from the same arena data.
func (p *NetPrediction) InitCollision(arena *arenadata.Arena, x, z float64) {
	p.Collider = arenadata.NewCollider(arena, x, z)
}

// PredictStep advances the local player one fixed simulation step with cmd
// and returns the new state.
func (p *NetPrediction) PredictStep(cmd gamemath.Command) gamemath.MoveState {
	var resolve gamemath.ObstacleResolver
	if p.Collider != nil {
		resolve = p.Collider.Resolve
	}
	p.State = gamemath.Step(p.State, cmd, p.PrevJump, gamemath.SimDelta, resolve)
	p.PrevJump = cmd.Jump
	return p.State
}

// Record stores the predicted position for a just-sent input so the matching
// acknowledgement can be compared against it later.
func (p *NetPrediction) Record(seq uint32, sentAt time.Time) {
	p.Log.Store(seq, sentAt, p.State.Pos)
}

// ApplySpawn seeds prediction wholesale from the first authoritative
// snapshot.
func (p *NetPrediction) ApplySpawn(pos gamemath.Vec3) {
	p.State = gamemath.MoveState{Pos: pos}
	p.PrevJump = false
	p.Initialized = true
	if p.Collider != nil {
		p.Collider.Warp(pos.X, pos.Z)
	}
}

// Reconcile compares the server's authoritative position for ackSeq against
// the position predicted for that same input and nudges the current
// predicted state by the tiered correction. Returns true when the position
// changed. Duplicate or stale acknowledgements are ignored.
func (p *NetPrediction) Reconcile(serverPos gamemath.Vec3, ackSeq uint32, receivedAt time.Time) bool {
	rec, ok := p.RTT.Ack(p.Log, ackSeq, receivedAt)
	p.Log.Expire(ackSeq)
	if !ok {
		return false
	}

	p.Stats.Acks++
	errVec := serverPos.Sub(rec.Predicted)
	dist := errVec.Length()
	if dist > p.Stats.MaxError {
		p.Stats.MaxError = dist
	}
	if dist == 0 {
		return false
	}

	factor, snap := CorrectionFactor(dist)
	if snap {
		log.Printf("[netprediction] error %.2fm at seq %d, snapping to server position", dist, ackSeq)
		p.Stats.Snaps++
		p.State.Pos = serverPos
	} else {
		if dist > netconfig.GentleThreshold {
			p.Stats.Blends++
		} else {
			p.Stats.Gentle++
		}
		p.State.Pos = p.State.Pos.Add(errVec.Scale(factor))
	}

	if p.State.Pos.Y < 0 {
		p.State.Pos.Y = 0
		p.State.VertVel = 0
	}
	if p.Collider != nil {
		p.Collider.Warp(p.State.Pos.X, p.State.Pos.Z)
	}
	return true
}

// TakeStats returns the accumulated reconciliation stats and resets them.
func (p *NetPrediction) TakeStats() ReconcileStats {
	s := p.Stats
	p.Stats = ReconcileStats{}
	return s
}

// Reset drops all prediction state, for disconnect teardown.
func (p *NetPrediction) Reset() {
	if p.Collider != nil {
		p.Collider.Remove()
		p.Collider = nil
	}
	p.Log.Reset()
	p.State = gamemath.MoveState{}
	p.PrevJump = false
	p.Initialized = false
	p.Stats = ReconcileStats{}
}

// CorrectionFactor maps a prediction error distance to the blend factor
// applied toward the server position. snap is true when the error is large
// enough to warrant teleporting instead of blending.
func CorrectionFactor(dist float64) (factor float64, snap bool) {
	switch {
	case dist >= netconfig.SnapThreshold:
		return 1, true
	case dist > netconfig.GentleThreshold:
		f := netconfig.CorrectionBase + dist*netconfig.CorrectionGain
		if f > netconfig.CorrectionMax {
			f = netconfig.CorrectionMax
		}
		return f, false
	default:
		return netconfig.GentleFactor, false
	}
}
