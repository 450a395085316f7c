package systems

import (
	"math"
	"testing"
	"time"

	"github.com/ferngale/spellarena-mp/shared/gamemath"
	"github.com/ferngale/spellarena-mp/shared/netconfig"
)

func TestCorrectionFactorTiers(t *testing.T) {
	if _, snap := CorrectionFactor(1.0); !snap {
		t.Fatal("error of exactly 1.0 must snap")
	}
	if _, snap := CorrectionFactor(2.5); !snap {
		t.Fatal("large error must snap")
	}

	// Just under the snap threshold: blended, capped at CorrectionMax.
	f, snap := CorrectionFactor(0.999)
	if snap {
		t.Fatal("0.999 must blend, not snap")
	}
	if f != netconfig.CorrectionMax {
		t.Fatalf("factor = %v, want cap %v", f, netconfig.CorrectionMax)
	}

	// Mid-range error: base + gain scaling.
	f, _ = CorrectionFactor(0.3)
	want := netconfig.CorrectionBase + 0.3*netconfig.CorrectionGain
	if math.Abs(f-want) > 1e-12 {
		t.Fatalf("factor = %v, want %v", f, want)
	}

	// At or below the gentle threshold: fixed small factor.
	if f, _ := CorrectionFactor(0.2); f != netconfig.GentleFactor {
		t.Fatalf("factor at 0.2 = %v, want %v", f, netconfig.GentleFactor)
	}
	if f, _ := CorrectionFactor(0.05); f != netconfig.GentleFactor {
		t.Fatalf("factor at 0.05 = %v, want %v", f, netconfig.GentleFactor)
	}
}

func TestReconcileSnapOnLargeError(t *testing.T) {
	p := NewNetPrediction()
	p.ApplySpawn(gamemath.Vec3{X: 10, Z: 10})

	now := time.Now()
	p.Record(1, now)

	server := gamemath.Vec3{X: 13, Z: 10}
	if !p.Reconcile(server, 1, now.Add(50*time.Millisecond)) {
		t.Fatal("reconcile reported no change")
	}
	if p.State.Pos != server {
		t.Fatalf("pos = %+v, want snapped to %+v", p.State.Pos, server)
	}
	if p.Stats.Snaps != 1 {
		t.Fatalf("snaps = %d, want 1", p.Stats.Snaps)
	}
}

func TestReconcileGentleNudge(t *testing.T) {
	p := NewNetPrediction()
	p.ApplySpawn(gamemath.Vec3{X: 10, Z: 10})

	now := time.Now()
	p.Record(1, now)

	// 0.1m error: gentle tier moves 5% of the error.
	server := gamemath.Vec3{X: 10.1, Z: 10}
	p.Reconcile(server, 1, now)

	wantX := 10 + 0.1*netconfig.GentleFactor
	if math.Abs(p.State.Pos.X-wantX) > 1e-12 {
		t.Fatalf("pos.X = %v, want %v", p.State.Pos.X, wantX)
	}
	if p.Stats.Snaps != 0 || p.Stats.Gentle != 1 {
		t.Fatalf("stats = %+v", p.Stats)
	}
}

func TestReconcileDuplicateAckIgnored(t *testing.T) {
	p := NewNetPrediction()
	p.ApplySpawn(gamemath.Vec3{X: 10, Z: 10})

	now := time.Now()
	p.Record(1, now)

	server := gamemath.Vec3{X: 10.1, Z: 10}
	p.Reconcile(server, 1, now)
	after := p.State.Pos

	// Same acknowledgement again: no further correction.
	if p.Reconcile(server, 1, now) {
		t.Fatal("duplicate ack applied a correction")
	}
	if p.State.Pos != after {
		t.Fatalf("pos moved on duplicate ack: %+v -> %+v", after, p.State.Pos)
	}
}

func TestReconcileAgreementIsQuiet(t *testing.T) {
	p := NewNetPrediction()
	p.ApplySpawn(gamemath.Vec3{X: 5, Z: 5})

	now := time.Now()
	cmd := gamemath.Command{Forward: true}
	for seq := uint32(1); seq <= 3; seq++ {
		p.PredictStep(cmd)
		p.Record(seq, now)
		// Server agrees exactly with prediction for that input.
		if p.Reconcile(p.State.Pos, seq, now) {
			t.Fatalf("agreeing ack %d moved the player", seq)
		}
	}

	s := p.TakeStats()
	if s.Acks != 3 || s.Snaps != 0 || s.Blends != 0 || s.Gentle != 0 {
		t.Fatalf("stats = %+v, want 3 quiet acks", s)
	}
	if s.MaxError != 0 {
		t.Fatalf("max error = %v, want 0", s.MaxError)
	}
}

func TestPredictStepMatchesKernel(t *testing.T) {
	p := NewNetPrediction()
	p.ApplySpawn(gamemath.Vec3{})

	cmd := gamemath.Command{Forward: true, Yaw: 0}
	got := p.PredictStep(cmd)

	want := gamemath.Step(gamemath.MoveState{}, cmd, false, gamemath.SimDelta, nil)
	if math.Abs(got.Pos.Z-want.Pos.Z) > 1e-12 {
		t.Fatalf("predicted z = %v, kernel z = %v", got.Pos.Z, want.Pos.Z)
	}
}
