// Package netconfig defines netcode tuning constants and lightweight types
// shared between client and server. It must have zero dependencies on ebiten
// or any graphics library so the dedicated server binary stays headless.
package netconfig

// Client-side interpolation of remote players.
const (
	// RenderDelayMs is subtracted from the current time before sampling a
	// remote player's snapshot buffer. 100 ms of added visual latency buys
	// immunity to snapshot jitter and out-of-order arrival.
	RenderDelayMs int64 = 100

	// SnapshotRingCap bounds each remote player's snapshot buffer; the
	// oldest entry is evicted first.
	SnapshotRingCap = 10

	// MinSnapshotDelta is the position change below which an arriving
	// snapshot is not worth buffering.
	MinSnapshotDelta = 0.001

	// PosApproachRate and YawApproachRate drive the frame-rate-independent
	// exponential approach toward the interpolated target (per second).
	PosApproachRate = 12.0
	YawApproachRate = 15.0
)

// Reconciliation tiers for the local player. Divergence is expected, not a
// bug; these tiers are the recovery mechanism.
const (
	// SnapThreshold and above is treated as a teleport/desync: predicted
	// state is replaced outright.
	SnapThreshold = 1.0

	// Between GentleThreshold and SnapThreshold the correction factor
	// scales linearly with the error: min(CorrectionMax, CorrectionBase +
	// dist*CorrectionGain).
	GentleThreshold = 0.2
	CorrectionBase  = 0.15
	CorrectionGain  = 0.3
	CorrectionMax   = 0.3

	// At or below GentleThreshold a fixed small blend erases residual
	// numerical drift without visible popping.
	GentleFactor = 0.05
)

// Command sequencing and RTT measurement.
const (
	// PendingWindow is how many sequences back a sent command is remembered
	// for RTT correlation before aging out, bounding memory under loss.
	PendingWindow uint32 = 100

	// DiagReportTicks is how many 60 Hz ticks pass between RTT and
	// reconciliation-error summaries.
	DiagReportTicks = 300
)

// Animation labels. The client decides its own animation and sends it with
// each command; the server echoes it to everyone else.
const (
	AnimIdle   = "idle"
	AnimWalk   = "walk-forward"
	AnimRun    = "run-forward"
	AnimJump   = "jump"
	AnimAttack = "attack1"
	AnimCast   = "cast"
)

// DeriveAnimation picks the animation label for the current input state.
func DeriveAnimation(moving, sprinting, grounded, attack, cast bool) string {
	switch {
	case attack:
		return AnimAttack
	case cast:
		return AnimCast
	case !grounded:
		return AnimJump
	case moving && sprinting:
		return AnimRun
	case moving:
		return AnimWalk
	}
	return AnimIdle
}
