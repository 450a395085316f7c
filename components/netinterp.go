package components

import (
	"time"

	"github.com/ferngale/spellarena-mp/shared/gamemath"
	"github.com/ferngale/spellarena-mp/shared/netconfig"
	"github.com/yohamta/donburi"
)

// TimedPose is one remote-player pose stamped with its client arrival time.
type TimedPose struct {
	X, Y, Z float64
	Yaw     float64
	At      time.Time
}

// SnapshotRing keeps the most recent poses for one remote entity, oldest
// first. Capacity is fixed; pushing past it drops the oldest entry.
type SnapshotRing struct {
	poses []TimedPose
}

// Push appends a pose. Arrivals that moved less than MinSnapshotDelta from
// the newest entry refresh it in place instead of growing the ring, so a
// stationary player does not flush useful history.
func (r *SnapshotRing) Push(p TimedPose) {
	if n := len(r.poses); n > 0 {
		last := r.poses[n-1]
		dx, dy, dz := p.X-last.X, p.Y-last.Y, p.Z-last.Z
		if dx*dx+dy*dy+dz*dz < netconfig.MinSnapshotDelta*netconfig.MinSnapshotDelta {
			r.poses[n-1] = p
			return
		}
	}
	r.poses = append(r.poses, p)
	if len(r.poses) > netconfig.SnapshotRingCap {
		copy(r.poses, r.poses[1:])
		r.poses = r.poses[:netconfig.SnapshotRingCap]
	}
}

// Len reports how many poses are buffered.
func (r *SnapshotRing) Len() int {
	return len(r.poses)
}

// Newest returns the latest pose; ok is false on an empty ring.
func (r *SnapshotRing) Newest() (TimedPose, bool) {
	if len(r.poses) == 0 {
		return TimedPose{}, false
	}
	return r.poses[len(r.poses)-1], true
}

// SampleAt returns the pose at renderTime. When renderTime falls between two
// buffered poses the result is interpolated; before the oldest it clamps to
// the oldest, past the newest it clamps to the newest (no extrapolation).
func (r *SnapshotRing) SampleAt(renderTime time.Time) (TimedPose, bool) {
	n := len(r.poses)
	if n == 0 {
		return TimedPose{}, false
	}
	if n == 1 || !renderTime.After(r.poses[0].At) {
		return r.poses[0], true
	}
	if !renderTime.Before(r.poses[n-1].At) {
		return r.poses[n-1], true
	}

	for i := 1; i < n; i++ {
		if renderTime.Before(r.poses[i].At) {
			from, to := r.poses[i-1], r.poses[i]
			span := to.At.Sub(from.At).Seconds()
			if span <= 0 {
				return to, true
			}
			t := gamemath.Clamp01(renderTime.Sub(from.At).Seconds() / span)
			return TimedPose{
				X:   gamemath.LerpScalar(from.X, to.X, t),
				Y:   gamemath.LerpScalar(from.Y, to.Y, t),
				Z:   gamemath.LerpScalar(from.Z, to.Z, t),
				Yaw: gamemath.LerpAngle(from.Yaw, to.Yaw, t),
				At:  renderTime,
			}, true
		}
	}
	return r.poses[n-1], true
}

// NetInterpData buffers snapshots for one remote player and carries the
// exponentially smoothed pose actually rendered.
type NetInterpData struct {
	Ring SnapshotRing

	SmoothX, SmoothY, SmoothZ float64
	SmoothYaw                 float64
	Initialized               bool
}

var NetInterp = donburi.NewComponentType[NetInterpData]()
