package components

import (
	"math"
	"testing"
	"time"

	"github.com/ferngale/spellarena-mp/shared/netconfig"
)

func TestSnapshotRingMidpointSample(t *testing.T) {
	base := time.Unix(100, 0)
	var ring SnapshotRing
	ring.Push(TimedPose{X: 0, Z: 0, At: base.Add(1000 * time.Millisecond)})
	ring.Push(TimedPose{X: 10, Z: 0, At: base.Add(1100 * time.Millisecond)})

	pose, ok := ring.SampleAt(base.Add(1050 * time.Millisecond))
	if !ok {
		t.Fatal("sample failed")
	}
	if math.Abs(pose.X-5) > 1e-9 {
		t.Fatalf("midpoint x = %v, want 5", pose.X)
	}
	if pose.Z != 0 {
		t.Fatalf("midpoint z = %v, want 0", pose.Z)
	}
}

func TestSnapshotRingCapKeepsNewest(t *testing.T) {
	base := time.Unix(100, 0)
	var ring SnapshotRing
	for i := 0; i < 15; i++ {
		ring.Push(TimedPose{X: float64(i), At: base.Add(time.Duration(i) * 50 * time.Millisecond)})
	}

	if ring.Len() != netconfig.SnapshotRingCap {
		t.Fatalf("ring len = %d, want %d", ring.Len(), netconfig.SnapshotRingCap)
	}
	newest, _ := ring.Newest()
	if newest.X != 14 {
		t.Fatalf("newest x = %v, want 14", newest.X)
	}

	// Oldest surviving pose is the 6th pushed (x=5).
	oldest, ok := ring.SampleAt(base)
	if !ok || oldest.X != 5 {
		t.Fatalf("oldest x = %v, want 5", oldest.X)
	}
}

func TestSnapshotRingClampsPastNewest(t *testing.T) {
	base := time.Unix(100, 0)
	var ring SnapshotRing
	ring.Push(TimedPose{X: 1, At: base})
	ring.Push(TimedPose{X: 3, At: base.Add(100 * time.Millisecond)})

	pose, ok := ring.SampleAt(base.Add(5 * time.Second))
	if !ok || pose.X != 3 {
		t.Fatalf("clamp past newest: x = %v, want 3", pose.X)
	}
}

func TestSnapshotRingSingleEntry(t *testing.T) {
	base := time.Unix(100, 0)
	var ring SnapshotRing
	ring.Push(TimedPose{X: 7, Yaw: 1.5, At: base})

	pose, ok := ring.SampleAt(base.Add(-time.Second))
	if !ok || pose.X != 7 {
		t.Fatalf("single-entry sample: %+v, ok=%v", pose, ok)
	}
	pose, ok = ring.SampleAt(base.Add(time.Second))
	if !ok || pose.X != 7 {
		t.Fatalf("single-entry sample forward: %+v, ok=%v", pose, ok)
	}
}

func TestSnapshotRingSkipsStationaryArrivals(t *testing.T) {
	base := time.Unix(100, 0)
	var ring SnapshotRing
	ring.Push(TimedPose{X: 1, At: base})
	// Same position: the newest entry is refreshed rather than appended.
	ring.Push(TimedPose{X: 1, Yaw: 0.5, At: base.Add(50 * time.Millisecond)})

	if ring.Len() != 1 {
		t.Fatalf("ring len = %d, want 1 for stationary arrival", ring.Len())
	}
	newest, _ := ring.Newest()
	if newest.Yaw != 0.5 {
		t.Fatalf("refreshed pose yaw = %v, want 0.5", newest.Yaw)
	}
	if !newest.At.Equal(base.Add(50 * time.Millisecond)) {
		t.Fatalf("refreshed pose kept stale timestamp %v", newest.At)
	}
}

func TestSnapshotRingYawShortestArc(t *testing.T) {
	base := time.Unix(100, 0)
	var ring SnapshotRing
	ring.Push(TimedPose{X: 0, Yaw: 3.0, At: base})
	ring.Push(TimedPose{X: 1, Yaw: -3.0, At: base.Add(100 * time.Millisecond)})

	pose, _ := ring.SampleAt(base.Add(50 * time.Millisecond))
	// Halfway across the pi boundary, not through zero.
	want := 3.0 + (2*math.Pi-6.0)/2
	got := math.Mod(pose.Yaw+2*math.Pi, 2*math.Pi)
	want = math.Mod(want+2*math.Pi, 2*math.Pi)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("yaw = %v, want %v (shortest arc)", got, want)
	}
}
