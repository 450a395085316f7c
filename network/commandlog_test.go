package network

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ferngale/spellarena-mp/shared/gamemath"
)

// captureLog redirects the global logger into a buffer for one test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestCommandLogTakeOnce(t *testing.T) {
	l := NewCommandLog()
	base := time.Now()

	l.Store(1, base, gamemath.Vec3{X: 1})
	l.Store(2, base, gamemath.Vec3{X: 2})

	entry, ok := l.Take(2)
	if !ok {
		t.Fatal("first take of seq 2 failed")
	}
	if entry.Predicted.X != 2 {
		t.Fatalf("wrong entry: %+v", entry)
	}

	if _, ok := l.Take(2); ok {
		t.Fatal("second take of seq 2 succeeded, want at-most-once")
	}
	if _, ok := l.Take(99); ok {
		t.Fatal("take of unknown seq succeeded")
	}
	if _, ok := l.Take(1); !ok {
		t.Fatal("seq 1 should still be available")
	}
}

func TestCommandLogExpire(t *testing.T) {
	l := NewCommandLog()
	base := time.Now()

	for seq := uint32(1); seq <= 250; seq++ {
		l.Store(seq, base, gamemath.Vec3{})
	}

	// Server acked 250: everything more than 100 sequences behind is gone.
	l.Expire(250)

	if _, ok := l.Take(149); ok {
		t.Fatal("seq 149 survived expiry, want evicted")
	}
	if _, ok := l.Take(150); !ok {
		t.Fatal("seq 150 evicted, want retained")
	}
	if _, ok := l.Take(250); !ok {
		t.Fatal("seq 250 evicted, want retained")
	}
}

func TestCommandLogExpireEarlyNoop(t *testing.T) {
	l := NewCommandLog()
	l.Store(1, time.Now(), gamemath.Vec3{})

	l.Expire(50)
	if _, ok := l.Take(1); !ok {
		t.Fatal("seq 1 evicted before the window could have passed it")
	}
}

func TestRTTSingleSamplePerAck(t *testing.T) {
	l := NewCommandLog()
	tracker := NewRTTTracker()

	sent := time.Unix(100, 0)
	l.Store(42, sent, gamemath.Vec3{})

	tracker.Ack(l, 42, sent.Add(80*time.Millisecond))
	if tracker.SampleCount() != 1 {
		t.Fatalf("samples = %d, want 1", tracker.SampleCount())
	}

	// Duplicate acknowledgement of the same sequence yields nothing.
	tracker.Ack(l, 42, sent.Add(200*time.Millisecond))
	if tracker.SampleCount() != 1 {
		t.Fatalf("duplicate ack produced a sample: %d", tracker.SampleCount())
	}

	min, avg, max, ok := tracker.Report()
	if !ok {
		t.Fatal("report empty after one sample")
	}
	if min != 80*time.Millisecond || avg != 80*time.Millisecond || max != 80*time.Millisecond {
		t.Fatalf("report = %v/%v/%v, want 80ms each", min, avg, max)
	}

	// Report resets the window.
	if _, _, _, ok := tracker.Report(); ok {
		t.Fatal("report after reset returned samples")
	}
}

func TestRTTReportStats(t *testing.T) {
	l := NewCommandLog()
	tracker := NewRTTTracker()
	base := time.Unix(100, 0)

	l.Store(1, base, gamemath.Vec3{})
	l.Store(2, base, gamemath.Vec3{})
	l.Store(3, base, gamemath.Vec3{})

	tracker.Ack(l, 1, base.Add(40*time.Millisecond))
	tracker.Ack(l, 2, base.Add(60*time.Millisecond))
	tracker.Ack(l, 3, base.Add(110*time.Millisecond))

	min, avg, max, ok := tracker.Report()
	if !ok {
		t.Fatal("no report")
	}
	if min != 40*time.Millisecond {
		t.Fatalf("min = %v", min)
	}
	if max != 110*time.Millisecond {
		t.Fatalf("max = %v", max)
	}
	if avg != 70*time.Millisecond {
		t.Fatalf("avg = %v", avg)
	}
}

func TestRTTAckEvictedSequence(t *testing.T) {
	l := NewCommandLog()
	tracker := NewRTTTracker()

	tracker.Ack(l, 7, time.Now())
	if tracker.SampleCount() != 0 {
		t.Fatalf("ack of unknown seq produced a sample")
	}
}

// Long steady-state play — sequences advance every tick but only some are
// transmitted and therefore stored — must never log evictions: every stored
// sequence gets acknowledged, and untransmitted ones never enter the log.
func TestSteadyStatePlayLogsNoEvictions(t *testing.T) {
	buf := captureLog(t)

	l := NewCommandLog()
	tracker := NewRTTTracker()
	base := time.Unix(100, 0)

	for seq := uint32(3); seq <= 900; seq += 3 {
		l.Store(seq, base, gamemath.Vec3{})
		if _, ok := tracker.Ack(l, seq, base.Add(40*time.Millisecond)); !ok {
			t.Fatalf("ack of seq %d failed", seq)
		}
		l.Expire(seq)
	}

	if out := buf.String(); strings.Contains(out, "evicted") {
		t.Fatalf("steady-state acks produced eviction logs: %q", out)
	}
	if l.Len() > int(2+100/3) {
		t.Fatalf("log retained %d entries, expiry not keeping up", l.Len())
	}
}

// Snapshots repeat LastSequence between client sends; the repeat must stay
// out of the anomaly log, while a never-acked sequence still lands in it.
func TestRTTRepeatedAckQuiet(t *testing.T) {
	buf := captureLog(t)

	l := NewCommandLog()
	tracker := NewRTTTracker()
	base := time.Unix(100, 0)

	l.Store(5, base, gamemath.Vec3{})
	tracker.Ack(l, 5, base.Add(30*time.Millisecond))
	for i := 0; i < 10; i++ {
		tracker.Ack(l, 5, base.Add(time.Duration(50+i*50)*time.Millisecond))
	}
	if out := buf.String(); strings.Contains(out, "[rtt]") {
		t.Fatalf("repeated ack of seq 5 logged an anomaly: %q", out)
	}
	if tracker.SampleCount() != 1 {
		t.Fatalf("samples = %d, want 1", tracker.SampleCount())
	}

	tracker.Ack(l, 999, base.Add(time.Second))
	if out := buf.String(); !strings.Contains(out, "[rtt]") {
		t.Fatal("ack of a never-stored sequence logged nothing")
	}
}
