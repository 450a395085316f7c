package network

import (
	"log"
	"time"
)

// RTTTracker accumulates round-trip samples measured from input send time to
// server acknowledgement. One sample per sequence: the CommandLog's
// at-most-once Take guarantees duplicates never become samples.
type RTTTracker struct {
	samples []time.Duration

	lastSeq uint32
	hasSeq  bool
}

func NewRTTTracker() *RTTTracker {
	return &RTTTracker{}
}

// Ack records a round-trip sample for an acknowledged input and returns the
// consumed record so the reconciler can compare against its predicted
// position. cmdlog is consulted for the matching send time; unknown or
// already-acknowledged sequences are logged and ignored.
func (t *RTTTracker) Ack(cmdlog *CommandLog, seq uint32, receivedAt time.Time) (CommandRecord, bool) {
	repeat := t.hasSeq && seq == t.lastSeq
	t.lastSeq = seq
	t.hasSeq = true

	entry, ok := cmdlog.Take(seq)
	if !ok {
		// Consecutive snapshots routinely carry the same LastSequence between
		// client sends; only a sequence this tracker has never seen acked is
		// an anomaly worth a log line.
		if !repeat {
			log.Printf("[rtt] no pending entry for acked seq %d (evicted or out of order)", seq)
		}
		return CommandRecord{}, false
	}
	t.samples = append(t.samples, receivedAt.Sub(entry.SentAt))
	return entry, true
}

// SampleCount reports samples accumulated since the last Report.
func (t *RTTTracker) SampleCount() int {
	return len(t.samples)
}

// Report returns min/avg/max over the accumulated samples and resets the
// window. ok is false when no samples arrived since the last report.
func (t *RTTTracker) Report() (min, avg, max time.Duration, ok bool) {
	if len(t.samples) == 0 {
		return 0, 0, 0, false
	}

	min, max = t.samples[0], t.samples[0]
	var total time.Duration
	for _, s := range t.samples {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
		total += s
	}
	avg = total / time.Duration(len(t.samples))

	t.samples = t.samples[:0]
	return min, avg, max, true
}
