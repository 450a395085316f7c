package network

import (
	"log"
	"time"

	"github.com/ferngale/spellarena-mp/shared/gamemath"
	"github.com/ferngale/spellarena-mp/shared/netconfig"
)

// CommandRecord records one sent input: when it left and where prediction put
// the player after applying it.
type CommandRecord struct {
	Seq       uint32
	SentAt    time.Time
	Predicted gamemath.Vec3
	taken     bool
}

// CommandLog remembers recently sent inputs so the reconciler can compare the
// server's authoritative result against the position predicted for the same
// sequence, and so RTT can be measured from the acknowledgement. Entries are
// taken at most once and aged out once the server has moved more than
// netconfig.PendingWindow sequences past them.
type CommandLog struct {
	entries []CommandRecord
}

func NewCommandLog() *CommandLog {
	return &CommandLog{
		entries: make([]CommandRecord, 0, netconfig.PendingWindow),
	}
}

// Store records a sent input and the locally predicted position after it.
func (l *CommandLog) Store(seq uint32, sentAt time.Time, predicted gamemath.Vec3) {
	l.entries = append(l.entries, CommandRecord{
		Seq:       seq,
		SentAt:    sentAt,
		Predicted: predicted,
	})
}

// Take looks up the entry for seq and marks it consumed. The second return is
// false when the sequence is unknown or was already taken, which callers
// treat as a duplicate or stale acknowledgement.
func (l *CommandLog) Take(seq uint32) (CommandRecord, bool) {
	for i := range l.entries {
		if l.entries[i].Seq == seq {
			if l.entries[i].taken {
				return CommandRecord{}, false
			}
			l.entries[i].taken = true
			return l.entries[i], true
		}
	}
	return CommandRecord{}, false
}

// Expire drops entries the server acknowledgement has moved past. ackSeq is
// the newest sequence seen from the server; anything more than PendingWindow
// behind it will never be acknowledged and is evicted.
func (l *CommandLog) Expire(ackSeq uint32) {
	if ackSeq <= netconfig.PendingWindow {
		return
	}
	cutoff := ackSeq - netconfig.PendingWindow

	kept := l.entries[:0]
	evicted := 0
	for _, e := range l.entries {
		if e.Seq < cutoff {
			if !e.taken {
				evicted++
			}
			continue
		}
		kept = append(kept, e)
	}
	l.entries = kept

	if evicted > 0 {
		log.Printf("[commandlog] evicted %d unacknowledged inputs older than seq %d", evicted, cutoff)
	}
}

// Len reports how many entries are retained, taken or not.
func (l *CommandLog) Len() int {
	return len(l.entries)
}

// Reset clears the log, for use on disconnect or respawn.
func (l *CommandLog) Reset() {
	l.entries = l.entries[:0]
}
