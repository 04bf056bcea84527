package hostfuncs

import (
	"time"

	"github.com/zomekit-dev/zome-sdk/domain/entities"
	"github.com/zomekit-dev/zome-sdk/hash"
)

// DefaultSignalBufferLimit caps retained signals. Emission is
// fire-and-forget, so once the buffer is full new signals are counted and
// dropped rather than blocking the emitting call.
const DefaultSignalBufferLimit = 1024

// SignalRecord is one buffered signal with its emission context.
type SignalRecord struct {
	ID     string
	From   hash.Hash
	Signal entities.Signal
	At     time.Time
}

// SignalBuffer retains emitted signals up to a limit. It is not safe for
// concurrent use on its own; the conductor serializes access.
type SignalBuffer struct {
	records []SignalRecord
	limit   int
	Dropped int
}

// NewSignalBuffer creates a buffer retaining at most limit signals.
func NewSignalBuffer(limit int) *SignalBuffer {
	return &SignalBuffer{limit: limit}
}

// Push appends a signal, dropping it if the buffer is full.
func (b *SignalBuffer) Push(rec SignalRecord) {
	if len(b.records) >= b.limit {
		b.Dropped++
		return
	}
	b.records = append(b.records, rec)
}

// Drain returns the buffered signals and empties the buffer. The Dropped
// counter is left intact so callers can still observe overflow.
func (b *SignalBuffer) Drain() []SignalRecord {
	out := b.records
	b.records = nil
	return out
}

// Len returns the number of buffered signals.
func (b *SignalBuffer) Len() int { return len(b.records) }
