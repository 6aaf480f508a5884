package beacon

import (
	"time"

	"github.com/arcan-fe/beacon/internal/xof"
)

// Kind classifies what a Tracker.Process call did with an incoming
// packet.
type Kind int

const (
	// KindDropped: the packet failed structural validation and was
	// never inserted into the pending map.
	KindDropped Kind = iota
	// KindStored: this was the first packet seen from its source; a
	// pending slot 0 was created.
	KindStored
	// KindEvicted: a hard failure (length mismatch or bad checksum);
	// the pending entry was removed.
	KindEvicted
	// KindShifted: a soft failure (challenge or timing mismatch); the
	// incoming packet became the new slot 0 and the entry was retained.
	KindShifted
	// KindPaired: the pair validated; the caller should run the
	// recognizer over Entries/Challenge, then the entry is evicted.
	KindPaired
)

// Result is what Tracker.Process reports for one packet.
type Result struct {
	Kind      Kind
	Source    string
	Challenge uint64
	Entries   [][MemberSize]byte
	Reason    error
	// FirstSeen is when slot 0 of a completed pair was received; only
	// set for KindPaired.
	FirstSeen time.Time
}

type pendingEntry struct {
	packet     *Packet
	receivedAt time.Time
}

// Tracker correlates incoming packets by source address into pairs and
// enforces the pairing, ordering, timing, and structural invariants of
// the protocol. A Tracker is owned by a single listener loop and is
// never shared across goroutines.
type Tracker struct {
	pending map[string]*pendingEntry
	hasher  xof.Hasher
}

// NewTracker returns an empty tracker using h to verify checksums.
func NewTracker(h xof.Hasher) *Tracker {
	return &Tracker{pending: make(map[string]*pendingEntry), hasher: h}
}

// Pending reports how many sources currently have an uncompleted slot 0
// waiting for a pair. Exposed for TTL eviction and metrics.
func (t *Tracker) Pending() int { return len(t.pending) }

// Process ingests one received datagram from source (a numeric host
// string, no port) at receivedAt.
func (t *Tracker) Process(source string, raw []byte, receivedAt time.Time) Result {
	packet, err := Decode(raw)
	if err != nil {
		return Result{Kind: KindDropped, Source: source, Reason: err}
	}

	prior, ok := t.pending[source]
	if !ok {
		t.pending[source] = &pendingEntry{packet: packet, receivedAt: receivedAt}
		return Result{Kind: KindStored, Source: source}
	}

	return t.validatePair(source, prior, packet, receivedAt)
}

// validatePair runs the ordered pairing checks against the pending
// slot 0 (prior) and the freshly arrived slot 1 (next).
func (t *Tracker) validatePair(source string, prior *pendingEntry, next *Packet, receivedAt time.Time) Result {
	p0 := prior.packet

	if len(p0.Entries) != len(next.Entries) {
		delete(t.pending, source)
		return Result{Kind: KindEvicted, Source: source, Reason: ErrLengthMismatch}
	}

	if p0.Challenge == ^uint64(0) {
		// the first packet's challenge has no valid successor; treat as
		// a timing/challenge-class soft failure and shift.
		t.pending[source] = &pendingEntry{packet: next, receivedAt: receivedAt}
		return Result{Kind: KindShifted, Source: source, Reason: ErrChallengeOverflow}
	}
	if next.Challenge != p0.Challenge+1 {
		t.pending[source] = &pendingEntry{packet: next, receivedAt: receivedAt}
		return Result{Kind: KindShifted, Source: source, Reason: ErrChallengeMismatch}
	}

	if receivedAt.Sub(prior.receivedAt) < MinPairDelta {
		t.pending[source] = &pendingEntry{packet: next, receivedAt: receivedAt}
		return Result{Kind: KindShifted, Source: source, Reason: ErrTimingViolation}
	}

	// entry-length alignment was already enforced by Decode for both
	// packets individually; nothing further to check here.

	if !p0.VerifyChecksum(t.hasher) {
		delete(t.pending, source)
		return Result{Kind: KindEvicted, Source: source, Reason: ErrChecksum}
	}
	if !next.VerifyChecksum(t.hasher) {
		delete(t.pending, source)
		return Result{Kind: KindEvicted, Source: source, Reason: ErrChecksum}
	}

	delete(t.pending, source)
	return Result{Kind: KindPaired, Source: source, Challenge: p0.Challenge, Entries: p0.Entries, FirstSeen: prior.receivedAt}
}

// SweepExpired evicts pending slot-0-only entries older than ttl,
// relative to now. An unbounded pending map is a practical
// vulnerability for a spoofed-source flood, so the listener sweeps
// periodically. Returns the evicted source addresses.
func (t *Tracker) SweepExpired(now time.Time, ttl time.Duration) []string {
	var evicted []string
	for source, entry := range t.pending {
		if now.Sub(entry.receivedAt) > ttl {
			delete(t.pending, source)
			evicted = append(evicted, source)
		}
	}
	return evicted
}
