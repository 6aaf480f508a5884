package beacon

import "errors"

// Structural and pairing errors.
var (
	// ErrTooShort is returned when a packet is smaller than MinBytes.
	ErrTooShort = errors.New("beacon: packet shorter than minimum size")
	// ErrTooLong is returned when a packet exceeds MaxBytes.
	ErrTooLong = errors.New("beacon: packet exceeds maximum size")
	// ErrMisaligned is returned when the entry section isn't a positive
	// multiple of MemberSize.
	ErrMisaligned = errors.New("beacon: entry section misaligned")
	// ErrChecksum is returned when a packet's checksum doesn't validate.
	ErrChecksum = errors.New("beacon: checksum mismatch")
	// ErrLengthMismatch is returned when two packets in a candidate pair
	// carry a different number of entries.
	ErrLengthMismatch = errors.New("beacon: pair entry length mismatch")
	// ErrChallengeMismatch is returned when the second packet's
	// challenge isn't exactly one more than the first's.
	ErrChallengeMismatch = errors.New("beacon: pair challenge mismatch")
	// ErrChallengeOverflow is returned when the first packet's challenge
	// is already the maximum uint64 value, so no valid successor exists.
	ErrChallengeOverflow = errors.New("beacon: challenge would overflow")
	// ErrTimingViolation is returned when the two packets of a pair
	// arrive less than MinPairDelta apart.
	ErrTimingViolation = errors.New("beacon: pair arrived before minimum delta")
)
