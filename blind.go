package beacon

import (
	"github.com/arcan-fe/beacon/internal/xof"
)

// Blind computes the blinded entry for pubkey under challenge:
// truncate(hash(challenge_bytes || pubkey), MemberSize). It is used both
// by the builder to construct entries and by the recognizer to test each
// locally known key against a received pair.
func Blind(challenge uint64, pubkey [MemberSize]byte) [MemberSize]byte {
	return BlindWith(xof.Default, challenge, pubkey)
}

// BlindWith is Blind parameterized over the hash primitive, mainly for
// tests that need a deterministic or instrumented Hasher.
func BlindWith(h xof.Hasher, challenge uint64, pubkey [MemberSize]byte) [MemberSize]byte {
	cb := ChallengeBytes(challenge)
	msg := make([]byte, 0, len(cb)+MemberSize)
	msg = append(msg, cb[:]...)
	msg = append(msg, pubkey[:]...)

	var out [MemberSize]byte
	copy(out[:], h.Sum(msg, MemberSize))
	return out
}
