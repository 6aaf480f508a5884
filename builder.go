package beacon

import (
	"crypto/rand"
	"encoding/binary"
	"math"

	"github.com/arcan-fe/beacon/internal/xof"
)

// BuildResult holds one emitter cycle's packet pair, or signals that the
// mask had nothing left to advertise.
type BuildResult struct {
	A, B     []byte
	Empty    bool
	Consumed int
}

// Build draws up to KeyCap keys from mask, advancing its cursor, and
// renders the matching packet pair (A at challenge c, B at challenge
// c+1) over h. If the mask has nothing left, it returns Empty=true and
// the caller should reset the mask and wait before rescanning the
// keystore.
func Build(mask *Mask, h xof.Hasher) (BuildResult, error) {
	if mask.Exhausted() {
		return BuildResult{Empty: true}, nil
	}

	challenge, err := randomChallenge()
	if err != nil {
		return BuildResult{}, err
	}

	var entriesA, entriesB [][MemberSize]byte
	for len(entriesA) < KeyCap {
		entry, ok := mask.Next()
		if !ok {
			break
		}
		entriesA = append(entriesA, BlindWith(h, challenge, entry.PubKey))
		entriesB = append(entriesB, BlindWith(h, challenge+1, entry.PubKey))
	}

	if len(entriesA) == 0 {
		return BuildResult{Empty: true}, nil
	}

	a := Encode(challenge, entriesA, h)
	b := Encode(challenge+1, entriesB, h)
	return BuildResult{A: a, B: b, Consumed: len(entriesA)}, nil
}

// randomChallenge draws a cryptographically secure 64-bit challenge.
// Predictability here would let an attacker precompute the expected
// entries for a target key, so math/rand is never an acceptable
// substitute. math.MaxUint64 is excluded since no valid c+1 successor
// exists for it.
func randomChallenge() (uint64, error) {
	for {
		var b [8]byte
		if _, err := rand.Read(b[:]); err != nil {
			return 0, err
		}
		c := binary.BigEndian.Uint64(b[:])
		if c != math.MaxUint64 {
			return c, nil
		}
	}
}
