package beacon

import "context"

// Recognize scans entries (the blinded key set from a validated pair's
// slot 0, at challenge) against ks, invoking cb once per locally known
// key that matches. If entries is empty — a structurally valid pair
// that advertises nothing — cb is invoked exactly once with the null
// key so the peer's bare presence is still surfaced. In practice
// MinBytes forces every structurally valid packet to carry at least
// one entry, so this path only fires when a caller passes an empty
// entry slice directly rather than one produced by Decode.
//
// Recognize stops and returns false as soon as cb returns false.
func Recognize(ctx context.Context, ks Keystore, challenge uint64, entries [][MemberSize]byte, source string, cb BeaconFunc) bool {
	cb64 := ChallengeBytes(challenge)

	if len(entries) == 0 {
		return cb(ctx, NullKey, cb64, "", source)
	}

	for _, entry := range entries {
		cont := ks.AcceptedChallenge(ctx, entry, cb64, func(pub [MemberSize]byte, tag string) bool {
			return cb(ctx, pub, cb64, tag, source)
		})
		if !cont {
			return false
		}
	}
	return true
}
