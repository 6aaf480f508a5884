package beacon

import "context"

// Keystore is the external collaborator this protocol is built against:
// it enumerates the locally trusted public keys (for the emitter to
// advertise) and checks whether a blinded advertisement matches one of
// them (for the listener to recognize a peer). The beacon core only
// depends on this interface; internal/keystore ships a concrete
// in-memory implementation.
type Keystore interface {
	// PublicTagset populates a fresh Mask snapshot of every currently
	// known public key, paired with its display tag.
	PublicTagset(ctx context.Context) (*Mask, error)

	// AcceptedChallenge scans the keystore for a public key whose
	// Blind(challenge, key) equals entry. For every match it invokes cb
	// with the matched key and tag; cb's return value is carried back
	// as AcceptedChallenge's own result so a caller can short-circuit a
	// multi-entry scan. Implementations may use any internal index to
	// avoid a naive O(|keystore|) scan; the recognizer does no scan of
	// its own and relies on this method for every entry.
	AcceptedChallenge(ctx context.Context, entry [MemberSize]byte, challenge [8]byte, cb func(pub [MemberSize]byte, tag string) bool) bool
}
