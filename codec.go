package beacon

import (
	"encoding/binary"

	"github.com/arcan-fe/beacon/internal/xof"
)

// Packet is a decoded beacon packet: an 8-byte checksum, a big-endian
// 64-bit challenge, and zero or more MemberSize-byte blinded entries.
//
// Wire layout (offsets in bytes):
//
//	0  : 8   checksum  = hash(challenge || entries)[:8]
//	8  : 8   challenge = big-endian uint64
//	16 : N*MemberSize  blinded entries
type Packet struct {
	Checksum  [8]byte
	Challenge uint64
	Entries   [][MemberSize]byte
}

// Decode structurally validates raw and splits it into a Packet. It does
// not verify the checksum — that is deferred until a pair exists (see
// the pair tracker), since a lone, never-paired slot 0 is never trusted.
func Decode(raw []byte) (*Packet, error) {
	if len(raw) < MinBytes {
		return nil, ErrTooShort
	}
	if len(raw) > MaxBytes {
		return nil, ErrTooLong
	}
	entryBytes := len(raw) - HeaderSize
	if entryBytes <= 0 || entryBytes%MemberSize != 0 {
		return nil, ErrMisaligned
	}

	p := &Packet{}
	copy(p.Checksum[:], raw[0:8])
	p.Challenge = binary.BigEndian.Uint64(raw[8:16])

	n := entryBytes / MemberSize
	p.Entries = make([][MemberSize]byte, n)
	for i := 0; i < n; i++ {
		off := HeaderSize + i*MemberSize
		copy(p.Entries[i][:], raw[off:off+MemberSize])
	}
	return p, nil
}

// Encode renders a Packet to its wire form and stamps the checksum over
// challenge||entries using h.
func Encode(challenge uint64, entries [][MemberSize]byte, h xof.Hasher) []byte {
	size := HeaderSize + len(entries)*MemberSize
	buf := make([]byte, size)
	binary.BigEndian.PutUint64(buf[8:16], challenge)
	for i, e := range entries {
		off := HeaderSize + i*MemberSize
		copy(buf[off:off+MemberSize], e[:])
	}
	sum := h.Sum(buf[8:], 8)
	copy(buf[0:8], sum)
	return buf
}

// VerifyChecksum reports whether p.Checksum matches hash(challenge ||
// entries) under h.
func (p *Packet) VerifyChecksum(h xof.Hasher) bool {
	body := make([]byte, 8+len(p.Entries)*MemberSize)
	binary.BigEndian.PutUint64(body[0:8], p.Challenge)
	for i, e := range p.Entries {
		off := 8 + i*MemberSize
		copy(body[off:off+MemberSize], e[:])
	}
	sum := h.Sum(body, 8)
	for i := range sum {
		if sum[i] != p.Checksum[i] {
			return false
		}
	}
	return true
}

// ChallengeBytes returns the canonical big-endian encoding of the
// challenge, as passed to the blinding function and surfaced in
// discovery callbacks.
func ChallengeBytes(challenge uint64) [8]byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], challenge)
	return b
}
