package beacon

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arcan-fe/beacon/internal/xof"
)

func TestBuildEmptyMaskSignalsEmpty(t *testing.T) {
	mask := NewMask(nil)
	result, err := Build(mask, xof.Default)
	assert.Nil(t, err)
	assert.True(t, result.Empty)
	assert.Nil(t, result.A)
	assert.Nil(t, result.B)
}

func TestBuildProducesPairedChallenges(t *testing.T) {
	entries := []MaskEntry{
		{PubKey: [MemberSize]byte{1}, Tag: "a"},
		{PubKey: [MemberSize]byte{2}, Tag: "b"},
	}
	mask := NewMask(entries)

	result, err := Build(mask, xof.Default)
	assert.Nil(t, err)
	assert.False(t, result.Empty)
	assert.Equal(t, 2, result.Consumed)

	pa, err := Decode(result.A)
	assert.Nil(t, err)
	pb, err := Decode(result.B)
	assert.Nil(t, err)

	assert.Equal(t, pb.Challenge, pa.Challenge+1)
	assert.Equal(t, len(pa.Entries), len(pb.Entries))
	assert.True(t, pa.VerifyChecksum(xof.Default))
	assert.True(t, pb.VerifyChecksum(xof.Default))

	// A's entries are exactly Blind(c, key) for each key in order
	assert.Equal(t, Blind(pa.Challenge, entries[0].PubKey), pa.Entries[0])
	assert.Equal(t, Blind(pa.Challenge, entries[1].PubKey), pa.Entries[1])
	// B's entries use c+1 over the SAME ordered key set
	assert.Equal(t, Blind(pb.Challenge, entries[0].PubKey), pb.Entries[0])
	assert.Equal(t, Blind(pb.Challenge, entries[1].PubKey), pb.Entries[1])

	assert.True(t, mask.Exhausted())
}

func TestBuildBatchesAcrossKeyCap(t *testing.T) {
	var entries []MaskEntry
	for i := 0; i < KeyCap+5; i++ {
		var pk [MemberSize]byte
		pk[0] = byte(i)
		pk[1] = byte(i >> 8)
		entries = append(entries, MaskEntry{PubKey: pk, Tag: "x"})
	}
	mask := NewMask(entries)

	first, err := Build(mask, xof.Default)
	assert.Nil(t, err)
	assert.Equal(t, KeyCap, first.Consumed)
	assert.False(t, mask.Exhausted())

	second, err := Build(mask, xof.Default)
	assert.Nil(t, err)
	assert.Equal(t, 5, second.Consumed)
	assert.True(t, mask.Exhausted())

	third, err := Build(mask, xof.Default)
	assert.Nil(t, err)
	assert.True(t, third.Empty)
}

// rebuilding against a fresh snapshot of the same keystore emits the
// same logical key set, with fresh challenges each cycle.
func TestBuildIdempotentAcrossCycles(t *testing.T) {
	keys := []MaskEntry{{PubKey: [MemberSize]byte{9}, Tag: "only"}}

	mask1 := NewMask(append([]MaskEntry(nil), keys...))
	r1, err := Build(mask1, xof.Default)
	assert.Nil(t, err)

	mask2 := NewMask(append([]MaskEntry(nil), keys...))
	r2, err := Build(mask2, xof.Default)
	assert.Nil(t, err)

	p1, _ := Decode(r1.A)
	p2, _ := Decode(r2.A)
	assert.Equal(t, len(p1.Entries), len(p2.Entries))
	// challenges are independently random; entries legitimately differ
	// across cycles, but both must recognize back to the same key.
	assert.Equal(t, Blind(p1.Challenge, keys[0].PubKey), p1.Entries[0])
	assert.Equal(t, Blind(p2.Challenge, keys[0].PubKey), p2.Entries[0])
}
