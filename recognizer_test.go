package beacon_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arcan-fe/beacon"
	"github.com/arcan-fe/beacon/internal/keystore"
)

// every key in the advertised set is reported exactly once with the
// right challenge.
func TestRecognizeSingleKeyHappyPath(t *testing.T) {
	var k1, k2 [beacon.MemberSize]byte
	k1[0] = 1
	k2[0] = 2

	ks := keystore.New(nil)
	ks.Add(k1, "tag1")
	ks.Add(k2, "tag2")

	challenge := uint64(7)
	entry := beacon.Blind(challenge, k1)

	var got []beacon.MaskEntry
	ok := beacon.Recognize(context.Background(), ks, challenge, [][beacon.MemberSize]byte{entry}, "10.0.0.9", func(ctx context.Context, matched [beacon.MemberSize]byte, ch [8]byte, tag string, source string) bool {
		got = append(got, beacon.MaskEntry{PubKey: matched, Tag: tag})
		assert.Equal(t, beacon.ChallengeBytes(challenge), ch)
		assert.Equal(t, "10.0.0.9", source)
		return true
	})

	assert.True(t, ok)
	assert.Len(t, got, 1)
	assert.Equal(t, k1, got[0].PubKey)
	assert.Equal(t, "tag1", got[0].Tag)
}

// an unknown emitter's blinded key matches nothing in the keystore.
func TestRecognizeUnknownEmitterNoMatch(t *testing.T) {
	var kX, k1, k2 [beacon.MemberSize]byte
	kX[0] = 0xFF
	k1[0] = 1
	k2[0] = 2

	ks := keystore.New(nil)
	ks.Add(k1, "a")
	ks.Add(k2, "b")

	challenge := uint64(3)
	entry := beacon.Blind(challenge, kX)

	called := false
	beacon.Recognize(context.Background(), ks, challenge, [][beacon.MemberSize]byte{entry}, "10.0.0.10", func(context.Context, [beacon.MemberSize]byte, [8]byte, string, string) bool {
		called = true
		return true
	})
	assert.False(t, called)
}

func TestRecognizeEmptyEntriesSurfacesNullKey(t *testing.T) {
	ks := keystore.New(nil)
	var matched [beacon.MemberSize]byte
	var gotNull bool
	beacon.Recognize(context.Background(), ks, 1, nil, "10.0.0.11", func(ctx context.Context, m [beacon.MemberSize]byte, ch [8]byte, tag string, source string) bool {
		matched = m
		gotNull = true
		return true
	})
	assert.True(t, gotNull)
	assert.Equal(t, beacon.NullKey, matched)
}

func TestRecognizeStopsOnCallbackFalse(t *testing.T) {
	var k1, k2 [beacon.MemberSize]byte
	k1[0] = 1
	k2[0] = 2
	ks := keystore.New(nil)
	ks.Add(k1, "a")
	ks.Add(k2, "b")

	challenge := uint64(4)
	entries := [][beacon.MemberSize]byte{beacon.Blind(challenge, k1), beacon.Blind(challenge, k2)}

	calls := 0
	ok := beacon.Recognize(context.Background(), ks, challenge, entries, "src", func(context.Context, [beacon.MemberSize]byte, [8]byte, string, string) bool {
		calls++
		return false
	})
	assert.False(t, ok)
	assert.Equal(t, 1, calls)
}
