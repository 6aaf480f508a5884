package keystore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arcan-fe/beacon"
	"github.com/arcan-fe/beacon/internal/keystore"
)

func TestPublicTagsetSnapshotSurvivesMutation(t *testing.T) {
	var k1, k2 [beacon.MemberSize]byte
	k1[0] = 1
	k2[0] = 2

	ks := keystore.New(nil)
	ks.Add(k1, "one")

	mask, err := ks.PublicTagset(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, 1, mask.Len())

	// mutate the store after snapshotting: the mask must not see it
	ks.Add(k2, "two")
	assert.Equal(t, 1, mask.Len())

	entry, ok := mask.Next()
	assert.True(t, ok)
	assert.Equal(t, k1, entry.PubKey)
	assert.Equal(t, "one", entry.Tag)

	_, ok = mask.Next()
	assert.False(t, ok)
}

func TestAcceptedChallengeMatchesAndTags(t *testing.T) {
	var k1 [beacon.MemberSize]byte
	k1[0] = 9
	ks := keystore.New(nil)
	ks.Add(k1, "tag-9")

	challenge := beacon.ChallengeBytes(123)
	entry := beacon.Blind(123, k1)

	var gotTag string
	cont := ks.AcceptedChallenge(context.Background(), entry, challenge, func(pub [beacon.MemberSize]byte, tag string) bool {
		assert.Equal(t, k1, pub)
		gotTag = tag
		return true
	})
	assert.True(t, cont)
	assert.Equal(t, "tag-9", gotTag)
}

func TestAddUpdatesTagInPlace(t *testing.T) {
	var k1 [beacon.MemberSize]byte
	k1[0] = 5
	ks := keystore.New(nil)
	ks.Add(k1, "first")
	ks.Add(k1, "second")
	assert.Equal(t, 1, ks.Len())

	mask, err := ks.PublicTagset(context.Background())
	assert.Nil(t, err)
	entry, ok := mask.Next()
	assert.True(t, ok)
	assert.Equal(t, "second", entry.Tag)
}

func TestRemove(t *testing.T) {
	var k1 [beacon.MemberSize]byte
	k1[0] = 7
	ks := keystore.New(nil)
	ks.Add(k1, "x")
	assert.Equal(t, 1, ks.Len())
	ks.Remove(k1)
	assert.Equal(t, 0, ks.Len())
}
