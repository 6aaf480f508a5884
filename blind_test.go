package beacon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlindDiffersAcrossChallenge(t *testing.T) {
	var key [MemberSize]byte
	key[0] = 0x42

	a := Blind(7, key)
	b := Blind(8, key)
	assert.NotEqual(t, a, b, "blinded entries for consecutive challenges must differ")
}

func TestBlindDeterministic(t *testing.T) {
	var key [MemberSize]byte
	key[0] = 0x01
	assert.Equal(t, Blind(100, key), Blind(100, key))
}

func TestBlindDiffersAcrossKeys(t *testing.T) {
	var k1, k2 [MemberSize]byte
	k1[0] = 1
	k2[0] = 2
	assert.NotEqual(t, Blind(5, k1), Blind(5, k2))
}
