package xof_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arcan-fe/beacon/internal/xof"
)

func TestBlake2bXOFTruncatesToRequestedSize(t *testing.T) {
	h := xof.Blake2bXOF{}
	assert.Len(t, h.Sum([]byte("hello"), 8), 8)
	assert.Len(t, h.Sum([]byte("hello"), 32), 32)
}

func TestBlake2bXOFDeterministic(t *testing.T) {
	h := xof.Blake2bXOF{}
	a := h.Sum([]byte("same input"), 32)
	b := h.Sum([]byte("same input"), 32)
	assert.Equal(t, a, b)
}

func TestBlake2bXOFDiffersOnInput(t *testing.T) {
	h := xof.Blake2bXOF{}
	a := h.Sum([]byte("input one"), 32)
	b := h.Sum([]byte("input two"), 32)
	assert.NotEqual(t, a, b)
}
