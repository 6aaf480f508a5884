package emitter

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/arcan-fe/beacon"
	"github.com/arcan-fe/beacon/internal/keystore"
)

func TestLoopExitsOnContextCancel(t *testing.T) {
	ks := keystore.New(nil)
	var k1 [beacon.MemberSize]byte
	k1[0] = 1
	ks.Add(k1, "only")

	loop := New(ks, 50*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	// let it send at least the first packet of the pair, then stop it
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.Nil(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("loop did not exit after context cancellation")
	}
}

func TestLoopExitsOnClose(t *testing.T) {
	ks := keystore.New(nil)
	loop := New(ks, 50*time.Millisecond, zerolog.Nop())

	done := make(chan error, 1)
	go func() { done <- loop.Run(context.Background()) }()

	time.Sleep(50 * time.Millisecond)
	loop.Close()

	select {
	case err := <-done:
		assert.Nil(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("loop did not exit after Close")
	}
}
