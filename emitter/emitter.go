// Copyright (c) 2024 The Beacon Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

// Package emitter implements the beacon protocol's C7 emitter loop: it
// opens a broadcast UDP socket and periodically advertises the local
// keystore's public keys in blinded, paired packets.
package emitter

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/arcan-fe/beacon"
	"github.com/arcan-fe/beacon/internal/telemetry"
	"github.com/arcan-fe/beacon/internal/xof"
)

// broadcastAddr is the destination every beacon packet is sent to.
var broadcastAddr = &net.UDPAddr{IP: net.IPv4bcast, Port: beacon.Port}

// Loop is a running emitter: it owns a broadcast socket and drives
// beacon.Build against a keystore until its context is canceled or a
// send fails.
type Loop struct {
	Keystore  beacon.Keystore
	Hasher    xof.Hasher
	TimeSleep time.Duration
	Log       zerolog.Logger

	conn    *net.UDPConn
	die     chan struct{}
	dieOnce sync.Once
}

// New returns an emitter loop advertising ks's keys, sleeping for the
// duration sleep between exhausted cycles, logging through log.
func New(ks beacon.Keystore, sleep time.Duration, log zerolog.Logger) *Loop {
	return &Loop{
		Keystore:  ks,
		Hasher:    xof.Default,
		TimeSleep: sleep,
		Log:       log,
		die:       make(chan struct{}),
	}
}

// Close stops a running loop immediately and releases its socket.
func (l *Loop) Close() {
	l.dieOnce.Do(func() {
		close(l.die)
		if l.conn != nil {
			l.conn.Close()
		}
	})
}

// Run opens the broadcast socket and emits packet pairs until ctx is
// canceled, Close is called, or a send fails. A send error is logged
// and terminates the loop; restarting is the caller's decision, not the
// emitter's.
func (l *Loop) Run(ctx context.Context) error {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{Port: 0})
	if err != nil {
		return err
	}
	if err := setBroadcastOptions(conn); err != nil {
		conn.Close()
		return err
	}
	l.conn = conn
	defer conn.Close()

	mask, err := l.Keystore.PublicTagset(ctx)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-l.die:
			return nil
		default:
		}

		result, err := beacon.Build(mask, l.Hasher)
		if err != nil {
			l.Log.Error().Err(err).Msg("beacon_fail:emitter:challenge generation")
			return err
		}

		if result.Empty {
			telemetry.CyclesExhausted.Inc()
			if !l.sleep(ctx, l.TimeSleep) {
				return nil
			}
			mask, err = l.Keystore.PublicTagset(ctx)
			if err != nil {
				return err
			}
			continue
		}

		if _, err := conn.WriteToUDP(result.A, broadcastAddr); err != nil {
			l.Log.Error().Err(err).Msg("beacon_fail:emitter:send A")
			return err
		}
		telemetry.PacketsSent.Inc()

		if !l.sleep(ctx, beacon.PairInterval) {
			return nil
		}

		if _, err := conn.WriteToUDP(result.B, broadcastAddr); err != nil {
			l.Log.Error().Err(err).Msg("beacon_fail:emitter:send B")
			return err
		}
		telemetry.PacketsSent.Inc()
	}
}

// sleep waits for d, returning false if ctx or Close fired first.
func (l *Loop) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	case <-l.die:
		return false
	}
}
