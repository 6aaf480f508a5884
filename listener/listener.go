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

// Package listener implements the beacon protocol's C8 listener loop: it
// binds the beacon UDP port, multiplexes incoming datagrams with an
// optional host event channel, and feeds packets through the pair
// tracker (C5) and recognizer (C6).
package listener

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/arcan-fe/beacon"
	"github.com/arcan-fe/beacon/internal/telemetry"
	"github.com/arcan-fe/beacon/internal/xof"
)

// datagram is one received UDP packet, handed from the blocking recv
// goroutine to the loop's select statement.
type datagram struct {
	source     string
	payload    []byte
	receivedAt time.Time
}

// Loop is a running listener: it owns a bound UDP socket, a pair
// tracker, and drives the recognizer against an injected keystore.
type Loop struct {
	Keystore    beacon.Keystore
	Hasher      xof.Hasher
	BindAddr    string
	PendingTTL  time.Duration
	OnBeacon    beacon.BeaconFunc
	OnChannel   beacon.ChannelFunc
	HostChannel <-chan struct{}
	Log         zerolog.Logger

	conn    *net.UDPConn
	tracker *beacon.Tracker
	die     chan struct{}
	dieOnce sync.Once
}

// New returns a listener loop recognizing against ks and reporting
// matches to onBeacon. OnChannel and HostChannel are left nil; set them on
// the returned Loop to multiplex a host event channel. Without them the
// loop exits via ctx cancellation, Close, or OnBeacon returning false.
func New(ks beacon.Keystore, bindAddr string, pendingTTL time.Duration, onBeacon beacon.BeaconFunc, log zerolog.Logger) *Loop {
	return &Loop{
		Keystore:   ks,
		Hasher:     xof.Default,
		BindAddr:   bindAddr,
		PendingTTL: pendingTTL,
		OnBeacon:   onBeacon,
		Log:        log,
		die:        make(chan struct{}),
	}
}

// Close stops a running loop and releases its socket.
func (l *Loop) Close() {
	l.dieOnce.Do(func() {
		close(l.die)
		if l.conn != nil {
			l.conn.Close()
		}
	})
}

// Run binds the listener socket and processes datagrams until ctx is
// canceled, Close is called, or OnChannel/OnBeacon signals stop.
func (l *Loop) Run(ctx context.Context) error {
	addr := &net.UDPAddr{IP: net.ParseIP(l.BindAddr), Port: beacon.Port}
	conn, err := net.ListenUDP("udp4", addr)
	if err != nil {
		return err
	}
	l.conn = conn
	defer conn.Close()

	l.tracker = beacon.NewTracker(l.Hasher)

	datagrams := make(chan datagram, 64)
	go l.recvLoop(conn, datagrams)

	ttl := l.PendingTTL
	if ttl <= 0 {
		ttl = 3 * beacon.PairInterval
	}
	sweep := time.NewTicker(ttl)
	defer sweep.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-l.die:
			return nil

		case dg, ok := <-datagrams:
			if !ok {
				return nil
			}
			if !l.handleDatagram(ctx, dg) {
				return nil
			}

		case <-sweep.C:
			evicted := l.tracker.SweepExpired(time.Now(), ttl)
			for _, source := range evicted {
				telemetry.PairsEvictedTTL.Inc()
				l.Log.Debug().Str("source", source).Msg("beacon_evict:ttl")
			}

		case _, ok := <-l.HostChannel:
			if !ok {
				l.HostChannel = nil
				continue
			}
			if l.OnChannel != nil && !l.OnChannel(ctx) {
				return nil
			}
		}
	}
}

// recvLoop blocks on ReadFromUDP and forwards structurally-sized
// datagrams to out. Interrupted reads retry; any other error also
// retries — receive errors never tear down the loop themselves, only a
// closed socket does (its net.ErrClosed read exits this goroutine).
func (l *Loop) recvLoop(conn *net.UDPConn, out chan<- datagram) {
	defer close(out)
	buf := make([]byte, beacon.MaxBytes)
	for {
		n, addr, err := conn.ReadFromUDP(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			continue
		}
		if n < beacon.MinBytes {
			telemetry.PacketsDropped.Inc()
			continue
		}

		payload := make([]byte, n)
		copy(payload, buf[:n])
		select {
		case out <- datagram{source: addr.IP.String(), payload: payload, receivedAt: time.Now()}:
		default:
			// backpressure: the loop is behind, drop rather than block
			// the socket read — a dropped beacon is recoverable next
			// cycle, a stalled recv is not.
			telemetry.PacketsDropped.Inc()
		}
	}
}

// handleDatagram runs one datagram through the tracker and, on a
// completed pair, the recognizer. Returns false if OnBeacon signaled
// stop.
func (l *Loop) handleDatagram(ctx context.Context, dg datagram) bool {
	result := l.tracker.Process(dg.source, dg.payload, dg.receivedAt)

	switch result.Kind {
	case beacon.KindDropped:
		telemetry.PacketsDropped.Inc()

	case beacon.KindStored:
		// nothing to report yet; slot 0 recorded.

	case beacon.KindEvicted:
		if result.Reason == beacon.ErrChecksum {
			telemetry.PairsEvictedChecksum.Inc()
		} else {
			telemetry.PairsEvictedLength.Inc()
		}
		l.Log.Warn().Str("source", dg.source).Err(result.Reason).Msg("beacon_fail")

	case beacon.KindShifted:
		telemetry.PairsShifted.Inc()
		l.Log.Debug().Str("source", dg.source).Err(result.Reason).Msg("beacon_shift")

	case beacon.KindPaired:
		telemetry.PairsCompleted.Inc()
		telemetry.PairAge.Update(dg.receivedAt.Sub(result.FirstSeen).Seconds())
		if l.OnBeacon == nil {
			return true
		}
		matchCb := func(rctx context.Context, matched [beacon.MemberSize]byte, challenge [8]byte, tag string, source string) bool {
			telemetry.MatchesFound.Inc()
			return l.OnBeacon(rctx, matched, challenge, tag, source)
		}
		return beacon.Recognize(ctx, l.Keystore, result.Challenge, result.Entries, dg.source, matchCb)
	}
	return true
}
