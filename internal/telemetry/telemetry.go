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

// Package telemetry exposes the beacon protocol's operational counters
// through VictoriaMetrics' process-wide metrics registry.
package telemetry

import "github.com/VictoriaMetrics/metrics"

var (
	// PacketsSent counts beacon packets (A and B both) written to the
	// broadcast socket.
	PacketsSent = metrics.NewCounter(`beacon_packets_sent_total`)

	// CyclesExhausted counts emitter cycles where the mask ran out of
	// keys and the emitter went to sleep before rescanning.
	CyclesExhausted = metrics.NewCounter(`beacon_cycles_exhausted_total`)

	// PairsCompleted counts pairs the listener validated successfully.
	PairsCompleted = metrics.NewCounter(`beacon_pairs_completed_total`)

	// PairsShifted counts soft-failure slot shifts (challenge/timing
	// mismatch repair).
	PairsShifted = metrics.NewCounter(`beacon_pairs_shifted_total`)

	// PairsEvicted* count pending-entry evictions, labeled by reason:
	// hard failures (checksum, length) and TTL sweeps.
	PairsEvictedChecksum = metrics.NewCounter(`beacon_pairs_evicted_total{reason="checksum"}`)
	PairsEvictedLength   = metrics.NewCounter(`beacon_pairs_evicted_total{reason="length"}`)
	PairsEvictedTTL      = metrics.NewCounter(`beacon_pairs_evicted_total{reason="ttl"}`)

	// PacketsDropped counts packets rejected at the structural
	// validation stage.
	PacketsDropped = metrics.NewCounter(`beacon_packets_dropped_total`)

	// MatchesFound counts recognized (keystore-known) key matches.
	MatchesFound = metrics.NewCounter(`beacon_matches_total`)

	// PairAge observes the elapsed time between a pair's two packets.
	PairAge = metrics.NewHistogram(`beacon_pair_age_seconds`)
)
