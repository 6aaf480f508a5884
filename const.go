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

// Package beacon implements the wire format, blinding scheme, and pairing
// logic for the local-network peer discovery beacon protocol: a UDP
// broadcast mechanism that lets directories, sources and sinks on a LAN
// find each other without a rendezvous server, while hiding long-term
// public keys from observers who don't already hold them.
package beacon

import "time"

const (
	// Port is the UDP port beacons are sent to and listened on.
	Port = 6680

	// MemberSize is the length in bytes of a blinded entry and of a
	// public key.
	MemberSize = 32

	// MaxBytes is the largest beacon packet this protocol will send or
	// accept (a jumbo-frame-sized MTU cap).
	MaxBytes = 9000

	// HeaderSize is the fixed checksum+challenge header preceding the
	// entry section of every packet.
	HeaderSize = 16

	// MinBytes is the smallest structurally valid packet: a header plus
	// exactly one entry.
	MinBytes = HeaderSize + MemberSize

	// MinPairDelta is the minimum elapsed time between a pair's two
	// packets; it doubles as a cheap proof of elapsed time.
	MinPairDelta = 980 * time.Millisecond

	// PairInterval is how far apart the emitter spaces packet A and
	// packet B of a pair.
	PairInterval = 1 * time.Second

	// KeyCap is the largest number of entries that fit in one packet
	// without exceeding MaxBytes.
	KeyCap = (MaxBytes - HeaderSize) / MemberSize
)

// NullKey is the all-zero public key used to surface an empty beacon (a
// peer announcing presence while revealing no keys).
var NullKey [MemberSize]byte
