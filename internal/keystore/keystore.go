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

// Package keystore is a concrete, in-memory implementation of the
// beacon.Keystore collaborator, suitable for tests, the CLI demo, and as
// a reference for wiring a real directory service behind the same
// interface.
package keystore

import (
	"context"
	"sync"

	"github.com/arcan-fe/beacon"
	"github.com/arcan-fe/beacon/internal/xof"
)

// entry is a known public key together with its display tag.
type entry struct {
	pub [beacon.MemberSize]byte
	tag string
}

// Store is a mutex-guarded set of known public keys. Its zero value is
// an empty keystore.
type Store struct {
	mu      sync.Mutex
	entries []entry
	hasher  xof.Hasher
}

// New returns an empty Store that blinds candidate keys with h. A nil h
// falls back to xof.Default.
func New(h xof.Hasher) *Store {
	if h == nil {
		h = xof.Default
	}
	return &Store{hasher: h}
}

// Add registers pub under tag. Re-adding the same key updates its tag.
func (s *Store) Add(pub [beacon.MemberSize]byte, tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].pub == pub {
			s.entries[i].tag = tag
			return
		}
	}
	s.entries = append(s.entries, entry{pub: pub, tag: tag})
}

// Remove drops pub from the keystore, if present.
func (s *Store) Remove(pub [beacon.MemberSize]byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].pub == pub {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

// Len reports the number of known keys.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// PublicTagset implements beacon.Keystore. It copies every key's bytes
// into the returned Mask so the snapshot survives later mutation of the
// Store — the mask contract requires a stable view across a full A/B
// cycle, and this Store can't otherwise freeze itself in place.
func (s *Store) PublicTagset(ctx context.Context) (*beacon.Mask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]beacon.MaskEntry, len(s.entries))
	for i, e := range s.entries {
		snapshot[i] = beacon.MaskEntry{PubKey: e.pub, Tag: e.tag}
	}
	return beacon.NewMask(snapshot), nil
}

// AcceptedChallenge implements beacon.Keystore with a naive O(|keystore|)
// scan: for every known key k, recompute Blind(challenge, k) and compare
// against target.
func (s *Store) AcceptedChallenge(ctx context.Context, target [beacon.MemberSize]byte, challenge [8]byte, cb func(pub [beacon.MemberSize]byte, tag string) bool) bool {
	s.mu.Lock()
	entries := make([]entry, len(s.entries))
	copy(entries, s.entries)
	hasher := s.hasher
	s.mu.Unlock()
	if hasher == nil {
		hasher = xof.Default
	}

	c := uint64(challenge[0])<<56 | uint64(challenge[1])<<48 | uint64(challenge[2])<<40 |
		uint64(challenge[3])<<32 | uint64(challenge[4])<<24 | uint64(challenge[5])<<16 |
		uint64(challenge[6])<<8 | uint64(challenge[7])

	for _, e := range entries {
		if beacon.BlindWith(hasher, c, e.pub) == target {
			if !cb(e.pub, e.tag) {
				return false
			}
		}
	}
	return true
}
