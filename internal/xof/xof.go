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

// Package xof wraps the embedded 256-bit extensible-output hash used to
// derive beacon checksums and blinded key entries. It exists so the
// primitive stays a swappable collaborator instead of a hardwired call.
package xof

import (
	"golang.org/x/crypto/blake2b"
)

// Hasher produces a digest of arbitrary length from a single message.
// Implementations must be safe for concurrent use.
type Hasher interface {
	Sum(data []byte, size int) []byte
}

// Blake2bXOF is the shipped default Hasher, backed by blake2b's
// extensible-output mode so a single primitive serves both the 8-byte
// checksum and the 32-byte blinded entry.
type Blake2bXOF struct{}

// Sum returns the first size bytes of blake2b-XOF(data).
func (Blake2bXOF) Sum(data []byte, size int) []byte {
	x, err := blake2b.NewXOF(uint32(size), nil)
	if err != nil {
		// size is always a small compile-time constant (8 or 32); a
		// construction error here means the primitive itself is broken.
		panic(err)
	}
	if _, err := x.Write(data); err != nil {
		panic(err)
	}
	out := make([]byte, size)
	if _, err := x.Read(out); err != nil {
		panic(err)
	}
	return out
}

// Default is the package-level Hasher used by beacon unless overridden.
var Default Hasher = Blake2bXOF{}
