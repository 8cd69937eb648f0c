// Package digest wraps blake2b behind a small Write/Sum/Reset type, so
// callers get a collision-resistant content digest alongside
// gzip's CRC-32 without needing to import golang.org/x/crypto directly.
package digest

import (
	"hash"

	"golang.org/x/crypto/blake2b"
)

// Digest accumulates a BLAKE2b-256 digest over bytes written to it.
type Digest struct {
	h hash.Hash
}

// New returns a ready-to-write Digest. blake2b.New256 only fails for a
// MAC key longer than 64 bytes, and New passes no key, so the error is
// discarded.
func New() *Digest {
	h, _ := blake2b.New256(nil)
	return &Digest{h: h}
}

func (d *Digest) Write(p []byte) (int, error) { return d.h.Write(p) }

// Sum appends the current digest to b and returns the resulting slice,
// mirroring hash.Hash.Sum.
func (d *Digest) Sum(b []byte) []byte { return d.h.Sum(b) }

// Reset clears the digest back to its initial state.
func (d *Digest) Reset() { d.h.Reset() }
