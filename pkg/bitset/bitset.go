// Package bitset implements the fixed-capacity packed bit array the iZ
// sieves are built on. Capacity never changes after creation; every
// mutator works in place.
package bitset

import (
	"crypto/sha256"
	"fmt"

	"github.com/dchest/siphash"

	"github.com/Zprime137/iZ-lib/pkg/izerr"
)

const wordBits = 64

// BitSet is a packed sequence of bits of fixed size. The zero value is not
// usable; construct with New.
type BitSet struct {
	size  uint64
	words []uint64
}

// New allocates a BitSet of the given size (in bits), all bits cleared.
func New(size uint64) (*BitSet, error) {
	if size == 0 {
		return nil, fmt.Errorf("bitset: size=0: %w", izerr.ErrInvalidArgument)
	}
	n := (size + wordBits - 1) / wordBits
	return &BitSet{size: size, words: make([]uint64, n)}, nil
}

// Len returns the bit array's fixed capacity.
func (b *BitSet) Len() uint64 { return b.size }

// SetAll sets every bit to 1.
func (b *BitSet) SetAll() {
	for i := range b.words {
		b.words[i] = ^uint64(0)
	}
	b.maskTail()
}

// ClearAll clears every bit to 0.
func (b *BitSet) ClearAll() {
	for i := range b.words {
		b.words[i] = 0
	}
}

func (b *BitSet) maskTail() {
	rem := b.size % wordBits
	if rem != 0 && len(b.words) > 0 {
		b.words[len(b.words)-1] &= (uint64(1) << rem) - 1
	}
}

// Get reports whether bit i is set. Out-of-range i returns false.
func (b *BitSet) Get(i uint64) bool {
	if i >= b.size {
		return false
	}
	return b.words[i/wordBits]&(uint64(1)<<(i%wordBits)) != 0
}

// Set sets bit i to 1. Out-of-range i is a no-op.
func (b *BitSet) Set(i uint64) {
	if i >= b.size {
		return
	}
	b.words[i/wordBits] |= uint64(1) << (i % wordBits)
}

// Clear sets bit i to 0. Out-of-range i is a no-op.
func (b *BitSet) Clear(i uint64) {
	if i >= b.size {
		return
	}
	b.words[i/wordBits] &^= uint64(1) << (i % wordBits)
}

// Flip toggles bit i. Out-of-range i is a no-op.
func (b *BitSet) Flip(i uint64) {
	if i >= b.size {
		return
	}
	b.words[i/wordBits] ^= uint64(1) << (i % wordBits)
}

// ClearStride clears indices start, start+p, start+2p, ... while < limit.
// This is the sieve's inner composite-marking loop, so it is written as a
// tight word-level loop rather than calling Clear per index.
func (b *BitSet) ClearStride(p, start, limit uint64) {
	if limit > b.size {
		limit = b.size
	}
	for i := start; i < limit; i += p {
		b.words[i/wordBits] &^= uint64(1) << (i % wordBits)
	}
}

// Clone returns a deep copy of b.
func (b *BitSet) Clone() *BitSet {
	words := make([]uint64, len(b.words))
	copy(words, b.words)
	return &BitSet{size: b.size, words: words}
}

// CopyRange copies len bits from src starting at srcOff into dst starting
// at dstOff. Ranges must fit within each BitSet's capacity.
func CopyRange(dst *BitSet, dstOff uint64, src *BitSet, srcOff uint64, length uint64) {
	for i := uint64(0); i < length; i++ {
		if src.Get(srcOff + i) {
			dst.Set(dstOff + i)
		} else {
			dst.Clear(dstOff + i)
		}
	}
}

// DuplicateSegment tiles the bit range [start, start+segSize) across k
// copies: after the call, for each j in [1, k-1], the range
// [start+j*segSize, start+(j+1)*segSize) is a bitwise copy of
// [start, start+segSize).
func (b *BitSet) DuplicateSegment(start, segSize uint64, k int) {
	for j := 1; j < k; j++ {
		CopyRange(b, start+uint64(j)*segSize, b, start, segSize)
	}
}

// ContentHash returns the 32-byte SHA-256 digest of the packed bit bytes,
// the persisted hash used by the bitmap file format.
func (b *BitSet) ContentHash() [32]byte {
	buf := make([]byte, len(b.words)*8)
	for i, w := range b.words {
		for j := 0; j < 8; j++ {
			buf[i*8+j] = byte(w >> (8 * j))
		}
	}
	return sha256.Sum256(buf)
}

// ValidateHash reports whether want matches ContentHash(), for verifying a
// persisted bitmap file was not corrupted.
func (b *BitSet) ValidateHash(want [32]byte) bool {
	return b.ContentHash() == want
}

// quickHashKey is a fixed siphash key; QuickHash is never persisted and
// never compared across processes, so a fixed key is sufficient — it only
// needs to be stable within one run for debug/assertion use.
var quickHashKey0, quickHashKey1 uint64 = 0x5a70726531333721, 0x697a6d6174726978

// QuickHash returns a cheap, non-cryptographic siphash of the packed bit
// bytes. It exists purely so tests can assert the DuplicateSegment tiling
// invariant (or compare two working bitmaps) without paying the cost of a
// SHA-256 pass; it is never written to disk and carries no format
// guarantee across versions of this package.
func (b *BitSet) QuickHash() uint64 {
	buf := make([]byte, len(b.words)*8)
	for i, w := range b.words {
		for j := 0; j < 8; j++ {
			buf[i*8+j] = byte(w >> (8 * j))
		}
	}
	return siphash.Hash(quickHashKey0, quickHashKey1, buf)
}
