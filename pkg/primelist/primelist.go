// Package primelist implements the prime-list result container and its
// binary file format.
package primelist

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/Zprime137/iZ-lib/pkg/izlog"
)

var log = izlog.New("primelist")

// PrimeList is an ordered collection of 64-bit primes, insertion order
// equal to ascending value. Created empty with a capacity hint, grows by
// Append, may be Trim'd to exact length, Destroy'd as a whole.
type PrimeList struct {
	primes []uint64
}

// New creates an empty PrimeList with the given capacity hint.
func New(capacityHint int) *PrimeList {
	if capacityHint < 0 {
		capacityHint = 0
	}
	return &PrimeList{primes: make([]uint64, 0, capacityHint)}
}

// FromSlice wraps an already-ascending slice of primes without copying.
// Callers must not mutate primes after the call.
func FromSlice(primes []uint64) *PrimeList {
	return &PrimeList{primes: primes}
}

// Append adds p to the end of the list. Callers are responsible for
// maintaining ascending order (the sieves that build a PrimeList always
// append in ascending order by construction).
func (pl *PrimeList) Append(p uint64) {
	pl.primes = append(pl.primes, p)
}

// Len returns the number of primes currently held.
func (pl *PrimeList) Len() int {
	if pl == nil {
		return 0
	}
	return len(pl.primes)
}

// At returns the i-th prime (0-based).
func (pl *PrimeList) At(i int) uint64 {
	return pl.primes[i]
}

// Last returns the final (largest) prime in the list, or 0 if empty.
func (pl *PrimeList) Last() uint64 {
	if len(pl.primes) == 0 {
		return 0
	}
	return pl.primes[len(pl.primes)-1]
}

// Slice returns the underlying ascending slice. Callers must not mutate
// it.
func (pl *PrimeList) Slice() []uint64 {
	return pl.primes
}

// Trim shrinks the backing array to exactly Len() elements, dropping any
// spare capacity from the initial hint.
func (pl *PrimeList) Trim() {
	trimmed := make([]uint64, len(pl.primes))
	copy(trimmed, pl.primes)
	pl.primes = trimmed
}

// DropLast removes the final entry, used when a sieve overshoots its
// bound and must drop the last candidate before trimming.
func (pl *PrimeList) DropLast() {
	if len(pl.primes) > 0 {
		pl.primes = pl.primes[:len(pl.primes)-1]
	}
}

// Destroy releases the backing storage. PrimeList has a single owning
// holder; after Destroy the list must not be used again.
func (pl *PrimeList) Destroy() {
	pl.primes = nil
}

// bodyBytes renders the primes as little-endian uint64s, the body format
// ContentHash and the file codec both hash/serialize.
func (pl *PrimeList) bodyBytes() []byte {
	buf := make([]byte, len(pl.primes)*8)
	for i, p := range pl.primes {
		binary.LittleEndian.PutUint64(buf[i*8:], p)
	}
	return buf
}

// ContentHash returns the 32-byte SHA-256 digest of the prime bytes in
// little-endian order, the same bytes the file format writes as its body.
func (pl *PrimeList) ContentHash() [32]byte {
	return sha256.Sum256(pl.bodyBytes())
}

// ValidateHash reports whether want matches ContentHash().
func (pl *PrimeList) ValidateHash(want [32]byte) bool {
	return pl.ContentHash() == want
}
