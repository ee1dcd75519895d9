// Package vxkernel implements the VX-segment kernel: the
// gap-encoded, hybrid deterministic+probabilistic sieve of one vx-sized
// slab at an arbitrary, possibly cryptographic-scale, slab index y.
package vxkernel

import (
	"crypto/sha256"
	"encoding/binary"
	"math/big"

	"github.com/Zprime137/iZ-lib/pkg/izlog"
)

var log = izlog.New("vxkernel")

// GapList holds the prime gaps discovered within one vx-sized slab at
// index Y: the reconstructed sequence starts at base = iZ(Y*VX, +1) and
// each gap is the distance to the next prime in ascending order.
//
// Y is copied at construction, not aliased to the caller's *big.Int.
// Go's big.Int is a mutable pointer type, so aliasing it would let a
// caller's later mutation silently corrupt an already-built GapList —
// sharper than the borrow-vs-copy bookkeeping question it resembles, so
// GapList always takes ownership of its own copy.
type GapList struct {
	VX   uint64
	Y    *big.Int
	gaps []uint16

	// BitOps and PrimalityTestOps are the two observational performance
	// counters spec.md §3 documents on the gap-list data model: BitOps
	// counts bit-array operations spent marking composites (the
	// deterministic sieve pass), PrimalityTestOps counts Miller-Rabin
	// calls made while certifying large-mode survivors. Neither is
	// load-bearing for correctness; both are exported for diagnostics
	// and are not part of the on-disk gap-list format (§6).
	BitOps           uint64
	PrimalityTestOps uint64
}

// New creates an empty GapList for slab (vx, y).
func New(vx uint64, y *big.Int, capacityHint int) *GapList {
	if capacityHint < 0 {
		capacityHint = 0
	}
	return &GapList{
		VX:   vx,
		Y:    new(big.Int).Set(y),
		gaps: make([]uint16, 0, capacityHint),
	}
}

// Append adds gap to the end of the list.
func (g *GapList) Append(gap uint16) {
	g.gaps = append(g.gaps, gap)
}

// AddBitOps accumulates n onto the BitOps counter.
func (g *GapList) AddBitOps(n uint64) {
	g.BitOps += n
}

// AddPrimalityTestOps accumulates n onto the PrimalityTestOps counter.
func (g *GapList) AddPrimalityTestOps(n uint64) {
	g.PrimalityTestOps += n
}

// Len returns the number of gaps held.
func (g *GapList) Len() int {
	if g == nil {
		return 0
	}
	return len(g.gaps)
}

// At returns the i-th gap.
func (g *GapList) At(i int) uint16 { return g.gaps[i] }

// Gaps returns the underlying gap slice. Callers must not mutate it.
func (g *GapList) Gaps() []uint16 { return g.gaps }

// Trim shrinks the backing array to exactly Len() gaps.
func (g *GapList) Trim() {
	trimmed := make([]uint16, len(g.gaps))
	copy(trimmed, g.gaps)
	g.gaps = trimmed
}

// Destroy releases the backing storage; the list must not be used again.
func (g *GapList) Destroy() {
	g.gaps = nil
}

func (g *GapList) bodyBytes() []byte {
	buf := make([]byte, len(g.gaps)*2)
	for i, gap := range g.gaps {
		binary.LittleEndian.PutUint16(buf[i*2:], gap)
	}
	return buf
}

// ContentHash is the SHA-256 of the gap bytes alone — the trailer stored
// in the gap-list file format, which hashes the gaps but not vx or y.
func (g *GapList) ContentHash() [32]byte {
	return sha256.Sum256(g.bodyBytes())
}

// ValidateHash reports whether want matches ContentHash().
func (g *GapList) ValidateHash(want [32]byte) bool {
	return g.ContentHash() == want
}

// Primes reconstructs the ascending prime sequence from base = iZ(Y*VX,
// +1) plus the running prefix sum of the gaps.
func (g *GapList) Primes() []*big.Int {
	base := new(big.Int).Mul(g.Y, new(big.Int).SetUint64(g.VX))
	base.Mul(base, big.NewInt(6))
	base.Add(base, big.NewInt(1))

	out := make([]*big.Int, 0, len(g.gaps))
	running := new(big.Int).Set(base)
	for _, gap := range g.gaps {
		running = new(big.Int).Add(running, new(big.Int).SetUint64(uint64(gap)))
		out = append(out, new(big.Int).Set(running))
	}
	return out
}
