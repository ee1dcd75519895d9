// Package vxbase builds the pre-sieved base segment and VX_ASSETS tuple
// the pattern depends only on vx, so it is
// built once and shared read-only across every slab that uses the same
// vx.
package vxbase

import (
	"fmt"

	"github.com/Zprime137/iZ-lib/pkg/bitset"
	"github.com/Zprime137/iZ-lib/pkg/izerr"
	"github.com/Zprime137/iZ-lib/pkg/izlog"
	"github.com/Zprime137/iZ-lib/pkg/izmath"
)

var log = izlog.New("vxbase")

// vx0 is the hard-coded seed width: the product of the first two odd
// primes dividing every vx this package ever builds.
const vx0 = 35

// Assets is the immutable, freely-shared-read-only VX_ASSETS tuple:
// (vx, root primes, base_x5, base_x7).
type Assets struct {
	VX         uint64
	RootPrimes []uint64
	BaseX5     *bitset.BitSet // candidates surviving in the iZ- (6x-1) column
	BaseX7     *bitset.BitSet // candidates surviving in the iZ+ (6x+1) column
}

// BuildBaseSegment constructs base_x5 and base_x7 of capacity vx+1 (index
// 0 unused; columns are 1-indexed), seeded for vx0=35 and then
// tiled prime-by-prime for every subsequent prime in {11,13,17,...} that
// divides vx. The result depends only on vx.
func BuildBaseSegment(vx uint64) (x5, x7 *bitset.BitSet, factors []uint64, err error) {
	if vx < vx0 || vx%5 != 0 || vx%7 != 0 {
		return nil, nil, nil, fmt.Errorf("vxbase: vx=%d is not a multiple of 5*7: %w", vx, izerr.ErrInvalidArgument)
	}

	x5, err = bitset.New(vx + 1)
	if err != nil {
		log.Errorf("allocating base_x5: %v", err)
		return nil, nil, nil, fmt.Errorf("vxbase: %w", izerr.ErrAllocationFailed)
	}
	x7, err = bitset.New(vx + 1)
	if err != nil {
		log.Errorf("allocating base_x7: %v", err)
		return nil, nil, nil, fmt.Errorf("vxbase: %w", izerr.ErrAllocationFailed)
	}
	x5.SetAll()
	x7.SetAll()

	// Seed: hard-coded residue conditions for 5 and 7, marked directly
	// across the full [1, vx0] window.
	markPrime(x5, x7, 5, vx0)
	markPrime(x5, x7, 7, vx0)
	factors = []uint64{5, 7}

	currentVX := uint64(vx0)
	for p := uint64(11); currentVX < vx && p <= vx/currentVX; p += 2 {
		if !izmath.IsSmallPrime(p) {
			continue
		}
		if vx%p != 0 {
			continue
		}
		newVX := currentVX * p
		if newVX > vx {
			log.Warnf("prime %d does not evenly extend vx=%d from current=%d", p, vx, currentVX)
			break
		}
		// Tile the already-sieved prefix across p copies, then mark the
		// newly-introduced prime's own arithmetic progression across the
		// whole extended window.
		x5.DuplicateSegment(1, currentVX, int(p))
		x7.DuplicateSegment(1, currentVX, int(p))
		markPrime(x5, x7, p, newVX)

		currentVX = newVX
		factors = append(factors, p)
	}

	if currentVX != vx {
		return nil, nil, nil, fmt.Errorf("vxbase: vx=%d is not a primorial over {5,7,11,13,...}: %w", vx, izerr.ErrInvalidArgument)
	}
	return x5, x7, factors, nil
}

// markPrime clears, in both bitmaps, every column x in [1, limit] whose
// iZ value is divisible by p. The starting offset from SolveForX already
// equals x_p itself (the smallest such column, possibly p itself), so no
// separate special-casing is needed to "clear the x_p index" — it is the
// stride's first element by construction.
func markPrime(x5, x7 *bitset.BitSet, p, limit uint64) {
	offNeg, err := izmath.SolveForX(izmath.NegClass, p, limit, 0)
	if err != nil {
		panic(err) // programming error: p, class are always valid here
	}
	x5.ClearStride(p, offNeg, limit+1)

	offPos, err := izmath.SolveForX(izmath.PosClass, p, limit, 0)
	if err != nil {
		panic(err)
	}
	x7.ClearStride(p, offPos, limit+1)
}

// BuildAssets constructs the full VX_ASSETS tuple for vx: the base
// segment (BuildBaseSegment) plus every prime <= vx (RootPrimes).
func BuildAssets(vx uint64) (*Assets, error) {
	x5, x7, _, err := BuildBaseSegment(vx)
	if err != nil {
		return nil, err
	}
	roots, err := RootPrimes(vx)
	if err != nil {
		return nil, err
	}
	return &Assets{VX: vx, RootPrimes: roots, BaseX5: x5, BaseX7: x7}, nil
}
