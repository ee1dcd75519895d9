// Package sieve implements the iZ enumeration sieves: the
// non-segmented SieveIZ, the segmented SieveIZSegmented, and the
// NthPrime convenience wrapper built on top of them.
package sieve

import (
	"fmt"
	"math"

	"github.com/Zprime137/iZ-lib/pkg/bitset"
	"github.com/Zprime137/iZ-lib/pkg/izerr"
	"github.com/Zprime137/iZ-lib/pkg/izmath"
	"github.com/Zprime137/iZ-lib/pkg/primelist"
	"github.com/Zprime137/iZ-lib/pkg/vxbase"
)

// segmentedThreshold is the n below which SieveIZSegmented delegates to
// SieveIZ rather than paying for base-segment construction.
const segmentedThreshold = 1000

// SieveIZ enumerates every prime <= n with the non-segmented iZ sieve.
// n < 10 is outside the sieve's contract ("empty/undefined") and reports
// izerr.ErrTooSmall.
func SieveIZ(n uint64) (*primelist.PrimeList, error) {
	if n < 10 {
		return nil, fmt.Errorf("sieve: n=%d: %w", n, izerr.ErrTooSmall)
	}

	xN := n/6 + 1
	x5, err := bitset.New(xN + 1)
	if err != nil {
		return nil, fmt.Errorf("sieve: %w", izerr.ErrAllocationFailed)
	}
	x7, err := bitset.New(xN + 1)
	if err != nil {
		return nil, fmt.Errorf("sieve: %w", izerr.ErrAllocationFailed)
	}
	x5.SetAll()
	x7.SetAll()

	pl := primelist.New(estimatePrimeCount(n))
	pl.Append(2)
	pl.Append(3)

	sqrtN := uint64(math.Sqrt(float64(n)))

	for x := uint64(1); x < xN; x++ {
		if x5.Get(x) {
			p := izmath.IZ(x, izmath.NegClass)
			pl.Append(p)
			if p <= sqrtN {
				x5.ClearStride(p, x*(p+1), xN+1)
				x7.ClearStride(p, x*(p-1), xN+1)
			}
		}
		if x7.Get(x) {
			p := izmath.IZ(x, izmath.PosClass)
			pl.Append(p)
			if p <= sqrtN {
				x5.ClearStride(p, x*(p-1), xN+1)
				x7.ClearStride(p, x*(p+1), xN+1)
			}
		}
	}

	if pl.Last() > n {
		pl.DropLast()
	}
	pl.Trim()
	return pl, nil
}

// SieveIZSegmented enumerates every prime <= n with the segmented,
// base-vx-tiled iZ sieve. Delegates to SieveIZ below segmentedThreshold,
// where the fixed cost of building a base segment dominates.
func SieveIZSegmented(n uint64) (*primelist.PrimeList, error) {
	if n < 10 {
		return nil, fmt.Errorf("sieve: n=%d: %w", n, izerr.ErrTooSmall)
	}
	if n < segmentedThreshold {
		return SieveIZ(n)
	}

	xN := n/6 + 1
	vx := izmath.ComputeLimitedVX(xN, 6)

	baseX5, baseX7, factors, err := vxbase.BuildBaseSegment(vx)
	if err != nil {
		return nil, err
	}

	pl := primelist.New(estimatePrimeCount(n))
	pl.Append(2)
	pl.Append(3)
	for _, f := range factors {
		pl.Append(f)
	}

	// Slab 0: clone the base, walk x=2..vx (x=1 is exactly the factor
	// primes 5 and 7, already appended above), appending survivors and
	// marking any new root prime whose square still matters within this
	// slab. Every prime needed to sieve subsequent slabs is discovered
	// here, since vx is chosen large enough to exceed sqrt(n) for any n
	// this sieve is used on.
	x5 := baseX5.Clone()
	x7 := baseX7.Clone()
	rootPrimes := make([]uint64, 0, 256)

	for x := uint64(2); x <= vx; x++ {
		if x5.Get(x) {
			p := izmath.IZ(x, izmath.NegClass)
			pl.Append(p)
			rootPrimes = append(rootPrimes, p)
			if p*p/6 < vx {
				x5.ClearStride(p, x*(p+1), vx+1)
				x7.ClearStride(p, x*(p-1), vx+1)
			}
		}
		if x7.Get(x) {
			p := izmath.IZ(x, izmath.PosClass)
			pl.Append(p)
			rootPrimes = append(rootPrimes, p)
			if p*p/6 < vx {
				x5.ClearStride(p, x*(p-1), vx+1)
				x7.ClearStride(p, x*(p+1), vx+1)
			}
		}
	}

	nOver6 := n / 6
	maxY := nOver6 / vx
	for y := uint64(1); y <= maxY; y++ {
		limit := vx
		if y == maxY {
			// A zero tail leaves slab maxY wholly above n.
			limit = nOver6 % vx
		}

		wx5 := baseX5.Clone()
		wx7 := baseX7.Clone()

		for _, p := range rootPrimes {
			if p*p/6 > y*vx+limit {
				break
			}
			offNeg, err := izmath.SolveForX(izmath.NegClass, p, vx, y)
			if err != nil {
				return nil, err
			}
			wx5.ClearStride(p, offNeg, limit+1)

			offPos, err := izmath.SolveForX(izmath.PosClass, p, vx, y)
			if err != nil {
				return nil, err
			}
			wx7.ClearStride(p, offPos, limit+1)
		}

		for x := uint64(1); x <= limit; x++ {
			if wx5.Get(x) {
				pl.Append(izmath.IZ(x+y*vx, izmath.NegClass))
			}
			if wx7.Get(x) {
				pl.Append(izmath.IZ(x+y*vx, izmath.PosClass))
			}
		}
	}

	if pl.Last() > n {
		pl.DropLast()
	}
	pl.Trim()
	return pl, nil
}

// estimatePrimeCount gives a capacity hint via the prime number theorem,
// padded slightly to avoid a near-certain reallocation on append.
func estimatePrimeCount(n uint64) int {
	if n < 3 {
		return 2
	}
	return int(float64(n)/math.Log(float64(n))*1.15) + 16
}
