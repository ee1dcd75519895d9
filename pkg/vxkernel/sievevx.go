package vxkernel

import (
	"fmt"
	"math"
	"math/big"

	"github.com/Zprime137/iZ-lib/pkg/izerr"
	"github.com/Zprime137/iZ-lib/pkg/izmath"
	"github.com/Zprime137/iZ-lib/pkg/vxbase"
)

// TestRounds is the Miller-Rabin round count used to certify candidates
// the deterministic sieve alone cannot rule on (large-mode slabs).
const TestRounds = 25

// SieveVX processes one vx-sized slab at a (possibly very large) slab
// index y, emitting a GapList rather than the primes themselves: for
// cryptographic-scale y the primes need many bytes each, while the gaps
// between consecutive primes in a slab fit comfortably in 16 bits.
func SieveVX(assets *vxbase.Assets, y *big.Int) (*GapList, error) {
	if assets == nil {
		log.Errorf("sieve_vx called with nil assets")
		return nil, fmt.Errorf("vxkernel: nil assets: %w", izerr.ErrInvalidArgument)
	}
	if y.Sign() < 0 {
		return nil, fmt.Errorf("vxkernel: y=%s: %w", y, izerr.ErrInvalidArgument)
	}
	vx := assets.VX

	x5 := assets.BaseX5.Clone()
	x7 := assets.BaseX7.Clone()

	yPlus1 := new(big.Int).Add(y, big.NewInt(1))
	upper := izmath.IZBig(new(big.Int).Mul(yPlus1, new(big.Int).SetUint64(vx)), izmath.PosClass)
	rootLimit := new(big.Int).Sqrt(upper).Uint64()
	largeMode := rootLimit > vx

	gl := New(vx, y, estimateGapCount(vx))

	// Root primes 2 and 3 are outside the iZ matrix (iZ covers
	// only primes >= 5); skip both and any prime dividing vx, whose
	// composites the cloned base already accounts for.
	for i := 2; i < len(assets.RootPrimes); i++ {
		p := assets.RootPrimes[i]
		if vx%p == 0 {
			continue
		}
		if !largeMode && p > rootLimit {
			break
		}

		offNeg, err := izmath.SolveForXBig(izmath.NegClass, p, vx, y)
		if err != nil {
			return nil, err
		}
		x5.ClearStride(p, offNeg, vx+1)

		offPos, err := izmath.SolveForXBig(izmath.PosClass, p, vx, y)
		if err != nil {
			return nil, err
		}
		x7.ClearStride(p, offPos, vx+1)

		// spec.md §4.5 step 2: account 2*vx/p bit_ops per root prime
		// processed (one ClearStride pass over each of x5 and x7).
		gl.AddBitOps(2 * vx / p)
	}

	// Slab 0 holds the root primes themselves, which the base pattern and
	// the marking pass above clear as multiples of themselves: set them again.
	if y.Sign() == 0 {
		for _, p := range assets.RootPrimes[2:] {
			if p%6 == 5 {
				x5.Set((p + 1) / 6)
			} else {
				x7.Set((p + 1) / 6)
			}
		}
	}

	yvx := new(big.Int).Mul(y, new(big.Int).SetUint64(vx))

	var gap uint16
	for x := uint64(1); x <= vx; x++ {
		xBig := new(big.Int).SetUint64(x)

		gap += 4
		if x5.Get(x) {
			candidate := izmath.IZBig(new(big.Int).Add(yvx, xBig), izmath.NegClass)
			isPrime := true
			if largeMode {
				gl.AddPrimalityTestOps(1)
				isPrime = candidate.ProbablyPrime(TestRounds)
			}
			if isPrime {
				gl.Append(gap)
				gap = 0
			}
		}

		gap += 2
		if x7.Get(x) {
			candidate := izmath.IZBig(new(big.Int).Add(yvx, xBig), izmath.PosClass)
			isPrime := true
			if largeMode {
				gl.AddPrimalityTestOps(1)
				isPrime = candidate.ProbablyPrime(TestRounds)
			}
			if isPrime {
				gl.Append(gap)
				gap = 0
			}
		}
	}

	gl.Trim()
	return gl, nil
}

// SieveVXRange builds shared assets for vx once, then invokes SieveVX for
// count consecutive slabs starting at startY, reusing the same base
// bitmaps across every slab.
func SieveVXRange(vx uint64, startY *big.Int, count int) ([]*GapList, error) {
	if count < 0 {
		return nil, fmt.Errorf("vxkernel: count=%d: %w", count, izerr.ErrInvalidArgument)
	}
	assets, err := vxbase.BuildAssets(vx)
	if err != nil {
		return nil, err
	}

	out := make([]*GapList, 0, count)
	y := new(big.Int).Set(startY)
	for i := 0; i < count; i++ {
		gl, err := SieveVX(assets, y)
		if err != nil {
			return nil, err
		}
		out = append(out, gl)
		y = new(big.Int).Add(y, big.NewInt(1))
	}
	return out, nil
}

// estimateGapCount gives a capacity hint for the emitted gap count within
// one slab, via the prime number theorem density at scale vx.
func estimateGapCount(vx uint64) int {
	density := 1.0 / math.Log(float64(vx))
	return int(float64(vx)*density*1.2) + 16
}
