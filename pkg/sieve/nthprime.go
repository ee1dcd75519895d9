package sieve

import (
	"fmt"
	"math"

	"github.com/Zprime137/iZ-lib/pkg/izerr"
)

// NthPrime returns the n-th prime using 0-based indexing (the 0th prime is
// 2). Negative n is a contract violation and reports izerr.ErrInvalidArgument.
//
// The upper bound is picked from the prime number theorem and doubled on
// each miss, sieving with SieveIZSegmented at each bound.
func NthPrime(n int64) (uint64, error) {
	if n < 0 {
		return 0, fmt.Errorf("sieve: n=%d: %w", n, izerr.ErrInvalidArgument)
	}

	upperBound := uint64(float64(n) * math.Log(float64(n)))
	if n < 6 {
		upperBound = 20
	}
	if upperBound < 10 {
		upperBound = 10
	}

	for {
		res, err := SieveIZSegmented(upperBound)
		if err != nil {
			return 0, err
		}
		if n < int64(res.Len()) {
			return res.At(int(n)), nil
		}
		upperBound *= 2
	}
}

// piEstimateThreshold bounds how large an n Pi will sieve exactly before
// falling back to the prime number theorem estimate.
const piEstimateThreshold = 100_000_000

// Pi returns the number of primes <= n. If exact is true the count came
// from an actual sieve; otherwise it is the prime-counting estimate
// n/(log(n)-1), accurate to within roughly 1% for large n.
func Pi(n uint64) (count uint64, exact bool) {
	if n < 2 {
		return 0, true
	}
	if n <= piEstimateThreshold {
		res, err := SieveIZSegmented(n)
		if err != nil {
			// n < 10 falls through to the non-segmented sieve's own floor;
			// Pi still owes a count for n in [2,9].
			if n < 2 {
				return 0, true
			}
			return uint64(len(smallPrimesUpTo(n))), true
		}
		return uint64(res.Len()), true
	}
	est := float64(n) / (math.Log(float64(n)) - 1)
	return uint64(est), false
}

// smallPrimesUpTo handles the n in [2,9] gap that both sieve entry points
// reject as TooSmall.
func smallPrimesUpTo(n uint64) []uint64 {
	all := []uint64{2, 3, 5, 7}
	out := make([]uint64, 0, 4)
	for _, p := range all {
		if p <= n {
			out = append(out, p)
		}
	}
	return out
}
