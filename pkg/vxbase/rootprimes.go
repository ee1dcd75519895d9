package vxbase

import (
	"fmt"

	"github.com/Zprime137/iZ-lib/pkg/izerr"
)

// RootPrimes returns every prime <= vx (VX_ASSETS.root_primes), via a
// dedicated classical sieve of Eratosthenes owned by this package. vx in
// this module's usage tops out in the low millions (VX6 = 1,616,615 by
// default), so the plain O(n log log n) sieve below is an adequate,
// dependency-free leaf — using the product iZ sieve here would create
// an import cycle (pkg/sieve's segmented variant depends on vxbase for
// its base-segment assets). This is deliberately separate from
// internal/oracle, which is test-only correctness-oracle code never
// imported from production packages.
func RootPrimes(vx uint64) ([]uint64, error) {
	if vx < 2 {
		return nil, fmt.Errorf("vxbase: vx=%d: %w", vx, izerr.ErrInvalidArgument)
	}
	return classicalSieve(vx), nil
}

// classicalSieve is the textbook sieve of Eratosthenes, O(n log log n)
// time and O(n) memory, with no odd-only or wheel optimizations — root
// primes are a one-shot leaf computation, not a hot path, so the simplest
// correct sieve is the right tool.
func classicalSieve(n uint64) []uint64 {
	if n < 2 {
		return []uint64{}
	}
	isPrime := make([]bool, n+1)
	for i := range isPrime {
		isPrime[i] = true
	}
	isPrime[0] = false
	isPrime[1] = false
	for i := uint64(2); i*i <= n; i++ {
		if isPrime[i] {
			for j := i * i; j <= n; j += i {
				isPrime[j] = false
			}
		}
	}
	out := make([]uint64, 0, n)
	for i, p := range isPrime {
		if p {
			out = append(out, uint64(i))
		}
	}
	return out
}
