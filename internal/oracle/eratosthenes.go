// Package oracle holds reference sieve implementations used solely as
// correctness oracles in tests. None of these are exposed as product
// entry points or imported from any production package.
package oracle

import "math"

// Classical is the textbook sieve of Eratosthenes: O(n log log n) time,
// O(n) memory, no odd-only or wheel optimizations.
func Classical(n int64) []int64 {
	if n < 2 {
		return []int64{}
	}
	isPrime := make([]bool, n+1)
	for i := range isPrime {
		isPrime[i] = true
	}
	isPrime[0] = false
	isPrime[1] = false
	for i := int64(2); i*i <= n; i++ {
		if isPrime[i] {
			for j := i * i; j <= n; j += i {
				isPrime[j] = false
			}
		}
	}
	res := make([]int64, 0)
	for i, p := range isPrime {
		if p {
			res = append(res, int64(i))
		}
	}
	return res
}

// Optimized is the odd-only variant of Classical: only odd candidates are
// tracked, halving the bitmap.
func Optimized(n int64) []int64 {
	switch {
	case n < 2:
		return []int64{}
	case n == 2:
		return []int64{2}
	}
	length := 1 + (n-3)/2
	composite := make([]bool, length)
	sqrtN := int64(math.Sqrt(float64(n)))
	for i, p := int64(0), int64(3); p <= sqrtN; p += 2 {
		if !composite[i] {
			for j := (p*p - 3) / 2; j < length; j += p {
				composite[j] = true
			}
		}
		i++
	}
	res := make([]int64, 1, length/2+2)
	res[0] = 2
	for i, c := range composite {
		if !c {
			res = append(res, 2*int64(i)+3)
		}
	}
	return res
}

// Segmented shares the two-phase shape of a classic segmented sieve: a
// basic pass up to sqrt(n), then segment-by-segment composite marking.
// An earlier version of this loop shared an endpoint between consecutive
// segments (next low == prior high), double-counting any prime that
// lands exactly on a segment boundary; segments here are half-open since
// an oracle used for content-hash comparison cannot itself emit
// duplicates.
func Segmented(n int64) []int64 {
	segmentSize := int64(math.Sqrt(float64(n)))
	if segmentSize < 2 {
		segmentSize = 2
	}
	primes := Classical(segmentSize)

	result := make([]int64, 0, len(primes))
	result = append(result, primes...)

	for low := segmentSize + 1; low <= n; {
		high := low + segmentSize - 1
		if high > n {
			high = n
		}

		segment := make([]bool, high-low+1)
		for i := range segment {
			segment[i] = true
		}

		for _, p := range primes {
			start := (low + p - 1) / p * p
			if start < p*p {
				start = p * p
			}
			for i := start; i <= high; i += p {
				segment[i-low] = false
			}
		}

		for i := low; i <= high; i++ {
			if segment[i-low] {
				result = append(result, i)
			}
		}
		low = high + 1
	}

	return result
}
