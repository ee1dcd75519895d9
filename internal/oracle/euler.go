package oracle

// Euler is the linear (O(n)) sieve: every composite is marked exactly
// once, by its smallest prime factor.
func Euler(n int64) []int64 {
	if n < 2 {
		return []int64{}
	}
	lpf := make([]int64, n+1) // least prime factor, 0 == unmarked
	primes := make([]int64, 0)

	for i := int64(2); i <= n; i++ {
		if lpf[i] == 0 {
			lpf[i] = i
			primes = append(primes, i)
		}
		for _, p := range primes {
			if p > lpf[i] || i*p > n {
				break
			}
			lpf[i*p] = p
		}
	}
	return primes
}
