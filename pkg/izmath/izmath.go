// Package izmath implements the iZ residue algebra: every prime above 3
// has the form 6x-1 or 6x+1, and this package provides the arithmetic
// built on that decomposition — the iZ mapping itself, the two solve
// directions between a slab index and a root-prime-divisible column, and
// the modular inverse the solve-for-y direction depends on.
package izmath

import (
	"fmt"
	"math/big"

	"github.com/Zprime137/iZ-lib/pkg/izerr"
)

// Residue class labels. A prime p >= 5 lies in exactly one of these.
const (
	// NegClass is iZ-, i.e. p = 6x - 1.
	NegClass = -1
	// PosClass is iZ+, i.e. p = 6x + 1.
	PosClass = +1
)

var (
	bigOne = big.NewInt(1)
	bigSix = big.NewInt(6)
)

func checkClass(i int) error {
	if i != NegClass && i != PosClass {
		return fmt.Errorf("izmath: residue class %d: %w", i, izerr.ErrInvalidArgument)
	}
	return nil
}

// IZ computes 6x+i for i in {-1,+1}. Precondition: x >= 1 and 6x < 2^64.
// A residue class outside {-1,+1} or x < 1 is a programming error and IZ
// panics rather than returning an error; overflow of 6x is not checked.
func IZ(x uint64, i int) uint64 {
	if err := checkClass(i); err != nil {
		panic(err)
	}
	if x < 1 {
		panic(fmt.Errorf("izmath: x=%d: %w", x, izerr.ErrInvalidArgument))
	}
	if i < 0 {
		return 6*x - 1
	}
	return 6*x + 1
}

// IZBig is the arbitrary-precision counterpart of IZ.
func IZBig(x *big.Int, i int) *big.Int {
	if err := checkClass(i); err != nil {
		panic(err)
	}
	if x.Sign() < 1 {
		panic(fmt.Errorf("izmath: x=%s: %w", x.String(), izerr.ErrInvalidArgument))
	}
	n := new(big.Int).Mul(x, bigSix)
	return n.Add(n, big.NewInt(int64(i)))
}

// GCD returns the greatest common divisor of a and b via the Euclidean
// algorithm.
func GCD(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Coprime reports whether a and b share no common divisor greater than 1.
func Coprime(a, b uint64) bool {
	return GCD(a, b) == 1
}

// ModularInverse returns x such that a*x ≡ 1 (mod m) via the extended
// Euclidean algorithm. Returns izerr.ErrNotCoprime if gcd(a, m) != 1.
func ModularInverse(a, m uint64) (uint64, error) {
	r, err := ModularInverseBig(new(big.Int).SetUint64(a), new(big.Int).SetUint64(m))
	if err != nil {
		return 0, err
	}
	return r.Uint64(), nil
}

// ModularInverseBig is the big.Int counterpart of ModularInverse.
func ModularInverseBig(a, m *big.Int) (*big.Int, error) {
	g := new(big.Int)
	x := new(big.Int)
	g.GCD(x, nil, a, m)
	if g.Cmp(bigOne) != 0 {
		return nil, fmt.Errorf("izmath: gcd(%s,%s)=%s: %w", a, m, g, izerr.ErrNotCoprime)
	}
	x.Mod(x, m)
	if x.Sign() < 0 {
		x.Add(x, m)
	}
	return x, nil
}

// SolveForX returns the smallest x in [1, p] such that
// iZ(y*vx + x, matrixID) is divisible by root prime p.
//
// Derivation: let pID = sign(p mod 6), xp = (p+1)/6; if
// matrixID == pID keep xp, else replace it with p - xp. Then
// x = p - ((y*vx - xp) mod p), which lies in [1, p].
func SolveForX(matrixID int, p, vx, y uint64) (uint64, error) {
	if err := checkClass(matrixID); err != nil {
		return 0, err
	}
	pID := pSign(p)
	xp := (p + 1) / 6
	if matrixID != pID {
		xp = p - xp
	}
	yvx := y * vx
	diff := int64(yvx%p) - int64(xp%p)
	diff %= int64(p)
	if diff < 0 {
		diff += int64(p)
	}
	x := p - uint64(diff)
	if x == 0 {
		x = p
	}
	return x, nil
}

// SolveForXBig is the arbitrary-precision counterpart of SolveForX, used
// when y is too large to fit a uint64 (cryptographic-scale slab indices).
func SolveForXBig(matrixID int, p uint64, vx uint64, y *big.Int) (uint64, error) {
	if err := checkClass(matrixID); err != nil {
		return 0, err
	}
	pID := pSign(p)
	xp := (p + 1) / 6
	if matrixID != pID {
		xp = p - xp
	}
	bigP := new(big.Int).SetUint64(p)
	bigVX := new(big.Int).SetUint64(vx)
	yvx := new(big.Int).Mul(y, bigVX)
	yvxModP := new(big.Int).Mod(yvx, bigP).Uint64()

	diff := int64(yvxModP) - int64(xp%p)
	diff %= int64(p)
	if diff < 0 {
		diff += int64(p)
	}
	x := p - uint64(diff)
	if x == 0 {
		x = p
	}
	return x, nil
}

// SolveForY is the symmetric inverse of SolveForX: given a root prime p
// and a column x, returns the slab index y such that
// iZ(y*vx + x, matrixID) is divisible by p. Fails with izerr.ErrNotCoprime
// when p divides vx (every column in every slab is already sieved by p in
// that case — the "solve" has no single answer).
func SolveForY(matrixID int, p, vx, x uint64) (uint64, error) {
	if err := checkClass(matrixID); err != nil {
		return 0, err
	}
	if vx%p == 0 {
		return 0, fmt.Errorf("izmath: p=%d divides vx=%d: %w", p, vx, izerr.ErrNotCoprime)
	}
	pID := pSign(p)
	xp := (p + 1) / 6
	if matrixID != pID {
		xp = p - xp
	}
	vxInv, err := ModularInverse(vx%p, p)
	if err != nil {
		return 0, err
	}
	diff := (int64(xp%p) - int64(x%p)) % int64(p)
	if diff < 0 {
		diff += int64(p)
	}
	return (uint64(diff) * vxInv) % p, nil
}

// pSign returns the residue class (NegClass/PosClass) that p itself
// belongs to: p mod 6 == 5 means p = 6k-1 (NegClass); p mod 6 == 1 means
// p = 6k+1 (PosClass). Only meaningful for p >= 5.
func pSign(p uint64) int {
	if p%6 == 5 {
		return NegClass
	}
	return PosClass
}

// ComputeLimitedVX starts from 35 (5*7) and multiplies in the next primes
// from {11,13,17,19,...} while the product stays <= xN/2 and at most k-2
// extra primes are consumed. Returns the final product.
func ComputeLimitedVX(xN uint64, k int) uint64 {
	vx := uint64(35)
	limit := xN / 2
	consumed := 0
	for p := uint64(11); consumed < k-2; p = nextOddCandidate(p) {
		if !IsSmallPrime(p) {
			continue
		}
		next := vx * p
		if next > limit {
			break
		}
		vx = next
		consumed++
	}
	return vx
}

func nextOddCandidate(p uint64) uint64 {
	return p + 2
}

// IsSmallPrime is trial division, adequate for the small candidates
// ComputeLimitedVX and the base-segment builder walk (bounded by a few
// thousand at most).
func IsSmallPrime(p uint64) bool {
	if p < 2 {
		return false
	}
	if p%2 == 0 {
		return p == 2
	}
	for d := uint64(3); d*d <= p; d += 2 {
		if p%d == 0 {
			return false
		}
	}
	return true
}

// ComputeMaxVXBig returns the largest primorial p3*p4*...*pk (starting at
// 5) whose bit length does not exceed bitSize.
func ComputeMaxVXBig(bitSize int) *big.Int {
	vx := big.NewInt(1)
	p := uint64(5)
	for {
		candidate := new(big.Int).Mul(vx, new(big.Int).SetUint64(p))
		if candidate.BitLen() > bitSize {
			break
		}
		vx = candidate
		p = nextSmallPrime(p)
	}
	if vx.Cmp(bigOne) == 0 {
		// Degenerate bitSize too small even for the factor 5; fall back
		// to 5 itself so callers always get a usable (if oversized) vx.
		return big.NewInt(5)
	}
	return vx
}

func nextSmallPrime(p uint64) uint64 {
	for n := p + 2; ; n += 2 {
		if IsSmallPrime(n) {
			return n
		}
	}
}
