package izmath

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIZ(t *testing.T) {
	assert.Equal(t, uint64(11), IZ(2, NegClass))
	assert.Equal(t, uint64(13), IZ(2, PosClass))
	assert.Equal(t, uint64(5), IZ(1, NegClass))
	assert.Equal(t, uint64(7), IZ(1, PosClass))
}

func TestIZPanicsOnBadClass(t *testing.T) {
	assert.Panics(t, func() { IZ(1, 0) })
}

func TestIZBig(t *testing.T) {
	got := IZBig(big.NewInt(2), NegClass)
	assert.Equal(t, big.NewInt(11), got)
}

func TestAdjacentGapConstants(t *testing.T) {
	// spec invariant: iZ(x+1,-1) - iZ(x,+1) = 4, iZ(x,+1) - iZ(x,-1) = 2
	for x := uint64(1); x < 1000; x++ {
		assert.Equal(t, uint64(4), IZ(x+1, NegClass)-IZ(x, PosClass))
		assert.Equal(t, uint64(2), IZ(x, PosClass)-IZ(x, NegClass))
	}
}

func TestGCDCoprime(t *testing.T) {
	assert.Equal(t, uint64(6), GCD(54, 24))
	assert.True(t, Coprime(9, 28))
	assert.False(t, Coprime(9, 27))
}

func TestModularInverse(t *testing.T) {
	for _, tc := range []struct{ a, m uint64 }{
		{3, 11}, {7, 13}, {1, 2}, {5005, 23},
	} {
		inv, err := ModularInverse(tc.a, tc.m)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), (tc.a*inv)%tc.m, "a=%d m=%d", tc.a, tc.m)
	}
}

func TestModularInverseNotCoprime(t *testing.T) {
	_, err := ModularInverse(4, 8)
	assert.Error(t, err)
}

func TestSolveForXDivides(t *testing.T) {
	primes := []uint64{11, 13, 17, 19, 23, 29}
	for _, p := range primes {
		for _, cls := range []int{NegClass, PosClass} {
			for y := uint64(0); y < 5; y++ {
				x, err := SolveForX(cls, p, 5005, y)
				require.NoError(t, err)
				require.GreaterOrEqual(t, x, uint64(1))
				require.LessOrEqual(t, x, p)
				n := IZ(y*5005+x, cls)
				assert.Zero(t, n%p, "p=%d cls=%d y=%d x=%d n=%d", p, cls, y, x, n)
			}
		}
	}
}

func TestSolveForXBigMatchesSolveForX(t *testing.T) {
	for _, p := range []uint64{11, 13, 17, 19} {
		for _, cls := range []int{NegClass, PosClass} {
			for y := uint64(0); y < 10; y++ {
				want, err := SolveForX(cls, p, 5005, y)
				require.NoError(t, err)
				got, err := SolveForXBig(cls, p, 5005, new(big.Int).SetUint64(y))
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}
		}
	}
}

func TestSolveForYInvertsSolveForX(t *testing.T) {
	vx := uint64(5005) // 5*7*11*13
	for _, p := range []uint64{17, 19, 23} {
		for _, cls := range []int{NegClass, PosClass} {
			for y := uint64(0); y < 4; y++ {
				x, err := SolveForX(cls, p, vx, y)
				require.NoError(t, err)
				y2, err := SolveForY(cls, p, vx, x)
				require.NoError(t, err)
				assert.Equal(t, y%p, y2, "p=%d cls=%d y=%d x=%d", p, cls, y, x)
			}
		}
	}
}

func TestSolveForYFailsWhenPDividesVX(t *testing.T) {
	_, err := SolveForY(NegClass, 7, 35, 1)
	assert.Error(t, err)
}

func TestComputeLimitedVXDefault(t *testing.T) {
	// VX6 = 5*7*11*13*17*19 = 1,616,615 should arise for a large enough
	// xN with k=6 (4 extra primes beyond the hard-coded 5*7 seed).
	vx := ComputeLimitedVX(1<<40, 6)
	assert.Equal(t, uint64(1_616_615), vx)
}

func TestComputeLimitedVXRespectsBound(t *testing.T) {
	vx := ComputeLimitedVX(100, 6)
	assert.LessOrEqual(t, vx, uint64(50))
}

func TestComputeMaxVXBig(t *testing.T) {
	vx := ComputeMaxVXBig(24)
	assert.LessOrEqual(t, vx.BitLen(), 24)
	// 5*7*11*13 = 5005 (13 bits); 5*7*11*13*17 = 85085 (17 bits);
	// both fit comfortably under 24 bits, so vx should include at least
	// through 17.
	assert.Zero(t, new(big.Int).Mod(vx, big.NewInt(85085)).Sign())
}
