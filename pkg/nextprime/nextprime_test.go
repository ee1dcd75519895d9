package nextprime

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zprime137/iZ-lib/pkg/izerr"
)

func TestIZNextPrimeFastPathForward(t *testing.T) {
	// 29 mod 6 == 5; 29+2 == 31, prime.
	got, err := IZNextPrime(big.NewInt(29), true)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(31), got)
}

func TestIZNextPrimeFastPathBackward(t *testing.T) {
	// 37 mod 6 == 1; 37-2 == 35 == 5*7, not prime, so this must fall
	// through to the VX-base walk rather than returning 35.
	got, err := IZNextPrime(big.NewInt(37), false)
	require.NoError(t, err)
	assert.True(t, got.ProbablyPrime(25))
	assert.Equal(t, -1, got.Cmp(big.NewInt(37)))
}

func TestIZNextPrimeForwardWalksPastComposites(t *testing.T) {
	got, err := IZNextPrime(big.NewInt(1_000_000), true)
	require.NoError(t, err)
	assert.True(t, got.ProbablyPrime(25))
	assert.True(t, got.Cmp(big.NewInt(1_000_000)) >= 0)
	assert.Equal(t, big.NewInt(1000003), got)
}

func TestIZNextPrimeBackwardWalksPastComposites(t *testing.T) {
	got, err := IZNextPrime(big.NewInt(1_000_000), false)
	require.NoError(t, err)
	assert.True(t, got.ProbablyPrime(25))
	assert.True(t, got.Cmp(big.NewInt(1_000_000)) <= 0)
}

func TestIZNextPrimeRejectsNegativeBase(t *testing.T) {
	_, err := IZNextPrime(big.NewInt(-5), true)
	assert.ErrorIs(t, err, izerr.ErrInvalidArgument)
}

func TestIZRandomNextPrimeRejectsTooSmall(t *testing.T) {
	_, err := IZRandomNextPrime(9)
	assert.ErrorIs(t, err, izerr.ErrTooSmall)
}

func TestIZRandomNextPrime(t *testing.T) {
	got, err := IZRandomNextPrime(64)
	require.NoError(t, err)
	assert.True(t, got.ProbablyPrime(25))
	assert.True(t, got.BitLen() >= 64)
}
