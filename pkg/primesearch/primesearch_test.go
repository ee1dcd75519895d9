package primesearch

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zprime137/iZ-lib/pkg/izerr"
	"github.com/Zprime137/iZ-lib/pkg/izmath"
)

func TestSearchIZPrimeRejectsBadClass(t *testing.T) {
	_, err := SearchIZPrime(context.Background(), 0, big.NewInt(35))
	assert.ErrorIs(t, err, izerr.ErrInvalidArgument)
}

func TestSearchIZPrimeFindsCandidateOnBothClasses(t *testing.T) {
	vx := big.NewInt(5005)
	for _, pID := range []int{izmath.NegClass, izmath.PosClass} {
		p, err := SearchIZPrime(context.Background(), pID, vx)
		require.NoError(t, err)
		assert.True(t, p.ProbablyPrime(25))
		mod6 := new(big.Int).Mod(p, big.NewInt(6)).Int64()
		if pID == izmath.NegClass {
			assert.Equal(t, int64(5), mod6)
		} else {
			assert.Equal(t, int64(1), mod6)
		}
	}
}

func TestSearchIZPrimeStopsPromptlyOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	_, err := SearchIZPrime(ctx, izmath.NegClass, big.NewInt(5005))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRandomIZPrimeRejectsBadClass(t *testing.T) {
	_, err := RandomIZPrime(0, 64, 1, 0)
	assert.ErrorIs(t, err, izerr.ErrInvalidArgument)
}

func TestRandomIZPrimeRejectsTooSmallBitSize(t *testing.T) {
	_, err := RandomIZPrime(izmath.NegClass, 9, 1, 0)
	assert.ErrorIs(t, err, izerr.ErrTooSmall)
}

func TestRandomIZPrimeSingleWorker(t *testing.T) {
	p, err := RandomIZPrime(izmath.NegClass, 64, 1, 0)
	require.NoError(t, err)
	assert.True(t, p.ProbablyPrime(25))
	mod6 := new(big.Int).Mod(p, big.NewInt(6)).Int64()
	assert.Equal(t, int64(5), mod6)
}

func TestRandomIZPrimeMultipleWorkersRace(t *testing.T) {
	p, err := RandomIZPrime(izmath.PosClass, 128, 4, 10)
	require.NoError(t, err)
	assert.True(t, p.ProbablyPrime(25))
	assert.True(t, p.BitLen() >= 64)
	mod6 := new(big.Int).Mod(p, big.NewInt(6)).Int64()
	assert.Equal(t, int64(1), mod6)
}

func TestRandomIZPrimeClampsWorkerCount(t *testing.T) {
	p, err := RandomIZPrime(izmath.NegClass, 64, 99, 0)
	require.NoError(t, err)
	assert.True(t, p.ProbablyPrime(25))
}
