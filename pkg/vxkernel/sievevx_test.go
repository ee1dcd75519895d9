package vxkernel

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zprime137/iZ-lib/internal/oracle"
	"github.com/Zprime137/iZ-lib/pkg/izerr"
	"github.com/Zprime137/iZ-lib/pkg/vxbase"
)

func TestSieveVXSlabZeroAgreesWithOracle(t *testing.T) {
	const vx = 35
	assets, err := vxbase.BuildAssets(vx)
	require.NoError(t, err)

	gl, err := SieveVX(assets, big.NewInt(0))
	require.NoError(t, err)

	want := []int64{}
	for _, p := range oracle.Classical(6*vx + 1) {
		if p >= 5 {
			want = append(want, p)
		}
	}

	got := gl.Primes()
	require.Equal(t, len(want), len(got))
	for i, p := range want {
		assert.Equal(t, big.NewInt(p), got[i], "index %d", i)
	}
}

func TestSieveVXGapsAreAllEven(t *testing.T) {
	const vx = 35
	assets, err := vxbase.BuildAssets(vx)
	require.NoError(t, err)

	gl, err := SieveVX(assets, big.NewInt(3))
	require.NoError(t, err)
	for i, g := range gl.Gaps() {
		assert.Zero(t, g%2, "gap %d at index %d is odd", g, i)
	}
}

func TestSieveVXCountersSmallSlab(t *testing.T) {
	// vx=35, y=0 stays in deterministic mode (root_limit <= vx), so the
	// sieve never needs the probabilistic test: BitOps is still
	// accumulated by the marking pass, PrimalityTestOps stays zero.
	const vx = 35
	assets, err := vxbase.BuildAssets(vx)
	require.NoError(t, err)

	gl, err := SieveVX(assets, big.NewInt(0))
	require.NoError(t, err)
	assert.Zero(t, gl.PrimalityTestOps)
	assert.Positive(t, gl.BitOps)
}

func TestSieveVXCountersLargeSlab(t *testing.T) {
	// vx=35, y=6 pushes root_limit (38) past vx (large mode), so every
	// surviving candidate in the emission pass must run through
	// ProbablyPrime, and PrimalityTestOps must reflect that.
	const vx = 35
	assets, err := vxbase.BuildAssets(vx)
	require.NoError(t, err)

	gl, err := SieveVX(assets, big.NewInt(6))
	require.NoError(t, err)
	assert.Positive(t, gl.PrimalityTestOps)
}

func TestSieveVXStrictlyIncreasing(t *testing.T) {
	const vx = 385
	assets, err := vxbase.BuildAssets(vx)
	require.NoError(t, err)

	gl, err := SieveVX(assets, big.NewInt(1))
	require.NoError(t, err)

	primes := gl.Primes()
	for i := 1; i < len(primes); i++ {
		assert.Equal(t, -1, primes[i-1].Cmp(primes[i]), "not strictly increasing at %d", i)
	}
}

func TestSieveVXRangeReusesAssets(t *testing.T) {
	const vx = 35
	out, err := SieveVXRange(vx, big.NewInt(0), 3)
	require.NoError(t, err)
	assert.Len(t, out, 3)
	for i, gl := range out {
		assert.Equal(t, int64(i), gl.Y.Int64())
	}
}

func TestGapListWriteReadRoundTrip(t *testing.T) {
	const vx = 35
	assets, err := vxbase.BuildAssets(vx)
	require.NoError(t, err)
	gl, err := SieveVX(assets, big.NewInt(2))
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = gl.WriteTo(&buf)
	require.NoError(t, err)

	got, err := ReadFrom(&buf, vx)
	require.NoError(t, err)
	assert.Equal(t, gl.Gaps(), got.Gaps())
	assert.Equal(t, gl.Y, got.Y)
	assert.Equal(t, gl.ContentHash(), got.ContentHash())
}

func TestGapListReadRejectsTamperedHash(t *testing.T) {
	gl := New(35, big.NewInt(1), 4)
	gl.Append(4)
	gl.Append(2)
	gl.Append(6)

	var buf bytes.Buffer
	_, err := gl.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.Bytes()
	raw[len(raw)-1] ^= 0xFF

	_, err = ReadFrom(bytes.NewReader(raw), 35)
	assert.ErrorIs(t, err, izerr.ErrIntegrityFailed)
}

func TestCanonicalPath(t *testing.T) {
	assert.Equal(t, "slab0.vx", CanonicalPath("slab0"))
	assert.Equal(t, "slab0.bin", CanonicalPath("slab0.bin"))
}
