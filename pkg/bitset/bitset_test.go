package bitset

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetClearFlip(t *testing.T) {
	b, err := New(100)
	require.NoError(t, err)

	assert.False(t, b.Get(42))
	b.Set(42)
	assert.True(t, b.Get(42))
	b.Clear(42)
	assert.False(t, b.Get(42))
	b.Flip(42)
	assert.True(t, b.Get(42))
	b.Flip(42)
	assert.False(t, b.Get(42))
}

func TestSetAllClearAllMasksTail(t *testing.T) {
	b, err := New(70)
	require.NoError(t, err)
	b.SetAll()
	for i := uint64(0); i < 70; i++ {
		assert.True(t, b.Get(i), "bit %d", i)
	}
	// bits beyond capacity must never read as set
	assert.False(t, b.Get(70))
	assert.False(t, b.Get(127))

	b.ClearAll()
	for i := uint64(0); i < 70; i++ {
		assert.False(t, b.Get(i))
	}
}

func TestClearStride(t *testing.T) {
	b, err := New(50)
	require.NoError(t, err)
	b.SetAll()
	b.ClearStride(7, 3, 50)
	for i := uint64(0); i < 50; i++ {
		want := !((i >= 3) && (i-3)%7 == 0)
		assert.Equal(t, want, b.Get(i), "bit %d", i)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b, err := New(10)
	require.NoError(t, err)
	b.Set(3)
	c := b.Clone()
	c.Set(4)
	assert.False(t, b.Get(4))
	assert.True(t, c.Get(3))
}

func TestDuplicateSegment(t *testing.T) {
	b, err := New(40)
	require.NoError(t, err)
	b.Set(0)
	b.Set(3)
	// pattern [1,0,0,1,0,...] in the first 5 bits (0 and 3 set)
	b.DuplicateSegment(0, 5, 4)
	for j := 0; j < 4; j++ {
		base := uint64(j * 5)
		assert.True(t, b.Get(base+0), "segment %d bit 0", j)
		assert.True(t, b.Get(base+3), "segment %d bit 3", j)
		assert.False(t, b.Get(base+1), "segment %d bit 1", j)
	}
}

func TestContentHashStableAndSensitive(t *testing.T) {
	a, _ := New(64)
	b, _ := New(64)
	a.Set(1)
	b.Set(1)
	assert.Equal(t, a.ContentHash(), b.ContentHash())

	b.Set(2)
	assert.NotEqual(t, a.ContentHash(), b.ContentHash())
}

func TestQuickHashMatchesAfterTiling(t *testing.T) {
	a, _ := New(20)
	b, _ := New(20)
	a.Set(0)
	a.Set(3)
	a.DuplicateSegment(0, 5, 4)
	for j := uint64(0); j < 20; j += 5 {
		b.Set(j)
		b.Set(j + 3)
	}
	assert.Equal(t, a.QuickHash(), b.QuickHash())
}

func TestWriteReadRoundTrip(t *testing.T) {
	b, err := New(130)
	require.NoError(t, err)
	b.Set(5)
	b.Set(129)

	var buf bytes.Buffer
	_, err = b.WriteTo(&buf)
	require.NoError(t, err)

	got, err := ReadFrom(&buf)
	require.NoError(t, err)
	assert.Equal(t, b.ContentHash(), got.ContentHash())
	assert.True(t, got.Get(5))
	assert.True(t, got.Get(129))
}

func TestReadRejectsTamperedBody(t *testing.T) {
	b, err := New(64)
	require.NoError(t, err)
	b.Set(10)

	var buf bytes.Buffer
	_, err = b.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.Bytes()
	// flip a byte inside the packed body (after the 8-byte size header)
	raw[9] ^= 0xFF

	_, err = ReadFrom(bytes.NewReader(raw))
	assert.Error(t, err)
}
