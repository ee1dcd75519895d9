package bitset

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Zprime137/iZ-lib/pkg/izerr"
)

// WriteTo serializes b in the bitmap file format (diagnostics only):
// size (bits, uint64), packed bytes, 32-byte SHA-256 hash. Byte order is
// little-endian, matching every other container format in this module.
func (b *BitSet) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, b.size); err != nil {
		return 0, fmt.Errorf("bitset: write size: %w", izerr.ErrIOFailed)
	}
	packed := b.packedBytes()
	if _, err := buf.Write(packed); err != nil {
		return 0, fmt.Errorf("bitset: write body: %w", izerr.ErrIOFailed)
	}
	hash := b.ContentHash()
	if _, err := buf.Write(hash[:]); err != nil {
		return 0, fmt.Errorf("bitset: write hash: %w", izerr.ErrIOFailed)
	}
	n, err := w.Write(buf.Bytes())
	if err != nil {
		return int64(n), fmt.Errorf("bitset: write: %w", izerr.ErrIOFailed)
	}
	return int64(n), nil
}

func (b *BitSet) packedBytes() []byte {
	buf := make([]byte, len(b.words)*8)
	for i, w := range b.words {
		for j := 0; j < 8; j++ {
			buf[i*8+j] = byte(w >> (8 * j))
		}
	}
	return buf
}

// ReadFrom reconstructs a BitSet from the bitmap file format, rejecting on
// hash mismatch (izerr.ErrIntegrityFailed).
func ReadFrom(r io.Reader) (*BitSet, error) {
	var size uint64
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return nil, fmt.Errorf("bitset: read size: %w", izerr.ErrIOFailed)
	}
	bs, err := New(size)
	if err != nil {
		return nil, err
	}
	body := make([]byte, len(bs.words)*8)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("bitset: read body: %w", izerr.ErrIOFailed)
	}
	for i := range bs.words {
		var w uint64
		for j := 0; j < 8; j++ {
			w |= uint64(body[i*8+j]) << (8 * j)
		}
		bs.words[i] = w
	}
	var storedHash [32]byte
	if _, err := io.ReadFull(r, storedHash[:]); err != nil {
		return nil, fmt.Errorf("bitset: read hash: %w", izerr.ErrIOFailed)
	}
	if !bs.ValidateHash(storedHash) {
		return nil, fmt.Errorf("bitset: hash mismatch: %w", izerr.ErrIntegrityFailed)
	}
	return bs, nil
}
