package primelist

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/Zprime137/iZ-lib/pkg/izerr"
)

// WriteTo serializes pl in the prime-list binary file format: header
// p_count (signed int32), body p_count little-endian uint64s, trailer
// 32-byte SHA-256 of the body.
func (pl *PrimeList) WriteTo(w io.Writer) (int64, error) {
	if len(pl.primes) > 1<<31-1 {
		return 0, fmt.Errorf("primelist: p_count %d overflows int32: %w", len(pl.primes), izerr.ErrInvalidArgument)
	}
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, int32(len(pl.primes))); err != nil {
		return 0, fmt.Errorf("primelist: write header: %w", izerr.ErrIOFailed)
	}
	body := pl.bodyBytes()
	buf.Write(body)
	hash := sha256.Sum256(body)
	buf.Write(hash[:])

	n, err := w.Write(buf.Bytes())
	if err != nil {
		return int64(n), fmt.Errorf("primelist: write: %w", izerr.ErrIOFailed)
	}
	return int64(n), nil
}

// ReadFrom reconstructs a PrimeList from the prime-list binary format,
// rejecting on hash mismatch. The body buffer is allocated strictly
// after p_count is read off the wire, never from a pre-sized guess, so a
// corrupt or hostile count field can't over-allocate before validation.
func ReadFrom(r io.Reader) (*PrimeList, error) {
	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("primelist: read header: %w", izerr.ErrIOFailed)
	}
	if count < 0 {
		return nil, fmt.Errorf("primelist: negative p_count %d: %w", count, izerr.ErrInvalidArgument)
	}

	body := make([]byte, int(count)*8) // allocated only now, after count is known
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("primelist: read body: %w", izerr.ErrIOFailed)
	}
	var storedHash [32]byte
	if _, err := io.ReadFull(r, storedHash[:]); err != nil {
		return nil, fmt.Errorf("primelist: read hash: %w", izerr.ErrIOFailed)
	}
	if sha256.Sum256(body) != storedHash {
		log.Errorf("hash mismatch reading prime list: p_count=%d", count)
		return nil, fmt.Errorf("primelist: hash mismatch: %w", izerr.ErrIntegrityFailed)
	}

	primes := make([]uint64, count)
	for i := range primes {
		primes[i] = binary.LittleEndian.Uint64(body[i*8:])
	}
	return &PrimeList{primes: primes}, nil
}

// WriteCompressed writes pl zstd-compressed. The content hash is still
// computed over the uncompressed body, so format validation on read is
// unaffected by compression — mirroring how SnellerInc/sneller layers
// zstd under a fixed logical block format (ion/blockfmt, compr/compression.go).
func (pl *PrimeList) WriteCompressed(w io.Writer) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("primelist: zstd writer: %w", izerr.ErrIOFailed)
	}
	if _, err := pl.WriteTo(enc); err != nil {
		enc.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("primelist: zstd close: %w", izerr.ErrIOFailed)
	}
	return nil
}

// ReadCompressed reads a zstd-compressed prime-list file written by
// WriteCompressed.
func ReadCompressed(r io.Reader) (*PrimeList, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("primelist: zstd reader: %w", izerr.ErrIOFailed)
	}
	defer dec.Close()
	return ReadFrom(dec)
}
