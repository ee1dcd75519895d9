package vxkernel

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	"math/big"
	"path/filepath"

	"github.com/Zprime137/iZ-lib/pkg/izerr"
)

// CanonicalExt is the extension the gap-list file reader expects; a
// caller-supplied path without an extension gets it appended.
const CanonicalExt = ".vx"

// CanonicalPath appends CanonicalExt to path if it has no extension.
func CanonicalPath(path string) string {
	if filepath.Ext(path) == "" {
		return path + CanonicalExt
	}
	return path
}

// WriteTo serializes g in the gap-list binary file format: y_len, y's
// ASCII-decimal bytes (null-terminated), p_count, p_count little-endian
// 16-bit gaps, then a 32-byte SHA-256 trailer over the gap bytes only.
func (g *GapList) WriteTo(w io.Writer) (int64, error) {
	yText := append([]byte(g.Y.String()), 0)

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, uint64(len(yText))); err != nil {
		return 0, fmt.Errorf("vxkernel: write y_len: %w", izerr.ErrIOFailed)
	}
	buf.Write(yText)
	if err := binary.Write(&buf, binary.LittleEndian, uint64(len(g.gaps))); err != nil {
		return 0, fmt.Errorf("vxkernel: write p_count: %w", izerr.ErrIOFailed)
	}
	body := g.bodyBytes()
	buf.Write(body)
	hash := sha256.Sum256(body)
	buf.Write(hash[:])

	n, err := w.Write(buf.Bytes())
	if err != nil {
		return int64(n), fmt.Errorf("vxkernel: write: %w", izerr.ErrIOFailed)
	}
	return int64(n), nil
}

// ReadFrom reconstructs a GapList from the gap-list binary format. vx is
// supplied by the caller (the shared VX_ASSETS this slab was sieved
// against), since the file format itself carries only y and the gaps.
// Every length-prefixed buffer is allocated strictly after its prefix is
// read, never from a pre-sized guess.
func ReadFrom(r io.Reader, vx uint64) (*GapList, error) {
	var yLen uint64
	if err := binary.Read(r, binary.LittleEndian, &yLen); err != nil {
		return nil, fmt.Errorf("vxkernel: read y_len: %w", izerr.ErrIOFailed)
	}
	yText := make([]byte, yLen)
	if _, err := io.ReadFull(r, yText); err != nil {
		return nil, fmt.Errorf("vxkernel: read y: %w", izerr.ErrIOFailed)
	}
	if yLen == 0 || yText[yLen-1] != 0 {
		return nil, fmt.Errorf("vxkernel: y field not null-terminated: %w", izerr.ErrInvalidArgument)
	}
	y, ok := new(big.Int).SetString(string(yText[:yLen-1]), 10)
	if !ok {
		return nil, fmt.Errorf("vxkernel: y %q not numeric: %w", yText[:yLen-1], izerr.ErrInvalidArgument)
	}

	var count uint64
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("vxkernel: read p_count: %w", izerr.ErrIOFailed)
	}

	body := make([]byte, count*2) // allocated only now, after count is known
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("vxkernel: read body: %w", izerr.ErrIOFailed)
	}
	var storedHash [32]byte
	if _, err := io.ReadFull(r, storedHash[:]); err != nil {
		return nil, fmt.Errorf("vxkernel: read hash: %w", izerr.ErrIOFailed)
	}
	if sha256.Sum256(body) != storedHash {
		return nil, fmt.Errorf("vxkernel: hash mismatch: %w", izerr.ErrIntegrityFailed)
	}

	gaps := make([]uint16, count)
	for i := range gaps {
		gaps[i] = binary.LittleEndian.Uint16(body[i*2:])
	}
	return &GapList{VX: vx, Y: y, gaps: gaps}, nil
}
