// Package izerr defines the sentinel error kinds shared across the module.
//
// Callers should compare with errors.Is, since every exported error is
// wrapped with call-site context via fmt.Errorf("...: %w", ...).
package izerr

import "errors"

var (
	// ErrTooSmall is returned when a bound (n, bit size) is below the
	// minimum the operation supports.
	ErrTooSmall = errors.New("izerr: value below minimum")

	// ErrAllocationFailed is returned when backing storage for a
	// container could not be obtained.
	ErrAllocationFailed = errors.New("izerr: allocation failed")

	// ErrInvalidArgument is returned for programming errors such as an
	// out-of-range residue class or a non-numeric y string.
	ErrInvalidArgument = errors.New("izerr: invalid argument")

	// ErrNotCoprime is returned by modular inverse / solve-for-y when
	// gcd(a, m) != 1.
	ErrNotCoprime = errors.New("izerr: not coprime")

	// ErrNotFound is returned when a search/next-prime attempt cap is
	// reached without a result. Not fatal: callers may retry or widen
	// their search.
	ErrNotFound = errors.New("izerr: not found")

	// ErrIntegrityFailed is returned when a stored content hash does not
	// match the recomputed hash on read.
	ErrIntegrityFailed = errors.New("izerr: integrity check failed")

	// ErrIOFailed wraps an underlying I/O error encountered while
	// reading or writing a container file.
	ErrIOFailed = errors.New("izerr: I/O failed")
)
