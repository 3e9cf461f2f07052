package smt

import "errors"

// Sentinel errors for every error kind the core surfaces. Backend failures
// from a NodeStore are wrapped with %w so errors.Is keeps working through
// the store boundary.
var (
	// ErrInvalidKeyLen is returned when a key is not exactly KeyBits bits.
	ErrInvalidKeyLen = errors.New("smt: key length must be 256 bits")

	// ErrDuplicateKey is returned by Insert when the key already exists.
	ErrDuplicateKey = errors.New("smt: key already present")

	// ErrNotFound is returned by Update when the key does not exist.
	ErrNotFound = errors.New("smt: key not found")

	// ErrMalformed marks data corruption: a branch missing a child, a leaf
	// found at a non-terminal proof position, or an encoding that does not
	// round-trip.
	ErrMalformed = errors.New("smt: malformed node")

	// ErrStoreMissing is returned when a referenced hash is absent from the
	// NodeStore.
	ErrStoreMissing = errors.New("smt: referenced node missing from store")

	// ErrInvalidProof is returned by Verify when the recomputed root does
	// not match the expected root hash.
	ErrInvalidProof = errors.New("smt: proof does not reconstruct expected root")

	// ErrStoreError wraps an opaque backend I/O failure.
	ErrStoreError = errors.New("smt: node store backend error")
)
