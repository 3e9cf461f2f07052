package smt

import (
	"errors"
	"fmt"
	"sync"
)

// NodeStore is the content-addressed collaborator the core reads and
// writes nodes through. Implementations must guarantee that Put(h, n) is
// only accepted when hash(n) == h, and must never overwrite an existing
// binding with different bytes -- the core relies on this to treat a
// failed write as safely abandoned rather than as corruption of the
// previous root.
type NodeStore interface {
	// Get retrieves the node stored under h. A missing hash is
	// ErrStoreMissing.
	Get(h NodeHash) (Node, error)

	// Put stores n under h, idempotent for an equal (h, n) pair.
	Put(h NodeHash, n Node) error

	// Contains reports whether h is present without fetching the node.
	Contains(h NodeHash) (bool, error)
}

// MemStore is an in-memory NodeStore, the reference implementation used by
// tests and as the default backend for callers that don't need durable
// persistence.
type MemStore struct {
	mu    sync.RWMutex
	nodes map[NodeHash]Node
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{nodes: make(map[NodeHash]Node)}
}

// Get implements NodeStore.
func (s *MemStore) Get(h NodeHash) (Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.nodes[h]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStoreMissing, h)
	}
	return n, nil
}

// Put implements NodeStore.
func (s *MemStore) Put(h NodeHash, n Node) error {
	if n.Hash() != h {
		return fmt.Errorf("%w: content address mismatch for %s", ErrMalformed, h)
	}
	if enc := n.Encode(); len(enc) == 0 || NodeKind(enc[0]) != n.Kind() {
		return fmt.Errorf("%w: node kind does not match its own encoding for %s", ErrMalformed, h)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[h] = n
	return nil
}

// Contains implements NodeStore.
func (s *MemStore) Contains(h NodeHash) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.nodes[h]
	return ok, nil
}

// Len returns the number of nodes currently held. Exposed for tests that
// assert on structural sharing.
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

// wrapStoreError normalises an opaque failure from a NodeStore backend
// (disk, network, whatever a wrapper like CachedStore sits in front of)
// to ErrStoreError, so callers can match it with errors.Is regardless of
// the backend's own error type. A failure that already carries one of the
// package's own sentinels is returned unchanged -- it is data corruption,
// not an I/O failure, and rewrapping it would hide which kind it is.
func wrapStoreError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrStoreMissing),
		errors.Is(err, ErrMalformed),
		errors.Is(err, ErrDuplicateKey),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrInvalidKeyLen),
		errors.Is(err, ErrInvalidProof),
		errors.Is(err, ErrStoreError):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrStoreError, err)
	}
}
