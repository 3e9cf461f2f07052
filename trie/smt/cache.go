package smt

import "github.com/VictoriaMetrics/fastcache"

// CachedStore wraps a NodeStore with a fixed-size in-memory byte cache of
// encoded nodes, cutting backend round-trips for hot spine nodes -- the
// shared ancestors near the root that every insert touches. It plays the
// same role as go-ethereum's fastcache-backed clean-node cache in front of
// its trie database.
type CachedStore struct {
	backend NodeStore
	cache   *fastcache.Cache
}

// NewCachedStore wraps backend with an in-memory cache sized maxBytes.
func NewCachedStore(backend NodeStore, maxBytes int) *CachedStore {
	return &CachedStore{
		backend: backend,
		cache:   fastcache.New(maxBytes),
	}
}

// Get implements NodeStore, consulting the cache before the backend.
func (c *CachedStore) Get(h NodeHash) (Node, error) {
	if enc := c.cache.Get(nil, h[:]); len(enc) > 0 {
		if n, err := decodeNode(enc); err == nil {
			return n, nil
		}
	}
	n, err := c.backend.Get(h)
	if err != nil {
		return nil, wrapStoreError(err)
	}
	c.cache.Set(h[:], n.Encode())
	return n, nil
}

// Put implements NodeStore, writing through to the backend and refreshing
// the cache entry.
func (c *CachedStore) Put(h NodeHash, n Node) error {
	if err := c.backend.Put(h, n); err != nil {
		return wrapStoreError(err)
	}
	c.cache.Set(h[:], n.Encode())
	return nil
}

// Contains implements NodeStore.
func (c *CachedStore) Contains(h NodeHash) (bool, error) {
	if c.cache.Has(h[:]) {
		return true, nil
	}
	ok, err := c.backend.Contains(h)
	if err != nil {
		return false, wrapStoreError(err)
	}
	return ok, nil
}

// Reset clears the cache without touching the backend.
func (c *CachedStore) Reset() { c.cache.Reset() }
