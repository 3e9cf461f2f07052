package smt

import "time"

// Engine wraps the core Insert/Update/Prove/Verify operations with the
// structured logging and metrics every subsystem in this codebase carries,
// without changing the underlying free functions' contract. Insert/Update
// log Debug on success and Warn on DuplicateKey/NotFound; Verify logs Warn
// on InvalidProof.
type Engine struct {
	Store NodeStore
	cfg   Config
}

// NewEngine wraps store with cfg, filling in a default logger if cfg.Logger
// is nil.
func NewEngine(store NodeStore, cfg Config) *Engine {
	if cfg.Logger == nil {
		cfg.Logger = DefaultConfig().Logger
	}
	return &Engine{Store: store, cfg: cfg}
}

// Insert adds leaf to the trie rooted at root.
func (e *Engine) Insert(leaf *Leaf, root *Root) (*Root, error) {
	start := time.Now()
	newRoot, nodes, err := insertOrUpdate(e.Store, leaf, root, false)
	e.cfg.Metrics.ObserveInsert(time.Since(start))
	if err != nil {
		e.cfg.Logger.Warn("insert failed", "key", leaf.Key.Bytes(), "err", err)
		return nil, err
	}
	e.cfg.Metrics.ObserveRehash(nodes)
	e.cfg.Logger.Debug("insert committed", "root", newRoot.Hash(), "nodes_rehashed", nodes)
	return newRoot, nil
}

// Update replaces the data of an existing leaf.
func (e *Engine) Update(leaf *Leaf, root *Root) (*Root, error) {
	start := time.Now()
	newRoot, nodes, err := insertOrUpdate(e.Store, leaf, root, true)
	e.cfg.Metrics.ObserveInsert(time.Since(start))
	if err != nil {
		e.cfg.Logger.Warn("update failed", "key", leaf.Key.Bytes(), "err", err)
		return nil, err
	}
	e.cfg.Metrics.ObserveRehash(nodes)
	e.cfg.Logger.Debug("update committed", "root", newRoot.Hash(), "nodes_rehashed", nodes)
	return newRoot, nil
}

// Prove extracts a Merkle proof for key against root.
func (e *Engine) Prove(key Key, root *Root) (*Proof, error) {
	proof, err := Prove(e.Store, key, root)
	if err != nil {
		e.cfg.Logger.Warn("prove failed", "err", err)
		return nil, err
	}
	return proof, nil
}

// Verify reconstructs the root hash from proof and compares it against
// expectedRoot.
func (e *Engine) Verify(proof *Proof, expectedRoot NodeHash) error {
	err := Verify(proof, expectedRoot)
	ok := err == nil
	e.cfg.Metrics.ObserveVerify(ok)
	if !ok {
		e.cfg.Logger.Warn("verify failed", "err", err)
	}
	return err
}
