package smt

// Trie is a thin, stateful convenience wrapper around the free-standing
// Insert/Update/Prove operations, pairing a NodeStore with the caller's
// current Root the way a long-lived process would. The free functions
// remain the primitive the package commits to; Trie just threads the root
// through them so a caller doesn't have to.
type Trie struct {
	Store NodeStore
	root  *Root
}

// New creates an empty trie backed by store.
func New(store NodeStore) *Trie {
	return &Trie{Store: store, root: EmptyRoot()}
}

// Open resumes a trie at a previously returned root.
func Open(store NodeStore, root *Root) *Trie {
	if root == nil {
		root = EmptyRoot()
	}
	return &Trie{Store: store, root: root}
}

// Root returns the trie's current root.
func (t *Trie) Root() *Root { return t.root }

// Insert adds a leaf under key, advancing the trie's root on success.
func (t *Trie) Insert(key Key, data []byte) error {
	newRoot, err := Insert(t.Store, NewLeaf(key, data), t.root)
	if err != nil {
		return err
	}
	t.root = newRoot
	return nil
}

// Update replaces the data at an existing key, advancing the trie's root
// on success.
func (t *Trie) Update(key Key, data []byte) error {
	newRoot, err := Update(t.Store, NewLeaf(key, data), t.root)
	if err != nil {
		return err
	}
	t.root = newRoot
	return nil
}

// Prove extracts a Merkle proof for key against the trie's current root.
func (t *Trie) Prove(key Key) (*Proof, error) {
	return Prove(t.Store, key, t.root)
}
