package smt

// Update replaces the data of the existing leaf at leaf.Key, returning the
// new root. It fails with ErrNotFound if the key is not present -- the
// prototypes disagreed on this, this package mandates NotFound.
func Update(store NodeStore, leaf *Leaf, root *Root) (*Root, error) {
	newRoot, _, err := insertOrUpdate(store, leaf, root, true)
	return newRoot, err
}
