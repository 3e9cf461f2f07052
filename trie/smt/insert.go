package smt

import "fmt"

// Insert adds leaf to the trie rooted at root, returning the new root. It
// fails with ErrDuplicateKey if leaf.Key is already present. root may be
// nil, meaning the empty trie.
func Insert(store NodeStore, leaf *Leaf, root *Root) (*Root, error) {
	newRoot, _, err := insertOrUpdate(store, leaf, root, false)
	return newRoot, err
}

// InsertBatch folds repeated single inserts over one store, threading the
// returned root from each insert into the next. It issues the same
// NodeStore calls as the equivalent sequence of Insert calls and carries no
// invariants beyond Insert's: the first failing insert (for example a
// duplicate key) aborts the batch and the returned root reflects the last
// successful insert.
func InsertBatch(store NodeStore, leaves []*Leaf, root *Root) (*Root, error) {
	cur := root
	for i, leaf := range leaves {
		next, err := Insert(store, leaf, cur)
		if err != nil {
			return cur, fmt.Errorf("InsertBatch: leaf %d: %w", i, err)
		}
		cur = next
	}
	return cur, nil
}

// insertOrUpdate implements the shared walk behind Insert and Update
// (§4.3-4.5): descend from root following leaf.Key, copy-on-write each
// Branch visited, and either split a mismatched leaf (insert) or replace a
// matched one (update). It returns the node count rewritten during rehash,
// for metrics.
//
// Descent only ever tests the single bit a Branch discriminates on (plus
// bit 0 at the Root); it never inspects the bits between one branch and
// the next, so reaching a resident Leaf does not mean the new key agrees
// with it on every bit visited along the way -- it only means the two keys
// agree at the specific positions each Branch tested. The real first
// difference between the new key and the resident leaf can therefore fall
// *above* the deepest branch visited, not just at or below it; splice
// handles placing the new Branch at the bit position that actually
// divides the two keys, which may mean inserting it above one or more
// already-visited branches rather than directly in the leaf's old slot.
func insertOrUpdate(store NodeStore, leaf *Leaf, root *Root, isUpdate bool) (*Root, int, error) {
	if root == nil {
		root = EmptyRoot()
	}
	newRoot := root.copy()

	bit0 := leaf.Key.Bit(0)
	childHash := newRoot.childAt(bit0)

	if childHash.IsZero() {
		if isUpdate {
			return nil, 0, ErrNotFound
		}
		if err := store.Put(leaf.Hash(), leaf); err != nil {
			return nil, 0, err
		}
		newRoot.setChild(bit0, leaf.Hash())
		newRoot.Invalidate()
		newRoot.Hash()
		return newRoot, 1, nil
	}

	var spine []branchFrame
	curSide := bit0
	cur := childHash

	for step := 0; ; step++ {
		if step > maxProofSteps {
			return nil, 0, fmt.Errorf("%w: traversal exceeded key width", ErrMalformed)
		}
		n, err := store.Get(cur)
		if err != nil {
			return nil, 0, err
		}

		switch node := n.(type) {
		case *Branch:
			nb := node.copy()
			spine = append(spine, branchFrame{side: curSide, branch: nb})

			bit := leaf.Key.Bit(nb.Pos)
			next := nb.childAt(bit)
			if next.IsZero() {
				return nil, 0, fmt.Errorf("%w: branch missing child", ErrMalformed)
			}
			curSide = bit
			cur = next

		case *Leaf:
			if node.Key.Equal(leaf.Key) {
				if !isUpdate {
					return nil, 0, ErrDuplicateKey
				}
				if err := store.Put(leaf.Hash(), leaf); err != nil {
					return nil, 0, err
				}
				return rehash(store, newRoot, spine, curSide, leaf.Hash())
			}
			if isUpdate {
				return nil, 0, ErrNotFound
			}

			// Only bit 0 (consumed at the Root) is known to agree going
			// in; search the whole remaining range for the true
			// divergence, not just the bits past the deepest branch
			// visited.
			d := firstDiffBit(leaf.Key, node.Key, 1)
			if d < 0 {
				return nil, 0, fmt.Errorf("%w: distinct keys agree on every remaining bit", ErrMalformed)
			}

			return splice(store, newRoot, spine, node, curSide, leaf, d)

		default:
			return nil, 0, fmt.Errorf("%w: unexpected node kind during traversal", ErrMalformed)
		}
	}
}

// splice inserts a new Branch at bit position d, the true first difference
// between leaf.Key and resident.Key. Because d may fall above one or more
// branches already visited on the way down to resident (descent never
// checked the bits between them), the new Branch cannot always simply take
// resident's old slot: it must be placed at the shallowest point in the
// spine consistent with discriminator positions increasing with depth,
// with every already-visited branch deeper than d carried over untouched
// as a subtree beneath it. resident is the Leaf found at the bottom of the
// descent; residentSide is the side bit used to reach it from its
// immediate parent (the deepest spine frame, or the Root if spine is
// empty).
func splice(store NodeStore, root *Root, spine []branchFrame, resident *Leaf, residentSide byte, leaf *Leaf, d int) (*Root, int, error) {
	splitAt := len(spine)
	for i, f := range spine {
		if f.branch.Pos > d {
			splitAt = i
			break
		}
	}

	// The side the new Branch occupies within whatever sits above it
	// (spine[splitAt-1], or the Root) is the same side used to reach
	// whatever is being displaced -- either the deepest surviving spine
	// frame or, if nothing survives beneath d, the resident leaf itself.
	tipSide := residentSide
	if splitAt < len(spine) {
		tipSide = spine[splitAt].side
	}

	// residentHash is the hash of the subtree being pushed one level
	// deeper: either the resident leaf directly, or the already-visited
	// branch at spine[splitAt], carried over unmodified since nothing
	// below it changed. Every member of that subtree is guaranteed to
	// share resident's bit at d, because no branch at or below
	// spine[splitAt] tests a position <= d.
	residentHash := resident.Hash()
	if splitAt < len(spine) {
		residentHash = spine[splitAt].branch.Hash()
	}

	branch := &Branch{Pos: d}
	// Place each side by its own bit value at d -- never hardcode
	// left/right independently of the bit that produced that side.
	branch.setChild(resident.Key.Bit(d), residentHash)
	branch.setChild(leaf.Key.Bit(d), leaf.Hash())

	if err := store.Put(leaf.Hash(), leaf); err != nil {
		return nil, 0, err
	}
	branchHash := branch.Hash()
	if err := store.Put(branchHash, branch); err != nil {
		return nil, 0, err
	}

	return rehash(store, root, spine[:splitAt], tipSide, branchHash)
}
