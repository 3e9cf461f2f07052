package smt

import "fmt"

// ProofNode is one (side, node) pair along a Merkle proof. Exactly one of
// Leaf, Branch or Root is set; Side is the slot this node occupies within
// its own parent, used to rebind hashes during Verify.
type ProofNode struct {
	Side   byte
	Leaf   *Leaf
	Branch *Branch
	Root   *Root
}

// Proof is an ordered inclusion proof for Key, leaf-first (the terminal
// leaf is Nodes[0], the Root is Nodes[len(Nodes)-1]). Prove walks
// root-to-leaf in natural recursion order and reverses once before
// returning; Verify never reverses again.
type Proof struct {
	Key   Key
	Data  []byte
	Nodes []ProofNode
}

// Prove extracts a Merkle proof for key against root, reading only. It
// fails with ErrNotFound if key is not present under root.
func Prove(store NodeStore, key Key, root *Root) (*Proof, error) {
	if root == nil {
		return nil, ErrNotFound
	}

	bit0 := key.Bit(0)
	childHash := root.childAt(bit0)
	if childHash.IsZero() {
		return nil, ErrNotFound
	}

	nodes := []ProofNode{{Side: 0, Root: root.copy()}}
	curSide := bit0
	cur := childHash

	for step := 0; step < maxProofSteps; step++ {
		n, err := store.Get(cur)
		if err != nil {
			return nil, err
		}

		switch node := n.(type) {
		case *Branch:
			nodes = append(nodes, ProofNode{Side: curSide, Branch: node.copy()})
			bit := key.Bit(node.Pos)
			next := node.childAt(bit)
			if next.IsZero() {
				return nil, fmt.Errorf("%w: branch missing child", ErrMalformed)
			}
			curSide = bit
			cur = next

		case *Leaf:
			if !node.Key.Equal(key) {
				return nil, ErrNotFound
			}
			nodes = append(nodes, ProofNode{Side: curSide, Leaf: NewLeaf(node.Key, node.Data)})
			return &Proof{Key: key, Data: node.Data, Nodes: reverseProofNodes(nodes)}, nil

		default:
			return nil, fmt.Errorf("%w: unexpected node kind during traversal", ErrMalformed)
		}
	}
	return nil, fmt.Errorf("%w: traversal exceeded key width", ErrMalformed)
}

func reverseProofNodes(nodes []ProofNode) []ProofNode {
	out := make([]ProofNode, len(nodes))
	for i, n := range nodes {
		out[len(nodes)-1-i] = n
	}
	return out
}

// Verify reconstructs the root hash from proof and compares it against
// expectedRoot. A leaf appearing anywhere except the start, or a missing
// terminal root, is ErrMalformed; a mismatched digest is ErrInvalidProof.
func Verify(proof *Proof, expectedRoot NodeHash) error {
	if proof == nil || len(proof.Nodes) < 2 {
		return fmt.Errorf("%w: proof too short", ErrMalformed)
	}
	first := proof.Nodes[0]
	if first.Leaf == nil {
		return fmt.Errorf("%w: proof must start with a leaf", ErrMalformed)
	}
	last := proof.Nodes[len(proof.Nodes)-1]
	if last.Root == nil {
		return fmt.Errorf("%w: proof must end with the root", ErrMalformed)
	}
	for _, step := range proof.Nodes[1:] {
		if step.Leaf != nil {
			return fmt.Errorf("%w: leaf appears past the start of the proof", ErrMalformed)
		}
	}

	// Clear any memoised digest before recomputing -- otherwise a stale
	// hash on a carried node would mask tampering further down the proof.
	leaf := first.Leaf
	leaf.hashSet = false
	current := leaf.Hash()
	currentSide := first.Side

	for _, step := range proof.Nodes[1 : len(proof.Nodes)-1] {
		if step.Branch == nil {
			return fmt.Errorf("%w: expected an intermediate branch", ErrMalformed)
		}
		b := step.Branch
		b.hashSet = false
		b.setChild(currentSide, current)
		current = b.Hash()
		currentSide = step.Side
	}

	r := last.Root
	r.hashSet = false
	r.setChild(currentSide, current)
	current = r.Hash()

	if current != expectedRoot {
		return ErrInvalidProof
	}
	return nil
}
