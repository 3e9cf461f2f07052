// Package smt implements a binary sparse Merkle trie: an append/update
// friendly, content-addressed authenticated dictionary keyed by 256-bit
// identifiers. Internal nodes branch on a single bit position and leaves
// are inserted lazily, so no empty subtree is ever materialised.
package smt

import (
	"encoding/binary"
	"encoding/hex"
)

// NodeHash is the 32-byte SHA-256 digest that addresses a node in the
// store.
type NodeHash [32]byte

var zeroHash NodeHash

// IsZero reports whether h is the all-zero sentinel used to mark an
// absent child.
func (h NodeHash) IsZero() bool { return h == zeroHash }

// Bytes returns the raw 32 bytes of h.
func (h NodeHash) Bytes() []byte { return h[:] }

// String renders h as a hex string, for logging.
func (h NodeHash) String() string { return hex.EncodeToString(h[:]) }

// BytesToNodeHash copies up to 32 bytes of b into a NodeHash.
func BytesToNodeHash(b []byte) NodeHash {
	var h NodeHash
	copy(h[:], b)
	return h
}

// NodeKind identifies which variant of the tagged Node union a value
// holds. Root is never persisted under its own content address (see
// EmptyRoot and rehash), so it has no NodeKind of its own. The numeric
// values double as the domain-separation tag bytes in the canonical
// encoding (hasher.go) and are load-bearing: changing them changes every
// hash in the system.
type NodeKind byte

const (
	KindLeaf   NodeKind = tagLeaf
	KindBranch NodeKind = tagBranch
)

// Node is implemented by the two variants ever persisted under a content
// address: *Leaf and *Branch. Root is never stored keyed by its own hash
// (see rehash in spine.go); it is handed back to the caller directly.
type Node interface {
	Hash() NodeHash
	Encode() []byte
	Kind() NodeKind
}

// Leaf is a terminal node holding an opaque payload under a 256-bit key.
type Leaf struct {
	Key  Key
	Data []byte

	hash    NodeHash
	hashSet bool
}

// NewLeaf builds a Leaf, copying data so later mutation by the caller
// cannot change an already-hashed node.
func NewLeaf(key Key, data []byte) *Leaf {
	return &Leaf{Key: key, Data: append([]byte(nil), data...)}
}

// Hash computes and memoises the leaf's digest. It is a pure function of
// (Key, Data).
func (l *Leaf) Hash() NodeHash {
	if !l.hashSet {
		l.hash = hashLeaf(l.Key, l.Data)
		l.hashSet = true
	}
	return l.hash
}

// Encode returns the canonical domain-separated byte encoding.
func (l *Leaf) Encode() []byte { return encodeLeaf(l.Key, l.Data) }

// Kind identifies l as KindLeaf.
func (l *Leaf) Kind() NodeKind { return KindLeaf }

// Branch is an internal node discriminating on a single bit position. It
// always has both children populated; a Branch missing a child is
// ill-formed (ErrMalformed).
type Branch struct {
	Pos   int
	Left  NodeHash
	Right NodeHash

	hash    NodeHash
	hashSet bool
}

// Hash computes and memoises the branch's digest.
func (b *Branch) Hash() NodeHash {
	if !b.hashSet {
		b.hash = hashBranch(b.Pos, b.Left, b.Right)
		b.hashSet = true
	}
	return b.hash
}

// Encode returns the canonical domain-separated byte encoding.
func (b *Branch) Encode() []byte { return encodeBranch(b.Pos, b.Left, b.Right) }

// Kind identifies b as KindBranch.
func (b *Branch) Kind() NodeKind { return KindBranch }

// Invalidate clears the memoised digest. Any mutator that rebinds Left or
// Right must call this before the next Hash(); verification in particular
// must clear before recomputing so a stale digest can never mask
// tampering.
func (b *Branch) Invalidate() { b.hashSet = false }

// childAt returns the child hash on the given side (0 = left, 1 = right).
func (b *Branch) childAt(side byte) NodeHash {
	if side == 0 {
		return b.Left
	}
	return b.Right
}

// setChild overwrites the child hash on the given side.
func (b *Branch) setChild(side byte, h NodeHash) {
	if side == 0 {
		b.Left = h
	} else {
		b.Right = h
	}
}

func (b *Branch) copy() *Branch {
	return &Branch{Pos: b.Pos, Left: b.Left, Right: b.Right}
}

// Root is the singleton sentinel above bit position 0. Its children are
// optional: either may be the zero hash before any key starting with that
// bit has been inserted.
type Root struct {
	Left  NodeHash
	Right NodeHash

	hash    NodeHash
	hashSet bool
}

// EmptyRoot returns the root of a trie with no entries.
func EmptyRoot() *Root { return &Root{} }

// Hash computes and memoises the root's digest over (Left, Right).
func (r *Root) Hash() NodeHash {
	if !r.hashSet {
		r.hash = hashRoot(r.Left, r.Right)
		r.hashSet = true
	}
	return r.hash
}

// Invalidate clears the memoised digest; see Branch.Invalidate.
func (r *Root) Invalidate() { r.hashSet = false }

func (r *Root) childAt(side byte) NodeHash {
	if side == 0 {
		return r.Left
	}
	return r.Right
}

func (r *Root) setChild(side byte, h NodeHash) {
	if side == 0 {
		r.Left = h
	} else {
		r.Right = h
	}
}

func (r *Root) copy() *Root {
	return &Root{Left: r.Left, Right: r.Right}
}

// decodeNode parses the canonical encoding of a Leaf or Branch. It is used
// by caching NodeStore wrappers that only keep encoded bytes in their fast
// path (see CachedStore).
func decodeNode(b []byte) (Node, error) {
	if len(b) < 1 {
		return nil, ErrMalformed
	}
	switch NodeKind(b[0]) {
	case KindLeaf:
		if len(b) < 1+32+4 {
			return nil, ErrMalformed
		}
		key, err := KeyFromBytes(b[1:33])
		if err != nil {
			return nil, err
		}
		dataLen := binary.BigEndian.Uint32(b[33:37])
		if uint32(len(b)-37) != dataLen {
			return nil, ErrMalformed
		}
		return NewLeaf(key, b[37:]), nil
	case KindBranch:
		if len(b) != 1+2+32+32 {
			return nil, ErrMalformed
		}
		pos := int(binary.BigEndian.Uint16(b[1:3]))
		return &Branch{
			Pos:   pos,
			Left:  BytesToNodeHash(b[3:35]),
			Right: BytesToNodeHash(b[35:67]),
		}, nil
	default:
		return nil, ErrMalformed
	}
}
