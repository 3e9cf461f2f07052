package smt

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
	"testing"
)

// zeroKey and onesKey are the two extremes of the 256-bit key space, used
// throughout these scenarios exactly as laid out for S1-S6.
func zeroKey() Key { return MustKeyFromBytes(make([]byte, 32)) }
func onesKey() Key {
	buf := make([]byte, 32)
	for i := range buf {
		buf[i] = 0xff
	}
	return MustKeyFromBytes(buf)
}

// S1: the empty root's hash is the fixed digest of tag(0x02) || 0^32 || 0^32.
func TestScenarioS1EmptyRootIsFixedConstant(t *testing.T) {
	want := sha256.Sum256(append([]byte{tagRoot}, make([]byte, 64)...))
	got := EmptyRoot().Hash()
	if NodeHash(want) != got {
		t.Fatalf("empty root hash = %x, want %x", got, want)
	}
}

// S2: a single leaf at the all-zero key with empty data.
func TestScenarioS2SingleLeafAllZeroKey(t *testing.T) {
	store := NewMemStore()
	leaf := NewLeaf(zeroKey(), nil)

	root, err := Insert(store, leaf, nil)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	wantLeafEnc := append([]byte{tagLeaf}, make([]byte, 32)...)
	wantLeafEnc = append(wantLeafEnc, 0, 0, 0, 0)
	wantLeafHash := sha256.Sum256(wantLeafEnc)
	if leaf.Hash() != NodeHash(wantLeafHash) {
		t.Fatalf("leaf hash = %x, want %x", leaf.Hash(), wantLeafHash)
	}

	if root.Left != NodeHash(wantLeafHash) {
		t.Fatalf("root.Left = %x, want leaf hash %x", root.Left, wantLeafHash)
	}
	if !root.Right.IsZero() {
		t.Fatal("root.Right must remain absent (all-zero key stays on the left)")
	}

	wantRootEnc := append([]byte{tagRoot}, wantLeafHash[:]...)
	wantRootEnc = append(wantRootEnc, make([]byte, 32)...)
	wantRootHash := sha256.Sum256(wantRootEnc)
	if root.Hash() != NodeHash(wantRootHash) {
		t.Fatalf("root hash = %x, want %x", root.Hash(), wantRootHash)
	}
}

// S3: two leaves sharing bits 0..252, diverging at bit 253.
func TestScenarioS3TwoLeavesSharedPrefix(t *testing.T) {
	store := NewMemStore()
	k1 := zeroKey()
	k2buf := make([]byte, 32)
	// bits 253, 254, 255 set to 1 (the last byte's low three bits).
	k2buf[31] = 0x07
	k2 := MustKeyFromBytes(k2buf)

	l1 := NewLeaf(k1, nil)
	l2 := NewLeaf(k2, nil)

	root, err := Insert(store, l1, nil)
	if err != nil {
		t.Fatal(err)
	}
	root, err = Insert(store, l2, root)
	if err != nil {
		t.Fatal(err)
	}

	if !root.Right.IsZero() {
		t.Fatal("root.Right must remain absent, both keys start with bit 0")
	}

	branchNode, err := store.Get(root.Left)
	if err != nil {
		t.Fatalf("Get branch: %v", err)
	}
	branch, ok := branchNode.(*Branch)
	if !ok {
		t.Fatalf("expected a Branch at root.Left, got %T", branchNode)
	}
	if branch.Pos != 253 {
		t.Fatalf("branch.Pos = %d, want 253", branch.Pos)
	}

	wantBranchEnc := []byte{tagBranch}
	var posBuf [2]byte
	binary.BigEndian.PutUint16(posBuf[:], 253)
	wantBranchEnc = append(wantBranchEnc, posBuf[:]...)
	wantBranchEnc = append(wantBranchEnc, l1.Hash().Bytes()...)
	wantBranchEnc = append(wantBranchEnc, l2.Hash().Bytes()...)
	wantBranchHash := sha256.Sum256(wantBranchEnc)
	if branch.Hash() != NodeHash(wantBranchHash) {
		t.Fatalf("branch hash = %x, want %x", branch.Hash(), wantBranchHash)
	}
	if root.Left != NodeHash(wantBranchHash) {
		t.Fatal("root.Left must equal the expected branch hash computed above")
	}
}

// S4: keys on opposite sides of the root, both resolved directly with no
// intermediate branch.
func TestScenarioS4OppositeSideKeys(t *testing.T) {
	store := NewMemStore()
	k1 := zeroKey()
	k2 := onesKey()

	root, err := Insert(store, NewLeaf(k1, []byte("a")), nil)
	if err != nil {
		t.Fatal(err)
	}
	root, err = Insert(store, NewLeaf(k2, []byte("b")), root)
	if err != nil {
		t.Fatal(err)
	}

	if root.Left.IsZero() || root.Right.IsZero() {
		t.Fatal("both root children must be populated")
	}
	leftNode, err := store.Get(root.Left)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := leftNode.(*Leaf); !ok {
		t.Fatalf("root.Left must be a leaf directly, got %T", leftNode)
	}
	rightNode, err := store.Get(root.Right)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := rightNode.(*Leaf); !ok {
		t.Fatalf("root.Right must be a leaf directly, got %T", rightNode)
	}
}

// S5: 1,000 random keys all insert and prove successfully, with every
// traversal staying within the 256-bit key width.
func TestScenarioS5ThousandRandomKeys(t *testing.T) {
	store := NewMemStore()
	rng := rand.New(rand.NewSource(1))

	const n = 1000
	keys := make([]Key, 0, n)
	seen := map[Key]bool{}
	var root *Root
	for len(keys) < n {
		buf := make([]byte, 32)
		rng.Read(buf)
		k := MustKeyFromBytes(buf)
		if seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)

		var err error
		root, err = Insert(store, NewLeaf(k, buf[:4]), root)
		if err != nil {
			t.Fatalf("Insert key %d: %v", len(keys), err)
		}
	}

	for i, k := range keys {
		proof, err := Prove(store, k, root)
		if err != nil {
			t.Fatalf("Prove key %d: %v", i, err)
		}
		if err := Verify(proof, root.Hash()); err != nil {
			t.Fatalf("Verify key %d: %v", i, err)
		}
		if len(proof.Nodes) > maxProofSteps {
			t.Fatalf("proof for key %d has %d steps, exceeding the key width bound", i, len(proof.Nodes))
		}
	}
}

// S6: corrupting one byte of a leaf's data inside an otherwise-valid proof
// must make verification fail with InvalidProof, never silently succeed.
func TestScenarioS6ProofTamperDetected(t *testing.T) {
	store := NewMemStore()
	k1 := zeroKey()
	k2buf := make([]byte, 32)
	k2buf[31] = 0x07
	k2 := MustKeyFromBytes(k2buf)

	root, err := Insert(store, NewLeaf(k1, []byte("l1-data")), nil)
	if err != nil {
		t.Fatal(err)
	}
	root, err = Insert(store, NewLeaf(k2, []byte("l2-data")), root)
	if err != nil {
		t.Fatal(err)
	}

	proof, err := Prove(store, k2, root)
	if err != nil {
		t.Fatal(err)
	}

	corrupted := append([]byte(nil), proof.Nodes[0].Leaf.Data...)
	corrupted[0] ^= 0xff
	proof.Nodes[0].Leaf.Data = corrupted
	proof.Data = corrupted

	if err := Verify(proof, root.Hash()); err == nil {
		t.Fatal("expected Verify to reject a corrupted proof")
	} else if err != ErrInvalidProof {
		t.Fatalf("want ErrInvalidProof, got %v", err)
	}
}
