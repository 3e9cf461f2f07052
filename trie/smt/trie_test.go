package smt

import (
	"errors"
	"testing"
)

func TestTrieInsertProveUpdate(t *testing.T) {
	tr := New(NewMemStore())
	key := keyWithBits(0, 30)

	if err := tr.Insert(key, []byte("v1")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	proof, err := tr.Prove(key)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if err := Verify(proof, tr.Root().Hash()); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if err := tr.Update(key, []byte("v2")); err != nil {
		t.Fatalf("Update: %v", err)
	}
	proof, err = tr.Prove(key)
	if err != nil {
		t.Fatalf("Prove after update: %v", err)
	}
	if string(proof.Data) != "v2" {
		t.Fatalf("Data = %q, want %q", proof.Data, "v2")
	}
}

func TestOpenResumesAtGivenRoot(t *testing.T) {
	store := NewMemStore()
	tr := New(store)
	key := keyWithBits(4)
	if err := tr.Insert(key, []byte("data")); err != nil {
		t.Fatal(err)
	}

	resumed := Open(store, tr.Root())
	proof, err := resumed.Prove(key)
	if err != nil {
		t.Fatalf("Prove on resumed trie: %v", err)
	}
	if string(proof.Data) != "data" {
		t.Fatalf("Data = %q, want %q", proof.Data, "data")
	}
}

func TestOpenNilRootIsEmptyTrie(t *testing.T) {
	tr := Open(NewMemStore(), nil)
	if _, err := tr.Prove(keyWithBits(0)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound against an empty resumed trie, got %v", err)
	}
}

func TestTrieDuplicateInsertFails(t *testing.T) {
	tr := New(NewMemStore())
	key := keyWithBits(1)
	if err := tr.Insert(key, []byte("a")); err != nil {
		t.Fatal(err)
	}
	if err := tr.Insert(key, []byte("b")); !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("want ErrDuplicateKey, got %v", err)
	}
}
