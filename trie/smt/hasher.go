package smt

import (
	"crypto/sha256"
	"encoding/binary"
)

// Domain-separation tag bytes, one per Node variant. These are fixed,
// publishable constants carried forward from the prototype this package
// was distilled from (see the SUPPLEMENTED FEATURES notes in SPEC_FULL.md):
// changing any of them changes every hash in the system.
const (
	tagLeaf   byte = 0x00
	tagBranch byte = 0x01
	tagRoot   byte = 0x02
)

// encodeLeaf builds the canonical Leaf encoding:
// tag(1) || key(32) || len(data) u32-BE || data.
func encodeLeaf(key Key, data []byte) []byte {
	kb := key.Bytes()
	buf := make([]byte, 0, 1+32+4+len(data))
	buf = append(buf, tagLeaf)
	buf = append(buf, kb[:]...)
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(data)))
	buf = append(buf, lenBuf[:]...)
	buf = append(buf, data...)
	return buf
}

func hashLeaf(key Key, data []byte) NodeHash {
	return NodeHash(sha256.Sum256(encodeLeaf(key, data)))
}

// encodeBranch builds the canonical Branch encoding:
// tag(1) || pos u16-BE || left(32) || right(32).
func encodeBranch(pos int, left, right NodeHash) []byte {
	buf := make([]byte, 0, 1+2+32+32)
	buf = append(buf, tagBranch)
	var posBuf [2]byte
	binary.BigEndian.PutUint16(posBuf[:], uint16(pos))
	buf = append(buf, posBuf[:]...)
	buf = append(buf, left[:]...)
	buf = append(buf, right[:]...)
	return buf
}

func hashBranch(pos int, left, right NodeHash) NodeHash {
	return NodeHash(sha256.Sum256(encodeBranch(pos, left, right)))
}

// encodeRoot builds the canonical Root encoding: tag(1) || left(32) ||
// right(32), with an absent child encoded as 32 zero bytes.
func encodeRoot(left, right NodeHash) []byte {
	buf := make([]byte, 0, 1+32+32)
	buf = append(buf, tagRoot)
	buf = append(buf, left[:]...)
	buf = append(buf, right[:]...)
	return buf
}

func hashRoot(left, right NodeHash) NodeHash {
	return NodeHash(sha256.Sum256(encodeRoot(left, right)))
}
