package smt

import (
	"github.com/holiman/uint256"
)

// KeyBits is the fixed bit-length every Key must satisfy.
const KeyBits = 256

// Key is a 256-bit identifier, bit-indexed MSB-first (bit 0 is the most
// significant bit of the packed 32-byte form). It is backed by a
// uint256.Int rather than a hand-rolled byte/bit shifter.
type Key struct {
	word uint256.Int
}

// KeyFromBytes packs a 32-byte big-endian slice into a Key. Any other
// length is ErrInvalidKeyLen.
func KeyFromBytes(b []byte) (Key, error) {
	if len(b) != KeyBits/8 {
		return Key{}, ErrInvalidKeyLen
	}
	var k Key
	k.word.SetBytes(b)
	return k, nil
}

// MustKeyFromBytes is KeyFromBytes without an error return, for tests and
// constant-key construction where the length is known to be correct.
func MustKeyFromBytes(b []byte) Key {
	k, err := KeyFromBytes(b)
	if err != nil {
		panic(err)
	}
	return k
}

// Bit returns the value (0 or 1) of the bit at position pos, counting from
// the most significant bit (pos 0) to the least significant (pos 255).
func (k Key) Bit(pos int) byte {
	return byte(k.word.Bit(uint(KeyBits - 1 - pos)))
}

// Bytes returns the 32-byte, big-endian packed form used by the hasher.
func (k Key) Bytes() [32]byte {
	return k.word.Bytes32()
}

// Equal reports whether k and other represent the same 256-bit value.
func (k Key) Equal(other Key) bool {
	return k.word.Eq(&other.word)
}
