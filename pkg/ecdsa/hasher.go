package ecdsa

import (
	"crypto/sha256"
	"math/big"

	"golang.org/x/crypto/sha3"
)

// MessageHasher reduces an arbitrary message to the fixed-width integer
// that is signed. The mapping must be deterministic.
type MessageHasher interface {
	// HashToInt returns the non-negative integer form of the message
	// digest.
	HashToInt(message []byte) *big.Int
}

// SHA256Hasher hashes messages with SHA-256. It is the default
// MessageHasher.
type SHA256Hasher struct{}

// HashToInt returns SHA-256(message) as a big-endian integer.
func (SHA256Hasher) HashToInt(message []byte) *big.Int {
	digest := sha256.Sum256(message)
	return new(big.Int).SetBytes(digest[:])
}

// Keccak256Hasher hashes messages with legacy Keccak-256, the digest
// used by Ethereum.
type Keccak256Hasher struct{}

// HashToInt returns Keccak-256(message) as a big-endian integer.
func (Keccak256Hasher) HashToInt(message []byte) *big.Int {
	h := sha3.NewLegacyKeccak256()
	h.Write(message)
	return new(big.Int).SetBytes(h.Sum(nil))
}
