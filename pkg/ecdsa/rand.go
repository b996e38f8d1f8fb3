package ecdsa

import (
	crand "crypto/rand"
	"errors"
	"math/big"
)

// RandomSource yields uniformly distributed integers for key and nonce
// generation.
type RandomSource interface {
	// IntRange returns a uniform random integer in the half-open range
	// [lo, hi).
	IntRange(lo, hi *big.Int) (*big.Int, error)
}

// CryptoRand draws randomness from crypto/rand. It is the default
// RandomSource.
type CryptoRand struct{}

// IntRange returns a uniform random integer in [lo, hi).
func (CryptoRand) IntRange(lo, hi *big.Int) (*big.Int, error) {
	if lo.Cmp(hi) >= 0 {
		return nil, errors.New("ecdsa: empty random range")
	}
	width := new(big.Int).Sub(hi, lo)
	n, err := crand.Int(crand.Reader, width)
	if err != nil {
		return nil, err
	}
	return n.Add(n, lo), nil
}
