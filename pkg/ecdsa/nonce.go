package ecdsa

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"math/big"
)

// maxNonceRounds bounds the candidate search inside a single Nonce call.
const maxNonceRounds = 4096

// NonceSource produces the per-signature secret k in [1, n-1]. The
// attempt counter is incremented by the signer each time a candidate
// nonce leads to r = 0 or s = 0, so deterministic sources can move on
// to a fresh value.
type NonceSource interface {
	Nonce(d, e, n *big.Int, attempt uint32) (*big.Int, error)
}

// RandomNonces draws each nonce uniformly from [1, n-1]. It is the
// default NonceSource.
type RandomNonces struct {
	Random RandomSource
}

// Nonce returns a fresh random nonce. The private key, message and
// attempt counter are ignored.
func (rn RandomNonces) Nonce(d, e, n *big.Int, attempt uint32) (*big.Int, error) {
	return rn.Random.IntRange(one, n)
}

// RFC6979Nonces derives nonces deterministically from the private key
// and message with the HMAC-SHA256 construction of RFC 6979. Signing
// the same message with the same key always yields the same signature.
type RFC6979Nonces struct{}

// Nonce returns the deterministic nonce for (d, e). The first attempt
// returns the value mandated by RFC 6979; each further attempt skips
// one more candidate from the same HMAC-DRBG stream.
func (RFC6979Nonces) Nonce(d, e, n *big.Int, attempt uint32) (*big.Int, error) {
	qlen := n.BitLen()
	rolen := (qlen + 7) / 8
	x := int2octets(d, rolen)
	// bits2octets: e is already reduced to qlen bits, so only the
	// mod-order step remains.
	h := int2octets(new(big.Int).Mod(e, n), rolen)

	// 1. Instantiate the DRBG from the key and message.
	v := bytes.Repeat([]byte{0x01}, sha256.Size)
	k := make([]byte, sha256.Size)
	k = drbgKey(k, v, 0x00, x, h)
	v = drbgMAC(k, v)
	k = drbgKey(k, v, 0x01, x, h)
	v = drbgMAC(k, v)

	// 2. Draw candidates until enough valid ones have been seen.
	skip := attempt
	for round := 0; round < maxNonceRounds; round++ {
		var t []byte
		for len(t) < rolen {
			v = drbgMAC(k, v)
			t = append(t, v...)
		}
		candidate := bits2int(t, qlen)
		if candidate.Sign() > 0 && candidate.Cmp(n) < 0 {
			if skip == 0 {
				return candidate, nil
			}
			skip--
		}
		k = drbgKey(k, v, 0x00)
		v = drbgMAC(k, v)
	}
	return nil, ErrNonceExhausted
}

// int2octets encodes x as a big-endian byte string of exactly rolen
// bytes.
func int2octets(x *big.Int, rolen int) []byte {
	return x.FillBytes(make([]byte, rolen))
}

// bits2int interprets data as a big-endian integer and keeps only its
// qlen leftmost bits.
func bits2int(data []byte, qlen int) *big.Int {
	z := new(big.Int).SetBytes(data)
	if excess := len(data)*8 - qlen; excess > 0 {
		z.Rsh(z, uint(excess))
	}
	return z
}

// drbgKey computes HMAC(k, v || sep || data...), the key update step of
// the RFC 6979 generator.
func drbgKey(k, v []byte, sep byte, data ...[]byte) []byte {
	mac := hmac.New(sha256.New, k)
	mac.Write(v)
	mac.Write([]byte{sep})
	for _, d := range data {
		mac.Write(d)
	}
	return mac.Sum(nil)
}

// drbgMAC computes HMAC(k, v), the state update step of the RFC 6979
// generator.
func drbgMAC(k, v []byte) []byte {
	mac := hmac.New(sha256.New, k)
	mac.Write(v)
	return mac.Sum(nil)
}
