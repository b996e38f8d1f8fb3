package ecdsa

import (
	"math/big"

	"github.com/smallyu/go-affine-ecdsa/internal/crypto/curves"
	"github.com/smallyu/go-affine-ecdsa/internal/crypto/modular"
)

var one = big.NewInt(1)

// maxSignAttempts bounds the retry loop for nonces that produce r = 0
// or s = 0.
const maxSignAttempts = 1000

// Signature is an ECDSA signature (r, s) over the scheme's group order.
type Signature struct {
	R *big.Int
	S *big.Int

	// RecID identifies which candidate public key produced the
	// signature: bit 0 holds the parity of R.y, bit 1 is set when R.x
	// exceeded the group order. It is populated by Sign and consumed by
	// RecoverPublicKey.
	RecID int
}

// Scheme signs and verifies messages over a fixed set of domain
// parameters. Configure it with the With* methods before first use; it
// must not be modified afterwards.
type Scheme struct {
	params *curves.Params
	hasher MessageHasher
	random RandomSource
	nonces NonceSource
}

// NewScheme returns a Scheme over the given domain parameters, hashing
// messages with SHA-256 and drawing keys and nonces from crypto/rand.
func NewScheme(params *curves.Params) *Scheme {
	random := CryptoRand{}
	return &Scheme{
		params: params,
		hasher: SHA256Hasher{},
		random: random,
		nonces: RandomNonces{Random: random},
	}
}

// WithHasher replaces the message hasher.
func (sc *Scheme) WithHasher(h MessageHasher) *Scheme {
	sc.hasher = h
	return sc
}

// WithRandom replaces the randomness source. A random nonce source is
// rewired to draw from r as well.
func (sc *Scheme) WithRandom(r RandomSource) *Scheme {
	sc.random = r
	if _, ok := sc.nonces.(RandomNonces); ok {
		sc.nonces = RandomNonces{Random: r}
	}
	return sc
}

// WithNonces replaces the nonce source.
func (sc *Scheme) WithNonces(ns NonceSource) *Scheme {
	sc.nonces = ns
	return sc
}

// Params returns the domain parameters the scheme operates over.
func (sc *Scheme) Params() *curves.Params {
	return sc.params
}

func (sc *Scheme) byteLen() int {
	return (sc.params.BitSize + 7) / 8
}

// hashToInt maps a message to the integer that is signed: the digest is
// truncated to the bit length of the group order, as in FIPS 186-4.
func (sc *Scheme) hashToInt(message []byte) *big.Int {
	e := sc.hasher.HashToInt(message)
	if excess := e.BitLen() - sc.params.N.BitLen(); excess > 0 {
		e = new(big.Int).Rsh(e, uint(excess))
	}
	return e
}

// Sign signs message with priv. The per-signature nonce stays inside
// this call; only (r, s) and the recovery code leave it.
func (sc *Scheme) Sign(priv *PrivateKey, message []byte) (*Signature, error) {
	if err := sc.checkPrivateKey(priv); err != nil {
		return nil, err
	}
	n := sc.params.N
	e := sc.hashToInt(message)

	for attempt := uint32(0); attempt < maxSignAttempts; attempt++ {
		// 1. Draw the per-signature secret k in [1, n-1].
		k, err := sc.nonces.Nonce(priv.D, e, n, attempt)
		if err != nil {
			return nil, err
		}

		// 2. R = k * G and r = R.x mod n. Retry when r = 0.
		R := sc.params.ScalarBaseMult(k)
		if R.IsInfinity() {
			continue
		}
		r := modular.Mod(R.X, n)
		if r.Sign() == 0 {
			continue
		}

		// 3. s = k^-1 * (e + r*d) mod n. Retry when s = 0.
		kInv := modular.Inv(k, n)
		if kInv == nil {
			continue
		}
		s := modular.Mul(kInv, modular.Add(e, modular.Mul(r, priv.D, n), n), n)
		if s.Sign() == 0 {
			continue
		}

		return &Signature{R: r, S: s, RecID: sc.recoveryCode(R)}, nil
	}
	return nil, ErrNonceExhausted
}

// recoveryCode records which of the candidate points sharing r the
// signer actually used: bit 0 is the parity of R.y, bit 1 marks an R.x
// that wrapped past the group order.
func (sc *Scheme) recoveryCode(R *curves.Point) int {
	code := int(R.Y.Bit(0))
	if R.X.Cmp(sc.params.N) >= 0 {
		code |= 2
	}
	return code
}

// Verify reports whether sig is a valid signature of message under pub.
func (sc *Scheme) Verify(pub *PublicKey, message []byte, sig *Signature) bool {
	if sig == nil || sig.R == nil || sig.S == nil {
		return false
	}
	n := sc.params.N

	// 1. Both signature scalars must lie in [1, n-1].
	if sig.R.Sign() <= 0 || sig.R.Cmp(n) >= 0 {
		return false
	}
	if sig.S.Sign() <= 0 || sig.S.Cmp(n) >= 0 {
		return false
	}

	// 2. The public key must be a finite point on the curve.
	if pub == nil || pub.X == nil || pub.Y == nil {
		return false
	}
	q := pub.Point()
	if q.IsInfinity() || !sc.params.IsOnCurve(q) {
		return false
	}

	// 3. C = u1*G + u2*Q with u1 = e/s and u2 = r/s mod n.
	e := sc.hashToInt(message)
	w := modular.Inv(sig.S, n)
	if w == nil {
		return false
	}
	u1 := modular.Mul(e, w, n)
	u2 := modular.Mul(sig.R, w, n)
	c := sc.params.Add(sc.params.ScalarBaseMult(u1), sc.params.ScalarMult(q, u2))

	// 4. Accept when C is finite and C.x mod n reproduces r.
	if c.IsInfinity() {
		return false
	}
	return modular.Mod(c.X, n).Cmp(sig.R) == 0
}

// SerializeSignature returns the fixed-width encoding r || s, each
// scalar big-endian over the curve byte length. The recovery code is
// not part of the encoding.
func (sc *Scheme) SerializeSignature(sig *Signature) []byte {
	size := sc.byteLen()
	out := make([]byte, 2*size)
	sig.R.FillBytes(out[:size])
	sig.S.FillBytes(out[size:])
	return out
}

// ParseSignature decodes an r || s encoding produced by
// SerializeSignature. Scalars outside [1, n-1] are rejected. The
// recovery code of a parsed signature is zero; callers that need
// recovery must track it separately.
func (sc *Scheme) ParseSignature(data []byte) (*Signature, error) {
	size := sc.byteLen()
	if len(data) != 2*size {
		return nil, ErrInvalidSignature
	}
	n := sc.params.N
	r := new(big.Int).SetBytes(data[:size])
	s := new(big.Int).SetBytes(data[size:])
	if r.Sign() == 0 || r.Cmp(n) >= 0 || s.Sign() == 0 || s.Cmp(n) >= 0 {
		return nil, ErrInvalidSignature
	}
	return &Signature{R: r, S: s}, nil
}
