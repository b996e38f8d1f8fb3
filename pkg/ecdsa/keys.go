package ecdsa

import (
	"math/big"

	"github.com/smallyu/go-affine-ecdsa/internal/crypto/curves"
)

// PublicKey represents an ECDSA public key, the curve point Q = d * G.
type PublicKey struct {
	X *big.Int
	Y *big.Int
}

// PrivateKey represents an ECDSA private key.
type PrivateKey struct {
	PublicKey
	D *big.Int // secret scalar in [1, n-1]
}

// Point returns the public key as a curve point.
func (pub *PublicKey) Point() *curves.Point {
	return &curves.Point{
		X: new(big.Int).Set(pub.X),
		Y: new(big.Int).Set(pub.Y),
	}
}

// Equal reports whether pub and other are the same point.
func (pub *PublicKey) Equal(other *PublicKey) bool {
	if pub == nil || other == nil {
		return pub == other
	}
	return pub.X.Cmp(other.X) == 0 && pub.Y.Cmp(other.Y) == 0
}

// GenerateKey draws a private scalar uniformly from [1, n-1] and derives
// the matching public key Q = d * G.
func (sc *Scheme) GenerateKey() (*PrivateKey, error) {
	d, err := sc.random.IntRange(one, sc.params.N)
	if err != nil {
		return nil, err
	}
	q := sc.params.ScalarBaseMult(d)
	return &PrivateKey{
		PublicKey: PublicKey{X: q.X, Y: q.Y},
		D:         d,
	}, nil
}

// SerializePrivateKey returns the fixed-width big-endian encoding of the
// private scalar.
func (sc *Scheme) SerializePrivateKey(priv *PrivateKey) []byte {
	out := make([]byte, sc.byteLen())
	priv.D.FillBytes(out)
	return out
}

// ParsePrivateKey decodes a scalar produced by SerializePrivateKey and
// rederives the public key. Scalars outside [1, n-1] are rejected.
func (sc *Scheme) ParsePrivateKey(data []byte) (*PrivateKey, error) {
	if len(data) != sc.byteLen() {
		return nil, ErrInvalidPrivateKey
	}
	d := new(big.Int).SetBytes(data)
	if d.Sign() == 0 || d.Cmp(sc.params.N) >= 0 {
		return nil, ErrInvalidPrivateKey
	}
	q := sc.params.ScalarBaseMult(d)
	return &PrivateKey{
		PublicKey: PublicKey{X: q.X, Y: q.Y},
		D:         d,
	}, nil
}

// SerializePublicKey returns the uncompressed SEC 1 encoding of pub.
func (sc *Scheme) SerializePublicKey(pub *PublicKey) []byte {
	return sc.params.Marshal(pub.Point())
}

// SerializePublicKeyCompressed returns the compressed SEC 1 encoding of pub.
func (sc *Scheme) SerializePublicKeyCompressed(pub *PublicKey) []byte {
	return sc.params.MarshalCompressed(pub.Point())
}

// ParsePublicKey decodes a SEC 1 encoded public key, accepting both the
// compressed and the uncompressed form. The point must be on the curve and
// must not be infinity.
func (sc *Scheme) ParsePublicKey(data []byte) (*PublicKey, error) {
	if len(data) == 0 {
		return nil, ErrInvalidPublicKey
	}

	var (
		p   *curves.Point
		err error
	)
	switch data[0] {
	case 0x02, 0x03:
		p, err = sc.params.UnmarshalCompressed(data)
	case 0x04:
		p, err = sc.params.Unmarshal(data)
	default:
		return nil, ErrInvalidPublicKey
	}
	if err != nil || p.IsInfinity() {
		return nil, ErrInvalidPublicKey
	}
	return &PublicKey{X: p.X, Y: p.Y}, nil
}

// checkPrivateKey validates the scalar range before signing.
func (sc *Scheme) checkPrivateKey(priv *PrivateKey) error {
	if priv == nil || priv.D == nil {
		return ErrInvalidPrivateKey
	}
	if priv.D.Sign() <= 0 || priv.D.Cmp(sc.params.N) >= 0 {
		return ErrInvalidPrivateKey
	}
	return nil
}
