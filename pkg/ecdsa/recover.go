package ecdsa

import (
	"math/big"

	"github.com/smallyu/go-affine-ecdsa/internal/crypto/modular"
)

// RecoverPublicKey returns the public key that produced sig over
// message. The signature's recovery code selects among the candidate
// points sharing r, so the result is unique: Q = r^-1 * (s*R - e*G)
// where R is the signer's nonce point.
func (sc *Scheme) RecoverPublicKey(message []byte, sig *Signature) (*PublicKey, error) {
	if sig == nil || sig.R == nil || sig.S == nil {
		return nil, ErrRecoveryFailed
	}
	n := sc.params.N
	if sig.R.Sign() <= 0 || sig.R.Cmp(n) >= 0 || sig.S.Sign() <= 0 || sig.S.Cmp(n) >= 0 {
		return nil, ErrRecoveryFailed
	}
	if sig.RecID < 0 || sig.RecID > 3 {
		return nil, ErrRecoveryFailed
	}

	// 1. Rebuild R.x from r, adding the group order back when bit 1
	// says it wrapped.
	x := new(big.Int).Set(sig.R)
	if sig.RecID&2 != 0 {
		x.Add(x, n)
	}
	if x.Cmp(sc.params.P) >= 0 {
		return nil, ErrRecoveryFailed
	}

	// 2. Lift R.x to the curve point with the recorded y parity.
	R, err := sc.params.LiftX(x, sig.RecID&1 == 1)
	if err != nil {
		return nil, ErrRecoveryFailed
	}

	// 3. Q = r^-1 * (s*R - e*G).
	e := sc.hashToInt(message)
	rInv := modular.Inv(sig.R, n)
	if rInv == nil {
		return nil, ErrRecoveryFailed
	}
	sR := sc.params.ScalarMult(R, sig.S)
	eG := sc.params.ScalarBaseMult(e)
	q := sc.params.ScalarMult(sc.params.Add(sR, sc.params.Negate(eG)), rInv)
	if q.IsInfinity() {
		return nil, ErrRecoveryFailed
	}
	return &PublicKey{X: q.X, Y: q.Y}, nil
}
