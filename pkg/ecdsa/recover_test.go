package ecdsa

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-affine-ecdsa/internal/crypto/curves"
	"github.com/smallyu/go-affine-ecdsa/internal/crypto/modular"
)

func TestRecoverPublicKeyRoundTrip(t *testing.T) {
	sc := NewScheme(curves.Secp256k1())

	for i := 0; i < 10; i++ {
		priv, err := sc.GenerateKey()
		require.NoError(t, err)
		message := []byte(fmt.Sprintf("recoverable message %d", i))

		sig, err := sc.Sign(priv, message)
		require.NoError(t, err)

		recovered, err := sc.RecoverPublicKey(message, sig)
		require.NoError(t, err)
		assert.True(t, priv.PublicKey.Equal(recovered))
		assert.True(t, sc.Verify(recovered, message, sig))
	}
}

func TestRecoverPublicKeyDeterministic(t *testing.T) {
	sc := NewScheme(curves.Secp256k1()).WithNonces(RFC6979Nonces{})
	priv, err := sc.GenerateKey()
	require.NoError(t, err)
	message := []byte("deterministic and recoverable")

	sig, err := sc.Sign(priv, message)
	require.NoError(t, err)

	recovered, err := sc.RecoverPublicKey(message, sig)
	require.NoError(t, err)
	assert.True(t, priv.PublicKey.Equal(recovered))
}

func TestRecoverWithFlippedParity(t *testing.T) {
	sc := NewScheme(curves.Secp256k1())
	priv, err := sc.GenerateKey()
	require.NoError(t, err)
	message := []byte("m")
	sig, err := sc.Sign(priv, message)
	require.NoError(t, err)

	// Flipping the parity bit selects -R, so recovery lands on a
	// different candidate key.
	flipped := &Signature{R: sig.R, S: sig.S, RecID: sig.RecID ^ 1}
	recovered, err := sc.RecoverPublicKey(message, flipped)
	if err == nil {
		assert.False(t, priv.PublicKey.Equal(recovered))
	}
}

func TestRecoverRejectsInvalidInputs(t *testing.T) {
	sc := NewScheme(curves.Secp256k1())
	n := sc.Params().N
	message := []byte("m")

	// With bit 1 set the rebuilt x is r + n, which for any r near the
	// order lands beyond the field prime.
	nearOrder := new(big.Int).Sub(n, one)

	cases := []struct {
		name string
		sig  *Signature
	}{
		{"nil signature", nil},
		{"nil scalars", &Signature{}},
		{"zero r", &Signature{R: big.NewInt(0), S: big.NewInt(1)}},
		{"zero s", &Signature{R: big.NewInt(1), S: big.NewInt(0)}},
		{"code too small", &Signature{R: big.NewInt(1), S: big.NewInt(1), RecID: -1}},
		{"code too large", &Signature{R: big.NewInt(1), S: big.NewInt(1), RecID: 4}},
		{"x past the prime", &Signature{R: nearOrder, S: big.NewInt(1), RecID: 2}},
	}
	for _, tc := range cases {
		_, err := sc.RecoverPublicKey(message, tc.sig)
		assert.ErrorIs(t, err, ErrRecoveryFailed, tc.name)
	}
}

func TestNonceReuseRevealsPrivateKey(t *testing.T) {
	// Two signatures sharing one nonce leak the key:
	//   k = (e1 - e2) / (s1 - s2) mod n
	//   d = (s1*k - e1) / r mod n
	reused := big.NewInt(0xdeadbeef)
	sc := NewScheme(curves.Secp256k1()).WithNonces(fixedNonces{k: reused})
	priv, err := sc.GenerateKey()
	require.NoError(t, err)

	m1 := []byte("first message")
	m2 := []byte("second message")
	sig1, err := sc.Sign(priv, m1)
	require.NoError(t, err)
	sig2, err := sc.Sign(priv, m2)
	require.NoError(t, err)
	require.Equal(t, 0, sig1.R.Cmp(sig2.R), "same nonce must give the same r")

	n := sc.Params().N
	e1 := sc.hashToInt(m1)
	e2 := sc.hashToInt(m2)

	k := modular.Mul(modular.Sub(e1, e2, n), modular.Inv(modular.Sub(sig1.S, sig2.S, n), n), n)
	require.Equal(t, 0, k.Cmp(reused))

	d := modular.Mul(modular.Sub(modular.Mul(sig1.S, k, n), e1, n), modular.Inv(sig1.R, n), n)
	assert.Equal(t, 0, d.Cmp(priv.D))
}
