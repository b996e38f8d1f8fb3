package curves

import (
	"math/big"
)

// secp256k1 domain parameters from SEC 2, section 2.4.1.
var secp256k1Params = &Params{
	Name:    "secp256k1",
	P:       mustHex("fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f"),
	A:       big.NewInt(0),
	B:       big.NewInt(7),
	Gx:      mustHex("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"),
	Gy:      mustHex("483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"),
	N:       mustHex("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"),
	BitSize: 256,
}

// Secp256k1 returns the domain parameters of the secp256k1 curve. The
// returned value is shared and must not be modified.
func Secp256k1() *Params {
	return secp256k1Params
}

func mustHex(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("curves: invalid hex constant " + s)
	}
	return n
}
