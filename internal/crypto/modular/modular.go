package modular

import (
	"math/big"
)

var (
	one   = big.NewInt(1)
	three = big.NewInt(3)
	four  = big.NewInt(4)
)

// checkModulus panics when m is not a valid modulus.
func checkModulus(m *big.Int) {
	if m.Sign() <= 0 {
		panic("modular: modulus must be positive")
	}
}

// Mod returns the canonical residue of x modulo m, the unique value in [0, m).
// Unlike big.Int.Rem, the result is never negative. It panics if m <= 0.
func Mod(x, m *big.Int) *big.Int {
	checkModulus(m)
	r := new(big.Int).Rem(x, m)
	if r.Sign() < 0 {
		r.Add(r, m)
		r.Rem(r, m)
	}
	return r
}

// Add returns (x + y) mod m. Both operands are reduced into [0, m) before
// the sum, and the sum is reduced again, so any *big.Int values are accepted.
func Add(x, y, m *big.Int) *big.Int {
	sum := new(big.Int).Add(Mod(x, m), Mod(y, m))
	return Mod(sum, m)
}

// Sub returns (x - y) mod m with the same canonical-residue guarantee as Add.
func Sub(x, y, m *big.Int) *big.Int {
	diff := new(big.Int).Sub(Mod(x, m), Mod(y, m))
	return Mod(diff, m)
}

// Mul returns (x * y) mod m with the same canonical-residue guarantee as Add.
func Mul(x, y, m *big.Int) *big.Int {
	prod := new(big.Int).Mul(Mod(x, m), Mod(y, m))
	return Mod(prod, m)
}

// Exp returns x^e mod m computed by left-to-right binary square-and-multiply.
// The exponent must be non-negative; Exp panics otherwise. Exp(x, 0, m)
// is Mod(1, m).
func Exp(x, e, m *big.Int) *big.Int {
	checkModulus(m)
	if e.Sign() < 0 {
		panic("modular: exponent must be non-negative")
	}
	base := Mod(x, m)
	result := Mod(one, m)
	for i := e.BitLen() - 1; i >= 0; i-- {
		result = Mul(result, result, m)
		if e.Bit(i) == 1 {
			result = Mul(result, base, m)
		}
	}
	return result
}

// ExtendedGCD returns g = gcd(a, b) together with Bezout coefficients u, v
// satisfying u*a + v*b = g. Both inputs must be non-negative.
func ExtendedGCD(a, b *big.Int) (g, u, v *big.Int) {
	// gcd(0, b) = b with coefficients (0, 1).
	if a.Sign() == 0 {
		return new(big.Int).Set(b), big.NewInt(0), big.NewInt(1)
	}

	// Euclidean descent on (b mod a, a); the first argument strictly
	// shrinks, so the recursion terminates.
	q := new(big.Int)
	r := new(big.Int)
	q.QuoRem(b, a, r)

	g, x, y := ExtendedGCD(r, a)

	// Back-substitute: u = y - (b/a)*x, v = x.
	u = new(big.Int).Sub(y, q.Mul(q, x))
	return g, u, x
}

// Inv returns the multiplicative inverse of x modulo m, normalized into
// [0, m), or nil when gcd(x mod m, m) != 1 and no inverse exists.
// It panics if m <= 0.
func Inv(x, m *big.Int) *big.Int {
	checkModulus(m)
	a := Mod(x, m)
	g, u, _ := ExtendedGCD(a, m)
	if g.Cmp(one) != 0 {
		return nil
	}
	return Mod(u, m)
}

// Sqrt returns a square root of x modulo the prime m, or nil when x is a
// quadratic non-residue. Only primes with m % 4 == 3 are supported (the
// secp256k1 field prime is one); for any other modulus Sqrt returns nil.
func Sqrt(x, m *big.Int) *big.Int {
	checkModulus(m)
	if new(big.Int).Mod(m, four).Cmp(three) != 0 {
		return nil
	}

	// For m % 4 == 3 a candidate root is x^((m+1)/4) mod m.
	e := new(big.Int).Add(m, one)
	e.Rsh(e, 2)
	root := Exp(x, e, m)

	// The candidate is only a root when x is a residue; check by squaring.
	if Mul(root, root, m).Cmp(Mod(x, m)) != 0 {
		return nil
	}
	return root
}
