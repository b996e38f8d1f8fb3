package curves

import (
	"errors"
	"math/big"

	"github.com/smallyu/go-affine-ecdsa/internal/crypto/modular"
)

var (
	two   = big.NewInt(2)
	three = big.NewInt(3)
)

var (
	// ErrPointNotOnCurve is returned when affine coordinates do not satisfy
	// the curve equation.
	ErrPointNotOnCurve = errors.New("curves: point is not on the curve")

	// ErrInvalidEncoding is returned when a byte encoding cannot be parsed
	// as a point.
	ErrInvalidEncoding = errors.New("curves: invalid point encoding")
)

// Params holds the domain parameters of a short Weierstrass curve
// y^2 = x^3 + a*x + b over the prime field F_p. A Params value is never
// mutated after construction and is safe for concurrent use.
type Params struct {
	Name    string   // canonical name of the parameter set
	P       *big.Int // field prime
	A       *big.Int // curve coefficient a
	B       *big.Int // curve coefficient b
	Gx, Gy  *big.Int // base point coordinates
	N       *big.Int // order of the base point
	BitSize int      // bit length of the field prime
}

// Generator returns the base point G.
func (c *Params) Generator() *Point {
	return &Point{
		X: new(big.Int).Set(c.Gx),
		Y: new(big.Int).Set(c.Gy),
	}
}

// Polynomial evaluates x^3 + a*x + b mod p, the right-hand side of the
// curve equation.
func (c *Params) Polynomial(x *big.Int) *big.Int {
	x3 := modular.Mul(modular.Mul(x, x, c.P), x, c.P)
	ax := modular.Mul(c.A, x, c.P)
	return modular.Add(modular.Add(x3, ax, c.P), c.B, c.P)
}

// IsOnCurve reports whether p lies on the curve with canonical coordinates
// in [0, p). The point at infinity counts as on the curve.
func (c *Params) IsOnCurve(p *Point) bool {
	if p.IsInfinity() {
		return true
	}
	if p.X == nil || p.Y == nil {
		return false
	}
	if p.X.Sign() < 0 || p.X.Cmp(c.P) >= 0 || p.Y.Sign() < 0 || p.Y.Cmp(c.P) >= 0 {
		return false
	}
	y2 := modular.Mul(p.Y, p.Y, c.P)
	return y2.Cmp(c.Polynomial(p.X)) == 0
}

// NewPoint validates the affine coordinates and returns the corresponding
// point. Coordinates off the curve are rejected with ErrPointNotOnCurve.
func (c *Params) NewPoint(x, y *big.Int) (*Point, error) {
	p := &Point{
		X: new(big.Int).Set(x),
		Y: new(big.Int).Set(y),
	}
	if !c.IsOnCurve(p) {
		return nil, ErrPointNotOnCurve
	}
	return p, nil
}

// Negate returns -p, the reflection of p across the x axis.
func (c *Params) Negate(p *Point) *Point {
	if p.IsInfinity() {
		return Infinity()
	}
	return &Point{
		X: new(big.Int).Set(p.X),
		Y: modular.Mod(new(big.Int).Neg(p.Y), c.P),
	}
}

// Add returns p + q under the curve group law.
func (c *Params) Add(p, q *Point) *Point {
	// 1. Equal operands are a doubling; this also covers infinity plus
	// itself.
	if p.Equal(q) {
		return c.Double(p)
	}

	// 2. Infinity is the identity.
	if p.IsInfinity() {
		return q.Clone()
	}
	if q.IsInfinity() {
		return p.Clone()
	}

	// 3. Same x with different y means q = -p, so the sum is infinity.
	if p.X.Cmp(q.X) == 0 {
		return Infinity()
	}

	// 4. Chord slope lambda = (qy - py) / (qx - px) mod p. The divisor is
	// nonzero here, so the inverse exists.
	num := modular.Sub(q.Y, p.Y, c.P)
	den := modular.Sub(q.X, p.X, c.P)
	lambda := modular.Mul(num, modular.Inv(den, c.P), c.P)

	// 5. x3 = lambda^2 - px - qx, y3 = lambda*(px - x3) - py.
	x3 := modular.Sub(modular.Sub(modular.Mul(lambda, lambda, c.P), p.X, c.P), q.X, c.P)
	y3 := modular.Sub(modular.Mul(lambda, modular.Sub(p.X, x3, c.P), c.P), p.Y, c.P)
	return &Point{X: x3, Y: y3}
}

// Double returns p + p. A point with y = 0 is its own negation, so doubling
// it yields infinity rather than a division by zero.
func (c *Params) Double(p *Point) *Point {
	if p.IsInfinity() {
		return Infinity()
	}
	if p.Y.Sign() == 0 {
		return Infinity()
	}

	// 1. Tangent slope lambda = (3*px^2 + a) / (2*py) mod p.
	num := modular.Add(modular.Mul(three, modular.Mul(p.X, p.X, c.P), c.P), c.A, c.P)
	den := modular.Mul(two, p.Y, c.P)
	lambda := modular.Mul(num, modular.Inv(den, c.P), c.P)

	// 2. x3 = lambda^2 - 2*px, y3 = lambda*(px - x3) - py.
	x3 := modular.Sub(modular.Mul(lambda, lambda, c.P), modular.Mul(two, p.X, c.P), c.P)
	y3 := modular.Sub(modular.Mul(lambda, modular.Sub(p.X, x3, c.P), c.P), p.Y, c.P)
	return &Point{X: x3, Y: y3}
}

// ScalarMult returns k * p computed by binary double-and-add, walking the
// scalar from its most significant bit. The accumulator starts at infinity,
// so the result is independent of how many leading zero bits the scalar
// representation carries; k = 0 yields infinity. A negative k yields
// -(|k| * p).
func (c *Params) ScalarMult(p *Point, k *big.Int) *Point {
	if k.Sign() < 0 {
		return c.Negate(c.ScalarMult(p, new(big.Int).Neg(k)))
	}
	result := Infinity()
	for i := k.BitLen() - 1; i >= 0; i-- {
		result = c.Double(result)
		if k.Bit(i) == 1 {
			result = c.Add(result, p)
		}
	}
	return result
}

// ScalarBaseMult returns k * G.
func (c *Params) ScalarBaseMult(k *big.Int) *Point {
	return c.ScalarMult(c.Generator(), k)
}

// LiftX returns the curve point with the given x coordinate whose y parity
// matches odd. It fails when x is out of range or the curve polynomial has
// no square root at x.
func (c *Params) LiftX(x *big.Int, odd bool) (*Point, error) {
	if x.Sign() < 0 || x.Cmp(c.P) >= 0 {
		return nil, ErrPointNotOnCurve
	}
	y := modular.Sqrt(c.Polynomial(x), c.P)
	if y == nil {
		return nil, ErrPointNotOnCurve
	}
	if (y.Bit(0) == 1) != odd {
		y = modular.Mod(new(big.Int).Neg(y), c.P)
	}
	return &Point{X: new(big.Int).Set(x), Y: y}, nil
}
