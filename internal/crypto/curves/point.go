package curves

import (
	"fmt"
	"math/big"
)

// Point is a curve point in affine coordinates. The point at infinity, the
// identity of the curve group, carries nil coordinates; the zero value of
// Point is therefore infinity.
type Point struct {
	X *big.Int
	Y *big.Int
}

// Infinity returns the point at infinity.
func Infinity() *Point {
	return &Point{}
}

// IsInfinity reports whether p is the point at infinity. A nil point counts
// as infinity as well.
func (p *Point) IsInfinity() bool {
	return p == nil || (p.X == nil && p.Y == nil)
}

// Equal reports whether p and q represent the same point.
func (p *Point) Equal(q *Point) bool {
	if p.IsInfinity() || q.IsInfinity() {
		return p.IsInfinity() && q.IsInfinity()
	}
	return p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) == 0
}

// Clone returns an independent copy of p.
func (p *Point) Clone() *Point {
	if p.IsInfinity() {
		return Infinity()
	}
	return &Point{
		X: new(big.Int).Set(p.X),
		Y: new(big.Int).Set(p.Y),
	}
}

// String renders the point for logs and test failures.
func (p *Point) String() string {
	if p.IsInfinity() {
		return "(infinity)"
	}
	return fmt.Sprintf("(%s, %s)", p.X.Text(16), p.Y.Text(16))
}
