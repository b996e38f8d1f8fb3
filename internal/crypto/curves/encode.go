package curves

import (
	"math/big"
)

// SEC 1 point encodings, section 2.3.3. The point at infinity encodes as
// the single byte 0x00, finite points as 0x04 || X || Y uncompressed or
// 0x02/0x03 || X compressed with the prefix carrying the parity of Y.

// byteLen returns the width of one encoded coordinate.
func (c *Params) byteLen() int {
	return (c.BitSize + 7) / 8
}

// Marshal returns the uncompressed encoding of p.
func (c *Params) Marshal(p *Point) []byte {
	if p.IsInfinity() {
		return []byte{0x00}
	}
	byteLen := c.byteLen()
	out := make([]byte, 1+2*byteLen)
	out[0] = 0x04
	p.X.FillBytes(out[1 : 1+byteLen])
	p.Y.FillBytes(out[1+byteLen:])
	return out
}

// MarshalCompressed returns the compressed encoding of p.
func (c *Params) MarshalCompressed(p *Point) []byte {
	if p.IsInfinity() {
		return []byte{0x00}
	}
	byteLen := c.byteLen()
	out := make([]byte, 1+byteLen)
	out[0] = 0x02 + byte(p.Y.Bit(0))
	p.X.FillBytes(out[1:])
	return out
}

// Unmarshal parses an uncompressed encoding produced by Marshal. The
// coordinates are validated against the curve equation.
func (c *Params) Unmarshal(data []byte) (*Point, error) {
	if len(data) == 1 && data[0] == 0x00 {
		return Infinity(), nil
	}
	byteLen := c.byteLen()
	if len(data) != 1+2*byteLen || data[0] != 0x04 {
		return nil, ErrInvalidEncoding
	}
	x := new(big.Int).SetBytes(data[1 : 1+byteLen])
	y := new(big.Int).SetBytes(data[1+byteLen:])
	if x.Cmp(c.P) >= 0 || y.Cmp(c.P) >= 0 {
		return nil, ErrInvalidEncoding
	}
	return c.NewPoint(x, y)
}

// UnmarshalCompressed parses a compressed encoding produced by
// MarshalCompressed, recovering y from x and the parity prefix.
func (c *Params) UnmarshalCompressed(data []byte) (*Point, error) {
	if len(data) == 1 && data[0] == 0x00 {
		return Infinity(), nil
	}
	byteLen := c.byteLen()
	if len(data) != 1+byteLen || (data[0] != 0x02 && data[0] != 0x03) {
		return nil, ErrInvalidEncoding
	}
	x := new(big.Int).SetBytes(data[1:])
	return c.LiftX(x, data[0] == 0x03)
}
