package curves

import (
	"bytes"
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-affine-ecdsa/internal/crypto/modular"
)

func TestMarshalRoundTrip(t *testing.T) {
	for _, c := range []*Params{toyCurve(), Secp256k1()} {
		for _, k := range []int64{1, 2, 7, 11} {
			p := c.ScalarBaseMult(big.NewInt(k))

			enc := c.Marshal(p)
			assert.Equal(t, byte(0x04), enc[0], "curve %s", c.Name)
			assert.Len(t, enc, 1+2*c.byteLen(), "curve %s", c.Name)

			back, err := c.Unmarshal(enc)
			require.NoError(t, err, "curve %s k=%d", c.Name, k)
			assert.True(t, back.Equal(p), "curve %s k=%d", c.Name, k)
		}
	}
}

func TestMarshalCompressedRoundTrip(t *testing.T) {
	// Compressed decoding needs a square root, so it runs on secp256k1
	// where p % 4 == 3.
	c := Secp256k1()
	for i := 0; i < 10; i++ {
		k, err := rand.Int(rand.Reader, c.N)
		require.NoError(t, err)
		if k.Sign() == 0 {
			continue
		}
		p := c.ScalarBaseMult(k)

		enc := c.MarshalCompressed(p)
		assert.Len(t, enc, 1+c.byteLen())
		assert.Contains(t, []byte{0x02, 0x03}, enc[0])

		back, err := c.UnmarshalCompressed(enc)
		require.NoError(t, err)
		assert.True(t, back.Equal(p))
	}
}

func TestMarshalInfinity(t *testing.T) {
	c := Secp256k1()

	assert.Equal(t, []byte{0x00}, c.Marshal(Infinity()))
	assert.Equal(t, []byte{0x00}, c.MarshalCompressed(Infinity()))

	p, err := c.Unmarshal([]byte{0x00})
	require.NoError(t, err)
	assert.True(t, p.IsInfinity())

	p, err = c.UnmarshalCompressed([]byte{0x00})
	require.NoError(t, err)
	assert.True(t, p.IsInfinity())
}

// TestMarshalAgainstDecred checks both encodings byte for byte against the
// decred serialization of the same public point.
func TestMarshalAgainstDecred(t *testing.T) {
	c := Secp256k1()
	for i := 0; i < 10; i++ {
		d, err := rand.Int(rand.Reader, c.N)
		require.NoError(t, err)
		if d.Sign() == 0 {
			continue
		}

		p := c.ScalarBaseMult(d)
		priv := secp256k1.PrivKeyFromBytes(d.FillBytes(make([]byte, 32)))
		pub := priv.PubKey()

		assert.True(t, bytes.Equal(c.MarshalCompressed(p), pub.SerializeCompressed()))
		assert.True(t, bytes.Equal(c.Marshal(p), pub.SerializeUncompressed()))
	}
}

func TestUnmarshalRejects(t *testing.T) {
	c := Secp256k1()
	g := c.Generator()
	byteLen := c.byteLen()

	offCurve := make([]byte, 1+2*byteLen)
	offCurve[0] = 0x04
	g.X.FillBytes(offCurve[1 : 1+byteLen])
	new(big.Int).Add(g.Y, big.NewInt(1)).FillBytes(offCurve[1+byteLen:])

	oversizeX := make([]byte, 1+2*byteLen)
	oversizeX[0] = 0x04
	c.P.FillBytes(oversizeX[1 : 1+byteLen])
	g.Y.FillBytes(oversizeX[1+byteLen:])

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"bad prefix", append([]byte{0x05}, make([]byte, 2*byteLen)...)},
		{"short", append([]byte{0x04}, make([]byte, 2*byteLen-1)...)},
		{"long zero", []byte{0x00, 0x00}},
		{"off curve", offCurve},
		{"x not reduced", oversizeX},
	}
	for _, tt := range tests {
		_, err := c.Unmarshal(tt.data)
		assert.Error(t, err, tt.name)
	}
}

func TestUnmarshalCompressedRejects(t *testing.T) {
	c := Secp256k1()
	byteLen := c.byteLen()

	// Walk small x values to one where the curve polynomial is a
	// quadratic non-residue by Euler's criterion.
	halfOrder := new(big.Int).Rsh(new(big.Int).Sub(c.P, big.NewInt(1)), 1)
	var badX *big.Int
	for x := int64(1); x < 100; x++ {
		val := c.Polynomial(big.NewInt(x))
		if modular.Exp(val, halfOrder, c.P).Cmp(big.NewInt(1)) != 0 {
			badX = big.NewInt(x)
			break
		}
	}
	require.NotNil(t, badX, "no non-residue x found below 100")

	nonResidue := make([]byte, 1+byteLen)
	nonResidue[0] = 0x02
	badX.FillBytes(nonResidue[1:])

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"bad prefix", append([]byte{0x04}, make([]byte, byteLen)...)},
		{"short", append([]byte{0x02}, make([]byte, byteLen-1)...)},
		{"non-residue x", nonResidue},
	}
	for _, tt := range tests {
		_, err := c.UnmarshalCompressed(tt.data)
		assert.Error(t, err, tt.name)
	}
}
