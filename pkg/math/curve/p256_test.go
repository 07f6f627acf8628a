package curve

import (
	"bytes"
	"crypto/elliptic"
	"math/big"
	"testing"

	"github.com/cronokirby/safenum"
	"github.com/stretchr/testify/require"
)

func scalarFromUint64(t *testing.T, v uint64) Scalar {
	t.Helper()
	return P256{}.NewScalar().SetNat(new(safenum.Nat).SetUint64(v))
}

func TestScalarRoundTrip(t *testing.T) {
	group := P256{}
	s := FromHash(group, bytes.Repeat([]byte{0xab}, 32))
	data, err := s.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, data, group.ScalarBytes())

	decoded := group.NewScalar()
	require.NoError(t, decoded.UnmarshalBinary(data))
	require.True(t, s.Equal(decoded))
}

func TestScalarUnmarshalRejects(t *testing.T) {
	group := P256{}
	n := elliptic.P256().Params().N

	for _, tc := range []struct {
		name string
		data []byte
	}{
		{"short", make([]byte, 31)},
		{"long", make([]byte, 33)},
		{"order", n.Bytes()},
		{"aboveOrder", new(big.Int).Add(n, big.NewInt(1)).Bytes()},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Error(t, group.NewScalar().UnmarshalBinary(tc.data))
		})
	}

	// n-1 is the largest valid scalar.
	max := make([]byte, 32)
	new(big.Int).Sub(n, big.NewInt(1)).FillBytes(max)
	require.NoError(t, group.NewScalar().UnmarshalBinary(max))
}

func TestScalarArithmetic(t *testing.T) {
	group := P256{}
	a := FromHash(group, bytes.Repeat([]byte{1}, 32))
	b := FromHash(group, bytes.Repeat([]byte{2}, 32))

	sum := group.NewScalar().Set(a).Add(b)
	require.True(t, sum.Sub(b).Equal(a))

	one := scalarFromUint64(t, 1)
	prod := group.NewScalar().Set(a).Mul(group.NewScalar().Set(a).Invert())
	require.True(t, prod.Equal(one))

	neg := group.NewScalar().Set(a).Negate().Add(a)
	require.True(t, neg.IsZero())
}

func TestScalarHalfOrder(t *testing.T) {
	group := P256{}
	low := scalarFromUint64(t, 1)
	require.False(t, low.IsOverHalfOrder())

	high := group.NewScalar().Set(low).Negate() // n - 1
	require.True(t, high.IsOverHalfOrder())
}

func TestLiftX(t *testing.T) {
	group := P256{}
	G := group.NewBasePoint()

	lifted, err := group.LiftX(G.XBytes(), G.YOddBit() == 1)
	require.NoError(t, err)
	require.True(t, lifted.Equal(G))

	flipped, err := group.LiftX(G.XBytes(), G.YOddBit() == 0)
	require.NoError(t, err)
	require.True(t, flipped.Equal(G.Negate()))
}

func TestLiftXRejects(t *testing.T) {
	group := P256{}

	_, err := group.LiftX(make([]byte, 31), false)
	require.Error(t, err)

	p := elliptic.P256().Params().P
	over := make([]byte, 32)
	p.FillBytes(over)
	_, err = group.LiftX(over, false)
	require.Error(t, err)

	// Roughly half of all x-coordinates have no lift; find one.
	x := make([]byte, 32)
	for i := byte(1); ; i++ {
		x[31] = i
		if _, err := group.LiftX(x, false); err != nil {
			break
		}
		require.Less(t, i, byte(200), "expected a non-liftable x-coordinate")
	}
}

func TestPointGroupLaw(t *testing.T) {
	group := P256{}
	G := group.NewBasePoint()

	two := scalarFromUint64(t, 2)
	require.True(t, two.ActOnBase().Equal(G.Add(G)))

	require.True(t, G.Add(G.Negate()).IsIdentity())
	require.True(t, G.Sub(G).IsIdentity())
	require.True(t, group.NewPoint().IsIdentity())
	require.True(t, G.Add(group.NewPoint()).Equal(G))
}

func TestPointMarshal(t *testing.T) {
	group := P256{}
	k := FromHash(group, bytes.Repeat([]byte{7}, 32))
	P := k.ActOnBase()

	data, err := P.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, data, 33)

	decoded := group.NewPoint()
	require.NoError(t, decoded.UnmarshalBinary(data))
	require.True(t, decoded.Equal(P))

	// Uncompressed form decodes to the same point.
	uncompressed := append([]byte{4}, append(P.XBytes(), P.YBytes()...)...)
	decoded2 := group.NewPoint()
	require.NoError(t, decoded2.UnmarshalBinary(uncompressed))
	require.True(t, decoded2.Equal(P))

	_, err = group.NewPoint().MarshalBinary()
	require.Error(t, err, "identity has no SEC1 encoding")

	require.Error(t, group.NewPoint().UnmarshalBinary(data[:32]))

	bad := append([]byte{4}, append(P.XBytes(), P.XBytes()...)...)
	require.Error(t, group.NewPoint().UnmarshalBinary(bad))
}

func TestFromHashReduces(t *testing.T) {
	group := P256{}
	all := bytes.Repeat([]byte{0xff}, 32)
	s := FromHash(group, all)

	data, err := s.MarshalBinary()
	require.NoError(t, err)
	require.True(t, new(big.Int).SetBytes(data).Cmp(elliptic.P256().Params().N) < 0)
	require.False(t, s.IsZero())
}
