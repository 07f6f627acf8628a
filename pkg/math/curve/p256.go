package curve

import (
	"crypto/elliptic"
	"errors"
	"math/big"

	"github.com/cronokirby/safenum"
)

const p256ScalarBytes = 32

var (
	p256Params    = elliptic.P256().Params()
	p256Order     = safenum.ModulusFromBytes(p256Params.N.Bytes())
	p256HalfOrder = new(big.Int).Rsh(p256Params.N, 1)
)

// P256 implements Curve for the NIST P-256 (secp256r1) group.
type P256 struct{}

func (P256) NewPoint() Point {
	return &P256Point{}
}

func (P256) NewBasePoint() Point {
	return &P256Point{
		x: new(big.Int).Set(p256Params.Gx),
		y: new(big.Int).Set(p256Params.Gy),
	}
}

func (P256) NewScalar() Scalar {
	return &P256Scalar{}
}

func (P256) Name() string {
	return "P-256"
}

func (P256) ScalarBytes() int {
	return p256ScalarBytes
}

func (P256) Order() *safenum.Modulus {
	return p256Order
}

// LiftX solves y² = x³ - 3x + b for the given x-coordinate and picks the
// root with the requested parity.
func (P256) LiftX(x []byte, yOdd bool) (Point, error) {
	if len(x) != p256ScalarBytes {
		return nil, errors.New("curve: x-coordinate must be 32 bytes")
	}
	xInt := new(big.Int).SetBytes(x)
	if xInt.Cmp(p256Params.P) >= 0 {
		return nil, errors.New("curve: x-coordinate exceeds the field prime")
	}

	// y² = x³ - 3x + b (mod p)
	y2 := new(big.Int).Mul(xInt, xInt)
	y2.Sub(y2, big.NewInt(3))
	y2.Mul(y2, xInt)
	y2.Add(y2, p256Params.B)
	y2.Mod(y2, p256Params.P)

	y := new(big.Int).ModSqrt(y2, p256Params.P)
	if y == nil {
		return nil, errors.New("curve: no point with the given x-coordinate")
	}
	if oddBit(y) != yOdd {
		y.Sub(p256Params.P, y)
	}
	return &P256Point{x: xInt, y: y}, nil
}

// P256Scalar is an integer modulo the order of the P-256 group. The zero
// value is the zero scalar.
type P256Scalar struct {
	value safenum.Nat
}

func (s *P256Scalar) Curve() Curve {
	return P256{}
}

func (s *P256Scalar) Add(t Scalar) Scalar {
	o := t.(*P256Scalar)
	s.value.ModAdd(&s.value, &o.value, p256Order)
	return s
}

func (s *P256Scalar) Sub(t Scalar) Scalar {
	o := t.(*P256Scalar)
	neg := new(safenum.Nat).ModNeg(&o.value, p256Order)
	s.value.ModAdd(&s.value, neg, p256Order)
	return s
}

func (s *P256Scalar) Mul(t Scalar) Scalar {
	o := t.(*P256Scalar)
	s.value.ModMul(&s.value, &o.value, p256Order)
	return s
}

// Invert replaces the scalar with its multiplicative inverse. The scalar
// must not be zero.
func (s *P256Scalar) Invert() Scalar {
	s.value.ModInverse(&s.value, p256Order)
	return s
}

func (s *P256Scalar) Negate() Scalar {
	s.value.ModNeg(&s.value, p256Order)
	return s
}

func (s *P256Scalar) Equal(t Scalar) bool {
	o := t.(*P256Scalar)
	return s.value.Eq(&o.value) == 1
}

func (s *P256Scalar) IsZero() bool {
	var zero safenum.Nat
	zero.SetUint64(0)
	return s.value.Eq(&zero) == 1
}

func (s *P256Scalar) IsOverHalfOrder() bool {
	return s.bigInt().Cmp(p256HalfOrder) > 0
}

func (s *P256Scalar) Set(t Scalar) Scalar {
	o := t.(*P256Scalar)
	s.value.SetBytes(o.value.Bytes())
	return s
}

func (s *P256Scalar) SetNat(n *safenum.Nat) Scalar {
	s.value.Mod(n, p256Order)
	return s
}

func (s *P256Scalar) Act(p Point) Point {
	o := p.(*P256Point)
	if o.IsIdentity() {
		return &P256Point{}
	}
	x, y := elliptic.P256().ScalarMult(o.x, o.y, s.bytes())
	return pointFromAffine(x, y)
}

func (s *P256Scalar) ActOnBase() Point {
	x, y := elliptic.P256().ScalarBaseMult(s.bytes())
	return pointFromAffine(x, y)
}

func (s *P256Scalar) MarshalBinary() ([]byte, error) {
	return s.bytes(), nil
}

// UnmarshalBinary decodes a fixed-width big-endian scalar, rejecting values
// outside [0, n-1].
func (s *P256Scalar) UnmarshalBinary(data []byte) error {
	if len(data) != p256ScalarBytes {
		return errors.New("curve: scalar must be 32 bytes")
	}
	if new(big.Int).SetBytes(data).Cmp(p256Params.N) >= 0 {
		return errors.New("curve: scalar exceeds the group order")
	}
	s.value.SetBytes(data)
	return nil
}

func (s *P256Scalar) bytes() []byte {
	out := make([]byte, p256ScalarBytes)
	data := s.value.Bytes()
	if len(data) > p256ScalarBytes {
		data = data[len(data)-p256ScalarBytes:]
	}
	copy(out[p256ScalarBytes-len(data):], data)
	return out
}

func (s *P256Scalar) bigInt() *big.Int {
	return new(big.Int).SetBytes(s.value.Bytes())
}

// P256Point is an affine point on P-256. The zero value is the identity.
type P256Point struct {
	x, y *big.Int
}

func (p *P256Point) Curve() Curve {
	return P256{}
}

func (p *P256Point) Add(q Point) Point {
	o := q.(*P256Point)
	if p.IsIdentity() {
		return o.clone()
	}
	if o.IsIdentity() {
		return p.clone()
	}
	x, y := elliptic.P256().Add(p.x, p.y, o.x, o.y)
	return pointFromAffine(x, y)
}

func (p *P256Point) Sub(q Point) Point {
	return p.Add(q.Negate())
}

func (p *P256Point) Negate() Point {
	if p.IsIdentity() {
		return &P256Point{}
	}
	return &P256Point{
		x: new(big.Int).Set(p.x),
		y: new(big.Int).Sub(p256Params.P, p.y),
	}
}

func (p *P256Point) Equal(q Point) bool {
	o := q.(*P256Point)
	if p.IsIdentity() || o.IsIdentity() {
		return p.IsIdentity() == o.IsIdentity()
	}
	return p.x.Cmp(o.x) == 0 && p.y.Cmp(o.y) == 0
}

func (p *P256Point) IsIdentity() bool {
	return p.x == nil || (p.x.Sign() == 0 && p.y.Sign() == 0)
}

func (p *P256Point) XScalar() Scalar {
	s := &P256Scalar{}
	if p.IsIdentity() {
		return s
	}
	x := new(safenum.Nat).SetBytes(p.x.Bytes())
	return s.SetNat(x)
}

func (p *P256Point) XBytes() []byte {
	out := make([]byte, p256ScalarBytes)
	if !p.IsIdentity() {
		p.x.FillBytes(out)
	}
	return out
}

func (p *P256Point) YBytes() []byte {
	out := make([]byte, p256ScalarBytes)
	if !p.IsIdentity() {
		p.y.FillBytes(out)
	}
	return out
}

func (p *P256Point) YOddBit() int {
	if p.IsIdentity() {
		return 0
	}
	if oddBit(p.y) {
		return 1
	}
	return 0
}

func (p *P256Point) XOverflow() int {
	if p.IsIdentity() {
		return 0
	}
	if p.x.Cmp(p256Params.N) >= 0 {
		return 1
	}
	return 0
}

// MarshalBinary encodes the point in SEC1 compressed form, 33 bytes.
func (p *P256Point) MarshalBinary() ([]byte, error) {
	if p.IsIdentity() {
		return nil, errors.New("curve: cannot marshal the identity point")
	}
	out := make([]byte, 1+p256ScalarBytes)
	out[0] = byte(2 + p.YOddBit())
	p.x.FillBytes(out[1:])
	return out, nil
}

// UnmarshalBinary decodes a SEC1 point, either compressed (33 bytes) or
// uncompressed (65 bytes).
func (p *P256Point) UnmarshalBinary(data []byte) error {
	switch {
	case len(data) == 1+p256ScalarBytes && (data[0] == 2 || data[0] == 3):
		lifted, err := P256{}.LiftX(data[1:], data[0] == 3)
		if err != nil {
			return err
		}
		o := lifted.(*P256Point)
		p.x, p.y = o.x, o.y
		return nil
	case len(data) == 1+2*p256ScalarBytes && data[0] == 4:
		x := new(big.Int).SetBytes(data[1 : 1+p256ScalarBytes])
		y := new(big.Int).SetBytes(data[1+p256ScalarBytes:])
		if !elliptic.P256().IsOnCurve(x, y) {
			return errors.New("curve: point is not on the curve")
		}
		p.x, p.y = x, y
		return nil
	default:
		return errors.New("curve: invalid SEC1 point encoding")
	}
}

func (p *P256Point) clone() *P256Point {
	if p.IsIdentity() {
		return &P256Point{}
	}
	return &P256Point{x: new(big.Int).Set(p.x), y: new(big.Int).Set(p.y)}
}

// pointFromAffine normalizes the legacy crypto/elliptic convention of
// encoding the point at infinity as (0, 0).
func pointFromAffine(x, y *big.Int) *P256Point {
	if x.Sign() == 0 && y.Sign() == 0 {
		return &P256Point{}
	}
	return &P256Point{x: x, y: y}
}

func oddBit(v *big.Int) bool {
	return v.Bit(0) == 1
}
