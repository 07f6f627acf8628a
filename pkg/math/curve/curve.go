package curve

import (
	"encoding"

	"github.com/cronokirby/safenum"
)

// Curve represents the starting point for working with an elliptic curve
// group. It bundles the constructors and the handful of arithmetic
// capabilities the protocol layer needs, so that layer never touches
// coordinates directly.
type Curve interface {
	// NewPoint returns the identity of the group, ready to be unmarshalled.
	NewPoint() Point
	// NewBasePoint returns the generator of the group.
	NewBasePoint() Point
	// NewScalar returns the zero scalar, ready to be set or unmarshalled.
	NewScalar() Scalar
	// Name of the curve, matching its standard designation.
	Name() string
	// ScalarBytes is the width of a serialized scalar.
	ScalarBytes() int
	// Order returns a modulus holding the order of the group.
	Order() *safenum.Modulus
	// LiftX decompresses a point from a big-endian x-coordinate and the
	// parity of its y-coordinate. Fails when x has no square lift.
	LiftX(x []byte, yOdd bool) (Point, error)
}

// Scalar is an integer modulo the order of the group.
//
// Operations mutate the receiver in place and return it, following the
// usual chaining style. Scalars obtained from different curves must never
// be mixed.
type Scalar interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
	Curve() Curve
	Add(Scalar) Scalar
	Sub(Scalar) Scalar
	Mul(Scalar) Scalar
	Invert() Scalar
	Negate() Scalar
	Equal(Scalar) bool
	IsZero() bool
	// IsOverHalfOrder reports whether the scalar lies in the upper half of
	// the group order, i.e. is the non-canonical of the two values s, -s.
	IsOverHalfOrder() bool
	Set(Scalar) Scalar
	SetNat(*safenum.Nat) Scalar
	// Act returns the scalar multiplication of the argument, leaving the
	// receiver untouched.
	Act(Point) Point
	// ActOnBase is Act applied to the generator.
	ActOnBase() Point
}

// Point is an element of the group, including the identity.
type Point interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
	Curve() Curve
	Add(Point) Point
	Sub(Point) Point
	Negate() Point
	Equal(Point) bool
	IsIdentity() bool
	// XScalar returns the affine x-coordinate reduced modulo the group
	// order, which is the quantity compared against r during verification.
	XScalar() Scalar
	// XBytes and YBytes return fixed-width big-endian affine coordinates.
	XBytes() []byte
	YBytes() []byte
	// YOddBit is 1 when the affine y-coordinate is odd.
	YOddBit() int
	// XOverflow is 1 when the affine x-coordinate is at least the group
	// order, i.e. when XScalar lost information.
	XOverflow() int
}

// FromHash converts a hash output to a scalar, interpreting it as a
// big-endian integer reduced modulo the group order.
func FromHash(group Curve, h []byte) Scalar {
	order := group.Order()
	z := new(safenum.Nat).SetBytes(h)
	z.Mod(z, order)
	return group.NewScalar().SetNat(z)
}
