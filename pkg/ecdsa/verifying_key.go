package ecdsa

import (
	"fmt"

	"github.com/taurusgroup/p256-ecdsa/pkg/math/curve"
)

// VerifyingKey wraps a non-identity curve point, the public counterpart of
// the key a signature was produced with. It is never mutated after
// construction; equality is point equality.
type VerifyingKey struct {
	point curve.Point
}

// NewVerifyingKey wraps a point, rejecting the identity.
func NewVerifyingKey(p curve.Point) (*VerifyingKey, error) {
	if p == nil || p.IsIdentity() {
		return nil, ErrInvalidPoint
	}
	return &VerifyingKey{point: p}, nil
}

// VerifyingKeyFromSEC1 decodes a SEC1 public key encoding, compressed
// (33 bytes) or uncompressed (65 bytes).
func VerifyingKeyFromSEC1(group curve.Curve, data []byte) (*VerifyingKey, error) {
	p := group.NewPoint()
	if err := p.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	return NewVerifyingKey(p)
}

// Point returns the wrapped curve point.
func (vk *VerifyingKey) Point() curve.Point {
	return vk.point
}

// SEC1 returns the compressed SEC1 encoding of the key.
func (vk *VerifyingKey) SEC1() []byte {
	data, _ := vk.point.MarshalBinary()
	return data
}

func (vk *VerifyingKey) Equal(other *VerifyingKey) bool {
	if vk == nil || other == nil {
		return vk == other
	}
	return vk.point.Equal(other.point)
}

// Verify checks the signature against the 32-byte prehash under this key.
func (vk *VerifyingKey) Verify(sig Signature, prehash []byte) error {
	return sig.Verify(vk.point, prehash)
}

// MarshalBinary encodes the key in compressed SEC1 form.
func (vk *VerifyingKey) MarshalBinary() ([]byte, error) {
	return vk.point.MarshalBinary()
}

// UnmarshalBinary decodes a SEC1 encoding, assuming the P-256 group.
func (vk *VerifyingKey) UnmarshalBinary(data []byte) error {
	decoded, err := VerifyingKeyFromSEC1(curve.P256{}, data)
	if err != nil {
		return err
	}
	vk.point = decoded.point
	return nil
}
