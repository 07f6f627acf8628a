package ecdsa

import (
	"fmt"

	"github.com/taurusgroup/p256-ecdsa/pkg/math/curve"
)

const (
	// SignatureLength is the byte length of a plain signature: r || s.
	SignatureLength = 64
	// PrehashLength is the byte length every message digest must have.
	PrehashLength = 32
)

// Signature is an ECDSA signature, the pair (r, s) of non-zero scalars.
// It is immutable once constructed.
type Signature struct {
	R curve.Scalar
	S curve.Scalar
}

// EmptySignature returns a new signature with a given curve, ready to be unmarshalled.
func EmptySignature(group curve.Curve) Signature {
	return Signature{R: group.NewScalar(), S: group.NewScalar()}
}

// NewSignature builds a signature from its two components, rejecting zero
// scalars.
func NewSignature(r, s curve.Scalar) (Signature, error) {
	if r == nil || s == nil || r.IsZero() || s.IsZero() {
		return Signature{}, ErrInvalidScalar
	}
	return Signature{R: r, S: s}, nil
}

// SignatureFromBytes decodes the fixed-width encoding r (32) || s (32),
// both big-endian. Inputs of any other length fail with ErrInvalidLength,
// components outside [1, n-1] with ErrInvalidScalar.
func SignatureFromBytes(group curve.Curve, data []byte) (Signature, error) {
	if len(data) != SignatureLength {
		return Signature{}, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidLength, len(data), SignatureLength)
	}
	w := group.ScalarBytes()
	r := group.NewScalar()
	if err := r.UnmarshalBinary(data[:w]); err != nil {
		return Signature{}, fmt.Errorf("%w: r: %v", ErrInvalidScalar, err)
	}
	s := group.NewScalar()
	if err := s.UnmarshalBinary(data[w:]); err != nil {
		return Signature{}, fmt.Errorf("%w: s: %v", ErrInvalidScalar, err)
	}
	return NewSignature(r, s)
}

// Bytes is the exact inverse of SignatureFromBytes.
func (sig Signature) Bytes() []byte {
	out := make([]byte, 0, SignatureLength)
	rb, _ := sig.R.MarshalBinary()
	sb, _ := sig.S.MarshalBinary()
	out = append(out, rb...)
	out = append(out, sb...)
	return out
}

// Verify evaluates the ECDSA verification equation for the given public
// point and 32-byte prehash. A nil return means the signature is valid;
// any mismatch, including a degenerate combination result, returns
// ErrVerificationFailed.
//
// The prehash must be the output of a collision-resistant hash applied to
// the message, never the raw message.
func (sig Signature) Verify(X curve.Point, prehash []byte) error {
	if len(prehash) != PrehashLength {
		return fmt.Errorf("%w: prehash must be %d bytes", ErrInvalidLength, PrehashLength)
	}
	if X == nil || X.IsIdentity() {
		return ErrInvalidPoint
	}
	if sig.R == nil || sig.S == nil || sig.R.IsZero() || sig.S.IsZero() {
		return ErrInvalidScalar
	}
	group := X.Curve()

	z := curve.FromHash(group, prehash)
	sInv := group.NewScalar().Set(sig.S).Invert()
	u1 := group.NewScalar().Set(z).Mul(sInv)
	u2 := group.NewScalar().Set(sig.R).Mul(sInv)

	R := u1.ActOnBase().Add(u2.Act(X))
	if R.IsIdentity() {
		return ErrVerificationFailed
	}
	if !R.XScalar().Equal(sig.R) {
		return ErrVerificationFailed
	}
	return nil
}

// IsLowS reports whether s is the canonical low-half representative.
// Both s and n-s satisfy the verification equation; only the low form is
// canonical for recovery.
func (sig Signature) IsLowS() bool {
	return !sig.S.IsOverHalfOrder()
}

// Normalize returns the signature with s replaced by its low-half
// representative, and reports whether a flip happened.
func (sig Signature) Normalize() (Signature, bool) {
	if sig.IsLowS() {
		return sig, false
	}
	group := sig.S.Curve()
	return Signature{
		R: group.NewScalar().Set(sig.R),
		S: group.NewScalar().Set(sig.S).Negate(),
	}, true
}
