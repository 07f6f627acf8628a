package ecdsa

import (
	"fmt"

	"github.com/taurusgroup/p256-ecdsa/pkg/math/curve"
)

// RecoverableSignatureLength is the byte length of r || s || v.
const RecoverableSignatureLength = 65

// RecoveryID disambiguates which of the two curve points sharing the
// x-coordinate r was used during signing: 0 when its y-coordinate was
// even, 1 when odd.
//
// Some ECDSA codebases also define ids 2 and 3 for the case where r itself
// overflowed the group order. That happens for roughly one in 2^128
// signatures, and this package deliberately does not support it.
type RecoveryID byte

// RecoveryIDFromByte validates a raw recovery id byte.
func RecoveryIDFromByte(b byte) (RecoveryID, error) {
	if b > 1 {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedRecoveryID, b)
	}
	return RecoveryID(b), nil
}

// RecoveryIDFromFlags converts from the generic "x-reduced + y-parity"
// representation. The x-reduced flag must be unset.
func RecoveryIDFromFlags(xReduced, yOdd bool) (RecoveryID, error) {
	if xReduced {
		return 0, fmt.Errorf("%w: x-reduced ids are not supported", ErrUnsupportedRecoveryID)
	}
	if yOdd {
		return 1, nil
	}
	return 0, nil
}

// IsYOdd reports whether the signer's nonce point had an odd y-coordinate.
func (id RecoveryID) IsYOdd() bool {
	return id == 1
}

// IsXReduced is always false: overflowed x-coordinates are unsupported.
func (id RecoveryID) IsXReduced() bool {
	return false
}

func (id RecoveryID) Byte() byte {
	return byte(id)
}

// RecoverableSignature is a signature carrying the 1-bit recovery id that
// lets the signer's public key be reconstructed from the signature and the
// prehash alone.
type RecoverableSignature struct {
	Signature
	V RecoveryID
}

// NewRecoverableSignature bundles a signature with a recovery id. The id is
// taken on trust; callers holding only a candidate key should use
// TrialRecover instead.
func NewRecoverableSignature(sig Signature, v RecoveryID) RecoverableSignature {
	return RecoverableSignature{Signature: sig, V: v}
}

// RecoverableSignatureFromBytes decodes r (32) || s (32) || v (1).
func RecoverableSignatureFromBytes(group curve.Curve, data []byte) (RecoverableSignature, error) {
	if len(data) != RecoverableSignatureLength {
		return RecoverableSignature{}, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidLength, len(data), RecoverableSignatureLength)
	}
	sig, err := SignatureFromBytes(group, data[:SignatureLength])
	if err != nil {
		return RecoverableSignature{}, err
	}
	v, err := RecoveryIDFromByte(data[SignatureLength])
	if err != nil {
		return RecoverableSignature{}, err
	}
	return RecoverableSignature{Signature: sig, V: v}, nil
}

// Bytes is the exact inverse of RecoverableSignatureFromBytes.
func (rs RecoverableSignature) Bytes() []byte {
	out := make([]byte, 0, RecoverableSignatureLength)
	out = append(out, rs.Signature.Bytes()...)
	out = append(out, rs.V.Byte())
	return out
}

// Plain drops the recovery id.
func (rs RecoverableSignature) Plain() Signature {
	return rs.Signature
}

// Recover reconstructs the candidate public key from the signature and the
// 32-byte prehash:
//
//	R  = lift_x(r, v)
//	Q  = r⁻¹(-z)·G + r⁻¹s·R
//
// The recovered key is NOT checked against the verification equation;
// callers needing that guarantee must verify the signature under the
// returned key themselves.
func (rs RecoverableSignature) Recover(prehash []byte) (*VerifyingKey, error) {
	if len(prehash) != PrehashLength {
		return nil, fmt.Errorf("%w: prehash must be %d bytes", ErrInvalidLength, PrehashLength)
	}
	if rs.R == nil || rs.S == nil || rs.R.IsZero() || rs.S.IsZero() {
		return nil, ErrInvalidScalar
	}
	group := rs.R.Curve()

	rBytes, err := rs.R.MarshalBinary()
	if err != nil {
		return nil, err
	}
	R, err := group.LiftX(rBytes, rs.V.IsYOdd())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPointNotOnCurve, err)
	}

	z := curve.FromHash(group, prehash)
	rInv := group.NewScalar().Set(rs.R).Invert()
	u1 := group.NewScalar().Set(rInv).Mul(z).Negate()
	u2 := group.NewScalar().Set(rInv).Mul(rs.S)

	Q := u1.ActOnBase().Add(u2.Act(R))
	if Q.IsIdentity() {
		return nil, ErrInvalidPoint
	}
	return NewVerifyingKey(Q)
}

// TrialRecover searches for the recovery id matching a known public key,
// for signatures that were produced without one. The signature is first
// normalized to its low-s form, since only that representative is
// canonical for recovery; an id matches when recovery under it yields the
// candidate key and the candidate key verifies the normalized signature.
func TrialRecover(public *VerifyingKey, prehash []byte, sig Signature) (RecoverableSignature, error) {
	if public == nil {
		return RecoverableSignature{}, ErrInvalidPoint
	}
	if sig.R == nil || sig.S == nil || sig.R.IsZero() || sig.S.IsZero() {
		return RecoverableSignature{}, ErrInvalidScalar
	}
	normalized, _ := sig.Normalize()

	for v := RecoveryID(0); v <= 1; v++ {
		rec := RecoverableSignature{Signature: normalized, V: v}
		recovered, err := rec.Recover(prehash)
		if err != nil {
			continue
		}
		if !recovered.Equal(public) {
			continue
		}
		if public.Verify(normalized, prehash) != nil {
			continue
		}
		return rec, nil
	}
	return RecoverableSignature{}, ErrNoValidRecoveryID
}
