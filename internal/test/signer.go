// Package test provides deterministic signing helpers for the test suites.
// Signing is not part of the library's surface, so everything here stays
// internal.
package test

import (
	"encoding/binary"

	"github.com/zeebo/blake3"

	"github.com/taurusgroup/p256-ecdsa/pkg/ecdsa"
	"github.com/taurusgroup/p256-ecdsa/pkg/math/curve"
)

// Signer holds a private scalar derived from a seed and produces
// recoverable signatures with the correct recovery id.
type Signer struct {
	group  curve.Curve
	secret curve.Scalar
	public curve.Point
}

// NewSigner derives a signer deterministically from the seed.
func NewSigner(group curve.Curve, seed []byte) *Signer {
	secret := curve.FromHash(group, prf(seed, nil, 0))
	for ctr := uint64(1); secret.IsZero(); ctr++ {
		secret = curve.FromHash(group, prf(seed, nil, ctr))
	}
	return &Signer{
		group:  group,
		secret: secret,
		public: secret.ActOnBase(),
	}
}

func (s *Signer) PublicKey() *ecdsa.VerifyingKey {
	key, err := ecdsa.NewVerifyingKey(s.public)
	if err != nil {
		panic(err)
	}
	return key
}

func (s *Signer) PublicPoint() curve.Point {
	return s.public
}

// Sign produces a recoverable signature over the 32-byte prehash, with a
// nonce derived from the secret and the prehash. Nonces whose point has an
// overflowing x-coordinate are skipped, since the resulting signature
// would need the unsupported recovery ids 2 and 3.
func (s *Signer) Sign(prehash []byte) ecdsa.RecoverableSignature {
	secretBytes, _ := s.secret.MarshalBinary()
	z := curve.FromHash(s.group, prehash)

	for ctr := uint64(0); ; ctr++ {
		k := curve.FromHash(s.group, prf(secretBytes, prehash, ctr))
		if k.IsZero() {
			continue
		}
		R := k.ActOnBase()
		if R.XOverflow() == 1 {
			continue
		}
		r := R.XScalar()
		if r.IsZero() {
			continue
		}

		// s = k⁻¹(z + r·d)
		rd := s.group.NewScalar().Set(r).Mul(s.secret)
		sum := s.group.NewScalar().Set(z).Add(rd)
		sv := s.group.NewScalar().Set(k).Invert().Mul(sum)
		if sv.IsZero() {
			continue
		}

		sig, err := ecdsa.NewSignature(r, sv)
		if err != nil {
			continue
		}
		v, err := ecdsa.RecoveryIDFromByte(byte(R.YOddBit()))
		if err != nil {
			panic(err)
		}
		return ecdsa.NewRecoverableSignature(sig, v)
	}
}

// prf expands (key, data, ctr) to 32 bytes with BLAKE3.
func prf(key, data []byte, ctr uint64) []byte {
	h := blake3.New()
	_, _ = h.Write(key)
	_, _ = h.Write(data)
	var c [8]byte
	binary.BigEndian.PutUint64(c[:], ctr)
	_, _ = h.Write(c[:])
	return h.Sum(nil)
}
