package ecdsa_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taurusgroup/p256-ecdsa/internal/test"
	"github.com/taurusgroup/p256-ecdsa/pkg/ecdsa"
	"github.com/taurusgroup/p256-ecdsa/pkg/hash"
	"github.com/taurusgroup/p256-ecdsa/pkg/math/curve"
)

var group = curve.P256{}

func TestSignatureRoundTrip(t *testing.T) {
	signer := test.NewSigner(group, []byte("round-trip"))
	sig := signer.Sign(hash.SHA256([]byte("hello"))).Plain()

	data := sig.Bytes()
	require.Len(t, data, ecdsa.SignatureLength)

	decoded, err := ecdsa.SignatureFromBytes(group, data)
	require.NoError(t, err)
	require.True(t, decoded.R.Equal(sig.R))
	require.True(t, decoded.S.Equal(sig.S))
	require.Equal(t, data, decoded.Bytes())
}

func TestSignatureFromBytesRejects(t *testing.T) {
	signer := test.NewSigner(group, []byte("rejects"))
	valid := signer.Sign(hash.SHA256([]byte("hello"))).Plain().Bytes()

	t.Run("length", func(t *testing.T) {
		for _, n := range []int{0, 63, 65} {
			_, err := ecdsa.SignatureFromBytes(group, make([]byte, n))
			require.ErrorIs(t, err, ecdsa.ErrInvalidLength)
		}
	})

	t.Run("zeroR", func(t *testing.T) {
		data := append([]byte{}, valid...)
		copy(data[:32], make([]byte, 32))
		_, err := ecdsa.SignatureFromBytes(group, data)
		require.ErrorIs(t, err, ecdsa.ErrInvalidScalar)
	})

	t.Run("zeroS", func(t *testing.T) {
		data := append([]byte{}, valid...)
		copy(data[32:], make([]byte, 32))
		_, err := ecdsa.SignatureFromBytes(group, data)
		require.ErrorIs(t, err, ecdsa.ErrInvalidScalar)
	})

	t.Run("overflowS", func(t *testing.T) {
		data := append([]byte{}, valid...)
		copy(data[32:], bytes.Repeat([]byte{0xff}, 32))
		_, err := ecdsa.SignatureFromBytes(group, data)
		require.ErrorIs(t, err, ecdsa.ErrInvalidScalar)
	})
}

func TestVerifyVector(t *testing.T) {
	key, err := ecdsa.VerifyingKeyFromSEC1(group, test.VectorPK)
	require.NoError(t, err)

	sig, err := ecdsa.SignatureFromBytes(group, append(append([]byte{}, test.WycheproofR...), test.WycheproofS...))
	require.NoError(t, err)

	require.True(t, sig.IsLowS())
	require.NoError(t, key.VerifyMessage(sig, test.WycheproofMsg))
}

func TestVerifySignerOutput(t *testing.T) {
	signer := test.NewSigner(group, []byte("verify"))
	prehash := hash.SHA256([]byte("the lazy dog"))
	sig := signer.Sign(prehash).Plain()

	require.NoError(t, signer.PublicKey().Verify(sig, prehash))

	other := test.NewSigner(group, []byte("someone else"))
	require.ErrorIs(t, other.PublicKey().Verify(sig, prehash), ecdsa.ErrVerificationFailed)
}

func TestVerifyPrehashLength(t *testing.T) {
	signer := test.NewSigner(group, []byte("prehash"))
	prehash := hash.SHA256([]byte("msg"))
	sig := signer.Sign(prehash).Plain()

	err := signer.PublicKey().Verify(sig, prehash[:31])
	require.ErrorIs(t, err, ecdsa.ErrInvalidLength)
	err = signer.PublicKey().Verify(sig, append(prehash, 0))
	require.ErrorIs(t, err, ecdsa.ErrInvalidLength)
}

// Flipping any single bit of a valid signature must never verify.
func TestVerifyBitFlips(t *testing.T) {
	signer := test.NewSigner(group, []byte("bit-flips"))
	key := signer.PublicKey()
	prehash := hash.SHA256([]byte("soundness"))
	valid := signer.Sign(prehash).Plain().Bytes()

	for i := 0; i < len(valid)*8; i++ {
		flipped := append([]byte{}, valid...)
		flipped[i/8] ^= 1 << (i % 8)

		sig, err := ecdsa.SignatureFromBytes(group, flipped)
		if err != nil {
			// The flip produced an out-of-range component; rejection at
			// decode time is just as sound.
			continue
		}
		require.Error(t, key.Verify(sig, prehash), "bit %d", i)
	}
}

func TestMalleability(t *testing.T) {
	signer := test.NewSigner(group, []byte("malleability"))
	key := signer.PublicKey()
	prehash := hash.SHA256([]byte("both halves verify"))
	sig := signer.Sign(prehash).Plain()

	flipped := ecdsa.Signature{
		R: group.NewScalar().Set(sig.R),
		S: group.NewScalar().Set(sig.S).Negate(),
	}

	// Both s and n-s satisfy the verification equation.
	require.NoError(t, key.Verify(sig, prehash))
	require.NoError(t, key.Verify(flipped, prehash))

	// Exactly one of the two is low-s, and Normalize is idempotent.
	require.NotEqual(t, sig.IsLowS(), flipped.IsLowS())
	norm, _ := sig.Normalize()
	require.True(t, norm.IsLowS())
	again, changed := norm.Normalize()
	require.False(t, changed)
	require.True(t, again.S.Equal(norm.S))

	// Trial recovery only ever returns the normalized form.
	rec, err := ecdsa.TrialRecover(key, prehash, flipped)
	require.NoError(t, err)
	require.True(t, rec.IsLowS())
}

func TestNewSignatureRejectsZero(t *testing.T) {
	_, err := ecdsa.NewSignature(group.NewScalar(), group.NewScalar())
	require.ErrorIs(t, err, ecdsa.ErrInvalidScalar)
}
