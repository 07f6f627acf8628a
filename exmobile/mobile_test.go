package mobile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taurusgroup/p256-ecdsa/internal/test"
	"github.com/taurusgroup/p256-ecdsa/pkg/hash"
	"github.com/taurusgroup/p256-ecdsa/pkg/math/curve"
)

func TestVerifyRecover(t *testing.T) {
	signer := test.NewSigner(curve.P256{}, []byte("mobile"))
	pub := signer.PublicKey().SEC1()
	msg := []byte("mobile payload")
	prehash := hash.SHA256(msg)
	rec := signer.Sign(prehash)

	l := NewRecoverLib()
	require.NoError(t, l.Verify(pub, rec.Plain().Bytes(), prehash))
	require.NoError(t, l.VerifyMessage(pub, rec.Plain().Bytes(), msg))

	recovered, err := l.Recover(rec.Bytes(), prehash)
	require.NoError(t, err)
	require.Equal(t, pub, recovered)

	full, err := l.TrialRecover(pub, prehash, rec.Plain().Bytes())
	require.NoError(t, err)
	require.Len(t, full, 65)

	addr, err := l.Address(rec.Bytes(), prehash)
	require.NoError(t, err)
	require.Equal(t, "0x", addr[:2])
}

func TestKeyringPersistence(t *testing.T) {
	alice := test.NewSigner(curve.P256{}, []byte("alice"))
	bob := test.NewSigner(curve.P256{}, []byte("bob"))

	l := NewRecoverLib()
	require.NoError(t, l.AddKey("alice", alice.PublicKey().SEC1()))
	require.NoError(t, l.AddKey("bob", bob.PublicKey().SEC1()))

	path := filepath.Join(t.TempDir(), "keyring.cbor")
	require.NoError(t, l.SaveKeyring(path))

	restored := NewRecoverLib()
	require.NoError(t, restored.LoadKeyring(path))

	prehash := hash.SHA256([]byte("anonymous signature"))
	sig := bob.Sign(prehash).Plain().Bytes()

	id, full, err := restored.Attribute(prehash, sig)
	require.NoError(t, err)
	require.Equal(t, "bob", id)

	recovered, err := restored.Recover(full, prehash)
	require.NoError(t, err)
	require.Equal(t, bob.PublicKey().SEC1(), recovered)
}
