// Package mobile wraps the library in a byte-slice API suitable for
// gomobile bindings: only []byte, string and error cross the boundary.
package mobile

import (
	"log"
	"os"

	"github.com/taurusgroup/p256-ecdsa/internal/eth"
	"github.com/taurusgroup/p256-ecdsa/pkg/ecdsa"
	"github.com/taurusgroup/p256-ecdsa/pkg/hash"
	"github.com/taurusgroup/p256-ecdsa/pkg/keyring"
	"github.com/taurusgroup/p256-ecdsa/pkg/math/curve"
	"github.com/taurusgroup/p256-ecdsa/pkg/party"
)

// RecoverLib exposes verification and recovery over P-256, plus a
// persisted keyring of known signers.
type RecoverLib struct {
	ring *keyring.Keyring
}

func NewRecoverLib() *RecoverLib {
	return &RecoverLib{ring: keyring.New(curve.P256{})}
}

// Verify checks a 64-byte signature over a 32-byte prehash against a SEC1
// public key.
func (l *RecoverLib) Verify(pubSEC1, sig, prehash []byte) error {
	group := curve.P256{}
	key, err := ecdsa.VerifyingKeyFromSEC1(group, pubSEC1)
	if err != nil {
		return err
	}
	decoded, err := ecdsa.SignatureFromBytes(group, sig)
	if err != nil {
		return err
	}
	return key.Verify(decoded, prehash)
}

// VerifyMessage is Verify with the SHA-256 prehash applied to msg.
func (l *RecoverLib) VerifyMessage(pubSEC1, sig, msg []byte) error {
	return l.Verify(pubSEC1, sig, hash.SHA256(msg))
}

// Recover returns the compressed SEC1 key recovered from a 65-byte
// signature and a 32-byte prehash.
func (l *RecoverLib) Recover(sig, prehash []byte) ([]byte, error) {
	rec, err := ecdsa.RecoverableSignatureFromBytes(curve.P256{}, sig)
	if err != nil {
		return nil, err
	}
	key, err := rec.Recover(prehash)
	if err != nil {
		return nil, err
	}
	return key.SEC1(), nil
}

// TrialRecover finds the recovery id for a 64-byte signature known to come
// from the given key, returning the full 65-byte signature.
func (l *RecoverLib) TrialRecover(pubSEC1, prehash, sig []byte) ([]byte, error) {
	group := curve.P256{}
	key, err := ecdsa.VerifyingKeyFromSEC1(group, pubSEC1)
	if err != nil {
		return nil, err
	}
	decoded, err := ecdsa.SignatureFromBytes(group, sig)
	if err != nil {
		return nil, err
	}
	rec, err := ecdsa.TrialRecover(key, prehash, decoded)
	if err != nil {
		return nil, err
	}
	return rec.Bytes(), nil
}

// Address derives the Ethereum-style address of the key behind a 65-byte
// signature.
func (l *RecoverLib) Address(sig, prehash []byte) (string, error) {
	pubSEC1, err := l.Recover(sig, prehash)
	if err != nil {
		return "", err
	}
	key, err := ecdsa.VerifyingKeyFromSEC1(curve.P256{}, pubSEC1)
	if err != nil {
		return "", err
	}
	return eth.AddressOf(key), nil
}

// AddKey registers a signer's SEC1 key under an id.
func (l *RecoverLib) AddKey(id string, pubSEC1 []byte) error {
	key, err := ecdsa.VerifyingKeyFromSEC1(curve.P256{}, pubSEC1)
	if err != nil {
		return err
	}
	return l.ring.Add(party.ID(id), key)
}

// Attribute resolves which registered signer produced a 64-byte signature,
// returning its id and the completed 65-byte signature.
func (l *RecoverLib) Attribute(prehash, sig []byte) (string, []byte, error) {
	decoded, err := ecdsa.SignatureFromBytes(curve.P256{}, sig)
	if err != nil {
		return "", nil, err
	}
	id, rec, err := l.ring.TrialRecoverAny(prehash, decoded)
	if err != nil {
		return "", nil, err
	}
	return string(id), rec.Bytes(), nil
}

// SaveKeyring writes the keyring to a file.
func (l *RecoverLib) SaveKeyring(path string) error {
	data, err := l.ring.MarshalBinary()
	if err != nil {
		return err
	}
	return writeFile(data, path)
}

// LoadKeyring replaces the keyring with the one stored in a file.
func (l *RecoverLib) LoadKeyring(path string) error {
	data, err := loadFile(path)
	if err != nil {
		return err
	}
	ring := keyring.New(curve.P256{})
	if err := ring.UnmarshalBinary(data); err != nil {
		return err
	}
	l.ring = ring
	return nil
}

func writeFile(data []byte, f string) error {
	if err := os.WriteFile(f, data, 0644); err != nil {
		log.Println("Error", err)
		return err
	}
	return nil
}

func loadFile(f string) ([]byte, error) {
	data, err := os.ReadFile(f)
	if err != nil {
		log.Println("Error", err)
	}
	return data, err
}
