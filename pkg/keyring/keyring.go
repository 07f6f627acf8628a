// Package keyring tracks the verifying keys of known signers, so that an
// id-less signature can be attributed to whoever produced it.
package keyring

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/taurusgroup/p256-ecdsa/pkg/ecdsa"
	"github.com/taurusgroup/p256-ecdsa/pkg/math/curve"
	"github.com/taurusgroup/p256-ecdsa/pkg/party"
)

var (
	// ErrDuplicateID indicates an id already present in the ring.
	ErrDuplicateID = errors.New("keyring: duplicate party id")
	// ErrUnknownSigner indicates that no registered key matches a signature.
	ErrUnknownSigner = errors.New("keyring: signature matches no registered key")
)

// Keyring maps party ids to verifying keys. It is not safe for concurrent
// mutation; a fully populated ring may be read from any number of
// goroutines.
type Keyring struct {
	group curve.Curve
	keys  map[party.ID]*ecdsa.VerifyingKey
	// byPoint indexes registered keys by their compressed SEC1 encoding.
	byPoint map[string]party.ID
}

func New(group curve.Curve) *Keyring {
	return &Keyring{
		group:   group,
		keys:    make(map[party.ID]*ecdsa.VerifyingKey),
		byPoint: make(map[string]party.ID),
	}
}

// Add registers a key under the given id.
func (k *Keyring) Add(id party.ID, key *ecdsa.VerifyingKey) error {
	if key == nil {
		return ecdsa.ErrInvalidPoint
	}
	if _, ok := k.keys[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	k.keys[id] = key
	k.byPoint[string(key.SEC1())] = id
	return nil
}

// Lookup returns the key registered under id, if any.
func (k *Keyring) Lookup(id party.ID) (*ecdsa.VerifyingKey, bool) {
	key, ok := k.keys[id]
	return key, ok
}

// IDs returns the registered ids, sorted.
func (k *Keyring) IDs() party.IDSlice {
	ids := make([]party.ID, 0, len(k.keys))
	for id := range k.keys {
		ids = append(ids, id)
	}
	return party.NewIDSlice(ids)
}

func (k *Keyring) Len() int {
	return len(k.keys)
}

// TrialRecoverAny attributes an id-less signature to a registered signer.
// It normalizes the signature, recovers a candidate key for each recovery
// id, and returns the first registered signer whose key both matches the
// recovered one and verifies the normalized signature.
func (k *Keyring) TrialRecoverAny(prehash []byte, sig ecdsa.Signature) (party.ID, ecdsa.RecoverableSignature, error) {
	if sig.R == nil || sig.S == nil {
		return "", ecdsa.RecoverableSignature{}, ecdsa.ErrInvalidScalar
	}
	normalized, _ := sig.Normalize()

	for v := ecdsa.RecoveryID(0); v <= 1; v++ {
		rec := ecdsa.NewRecoverableSignature(normalized, v)
		recovered, err := rec.Recover(prehash)
		if err != nil {
			continue
		}
		id, ok := k.byPoint[string(recovered.SEC1())]
		if !ok {
			continue
		}
		if k.keys[id].Verify(normalized, prehash) != nil {
			continue
		}
		return id, rec, nil
	}
	return "", ecdsa.RecoverableSignature{}, ErrUnknownSigner
}

// serialized is the CBOR wire form of a keyring: the curve name and each
// key in compressed SEC1 form.
type serialized struct {
	Curve string              `cbor:"curve"`
	Keys  map[party.ID][]byte `cbor:"keys"`
}

func (k *Keyring) MarshalBinary() ([]byte, error) {
	out := serialized{
		Curve: k.group.Name(),
		Keys:  make(map[party.ID][]byte, len(k.keys)),
	}
	for id, key := range k.keys {
		out.Keys[id] = key.SEC1()
	}
	return cbor.Marshal(out)
}

func (k *Keyring) UnmarshalBinary(data []byte) error {
	var in serialized
	if err := cbor.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.Curve != k.group.Name() {
		return fmt.Errorf("keyring: curve mismatch: got %q, want %q", in.Curve, k.group.Name())
	}
	keys := make(map[party.ID]*ecdsa.VerifyingKey, len(in.Keys))
	byPoint := make(map[string]party.ID, len(in.Keys))
	for id, sec1 := range in.Keys {
		key, err := ecdsa.VerifyingKeyFromSEC1(k.group, sec1)
		if err != nil {
			return fmt.Errorf("keyring: key for %s: %w", id, err)
		}
		keys[id] = key
		byPoint[string(key.SEC1())] = id
	}
	k.keys = keys
	k.byPoint = byPoint
	return nil
}
