package main

import (
	"log"

	"github.com/taurusgroup/p256-ecdsa/internal/eth"
	"github.com/taurusgroup/p256-ecdsa/internal/test"
	"github.com/taurusgroup/p256-ecdsa/pkg/ecdsa"
	"github.com/taurusgroup/p256-ecdsa/pkg/hash"
	"github.com/taurusgroup/p256-ecdsa/pkg/keyring"
	"github.com/taurusgroup/p256-ecdsa/pkg/math/curve"
)

// Demonstrates the full flow: verify a signature against a known key,
// recover the key from a 65-byte signature, find a lost recovery id, and
// attribute an anonymous signature through a keyring.
func main() {
	group := curve.P256{}
	signer := test.NewSigner(group, []byte("example seed"))
	key := signer.PublicKey()

	msg := []byte("ECDSA proves knowledge of a secret number in the context of a single message")
	prehash := hash.SHA256(msg)
	rec := signer.Sign(prehash)

	if err := key.Verify(rec.Plain(), prehash); err != nil {
		log.Fatal(err)
	}
	log.Printf("verified, sig:%x", rec.Plain().Bytes())

	recovered, err := rec.Recover(prehash)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("recovered key:%x addr:%s", recovered.SEC1(), eth.AddressOf(recovered))

	// A 64-byte signature with the id stripped: trial recovery finds it.
	found, err := ecdsa.TrialRecover(key, prehash, rec.Plain())
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("recovery id:%d", found.V.Byte())

	ring := keyring.New(group)
	if err := ring.Add("example", key); err != nil {
		log.Fatal(err)
	}
	id, _, err := ring.TrialRecoverAny(prehash, rec.Plain())
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("signed by party:%s", id)
}
