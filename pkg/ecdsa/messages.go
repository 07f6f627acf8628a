package ecdsa

import (
	"github.com/taurusgroup/p256-ecdsa/pkg/hash"
)

// Message-level wrappers applying the default SHA-256 prehash. The
// prehash-based entry points remain the primitive: anything other than a
// 32-byte digest of the message must go through those directly.

// VerifyMessage verifies the signature over sha256(msg).
func (vk *VerifyingKey) VerifyMessage(sig Signature, msg []byte) error {
	return vk.Verify(sig, hash.SHA256(msg))
}

// RecoverMessage recovers the public key from a signature over sha256(msg).
func (rs RecoverableSignature) RecoverMessage(msg []byte) (*VerifyingKey, error) {
	return rs.Recover(hash.SHA256(msg))
}

// TrialRecoverMessage runs TrialRecover over sha256(msg).
func TrialRecoverMessage(public *VerifyingKey, msg []byte, sig Signature) (RecoverableSignature, error) {
	return TrialRecover(public, hash.SHA256(msg), sig)
}
