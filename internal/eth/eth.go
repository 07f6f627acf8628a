// Package eth converts between this module's signatures and the compact
// formats used by Ethereum-style tooling, and derives addresses for
// recovered keys.
package eth

import (
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/taurusgroup/p256-ecdsa/pkg/ecdsa"
	"github.com/taurusgroup/p256-ecdsa/pkg/math/curve"
)

const (
	// compactSigSize is the size of a compact signature.  It consists of a
	// compact signature recovery code byte followed by the R and S components
	// serialized as 32-byte big-endian values. 1+32*2 = 65.
	compactSigSize = 65

	// compactSigMagicOffset is a value used when creating the compact signature
	// recovery code inherited from Bitcoin and has no meaning, but has been
	// retained for compatibility.  For historical purposes, it was originally
	// picked to avoid a binary representation that would allow compact
	// signatures to be mistaken for other components.
	compactSigMagicOffset = 27

	// compactSigCompPubKey is a value used when creating the compact signature
	// recovery code to indicate the original public key was compressed.
	compactSigCompPubKey = 4

	// RecoveryIDOffset points to the byte offset within the signature that contains the recovery id.
	RecoveryIDOffset = 64
)

// Address derives the Ethereum-style address for a public key given by its
// affine coordinates: the low 20 bytes of keccak256(x || y).
func Address(x, y []byte) string {
	hash := crypto.Keccak256(x, y)
	return fmt.Sprintf("0x%x", hash[len(hash)-20:])
}

// AddressOf derives the address of a verifying key.
func AddressOf(key *ecdsa.VerifyingKey) string {
	p := key.Point()
	return Address(p.XBytes(), p.YBytes())
}

// Sign converts signature components to the Ethereum wire layout
// R (32) || S (32) || V (1) with a raw recovery id.
func Sign(r, s []byte, v byte) ([]byte, error) {
	sig := sigCompact(r, s, v, false)
	// Convert to Ethereum signature format with 'recovery id' v at the end.
	ve := sig[0] - compactSigMagicOffset
	copy(sig, sig[1:])
	sig[RecoveryIDOffset] = ve
	return sig, nil
}

// ToCompact encodes a recoverable signature in the Bitcoin-inherited
// compact layout <27+v [+4]> || R || S.
func ToCompact(rec ecdsa.RecoverableSignature, isCompressedKey bool) []byte {
	sig := rec.Signature.Bytes()
	return sigCompact(sig[:32], sig[32:], rec.V.Byte(), isCompressedKey)
}

// FromCompact decodes the compact layout back into a recoverable
// signature, reporting whether the compressed-key bit was set.
func FromCompact(data []byte) (ecdsa.RecoverableSignature, bool, error) {
	if len(data) != compactSigSize {
		return ecdsa.RecoverableSignature{}, false, ecdsa.ErrInvalidLength
	}
	code := data[0]
	if code < compactSigMagicOffset {
		return ecdsa.RecoverableSignature{}, false, ecdsa.ErrUnsupportedRecoveryID
	}
	code -= compactSigMagicOffset
	compressed := code&compactSigCompPubKey != 0
	code &^= compactSigCompPubKey

	wire := make([]byte, 0, compactSigSize)
	wire = append(wire, data[1:]...)
	wire = append(wire, code)
	rec, err := ecdsa.RecoverableSignatureFromBytes(curve.P256{}, wire)
	if err != nil {
		return ecdsa.RecoverableSignature{}, false, err
	}
	return rec, compressed, nil
}

func sigCompact(r, s []byte, v byte, isCompressedKey bool) []byte {
	compactSigRecoveryCode := byte(compactSigMagicOffset) + v
	// Output <compactSigRecoveryCode><32-byte R><32-byte S>.
	if isCompressedKey {
		compactSigRecoveryCode += compactSigCompPubKey
	}

	var b [compactSigSize]byte
	b[0] = compactSigRecoveryCode
	copy(b[1:33], r)
	copy(b[33:65], s)
	return b[:]
}

// SigToPub recovers the uncompressed public key 0x04 || X || Y from a
// 32-byte hash and an R || S || V signature.
func SigToPub(hash, sig []byte) ([]byte, error) {
	rec, err := ecdsa.RecoverableSignatureFromBytes(curve.P256{}, sig)
	if err != nil {
		return nil, err
	}
	key, err := rec.Recover(hash)
	if err != nil {
		return nil, err
	}
	p := key.Point()
	pub := make([]byte, 0, 65)
	pub = append(pub, 4)
	pub = append(pub, p.XBytes()...)
	pub = append(pub, p.YBytes()...)
	return pub, nil
}
