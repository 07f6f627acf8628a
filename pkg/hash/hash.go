// Package hash provides the message prehash functions accepted by the
// signature entry points. Every function returns exactly 32 bytes, the
// width verification and recovery require.
package hash

import (
	"crypto/sha256"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/sha3"
)

// Size of every prehash, in bytes.
const Size = 32

// Prehash maps a message to its 32-byte digest.
type Prehash func(msg []byte) []byte

// SHA256 is the default prehash, matching the common "sign the SHA-256 of
// the message" convention.
func SHA256(msg []byte) []byte {
	h := sha256.Sum256(msg)
	return h[:]
}

// SHA3 prehashes with SHA3-256.
func SHA3(msg []byte) []byte {
	h := sha3.Sum256(msg)
	return h[:]
}

// Blake3 prehashes with BLAKE3.
func Blake3(msg []byte) []byte {
	h := blake3.Sum256(msg)
	return h[:]
}
