package ecdsa

import "errors"

// Errors returned by signature decoding, verification and recovery. They
// deliberately carry no scalar or key material, so failures can be logged
// without leaking cryptographic state.
var (
	// ErrInvalidLength indicates a signature or prehash of the wrong byte count.
	ErrInvalidLength = errors.New("ecdsa: invalid length")
	// ErrInvalidScalar indicates a signature component that is zero or not a
	// reduced scalar.
	ErrInvalidScalar = errors.New("ecdsa: r and s must be in [1, n-1]")
	// ErrUnsupportedRecoveryID indicates a recovery id outside {0, 1}; the
	// overflow ids 2 and 3 are deliberately unsupported.
	ErrUnsupportedRecoveryID = errors.New("ecdsa: unsupported recovery id")
	// ErrPointNotOnCurve indicates an x-coordinate with no lift to the curve.
	ErrPointNotOnCurve = errors.New("ecdsa: x-coordinate is not on the curve")
	// ErrVerificationFailed indicates the verification equation did not hold.
	ErrVerificationFailed = errors.New("ecdsa: signature verification failed")
	// ErrNoValidRecoveryID indicates trial recovery exhausted both candidate
	// ids without a match.
	ErrNoValidRecoveryID = errors.New("ecdsa: no valid recovery id found")
	// ErrInvalidPoint indicates a public key encoding that is not a valid
	// non-identity curve point.
	ErrInvalidPoint = errors.New("ecdsa: invalid public key point")
)
