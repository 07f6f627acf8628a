package test

import "encoding/hex"

// Recovery vector: a P-256 recoverable signature with a known signer,
// prehashed with SHA-256.
var (
	// VectorPK is the signer's public key, SEC1 compressed.
	VectorPK = mustHex("02c156afee1ce52ef83a0dd168c1144eb20008697e6664fa132ba23c128cce8055")
	// VectorSig is r || s || v, 65 bytes.
	VectorSig = mustHex("63a60006c38cbfb000b352956bb5cf02b3ad1283b65fdfc56a000a0ce42e698142905b5f2f305315882e7cc7c76a7c36ea804e5d1d7511b74853cd98bd2c809101")
	// VectorMsg is the signed message; the prehash is sha256(VectorMsg).
	VectorMsg = mustHex("0a000090b5ab205c6974c9ea841be688864633dc9ca8a357843eeacf2314649965fe22070010a5d4e84502000001000000010000003ce9390c8bd3361b348592b2c3008ece6c530e415821abb9759215e8dc83f0490e70b9cbbbcd07a80821fd7dfca9c93ae922688b37a484d5fd68dedcc2cabaa5")
)

// Verification vector (Wycheproof tcId 304): same key, already low-s.
var (
	WycheproofMsg = mustHex("313233343030")
	WycheproofR   = mustHex("784eea04d4a9e68260ba55b39277b2221db3793e47ec5c9301e43b45c7285792")
	WycheproofS   = mustHex("16c4c411c20aa62c314ad383d00aa1e6c145641d7ce10e52075fb10e7d8bec2b")
)

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}
