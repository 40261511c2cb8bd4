package provisioning

import (
	"crypto/hmac"
	"crypto/sha256"

	"github.com/bnb-chain/tss-lib/v2/ecdsa/keygen"
)

// expandTLS13 is the same HKDF-Expand construction as padkey's, kept as
// its own unexported copy so provisioning has no import-cycle dependency
// on padkey: both are adapted independently from crypto/hkdf's
// ExpandTLS13.
func expandTLS13(pseudorandomKey, info, out []byte) {
	expander := hmac.New(sha256.New, pseudorandomKey)
	counter := []byte{1}

	var prev []byte
	for len(out) > 0 {
		if counter[0] > 1 {
			expander.Reset()
			expander.Write(prev)
		}
		expander.Write(info)
		expander.Write(counter)
		prev = expander.Sum(prev[:0])
		counter[0]++

		n := copy(out, prev)
		out = out[n:]
	}
}

// DeriveShare turns this peer's private DKG share into length bytes of
// uvmac key material: HKDF-Expand keyed by Xi (this peer's never-shared
// share of the threshold ECDSA private key) under label. Two share files
// produced this way by the two ceremony peers, once XORed together by
// whoever holds both, form the actual uvmac user key; neither share alone
// reveals anything about the combined key.
func DeriveShare(save *keygen.LocalPartySaveData, label []byte, length int) []byte {
	out := make([]byte, length)
	expandTLS13(save.Xi.Bytes(), label, out)
	return out
}
