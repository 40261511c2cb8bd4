package padkey

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"

	"github.com/markkurossi/uvmac"
)

// expandTLS13 is the HKDF-Expand step of RFC 5869 in its TLS 1.3 framing:
// repeated HMAC-SHA-256 over (previous block, info, counter). Adapted
// from crypto/hkdf's ExpandTLS13, unchanged in algorithm.
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

// HKDFStream is a uvmac.PadKeyStream backed by a single HKDF-Expand call:
// a pseudorandom key and an info label deterministically expand to length
// 64-bit words, generated once at construction and served word by word.
// Two peers who share (prk, info, length) derive the identical stream
// without exchanging it.
type HKDFStream struct {
	words  []uint64
	cursor int
}

// NewHKDFStream expands prk (the HKDF pseudorandom key, e.g. the output of
// a threshold key ceremony) under info into length fresh words.
func NewHKDFStream(prk, info []byte, length int) *HKDFStream {
	raw := make([]byte, 8*length)
	expandTLS13(prk, info, raw)

	words := make([]uint64, length)
	for i := range words {
		words[i] = binary.BigEndian.Uint64(raw[8*i:])
	}
	return &HKDFStream{words: words}
}

// Next implements uvmac.PadKeyStream.
func (s *HKDFStream) Next() (uint64, error) {
	if s.cursor >= len(s.words) {
		return 0, uvmac.ErrPadKeyExhausted
	}
	w := s.words[s.cursor]
	s.cursor++
	return w, nil
}
