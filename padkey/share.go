package padkey

import "crypto/rand"

// Share is one additive share of a stream of pad-key words: the word-wise
// sum of every custodian's Share reconstructs the real stream, so any
// single share by itself is uniformly random and reveals nothing about
// it. This follows the same additive-sharing shape as crypto/spdz's
// Share/AddShare, moved from big.Int mod P-256 to the ℤ/2⁶⁴ ring uvmac's
// own tag-combine addition already uses.
type Share struct {
	Words []uint64
}

// Split produces two shares of stream whose word-wise sum reconstructs
// it: a uniformly random mask and stream-minus-mask.
func Split(stream []uint64) (a, b *Share, err error) {
	mask := make([]uint64, len(stream))
	if err := randomWords(mask); err != nil {
		return nil, nil, err
	}
	other := make([]uint64, len(stream))
	for i, w := range stream {
		other[i] = w - mask[i]
	}
	return &Share{Words: mask}, &Share{Words: other}, nil
}

// Combine reconstructs the shared stream by adding two shares word-wise
// modulo 2^64. It panics if the shares have different lengths: that is a
// caller bug, not a runtime condition to recover from.
func Combine(a, b *Share) []uint64 {
	if len(a.Words) != len(b.Words) {
		panic("padkey: share length mismatch")
	}
	out := make([]uint64, len(a.Words))
	for i := range out {
		out[i] = a.Words[i] + b.Words[i]
	}
	return out
}

func randomWords(words []uint64) error {
	buf := make([]byte, 8*len(words))
	if _, err := rand.Read(buf); err != nil {
		return err
	}
	for i := range words {
		var w uint64
		for j := 0; j < 8; j++ {
			w = w<<8 | uint64(buf[8*i+j])
		}
		words[i] = w
	}
	return nil
}
