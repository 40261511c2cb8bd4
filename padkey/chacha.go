package padkey

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/chacha20"

	"github.com/markkurossi/uvmac"
)

// ChaChaStream is a uvmac.PadKeyStream backed by a ChaCha20 keystream: a
// 256-bit key and a 96-bit nonce expand, via golang.org/x/crypto/chacha20,
// into as many fresh 64-bit words as length declares. It never allocates
// the whole stream; words are drawn 8 bytes at a time as the cipher
// advances, the same incremental-cipher idiom cmd/fs-tool uses for
// chacha20poly1305 block encryption, generalized from an AEAD to a bare
// keystream generator.
type ChaChaStream struct {
	cipher *chacha20.Cipher
	cursor uint64
	length uint64
}

// NewChaChaStream builds a stream of length 64-bit words from key (32
// bytes) and nonce (12 bytes). Interoperating senders and receivers must
// derive the same (key, nonce) pair and agree on length, and must never
// reuse a (key, nonce) pair across two streams.
func NewChaChaStream(key, nonce []byte, length uint64) (*ChaChaStream, error) {
	c, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		return nil, fmt.Errorf("padkey: chacha20 stream: %w", err)
	}
	return &ChaChaStream{cipher: c, length: length}, nil
}

// Next implements uvmac.PadKeyStream.
func (s *ChaChaStream) Next() (uint64, error) {
	if s.cursor >= s.length {
		return 0, uvmac.ErrPadKeyExhausted
	}
	var zero, word [8]byte
	s.cipher.XORKeyStream(word[:], zero[:])
	s.cursor++
	return binary.BigEndian.Uint64(word[:]), nil
}
