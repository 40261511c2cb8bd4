package uvmac

import (
	"encoding/binary"
	"math/bits"
)

// uint128 holds a 128-bit unsigned integer as two 64-bit limbs.
type uint128 struct {
	hi, lo uint64
}

// mulWide computes the unsigned 64x64->128 product x*y.
func mulWide(x, y uint64) uint128 {
	hi, lo := bits.Mul64(x, y)
	return uint128{hi: hi, lo: lo}
}

// add128 computes the unsigned 128-bit sum a+b, discarding any carry out of
// bit 127.
func add128(a, b uint128) uint128 {
	lo, c := bits.Add64(a.lo, b.lo, 0)
	hi, _ := bits.Add64(a.hi, b.hi, c)
	return uint128{hi: hi, lo: lo}
}

// loadWord reads 8 bytes at b as a 64-bit integer in the byte order p
// selects. The default is little-endian; the PreferBigEndian build
// parameter flips it, and the two orders produce different tags for the
// same bytes.
func (p Params) loadWord(b []byte) uint64 {
	if p.PreferBigEndian {
		return binary.BigEndian.Uint64(b)
	}
	return binary.LittleEndian.Uint64(b)
}

// loadKeyWord reads 8 bytes of user-key material. User-key bytes are
// always interpreted as big-endian 64-bit words, independent of
// PreferBigEndian, which only governs message loads.
func loadKeyWord(b []byte) uint64 {
	return binary.BigEndian.Uint64(b)
}
