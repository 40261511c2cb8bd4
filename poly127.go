package uvmac

import "math/bits"

// poly127 is a 127-bit integer represented as (hi, lo) with hi < 2^63.
// It is not necessarily reduced below p127 = 2^127-1; that final reduction
// happens only in l3hash.
type poly127 struct {
	hi, lo uint64
}

// polyKey holds the Carter-Wegman evaluation point for the poly layer: two
// 64-bit words, each with every 32-bit lane masked to 29 bits by the key
// scheduler.
type polyKey struct {
	hi, lo uint64
}

// polyKeyMask clears the top 3 bits of each 32-bit lane so that every lane
// fits in 29 bits.
const polyKeyMask = 0x1FFFFFFF1FFFFFFF

// step computes a' = (a*k + m) mod p127. Precondition: a.hi < 2^63, k's
// lanes are already masked, and m.hi < 2^62 (mask62's postcondition).
// Postcondition: the result's hi is again < 2^63.
func (a poly127) step(k polyKey, m uint128) poly127 {
	p0, p1, p2, p3 := mul254(a.hi, a.lo, k.hi, k.lo)

	// Add m into the low 127 bits of the product.
	var c uint64
	p0, c = bits.Add64(p0, m.lo, 0)
	p1, c = bits.Add64(p1, m.hi, c)
	p2, c = bits.Add64(p2, 0, c)
	p3, _ = bits.Add64(p3, 0, c)

	return reduceP127Wide(p0, p1, p2, p3)
}

// mul254 computes the exact product of two values each stored as (hi, lo)
// limb pairs, returning the four 64-bit limbs of the up-to-254-bit result
// (p0 least significant, p3 most). This is schoolbook long multiplication
// built from mulWide/add128.
func mul254(a1, a0, k1, k0 uint64) (p0, p1, p2, p3 uint64) {
	t00 := mulWide(a0, k0)
	t01 := mulWide(a0, k1)
	t10 := mulWide(a1, k0)
	t11 := mulWide(a1, k1)

	p0 = t00.lo

	var c1, c2 uint64
	p1, c1 = bits.Add64(t01.lo, t10.lo, 0)
	p1, c2 = bits.Add64(p1, t00.hi, 0)
	carryInto2 := c1 + c2

	var c3, c4, c5 uint64
	p2, c3 = bits.Add64(t01.hi, t10.hi, 0)
	p2, c4 = bits.Add64(p2, t11.lo, 0)
	p2, c5 = bits.Add64(p2, carryInto2, 0)
	carryInto3 := c3 + c4 + c5

	p3 = t11.hi + carryInto3
	return
}

// reduceP127Wide reduces the 256-bit value (p3:p2:p1:p0) modulo p127 =
// 2^127-1, using the reduction identity 2^127 = 1 (mod p127): the value is
// folded by splitting it at bit 127 and adding the high part back into the
// low part, repeating until it fits in 127 bits.
func reduceP127Wide(p0, p1, p2, p3 uint64) poly127 {
	for {
		lowHi := p1 & 0x7FFFFFFFFFFFFFFF
		lowLo := p0
		highLo := (p1 >> 63) | (p2 << 1)
		highHi := (p2 >> 63) | (p3 << 1)

		if highLo == 0 && highHi == 0 {
			return normalizeP127(lowHi, lowLo)
		}

		var c uint64
		p0, c = bits.Add64(lowLo, highLo, 0)
		p1, _ = bits.Add64(lowHi, highHi, c)
		p2, p3 = 0, 0
	}
}

// normalizeP127 strips bit 127 if it is set, adding it back in as 1 via
// 2^127 = 1 (mod p127). It does not reduce below p127: a value of exactly
// 2^127-1 is returned unchanged, since callers downstream tolerate any
// value strictly below 2^127 and l3hash does the final reduction.
func normalizeP127(hi, lo uint64) poly127 {
	if hi&0x8000000000000000 != 0 {
		hi &^= 0x8000000000000000
		var c uint64
		lo, c = bits.Add64(lo, 1, 0)
		hi += c
	}
	return poly127{hi: hi, lo: lo}
}
