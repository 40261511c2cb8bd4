package uvmac

import "math/bits"

// l3Key holds the finalizer's evaluation point: two 64-bit words, each
// rejection-sampled below p64 = 2^64-257 by the key scheduler.
type l3Key struct {
	k1, k2 uint64
}

// p64 is the finalizer's modulus, 2^64-257. It does not fit as a positive
// int64 literal, so it is built from the all-ones word.
const p64 = ^uint64(0) - 256

// d127by64 is the divisor 2^64-2^32 used to split a 127-bit value into a
// quotient and remainder.
const d127by64 = uint64(0xFFFFFFFF00000000)

// l3hash is the L3 finalizer: it folds the poly layer's 127-bit state plus
// the message length down to a single 64-bit digest.
//
//  1. Reduce (p + lenBits) modulo p127.
//  2. Split the result as q*d127by64 + r.
//  3. Add the l3 key words to q and r, each modulo p64.
//  4. Return their product modulo p64.
func l3hash(p poly127, lenBits uint64, k l3Key) uint64 {
	r := addLenAndReduceP127(p, lenBits)

	q, rem := bits.Div64(r.hi, r.lo, d127by64)

	p1 := addModP64(q, k.k1)
	p2 := addModP64(rem, k.k2)

	return mulModP64(p1, p2)
}

// addLenAndReduceP127 computes (p.hi:p.lo) + (lenBits:0) modulo p127, so
// the length lands in the high limb, folding any overflow past bit 127
// back in via 2^127 = 1 (mod p127).
func addLenAndReduceP127(p poly127, lenBits uint64) poly127 {
	hi, c2 := bits.Add64(p.hi, lenBits, 0)
	lo := p.lo
	var c uint64

	for c2 != 0 || hi&0x8000000000000000 != 0 {
		hi &^= 0x8000000000000000
		lo, c = bits.Add64(lo, 1, 0)
		hi, c2 = bits.Add64(hi, 0, c)
	}

	if hi == 0x7FFFFFFFFFFFFFFF && lo == ^uint64(0) {
		hi, lo = 0, 0
	}
	return poly127{hi: hi, lo: lo}
}

// addModP64 computes (a+b) mod p64, folding a carry out of bit 64 back in
// via 2^64 = 257 (mod p64).
func addModP64(a, b uint64) uint64 {
	sum, c := bits.Add64(a, b, 0)
	if c != 0 {
		sum, c = bits.Add64(sum, 257, 0)
		if c != 0 {
			sum += 257
		}
	}
	if sum >= p64 {
		sum -= p64
	}
	return sum
}

// mulModP64 computes (a*b) mod p64, folding the high 64 bits of the
// product back in via 2^64 = 257 (mod p64) until they vanish.
func mulModP64(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	for hi != 0 {
		h2, l2 := bits.Mul64(hi, 257)
		var c uint64
		lo, c = bits.Add64(lo, l2, 0)
		hi = h2 + c
	}
	if lo >= p64 {
		lo -= p64
	}
	return lo
}
