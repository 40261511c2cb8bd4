package uvmac

import "fmt"

// Context is long-lived per-key state that owns the NH key table, the poly
// key(s), the l3 key(s), the running poly accumulator(s), and a
// first-block flag. A Context is fixed-size once built by NewContext and
// SetKey, and is single-threaded: concurrent calls on the same Context
// race.
type Context struct {
	params Params

	// nh is the NH key table, nhTableWords() words long.
	nh []uint64

	// polyKey, l3Key and polyTmp are indexed by tag half: length 1 for a
	// 64-bit tag, 2 for a 128-bit tag.
	polyKey []polyKey
	l3Key   []l3Key
	polyTmp []poly127

	// firstBlockProcessed is false for a fresh context and true once any
	// full block has been absorbed by Update.
	firstBlockProcessed bool
}

// NewContext allocates an unkeyed Context for the given parameters. Call
// SetKey before Update/FinalizeVHash/Finalize.
func NewContext(p Params) *Context {
	halves := p.tagHalves()
	return &Context{
		params:  p,
		nh:      make([]uint64, p.nhTableWords()),
		polyKey: make([]polyKey, halves),
		l3Key:   make([]l3Key, halves),
		polyTmp: make([]poly127, halves),
	}
}

// Abort resets polytmp to polykey and clears the first-block flag. It
// never fails.
func (c *Context) Abort() {
	for h := range c.polyTmp {
		c.polyTmp[h] = poly127{hi: c.polyKey[h].hi, lo: c.polyKey[h].lo}
	}
	c.firstBlockProcessed = false
}

// Update absorbs zero or more full NH blocks. message must be a positive
// multiple of the context's BlockBytes; anything else fails with
// ErrInvalidUpdateLength and leaves the context untouched.
func (c *Context) Update(message []byte) error {
	b := c.params.BlockBytes
	if len(message) == 0 || len(message)%b != 0 {
		return fmt.Errorf("uvmac: update length %d: %w", len(message),
			ErrInvalidUpdateLength)
	}
	for off := 0; off < len(message); off += b {
		c.absorbBlock(message[off : off+b])
	}
	return nil
}

// absorbBlock runs the fresh/running state transition for a single full
// block, across every tag half.
func (c *Context) absorbBlock(block []byte) {
	for h := range c.polyTmp {
		m := mask62(c.params.nh(block, c.nh[2*h:]))
		if !c.firstBlockProcessed {
			sum := add128(uint128{hi: c.polyKey[h].hi, lo: c.polyKey[h].lo}, m)
			c.polyTmp[h] = poly127{hi: sum.hi, lo: sum.lo}
		} else {
			c.polyTmp[h] = c.polyTmp[h].step(c.polyKey[h], m)
		}
	}
	c.firstBlockProcessed = true
}

// FinalizeVHash absorbs a final tail of tailLen bytes (0 <= tailLen <
// BlockBytes) and returns the l3hash digest for each tag half. It then
// resets the context exactly as Abort does.
//
// tail need only have tailLen valid bytes; FinalizeVHash does its own
// zero-padding to the next 16-byte boundary before running NH, so callers
// do not need to pre-pad it themselves.
func (c *Context) FinalizeVHash(tail []byte, tailLen int) []uint64 {
	out := make([]uint64, len(c.polyTmp))

	var padded []byte
	var haveTail bool
	if tailLen > 0 {
		padded = make([]byte, ((tailLen+15)/16)*16)
		copy(padded, tail[:tailLen])
		haveTail = true
	}

	for h := range c.polyTmp {
		var state poly127
		switch {
		case !haveTail && c.firstBlockProcessed:
			state = c.polyTmp[h]
		case !haveTail && !c.firstBlockProcessed:
			state = poly127{hi: c.polyKey[h].hi, lo: c.polyKey[h].lo}
		case haveTail && c.firstBlockProcessed:
			m := mask62(c.params.nh(padded, c.nh[2*h:]))
			state = c.polyTmp[h].step(c.polyKey[h], m)
		default: // haveTail && !c.firstBlockProcessed
			m := mask62(c.params.nh(padded, c.nh[2*h:]))
			sum := add128(uint128{hi: c.polyKey[h].hi, lo: c.polyKey[h].lo}, m)
			state = poly127{hi: sum.hi, lo: sum.lo}
		}
		out[h] = l3hash(state, uint64(8*tailLen), c.l3Key[h])
	}

	c.Abort()
	return out
}

// PadKeyStream is the caller-owned source of one-time-pad material: a
// sequence of fresh, uniformly random 64-bit words with a read cursor the
// caller tracks. It is modeled as an iterator rather than an (array,
// cursor) pair passed by the library, so that any storage or generation
// scheme can back it.
type PadKeyStream interface {
	// Next returns the next pad-key word and advances the cursor by one.
	// It returns ErrPadKeyExhausted if the cursor has reached the
	// stream's declared length.
	Next() (uint64, error)
}

// Finalize runs FinalizeVHash and adds one fresh pad-key word per tag
// half, modulo 2^64 (one-time-pad combination). It resets the context
// exactly as FinalizeVHash/Abort do, even on a PadKeyExhausted failure
// partway through a 128-bit tag's second half.
func (c *Context) Finalize(tail []byte, tailLen int, pad PadKeyStream) ([]uint64, error) {
	vhash := c.FinalizeVHash(tail, tailLen)
	tag := make([]uint64, len(vhash))
	for h, v := range vhash {
		w, err := pad.Next()
		if err != nil {
			return nil, fmt.Errorf("uvmac: finalize: %w", err)
		}
		tag[h] = v + w
	}
	return tag, nil
}
