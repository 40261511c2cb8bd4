package uvmac

import "fmt"

// keyCursor walks a user-key byte string 8 bytes at a time, consuming it
// sequentially as a sequence of big-endian 64-bit words.
type keyCursor struct {
	key []byte
	off int
}

// next returns the next big-endian 64-bit word, or false if fewer than 8
// bytes remain.
func (k *keyCursor) next() (uint64, bool) {
	if len(k.key)-k.off < 8 {
		return 0, false
	}
	w := loadKeyWord(k.key[k.off:])
	k.off += 8
	return w, true
}

// SetKey expands userKey into the NH key table, the poly key(s) and the
// l3 key(s). It clears the first-block flag on success. On failure the
// context must not be reused before a successful SetKey call.
func (c *Context) SetKey(userKey []byte) error {
	cur := keyCursor{key: userKey}

	nh := make([]uint64, len(c.nh))
	for i := range nh {
		w, ok := cur.next()
		if !ok {
			return fmt.Errorf("uvmac: set_key: nh table word %d: %w", i,
				ErrInsufficientKeyMaterial)
		}
		nh[i] = w
	}

	halves := len(c.polyTmp)
	pKey := make([]polyKey, halves)
	for h := range pKey {
		hiWord, ok := cur.next()
		if !ok {
			return fmt.Errorf("uvmac: set_key: poly key %d.hi: %w", h,
				ErrInsufficientKeyMaterial)
		}
		loWord, ok := cur.next()
		if !ok {
			return fmt.Errorf("uvmac: set_key: poly key %d.lo: %w", h,
				ErrInsufficientKeyMaterial)
		}
		pKey[h] = polyKey{hi: hiWord & polyKeyMask, lo: loWord & polyKeyMask}
	}

	lKey := make([]l3Key, halves)
	for h := range lKey {
		k1, err := cur.rejectionSample()
		if err != nil {
			return fmt.Errorf("uvmac: set_key: l3 key %d.k1: %w", h, err)
		}
		k2, err := cur.rejectionSample()
		if err != nil {
			return fmt.Errorf("uvmac: set_key: l3 key %d.k2: %w", h, err)
		}
		lKey[h] = l3Key{k1: k1, k2: k2}
	}

	c.nh = nh
	c.polyKey = pKey
	c.l3Key = lKey
	c.polyTmp = make([]poly127, halves)
	for h := range c.polyTmp {
		c.polyTmp[h] = poly127{hi: pKey[h].hi, lo: pKey[h].lo}
	}
	c.firstBlockProcessed = false
	return nil
}

// rejectionSample draws words from the cursor until one below p64 is
// found. A word at or above p64 is discarded and another is drawn; this is
// why recommended user-key lengths leave headroom beyond the minimum word
// count.
func (k *keyCursor) rejectionSample() (uint64, error) {
	for {
		w, ok := k.next()
		if !ok {
			return 0, ErrInsufficientKeyMaterial
		}
		if w < p64 {
			return w, nil
		}
	}
}
