package uvmac

// Tag computes a full UVMAC tag over message in one call: it builds a
// fresh Context, keys it, streams every full block through Update, and
// finalizes the tail and pad-key combine through Finalize. It is a
// convenience wrapper; long-lived callers who stream a message
// incrementally should drive Context directly.
func Tag(p Params, userKey, message []byte, pad PadKeyStream) ([]uint64, error) {
	c := NewContext(p)
	if err := c.SetKey(userKey); err != nil {
		return nil, err
	}

	b := p.BlockBytes
	full := (len(message) / b) * b
	if full > 0 {
		if err := c.Update(message[:full]); err != nil {
			return nil, err
		}
	}
	return c.Finalize(message[full:], len(message)-full, pad)
}
