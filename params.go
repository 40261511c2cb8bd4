package uvmac

import "fmt"

// Params holds the compile-time parameters of a UVMAC build. Interoperating
// peers must agree on all three; they are fixed for the lifetime of a
// Context.
type Params struct {
	// TagBits is the tag length, 64 or 128.
	TagBits int

	// BlockBytes is NH_BLOCK_BYTES: the NH block size, a power of two in
	// [16, 4096].
	BlockBytes int

	// PreferBigEndian selects the message-word load order for NH. false
	// (the default) loads little-endian.
	PreferBigEndian bool
}

// DefaultParams returns the conventional parameters: 64-bit tags, 128-byte
// NH blocks, little-endian message loads.
func DefaultParams() Params {
	return Params{
		TagBits:         64,
		BlockBytes:      128,
		PreferBigEndian: false,
	}
}

// NewParams validates p and returns it, or ErrInvalidConfiguration if any
// field is out of range.
func NewParams(p Params) (Params, error) {
	if p.TagBits != 64 && p.TagBits != 128 {
		return Params{}, fmt.Errorf("uvmac: tag bits %d: %w", p.TagBits,
			ErrInvalidConfiguration)
	}
	if p.BlockBytes < 16 || p.BlockBytes > 4096 || p.BlockBytes&(p.BlockBytes-1) != 0 {
		return Params{}, fmt.Errorf(
			"uvmac: block size %d must be a power of two in [16, 4096]: %w",
			p.BlockBytes, ErrInvalidConfiguration)
	}
	return p, nil
}

// tagHalves is T/64: 1 for a 64-bit tag, 2 for a 128-bit tag.
func (p Params) tagHalves() int {
	return p.TagBits / 64
}

// blockWords is B/8, the number of 64-bit message words per NH block.
func (p Params) blockWords() int {
	return p.BlockBytes / 8
}

// nhTableWords is the size of the NH key table: (B/8) + 2*(T/64 - 1). The
// extra 2*(T/64 - 1) words give the second, overlapped NH pass its own
// shifted key window for 128-bit tags.
func (p Params) nhTableWords() int {
	return p.blockWords() + 2*(p.tagHalves()-1)
}
