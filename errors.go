package uvmac

// uvmacError is a sentinel error kind, a plain string implementing the
// standard error interface so callers compare with errors.Is.
type uvmacError string

func (e uvmacError) Error() string { return string(e) }

// Error kinds. Callers compare with errors.Is; call sites in this package
// wrap these with fmt.Errorf("uvmac: ...: %w", err) to attach context.
const (
	// ErrInsufficientKeyMaterial is returned by SetKey when the user key
	// is exhausted before every NH, poly and l3 slot (including l3
	// rejections) has been filled.
	ErrInsufficientKeyMaterial = uvmacError("insufficient key material")

	// ErrPadKeyExhausted is returned when the pad-key cursor would
	// advance past the declared length of the stream.
	ErrPadKeyExhausted = uvmacError("pad-key stream exhausted")

	// ErrInvalidUpdateLength is returned by Update when called with a
	// zero or non-multiple-of-block-size length.
	ErrInvalidUpdateLength = uvmacError("update length must be a positive multiple of the block size")

	// ErrInvalidConfiguration is returned when build parameters violate
	// the documented ranges.
	ErrInvalidConfiguration = uvmacError("invalid configuration")
)
