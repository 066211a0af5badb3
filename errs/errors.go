package errs

import "errors"

// Error kinds for one content unit. Every stage failure wraps exactly one
// of these so the controller can classify it without string matching.
var (
	// ErrInput: empty/invalid text or zero-duration audio. Not retried.
	ErrInput = errors.New("invalid input")
	// ErrSynthesis: both TTS engines unavailable.
	ErrSynthesis = errors.New("synthesis unavailable")
	// ErrResource: background clip missing or corrupt after exhausting the pool.
	ErrResource = errors.New("resource unavailable")
	// ErrEncoding: ffmpeg encode failed. Fatal for the unit.
	ErrEncoding = errors.New("encoding failed")
	// ErrInvariant: the caption schedule broke its contiguity contract.
	// A defect, never a recoverable runtime condition.
	ErrInvariant = errors.New("scheduling invariant violation")
)

// Kind returns the taxonomy name for err, or "unknown".
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInput):
		return "input"
	case errors.Is(err, ErrSynthesis):
		return "synthesis"
	case errors.Is(err, ErrResource):
		return "resource"
	case errors.Is(err, ErrEncoding):
		return "encoding"
	case errors.Is(err, ErrInvariant):
		return "invariant"
	default:
		return "unknown"
	}
}
