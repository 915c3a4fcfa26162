package trace

import "errors"

// ErrBadTrace is returned when a trace record cannot be parsed: a
// binary record shorter than 8 bytes, or a textual line that isn't an
// integer or the "*" separator.
var ErrBadTrace = errors.New("trace: malformed record")

// Reader yields a stream of block IDs from a trace. Next returns
// ok=false (with a nil error) at a clean end of input, and a non-nil
// error if a record could not be parsed.
//
// The original Python reader passed struct.unpack's tuple result
// straight into processReference, making every key a 1-tuple instead
// of a scalar; Reader implementations here must extract the scalar
// uint64 themselves so lirs.Engine only ever sees integer keys.
type Reader interface {
	Next() (key uint64, ok bool, err error)
}
