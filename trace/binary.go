package trace

import (
	"encoding/binary"
	"fmt"
	"io"
)

// binaryReader reads fixed-width 8-byte little-endian uint64 records
// until EOF. A short trailing record (1-7 bytes) is reported as
// ErrBadTrace wrapping the underlying io.ErrUnexpectedEOF.
type binaryReader struct {
	r   io.Reader
	buf [8]byte
}

// NewBinaryReader wraps r as a binary trace Reader.
func NewBinaryReader(r io.Reader) Reader {
	return &binaryReader{r: r}
}

func (b *binaryReader) Next() (uint64, bool, error) {
	_, err := io.ReadFull(b.r, b.buf[:])
	switch {
	case err == io.EOF:
		return 0, false, nil
	case err == io.ErrUnexpectedEOF:
		return 0, false, fmt.Errorf("%w: short record: %v", ErrBadTrace, err)
	case err != nil:
		return 0, false, err
	}
	return binary.LittleEndian.Uint64(b.buf[:]), true, nil
}
