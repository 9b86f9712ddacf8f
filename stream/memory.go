package stream

import (
	"errors"
	"io"
	"os"
)

var errNegativePosition = errors.New("negative position")

// MemoryBuffer is an in-memory handle supporting reads, writes and seeks
// over one growing byte slice with a shared position.
type MemoryBuffer struct {
	buf    []byte
	off    int64
	closed bool
}

// NewMemoryBuffer creates a buffer holding a copy of content, positioned at 0.
func NewMemoryBuffer(content []byte) *MemoryBuffer {
	return &MemoryBuffer{buf: append([]byte(nil), content...)}
}

func (mb *MemoryBuffer) Read(p []byte) (int, error) {
	if mb.closed {
		return 0, os.ErrClosed
	}
	if mb.off >= int64(len(mb.buf)) {
		return 0, io.EOF
	}
	n := copy(p, mb.buf[mb.off:])
	mb.off += int64(n)
	return n, nil
}

func (mb *MemoryBuffer) Write(p []byte) (int, error) {
	if mb.closed {
		return 0, os.ErrClosed
	}
	end := mb.off + int64(len(p))
	if end > int64(len(mb.buf)) {
		if end > int64(cap(mb.buf)) {
			grown := make([]byte, len(mb.buf), end*2)
			copy(grown, mb.buf)
			mb.buf = grown
		}
		mb.buf = mb.buf[:end]
	}
	copy(mb.buf[mb.off:], p)
	mb.off = end
	return len(p), nil
}

func (mb *MemoryBuffer) Seek(offset int64, whence int) (int64, error) {
	if mb.closed {
		return 0, os.ErrClosed
	}
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = mb.off + offset
	case io.SeekEnd:
		abs = int64(len(mb.buf)) + offset
	default:
		return 0, errors.New("invalid whence")
	}
	if abs < 0 {
		return 0, errNegativePosition
	}
	mb.off = abs
	return abs, nil
}

// Size returns the number of bytes held.
func (mb *MemoryBuffer) Size() int64 {
	return int64(len(mb.buf))
}

// Bytes returns a copy of the held bytes.
func (mb *MemoryBuffer) Bytes() []byte {
	return append([]byte(nil), mb.buf...)
}

func (mb *MemoryBuffer) Close() error {
	mb.closed = true
	return nil
}
