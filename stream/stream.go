package stream

import (
	"errors"
	"io"
	"net"
	"os"

	"github.com/oesand/hearth/specs"
)

// Mode describes what a [Stream] allows on its handle.
type Mode uint8

const (
	ModeRead Mode = 1 << iota
	ModeWrite
	ModeSeek

	ModeReadWrite = ModeRead | ModeWrite
)

// Has reports whether all bits of flag are set.
func (mode Mode) Has(flag Mode) bool {
	return mode&flag == flag
}

// String returns the mode in fopen-like notation: "r", "w", "rw" or "".
func (mode Mode) String() string {
	switch {
	case mode.Has(ModeReadWrite):
		return "rw"
	case mode.Has(ModeRead):
		return "r"
	case mode.Has(ModeWrite):
		return "w"
	}
	return ""
}

// Kinds reported by [Metadata].
const (
	KindMemory = "memory"
	KindFile   = "file"
	KindSocket = "socket"
	KindHandle = "handle"
)

// Metadata describes the handle attached to a [Stream].
type Metadata struct {
	Kind string
	Name string
	Mode Mode
}

// Stream is a readable, writable and seekable byte stream over an owned handle.
//
// The stream exclusively owns its handle until [Stream.Detach] transfers it
// out, after that every operation behaves as if no handle was ever attached.
// A Stream is not safe for concurrent use.
type Stream struct {
	handle any
	mode   Mode
	kind   string
	name   string
	eof    bool

	written int64
}

// New wraps handle, deriving the mode from the interfaces it implements.
// A [net.Conn] is readable and writable but never seekable, an [*os.File]
// is seekable only when it refers to a regular file.
func New(handle any) *Stream {
	var mode Mode
	if _, ok := handle.(io.Reader); ok {
		mode |= ModeRead
	}
	if _, ok := handle.(io.Writer); ok {
		mode |= ModeWrite
	}
	if _, ok := handle.(io.Seeker); ok {
		mode |= ModeSeek
	}

	switch h := handle.(type) {
	case net.Conn:
		mode &^= ModeSeek
	case *os.File:
		if info, err := h.Stat(); err != nil || !info.Mode().IsRegular() {
			mode &^= ModeSeek
		}
	}
	return NewWithMode(handle, mode)
}

// NewWithMode wraps handle with an explicit mode. Flags the handle cannot
// back are dropped.
func NewWithMode(handle any, mode Mode) *Stream {
	if _, ok := handle.(io.Reader); !ok {
		mode &^= ModeRead
	}
	if _, ok := handle.(io.Writer); !ok {
		mode &^= ModeWrite
	}
	if _, ok := handle.(io.Seeker); !ok {
		mode &^= ModeSeek
	}

	s := &Stream{handle: handle, mode: mode, kind: KindHandle}
	switch h := handle.(type) {
	case *MemoryBuffer:
		s.kind = KindMemory
	case *os.File:
		s.kind = KindFile
		s.name = h.Name()
	case net.Conn:
		s.kind = KindSocket
		if addr := h.RemoteAddr(); addr != nil {
			s.name = addr.String()
		}
	}
	return s
}

// Open opens the named file with the given [os.OpenFile] flag and wraps it.
// The stream mode follows the access mode in flag.
func Open(name string, flag int, perm os.FileMode) (*Stream, error) {
	file, err := os.OpenFile(name, flag, perm)
	if err != nil {
		return nil, specs.NewOpError("stream", "%w: %w", specs.ErrInvalidStreamResource, err)
	}

	mode := ModeSeek
	switch flag & (os.O_RDONLY | os.O_WRONLY | os.O_RDWR) {
	case os.O_RDONLY:
		mode |= ModeRead
	case os.O_WRONLY:
		mode |= ModeWrite
	case os.O_RDWR:
		mode |= ModeReadWrite
	}
	if info, err := file.Stat(); err != nil || !info.Mode().IsRegular() {
		mode &^= ModeSeek
	}
	return NewWithMode(file, mode), nil
}

// NewMemory creates a stream over an in-memory buffer holding a copy of content.
// The position starts at 0.
func NewMemory(content []byte, mode Mode) *Stream {
	return NewWithMode(NewMemoryBuffer(content), mode|ModeSeek)
}

func streamErr(format string, a ...any) error {
	return specs.NewOpError("stream", "%w: "+format, append([]any{specs.ErrStream}, a...)...)
}

func (s *Stream) Readable() bool { return s.handle != nil && s.mode.Has(ModeRead) }
func (s *Stream) Writable() bool { return s.handle != nil && s.mode.Has(ModeWrite) }
func (s *Stream) Seekable() bool { return s.handle != nil && s.mode.Has(ModeSeek) }

// Metadata describes the attached handle. It is the zero value without a handle.
func (s *Stream) Metadata() Metadata {
	if s.handle == nil {
		return Metadata{}
	}
	return Metadata{Kind: s.kind, Name: s.name, Mode: s.mode}
}

// ReadN reads up to length bytes from the current position.
//
// A short or empty result is not an error, the end of the data
// is reported by [Stream.EOF].
func (s *Stream) ReadN(length int) ([]byte, error) {
	if length < 0 {
		return nil, streamErr("negative read length %d", length)
	}
	buf := make([]byte, length)
	n, err := s.Read(buf)
	if err != nil && err != io.EOF {
		return nil, err
	}
	return buf[:n], nil
}

// Read implements [io.Reader]. It returns [io.EOF] at the end of the data.
func (s *Stream) Read(p []byte) (int, error) {
	if s.handle == nil {
		return 0, streamErr("no resource available; cannot read")
	}
	if !s.mode.Has(ModeRead) {
		return 0, streamErr("stream is not readable")
	}
	if len(p) == 0 {
		return 0, nil
	}

	n, err := s.handle.(io.Reader).Read(p)
	if err == io.EOF {
		s.eof = true
		return n, io.EOF
	}
	if err != nil {
		return n, streamErr("error reading stream: %w", err)
	}
	return n, nil
}

// Write implements [io.Writer].
func (s *Stream) Write(p []byte) (int, error) {
	if s.handle == nil {
		return 0, streamErr("no resource available; cannot write")
	}
	if !s.mode.Has(ModeWrite) {
		return 0, streamErr("stream is not writable")
	}

	n, err := s.handle.(io.Writer).Write(p)
	s.written += int64(n)
	if err != nil {
		return n, streamErr("error writing to stream: %w", err)
	}
	return n, nil
}

// Written returns the number of bytes written through the stream so far.
func (s *Stream) Written() int64 {
	return s.written
}

// WriteString writes the contents of str.
func (s *Stream) WriteString(str string) (int, error) {
	return s.Write([]byte(str))
}

// Seek implements [io.Seeker].
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	if s.handle == nil {
		return 0, streamErr("no resource available; cannot seek position")
	}
	if !s.mode.Has(ModeSeek) {
		return 0, streamErr("stream is not seekable")
	}

	pos, err := s.handle.(io.Seeker).Seek(offset, whence)
	if err != nil {
		return 0, streamErr("error seeking within stream: %w", err)
	}
	s.eof = false
	return pos, nil
}

// Tell returns the current position.
func (s *Stream) Tell() (int64, error) {
	if s.handle == nil {
		return 0, streamErr("no resource available; cannot tell position")
	}
	if !s.mode.Has(ModeSeek) {
		return 0, streamErr("stream is not seekable; cannot tell position")
	}

	pos, err := s.handle.(io.Seeker).Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, streamErr("error occurred during tell operation: %w", err)
	}
	return pos, nil
}

// Rewind moves the position to the start.
func (s *Stream) Rewind() error {
	_, err := s.Seek(0, io.SeekStart)
	return err
}

// EOF reports whether a read reached the end of the data.
// It is true when no handle is attached.
func (s *Stream) EOF() bool {
	if s.handle == nil {
		return true
	}
	return s.eof
}

// Size returns the byte length of the underlying resource.
// ok is false without a handle or when the length is unknown, as for sockets.
func (s *Stream) Size() (size int64, ok bool) {
	switch h := s.handle.(type) {
	case nil:
		return 0, false
	case interface{ Stat() (os.FileInfo, error) }:
		info, err := h.Stat()
		if err != nil {
			return 0, false
		}
		return info.Size(), true
	case interface{ Size() int64 }:
		return h.Size(), true
	}
	return 0, false
}

// Contents reads everything from the current position to the end.
// An unreadable stream yields an empty string.
func (s *Stream) Contents() (string, error) {
	if !s.Readable() {
		return "", nil
	}

	content, err := io.ReadAll(s)
	if err != nil {
		return "", err
	}
	s.eof = true
	return string(content), nil
}

// Detach returns the handle and leaves the stream without one.
func (s *Stream) Detach() any {
	handle := s.handle
	s.handle = nil
	s.mode = 0
	s.kind = ""
	s.name = ""
	s.eof = false
	return handle
}

// Close releases the handle. Closing a stream without a handle is a no-op.
func (s *Stream) Close() error {
	if s.handle == nil {
		return nil
	}

	closer, ok := s.Detach().(io.Closer)
	if !ok {
		return nil
	}
	if err := closer.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return streamErr("error closing stream: %w", err)
	}
	return nil
}

// String rewinds the stream and returns its full content.
// Any failure yields an empty string.
func (s *Stream) String() string {
	if !s.Readable() {
		return ""
	}
	if err := s.Rewind(); err != nil {
		return ""
	}
	content, err := s.Contents()
	if err != nil {
		return ""
	}
	return content
}
