package hearth

import (
	"io"
	"strconv"
	"sync/atomic"

	"github.com/oesand/hearth/specs"
	"github.com/oesand/hearth/stream"
	"github.com/valyala/bytebufferpool"
	"golang.org/x/net/http/httpguts"
)

var (
	rawHttpPrefix = []byte("HTTP/")
	rawColonSpace = []byte(": ")
	rawCrlf       = []byte("\r\n")
)

// headLatch is the one-shot NotSent -> Sent switch guarding the preamble
// written to one body stream.
type headLatch struct {
	sent atomic.Bool
}

// Response is an immutable HTTP response.
//
// Every With method returns a new Response and leaves the receiver untouched.
// Copies sharing a body stream also share the record of whether the status
// line and headers were already written to it, [Response.WithBody] starts
// a fresh record for the new stream.
type Response struct {
	message

	statusCode   specs.StatusCode
	reasonPhrase string
	latch        *headLatch
}

// NewResponse creates a response writing to body. The reason phrase is
// taken from the status table.
func NewResponse(body *stream.Stream, code specs.StatusCode, header specs.Header) *Response {
	return &Response{
		message:      newMessage(body, header),
		statusCode:   code,
		reasonPhrase: code.Detail(),
		latch:        &headLatch{},
	}
}

func (resp *Response) clone() *Response {
	c := *resp
	return &c
}

func (resp *Response) StatusCode() specs.StatusCode {
	return resp.statusCode
}

func (resp *Response) ReasonPhrase() string {
	return resp.reasonPhrase
}

// WithStatus returns a copy with the status replaced.
// An empty reasonPhrase is filled from the status table.
func (resp *Response) WithStatus(code specs.StatusCode, reasonPhrase string) *Response {
	c := resp.clone()
	c.statusCode = code
	if reasonPhrase == "" {
		reasonPhrase = code.Detail()
	}
	c.reasonPhrase = reasonPhrase
	return c
}

// HeadersSent reports whether the preamble was written to the body stream.
func (resp *Response) HeadersSent() bool {
	return resp.latch != nil && resp.latch.sent.Load()
}

// SendHeaders writes the status line and headers to the body stream.
// Only the first call for a body stream writes, later calls do nothing.
func (resp *Response) SendHeaders() error {
	if resp.HeadersSent() {
		return nil
	}
	if resp.body == nil {
		return specs.NewOpError("response", "%w: no body stream to send headers to", specs.ErrStream)
	}
	if resp.latch == nil {
		resp.latch = &headLatch{}
	}

	if _, err := resp.WriteHead(resp.body); err != nil {
		return err
	}
	resp.latch.sent.Store(true)
	return nil
}

// WriteHead serializes the preamble into w:
//
//	HTTP/<version> <code> <reason>\r\n
//	<Name>: <value>\r\n   (one line per value)
//	\r\n
//
// Fields with an invalid name or value are left out.
// It does not consult nor change the sent state.
func (resp *Response) WriteHead(w io.Writer) (int64, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	// Headline
	buf.Write(rawHttpPrefix)
	buf.WriteString(resp.protocolVersion)
	buf.WriteByte(' ')
	buf.B = strconv.AppendUint(buf.B, uint64(resp.statusCode), 10)
	buf.WriteByte(' ')
	buf.WriteString(resp.reasonPhrase)
	buf.Write(rawCrlf)

	// Headers
	for name, values := range resp.header.All() {
		if !httpguts.ValidHeaderFieldName(name) {
			continue
		}
		for _, value := range values {
			if !httpguts.ValidHeaderFieldValue(value) {
				continue
			}
			buf.WriteString(name)
			buf.Write(rawColonSpace)
			buf.WriteString(value)
			buf.Write(rawCrlf)
		}
	}

	buf.Write(rawCrlf)

	return buf.WriteTo(w)
}

func (resp *Response) WithProtocolVersion(version string) *Response {
	c := resp.clone()
	c.protocolVersion = version
	return c
}

// WithHeader returns a copy where the values of name are replaced by values.
func (resp *Response) WithHeader(name string, values ...string) *Response {
	c := resp.clone()
	c.header = c.header.With(name, values...)
	return c
}

// WithAddedHeader returns a copy with values appended to those of name.
func (resp *Response) WithAddedHeader(name string, values ...string) *Response {
	c := resp.clone()
	c.header = c.header.WithAdded(name, values...)
	return c
}

// WithoutHeader returns a copy without name.
func (resp *Response) WithoutHeader(name string) *Response {
	c := resp.clone()
	c.header = c.header.Without(name)
	return c
}

// WithBody returns a copy writing to body. The copy has not sent headers yet,
// unless body is the stream the receiver already writes to.
func (resp *Response) WithBody(body *stream.Stream) *Response {
	c := resp.clone()
	if body != resp.body {
		c.body = body
		c.latch = &headLatch{}
	}
	return c
}
