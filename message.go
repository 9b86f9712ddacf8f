package hearth

import (
	"github.com/oesand/hearth/specs"
	"github.com/oesand/hearth/stream"
)

// message holds the parts shared by [Request] and [Response].
// It is only ever replaced as a whole, never mutated after construction.
type message struct {
	protocolVersion string
	header          specs.Header
	body            *stream.Stream
}

func newMessage(body *stream.Stream, header specs.Header) message {
	return message{
		protocolVersion: DefaultProtocolVersion,
		header:          header,
		body:            body,
	}
}

// ProtocolVersion returns the HTTP version without the "HTTP/" prefix, e.g. "1.0".
func (msg *message) ProtocolVersion() string {
	return msg.protocolVersion
}

// Header returns all header fields. The returned value is immutable.
func (msg *message) Header() specs.Header {
	return msg.header
}

// HasHeader reports whether the header name is present, ignoring case.
func (msg *message) HasHeader(name string) bool {
	return msg.header.Has(name)
}

// HeaderValues returns the values of name in order, or an empty slice.
func (msg *message) HeaderValues(name string) []string {
	return msg.header.Get(name)
}

// HeaderLine returns the values of name joined by ",", or "".
func (msg *message) HeaderLine(name string) string {
	return msg.header.Line(name)
}

// Body returns the body stream. Copies of a message share the same stream.
func (msg *message) Body() *stream.Stream {
	return msg.body
}
