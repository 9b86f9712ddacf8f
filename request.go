package hearth

import (
	"net"
	"strconv"
	"strings"

	"github.com/oesand/hearth/internal/parsing"
	"github.com/oesand/hearth/specs"
	"github.com/oesand/hearth/stream"
	"golang.org/x/net/http/httpguts"
)

// Request is an immutable HTTP request.
//
// Every With method returns a new Request and leaves the receiver untouched.
// The body stream is shared by reference between copies.
type Request struct {
	message

	method    specs.HttpMethod
	uri       specs.Uri
	target    string
	hasTarget bool
	buffered  []byte
}

// NewRequest creates a request for uri. The method is upper-cased and
// must be one of the nine methods known to [specs.HttpMethod].
func NewRequest(body *stream.Stream, uri specs.Uri, method specs.HttpMethod, header specs.Header) (*Request, error) {
	parsed, err := specs.ParseHttpMethod(string(method))
	if err != nil {
		return nil, err
	}
	return &Request{
		message: newMessage(body, header),
		method:  parsed,
		uri:     uri,
	}, nil
}

// ParseRequest reads a request head from s.
//
// Exactly one read of at most [MaxRequestHeadSize] bytes is issued,
// the head is expected to fit into it. The first line is the request
// line, header lines follow until an empty line or the end of the read.
// Bytes after the empty line are available from [Request.BufferedBody].
// The returned request uses s as its body.
func ParseRequest(s *stream.Stream) (*Request, error) {
	chunk, err := s.ReadN(MaxRequestHeadSize)
	if err != nil {
		return nil, err
	}

	raw := strings.TrimLeft(string(chunk), " \t\r\n")
	if strings.TrimSpace(raw) == "" {
		return nil, invalidRequest("http request can not be empty")
	}

	line, headerLines, rest := parsing.SplitHead(raw)
	method, target, version, ok := parsing.ParseRequestLine(line)
	if !ok {
		return nil, invalidRequest("malformed request line %q", line)
	}

	uri, err := specs.ParseUri(target)
	if err != nil {
		return nil, err
	}

	req := &Request{
		message: newMessage(s, specs.Header{}),
		method:  specs.HttpMethodGet,
		uri:     uri,
	}
	if req, err = req.WithMethod(specs.HttpMethod(method)); err != nil {
		return nil, err
	}
	req = req.WithProtocolVersion(version)

	for _, field := range parsing.ParseHeaderLines(headerLines) {
		req = req.WithAddedHeader(field.Name, field.Value)
	}

	if host, has := req.header.Last("Host"); has && host != "" {
		if !httpguts.ValidHostHeader(host) {
			return nil, invalidRequest("malformed Host header %q", host)
		}

		name, port := splitHostHeader(host)
		req = req.WithUri(req.uri.WithHost(name).WithPort(port), false)
	}

	if rest != "" {
		req.buffered = []byte(rest)
	}
	return req, nil
}

// splitHostHeader splits host[:port]. IPv6 literals keep their brackets.
// A missing or unparsable port is 0.
func splitHostHeader(host string) (string, uint16) {
	name, port, err := net.SplitHostPort(host)
	if err != nil {
		return host, 0
	}
	if strings.Contains(name, ":") {
		name = "[" + name + "]"
	}
	num, err := strconv.ParseUint(port, 10, 16)
	if err != nil {
		num = 0
	}
	return name, uint16(num)
}

func invalidRequest(format string, a ...any) error {
	return specs.NewOpError("request", "%w: "+format, append([]any{specs.ErrInvalidHttpRequest}, a...)...)
}

func (req *Request) clone() *Request {
	c := *req
	return &c
}

// Method returns the upper-cased request method.
func (req *Request) Method() specs.HttpMethod {
	return req.method
}

// WithMethod returns a copy with the method replaced.
// The method is upper-cased and validated like in [NewRequest].
func (req *Request) WithMethod(method specs.HttpMethod) (*Request, error) {
	parsed, err := specs.ParseHttpMethod(string(method))
	if err != nil {
		return nil, err
	}
	c := req.clone()
	c.method = parsed
	return c, nil
}

// Uri returns the request URI.
func (req *Request) Uri() specs.Uri {
	return req.uri
}

// WithUri returns a copy with the URI replaced. Unless preserveHost is set,
// a non-empty host of uri overwrites the Host header with host[:port].
func (req *Request) WithUri(uri specs.Uri, preserveHost bool) *Request {
	c := req.clone()
	c.uri = uri
	if preserveHost || uri.Host() == "" {
		return c
	}
	c.header = c.header.With("Host", uri.HostHeader())
	return c
}

// RequestTarget returns the explicitly set target, or path[?query] of the URI.
// It is "/" when both are empty.
func (req *Request) RequestTarget() string {
	if req.hasTarget {
		return req.target
	}

	target := req.uri.Path()
	if query := req.uri.Query(); query != "" {
		target += "?" + query
	}
	if target == "" {
		target = "/"
	}
	return target
}

// WithRequestTarget returns a copy whose request target is fixed to target.
func (req *Request) WithRequestTarget(target string) *Request {
	c := req.clone()
	c.target = target
	c.hasTarget = true
	return c
}

// BufferedBody returns the bytes that followed the empty line ending the
// header section inside the initial read, or nil.
func (req *Request) BufferedBody() []byte {
	if req.buffered == nil {
		return nil
	}
	return append([]byte(nil), req.buffered...)
}

func (req *Request) WithProtocolVersion(version string) *Request {
	c := req.clone()
	c.protocolVersion = version
	return c
}

// WithHeader returns a copy where the values of name are replaced by values.
func (req *Request) WithHeader(name string, values ...string) *Request {
	c := req.clone()
	c.header = c.header.With(name, values...)
	return c
}

// WithAddedHeader returns a copy with values appended to those of name.
func (req *Request) WithAddedHeader(name string, values ...string) *Request {
	c := req.clone()
	c.header = c.header.WithAdded(name, values...)
	return c
}

// WithoutHeader returns a copy without name.
func (req *Request) WithoutHeader(name string) *Request {
	c := req.clone()
	c.header = c.header.Without(name)
	return c
}

func (req *Request) WithBody(body *stream.Stream) *Request {
	c := req.clone()
	c.body = body
	return c
}
