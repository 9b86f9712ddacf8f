package hearth

import "github.com/oesand/hearth/stream"

// Handler serves one request per connection. It writes the response itself,
// through the stream of resp, before returning.
type Handler interface {
	Handle(req *Request, resp *Response)
}

// ErrorHandler takes over a connection whose request could not be parsed.
type ErrorHandler interface {
	HandleError(conn *stream.Stream, err error)
}

// * Shorthand implementations *

// HandlerFunc shorthand implementation for Handler
type HandlerFunc func(req *Request, resp *Response)

func (f HandlerFunc) Handle(req *Request, resp *Response) {
	f(req, resp)
}

// ErrorHandlerFunc shorthand implementation for ErrorHandler
type ErrorHandlerFunc func(conn *stream.Stream, err error)

func (f ErrorHandlerFunc) HandleError(conn *stream.Stream, err error) {
	f(conn, err)
}
