package hearth

import (
	"github.com/oesand/hearth/specs"
	"github.com/oesand/hearth/stream"
)

var closeHeaders = specs.NewHeader(func(header specs.Header) specs.Header {
	return header.
		With("Content-Type", specs.ContentTypePlain+"; charset=utf-8").
		With("Connection", "close")
})

// ErrorResponse is a plain text response the server sends on its own
// when a connection cannot reach the handler.
type ErrorResponse struct {
	Code specs.StatusCode
	Text string
}

func (resp *ErrorResponse) Error() string {
	return "<" + resp.Code.Formatted() + ">: " + resp.Text
}

// WriteTo sends the error response through s.
func (resp *ErrorResponse) WriteTo(s *stream.Stream) error {
	code := resp.Code
	if code == 0 {
		code = specs.StatusCodeInternalServerError
	}

	out := NewResponse(s, code, closeHeaders)
	if err := out.SendHeaders(); err != nil {
		return err
	}
	if resp.Text != "" {
		if _, err := s.WriteString(resp.Text); err != nil {
			return err
		}
	}
	return nil
}
