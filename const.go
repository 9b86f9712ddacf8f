package hearth

import "github.com/oesand/hearth/specs"

const (
	// DefaultHost default value for Server.Host parameter
	DefaultHost = "0.0.0.0"

	// DefaultPort default value for Server.Port parameter
	DefaultPort = 80

	// DefaultProtocolVersion is the protocol version of newly created messages.
	DefaultProtocolVersion = "1.0"

	// MaxRequestHeadSize is the size of the single read a request is parsed from.
	// Request lines and headers beyond it are not seen by the parser.
	MaxRequestHeadSize = 4096

	// DefaultMaxEncodingSize content larger than this is sent by Reply without encoding.
	DefaultMaxEncodingSize = 5 << 20 // 5 mb
)

var (
	responseErrBadRequest = &ErrorResponse{
		Code: specs.StatusCodeBadRequest,
		Text: "http: the request could not be parsed.",
	}
	responseErrNotImplemented = &ErrorResponse{
		Code: specs.StatusCodeNotImplemented,
		Text: "http: the request method is not supported.",
	}
	responseErrInternal = &ErrorResponse{
		Code: specs.StatusCodeInternalServerError,
		Text: "http: internal server error.",
	}
)
