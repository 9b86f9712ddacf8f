package specs

import "errors"

// Error kinds. Concrete failures wrap one of them inside an [OpError],
// match them with [errors.Is].
var (
	// ErrInvalidUrl reports a string that cannot be parsed as a URI.
	ErrInvalidUrl = errors.New("invalid url")

	// ErrInvalidHttpMethod reports a method outside the nine known methods.
	ErrInvalidHttpMethod = errors.New("invalid http method")

	// ErrInvalidHttpRequest reports an empty or malformed request head.
	ErrInvalidHttpRequest = errors.New("invalid http request")

	// ErrStream reports a failed or impossible stream operation.
	ErrStream = errors.New("stream failure")

	// ErrInvalidStreamResource reports a stream resource that could not be opened.
	ErrInvalidStreamResource = errors.New("invalid stream resource")

	// ErrClosed is returned by the server after shutdown.
	ErrClosed = errors.New("server closed")
)
