package specs

import "strings"

// HttpMethod is a request method token.
type HttpMethod string

// HttpMethod constants represent the nine request methods accepted by the server.
const (
	HttpMethodConnect HttpMethod = "CONNECT"
	HttpMethodDelete  HttpMethod = "DELETE"
	HttpMethodGet     HttpMethod = "GET"
	HttpMethodHead    HttpMethod = "HEAD"
	HttpMethodOptions HttpMethod = "OPTIONS"
	HttpMethodPatch   HttpMethod = "PATCH"
	HttpMethodPost    HttpMethod = "POST"
	HttpMethodPut     HttpMethod = "PUT"
	HttpMethodTrace   HttpMethod = "TRACE"
)

// ParseHttpMethod upper-cases raw and checks it against the known methods.
func ParseHttpMethod(raw string) (HttpMethod, error) {
	method := HttpMethod(strings.ToUpper(raw))
	if !method.IsValid() {
		return "", NewOpError("method", "%w: %q", ErrInvalidHttpMethod, raw)
	}
	return method, nil
}

// IsValid checks if the HttpMethod is one of the standard HTTP methods.
func (method HttpMethod) IsValid() bool {
	switch method {
	case HttpMethodConnect, HttpMethodDelete, HttpMethodGet,
		HttpMethodHead, HttpMethodOptions, HttpMethodPatch,
		HttpMethodPost, HttpMethodPut, HttpMethodTrace:
		return true
	}
	return false
}

// IsReplyable checks if the HttpMethod can have a response body.
func (method HttpMethod) IsReplyable() bool {
	return !(method == HttpMethodHead || method == HttpMethodConnect || method == HttpMethodOptions)
}
