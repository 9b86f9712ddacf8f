package specs

import (
	"errors"
	"testing"
)

func TestParseHttpMethod(t *testing.T) {
	tests := []struct {
		raw     string
		want    HttpMethod
		invalid bool
	}{
		{raw: "GET", want: HttpMethodGet},
		{raw: "get", want: HttpMethodGet},
		{raw: "Patch", want: HttpMethodPatch},
		{raw: "connect", want: HttpMethodConnect},
		{raw: "TRACE", want: HttpMethodTrace},
		{raw: "FOO", invalid: true},
		{raw: "PRI", invalid: true},
		{raw: "", invalid: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseHttpMethod(tt.raw)
			if tt.invalid {
				if !errors.Is(err, ErrInvalidHttpMethod) {
					t.Errorf("ParseHttpMethod(%q) error = %v, want ErrInvalidHttpMethod", tt.raw, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseHttpMethod(%q) = %q, %v, want %q", tt.raw, got, err, tt.want)
			}
		})
	}
}

func TestOpError(t *testing.T) {
	err := NewOpError("url", "%w: bad port", ErrInvalidUrl)
	if got := err.Error(); got != "hearth/url: invalid url: bad port" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, ErrInvalidUrl) {
		t.Error("expected errors.Is to match the wrapped kind")
	}

	var opErr *OpError
	if !errors.As(err, &opErr) || opErr.Op != "url" {
		t.Errorf("errors.As failed: %v", opErr)
	}
	if !opErr.Match(&OpError{Op: "url", Err: ErrInvalidUrl}) {
		t.Error("Match() expected true for the same op and kind")
	}
}
