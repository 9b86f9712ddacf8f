package hearth

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/oesand/hearth/specs"
	"github.com/oesand/hearth/stream"
)

func memoryBody() (*stream.Stream, *stream.MemoryBuffer) {
	buf := stream.NewMemoryBuffer(nil)
	return stream.NewWithMode(buf, stream.ModeReadWrite|stream.ModeSeek), buf
}

func TestResponse_StatusDefaulting(t *testing.T) {
	tests := []struct {
		code   specs.StatusCode
		reason string
	}{
		{specs.StatusCodeOK, "OK"},
		{specs.StatusCodeTeapot, "I'm a teapot"},
		{specs.StatusCodeNotFound, "Not Found"},
		{specs.StatusCode(299), ""},
	}

	for _, tt := range tests {
		t.Run(tt.code.Formatted(), func(t *testing.T) {
			resp := NewResponse(nil, tt.code, specs.Header{})
			if resp.ReasonPhrase() != tt.reason {
				t.Errorf("expected %q, got %q", tt.reason, resp.ReasonPhrase())
			}
		})
	}

	resp := NewResponse(nil, specs.StatusCodeTeapot, specs.Header{})
	notFound := resp.WithStatus(specs.StatusCodeNotFound, "")
	if notFound.StatusCode() != specs.StatusCodeNotFound || notFound.ReasonPhrase() != "Not Found" {
		t.Errorf("with status: %d %q", notFound.StatusCode(), notFound.ReasonPhrase())
	}
	custom := resp.WithStatus(specs.StatusCodeOK, "Fine")
	if custom.ReasonPhrase() != "Fine" {
		t.Errorf("custom reason: %q", custom.ReasonPhrase())
	}
	if resp.StatusCode() != specs.StatusCodeTeapot {
		t.Error("with status changed the receiver")
	}
}

func TestResponse_SendHeadersOnce(t *testing.T) {
	body, buf := memoryBody()
	resp := NewResponse(body, specs.StatusCodeOK, specs.Header{}).
		WithHeader("Content-Type", "text/plain")

	if resp.HeadersSent() {
		t.Fatal("headers sent before SendHeaders")
	}
	if err := resp.SendHeaders(); err != nil {
		t.Fatal(err)
	}
	if err := resp.SendHeaders(); err != nil {
		t.Fatal(err)
	}

	expected := "HTTP/1.0 200 OK\r\nContent-Type: text/plain\r\n\r\n"
	if got := string(buf.Bytes()); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
	if !resp.HeadersSent() {
		t.Error("headers not marked sent")
	}

	// Copies over the same stream observe the latch.
	sibling := resp.WithHeader("X-Late", "1")
	if !sibling.HeadersSent() {
		t.Error("copy over the same stream must see the sent state")
	}
	if err := sibling.SendHeaders(); err != nil {
		t.Fatal(err)
	}
	if got := string(buf.Bytes()); got != expected {
		t.Errorf("preamble written twice: %q", got)
	}
}

func TestResponse_WithBodyResetsLatch(t *testing.T) {
	first, _ := memoryBody()
	second, secondBuf := memoryBody()

	resp := NewResponse(first, specs.StatusCodeNoContent, specs.Header{})
	if err := resp.SendHeaders(); err != nil {
		t.Fatal(err)
	}

	same := resp.WithBody(first)
	if !same.HeadersSent() {
		t.Error("same stream must keep the sent state")
	}

	moved := resp.WithBody(second)
	if moved.HeadersSent() {
		t.Fatal("new stream must start unsent")
	}
	if err := moved.SendHeaders(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(secondBuf.Bytes()), "HTTP/1.0 204 No Content\r\n") {
		t.Errorf("unexpected preamble: %q", secondBuf.Bytes())
	}
}

func TestResponse_SendHeadersWithoutBody(t *testing.T) {
	resp := NewResponse(nil, specs.StatusCodeOK, specs.Header{})
	if err := resp.SendHeaders(); !errors.Is(err, specs.ErrStream) {
		t.Errorf("expected stream error, got %v", err)
	}
	if resp.HeadersSent() {
		t.Error("failed send must not mark headers sent")
	}
}

func TestResponse_WriteHead(t *testing.T) {
	resp := NewResponse(nil, specs.StatusCodeNotFound, specs.Header{}).
		WithProtocolVersion("1.1").
		WithHeader("Set-Cookie", "a=1").
		WithAddedHeader("set-cookie", "b=2").
		WithHeader("X-Gone", "1").
		WithoutHeader("x-gone")

	var out bytes.Buffer
	n, err := resp.WriteHead(&out)
	if err != nil {
		t.Fatal(err)
	}

	expected := "HTTP/1.1 404 Not Found\r\n" +
		"Set-Cookie: a=1\r\n" +
		"Set-Cookie: b=2\r\n" +
		"\r\n"
	if out.String() != expected {
		t.Errorf("expected %q, got %q", expected, out.String())
	}
	if n != int64(len(expected)) {
		t.Errorf("expected %d bytes, got %d", len(expected), n)
	}
	if resp.HeadersSent() {
		t.Error("WriteHead must not touch the sent state")
	}
}

func TestResponse_ZeroValue(t *testing.T) {
	var resp Response
	if resp.HeadersSent() {
		t.Error("zero response reports headers sent")
	}
	if err := resp.SendHeaders(); !errors.Is(err, specs.ErrStream) {
		t.Errorf("expected stream error, got %v", err)
	}

	body, buf := memoryBody()
	attached := (&Response{}).WithBody(body).WithStatus(specs.StatusCodeOK, "")
	if err := attached.SendHeaders(); err != nil {
		t.Fatal(err)
	}
	if !attached.HeadersSent() {
		t.Error("headers not marked sent")
	}
	if got := string(buf.Bytes()); got != "HTTP/ 200 OK\r\n\r\n" {
		t.Errorf("unexpected preamble %q", got)
	}
}

func TestResponse_Immutable(t *testing.T) {
	body, _ := memoryBody()
	resp := NewResponse(body, specs.StatusCodeOK, specs.Header{})

	withHeader := resp.WithHeader("X", "a")
	withAdded := withHeader.WithAddedHeader("x", "b")
	withVersion := withAdded.WithProtocolVersion("1.1")
	without := withVersion.WithoutHeader("X")

	other, _ := memoryBody()
	moved := without.WithBody(other)

	if resp.HasHeader("X") || resp.ProtocolVersion() != DefaultProtocolVersion {
		t.Error("original response changed")
	}
	if got := withHeader.HeaderValues("X"); !slices.Equal(got, []string{"a"}) {
		t.Errorf("with header: %v", got)
	}
	if got := withAdded.HeaderLine("X"); got != "a,b" {
		t.Errorf("with added: %q", got)
	}
	if withAdded.ProtocolVersion() != DefaultProtocolVersion || withVersion.ProtocolVersion() != "1.1" {
		t.Error("protocol version leaked between copies")
	}
	if without.HasHeader("X") || !withVersion.HasHeader("X") {
		t.Error("without header changed the receiver")
	}
	if without.Body() != body || moved.Body() != other {
		t.Error("with body changed the receiver")
	}
	if moved.StatusCode() != specs.StatusCodeOK || moved.ProtocolVersion() != "1.1" {
		t.Error("with body lost fields")
	}

	copies := []*Response{resp, withHeader, withAdded, withVersion, without, moved}
	for i := range copies {
		for j := i + 1; j < len(copies); j++ {
			if copies[i] == copies[j] {
				t.Errorf("copies %d and %d are the same value", i, j)
			}
		}
	}
}

func TestResponse_WriteHeadSkipsInvalidFields(t *testing.T) {
	resp := NewResponse(nil, specs.StatusCodeOK, specs.Header{}).
		WithHeader("X-Split", "a\r\nInjected: 1").
		WithHeader("Bad Name", "v").
		WithHeader("X-Kept", "ok", "also\nbad")

	var out bytes.Buffer
	if _, err := resp.WriteHead(&out); err != nil {
		t.Fatal(err)
	}

	expected := "HTTP/1.0 200 OK\r\nX-Kept: ok\r\n\r\n"
	if out.String() != expected {
		t.Errorf("expected %q, got %q", expected, out.String())
	}
}
