package hearth

import (
	"strconv"

	"github.com/oesand/hearth/internal/encoding"
	"github.com/valyala/bytebufferpool"
)

// Reply sends resp with content as its body through the response stream.
//
// Content is compressed with the best encoding accepted by req when it is not
// larger than [DefaultMaxEncodingSize] and resp has no Content-Encoding yet.
// Content-Length is set from the bytes actually sent. Responses to HEAD,
// CONNECT and OPTIONS carry headers only, as do statuses without a body.
// When the headers were already sent, only content is written.
func Reply(req *Request, resp *Response, content []byte) error {
	if resp.HeadersSent() {
		if len(content) == 0 {
			return nil
		}
		_, err := resp.Body().Write(content)
		return err
	}

	if !resp.StatusCode().IsReplyable() {
		return resp.SendHeaders()
	}

	if req.Method().IsReplyable() && len(content) > 0 && len(content) <= DefaultMaxEncodingSize &&
		!resp.HasHeader("Content-Encoding") {
		if name := encoding.Negotiate(req.HeaderLine("Accept-Encoding")); name != "" {
			buf := bytebufferpool.Get()
			defer bytebufferpool.Put(buf)

			if err := encoding.Encode(name, buf, content); err != nil {
				return err
			}
			content = buf.B
			resp = resp.WithHeader("Content-Encoding", name).
				WithAddedHeader("Vary", "Accept-Encoding")
		}
	}

	resp = resp.WithHeader("Content-Length", strconv.Itoa(len(content)))
	if err := resp.SendHeaders(); err != nil {
		return err
	}

	if !req.Method().IsReplyable() || len(content) == 0 {
		return nil
	}
	_, err := resp.Body().Write(content)
	return err
}
