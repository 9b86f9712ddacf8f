package specs

// Content encodings understood by the server when compressing replies.
// Names follow the IANA HTTP Content-Encoding registry.
const (
	ContentEncodingGzip    = "gzip"
	ContentEncodingDeflate = "deflate"
	ContentEncodingBrotli  = "br"
)

// ContentTypePlain is the media type of the server's own error replies.
const ContentTypePlain = "text/plain"
