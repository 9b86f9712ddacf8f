package encoding

import (
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/oesand/hearth/specs"
)

func NewWriter(contentEncoding string, writer io.Writer) (io.WriteCloser, error) {
	switch contentEncoding {
	case specs.ContentEncodingGzip:
		return gzip.NewWriter(writer), nil
	case specs.ContentEncodingDeflate:
		return zlib.NewWriter(writer), nil
	case specs.ContentEncodingBrotli:
		return brotli.NewWriter(writer), nil
	}
	return nil, fmt.Errorf("unknown content encoding %s", contentEncoding)
}

// Encode writes content compressed with contentEncoding into writer.
func Encode(contentEncoding string, writer io.Writer, content []byte) error {
	encoder, err := NewWriter(contentEncoding, writer)
	if err != nil {
		return err
	}
	if _, err = encoder.Write(content); err != nil {
		encoder.Close()
		return err
	}
	return encoder.Close()
}
