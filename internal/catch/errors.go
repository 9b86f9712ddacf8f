package catch

import (
	"errors"
	"io"
	"net"
)

// IsCommonNetReadError reports errors that mean the peer went away or stalled
// rather than sent something malformed. It looks through wrapped errors.
func IsCommonNetReadError(err error) bool {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, net.ErrClosed) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "read" {
		return true
	}
	return false
}
