package hearth

import (
	"errors"
	"net"
	"time"

	"github.com/oesand/hearth/internal/catch"
	"github.com/oesand/hearth/specs"
	"github.com/oesand/hearth/stream"
	"github.com/rs/zerolog"
)

// Serve accepts incoming connections on the [net.Listener] one at a time.
// For each connection a single request is parsed and passed to
// [Server.Handler], then the connection is closed and the next one
// is accepted. A connection whose request cannot be parsed is answered
// with an error response and does not stop the loop.
//
// Serve always returns a non-nil error.
// After [Server.Shutdown], the returned error is [specs.ErrClosed].
func (server *Server) Serve(listener net.Listener) error {
	if listener == nil {
		panic("nil listener")
	}
	if server.Handler == nil {
		panic("nil server handler")
	}

	server.mutex.Lock()
	if server.IsShutdown() {
		server.mutex.Unlock()
		return specs.ErrClosed
	}
	server.listenerTrack.Add(1)
	server.trackListener(listener)
	server.mutex.Unlock()
	defer server.listenerTrack.Done()
	defer server.untrackListener(listener)

	logger := server.logger()
	server.setState(StateListening)
	logger.Info().
		Str("addr", listener.Addr().String()).
		Msg("server ready")

	var attemptDelay time.Duration
	for {
		server.setState(StateAccepting)
		conn, err := listener.Accept()
		if err != nil {
			if server.IsShutdown() {
				server.setState(StateStopped)
				return specs.ErrClosed
			}

			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				if attemptDelay == 0 {
					attemptDelay = 5 * time.Millisecond
				} else if maxDelay := 1 * time.Second; attemptDelay >= maxDelay {
					attemptDelay = maxDelay
				} else {
					attemptDelay *= 2
				}

				logger.Warn().Err(err).
					Dur("retry_in", attemptDelay).
					Msg("accept failed")
				time.Sleep(attemptDelay)
				continue
			}

			server.setState(StateStopped)
			if errors.Is(err, net.ErrClosed) {
				return specs.ErrClosed
			}
			return err
		}

		attemptDelay = 0
		server.setState(StateHandling)
		server.serveConn(conn, logger)
	}
}

func (server *Server) serveConn(conn net.Conn, logger *zerolog.Logger) {
	s := stream.New(conn)

	connLog := logger.With().
		Str("remote", conn.RemoteAddr().String()).
		Logger()
	connLog.Debug().Msg("connection accepted")

	defer func() {
		server.setState(StateClosing)
		if err := s.Close(); err != nil {
			connLog.Debug().Err(err).Msg("connection close failed")
		}
	}()

	if server.ReadTimeout > 0 {
		conn.SetReadDeadline(time.Now().Add(server.ReadTimeout))
	}

	req, err := ParseRequest(s)
	if err != nil {
		server.rejectConn(s, err, &connLog)
		return
	}

	if server.ReadTimeout > 0 {
		conn.SetReadDeadline(time.Time{})
	}
	if server.WriteTimeout > 0 {
		conn.SetDeadline(time.Now().Add(server.WriteTimeout))
	}

	connLog.Info().
		Str("method", string(req.Method())).
		Str("target", req.RequestTarget()).
		Str("proto", req.ProtocolVersion()).
		Msg("request")

	resp := NewResponse(s, specs.StatusCodeOK, specs.Header{})
	server.handle(req, resp, &connLog)
}

// handle invokes the handler and converts a panic into
// a 500 response when no byte reached the connection yet.
func (server *Server) handle(req *Request, resp *Response, logger *zerolog.Logger) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		logger.Error().
			Interface("panic", r).
			Str("method", string(req.Method())).
			Msg("handler panic")

		if resp.HeadersSent() || resp.Body().Written() > 0 {
			return
		}
		if err := responseErrInternal.WriteTo(resp.Body()); err != nil {
			logger.Debug().Err(err).Msg("error response failed")
		}
	}()

	server.Handler.Handle(req, resp)
}

func (server *Server) rejectConn(s *stream.Stream, err error, logger *zerolog.Logger) {
	if server.ErrorHandler != nil {
		logger.Debug().Err(err).Msg("connection error")
		server.ErrorHandler.HandleError(s, err)
		return
	}

	if catch.IsCommonNetReadError(err) {
		logger.Debug().Err(err).Msg("connection error")
		return
	}

	logger.Warn().Err(err).Msg("connection error")

	respErr := responseErrBadRequest
	if errors.Is(err, specs.ErrInvalidHttpMethod) {
		respErr = responseErrNotImplemented
	}
	if writeErr := respErr.WriteTo(s); writeErr != nil {
		logger.Debug().Err(writeErr).Msg("error response failed")
	}
}
