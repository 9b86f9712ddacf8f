package hearth

import (
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oesand/hearth/specs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// State is the lifecycle position of a [Server].
type State int32

const (
	StateIdle State = iota
	StateListening
	StateAccepting
	StateHandling
	StateClosing
	StateStopped
)

func (state State) String() string {
	switch state {
	case StateIdle:
		return "idle"
	case StateListening:
		return "listening"
	case StateAccepting:
		return "accepting"
	case StateHandling:
		return "handling"
	case StateClosing:
		return "closing"
	case StateStopped:
		return "stopped"
	}
	return "state(" + strconv.Itoa(int(state)) + ")"
}

// DefaultServer creates a server for handler listening on [DefaultHost]:[DefaultPort].
func DefaultServer(handler HandlerFunc) *Server {
	return &Server{
		Host:    DefaultHost,
		Port:    DefaultPort,
		Handler: handler,
	}
}

// Server accepts TCP connections one at a time, parses a single request
// from each, passes it to Handler and closes the connection.
type Server struct {
	// Host to listen on, if empty DefaultHost is used.
	Host string

	// Port to listen on, if zero DefaultPort is used.
	Port int

	// Handler to invoke
	Handler Handler

	// ErrorHandler optionally takes over connections whose request
	// could not be parsed. Without it the server answers with
	// a plain text error response itself.
	ErrorHandler ErrorHandler

	// Logger for server events, if nil the global zerolog logger is used.
	Logger *zerolog.Logger

	// ReadTimeout is the maximum duration for reading the request head.
	// A zero or negative value means there will be no timeout.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum duration of the whole exchange
	// once the request is parsed. A zero or negative value means
	// there will be no timeout.
	WriteTimeout time.Duration

	state          atomic.Int32
	isShuttingdown atomic.Bool
	listenerTrack  sync.WaitGroup

	mutex     sync.Mutex
	listeners map[net.Listener]struct{}
}

func (server *Server) logger() *zerolog.Logger {
	if server.Logger != nil {
		return server.Logger
	}
	return &log.Logger
}

// Addr returns the configured listen address with defaults applied.
func (server *Server) Addr() string {
	host := server.Host
	if host == "" {
		host = DefaultHost
	}
	port := server.Port
	if port == 0 {
		port = DefaultPort
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// State returns the current lifecycle state. It is safe to call
// from any goroutine.
func (server *Server) State() State {
	return State(server.state.Load())
}

func (server *Server) setState(state State) {
	server.state.Store(int32(state))
}

// IsShutdown reports whether [Server.Shutdown] was called.
func (server *Server) IsShutdown() bool {
	return server.isShuttingdown.Load()
}

// ListenAndServe binds [Server.Addr] and serves it. A bind failure is
// returned as is and leaves the server stopped.
func (server *Server) ListenAndServe() error {
	if server.IsShutdown() {
		return specs.ErrClosed
	}
	lst, err := net.Listen("tcp", server.Addr())
	if err != nil {
		server.setState(StateStopped)
		return err
	}
	return server.Serve(lst)
}

// trackListener must be called with the mutex held.
func (server *Server) trackListener(lst net.Listener) {
	if server.listeners == nil {
		server.listeners = map[net.Listener]struct{}{}
	}
	server.listeners[lst] = struct{}{}
}

func (server *Server) untrackListener(lst net.Listener) {
	server.mutex.Lock()
	defer server.mutex.Unlock()
	delete(server.listeners, lst)
}

// Shutdown closes every listener and waits until the connection being
// handled, if any, is closed. Serve then returns [specs.ErrClosed].
func (server *Server) Shutdown() {
	server.mutex.Lock()
	if server.isShuttingdown.Swap(true) {
		server.mutex.Unlock()
		server.listenerTrack.Wait()
		return
	}
	for lst := range server.listeners {
		lst.Close()
	}
	server.mutex.Unlock()

	server.listenerTrack.Wait()
	server.setState(StateStopped)
}
