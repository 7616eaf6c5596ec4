// Package httpapi wires the Lookup Service into an HTTP request
// handler: GET-only, no URL decoding (the raw path bytes after '/' are
// the query, a deliberate trade for byte-faithful keys), 200 on a hit
// with the value bytes (including the trailing LF), 404 with a fixed
// body otherwise.
//
// net/http's standard server is the transport here: this is the one
// boundary concern that stays on the standard library rather than a
// third-party stack -- see DESIGN.md.
//
// (c) 2026
package httpapi

import (
	"context"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/StefanKarpinski/bam/internal/lookup"
)

const notFoundBody = "Resource not found\n"

// Handler returns the bam request handler bound to svc.
func Handler(svc *lookup.Service, log *zap.SugaredLogger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		// No URL decoding: the raw path bytes after '/' are the query.
		query := []byte(r.URL.EscapedPath())
		if len(query) == 0 || query[0] != '/' {
			writeNotFound(w)
			return
		}
		query = query[1:]

		val, ok := svc.Find(query)
		if !ok {
			writeNotFound(w)
			return
		}

		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write(val)
	})
}

func writeNotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(notFoundBody))
}

// Server wraps http.Server with a connection-count gate standing in
// for the C original's MHD_OPTION_THREAD_POOL_SIZE: threads bounds how
// many connections are served concurrently, not a goroutine limiter.
type Server struct {
	httpSrv *http.Server
	gate    chan struct{}
	log     *zap.SugaredLogger
}

// NewServer builds a Server listening on addr, serving h through at
// most threads concurrently-accepted connections.
func NewServer(addr string, threads int, h http.Handler, log *zap.SugaredLogger) *Server {
	if threads <= 0 {
		threads = 1
	}
	return &Server{
		httpSrv: &http.Server{
			Addr:        addr,
			Handler:     h,
			ReadTimeout: 30 * time.Second,
		},
		gate: make(chan struct{}, threads),
		log:  log,
	}
}

// ListenAndServe binds addr and blocks serving requests until the
// listener is closed (by Shutdown) or a fatal accept error occurs.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.httpSrv.Addr)
	if err != nil {
		return err
	}
	s.log.Infow("listening", "addr", ln.Addr().String())
	return s.httpSrv.Serve(&gatedListener{Listener: ln, gate: s.gate})
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown() error {
	return s.httpSrv.Shutdown(context.Background())
}

// gatedListener bounds the number of concurrently-accepted connections
// to the server's configured thread count, mirroring the C original's
// fixed-size thread pool rather than letting net/http spawn a goroutine
// per connection unconditionally.
type gatedListener struct {
	net.Listener
	gate chan struct{}
}

func (g *gatedListener) Accept() (net.Conn, error) {
	g.gate <- struct{}{}
	c, err := g.Listener.Accept()
	if err != nil {
		<-g.gate
		return nil, err
	}
	return &gatedConn{Conn: c, gate: g.gate}, nil
}

type gatedConn struct {
	net.Conn
	gate chan struct{}
	once bool
}

func (c *gatedConn) Close() error {
	if !c.once {
		c.once = true
		<-c.gate
	}
	return c.Conn.Close()
}
