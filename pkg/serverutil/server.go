package serverutil

import (
	"bytes"
	"net"
	"net/http"
	"net/http/pprof"
	"runtime/debug"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.ytsaurus.tech/library/go/core/log"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

// HealthCheck reports nil while the process is healthy.
type HealthCheck func() error

type Server struct {
	listener net.Listener
	logger   log.Logger
	mux      *http.ServeMux
}

func NewServer(network, address string, logger log.Logger) (*Server, error) {
	listener, err := net.Listen(network, address)
	if err != nil {
		return nil, xerrors.Errorf("listen %s %s: %w", network, address, err)
	}

	return &Server{
		listener: listener,
		logger:   logger,
		mux:      http.NewServeMux(),
	}, nil
}

func (s *Server) WithMetrics(gatherer prometheus.Gatherer) *Server {
	s.mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	}))
	return s
}

func (s *Server) WithHealth(check HealthCheck) *Server {
	s.mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		if check != nil {
			if err := check(); err != nil {
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return s
}

func (s *Server) WithPprof() *Server {
	s.mux.HandleFunc("/debug/pprof/", pprof.Index)
	s.mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	s.mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	s.mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	s.mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	s.mux.HandleFunc("/debug/heapdump", s.heapDumpHandler)
	return s
}

// Serve blocks until the listener is closed, a closed listener is not an error.
func (s *Server) Serve() error {
	s.logger.Info("serving debug endpoints", log.String("addr", s.Addr().String()))
	err := http.Serve(s.listener, s.mux)
	if xerrors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

func (s *Server) Close() error {
	return s.listener.Close()
}

func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

func (s *Server) heapDumpHandler(responseWriter http.ResponseWriter, request *http.Request) {
	hijacker, ok := responseWriter.(http.Hijacker)
	if !ok {
		s.logger.Error("not a hijackable connection")
		responseWriter.WriteHeader(http.StatusHTTPVersionNotSupported)
		return
	}

	conn, _, err := hijacker.Hijack()
	if err != nil {
		s.logger.Error("hijack failed", log.Error(err))
		responseWriter.WriteHeader(http.StatusInternalServerError)
		return
	}
	defer conn.Close()

	tcpConn, ok := conn.(*net.TCPConn)
	if !ok {
		s.logger.Error("cannot cast connection to TCPConn")
		return
	}

	file, err := tcpConn.File()
	if err != nil {
		s.logger.Error("dup failed", log.Error(err))
		return
	}
	defer file.Close()

	if err := writeHeapDumpHeader(conn, request.Proto); err != nil {
		s.logger.Error("cannot write debug header", log.Error(err))
		return
	}

	debug.WriteHeapDump(file.Fd())
}

var (
	crlf                = []byte("\r\n")
	heapDumpHeaderLines = [][]byte{
		[]byte("Content-Type: application/octet-stream"),
		[]byte("Connection: close"),
		crlf,
	}
)

func writeHeapDumpHeader(conn net.Conn, proto string) (err error) {
	headerLines := [][]byte{[]byte(proto + " 200 OK")}
	headerLines = append(headerLines, heapDumpHeaderLines...)
	for n, headerBuffer := 0, bytes.Join(headerLines, crlf); len(headerBuffer) > 0; headerBuffer = headerBuffer[n:] {
		n, err = conn.Write(headerBuffer)
		if err != nil {
			return err
		}
	}
	return nil
}
