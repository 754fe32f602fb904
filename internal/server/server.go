package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/haguru/booknest/internal/interfaces"
)

var (
	ReadTimeout  = 10 * time.Second
	WriteTimeout = 10 * time.Second
	IdleTimeout  = 30 * time.Second
)

// Server wraps a net/http server around a ServeMux with fixed timeouts.
type Server struct {
	addr   string
	mux    *http.ServeMux
	server *http.Server
	logger interfaces.Logger
}

// NewServer creates a Server listening on host:port.
func NewServer(host, port string, logger interfaces.Logger) interfaces.Server {
	mux := http.NewServeMux()
	addr := net.JoinHostPort(host, port)

	return &Server{
		addr: addr,
		mux:  mux,
		server: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  ReadTimeout,
			WriteTimeout: WriteTimeout,
			IdleTimeout:  IdleTimeout,
		},
		logger: logger,
	}
}

// AddRoute registers a handler for the given path.
func (s *Server) AddRoute(route string, handler func(w http.ResponseWriter, r *http.Request)) error {
	s.mux.HandleFunc(route, handler)
	s.logger.Info("Route added", "route", route)
	return nil
}

// ListenAndServe starts the server and blocks until it stops.
func (s *Server) ListenAndServe() error {
	s.logger.Info("Starting server", "addr", s.addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Server stopped", "error", err)
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server", "addr", s.addr)
	return s.server.Shutdown(ctx)
}
