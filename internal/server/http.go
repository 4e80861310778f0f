package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/driveassist/auth-server/internal/model"
)

// HTTPServer serves the HTTP API on a listener produced by a
// model.SecurityLayer. It implements model.Server.
type HTTPServer struct {
	srv  *http.Server
	addr string
}

// NewHTTPServer returns an HTTPServer that serves handler on addr.
func NewHTTPServer(addr string, handler http.Handler) *HTTPServer {
	return &HTTPServer{
		srv: &http.Server{
			Addr:    addr,
			Handler: handler,
		},
		addr: addr,
	}
}

// Start opens a listener through the security layer and serves on it.
// It blocks until the server stops; a shutdown via Stop returns nil.
func (s *HTTPServer) Start(securityLayer model.SecurityLayer) error {
	listener, err := securityLayer.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}

	if err := s.srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}

// Stop shuts the server down gracefully, waiting for in-flight
// requests until ctx is done.
func (s *HTTPServer) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Address returns the address the server listens on.
func (s *HTTPServer) Address() string {
	return s.addr
}
