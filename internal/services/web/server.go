package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/showcase/internal/platform/timeouts"
	"github.com/louisbranch/showcase/internal/services/web/app"
	"github.com/louisbranch/showcase/internal/services/web/platform/requestmeta"
)

// Config defines the inputs for the site server.
type Config struct {
	HTTPAddr    string
	SessionTTL  time.Duration
	MaxSessions int
	// TrustForwardedProto honours X-Forwarded-Proto from a fronting proxy.
	TrustForwardedProto bool
}

// Server hosts the site HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// NewServer bootstraps the app and builds a configured server.
func NewServer(ctx context.Context, config Config) (*Server, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}

	handler, err := app.Bootstrap(ctx, app.Options{
		SessionTTL:   config.SessionTTL,
		MaxSessions:  config.MaxSessions,
		SchemePolicy: requestmeta.SchemePolicy{TrustForwardedProto: config.TrustForwardedProto},
	})
	if err != nil {
		return nil, fmt.Errorf("bootstrap app: %w", err)
	}
	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           handler,
		ReadHeaderTimeout: timeouts.ReadHeader,
		IdleTimeout:       timeouts.Idle,
	}

	return &Server{
		httpAddr:   httpAddr,
		httpServer: httpServer,
	}, nil
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler {
	if s == nil || s.httpServer == nil {
		return nil
	}
	return s.httpServer.Handler
}

// ListenAndServe runs the HTTP server until the context ends.
//
// On cancellation, it performs a bounded shutdown so in-flight requests
// are drained before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("web listening addr=%s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close stops the server immediately.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	if err := s.httpServer.Close(); err != nil {
		log.Printf("close http server: %v", err)
	}
}
