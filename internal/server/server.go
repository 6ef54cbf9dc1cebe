// Package server owns the listening socket: it binds eagerly, serves until
// the context is cancelled, and then shuts the HTTP server down.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/f4ah6o/srcserve/internal/config"
)

// Version is reported in the Server response header.
const Version = "0.1.0"

// Server is a bound HTTP server. Create it with Listen.
type Server struct {
	listener        net.Listener
	server          *http.Server
	shutdownTimeout time.Duration
}

// Listen binds cfg.Addr() right away so a busy port is reported before anything is served.
func Listen(cfg config.Config, handler http.Handler) (*Server, error) {
	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", cfg.Addr(), err)
	}

	return &Server{
		listener: ln,
		server: &http.Server{
			Handler:  withServerHeader(logRequests(handler)),
			ErrorLog: log.Default(),
		},
		shutdownTimeout: cfg.ShutdownTimeout,
	}, nil
}

// Addr returns the address the listener is bound to.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Serve accepts connections until ctx is cancelled or serving fails.
// A stop caused by ctx returns nil. The listener is closed on return.
func (s *Server) Serve(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.server.Serve(s.listener); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown did not finish in %s, closing connections: %v", s.shutdownTimeout, err)
			return s.server.Close()
		}
		return nil
	})

	return g.Wait()
}

// Close stops the server immediately without waiting for in-flight requests.
func (s *Server) Close() error {
	err := s.server.Close()
	if cerr := s.listener.Close(); err == nil && !errors.Is(cerr, net.ErrClosed) {
		err = cerr
	}
	return err
}

func withServerHeader(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", "srcserve/"+Version)
		h.ServeHTTP(w, r)
	})
}
