package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/mww/dreamsquad/controller"
)

type Options struct {
	Port        int
	JWTSecret   string
	TokenTTL    time.Duration
	CORSOrigins []string

	// Limiter may be nil, which turns rate limiting off.
	Limiter    RateLimiter
	RateLimit  int
	RateWindow time.Duration

	// The admin routes are only mounted when a password is set.
	AdminUser     string
	AdminPassword string

	// Health is called by /health, usually the database ping.
	Health func(context.Context) error
}

type Server struct {
	server *http.Server
}

func NewServer(opts *Options, ctrl controller.C) (*Server, error) {
	if opts == nil || opts.JWTSecret == "" {
		return nil, errors.New("a JWT secret is required")
	}
	if ctrl == nil {
		return nil, errors.New("controller is required")
	}

	render := newRender()
	router := getRouter(ctrl, opts, newTokens(opts.JWTSecret, opts.TokenTTL), render)

	s := &Server{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) ListenAndServe(shutdown chan bool, wg *sync.WaitGroup) {
	go func() {
		defer wg.Done()

		// Wait for the shutdown signal and safely close the server.
		<-shutdown

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			slog.Error("error shutting down server", "error", err)
		}
	}()

	slog.Info("web server is listening", "addr", s.server.Addr)
	err := s.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("fatal error with server", "error", err)
		os.Exit(1)
	}
}
