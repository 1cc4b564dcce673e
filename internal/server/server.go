// Package server implements the Chipi development backend: the three JSON
// endpoints the client speaks (/api/login, /api/register, /api/message), a
// JSON-file account store with hashed passwords and login lockout, and a
// websocket event tap for debugging.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/chipi-ai/chipi/internal/assistant"
	"github.com/chipi-ai/chipi/internal/discovery"
	"github.com/chipi-ai/chipi/internal/logging"
	"github.com/chipi-ai/chipi/internal/version"
)

// Options configures a Server.
type Options struct {
	// Addr is the listen address, e.g. ":8600".
	Addr string

	// UserFile is the path of the JSON account store.
	UserFile string

	// Assistant configures reply generation.
	Assistant assistant.Config

	// Announce enables mDNS advertisement so clients can discover the
	// server with "chipi scan".
	Announce bool

	// Instance is the mDNS instance name when announcing.
	Instance string
}

// Server is the development backend.
type Server struct {
	opts      Options
	store     *Store
	assistant *assistant.Assistant
	events    *eventHub
}

// New creates a Server, loading the account store from opts.UserFile.
func New(opts Options) (*Server, error) {
	if opts.Addr == "" {
		opts.Addr = ":8600"
	}
	if opts.Instance == "" {
		host, _ := os.Hostname()
		if host == "" {
			host = "chipi-server"
		}
		opts.Instance = "chipi-" + host
	}

	store, err := NewStore(opts.UserFile)
	if err != nil {
		return nil, err
	}

	return &Server{
		opts:      opts,
		store:     store,
		assistant: assistant.New(opts.Assistant),
		events:    newEventHub(),
	}, nil
}

// Run serves until ctx is cancelled or an interrupt arrives, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpSrv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	var announcer *zeroconf.Server
	if s.opts.Announce {
		port, err := listenPort(s.opts.Addr)
		if err != nil {
			return err
		}
		announcer, err = discovery.Announce(s.opts.Instance, port, version.Version)
		if err != nil {
			// Discovery is a convenience; keep serving without it.
			logging.Warn("mDNS announce failed", zap.Error(err))
		} else {
			logging.Info("announcing on local network",
				zap.String("instance", s.opts.Instance),
				zap.Int("port", port),
			)
		}
	}
	if announcer != nil {
		defer announcer.Shutdown()
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("server listening",
			zap.String("addr", s.opts.Addr),
			zap.Bool("remote_model", s.assistant.RemoteEnabled()),
			zap.Int("users", s.store.Count()),
		)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logging.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

// listenPort extracts the numeric port from a listen address.
func listenPort(addr string) (int, error) {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, fmt.Errorf("invalid listen address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, fmt.Errorf("invalid listen port %q: %w", portStr, err)
	}
	return port, nil
}
