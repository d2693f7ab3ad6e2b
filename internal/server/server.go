// Package server exposes a session.Table over HTTP with JSON bodies.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/hfchat/internal/session"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const shutdownGrace = 5 * time.Second

// SetupMux wires the handlers with the middleware chain.
func SetupMux(table *session.Table) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", chat(table))
	mux.HandleFunc("GET /sessions", sessions(table))
	mux.HandleFunc("GET /sessions/{id}/history", history(table))
	mux.HandleFunc("DELETE /sessions/{id}/history", clearHistory(table))
	mux.HandleFunc("GET /health", health(table))
	mux.Handle("GET /metrics", promhttp.Handler())
	return chain(mux)
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, h http.Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on '%v': %w", addr, err)
	}
	return serveListener(ctx, ln, h)
}

func serveListener(ctx context.Context, ln net.Listener, h http.Handler) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ancli.PrintOK(fmt.Sprintf("serving on: http://%v\n", ln.Addr()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
		return nil
	})
	return g.Wait()
}
