// Package server exposes the planner over HTTP: a gin REST API for one-shot
// recomputes and a websocket endpoint for live planning sessions.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andrescamacho/ti-habitat-planner/internal/application/setup"
)

// Server wires the router, rate limiter and session hub around a planner app
type Server struct {
	app     *setup.App
	router  *gin.Engine
	hub     *Hub
	limiter *ipRateLimiter
}

// NewServer builds the router for app. Nothing listens until Run.
func NewServer(app *setup.App) *Server {
	gin.SetMode(app.Config.Server.GinMode)
	registerValidators()

	s := &Server{
		app:     app,
		hub:     NewHub(app.APIMetrics, app.Logger),
		limiter: newIPRateLimiter(app.Config.Server.RateLimit.Requests, app.Config.Server.RateLimit.Burst),
	}
	s.router = s.newRouter()
	return s
}

// Handler returns the HTTP handler serving every route
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hub returns the websocket session hub
func (s *Server) Hub() *Hub {
	return s.hub
}

// ReloadCatalog re-reads the catalog and tells every live session. A failed
// reload keeps the previous catalog and sessions are not notified.
func (s *Server) ReloadCatalog() error {
	c, err := s.app.ReloadCatalog()
	if err != nil {
		return err
	}
	s.hub.Broadcast(ServerMessage{Type: MessageCatalogReloaded, Modules: c.Len()})
	return nil
}

// Run listens on the configured address until ctx is cancelled, then drains
// in-flight requests for at most the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	cfg := s.app.Config.Server
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	s.app.Logger.Log("INFO", "Server listening", map[string]interface{}{
		"address": addr,
	})

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.app.Logger.Log("INFO", "Shutting down server", map[string]interface{}{
		"timeout": cfg.ShutdownTimeout.String(),
	})
	s.hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// WatchReloads reloads the catalog each time a value arrives on signals,
// until ctx is done
func (s *Server) WatchReloads(ctx context.Context, signals <-chan os.Signal) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-signals:
			// failures are logged by the app and keep the previous catalog
			_ = s.ReloadCatalog()
		}
	}
}
