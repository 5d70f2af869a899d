// Package server provides HTTP server initialization and management.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/BiblioNova/bookhaven-go/internal/application/container"
	"github.com/BiblioNova/bookhaven-go/internal/presentation/http/routes"
	"github.com/BiblioNova/bookhaven-go/pkg/config"
)

// Server wraps the portal's HTTP server with its wired dependencies.
type Server struct {
	httpServer *http.Server
	container  *container.Container
}

// New builds the route table and binds the server to the given port.
func New(port string, container *container.Container) *Server {
	router := routes.SetupRoutes(container)

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	return &Server{
		httpServer: httpServer,
		container:  container,
	}
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.container.Logger.System().Info("HTTP server listening", "address", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}

	return nil
}

// Stop drains in-flight requests within the configured shutdown window and
// reports the operation totals accumulated over the run.
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, config.ServerShutdownTimeout)
	defer cancel()

	stats := s.container.PerfTracker.GetStats()
	s.container.Logger.Perf().Info("Operation totals at shutdown",
		"uptime", stats.Uptime,
		"operations", stats.TotalOperations,
		"failed", stats.FailedCount,
		"averageDuration", stats.AverageDuration)

	s.container.Logger.Shutdown().Info("HTTP server stopping", "timeout", config.ServerShutdownTimeout)
	return s.httpServer.Shutdown(ctx)
}
