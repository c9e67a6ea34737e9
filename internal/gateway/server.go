package gateway

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/muurk/cayenne/internal/config"
	"github.com/muurk/cayenne/internal/discovery"
	"github.com/muurk/cayenne/internal/logging"
	"github.com/muurk/cayenne/internal/metrics"
	"github.com/muurk/cayenne/lpp"
)

// Server is the decode gateway: an HTTP/WebSocket front end over a
// shared LPP decoder.
type Server struct {
	config     *config.Config
	decoder    *lpp.Decoder
	metrics    *metrics.Metrics
	registry   *prometheus.Registry
	hub        *Hub
	httpServer *http.Server
	listener   net.Listener
}

// New creates a new Server instance from the given configuration. The
// decoder is preloaded with the standard types plus any custom types the
// configuration declares.
func New(cfg *config.Config) (*Server, error) {
	if err := logging.Initialize(cfg.Logging.Level); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	decoder := lpp.NewDecoder()
	if err := config.RegisterCustomTypes(decoder, cfg.CustomTypes); err != nil {
		return nil, fmt.Errorf("failed to register custom types: %w", err)
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	s := &Server{
		config:   cfg,
		decoder:  decoder,
		metrics:  m,
		registry: registry,
		hub:      newHub(m),
	}
	s.httpServer = &http.Server{
		Handler:      s.routes(),
		ReadTimeout:  time.Duration(cfg.Gateway.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Gateway.WriteTimeout) * time.Second,
	}

	go s.hub.run()
	return s, nil
}

// Start starts the gateway and blocks until a shutdown signal arrives or
// the listener fails.
func (s *Server) Start() error {
	addr := s.config.Gateway.Addr()

	logging.Info("Starting Cayenne decode gateway",
		zap.String("addr", addr),
		zap.Int("custom_types", len(s.config.CustomTypes)),
		zap.String("log_level", s.config.Logging.Level),
	)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	s.listener = listener

	var mdns *discovery.Advertiser
	if s.config.Discovery.Enabled {
		mdns, err = discovery.Advertise(s.config.Discovery.Instance, s.config.Gateway.Port)
		if err != nil {
			// Advertising is best effort, the gateway still serves.
			logging.Warn("mDNS advertisement failed", zap.Error(err))
		} else {
			logging.Info("Advertising gateway over mDNS",
				zap.String("service", discovery.ServiceType),
				zap.String("instance", mdns.Instance()),
			)
		}
	}

	logging.Info("Gateway listening for requests", zap.String("addr", addr))

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			errChan <- err
			return
		}
		errChan <- nil
	}()

	select {
	case <-sigChan:
		logging.Info("Shutdown signal received, stopping gateway...")
		if mdns != nil {
			mdns.Shutdown()
		}
		return s.Shutdown(context.Background())
	case err := <-errChan:
		if mdns != nil {
			mdns.Shutdown()
		}
		return err
	}
}

// Shutdown gracefully shuts down the gateway.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down gateway...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	s.hub.close()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error("Error shutting down HTTP server", zap.Error(err))
		return err
	}

	logging.Info("Gateway stopped")
	logging.Sync()
	return nil
}

// Addr returns the bound listen address, valid after Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.config.Gateway.Addr()
	}
	return s.listener.Addr().String()
}
