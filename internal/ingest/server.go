package ingest

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/dbug/internal/config"
	"github.com/zjrosen/dbug/internal/log"
	"github.com/zjrosen/dbug/internal/payload"
)

// Server wraps the Handler with an http.Server for lifecycle management.
type Server struct {
	handler  *Handler
	server   *http.Server
	listener net.Listener
	addr     string
	port     int // bound port, useful with :0
}

// ServerConfig configures the ingestion server.
type ServerConfig struct {
	// Addr to listen on, e.g. "127.0.0.1:53821". Port 0 picks a free port.
	Addr         string
	Service      *payload.Service
	MaxBodyBytes int64
	CORS         config.CORSConfig
	Tracer       trace.Tracer
	// ReadTimeout defaults to 30s.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewServer binds the listener immediately so address conflicts surface
// before the viewer starts.
func NewServer(cfg ServerConfig) (*Server, error) {
	handler := NewHandler(HandlerConfig{
		Service:      cfg.Service,
		MaxBodyBytes: cfg.MaxBodyBytes,
		CORS:         cfg.CORS,
		Tracer:       cfg.Tracer,
	})

	readTimeout := cfg.ReadTimeout
	if readTimeout == 0 {
		readTimeout = 30 * time.Second
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout == 0 {
		writeTimeout = 30 * time.Second
	}

	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", cfg.Addr, err)
	}

	port := 0
	if tcpAddr, ok := listener.Addr().(*net.TCPAddr); ok {
		port = tcpAddr.Port
	}

	return &Server{
		handler:  handler,
		addr:     cfg.Addr,
		port:     port,
		listener: listener,
		server: &http.Server{
			Handler:           handler.Routes(),
			ReadTimeout:       readTimeout,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      writeTimeout,
		},
	}, nil
}

// Start serves until Stop is called. A clean shutdown returns nil.
func (s *Server) Start() error {
	log.Info(log.CatServer, "Starting ingestion server", "addr", s.Addr(), "port", s.port)
	if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve %s: %w", s.Addr(), err)
	}
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	log.Info(log.CatServer, "Stopping ingestion server")
	err := s.server.Shutdown(ctx)
	// Serve may never have run; the listener is ours to release either way.
	_ = s.listener.Close()
	return err
}

// Port returns the bound port.
func (s *Server) Port() int {
	return s.port
}

// Addr returns the bound address, e.g. "127.0.0.1:53821".
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// URL is the endpoint webhooks should be pointed at.
func (s *Server) URL() string {
	return "http://" + s.Addr()
}
