// Package server mirrors the knob over HTTP and websockets.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/alkime/knob/internal/config"
	"github.com/alkime/knob/pkg/channels"
	"github.com/alkime/knob/pkg/knob"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

// Controller forwards changes to the goroutine that owns the knob.
// Implementations must not block.
type Controller interface {
	SetValue(v float64, animated bool)
	Reset(animated bool)
}

// StateSource provides the latest knob state.
type StateSource interface {
	Snapshot() knob.Snapshot
}

// StatsSource reports event delivery counters.
type StatsSource interface {
	Stats() []channels.SubscriberStats
}

// Server represents the HTTP server
type Server struct {
	config *config.Config
	logger *slog.Logger
	router *gin.Engine

	hub   *Hub
	state StateSource
	ctl   Controller
	stats StatsSource
}

// Option customizes a Server.
type Option func(*Server)

// WithStats exposes delivery counters on /api/v1/stats.
func WithStats(s StatsSource) Option {
	return func(srv *Server) {
		srv.stats = s
	}
}

// New creates a new Server instance
func New(cfg *config.Config, logger *slog.Logger, hub *Hub, state StateSource, ctl Controller, opts ...Option) *Server {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	server := &Server{
		config: cfg,
		logger: logger,
		router: router,
		hub:    hub,
		state:  state,
		ctl:    ctl,
	}

	for _, opt := range opts {
		opt(server)
	}

	setupSecurityMiddleware(router, cfg, logger)
	server.setupRoutes()

	return server
}

// Router returns the underlying handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening", "addr", s.config.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}

	return nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/ws", s.handleWS)

	api := s.router.Group("/api/v1")
	{
		api.GET("/knob", s.handleGetKnob)
		api.PUT("/knob/value", s.handleSetValue)
		api.POST("/knob/reset", s.handleReset)
		api.GET("/stats", s.handleStats)
	}

	// The mirror page; static only answers for files that exist.
	s.router.Use(static.Serve("/", static.LocalFile(s.config.PublicDir, false)))
}

// handleHealth handles the health check endpoint
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "knob",
	})
}

func (s *Server) handleGetKnob(c *gin.Context) {
	c.JSON(http.StatusOK, s.state.Snapshot())
}

type setValueRequest struct {
	Value    *float64 `json:"value" binding:"required"`
	Animated *bool    `json:"animated"`
}

func (s *Server) handleSetValue(c *gin.Context) {
	var req setValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if math.IsNaN(*req.Value) || math.IsInf(*req.Value, 0) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value must be finite"})
		return
	}

	animated := req.Animated == nil || *req.Animated
	s.ctl.SetValue(*req.Value, animated)

	s.logger.Debug("Value change requested over HTTP", "value", *req.Value, "animated", animated)

	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

func (s *Server) handleReset(c *gin.Context) {
	s.ctl.Reset(true)
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

func (s *Server) handleStats(c *gin.Context) {
	resp := gin.H{"clients": s.hub.Clients()}
	if s.stats != nil {
		resp["subscribers"] = s.stats.Stats()
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleWS(c *gin.Context) {
	hello, err := marshalEnvelope("state_init", time.Now(), s.state.Snapshot())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.hub.serve(c.Writer, c.Request, hello)
}
