// Package transporthttp exposes the portfolio reconstruction service over a
// small JSON API.
package transporthttp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"portview/internal/gateway/coinswitch"
	"portview/internal/logger"
	"portview/internal/portfolio"
	"portview/internal/store/audit"

	"github.com/gin-gonic/gin"
)

// Server hosts the portfolio API.
type Server struct {
	addr   string
	router *gin.Engine
	http   *http.Server
}

// ServerConfig describes the server's dependencies. Audit is optional.
type ServerConfig struct {
	Addr           string
	Portfolio      *portfolio.Service
	Gateway        *coinswitch.Client
	Audit          *audit.Store
	RequestTimeout time.Duration
}

func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Portfolio == nil {
		return nil, errors.New("portfolio service is required")
	}
	if cfg.Gateway == nil {
		return nil, errors.New("coinswitch gateway is required")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8085"
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := &handlers{
		portfolio: cfg.Portfolio,
		gateway:   cfg.Gateway,
		audit:     cfg.Audit,
		timeout:   cfg.RequestTimeout,
	}
	api := router.Group("/api/v1")
	api.GET("/portfolio/series", h.handleSeries)
	api.GET("/portfolio/chart", h.handleChart)
	api.GET("/trading/summary", h.handleTradingSummary)
	api.GET("/strategies/profits", h.handleStrategyProfits)
	if cfg.Audit != nil {
		api.GET("/audit/calls", h.handleAuditCalls)
	}

	return &Server{addr: cfg.Addr, router: router}, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.http = &http.Server{Addr: s.addr, Handler: s.router}
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("[http] listening on %s", s.addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() http.Handler { return s.router }

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path
		c.Next()
		logger.Infof("[http] %s %s -> %d in %s", method, path,
			c.Writer.Status(), time.Since(start).Round(time.Millisecond))
	}
}
