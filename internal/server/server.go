// Package server exposes the tutor over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/algebrix/algebrix/internal/metrics"
	"github.com/algebrix/algebrix/internal/tutor"
)

// SessionHeader carries the session ID issued by POST /login.
const SessionHeader = "X-Session-ID"

const sessionKey = "session_id"

// Server is the HTTP transport over a tutor.Service.
type Server struct {
	svc     *tutor.Service
	metrics *metrics.Metrics
	logger  *zap.Logger
	router  *gin.Engine
}

// New builds the router. metrics may be nil, in which case /metrics is not
// served.
func New(svc *tutor.Service, m *metrics.Metrics, logger *zap.Logger, mode string) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if mode != "" {
		gin.SetMode(mode)
	}

	s := &Server{
		svc:     svc,
		metrics: m,
		logger:  logger.Named("http"),
		router:  gin.New(),
	}

	s.router.Use(gin.Recovery(), s.requestLogger())
	if m != nil {
		s.router.Use(m.Middleware())
	}
	s.registerRoutes()
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) registerRoutes() {
	r := s.router

	r.GET("/health", s.health)
	if s.metrics != nil {
		r.GET("/metrics", s.metrics.Handler())
	}

	r.POST("/login", s.login)
	r.GET("/quiz/questions", s.quizQuestions)

	authed := r.Group("/")
	authed.Use(s.requireSession())
	{
		authed.POST("/quiz/submit", s.quizSubmit)

		authed.GET("/progress/data", s.progressData)
		authed.GET("/progress/:kind", s.progressKind)

		authed.GET("/:kind/equations", s.equations)
		authed.GET("/:kind/equation/:id", s.openEquation)
		authed.POST("/:kind/check_answer", s.checkAnswer)
		authed.GET("/:kind/hint", s.hint)
		authed.GET("/:kind/explain", s.explain)
	}

	r.GET("/:kind/graph_data/:id", s.graphData)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// requireSession resolves the session header and rejects unknown IDs.
func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			fail(c, http.StatusUnauthorized, "missing "+SessionHeader+" header")
			return
		}
		if _, err := s.svc.Session(id); err != nil {
			s.failErr(c, err)
			return
		}
		c.Set(sessionKey, id)
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

func zapRequest(c *gin.Context, err error) []zap.Field {
	return []zap.Field{
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	}
}
