// Package api exposes the planning engine over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ebi50/training28-sub000/internal/constants"
	"github.com/Ebi50/training28-sub000/internal/logger"
	"github.com/Ebi50/training28-sub000/internal/scheduler"
)

const shutdownTimeout = 10 * time.Second

// Pinger is checked by the health endpoint when set.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	planning scheduler.PlanningConfig
	db       Pinger
	now      func() time.Time
}

func New(planning scheduler.PlanningConfig, db Pinger) *Server {
	return &Server{planning: planning, db: db, now: time.Now}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/healthz", s.handleHealth)

	v1 := r.Group("/v1")
	{
		v1.POST("/plans/generate", s.handleGeneratePlan)
		v1.POST("/sessions/adapt", s.handleAdaptSessions)
		v1.GET("/phase", s.handlePhase)
		v1.POST("/load/update", s.handleLoadUpdate)
		v1.POST("/slots/validate", s.handleValidateSlots)
	}
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", "addr", addr)
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shut down HTTP server", "error", err)
			return err
		}
		logger.Info("HTTP server stopped")
		return nil
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	body := gin.H{"status": "ok", "version": constants.Version}
	if s.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			body["status"] = "unhealthy"
			body["database"] = err.Error()
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
		body["database"] = "ok"
	}
	c.JSON(http.StatusOK, body)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("HTTP request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
