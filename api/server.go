// Package api serves stored forecasts and current conditions over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"weatherboy/archive"
	"weatherboy/datasource"
	"weatherboy/models"
	"weatherboy/report"
	"weatherboy/store"
	"weatherboy/waybar"
)

const defaultHistoryLimit = 20

// History lists archived forecast runs. *archive.Store implements it.
type History interface {
	ListRuns(ctx context.Context, limit int) ([]archive.Run, error)
	DaysForRun(ctx context.Context, id uuid.UUID) ([]models.DaySummary, error)
}

// Options holds everything the server needs
type Options struct {
	Port       int
	Location   models.Location
	Store      *store.Store
	Job        *report.Job
	Conditions datasource.ConditionSource
	History    History // nil when the archive is disabled
	Timeout    time.Duration
	Logger     *slog.Logger
}

// Server represents the API server
type Server struct {
	opts   Options
	engine *gin.Engine
	server *http.Server
	logger *slog.Logger

	// refreshMu keeps provider fetches from running concurrently
	refreshMu sync.Mutex
}

// NewServer creates a new API server
func NewServer(opts Options) *Server {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		opts:   opts,
		engine: gin.New(),
		logger: logger.With("component", "api"),
	}
	s.engine.Use(gin.Recovery(), s.requestLogger())

	s.engine.GET("/api/health", s.handleHealthCheck)
	s.engine.GET("/api/forecast", s.handleForecast)
	s.engine.GET("/api/forecast/:date", s.handleForecastDay)
	s.engine.GET("/api/current", s.handleCurrent)
	s.engine.GET("/api/history", s.handleHistory)
	s.engine.GET("/api/history/:id", s.handleHistoryRun)
	s.engine.POST("/api/refresh", s.handleRefresh)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: s.engine,
	}
	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start begins the API server and blocks until it stops
func (s *Server) Start() error {
	s.logger.Info("starting API server", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

func (s *Server) handleHealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// handleForecast returns the last saved multi-day report
func (s *Server) handleForecast(c *gin.Context) {
	days, err := s.opts.Store.LoadReport()
	if errors.Is(err, store.ErrNoReport) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no forecast has been saved yet"})
		return
	}
	if err != nil {
		s.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"location": s.opts.Location.Name,
		"days":     days,
	})
}

func (s *Server) handleForecastDay(c *gin.Context) {
	date := c.Param("date")
	day, err := s.opts.Store.LoadDay(date)
	if errors.Is(err, store.ErrNoDay) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no forecast for %s", date)})
		return
	}
	if err != nil {
		s.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

// handleCurrent mirrors the status bar command: any failure yields the
// fallback payload rather than an error status
func (s *Server) handleCurrent(c *gin.Context) {
	if s.opts.Conditions == nil {
		c.JSON(http.StatusOK, waybar.Unavailable)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), s.opts.Timeout)
	defer cancel()

	cond, err := s.opts.Conditions.CurrentCondition(ctx, s.opts.Location)
	if err != nil {
		s.logger.Warn("current condition unavailable", "provider", s.opts.Conditions.Name(), "error", err)
		c.JSON(http.StatusOK, waybar.Unavailable)
		return
	}
	c.JSON(http.StatusOK, waybar.Current(cond))
}

func (s *Server) handleHistory(c *gin.Context) {
	if s.opts.History == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "history archive is disabled"})
		return
	}

	limit := defaultHistoryLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	runs, err := s.opts.History.ListRuns(c.Request.Context(), limit)
	if err != nil {
		s.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs, "count": len(runs)})
}

func (s *Server) handleHistoryRun(c *gin.Context) {
	if s.opts.History == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "history archive is disabled"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return
	}

	days, err := s.opts.History.DaysForRun(c.Request.Context(), id)
	if err != nil {
		s.serverError(c, err)
		return
	}
	if len(days) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no run %s", id)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "days": days})
}

// handleRefresh runs the forecast job once
func (s *Server) handleRefresh(c *gin.Context) {
	if s.opts.Job == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "refresh is not configured"})
		return
	}

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.opts.Timeout)
	defer cancel()

	res, err := s.opts.Job.Run(ctx, s.opts.Location)
	if errors.Is(err, datasource.ErrRateLimited) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "refresh rate limit exceeded, try again later"})
		return
	}
	if err != nil {
		s.logger.Error("refresh failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"run":  res.Run,
		"days": res.Days,
	})
}

func (s *Server) serverError(c *gin.Context, err error) {
	s.logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
