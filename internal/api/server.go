// SPDX-License-Identifier: EPL-2.0

package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ik5/yaudio/board"
	"github.com/ik5/yaudio/engine"
	"github.com/ik5/yaudio/notation"
	"github.com/ik5/yaudio/storage"
)

// Server exposes a board over HTTP.
type Server struct {
	board *board.Board
	audio *engine.Engine
	log   *slog.Logger
}

// NewServer wraps b. A nil logger selects slog.Default.
func NewServer(b *board.Board, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{board: b, audio: b.Engine(), log: logger}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests(), corsMiddleware())

	r.GET("/health", healthCheck)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/status", s.status)
		v1.POST("/notes", s.playNotes)
		v1.POST("/play", s.playFile)
		v1.POST("/stop", s.stop)
		v1.POST("/record", s.startRecording)
		v1.POST("/record/stop", s.stopRecording)
		v1.PUT("/volume", s.setVolume)
		v1.PUT("/leds", s.setLEDs)
		v1.GET("/sensors", s.sensors)
	}

	return r
}

// Run serves on port until ctx is done.
func (s *Server) Run(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.Handler(),
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	s.log.Info("api listening", "addr", srv.Addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		if err := srv.Shutdown(context.Background()); err != nil {
			return err
		}
		return nil
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.log.Debug("api request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
		)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "yaudio",
	})
}

// statusFor maps engine failures onto HTTP codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrAlreadyRecording),
		errors.Is(err, engine.ErrNotRecording),
		errors.Is(err, notation.ErrQueueFull):
		return http.StatusConflict
	case errors.Is(err, storage.ErrNotExist):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrUnsupportedFormat):
		return http.StatusUnprocessableEntity
	case errors.Is(err, engine.ErrSpeakerNotReady),
		errors.Is(err, engine.ErrMicNotReady),
		errors.Is(err, engine.ErrStorageUnavailable),
		errors.Is(err, engine.ErrClosed):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	}
	return http.StatusInternalServerError
}

func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
