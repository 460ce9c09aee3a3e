package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/playbox/internal/api/handler"
	"github.com/jon4hz/playbox/internal/config"
	"github.com/jon4hz/playbox/internal/facade"
)

type Server struct {
	cfg       *config.Config
	ginEngine *gin.Engine
	library   *facade.Library
}

func New(cfg *config.Config, library *facade.Library) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if library == nil {
		return nil, fmt.Errorf("library is required")
	}

	if log.GetLevel() != log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:       cfg,
		ginEngine: gin.New(),
		library:   library,
	}
	s.ginEngine.Use(gin.Recovery(), requestLogger(), gzip.Gzip(gzip.DefaultCompression))
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	h := handler.New(s.library)

	api := s.ginEngine.Group("/api")
	api.GET("/overview", h.Overview)

	playlists := api.Group("/playlists")
	playlists.GET("", h.ListPlaylists)
	playlists.POST("", h.SavePlaylist)
	playlists.GET("/names", h.ListPlaylistNames)
	playlists.GET("/:id", h.GetPlaylist)
	playlists.PUT("/:id", h.SavePlaylist)
	playlists.DELETE("/:id", h.DeletePlaylist)
	playlists.GET("/:id/media", h.ListPlaylistMedia)
	playlists.POST("/:id/media", h.AddPlaylistMedium)
	playlists.DELETE("/:id/media/:mediumId", h.RemovePlaylistMedium)
	playlists.GET("/:id/available", h.ListAvailableMedia)

	media := api.Group("/media")
	media.GET("", h.ListMedia)
	media.POST("", h.SaveMedium)
	media.GET("/names", h.ListMediumNames)
	media.GET("/:id", h.GetMedium)
	media.PUT("/:id", h.SaveMedium)
	media.DELETE("/:id", h.DeleteMedium)
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.ginEngine
}

// Run serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.ginEngine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "listen", s.cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
