package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"stylometer/internal/config"
)

// NewRouter wires the model and classification endpoints.
func NewRouter(cfg config.Config, logger zerolog.Logger) *gin.Engine {
	if logger.GetLevel() > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logging.GinMiddleware())
	engine.NoMethod(uniresp.NoMethodHandler)
	engine.NoRoute(uniresp.NotFoundHandler)

	actions := NewActions(cfg, logger)

	engine.GET("/models", actions.ListModels)
	engine.GET("/models/:name", actions.ModelInfo)
	engine.POST("/models/:name/text", actions.AddText)
	engine.POST("/classify", actions.Classify)
	engine.GET("/classifications", actions.History)

	return engine
}

// Serve runs the API until ctx is cancelled, then shuts the server down.
func Serve(ctx context.Context, cfg config.Config, logger zerolog.Logger) error {
	server := &http.Server{
		Addr:              cfg.API.Bind,
		Handler:           NewRouter(cfg, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("bind", cfg.API.Bind).Msg("starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
