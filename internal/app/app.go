package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/you/librarysvc/internal/config"
	"github.com/you/librarysvc/internal/observability"
)

const shutdownTimeout = 15 * time.Second

// Run serves the API until ctx is cancelled, then drains in-flight requests and stops background jobs
func Run(ctx context.Context, cfg *config.Config) error {
	gin.SetMode(cfg.GinMode)
	logger := observability.NewLogger(cfg.LogLevel, cfg.GinMode, nil)

	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.SeedAdmin(ctx); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	scheduler, err := c.Scheduler()
	if err != nil {
		return err
	}
	scheduler.Start()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", srv.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			scheduler.Stop(context.Background())
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	scheduler.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
