package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"game-scheduler/core/logger"
	"game-scheduler/core/middleware"
	"game-scheduler/core/validator"
	"game-scheduler/modules/availability"
	"game-scheduler/modules/export"
	"game-scheduler/modules/scheduling"
	"game-scheduler/modules/team"

	"github.com/labstack/echo/v4"
)

// NewEcho builds the HTTP server with every module's routes.
func NewEcho(app *App) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator.New()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger())

	e.GET("/health", func(c echo.Context) error {
		if err := app.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	scheduling.Init(e, app.DB, app.Cache, app.Config.Scheduling)
	availability.Init(e, app.DB)
	team.Init(e, app.DB)
	export.Init(e, app.export)

	return e
}

// Serve runs the HTTP server and the embedded export worker until ctx is
// cancelled, then shuts both down.
func Serve(ctx context.Context, app *App) error {
	e := NewEcho(app)

	worker := app.NewWorker()
	if worker != nil {
		if err := worker.Start(); err != nil {
			return fmt.Errorf("starting worker: %w", err)
		}
		defer worker.Shutdown()
	}

	addr := fmt.Sprintf("%s:%d", app.Config.Server.Host, app.Config.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "addr", addr, "env", app.Config.Server.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// RunWorker processes export tasks until ctx is cancelled.
func RunWorker(ctx context.Context, app *App) error {
	worker := app.NewWorker()
	if worker == nil {
		return errors.New("worker needs redis.enabled")
	}
	if err := worker.Start(); err != nil {
		return fmt.Errorf("starting worker: %w", err)
	}

	logger.Info("Worker started", "concurrency", app.Config.Queue.Concurrency)
	<-ctx.Done()
	logger.Info("Worker shutting down")
	worker.Shutdown()
	return nil
}
