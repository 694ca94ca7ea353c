package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/ebay-seller-metrics/internal/api/handlers"
	"github.com/donaldgifford/ebay-seller-metrics/internal/api/middleware"
	"github.com/donaldgifford/ebay-seller-metrics/internal/engine"
	"github.com/donaldgifford/ebay-seller-metrics/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server and poll scheduler",
		RunE:  runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	cfg, log := a.cfg, a.log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:     cfg.Telemetry.Enabled,
		Endpoint:    cfg.Telemetry.Endpoint,
		Insecure:    cfg.Telemetry.Insecure,
		ServiceName: cfg.Telemetry.ServiceName,
		Version:     Version,
	})
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}

	st, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	if !a.session.Authorized() {
		log.Warn("no refresh token configured, visit /oauth/authorize to grant access")
	}

	poller := engine.NewPoller(
		a.session,
		a.collector(),
		st,
		a.notifier(),
		engine.WithLogger(log),
		engine.WithRetention(cfg.Schedule.SnapshotRetention),
	)
	if err := poller.Init(ctx, cfg.Schedule.StaleAfter); err != nil {
		return fmt.Errorf("initializing poller: %w", err)
	}

	sched, err := engine.NewScheduler(poller, st, cfg.Schedule.PollInterval, cfg.Schedule.StaleAfter, log)
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}
	sched.Start()
	// The first scheduled poll is a full interval away.
	sched.PollNow()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())

	handlers.RegisterHealthRoutes(e, handlers.NewHealthHandler(handlers.PingerCheck("store", st)))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("ebay-seller-metrics", Version))
	handlers.RegisterSnapshotRoutes(api, handlers.NewSnapshotHandler(poller))
	handlers.RegisterPollRoutes(api, handlers.NewPollHandler(poller, cfg.Server.PollTriggerInterval))
	handlers.RegisterHistoryRoutes(api, handlers.NewHistoryHandler(st))
	handlers.RegisterOAuthRoutes(api, handlers.NewOAuthHandler(a.oauth, a.state, a.session))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr, "poll_interval", cfg.Schedule.PollInterval)

	serverErr := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			log.Error("server error", "error", err)
		}
	}

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	select {
	case <-sched.Stop().Done():
	case <-shutdownCtx.Done():
		log.Warn("scheduled jobs still running at shutdown")
	}

	var errs []error
	if err := e.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("shutting down server: %w", err))
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("shutting down telemetry: %w", err))
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	log.Info("server stopped")
	return nil
}
