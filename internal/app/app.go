// Package app wires the application together: configuration, logging,
// telemetry, the dashboard service, the HTTP router, the websocket hub and
// the optional refresh schedule.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/robfig/cron/v3"

	"salespulse/internal/config"
	"salespulse/internal/dataprocessing"
	apierrors "salespulse/internal/errors"
	"salespulse/internal/infrastructure"
	custommiddleware "salespulse/internal/middleware"
	"salespulse/internal/services"
	handlers "salespulse/internal/transport/http"
	ws "salespulse/internal/websocket"
)

// Version is set at build time.
var Version = "dev"

// Application is the main application container.
type Application struct {
	Config       *config.Config
	Logger       *slog.Logger
	Telemetry    *infrastructure.Telemetry
	Router       *chi.Mux
	Server       *http.Server
	Dashboard    *services.DashboardService
	Hub          *ws.Hub
	ErrorHandler *apierrors.ErrorHandler

	scheduler *cron.Cron
}

// New builds a fully wired application from configuration.
func New(cfg *config.Config) (*Application, error) {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	telemetry, err := infrastructure.InitializeTelemetry(logger)
	if err != nil {
		return nil, fmt.Errorf("initialize telemetry: %w", err)
	}

	hub := ws.NewHub(logger)
	loader := dataprocessing.NewLoader(logger)
	dashboard := services.NewDashboardService(
		loader,
		cfg.Dataset.Source,
		dataprocessing.Format(cfg.Dataset.Format),
		logger,
	).WithTelemetry(telemetry).WithNotifier(hub)

	errorHandler := apierrors.NewErrorHandler(logger, cfg.Logging.Development)

	a := &Application{
		Config:       cfg,
		Logger:       logger,
		Telemetry:    telemetry,
		Dashboard:    dashboard,
		Hub:          hub,
		ErrorHandler: errorHandler,
	}
	a.Router = a.buildRouter()
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	if cfg.Dataset.RefreshSchedule != "" {
		if err := a.scheduleRefresh(cfg.Dataset.RefreshSchedule); err != nil {
			return nil, fmt.Errorf("schedule dataset refresh: %w", err)
		}
	}

	return a, nil
}

func (a *Application) buildRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(custommiddleware.StructuredLogger(a.Logger))
	r.Use(custommiddleware.Recoverer(a.Logger))
	r.Use(custommiddleware.Metrics(a.Telemetry))
	if a.Config.Security.RateLimit.Enabled {
		limiter := custommiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		)
		r.Use(limiter.Handler)
	}

	dashboardHandler := handlers.NewDashboardHandler(a.Dashboard, a.Logger, a.ErrorHandler)
	filterHandler := handlers.NewFilterHandler(a.Dashboard, a.Logger, a.ErrorHandler)
	datasetHandler := handlers.NewDatasetHandler(a.Dashboard, a.Logger, a.ErrorHandler)
	healthHandler := handlers.NewHealthHandler(a.Dashboard, Version)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/dashboard", dashboardHandler.Routes())
		r.Mount("/filters", filterHandler.Routes())
		r.Mount("/dataset", datasetHandler.Routes())
		r.Get("/health", healthHandler.GetHealth)
	})
	r.Handle("/metrics", a.Telemetry.Handler)
	r.Get("/ws", a.Hub.ServeHTTP)

	return r
}

func (a *Application) scheduleRefresh(schedule string) error {
	a.scheduler = cron.New()
	_, err := a.scheduler.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), a.Config.Dataset.LoadTimeout)
		defer cancel()
		if err := a.Dashboard.Reload(ctx); err != nil {
			a.Logger.Error("scheduled dataset refresh failed",
				slog.String("error", err.Error()))
		}
	})
	return err
}

// Run starts the server, performs the initial dataset load, and blocks
// until a shutdown signal arrives.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The server comes up before the dataset: until the load commits, the
	// API answers with the explicit dataset-loading state instead of empty
	// aggregates.
	go func() {
		loadCtx, cancel := context.WithTimeout(ctx, a.Config.Dataset.LoadTimeout)
		defer cancel()
		if err := a.Dashboard.Load(loadCtx); err != nil {
			a.Logger.Error("initial dataset load failed",
				slog.String("source", a.Config.Dataset.Source),
				slog.String("error", err.Error()))
		}
	}()

	if a.scheduler != nil {
		a.scheduler.Start()
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server listening",
			slog.String("addr", a.Server.Addr),
			slog.String("version", Version),
			slog.String("dataset_source", a.Config.Dataset.Source))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down")
	return a.Shutdown()
}

// Shutdown stops the scheduler, drains the server, closes the hub, and
// flushes telemetry.
func (a *Application) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if a.scheduler != nil {
		a.scheduler.Stop()
	}

	var firstErr error
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		firstErr = fmt.Errorf("server shutdown: %w", err)
	}
	a.Hub.Close()
	if err := a.Telemetry.Shutdown(shutdownCtx); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("telemetry shutdown: %w", err)
	}
	if err := infrastructure.CloseLogger(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close logger: %w", err)
	}
	return firstErr
}
