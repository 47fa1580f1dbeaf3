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
	"github.com/go-chi/render"

	"tdpulse/internal/config"
	"tdpulse/internal/errors"
	"tdpulse/internal/infrastructure"
	custommw "tdpulse/internal/middleware"
	"tdpulse/internal/services"
	"tdpulse/internal/store"
	handlers "tdpulse/internal/transport/http"
)

const (
	Version = "1.0.0"
	AppName = "TD Pulse - Training Engagement Analytics"
)

// Application is the composition root: it owns the configuration, the
// dataset store, the dashboard service and the HTTP server built on top
// of them.
type Application struct {
	Config    *config.Config
	Router    *chi.Mux
	Server    *http.Server
	Store     *store.Store
	Dashboard *services.DashboardService
	Metrics   *custommw.RequestMetrics
	Logger    *slog.Logger
}

// NewApplication loads configuration, initializes the logger and wires
// every service into a ready-to-run application.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", Version),
		slog.String("dataset", cfg.Paths.DatasetFile))

	app := &Application{
		Config: cfg,
		Logger: logger,
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

func (a *Application) initializeServices() {
	a.Store = store.New(a.Config.Paths.DatasetFile, a.Logger)
	a.Dashboard = services.NewDashboardService(a.Store, a.Logger)
	a.Metrics = custommw.NewRequestMetrics()
}

// setupRouter configures the HTTP router with all routes.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)
	r.Use(custommw.StructuredLogger(a.Logger))
	r.Use(custommw.Recoverer(a.Logger))
	r.Use(custommw.StripSlashes)
	r.Use(a.Metrics.Handler)

	if a.Config.RateLimit.Enabled {
		r.Use(custommw.NewRateLimiter(
			a.Config.RateLimit.RPS,
			a.Config.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	errorHandler := errors.NewErrorHandler(a.Logger, false)
	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		dashboardHandler := handlers.NewDashboardHandler(a.Dashboard, a.Logger, errorHandler)
		r.Mount("/dashboard", dashboardHandler.Routes())

		datasetHandler := handlers.NewDatasetHandler(a.Store, a.Logger, errorHandler,
			a.Config.Server.MaxUploadBytes)
		r.Mount("/dataset", datasetHandler.Routes())

		healthHandler := handlers.NewHealthHandler(Version, a.readiness)
		r.Mount("/health", healthHandler.Routes())
	})

	// Prometheus scrape endpoint stays outside the JSON content-type group.
	r.Handle("/metrics", a.Metrics.Expose())

	a.Router = r
}

// readiness reports whether the dataset can currently be served.
func (a *Application) readiness() error {
	_, err := a.Store.Load(context.Background())
	return err
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Start launches the HTTP server in the background. A listen failure
// cancels ctx so Run can unwind.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", AppName),
		slog.String("version", Version),
		slog.Int("port", a.Config.Server.Port),
		slog.String("level", a.Config.Logging.Level))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	// Warm the dataset cache so the first dashboard request is served
	// from memory. A missing file is fine: the store serves an empty
	// table until an upload arrives.
	if _, err := a.Store.Load(ctx); err != nil {
		a.Logger.WarnContext(ctx, "Dataset not loadable at startup",
			slog.String("path", a.Config.Paths.DatasetFile),
			slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "Application started",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))
	return nil
}

// Stop gracefully stops the application.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if err := infrastructure.CloseLogFile(); err != nil {
		a.Logger.ErrorContext(ctx, "Error closing log file", slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

// Run runs the application until interrupted.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "Received interrupt signal")
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}
