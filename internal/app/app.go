package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/sahilpilke/RealEstateAnalysis-Project/internal/config"
	apierrors "github.com/sahilpilke/RealEstateAnalysis-Project/internal/errors"
	"github.com/sahilpilke/RealEstateAnalysis-Project/internal/infrastructure"
	"github.com/sahilpilke/RealEstateAnalysis-Project/internal/llm"
	mw "github.com/sahilpilke/RealEstateAnalysis-Project/internal/middleware"
	"github.com/sahilpilke/RealEstateAnalysis-Project/internal/services"
	handlers "github.com/sahilpilke/RealEstateAnalysis-Project/internal/transport/http"
	"github.com/sahilpilke/RealEstateAnalysis-Project/pkg/contracts"
	api "github.com/sahilpilke/RealEstateAnalysis-Project/pkg/contracts/api/v1"
)

// formOverheadBytes is the body allowance on top of the upload limit for
// multipart boundaries and form fields.
const formOverheadBytes = 1 << 20

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.BusinessMetrics
	Services      *ServiceContainer

	errorHandler *apierrors.ErrorHandler
	validator    *mw.ValidationMiddleware
}

// ServiceContainer holds all services
type ServiceContainer struct {
	Analysis *services.AnalysisService
	Export   *services.ExportService
	Health   *services.HealthService
}

// NewApplication creates and wires a new application instance
func NewApplication(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	app := &Application{
		Config: cfg,
		Logger: logger,
	}

	providers, err := infrastructure.InitializeOTel(infrastructure.NewOTelConfig(cfg.Telemetry, contracts.Version), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}
	app.OTelProviders = providers

	metrics, err := infrastructure.CreateBusinessMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	app.Metrics = metrics

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	logger.Info("Application initialized",
		slog.String("version", contracts.Version),
		slog.String("address", cfg.Address()),
		slog.String("sample_path", cfg.Data.SamplePath),
		slog.Bool("summary_rewrite", cfg.LLM.Enabled()),
	)

	return app, nil
}

// initializeServices creates the service layer
func (a *Application) initializeServices() {
	enhancer := NewSummaryEnhancer(a.Config.LLM, a.Metrics, a.Logger)

	a.Services = &ServiceContainer{
		Analysis: services.NewAnalysisService(services.AnalysisOptions{
			SamplePath:     a.Config.Data.SamplePath,
			MaxUploadBytes: a.Config.Data.MaxUploadBytes,
			TableRowLimit:  a.Config.Data.TableRowLimit,
		}, enhancer, a.Metrics, a.Logger),
		Export: services.NewExportService(a.Metrics, a.Logger),
		Health: services.NewHealthService(contracts.Version, a.Config.Data.SamplePath, a.Config.LLM.Enabled(), a.Logger),
	}
}

// NewSummaryEnhancer builds the summary rewriter. Without a credential the
// completer stays nil and summaries are returned unchanged.
func NewSummaryEnhancer(cfg config.LLMConfig, metrics *infrastructure.BusinessMetrics, logger *slog.Logger) *llm.Enhancer {
	var completer llm.Completer
	if cfg.Enabled() {
		completer = llm.NewClientWithBaseURL(cfg.APIKey, cfg.Timeout, cfg.MaxAttempts, cfg.RetryBackoff, 0, cfg.BaseURL)
	} else {
		logger.Info("Summary rewriting disabled, no API key configured")
	}

	enhancer := llm.NewEnhancer(completer, llm.EnhancerOptions{
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Timeout:     cfg.Timeout,
	}, logger)
	if metrics != nil {
		enhancer = enhancer.WithCounter(metrics.SummaryRewrites)
	}
	return enhancer
}

// setupRouter configures the HTTP router with all middleware and routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()
	a.errorHandler = apierrors.NewErrorHandler(a.Logger, a.Config.Logging.Development)
	a.validator = mw.NewValidationMiddleware(a.Logger)

	// Router-level middleware runs before route matching, so CORS
	// preflights are answered even for routes without an OPTIONS handler.
	r.Use(mw.RequestID)
	r.Use(mw.RealIP)
	r.Use(mw.StripSlashes)
	if a.Config.Security.EnableCORS {
		r.Use(mw.CORS(a.getCORSConfig()))
	}

	r.Group(func(r chi.Router) {
		r.Use(mw.NewOTelMiddleware(a.OTelProviders.Tracer, a.Metrics, a.Logger).Handler)
		r.Use(mw.StructuredLogger(a.Logger))
		r.Use(a.errorHandler.RecoveryMiddleware)
		r.Use(mw.DefaultSecureHeaders().Handler)
		if rl := a.Config.Security.RateLimit; rl.Enabled {
			r.Use(mw.NewRateLimiter(rl.RPS, rl.Burst, a.Logger).Handler)
		}
		r.Use(mw.Timeout(a.Config.Server.RequestTimeout, a.Logger))
		r.Use(mw.MaxBodyBytes(a.Config.Data.MaxUploadBytes + formOverheadBytes))

		r.Route("/api", a.setupAPIRoutes)
	})

	if a.OTelProviders.MetricsHandler != nil {
		r.Handle("/metrics", a.OTelProviders.MetricsHandler)
	}

	r.NotFound(a.errorHandler.NotFound)
	r.MethodNotAllowed(a.errorHandler.MethodNotAllowed)

	a.Router = r
}

// setupAPIRoutes mounts the handlers under /api
func (a *Application) setupAPIRoutes(r chi.Router) {
	healthHandler := handlers.NewHealthHandler(a.Services.Health, a.Logger)
	r.Mount("/health", healthHandler.Routes())
	r.Get("/version", healthHandler.Version)

	analysisHandler := handlers.NewAnalysisHandler(a.Services.Analysis, a.validator, a.Logger, a.errorHandler)
	r.Mount("/analyze", analysisHandler.Routes())

	exportHandler := handlers.NewExportHandler(a.Services.Export, a.validator, a.Logger, a.errorHandler)
	r.Mount("/download-xlsx", exportHandler.Routes())
}

// getCORSConfig returns CORS configuration
func (a *Application) getCORSConfig() mw.CORSConfig {
	origins := a.Config.Security.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return mw.CORSConfig{
		AllowedOrigins: origins,
		Logger:         a.Logger,
	}
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           a.Config.Address(),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Run listens on the configured address and serves until ctx is canceled
// or the process receives SIGINT or SIGTERM.
func (a *Application) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.Server.Addr, err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully.
func (a *Application) Serve(ctx context.Context, ln net.Listener) error {
	a.performStartupHealthCheck(ctx)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.InfoContext(gctx, "Starting HTTP server",
			slog.String("address", ln.Addr().String()),
		)
		if err := a.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.Logger.Info("Shutting down application")
		return a.Stop(context.WithoutCancel(gctx))
	})

	return g.Wait()
}

// Stop gracefully shuts down the HTTP server and flushes telemetry
func (a *Application) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown: %w", err))
	}
	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("telemetry shutdown: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		a.Logger.Error("Application shutdown completed with errors", slog.String("error", err.Error()))
		return err
	}
	a.Logger.Info("Application stopped")
	return nil
}

// performStartupHealthCheck logs readiness problems without blocking startup;
// uploads still work when the sample dataset is missing.
func (a *Application) performStartupHealthCheck(ctx context.Context) {
	status := a.Services.Health.ReadinessCheck(ctx)
	if status.Status == api.StatusHealthy {
		a.Logger.InfoContext(ctx, "Startup health check passed")
		return
	}
	for name, check := range status.Checks {
		if check.Status != api.StatusHealthy {
			a.Logger.WarnContext(ctx, "Startup health check degraded",
				slog.String("check", name),
				slog.String("message", check.Message),
			)
		}
	}
}
