package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/osvaldoandrade/sparkgw/internal/middleware"
	"github.com/osvaldoandrade/sparkgw/internal/providers"
	"github.com/osvaldoandrade/sparkgw/internal/services"
	"github.com/osvaldoandrade/sparkgw/internal/tracing"
	"github.com/osvaldoandrade/sparkgw/pkg/config"
)

type Application struct {
	Config  *config.Config
	Engine  *gin.Engine
	Jobs    services.JobService
	Results services.ResultsService
	Logger  *slog.Logger

	JobController providers.JobController
	ObjectReader  providers.ObjectReader

	TracingShutdown func(context.Context) error
}

// ApplicationOption configures the Application
type ApplicationOption func(*Application) error

// WithJobController injects a Dataproc job controller (fakes in tests).
func WithJobController(jc providers.JobController) ApplicationOption {
	return func(app *Application) error {
		app.JobController = jc
		return nil
	}
}

// WithObjectReader injects a blob storage reader (fakes in tests).
func WithObjectReader(or providers.ObjectReader) ApplicationOption {
	return func(app *Application) error {
		app.ObjectReader = or
		return nil
	}
}

func NewApplication(cfg *config.Config, opts ...ApplicationOption) (*Application, error) {
	level := new(slog.LevelVar)
	switch cfg.LogLevel {
	case "debug":
		level.Set(slog.LevelDebug)
	case "warn":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	default:
		level.Set(slog.LevelInfo)
	}
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	logger := slog.New(handler).With("service", "sparkgw", "env", cfg.Env)
	slog.SetDefault(logger)

	app := &Application{Config: cfg, Logger: logger}

	// Apply options
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	ctx := context.Background()
	shutdown, err := tracing.Setup(ctx, tracing.Config{
		Enabled:      cfg.TracingEnabled,
		ServiceName:  "sparkgw",
		OTLPEndpoint: cfg.OTLPEndpoint,
		OTLPInsecure: cfg.OTLPInsecure,
		SampleRatio:  cfg.TraceSampleRatio,
	}, logger)
	if err != nil {
		return nil, err
	}
	app.TracingShutdown = shutdown

	if app.JobController == nil {
		jc, err := providers.NewJobController(ctx, cfg.Region)
		if err != nil {
			return nil, err
		}
		app.JobController = jc
	}
	if app.ObjectReader == nil {
		or, err := providers.NewObjectReader(ctx)
		if err != nil {
			return nil, err
		}
		app.ObjectReader = or
	}

	app.Jobs = services.NewJobService(app.JobController, cfg.ProjectID, cfg.Region, cfg.ClusterName, logger)
	app.Results = services.NewResultsService(app.ObjectReader, cfg.BucketName, logger)

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.LoggerMiddleware(logger),
		middleware.TracingMiddleware("sparkgw"),
		middleware.MetricsMiddleware(),
	)
	app.Engine = engine

	return app, nil
}

// Close releases the provider client handles.
func (a *Application) Close() error {
	var firstErr error
	if a.JobController != nil {
		if err := a.JobController.Close(); err != nil {
			firstErr = err
		}
	}
	if a.ObjectReader != nil {
		if err := a.ObjectReader.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
