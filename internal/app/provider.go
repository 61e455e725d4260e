package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/stringfold/ally/internal/app/bootstrap"
	"github.com/stringfold/ally/internal/cfg"
	"github.com/stringfold/ally/pkg/logger"
	"github.com/stringfold/ally/pkg/oauth2"
	"github.com/stringfold/ally/pkg/reddit"

	"github.com/prometheus/client_golang/prometheus"
)

// Infrastructure holds the long-lived dependencies that need lifecycle
// management.
type Infrastructure struct {
	Logger         logger.Logger
	Registry       *prometheus.Registry
	Metrics        *oauth2.Metrics
	MetricsHandler http.Handler
	Reddit         *reddit.Provider
	shutdownOTel   func(context.Context) error
}

// Close shuts down infrastructure resources.
func (i *Infrastructure) Close(ctx context.Context) error {
	if i.shutdownOTel != nil {
		i.Logger.Info(ctx, "Shutting down observability")
		if err := i.shutdownOTel(ctx); err != nil {
			return fmt.Errorf("observability shutdown: %w", err)
		}
	}
	return nil
}

// Provider is the composition root. It is the single place where the
// dependency graph is constructed.
type Provider struct {
	Infra  *Infrastructure
	Config *cfg.Config
}

func NewProvider(ctx context.Context, config *cfg.Config) (*Provider, error) {
	appLogger := logger.NewZeroLog(config.AppEnv)
	return newProvider(ctx, config, appLogger)
}

func newProvider(ctx context.Context, config *cfg.Config, appLogger logger.Logger) (*Provider, error) {
	appLogger.Info(ctx, "Initializing application provider...")

	shutdownOTel, err := bootstrap.InitOtel(ctx, &config.Observability)
	if err != nil {
		return nil, fmt.Errorf("observability setup: %w", err)
	}

	registry, metrics, metricsHandler := bootstrap.InitMetrics()

	redditProvider, err := bootstrap.InitReddit(&config.Reddit, &config.StateCookie, appLogger, metrics)
	if err != nil {
		if shutdownErr := shutdownOTel(ctx); shutdownErr != nil {
			appLogger.Warn(ctx, "failed to shutdown OTel during init failure",
				logger.Field{Key: "error", Value: shutdownErr.Error()})
		}
		return nil, fmt.Errorf("reddit initialization: %w", err)
	}

	appLogger.Info(ctx, "Application provider initialized successfully")

	return &Provider{
		Infra: &Infrastructure{
			Logger:         appLogger,
			Registry:       registry,
			Metrics:        metrics,
			MetricsHandler: metricsHandler,
			Reddit:         redditProvider,
			shutdownOTel:   shutdownOTel,
		},
		Config: config,
	}, nil
}
