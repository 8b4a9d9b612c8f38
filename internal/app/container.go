package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kapu/cinepick-go/internal/config"
	"github.com/kapu/cinepick-go/internal/handler"
	"github.com/kapu/cinepick-go/internal/service"
	"github.com/kapu/cinepick-go/internal/service/ai"
	"github.com/kapu/cinepick-go/internal/service/database"
	"github.com/kapu/cinepick-go/internal/service/tmdb"
)

// Container bundles the assembled services behind the HTTP surface.
type Container struct {
	Config  *config.Config
	Logger  *zap.Logger
	Handler *handler.RecommendationHandler

	postgres *database.PostgresService
}

// Close releases held infrastructure connections.
func (c *Container) Close() {
	if c.postgres != nil {
		_ = c.postgres.Close()
	}
}

// Build assembles the full dependency graph. Heavy-weight initialization
// (AI clients, database) happens here; the absence of the catalog credential
// or of persistence settings degrades the graph instead of failing the boot.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	modelManager, err := ai.NewModelManager(ctx, ai.ModelManagerConfig{
		GeminiAPIKey:       cfg.Gemini.APIKey,
		OpenAIAPIKey:       cfg.OpenAI.APIKey,
		DefaultGeminiModel: cfg.Gemini.Model,
		DefaultOpenAIModel: cfg.OpenAI.Model,
		EnableFallback:     cfg.OpenAI.EnableFallback,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create model manager: %w", err)
	}

	container := &Container{
		Config: cfg,
		Logger: logger,
	}

	// Persistence is optional: missing settings or an unreachable database
	// silently disable the preference store.
	var prefs *service.PreferenceRepository
	if cfg.PersistenceConfigured() {
		postgres, pgErr := database.NewPostgresService(database.PostgresConfig{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			Database: cfg.Postgres.Database,
		}, logger)
		if pgErr != nil {
			logger.Warn("PostgreSQL unavailable, persistence disabled", zap.Error(pgErr))
		} else {
			container.postgres = postgres
			if schemaErr := postgres.EnsureSchema(ctx); schemaErr != nil {
				logger.Warn("Schema bootstrap failed, persistence disabled", zap.Error(schemaErr))
			} else {
				prefs = service.NewPreferenceRepository(postgres, logger)
			}
		}
	} else {
		logger.Info("Persistence not configured, preference store disabled")
	}

	// The catalog client only exists when a credential is present; the
	// orchestrator turns its absence into a coded per-request failure.
	var resolver *service.CatalogResolver
	var enricher *service.DetailEnricher
	if cfg.TMDB.APIKey != "" {
		catalog := tmdb.NewClient(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, logger)
		resolver = service.NewCatalogResolver(catalog, logger)
		if prefs != nil {
			enricher = service.NewDetailEnricher(catalog, prefs, logger)
		} else {
			enricher = service.NewDetailEnricher(catalog, nil, logger)
		}
	} else {
		logger.Warn("TMDB_API_KEY not set, catalog resolution will fail per request")
	}

	var resolverDep service.TitleResolver
	var enricherDep service.MovieEnricher
	if resolver != nil {
		resolverDep = resolver
		enricherDep = enricher
	}

	var prefsDep service.PreferenceWriter
	if prefs != nil {
		prefsDep = prefs
	}

	recommendationSvc := service.NewRecommendationService(
		modelManager,
		resolverDep,
		enricherDep,
		prefsDep,
		logger,
	)

	container.Handler = handler.NewRecommendationHandler(recommendationSvc, modelManager, logger)

	return container, nil
}
