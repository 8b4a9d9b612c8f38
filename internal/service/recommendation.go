package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/kapu/cinepick-go/internal/constants"
	"github.com/kapu/cinepick-go/internal/domain"
	"github.com/kapu/cinepick-go/internal/prompt"
	"github.com/kapu/cinepick-go/internal/service/ai"
	"github.com/kapu/cinepick-go/internal/util"
	apperrors "github.com/kapu/cinepick-go/pkg/errors"
)

// Generator is the generation backend as the orchestrator sees it.
type Generator interface {
	Generate(ctx context.Context, promptText string, preset ai.ModelPreset, opts *ai.GenerateOptions) (string, *ai.GenerateMetadata, error)
}

// TitleResolver resolves candidate titles into ordered catalog matches.
type TitleResolver interface {
	ResolveAll(ctx context.Context, titles []string, language string) []domain.CatalogMatch
}

// MovieEnricher turns catalog matches into enriched records.
type MovieEnricher interface {
	EnrichAll(ctx context.Context, matches []domain.CatalogMatch, req *domain.RecommendationRequest) []domain.EnrichedMovie
}

// PreferenceWriter persists request preferences, best effort.
type PreferenceWriter interface {
	UpsertPreferences(ctx context.Context, userID, genre, language, details string) error
}

// RecommendationService is the top-level pipeline coordinator. Only five
// failure conditions abort a request; everything else degrades the result.
type RecommendationService struct {
	generator Generator
	resolver  TitleResolver // nil when the catalog backend is unconfigured
	enricher  MovieEnricher
	prefs     PreferenceWriter // nil disables preference persistence
	logger    *zap.Logger
}

func NewRecommendationService(
	generator Generator,
	resolver TitleResolver,
	enricher MovieEnricher,
	prefs PreferenceWriter,
	logger *zap.Logger,
) *RecommendationService {
	return &RecommendationService{
		generator: generator,
		resolver:  resolver,
		enricher:  enricher,
		prefs:     prefs,
		logger:    logger,
	}
}

// Recommend runs the full pipeline: generate candidate titles, resolve them
// against the catalog, enrich the survivors, and return them in the
// generator's order.
func (s *RecommendationService) Recommend(ctx context.Context, req *domain.RecommendationRequest) ([]domain.EnrichedMovie, error) {
	if strings.TrimSpace(req.Genre) == "" {
		return nil, apperrors.NewInvalidRequest("genre is required")
	}

	if req.SavePreferences && req.UserID != "" {
		s.savePreferences(req)
	}

	promptText := prompt.BuildRecommendationPrompt(prompt.RecommendationPromptVars{
		Genre:             req.Genre,
		Language:          req.Language,
		AdditionalDetails: req.AdditionalDetails,
		TitleCount:        constants.RecommendationConfig.TitleCount,
	})

	genCtx, cancel := context.WithTimeout(ctx, constants.APIConfig.GenerateTimeout)
	defer cancel()

	raw, metadata, err := s.generator.Generate(genCtx, promptText, ai.PresetCreative, &ai.GenerateOptions{JSONMode: true})
	if err != nil {
		s.logger.Error("Generation backend failed", zap.Error(err))
		return nil, apperrors.NewGenerationError(err)
	}

	if metadata != nil {
		s.logger.Info("Titles generated",
			zap.String("provider", metadata.Provider),
			zap.String("model", metadata.Model),
			zap.Bool("used_fallback", metadata.UsedFallback),
		)
	}

	titles, err := ai.ExtractTitleList(raw)
	if err != nil {
		s.logger.Error("Generation output unparseable",
			zap.Error(err),
			zap.Int("raw_length", len(raw)),
		)
		return nil, apperrors.NewMalformedOutput(err, raw)
	}

	s.logger.Debug("Candidate titles extracted",
		zap.Int("count", len(titles)),
		zap.Strings("preview", titles[:util.Min(len(titles), 3)]),
	)

	// The catalog credential is checked once, here, so a missing configuration
	// surfaces as one coded failure instead of twenty silent resolution misses.
	if s.resolver == nil || s.enricher == nil {
		return nil, apperrors.NewCatalogUnconfigured()
	}

	matches := s.resolver.ResolveAll(ctx, titles, req.Language)
	if len(matches) == 0 {
		return nil, apperrors.NewNoMatches(len(titles))
	}

	movies := s.enricher.EnrichAll(ctx, matches, req)

	s.logger.Info("Recommendations assembled",
		zap.String("genre", req.Genre),
		zap.Int("candidates", len(titles)),
		zap.Int("returned", len(movies)),
	)

	return movies, nil
}

// savePreferences dispatches a fire-and-forget write of the request
// preferences. Failures are logged and swallowed.
func (s *RecommendationService) savePreferences(req *domain.RecommendationRequest) {
	if s.prefs == nil {
		return
	}

	userID, genre, language, details := req.UserID, req.Genre, req.Language, req.AdditionalDetails
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), constants.PersistenceConfig.WriteTimeout)
		defer cancel()

		if err := s.prefs.UpsertPreferences(ctx, userID, genre, language, details); err != nil {
			s.logger.Warn("Failed to persist preferences",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		}
	}()
}
