package service

import (
	"context"
	"strings"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/kapu/cinepick-go/internal/constants"
	"github.com/kapu/cinepick-go/internal/domain"
	"github.com/kapu/cinepick-go/internal/service/tmdb"
)

// CatalogDetailer is the slice of the catalog client the enricher consumes.
type CatalogDetailer interface {
	MovieDetails(ctx context.Context, id int, language string) (*tmdb.MovieDetails, error)
	WatchProviders(ctx context.Context, id int) (*tmdb.ProvidersResponse, error)
}

// UserMovieSaver persists one enriched movie for a user, best effort.
type UserMovieSaver interface {
	SaveUserMovie(ctx context.Context, userID string, movie *domain.EnrichedMovie, genre, language string) error
}

// DetailEnricher turns resolved catalog matches into enriched movie records.
// It never fails: a detail-fetch failure degrades the record to the
// resolution-stage fields, and a provider-fetch failure only nulls the
// providers field. A resolved match always yields an output record.
type DetailEnricher struct {
	catalog     CatalogDetailer
	store       UserMovieSaver // nil disables persistence
	logger      *zap.Logger
	concurrency int
}

func NewDetailEnricher(catalog CatalogDetailer, store UserMovieSaver, logger *zap.Logger) *DetailEnricher {
	return &DetailEnricher{
		catalog:     catalog,
		store:       store,
		logger:      logger,
		concurrency: constants.ConcurrencyConfig.EnrichWorkers,
	}
}

// EnrichAll enriches every match concurrently, preserving input order in the
// output. When the request carries a user id, each record is also written to
// the preference store on a detached goroutine whose outcome is only logged.
func (e *DetailEnricher) EnrichAll(ctx context.Context, matches []domain.CatalogMatch, req *domain.RecommendationRequest) []domain.EnrichedMovie {
	results := make([]domain.EnrichedMovie, len(matches))
	region := providerRegion(req.Language)

	p := pool.New().WithMaxGoroutines(e.concurrency)
	for idx, match := range matches {
		idx, match := idx, match
		p.Go(func() {
			results[idx] = e.enrichOne(ctx, match, req.Language, region)
		})
	}
	p.Wait()

	if req.UserID != "" && e.store != nil {
		for i := range results {
			e.saveUserMovie(req.UserID, results[i], req.Genre, req.Language)
		}
	}

	return results
}

func (e *DetailEnricher) enrichOne(ctx context.Context, match domain.CatalogMatch, language, region string) domain.EnrichedMovie {
	details, err := e.catalog.MovieDetails(ctx, match.ID, language)
	if err != nil {
		e.logger.Warn("Detail fetch failed, emitting degraded record",
			zap.Int("movie_id", match.ID),
			zap.String("title", match.Title),
			zap.Error(err),
		)
		return degradedRecord(match)
	}

	movie := domain.EnrichedMovie{
		CatalogMatch: match,
		Runtime:      details.Runtime,
		Genres:       mapGenres(details.Genres),
		Credits:      mapCredits(details.Credits),
		Videos:       mapVideos(details.Videos.Results),
		Similar:      mapSimilar(details.Similar.Results),
		Status:       details.Status,
		Tagline:      details.Tagline,
	}
	if movie.Status == "" {
		movie.Status = "Unknown"
	}

	// The provider lookup fails independently of the detail lookup; a failure
	// here degrades only the providers field.
	providers, err := e.catalog.WatchProviders(ctx, match.ID)
	if err != nil {
		e.logger.Warn("Provider fetch failed, providers omitted",
			zap.Int("movie_id", match.ID),
			zap.Error(err),
		)
	} else if providers != nil {
		if regional, ok := providers.Results[region]; ok {
			movie.Providers = mapProviders(regional)
		}
	}

	return movie
}

// degradedRecord assembles an enriched movie from resolution-stage fields only.
func degradedRecord(match domain.CatalogMatch) domain.EnrichedMovie {
	return domain.EnrichedMovie{
		CatalogMatch: match,
		Runtime:      0,
		Genres:       []domain.Genre{},
		Credits:      domain.Credits{Cast: []domain.CastMember{}, Crew: []domain.CrewMember{}},
		Videos:       []domain.Video{},
		Similar:      []domain.SimilarMovie{},
		Providers:    nil,
		Status:       "Unknown",
		Tagline:      "",
	}
}

// saveUserMovie dispatches a fire-and-forget persistence write. It runs on a
// fresh context so the write is not abandoned when the response completes,
// and its failure never reaches the caller.
func (e *DetailEnricher) saveUserMovie(userID string, movie domain.EnrichedMovie, genre, language string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), constants.PersistenceConfig.WriteTimeout)
		defer cancel()

		if err := e.store.SaveUserMovie(ctx, userID, &movie, genre, language); err != nil {
			e.logger.Warn("Failed to persist user movie",
				zap.String("user_id", userID),
				zap.Int("movie_id", movie.ID),
				zap.Error(err),
			)
		}
	}()
}

// providerRegion derives the availability region from the request language's
// region subtag ("en-US" -> "US"), falling back to the default region.
func providerRegion(language string) string {
	parts := strings.Split(language, "-")
	if len(parts) >= 2 {
		if region := strings.ToUpper(strings.TrimSpace(parts[len(parts)-1])); len(region) == 2 {
			return region
		}
	}
	return constants.RecommendationConfig.DefaultProviderRegion
}

func mapGenres(genres []tmdb.Genre) []domain.Genre {
	out := make([]domain.Genre, 0, len(genres))
	for _, g := range genres {
		out = append(out, domain.Genre{ID: g.ID, Name: g.Name})
	}
	return out
}

func mapCredits(credits tmdb.Credits) domain.Credits {
	cast := make([]domain.CastMember, 0, len(credits.Cast))
	for _, c := range credits.Cast {
		cast = append(cast, domain.CastMember{
			ID:          c.ID,
			Name:        c.Name,
			Character:   c.Character,
			ProfilePath: c.ProfilePath,
			Order:       c.Order,
		})
	}

	crew := make([]domain.CrewMember, 0, len(credits.Crew))
	for _, c := range credits.Crew {
		crew = append(crew, domain.CrewMember{
			ID:          c.ID,
			Name:        c.Name,
			Job:         c.Job,
			Department:  c.Department,
			ProfilePath: c.ProfilePath,
		})
	}

	return domain.Credits{Cast: cast, Crew: crew}
}

func mapVideos(videos []tmdb.Video) []domain.Video {
	out := make([]domain.Video, 0, len(videos))
	for _, v := range videos {
		out = append(out, domain.Video{
			ID:       v.ID,
			Key:      v.Key,
			Name:     v.Name,
			Site:     v.Site,
			Type:     v.Type,
			Official: v.Official,
		})
	}
	return out
}

func mapSimilar(results []tmdb.SearchMovie) []domain.SimilarMovie {
	out := make([]domain.SimilarMovie, 0, len(results))
	for _, s := range results {
		out = append(out, domain.SimilarMovie{
			ID:          s.ID,
			Title:       s.Title,
			PosterPath:  s.PosterPath,
			ReleaseDate: s.ReleaseDate,
			VoteAverage: s.VoteAverage,
		})
	}
	return out
}

func mapProviders(regional tmdb.RegionProviders) *domain.RegionProviders {
	mapOptions := func(options []tmdb.ProviderOption) []domain.ProviderOption {
		out := make([]domain.ProviderOption, 0, len(options))
		for _, o := range options {
			out = append(out, domain.ProviderOption{
				ProviderID:   o.ProviderID,
				ProviderName: o.ProviderName,
				LogoPath:     o.LogoPath,
			})
		}
		return out
	}

	return &domain.RegionProviders{
		Link:     regional.Link,
		Flatrate: mapOptions(regional.Flatrate),
		Rent:     mapOptions(regional.Rent),
		Buy:      mapOptions(regional.Buy),
	}
}
