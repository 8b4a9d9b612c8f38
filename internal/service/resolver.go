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

// CatalogSearcher is the slice of the catalog client the resolver consumes.
type CatalogSearcher interface {
	SearchMovies(ctx context.Context, query, language string) (*tmdb.SearchResponse, error)
}

// CatalogResolver maps candidate titles to catalog records. It never returns
// an error: a title that cannot be resolved, for any reason, is silently
// dropped from the result.
type CatalogResolver struct {
	catalog     CatalogSearcher
	logger      *zap.Logger
	concurrency int
}

func NewCatalogResolver(catalog CatalogSearcher, logger *zap.Logger) *CatalogResolver {
	return &CatalogResolver{
		catalog:     catalog,
		logger:      logger,
		concurrency: constants.ConcurrencyConfig.ResolveWorkers,
	}
}

// ResolveAll resolves every candidate title concurrently and returns the
// resolved matches in the original candidate order. Each worker owns one slot
// of the results slice, so completion order never leaks into the output.
func (r *CatalogResolver) ResolveAll(ctx context.Context, titles []string, language string) []domain.CatalogMatch {
	results := make([]*domain.CatalogMatch, len(titles))

	p := pool.New().WithMaxGoroutines(r.concurrency)
	for idx, title := range titles {
		idx, title := idx, title
		p.Go(func() {
			results[idx] = r.resolveOne(ctx, title, language)
		})
	}
	p.Wait()

	matches := make([]domain.CatalogMatch, 0, len(titles))
	for _, result := range results {
		if result != nil {
			matches = append(matches, *result)
		}
	}

	r.logger.Info("Candidate titles resolved",
		zap.Int("candidates", len(titles)),
		zap.Int("resolved", len(matches)),
	)

	return matches
}

// resolveOne returns nil when the title stays unresolved. Search failures are
// absorbed here; they must never abort sibling resolutions.
func (r *CatalogResolver) resolveOne(ctx context.Context, title, language string) *domain.CatalogMatch {
	resp, err := r.catalog.SearchMovies(ctx, title, language)
	if err != nil {
		r.logger.Warn("Catalog search failed, dropping title",
			zap.String("title", title),
			zap.Error(err),
		)
		return nil
	}

	if resp == nil || len(resp.Results) == 0 {
		r.logger.Debug("No catalog results for title", zap.String("title", title))
		return nil
	}

	selected := selectResult(title, resp.Results)
	if strings.TrimSpace(selected.Title) == "" {
		// Catalog data can be malformed; a record without a title is unusable.
		r.logger.Debug("Selected catalog result has no title", zap.String("query", title))
		return nil
	}

	originalLanguage := selected.OriginalLanguage
	if originalLanguage == "" {
		originalLanguage = constants.RecommendationConfig.DefaultLanguage
	}

	return &domain.CatalogMatch{
		ID:               selected.ID,
		Title:            selected.Title,
		Overview:         selected.Overview,
		PosterPath:       selected.PosterPath,
		BackdropPath:     selected.BackdropPath,
		ReleaseDate:      selected.ReleaseDate,
		VoteAverage:      selected.VoteAverage,
		VoteCount:        selected.VoteCount,
		OriginalLanguage: originalLanguage,
	}
}

// selectResult prefers the case-insensitive exact title match over search
// rank; without one, the first (highest-relevance) result wins.
func selectResult(query string, results []tmdb.SearchMovie) tmdb.SearchMovie {
	for _, result := range results {
		if strings.EqualFold(strings.TrimSpace(result.Title), strings.TrimSpace(query)) {
			return result
		}
	}
	return results[0]
}
