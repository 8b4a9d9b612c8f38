package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/kapu/cinepick-go/internal/domain"
	"github.com/kapu/cinepick-go/internal/service/database"
)

// PreferenceRepository stores request preferences and per-user movie
// snapshots. All writes are best effort from the pipeline's perspective; the
// caller decides whether to care about returned errors.
type PreferenceRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPreferenceRepository(postgres *database.PostgresService, logger *zap.Logger) *PreferenceRepository {
	return &PreferenceRepository{
		db:     postgres.GetDB(),
		logger: logger,
	}
}

// UpsertPreferences stores the latest preferences for a user, one row per user.
func (r *PreferenceRepository) UpsertPreferences(ctx context.Context, userID, genre, language, details string) error {
	query := `
		INSERT INTO user_preferences (user_id, genre, language, additional_details, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			genre = EXCLUDED.genre,
			language = EXCLUDED.language,
			additional_details = EXCLUDED.additional_details,
			updated_at = NOW()
	`

	if _, err := r.db.ExecContext(ctx, query, userID, genre, language, details); err != nil {
		return fmt.Errorf("failed to upsert preferences: %w", err)
	}
	return nil
}

// SaveUserMovie stores one enriched movie snapshot for a user, keyed on
// (user_id, movie_id). The genre column holds the resolved genre names when
// available, otherwise the requested genre.
func (r *PreferenceRepository) SaveUserMovie(ctx context.Context, userID string, movie *domain.EnrichedMovie, genre, language string) error {
	snapshot, err := json.Marshal(movie)
	if err != nil {
		return fmt.Errorf("failed to marshal movie snapshot: %w", err)
	}

	query := `
		INSERT INTO user_movies (user_id, movie_id, title, genre, language, movie)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, movie_id) DO UPDATE SET
			title = EXCLUDED.title,
			genre = EXCLUDED.genre,
			language = EXCLUDED.language,
			movie = EXCLUDED.movie
	`

	if _, err := r.db.ExecContext(ctx, query, userID, movie.ID, movie.Title, movie.GenreNames(genre), language, snapshot); err != nil {
		return fmt.Errorf("failed to save user movie: %w", err)
	}
	return nil
}
