package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/kapu/cinepick-go/internal/constants"
)

// PostgresService owns the connection pool behind the preference store.
// Persistence is optional: callers treat a construction failure as "no store"
// rather than a boot failure.
type PostgresService struct {
	db     *sql.DB
	logger *zap.Logger
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// schemaStatements bootstrap the preference tables. user_preferences keeps one
// row per user; user_movies keys snapshots on (user_id, movie_id) so a repeat
// recommendation overwrites rather than duplicates.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS user_preferences (
		user_id            TEXT PRIMARY KEY,
		genre              TEXT NOT NULL,
		language           TEXT NOT NULL DEFAULT '',
		additional_details TEXT NOT NULL DEFAULT '',
		updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS user_movies (
		user_id    TEXT NOT NULL,
		movie_id   INTEGER NOT NULL,
		title      TEXT NOT NULL,
		genre      TEXT NOT NULL DEFAULT '',
		language   TEXT NOT NULL DEFAULT '',
		movie      JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (user_id, movie_id)
	)`,
}

func NewPostgresService(cfg PostgresConfig, logger *zap.Logger) (*PostgresService, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(constants.PersistenceConfig.MaxOpenConns)
	db.SetMaxIdleConns(constants.PersistenceConfig.MaxIdleConns)
	db.SetConnMaxLifetime(constants.PersistenceConfig.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), constants.PersistenceConfig.ConnectTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	logger.Info("PostgreSQL connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
	)

	return &PostgresService{
		db:     db,
		logger: logger,
	}, nil
}

// EnsureSchema creates the preference tables when they do not exist yet.
func (ps *PostgresService) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := ps.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to bootstrap schema: %w", err)
		}
	}

	ps.logger.Info("Preference schema ready")
	return nil
}

func (ps *PostgresService) GetDB() *sql.DB {
	return ps.db
}

func (ps *PostgresService) Close() error {
	if ps.db != nil {
		return ps.db.Close()
	}
	return nil
}
