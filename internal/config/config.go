package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	TMDB     TMDBConfig
	Gemini   GeminiConfig
	OpenAI   OpenAIConfig
	Postgres PostgresConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Port int
}

type TMDBConfig struct {
	APIKey  string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey         string
	Model          string
	EnableFallback bool
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvInt("PORT", 8080),
		},
		TMDB: TMDBConfig{
			APIKey:  getEnv("TMDB_API_KEY", ""),
			BaseURL: getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			Model:          getEnv("OPENAI_MODEL", "gpt-5-mini"),
			EnableFallback: getEnvBool("OPENAI_ENABLE_FALLBACK", true),
		},
		Postgres: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", ""),
			Port:     getEnvInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", ""),
			Password: getEnv("POSTGRES_PASSWORD", ""),
			Database: getEnv("POSTGRES_DB", ""),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks boot-time requirements. The TMDB key is deliberately not
// required here: its absence is reported per-request as a catalog
// configuration failure, and missing Postgres settings disable persistence.
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.TMDB.BaseURL == "" {
		return fmt.Errorf("TMDB_BASE_URL must not be empty")
	}
	return nil
}

// PersistenceConfigured reports whether enough Postgres settings are present
// to attempt a connection.
func (c *Config) PersistenceConfigured() bool {
	return c.Postgres.Host != "" && c.Postgres.User != "" && c.Postgres.Database != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
