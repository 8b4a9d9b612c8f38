package constants

import "time"

var RecommendationConfig = struct {
	TitleCount            int
	DefaultLanguage       string
	DefaultProviderRegion string
}{
	TitleCount:            20,
	DefaultLanguage:       "en",
	DefaultProviderRegion: "US",
}

var APIConfig = struct {
	TMDBTimeout     time.Duration
	GenerateTimeout time.Duration
}{
	TMDBTimeout:     10 * time.Second,
	GenerateTimeout: 30 * time.Second,
}

var PersistenceConfig = struct {
	WriteTimeout    time.Duration
	ConnectTimeout  time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}{
	WriteTimeout:    5 * time.Second,
	ConnectTimeout:  5 * time.Second,
	MaxOpenConns:    25,
	MaxIdleConns:    5,
	ConnMaxLifetime: 5 * time.Minute,
}

var ConcurrencyConfig = struct {
	ResolveWorkers int
	EnrichWorkers  int
}{
	ResolveWorkers: 10,
	EnrichWorkers:  10,
}

var CircuitBreakerConfig = struct {
	FailureThreshold    int
	ResetTimeout        time.Duration
	RateLimitTimeout    time.Duration
	HealthCheckInterval time.Duration
}{
	FailureThreshold:    3,
	ResetTimeout:        30 * time.Second,
	RateLimitTimeout:    1 * time.Hour,
	HealthCheckInterval: 10 * time.Minute,
}
