// Package config defines coactor settings, their defaults and validation.
package config

import (
	"time"

	"github.com/DrSkyle/coactor/pkg/engine"
	"github.com/DrSkyle/coactor/pkg/tmdb"
)

// Defaults.
const (
	DefaultSeedID     = "2975"
	DefaultSeedName   = "Laurence Fishburne"
	DefaultOutput     = "."
	DefaultCacheTTL   = 24 * time.Hour
	DefaultRetryDelay = 500 * time.Millisecond
	EnvPrefix         = "COACTOR"
)

// DefaultBuildConfig returns the expansion defaults.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		MinVoteAverage: engine.DefaultMinVoteAverage,
		CastLimit:      engine.DefaultCastLimit,
		Rounds:         engine.DefaultRounds,
	}
}

// DefaultClientConfig returns the TMDb client defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		BaseURL:    tmdb.DefaultBaseURL,
		Language:   tmdb.DefaultLanguage,
		Timeout:    tmdb.DefaultTimeout,
		MaxTries:   tmdb.DefaultMaxTries,
		RetryDelay: DefaultRetryDelay,
		Cache: CacheConfig{
			TTL: DefaultCacheTTL,
		},
	}
}

// Default returns a complete configuration with every default applied.
func Default() Config {
	return Config{
		Seed:   SeedConfig{ID: DefaultSeedID, Name: DefaultSeedName},
		Build:  DefaultBuildConfig(),
		TMDb:   DefaultClientConfig(),
		Output: DefaultOutput,
	}
}
